package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestReviewLeaveRequestRequestValidate(t *testing.T) {
	for _, status := range []string{"approved", "declined"} {
		req := ReviewLeaveRequestRequest{Status: status}
		assert.NoError(t, req.Validate(), "status %q", status)
	}

	for _, status := range []string{"", "pending", "cancelled", "rejected"} {
		req := ReviewLeaveRequestRequest{Status: status}
		assert.Error(t, req.Validate(), "status %q", status)
	}
}

func TestUpdateLeaveRequestRequestValidate(t *testing.T) {
	t.Run("reason only", func(t *testing.T) {
		req := UpdateLeaveRequestRequest{Reason: strPtr("family matter")}
		parsed, err := req.Validate()
		require.NoError(t, err)
		assert.Nil(t, parsed.StartDate)
		assert.Equal(t, "family matter", *parsed.Reason)
	})

	t.Run("dates move together", func(t *testing.T) {
		req := UpdateLeaveRequestRequest{StartDate: strPtr("2025-09-01")}
		_, err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("both dates", func(t *testing.T) {
		req := UpdateLeaveRequestRequest{
			StartDate: strPtr("2025-09-01"),
			EndDate:   strPtr("2025-09-05"),
		}
		parsed, err := req.Validate()
		require.NoError(t, err)
		assert.Equal(t, "2025-09-01", parsed.StartDate.Format("2006-01-02"))
		assert.Equal(t, "2025-09-05", parsed.EndDate.Format("2006-01-02"))
	})

	t.Run("inverted range", func(t *testing.T) {
		req := UpdateLeaveRequestRequest{
			StartDate: strPtr("2025-09-05"),
			EndDate:   strPtr("2025-09-01"),
		}
		_, err := req.Validate()
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("empty body", func(t *testing.T) {
		req := UpdateLeaveRequestRequest{}
		_, err := req.Validate()
		assert.Error(t, err)
	})
}
