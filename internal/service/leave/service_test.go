package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/workforcehq/ems-backend-go/internal/domain/leave"
)

func day(d int) time.Time {
	return time.Date(2025, time.September, d, 0, 0, 0, 0, time.UTC)
}

func TestWorkingDaysBetween(t *testing.T) {
	// Mon 1st through Fri 5th
	assert.Equal(t, 5, leave.WorkingDaysBetween(day(1), day(5)))

	// Fri 5th through Mon 8th spans a weekend
	assert.Equal(t, 2, leave.WorkingDaysBetween(day(5), day(8)))

	// Weekend only
	assert.Equal(t, 0, leave.WorkingDaysBetween(day(6), day(7)))

	// Single day
	assert.Equal(t, 1, leave.WorkingDaysBetween(day(3), day(3)))

	// Inverted range
	assert.Equal(t, 0, leave.WorkingDaysBetween(day(5), day(1)))

	// Full month: 22 weekdays in September 2025
	assert.Equal(t, 22, leave.WorkingDaysBetween(day(1), day(30)))
}
