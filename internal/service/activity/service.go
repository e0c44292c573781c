package activity

import (
	"context"
	"time"

	"github.com/workforcehq/ems-backend-go/internal/domain/activity"
)

type ActivityServiceImpl struct {
	activityRepo activity.Repository
}

func NewActivityService(activityRepo activity.Repository) activity.Service {
	return &ActivityServiceImpl{activityRepo: activityRepo}
}

func (s *ActivityServiceImpl) List(ctx context.Context, filter activity.ListFilter) (activity.ListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	entries, total, err := s.activityRepo.List(ctx, filter)
	if err != nil {
		return activity.ListResponse{}, err
	}

	data := make([]activity.EntryResponse, 0, len(entries))
	for _, e := range entries {
		data = append(data, activity.EntryResponse{
			ID:         e.ID,
			EmployeeID: e.EmployeeID,
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Details:    e.Details,
			IPAddress:  e.IPAddress,
			UserAgent:  e.UserAgent,
			CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		})
	}

	return activity.ListResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}
