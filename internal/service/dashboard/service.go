package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workforcehq/ems-backend-go/internal/domain/activity"
	"github.com/workforcehq/ems-backend-go/internal/domain/dashboard"
)

type DashboardServiceImpl struct {
	dashboardRepo dashboard.Repository
	activityRepo  activity.Repository
	now           func() time.Time
}

func NewDashboardService(dashboardRepo dashboard.Repository, activityRepo activity.Repository) dashboard.Service {
	return &DashboardServiceImpl{
		dashboardRepo: dashboardRepo,
		activityRepo:  activityRepo,
		now:           time.Now,
	}
}

func (s *DashboardServiceImpl) GetAdminStats(ctx context.Context) (dashboard.AdminStats, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats, err := s.dashboardRepo.GetAdminStats(ctx, today)
	if err != nil {
		return dashboard.AdminStats{}, err
	}

	recent, _, err := s.activityRepo.List(ctx, activity.ListFilter{Page: 1, Limit: 10})
	if err != nil {
		return dashboard.AdminStats{}, err
	}
	stats.RecentActivities = make([]activity.EntryResponse, 0, len(recent))
	for _, e := range recent {
		stats.RecentActivities = append(stats.RecentActivities, activity.EntryResponse{
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

	return stats, nil
}

func (s *DashboardServiceImpl) GetMyStats(ctx context.Context) (dashboard.EmployeeStats, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return dashboard.EmployeeStats{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return dashboard.EmployeeStats{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	return s.dashboardRepo.GetEmployeeStats(ctx, employeeID, monthStart, monthEnd)
}
