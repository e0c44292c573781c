package dashboard

import (
	"context"
	"time"
)

type Repository interface {
	GetAdminStats(ctx context.Context, today time.Time) (AdminStats, error)
	GetEmployeeStats(ctx context.Context, employeeID string, monthStart, monthEnd time.Time) (EmployeeStats, error)
}
