package dashboard

import "context"

type Service interface {
	GetAdminStats(ctx context.Context) (AdminStats, error)
	GetMyStats(ctx context.Context) (EmployeeStats, error)
}
