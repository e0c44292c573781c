package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	UpdateStatus(ctx context.Context, id string, status EmploymentStatus) error
	Delete(ctx context.Context, id string) error
	GetActiveIDs(ctx context.Context) ([]string, error)
}
