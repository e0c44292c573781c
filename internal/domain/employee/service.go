package employee

import "context"

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context, filter EmployeeFilter) (ListEmployeesResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	ChangeStatus(ctx context.Context, id string, req ChangeStatusRequest) error
	Delete(ctx context.Context, id string) error
}
