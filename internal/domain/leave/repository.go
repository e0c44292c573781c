package leave

import (
	"context"

	"github.com/shopspring/decimal"
)

type LeaveTypeRepository interface {
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	Update(ctx context.Context, leaveType LeaveType) error
	Delete(ctx context.Context, id string) error
}

type LeaveCreditRepository interface {
	GetByEmployeeAndType(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveCredit, error)
	ListByEmployee(ctx context.Context, employeeID string, year int) ([]LeaveCredit, error)
	Upsert(ctx context.Context, credit LeaveCredit) error

	// AddUsedDays increments used_days for the matching credit row. Callers
	// must hold a transaction when pairing this with a request status change.
	AddUsedDays(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error
}

type LeaveRequestRepository interface {
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	Update(ctx context.Context, req LeaveRequest) error
	List(ctx context.Context, filter ListLeaveRequestsFilter) ([]LeaveRequest, int64, error)
	UpdateStatus(ctx context.Context, req LeaveRequest) error
	HasOverlapping(ctx context.Context, employeeID string, req LeaveRequest) (bool, error)
}
