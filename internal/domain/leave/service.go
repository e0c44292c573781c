package leave

import (
	"context"

	"github.com/shopspring/decimal"
)

type LeaveService interface {
	CreateLeaveType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	ListLeaveTypes(ctx context.Context) ([]LeaveTypeResponse, error)
	DeleteLeaveType(ctx context.Context, id string) error

	GetMyCredits(ctx context.Context, year int) ([]LeaveCreditResponse, error)
	SetCredits(ctx context.Context, employeeID, leaveTypeID string, year int, totalDays decimal.Decimal) error

	RequestLeave(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	UpdateRequest(ctx context.Context, requestID string, req UpdateLeaveRequestRequest) (LeaveRequestResponse, error)
	ListRequests(ctx context.Context, filter ListLeaveRequestsFilter) (ListLeaveRequestsResponse, error)
	ReviewRequest(ctx context.Context, requestID string, req ReviewLeaveRequestRequest) (LeaveRequestResponse, error)
	CancelRequest(ctx context.Context, requestID string) error
}
