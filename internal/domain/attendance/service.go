package attendance

import "context"

type AttendanceService interface {
	TimeIn(ctx context.Context, req TimeInRequest) (AttendanceResponse, error)
	TimeOut(ctx context.Context, req TimeOutRequest) (AttendanceResponse, error)
	GetToday(ctx context.Context) (AttendanceResponse, error)
	List(ctx context.Context, query ListAttendanceQuery) (ListAttendanceResponse, error)
	Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
	GetMonthlyReport(ctx context.Context, employeeID string, month, year int) (MonthlyReportResponse, error)
}
