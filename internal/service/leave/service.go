package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"

	"github.com/workforcehq/ems-backend-go/internal/domain/activity"
	"github.com/workforcehq/ems-backend-go/internal/domain/attendance"
	"github.com/workforcehq/ems-backend-go/internal/domain/employee"
	"github.com/workforcehq/ems-backend-go/internal/domain/leave"
)

// TxRunner runs fn inside a database transaction carried on the context.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type LeaveServiceImpl struct {
	tx             TxRunner
	leaveTypeRepo  leave.LeaveTypeRepository
	creditRepo     leave.LeaveCreditRepository
	requestRepo    leave.LeaveRequestRepository
	attendanceRepo attendance.AttendanceRepository
	activityRepo   activity.Repository
}

func NewLeaveService(
	tx TxRunner,
	leaveTypeRepo leave.LeaveTypeRepository,
	creditRepo leave.LeaveCreditRepository,
	requestRepo leave.LeaveRequestRepository,
	attendanceRepo attendance.AttendanceRepository,
	activityRepo activity.Repository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:             tx,
		leaveTypeRepo:  leaveTypeRepo,
		creditRepo:     creditRepo,
		requestRepo:    requestRepo,
		attendanceRepo: attendanceRepo,
		activityRepo:   activityRepo,
	}
}

func getClaimsFromContext(ctx context.Context) (employeeID string, role employee.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	roleStr, _ := claims["role"].(string)

	return employeeID, employee.Role(roleStr), nil
}

func (s *LeaveServiceImpl) logActivity(ctx context.Context, entry activity.Entry) {
	if err := s.activityRepo.Insert(ctx, entry); err != nil {
		slog.Error("failed to write activity log", "action", entry.Action, "error", err)
	}
}

// ========== LEAVE TYPES ==========

func (s *LeaveServiceImpl) CreateLeaveType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	created, err := s.leaveTypeRepo.Create(ctx, leave.LeaveType{
		Name:         req.Name,
		Description:  req.Description,
		MaxDays:      req.MaxDays,
		IsPaid:       req.IsPaid,
		RequiresDocs: req.RequiresDocs,
	})
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	return toLeaveTypeResponse(created), nil
}

func (s *LeaveServiceImpl) ListLeaveTypes(ctx context.Context) ([]leave.LeaveTypeResponse, error) {
	types, err := s.leaveTypeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, lt := range types {
		responses = append(responses, toLeaveTypeResponse(lt))
	}

	return responses, nil
}

func (s *LeaveServiceImpl) DeleteLeaveType(ctx context.Context, id string) error {
	return s.leaveTypeRepo.Delete(ctx, id)
}

// ========== CREDITS ==========

func (s *LeaveServiceImpl) GetMyCredits(ctx context.Context, year int) ([]leave.LeaveCreditResponse, error) {
	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if year == 0 {
		year = time.Now().Year()
	}

	credits, err := s.creditRepo.ListByEmployee(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	types, err := s.leaveTypeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	typeNames := make(map[string]string, len(types))
	for _, lt := range types {
		typeNames[lt.ID] = lt.Name
	}

	responses := make([]leave.LeaveCreditResponse, 0, len(credits))
	for _, c := range credits {
		responses = append(responses, leave.LeaveCreditResponse{
			LeaveTypeID:   c.LeaveTypeID,
			LeaveTypeName: typeNames[c.LeaveTypeID],
			Year:          c.Year,
			TotalDays:     c.TotalDays,
			UsedDays:      c.UsedDays,
			RemainingDays: c.RemainingDays(),
		})
	}

	return responses, nil
}

func (s *LeaveServiceImpl) SetCredits(ctx context.Context, employeeID, leaveTypeID string, year int, totalDays decimal.Decimal) error {
	if _, err := s.leaveTypeRepo.GetByID(ctx, leaveTypeID); err != nil {
		return err
	}

	return s.creditRepo.Upsert(ctx, leave.LeaveCredit{
		EmployeeID:  employeeID,
		LeaveTypeID: leaveTypeID,
		Year:        year,
		TotalDays:   totalDays,
		UsedDays:    decimal.Zero,
	})
}

// ========== REQUESTS ==========

func (s *LeaveServiceImpl) RequestLeave(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	parsed, err := req.Validate()
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	workingDays := leave.WorkingDaysBetween(parsed.StartDate, parsed.EndDate)
	if workingDays == 0 {
		return leave.LeaveRequestResponse{}, leave.ErrNoWorkingDays
	}
	totalDays := decimal.NewFromInt(int64(workingDays))

	leaveType, err := s.leaveTypeRepo.GetByID(ctx, parsed.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	credit, err := s.creditRepo.GetByEmployeeAndType(ctx, employeeID, parsed.LeaveTypeID, parsed.StartDate.Year())
	if errors.Is(err, leave.ErrLeaveCreditNotFound) {
		// First request against this leave type; seed a full year's credits
		// from the type's maximum.
		credit = leave.LeaveCredit{
			EmployeeID:  employeeID,
			LeaveTypeID: parsed.LeaveTypeID,
			Year:        parsed.StartDate.Year(),
			TotalDays:   decimal.NewFromInt(int64(leaveType.MaxDays)),
			UsedDays:    decimal.Zero,
		}
		if err := s.creditRepo.Upsert(ctx, credit); err != nil {
			return leave.LeaveRequestResponse{}, err
		}
	} else if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if credit.RemainingDays().LessThan(totalDays) {
		return leave.LeaveRequestResponse{}, leave.ErrInsufficientCredits
	}

	overlap, err := s.requestRepo.HasOverlapping(ctx, employeeID, leave.LeaveRequest{
		StartDate: parsed.StartDate,
		EndDate:   parsed.EndDate,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if overlap {
		return leave.LeaveRequestResponse{}, leave.ErrOverlappingRequest
	}

	created, err := s.requestRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID:  employeeID,
		LeaveTypeID: parsed.LeaveTypeID,
		StartDate:   parsed.StartDate,
		EndDate:     parsed.EndDate,
		TotalDays:   totalDays,
		Reason:      parsed.Reason,
		Status:      leave.RequestStatusPending,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.logActivity(ctx, activity.Entry{
		EmployeeID: &employeeID,
		Action:     activity.ActionLeaveRequested,
		EntityType: "leave_request",
		EntityID:   &created.ID,
	})

	return toRequestResponse(created), nil
}

// UpdateRequest lets the owner adjust a request while it is still pending.
func (s *LeaveServiceImpl) UpdateRequest(ctx context.Context, requestID string, req leave.UpdateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	parsed, err := req.Validate()
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	callerID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if request.EmployeeID != callerID {
		return leave.LeaveRequestResponse{}, leave.ErrNotRequestOwner
	}
	if request.Status != leave.RequestStatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrRequestNotPending
	}

	if parsed.StartDate != nil {
		request.StartDate = *parsed.StartDate
		request.EndDate = *parsed.EndDate

		workingDays := leave.WorkingDaysBetween(request.StartDate, request.EndDate)
		if workingDays == 0 {
			return leave.LeaveRequestResponse{}, leave.ErrNoWorkingDays
		}
		request.TotalDays = decimal.NewFromInt(int64(workingDays))

		overlap, err := s.requestRepo.HasOverlapping(ctx, callerID, request)
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}
		if overlap {
			return leave.LeaveRequestResponse{}, leave.ErrOverlappingRequest
		}
	}
	if parsed.Reason != nil {
		request.Reason = *parsed.Reason
	}

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.logActivity(ctx, activity.Entry{
		EmployeeID: &callerID,
		Action:     activity.ActionLeaveUpdated,
		EntityType: "leave_request",
		EntityID:   &requestID,
	})

	return toRequestResponse(request), nil
}

func (s *LeaveServiceImpl) ListRequests(ctx context.Context, filter leave.ListLeaveRequestsFilter) (leave.ListLeaveRequestsResponse, error) {
	callerID, role, err := getClaimsFromContext(ctx)
	if err != nil {
		return leave.ListLeaveRequestsResponse{}, err
	}

	if role == employee.RoleEmployee {
		filter.EmployeeID = callerID
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	requests, total, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestsResponse{}, err
	}

	resp := leave.ListLeaveRequestsResponse{
		Data:       make([]leave.LeaveRequestResponse, 0, len(requests)),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, lr := range requests {
		resp.Data = append(resp.Data, toRequestResponse(lr))
	}

	return resp, nil
}

// ReviewRequest approves or declines a pending request. Approval deducts
// leave credits and writes on_leave attendance rows for every weekday in
// the range, all inside one transaction.
func (s *LeaveServiceImpl) ReviewRequest(ctx context.Context, requestID string, req leave.ReviewLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	reviewerID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var reviewed leave.LeaveRequest
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		request, err := s.requestRepo.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if request.Status != leave.RequestStatusPending {
			return leave.ErrRequestNotPending
		}
		if request.EmployeeID == reviewerID {
			return leave.ErrOwnRequestReview
		}

		now := time.Now()
		request.Status = leave.RequestStatus(req.Status)
		request.ReviewedBy = &reviewerID
		request.ReviewedAt = &now
		request.ReviewNotes = req.ReviewNotes

		if err := s.requestRepo.UpdateStatus(txCtx, request); err != nil {
			return err
		}

		if request.Status == leave.RequestStatusApproved {
			if err := s.creditRepo.AddUsedDays(txCtx,
				request.EmployeeID, request.LeaveTypeID, request.StartDate.Year(), request.TotalDays,
			); err != nil {
				return err
			}

			for d := request.StartDate; !d.After(request.EndDate); d = d.AddDate(0, 0, 1) {
				if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
					continue
				}
				if err := s.attendanceRepo.UpsertStatus(txCtx, request.EmployeeID, d, attendance.StatusOnLeave); err != nil {
					return err
				}
			}
		}

		reviewed = request
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.logActivity(ctx, activity.Entry{
		EmployeeID: &reviewerID,
		Action:     activity.ActionLeaveReviewed,
		EntityType: "leave_request",
		EntityID:   &requestID,
		Details:    map[string]any{"status": req.Status},
	})

	return toRequestResponse(reviewed), nil
}

func (s *LeaveServiceImpl) CancelRequest(ctx context.Context, requestID string) error {
	callerID, role, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if role == employee.RoleEmployee && request.EmployeeID != callerID {
		return leave.ErrNotRequestOwner
	}
	if request.Status != leave.RequestStatusPending {
		return leave.ErrCannotCancelReviewed
	}

	request.Status = leave.RequestStatusCancelled
	if err := s.requestRepo.UpdateStatus(ctx, request); err != nil {
		return err
	}

	s.logActivity(ctx, activity.Entry{
		EmployeeID: &callerID,
		Action:     activity.ActionLeaveCancelled,
		EntityType: "leave_request",
		EntityID:   &requestID,
	})

	return nil
}

// ========== MAPPING ==========

func toLeaveTypeResponse(lt leave.LeaveType) leave.LeaveTypeResponse {
	return leave.LeaveTypeResponse{
		ID:           lt.ID,
		Name:         lt.Name,
		Description:  lt.Description,
		MaxDays:      lt.MaxDays,
		IsPaid:       lt.IsPaid,
		RequiresDocs: lt.RequiresDocs,
	}
}

func toRequestResponse(lr leave.LeaveRequest) leave.LeaveRequestResponse {
	resp := leave.LeaveRequestResponse{
		ID:          lr.ID,
		EmployeeID:  lr.EmployeeID,
		LeaveTypeID: lr.LeaveTypeID,
		StartDate:   lr.StartDate.Format("2006-01-02"),
		EndDate:     lr.EndDate.Format("2006-01-02"),
		TotalDays:   lr.TotalDays,
		Reason:      lr.Reason,
		Status:      string(lr.Status),
		ReviewedBy:  lr.ReviewedBy,
		ReviewNotes: lr.ReviewNotes,
	}
	if lr.ReviewedAt != nil {
		v := lr.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}
