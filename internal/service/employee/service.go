package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/workforcehq/ems-backend-go/internal/domain/activity"
	"github.com/workforcehq/ems-backend-go/internal/domain/employee"
	"github.com/workforcehq/ems-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	activityRepo activity.Repository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, activityRepo activity.Repository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		activityRepo: activityRepo,
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

func (s *EmployeeServiceImpl) logActivity(ctx context.Context, entry activity.Entry) {
	if err := s.activityRepo.Insert(ctx, entry); err != nil {
		slog.Error("failed to write activity log", "action", entry.Action, "error", err)
	}
}

func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	callerID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	dateHired := time.Now()
	if req.DateHired != nil {
		dateHired, _ = validator.IsValidDate(*req.DateHired)
	}
	var dateOfBirth *time.Time
	if req.DateOfBirth != nil {
		dob, _ := validator.IsValidDate(*req.DateOfBirth)
		dateOfBirth = &dob
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		EmployeeCode:     req.EmployeeCode,
		Email:            req.Email,
		PasswordHash:     string(hashedPassword),
		FirstName:        req.FirstName,
		MiddleName:       req.MiddleName,
		LastName:         req.LastName,
		Role:             employee.Role(req.Role),
		Position:         req.Position,
		Department:       req.Department,
		BaseSalary:       req.BaseSalary,
		EmploymentStatus: employee.EmploymentStatusActive,
		DateHired:        dateHired,
		DateOfBirth:      dateOfBirth,
		ContactNumber:    req.ContactNumber,
		Address:          req.Address,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.logActivity(ctx, activity.Entry{
		EmployeeID: &callerID,
		Action:     activity.ActionEmployeeCreated,
		EntityType: "employee",
		EntityID:   &created.ID,
	})

	return ToResponse(created), nil
}

func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	callerID, role, err := getClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	// Employees can only read their own profile.
	if role == employee.RoleEmployee && id != callerID {
		return employee.EmployeeResponse{}, employee.ErrUnauthorized
	}

	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return ToResponse(e), nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeesResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	resp := employee.ListEmployeesResponse{
		Data:       make([]employee.EmployeeResponse, 0, len(employees)),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, e := range employees {
		resp.Data = append(resp.Data, ToResponse(e))
	}

	return resp, nil
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	callerID, role, err := getClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	// Employees may edit their own contact details only.
	if role == employee.RoleEmployee {
		if req.ID != callerID {
			return employee.EmployeeResponse{}, employee.ErrUnauthorized
		}
		req.BaseSalary = nil
		req.Department = nil
		req.Position = nil
	}

	if err := s.employeeRepo.Update(ctx, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.logActivity(ctx, activity.Entry{
		EmployeeID: &callerID,
		Action:     activity.ActionEmployeeUpdated,
		EntityType: "employee",
		EntityID:   &req.ID,
	})

	return ToResponse(updated), nil
}

func (s *EmployeeServiceImpl) ChangeStatus(ctx context.Context, id string, req employee.ChangeStatusRequest) error {
	status := employee.EmploymentStatus(req.Status)
	if !employee.IsValidEmploymentStatus(status) {
		return employee.ErrInvalidStatus
	}

	callerID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.employeeRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.logActivity(ctx, activity.Entry{
		EmployeeID: &callerID,
		Action:     activity.ActionStatusChanged,
		EntityType: "employee",
		EntityID:   &id,
		Details:    map[string]any{"status": req.Status},
	})

	return nil
}

func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	callerID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logActivity(ctx, activity.Entry{
		EmployeeID: &callerID,
		Action:     activity.ActionEmployeeDeleted,
		EntityType: "employee",
		EntityID:   &id,
	})

	return nil
}

// ToResponse maps the entity to its API shape, dropping the password hash.
func ToResponse(e employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:               e.ID,
		EmployeeCode:     e.EmployeeCode,
		Email:            e.Email,
		FirstName:        e.FirstName,
		MiddleName:       e.MiddleName,
		LastName:         e.LastName,
		Role:             string(e.Role),
		Position:         e.Position,
		Department:       e.Department,
		BaseSalary:       e.BaseSalary,
		EmploymentStatus: string(e.EmploymentStatus),
		DateHired:        e.DateHired.Format("2006-01-02"),
		ContactNumber:    e.ContactNumber,
		Address:          e.Address,
	}
	if e.DateOfBirth != nil {
		dob := e.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &dob
	}
	return resp
}
