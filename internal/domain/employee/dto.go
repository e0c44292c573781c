package employee

import (
	"github.com/shopspring/decimal"
	"github.com/workforcehq/ems-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeCode  string           `json:"employee_code"`
	Email         string           `json:"email"`
	Password      string           `json:"password"`
	FirstName     string           `json:"first_name"`
	MiddleName    *string          `json:"middle_name,omitempty"`
	LastName      string           `json:"last_name"`
	Role          string           `json:"role"`
	Position      *string          `json:"position,omitempty"`
	Department    *string          `json:"department,omitempty"`
	BaseSalary    *decimal.Decimal `json:"base_salary,omitempty"`
	DateHired     *string          `json:"date_hired,omitempty"`
	DateOfBirth   *string          `json:"date_of_birth,omitempty"`
	ContactNumber *string          `json:"contact_number,omitempty"`
	Address       *string          `json:"address,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 8 characters"})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "is required"})
	}
	if !IsValidRole(Role(r.Role)) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be admin, hr or employee"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if r.DateHired != nil {
		if _, ok := validator.IsValidDate(*r.DateHired); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_hired", Message: "must be YYYY-MM-DD"})
		}
	}
	if r.DateOfBirth != nil {
		if _, ok := validator.IsValidDate(*r.DateOfBirth); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_of_birth", Message: "must be YYYY-MM-DD"})
		}
	}
	if r.ContactNumber != nil && !validator.IsValidPhoneNumber(*r.ContactNumber) {
		errs = append(errs, validator.ValidationError{Field: "contact_number", Message: "must be 10-13 digits"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID            string
	PasswordHash  *string          `json:"-"`
	Email         *string          `json:"email,omitempty"`
	FirstName     *string          `json:"first_name,omitempty"`
	MiddleName    *string          `json:"middle_name,omitempty"`
	LastName      *string          `json:"last_name,omitempty"`
	Position      *string          `json:"position,omitempty"`
	Department    *string          `json:"department,omitempty"`
	BaseSalary    *decimal.Decimal `json:"base_salary,omitempty"`
	DateOfBirth   *string          `json:"date_of_birth,omitempty"`
	ContactNumber *string          `json:"contact_number,omitempty"`
	Address       *string          `json:"address,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if r.DateOfBirth != nil {
		if _, ok := validator.IsValidDate(*r.DateOfBirth); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_of_birth", Message: "must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

type EmployeeFilter struct {
	Search     string
	Department string
	Status     string
	Role       string
	Page       int
	Limit      int
}

type EmployeeResponse struct {
	ID               string           `json:"id"`
	EmployeeCode     string           `json:"employee_code"`
	Email            string           `json:"email"`
	FirstName        string           `json:"first_name"`
	MiddleName       *string          `json:"middle_name,omitempty"`
	LastName         string           `json:"last_name"`
	Role             string           `json:"role"`
	Position         *string          `json:"position,omitempty"`
	Department       *string          `json:"department,omitempty"`
	BaseSalary       *decimal.Decimal `json:"base_salary,omitempty"`
	EmploymentStatus string           `json:"employment_status"`
	DateHired        string           `json:"date_hired"`
	DateOfBirth      *string          `json:"date_of_birth,omitempty"`
	ContactNumber    *string          `json:"contact_number,omitempty"`
	Address          *string          `json:"address,omitempty"`
}

type ListEmployeesResponse struct {
	Data       []EmployeeResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}
