package employee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	EmployeeCode     string
	Email            string
	PasswordHash     string
	FirstName        string
	MiddleName       *string
	LastName         string
	Role             Role
	Position         *string
	Department       *string
	BaseSalary       *decimal.Decimal
	EmploymentStatus EmploymentStatus
	DateHired        time.Time
	DateOfBirth      *time.Time
	ContactNumber    *string
	Address          *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FullName returns "First Last" for display and error messages.
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

func IsValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	}
	return false
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusInactive   EmploymentStatus = "inactive"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

func IsValidEmploymentStatus(s EmploymentStatus) bool {
	switch s {
	case EmploymentStatusActive, EmploymentStatusInactive, EmploymentStatusResigned, EmploymentStatusTerminated:
		return true
	}
	return false
}
