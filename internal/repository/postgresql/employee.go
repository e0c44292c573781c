package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/workforcehq/ems-backend-go/internal/domain/employee"
	"github.com/workforcehq/ems-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, employee_code, email, password_hash, first_name, middle_name, last_name,
	role, position, department, base_salary, employment_status,
	date_hired, date_of_birth, contact_number, address, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.EmployeeCode, &e.Email, &e.PasswordHash, &e.FirstName, &e.MiddleName, &e.LastName,
		&e.Role, &e.Position, &e.Department, &e.BaseSalary, &e.EmploymentStatus,
		&e.DateHired, &e.DateOfBirth, &e.ContactNumber, &e.Address, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND deleted_at IS NULL`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1 AND deleted_at IS NULL`

	e, err := scanEmployee(q.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			employee_code, email, password_hash, first_name, middle_name, last_name,
			role, position, department, base_salary, employment_status,
			date_hired, date_of_birth, contact_number, address
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + employeeColumns

	e, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.EmployeeCode, newEmployee.Email, newEmployee.PasswordHash,
		newEmployee.FirstName, newEmployee.MiddleName, newEmployee.LastName,
		newEmployee.Role, newEmployee.Position, newEmployee.Department,
		newEmployee.BaseSalary, newEmployee.EmploymentStatus,
		newEmployee.DateHired, newEmployee.DateOfBirth, newEmployee.ContactNumber, newEmployee.Address,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_employees_employee_code") {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		if strings.Contains(err.Error(), "uk_employees_email") {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereParts := []string{"deleted_at IS NULL"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != "" {
		whereParts = append(whereParts, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR employee_code ILIKE $%d OR email ILIKE $%d)",
			argIdx, argIdx, argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.Department != "" {
		whereParts = append(whereParts, fmt.Sprintf("department = $%d", argIdx))
		args = append(args, filter.Department)
		argIdx++
	}
	if filter.Status != "" {
		whereParts = append(whereParts, fmt.Sprintf("employment_status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Role != "" {
		whereParts = append(whereParts, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, filter.Role)
		argIdx++
	}

	where := strings.Join(whereParts, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM employees WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM employees
		WHERE %s
		ORDER BY last_name, first_name
		LIMIT $%d OFFSET $%d
	`, employeeColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, total, nil
}

func (r *employeeRepository) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID}
	argIdx := 2

	addSet := func(column string, value interface{}) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.PasswordHash != nil {
		addSet("password_hash", *req.PasswordHash)
	}
	if req.Email != nil {
		addSet("email", *req.Email)
	}
	if req.FirstName != nil {
		addSet("first_name", *req.FirstName)
	}
	if req.MiddleName != nil {
		addSet("middle_name", *req.MiddleName)
	}
	if req.LastName != nil {
		addSet("last_name", *req.LastName)
	}
	if req.Position != nil {
		addSet("position", *req.Position)
	}
	if req.Department != nil {
		addSet("department", *req.Department)
	}
	if req.BaseSalary != nil {
		addSet("base_salary", *req.BaseSalary)
	}
	if req.DateOfBirth != nil {
		addSet("date_of_birth", *req.DateOfBirth)
	}
	if req.ContactNumber != nil {
		addSet("contact_number", *req.ContactNumber)
	}
	if req.Address != nil {
		addSet("address", *req.Address)
	}

	if len(setParts) == 1 {
		return employee.ErrNoFieldsToUpdate
	}

	query := fmt.Sprintf(`
		UPDATE employees
		SET %s
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		if strings.Contains(err.Error(), "uk_employees_email") {
			return employee.ErrEmailExists
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}

func (r *employeeRepository) UpdateStatus(ctx context.Context, id string, status employee.EmploymentStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET employment_status = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, status).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employment status: %w", err)
	}

	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`

	var deletedID string
	err := q.QueryRow(ctx, query, id).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}

func (r *employeeRepository) GetActiveIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id FROM employees
		WHERE employment_status = 'active' AND deleted_at IS NULL
		ORDER BY employee_code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employee ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
