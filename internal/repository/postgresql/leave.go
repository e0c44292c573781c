package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/workforcehq/ems-backend-go/internal/domain/leave"
	"github.com/workforcehq/ems-backend-go/internal/pkg/database"
)

// ========== LEAVE TYPES ==========

type leaveTypeRepository struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepository{db: db}
}

func (r *leaveTypeRepository) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, max_days, is_paid, requires_docs, created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(
		&lt.ID, &lt.Name, &lt.Description, &lt.MaxDays, &lt.IsPaid, &lt.RequiresDocs, &lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type: %w", err)
	}

	return lt, nil
}

func (r *leaveTypeRepository) List(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, max_days, is_paid, requires_docs, created_at, updated_at
		FROM leave_types
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		var lt leave.LeaveType
		if err := rows.Scan(
			&lt.ID, &lt.Name, &lt.Description, &lt.MaxDays, &lt.IsPaid, &lt.RequiresDocs, &lt.CreatedAt, &lt.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		types = append(types, lt)
	}

	return types, nil
}

func (r *leaveTypeRepository) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_types (name, description, max_days, is_paid, requires_docs)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, description, max_days, is_paid, requires_docs, created_at, updated_at
	`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query,
		leaveType.Name, leaveType.Description, leaveType.MaxDays, leaveType.IsPaid, leaveType.RequiresDocs,
	).Scan(
		&lt.ID, &lt.Name, &lt.Description, &lt.MaxDays, &lt.IsPaid, &lt.RequiresDocs, &lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_leave_types_name") {
			return leave.LeaveType{}, leave.ErrLeaveTypeNameExists
		}
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}

	return lt, nil
}

func (r *leaveTypeRepository) Update(ctx context.Context, leaveType leave.LeaveType) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_types
		SET name = $2, description = $3, max_days = $4, is_paid = $5, requires_docs = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		leaveType.ID, leaveType.Name, leaveType.Description, leaveType.MaxDays, leaveType.IsPaid, leaveType.RequiresDocs,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.ErrLeaveTypeNotFound
		}
		if strings.Contains(err.Error(), "uk_leave_types_name") {
			return leave.ErrLeaveTypeNameExists
		}
		return fmt.Errorf("failed to update leave type: %w", err)
	}

	return nil
}

func (r *leaveTypeRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM leave_types WHERE id = $1 RETURNING id`

	var deletedID string
	err := q.QueryRow(ctx, query, id).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.ErrLeaveTypeNotFound
		}
		return fmt.Errorf("failed to delete leave type: %w", err)
	}

	return nil
}

// ========== LEAVE CREDITS ==========

type leaveCreditRepository struct {
	db *database.DB
}

func NewLeaveCreditRepository(db *database.DB) leave.LeaveCreditRepository {
	return &leaveCreditRepository{db: db}
}

func (r *leaveCreditRepository) GetByEmployeeAndType(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveCredit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, year, total_days, used_days, created_at, updated_at
		FROM leave_credits
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
	`

	var c leave.LeaveCredit
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&c.ID, &c.EmployeeID, &c.LeaveTypeID, &c.Year, &c.TotalDays, &c.UsedDays, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveCredit{}, leave.ErrLeaveCreditNotFound
		}
		return leave.LeaveCredit{}, fmt.Errorf("failed to get leave credit: %w", err)
	}

	return c, nil
}

func (r *leaveCreditRepository) ListByEmployee(ctx context.Context, employeeID string, year int) ([]leave.LeaveCredit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, year, total_days, used_days, created_at, updated_at
		FROM leave_credits
		WHERE employee_id = $1 AND year = $2
		ORDER BY leave_type_id
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave credits: %w", err)
	}
	defer rows.Close()

	var credits []leave.LeaveCredit
	for rows.Next() {
		var c leave.LeaveCredit
		if err := rows.Scan(
			&c.ID, &c.EmployeeID, &c.LeaveTypeID, &c.Year, &c.TotalDays, &c.UsedDays, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave credit: %w", err)
		}
		credits = append(credits, c)
	}

	return credits, nil
}

func (r *leaveCreditRepository) Upsert(ctx context.Context, credit leave.LeaveCredit) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_credits (employee_id, leave_type_id, year, total_days, used_days)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, leave_type_id, year) DO UPDATE SET
			total_days = EXCLUDED.total_days,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query,
		credit.EmployeeID, credit.LeaveTypeID, credit.Year, credit.TotalDays, credit.UsedDays,
	); err != nil {
		return fmt.Errorf("failed to upsert leave credit: %w", err)
	}

	return nil
}

func (r *leaveCreditRepository) AddUsedDays(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_credits
		SET used_days = used_days + $4, updated_at = NOW()
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year, days).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.ErrLeaveCreditNotFound
		}
		return fmt.Errorf("failed to add used leave days: %w", err)
	}

	return nil
}

// ========== LEAVE REQUESTS ==========

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveRequestColumns = `
	id, employee_id, leave_type_id, start_date, end_date, total_days,
	reason, status, reviewed_by, reviewed_at, review_notes, created_at, updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveTypeID, &lr.StartDate, &lr.EndDate, &lr.TotalDays,
		&lr.Reason, &lr.Status, &lr.ReviewedBy, &lr.ReviewedAt, &lr.ReviewNotes, &lr.CreatedAt, &lr.UpdatedAt,
	)
	return lr, err
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1`

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return lr, nil
}

func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (employee_id, leave_type_id, start_date, end_date, total_days, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + leaveRequestColumns

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query,
		req.EmployeeID, req.LeaveTypeID, req.StartDate, req.EndDate, req.TotalDays, req.Reason, req.Status,
	))
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return lr, nil
}

func (r *leaveRequestRepository) Update(ctx context.Context, req leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET start_date = $2, end_date = $3, total_days = $4, reason = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		req.ID, req.StartDate, req.EndDate, req.TotalDays, req.Reason,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.ErrLeaveRequestNotFound
		}
		return fmt.Errorf("failed to update leave request: %w", err)
	}

	return nil
}

func (r *leaveRequestRepository) List(ctx context.Context, filter leave.ListLeaveRequestsFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereParts := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != "" {
		whereParts = append(whereParts, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.Status != "" {
		whereParts = append(whereParts, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}

	where := strings.Join(whereParts, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM leave_requests WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM leave_requests
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, leaveRequestColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}

	return requests, total, nil
}

func (r *leaveRequestRepository) UpdateStatus(ctx context.Context, req leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4, review_notes = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		req.ID, req.Status, req.ReviewedBy, req.ReviewedAt, req.ReviewNotes,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.ErrLeaveRequestNotFound
		}
		return fmt.Errorf("failed to update leave request status: %w", err)
	}

	return nil
}

func (r *leaveRequestRepository) HasOverlapping(ctx context.Context, employeeID string, req leave.LeaveRequest) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
			  AND id IS DISTINCT FROM $4
		)
	`

	var exists bool
	var excludeID *string
	if req.ID != "" {
		excludeID = &req.ID
	}
	err := q.QueryRow(ctx, query, employeeID, req.StartDate, req.EndDate, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}

	return exists, nil
}
