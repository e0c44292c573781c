package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/workforcehq/ems-backend-go/internal/domain/payroll"
	"github.com/workforcehq/ems-backend-go/internal/pkg/database"
)

// ========== PAYROLL RECORDS ==========

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollRecordColumns = `
	id, employee_id, period_start, period_end, working_days,
	base_salary, total_hours, overtime_pay, total_allowances, total_deductions,
	gross_pay, net_pay, status, generated_by, created_at, updated_at
`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var p payroll.PayrollRecord
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.PeriodStart, &p.PeriodEnd, &p.WorkingDays,
		&p.BaseSalary, &p.TotalHours, &p.OvertimePay, &p.TotalAllowances, &p.TotalDeductions,
		&p.GrossPay, &p.NetPay, &p.Status, &p.GeneratedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollRecordColumns + ` FROM payroll_records WHERE id = $1`

	p, err := scanPayrollRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetLineItems(ctx context.Context, recordID string) ([]payroll.PayrollLineItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, payroll_record_id, item_type, name, amount, position
		FROM payroll_line_items
		WHERE payroll_record_id = $1
		ORDER BY position
	`

	rows, err := q.Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll line items: %w", err)
	}
	defer rows.Close()

	var items []payroll.PayrollLineItem
	for rows.Next() {
		var item payroll.PayrollLineItem
		if err := rows.Scan(
			&item.ID, &item.PayrollRecordID, &item.ItemType, &item.Name, &item.Amount, &item.Position,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll line item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.ListPayrollFilter) ([]payroll.PayrollRecord, int64, error) {
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
	if len(filter.Statuses) > 0 {
		whereParts = append(whereParts, fmt.Sprintf("status = ANY($%d)", argIdx))
		args = append(args, filter.Statuses)
		argIdx++
	}
	if filter.PeriodStart != nil {
		whereParts = append(whereParts, fmt.Sprintf("period_start >= $%d", argIdx))
		args = append(args, *filter.PeriodStart)
		argIdx++
	}
	if filter.PeriodEnd != nil {
		whereParts = append(whereParts, fmt.Sprintf("period_end <= $%d", argIdx))
		args = append(args, *filter.PeriodEnd)
		argIdx++
	}

	where := strings.Join(whereParts, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM payroll_records WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM payroll_records
		WHERE %s
		ORDER BY period_start DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, payrollRecordColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		p, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, p)
	}

	return records, total, nil
}

func (r *payrollRepository) CreateWithLineItems(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			employee_id, period_start, period_end, working_days,
			base_salary, total_hours, overtime_pay, total_allowances, total_deductions,
			gross_pay, net_pay, status, generated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + payrollRecordColumns

	created, err := scanPayrollRecord(q.QueryRow(ctx, query,
		record.EmployeeID, record.PeriodStart, record.PeriodEnd, record.WorkingDays,
		record.BaseSalary, record.TotalHours, record.OvertimePay, record.TotalAllowances,
		record.TotalDeductions, record.GrossPay, record.NetPay,
		record.Status, record.GeneratedBy,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_records_employee_period") {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	itemQuery := `
		INSERT INTO payroll_line_items (payroll_record_id, item_type, name, amount, position)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	for i, item := range record.LineItems {
		item.PayrollRecordID = created.ID
		item.Position = i
		if err := q.QueryRow(ctx, itemQuery,
			item.PayrollRecordID, item.ItemType, item.Name, item.Amount, item.Position,
		).Scan(&item.ID); err != nil {
			return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll line item: %w", err)
		}
		created.LineItems = append(created.LineItems, item)
	}

	return created, nil
}

func (r *payrollRepository) UpdateStatus(ctx context.Context, id string, status payroll.RecordStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, status).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrPayrollRecordNotFound
		}
		return fmt.Errorf("failed to update payroll status: %w", err)
	}

	return nil
}

func (r *payrollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	// Line items cascade via FK.
	query := `DELETE FROM payroll_records WHERE id = $1 RETURNING id`

	var deletedID string
	err := q.QueryRow(ctx, query, id).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrPayrollRecordNotFound
		}
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}

	return nil
}

// ========== COMPENSATION RULES ==========

type ruleRepository struct {
	db *database.DB
}

func NewRuleRepository(db *database.DB) payroll.RuleRepository {
	return &ruleRepository{db: db}
}

const ruleColumns = `id, name, rule_type, kind, amount, is_active, created_at, updated_at`

func scanRule(row pgx.Row) (payroll.CompensationRule, error) {
	var rule payroll.CompensationRule
	err := row.Scan(
		&rule.ID, &rule.Name, &rule.RuleType, &rule.Kind, &rule.Amount, &rule.IsActive,
		&rule.CreatedAt, &rule.UpdatedAt,
	)
	return rule, err
}

func (r *ruleRepository) GetByID(ctx context.Context, id string) (payroll.CompensationRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + ruleColumns + ` FROM compensation_rules WHERE id = $1`

	rule, err := scanRule(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.CompensationRule{}, payroll.ErrRuleNotFound
		}
		return payroll.CompensationRule{}, fmt.Errorf("failed to get compensation rule: %w", err)
	}

	return rule, nil
}

func (r *ruleRepository) ListActive(ctx context.Context) ([]payroll.CompensationRule, error) {
	return r.list(ctx, true)
}

func (r *ruleRepository) List(ctx context.Context) ([]payroll.CompensationRule, error) {
	return r.list(ctx, false)
}

func (r *ruleRepository) list(ctx context.Context, activeOnly bool) ([]payroll.CompensationRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + ruleColumns + ` FROM compensation_rules`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY rule_type, name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list compensation rules: %w", err)
	}
	defer rows.Close()

	var rules []payroll.CompensationRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan compensation rule: %w", err)
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

func (r *ruleRepository) Create(ctx context.Context, rule payroll.CompensationRule) (payroll.CompensationRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO compensation_rules (name, rule_type, kind, amount, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + ruleColumns

	created, err := scanRule(q.QueryRow(ctx, query,
		rule.Name, rule.RuleType, rule.Kind, rule.Amount, rule.IsActive,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_compensation_rules_name") {
			return payroll.CompensationRule{}, payroll.ErrRuleNameExists
		}
		return payroll.CompensationRule{}, fmt.Errorf("failed to create compensation rule: %w", err)
	}

	return created, nil
}

func (r *ruleRepository) Update(ctx context.Context, req payroll.UpdateRuleRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID}
	argIdx := 2

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Amount != nil {
		setParts = append(setParts, fmt.Sprintf("amount = $%d", argIdx))
		args = append(args, *req.Amount)
		argIdx++
	}
	if req.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *req.IsActive)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE compensation_rules
		SET %s
		WHERE id = $1
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrRuleNotFound
		}
		if strings.Contains(err.Error(), "uk_compensation_rules_name") {
			return payroll.ErrRuleNameExists
		}
		return fmt.Errorf("failed to update compensation rule: %w", err)
	}

	return nil
}

func (r *ruleRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM compensation_rules WHERE id = $1 RETURNING id`

	var deletedID string
	err := q.QueryRow(ctx, query, id).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrRuleNotFound
		}
		return fmt.Errorf("failed to delete compensation rule: %w", err)
	}

	return nil
}
