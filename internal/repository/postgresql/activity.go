package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/workforcehq/ems-backend-go/internal/domain/activity"
	"github.com/workforcehq/ems-backend-go/internal/pkg/database"
)

type activityRepository struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) activity.Repository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Insert(ctx context.Context, entry activity.Entry) error {
	q := GetQuerier(ctx, r.db)

	var details []byte
	if entry.Details != nil {
		var err error
		details, err = json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("failed to marshal activity details: %w", err)
		}
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	query := `
		INSERT INTO activity_logs (id, employee_id, action, entity_type, entity_id, details, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if _, err := q.Exec(ctx, query,
		entry.ID, entry.EmployeeID, entry.Action, entry.EntityType, entry.EntityID, details,
		entry.IPAddress, entry.UserAgent,
	); err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}

	return nil
}

func (r *activityRepository) List(ctx context.Context, filter activity.ListFilter) ([]activity.Entry, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereParts := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != "" {
		whereParts = append(whereParts, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.Action != "" {
		whereParts = append(whereParts, fmt.Sprintf("action = $%d", argIdx))
		args = append(args, filter.Action)
		argIdx++
	}
	if filter.EntityType != "" {
		whereParts = append(whereParts, fmt.Sprintf("entity_type = $%d", argIdx))
		args = append(args, filter.EntityType)
		argIdx++
	}

	where := strings.Join(whereParts, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM activity_logs WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activity logs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, employee_id, action, entity_type, entity_id, details, ip_address, user_agent, created_at
		FROM activity_logs
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activity logs: %w", err)
	}
	defer rows.Close()

	var entries []activity.Entry
	for rows.Next() {
		var entry activity.Entry
		var details []byte
		if err := rows.Scan(
			&entry.ID, &entry.EmployeeID, &entry.Action, &entry.EntityType, &entry.EntityID, &details,
			&entry.IPAddress, &entry.UserAgent, &entry.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity log: %w", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &entry.Details); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal activity details: %w", err)
			}
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}
