package activity

import "context"

type ListFilter struct {
	EmployeeID string
	Action     string
	EntityType string
	Page       int
	Limit      int
}

type Repository interface {
	Insert(ctx context.Context, entry Entry) error
	List(ctx context.Context, filter ListFilter) ([]Entry, int64, error)
}
