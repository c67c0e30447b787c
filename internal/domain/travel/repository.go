package travel

import (
	"context"

	"oalass-backend/internal/domain/workflow"
)

type Filter struct {
	UserID       uint64
	DepartmentID uint64
	Status       workflow.Status
	Limit        int
	Offset       int
}

type Repository interface {
	Create(ctx context.Context, o *Order) error
	Save(ctx context.Context, o *Order) error
	GetByOrderID(ctx context.Context, orderID string) (*Order, error)
	GetByOrderIDForUpdate(ctx context.Context, orderID string) (*Order, error)
	List(ctx context.Context, f Filter) ([]Order, int64, error)
	CountByStatus(ctx context.Context, f Filter) (map[workflow.Status]int64, error)
}
