package travelmock

import (
	"context"

	domain "oalass-backend/internal/domain/travel"
	"oalass-backend/internal/domain/workflow"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies travel.Repository.
type Repo struct {
	CreateFn                func(ctx context.Context, o *domain.Order) error
	SaveFn                  func(ctx context.Context, o *domain.Order) error
	GetByOrderIDFn          func(ctx context.Context, orderID string) (*domain.Order, error)
	GetByOrderIDForUpdateFn func(ctx context.Context, orderID string) (*domain.Order, error)
	ListFn                  func(ctx context.Context, f domain.Filter) ([]domain.Order, int64, error)
	CountByStatusFn         func(ctx context.Context, f domain.Filter) (map[workflow.Status]int64, error)
}

func (m *Repo) Create(ctx context.Context, o *domain.Order) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, o *domain.Order) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, o)
	}
	return nil
}

func (m *Repo) GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	if m.GetByOrderIDFn != nil {
		return m.GetByOrderIDFn(ctx, orderID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByOrderIDForUpdate(ctx context.Context, orderID string) (*domain.Order, error) {
	if m.GetByOrderIDForUpdateFn != nil {
		return m.GetByOrderIDForUpdateFn(ctx, orderID)
	}
	if m.GetByOrderIDFn != nil {
		return m.GetByOrderIDFn(ctx, orderID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Order, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, context.Canceled
}

func (m *Repo) CountByStatus(ctx context.Context, f domain.Filter) (map[workflow.Status]int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, f)
	}
	return nil, context.Canceled
}
