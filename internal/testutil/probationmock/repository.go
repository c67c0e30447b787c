package probationmock

import (
	"context"
	"time"

	domain "oalass-backend/internal/domain/probation"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies probation.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, p *domain.Probation) error
	SaveFn              func(ctx context.Context, p *domain.Probation) error
	GetByIDFn           func(ctx context.Context, id uint64) (*domain.Probation, error)
	GetByIDForUpdateFn  func(ctx context.Context, id uint64) (*domain.Probation, error)
	GetActiveByUserIDFn func(ctx context.Context, userID uint64) (*domain.Probation, error)
	ListFn              func(ctx context.Context, status domain.Status) ([]domain.Probation, error)
	ListDueFn           func(ctx context.Context, before time.Time) ([]domain.Probation, error)
	CountActiveFn       func(ctx context.Context) (int64, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Probation) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, p *domain.Probation) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Probation, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Probation, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetActiveByUserID(ctx context.Context, userID uint64) (*domain.Probation, error) {
	if m.GetActiveByUserIDFn != nil {
		return m.GetActiveByUserIDFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, status domain.Status) ([]domain.Probation, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, status)
	}
	return nil, context.Canceled
}

func (m *Repo) ListDue(ctx context.Context, before time.Time) ([]domain.Probation, error) {
	if m.ListDueFn != nil {
		return m.ListDueFn(ctx, before)
	}
	return nil, context.Canceled
}

func (m *Repo) CountActive(ctx context.Context) (int64, error) {
	if m.CountActiveFn != nil {
		return m.CountActiveFn(ctx)
	}
	return 0, context.Canceled
}
