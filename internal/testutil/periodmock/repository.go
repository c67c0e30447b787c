package periodmock

import (
	"context"

	domain "oalass-backend/internal/domain/period"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies period.Repository.
type Repo struct {
	CreateFn        func(ctx context.Context, p *domain.CalendarPeriod) error
	SaveFn          func(ctx context.Context, p *domain.CalendarPeriod) error
	GetByIDFn       func(ctx context.Context, id uint64) (*domain.CalendarPeriod, error)
	GetByYearTermFn func(ctx context.Context, year string, term domain.Term) (*domain.CalendarPeriod, error)
	GetCurrentFn    func(ctx context.Context) (*domain.CalendarPeriod, error)
	ListFn          func(ctx context.Context) ([]domain.CalendarPeriod, error)
	ClearCurrentFn  func(ctx context.Context) error
}

func (m *Repo) Create(ctx context.Context, p *domain.CalendarPeriod) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, p *domain.CalendarPeriod) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.CalendarPeriod, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByYearTerm(ctx context.Context, year string, term domain.Term) (*domain.CalendarPeriod, error) {
	if m.GetByYearTermFn != nil {
		return m.GetByYearTermFn(ctx, year, term)
	}
	return nil, context.Canceled
}

func (m *Repo) GetCurrent(ctx context.Context) (*domain.CalendarPeriod, error) {
	if m.GetCurrentFn != nil {
		return m.GetCurrentFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context) ([]domain.CalendarPeriod, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) ClearCurrent(ctx context.Context) error {
	if m.ClearCurrentFn != nil {
		return m.ClearCurrentFn(ctx)
	}
	return nil
}
