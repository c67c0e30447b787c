package leavemock

import (
	"context"
	"time"

	domain "oalass-backend/internal/domain/leave"
	"oalass-backend/internal/domain/period"
	"oalass-backend/internal/domain/workflow"
)

var (
	_ domain.LimitRepository       = (*LimitRepo)(nil)
	_ domain.BalanceRepository     = (*BalanceRepo)(nil)
	_ domain.ApplicationRepository = (*ApplicationRepo)(nil)
)

// LimitRepo is a function-backed mock that satisfies leave.LimitRepository.
type LimitRepo struct {
	GetFn     func(ctx context.Context, statusID uint64, term period.Term, leaveTypeID uint64) (*domain.Limit, error)
	GetByIDFn func(ctx context.Context, id uint64) (*domain.Limit, error)
	ListFn    func(ctx context.Context) ([]domain.Limit, error)
	UpsertFn  func(ctx context.Context, l *domain.Limit) error
	DeleteFn  func(ctx context.Context, id uint64) error
}

func (m *LimitRepo) Get(ctx context.Context, statusID uint64, term period.Term, leaveTypeID uint64) (*domain.Limit, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, statusID, term, leaveTypeID)
	}
	return nil, context.Canceled
}

func (m *LimitRepo) GetByID(ctx context.Context, id uint64) (*domain.Limit, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *LimitRepo) List(ctx context.Context) ([]domain.Limit, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}

func (m *LimitRepo) Upsert(ctx context.Context, l *domain.Limit) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, l)
	}
	return nil
}

func (m *LimitRepo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// BalanceRepo is a function-backed mock that satisfies leave.BalanceRepository.
type BalanceRepo struct {
	GetFn              func(ctx context.Context, userID, periodID, leaveTypeID uint64) (*domain.Balance, error)
	GetForUpdateFn     func(ctx context.Context, userID, periodID, leaveTypeID uint64) (*domain.Balance, error)
	ListByUserPeriodFn func(ctx context.Context, userID, periodID uint64) ([]domain.Balance, error)
	CreateFn           func(ctx context.Context, b *domain.Balance) error
	SaveFn             func(ctx context.Context, b *domain.Balance) error
}

func (m *BalanceRepo) Get(ctx context.Context, userID, periodID, leaveTypeID uint64) (*domain.Balance, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID, periodID, leaveTypeID)
	}
	return nil, context.Canceled
}

func (m *BalanceRepo) GetForUpdate(ctx context.Context, userID, periodID, leaveTypeID uint64) (*domain.Balance, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx, userID, periodID, leaveTypeID)
	}
	if m.GetFn != nil {
		return m.GetFn(ctx, userID, periodID, leaveTypeID)
	}
	return nil, context.Canceled
}

func (m *BalanceRepo) ListByUserPeriod(ctx context.Context, userID, periodID uint64) ([]domain.Balance, error) {
	if m.ListByUserPeriodFn != nil {
		return m.ListByUserPeriodFn(ctx, userID, periodID)
	}
	return nil, context.Canceled
}

func (m *BalanceRepo) Create(ctx context.Context, b *domain.Balance) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *BalanceRepo) Save(ctx context.Context, b *domain.Balance) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, b)
	}
	return nil
}

// ApplicationRepo is a function-backed mock that satisfies leave.ApplicationRepository.
type ApplicationRepo struct {
	CreateFn                      func(ctx context.Context, a *domain.Application) error
	SaveFn                        func(ctx context.Context, a *domain.Application) error
	GetByApplicationIDFn          func(ctx context.Context, applicationID string) (*domain.Application, error)
	GetByApplicationIDForUpdateFn func(ctx context.Context, applicationID string) (*domain.Application, error)
	ListFn                        func(ctx context.Context, f domain.Filter) ([]domain.Application, int64, error)
	FindBlockingFn                func(ctx context.Context, userID uint64, start, end time.Time) ([]domain.Application, error)
	SumApprovedDaysFn             func(ctx context.Context, userID, periodID, leaveTypeID uint64) (int, error)
	CountByStatusFn               func(ctx context.Context, f domain.Filter) (map[workflow.Status]int64, error)
}

func (m *ApplicationRepo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *ApplicationRepo) Save(ctx context.Context, a *domain.Application) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *ApplicationRepo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *ApplicationRepo) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDForUpdateFn != nil {
		return m.GetByApplicationIDForUpdateFn(ctx, applicationID)
	}
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *ApplicationRepo) List(ctx context.Context, f domain.Filter) ([]domain.Application, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, context.Canceled
}

// FindBlocking defaults to "no conflicts".
func (m *ApplicationRepo) FindBlocking(ctx context.Context, userID uint64, start, end time.Time) ([]domain.Application, error) {
	if m.FindBlockingFn != nil {
		return m.FindBlockingFn(ctx, userID, start, end)
	}
	return nil, nil
}

func (m *ApplicationRepo) SumApprovedDays(ctx context.Context, userID, periodID, leaveTypeID uint64) (int, error) {
	if m.SumApprovedDaysFn != nil {
		return m.SumApprovedDaysFn(ctx, userID, periodID, leaveTypeID)
	}
	return 0, context.Canceled
}

func (m *ApplicationRepo) CountByStatus(ctx context.Context, f domain.Filter) (map[workflow.Status]int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, f)
	}
	return nil, context.Canceled
}
