package leave

import (
	"context"
	"time"

	"oalass-backend/internal/domain/period"
	"oalass-backend/internal/domain/workflow"
)

type LimitRepository interface {
	Get(ctx context.Context, statusID uint64, term period.Term, leaveTypeID uint64) (*Limit, error)
	GetByID(ctx context.Context, id uint64) (*Limit, error)
	List(ctx context.Context) ([]Limit, error)
	// Upsert inserts or updates the allowance for the limit's triple.
	Upsert(ctx context.Context, l *Limit) error
	Delete(ctx context.Context, id uint64) error
}

type BalanceRepository interface {
	Get(ctx context.Context, userID, periodID, leaveTypeID uint64) (*Balance, error)
	// Lock the balance row for the rest of the transaction.
	GetForUpdate(ctx context.Context, userID, periodID, leaveTypeID uint64) (*Balance, error)
	ListByUserPeriod(ctx context.Context, userID, periodID uint64) ([]Balance, error)
	Create(ctx context.Context, b *Balance) error
	Save(ctx context.Context, b *Balance) error
}

type Filter struct {
	UserID       uint64
	DepartmentID uint64
	PeriodID     uint64
	Status       workflow.Status
	Limit        int
	Offset       int
}

type ApplicationRepository interface {
	Create(ctx context.Context, a *Application) error
	Save(ctx context.Context, a *Application) error
	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)
	GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*Application, error)
	List(ctx context.Context, f Filter) ([]Application, int64, error)
	// Applications of userID in a blocking status whose range touches [start, end].
	FindBlocking(ctx context.Context, userID uint64, start, end time.Time) ([]Application, error)
	SumApprovedDays(ctx context.Context, userID, periodID, leaveTypeID uint64) (int, error)
	CountByStatus(ctx context.Context, f Filter) (map[workflow.Status]int64, error)
}
