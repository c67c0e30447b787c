package probation

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, p *Probation) error
	Save(ctx context.Context, p *Probation) error
	GetByID(ctx context.Context, id uint64) (*Probation, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Probation, error)
	GetActiveByUserID(ctx context.Context, userID uint64) (*Probation, error)
	// List filters by status when non-empty.
	List(ctx context.Context, status Status) ([]Probation, error)
	// Active probations ending on or before the given date.
	ListDue(ctx context.Context, before time.Time) ([]Probation, error)
	CountActive(ctx context.Context) (int64, error)
}
