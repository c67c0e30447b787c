package period

import "context"

type Repository interface {
	Create(ctx context.Context, p *CalendarPeriod) error
	Save(ctx context.Context, p *CalendarPeriod) error
	GetByID(ctx context.Context, id uint64) (*CalendarPeriod, error)
	GetByYearTerm(ctx context.Context, year string, term Term) (*CalendarPeriod, error)
	GetCurrent(ctx context.Context) (*CalendarPeriod, error)
	List(ctx context.Context) ([]CalendarPeriod, error)
	// ClearCurrent unsets the current flag on every period.
	ClearCurrent(ctx context.Context) error
}
