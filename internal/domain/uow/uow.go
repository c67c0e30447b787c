package uow

import (
	"context"

	"oalass-backend/internal/domain/catalog"
	"oalass-backend/internal/domain/leave"
	"oalass-backend/internal/domain/period"
	"oalass-backend/internal/domain/probation"
	"oalass-backend/internal/domain/travel"
	"oalass-backend/internal/domain/user"
)

// Repos groups every repository bound to the same transaction.
type Repos struct {
	Users        user.Repository
	Catalog      catalog.Repository
	Periods      period.Repository
	Limits       leave.LimitRepository
	Balances     leave.BalanceRepository
	Applications leave.ApplicationRepository
	Travels      travel.Repository
	Probations   probation.Repository
}

type UnitOfWork interface {
	// WithinTx commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
