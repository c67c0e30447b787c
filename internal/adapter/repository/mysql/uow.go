package mysql

import (
	"context"

	"oalass-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

// ReposFor binds every repository to db (a transaction or the root handle).
func ReposFor(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Users:        &UserRepository{db: db},
		Catalog:      &CatalogRepository{db: db},
		Periods:      &PeriodRepository{db: db},
		Limits:       &LimitRepository{db: db},
		Balances:     &BalanceRepository{db: db},
		Applications: &ApplicationRepository{db: db},
		Travels:      &TravelRepository{db: db},
		Probations:   &ProbationRepository{db: db},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ReposFor(tx))
	})
}
