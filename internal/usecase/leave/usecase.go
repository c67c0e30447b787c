// Package leave implements leave limits, balances and the leave application workflow.
package leave

import (
	"context"
	"errors"
	"time"

	domainCatalog "oalass-backend/internal/domain/catalog"
	domainLeave "oalass-backend/internal/domain/leave"
	domainPeriod "oalass-backend/internal/domain/period"
	domainUser "oalass-backend/internal/domain/user"
	"oalass-backend/internal/domain/uow"
	"oalass-backend/internal/notify"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Usecase struct {
	repos    uow.Repos
	uow      uow.UnitOfWork
	notifier notify.Notifier
	log      *zap.Logger
	now      func() time.Time
}

// NewUsecase: repos serve reads outside a transaction, tx runs the write flows.
func NewUsecase(repos uow.Repos, tx uow.UnitOfWork, n notify.Notifier, log *zap.Logger) *Usecase {
	return &Usecase{repos: repos, uow: tx, notifier: n, log: log, now: time.Now}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func resolvePeriod(ctx context.Context, r uow.Repos, id uint64) (*domainPeriod.CalendarPeriod, error) {
	if id == 0 {
		p, err := r.Periods.GetCurrent(ctx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainPeriod.ErrNoCurrent
		}
		return p, err
	}
	p, err := r.Periods.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainPeriod.ErrNotFound
	}
	return p, err
}

func resolveUser(ctx context.Context, r uow.Repos, userID string) (*domainUser.User, error) {
	usr, err := r.Users.GetByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainUser.ErrNotFound
	}
	return usr, err
}

func resolveLeaveType(ctx context.Context, r uow.Repos, id uint64) (*domainCatalog.LeaveType, error) {
	lt, err := r.Catalog.GetLeaveType(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainCatalog.ErrLeaveTypeNotFound
	}
	return lt, err
}

func mapApplicationErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainLeave.ErrNotFound
	}
	return err
}

func person(u *domainUser.User) Person {
	if u == nil {
		return Person{}
	}
	return Person{UserID: u.UserID, Name: u.FullName(), Email: u.Email}
}
