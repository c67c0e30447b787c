package leave

import (
	"context"
	"errors"

	domainLeave "oalass-backend/internal/domain/leave"
	domainPeriod "oalass-backend/internal/domain/period"
	domainUser "oalass-backend/internal/domain/user"
	"oalass-backend/internal/domain/uow"

	"gorm.io/gorm"
)

// ensureBalance returns the balance row for (usr, p, leaveTypeID), deriving it
// from the matching leave limit when it does not exist yet.
func ensureBalance(ctx context.Context, r uow.Repos, usr *domainUser.User, p *domainPeriod.CalendarPeriod, leaveTypeID uint64, lock bool) (*domainLeave.Balance, error) {
	get := r.Balances.Get
	if lock {
		get = r.Balances.GetForUpdate
	}
	b, err := get(ctx, usr.ID, p.ID, leaveTypeID)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	l, err := r.Limits.Get(ctx, usr.StatusID, p.Term, leaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLeave.ErrNoLeaveLimit
		}
		return nil, err
	}
	b = domainLeave.NewBalance(usr.ID, p.ID, l)
	if err := r.Balances.Create(ctx, b); err != nil {
		// lost a race with a concurrent derive; use the winner's row
		if existing, gerr := get(ctx, usr.ID, p.ID, leaveTypeID); gerr == nil {
			return existing, nil
		}
		return nil, err
	}
	return b, nil
}

// Balances lists the balances of targetUserID ("" = actor) for a period (0 = current).
// Leave types without a configured limit are omitted.
func (u *Usecase) Balances(ctx context.Context, actor *domainUser.User, targetUserID string, periodID uint64) ([]BalanceDTO, error) {
	if targetUserID != "" && targetUserID != actor.UserID && actor.Role != domainUser.RoleAdmin {
		return nil, domainUser.ErrForbidden
	}
	out := []BalanceDTO{}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		usr := actor
		if targetUserID != "" && targetUserID != actor.UserID {
			var err error
			if usr, err = resolveUser(ctx, r, targetUserID); err != nil {
				return err
			}
		}
		p, err := resolvePeriod(ctx, r, periodID)
		if err != nil {
			return err
		}
		types, err := r.Catalog.ListLeaveTypes(ctx)
		if err != nil {
			return err
		}
		for _, lt := range types {
			b, err := ensureBalance(ctx, r, usr, p, lt.ID, false)
			if errors.Is(err, domainLeave.ErrNoLeaveLimit) {
				continue
			}
			if err != nil {
				return err
			}
			out = append(out, BalanceDTO{Balance: *b, LeaveTypeCode: lt.Code, LeaveTypeName: lt.Name})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Recompute rebuilds a user's balances for a period: allowance from the
// current limits, usage from approved applications.
func (u *Usecase) Recompute(ctx context.Context, targetUserID string, periodID uint64) ([]BalanceDTO, error) {
	out := []BalanceDTO{}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		usr, err := r.Users.GetByUserIDForUpdate(ctx, targetUserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainUser.ErrNotFound
			}
			return err
		}
		p, err := resolvePeriod(ctx, r, periodID)
		if err != nil {
			return err
		}
		types, err := r.Catalog.ListLeaveTypes(ctx)
		if err != nil {
			return err
		}
		for _, lt := range types {
			l, err := r.Limits.Get(ctx, usr.StatusID, p.Term, lt.ID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			used, err := r.Applications.SumApprovedDays(ctx, usr.ID, p.ID, lt.ID)
			if err != nil {
				return err
			}

			b, err := r.Balances.GetForUpdate(ctx, usr.ID, p.ID, lt.ID)
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				b = domainLeave.NewBalance(usr.ID, p.ID, l)
				b.Reset(l.AllowedDays, used)
				err = r.Balances.Create(ctx, b)
			case err == nil:
				b.Reset(l.AllowedDays, used)
				err = r.Balances.Save(ctx, b)
			}
			if err != nil {
				return err
			}
			out = append(out, BalanceDTO{Balance: *b, LeaveTypeCode: lt.Code, LeaveTypeName: lt.Name})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
