package leave

import (
	"context"
	"errors"
	"fmt"

	domainCatalog "oalass-backend/internal/domain/catalog"
	domainLeave "oalass-backend/internal/domain/leave"

	"gorm.io/gorm"
)

// UpsertLimit creates or replaces the allowance for (status, term, leave type).
func (u *Usecase) UpsertLimit(ctx context.Context, in LimitInput) (*domainLeave.Limit, error) {
	if in.AllowedDays <= 0 {
		return nil, domainLeave.ErrInvalidLimit
	}
	if !in.Term.Valid() {
		return nil, fmt.Errorf("unknown term %q", in.Term)
	}
	if _, err := u.repos.Catalog.GetStatus(ctx, in.StatusID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainCatalog.ErrStatusNotFound
		}
		return nil, err
	}
	if _, err := resolveLeaveType(ctx, u.repos, in.LeaveTypeID); err != nil {
		return nil, err
	}

	l := &domainLeave.Limit{
		StatusID:    in.StatusID,
		Term:        in.Term,
		LeaveTypeID: in.LeaveTypeID,
		AllowedDays: in.AllowedDays,
	}
	if err := u.repos.Limits.Upsert(ctx, l); err != nil {
		return nil, err
	}
	// re-read: on conflict the returned id is driver dependent
	return u.repos.Limits.Get(ctx, in.StatusID, in.Term, in.LeaveTypeID)
}

func (u *Usecase) Limits(ctx context.Context) ([]domainLeave.Limit, error) {
	return u.repos.Limits.List(ctx)
}

func (u *Usecase) DeleteLimit(ctx context.Context, id uint64) error {
	if err := u.repos.Limits.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainLeave.ErrLimitNotFound
		}
		return err
	}
	return nil
}
