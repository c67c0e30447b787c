package period

import (
	"context"
	"errors"
	"fmt"

	"oalass-backend/internal/domain/period"
	"oalass-backend/internal/domain/uow"
	"oalass-backend/pkg/businessday"

	"gorm.io/gorm"
)

type Usecase struct {
	repo period.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(repo period.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: repo, uow: tx}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*period.CalendarPeriod, error) {
	if !period.ValidAcademicYear(in.AcademicYear) {
		return nil, period.ErrInvalidYear
	}
	if !in.Term.Valid() {
		return nil, fmt.Errorf("%w: %q", period.ErrInvalidTerm, in.Term)
	}
	start, end := businessday.Date(in.StartDate), businessday.Date(in.EndDate)
	if end.Before(start) {
		return nil, businessday.ErrInvalidRange
	}

	p := &period.CalendarPeriod{
		AcademicYear: in.AcademicYear,
		Term:         in.Term,
		StartDate:    start,
		EndDate:      end,
		IsCurrent:    in.MakeCurrent,
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Periods.GetByYearTerm(ctx, in.AcademicYear, in.Term); err == nil {
			return period.ErrDuplicate
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if in.MakeCurrent {
			if err := r.Periods.ClearCurrent(ctx); err != nil {
				return err
			}
		}
		return r.Periods.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (u *Usecase) List(ctx context.Context) ([]period.CalendarPeriod, error) {
	return u.repo.List(ctx)
}

func (u *Usecase) Current(ctx context.Context) (*period.CalendarPeriod, error) {
	p, err := u.repo.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, period.ErrNoCurrent
		}
		return nil, err
	}
	return p, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*period.CalendarPeriod, error) {
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, period.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// SetCurrent makes id the only current period.
func (u *Usecase) SetCurrent(ctx context.Context, id uint64) (*period.CalendarPeriod, error) {
	var out *period.CalendarPeriod
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Periods.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return period.ErrNotFound
			}
			return err
		}
		if err := r.Periods.ClearCurrent(ctx); err != nil {
			return err
		}
		p.IsCurrent = true
		if err := r.Periods.Save(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
