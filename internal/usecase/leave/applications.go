package leave

import (
	"context"
	"errors"
	"fmt"

	domainLeave "oalass-backend/internal/domain/leave"
	domainPeriod "oalass-backend/internal/domain/period"
	domainUser "oalass-backend/internal/domain/user"
	"oalass-backend/internal/domain/uow"
	"oalass-backend/internal/domain/workflow"
	"oalass-backend/internal/usecase/access"
	"oalass-backend/pkg/businessday"
	"oalass-backend/pkg/id"

	"gorm.io/gorm"
)

// Submit files a leave application for actor.
func (u *Usecase) Submit(ctx context.Context, actor *domainUser.User, in SubmitInput) (*ApplicationDTO, error) {
	if err := access.Apply(actor); err != nil {
		return nil, err
	}
	start, end := businessday.Date(in.StartDate), businessday.Date(in.EndDate)
	days, err := businessday.Count(start, end)
	if err != nil {
		return nil, err
	}
	if days == 0 {
		return nil, domainLeave.ErrNoBusinessDays
	}

	var (
		app      *domainLeave.Application
		typeName string
	)
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := resolvePeriod(ctx, r, in.PeriodID)
		if err != nil {
			return err
		}
		if !p.Covers(start, end) {
			return domainPeriod.ErrOutsidePeriod
		}
		lt, err := resolveLeaveType(ctx, r, in.LeaveTypeID)
		if err != nil {
			return err
		}
		typeName = lt.Name

		blocking, err := r.Applications.FindBlocking(ctx, actor.ID, start, end)
		if err != nil {
			return err
		}
		if len(blocking) > 0 {
			return domainLeave.ErrOverlap
		}

		b, err := ensureBalance(ctx, r, actor, p, lt.ID, true)
		if err != nil {
			return err
		}
		if !b.Covers(days) {
			return domainLeave.ErrInsufficientBalance
		}

		app = &domainLeave.Application{
			ApplicationID: id.NewID32(),
			UserID:        actor.ID,
			DepartmentID:  actor.DepartmentID,
			LeaveTypeID:   lt.ID,
			PeriodID:      p.ID,
			StartDate:     start,
			EndDate:       end,
			NumberOfDays:  days,
			Reason:        in.Reason,
			Track:         workflow.Track{Status: workflow.StatusPending},
		}
		return r.Applications.Create(ctx, app)
	})
	if err != nil {
		return nil, err
	}

	u.notifySubmitted(ctx, actor, app, typeName)
	return &ApplicationDTO{Application: app, Applicant: person(actor)}, nil
}

// Cancel withdraws a pending application; only its owner may do so.
func (u *Usecase) Cancel(ctx context.Context, actor *domainUser.User, applicationID string) (*ApplicationDTO, error) {
	var (
		app      *domainLeave.Application
		typeName string
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applications.GetByApplicationIDForUpdate(ctx, applicationID)
		if err != nil {
			return mapApplicationErr(err)
		}
		if a.UserID != actor.ID {
			return domainUser.ErrForbidden
		}
		if err := a.Cancel(); err != nil {
			return err
		}
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		if lt, err := r.Catalog.GetLeaveType(ctx, a.LeaveTypeID); err == nil {
			typeName = lt.Name
		}
		app = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.notifyCancelled(ctx, actor, app, typeName)
	return &ApplicationDTO{Application: app, Applicant: person(actor)}, nil
}

// Review records a dean or finance decision. A finance approval debits the
// applicant's balance in the same transaction as the status change.
func (u *Usecase) Review(ctx context.Context, actor *domainUser.User, applicationID string, in ReviewInput) (*ApplicationDTO, error) {
	stage, err := access.StageFor(actor.Role, in.Stage)
	if err != nil {
		return nil, err
	}

	var (
		app       *domainLeave.Application
		applicant *domainUser.User
		typeName  string
	)
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applications.GetByApplicationIDForUpdate(ctx, applicationID)
		if err != nil {
			return mapApplicationErr(err)
		}
		if err := access.Review(actor, stage, access.Request{OwnerID: a.UserID, DepartmentID: a.DepartmentID}); err != nil {
			return err
		}
		if err := a.Apply(stage, in.Decision, actor.ID, in.Remarks, u.now()); err != nil {
			return err
		}

		owner, err := r.Users.GetByID(ctx, a.UserID)
		if err != nil {
			return fmt.Errorf("loading applicant: %w", err)
		}
		if lt, err := r.Catalog.GetLeaveType(ctx, a.LeaveTypeID); err == nil {
			typeName = lt.Name
		}

		if a.Status == workflow.StatusApproved {
			p, err := resolvePeriod(ctx, r, a.PeriodID)
			if err != nil {
				return err
			}
			b, err := ensureBalance(ctx, r, owner, p, a.LeaveTypeID, true)
			if err != nil {
				return err
			}
			if err := b.Debit(a.NumberOfDays); err != nil {
				return err
			}
			if err := r.Balances.Save(ctx, b); err != nil {
				return err
			}
		}

		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		app, applicant = a, owner
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.notifyReviewed(ctx, actor, applicant, app, typeName, stage)
	return &ApplicationDTO{Application: app, Applicant: person(applicant)}, nil
}

func (u *Usecase) Get(ctx context.Context, actor *domainUser.User, applicationID string) (*ApplicationDTO, error) {
	a, err := u.repos.Applications.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, mapApplicationErr(err)
	}
	if err := access.View(actor, access.Request{OwnerID: a.UserID, DepartmentID: a.DepartmentID}); err != nil {
		return nil, err
	}
	dto := ApplicationDTO{Application: a}
	if owner, err := u.repos.Users.GetByID(ctx, a.UserID); err == nil {
		dto.Applicant = person(owner)
	}
	return &dto, nil
}

func (u *Usecase) ListMine(ctx context.Context, actor *domainUser.User, in ListInput) (*Page, error) {
	return u.list(ctx, domainLeave.Filter{
		UserID: actor.ID, PeriodID: in.PeriodID, Status: in.Status,
		Limit: in.Limit, Offset: in.Offset,
	}, in)
}

// Queue lists what actor has to review: deans see their department's pending
// applications, finance sees dean-approved ones.
func (u *Usecase) Queue(ctx context.Context, actor *domainUser.User, in ListInput) (*Page, error) {
	q, err := access.QueueFor(actor, in.Stage)
	if err != nil {
		return nil, err
	}
	return u.list(ctx, domainLeave.Filter{
		DepartmentID: q.DepartmentID, PeriodID: in.PeriodID, Status: q.Status,
		Limit: in.Limit, Offset: in.Offset,
	}, in)
}

// ListAll is the admin listing with free filters.
func (u *Usecase) ListAll(ctx context.Context, in ListInput) (*Page, error) {
	f := domainLeave.Filter{
		DepartmentID: in.DepartmentID, PeriodID: in.PeriodID, Status: in.Status,
		Limit: in.Limit, Offset: in.Offset,
	}
	if in.UserID != "" {
		usr, err := resolveUser(ctx, u.repos, in.UserID)
		if err != nil {
			return nil, err
		}
		f.UserID = usr.ID
	}
	return u.list(ctx, f, in)
}

func (u *Usecase) list(ctx context.Context, f domainLeave.Filter, in ListInput) (*Page, error) {
	items, total, err := u.repos.Applications.List(ctx, f)
	if err != nil {
		return nil, err
	}
	page := &Page{Items: make([]ApplicationDTO, 0, len(items)), Total: total, Limit: in.Limit, Offset: in.Offset}
	people := map[uint64]Person{}
	for i := range items {
		a := &items[i]
		p, ok := people[a.UserID]
		if !ok {
			owner, err := u.repos.Users.GetByID(ctx, a.UserID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			p = person(owner)
			people[a.UserID] = p
		}
		page.Items = append(page.Items, ApplicationDTO{Application: a, Applicant: p})
	}
	return page, nil
}
