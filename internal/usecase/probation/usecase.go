package probation

import (
	"context"
	"errors"
	"fmt"
	netmail "net/mail"
	"time"

	domainCatalog "oalass-backend/internal/domain/catalog"
	domainProbation "oalass-backend/internal/domain/probation"
	domainUser "oalass-backend/internal/domain/user"
	"oalass-backend/internal/domain/uow"
	"oalass-backend/internal/notify"
	"oalass-backend/pkg/businessday"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultDueDays is the look-ahead used when a caller passes a non-positive window.
const DefaultDueDays = 30

type Usecase struct {
	probations domainProbation.Repository
	users      domainUser.Repository
	uow        uow.UnitOfWork
	notifier   notify.Notifier
	log        *zap.Logger
	now        func() time.Time
}

func NewUsecase(probations domainProbation.Repository, users domainUser.Repository, tx uow.UnitOfWork, n notify.Notifier, log *zap.Logger) *Usecase {
	return &Usecase{probations: probations, users: users, uow: tx, notifier: n, log: log, now: time.Now}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// Start opens a probation and moves the employee to the probationary status.
func (u *Usecase) Start(ctx context.Context, in StartInput) (*ProbationDTO, error) {
	start, end := businessday.Date(in.StartDate), businessday.Date(in.EndDate)
	if !end.After(start) {
		return nil, domainProbation.ErrInvalidRange
	}
	var (
		out *domainProbation.Probation
		emp *domainUser.User
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		usr, err := r.Users.GetByUserIDForUpdate(ctx, in.UserID)
		if err != nil {
			return mapUserErr(err)
		}
		if _, err := r.Probations.GetActiveByUserID(ctx, usr.ID); err == nil {
			return domainProbation.ErrAlreadyActive
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("checking active probation: %w", err)
		}
		st, err := r.Catalog.GetStatusByCode(ctx, domainCatalog.StatusProbationary)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainCatalog.ErrStatusNotFound
			}
			return err
		}
		usr.StatusID = st.ID
		if err := r.Users.Save(ctx, usr); err != nil {
			return err
		}
		p := &domainProbation.Probation{
			UserID:    usr.ID,
			StartDate: start,
			EndDate:   end,
			Status:    domainProbation.StatusOngoing,
			Remarks:   in.Remarks,
		}
		if err := r.Probations.Create(ctx, p); err != nil {
			return err
		}
		out, emp = p, usr
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("probation started", zap.Uint64("probation_id", out.ID), zap.String("user_id", emp.UserID))
	return u.dto(out, emp), nil
}

func (u *Usecase) Extend(ctx context.Context, id uint64, in ExtendInput) (*ProbationDTO, error) {
	return u.mutate(ctx, id, func(_ uow.Repos, p *domainProbation.Probation, _ *domainUser.User) error {
		return p.Extend(in.EndDate, in.Remarks)
	})
}

// Complete closes the probation and promotes the employee to regular status.
func (u *Usecase) Complete(ctx context.Context, id uint64, remarks string) (*ProbationDTO, error) {
	return u.mutate(ctx, id, func(r uow.Repos, p *domainProbation.Probation, usr *domainUser.User) error {
		if err := p.Close(domainProbation.StatusCompleted, remarks, u.now()); err != nil {
			return err
		}
		st, err := r.Catalog.GetStatusByCode(ctx, domainCatalog.StatusRegular)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainCatalog.ErrStatusNotFound
			}
			return err
		}
		usr.StatusID = st.ID
		return r.Users.Save(ctx, usr)
	})
}

// Terminate closes the probation and deactivates the employee's account.
func (u *Usecase) Terminate(ctx context.Context, id uint64, remarks string) (*ProbationDTO, error) {
	return u.mutate(ctx, id, func(r uow.Repos, p *domainProbation.Probation, usr *domainUser.User) error {
		if err := p.Close(domainProbation.StatusTerminated, remarks, u.now()); err != nil {
			return err
		}
		usr.IsActive = false
		return r.Users.Save(ctx, usr)
	})
}

func (u *Usecase) mutate(ctx context.Context, id uint64, fn func(r uow.Repos, p *domainProbation.Probation, usr *domainUser.User) error) (*ProbationDTO, error) {
	var (
		out *domainProbation.Probation
		emp *domainUser.User
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Probations.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainProbation.ErrNotFound
			}
			return err
		}
		usr, err := r.Users.GetByID(ctx, p.UserID)
		if err != nil {
			return fmt.Errorf("loading employee: %w", mapUserErr(err))
		}
		if err := fn(r, p, usr); err != nil {
			return err
		}
		if err := r.Probations.Save(ctx, p); err != nil {
			return err
		}
		out, emp = p, usr
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("probation updated", zap.Uint64("probation_id", out.ID), zap.String("status", string(out.Status)))
	return u.dto(out, emp), nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*ProbationDTO, error) {
	p, err := u.probations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainProbation.ErrNotFound
		}
		return nil, err
	}
	emp, err := u.users.GetByID(ctx, p.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return u.dto(p, emp), nil
}

// List returns probations, all of them when status is empty.
func (u *Usecase) List(ctx context.Context, status domainProbation.Status) ([]ProbationDTO, error) {
	if status != "" && !status.Valid() {
		return nil, domainProbation.ErrInvalidStatus
	}
	items, err := u.probations.List(ctx, status)
	if err != nil {
		return nil, err
	}
	return u.dtos(ctx, items)
}

// Due lists active probations ending within the next days calendar days, overdue ones included.
func (u *Usecase) Due(ctx context.Context, days int) ([]ProbationDTO, error) {
	if days <= 0 {
		days = DefaultDueDays
	}
	items, err := u.probations.ListDue(ctx, businessday.Date(u.now()).AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}
	return u.dtos(ctx, items)
}

// NotifyDue mails every active admin one reminder per due probation and returns how many were due.
func (u *Usecase) NotifyDue(ctx context.Context, days int) (int, error) {
	due, err := u.Due(ctx, days)
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}
	admins, err := u.users.ListActiveByRole(ctx, domainUser.RoleAdmin, 0)
	if err != nil {
		return 0, fmt.Errorf("listing admins: %w", err)
	}
	to := make([]netmail.Address, 0, len(admins))
	for i := range admins {
		to = append(to, notify.Address(admins[i].FullName(), admins[i].Email))
	}
	for i := range due {
		d := &due[i]
		u.notifier.Notify(ctx, notify.Notification{
			Template: notify.TmplProbationDue,
			To:       to,
			Data: notify.ProbationData{
				ProbationID: d.ID,
				Name:        d.Employee.Name,
				EndDate:     d.EndDate.Format("2006-01-02"),
				DaysLeft:    d.DaysLeft,
			},
		})
	}
	u.log.Info("probation reminders queued", zap.Int("due", len(due)), zap.Int("recipients", len(to)))
	return len(due), nil
}

func (u *Usecase) dtos(ctx context.Context, items []domainProbation.Probation) ([]ProbationDTO, error) {
	out := make([]ProbationDTO, 0, len(items))
	seen := map[uint64]*domainUser.User{}
	for i := range items {
		emp, ok := seen[items[i].UserID]
		if !ok {
			var err error
			emp, err = u.users.GetByID(ctx, items[i].UserID)
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, err
				}
				emp = nil
			}
			seen[items[i].UserID] = emp
		}
		out = append(out, *u.dto(&items[i], emp))
	}
	return out, nil
}

func (u *Usecase) dto(p *domainProbation.Probation, emp *domainUser.User) *ProbationDTO {
	d := &ProbationDTO{Probation: *p, DaysLeft: p.DaysLeft(u.now())}
	if emp != nil {
		d.Employee = Person{UserID: emp.UserID, Name: emp.FullName(), Email: emp.Email}
	}
	return d
}

func mapUserErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainUser.ErrNotFound
	}
	return err
}
