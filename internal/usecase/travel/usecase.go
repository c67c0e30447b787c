// Package travel implements the travel order workflow. Orders follow the same
// two-stage review as leave applications but carry no balance.
package travel

import (
	"context"
	"errors"
	"fmt"
	"math"
	netmail "net/mail"
	"strings"
	"time"

	domainTravel "oalass-backend/internal/domain/travel"
	domainUser "oalass-backend/internal/domain/user"
	"oalass-backend/internal/domain/uow"
	"oalass-backend/internal/domain/workflow"
	"oalass-backend/internal/notify"
	"oalass-backend/internal/usecase/access"
	"oalass-backend/pkg/businessday"
	"oalass-backend/pkg/id"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const kind = "travel order"

type Usecase struct {
	orders   domainTravel.Repository
	users    domainUser.Repository
	uow      uow.UnitOfWork
	notifier notify.Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewUsecase(orders domainTravel.Repository, users domainUser.Repository, tx uow.UnitOfWork, n notify.Notifier, log *zap.Logger) *Usecase {
	return &Usecase{orders: orders, users: users, uow: tx, notifier: n, log: log, now: time.Now}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func (u *Usecase) Submit(ctx context.Context, actor *domainUser.User, in SubmitInput) (*OrderDTO, error) {
	if err := access.Apply(actor); err != nil {
		return nil, err
	}
	start, end := businessday.Date(in.StartDate), businessday.Date(in.EndDate)
	if end.Before(start) {
		return nil, businessday.ErrInvalidRange
	}
	if in.CashAdvance < 0 || math.IsNaN(in.CashAdvance) || math.IsInf(in.CashAdvance, 0) {
		return nil, domainTravel.ErrInvalidAmount
	}

	o := &domainTravel.Order{
		OrderID:      id.NewID32(),
		UserID:       actor.ID,
		DepartmentID: actor.DepartmentID,
		Destination:  strings.TrimSpace(in.Destination),
		Purpose:      strings.TrimSpace(in.Purpose),
		StartDate:    start,
		EndDate:      end,
		CashAdvance:  math.Round(in.CashAdvance*100) / 100,
		Track:        workflow.Track{Status: workflow.StatusPending},
	}
	if err := u.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	u.notifier.Notify(ctx, notify.Notification{
		Template: notify.TmplTravelSubmitted,
		To:       u.recipients(ctx, domainUser.RoleDean, o.DepartmentID),
		Data:     requestData(actor, o),
	})
	return &OrderDTO{Order: o, Requester: person(actor)}, nil
}

func (u *Usecase) Cancel(ctx context.Context, actor *domainUser.User, orderID string) (*OrderDTO, error) {
	var out *domainTravel.Order
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		o, err := r.Travels.GetByOrderIDForUpdate(ctx, orderID)
		if err != nil {
			return mapNotFound(err)
		}
		if o.UserID != actor.ID {
			return domainUser.ErrForbidden
		}
		if err := o.Cancel(); err != nil {
			return err
		}
		if err := r.Travels.Save(ctx, o); err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.notifier.Notify(ctx, notify.Notification{
		Template: notify.TmplTravelReviewed,
		To:       u.recipients(ctx, domainUser.RoleDean, out.DepartmentID),
		Data:     requestData(actor, out),
	})
	return &OrderDTO{Order: out, Requester: person(actor)}, nil
}

func (u *Usecase) Review(ctx context.Context, actor *domainUser.User, orderID string, in ReviewInput) (*OrderDTO, error) {
	stage, err := access.StageFor(actor.Role, in.Stage)
	if err != nil {
		return nil, err
	}
	var (
		out       *domainTravel.Order
		requester *domainUser.User
	)
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		o, err := r.Travels.GetByOrderIDForUpdate(ctx, orderID)
		if err != nil {
			return mapNotFound(err)
		}
		if err := access.Review(actor, stage, access.Request{OwnerID: o.UserID, DepartmentID: o.DepartmentID}); err != nil {
			return err
		}
		if err := o.Apply(stage, in.Decision, actor.ID, in.Remarks, u.now()); err != nil {
			return err
		}
		owner, err := r.Users.GetByID(ctx, o.UserID)
		if err != nil {
			return fmt.Errorf("loading requester: %w", err)
		}
		if err := r.Travels.Save(ctx, o); err != nil {
			return err
		}
		out, requester = o, owner
		return nil
	})
	if err != nil {
		return nil, err
	}

	data := requestData(requester, out)
	data.Stage = string(stage)
	data.ReviewerName = actor.FullName()
	data.Remarks = in.Remarks
	u.notifier.Notify(ctx, notify.Notification{
		Template: notify.TmplTravelReviewed,
		To:       []netmail.Address{notify.Address(requester.FullName(), requester.Email)},
		Data:     data,
	})
	if out.Status == workflow.StatusDeanApproved {
		u.notifier.Notify(ctx, notify.Notification{
			Template: notify.TmplTravelSubmitted,
			To:       u.recipients(ctx, domainUser.RoleFinance, 0),
			Data:     data,
		})
	}
	return &OrderDTO{Order: out, Requester: person(requester)}, nil
}

func (u *Usecase) Get(ctx context.Context, actor *domainUser.User, orderID string) (*OrderDTO, error) {
	o, err := u.orders.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if err := access.View(actor, access.Request{OwnerID: o.UserID, DepartmentID: o.DepartmentID}); err != nil {
		return nil, err
	}
	dto := OrderDTO{Order: o}
	if owner, err := u.users.GetByID(ctx, o.UserID); err == nil {
		dto.Requester = person(owner)
	}
	return &dto, nil
}

func (u *Usecase) ListMine(ctx context.Context, actor *domainUser.User, in ListInput) (*Page, error) {
	return u.list(ctx, domainTravel.Filter{UserID: actor.ID, Status: in.Status, Limit: in.Limit, Offset: in.Offset}, in)
}

func (u *Usecase) Queue(ctx context.Context, actor *domainUser.User, in ListInput) (*Page, error) {
	q, err := access.QueueFor(actor, in.Stage)
	if err != nil {
		return nil, err
	}
	return u.list(ctx, domainTravel.Filter{DepartmentID: q.DepartmentID, Status: q.Status, Limit: in.Limit, Offset: in.Offset}, in)
}

func (u *Usecase) ListAll(ctx context.Context, in ListInput) (*Page, error) {
	f := domainTravel.Filter{DepartmentID: in.DepartmentID, Status: in.Status, Limit: in.Limit, Offset: in.Offset}
	if in.UserID != "" {
		usr, err := u.users.GetByUserID(ctx, in.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domainUser.ErrNotFound
			}
			return nil, err
		}
		f.UserID = usr.ID
	}
	return u.list(ctx, f, in)
}

func (u *Usecase) list(ctx context.Context, f domainTravel.Filter, in ListInput) (*Page, error) {
	items, total, err := u.orders.List(ctx, f)
	if err != nil {
		return nil, err
	}
	page := &Page{Items: make([]OrderDTO, 0, len(items)), Total: total, Limit: in.Limit, Offset: in.Offset}
	people := map[uint64]Person{}
	for i := range items {
		o := &items[i]
		p, ok := people[o.UserID]
		if !ok {
			owner, err := u.users.GetByID(ctx, o.UserID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			p = person(owner)
			people[o.UserID] = p
		}
		page.Items = append(page.Items, OrderDTO{Order: o, Requester: p})
	}
	return page, nil
}

func (u *Usecase) recipients(ctx context.Context, role domainUser.Role, departmentID uint64) []netmail.Address {
	users, err := u.users.ListActiveByRole(ctx, role, departmentID)
	if err != nil {
		u.log.Warn("travel: resolving recipients", zap.String("role", string(role)), zap.Error(err))
		return nil
	}
	out := make([]netmail.Address, 0, len(users))
	for i := range users {
		out = append(out, notify.Address(users[i].FullName(), users[i].Email))
	}
	return out
}

func requestData(requester *domainUser.User, o *domainTravel.Order) notify.RequestData {
	return notify.RequestData{
		Kind:          kind,
		ID:            o.OrderID,
		ApplicantName: requester.FullName(),
		Summary:       fmt.Sprintf("%s, cash advance %.2f", o.Destination, o.CashAdvance),
		StartDate:     o.StartDate.Format("2006-01-02"),
		EndDate:       o.EndDate.Format("2006-01-02"),
		Reason:        o.Purpose,
		Status:        string(o.Status),
	}
}

func person(u *domainUser.User) Person {
	if u == nil {
		return Person{}
	}
	return Person{UserID: u.UserID, Name: u.FullName(), Email: u.Email}
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainTravel.ErrNotFound
	}
	return err
}
