// Package dashboard assembles the per-role landing summary.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainLeave "oalass-backend/internal/domain/leave"
	domainPeriod "oalass-backend/internal/domain/period"
	domainTravel "oalass-backend/internal/domain/travel"
	domainUser "oalass-backend/internal/domain/user"
	"oalass-backend/internal/domain/uow"
	"oalass-backend/internal/domain/workflow"
	"oalass-backend/internal/usecase/leave"
	"oalass-backend/pkg/businessday"
)

// DueWindowDays is how far ahead the admin summary looks for ending probations.
const DueWindowDays = 30

// BalanceReader is the slice of the leave usecase the dashboard needs.
type BalanceReader interface {
	Balances(ctx context.Context, actor *domainUser.User, targetUserID string, periodID uint64) ([]leave.BalanceDTO, error)
}

type Own struct {
	Leaves   map[workflow.Status]int64 `json:"leaves"`
	Travels  map[workflow.Status]int64 `json:"travels"`
	Balances []leave.BalanceDTO        `json:"balances"`
}

type QueueSizes struct {
	Leaves  int64 `json:"leaves"`
	Travels int64 `json:"travels"`
}

type AdminSummary struct {
	UsersByRole      map[domainUser.Role]int64 `json:"users_by_role"`
	ActiveProbations int64                     `json:"active_probations"`
	DueProbations    int                       `json:"due_probations"`
}

type Summary struct {
	Role  domainUser.Role `json:"role"`
	Own   *Own            `json:"own,omitempty"`
	Queue *QueueSizes     `json:"queue,omitempty"`
	Admin *AdminSummary   `json:"admin,omitempty"`
}

type Usecase struct {
	repos    uow.Repos
	balances BalanceReader
	now      func() time.Time
}

func NewUsecase(repos uow.Repos, balances BalanceReader) *Usecase {
	return &Usecase{repos: repos, balances: balances, now: time.Now}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func (u *Usecase) Summary(ctx context.Context, actor *domainUser.User) (*Summary, error) {
	out := &Summary{Role: actor.Role}
	if actor.Role == domainUser.RoleAdmin {
		adm, err := u.admin(ctx)
		if err != nil {
			return nil, err
		}
		out.Admin = adm
		return out, nil
	}

	own, err := u.own(ctx, actor)
	if err != nil {
		return nil, err
	}
	out.Own = own

	switch actor.Role {
	case domainUser.RoleDean:
		q, err := u.queue(ctx, workflow.StatusPending, actor.DepartmentID)
		if err != nil {
			return nil, err
		}
		out.Queue = q
	case domainUser.RoleFinance:
		q, err := u.queue(ctx, workflow.StatusDeanApproved, 0)
		if err != nil {
			return nil, err
		}
		out.Queue = q
	}
	return out, nil
}

func (u *Usecase) own(ctx context.Context, actor *domainUser.User) (*Own, error) {
	leaves, err := u.repos.Applications.CountByStatus(ctx, domainLeave.Filter{UserID: actor.ID})
	if err != nil {
		return nil, fmt.Errorf("counting leave applications: %w", err)
	}
	travels, err := u.repos.Travels.CountByStatus(ctx, domainTravel.Filter{UserID: actor.ID})
	if err != nil {
		return nil, fmt.Errorf("counting travel orders: %w", err)
	}
	balances, err := u.balances.Balances(ctx, actor, "", 0)
	switch {
	case errors.Is(err, domainPeriod.ErrNoCurrent):
		balances = []leave.BalanceDTO{}
	case err != nil:
		return nil, fmt.Errorf("loading balances: %w", err)
	}
	return &Own{Leaves: nonNil(leaves), Travels: nonNil(travels), Balances: balances}, nil
}

func (u *Usecase) queue(ctx context.Context, status workflow.Status, departmentID uint64) (*QueueSizes, error) {
	leaves, err := u.repos.Applications.CountByStatus(ctx, domainLeave.Filter{Status: status, DepartmentID: departmentID})
	if err != nil {
		return nil, fmt.Errorf("counting leave queue: %w", err)
	}
	travels, err := u.repos.Travels.CountByStatus(ctx, domainTravel.Filter{Status: status, DepartmentID: departmentID})
	if err != nil {
		return nil, fmt.Errorf("counting travel queue: %w", err)
	}
	return &QueueSizes{Leaves: leaves[status], Travels: travels[status]}, nil
}

func (u *Usecase) admin(ctx context.Context) (*AdminSummary, error) {
	byRole, err := u.repos.Users.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}
	active, err := u.repos.Probations.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting probations: %w", err)
	}
	due, err := u.repos.Probations.ListDue(ctx, businessday.Date(u.now()).AddDate(0, 0, DueWindowDays))
	if err != nil {
		return nil, fmt.Errorf("listing due probations: %w", err)
	}
	if byRole == nil {
		byRole = map[domainUser.Role]int64{}
	}
	return &AdminSummary{UsersByRole: byRole, ActiveProbations: active, DueProbations: len(due)}, nil
}

func nonNil(m map[workflow.Status]int64) map[workflow.Status]int64 {
	if m == nil {
		return map[workflow.Status]int64{}
	}
	return m
}
