package leave

import (
	"context"
	"time"

	"oalass-backend/internal/domain/catalog"
	"oalass-backend/internal/domain/leave"
	"oalass-backend/internal/domain/period"
	"oalass-backend/internal/domain/uow"
	"oalass-backend/internal/domain/user"
	"oalass-backend/internal/testutil/catalogmock"
	"oalass-backend/internal/testutil/leavemock"
	"oalass-backend/internal/testutil/notifymock"
	"oalass-backend/internal/testutil/periodmock"
	"oalass-backend/internal/testutil/uowmock"
	"oalass-backend/internal/testutil/usermock"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)

func day(m time.Month, d int) time.Time { return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC) }

var (
	teacher = &user.User{ID: 1, UserID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Email: "t@school.edu", FirstName: "Tess", Role: user.RoleTeacher, DepartmentID: 10, StatusID: 2, IsActive: true}
	dean    = &user.User{ID: 2, UserID: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", Email: "d@school.edu", FirstName: "Dan", Role: user.RoleDean, DepartmentID: 10, IsActive: true}
	finance = &user.User{ID: 3, UserID: "cccccccccccccccccccccccccccccccc", Email: "f@school.edu", FirstName: "Fay", Role: user.RoleFinance, DepartmentID: 20, IsActive: true}
	admin   = &user.User{ID: 4, UserID: "dddddddddddddddddddddddddddddddd", Email: "a@school.edu", FirstName: "Ada", Role: user.RoleAdmin, IsActive: true}
)

type fixture struct {
	users    *usermock.Repo
	catalog  *catalogmock.Repo
	periods  *periodmock.Repo
	limits   *leavemock.LimitRepo
	balances *leavemock.BalanceRepo
	apps     *leavemock.ApplicationRepo
	notifier *notifymock.Notifier

	allowed int
	balance *leave.Balance // nil until derived
	saved   *leave.Balance
	created *leave.Application
}

func newFixture() *fixture {
	f := &fixture{allowed: 10, notifier: &notifymock.Notifier{}}
	current := &period.CalendarPeriod{ID: 5, AcademicYear: "2025-2026", Term: period.TermFirst,
		StartDate: day(8, 1), EndDate: day(12, 20), IsCurrent: true}

	f.users = &usermock.Repo{
		GetByIDFn: func(_ context.Context, id uint64) (*user.User, error) {
			for _, u := range []*user.User{teacher, dean, finance, admin} {
				if u.ID == id {
					return u, nil
				}
			}
			return nil, gorm.ErrRecordNotFound
		},
		ListActiveByRoleFn: func(_ context.Context, role user.Role, _ uint64) ([]user.User, error) {
			switch role {
			case user.RoleDean:
				return []user.User{*dean}, nil
			case user.RoleFinance:
				return []user.User{*finance}, nil
			}
			return nil, nil
		},
	}
	f.catalog = &catalogmock.Repo{
		GetLeaveTypeFn: func(_ context.Context, id uint64) (*catalog.LeaveType, error) {
			if id != 1 {
				return nil, gorm.ErrRecordNotFound
			}
			return &catalog.LeaveType{ID: 1, Code: "VACATION", Name: "Vacation"}, nil
		},
		ListLeaveTypesFn: func(context.Context) ([]catalog.LeaveType, error) {
			return []catalog.LeaveType{{ID: 1, Code: "VACATION", Name: "Vacation"}, {ID: 2, Code: "SICK", Name: "Sick"}}, nil
		},
	}
	f.periods = &periodmock.Repo{
		GetCurrentFn: func(context.Context) (*period.CalendarPeriod, error) { return current, nil },
		GetByIDFn: func(_ context.Context, id uint64) (*period.CalendarPeriod, error) {
			if id != current.ID {
				return nil, gorm.ErrRecordNotFound
			}
			return current, nil
		},
	}
	f.limits = &leavemock.LimitRepo{
		GetFn: func(_ context.Context, statusID uint64, term period.Term, leaveTypeID uint64) (*leave.Limit, error) {
			if f.allowed == 0 || leaveTypeID != 1 || term != period.TermFirst {
				return nil, gorm.ErrRecordNotFound
			}
			return &leave.Limit{StatusID: statusID, Term: term, LeaveTypeID: leaveTypeID, AllowedDays: f.allowed}, nil
		},
	}
	f.balances = &leavemock.BalanceRepo{
		GetFn: func(_ context.Context, userID, periodID, leaveTypeID uint64) (*leave.Balance, error) {
			b := f.balance
			if b == nil || b.UserID != userID || b.PeriodID != periodID || b.LeaveTypeID != leaveTypeID {
				return nil, gorm.ErrRecordNotFound
			}
			cp := *b
			return &cp, nil
		},
		CreateFn: func(_ context.Context, b *leave.Balance) error { f.balance = b; return nil },
		SaveFn:   func(_ context.Context, b *leave.Balance) error { f.saved = b; return nil },
	}
	f.apps = &leavemock.ApplicationRepo{
		CreateFn: func(_ context.Context, a *leave.Application) error { f.created = a; return nil },
	}
	return f
}

func (f *fixture) repos() uow.Repos {
	return uow.Repos{
		Users: f.users, Catalog: f.catalog, Periods: f.periods,
		Limits: f.limits, Balances: f.balances, Applications: f.apps,
	}
}

func (f *fixture) usecase() *Usecase {
	r := f.repos()
	return NewUsecase(r, uowmock.Passthrough(r), f.notifier, zap.NewNop()).WithClock(func() time.Time { return fixedNow })
}
