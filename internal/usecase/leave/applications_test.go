package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"oalass-backend/internal/domain/leave"
	"oalass-backend/internal/domain/period"
	"oalass-backend/internal/domain/user"
	"oalass-backend/internal/domain/workflow"
	"oalass-backend/internal/notify"
	"oalass-backend/pkg/businessday"

	"gorm.io/gorm"
)

func TestUsecase_Submit(t *testing.T) {
	base := SubmitInput{LeaveTypeID: 1, StartDate: day(9, 1), EndDate: day(9, 3), Reason: "family"}

	tests := []struct {
		name     string
		actor    *user.User
		in       func() SubmitInput
		setup    func(f *fixture)
		wantErr  error
		wantDays int
	}{
		{name: "happy path derives balance", actor: teacher, in: func() SubmitInput { return base }, wantDays: 3},
		{name: "range spans weekend", actor: teacher, in: func() SubmitInput {
			in := base
			in.StartDate, in.EndDate = day(9, 5), day(9, 8) // Fri..Mon
			return in
		}, wantDays: 2},
		{name: "admin cannot apply", actor: admin, in: func() SubmitInput { return base }, wantErr: user.ErrForbidden},
		{name: "end before start", actor: teacher, in: func() SubmitInput {
			in := base
			in.StartDate, in.EndDate = day(9, 3), day(9, 1)
			return in
		}, wantErr: businessday.ErrInvalidRange},
		{name: "weekend only", actor: teacher, in: func() SubmitInput {
			in := base
			in.StartDate, in.EndDate = day(9, 6), day(9, 7)
			return in
		}, wantErr: leave.ErrNoBusinessDays},
		{name: "outside period", actor: teacher, in: func() SubmitInput {
			in := base
			in.StartDate, in.EndDate = day(12, 19), day(12, 23)
			return in
		}, wantErr: period.ErrOutsidePeriod},
		{name: "no current period", actor: teacher, in: func() SubmitInput { return base }, setup: func(f *fixture) {
			f.periods.GetCurrentFn = func(context.Context) (*period.CalendarPeriod, error) { return nil, gorm.ErrRecordNotFound }
		}, wantErr: period.ErrNoCurrent},
		{name: "unknown period", actor: teacher, in: func() SubmitInput { in := base; in.PeriodID = 99; return in }, wantErr: period.ErrNotFound},
		{name: "overlap", actor: teacher, in: func() SubmitInput { return base }, setup: func(f *fixture) {
			f.apps.FindBlockingFn = func(_ context.Context, userID uint64, start, end time.Time) ([]leave.Application, error) {
				if userID != teacher.ID || !start.Equal(day(9, 1)) || !end.Equal(day(9, 3)) {
					t.Fatalf("FindBlocking args: %d %v %v", userID, start, end)
				}
				return []leave.Application{{ApplicationID: "x"}}, nil
			}
		}, wantErr: leave.ErrOverlap},
		{name: "no limit configured", actor: teacher, in: func() SubmitInput { return base }, setup: func(f *fixture) { f.allowed = 0 }, wantErr: leave.ErrNoLeaveLimit},
		{name: "insufficient balance", actor: teacher, in: func() SubmitInput { return base }, setup: func(f *fixture) { f.allowed = 2 }, wantErr: leave.ErrInsufficientBalance},
		{name: "existing balance partly used", actor: teacher, in: func() SubmitInput { return base }, setup: func(f *fixture) {
			f.balance = &leave.Balance{UserID: 1, PeriodID: 5, LeaveTypeID: 1, AllowedDays: 10, UsedDays: 8, RemainingDays: 2}
		}, wantErr: leave.ErrInsufficientBalance},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.setup != nil {
				tt.setup(f)
			}
			dto, err := f.usecase().Submit(context.Background(), tt.actor, tt.in())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("want err %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil {
				if f.created != nil {
					t.Fatal("application must not be created on error")
				}
				if len(f.notifier.Sent()) != 0 {
					t.Fatal("no notification on error")
				}
				return
			}
			if dto.NumberOfDays != tt.wantDays || dto.Status != workflow.StatusPending || dto.PeriodID != 5 {
				t.Fatalf("unexpected application: %+v", dto.Application)
			}
			if f.created == nil || len(f.created.ApplicationID) != 32 || f.created.DepartmentID != 10 {
				t.Fatalf("created = %+v", f.created)
			}
			if f.balance == nil || f.balance.AllowedDays != 10 || f.balance.UsedDays != 0 {
				t.Fatalf("balance not derived from limit: %+v", f.balance)
			}
			sent := f.notifier.Sent()
			if len(sent) != 1 || sent[0].Template != notify.TmplLeaveSubmitted || sent[0].To[0].Address != dean.Email {
				t.Fatalf("notifications = %+v", sent)
			}
		})
	}
}

func pendingApp(st workflow.Status) *leave.Application {
	return &leave.Application{
		ApplicationID: "APP-1", UserID: teacher.ID, DepartmentID: teacher.DepartmentID,
		LeaveTypeID: 1, PeriodID: 5, StartDate: day(9, 1), EndDate: day(9, 3), NumberOfDays: 3,
		Track: workflow.Track{Status: st},
	}
}

func TestUsecase_Review(t *testing.T) {
	tests := []struct {
		name      string
		actor     *user.User
		status    workflow.Status
		in        ReviewInput
		setup     func(f *fixture)
		wantErr   error
		want      workflow.Status
		wantDebit bool
		wantMails []string
	}{
		{
			name: "dean approves", actor: dean, status: workflow.StatusPending,
			in:   ReviewInput{Decision: workflow.DecisionApprove, Remarks: "ok"},
			want: workflow.StatusDeanApproved, wantMails: []string{notify.TmplLeaveReviewed, notify.TmplLeaveSubmitted},
		},
		{
			name: "dean rejects", actor: dean, status: workflow.StatusPending,
			in:   ReviewInput{Decision: workflow.DecisionReject, Remarks: "busy week"},
			want: workflow.StatusDeanRejected, wantMails: []string{notify.TmplLeaveReviewed},
		},
		{
			name: "finance approves and debits", actor: finance, status: workflow.StatusDeanApproved,
			in:   ReviewInput{Decision: workflow.DecisionApprove},
			setup: func(f *fixture) {
				f.balance = &leave.Balance{UserID: 1, PeriodID: 5, LeaveTypeID: 1, AllowedDays: 10, RemainingDays: 10}
			},
			want: workflow.StatusApproved, wantDebit: true, wantMails: []string{notify.TmplLeaveReviewed},
		},
		{
			name: "finance denies without debit", actor: finance, status: workflow.StatusDeanApproved,
			in:   ReviewInput{Decision: workflow.DecisionReject},
			want: workflow.StatusDenied, wantMails: []string{notify.TmplLeaveReviewed},
		},
		{
			name: "finance approve with insufficient balance", actor: finance, status: workflow.StatusDeanApproved,
			in: ReviewInput{Decision: workflow.DecisionApprove},
			setup: func(f *fixture) {
				f.balance = &leave.Balance{UserID: 1, PeriodID: 5, LeaveTypeID: 1, AllowedDays: 10, UsedDays: 9, RemainingDays: 1}
			},
			wantErr: leave.ErrInsufficientBalance,
		},
		{
			name: "finance before dean", actor: finance, status: workflow.StatusPending,
			in: ReviewInput{Decision: workflow.DecisionApprove}, wantErr: workflow.ErrInvalidTransition,
		},
		{
			name: "dean reviews twice", actor: dean, status: workflow.StatusDeanApproved,
			in: ReviewInput{Decision: workflow.DecisionApprove}, wantErr: workflow.ErrInvalidTransition,
		},
		{
			name: "dean of another department", actor: &user.User{ID: 9, Role: user.RoleDean, DepartmentID: 99}, status: workflow.StatusPending,
			in: ReviewInput{Decision: workflow.DecisionApprove}, wantErr: user.ErrForbidden,
		},
		{
			name: "teacher cannot review", actor: teacher, status: workflow.StatusPending,
			in: ReviewInput{Decision: workflow.DecisionApprove}, wantErr: user.ErrForbidden,
		},
		{
			name: "admin must name a stage", actor: admin, status: workflow.StatusPending,
			in: ReviewInput{Decision: workflow.DecisionApprove}, wantErr: user.ErrForbidden,
		},
		{
			name: "admin at dean stage", actor: admin, status: workflow.StatusPending,
			in:   ReviewInput{Stage: workflow.StageDean, Decision: workflow.DecisionApprove},
			want: workflow.StatusDeanApproved, wantMails: []string{notify.TmplLeaveReviewed, notify.TmplLeaveSubmitted},
		},
		{
			name: "unknown decision", actor: dean, status: workflow.StatusPending,
			in: ReviewInput{Decision: "MAYBE"}, wantErr: workflow.ErrUnknownDecision,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			var savedApp *leave.Application
			f.apps.GetByApplicationIDForUpdateFn = func(_ context.Context, id string) (*leave.Application, error) {
				if id != "APP-1" {
					return nil, gorm.ErrRecordNotFound
				}
				return pendingApp(tt.status), nil
			}
			f.apps.SaveFn = func(_ context.Context, a *leave.Application) error { savedApp = a; return nil }
			if tt.setup != nil {
				tt.setup(f)
			}

			dto, err := f.usecase().Review(context.Background(), tt.actor, "APP-1", tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("want err %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil {
				if savedApp != nil {
					t.Fatal("application must not be saved on error")
				}
				return
			}
			if dto.Status != tt.want || savedApp == nil || savedApp.Status != tt.want {
				t.Fatalf("status = %s, want %s", dto.Status, tt.want)
			}
			if dto.Applicant.UserID != teacher.UserID {
				t.Fatalf("applicant = %+v", dto.Applicant)
			}
			if tt.wantDebit {
				if f.saved == nil || f.saved.UsedDays != 3 || f.saved.RemainingDays != 7 {
					t.Fatalf("balance not debited: %+v", f.saved)
				}
				if dto.Finance.ReviewerID == nil || *dto.Finance.ReviewerID != finance.ID {
					t.Fatalf("finance reviewer not stamped: %+v", dto.Finance)
				}
			} else if f.saved != nil {
				t.Fatalf("balance must not change: %+v", f.saved)
			}
			got := f.notifier.Templates()
			if len(got) != len(tt.wantMails) {
				t.Fatalf("notifications = %v, want %v", got, tt.wantMails)
			}
			for i := range got {
				if got[i] != tt.wantMails[i] {
					t.Fatalf("notifications = %v, want %v", got, tt.wantMails)
				}
			}
		})
	}
}

func TestUsecase_Review_SelfReview(t *testing.T) {
	f := newFixture()
	f.apps.GetByApplicationIDForUpdateFn = func(context.Context, string) (*leave.Application, error) {
		a := pendingApp(workflow.StatusPending)
		a.UserID, a.DepartmentID = dean.ID, dean.DepartmentID
		return a, nil
	}
	if _, err := f.usecase().Review(context.Background(), dean, "APP-1", ReviewInput{Decision: workflow.DecisionApprove}); !errors.Is(err, workflow.ErrSelfReview) {
		t.Fatalf("want ErrSelfReview, got %v", err)
	}
}

func TestUsecase_Cancel(t *testing.T) {
	tests := []struct {
		name    string
		actor   *user.User
		status  workflow.Status
		missing bool
		wantErr error
	}{
		{"owner cancels pending", teacher, workflow.StatusPending, false, nil},
		{"not owner", dean, workflow.StatusPending, false, user.ErrForbidden},
		{"already reviewed", teacher, workflow.StatusDeanApproved, false, workflow.ErrNotCancellable},
		{"not found", teacher, workflow.StatusPending, true, leave.ErrNotFound},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.apps.GetByApplicationIDForUpdateFn = func(context.Context, string) (*leave.Application, error) {
				if tt.missing {
					return nil, gorm.ErrRecordNotFound
				}
				return pendingApp(tt.status), nil
			}
			dto, err := f.usecase().Cancel(context.Background(), tt.actor, "APP-1")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("want err %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil {
				if n := len(f.notifier.Sent()); n != 0 {
					t.Fatalf("failed cancel sent %d notification(s)", n)
				}
				return
			}
			if dto.Status != workflow.StatusCancelled {
				t.Fatalf("status = %s", dto.Status)
			}
			sent := f.notifier.Sent()
			if len(sent) != 1 || sent[0].Template != notify.TmplLeaveReviewed ||
				len(sent[0].To) != 1 || sent[0].To[0].Address != dean.Email {
				t.Fatalf("cancel notifications = %+v", sent)
			}
			if data := sent[0].Data.(notify.RequestData); data.Status != string(workflow.StatusCancelled) {
				t.Fatalf("notification status = %s", data.Status)
			}
		})
	}
}

func TestUsecase_GetAndQueues(t *testing.T) {
	f := newFixture()
	f.apps.GetByApplicationIDFn = func(context.Context, string) (*leave.Application, error) {
		return pendingApp(workflow.StatusPending), nil
	}
	var lastFilter leave.Filter
	f.apps.ListFn = func(_ context.Context, flt leave.Filter) ([]leave.Application, int64, error) {
		lastFilter = flt
		return []leave.Application{*pendingApp(flt.Status), *pendingApp(flt.Status)}, 2, nil
	}
	uc := f.usecase()
	ctx := context.Background()

	if _, err := uc.Get(ctx, dean, "APP-1"); err != nil {
		t.Fatalf("dean of department Get: %v", err)
	}
	other := &user.User{ID: 8, Role: user.RoleTeacher, DepartmentID: 10}
	if _, err := uc.Get(ctx, other, "APP-1"); !errors.Is(err, user.ErrForbidden) {
		t.Fatalf("other teacher Get: want ErrForbidden, got %v", err)
	}

	page, err := uc.Queue(ctx, dean, ListInput{})
	if err != nil || page.Total != 2 || page.Items[0].Applicant.Email != teacher.Email {
		t.Fatalf("dean queue: %+v, %v", page, err)
	}
	if lastFilter.Status != workflow.StatusPending || lastFilter.DepartmentID != dean.DepartmentID {
		t.Fatalf("dean queue filter = %+v", lastFilter)
	}

	if _, err := uc.Queue(ctx, finance, ListInput{}); err != nil {
		t.Fatalf("finance queue: %v", err)
	}
	if lastFilter.Status != workflow.StatusDeanApproved || lastFilter.DepartmentID != 0 {
		t.Fatalf("finance queue filter = %+v", lastFilter)
	}

	if _, err := uc.ListMine(ctx, teacher, ListInput{Status: workflow.StatusApproved}); err != nil {
		t.Fatalf("ListMine: %v", err)
	}
	if lastFilter.UserID != teacher.ID || lastFilter.Status != workflow.StatusApproved {
		t.Fatalf("mine filter = %+v", lastFilter)
	}

	f.users.GetByUserIDFn = func(_ context.Context, id string) (*user.User, error) {
		if id == teacher.UserID {
			return teacher, nil
		}
		return nil, gorm.ErrRecordNotFound
	}
	if _, err := uc.ListAll(ctx, ListInput{UserID: teacher.UserID}); err != nil || lastFilter.UserID != teacher.ID {
		t.Fatalf("ListAll by user: %+v, %v", lastFilter, err)
	}
	if _, err := uc.ListAll(ctx, ListInput{UserID: "missing"}); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("ListAll unknown user: want ErrNotFound, got %v", err)
	}
}
