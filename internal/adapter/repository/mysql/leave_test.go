package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"oalass-backend/internal/domain/leave"
	"oalass-backend/internal/domain/period"
	"oalass-backend/internal/domain/workflow"
	"oalass-backend/pkg/id"

	"gorm.io/gorm"
)

func makeApplication(userID, dept uint64, start, end time.Time, days int, st workflow.Status) *leave.Application {
	return &leave.Application{
		ApplicationID: id.NewID32(),
		UserID:        userID,
		DepartmentID:  dept,
		LeaveTypeID:   1,
		PeriodID:      1,
		StartDate:     start,
		EndDate:       end,
		NumberOfDays:  days,
		Track:         workflow.Track{Status: st},
	}
}

func TestLimit_UpsertGetDelete(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewLimitRepository(gdb)
	ctx := context.Background()

	l := &leave.Limit{StatusID: 2, Term: period.TermFirst, LeaveTypeID: 3, AllowedDays: 5}
	if err := repo.Upsert(ctx, l); err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}
	if err := repo.Upsert(ctx, &leave.Limit{StatusID: 2, Term: period.TermFirst, LeaveTypeID: 3, AllowedDays: 8}); err != nil {
		t.Fatalf("Upsert update: %v", err)
	}

	got, err := repo.Get(ctx, 2, period.TermFirst, 3)
	if err != nil || got.AllowedDays != 8 {
		t.Fatalf("Get after upsert: %+v, %v", got, err)
	}
	all, err := repo.List(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("List: %+v, %v", all, err)
	}
	if _, err := repo.GetByID(ctx, got.ID); err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	if err := repo.Delete(ctx, got.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, got.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("second Delete: want ErrRecordNotFound, got %v", err)
	}
}

func TestBalance_CreateLockSave(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewBalanceRepository(gdb)
	ctx := context.Background()

	b := leave.NewBalance(7, 1, &leave.Limit{LeaveTypeID: 3, AllowedDays: 10})
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, leave.NewBalance(7, 1, &leave.Limit{LeaveTypeID: 3, AllowedDays: 10})); err == nil {
		t.Fatal("expected unique violation on (user, period, leave type)")
	}

	locked, err := repo.GetForUpdate(ctx, 7, 1, 3)
	if err != nil {
		t.Fatalf("GetForUpdate: %v", err)
	}
	if err := locked.Debit(4); err != nil {
		t.Fatalf("Debit: %v", err)
	}
	if err := repo.Save(ctx, locked); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Get(ctx, 7, 1, 3)
	if err != nil || got.UsedDays != 4 || got.RemainingDays != 6 {
		t.Fatalf("Get: %+v, %v", got, err)
	}
	list, err := repo.ListByUserPeriod(ctx, 7, 1)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListByUserPeriod: %+v, %v", list, err)
	}
	if _, err := repo.Get(ctx, 7, 2, 3); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}

func TestApplication_CreateGetSave(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewApplicationRepository(gdb)
	ctx := context.Background()

	a := makeApplication(1, 1, day(2025, time.September, 1), day(2025, time.September, 3), 3, workflow.StatusPending)
	a.Reason = "family"
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	locked, err := repo.GetByApplicationIDForUpdate(ctx, a.ApplicationID)
	if err != nil {
		t.Fatalf("GetByApplicationIDForUpdate: %v", err)
	}
	if err := locked.Apply(workflow.StageDean, workflow.DecisionApprove, 42, "ok", time.Now()); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := repo.Save(ctx, locked); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByApplicationID(ctx, a.ApplicationID)
	if err != nil {
		t.Fatalf("GetByApplicationID: %v", err)
	}
	if got.Status != workflow.StatusDeanApproved || got.Dean.ReviewerID == nil || *got.Dean.ReviewerID != 42 || got.Dean.Remarks != "ok" {
		t.Fatalf("review not persisted: %+v", got.Track)
	}
	if got.Finance.Done() {
		t.Fatalf("finance review should be empty: %+v", got.Finance)
	}
	if !got.StartDate.Equal(a.StartDate) {
		t.Fatalf("start date mismatch: %v", got.StartDate)
	}
}

func TestApplication_FindBlocking(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewApplicationRepository(gdb)
	ctx := context.Background()

	seed := []*leave.Application{
		makeApplication(1, 1, day(2025, time.September, 1), day(2025, time.September, 5), 5, workflow.StatusPending),
		makeApplication(1, 1, day(2025, time.September, 15), day(2025, time.September, 16), 2, workflow.StatusDenied),
		makeApplication(1, 1, day(2025, time.October, 1), day(2025, time.October, 2), 2, workflow.StatusApproved),
		makeApplication(2, 1, day(2025, time.September, 1), day(2025, time.September, 5), 5, workflow.StatusPending),
	}
	for _, a := range seed {
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	tests := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"touches pending end", day(2025, time.September, 5), day(2025, time.September, 8), 1},
		{"denied does not block", day(2025, time.September, 15), day(2025, time.September, 16), 0},
		{"approved blocks", day(2025, time.September, 30), day(2025, time.October, 1), 1},
		{"free window", day(2025, time.September, 8), day(2025, time.September, 12), 0},
		{"covers everything", day(2025, time.August, 1), day(2025, time.December, 1), 2},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindBlocking(ctx, 1, tt.start, tt.end)
			if err != nil {
				t.Fatalf("FindBlocking: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("got %d blocking, want %d", len(got), tt.want)
			}
		})
	}
}

func TestApplication_ListSumCount(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewApplicationRepository(gdb)
	ctx := context.Background()

	seed := []*leave.Application{
		makeApplication(1, 1, day(2025, time.September, 1), day(2025, time.September, 2), 2, workflow.StatusApproved),
		makeApplication(1, 1, day(2025, time.September, 8), day(2025, time.September, 10), 3, workflow.StatusApproved),
		makeApplication(1, 1, day(2025, time.September, 15), day(2025, time.September, 15), 1, workflow.StatusPending),
		makeApplication(2, 2, day(2025, time.September, 1), day(2025, time.September, 1), 1, workflow.StatusDeanApproved),
	}
	for _, a := range seed {
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	mine, total, err := repo.List(ctx, leave.Filter{UserID: 1})
	if err != nil || total != 3 || len(mine) != 3 {
		t.Fatalf("List mine: %d/%d, %v", len(mine), total, err)
	}
	queue, total, err := repo.List(ctx, leave.Filter{DepartmentID: 2, Status: workflow.StatusDeanApproved})
	if err != nil || total != 1 || queue[0].UserID != 2 {
		t.Fatalf("List queue: %+v, %d, %v", queue, total, err)
	}

	sum, err := repo.SumApprovedDays(ctx, 1, 1, 1)
	if err != nil || sum != 5 {
		t.Fatalf("SumApprovedDays = %d, %v; want 5", sum, err)
	}
	none, err := repo.SumApprovedDays(ctx, 3, 1, 1)
	if err != nil || none != 0 {
		t.Fatalf("SumApprovedDays(empty) = %d, %v; want 0", none, err)
	}

	counts, err := repo.CountByStatus(ctx, leave.Filter{UserID: 1})
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if counts[workflow.StatusApproved] != 2 || counts[workflow.StatusPending] != 1 || counts[workflow.StatusDeanApproved] != 0 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}
