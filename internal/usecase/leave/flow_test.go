package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	repo "oalass-backend/internal/adapter/repository/mysql"
	"oalass-backend/internal/domain/catalog"
	"oalass-backend/internal/domain/leave"
	"oalass-backend/internal/domain/period"
	"oalass-backend/internal/domain/user"
	"oalass-backend/internal/domain/workflow"
	"oalass-backend/internal/infrastructure/db"
	"oalass-backend/internal/testutil/notifymock"
	"oalass-backend/pkg/id"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestFlow_SubmitReviewDebit runs the whole pipeline against SQLite.
func TestFlow_SubmitReviewDebit(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := gdb.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	ctx := context.Background()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}

	dept := &catalog.Department{Code: "CS", Name: "Computer Studies"}
	status := &catalog.EmploymentStatus{Code: catalog.StatusRegular, Name: "Regular"}
	lt := &catalog.LeaveType{Code: "VACATION", Name: "Vacation"}
	must(gdb.Create(dept).Error)
	must(gdb.Create(status).Error)
	must(gdb.Create(lt).Error)
	must(gdb.Create(&period.CalendarPeriod{AcademicYear: "2025-2026", Term: period.TermFirst,
		StartDate: day(8, 1), EndDate: day(12, 20), IsCurrent: true}).Error)
	must(gdb.Create(&leave.Limit{StatusID: status.ID, Term: period.TermFirst, LeaveTypeID: lt.ID, AllowedDays: 5}).Error)

	mk := func(email string, role user.Role) *user.User {
		u := &user.User{UserID: id.NewID32(), Email: email, FirstName: string(role), LastName: "User",
			PasswordHash: "x", Role: role, DepartmentID: dept.ID, StatusID: status.ID, IsActive: true}
		must(gdb.Create(u).Error)
		return u
	}
	tch, dn, fin := mk("t@school.edu", user.RoleTeacher), mk("d@school.edu", user.RoleDean), mk("f@school.edu", user.RoleFinance)

	n := &notifymock.Notifier{}
	uc := NewUsecase(repo.ReposFor(gdb), repo.NewGormUoW(gdb), n, zap.NewNop()).WithClock(func() time.Time { return fixedNow })

	first, err := uc.Submit(ctx, tch, SubmitInput{LeaveTypeID: lt.ID, StartDate: day(9, 1), EndDate: day(9, 3)})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := uc.Submit(ctx, tch, SubmitInput{LeaveTypeID: lt.ID, StartDate: day(9, 3), EndDate: day(9, 4)}); !errors.Is(err, leave.ErrOverlap) {
		t.Fatalf("overlapping submit: want ErrOverlap, got %v", err)
	}

	if _, err := uc.Review(ctx, dn, first.ApplicationID, ReviewInput{Decision: workflow.DecisionApprove}); err != nil {
		t.Fatalf("dean review: %v", err)
	}
	final, err := uc.Review(ctx, fin, first.ApplicationID, ReviewInput{Decision: workflow.DecisionApprove, Remarks: "paid"})
	if err != nil {
		t.Fatalf("finance review: %v", err)
	}
	if final.Status != workflow.StatusApproved || final.Dean.ReviewedAt == nil || final.Finance.Remarks != "paid" {
		t.Fatalf("unexpected final track: %+v", final.Track)
	}

	balances, err := uc.Balances(ctx, tch, "", 0)
	if err != nil {
		t.Fatalf("Balances: %v", err)
	}
	if len(balances) != 1 || balances[0].UsedDays != 3 || balances[0].RemainingDays != 2 {
		t.Fatalf("balance after approval: %+v", balances)
	}

	// 3 more days exceed the 2 remaining
	if _, err := uc.Submit(ctx, tch, SubmitInput{LeaveTypeID: lt.ID, StartDate: day(9, 8), EndDate: day(9, 10)}); !errors.Is(err, leave.ErrInsufficientBalance) {
		t.Fatalf("want ErrInsufficientBalance, got %v", err)
	}

	recomputed, err := uc.Recompute(ctx, tch.UserID, 0)
	if err != nil || len(recomputed) != 1 || recomputed[0].UsedDays != 3 {
		t.Fatalf("Recompute: %+v, %v", recomputed, err)
	}

	want := []string{"leave_submitted", "leave_reviewed", "leave_submitted", "leave_reviewed"}
	got := n.Templates()
	if len(got) != len(want) {
		t.Fatalf("notifications = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("notifications = %v, want %v", got, want)
		}
	}
}
