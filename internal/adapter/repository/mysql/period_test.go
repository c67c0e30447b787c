package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"oalass-backend/internal/domain/period"

	"gorm.io/gorm"
)

func TestPeriod_CurrentLifecycle(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewPeriodRepository(gdb)
	ctx := context.Background()

	first := &period.CalendarPeriod{AcademicYear: "2025-2026", Term: period.TermFirst,
		StartDate: day(2025, time.August, 1), EndDate: day(2025, time.December, 20), IsCurrent: true}
	second := &period.CalendarPeriod{AcademicYear: "2025-2026", Term: period.TermSecond,
		StartDate: day(2026, time.January, 5), EndDate: day(2026, time.May, 30)}
	for _, p := range []*period.CalendarPeriod{first, second} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	cur, err := repo.GetCurrent(ctx)
	if err != nil || cur.ID != first.ID {
		t.Fatalf("GetCurrent: %+v, %v", cur, err)
	}
	if !cur.StartDate.Equal(first.StartDate) {
		t.Fatalf("start date not preserved: %v", cur.StartDate)
	}

	if err := repo.ClearCurrent(ctx); err != nil {
		t.Fatalf("ClearCurrent: %v", err)
	}
	if _, err := repo.GetCurrent(ctx); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want no current, got %v", err)
	}

	second.IsCurrent = true
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.GetByYearTerm(ctx, "2025-2026", period.TermSecond)
	if err != nil || !got.IsCurrent {
		t.Fatalf("GetByYearTerm: %+v, %v", got, err)
	}

	all, err := repo.List(ctx)
	if err != nil || len(all) != 2 || all[0].ID != second.ID {
		t.Fatalf("List newest first: %+v, %v", all, err)
	}
}

func TestPeriod_UniqueYearTerm(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewPeriodRepository(gdb)
	ctx := context.Background()
	p := func() *period.CalendarPeriod {
		return &period.CalendarPeriod{AcademicYear: "2025-2026", Term: period.TermFirst,
			StartDate: day(2025, time.August, 1), EndDate: day(2025, time.December, 20)}
	}
	if err := repo.Create(ctx, p()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, p()); err == nil {
		t.Fatal("expected unique violation on (year, term)")
	}
}
