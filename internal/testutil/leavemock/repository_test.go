package leavemock

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "oalass-backend/internal/domain/leave"
	"oalass-backend/internal/domain/period"
)

func TestLimitRepo_Get(t *testing.T) {
	ctx := context.Background()
	want := &domain.Limit{ID: 1, AllowedDays: 5}
	m := &LimitRepo{
		GetFn: func(_ context.Context, statusID uint64, term period.Term, leaveTypeID uint64) (*domain.Limit, error) {
			if statusID != 2 || term != period.TermFirst || leaveTypeID != 3 {
				t.Fatalf("args mismatch: %d %s %d", statusID, term, leaveTypeID)
			}
			return want, nil
		},
	}
	got, err := m.Get(ctx, 2, period.TermFirst, 3)
	if err != nil || got != want {
		t.Fatalf("Get: %+v, %v", got, err)
	}

	m = &LimitRepo{}
	if _, err := m.Get(ctx, 2, period.TermFirst, 3); err != context.Canceled {
		t.Fatalf("Get default: want context.Canceled, got %v", err)
	}
	if err := m.Upsert(ctx, want); err != nil {
		t.Fatalf("Upsert default: want nil, got %v", err)
	}
}

func TestBalanceRepo_GetForUpdateFallsBack(t *testing.T) {
	ctx := context.Background()
	want := &domain.Balance{RemainingDays: 4}
	m := &BalanceRepo{GetFn: func(context.Context, uint64, uint64, uint64) (*domain.Balance, error) { return want, nil }}
	got, err := m.GetForUpdate(ctx, 1, 1, 1)
	if err != nil || got != want {
		t.Fatalf("GetForUpdate: %+v, %v", got, err)
	}

	sentinel := errors.New("locked")
	m.GetForUpdateFn = func(context.Context, uint64, uint64, uint64) (*domain.Balance, error) { return nil, sentinel }
	if _, err := m.GetForUpdate(ctx, 1, 1, 1); !errors.Is(err, sentinel) {
		t.Fatalf("GetForUpdate: want %v, got %v", sentinel, err)
	}
}

func TestApplicationRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &ApplicationRepo{}
	if got, err := m.FindBlocking(ctx, 1, day(1), day(2)); err != nil || got != nil {
		t.Fatalf("FindBlocking default: want nil, nil; got %+v, %v", got, err)
	}
	if _, err := m.GetByApplicationIDForUpdate(ctx, "x"); err != context.Canceled {
		t.Fatalf("GetByApplicationIDForUpdate default: want context.Canceled, got %v", err)
	}
	if _, _, err := m.List(ctx, domain.Filter{}); err != context.Canceled {
		t.Fatalf("List default: want context.Canceled, got %v", err)
	}
	if err := m.Save(ctx, &domain.Application{}); err != nil {
		t.Fatalf("Save default: want nil, got %v", err)
	}
}

func day(d int) time.Time { return time.Date(2025, time.September, d, 0, 0, 0, 0, time.UTC) }
