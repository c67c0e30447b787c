package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"oalass-backend/internal/domain/travel"
	"oalass-backend/internal/domain/workflow"
	"oalass-backend/pkg/id"

	"gorm.io/gorm"
)

func makeOrder(userID, dept uint64, st workflow.Status) *travel.Order {
	return &travel.Order{
		OrderID:      id.NewID32(),
		UserID:       userID,
		DepartmentID: dept,
		Destination:  "Cebu City",
		Purpose:      "Regional conference",
		StartDate:    day(2025, time.October, 6),
		EndDate:      day(2025, time.October, 8),
		CashAdvance:  12500.50,
		Track:        workflow.Track{Status: st},
	}
}

func TestTravel_CRUDAndQueues(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewTravelRepository(gdb)
	ctx := context.Background()

	o := makeOrder(1, 1, workflow.StatusPending)
	for _, x := range []*travel.Order{o, makeOrder(1, 1, workflow.StatusDeanApproved), makeOrder(2, 2, workflow.StatusPending)} {
		if err := repo.Create(ctx, x); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	locked, err := repo.GetByOrderIDForUpdate(ctx, o.OrderID)
	if err != nil {
		t.Fatalf("GetByOrderIDForUpdate: %v", err)
	}
	if err := locked.Cancel(); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if err := repo.Save(ctx, locked); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.GetByOrderID(ctx, o.OrderID)
	if err != nil || got.Status != workflow.StatusCancelled || got.CashAdvance != 12500.50 {
		t.Fatalf("GetByOrderID: %+v, %v", got, err)
	}

	pending, total, err := repo.List(ctx, travel.Filter{Status: workflow.StatusPending})
	if err != nil || total != 1 || pending[0].DepartmentID != 2 {
		t.Fatalf("List pending: %+v, %d, %v", pending, total, err)
	}

	counts, err := repo.CountByStatus(ctx, travel.Filter{UserID: 1})
	if err != nil || counts[workflow.StatusCancelled] != 1 || counts[workflow.StatusDeanApproved] != 1 {
		t.Fatalf("CountByStatus: %+v, %v", counts, err)
	}

	if _, err := repo.GetByOrderID(ctx, "missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}
