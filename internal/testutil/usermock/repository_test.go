package usermock

import (
	"context"
	"errors"
	"testing"

	domain "oalass-backend/internal/domain/user"
)

func TestRepo_Create(t *testing.T) {
	ctx := context.Background()
	u := &domain.User{UserID: "U-1"}

	wantErr := errors.New("boom")
	called := false
	m := &Repo{
		CreateFn: func(gotCtx context.Context, got *domain.User) error {
			called = true
			if gotCtx != ctx || got != u {
				t.Fatalf("args not forwarded")
			}
			return wantErr
		},
	}
	if err := m.Create(ctx, u); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("CreateFn not called")
	}

	// Default (nil func) → no-op
	m = &Repo{}
	if err := m.Create(ctx, u); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
}

func TestRepo_GetByUserIDForUpdate_FallsBack(t *testing.T) {
	ctx := context.Background()
	want := &domain.User{UserID: "U-2"}
	m := &Repo{
		GetByUserIDFn: func(_ context.Context, id string) (*domain.User, error) {
			if id != "U-2" {
				t.Fatalf("userID mismatch: %s", id)
			}
			return want, nil
		},
	}
	got, err := m.GetByUserIDForUpdate(ctx, "U-2")
	if err != nil || got != want {
		t.Fatalf("GetByUserIDForUpdate: %+v, %v", got, err)
	}
}

func TestRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}
	if _, err := m.GetByID(ctx, 1); err != context.Canceled {
		t.Fatalf("GetByID default: want context.Canceled, got %v", err)
	}
	if _, err := m.GetByEmail(ctx, "a@b.c"); err != context.Canceled {
		t.Fatalf("GetByEmail default: want context.Canceled, got %v", err)
	}
	if _, _, err := m.List(ctx, domain.Filter{}); err != context.Canceled {
		t.Fatalf("List default: want context.Canceled, got %v", err)
	}
	if got, err := m.ListActiveByRole(ctx, domain.RoleDean, 1); err != nil || got != nil {
		t.Fatalf("ListActiveByRole default: want nil, nil; got %+v, %v", got, err)
	}
}
