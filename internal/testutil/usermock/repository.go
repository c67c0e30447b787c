package usermock

import (
	"context"

	domain "oalass-backend/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies user.Repository.
// Writes default to a nil error, reads to context.Canceled.
type Repo struct {
	CreateFn               func(ctx context.Context, u *domain.User) error
	SaveFn                 func(ctx context.Context, u *domain.User) error
	GetByIDFn              func(ctx context.Context, id uint64) (*domain.User, error)
	GetByUserIDFn          func(ctx context.Context, userID string) (*domain.User, error)
	GetByUserIDForUpdateFn func(ctx context.Context, userID string) (*domain.User, error)
	GetByEmailFn           func(ctx context.Context, email string) (*domain.User, error)
	ListFn                 func(ctx context.Context, f domain.Filter) ([]domain.User, int64, error)
	ListActiveByRoleFn     func(ctx context.Context, role domain.Role, departmentID uint64) ([]domain.User, error)
	CountByRoleFn          func(ctx context.Context) (map[domain.Role]int64, error)
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, u *domain.User) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByUserIDForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetByUserIDForUpdateFn != nil {
		return m.GetByUserIDForUpdateFn(ctx, userID)
	}
	// fall back to the plain getter so tests only wire one of them
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.User, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, context.Canceled
}

func (m *Repo) ListActiveByRole(ctx context.Context, role domain.Role, departmentID uint64) ([]domain.User, error) {
	if m.ListActiveByRoleFn != nil {
		return m.ListActiveByRoleFn(ctx, role, departmentID)
	}
	return nil, nil
}

func (m *Repo) CountByRole(ctx context.Context) (map[domain.Role]int64, error) {
	if m.CountByRoleFn != nil {
		return m.CountByRoleFn(ctx)
	}
	return nil, context.Canceled
}
