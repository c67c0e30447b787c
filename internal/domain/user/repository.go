package user

import "context"

type Filter struct {
	Role         Role
	DepartmentID uint64
	Active       *bool
	Limit        int
	Offset       int
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	Save(ctx context.Context, u *User) error

	GetByID(ctx context.Context, id uint64) (*User, error)
	// Get by public user_id
	GetByUserID(ctx context.Context, userID string) (*User, error)
	GetByUserIDForUpdate(ctx context.Context, userID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)

	// List returns one page plus the total matching rows.
	List(ctx context.Context, f Filter) ([]User, int64, error)
	// Active users holding role in a department (0 = any department); used for notifications.
	ListActiveByRole(ctx context.Context, role Role, departmentID uint64) ([]User, error)
	CountByRole(ctx context.Context) (map[Role]int64, error)
}
