package account

import "oalass-backend/internal/domain/user"

type CreateInput struct {
	Email        string
	FirstName    string
	LastName     string
	Role         user.Role
	DepartmentID uint64
	StatusID     uint64
	// Password is the temporary password mailed to the user.
	Password string
}

// UpdateInput changes only the non-nil fields.
type UpdateInput struct {
	FirstName    *string
	LastName     *string
	Role         *user.Role
	DepartmentID *uint64
	StatusID     *uint64
}

type ListInput struct {
	Role         user.Role
	DepartmentID uint64
	Active       *bool
	Limit        int
	Offset       int
}

type Page struct {
	Items  []user.User `json:"items"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}
