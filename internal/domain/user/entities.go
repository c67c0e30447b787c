package user

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrInvalidPassword = errors.New("invalid password")
	ErrForbidden       = errors.New("not allowed to perform this action")
	ErrInactive        = errors.New("account deactivated")
	ErrInvalidRole     = errors.New("unknown role")
)

type Role string

const (
	RoleTeacher Role = "TEACHER"
	RoleDean    Role = "DEAN"
	RoleFinance Role = "FINANCE"
	RoleAdmin   Role = "ADMIN"
)

var AllRoles = []Role{RoleTeacher, RoleDean, RoleFinance, RoleAdmin}

func (r Role) Valid() bool {
	for _, v := range AllRoles {
		if v == r {
			return true
		}
	}
	return false
}

// CanApply reports whether the role files its own leave and travel requests.
func (r Role) CanApply() bool { return r != RoleAdmin }

const MinPasswordLen = 8

// Table: users
type User struct {
	ID           uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserID       string         `gorm:"column:user_id;type:char(32);not null;uniqueIndex" json:"user_id"`
	Email        string         `gorm:"column:email;size:191;not null;uniqueIndex" json:"email"`
	FirstName    string         `gorm:"column:first_name;size:100;not null" json:"first_name"`
	LastName     string         `gorm:"column:last_name;size:100;not null" json:"last_name"`
	PasswordHash string         `gorm:"column:password_hash;size:100;not null" json:"-"`
	Role         Role           `gorm:"column:role;type:varchar(16);not null;index" json:"role"`
	DepartmentID uint64         `gorm:"column:department_id;index" json:"department_id"`
	StatusID     uint64         `gorm:"column:status_id;index" json:"status_id"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (User) TableName() string { return "users" }

func NormalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

func (u *User) FullName() string { return strings.TrimSpace(u.FirstName + " " + u.LastName) }

func (u *User) SetPassword(pwd string) error {
	if len(pwd) < MinPasswordLen {
		return ErrInvalidPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(pwd)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}
