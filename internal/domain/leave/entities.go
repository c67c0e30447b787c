package leave

import (
	"errors"
	"time"

	"oalass-backend/internal/domain/period"
	"oalass-backend/internal/domain/workflow"

	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("leave application not found")
	ErrLimitNotFound       = errors.New("leave limit not found")
	ErrBalanceNotFound     = errors.New("leave balance not found")
	ErrNoLeaveLimit        = errors.New("no leave limit configured for this status, term and leave type")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrNoBusinessDays      = errors.New("date range contains no business days")
	ErrOverlap             = errors.New("dates overlap an existing leave application")
	ErrInvalidLimit        = errors.New("allowed days must be greater than zero")
)

// Limit is the configured allowance for one (employment status, term, leave type).
// Table: leave_limits
type Limit struct {
	ID          uint64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	StatusID    uint64      `gorm:"column:status_id;not null;uniqueIndex:ux_leave_limits_triple" json:"status_id"`
	Term        period.Term `gorm:"column:term;type:varchar(8);not null;uniqueIndex:ux_leave_limits_triple" json:"term"`
	LeaveTypeID uint64      `gorm:"column:leave_type_id;not null;uniqueIndex:ux_leave_limits_triple" json:"leave_type_id"`
	AllowedDays int         `gorm:"column:allowed_days;not null" json:"allowed_days"`
	CreatedAt   time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Limit) TableName() string { return "leave_limits" }

// Balance tracks one user's allowance for a leave type within a calendar period.
// Invariant: RemainingDays == AllowedDays - UsedDays.
// Table: leave_balances
type Balance struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserID        uint64    `gorm:"column:user_id;not null;uniqueIndex:ux_leave_balances_triple" json:"-"`
	PeriodID      uint64    `gorm:"column:period_id;not null;uniqueIndex:ux_leave_balances_triple" json:"period_id"`
	LeaveTypeID   uint64    `gorm:"column:leave_type_id;not null;uniqueIndex:ux_leave_balances_triple" json:"leave_type_id"`
	AllowedDays   int       `gorm:"column:allowed_days;not null" json:"allowed_days"`
	UsedDays      int       `gorm:"column:used_days;not null;default:0" json:"used_days"`
	RemainingDays int       `gorm:"column:remaining_days;not null" json:"remaining_days"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Balance) TableName() string { return "leave_balances" }

// NewBalance derives a fresh balance from a limit.
func NewBalance(userID, periodID uint64, l *Limit) *Balance {
	return &Balance{
		UserID:        userID,
		PeriodID:      periodID,
		LeaveTypeID:   l.LeaveTypeID,
		AllowedDays:   l.AllowedDays,
		RemainingDays: l.AllowedDays,
	}
}

func (b *Balance) Covers(days int) bool { return days <= b.RemainingDays }

// Debit records days as used; the balance is left untouched on failure.
func (b *Balance) Debit(days int) error {
	if days <= 0 {
		return ErrNoBusinessDays
	}
	if !b.Covers(days) {
		return ErrInsufficientBalance
	}
	b.UsedDays += days
	b.RemainingDays = b.AllowedDays - b.UsedDays
	return nil
}

// Reset overwrites allowance and usage, e.g. after a limit change.
func (b *Balance) Reset(allowed, used int) {
	b.AllowedDays = allowed
	b.UsedDays = used
	b.RemainingDays = allowed - used
}

// Table: leave_applications
type Application struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ApplicationID string    `gorm:"column:application_id;type:char(32);not null;uniqueIndex" json:"application_id"`
	UserID        uint64    `gorm:"column:user_id;not null;index:idx_leave_apps_user_dates" json:"-"`
	DepartmentID  uint64    `gorm:"column:department_id;not null;index" json:"department_id"`
	LeaveTypeID   uint64    `gorm:"column:leave_type_id;not null" json:"leave_type_id"`
	PeriodID      uint64    `gorm:"column:period_id;not null;index" json:"period_id"`
	StartDate     time.Time `gorm:"column:start_date;type:date;not null;index:idx_leave_apps_user_dates" json:"start_date"`
	EndDate       time.Time `gorm:"column:end_date;type:date;not null;index:idx_leave_apps_user_dates" json:"end_date"`
	NumberOfDays  int       `gorm:"column:number_of_days;not null" json:"number_of_days"`
	Reason        string    `gorm:"column:reason;type:text" json:"reason"`
	workflow.Track
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Application) TableName() string { return "leave_applications" }
