package travel

import (
	"errors"
	"time"

	"oalass-backend/internal/domain/workflow"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("travel order not found")
	ErrInvalidAmount = errors.New("cash advance must be zero or positive")
)

// Table: travel_orders
type Order struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	OrderID      string    `gorm:"column:order_id;type:char(32);not null;uniqueIndex" json:"order_id"`
	UserID       uint64    `gorm:"column:user_id;not null;index" json:"-"`
	DepartmentID uint64    `gorm:"column:department_id;not null;index" json:"department_id"`
	Destination  string    `gorm:"column:destination;size:255;not null" json:"destination"`
	Purpose      string    `gorm:"column:purpose;type:text;not null" json:"purpose"`
	StartDate    time.Time `gorm:"column:start_date;type:date;not null" json:"start_date"`
	EndDate      time.Time `gorm:"column:end_date;type:date;not null" json:"end_date"`
	CashAdvance  float64   `gorm:"column:cash_advance;type:decimal(12,2);not null;default:0" json:"cash_advance"`
	workflow.Track
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Order) TableName() string { return "travel_orders" }
