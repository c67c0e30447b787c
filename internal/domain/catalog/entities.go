package catalog

import (
	"errors"
	"time"
)

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrStatusNotFound     = errors.New("employment status not found")
	ErrLeaveTypeNotFound  = errors.New("leave type not found")
	ErrCodeTaken          = errors.New("code already exists")
)

// Seeded employment status codes the probation lifecycle relies on.
const (
	StatusProbationary = "PROBATIONARY"
	StatusRegular      = "REGULAR"
)

// Table: departments
type Department struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code      string    `gorm:"column:code;size:32;not null;uniqueIndex" json:"code"`
	Name      string    `gorm:"column:name;size:191;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Department) TableName() string { return "departments" }

// EmploymentStatus scopes leave limits (table name kept short: statuses).
type EmploymentStatus struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code      string    `gorm:"column:code;size:32;not null;uniqueIndex" json:"code"`
	Name      string    `gorm:"column:name;size:191;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (EmploymentStatus) TableName() string { return "statuses" }

// Table: leave_types
type LeaveType struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code      string    `gorm:"column:code;size:32;not null;uniqueIndex" json:"code"`
	Name      string    `gorm:"column:name;size:191;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (LeaveType) TableName() string { return "leave_types" }
