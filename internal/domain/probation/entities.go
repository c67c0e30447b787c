package probation

import (
	"errors"
	"time"

	"oalass-backend/pkg/businessday"
)

var (
	ErrNotFound      = errors.New("probation not found")
	ErrAlreadyActive = errors.New("user already has an active probation")
	ErrNotActive     = errors.New("probation is already closed")
	ErrInvalidEnd    = errors.New("end date must be after the current end date")
	ErrInvalidRange  = errors.New("probation must end after it starts")
	ErrInvalidStatus = errors.New("unknown probation status")
)

type Status string

const (
	StatusOngoing    Status = "ONGOING"
	StatusExtended   Status = "EXTENDED"
	StatusCompleted  Status = "COMPLETED"
	StatusTerminated Status = "TERMINATED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOngoing, StatusExtended, StatusCompleted, StatusTerminated:
		return true
	}
	return false
}

func (s Status) Active() bool { return s == StatusOngoing || s == StatusExtended }

// Table: probations
type Probation struct {
	ID        uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    uint64     `gorm:"column:user_id;not null;index" json:"-"`
	StartDate time.Time  `gorm:"column:start_date;type:date;not null" json:"start_date"`
	EndDate   time.Time  `gorm:"column:end_date;type:date;not null;index" json:"end_date"`
	Status    Status     `gorm:"column:status;type:varchar(16);not null;index" json:"status"`
	Remarks   string     `gorm:"column:remarks;type:text" json:"remarks,omitempty"`
	ClosedAt  *time.Time `gorm:"column:closed_at" json:"closed_at,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Probation) TableName() string { return "probations" }

func (p *Probation) Extend(newEnd time.Time, remarks string) error {
	if !p.Status.Active() {
		return ErrNotActive
	}
	if !businessday.Date(newEnd).After(businessday.Date(p.EndDate)) {
		return ErrInvalidEnd
	}
	p.EndDate = businessday.Date(newEnd)
	p.Status = StatusExtended
	if remarks != "" {
		p.Remarks = remarks
	}
	return nil
}

// Close ends the probation with a terminal status.
func (p *Probation) Close(to Status, remarks string, now time.Time) error {
	if !p.Status.Active() {
		return ErrNotActive
	}
	at := now.UTC()
	p.Status = to
	p.ClosedAt = &at
	if remarks != "" {
		p.Remarks = remarks
	}
	return nil
}

// DaysLeft counts calendar days until EndDate (negative when overdue).
func (p *Probation) DaysLeft(now time.Time) int {
	return int(businessday.Date(p.EndDate).Sub(businessday.Date(now)).Hours() / 24)
}
