package leave

import (
	"time"

	"oalass-backend/internal/domain/leave"
	"oalass-backend/internal/domain/period"
	"oalass-backend/internal/domain/workflow"
)

type LimitInput struct {
	StatusID    uint64
	Term        period.Term
	LeaveTypeID uint64
	AllowedDays int
}

type SubmitInput struct {
	LeaveTypeID uint64
	PeriodID    uint64 // 0 = current period
	StartDate   time.Time
	EndDate     time.Time
	Reason      string
}

type ReviewInput struct {
	Stage    workflow.Stage // empty = the reviewer's own stage
	Decision workflow.Decision
	Remarks  string
}

type ListInput struct {
	Status       workflow.Status
	PeriodID     uint64
	UserID       string // public id; admin listing only
	DepartmentID uint64 // admin listing only
	Stage        workflow.Stage
	Limit        int
	Offset       int
}

type Person struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type ApplicationDTO struct {
	*leave.Application
	Applicant Person `json:"applicant"`
}

type Page struct {
	Items  []ApplicationDTO `json:"items"`
	Total  int64            `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

type BalanceDTO struct {
	leave.Balance
	LeaveTypeCode string `json:"leave_type_code"`
	LeaveTypeName string `json:"leave_type_name"`
}
