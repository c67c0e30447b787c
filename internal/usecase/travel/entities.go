package travel

import (
	"time"

	"oalass-backend/internal/domain/travel"
	"oalass-backend/internal/domain/workflow"
)

type SubmitInput struct {
	Destination string
	Purpose     string
	StartDate   time.Time
	EndDate     time.Time
	CashAdvance float64
}

type ReviewInput struct {
	Stage    workflow.Stage
	Decision workflow.Decision
	Remarks  string
}

type ListInput struct {
	Status       workflow.Status
	UserID       string
	DepartmentID uint64
	Stage        workflow.Stage
	Limit        int
	Offset       int
}

type Person struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type OrderDTO struct {
	*travel.Order
	Requester Person `json:"requester"`
}

type Page struct {
	Items  []OrderDTO `json:"items"`
	Total  int64      `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}
