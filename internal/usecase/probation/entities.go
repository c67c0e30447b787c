package probation

import (
	"time"

	"oalass-backend/internal/domain/probation"
)

type StartInput struct {
	UserID    string
	StartDate time.Time
	EndDate   time.Time
	Remarks   string
}

type ExtendInput struct {
	EndDate time.Time
	Remarks string
}

type Person struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// ProbationDTO adds the employee and the days remaining at read time.
type ProbationDTO struct {
	probation.Probation
	Employee Person `json:"employee"`
	DaysLeft int    `json:"days_left"`
}
