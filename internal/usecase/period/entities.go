package period

import (
	"time"

	"oalass-backend/internal/domain/period"
)

type CreateInput struct {
	AcademicYear string
	Term         period.Term
	StartDate    time.Time
	EndDate      time.Time
	MakeCurrent  bool
}
