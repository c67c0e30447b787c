package period

import (
	"errors"
	"regexp"
	"strconv"
	"time"

	"oalass-backend/pkg/businessday"
)

var (
	ErrNotFound      = errors.New("calendar period not found")
	ErrNoCurrent     = errors.New("no current calendar period")
	ErrDuplicate     = errors.New("calendar period already exists for that year and term")
	ErrInvalidYear   = errors.New("academic year must look like 2025-2026")
	ErrInvalidTerm   = errors.New("term must be FIRST, SECOND or SUMMER")
	ErrOutsidePeriod = errors.New("dates fall outside the calendar period")
)

type Term string

const (
	TermFirst  Term = "FIRST"
	TermSecond Term = "SECOND"
	TermSummer Term = "SUMMER"
)

var AllTerms = []Term{TermFirst, TermSecond, TermSummer}

func (t Term) Valid() bool {
	for _, v := range AllTerms {
		if v == t {
			return true
		}
	}
	return false
}

var reYear = regexp.MustCompile(`^(\d{4})-(\d{4})$`)

// ValidAcademicYear accepts "YYYY-YYYY" where the second year follows the first.
func ValidAcademicYear(s string) bool {
	m := reYear.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	return b == a+1
}

// Table: calendar_periods
type CalendarPeriod struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AcademicYear string    `gorm:"column:academic_year;size:9;not null;uniqueIndex:ux_periods_year_term" json:"academic_year"`
	Term         Term      `gorm:"column:term;type:varchar(8);not null;uniqueIndex:ux_periods_year_term" json:"term"`
	StartDate    time.Time `gorm:"column:start_date;type:date;not null" json:"start_date"`
	EndDate      time.Time `gorm:"column:end_date;type:date;not null" json:"end_date"`
	IsCurrent    bool      `gorm:"column:is_current;not null;default:false;index" json:"is_current"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CalendarPeriod) TableName() string { return "calendar_periods" }

// Covers reports whether [start, end] lies entirely inside the period.
func (p *CalendarPeriod) Covers(start, end time.Time) bool {
	s, e := businessday.Date(start), businessday.Date(end)
	return !s.Before(businessday.Date(p.StartDate)) && !e.After(businessday.Date(p.EndDate))
}

func (p *CalendarPeriod) Label() string { return p.AcademicYear + " " + string(p.Term) }
