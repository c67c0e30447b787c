// Package businessday counts working days (Monday to Friday) between calendar dates.
package businessday

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("end date is before start date")

// Date returns midnight UTC of t's calendar date as seen in t's location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Count returns the number of weekdays in [start, end], both inclusive.
// Only the calendar date of each bound is considered.
func Count(start, end time.Time) (int, error) {
	s, e := Date(start), Date(end)
	if e.Before(s) {
		return 0, ErrInvalidRange
	}
	days := int(e.Sub(s).Hours()/24) + 1

	// whole weeks contribute 5 each; walk the remainder
	n := (days / 7) * 5
	cur := s.AddDate(0, 0, (days/7)*7)
	for !cur.After(e) {
		if IsWeekday(cur) {
			n++
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return n, nil
}

func IsWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// Overlaps reports whether [aStart, aEnd] and [bStart, bEnd] share a calendar day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !Date(aEnd).Before(Date(bStart)) && !Date(bEnd).Before(Date(aStart))
}
