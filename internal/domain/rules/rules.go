// Package rules holds the derived-field and validation rules applied when
// records are saved. Every function takes "today" from the caller so the
// rules stay deterministic under test.
package rules

import (
	"math"
	"time"

	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"github.com/dalemusser/mentorhub/internal/domain/models"
)

// DateLayout is the wire format for calendar dates in forms and exports.
const DateLayout = "2006-01-02"

// ClockLayout is the wire format for session start and end times.
const ClockLayout = "15:04"

// MsgSessionDateInFuture is shown when a session is dated after today.
const MsgSessionDateInFuture = "The session date cannot be in the future."

// Civil returns t's calendar date, in t's own location, as UTC midnight.
// Calendar comparisons in this package go through Civil so the wall-clock
// part of "today" never matters.
func Civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a civil date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a civil date as YYYY-MM-DD, or "" for nil.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// CompanyAge returns the number of whole years between founding and today,
// counting a year only once its anniversary has been reached.
func CompanyAge(founding, today time.Time) int {
	fy, fm, fd := founding.Date()
	ty, tm, td := today.Date()
	age := ty - fy
	if tm < fm || (tm == fm && td < fd) {
		age--
	}
	return age
}

// ApplyCompanyAge sets c.Age from c.FoundingDate. A company without a
// founding date keeps whatever age it already has.
func ApplyCompanyAge(c *models.Company, today time.Time) {
	if c.FoundingDate == nil {
		return
	}
	age := CompanyAge(*c.FoundingDate, today)
	c.Age = &age
}

// ValidateSessionDate rejects a session dated strictly after today.
func ValidateSessionDate(date, today time.Time) error {
	if Civil(date).After(Civil(today)) {
		return apperr.Validation("date", MsgSessionDateInFuture)
	}
	return nil
}

// SessionDuration returns the hours between start and end ("HH:MM"),
// rounded to two places. It returns nil when either time is missing or
// malformed, or when end is not after start.
func SessionDuration(start, end string) *float64 {
	if start == "" || end == "" {
		return nil
	}
	s, err := time.Parse(ClockLayout, start)
	if err != nil {
		return nil
	}
	e, err := time.Parse(ClockLayout, end)
	if err != nil {
		return nil
	}
	if !e.After(s) {
		return nil
	}
	h := math.Round(e.Sub(s).Hours()*100) / 100
	return &h
}
