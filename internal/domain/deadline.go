package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for deadlines.
const DateLayout = "2006-01-02"

// Deadline is a named calendar date the user is working towards.
type Deadline struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

// NewDeadline validates and creates a deadline.
func NewDeadline(name, date string) (*Deadline, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyDeadlineName
	}
	date = strings.TrimSpace(date)
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}
	return &Deadline{
		ID:   generateID(),
		Name: name,
		Date: date,
	}, nil
}

// ParseDate parses a YYYY-MM-DD date at local midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, s)
	}
	return t, nil
}

// DaysLeft returns the whole days remaining until the deadline, rounded up
// and never negative.
func (d Deadline) DaysLeft(now time.Time) int {
	due, err := ParseDate(d.Date)
	if err != nil {
		return 0
	}
	days := int(math.Ceil(due.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
