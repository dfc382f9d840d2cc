// Package model holds the calendar values the host maps onto the grid's
// dayCount and gridOffset properties.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidMonth     = errors.New("model: invalid month")
	ErrInvalidWeekStart = errors.New("model: invalid week start")
)

const monthLayout = "2006-01"

type WeekStart string

const (
	WeekStartSunday WeekStart = "sunday"
	WeekStartMonday WeekStart = "monday"
)

func (w WeekStart) IsValid() bool {
	switch w {
	case WeekStartSunday, WeekStartMonday:
		return true
	default:
		return false
	}
}

func (w WeekStart) Weekday() time.Weekday {
	if w == WeekStartMonday {
		return time.Monday
	}
	return time.Sunday
}

func ParseWeekStart(s string) (WeekStart, error) {
	w := WeekStart(strings.ToLower(strings.TrimSpace(s)))
	if w == "" {
		return WeekStartSunday, nil
	}
	if !w.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidWeekStart, s)
	}
	return w, nil
}

// Month is a calendar month. The zero value is invalid.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth accepts "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	tm, err := time.Parse(monthLayout, strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q (want YYYY-MM)", ErrInvalidMonth, s)
	}
	return Month{Year: tm.Year(), Month: tm.Month()}, nil
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) Validate() error {
	if m.Year < 1 || m.Month < time.January || m.Month > time.December {
		return fmt.Errorf("%w: %d-%02d", ErrInvalidMonth, m.Year, int(m.Month))
	}
	return nil
}

func (m Month) first() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Days is the number of days in the month, 28 through 31.
func (m Month) Days() int {
	return m.first().AddDate(0, 1, -1).Day()
}

// GridOffset is the 1-based column of the 1st when weeks start on ws.
func (m Month) GridOffset(ws WeekStart) int {
	return (int(m.first().Weekday())-int(ws.Weekday())+7)%7 + 1
}

func (m Month) Next() Month {
	return MonthOf(m.first().AddDate(0, 1, 0))
}

func (m Month) Prev() Month {
	return MonthOf(m.first().AddDate(0, -1, 0))
}

func (m Month) String() string {
	return m.first().Format(monthLayout)
}

// Title is the heading form, e.g. "February 2026".
func (m Month) Title() string {
	return m.first().Format("January 2006")
}
