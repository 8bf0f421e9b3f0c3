package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrValidation is the root of every validation failure in this package.
// Callers branch on it with errors.Is; the wrapped message carries the detail.
var ErrValidation = errors.New("model: invalid value")

const dateLayout = "2006-01-02"

// ValidDate reports whether s is a real calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// CheckDate returns a validation error naming field when s is not a valid date.
func CheckDate(field, s string) error {
	if !ValidDate(s) {
		return fmt.Errorf("%w: %s %q is not a YYYY-MM-DD date", ErrValidation, field, s)
	}
	return nil
}

// Today returns the current local date in YYYY-MM-DD form.
func Today() string {
	return time.Now().Format(dateLayout)
}

// AddDays shifts an ISO date by delta days. The input must be valid.
func AddDays(date string, delta int) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, delta).Format(dateLayout)
}

// MonthBounds returns the first and last ISO dates of a month.
func MonthBounds(year, month int) (string, string, error) {
	if month < 1 || month > 12 {
		return "", "", fmt.Errorf("%w: month %d out of range", ErrValidation, month)
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(dateLayout), last.Format(dateLayout), nil
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year, month int) int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

// DayOfMonth extracts the day number from an ISO date, or 0 when malformed.
func DayOfMonth(date string) int {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0
	}
	return t.Day()
}
