package model

import (
	"fmt"
	"strings"
)

// Event is a calendar-only annotation. It has no effect on the daily score.
type Event struct {
	ID          int64
	Title       string
	Date        string
	Description string
}

func (e Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: event title is required", ErrValidation)
	}
	return CheckDate("event date", e.Date)
}
