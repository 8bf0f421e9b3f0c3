package model

import (
	"fmt"
	"strings"
	"time"
)

var ErrInvalidPriority = fmt.Errorf("%w: priority out of range", ErrValidation)

// Task priorities, low to high.
const (
	PriorityLow    = 0
	PriorityMedium = 1
	PriorityHigh   = 2
)

// PriorityLabel returns a human-readable name for a priority level.
func PriorityLabel(p int) string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// Task is a dated checklist item. Date is the day it belongs to; DueDate is
// an optional deadline and empty when unset.
type Task struct {
	ID          int64
	Title       string
	Completed   bool
	Date        string
	DueDate     string
	Priority    int
	Category    string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: task title is required", ErrValidation)
	}
	if err := CheckDate("task date", t.Date); err != nil {
		return err
	}
	if t.DueDate != "" {
		if err := CheckDate("task due date", t.DueDate); err != nil {
			return err
		}
	}
	if t.Priority < PriorityLow || t.Priority > PriorityHigh {
		return fmt.Errorf("%w: %d", ErrInvalidPriority, t.Priority)
	}
	return nil
}

// Overdue reports whether the task has a due date strictly before today and
// is still open.
func (t Task) Overdue(today string) bool {
	if t.Completed || t.DueDate == "" {
		return false
	}
	return t.DueDate < today
}
