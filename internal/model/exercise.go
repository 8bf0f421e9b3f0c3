package model

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrInvalidCategory = fmt.Errorf("%w: unknown exercise category", ErrValidation)
	ErrInvalidUnit     = fmt.Errorf("%w: unknown unit", ErrValidation)
	ErrInvalidColor    = fmt.Errorf("%w: color must be #RRGGBB", ErrValidation)
)

// Category classifies an exercise. The vocabulary belongs to schema
// revision 1; older category sets are not mixed into it.
type Category string

const (
	CategoryCardio  Category = "cardio"
	CategoryMuscle  Category = "muscle"
	CategoryStretch Category = "stretch"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryCardio, CategoryMuscle, CategoryStretch:
		return true
	default:
		return false
	}
}

// CategoryColor returns the default palette color for a category.
func CategoryColor(c Category) string {
	switch c {
	case CategoryCardio:
		return "#E57373"
	case CategoryMuscle:
		return "#64B5F6"
	default:
		return "#81C784"
	}
}

// Unit is the measure an exercise target is expressed in.
type Unit string

const (
	UnitReps    Unit = "reps"
	UnitSets    Unit = "sets"
	UnitMinutes Unit = "minutes"
	UnitKm      Unit = "km"
	UnitHours   Unit = "hours"
)

func (u Unit) IsValid() bool {
	switch u {
	case UnitReps, UnitSets, UnitMinutes, UnitKm, UnitHours:
		return true
	default:
		return false
	}
}

var colorPattern = regexp.MustCompile(`^#[0-9A-F]{6}$`)

// Exercise is a restorative activity definition with a daily numeric target.
type Exercise struct {
	ID          int64
	Name        string
	Category    Category
	Color       string
	TargetValue int
	Unit        Unit
}

func (e Exercise) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: exercise name is required", ErrValidation)
	}
	if !e.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, e.Category)
	}
	if !colorPattern.MatchString(e.Color) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, e.Color)
	}
	if e.TargetValue <= 0 {
		return fmt.Errorf("%w: target value must be positive", ErrValidation)
	}
	if !e.Unit.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidUnit, e.Unit)
	}
	return nil
}

// Normalize trims the name and uppercases the color so equal definitions
// compare equal regardless of input casing.
func (e *Exercise) Normalize() {
	e.Name = strings.TrimSpace(e.Name)
	e.Color = strings.ToUpper(e.Color)
}

// ExerciseLog is a per-day record of actual progress against a target.
// At most one log exists per (exercise, date).
type ExerciseLog struct {
	ID          int64
	ExerciseID  int64
	Date        string
	Completed   bool
	ActualValue int
	Notes       string
}

func (l ExerciseLog) Validate() error {
	if l.ExerciseID <= 0 {
		return fmt.Errorf("%w: log exercise_id is required", ErrValidation)
	}
	if err := CheckDate("log date", l.Date); err != nil {
		return err
	}
	if l.ActualValue < 0 {
		return fmt.Errorf("%w: actual value must not be negative", ErrValidation)
	}
	return nil
}
