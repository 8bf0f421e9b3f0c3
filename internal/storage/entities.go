package storage

import "time"

type Exercise struct {
	ID          int64
	Name        string
	Category    string
	Color       string
	TargetValue int
	Unit        string
	CreatedAt   time.Time
}

type ExerciseLog struct {
	ID          int64
	ExerciseID  int64
	Date        string
	Completed   bool
	ActualValue int
	Notes       string
	LoggedAt    time.Time
}

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

type Event struct {
	ID          int64
	Title       string
	Date        string
	Description string
	CreatedAt   time.Time
}

type DailyPoints struct {
	Date      string
	Physical  int
	Mental    int
	Score     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type LogListFilter struct {
	ExerciseID int64
	Date       string
	From       string
	To         string
}

type TaskListFilter struct {
	Date      string
	From      string
	To        string
	Category  string
	Completed *bool
}

type EventListFilter struct {
	Date string
	From string
	To   string
}
