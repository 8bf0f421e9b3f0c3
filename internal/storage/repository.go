package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("storage: not found")
	ErrConflict = errors.New("storage: conflict")
)

type Repository interface {
	CreateExercise(ctx context.Context, in Exercise) (int64, error)
	GetExercise(ctx context.Context, id int64) (Exercise, error)
	UpdateExercise(ctx context.Context, in Exercise) error
	DeleteExercise(ctx context.Context, id int64) error
	ListExercises(ctx context.Context) ([]Exercise, error)

	CreateLog(ctx context.Context, in ExerciseLog) (int64, error)
	UpsertLog(ctx context.Context, in ExerciseLog) error
	GetLog(ctx context.Context, id int64) (ExerciseLog, error)
	ListLogs(ctx context.Context, filter LogListFilter) ([]ExerciseLog, error)

	CreateTask(ctx context.Context, in Task) (int64, error)
	GetTask(ctx context.Context, id int64) (Task, error)
	UpdateTask(ctx context.Context, in Task) error
	DeleteTask(ctx context.Context, id int64) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error)

	CreateEvent(ctx context.Context, in Event) (int64, error)
	GetEvent(ctx context.Context, id int64) (Event, error)
	UpdateEvent(ctx context.Context, in Event) error
	DeleteEvent(ctx context.Context, id int64) error
	ListEvents(ctx context.Context, filter EventListFilter) ([]Event, error)

	GetDailyPoints(ctx context.Context, date string) (DailyPoints, error)
	UpsertDailyPoints(ctx context.Context, in DailyPoints) error
	ListDailyPoints(ctx context.Context, from, to string) ([]DailyPoints, error)

	GetMeta(ctx context.Context, key string) (string, error)
	SetMeta(ctx context.Context, key, value string) error
}
