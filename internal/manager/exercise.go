// Package manager is the application boundary over storage. Each manager
// validates input client-side before touching the database, so a rejected
// call never mutates state, and maps rows to domain types on the way out.
package manager

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ConnorXwolf/EnergyTracker/internal/model"
	"github.com/ConnorXwolf/EnergyTracker/internal/storage"
)

// MetaKeyExercisesSeeded marks that default exercises were installed; seeding
// runs at most once per database.
const MetaKeyExercisesSeeded = "exercises_seeded"

// SeedExercise is a default exercise definition supplied by configuration at
// first run.
type SeedExercise struct {
	Name        string
	Category    string
	TargetValue int
	Unit        string
}

// Progress is the per-exercise snapshot for one day, feeding the checklist
// progress bars and the ring widget.
type Progress struct {
	Exercise  model.Exercise
	Actual    int
	Percent   int
	Completed bool
	Notes     string
}

type ExerciseManager struct {
	repo storage.Repository
}

func NewExerciseManager(repo storage.Repository) *ExerciseManager {
	return &ExerciseManager{repo: repo}
}

func (m *ExerciseManager) Create(ctx context.Context, in model.Exercise) (model.Exercise, error) {
	in.Normalize()
	if in.Color == "" {
		in.Color = model.CategoryColor(in.Category)
	}
	if err := in.Validate(); err != nil {
		return model.Exercise{}, err
	}
	id, err := m.repo.CreateExercise(ctx, exerciseToStorage(in, time.Now()))
	if err != nil {
		return model.Exercise{}, fmt.Errorf("create exercise: %w", err)
	}
	in.ID = id
	return in, nil
}

func (m *ExerciseManager) GetByID(ctx context.Context, id int64) (model.Exercise, error) {
	row, err := m.repo.GetExercise(ctx, id)
	if err != nil {
		return model.Exercise{}, fmt.Errorf("get exercise %d: %w", id, err)
	}
	return exerciseFromStorage(row), nil
}

func (m *ExerciseManager) List(ctx context.Context) ([]model.Exercise, error) {
	rows, err := m.repo.ListExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	out := make([]model.Exercise, 0, len(rows))
	for _, row := range rows {
		out = append(out, exerciseFromStorage(row))
	}
	return out, nil
}

func (m *ExerciseManager) Update(ctx context.Context, in model.Exercise) (model.Exercise, error) {
	in.Normalize()
	if in.Color == "" {
		in.Color = model.CategoryColor(in.Category)
	}
	if err := in.Validate(); err != nil {
		return model.Exercise{}, err
	}
	if err := m.repo.UpdateExercise(ctx, exerciseToStorage(in, time.Time{})); err != nil {
		return model.Exercise{}, fmt.Errorf("update exercise %d: %w", in.ID, err)
	}
	return in, nil
}

// Delete removes the exercise and, through the schema cascade, every log
// recorded against it.
func (m *ExerciseManager) Delete(ctx context.Context, id int64) error {
	if err := m.repo.DeleteExercise(ctx, id); err != nil {
		return fmt.Errorf("delete exercise %d: %w", id, err)
	}
	return nil
}

// CreateLog inserts a strict new log; a second log for the same exercise and
// date is a conflict.
func (m *ExerciseManager) CreateLog(ctx context.Context, in model.ExerciseLog) (model.ExerciseLog, error) {
	if err := in.Validate(); err != nil {
		return model.ExerciseLog{}, err
	}
	if _, err := m.repo.GetExercise(ctx, in.ExerciseID); err != nil {
		return model.ExerciseLog{}, fmt.Errorf("log target exercise %d: %w", in.ExerciseID, err)
	}
	id, err := m.repo.CreateLog(ctx, logToStorage(in, time.Now()))
	if err != nil {
		return model.ExerciseLog{}, fmt.Errorf("create log: %w", err)
	}
	in.ID = id
	return in, nil
}

// LogCompletion upserts the day's record for an exercise. Completion is
// derived from the target: reaching it marks the log completed.
func (m *ExerciseManager) LogCompletion(ctx context.Context, exerciseID int64, date string, actualValue int, notes string) (model.ExerciseLog, error) {
	exercise, err := m.repo.GetExercise(ctx, exerciseID)
	if err != nil {
		return model.ExerciseLog{}, fmt.Errorf("log target exercise %d: %w", exerciseID, err)
	}
	log := model.ExerciseLog{
		ExerciseID:  exerciseID,
		Date:        date,
		ActualValue: actualValue,
		Completed:   actualValue >= exercise.TargetValue,
		Notes:       notes,
	}
	if err := log.Validate(); err != nil {
		return model.ExerciseLog{}, err
	}
	if err := m.repo.UpsertLog(ctx, logToStorage(log, time.Now())); err != nil {
		return model.ExerciseLog{}, fmt.Errorf("log completion: %w", err)
	}
	rows, err := m.repo.ListLogs(ctx, storage.LogListFilter{ExerciseID: exerciseID, Date: date})
	if err != nil || len(rows) == 0 {
		if err == nil {
			err = storage.ErrNotFound
		}
		return model.ExerciseLog{}, fmt.Errorf("read back log: %w", err)
	}
	return logFromStorage(rows[0]), nil
}

func (m *ExerciseManager) LogsByDate(ctx context.Context, date string) ([]model.ExerciseLog, error) {
	if err := model.CheckDate("log date", date); err != nil {
		return nil, err
	}
	return m.listLogs(ctx, storage.LogListFilter{Date: date})
}

func (m *ExerciseManager) LogsByRange(ctx context.Context, from, to string) ([]model.ExerciseLog, error) {
	if err := model.CheckDate("range start", from); err != nil {
		return nil, err
	}
	if err := model.CheckDate("range end", to); err != nil {
		return nil, err
	}
	return m.listLogs(ctx, storage.LogListFilter{From: from, To: to})
}

func (m *ExerciseManager) listLogs(ctx context.Context, filter storage.LogListFilter) ([]model.ExerciseLog, error) {
	rows, err := m.repo.ListLogs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	out := make([]model.ExerciseLog, 0, len(rows))
	for _, row := range rows {
		out = append(out, logFromStorage(row))
	}
	return out, nil
}

// DayProgress joins every exercise with its log for the date, logged or not,
// in definition order.
func (m *ExerciseManager) DayProgress(ctx context.Context, date string) ([]Progress, error) {
	if err := model.CheckDate("progress date", date); err != nil {
		return nil, err
	}
	exercises, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := m.listLogs(ctx, storage.LogListFilter{Date: date})
	if err != nil {
		return nil, err
	}
	byExercise := make(map[int64]model.ExerciseLog, len(logs))
	for _, log := range logs {
		byExercise[log.ExerciseID] = log
	}

	out := make([]Progress, 0, len(exercises))
	for _, exercise := range exercises {
		p := Progress{Exercise: exercise}
		if log, ok := byExercise[exercise.ID]; ok {
			p.Actual = log.ActualValue
			p.Completed = log.Completed
			p.Notes = log.Notes
			p.Percent = log.ActualValue * 100 / exercise.TargetValue
			if p.Percent > 100 {
				p.Percent = 100
			}
		}
		out = append(out, p)
	}
	return out, nil
}

// SeedDefaults installs the configured default exercises once per database,
// gated by a metadata key. It returns how many definitions were inserted.
func (m *ExerciseManager) SeedDefaults(ctx context.Context, seeds []SeedExercise) (int, error) {
	if _, err := m.repo.GetMeta(ctx, MetaKeyExercisesSeeded); err == nil {
		return 0, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return 0, fmt.Errorf("read seed marker: %w", err)
	}

	inserted := 0
	for _, seed := range seeds {
		exercise := model.Exercise{
			Name:        seed.Name,
			Category:    model.Category(seed.Category),
			TargetValue: seed.TargetValue,
			Unit:        model.Unit(seed.Unit),
		}
		if _, err := m.Create(ctx, exercise); err != nil {
			return inserted, fmt.Errorf("seed exercise %q: %w", seed.Name, err)
		}
		inserted++
	}
	if err := m.repo.SetMeta(ctx, MetaKeyExercisesSeeded, model.Today()); err != nil {
		return inserted, fmt.Errorf("write seed marker: %w", err)
	}
	return inserted, nil
}

func exerciseToStorage(in model.Exercise, createdAt time.Time) storage.Exercise {
	return storage.Exercise{
		ID:          in.ID,
		Name:        in.Name,
		Category:    string(in.Category),
		Color:       in.Color,
		TargetValue: in.TargetValue,
		Unit:        string(in.Unit),
		CreatedAt:   createdAt,
	}
}

func exerciseFromStorage(in storage.Exercise) model.Exercise {
	return model.Exercise{
		ID:          in.ID,
		Name:        in.Name,
		Category:    model.Category(in.Category),
		Color:       in.Color,
		TargetValue: in.TargetValue,
		Unit:        model.Unit(in.Unit),
	}
}

func logToStorage(in model.ExerciseLog, loggedAt time.Time) storage.ExerciseLog {
	return storage.ExerciseLog{
		ID:          in.ID,
		ExerciseID:  in.ExerciseID,
		Date:        in.Date,
		Completed:   in.Completed,
		ActualValue: in.ActualValue,
		Notes:       in.Notes,
		LoggedAt:    loggedAt,
	}
}

func logFromStorage(in storage.ExerciseLog) model.ExerciseLog {
	return model.ExerciseLog{
		ID:          in.ID,
		ExerciseID:  in.ExerciseID,
		Date:        in.Date,
		Completed:   in.Completed,
		ActualValue: in.ActualValue,
		Notes:       in.Notes,
	}
}
