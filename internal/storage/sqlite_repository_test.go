package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "energytracker-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func testTime(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func createExercise(t *testing.T, repo *SQLiteRepository, name string) int64 {
	t.Helper()
	id, err := repo.CreateExercise(context.Background(), Exercise{
		Name:        name,
		Category:    "stretch",
		Color:       "#81C784",
		TargetValue: 30,
		Unit:        "minutes",
		CreatedAt:   testTime(t, "2026-08-30T08:00:00Z"),
	})
	if err != nil {
		t.Fatalf("create exercise %q: %v", name, err)
	}
	return id
}

func TestExerciseCRUDAndRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	id := createExercise(t, repo, "Stretching")

	got, err := repo.GetExercise(ctx, id)
	if err != nil {
		t.Fatalf("get exercise: %v", err)
	}
	if got.Name != "Stretching" || got.Unit != "minutes" || got.TargetValue != 30 {
		t.Fatalf("unexpected exercise: %#v", got)
	}

	got.TargetValue = 45
	if err := repo.UpdateExercise(ctx, got); err != nil {
		t.Fatalf("update exercise: %v", err)
	}

	after, err := repo.GetExercise(ctx, id)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if after.TargetValue != 45 {
		t.Fatalf("target not updated: %#v", after)
	}
	if after.Name != got.Name || after.Category != got.Category || after.Color != got.Color || after.Unit != got.Unit {
		t.Fatalf("update touched unrelated fields: %#v", after)
	}

	if err := repo.DeleteExercise(ctx, id); err != nil {
		t.Fatalf("delete exercise: %v", err)
	}
	if _, err := repo.GetExercise(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestDuplicateExerciseNameConflicts(t *testing.T) {
	repo := setupRepo(t)
	createExercise(t, repo, "Yoga")

	_, err := repo.CreateExercise(context.Background(), Exercise{
		Name:        "Yoga",
		Category:    "cardio",
		Color:       "#E57373",
		TargetValue: 10,
		Unit:        "minutes",
		CreatedAt:   testTime(t, "2026-08-30T09:00:00Z"),
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got: %v", err)
	}
}

func TestLogUniquePerExerciseAndDate(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	id := createExercise(t, repo, "Walking")
	logged := testTime(t, "2026-08-30T10:00:00Z")

	if _, err := repo.CreateLog(ctx, ExerciseLog{ExerciseID: id, Date: "2026-08-30", ActualValue: 20, LoggedAt: logged}); err != nil {
		t.Fatalf("create log: %v", err)
	}
	_, err := repo.CreateLog(ctx, ExerciseLog{ExerciseID: id, Date: "2026-08-30", ActualValue: 25, LoggedAt: logged})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate log, got: %v", err)
	}

	// Same exercise on another day and another exercise on the same day are fine.
	if _, err := repo.CreateLog(ctx, ExerciseLog{ExerciseID: id, Date: "2026-08-31", ActualValue: 15, LoggedAt: logged}); err != nil {
		t.Fatalf("create log next day: %v", err)
	}
	other := createExercise(t, repo, "Swimming")
	if _, err := repo.CreateLog(ctx, ExerciseLog{ExerciseID: other, Date: "2026-08-30", ActualValue: 1, LoggedAt: logged}); err != nil {
		t.Fatalf("create log other exercise: %v", err)
	}
}

func TestUpsertLogReplacesInPlace(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	id := createExercise(t, repo, "Walking")
	logged := testTime(t, "2026-08-30T10:00:00Z")

	if err := repo.UpsertLog(ctx, ExerciseLog{ExerciseID: id, Date: "2026-08-30", ActualValue: 10, LoggedAt: logged}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.UpsertLog(ctx, ExerciseLog{ExerciseID: id, Date: "2026-08-30", ActualValue: 30, Completed: true, Notes: "felt good", LoggedAt: logged.Add(time.Hour)}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	logs, err := repo.ListLogs(ctx, LogListFilter{ExerciseID: id, Date: "2026-08-30"})
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected one log after upsert, got %d", len(logs))
	}
	if logs[0].ActualValue != 30 || !logs[0].Completed || logs[0].Notes != "felt good" {
		t.Fatalf("unexpected log after upsert: %#v", logs[0])
	}
}

func TestDeleteExerciseCascadesToLogs(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	id := createExercise(t, repo, "Cycling")
	keep := createExercise(t, repo, "Rowing")
	logged := testTime(t, "2026-08-30T10:00:00Z")

	for _, date := range []string{"2026-08-28", "2026-08-29", "2026-08-30"} {
		if _, err := repo.CreateLog(ctx, ExerciseLog{ExerciseID: id, Date: date, ActualValue: 5, LoggedAt: logged}); err != nil {
			t.Fatalf("create log: %v", err)
		}
	}
	if _, err := repo.CreateLog(ctx, ExerciseLog{ExerciseID: keep, Date: "2026-08-30", ActualValue: 5, LoggedAt: logged}); err != nil {
		t.Fatalf("create kept log: %v", err)
	}

	if err := repo.DeleteExercise(ctx, id); err != nil {
		t.Fatalf("delete exercise: %v", err)
	}

	gone, err := repo.ListLogs(ctx, LogListFilter{ExerciseID: id})
	if err != nil {
		t.Fatalf("list deleted logs: %v", err)
	}
	if len(gone) != 0 {
		t.Fatalf("expected cascade to remove logs, found %d", len(gone))
	}

	kept, err := repo.ListLogs(ctx, LogListFilter{ExerciseID: keep})
	if err != nil {
		t.Fatalf("list kept logs: %v", err)
	}
	if len(kept) != 1 {
		t.Fatalf("cascade removed unrelated logs: %#v", kept)
	}
}

func TestListOrderingDateThenID(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := testTime(t, "2026-08-30T08:00:00Z")

	// Insert out of date order; same-date rows tie-break by id.
	for _, in := range []Task{
		{Title: "c", Date: "2026-09-02", CreatedAt: created},
		{Title: "a", Date: "2026-09-01", CreatedAt: created},
		{Title: "b", Date: "2026-09-01", CreatedAt: created},
	} {
		if _, err := repo.CreateTask(ctx, in); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	tasks, err := repo.ListTasks(ctx, TaskListFilter{})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "a" || tasks[1].Title != "b" || tasks[2].Title != "c" {
		t.Fatalf("unexpected order: %q %q %q", tasks[0].Title, tasks[1].Title, tasks[2].Title)
	}
	for i := 1; i < len(tasks); i++ {
		if tasks[i].Date < tasks[i-1].Date {
			t.Fatalf("dates not non-decreasing: %#v", tasks)
		}
		if tasks[i].Date == tasks[i-1].Date && tasks[i].ID < tasks[i-1].ID {
			t.Fatalf("ids not ascending within date: %#v", tasks)
		}
	}
}

func TestTaskCRUDAndFilters(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := testTime(t, "2026-08-30T08:00:00Z")

	id, err := repo.CreateTask(ctx, Task{
		Title:     "Pack schoolbag",
		Date:      "2026-08-30",
		DueDate:   "2026-09-01",
		Priority:  2,
		Category:  "school",
		CreatedAt: created,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := repo.CreateTask(ctx, Task{Title: "Other", Date: "2026-08-31", CreatedAt: created}); err != nil {
		t.Fatalf("create second task: %v", err)
	}

	got, err := repo.GetTask(ctx, id)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.DueDate != "2026-09-01" || got.Priority != 2 || got.Category != "school" {
		t.Fatalf("unexpected task: %#v", got)
	}

	done := testTime(t, "2026-08-30T20:00:00Z")
	got.Completed = true
	got.CompletedAt = &done
	if err := repo.UpdateTask(ctx, got); err != nil {
		t.Fatalf("update task: %v", err)
	}

	completed := true
	byState, err := repo.ListTasks(ctx, TaskListFilter{Completed: &completed})
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(byState) != 1 || byState[0].ID != id || byState[0].CompletedAt == nil {
		t.Fatalf("unexpected completed list: %#v", byState)
	}

	byCategory, err := repo.ListTasks(ctx, TaskListFilter{Category: "school"})
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].ID != id {
		t.Fatalf("unexpected category list: %#v", byCategory)
	}

	byRange, err := repo.ListTasks(ctx, TaskListFilter{From: "2026-08-01", To: "2026-08-30"})
	if err != nil {
		t.Fatalf("list by range: %v", err)
	}
	if len(byRange) != 1 || byRange[0].ID != id {
		t.Fatalf("unexpected range list: %#v", byRange)
	}

	// Deleting a task removes only that row.
	if err := repo.DeleteTask(ctx, id); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	rest, err := repo.ListTasks(ctx, TaskListFilter{})
	if err != nil {
		t.Fatalf("list remaining: %v", err)
	}
	if len(rest) != 1 || rest[0].Title != "Other" {
		t.Fatalf("unexpected remaining tasks: %#v", rest)
	}
}

func TestEventCRUDAndRange(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	created := testTime(t, "2026-08-30T10:00:00Z")
	id, err := repo.CreateEvent(ctx, Event{Title: "Clinic visit", Date: "2026-09-03", Description: "bring referral", CreatedAt: created})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if _, err := repo.CreateEvent(ctx, Event{Title: "Birthday", Date: "2026-10-01", CreatedAt: created}); err != nil {
		t.Fatalf("create second event: %v", err)
	}

	got, err := repo.GetEvent(ctx, id)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if got.Description != "bring referral" {
		t.Fatalf("unexpected event: %#v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("expected created_at %v, got %v", created, got.CreatedAt)
	}

	got.Title = "Clinic follow-up"
	if err := repo.UpdateEvent(ctx, got); err != nil {
		t.Fatalf("update event: %v", err)
	}

	september, err := repo.ListEvents(ctx, EventListFilter{From: "2026-09-01", To: "2026-09-30"})
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(september) != 1 || september[0].Title != "Clinic follow-up" {
		t.Fatalf("unexpected september events: %#v", september)
	}

	if err := repo.DeleteEvent(ctx, id); err != nil {
		t.Fatalf("delete event: %v", err)
	}
	if err := repo.DeleteEvent(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got: %v", err)
	}
}

func TestDailyPointsUpsertKeepsOneRow(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := testTime(t, "2026-08-30T08:00:00Z")

	first := DailyPoints{Date: "2026-08-30", Physical: 3, Mental: 4, Score: 48, CreatedAt: now, UpdatedAt: now}
	if err := repo.UpsertDailyPoints(ctx, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	later := now.Add(2 * time.Hour)
	second := DailyPoints{Date: "2026-08-30", Physical: 7, Mental: 8, Score: 80, CreatedAt: later, UpdatedAt: later}
	if err := repo.UpsertDailyPoints(ctx, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	rows, err := repo.ListDailyPoints(ctx, "2026-08-01", "2026-08-31")
	if err != nil {
		t.Fatalf("list points: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row per date, got %d", len(rows))
	}
	got := rows[0]
	if got.Physical != 7 || got.Mental != 8 || got.Score != 80 {
		t.Fatalf("row does not match latest write: %#v", got)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created_at should survive upsert: %#v", got)
	}
	if !got.UpdatedAt.Equal(later) {
		t.Fatalf("updated_at should move on upsert: %#v", got)
	}
}

func TestDailyPointsCheckConstraints(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := testTime(t, "2026-08-30T08:00:00Z")

	// Out-of-range sub-metric is rejected by the schema even if the caller
	// skips validation.
	err := repo.UpsertDailyPoints(ctx, DailyPoints{Date: "2026-08-30", Physical: 11, Mental: 0, Score: 64, CreatedAt: now, UpdatedAt: now})
	if err == nil {
		t.Fatal("expected check constraint failure")
	}

	if _, err := repo.GetDailyPoints(ctx, "2026-08-30"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("no row should be written on failure, got: %v", err)
	}
}

func TestMetaRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if _, err := repo.GetMeta(ctx, "exercises_seeded"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unset key, got: %v", err)
	}
	if err := repo.SetMeta(ctx, "exercises_seeded", "2026-08-30"); err != nil {
		t.Fatalf("set meta: %v", err)
	}
	value, err := repo.GetMeta(ctx, "exercises_seeded")
	if err != nil {
		t.Fatalf("get meta: %v", err)
	}
	if value != "2026-08-30" {
		t.Fatalf("unexpected meta value: %q", value)
	}
	if err := repo.SetMeta(ctx, "exercises_seeded", "2026-08-31"); err != nil {
		t.Fatalf("overwrite meta: %v", err)
	}
	value, err = repo.GetMeta(ctx, "exercises_seeded")
	if err != nil {
		t.Fatalf("get meta after overwrite: %v", err)
	}
	if value != "2026-08-31" {
		t.Fatalf("unexpected meta value: %q", value)
	}
}
