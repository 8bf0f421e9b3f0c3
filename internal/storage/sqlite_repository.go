package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateExercise(ctx context.Context, in Exercise) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO exercises (name, category, color, target_value, unit, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.Name, in.Category, in.Color, in.TargetValue, in.Unit, mustTime(in.CreatedAt),
	)
	if err != nil {
		return 0, mapConstraintErr(err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) GetExercise(ctx context.Context, id int64) (Exercise, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, category, color, target_value, unit, created_at
		FROM exercises WHERE id = ?`, id)
	item, err := scanExercise(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Exercise{}, ErrNotFound
		}
		return Exercise{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateExercise(ctx context.Context, in Exercise) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE exercises
		SET name = ?, category = ?, color = ?, target_value = ?, unit = ?
		WHERE id = ?`,
		in.Name, in.Category, in.Color, in.TargetValue, in.Unit, in.ID,
	)
	if err != nil {
		return mapConstraintErr(err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteExercise(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListExercises(ctx context.Context) ([]Exercise, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, category, color, target_value, unit, created_at
		FROM exercises ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Exercise, 0)
	for rows.Next() {
		item, scanErr := scanExercise(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateLog(ctx context.Context, in ExerciseLog) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO exercise_logs (exercise_id, date, completed, actual_value, notes, logged_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ExerciseID, in.Date, boolInt(in.Completed), in.ActualValue, in.Notes, mustTime(in.LoggedAt),
	)
	if err != nil {
		return 0, mapConstraintErr(err)
	}
	return res.LastInsertId()
}

// UpsertLog writes the day's log for an exercise in one statement so the row
// is either fully the old version or fully the new one.
func (r *SQLiteRepository) UpsertLog(ctx context.Context, in ExerciseLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO exercise_logs (exercise_id, date, completed, actual_value, notes, logged_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (exercise_id, date) DO UPDATE SET
			completed = excluded.completed,
			actual_value = excluded.actual_value,
			notes = excluded.notes,
			logged_at = excluded.logged_at`,
		in.ExerciseID, in.Date, boolInt(in.Completed), in.ActualValue, in.Notes, mustTime(in.LoggedAt),
	)
	return mapConstraintErr(err)
}

func (r *SQLiteRepository) GetLog(ctx context.Context, id int64) (ExerciseLog, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, exercise_id, date, completed, actual_value, notes, logged_at
		FROM exercise_logs WHERE id = ?`, id)
	item, err := scanLog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ExerciseLog{}, ErrNotFound
		}
		return ExerciseLog{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) ListLogs(ctx context.Context, filter LogListFilter) ([]ExerciseLog, error) {
	query := `SELECT id, exercise_id, date, completed, actual_value, notes, logged_at FROM exercise_logs`
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 3)
	if filter.ExerciseID > 0 {
		clauses = append(clauses, "exercise_id = ?")
		args = append(args, filter.ExerciseID)
	}
	if filter.Date != "" {
		clauses = append(clauses, "date = ?")
		args = append(args, filter.Date)
	}
	if filter.From != "" && filter.To != "" {
		clauses = append(clauses, "date BETWEEN ? AND ?")
		args = append(args, filter.From, filter.To)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY date ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ExerciseLog, 0)
	for rows.Next() {
		item, scanErr := scanLog(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in Task) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (title, is_completed, date, due_date, priority, category, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Title, boolInt(in.Completed), in.Date, nullStr(in.DueDate), in.Priority, in.Category,
		mustTime(in.CreatedAt), nullTime(in.CompletedAt),
	)
	if err != nil {
		return 0, mapConstraintErr(err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, is_completed, date, due_date, priority, category, created_at, completed_at
		FROM tasks WHERE id = ?`, id)
	item, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, is_completed = ?, date = ?, due_date = ?, priority = ?, category = ?, completed_at = ?
		WHERE id = ?`,
		in.Title, boolInt(in.Completed), in.Date, nullStr(in.DueDate), in.Priority, in.Category,
		nullTime(in.CompletedAt), in.ID,
	)
	if err != nil {
		return mapConstraintErr(err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error) {
	query := `SELECT id, title, is_completed, date, due_date, priority, category, created_at, completed_at FROM tasks`
	clauses := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if filter.Date != "" {
		clauses = append(clauses, "date = ?")
		args = append(args, filter.Date)
	}
	if filter.From != "" && filter.To != "" {
		clauses = append(clauses, "date BETWEEN ? AND ?")
		args = append(args, filter.From, filter.To)
	}
	if filter.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Completed != nil {
		clauses = append(clauses, "is_completed = ?")
		args = append(args, boolInt(*filter.Completed))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY date ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		item, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateEvent(ctx context.Context, in Event) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO events (title, event_date, description, created_at)
		VALUES (?, ?, ?, ?)`,
		in.Title, in.Date, in.Description, mustTime(in.CreatedAt),
	)
	if err != nil {
		return 0, mapConstraintErr(err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) GetEvent(ctx context.Context, id int64) (Event, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, event_date, description, created_at
		FROM events WHERE id = ?`, id)
	item, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Event{}, ErrNotFound
		}
		return Event{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateEvent(ctx context.Context, in Event) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE events
		SET title = ?, event_date = ?, description = ?
		WHERE id = ?`,
		in.Title, in.Date, in.Description, in.ID,
	)
	if err != nil {
		return mapConstraintErr(err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteEvent(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListEvents(ctx context.Context, filter EventListFilter) ([]Event, error) {
	query := `SELECT id, title, event_date, description, created_at FROM events`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 2)
	if filter.Date != "" {
		clauses = append(clauses, "event_date = ?")
		args = append(args, filter.Date)
	}
	if filter.From != "" && filter.To != "" {
		clauses = append(clauses, "event_date BETWEEN ? AND ?")
		args = append(args, filter.From, filter.To)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY event_date ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Event, 0)
	for rows.Next() {
		item, scanErr := scanEvent(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetDailyPoints(ctx context.Context, date string) (DailyPoints, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT date, physical, mental, score, created_at, updated_at
		FROM daily_points WHERE date = ?`, date)
	item, err := scanDailyPoints(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DailyPoints{}, ErrNotFound
		}
		return DailyPoints{}, err
	}
	return item, nil
}

// UpsertDailyPoints writes the sub-metrics and the derived score in a single
// statement. A reader can never observe a score stale relative to the inputs.
func (r *SQLiteRepository) UpsertDailyPoints(ctx context.Context, in DailyPoints) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_points (date, physical, mental, score, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (date) DO UPDATE SET
			physical = excluded.physical,
			mental = excluded.mental,
			score = excluded.score,
			updated_at = excluded.updated_at`,
		in.Date, in.Physical, in.Mental, in.Score, mustTime(in.CreatedAt), mustTime(in.UpdatedAt),
	)
	return mapConstraintErr(err)
}

func (r *SQLiteRepository) ListDailyPoints(ctx context.Context, from, to string) ([]DailyPoints, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, physical, mental, score, created_at, updated_at
		FROM daily_points
		WHERE date BETWEEN ? AND ?
		ORDER BY date ASC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DailyPoints, 0)
	for rows.Next() {
		item, scanErr := scanDailyPoints(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetMeta(ctx context.Context, key string) (string, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM app_metadata WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *SQLiteRepository) SetMeta(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO app_metadata (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		key, value, mustTime(time.Now()),
	)
	return err
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func nullStr(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// mapConstraintErr turns SQLite unique and primary-key violations into
// ErrConflict. Everything else passes through as a storage failure.
func mapConstraintErr(err error) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		switch se.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %v", ErrConflict, err)
		}
	}
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExercise(s scanner) (Exercise, error) {
	var out Exercise
	var created string
	if err := s.Scan(&out.ID, &out.Name, &out.Category, &out.Color, &out.TargetValue, &out.Unit, &created); err != nil {
		return Exercise{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Exercise{}, err
	}
	out.CreatedAt = createdAt
	return out, nil
}

func scanLog(s scanner) (ExerciseLog, error) {
	var out ExerciseLog
	var completed int
	var logged string
	if err := s.Scan(&out.ID, &out.ExerciseID, &out.Date, &completed, &out.ActualValue, &out.Notes, &logged); err != nil {
		return ExerciseLog{}, err
	}
	loggedAt, err := parseRequiredTime(logged)
	if err != nil {
		return ExerciseLog{}, err
	}
	out.Completed = completed == 1
	out.LoggedAt = loggedAt
	return out, nil
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var completed int
	var due sql.NullString
	var created string
	var completedAtRaw sql.NullString
	if err := s.Scan(&out.ID, &out.Title, &completed, &out.Date, &due, &out.Priority, &out.Category, &created, &completedAtRaw); err != nil {
		return Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Task{}, err
	}
	completedAt, err := parseNullableTime(completedAtRaw)
	if err != nil {
		return Task{}, err
	}
	out.Completed = completed == 1
	if due.Valid {
		out.DueDate = due.String
	}
	out.CreatedAt = createdAt
	out.CompletedAt = completedAt
	return out, nil
}

func scanEvent(s scanner) (Event, error) {
	var out Event
	var created string
	if err := s.Scan(&out.ID, &out.Title, &out.Date, &out.Description, &created); err != nil {
		return Event{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Event{}, err
	}
	out.CreatedAt = createdAt
	return out, nil
}

func scanDailyPoints(s scanner) (DailyPoints, error) {
	var out DailyPoints
	var created string
	var updated string
	if err := s.Scan(&out.Date, &out.Physical, &out.Mental, &out.Score, &created, &updated); err != nil {
		return DailyPoints{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return DailyPoints{}, err
	}
	updatedAt, err := parseRequiredTime(updated)
	if err != nil {
		return DailyPoints{}, err
	}
	out.CreatedAt = createdAt
	out.UpdatedAt = updatedAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
