package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/ConnorXwolf/EnergyTracker/internal/model"
	"github.com/ConnorXwolf/EnergyTracker/internal/storage"
)

// TaskFilter narrows List. Setting Year and Month selects that month's
// tasks; Date selects a single day. Filters combine with AND.
type TaskFilter struct {
	Date      string
	Year      int
	Month     int
	Category  string
	Completed *bool
}

type TaskManager struct {
	repo storage.Repository
}

func NewTaskManager(repo storage.Repository) *TaskManager {
	return &TaskManager{repo: repo}
}

// Create inserts a new task. An empty date defaults to today.
func (m *TaskManager) Create(ctx context.Context, in model.Task) (model.Task, error) {
	if in.Date == "" {
		in.Date = model.Today()
	}
	in.CreatedAt = time.Now()
	in.Completed = false
	in.CompletedAt = nil
	if err := in.Validate(); err != nil {
		return model.Task{}, err
	}
	id, err := m.repo.CreateTask(ctx, taskToStorage(in))
	if err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}
	in.ID = id
	return in, nil
}

func (m *TaskManager) GetByID(ctx context.Context, id int64) (model.Task, error) {
	row, err := m.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, fmt.Errorf("get task %d: %w", id, err)
	}
	return taskFromStorage(row), nil
}

func (m *TaskManager) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	sf := storage.TaskListFilter{Date: filter.Date, Category: filter.Category, Completed: filter.Completed}
	if filter.Date != "" {
		if err := model.CheckDate("filter date", filter.Date); err != nil {
			return nil, err
		}
	}
	if filter.Month != 0 {
		from, to, err := model.MonthBounds(filter.Year, filter.Month)
		if err != nil {
			return nil, err
		}
		sf.From, sf.To = from, to
	}
	rows, err := m.repo.ListTasks(ctx, sf)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	out := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, taskFromStorage(row))
	}
	return out, nil
}

func (m *TaskManager) Update(ctx context.Context, in model.Task) (model.Task, error) {
	if err := in.Validate(); err != nil {
		return model.Task{}, err
	}
	if err := m.repo.UpdateTask(ctx, taskToStorage(in)); err != nil {
		return model.Task{}, fmt.Errorf("update task %d: %w", in.ID, err)
	}
	return in, nil
}

// Delete removes the single task row; nothing cascades.
func (m *TaskManager) Delete(ctx context.Context, id int64) error {
	if err := m.repo.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

// MarkComplete closes the task and stamps completed_at.
func (m *TaskManager) MarkComplete(ctx context.Context, id int64) (model.Task, error) {
	return m.setCompleted(ctx, id, true)
}

// MarkIncomplete reopens the task and clears completed_at.
func (m *TaskManager) MarkIncomplete(ctx context.Context, id int64) (model.Task, error) {
	return m.setCompleted(ctx, id, false)
}

func (m *TaskManager) setCompleted(ctx context.Context, id int64, completed bool) (model.Task, error) {
	task, err := m.GetByID(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	task.Completed = completed
	if completed {
		now := time.Now()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}
	if err := m.repo.UpdateTask(ctx, taskToStorage(task)); err != nil {
		return model.Task{}, fmt.Errorf("update task %d: %w", id, err)
	}
	return task, nil
}

func taskToStorage(in model.Task) storage.Task {
	return storage.Task{
		ID:          in.ID,
		Title:       in.Title,
		Completed:   in.Completed,
		Date:        in.Date,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Category:    in.Category,
		CreatedAt:   in.CreatedAt,
		CompletedAt: in.CompletedAt,
	}
}

func taskFromStorage(in storage.Task) model.Task {
	return model.Task{
		ID:          in.ID,
		Title:       in.Title,
		Completed:   in.Completed,
		Date:        in.Date,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Category:    in.Category,
		CreatedAt:   in.CreatedAt,
		CompletedAt: in.CompletedAt,
	}
}
