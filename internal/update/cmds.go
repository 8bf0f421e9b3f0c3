package update

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ConnorXwolf/EnergyTracker/internal/manager"
	"github.com/ConnorXwolf/EnergyTracker/internal/model"
	"github.com/ConnorXwolf/EnergyTracker/internal/storage"
)

func (m Model) loadChecklistCmd() tea.Cmd {
	exercises := m.managers.Exercises
	tasks := m.managers.Tasks
	if exercises == nil || tasks == nil {
		return nil
	}
	date := m.FocusDate
	return func() tea.Msg {
		ctx := context.Background()
		progress, err := exercises.DayProgress(ctx, date)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		dayTasks, err := tasks.List(ctx, manager.TaskFilter{Date: date})
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return ChecklistLoadedMsg{Date: date, Progress: progress, Tasks: dayTasks}
	}
}

func (m Model) loadPointsCmd() tea.Cmd {
	points := m.managers.Points
	if points == nil {
		return nil
	}
	date := m.FocusDate
	return func() tea.Msg {
		ctx := context.Background()
		msg := PointsLoadedMsg{Date: date}
		current, err := points.ByDate(ctx, date)
		switch {
		case err == nil:
			msg.Points = current
			msg.Found = true
		case errors.Is(err, storage.ErrNotFound):
		default:
			return AppErrorMsg{Err: err}
		}
		recent, err := points.Range(ctx, model.AddDays(date, -6), date)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		msg.Recent = recent
		return msg
	}
}

func (m Model) loadCalendarCmd() tea.Cmd {
	tasks := m.managers.Tasks
	events := m.managers.Events
	points := m.managers.Points
	if tasks == nil || events == nil || points == nil {
		return nil
	}
	year, month := m.Calendar.Year, m.Calendar.Month
	return func() tea.Msg {
		ctx := context.Background()
		monthTasks, err := tasks.List(ctx, manager.TaskFilter{Year: year, Month: month})
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		monthEvents, err := events.List(ctx, manager.EventFilter{Year: year, Month: month})
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		summary, err := points.MonthSummary(ctx, year, month)
		if err != nil {
			return AppErrorMsg{Err: err}
		}

		agenda := make([]AgendaEntry, 0, len(monthTasks)+len(monthEvents))
		for _, task := range monthTasks {
			detail := model.PriorityLabel(task.Priority)
			if task.Completed {
				detail += ", done"
			}
			agenda = append(agenda, AgendaEntry{Date: task.Date, Kind: "task", Title: task.Title, Detail: detail})
		}
		for _, event := range monthEvents {
			agenda = append(agenda, AgendaEntry{Date: event.Date, Kind: "event", Title: event.Title, Detail: event.Description})
		}
		sortAgenda(agenda)
		return CalendarLoadedMsg{Year: year, Month: month, Agenda: agenda, Summary: summary}
	}
}

func (m Model) savePointsCmd(physical, mental int) tea.Cmd {
	points := m.managers.Points
	if points == nil {
		return nil
	}
	date := m.FocusDate
	return func() tea.Msg {
		saved, err := points.Set(context.Background(), date, physical, mental)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return PointsSavedMsg{Points: saved}
	}
}

func (m Model) toggleExerciseCmd(exercise model.Exercise, entry manager.Progress) tea.Cmd {
	exercises := m.managers.Exercises
	if exercises == nil {
		return nil
	}
	date := m.FocusDate
	value := exercise.TargetValue
	if entry.Completed {
		value = 0
	}
	return func() tea.Msg {
		if _, err := exercises.LogCompletion(context.Background(), exercise.ID, date, value, entry.Notes); err != nil {
			return AppErrorMsg{Err: err}
		}
		return SwitchViewMsg{View: ViewChecklist}
	}
}

func (m Model) logExerciseCmd(exerciseID int64, value int) tea.Cmd {
	exercises := m.managers.Exercises
	if exercises == nil {
		return nil
	}
	date := m.FocusDate
	return func() tea.Msg {
		if _, err := exercises.LogCompletion(context.Background(), exerciseID, date, value, ""); err != nil {
			return AppErrorMsg{Err: err}
		}
		return SwitchViewMsg{View: ViewChecklist}
	}
}

func (m Model) toggleTaskCmd(task model.Task) tea.Cmd {
	tasks := m.managers.Tasks
	if tasks == nil {
		return nil
	}
	return func() tea.Msg {
		var err error
		if task.Completed {
			_, err = tasks.MarkIncomplete(context.Background(), task.ID)
		} else {
			_, err = tasks.MarkComplete(context.Background(), task.ID)
		}
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return SwitchViewMsg{View: ViewChecklist}
	}
}

func (m Model) addTaskCmd(title string) tea.Cmd {
	tasks := m.managers.Tasks
	if tasks == nil {
		return nil
	}
	date := m.FocusDate
	return func() tea.Msg {
		if _, err := tasks.Create(context.Background(), model.Task{Title: title, Date: date}); err != nil {
			return AppErrorMsg{Err: err}
		}
		return SwitchViewMsg{View: ViewChecklist}
	}
}

func (m Model) deleteTaskCmd(task model.Task) tea.Cmd {
	tasks := m.managers.Tasks
	if tasks == nil {
		return nil
	}
	return func() tea.Msg {
		if err := tasks.Delete(context.Background(), task.ID); err != nil {
			return AppErrorMsg{Err: err}
		}
		return SwitchViewMsg{View: ViewChecklist}
	}
}

func (m Model) addExerciseCmd(exercise model.Exercise) tea.Cmd {
	exercises := m.managers.Exercises
	if exercises == nil {
		return nil
	}
	return func() tea.Msg {
		if _, err := exercises.Create(context.Background(), exercise); err != nil {
			return AppErrorMsg{Err: err}
		}
		return SwitchViewMsg{View: ViewChecklist}
	}
}

func (m Model) deleteExerciseCmd(id int64) tea.Cmd {
	exercises := m.managers.Exercises
	if exercises == nil {
		return nil
	}
	return func() tea.Msg {
		if err := exercises.Delete(context.Background(), id); err != nil {
			return AppErrorMsg{Err: err}
		}
		return SwitchViewMsg{View: ViewChecklist}
	}
}

func (m Model) addEventCmd(date, title string) tea.Cmd {
	events := m.managers.Events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		created, err := events.Create(context.Background(), model.Event{Title: title, Date: date})
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return SetStatusMsg{Text: fmt.Sprintf("event added: %s on %s", created.Title, created.Date)}
	}
}
