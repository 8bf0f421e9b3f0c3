package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ConnorXwolf/EnergyTracker/internal/model"
	"github.com/ConnorXwolf/EnergyTracker/internal/views"
)

func (m Model) handleChecklistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Checklist.Capturing {
		switch msg.String() {
		case "esc":
			m.Checklist.Capturing = false
			m.quickAddInput.Blur()
			m.quickAddInput.SetValue("")
			m.Checklist.Input = ""
			m.Status = StatusBar{Text: "checklist list mode", IsError: false}
			return m, nil
		case "enter":
			title := strings.TrimSpace(m.quickAddInput.Value())
			m.Checklist.Capturing = false
			m.quickAddInput.Blur()
			m.quickAddInput.SetValue("")
			m.Checklist.Input = ""
			if title == "" {
				return m, nil
			}
			m.Status = StatusBar{Text: "task added: " + title, IsError: false}
			return m, m.addTaskCmd(title)
		}
		var cmd tea.Cmd
		m.quickAddInput, cmd = m.quickAddInput.Update(msg)
		m.Checklist.Input = m.quickAddInput.Value()
		return m, cmd
	}

	total := len(m.Checklist.Progress) + len(m.Checklist.Tasks)
	switch msg.String() {
	case "up", "k":
		if m.Checklist.Cursor > 0 {
			m.Checklist.Cursor--
		}
	case "down", "j":
		if m.Checklist.Cursor < total-1 {
			m.Checklist.Cursor++
		}
	case "h":
		return m, shiftFocusDateCmd(m.FocusDate, -1)
	case "l":
		return m, shiftFocusDateCmd(m.FocusDate, 1)
	case "a":
		m.Checklist.Capturing = true
		m.quickAddInput.Focus()
		m.Status = StatusBar{Text: "checklist capture mode", IsError: false}
	case "enter", " ":
		return m.toggleAtCursor()
	case "d":
		if idx := m.Checklist.Cursor - len(m.Checklist.Progress); idx >= 0 && idx < len(m.Checklist.Tasks) {
			task := m.Checklist.Tasks[idx]
			m.Status = StatusBar{Text: "task deleted: " + task.Title, IsError: false}
			return m, m.deleteTaskCmd(task)
		}
	}
	return m, nil
}

func (m Model) toggleAtCursor() (tea.Model, tea.Cmd) {
	if m.Checklist.Cursor < len(m.Checklist.Progress) {
		entry := m.Checklist.Progress[m.Checklist.Cursor]
		return m, m.toggleExerciseCmd(entry.Exercise, entry)
	}
	idx := m.Checklist.Cursor - len(m.Checklist.Progress)
	if idx < len(m.Checklist.Tasks) {
		return m, m.toggleTaskCmd(m.Checklist.Tasks[idx])
	}
	return m, nil
}

func (m Model) renderChecklistView() string {
	exercises := make([]views.ChecklistExerciseData, 0, len(m.Checklist.Progress))
	for _, entry := range m.Checklist.Progress {
		exercises = append(exercises, views.ChecklistExerciseData{
			Name:         entry.Exercise.Name,
			Color:        entry.Exercise.Color,
			Target:       entry.Exercise.TargetValue,
			Actual:       entry.Actual,
			Unit:         string(entry.Exercise.Unit),
			Percent:      entry.Percent,
			Completed:    entry.Completed,
			Notes:        entry.Notes,
			ProgressView: m.exerciseBar.ViewAs(float64(entry.Percent) / 100),
		})
	}

	tasks := make([]views.ChecklistTaskData, 0, len(m.Checklist.Tasks))
	for _, task := range m.Checklist.Tasks {
		tasks = append(tasks, views.ChecklistTaskData{
			Title:     task.Title,
			Completed: task.Completed,
			Priority:  model.PriorityLabel(task.Priority),
			DueDate:   task.DueDate,
			Overdue:   task.Overdue(m.FocusDate),
		})
	}

	return views.RenderChecklistPanel(views.ChecklistPanelData{
		Date:         m.FocusDate,
		Exercises:    exercises,
		Tasks:        tasks,
		Cursor:       m.Checklist.Cursor,
		QuickAddView: m.quickAddInput.View(),
		Capturing:    m.Checklist.Capturing,
	})
}
