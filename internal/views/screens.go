package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type ChecklistExerciseData struct {
	Name         string
	Color        string
	Target       int
	Actual       int
	Unit         string
	Percent      int
	Completed    bool
	Notes        string
	ProgressView string
}

type ChecklistTaskData struct {
	Title     string
	Completed bool
	Priority  string
	DueDate   string
	Overdue   bool
}

type ChecklistPanelData struct {
	Date         string
	Exercises    []ChecklistExerciseData
	Tasks        []ChecklistTaskData
	Cursor       int
	QuickAddView string
	Capturing    bool
}

type PointsDayData struct {
	Date  string
	Score int
}

type PointsPanelData struct {
	Date         string
	PhysicalView string
	MentalView   string
	HasRecord    bool
	Score        int
	Category     string
	Recent       []PointsDayData
}

type AgendaItemData struct {
	Date   string
	Kind   string
	Title  string
	Detail string
}

type CalendarPanelData struct {
	YearMonth    string
	GridView     string
	TableView    string
	Agenda       []AgendaItemData
	Selected     *AgendaItemData
	Recorded     int
	AverageScore float64
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	GuideView   string
}

func RenderChecklistPanel(data ChecklistPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("checklist %s:\n", data.Date))
	b.WriteString("actions: [j/k]move [enter]toggle [a]add task [d]delete [h/l]day\n")

	b.WriteString("\nexercises:\n")
	if len(data.Exercises) == 0 {
		b.WriteString("  (none configured)\n")
	}
	for i, ex := range data.Exercises {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		mark := "[ ]"
		if ex.Completed {
			mark = "[x]"
		}
		name := lipgloss.NewStyle().Foreground(lipgloss.Color(ex.Color)).Render(ex.Name)
		line := fmt.Sprintf("%s %s %s %d/%d %s %s %d%%", cursor, mark, name, ex.Actual, ex.Target, ex.Unit, ex.ProgressView, ex.Percent)
		if ex.Completed {
			line = doneStyle.Render(line)
		}
		b.WriteString(line + "\n")
		if ex.Notes != "" {
			b.WriteString(mutedStyle.Render("      "+ex.Notes) + "\n")
		}
	}

	b.WriteString("\ntasks:\n")
	if len(data.Tasks) == 0 {
		b.WriteString("  (none)\n")
	}
	for i, task := range data.Tasks {
		cursor := " "
		if i+len(data.Exercises) == data.Cursor {
			cursor = ">"
		}
		mark := "[ ]"
		if task.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s %s %s", cursor, mark, priorityBadge(task), task.Title)
		if task.DueDate != "" {
			line += " due:" + task.DueDate
		}
		if task.Completed {
			line = doneStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if data.Capturing {
		b.WriteString("\n" + data.QuickAddView)
	}
	return strings.TrimSpace(b.String())
}

func RenderPointsPanel(data PointsPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("points %s:\n", data.Date))
	b.WriteString("actions: [tab]switch field [enter]save [h/l]day\n\n")
	b.WriteString("physical (0-10): " + data.PhysicalView + "\n")
	b.WriteString("mental   (0-10): " + data.MentalView + "\n\n")
	if data.HasRecord {
		b.WriteString(fmt.Sprintf("score: %d (%s)\n", data.Score, data.Category))
	} else {
		b.WriteString("score: (not recorded)\n")
	}

	if len(data.Recent) > 0 {
		b.WriteString("\nrecent:\n")
		for _, day := range data.Recent {
			b.WriteString(fmt.Sprintf("  %s  %3d %s\n", day.Date, day.Score, scoreBar(day.Score)))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderCalendarPanel(data CalendarPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("calendar %s:\n", data.YearMonth))
	b.WriteString("actions: [h/l]month [j/k]agenda [t]today\n\n")
	b.WriteString(data.GridView + "\n\n")
	b.WriteString(fmt.Sprintf("recorded days: %d | average score: %.1f\n", data.Recorded, data.AverageScore))
	b.WriteString(data.TableView + "\n")

	grouped := make(map[string][]AgendaItemData)
	keys := make([]string, 0)
	for _, item := range data.Agenda {
		if _, ok := grouped[item.Date]; !ok {
			keys = append(keys, item.Date)
		}
		grouped[item.Date] = append(grouped[item.Date], item)
	}
	sort.Strings(keys)

	for _, day := range keys {
		b.WriteString(fmt.Sprintf("\n%s:\n", day))
		for _, item := range grouped[day] {
			cursor := " "
			if data.Selected != nil && *data.Selected == item {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s [%s] %s", cursor, strings.ToUpper(item.Kind), item.Title))
			if item.Detail != "" {
				b.WriteString(" - " + item.Detail)
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help:\n")
	b.WriteString(fmt.Sprintf("view: %s\n", strings.ToLower(data.CurrentView)))
	b.WriteString(strings.Join(data.Bindings, "\n"))
	if data.GuideView != "" {
		b.WriteString("\n\n" + data.GuideView)
	}
	return strings.TrimSpace(b.String())
}

func priorityBadge(task ChecklistTaskData) string {
	if task.Overdue {
		return "[RED]"
	}
	switch task.Priority {
	case "High":
		return "[YELLOW]"
	case "Medium":
		return "[BLUE]"
	default:
		return "[GREEN]"
	}
}

func scoreBar(score int) string {
	filled := score / 10
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}
