package update

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ConnorXwolf/EnergyTracker/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadChecklistCmd(), m.loadPointsCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}

		keyStr := typed.String()
		if m.CurrentView == ViewChecklist && m.Checklist.Capturing && keyStr != "ctrl+c" {
			return m.handleChecklistKey(typed)
		}
		// Digit keys feed the points inputs, not view switching.
		if m.CurrentView == ViewPoints && isDigitKey(typed) {
			return m.handlePointsKey(typed)
		}

		switch keyStr {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Checklist:
			m.CurrentView = ViewChecklist
			return m, m.loadChecklistCmd()
		case m.Keys.Points:
			m.CurrentView = ViewPoints
			m.physicalInput.Focus()
			m.mentalInput.Blur()
			m.Points.Focused = fieldPhysical
			return m, m.loadPointsCmd()
		case m.Keys.Calendar:
			m.CurrentView = ViewCalendar
			return m, m.loadCalendarCmd()
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewChecklist:
			return m.handleChecklistKey(typed)
		case ViewPoints:
			return m.handlePointsKey(typed)
		case ViewCalendar:
			return m.handleCalendarKey(typed)
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			switch typed.View {
			case ViewChecklist:
				return m, m.loadChecklistCmd()
			case ViewPoints:
				return m, m.loadPointsCmd()
			case ViewCalendar:
				return m, m.loadCalendarCmd()
			}
		}
		return m, nil
	case SetFocusDateMsg:
		m.FocusDate = typed.Date
		m.Calendar.Year = yearOf(typed.Date)
		m.Calendar.Month = monthOf(typed.Date)
		return m, tea.Batch(m.loadChecklistCmd(), m.loadPointsCmd(), m.loadCalendarCmd())
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case ChecklistLoadedMsg:
		if typed.Date == m.FocusDate {
			m.Checklist.Progress = typed.Progress
			m.Checklist.Tasks = typed.Tasks
			m.Checklist.Cursor = clampCursor(m.Checklist.Cursor, len(typed.Progress)+len(typed.Tasks))
		}
		return m, nil
	case PointsLoadedMsg:
		if typed.Date == m.FocusDate {
			m.Points.Current = typed.Points
			m.Points.Has = typed.Found
			m.Points.Recent = typed.Recent
			if typed.Found {
				m.physicalInput.SetValue(strconv.Itoa(typed.Points.Physical))
				m.mentalInput.SetValue(strconv.Itoa(typed.Points.Mental))
			} else {
				// Stale values from the previous day must not leak into an
				// unrecorded date.
				m.physicalInput.SetValue("")
				m.mentalInput.SetValue("")
			}
		}
		return m, nil
	case PointsSavedMsg:
		m.Points.Current = typed.Points
		m.Points.Has = true
		m.Status = StatusBar{Text: fmt.Sprintf("points saved: score %d", typed.Points.Score), IsError: false}
		return m, m.loadPointsCmd()
	case CalendarLoadedMsg:
		if typed.Year == m.Calendar.Year && typed.Month == m.Calendar.Month {
			m.Calendar.Agenda = typed.Agenda
			m.Calendar.Summary = typed.Summary
			m.Calendar.Cursor = clampCursor(m.Calendar.Cursor, len(typed.Agenda))
			m.syncAgendaTable()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	body := ""
	switch m.CurrentView {
	case ViewChecklist:
		body = m.renderChecklistView()
	case ViewPoints:
		body = m.renderPointsView()
	case ViewCalendar:
		body = m.renderCalendarView()
	}
	if m.Palette.Active {
		body += "\n\ncommand: /" + m.Palette.Input
	}
	if m.HelpVisible {
		body += "\n\n" + m.renderHelpView()
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("energytracker | view: %s | date: %s", m.CurrentView, m.FocusDate),
		Body:       body,
		StatusLine: status,
		Footer:     m.footerLine(),
	})
}

// footerLine advertises only keys that actually work on the current view.
// The Points screen routes digits into its inputs, so the numeric view
// switches are not offered there.
func (m Model) footerLine() string {
	if m.CurrentView == ViewPoints {
		return fmt.Sprintf("keys: esc checklist | tab field | enter save | / cmd | %s help | %s quit", m.Keys.Help, m.Keys.Quit)
	}
	return fmt.Sprintf("keys: %s checklist | %s points | %s cal | / cmd | %s help | %s quit", m.Keys.Checklist, m.Keys.Points, m.Keys.Calendar, m.Keys.Help, m.Keys.Quit)
}

func isKnownView(v View) bool {
	switch v {
	case ViewChecklist, ViewPoints, ViewCalendar:
		return true
	default:
		return false
	}
}
