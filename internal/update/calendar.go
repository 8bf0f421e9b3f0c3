package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ConnorXwolf/EnergyTracker/internal/model"
	"github.com/ConnorXwolf/EnergyTracker/internal/views"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h":
		m.Calendar.Year, m.Calendar.Month = prevMonth(m.Calendar.Year, m.Calendar.Month)
		m.Calendar.Cursor = 0
		return m, m.loadCalendarCmd()
	case "l":
		m.Calendar.Year, m.Calendar.Month = nextMonth(m.Calendar.Year, m.Calendar.Month)
		m.Calendar.Cursor = 0
		return m, m.loadCalendarCmd()
	case "t":
		today := model.Today()
		return m, func() tea.Msg { return SetFocusDateMsg{Date: today} }
	case "up", "k":
		if m.Calendar.Cursor > 0 {
			m.Calendar.Cursor--
			m.syncAgendaTable()
		}
	case "down", "j":
		if m.Calendar.Cursor < len(m.Calendar.Agenda)-1 {
			m.Calendar.Cursor++
			m.syncAgendaTable()
		}
	}
	return m, nil
}

func (m *Model) syncAgendaTable() {
	rows := make([]table.Row, 0, len(m.Calendar.Agenda))
	for _, entry := range m.Calendar.Agenda {
		rows = append(rows, table.Row{entry.Date, strings.ToUpper(entry.Kind), entry.Title, entry.Detail})
	}
	m.agendaTable.SetRows(rows)
	if len(rows) > 0 && m.Calendar.Cursor < len(rows) {
		m.agendaTable.SetCursor(m.Calendar.Cursor)
	}
}

func (m Model) renderCalendarView() string {
	agenda := make([]views.AgendaItemData, 0, len(m.Calendar.Agenda))
	for _, entry := range m.Calendar.Agenda {
		agenda = append(agenda, views.AgendaItemData{Date: entry.Date, Kind: entry.Kind, Title: entry.Title, Detail: entry.Detail})
	}
	var selected *views.AgendaItemData
	if len(agenda) > 0 && m.Calendar.Cursor < len(agenda) {
		selected = &agenda[m.Calendar.Cursor]
	}

	return views.RenderCalendarPanel(views.CalendarPanelData{
		YearMonth:    fmt.Sprintf("%04d-%02d", m.Calendar.Year, m.Calendar.Month),
		GridView:     m.renderMonthGrid(),
		TableView:    m.agendaTable.View(),
		Agenda:       agenda,
		Selected:     selected,
		Recorded:     m.Calendar.Summary.Recorded,
		AverageScore: m.Calendar.Summary.AverageScore,
	})
}

// renderMonthGrid draws a Monday-first month with per-day markers: the score
// for recorded days, a dot for days with agenda entries, brackets around the
// focused date.
func (m Model) renderMonthGrid() string {
	first := time.Date(m.Calendar.Year, time.Month(m.Calendar.Month), 1, 0, 0, 0, 0, time.UTC)
	days := model.DaysInMonth(m.Calendar.Year, m.Calendar.Month)
	lead := (int(first.Weekday()) + 6) % 7

	busy := make(map[int]bool, len(m.Calendar.Agenda))
	for _, entry := range m.Calendar.Agenda {
		busy[model.DayOfMonth(entry.Date)] = true
	}
	focusedDay := 0
	if yearOf(m.FocusDate) == m.Calendar.Year && monthOf(m.FocusDate) == m.Calendar.Month {
		focusedDay = model.DayOfMonth(m.FocusDate)
	}

	var b strings.Builder
	b.WriteString(" Mo     Tu     We     Th     Fr     Sa     Su\n")
	col := 0
	for i := 0; i < lead; i++ {
		b.WriteString("       ")
		col++
	}
	for day := 1; day <= days; day++ {
		cell := fmt.Sprintf("%2d", day)
		if points, ok := m.Calendar.Summary.ByDay[day]; ok {
			cell += fmt.Sprintf(":%d", points.Score)
		} else if busy[day] {
			cell += "•"
		}
		if day == focusedDay {
			cell = "[" + cell + "]"
		}
		b.WriteString(fmt.Sprintf("%-7s", cell))
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	return strings.TrimRight(b.String(), " \n")
}
