package update

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ConnorXwolf/EnergyTracker/internal/model"
)

const dateLayout = "2006-01-02"

func yearOf(date string) int {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Now().Year()
	}
	return t.Year()
}

func monthOf(date string) int {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return int(time.Now().Month())
	}
	return int(t.Month())
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}

func isDigitKey(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] >= '0' && msg.Runes[0] <= '9'
}

func shiftFocusDateCmd(date string, delta int) tea.Cmd {
	return func() tea.Msg {
		return SetFocusDateMsg{Date: model.AddDays(date, delta)}
	}
}

func sortAgenda(agenda []AgendaEntry) {
	sort.SliceStable(agenda, func(i, j int) bool {
		if agenda[i].Date != agenda[j].Date {
			return agenda[i].Date < agenda[j].Date
		}
		if agenda[i].Kind != agenda[j].Kind {
			return agenda[i].Kind < agenda[j].Kind
		}
		return agenda[i].Title < agenda[j].Title
	})
}

func prevMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

func nextMonth(year, month int) (int, int) {
	if month == 12 {
		return year + 1, 1
	}
	return year, month + 1
}
