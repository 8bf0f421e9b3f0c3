package update

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ConnorXwolf/EnergyTracker/internal/model"
	"github.com/ConnorXwolf/EnergyTracker/internal/views"
)

func (m Model) handlePointsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.CurrentView = ViewChecklist
		return m, m.loadChecklistCmd()
	case "tab", "shift+tab":
		if m.Points.Focused == fieldPhysical {
			m.Points.Focused = fieldMental
			m.physicalInput.Blur()
			m.mentalInput.Focus()
		} else {
			m.Points.Focused = fieldPhysical
			m.mentalInput.Blur()
			m.physicalInput.Focus()
		}
		return m, nil
	case "h":
		return m, shiftFocusDateCmd(m.FocusDate, -1)
	case "l":
		return m, shiftFocusDateCmd(m.FocusDate, 1)
	case "enter":
		physical, err := strconv.Atoi(strings.TrimSpace(m.physicalInput.Value()))
		if err != nil {
			m.Status = StatusBar{Text: "physical must be a number 0-10", IsError: true}
			return m, nil
		}
		mental, err := strconv.Atoi(strings.TrimSpace(m.mentalInput.Value()))
		if err != nil {
			m.Status = StatusBar{Text: "mental must be a number 0-10", IsError: true}
			return m, nil
		}
		return m, m.savePointsCmd(physical, mental)
	}

	var cmd tea.Cmd
	if m.Points.Focused == fieldPhysical {
		m.physicalInput, cmd = m.physicalInput.Update(msg)
	} else {
		m.mentalInput, cmd = m.mentalInput.Update(msg)
	}
	if preview := m.previewScore(); preview != "" {
		m.Status = StatusBar{Text: "score preview: " + preview, IsError: false}
	}
	return m, cmd
}

func (m Model) renderPointsView() string {
	recent := make([]views.PointsDayData, 0, len(m.Points.Recent))
	for _, day := range m.Points.Recent {
		recent = append(recent, views.PointsDayData{Date: day.Date, Score: day.Score})
	}

	data := views.PointsPanelData{
		Date:         m.FocusDate,
		PhysicalView: m.physicalInput.View(),
		MentalView:   m.mentalInput.View(),
		HasRecord:    m.Points.Has,
		Recent:       recent,
	}
	if m.Points.Has {
		data.Score = m.Points.Current.Score
		data.Category = model.ScoreCategory(m.Points.Current.Score)
	}
	return views.RenderPointsPanel(data)
}

// previewScore mirrors what saving the current inputs would produce. Used by
// the status line while editing.
func (m Model) previewScore() string {
	physical, err1 := strconv.Atoi(strings.TrimSpace(m.physicalInput.Value()))
	mental, err2 := strconv.Atoi(strings.TrimSpace(m.mentalInput.Value()))
	if err1 != nil || err2 != nil {
		return ""
	}
	score, err := model.ComputeScore(physical, mental)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d (%s)", score, model.ScoreCategory(score))
}
