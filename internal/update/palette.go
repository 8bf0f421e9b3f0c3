package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ConnorXwolf/EnergyTracker/internal/commands"
	"github.com/ConnorXwolf/EnergyTracker/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var followUp tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Log: func(a commands.LogArgs) (commands.Result, error) {
			id, err := m.findExerciseByName(a.Exercise)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			followUp = m.logExerciseCmd(id, a.Value)
			return commands.Result{Message: fmt.Sprintf("logged %d for %s", a.Value, a.Exercise)}, nil
		},
		Points: func(a commands.PointsArgs) (commands.Result, error) {
			followUp = m.savePointsCmd(a.Physical, a.Mental)
			return commands.Result{Message: fmt.Sprintf("points set: %d/%d", a.Physical, a.Mental)}, nil
		},
		Task: func(a commands.TaskArgs) (commands.Result, error) {
			followUp = m.addTaskCmd(a.Title)
			return commands.Result{Message: "task added: " + a.Title}, nil
		},
		Event: func(a commands.EventArgs) (commands.Result, error) {
			if !model.ValidDate(a.Date) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("bad event date: %s", a.Date)}
			}
			followUp = m.addEventCmd(a.Date, a.Title)
			return commands.Result{Message: "event added: " + a.Title}, nil
		},
		Exercise: func(a commands.ExerciseArgs) (commands.Result, error) {
			switch a.Action {
			case commands.ExerciseAdd:
				followUp = m.addExerciseCmd(model.Exercise{
					Name:        a.Name,
					Category:    model.Category(a.Category),
					TargetValue: a.TargetValue,
					Unit:        model.Unit(a.Unit),
				})
				return commands.Result{Message: "exercise added: " + a.Name}, nil
			case commands.ExerciseRemove:
				id, err := m.findExerciseByName(a.Name)
				if err != nil {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
				}
				followUp = m.deleteExerciseCmd(id)
				return commands.Result{Message: "exercise removed: " + a.Name}, nil
			default:
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown exercise action: %s", a.Action)}
			}
		},
		Goto: func(a commands.GotoArgs) (commands.Result, error) {
			date := a.Date
			if date == "today" {
				date = model.Today()
			}
			if !model.ValidDate(date) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("bad goto date: %s", a.Date)}
			}
			followUp = func() tea.Msg { return SetFocusDateMsg{Date: date} }
			return commands.Result{Message: "focused " + date}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message, IsError: false}
	return m, followUp
}

func (m Model) findExerciseByName(name string) (int64, error) {
	if m.managers.Exercises == nil {
		return 0, fmt.Errorf("no exercise store available")
	}
	all, err := m.managers.Exercises.List(context.Background())
	if err != nil {
		return 0, err
	}
	for _, ex := range all {
		if strings.EqualFold(ex.Name, name) {
			return ex.ID, nil
		}
	}
	return 0, fmt.Errorf("unknown exercise: %s", name)
}
