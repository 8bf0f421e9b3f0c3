package update

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ConnorXwolf/EnergyTracker/internal/manager"
	"github.com/ConnorXwolf/EnergyTracker/internal/model"
	"github.com/ConnorXwolf/EnergyTracker/internal/storage"
)

func newTestManagers(t *testing.T) Managers {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "update-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := storage.MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	repo, err := storage.NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return Managers{
		Exercises: manager.NewExerciseManager(repo),
		Tasks:     manager.NewTaskManager(repo),
		Events:    manager.NewEventManager(repo),
		Points:    manager.NewPointsManager(repo),
	}
}

// drain runs a command chain to completion, feeding every resulting message
// back into the model.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			break
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, sub := range batch {
				m = drain(t, m, sub)
			}
			return m
		}
		var updated tea.Model
		updated, cmd = m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(Managers{})
	if m.CurrentView != ViewChecklist {
		t.Fatalf("expected default view %q, got %q", ViewChecklist, m.CurrentView)
	}
	if m.FocusDate != model.Today() {
		t.Fatalf("expected focus date today, got %q", m.FocusDate)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m := NewModel(Managers{})
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	next := updated.(Model)
	if next.CurrentView != ViewPoints {
		t.Fatalf("expected points view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEsc})
	next = updated.(Model)
	if next.CurrentView != ViewChecklist {
		t.Fatalf("expected checklist view after esc, got %q", next.CurrentView)
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	next = updated.(Model)
	if next.CurrentView != ViewCalendar {
		t.Fatalf("expected calendar view, got %q", next.CurrentView)
	}
}

func TestUpdateSwitchViewMsg(t *testing.T) {
	m := NewModel(Managers{})
	updated, _ := m.Update(SwitchViewMsg{View: ViewCalendar})
	next := updated.(Model)
	if next.CurrentView != ViewCalendar {
		t.Fatalf("expected calendar view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(SwitchViewMsg{View: View("Unknown")})
	next = updated.(Model)
	if next.CurrentView != ViewCalendar {
		t.Fatalf("expected view unchanged for unknown view, got %q", next.CurrentView)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m := NewModel(Managers{})
	updated, _ := m.Update(SetStatusMsg{Text: "ready", IsError: false})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	errMsg := errors.New("boom")
	updated, _ = next.Update(AppErrorMsg{Err: errMsg})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m := NewModel(Managers{})
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m := NewModel(Managers{})
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	if !strings.Contains(out, "view: Checklist") {
		t.Fatalf("expected view text in output: %q", out)
	}
	if !strings.Contains(out, "date: "+m.FocusDate) {
		t.Fatalf("expected focus date in output: %q", out)
	}
	if !strings.Contains(out, "status: all good") {
		t.Fatalf("expected status in output: %q", out)
	}
}

func TestFooterMatchesActiveView(t *testing.T) {
	m := NewModel(Managers{})
	if !strings.Contains(m.View(), "1 checklist") {
		t.Fatalf("expected numeric switches in checklist footer: %q", m.footerLine())
	}

	m.CurrentView = ViewPoints
	out := m.View()
	if strings.Contains(out, "1 checklist") || strings.Contains(out, "3 cal") {
		t.Fatalf("points footer must not advertise numeric switches: %q", m.footerLine())
	}
	if !strings.Contains(out, "esc checklist") {
		t.Fatalf("expected esc hint in points footer: %q", m.footerLine())
	}
}

func TestChecklistQuickAddPersistsTask(t *testing.T) {
	managers := newTestManagers(t)
	m := NewModel(managers)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = updated.(Model)
	if !m.Checklist.Capturing {
		t.Fatal("expected capture mode after a")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("water plants")})
	m = updated.(Model)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.Checklist.Capturing {
		t.Fatal("expected capture mode to end on enter")
	}
	m = drain(t, m, cmd)

	if len(m.Checklist.Tasks) != 1 || m.Checklist.Tasks[0].Title != "water plants" {
		t.Fatalf("expected persisted task in checklist, got: %#v", m.Checklist.Tasks)
	}

	stored, err := managers.Tasks.List(context.Background(), manager.TaskFilter{Date: m.FocusDate})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 stored task, got %d", len(stored))
	}
}

func TestChecklistToggleCompletesExercise(t *testing.T) {
	managers := newTestManagers(t)
	created, err := managers.Exercises.Create(context.Background(), model.Exercise{
		Name:        "Stretching",
		Category:    model.CategoryStretch,
		TargetValue: 30,
		Unit:        model.UnitMinutes,
	})
	if err != nil {
		t.Fatalf("create exercise: %v", err)
	}

	m := NewModel(managers)
	m = drain(t, m, m.loadChecklistCmd())
	if len(m.Checklist.Progress) != 1 || m.Checklist.Progress[0].Completed {
		t.Fatalf("unexpected initial progress: %#v", m.Checklist.Progress)
	}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, updated.(Model), cmd)
	if !m.Checklist.Progress[0].Completed || m.Checklist.Progress[0].Actual != 30 {
		t.Fatalf("expected completed exercise at target, got: %#v", m.Checklist.Progress[0])
	}

	logs, err := managers.Exercises.LogsByDate(context.Background(), m.FocusDate)
	if err != nil {
		t.Fatalf("logs by date: %v", err)
	}
	if len(logs) != 1 || logs[0].ExerciseID != created.ID || !logs[0].Completed {
		t.Fatalf("unexpected stored log: %#v", logs)
	}

	// A second toggle resets the day back to zero.
	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, updated.(Model), cmd)
	if m.Checklist.Progress[0].Completed || m.Checklist.Progress[0].Actual != 0 {
		t.Fatalf("expected reset progress, got: %#v", m.Checklist.Progress[0])
	}
}

func TestPointsEntrySavesScore(t *testing.T) {
	managers := newTestManagers(t)
	m := NewModel(managers)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	m = updated.(Model)
	if m.CurrentView != ViewPoints {
		t.Fatalf("expected points view, got %q", m.CurrentView)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'7'}})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}})
	m = updated.(Model)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, updated.(Model), cmd)

	if !m.Points.Has || m.Points.Current.Score != 64 {
		t.Fatalf("expected saved score 64, got: %#v", m.Points)
	}

	stored, err := managers.Points.ByDate(context.Background(), m.FocusDate)
	if err != nil {
		t.Fatalf("by date: %v", err)
	}
	if stored.Physical != 7 || stored.Mental != 4 || stored.Score != 64 {
		t.Fatalf("unexpected stored points: %#v", stored)
	}
}

func TestPointsRejectsNonNumericInput(t *testing.T) {
	m := NewModel(newTestManagers(t))
	m.CurrentView = ViewPoints

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd != nil {
		t.Fatal("expected no save command for empty input")
	}
	if !m.Status.IsError {
		t.Fatalf("expected error status, got: %+v", m.Status)
	}
}

func TestPointsInputsClearOnUnrecordedDay(t *testing.T) {
	managers := newTestManagers(t)
	m := NewModel(managers)
	m.CurrentView = ViewPoints
	if _, err := managers.Points.Set(context.Background(), m.FocusDate, 7, 4); err != nil {
		t.Fatalf("set points: %v", err)
	}
	m = drain(t, m, m.loadPointsCmd())
	if m.physicalInput.Value() != "7" || m.mentalInput.Value() != "4" {
		t.Fatalf("expected seeded inputs, got %q/%q", m.physicalInput.Value(), m.mentalInput.Value())
	}

	next := model.AddDays(m.FocusDate, 1)
	updated, cmd := m.Update(SetFocusDateMsg{Date: next})
	m = drain(t, updated.(Model), cmd)

	if m.Points.Has {
		t.Fatalf("expected no record on %s, got: %#v", next, m.Points.Current)
	}
	if m.physicalInput.Value() != "" || m.mentalInput.Value() != "" {
		t.Fatalf("expected cleared inputs on unrecorded day, got %q/%q", m.physicalInput.Value(), m.mentalInput.Value())
	}

	// Enter on the blank form must not write the previous day's numbers.
	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd != nil {
		t.Fatal("expected no save command for blank inputs")
	}
	if !m.Status.IsError {
		t.Fatalf("expected error status, got: %+v", m.Status)
	}
	if _, err := managers.Points.ByDate(context.Background(), next); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected %s to stay unrecorded, got: %v", next, err)
	}
}

func TestCalendarMonthNavigationWraps(t *testing.T) {
	m := NewModel(Managers{})
	m.CurrentView = ViewCalendar
	m.Calendar.Year = 2026
	m.Calendar.Month = 1

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	m = updated.(Model)
	if m.Calendar.Year != 2025 || m.Calendar.Month != 12 {
		t.Fatalf("expected 2025-12, got %d-%d", m.Calendar.Year, m.Calendar.Month)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	m = updated.(Model)
	if m.Calendar.Year != 2026 || m.Calendar.Month != 1 {
		t.Fatalf("expected 2026-01, got %d-%d", m.Calendar.Year, m.Calendar.Month)
	}
}

func TestCalendarShowsMonthData(t *testing.T) {
	managers := newTestManagers(t)
	ctx := context.Background()
	if _, err := managers.Tasks.Create(ctx, model.Task{Title: "Dentist form", Date: "2026-09-10"}); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := managers.Events.Create(ctx, model.Event{Title: "School fair", Date: "2026-09-12"}); err != nil {
		t.Fatalf("create event: %v", err)
	}
	if _, err := managers.Points.Set(ctx, "2026-09-10", 5, 5); err != nil {
		t.Fatalf("set points: %v", err)
	}

	m := NewModel(managers)
	m.CurrentView = ViewCalendar
	m.Calendar.Year = 2026
	m.Calendar.Month = 9
	m = drain(t, m, m.loadCalendarCmd())

	if len(m.Calendar.Agenda) != 2 {
		t.Fatalf("expected 2 agenda entries, got %d", len(m.Calendar.Agenda))
	}
	if m.Calendar.Agenda[0].Date != "2026-09-10" || m.Calendar.Agenda[0].Kind != "task" {
		t.Fatalf("unexpected first agenda entry: %#v", m.Calendar.Agenda[0])
	}
	if m.Calendar.Summary.Recorded != 1 {
		t.Fatalf("expected 1 recorded day, got %d", m.Calendar.Summary.Recorded)
	}

	out := m.renderCalendarView()
	if !strings.Contains(out, "2026-09") {
		t.Fatalf("expected month header in output: %q", out)
	}
	if !strings.Contains(out, "10:60") {
		t.Fatalf("expected score marker for day 10 in grid: %q", out)
	}
}

func TestPaletteCommandSetsPoints(t *testing.T) {
	managers := newTestManagers(t)
	m := NewModel(managers)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = updated.(Model)
	if !m.Palette.Active {
		t.Fatal("expected active palette")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("points 5 5")})
	m = updated.(Model)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.Palette.Active {
		t.Fatal("expected palette closed after enter")
	}
	m = drain(t, m, cmd)

	stored, err := managers.Points.ByDate(context.Background(), m.FocusDate)
	if err != nil {
		t.Fatalf("by date: %v", err)
	}
	if stored.Score != 60 {
		t.Fatalf("expected score 60, got %d", stored.Score)
	}
}

func TestPaletteExerciseAddAndRemove(t *testing.T) {
	managers := newTestManagers(t)
	m := NewModel(managers)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("exercise add pushups muscle 20 reps")})
	m = updated.(Model)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, updated.(Model), cmd)

	all, err := managers.Exercises.List(context.Background())
	if err != nil {
		t.Fatalf("list exercises: %v", err)
	}
	if len(all) != 1 || all[0].Name != "pushups" || all[0].TargetValue != 20 {
		t.Fatalf("expected created exercise, got: %#v", all)
	}
	if len(m.Checklist.Progress) != 1 {
		t.Fatalf("expected exercise on checklist after add, got: %#v", m.Checklist.Progress)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("exercise rm Pushups")})
	m = updated.(Model)
	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, updated.(Model), cmd)

	all, err = managers.Exercises.List(context.Background())
	if err != nil {
		t.Fatalf("list exercises: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected no exercises after rm, got: %#v", all)
	}
}

func TestPaletteExerciseRejectsBadDefinition(t *testing.T) {
	managers := newTestManagers(t)
	m := NewModel(managers)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("exercise add plank endurance 2 minutes")})
	m = updated.(Model)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, updated.(Model), cmd)

	if !m.Status.IsError {
		t.Fatalf("expected error status for bad category, got: %+v", m.Status)
	}
	all, err := managers.Exercises.List(context.Background())
	if err != nil {
		t.Fatalf("list exercises: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected no exercises after rejected add, got: %#v", all)
	}
}

func TestPaletteCursorEditing(t *testing.T) {
	m := NewModel(Managers{})
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("gto")})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	m = updated.(Model)
	if m.Palette.Input != "goto" {
		t.Fatalf("expected mid-line insert to produce goto, got %q", m.Palette.Input)
	}
}

func TestPaletteUnknownCommand(t *testing.T) {
	m := NewModel(Managers{})
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("frobnicate")})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if !m.Status.IsError {
		t.Fatalf("expected error status, got: %+v", m.Status)
	}
}

func TestFocusDateShiftReloadsDay(t *testing.T) {
	managers := newTestManagers(t)
	m := NewModel(managers)
	start := m.FocusDate

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	m = drain(t, updated.(Model), cmd)
	if m.FocusDate != model.AddDays(start, 1) {
		t.Fatalf("expected next day, got %q", m.FocusDate)
	}

	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	m = drain(t, updated.(Model), cmd)
	if m.FocusDate != start {
		t.Fatalf("expected original day, got %q", m.FocusDate)
	}
}
