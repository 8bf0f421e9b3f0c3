package update

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/ConnorXwolf/EnergyTracker/internal/manager"
	"github.com/ConnorXwolf/EnergyTracker/internal/model"
)

type View string

const (
	ViewChecklist View = "Checklist"
	ViewPoints    View = "Points"
	ViewCalendar  View = "Calendar"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Checklist string
	Points    string
	Calendar  string
	Help      string
	Quit      string
}

// Managers bundles the domain services the TUI drives. Fields may be nil in
// tests that exercise pure state transitions; data commands then no-op.
type Managers struct {
	Exercises *manager.ExerciseManager
	Tasks     *manager.TaskManager
	Events    *manager.EventManager
	Points    *manager.PointsManager
}

type ChecklistState struct {
	Progress  []manager.Progress
	Tasks     []model.Task
	Cursor    int
	Capturing bool
	Input     string
}

type pointsField int

const (
	fieldPhysical pointsField = iota
	fieldMental
)

type PointsState struct {
	Current model.DailyPoints
	Has     bool
	Recent  []model.DailyPoints
	Focused pointsField
}

type AgendaEntry struct {
	Date   string
	Kind   string
	Title  string
	Detail string
}

type CalendarState struct {
	Year    int
	Month   int
	Agenda  []AgendaEntry
	Cursor  int
	Summary manager.MonthSummary
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView View
	FocusDate   string
	Checklist   ChecklistState
	Points      PointsState
	Calendar    CalendarState
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	managers Managers

	// Bubble components used for rich TUI controls
	quickAddInput textinput.Model
	commandInput  textinput.Model
	physicalInput textinput.Model
	mentalInput   textinput.Model
	agendaTable   table.Model
	exerciseBar   progress.Model
	helpModel     help.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type SetFocusDateMsg struct {
	Date string
}

type ChecklistLoadedMsg struct {
	Date     string
	Progress []manager.Progress
	Tasks    []model.Task
}

type PointsLoadedMsg struct {
	Date   string
	Points model.DailyPoints
	Found  bool
	Recent []model.DailyPoints
}

type PointsSavedMsg struct {
	Points model.DailyPoints
}

type CalendarLoadedMsg struct {
	Year    int
	Month   int
	Agenda  []AgendaEntry
	Summary manager.MonthSummary
}

func NewModel(managers Managers) Model {
	today := model.Today()
	m := Model{
		CurrentView: ViewChecklist,
		FocusDate:   today,
		Calendar: CalendarState{
			Year:  yearOf(today),
			Month: monthOf(today),
		},
		Keys: GlobalKeyMap{
			Checklist: "1",
			Points:    "2",
			Calendar:  "3",
			Help:      "?",
			Quit:      "q",
		},
		managers: managers,
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.quickAddInput = textinput.New()
	m.quickAddInput.Prompt = "add> "
	m.quickAddInput.CharLimit = 256
	m.quickAddInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.physicalInput = textinput.New()
	m.physicalInput.Prompt = ""
	m.physicalInput.CharLimit = 2
	m.physicalInput.Width = 4
	m.physicalInput.Focus()

	m.mentalInput = textinput.New()
	m.mentalInput.Prompt = ""
	m.mentalInput.CharLimit = 2
	m.mentalInput.Width = 4

	cols := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Kind", Width: 8},
		{Title: "Title", Width: 28},
		{Title: "Detail", Width: 18},
	}
	m.agendaTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(8))

	m.exerciseBar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(16), progress.WithoutPercentage())

	m.helpModel = help.New()
}
