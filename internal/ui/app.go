package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"medtrack/internal/adherence"
	"medtrack/internal/db"
	"medtrack/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewHome View = iota
	ViewAdd
	ViewCalendar
	ViewHistory
)

type App struct {
	db          *db.DB
	engine      *adherence.Engine
	currentView View
	home        *views.HomeView
	add         *views.AddView
	calendar    *views.CalendarView
	history     *views.HistoryView
	width       int
	height      int
}

// NewApp creates a new application
func NewApp(database *db.DB, engine *adherence.Engine) *App {
	return &App{
		db:          database,
		engine:      engine,
		currentView: ViewHome,
		home:        views.NewHomeView(database, engine),
	}
}

func (a *App) Init() tea.Cmd {
	return a.home.Init()
}

func (a *App) resize() tea.Cmd {
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: a.width, Height: a.height}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Home persists across navigation, keep its size current
		a.home.Update(msg)

	case views.ShowAdd:
		a.currentView = ViewAdd
		a.add = views.NewAddView(a.db)
		return a, tea.Batch(a.add.Init(), a.resize())

	case views.ShowCalendar:
		a.currentView = ViewCalendar
		a.calendar = views.NewCalendarView(a.db)
		return a, tea.Batch(a.calendar.Init(), a.resize())

	case views.ShowHistory:
		a.currentView = ViewHistory
		a.history = views.NewHistoryView(a.engine)
		return a, tea.Batch(a.history.Init(), a.resize())

	case views.MedicationAdded, views.BackHome:
		a.currentView = ViewHome
		return a, tea.Batch(a.home.Init(), a.resize())

	case views.ReminderMsg:
		// Reminders land on the home banner wherever the user is
		_, cmd := a.home.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewHome:
		_, cmd = a.home.Update(msg)
	case ViewAdd:
		_, cmd = a.add.Update(msg)
	case ViewCalendar:
		_, cmd = a.calendar.Update(msg)
	case ViewHistory:
		_, cmd = a.history.Update(msg)
	}

	return a, cmd
}

func (a *App) View() string {
	switch a.currentView {
	case ViewAdd:
		if a.add != nil {
			return a.add.View()
		}
	case ViewCalendar:
		if a.calendar != nil {
			return a.calendar.View()
		}
	case ViewHistory:
		if a.history != nil {
			return a.history.View()
		}
	}
	return a.home.View()
}
