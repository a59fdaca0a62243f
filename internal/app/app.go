package app

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/organizer/internal/keys"
	"github.com/nhle/organizer/internal/model"
	"github.com/nhle/organizer/internal/ui"
	"github.com/nhle/organizer/internal/ui/calendar"
	"github.com/nhle/organizer/internal/ui/command"
	"github.com/nhle/organizer/internal/ui/entryform"
	"github.com/nhle/organizer/internal/ui/goals"
	helpview "github.com/nhle/organizer/internal/ui/help"
	"github.com/nhle/organizer/internal/ui/home"
	"github.com/nhle/organizer/internal/ui/tasklist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewHome ViewState = iota
	ViewTasks
	ViewCalendar
	ViewGoals
	ViewHelp
	ViewCommand
	ViewForm
)

// Model is the root Bubble Tea model that manages view routing and
// layout. It owns the collections; every mutation happens on the
// Update goroutine.
type Model struct {
	currentView     ViewState
	previousView    ViewState
	layout          ui.Layout
	keys            *keys.KeyMap
	cfg             *model.AppConfig
	cols            Collections
	now             func() time.Time
	home            home.Model
	tasks           tasklist.Model
	calendar        calendar.Model
	goals           goals.Model
	helpView        helpview.Model
	commandView     command.Model
	formView        entryform.Model
	defaultCategory model.Category
	statusMsg       string
	ready           bool
}

// New creates the root model over cols. A nil now uses time.Now.
func New(cfg *model.AppConfig, cols Collections, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	k := keys.DefaultKeyMap()
	categories := cfg.CategoryList()

	m := Model{
		currentView: ViewHome,
		keys:        k,
		cfg:         cfg,
		cols:        cols,
		now:         now,
		home:        home.New(k, 80, 24),
		tasks:       tasklist.New(cols.Tasks, categories, k, 80, 24),
		calendar: calendar.New(cols.Events, calendar.Options{
			WeekStart:     cfg.WeekStart(),
			EventsPerCell: cfg.Calendar.EventsPerCell,
			Now:           now,
		}, k, 80, 24),
		goals:           goals.New(cols.Goals, cols.Reminders, now, k, 80, 24),
		helpView:        helpview.New(k, 80, 24),
		commandView:     command.New(cfg.Categories.List, 80, 24),
		formView:        entryform.New(categories, 80, 24),
		defaultCategory: cfg.DefaultCategory(),
	}
	m.refreshSummary()
	return m
}

// Init starts the calendar import.
func (m Model) Init() tea.Cmd {
	return importCalendars(m.cfg.Calendar.Import, importOptions(m.cfg, m.now()))
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.home.SetSize(contentWidth, contentHeight)
		m.tasks.SetSize(contentWidth, contentHeight)
		m.calendar.SetSize(contentWidth, contentHeight)
		m.goals.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		m.formView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case calendarsImportedMsg:
		added := 0
		for _, in := range msg.inputs {
			if _, ok := m.cols.Events.Add(in); ok {
				added++
			}
		}
		if msg.err != nil {
			m.statusMsg = "some calendars could not be imported"
		} else {
			m.statusMsg = fmt.Sprintf("imported %d events", added)
		}
		m.refreshSummary()
		return m, nil

	case home.SelectedMsg:
		switch msg.Section {
		case home.SectionTasks:
			m.open(ViewTasks)
		case home.SectionCalendar:
			m.open(ViewCalendar)
		case home.SectionGoals:
			m.open(ViewGoals)
		}
		return m, nil

	case tasklist.BackMsg, calendar.BackMsg, goals.BackMsg:
		m.refreshSummary()
		m.currentView = ViewHome
		return m, nil

	case tasklist.ChangedMsg:
		m.refreshSummary()
		return m, nil

	case calendar.NewEventMsg:
		m.previousView = m.currentView
		m.currentView = ViewForm
		return m, m.formView.StartEvent(msg.Date, m.defaultCategory)

	case goals.NewGoalMsg:
		m.previousView = m.currentView
		m.currentView = ViewForm
		return m, m.formView.StartGoal(m.defaultCategory)

	case goals.NewReminderMsg:
		m.previousView = m.currentView
		m.currentView = ViewForm
		return m, m.formView.StartReminder(msg.Date, m.defaultCategory)

	case entryform.EventSubmittedMsg:
		m.currentView = m.previousView
		if ev, ok := m.calendar.AddEvent(msg.Input); ok {
			m.statusMsg = fmt.Sprintf("added event %q", ev.Title)
		}
		m.refreshSummary()
		return m, nil

	case entryform.GoalSubmittedMsg:
		m.currentView = m.previousView
		if g, ok := m.goals.AddGoal(msg.Input); ok {
			m.statusMsg = fmt.Sprintf("added goal %q", g.Title)
		}
		m.refreshSummary()
		return m, nil

	case entryform.ReminderSubmittedMsg:
		m.currentView = m.previousView
		if r, ok := m.goals.AddReminder(msg.Input); ok {
			m.statusMsg = fmt.Sprintf("added reminder %q", r.Title)
		}
		m.refreshSummary()
		return m, nil

	case entryform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(string(msg))

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work across views. It reports
// false when the key should go to the active view instead.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return tea.Quit, true
	}

	switch m.currentView {
	case ViewForm:
		return nil, false

	case ViewCommand:
		if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Command) {
			m.currentView = m.previousView
			return nil, true
		}
		return nil, false

	case ViewHelp:
		if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Help) {
			m.currentView = m.previousView
			return nil, true
		}
		// The palette returns to the view help was opened from.
		if key.Matches(msg, m.keys.Command) {
			m.currentView = m.previousView
		}
	}

	if m.currentView == ViewTasks && m.tasks.Typing() {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true

	case key.Matches(msg, m.keys.Help):
		m.showHelp()
		return nil, true

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m.commandView.Focus(), true

	case key.Matches(msg, m.keys.GoTasks):
		m.open(ViewTasks)
		return nil, true

	case key.Matches(msg, m.keys.GoCalendar):
		m.open(ViewCalendar)
		return nil, true

	case key.Matches(msg, m.keys.GoGoals):
		m.open(ViewGoals)
		return nil, true
	}

	return nil, false
}

// showHelp opens the help overlay with the current view's shortcuts first.
func (m *Model) showHelp() {
	switch m.currentView {
	case ViewTasks:
		m.helpView.Focus(helpview.SectionTasks)
	case ViewCalendar:
		m.helpView.Focus(helpview.SectionCalendar)
	case ViewGoals:
		m.helpView.Focus(helpview.SectionGoals)
	default:
		m.helpView.Focus(helpview.SectionGeneral)
	}
	m.previousView = m.currentView
	m.currentView = ViewHelp
}

// open switches to one of the section views.
func (m *Model) open(v ViewState) {
	m.statusMsg = ""
	m.currentView = v
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewHome:
		m.home, cmd = m.home.Update(msg)
	case ViewTasks:
		m.tasks, cmd = m.tasks.Update(msg)
	case ViewCalendar:
		m.calendar, cmd = m.calendar.Update(msg)
	case ViewGoals:
		m.goals, cmd = m.goals.Update(msg)
		m.refreshSummary()
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewForm:
		m.formView, cmd = m.formView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Organizer", m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewHome:
		return m.home.View()
	case ViewTasks:
		return m.tasks.View()
	case ViewCalendar:
		return m.calendar.View()
	case ViewGoals:
		return m.goals.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewForm:
		return m.formView.View()
	default:
		return ""
	}
}

// headerStatus returns a short summary of open work.
func (m Model) headerStatus() string {
	completed, total := m.cols.Tasks.Counts()
	status := fmt.Sprintf("%d/%d tasks done", completed, total)
	if n := len(m.cols.Reminders.Overdue(m.now())); n > 0 {
		status += fmt.Sprintf(" | %d overdue", n)
	}
	return status
}

// refreshSummary rebuilds the landing page counters.
func (m *Model) refreshSummary() {
	now := m.now()
	completed, total := m.cols.Tasks.Counts()

	done := 0
	for _, g := range m.cols.Goals.All() {
		if g.IsDone() {
			done++
		}
	}

	pending := 0
	for range m.cols.Reminders.Pending() {
		pending++
	}

	m.home.SetSummary([]string{
		fmt.Sprintf("Tasks: %d of %d completed", completed, total),
		fmt.Sprintf("Events this month: %d", len(m.cols.Events.InMonth(now))),
		fmt.Sprintf("Goals: %d (%d done)", m.cols.Goals.Len(), done),
		fmt.Sprintf("Reminders: %d pending, %d overdue", pending, len(m.cols.Reminders.Overdue(now))),
	})
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.statusMsg != "" && m.currentView != ViewForm {
		return m.statusMsg
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return ": close command | enter execute | tab complete | esc back"
	case ViewForm:
		return "enter next/submit | esc cancel"
	case ViewTasks:
		if m.tasks.Typing() {
			return "enter add | esc done"
		}
		if m.tasks.Grabbing() {
			return "j/k move | enter/m drop"
		}
		return "n new | x toggle | d delete | m move | tab category | esc back"
	case ViewCalendar:
		return "←/→/↑/↓ day | h/l month | t today | enter select | n new event | esc back"
	case ViewGoals:
		if m.goals.Tab() == goals.TabReminders {
			return "n new | x toggle | d delete | tab goals | esc back"
		}
		return "n new | +/- progress | d delete | tab reminders | esc back"
	default:
		return "q quit | ? help | : command | 1 tasks | 2 calendar | 3 goals"
	}
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return nil
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "q":
		return tea.Quit
	case "home":
		m.open(ViewHome)
	case "tasks":
		m.open(ViewTasks)
	case "calendar", "cal":
		m.open(ViewCalendar)
	case "goals":
		m.goals.ShowTab(goals.TabGoals)
		m.open(ViewGoals)
	case "reminders":
		m.goals.ShowTab(goals.TabReminders)
		m.open(ViewGoals)
	case "help":
		m.showHelp()
	case "today":
		m.calendar.GoToday()
		m.open(ViewCalendar)
	case "next":
		m.calendar.NextMonth()
		m.open(ViewCalendar)
	case "prev":
		m.calendar.PrevMonth()
		m.open(ViewCalendar)
	case "filter":
		category := model.CategoryAll
		if len(fields) > 1 && !strings.EqualFold(fields[1], string(model.CategoryAll)) {
			category = model.Category(fields[1])
		}
		if !m.tasks.SetFilter(category) {
			m.statusMsg = fmt.Sprintf("unknown category: %s", category)
			return nil
		}
		m.open(ViewTasks)
	default:
		log.Printf("unknown command %q", cmd)
		m.statusMsg = fmt.Sprintf("unknown command: %s", cmd)
	}
	return nil
}
