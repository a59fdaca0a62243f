package app

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/organizer/internal/model"
	"github.com/nhle/organizer/internal/organizer"
	"github.com/nhle/organizer/internal/testutil"
	"github.com/nhle/organizer/internal/ui/calendar"
	"github.com/nhle/organizer/internal/ui/command"
	"github.com/nhle/organizer/internal/ui/entryform"
	"github.com/nhle/organizer/internal/ui/goals"
	helpview "github.com/nhle/organizer/internal/ui/help"
	"github.com/nhle/organizer/internal/ui/home"
	"github.com/nhle/organizer/internal/ui/tasklist"
)

var now = testutil.At(2023, time.May, 15, 10, 0)

const calendarFile = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//organizer//test//EN
BEGIN:VEVENT
UID:standup-1
SUMMARY:Standup
DTSTART:20230516T090000Z
END:VEVENT
END:VCALENDAR
`

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestApp(t *testing.T) (Model, Collections) {
	t.Helper()

	cfg := model.DefaultAppConfig()
	cols := NewCollections(cfg)
	require.NoError(t, cols.Seed(now))

	m := New(cfg, cols, testutil.FixedClock(now))
	return update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40}), cols
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestNewCollectionsSeed(t *testing.T) {
	_, cols := newTestApp(t)

	assert.Equal(t, 5, cols.Tasks.Len())
	assert.Equal(t, 3, cols.Events.Len())
	assert.Equal(t, 2, cols.Goals.Len())
	assert.Equal(t, 2, cols.Reminders.Len())
}

func TestViewBeforeResize(t *testing.T) {
	cfg := model.DefaultAppConfig()
	m := New(cfg, NewCollections(cfg), testutil.FixedClock(now))

	assert.Equal(t, "Loading...", m.View())
}

func TestHomeView(t *testing.T) {
	m, _ := newTestApp(t)

	v := m.View()
	assert.Contains(t, v, "Organizer")
	assert.Contains(t, v, "Tasks: 1 of 5 completed")
	assert.Contains(t, v, "1/5 tasks done")
}

func TestNumberKeysOpenSections(t *testing.T) {
	m, _ := newTestApp(t)

	m = update(t, m, runes("2"))
	assert.Equal(t, ViewCalendar, m.currentView)

	m = update(t, m, runes("3"))
	assert.Equal(t, ViewGoals, m.currentView)

	m = update(t, m, runes("1"))
	assert.Equal(t, ViewTasks, m.currentView)
}

func TestHomeSelectionAndBack(t *testing.T) {
	m, _ := newTestApp(t)

	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	assert.Equal(t, ViewTasks, m.currentView)

	m, cmd = updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tasklist.BackMsg{}, cmd())
	m = update(t, m, cmd())
	assert.Equal(t, ViewHome, m.currentView)

	m = update(t, m, home.SelectedMsg{Section: home.SectionGoals})
	assert.Equal(t, ViewGoals, m.currentView)
	m = update(t, m, goals.BackMsg{})
	assert.Equal(t, ViewHome, m.currentView)
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestApp(t)

	_, cmd := updateCmd(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	_, cmd = updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestTypingBypassesGlobalKeys(t *testing.T) {
	m, cols := newTestApp(t)

	m = update(t, m, runes("1"))
	m = update(t, m, runes("n"))
	require.True(t, m.tasks.Typing())

	m = update(t, m, runes("q"))
	m = update(t, m, runes("2"))
	assert.Equal(t, ViewTasks, m.currentView)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	items := cols.Tasks.Items()
	assert.Equal(t, "q2", items[len(items)-1].Text)
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestApp(t)
	m = update(t, m, runes("2"))

	m = update(t, m, runes("?"))
	assert.Equal(t, ViewHelp, m.currentView)
	assert.Equal(t, helpview.SectionCalendar, m.helpView.Focused())
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m = update(t, m, runes("?"))
	assert.Equal(t, ViewCalendar, m.currentView)
}

func TestEventFormRoundTrip(t *testing.T) {
	m, cols := newTestApp(t)
	m = update(t, m, runes("2"))

	day := testutil.Date(2023, time.May, 20)
	m = update(t, m, calendar.NewEventMsg{Date: day})
	assert.Equal(t, ViewForm, m.currentView)
	assert.Equal(t, entryform.KindEvent, m.formView.Kind())

	m = update(t, m, entryform.EventSubmittedMsg{Input: organizer.EventInput{Title: "Picnic", Date: day}})
	assert.Equal(t, ViewCalendar, m.currentView)
	assert.Equal(t, 4, cols.Events.Len())
	assert.Len(t, cols.Events.On(day), 1)
	assert.Contains(t, m.View(), `added event "Picnic"`)

	m = update(t, m, calendar.NewEventMsg{Date: day})
	m = update(t, m, entryform.EventSubmittedMsg{Input: organizer.EventInput{Title: "   ", Date: day}})
	assert.Equal(t, ViewCalendar, m.currentView)
	assert.Equal(t, 4, cols.Events.Len(), "blank titles are ignored")
}

func TestGoalAndReminderForms(t *testing.T) {
	m, cols := newTestApp(t)
	m = update(t, m, runes("3"))

	m = update(t, m, goals.NewGoalMsg{})
	assert.Equal(t, entryform.KindGoal, m.formView.Kind())
	m = update(t, m, entryform.GoalSubmittedMsg{Input: organizer.GoalInput{Title: "Learn Go"}})
	assert.Equal(t, ViewGoals, m.currentView)
	assert.Equal(t, 3, cols.Goals.Len())

	m = update(t, m, goals.NewReminderMsg{Date: now})
	assert.Equal(t, entryform.KindReminder, m.formView.Kind())
	m = update(t, m, entryform.CancelMsg{})
	assert.Equal(t, ViewGoals, m.currentView)
	assert.Equal(t, 2, cols.Reminders.Len())

	m = update(t, m, goals.NewReminderMsg{Date: now})
	m = update(t, m, entryform.ReminderSubmittedMsg{Input: organizer.ReminderInput{Title: "Call mom", Date: now}})
	assert.Equal(t, 3, cols.Reminders.Len())
	assert.Equal(t, goals.TabReminders, m.goals.Tab())
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		wantView ViewState
		check    func(t *testing.T, m Model)
	}{
		{
			name:     "filter category",
			command:  "filter work",
			wantView: ViewTasks,
			check: func(t *testing.T, m Model) {
				assert.Equal(t, model.CategoryWork, m.tasks.ActiveCategory())
			},
		},
		{
			name:     "unknown category",
			command:  "filter finance",
			wantView: ViewHome,
			check: func(t *testing.T, m Model) {
				assert.Equal(t, "unknown category: finance", m.statusMsg)
			},
		},
		{
			name:     "next month",
			command:  "next",
			wantView: ViewCalendar,
			check: func(t *testing.T, m Model) {
				assert.Equal(t, time.June, m.calendar.State().Reference().Month())
			},
		},
		{
			name:     "previous month",
			command:  "prev",
			wantView: ViewCalendar,
			check: func(t *testing.T, m Model) {
				assert.Equal(t, time.April, m.calendar.State().Reference().Month())
			},
		},
		{
			name:     "reminders tab",
			command:  "reminders",
			wantView: ViewGoals,
			check: func(t *testing.T, m Model) {
				assert.Equal(t, goals.TabReminders, m.goals.Tab())
			},
		},
		{
			name:     "unknown command",
			command:  "sync",
			wantView: ViewHome,
			check: func(t *testing.T, m Model) {
				assert.Equal(t, "unknown command: sync", m.statusMsg)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestApp(t)

			m = update(t, m, runes(":"))
			require.Equal(t, ViewCommand, m.currentView)

			m = update(t, m, command.CommandMsg(tt.command))
			assert.Equal(t, tt.wantView, m.currentView)
			tt.check(t, m)
		})
	}
}

func TestCommandQuit(t *testing.T) {
	m, _ := newTestApp(t)

	_, cmd := updateCmd(t, m, command.CommandMsg("quit"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestCommandPaletteEscape(t *testing.T) {
	m, _ := newTestApp(t)
	m = update(t, m, runes("2"))
	m = update(t, m, runes(":"))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewCalendar, m.currentView)
}

func TestCommandPaletteFromHelp(t *testing.T) {
	m, _ := newTestApp(t)
	m = update(t, m, runes("1"))
	m = update(t, m, runes("?"))
	require.Equal(t, ViewHelp, m.currentView)

	m = update(t, m, runes(":"))
	require.Equal(t, ViewCommand, m.currentView)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewTasks, m.currentView)

	m = update(t, m, runes("?"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewTasks, m.currentView)
}

func TestFilterCommandKeepsCategoryCase(t *testing.T) {
	cfg := model.DefaultAppConfig()
	cfg.Categories.List = []string{"Pessoal", "Trabalho"}
	cfg.Categories.Default = "Pessoal"
	m := New(cfg, NewCollections(cfg), testutil.FixedClock(now))
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m = update(t, m, runes(":"))
	m = update(t, m, command.CommandMsg("FILTER Trabalho"))

	assert.Equal(t, ViewTasks, m.currentView)
	assert.Equal(t, model.Category("Trabalho"), m.tasks.ActiveCategory())
}

func TestImportCalendars(t *testing.T) {
	assert.Nil(t, importCalendars(nil, importOptions(model.DefaultAppConfig(), now)))

	good := testutil.WriteFile(t, "work.ics", strings.ReplaceAll(calendarFile, "\n", "\r\n"))
	cmd := importCalendars([]string{good, good + ".missing"}, importOptions(model.DefaultAppConfig(), now))
	require.NotNil(t, cmd)

	msg, ok := cmd().(calendarsImportedMsg)
	require.True(t, ok)
	assert.Len(t, msg.inputs, 1)
	assert.Error(t, msg.err, "the missing file is reported")

	m, cols := newTestApp(t)
	m = update(t, m, msg)
	assert.Equal(t, 4, cols.Events.Len())
	assert.Equal(t, "some calendars could not be imported", m.statusMsg)
}

func TestImportOptionsCategory(t *testing.T) {
	cfg := model.DefaultAppConfig()
	assert.Equal(t, model.CategoryPersonal, importOptions(cfg, now).Category)

	cfg.Calendar.ImportCategory = "work"
	assert.Equal(t, model.CategoryWork, importOptions(cfg, now).Category)
}

func TestTaskChangesRefreshSummary(t *testing.T) {
	m, _ := newTestApp(t)
	m = update(t, m, runes("1"))

	m, cmd := updateCmd(t, m, runes("x"))
	require.NotNil(t, cmd)
	m = update(t, m, cmd())

	m = update(t, m, tasklist.BackMsg{})
	assert.Contains(t, m.View(), "Tasks: ")
}
