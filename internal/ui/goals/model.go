package goals

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/organizer/internal/keys"
	"github.com/nhle/organizer/internal/model"
	"github.com/nhle/organizer/internal/organizer"
	"github.com/nhle/organizer/internal/theme"
)

// Tab selects which list the view shows.
type Tab int

const (
	TabGoals Tab = iota
	TabReminders
)

// BackMsg signals the parent to leave the view.
type BackMsg struct{}

// NewGoalMsg asks the parent to open the goal form.
type NewGoalMsg struct{}

// NewReminderMsg asks the parent to open the reminder form for Date.
type NewReminderMsg struct {
	Date time.Time
}

// Model shows goals with progress bars and the reminder checklist.
type Model struct {
	goals     *organizer.GoalTracker
	reminders *organizer.ReminderTracker
	tab       Tab
	cursor    [2]int
	now       func() time.Time
	bar       progress.Model
	keys      *keys.KeyMap
	width     int
	height    int
}

// New creates the view. A nil now uses time.Now.
func New(goals *organizer.GoalTracker, reminders *organizer.ReminderTracker, now func() time.Time, k *keys.KeyMap, width, height int) Model {
	if now == nil {
		now = time.Now
	}
	bar := progress.New(
		progress.WithSolidFill(theme.ColorAccent.Dark),
		progress.WithWidth(barWidth(width)),
	)
	return Model{
		goals:     goals,
		reminders: reminders,
		now:       now,
		bar:       bar,
		keys:      k,
		width:     width,
		height:    height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(km, m.keys.NextTab), key.Matches(km, m.keys.PrevTab):
		m.tab = 1 - m.tab
		return m, nil

	case key.Matches(km, m.keys.Up):
		if m.cursor[m.tab] > 0 {
			m.cursor[m.tab]--
		}
		return m, nil

	case key.Matches(km, m.keys.Down):
		if m.cursor[m.tab] < m.count()-1 {
			m.cursor[m.tab]++
		}
		return m, nil

	case key.Matches(km, m.keys.New):
		if m.tab == TabReminders {
			date := organizer.StartOfDay(m.now())
			return m, func() tea.Msg { return NewReminderMsg{Date: date} }
		}
		return m, func() tea.Msg { return NewGoalMsg{} }

	case key.Matches(km, m.keys.Delete):
		m.deleteSelected()
		return m, nil
	}

	if m.tab == TabGoals {
		switch {
		case key.Matches(km, m.keys.Increase):
			m.adjustSelected(organizer.ProgressStep)
		case key.Matches(km, m.keys.Decrease):
			m.adjustSelected(-organizer.ProgressStep)
		}
		return m, nil
	}

	if key.Matches(km, m.keys.Toggle) {
		if r, ok := m.selectedReminder(); ok {
			m.reminders.Toggle(r.ID)
		}
	}
	return m, nil
}

func (m Model) count() int {
	if m.tab == TabReminders {
		return m.reminders.Len()
	}
	return m.goals.Len()
}

func (m *Model) adjustSelected(delta int) {
	g, ok := m.SelectedGoal()
	if !ok {
		return
	}
	m.goals.AdjustProgress(g.ID, delta)
}

func (m *Model) deleteSelected() {
	if m.tab == TabReminders {
		if r, ok := m.selectedReminder(); ok {
			m.reminders.Remove(r.ID)
		}
	} else if g, ok := m.SelectedGoal(); ok {
		m.goals.Remove(g.ID)
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	for tab, n := range []int{m.goals.Len(), m.reminders.Len()} {
		m.cursor[tab] = max(min(m.cursor[tab], n-1), 0)
	}
}

// SelectedGoal returns the goal under the cursor.
func (m Model) SelectedGoal() (model.Goal, bool) {
	all := m.goals.All()
	i := m.cursor[TabGoals]
	if i < 0 || i >= len(all) {
		return model.Goal{}, false
	}
	return all[i], true
}

func (m Model) selectedReminder() (model.Reminder, bool) {
	all := m.reminders.All()
	i := m.cursor[TabReminders]
	if i < 0 || i >= len(all) {
		return model.Reminder{}, false
	}
	return all[i], true
}

// AddGoal stores a new goal and moves the cursor to it.
func (m *Model) AddGoal(in organizer.GoalInput) (model.Goal, bool) {
	g, ok := m.goals.Add(in)
	if ok {
		m.tab = TabGoals
		m.cursor[TabGoals] = m.goals.Len() - 1
	}
	return g, ok
}

// AddReminder stores a new reminder and moves the cursor to it.
func (m *Model) AddReminder(in organizer.ReminderInput) (model.Reminder, bool) {
	r, ok := m.reminders.Add(in)
	if ok {
		m.tab = TabReminders
		m.cursor[TabReminders] = m.reminders.Len() - 1
	}
	return r, ok
}

// Tab returns the visible tab.
func (m Model) Tab() Tab {
	return m.tab
}

// ShowTab switches to tab.
func (m *Model) ShowTab(tab Tab) {
	m.tab = tab
}

// View renders the active tab.
func (m Model) View() string {
	tabs := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderTab("Goals", TabGoals),
		m.renderTab("Reminders", TabReminders),
	)

	var body string
	if m.tab == TabReminders {
		body = m.renderReminders()
	} else {
		body = m.renderGoals()
	}

	return lipgloss.NewStyle().
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			theme.TitleStyle.Render("Goals & Reminders"),
			tabs,
			"",
			body,
		))
}

func (m Model) renderTab(label string, tab Tab) string {
	if m.tab == tab {
		return theme.ActiveTabStyle.Render(label)
	}
	return theme.TabStyle.Render(label)
}

func (m Model) renderGoals() string {
	all := m.goals.All()
	if len(all) == 0 {
		return theme.MutedStyle.Render("No goals yet. Press 'n' to create one.")
	}

	now := m.now()
	blocks := make([]string, 0, len(all))
	for i, g := range all {
		var b strings.Builder
		b.WriteString(g.Title)
		b.WriteString("  ")
		b.WriteString(theme.CategoryStyle(g.Category).Render(g.Category.Label()))
		if g.IsDone() {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorGreen).Render("  ✓ done"))
		}
		if g.Description != "" {
			b.WriteString("\n")
			b.WriteString(theme.MutedStyle.Render(g.Description))
		}
		b.WriteString("\n")
		b.WriteString(m.bar.ViewAs(float64(g.Progress) / float64(model.ProgressMax)))
		if g.Deadline != nil {
			b.WriteString("\n")
			deadline := "Deadline: " + g.Deadline.Format("2 Jan 2006")
			if g.IsOverdue(now) {
				b.WriteString(theme.OverdueStyle.Render(deadline + " OVERDUE"))
			} else {
				b.WriteString(theme.MutedStyle.Render(deadline))
			}
		}

		if i == m.cursor[TabGoals] {
			blocks = append(blocks, theme.SelectedItemStyle.Render(b.String()))
		} else {
			blocks = append(blocks, theme.ListItemStyle.Render(b.String()))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, joinWithBlank(blocks)...)
}

func (m Model) renderReminders() string {
	all := m.reminders.All()
	if len(all) == 0 {
		return theme.MutedStyle.Render("No reminders yet. Press 'n' to create one.")
	}

	now := m.now()
	var b strings.Builder
	for i, r := range all {
		check := "[ ]"
		if r.Completed {
			check = "[x]"
		}
		text := r.Title
		if r.Completed {
			text = theme.DimmedStyle.Render(text)
		}
		when := fmt.Sprintf("%s %s", r.Date.Format("2 Jan"), r.Time)
		if r.IsOverdue(now) {
			when = theme.OverdueStyle.Render(when)
		} else {
			when = theme.MutedStyle.Render(when)
		}

		line := fmt.Sprintf("%s %s  %s  %s", check, text, when,
			theme.CategoryStyle(r.Category).Render(r.Category.Label()))

		if i == m.cursor[TabReminders] {
			b.WriteString(theme.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(theme.ListItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	pending := 0
	for range m.reminders.Pending() {
		pending++
	}
	b.WriteString("\n")
	b.WriteString(theme.MutedStyle.Render(fmt.Sprintf("%d pending, %d overdue",
		pending, len(m.reminders.Overdue(now)))))

	return b.String()
}

func joinWithBlank(blocks []string) []string {
	out := make([]string, 0, 2*len(blocks))
	for i, b := range blocks {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, b)
	}
	return out
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.bar.Width = barWidth(width)
}

func barWidth(width int) int {
	return min(max(width-10, 10), 60)
}
