package home

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/organizer/internal/keys"
	"github.com/nhle/organizer/internal/theme"
)

// Section identifies a destination on the landing menu.
type Section int

const (
	SectionTasks Section = iota
	SectionCalendar
	SectionGoals
)

// SelectedMsg is emitted when the user opens a section.
type SelectedMsg struct {
	Section Section
}

type choice struct {
	section     Section
	title       string
	description string
}

var choices = []choice{
	{SectionTasks, "Tasks", "Organize your daily tasks by category"},
	{SectionCalendar, "Calendar", "See and plan your events month by month"},
	{SectionGoals, "Goals & Reminders", "Track progress and never miss a date"},
}

// Model is the landing menu.
type Model struct {
	keys    *keys.KeyMap
	cursor  int
	summary []string
	width   int
	height  int
}

// New creates the landing menu.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{keys: k, width: width, height: height}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement and selection.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(km, m.keys.Down):
		if m.cursor < len(choices)-1 {
			m.cursor++
		}

	case key.Matches(km, m.keys.Select):
		section := choices[m.cursor].section
		return m, func() tea.Msg { return SelectedMsg{Section: section} }
	}

	return m, nil
}

// Cursor returns the highlighted menu position.
func (m Model) Cursor() int {
	return m.cursor
}

// SetSummary replaces the at-a-glance lines shown under the menu.
func (m *Model) SetSummary(lines []string) {
	m.summary = lines
}

// View renders the menu.
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(theme.TitleStyle.Render("Personal Organizer"))
	s.WriteString("\n")
	s.WriteString(theme.MutedStyle.Render("Tasks, events, goals and reminders in one place."))
	s.WriteString("\n\n")

	for i, c := range choices {
		label := fmt.Sprintf("%d  %s", i+1, c.title)
		if m.cursor == i {
			s.WriteString(theme.SelectedItemStyle.Render(label))
		} else {
			s.WriteString(theme.ListItemStyle.Render(label))
		}
		s.WriteString("\n")
		s.WriteString(theme.ListItemStyle.Render(theme.MutedStyle.Render("   " + c.description)))
		s.WriteString("\n")
	}

	if len(m.summary) > 0 {
		s.WriteString("\n")
		for _, line := range m.summary {
			s.WriteString(theme.ListItemStyle.Render(line))
			s.WriteString("\n")
		}
	}

	s.WriteString("\n")
	s.WriteString(theme.HelpStyle.Render("(use arrow keys or j/k to navigate, enter to select, q to quit)"))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Render(s.String())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
