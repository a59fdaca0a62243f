package help

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/organizer/internal/keys"
	"github.com/nhle/organizer/internal/theme"
)

// Section is a group of shortcuts that belong to one part of the organizer.
type Section int

const (
	SectionGeneral Section = iota
	SectionTasks
	SectionCalendar
	SectionGoals
)

// twoColumnWidth is the narrowest panel that lays sections side by side.
const twoColumnWidth = 72

type group struct {
	section  Section
	title    string
	bindings []key.Binding
}

// relabel copies b with a view-specific description.
func relabel(b key.Binding, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(b.Keys()...), key.WithHelp(b.Help().Key, desc))
}

func groups(k *keys.KeyMap) []group {
	return []group{
		{SectionGeneral, "General", []key.Binding{
			k.GoTasks, k.GoCalendar, k.GoGoals, k.Select, k.Back, k.Command, k.Help, k.Quit,
		}},
		{SectionTasks, "Tasks", []key.Binding{
			k.Up, k.Down, relabel(k.New, "new task"), k.Toggle, k.Delete, k.Grab,
			relabel(k.NextTab, "next category"), relabel(k.PrevTab, "previous category"),
		}},
		{SectionCalendar, "Calendar", []key.Binding{
			k.Left, k.Right, relabel(k.Up, "previous week"), relabel(k.Down, "next week"),
			k.PrevMonth, k.NextMonth, k.Today, relabel(k.Select, "show day"), relabel(k.New, "new event"),
		}},
		{SectionGoals, "Goals & reminders", []key.Binding{
			k.Up, k.Down, relabel(k.NextTab, "goals/reminders"), k.New, k.Increase, k.Decrease,
			relabel(k.Toggle, "reminder done"), k.Delete,
		}},
	}
}

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	focus  Section
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	return Model{
		keys:   keys,
		help:   help.New(),
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// Focus puts the section for the view the user came from first and
// highlights its title.
func (m *Model) Focus(s Section) {
	m.focus = s
}

// Focused returns the highlighted section.
func (m Model) Focused() Section {
	return m.focus
}

func (m Model) renderGroup(g group) string {
	title := theme.TabStyle.Render(g.title)
	if g.section == m.focus {
		title = theme.ActiveTabStyle.Render(g.title)
	}

	keyWidth := 0
	for _, b := range g.bindings {
		keyWidth = max(keyWidth, lipgloss.Width(b.Help().Key))
	}

	rows := []string{title}
	for _, b := range g.bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		rows = append(rows, " "+
			m.help.Styles.FullKey.Width(keyWidth+2).Render(h.Key)+
			m.help.Styles.FullDesc.Render(h.Desc))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// View renders the help overlay.
func (m Model) View() string {
	all := groups(m.keys)
	slices.SortStableFunc(all, func(a, b group) int {
		switch {
		case a.section == m.focus:
			return -1
		case b.section == m.focus:
			return 1
		}
		return 0
	})

	blocks := make([]string, len(all))
	for i, g := range all {
		blocks[i] = m.renderGroup(g)
	}

	var body string
	if m.width >= twoColumnWidth {
		colWidth := (m.width - 8) / 2
		col := lipgloss.NewStyle().Width(colWidth).MarginBottom(1)
		var rows []string
		for i := 0; i < len(blocks); i += 2 {
			left := col.Render(blocks[i])
			right := ""
			if i+1 < len(blocks) {
				right = col.Render(blocks[i+1])
			}
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, left, right))
		}
		body = strings.Join(rows, "\n")
	} else {
		body = strings.Join(blocks, "\n\n")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		theme.TitleStyle.Render("Keyboard Shortcuts"),
		body,
	)

	return theme.PanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
