package tasklist

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/organizer/internal/keys"
	"github.com/nhle/organizer/internal/model"
	"github.com/nhle/organizer/internal/organizer"
	"github.com/nhle/organizer/internal/theme"
)

// BackMsg signals the parent to leave the task view.
type BackMsg struct{}

// ChangedMsg is sent after the task list was modified.
type ChangedMsg struct{}

// Model is the task view: category tabs, an input line and the list.
type Model struct {
	list       list.Model
	tasks      *organizer.TaskList
	keys       *keys.KeyMap
	categories []model.Category
	active     int
	input      textinput.Model
	inputMode  bool
	drag       *dragState
	width      int
	height     int
}

// New creates a task view over tasks. categories are the configured tabs;
// "all" is always shown first.
func New(tasks *organizer.TaskList, categories []model.Category, k *keys.KeyMap, width, height int) Model {
	drag := &dragState{}
	l := list.New([]list.Item{}, ItemDelegate{drag: drag}, width, listHeight(height))
	l.SetShowTitle(false)
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.SetStatusBarItemName("task", "tasks")

	ti := textinput.New()
	ti.Placeholder = "add a new task..."
	ti.Prompt = "+ "
	ti.Width = width - 6

	tabs := []model.Category{model.CategoryAll}
	for _, c := range categories {
		if !c.IsAll() {
			tabs = append(tabs, c)
		}
	}

	m := Model{
		list:       l,
		tasks:      tasks,
		keys:       k,
		categories: tabs,
		input:      ti,
		drag:       drag,
		width:      width,
		height:     height,
	}
	m.refresh()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the task view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case m.inputMode:
			return m.handleInputKeys(msg)
		case m.drag.grabbing:
			return m.handleGrabKeys(msg)
		default:
			return m.handleNormalKeys(msg)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleInputKeys processes key input while the new-task line has focus.
func (m Model) handleInputKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if _, ok := m.tasks.Add(m.input.Value(), m.ActiveCategory()); !ok {
			return m, nil
		}
		m.input.Reset()
		m.refresh()
		m.list.Select(len(m.list.Items()) - 1)
		return m, changed

	case tea.KeyEsc:
		m.inputMode = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleGrabKeys moves the grabbed task one position per key press.
func (m Model) handleGrabKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	from := m.list.Index()

	switch {
	case key.Matches(msg, m.keys.Up):
		return m.moveSelected(from, from-1)

	case key.Matches(msg, m.keys.Down):
		return m.moveSelected(from, from+1)

	case key.Matches(msg, m.keys.Grab),
		key.Matches(msg, m.keys.Select),
		key.Matches(msg, m.keys.Back):
		m.drag.grabbing = false
		return m, nil
	}

	return m, nil
}

func (m Model) moveSelected(from, to int) (Model, tea.Cmd) {
	if !m.tasks.MoveWithin(m.ActiveCategory(), from, to) {
		return m, nil
	}
	m.refresh()
	m.list.Select(to)
	return m, changed
}

// handleNormalKeys processes key input when nothing has focus.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(msg, m.keys.New):
		m.inputMode = true
		m.input.Reset()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.NextTab):
		m.setActive((m.active + 1) % len(m.categories))
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.setActive((m.active - 1 + len(m.categories)) % len(m.categories))
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		task, ok := m.SelectedTask()
		if !ok || !m.tasks.Toggle(task.ID) {
			return m, nil
		}
		m.refresh()
		return m, changed

	case key.Matches(msg, m.keys.Delete):
		task, ok := m.SelectedTask()
		if !ok || !m.tasks.Remove(task.ID) {
			return m, nil
		}
		m.refresh()
		return m, changed

	case key.Matches(msg, m.keys.Grab):
		if len(m.list.Items()) > 0 {
			m.drag.grabbing = true
		}
		return m, nil
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func changed() tea.Msg { return ChangedMsg{} }

// refresh rebuilds the list items from the filtered task sequence.
func (m *Model) refresh() {
	var items []list.Item
	for t := range m.tasks.Filter(m.ActiveCategory()) {
		items = append(items, TaskItem{Task: t})
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	m.list.Select(max(idx, 0))
}

func (m *Model) setActive(i int) {
	m.active = i
	m.refresh()
	m.list.Select(0)
}

// SetFilter activates the tab for category. It reports false when the
// category is not one of the tabs.
func (m *Model) SetFilter(category model.Category) bool {
	if category == "" {
		category = model.CategoryAll
	}
	i := slices.Index(m.categories, category)
	if i < 0 {
		return false
	}
	m.setActive(i)
	return true
}

// ActiveCategory returns the category of the selected tab.
func (m Model) ActiveCategory() model.Category {
	return m.categories[m.active]
}

// SelectedTask returns the task under the cursor.
func (m Model) SelectedTask() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

// Typing reports whether key presses go to the new-task input.
func (m Model) Typing() bool {
	return m.inputMode
}

// Grabbing reports whether a task is being moved.
func (m Model) Grabbing() bool {
	return m.drag.grabbing
}

// Refresh reloads the rows after the task list changed elsewhere.
func (m *Model) Refresh() {
	m.refresh()
}

// View renders the task view.
func (m Model) View() string {
	sections := []string{
		theme.TitleStyle.Render("Tasks"),
		m.renderTabs(),
		"",
		m.renderInput(),
		"",
	}

	if len(m.list.Items()) == 0 {
		sections = append(sections, m.renderEmptyState())
	} else {
		sections = append(sections, m.list.View())
	}

	completed, total := m.tasks.Counts()
	sections = append(sections, "", theme.MutedStyle.Render(
		fmt.Sprintf("%d of %d tasks completed", completed, total),
	))

	return lipgloss.NewStyle().
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(m.categories))
	for i, c := range m.categories {
		if i == m.active {
			tabs[i] = theme.ActiveTabStyle.Render(c.Label())
		} else {
			tabs[i] = theme.TabStyle.Render(c.Label())
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderInput() string {
	if m.inputMode {
		return m.input.View()
	}
	return theme.HelpStyle.Render("press n to add a task")
}

// renderEmptyState shows guidance text when no tasks match the tab.
func (m Model) renderEmptyState() string {
	msg := "No tasks found."
	if !m.ActiveCategory().IsAll() {
		msg = fmt.Sprintf("No %s tasks.", strings.ToLower(m.ActiveCategory().Label()))
	}
	return lipgloss.NewStyle().
		Width(max(m.width-2, 0)).
		Align(lipgloss.Center).
		Foreground(theme.ColorGray).
		Render(msg)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width-2, listHeight(height))
	m.input.Width = width - 6
}

// listHeight leaves room for the title, tabs, input and counters.
func listHeight(height int) int {
	return max(height-9, 3)
}
