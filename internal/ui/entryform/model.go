package entryform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/organizer/internal/model"
	"github.com/nhle/organizer/internal/organizer"
	"github.com/nhle/organizer/internal/theme"
)

const dateLayout = "2006-01-02"

// Kind selects which entity the form creates.
type Kind int

const (
	KindEvent Kind = iota
	KindGoal
	KindReminder
)

// EventSubmittedMsg is dispatched when the event form completes.
type EventSubmittedMsg struct {
	Input organizer.EventInput
}

// GoalSubmittedMsg is dispatched when the goal form completes.
type GoalSubmittedMsg struct {
	Input organizer.GoalInput
}

// ReminderSubmittedMsg is dispatched when the reminder form completes.
type ReminderSubmittedMsg struct {
	Input organizer.ReminderInput
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	date        string
	clock       string
	category    string
}

// Model is the Bubble Tea model for the new event/goal/reminder forms.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	kind       Kind
	categories []model.Category
	width      int
	height     int
}

// New creates a form model offering the given categories.
func New(categories []model.Category, width, height int) Model {
	return Model{
		fb:         &formBindings{},
		categories: categories,
		width:      width,
		height:     height,
	}
}

// Kind returns what the current form creates.
func (m Model) Kind() Kind {
	return m.kind
}

// StartEvent opens the event form with the date prefilled.
func (m *Model) StartEvent(date time.Time, category model.Category) tea.Cmd {
	m.reset(KindEvent, category)
	m.fb.date = date.Format(dateLayout)
	m.form = m.buildEventForm()
	return m.form.Init()
}

// StartGoal opens the goal form.
func (m *Model) StartGoal(category model.Category) tea.Cmd {
	m.reset(KindGoal, category)
	m.form = m.buildGoalForm()
	return m.form.Init()
}

// StartReminder opens the reminder form with the date prefilled.
func (m *Model) StartReminder(date time.Time, category model.Category) tea.Cmd {
	m.reset(KindReminder, category)
	m.fb.date = date.Format(dateLayout)
	m.form = m.buildReminderForm()
	return m.form.Init()
}

func (m *Model) reset(kind Kind, category model.Category) {
	m.kind = kind
	m.fb.title = ""
	m.fb.description = ""
	m.fb.date = ""
	m.fb.clock = ""
	m.fb.category = ""
	if !category.IsAll() {
		m.fb.category = string(category)
	} else if len(m.categories) > 0 {
		m.fb.category = string(m.categories[0])
	}
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	var titleText string
	switch m.kind {
	case KindGoal:
		titleText = "New Goal"
	case KindReminder:
		titleText = "New Reminder"
	default:
		titleText = "New Event"
	}

	content := theme.TitleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildEventForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What is happening?").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fb.date).
				Validate(validateDate),
			huh.NewInput().
				Title("Time").
				Placeholder("HH:MM (optional)").
				Value(&m.fb.clock).
				Validate(validateOptionalClock),
			m.categoryField(),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) buildGoalForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What do you want to achieve?").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&m.fb.description),
			huh.NewInput().
				Title("Deadline").
				Placeholder("YYYY-MM-DD (optional)").
				Value(&m.fb.date).
				Validate(validateOptionalDate),
			m.categoryField(),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) buildReminderForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What should you remember?").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fb.date).
				Validate(validateDate),
			huh.NewInput().
				Title("Time").
				Placeholder("HH:MM (optional, defaults to 00:00)").
				Value(&m.fb.clock).
				Validate(validateOptionalClock),
			m.categoryField(),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) categoryField() huh.Field {
	opts := make([]huh.Option[string], len(m.categories))
	for i, c := range m.categories {
		opts[i] = huh.NewOption(c.Label(), string(c))
	}
	return huh.NewSelect[string]().
		Title("Category").
		Options(opts...).
		Value(&m.fb.category)
}

func (m Model) handleSubmit() tea.Cmd {
	fb := *m.fb
	category := model.Category(fb.category)

	switch m.kind {
	case KindGoal:
		in := organizer.GoalInput{
			Title:       fb.title,
			Description: strings.TrimSpace(fb.description),
			Deadline:    parseOptionalDate(fb.date),
			Category:    category,
		}
		return func() tea.Msg { return GoalSubmittedMsg{Input: in} }

	case KindReminder:
		in := organizer.ReminderInput{
			Title:    fb.title,
			Date:     parseDate(fb.date),
			Time:     parseOptionalClock(fb.clock),
			Category: category,
		}
		return func() tea.Msg { return ReminderSubmittedMsg{Input: in} }

	default:
		in := organizer.EventInput{
			Title:    fb.title,
			Date:     parseDate(fb.date),
			Time:     parseOptionalClock(fb.clock),
			Category: category,
		}
		return func() tea.Msg { return EventSubmittedMsg{Input: in} }
	}
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

func (m Model) formHeight() int {
	return max(m.height-4, 10)
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("date is required")
	}
	return validateOptionalDate(s)
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.ParseInLocation(dateLayout, s, time.Local); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func validateOptionalClock(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := model.ParseClock(s); err != nil {
		return fmt.Errorf("invalid time, use HH:MM")
	}
	return nil
}

// parseDate returns the zero time for blank or malformed input, which the
// collections reject.
func parseDate(s string) time.Time {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseOptionalDate(s string) *time.Time {
	t := parseDate(s)
	if t.IsZero() {
		return nil
	}
	return &t
}

func parseOptionalClock(s string) *model.ClockTime {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	c, err := model.ParseClock(s)
	if err != nil {
		return nil
	}
	return &c
}
