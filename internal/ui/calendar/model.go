package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/nhle/organizer/internal/keys"
	"github.com/nhle/organizer/internal/model"
	"github.com/nhle/organizer/internal/organizer"
	"github.com/nhle/organizer/internal/theme"
)

// BackMsg signals the parent to leave the calendar.
type BackMsg struct{}

// NewEventMsg asks the parent to open the event form for Date.
type NewEventMsg struct {
	Date time.Time
}

// Model is the month view.
type Model struct {
	events    *organizer.EventIndex
	state     organizer.CalendarState
	cursor    time.Time
	now       func() time.Time
	weekStart time.Weekday
	perCell   int
	keys      *keys.KeyMap
	width     int
	height    int
}

// Options configures the month view.
type Options struct {
	WeekStart     time.Weekday
	EventsPerCell int
	// Now defaults to time.Now.
	Now func() time.Time
}

// New creates a month view showing the current month with the cursor on today.
func New(events *organizer.EventIndex, opts Options, k *keys.KeyMap, width, height int) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	today := organizer.StartOfDay(now())
	return Model{
		events:    events,
		state:     organizer.NewCalendarState(today),
		cursor:    today,
		now:       now,
		weekStart: opts.WeekStart,
		perCell:   max(opts.EventsPerCell, 1),
		keys:      k,
		width:     width,
		height:    height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the month view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(km, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(km, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(km, m.keys.Up):
		m.moveCursor(-7)
	case key.Matches(km, m.keys.Down):
		m.moveCursor(7)

	case key.Matches(km, m.keys.PrevMonth):
		m.PrevMonth()
	case key.Matches(km, m.keys.NextMonth):
		m.NextMonth()
	case key.Matches(km, m.keys.Today):
		m.GoToday()

	case key.Matches(km, m.keys.Select):
		m.state.Select(m.cursor)

	case key.Matches(km, m.keys.New):
		date := m.cursor
		if sel := m.state.Selected(); sel != nil {
			date = *sel
		}
		return m, func() tea.Msg { return NewEventMsg{Date: date} }
	}

	return m, nil
}

// moveCursor shifts the cursor by days and follows it into another month.
func (m *Model) moveCursor(days int) {
	m.cursor = m.cursor.AddDate(0, 0, days)
	if !organizer.SameMonth(m.cursor, m.state.Reference()) {
		m.state.ShowMonthOf(m.cursor)
	}
}

// NextMonth shows the following month, keeping the cursor's day number
// where the month is long enough.
func (m *Model) NextMonth() {
	m.state.NextMonth()
	m.cursor = sameDayIn(m.cursor, m.state.Reference())
}

// PrevMonth shows the previous month.
func (m *Model) PrevMonth() {
	m.state.PrevMonth()
	m.cursor = sameDayIn(m.cursor, m.state.Reference())
}

// GoToday jumps to the current month and puts the cursor on today.
func (m *Model) GoToday() {
	m.cursor = organizer.StartOfDay(m.now())
	m.state.ShowMonthOf(m.cursor)
}

func sameDayIn(day, ref time.Time) time.Time {
	last := organizer.EndOfMonth(ref).Day()
	return time.Date(ref.Year(), ref.Month(), min(day.Day(), last), 0, 0, 0, 0, ref.Location())
}

// AddEvent stores a new event and selects its day so it is visible in the
// day panel.
func (m *Model) AddEvent(in organizer.EventInput) (model.Event, bool) {
	ev, ok := m.events.Add(in)
	if !ok {
		return model.Event{}, false
	}
	m.state.Select(ev.Date)
	m.state.ShowMonthOf(ev.Date)
	m.cursor = ev.Date
	return ev, true
}

// State returns the navigation state.
func (m Model) State() organizer.CalendarState {
	return m.state
}

// Cursor returns the day under the cursor.
func (m Model) Cursor() time.Time {
	return m.cursor
}

// View renders the month grid and the day panel.
func (m Model) View() string {
	today := m.now()
	cw := m.cellWidth()

	title := theme.TitleStyle.Render(m.state.Reference().Format("January 2006"))

	heads := make([]string, 0, 7)
	for _, wd := range organizer.Weekdays(m.weekStart) {
		heads = append(heads, lipgloss.NewStyle().
			Width(cw).
			Bold(true).
			Foreground(theme.ColorGray).
			Render(wd.String()[:3]))
	}

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, heads...)}
	days := organizer.GridDays(m.state.Reference(), m.weekStart)
	for week := 0; week < len(days); week += 7 {
		cells := make([]string, 0, 7)
		for _, day := range days[week : week+7] {
			cells = append(cells, m.renderCell(day, today, cw))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)

	return lipgloss.NewStyle().
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, grid, "", m.renderDayPanel()))
}

func (m Model) cellWidth() int {
	return max((m.width-2)/7, 6)
}

// renderCell draws one day: its number, up to perCell event titles and a
// "+N more" line for the rest.
func (m Model) renderCell(day, today time.Time, cw int) string {
	state := m.state.Classify(day, today)

	num := fmt.Sprintf("%2d", day.Day())
	var numStyle lipgloss.Style
	switch state {
	case organizer.DayOutsideMonth:
		numStyle = theme.DayOutsideStyle
	case organizer.DayToday:
		numStyle = theme.DayTodayStyle
	case organizer.DaySelected:
		numStyle = theme.DaySelectedStyle
	default:
		numStyle = theme.DayOrdinaryStyle
	}
	if organizer.SameDay(day, m.cursor) {
		num = "[" + num + "]"
		numStyle = numStyle.Inherit(theme.DayCursorStyle)
	} else {
		num = " " + num + " "
	}

	lines := []string{numStyle.Render(num)}

	if state != organizer.DayOutsideMonth {
		events := m.events.On(day)
		for i, ev := range events {
			if i == m.perCell {
				lines = append(lines, theme.MutedStyle.Render(
					fmt.Sprintf("+%d more", len(events)-m.perCell),
				))
				break
			}
			lines = append(lines, theme.CategoryStyle(ev.Category).Render(
				ansi.Truncate(eventLabel(ev), cw-1, "…"),
			))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Height(m.perCell + 2).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderDayPanel() string {
	sel := m.state.Selected()
	if sel == nil {
		return theme.PanelStyle.
			Width(max(m.width-4, 20)).
			Render(theme.MutedStyle.Render("Select a day with enter to see its events."))
	}

	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render("Events for " + sel.Format("Monday, 2 January 2006")))
	b.WriteString("\n")

	events := m.events.On(*sel)
	if len(events) == 0 {
		b.WriteString(theme.MutedStyle.Render("No events for this day."))
	}
	for i, ev := range events {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("• %s  %s",
			eventLabel(ev),
			theme.CategoryStyle(ev.Category).Render(ev.Category.Label()),
		))
	}

	return theme.PanelStyle.Width(max(m.width-4, 20)).Render(b.String())
}

func eventLabel(ev model.Event) string {
	if ev.HasTime() {
		return ev.Time.String() + " " + ev.Title
	}
	return ev.Title
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
