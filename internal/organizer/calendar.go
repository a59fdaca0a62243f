package organizer

import "time"

// DayState classifies a calendar cell for display. The states are
// mutually exclusive.
type DayState int

const (
	DayOrdinary DayState = iota
	DayOutsideMonth
	DayToday
	DaySelected
)

// String returns a short name for the state.
func (s DayState) String() string {
	switch s {
	case DayOutsideMonth:
		return "outside"
	case DayToday:
		return "today"
	case DaySelected:
		return "selected"
	default:
		return "ordinary"
	}
}

// ClassifyDay decides how a cell is drawn. Checks run in priority order:
// outside the reference month, then today, then the selected day.
func ClassifyDay(day, ref, today time.Time, selected *time.Time) DayState {
	switch {
	case !SameMonth(day, ref):
		return DayOutsideMonth
	case SameDay(day, today):
		return DayToday
	case selected != nil && SameDay(day, *selected):
		return DaySelected
	default:
		return DayOrdinary
	}
}

// CalendarState is the navigation state of the month view: which month
// is shown and which day, if any, the user picked.
//
// Changing month does not clear the selection. A selected day from
// another month stays selected and is drawn again whenever it is
// visible.
type CalendarState struct {
	ref      time.Time
	selected *time.Time
}

// NewCalendarState starts on the month containing ref with nothing selected.
func NewCalendarState(ref time.Time) CalendarState {
	return CalendarState{ref: StartOfMonth(ref)}
}

// Reference returns the first day of the displayed month.
func (c CalendarState) Reference() time.Time {
	return c.ref
}

// Selected returns the selected day, or nil.
func (c CalendarState) Selected() *time.Time {
	if c.selected == nil {
		return nil
	}
	d := *c.selected
	return &d
}

// Select marks day as the selected day.
func (c *CalendarState) Select(day time.Time) {
	d := StartOfDay(day)
	c.selected = &d
}

// NextMonth advances the displayed month.
func (c *CalendarState) NextMonth() {
	c.ref = c.ref.AddDate(0, 1, 0)
}

// PrevMonth goes back one month.
func (c *CalendarState) PrevMonth() {
	c.ref = c.ref.AddDate(0, -1, 0)
}

// ShowMonthOf jumps to the month containing t.
func (c *CalendarState) ShowMonthOf(t time.Time) {
	c.ref = StartOfMonth(t)
}

// Classify is ClassifyDay against this state's month and selection.
func (c CalendarState) Classify(day, today time.Time) DayState {
	return ClassifyDay(day, c.ref, today, c.selected)
}
