package organizer

import "time"

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns midnight on the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns midnight on the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// SameDay compares calendar dates, ignoring the time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SameMonth reports whether a and b fall in the same month of the same year.
func SameMonth(a, b time.Time) bool {
	ay, am, _ := a.Date()
	by, bm, _ := b.Date()
	return ay == by && am == bm
}

// DaysInMonth returns every day from the first to the last of ref's
// month, ascending. Month length and leap years come from time.Date
// normalization.
func DaysInMonth(ref time.Time) []time.Time {
	first := StartOfMonth(ref)
	last := EndOfMonth(ref)

	days := make([]time.Time, 0, 31)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// GridDays pads DaysInMonth out to whole weeks starting on weekStart.
// The padding days belong to the neighbouring months.
func GridDays(ref time.Time, weekStart time.Weekday) []time.Time {
	first := StartOfMonth(ref)
	last := EndOfMonth(ref)

	lead := (int(first.Weekday()) - int(weekStart) + 7) % 7
	trail := (int(weekStart) + 6 - int(last.Weekday()) + 7) % 7

	start := first.AddDate(0, 0, -lead)
	end := last.AddDate(0, 0, trail)

	days := make([]time.Time, 0, 42)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Weekdays returns the seven weekdays in display order.
func Weekdays(weekStart time.Weekday) []time.Weekday {
	out := make([]time.Weekday, 7)
	for i := range out {
		out[i] = time.Weekday((int(weekStart) + i) % 7)
	}
	return out
}
