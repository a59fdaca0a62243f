package model

import "time"

// Reminder is a dated nudge that can be checked off.
type Reminder struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	Time      ClockTime `json:"time"`
	Category  Category  `json:"category"`
	Completed bool      `json:"completed"`
}

// At returns the instant the reminder is due.
func (r Reminder) At() time.Time {
	return r.Time.On(r.Date)
}

// IsOverdue reports whether the reminder is still open after its due time.
func (r Reminder) IsOverdue(now time.Time) bool {
	return !r.Completed && r.At().Before(now)
}
