package model

import "time"

// Event is a calendar entry. Events are never edited or removed once created.
type Event struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Date     time.Time  `json:"date"`
	Category Category   `json:"category"`
	Time     *ClockTime `json:"time,omitempty"`

	// Source is empty for events created in the app and holds the
	// file path for imported events.
	Source string `json:"source,omitempty"`
}

// HasTime reports whether the event is pinned to a time of day.
func (e Event) HasTime() bool {
	return e.Time != nil
}
