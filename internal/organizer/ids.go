// Package organizer holds the in-memory collections behind each view:
// the ordered task list, the calendar event index, goals and reminders.
//
// Every collection is owned by a single view model and mutated only from
// Bubble Tea's Update loop, so none of the types here lock.
package organizer

import "github.com/google/uuid"

// IDFunc returns a fresh identifier for a new entity.
type IDFunc func() string

// NewID is the default IDFunc, backed by random UUIDs.
func NewID() string {
	return uuid.NewString()
}

func idFuncOrDefault(f IDFunc) IDFunc {
	if f == nil {
		return NewID
	}
	return f
}
