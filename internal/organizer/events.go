package organizer

import (
	"strings"
	"time"

	"github.com/nhle/organizer/internal/model"
)

// EventInput carries the fields of a new event as collected by a form
// or an importer.
type EventInput struct {
	Title    string
	Date     time.Time
	Category model.Category
	Time     *model.ClockTime
	Source   string
}

// EventIndex holds calendar events in insertion order. Events are only
// ever appended.
type EventIndex struct {
	events          []model.Event
	defaultCategory model.Category
	newID           IDFunc
}

// NewEventIndex creates an empty index. Events added without a category
// get defaultCategory. A nil newID uses NewID.
func NewEventIndex(defaultCategory model.Category, newID IDFunc) *EventIndex {
	if defaultCategory.IsAll() {
		defaultCategory = model.CategoryPersonal
	}
	return &EventIndex{
		defaultCategory: defaultCategory,
		newID:           idFuncOrDefault(newID),
	}
}

// Add appends a new event. A blank title or a zero date is rejected and
// reported with ok == false. The date is truncated to the day.
func (x *EventIndex) Add(in EventInput) (model.Event, bool) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.Date.IsZero() {
		return model.Event{}, false
	}

	category := in.Category
	if category.IsAll() {
		category = x.defaultCategory
	}

	ev := model.Event{
		ID:       x.newID(),
		Title:    title,
		Date:     StartOfDay(in.Date),
		Category: category,
		Source:   in.Source,
	}
	if in.Time != nil {
		t := *in.Time
		ev.Time = &t
	}

	x.events = append(x.events, ev)
	return ev, true
}

// On returns the events whose date falls on day, in insertion order.
// The time of day on either side is ignored.
func (x *EventIndex) On(day time.Time) []model.Event {
	var out []model.Event
	for _, ev := range x.events {
		if SameDay(ev.Date, day) {
			out = append(out, ev)
		}
	}
	return out
}

// CountOn returns len(On(day)) without building the slice.
func (x *EventIndex) CountOn(day time.Time) int {
	n := 0
	for _, ev := range x.events {
		if SameDay(ev.Date, day) {
			n++
		}
	}
	return n
}

// InMonth returns the events in ref's month, in insertion order.
func (x *EventIndex) InMonth(ref time.Time) []model.Event {
	var out []model.Event
	for _, ev := range x.events {
		if SameMonth(ev.Date, ref) {
			out = append(out, ev)
		}
	}
	return out
}

// All returns a copy of every event in insertion order.
func (x *EventIndex) All() []model.Event {
	out := make([]model.Event, len(x.events))
	copy(out, x.events)
	return out
}

// Len returns the number of events.
func (x *EventIndex) Len() int {
	return len(x.events)
}

// DefaultCategory returns the category given to events added without one.
func (x *EventIndex) DefaultCategory() model.Category {
	return x.defaultCategory
}
