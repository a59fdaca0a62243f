package organizer

import (
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/nhle/organizer/internal/model"
)

// ReminderInput carries the fields of a new reminder. A nil Time means
// midnight.
type ReminderInput struct {
	Title    string
	Date     time.Time
	Time     *model.ClockTime
	Category model.Category
}

// ReminderTracker holds reminders in creation order.
type ReminderTracker struct {
	reminders       []model.Reminder
	defaultCategory model.Category
	newID           IDFunc
}

// NewReminderTracker creates an empty tracker. A nil newID uses NewID.
func NewReminderTracker(defaultCategory model.Category, newID IDFunc) *ReminderTracker {
	if defaultCategory.IsAll() {
		defaultCategory = model.CategoryPersonal
	}
	return &ReminderTracker{
		defaultCategory: defaultCategory,
		newID:           idFuncOrDefault(newID),
	}
}

// Add appends an open reminder. A blank title or zero date is rejected
// with ok == false.
func (r *ReminderTracker) Add(in ReminderInput) (model.Reminder, bool) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.Date.IsZero() {
		return model.Reminder{}, false
	}

	category := in.Category
	if category.IsAll() {
		category = r.defaultCategory
	}

	rem := model.Reminder{
		ID:       r.newID(),
		Title:    title,
		Date:     StartOfDay(in.Date),
		Category: category,
	}
	if in.Time != nil {
		rem.Time = *in.Time
	}

	r.reminders = append(r.reminders, rem)
	return rem, true
}

// Toggle flips the completed flag of the reminder with the given id.
func (r *ReminderTracker) Toggle(id string) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.reminders[i].Completed = !r.reminders[i].Completed
	return true
}

// Remove deletes the reminder with the given id.
func (r *ReminderTracker) Remove(id string) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.reminders = slices.Delete(r.reminders, i, i+1)
	return true
}

// Get returns the reminder with the given id.
func (r *ReminderTracker) Get(id string) (model.Reminder, bool) {
	i := r.index(id)
	if i < 0 {
		return model.Reminder{}, false
	}
	return r.reminders[i], true
}

// All returns a copy of the reminders in creation order.
func (r *ReminderTracker) All() []model.Reminder {
	return slices.Clone(r.reminders)
}

// Pending yields the reminders that are not completed.
func (r *ReminderTracker) Pending() iter.Seq[model.Reminder] {
	return func(yield func(model.Reminder) bool) {
		for _, rem := range r.reminders {
			if rem.Completed {
				continue
			}
			if !yield(rem) {
				return
			}
		}
	}
}

// Overdue returns the open reminders whose due time is before now.
func (r *ReminderTracker) Overdue(now time.Time) []model.Reminder {
	var out []model.Reminder
	for rem := range r.Pending() {
		if rem.IsOverdue(now) {
			out = append(out, rem)
		}
	}
	return out
}

// Len returns the number of reminders.
func (r *ReminderTracker) Len() int {
	return len(r.reminders)
}

func (r *ReminderTracker) index(id string) int {
	return slices.IndexFunc(r.reminders, func(rem model.Reminder) bool {
		return rem.ID == id
	})
}
