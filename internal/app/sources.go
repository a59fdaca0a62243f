package app

import (
	"errors"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/organizer/internal/ics"
	"github.com/nhle/organizer/internal/model"
	"github.com/nhle/organizer/internal/organizer"
	"github.com/nhle/organizer/internal/seed"
)

// Collections are the in-memory stores behind the views.
type Collections struct {
	Tasks     *organizer.TaskList
	Events    *organizer.EventIndex
	Goals     *organizer.GoalTracker
	Reminders *organizer.ReminderTracker

	categories []model.Category
}

// NewCollections creates empty collections that file uncategorized items
// under the configured default category.
func NewCollections(cfg *model.AppConfig) Collections {
	def := cfg.DefaultCategory()
	return Collections{
		Tasks:      organizer.NewTaskList(def, nil),
		Events:     organizer.NewEventIndex(def, nil),
		Goals:      organizer.NewGoalTracker(def, nil),
		Reminders:  organizer.NewReminderTracker(def, nil),
		categories: cfg.CategoryList(),
	}
}

// Seed fills the collections with the embedded sample data, dated
// relative to today.
func (c Collections) Seed(today time.Time) error {
	data, err := seed.Sample()
	if err != nil {
		return err
	}
	return data.Apply(seed.Targets{
		Tasks:      c.Tasks,
		Events:     c.Events,
		Goals:      c.Goals,
		Reminders:  c.Reminders,
		Categories: c.categories,
	}, today)
}

// calendarsImportedMsg carries parsed events back to the UI goroutine,
// which owns the event index.
type calendarsImportedMsg struct {
	inputs []organizer.EventInput
	err    error
}

// importCalendars parses the configured .ics files. Unreadable files are
// logged and skipped so one bad path does not hide the others.
func importCalendars(paths []string, opts ics.Options) tea.Cmd {
	if len(paths) == 0 {
		return nil
	}

	return func() tea.Msg {
		var (
			inputs []organizer.EventInput
			errs   []error
		)
		for _, path := range paths {
			parsed, err := ics.ParseFile(path, opts)
			if err != nil {
				log.Printf("failed to import calendar: %v", err)
				errs = append(errs, err)
				continue
			}
			log.Printf("ics: parsed %d events from %s", len(parsed), path)
			inputs = append(inputs, parsed...)
		}
		return calendarsImportedMsg{inputs: inputs, err: errors.Join(errs...)}
	}
}

// importOptions builds the expansion window around now for the
// configured import category.
func importOptions(cfg *model.AppConfig, now time.Time) ics.Options {
	category := model.Category(cfg.Calendar.ImportCategory)
	if category.IsAll() {
		category = cfg.DefaultCategory()
	}
	return ics.DefaultOptions(now, category)
}
