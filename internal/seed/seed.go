// Package seed provides the sample data shown when the organizer starts
// with sample data enabled.
package seed

import (
	_ "embed"
	"fmt"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nhle/organizer/internal/model"
	"github.com/nhle/organizer/internal/organizer"
)

//go:embed seed.yaml
var sampleYAML []byte

// Data is the decoded form of a seed file.
type Data struct {
	Tasks     []Task     `yaml:"tasks"`
	Events    []Event    `yaml:"events"`
	Goals     []Goal     `yaml:"goals"`
	Reminders []Reminder `yaml:"reminders"`
}

// Task is a seed task.
type Task struct {
	Text      string `yaml:"text"`
	Category  string `yaml:"category"`
	Completed bool   `yaml:"completed"`
}

// Event is a seed event. Dates are relative to the day the seed is applied.
type Event struct {
	Title    string `yaml:"title"`
	InDays   int    `yaml:"in_days"`
	Time     string `yaml:"time"`
	Category string `yaml:"category"`
}

// Goal is a seed goal. A zero DeadlineInDays means no deadline.
type Goal struct {
	Title          string `yaml:"title"`
	Description    string `yaml:"description"`
	DeadlineInDays int    `yaml:"deadline_in_days"`
	Progress       int    `yaml:"progress"`
	Category       string `yaml:"category"`
}

// Reminder is a seed reminder.
type Reminder struct {
	Title    string `yaml:"title"`
	InDays   int    `yaml:"in_days"`
	Time     string `yaml:"time"`
	Category string `yaml:"category"`
}

// Targets are the collections a seed is applied to. Nil targets are skipped.
type Targets struct {
	Tasks     *organizer.TaskList
	Events    *organizer.EventIndex
	Goals     *organizer.GoalTracker
	Reminders *organizer.ReminderTracker

	// Categories is the configured tab list. Seed categories missing from
	// it take the configured category at the same position among the
	// built-in ones, or else the collection default.
	Categories []model.Category
}

func (t Targets) category(name string) model.Category {
	c := model.Category(name)
	if len(t.Categories) == 0 || slices.Contains(t.Categories, c) {
		return c
	}
	if i := slices.Index(model.DefaultCategories, c); i >= 0 && i < len(t.Categories) {
		return t.Categories[i]
	}
	return model.CategoryAll
}

// Sample returns the embedded sample data.
func Sample() (*Data, error) {
	return Decode(sampleYAML)
}

// Decode parses seed YAML.
func Decode(b []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("decoding seed data: %w", err)
	}
	return &d, nil
}

// Apply adds the seed entries to the targets, resolving relative dates
// against today. Entries the collections reject are skipped.
func (d *Data) Apply(t Targets, today time.Time) error {
	today = organizer.StartOfDay(today)

	if t.Tasks != nil {
		for _, s := range d.Tasks {
			task, ok := t.Tasks.Add(s.Text, t.category(s.Category))
			if ok && s.Completed {
				t.Tasks.Toggle(task.ID)
			}
		}
	}

	if t.Events != nil {
		for _, s := range d.Events {
			in := organizer.EventInput{
				Title:    s.Title,
				Date:     today.AddDate(0, 0, s.InDays),
				Category: t.category(s.Category),
			}
			if s.Time != "" {
				c, err := model.ParseClock(s.Time)
				if err != nil {
					return fmt.Errorf("seed event %q: %w", s.Title, err)
				}
				in.Time = &c
			}
			t.Events.Add(in)
		}
	}

	if t.Goals != nil {
		for _, s := range d.Goals {
			in := organizer.GoalInput{
				Title:       s.Title,
				Description: s.Description,
				Progress:    s.Progress,
				Category:    t.category(s.Category),
			}
			if s.DeadlineInDays != 0 {
				deadline := today.AddDate(0, 0, s.DeadlineInDays)
				in.Deadline = &deadline
			}
			t.Goals.Add(in)
		}
	}

	if t.Reminders != nil {
		for _, s := range d.Reminders {
			in := organizer.ReminderInput{
				Title:    s.Title,
				Date:     today.AddDate(0, 0, s.InDays),
				Category: t.category(s.Category),
			}
			if s.Time != "" {
				c, err := model.ParseClock(s.Time)
				if err != nil {
					return fmt.Errorf("seed reminder %q: %w", s.Title, err)
				}
				in.Time = &c
			}
			t.Reminders.Add(in)
		}
	}

	return nil
}
