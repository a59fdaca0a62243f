package organizer

import (
	"iter"
	"slices"
	"strings"

	"github.com/nhle/organizer/internal/model"
)

// TaskList is an ordered list of tasks. Order is display and priority
// order; IDs are unique within the list.
type TaskList struct {
	items           []model.Task
	defaultCategory model.Category
	newID           IDFunc
}

// NewTaskList creates an empty list. Tasks added while the "all" filter
// is active get defaultCategory. A nil newID uses NewID.
func NewTaskList(defaultCategory model.Category, newID IDFunc) *TaskList {
	if defaultCategory.IsAll() {
		defaultCategory = model.CategoryPersonal
	}
	return &TaskList{
		defaultCategory: defaultCategory,
		newID:           idFuncOrDefault(newID),
	}
}

// Add appends a new open task. The task is filed under active, or under
// the default category when active is the "all" filter. Blank text is
// rejected and reported with ok == false.
func (l *TaskList) Add(text string, active model.Category) (model.Task, bool) {
	if strings.TrimSpace(text) == "" {
		return model.Task{}, false
	}

	category := active
	if category.IsAll() {
		category = l.defaultCategory
	}

	task := model.Task{
		ID:       l.newID(),
		Text:     text,
		Category: category,
	}
	l.items = append(l.items, task)
	return task, true
}

// Toggle flips the completed flag of the task with the given id.
func (l *TaskList) Toggle(id string) bool {
	i := l.Index(id)
	if i < 0 {
		return false
	}
	l.items[i].Completed = !l.items[i].Completed
	return true
}

// Remove deletes the task with the given id.
func (l *TaskList) Remove(id string) bool {
	i := l.Index(id)
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	return true
}

// Move takes the task at from out of the list and reinserts it at to.
// Both indices must address existing positions; otherwise the list is
// left untouched and Move returns false.
func (l *TaskList) Move(from, to int) bool {
	n := len(l.items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	if from == to {
		return true
	}

	task := l.items[from]
	l.items = slices.Delete(l.items, from, from+1)
	l.items = slices.Insert(l.items, to, task)
	return true
}

// MoveWithin moves a task using positions in the view filtered by
// category. The item at filtered position from ends up at filtered
// position to; tasks hidden by the filter keep their relative order.
func (l *TaskList) MoveWithin(category model.Category, from, to int) bool {
	if category.IsAll() {
		return l.Move(from, to)
	}

	var positions []int
	for i, t := range l.items {
		if category.Matches(t.Category) {
			positions = append(positions, i)
		}
	}
	if from < 0 || from >= len(positions) || to < 0 || to >= len(positions) {
		return false
	}
	return l.Move(positions[from], positions[to])
}

// Filter yields the tasks in category, or every task for the "all"
// filter, in list order. The sequence reads the list lazily and can be
// ranged over any number of times; it never modifies the list.
func (l *TaskList) Filter(category model.Category) iter.Seq[model.Task] {
	return func(yield func(model.Task) bool) {
		for _, t := range l.items {
			if !category.Matches(t.Category) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Index returns the position of the task with the given id, or -1.
func (l *TaskList) Index(id string) int {
	return slices.IndexFunc(l.items, func(t model.Task) bool {
		return t.ID == id
	})
}

// Get returns the task with the given id.
func (l *TaskList) Get(id string) (model.Task, bool) {
	i := l.Index(id)
	if i < 0 {
		return model.Task{}, false
	}
	return l.items[i], true
}

// Items returns a copy of the list in order.
func (l *TaskList) Items() []model.Task {
	return slices.Clone(l.items)
}

// Len returns the number of tasks.
func (l *TaskList) Len() int {
	return len(l.items)
}

// Counts returns how many tasks are completed and how many exist.
func (l *TaskList) Counts() (completed, total int) {
	for _, t := range l.items {
		if t.Completed {
			completed++
		}
	}
	return completed, len(l.items)
}

// DefaultCategory returns the category used for tasks added under "all".
func (l *TaskList) DefaultCategory() model.Category {
	return l.defaultCategory
}
