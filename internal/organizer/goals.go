package organizer

import (
	"slices"
	"strings"
	"time"

	"github.com/nhle/organizer/internal/model"
)

// ProgressStep is the increment applied by the goal view's +/- actions.
const ProgressStep = 10

// GoalInput carries the fields of a new goal.
type GoalInput struct {
	Title       string
	Description string
	Deadline    *time.Time
	Category    model.Category
	Progress    int
}

// GoalTracker holds goals in creation order.
type GoalTracker struct {
	goals           []model.Goal
	defaultCategory model.Category
	newID           IDFunc
}

// NewGoalTracker creates an empty tracker. A nil newID uses NewID.
func NewGoalTracker(defaultCategory model.Category, newID IDFunc) *GoalTracker {
	if defaultCategory.IsAll() {
		defaultCategory = model.CategoryPersonal
	}
	return &GoalTracker{
		defaultCategory: defaultCategory,
		newID:           idFuncOrDefault(newID),
	}
}

// Add appends a goal. A blank title is rejected with ok == false.
// The initial progress is clamped to [0, 100].
func (g *GoalTracker) Add(in GoalInput) (model.Goal, bool) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Goal{}, false
	}

	category := in.Category
	if category.IsAll() {
		category = g.defaultCategory
	}

	goal := model.Goal{
		ID:          g.newID(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Progress:    clampProgress(in.Progress),
		Category:    category,
	}
	if in.Deadline != nil {
		d := StartOfDay(*in.Deadline)
		goal.Deadline = &d
	}

	g.goals = append(g.goals, goal)
	return goal, true
}

// AdjustProgress adds delta to the goal's progress and clamps the result
// to [0, 100] in both directions. It returns the new progress.
func (g *GoalTracker) AdjustProgress(id string, delta int) (int, bool) {
	i := g.index(id)
	if i < 0 {
		return 0, false
	}
	g.goals[i].Progress = clampProgress(g.goals[i].Progress + delta)
	return g.goals[i].Progress, true
}

// Remove deletes the goal with the given id.
func (g *GoalTracker) Remove(id string) bool {
	i := g.index(id)
	if i < 0 {
		return false
	}
	g.goals = slices.Delete(g.goals, i, i+1)
	return true
}

// Get returns the goal with the given id.
func (g *GoalTracker) Get(id string) (model.Goal, bool) {
	i := g.index(id)
	if i < 0 {
		return model.Goal{}, false
	}
	return g.goals[i], true
}

// All returns a copy of the goals in creation order.
func (g *GoalTracker) All() []model.Goal {
	return slices.Clone(g.goals)
}

// Len returns the number of goals.
func (g *GoalTracker) Len() int {
	return len(g.goals)
}

func (g *GoalTracker) index(id string) int {
	return slices.IndexFunc(g.goals, func(goal model.Goal) bool {
		return goal.ID == id
	})
}

func clampProgress(p int) int {
	return min(max(p, model.ProgressMin), model.ProgressMax)
}
