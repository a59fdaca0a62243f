package organizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/organizer/internal/model"
	"github.com/nhle/organizer/internal/testutil"
)

func TestGoalTracker_Add(t *testing.T) {
	g := NewGoalTracker(model.CategoryPersonal, testutil.SequentialIDs("goal"))

	deadline := testutil.At(2023, time.December, 31, 12, 0)
	goal, ok := g.Add(GoalInput{
		Title:       "Ler 12 livros este ano",
		Description: "Um livro por mês",
		Deadline:    &deadline,
		Progress:    25,
	})
	require.True(t, ok)
	assert.Equal(t, "goal-1", goal.ID)
	assert.Equal(t, 25, goal.Progress)
	assert.Equal(t, model.CategoryPersonal, goal.Category)
	require.NotNil(t, goal.Deadline)
	assert.Equal(t, testutil.Date(2023, time.December, 31), *goal.Deadline)

	_, ok = g.Add(GoalInput{Title: "  "})
	assert.False(t, ok)
	assert.Equal(t, 1, g.Len())

	over, ok := g.Add(GoalInput{Title: "over", Progress: 140})
	require.True(t, ok)
	assert.Equal(t, 100, over.Progress)
}

func TestGoalTracker_AdjustProgressClampsBothBounds(t *testing.T) {
	tests := []struct {
		name  string
		start int
		delta int
		want  int
	}{
		{"clamped at zero", 5, -10, 0},
		{"plain decrement", 40, -10, 30},
		{"plain increment", 40, 10, 50},
		{"clamped at hundred", 95, 10, 100},
		{"already full", 100, 10, 100},
		{"already empty", 0, -10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGoalTracker(model.CategoryPersonal, nil)
			goal, ok := g.Add(GoalInput{Title: "goal", Progress: tt.start})
			require.True(t, ok)

			got, ok := g.AdjustProgress(goal.ID, tt.delta)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)

			stored, _ := g.Get(goal.ID)
			assert.Equal(t, tt.want, stored.Progress)
		})
	}
}

func TestGoalTracker_AdjustMissing(t *testing.T) {
	g := NewGoalTracker(model.CategoryPersonal, nil)
	_, ok := g.AdjustProgress("missing", ProgressStep)
	assert.False(t, ok)
}

func TestGoalTracker_Remove(t *testing.T) {
	g := NewGoalTracker(model.CategoryPersonal, testutil.SequentialIDs("goal"))
	g.Add(GoalInput{Title: "a"})
	g.Add(GoalInput{Title: "b"})

	assert.True(t, g.Remove("goal-1"))
	assert.False(t, g.Remove("goal-1"))

	all := g.All()
	require.Len(t, all, 1)
	assert.Equal(t, "b", all[0].Title)
}
