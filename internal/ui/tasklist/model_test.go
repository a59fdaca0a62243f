package tasklist

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/organizer/internal/keys"
	"github.com/nhle/organizer/internal/model"
	"github.com/nhle/organizer/internal/organizer"
	"github.com/nhle/organizer/internal/testutil"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestView(t *testing.T) (Model, *organizer.TaskList) {
	t.Helper()

	tasks := organizer.NewTaskList(model.CategoryPersonal, testutil.SequentialIDs("task"))
	for _, in := range []struct {
		text     string
		category model.Category
	}{
		{"pay bills", model.CategoryPersonal},
		{"write report", model.CategoryWork},
		{"go running", model.CategoryHealth},
		{"call plumber", model.CategoryPersonal},
	} {
		_, ok := tasks.Add(in.text, in.category)
		require.True(t, ok)
	}

	return New(tasks, model.DefaultCategories, keys.DefaultKeyMap(), 80, 30), tasks
}

func texts(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Text
	}
	return out
}

func TestAddTaskThroughInput(t *testing.T) {
	m, tasks := newTestView(t)

	m, _ = m.Update(runes("n"))
	require.True(t, m.Typing())

	m, _ = m.Update(runes("buy milk"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, ChangedMsg{}, cmd())

	require.Equal(t, 5, tasks.Len())
	added := tasks.Items()[4]
	assert.Equal(t, "buy milk", added.Text)
	assert.Equal(t, model.CategoryPersonal, added.Category, "all tab files under the default category")
	assert.True(t, m.Typing(), "input stays focused for the next task")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Typing())
}

func TestAddBlankTaskIsIgnored(t *testing.T) {
	m, tasks := newTestView(t)

	m, _ = m.Update(runes("n"))
	m, _ = m.Update(runes("   "))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, 4, tasks.Len())
}

func TestAddUsesActiveTab(t *testing.T) {
	m, tasks := newTestView(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, model.CategoryWork, m.ActiveCategory())

	m, _ = m.Update(runes("n"))
	m, _ = m.Update(runes("prepare slides"))
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	added := tasks.Items()[tasks.Len()-1]
	assert.Equal(t, model.CategoryWork, added.Category)
}

func TestTabsCycleAndFilter(t *testing.T) {
	m, _ := newTestView(t)
	assert.Equal(t, model.CategoryAll, m.ActiveCategory())
	assert.Len(t, m.list.Items(), 4)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.CategoryPersonal, m.ActiveCategory())
	assert.Len(t, m.list.Items(), 2)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, model.CategoryHealth, m.ActiveCategory(), "shift+tab wraps around")
	assert.Len(t, m.list.Items(), 1)
}

func TestSetFilter(t *testing.T) {
	m, _ := newTestView(t)

	assert.True(t, m.SetFilter(model.CategoryWork))
	assert.Equal(t, model.CategoryWork, m.ActiveCategory())

	assert.False(t, m.SetFilter("finance"))
	assert.Equal(t, model.CategoryWork, m.ActiveCategory())

	assert.True(t, m.SetFilter(""))
	assert.Equal(t, model.CategoryAll, m.ActiveCategory())
}

func TestToggleAndDeleteSelected(t *testing.T) {
	m, tasks := newTestView(t)

	m, _ = m.Update(runes("j"))
	m, _ = m.Update(runes("x"))

	task, ok := tasks.Get("task-2")
	require.True(t, ok)
	assert.True(t, task.Completed)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	task, _ = tasks.Get("task-2")
	assert.False(t, task.Completed)

	_, _ = m.Update(runes("d"))
	_, ok = tasks.Get("task-2")
	assert.False(t, ok)
	assert.Equal(t, 3, tasks.Len())
}

func TestGrabAndMove(t *testing.T) {
	m, tasks := newTestView(t)

	m, _ = m.Update(runes("m"))
	require.True(t, m.Grabbing())

	m, _ = m.Update(runes("j"))
	m, _ = m.Update(runes("j"))
	assert.Equal(t, []string{"write report", "go running", "pay bills", "call plumber"}, texts(tasks.Items()))

	sel, ok := m.SelectedTask()
	require.True(t, ok)
	assert.Equal(t, "pay bills", sel.Text, "cursor follows the grabbed task")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Grabbing())

	m, _ = m.Update(runes("j"))
	sel, _ = m.SelectedTask()
	assert.Equal(t, "call plumber", sel.Text, "j moves the cursor again after dropping")
	assert.Equal(t, []string{"write report", "go running", "pay bills", "call plumber"}, texts(tasks.Items()))
}

func TestGrabMoveStopsAtEdges(t *testing.T) {
	m, tasks := newTestView(t)

	m, _ = m.Update(runes("m"))
	_, cmd := m.Update(runes("k"))

	assert.Nil(t, cmd)
	assert.Equal(t, "pay bills", tasks.Items()[0].Text)
}

func TestGrabMoveInFilteredTab(t *testing.T) {
	m, tasks := newTestView(t)
	require.True(t, m.SetFilter(model.CategoryPersonal))

	m, _ = m.Update(runes("m"))
	_, _ = m.Update(runes("j"))

	assert.Equal(t, []string{"write report", "go running", "call plumber", "pay bills"}, texts(tasks.Items()))
}

func TestBackEmitsBackMsg(t *testing.T) {
	m, _ := newTestView(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, BackMsg{}, cmd())
}

func TestView(t *testing.T) {
	m, _ := newTestView(t)

	v := m.View()
	assert.Contains(t, v, "pay bills")
	assert.Contains(t, v, "0 of 4 tasks completed")
	assert.Contains(t, v, "Work")

	m.SetFilter(model.CategoryWork)
	m.Update(runes("d"))
	m.Refresh()
	assert.Contains(t, m.View(), "No work tasks.")
}
