package tasklist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/organizer/internal/model"
	"github.com/nhle/organizer/internal/theme"
)

// TaskItem wraps a task to implement the list.Item interface.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the text used for list filtering.
func (i TaskItem) FilterValue() string { return i.Task.Text }

// dragState is shared by reference between the Model and its delegate so
// the delegate can mark the grabbed row.
type dragState struct {
	grabbing bool
}

// ItemDelegate implements list.ItemDelegate for rendering task rows.
type ItemDelegate struct {
	drag *dragState
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}
	task := ti.Task
	isSelected := index == m.Index()

	check := "[ ]"
	if task.Completed {
		check = "[x]"
	}

	grip := " "
	if isSelected && d.drag != nil && d.drag.grabbing {
		grip = "⠿"
	}

	text := task.Text
	if task.Completed {
		text = theme.DimmedStyle.Render(text)
	}

	badge := theme.CategoryStyle(task.Category).Render(task.Category.Label())

	line := fmt.Sprintf("%s %s %s  %s", grip, check, text, badge)

	switch {
	case isSelected && d.drag != nil && d.drag.grabbing:
		line = theme.GrabbedItemStyle.Render(line)
	case isSelected:
		line = theme.SelectedItemStyle.Render(line)
	default:
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
