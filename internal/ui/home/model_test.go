package home

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/organizer/internal/keys"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMenuNavigation(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 24)
	assert.Equal(t, 0, m.Cursor())

	m, _ = m.Update(runes("j"))
	assert.Equal(t, 1, m.Cursor())

	m, _ = m.Update(runes("j"))
	m, _ = m.Update(runes("j"))
	assert.Equal(t, 2, m.Cursor(), "cursor stops at the last entry")

	m, _ = m.Update(runes("k"))
	assert.Equal(t, 1, m.Cursor())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Cursor(), "cursor stops at the first entry")
}

func TestMenuSelect(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 24)
	m, _ = m.Update(runes("j"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, SelectedMsg{Section: SectionCalendar}, cmd())
}

func TestMenuView(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 24)
	m.SetSummary([]string{"2/5 tasks done"})

	v := m.View()
	assert.Contains(t, v, "Tasks")
	assert.Contains(t, v, "Calendar")
	assert.Contains(t, v, "Goals & Reminders")
	assert.Contains(t, v, "2/5 tasks done")
}
