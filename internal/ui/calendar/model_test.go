package calendar

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/organizer/internal/keys"
	"github.com/nhle/organizer/internal/model"
	"github.com/nhle/organizer/internal/organizer"
	"github.com/nhle/organizer/internal/testutil"
)

var now = testutil.At(2023, time.May, 15, 10, 0)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestView(t *testing.T) (Model, *organizer.EventIndex) {
	t.Helper()

	events := organizer.NewEventIndex(model.CategoryPersonal, testutil.SequentialIDs("event"))
	m := New(events, Options{
		WeekStart:     time.Sunday,
		EventsPerCell: 2,
		Now:           testutil.FixedClock(now),
	}, keys.DefaultKeyMap(), 112, 40)
	return m, events
}

func TestStartsOnToday(t *testing.T) {
	m, _ := newTestView(t)

	assert.True(t, organizer.SameDay(now, m.Cursor()))
	assert.Equal(t, testutil.Date(2023, time.May, 1), m.State().Reference())
	assert.Nil(t, m.State().Selected())
}

func TestCursorMovement(t *testing.T) {
	m, _ := newTestView(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 16, m.Cursor().Day())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 14, m.Cursor().Day())

	m, _ = m.Update(runes("j"))
	assert.Equal(t, 21, m.Cursor().Day())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 14, m.Cursor().Day())
}

func TestCursorFollowsIntoNextMonth(t *testing.T) {
	m, _ := newTestView(t)

	for range 3 {
		m, _ = m.Update(runes("j"))
	}

	assert.Equal(t, testutil.Date(2023, time.June, 5), m.Cursor())
	assert.Equal(t, testutil.Date(2023, time.June, 1), m.State().Reference())
}

func TestMonthNavigationClampsDay(t *testing.T) {
	m, _ := newTestView(t)
	m.cursor = testutil.Date(2023, time.January, 31)
	m.state.ShowMonthOf(m.cursor)

	m, _ = m.Update(runes("l"))
	assert.Equal(t, testutil.Date(2023, time.February, 28), m.Cursor())

	m, _ = m.Update(runes("h"))
	m, _ = m.Update(runes("h"))
	assert.Equal(t, testutil.Date(2022, time.December, 28), m.Cursor())
	assert.Equal(t, testutil.Date(2022, time.December, 1), m.State().Reference())

	m, _ = m.Update(runes("t"))
	assert.Equal(t, testutil.Date(2023, time.May, 15), m.Cursor())
	assert.Equal(t, testutil.Date(2023, time.May, 1), m.State().Reference())
}

func TestSelectPersistsAcrossMonths(t *testing.T) {
	m, _ := newTestView(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.State().Selected())
	assert.Equal(t, testutil.Date(2023, time.May, 16), *m.State().Selected())

	m, _ = m.Update(runes("l"))
	m, _ = m.Update(runes("h"))
	require.NotNil(t, m.State().Selected())
	assert.Equal(t, organizer.DaySelected, m.State().Classify(testutil.Date(2023, time.May, 16), now))
}

func TestNewEventUsesSelectionOrCursor(t *testing.T) {
	m, _ := newTestView(t)

	_, cmd := m.Update(runes("n"))
	require.NotNil(t, cmd)
	assert.Equal(t, NewEventMsg{Date: testutil.Date(2023, time.May, 15)}, cmd())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})

	_, cmd = m.Update(runes("n"))
	require.NotNil(t, cmd)
	assert.Equal(t, NewEventMsg{Date: testutil.Date(2023, time.May, 16)}, cmd())
}

func TestAddEventSelectsItsDay(t *testing.T) {
	m, events := newTestView(t)

	ev, ok := m.AddEvent(organizer.EventInput{
		Title: "Conference",
		Date:  testutil.At(2023, time.July, 4, 9, 30),
	})
	require.True(t, ok)

	assert.Equal(t, 1, events.Len())
	assert.Equal(t, testutil.Date(2023, time.July, 4), ev.Date)
	assert.Equal(t, testutil.Date(2023, time.July, 1), m.State().Reference())
	require.NotNil(t, m.State().Selected())
	assert.Equal(t, ev.Date, *m.State().Selected())

	_, ok = m.AddEvent(organizer.EventInput{Title: "  ", Date: now})
	assert.False(t, ok)
	assert.Equal(t, 1, events.Len())
}

func TestViewShowsEventsAndOverflow(t *testing.T) {
	m, events := newTestView(t)
	for _, title := range []string{"Standup", "Lunch", "Review"} {
		_, ok := events.Add(organizer.EventInput{Title: title, Date: now})
		require.True(t, ok)
	}

	v := m.View()
	assert.Contains(t, v, "May 2023")
	assert.Contains(t, v, "Sun")
	assert.Contains(t, v, "Standup")
	assert.Contains(t, v, "Lunch")
	assert.NotContains(t, v, "Review")
	assert.Contains(t, v, "+1 more")
	assert.Contains(t, v, "Select a day")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = m.View()
	assert.Contains(t, v, "Events for Monday, 15 May 2023")
	assert.Contains(t, v, "Review")
}

func TestViewEmptyDayPanel(t *testing.T) {
	m, _ := newTestView(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), "No events for this day.")
}

func TestBackEmitsBackMsg(t *testing.T) {
	m, _ := newTestView(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, BackMsg{}, cmd())
}
