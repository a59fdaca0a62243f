package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/organizer/internal/model"
)

func TestCategoryColor(t *testing.T) {
	tests := []struct {
		category model.Category
		want     any
	}{
		{model.CategoryWork, ColorBlue},
		{"trabalho", ColorBlue},
		{model.CategoryHealth, ColorGreen},
		{"saúde", ColorGreen},
		{"finance", ColorMagenta},
		{model.CategoryPersonal, ColorRose},
		{"hobbies", ColorRose},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryColor(tt.category))
		})
	}
}

func TestApply(t *testing.T) {
	t.Cleanup(func() { _ = Apply(DefaultTheme) })

	require.NoError(t, Apply("ocean"))
	assert.Equal(t, ColorBlue, ColorAccent)
	assert.Equal(t, lipgloss.TerminalColor(ColorBlue), HeaderStyle.GetBackground())
	assert.Equal(t, lipgloss.TerminalColor(ColorBlue), DaySelectedStyle.GetBackground())

	require.NoError(t, Apply(""))
	assert.Equal(t, ColorRose, ColorAccent)
	assert.Equal(t, lipgloss.TerminalColor(ColorRose), ActiveTabStyle.GetBackground())
}

func TestApplyUnknownTheme(t *testing.T) {
	err := Apply("solarized")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mono")
	assert.Equal(t, ColorRose, ColorAccent, "styles are left alone")
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"default", "mono", "ocean"}, Names())
}
