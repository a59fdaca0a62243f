package theme

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/organizer/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorRose    = lipgloss.AdaptiveColor{Dark: "#F4A6B7", Light: "#BE3455"}
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// Palette holds the colors a theme can change. Category colors stay fixed
// so a tag looks the same under every theme.
type Palette struct {
	// Accent fills the header, active tabs and the selected day.
	Accent lipgloss.AdaptiveColor
	// OnAccent is text drawn over Accent.
	OnAccent lipgloss.AdaptiveColor
	// Grab marks the task being moved.
	Grab lipgloss.AdaptiveColor
}

// DefaultTheme is used when the config names no theme.
const DefaultTheme = "default"

var palettes = map[string]Palette{
	DefaultTheme: {
		Accent:   ColorRose,
		OnAccent: ColorWhite,
		Grab:     ColorYellow,
	},
	"ocean": {
		Accent:   ColorBlue,
		OnAccent: lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#F8F9FA"},
		Grab:     ColorYellow,
	},
	"mono": {
		Accent:   lipgloss.AdaptiveColor{Dark: "#DEE2E6", Light: "#2D3748"},
		OnAccent: lipgloss.AdaptiveColor{Dark: "#1A202C", Light: "#F8F9FA"},
		Grab:     ColorGray,
	},
}

// ColorAccent is the active palette's accent color.
var ColorAccent lipgloss.AdaptiveColor

// Styles are rebuilt from the active palette by Apply.
var (
	// HeaderStyle is used for top-level section headers and the application title.
	HeaderStyle lipgloss.Style
	// StatusBarStyle is used for the bottom status bar.
	StatusBarStyle lipgloss.Style
	// PanelStyle wraps bordered content areas such as help and the day panel.
	PanelStyle lipgloss.Style
	// TitleStyle is used for view titles.
	TitleStyle lipgloss.Style
	// ListItemStyle is the base style for items in a list.
	ListItemStyle lipgloss.Style
	// SelectedItemStyle highlights the currently focused list item.
	SelectedItemStyle lipgloss.Style
	// GrabbedItemStyle marks the task being moved.
	GrabbedItemStyle lipgloss.Style
	// DimmedStyle renders completed items.
	DimmedStyle lipgloss.Style
	// HelpStyle is used for keyboard shortcut hints and help text.
	HelpStyle lipgloss.Style
	// MutedStyle is used for empty states and secondary text.
	MutedStyle lipgloss.Style
	// OverdueStyle flags goals and reminders past their date.
	OverdueStyle lipgloss.Style

	TabStyle       lipgloss.Style
	ActiveTabStyle lipgloss.Style

	DayOrdinaryStyle lipgloss.Style
	DayOutsideStyle  lipgloss.Style
	DayTodayStyle    lipgloss.Style
	DaySelectedStyle lipgloss.Style
	DayCursorStyle   lipgloss.Style
)

func init() {
	build(palettes[DefaultTheme])
}

// Names returns the available theme names, sorted.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply switches every style to the named theme. An empty name selects
// the default theme. Views created afterwards pick up the new styles.
func Apply(name string) error {
	if name == "" {
		name = DefaultTheme
	}
	p, ok := palettes[name]
	if !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, Names())
	}
	build(p)
	return nil
}

func build(p Palette) {
	ColorAccent = p.Accent

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.OnAccent).
		Background(p.Accent).
		Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorWhite).
		Background(ColorSubtle).
		Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWhite).
		MarginBottom(1)

	ListItemStyle = lipgloss.NewStyle().
		PaddingLeft(2)

	SelectedItemStyle = lipgloss.NewStyle().
		PaddingLeft(1).
		Bold(true).
		Foreground(p.Accent).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(p.Accent)

	GrabbedItemStyle = SelectedItemStyle.
		Foreground(p.Grab).
		BorderForeground(p.Grab)

	DimmedStyle = lipgloss.NewStyle().
		Foreground(ColorGray).
		Strikethrough(true)

	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)

	MutedStyle = lipgloss.NewStyle().
		Foreground(ColorGray)

	OverdueStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorRed)

	TabStyle = lipgloss.NewStyle().
		Foreground(ColorGray).
		Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.OnAccent).
		Background(p.Accent).
		Padding(0, 1)

	DayOrdinaryStyle = lipgloss.NewStyle().
		Foreground(ColorWhite)

	DayOutsideStyle = lipgloss.NewStyle().
		Foreground(ColorSubtle)

	DayTodayStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	DaySelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.OnAccent).
		Background(p.Accent)

	DayCursorStyle = lipgloss.NewStyle().
		Underline(true)
}

// CategoryColor returns the color used for a category tag. Unknown
// categories share the personal color.
func CategoryColor(c model.Category) lipgloss.TerminalColor {
	switch c {
	case model.CategoryWork, "trabalho", "professional", "profissional":
		return ColorBlue
	case model.CategoryHealth, "saúde", "saude":
		return ColorGreen
	case "finance", "financeiro":
		return ColorMagenta
	default:
		return ColorRose
	}
}

// CategoryStyle returns a color-coded badge style for the given category.
func CategoryStyle(c model.Category) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(CategoryColor(c))
}
