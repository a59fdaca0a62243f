package model

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variables that override config keys,
// e.g. ORGANIZER_CATEGORIES_DEFAULT.
const EnvPrefix = "ORGANIZER"

// CategoryConfig controls the category tabs and the fallback category.
type CategoryConfig struct {
	// List is the tab order shown next to "all".
	List []string `mapstructure:"list" yaml:"list"`

	// Default is assigned to new items created while "all" is active.
	Default string `mapstructure:"default" yaml:"default"`
}

// CalendarConfig holds calendar view preferences and import sources.
type CalendarConfig struct {
	// WeekStart is "sunday" or "monday".
	WeekStart string `mapstructure:"week_start" yaml:"week_start"`

	// EventsPerCell caps how many event titles a month cell shows
	// before collapsing the rest into "+N more".
	EventsPerCell int `mapstructure:"events_per_cell" yaml:"events_per_cell"`

	// Import lists .ics files whose events are loaded at startup.
	Import []string `mapstructure:"import" yaml:"import"`

	// ImportCategory is the category given to imported events.
	// Empty means the default category.
	ImportCategory string `mapstructure:"import_category" yaml:"import_category"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// Theme names the color palette: default, ocean or mono.
	Theme      string `mapstructure:"theme" yaml:"theme"`
	SampleData bool   `mapstructure:"sample_data" yaml:"sample_data"`
}

// LogConfig controls where diagnostic output goes. The terminal belongs
// to the UI, so logs are written to a file or dropped.
type LogConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Categories CategoryConfig `mapstructure:"categories" yaml:"categories"`
	Calendar   CalendarConfig `mapstructure:"calendar" yaml:"calendar"`
	Display    DisplayConfig  `mapstructure:"display" yaml:"display"`
	Log        LogConfig      `mapstructure:"log" yaml:"log"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/organizer/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "organizer", "config.yaml")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	list := make([]string, len(DefaultCategories))
	for i, c := range DefaultCategories {
		list[i] = string(c)
	}
	return &AppConfig{
		Categories: CategoryConfig{
			List:    list,
			Default: string(CategoryPersonal),
		},
		Calendar: CalendarConfig{
			WeekStart:     "sunday",
			EventsPerCell: 2,
			Import:        []string{},
		},
		Display: DisplayConfig{
			Theme: "default",
		},
	}
}

// FlagBinding ties a command-line flag to the config key it overrides.
type FlagBinding struct {
	Key  string
	Flag *pflag.Flag
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Environment variables prefixed with EnvPrefix override file values, and
// bound flags that were set on the command line override both.
// If the file does not exist, defaults (plus environment) are used.
func LoadConfig(path string, flags ...FlagBinding) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, b := range flags {
		if err := v.BindPFlag(b.Key, b.Flag); err != nil {
			return nil, fmt.Errorf("binding flag for %s: %w", b.Key, err)
		}
	}

	// Set defaults so missing keys resolve to sensible values and so
	// AutomaticEnv knows which keys exist.
	def := DefaultAppConfig()
	v.SetDefault("categories.list", def.Categories.List)
	// An unset default resolves to the first listed category in Validate.
	v.SetDefault("categories.default", "")
	v.SetDefault("calendar.week_start", def.Calendar.WeekStart)
	v.SetDefault("calendar.events_per_cell", def.Calendar.EventsPerCell)
	v.SetDefault("calendar.import", def.Calendar.Import)
	v.SetDefault("calendar.import_category", "")
	v.SetDefault("display.theme", def.Display.Theme)
	v.SetDefault("display.sample_data", false)
	v.SetDefault("log.file", "")

	if err := v.ReadInConfig(); err != nil {
		_, isPathErr := err.(*os.PathError)
		_, isNotFound := err.(viper.ConfigFileNotFoundError)
		if !isPathErr && !isNotFound {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that the views depend on and fills in
// fallbacks for empty ones.
func (c *AppConfig) Validate() error {
	if len(c.Categories.List) == 0 {
		c.Categories.List = DefaultAppConfig().Categories.List
	}
	for _, name := range c.Categories.List {
		if Category(name).IsAll() {
			return fmt.Errorf("category %q is reserved", name)
		}
	}
	c.Categories.Default = strings.TrimSpace(c.Categories.Default)
	if c.Categories.Default == "" {
		c.Categories.Default = c.Categories.List[0]
	}
	if !slices.Contains(c.Categories.List, c.Categories.Default) {
		return fmt.Errorf("default category %q is not in categories.list %v", c.Categories.Default, c.Categories.List)
	}
	if c.Calendar.EventsPerCell <= 0 {
		c.Calendar.EventsPerCell = 2
	}
	if _, err := ParseWeekday(c.Calendar.WeekStart); err != nil {
		return err
	}
	return nil
}

// CategoryList returns the configured tab list as typed categories.
func (c *AppConfig) CategoryList() []Category {
	out := make([]Category, len(c.Categories.List))
	for i, name := range c.Categories.List {
		out[i] = Category(name)
	}
	return out
}

// DefaultCategory returns the configured fallback category.
func (c *AppConfig) DefaultCategory() Category {
	return Category(c.Categories.Default)
}

// WeekStart returns the configured first day of the week.
func (c *AppConfig) WeekStart() time.Weekday {
	wd, err := ParseWeekday(c.Calendar.WeekStart)
	if err != nil {
		return time.Sunday
	}
	return wd
}

// ParseWeekday accepts "sunday" or "monday" (case-insensitive).
// Empty means sunday.
func ParseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	default:
		return time.Sunday, fmt.Errorf("unsupported week start %q", s)
	}
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("categories", cfg.Categories)
	v.Set("calendar", cfg.Calendar)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
