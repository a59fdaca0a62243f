package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/nhle/organizer/internal/model"
)

// ErrHelp is returned by Parse when -h or --help was given.
var ErrHelp = pflag.ErrHelp

// Options are the command-line settings. Flags that map onto config keys
// are handed to model.LoadConfig through Bindings, so they only override
// the config when given.
type Options struct {
	ConfigPath  string
	WriteConfig bool

	flags *pflag.FlagSet
}

// configFlags maps flag names to the config keys they override.
var configFlags = []struct {
	flag string
	key  string
}{
	{"log", "log.file"},
	{"sample", "display.sample_data"},
	{"theme", "display.theme"},
}

// Parse reads args (without the program name). Usage goes to output.
// -h returns ErrHelp.
func Parse(args []string, output io.Writer) (Options, error) {
	var opts Options

	fs := pflag.NewFlagSet("organizer", pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVarP(&opts.ConfigPath, "config", "c", model.DefaultConfigPath(), "path to the YAML config file")
	fs.String("log", "", "write diagnostic logs to this file")
	fs.Bool("sample", false, "start with sample tasks, events, goals and reminders")
	fs.String("theme", "", "color theme: default, ocean or mono")
	fs.BoolVar(&opts.WriteConfig, "write-config", false, "write the default config to --config and exit")
	fs.SortFlags = false

	fs.Usage = func() {
		fmt.Fprintf(output, `Personal organizer for the terminal

Usage: organizer [OPTIONS]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(output, `
Environment Variables:
  %s_CATEGORIES_DEFAULT      category for items added under "all"
  %s_CALENDAR_WEEK_START     sunday or monday
  %s_DISPLAY_SAMPLE_DATA     true to load sample data
  %s_DISPLAY_THEME           color theme
  %s_LOG_FILE                log file path
`, model.EnvPrefix, model.EnvPrefix, model.EnvPrefix, model.EnvPrefix, model.EnvPrefix)
	}

	if err := fs.Parse(args); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fs.Usage()
		}
		return Options{}, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return Options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	opts.flags = fs
	return opts, nil
}

// Bindings returns the flags that override config keys. Flags left out
// on the command line fall back to the config file, the environment and
// then the built-in defaults.
func (o Options) Bindings() []model.FlagBinding {
	if o.flags == nil {
		return nil
	}
	out := make([]model.FlagBinding, 0, len(configFlags))
	for _, cf := range configFlags {
		out = append(out, model.FlagBinding{Key: cf.key, Flag: o.flags.Lookup(cf.flag)})
	}
	return out
}
