package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/nhle/organizer/internal/app"
	"github.com/nhle/organizer/internal/cli"
	"github.com/nhle/organizer/internal/model"
	"github.com/nhle/organizer/internal/theme"
)

func main() {
	// Load .env if present; environment overrides go through viper.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: loading .env: %v\n", err)
	}

	opts, err := cli.Parse(os.Args[1:], os.Stderr)
	if errors.Is(err, cli.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts cli.Options) error {
	if opts.WriteConfig {
		if err := model.SaveConfig(opts.ConfigPath, model.DefaultAppConfig()); err != nil {
			return err
		}
		fmt.Printf("wrote default config to %s\n", opts.ConfigPath)
		return nil
	}

	cfg, err := model.LoadConfig(opts.ConfigPath, opts.Bindings()...)
	if err != nil {
		return err
	}

	if err := theme.Apply(cfg.Display.Theme); err != nil {
		return fmt.Errorf("display.theme: %w", err)
	}

	// The terminal belongs to the UI; logs go to a file or nowhere.
	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "organizer")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cols := app.NewCollections(cfg)
	if cfg.Display.SampleData {
		if err := cols.Seed(time.Now()); err != nil {
			return fmt.Errorf("loading sample data: %w", err)
		}
	}

	log.Printf("starting with config %s", opts.ConfigPath)

	p := tea.NewProgram(app.New(cfg, cols, time.Now), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running organizer: %w", err)
	}
	return nil
}
