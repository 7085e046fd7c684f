package main

import (
	"fmt"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/pflag"

	"github.com/plusk0/editable-table/grid"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("spreadsheet", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "path to a .json or .yaml config file")
	verbose := flags.BoolP("verbose", "v", false, "log edits and sorts")
	if err := flags.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log.Debug("loaded config", "config", cfg)

	seed, err := loadSeed(cfg)
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}

	store, err := openStore(seed)
	if err != nil {
		return err
	}
	defer store.Close()

	sorter, err := grid.NewSorter(cfg.Locale)
	if err != nil {
		return fmt.Errorf("locale %q: %w", cfg.Locale, err)
	}

	g, err := grid.New(store, grid.WithLogger(log), grid.WithSorter(sorter))
	if err != nil {
		return err
	}
	log.Info("loaded rows", "count", len(g.Rows()))

	a := app.New()
	win := a.NewWindow(cfg.Title)
	win.SetContent(createUI(win, g, cfg, log))
	win.Resize(fyne.NewSize(cfg.Width, cfg.Height))
	win.ShowAndRun()
	return nil
}
