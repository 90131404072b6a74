package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/natagames/natarun/internal/game"
	"github.com/natagames/natarun/internal/tui"
)

// PlayCmd runs an interactive run in the terminal.
type PlayCmd struct {
	Config  string `short:"c" help:"Run config file (HCL)" default:"natarun.hcl"`
	Catalog string `help:"Directory with swapped content catalogs (TOML)"`
	Seed    int64  `help:"Seed for a reproducible run (0 = random)"`
	Debug   bool   `help:"Write debug logs to natarun.log"`
}

func (p *PlayCmd) Run() error {
	// The TUI owns the terminal, so logs go to a file.
	logFile, err := openLogFile("natarun.log")
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	logger := setupLogger(logFile, p.Debug)

	cfg, cat, err := loadContent(p.Config, p.Catalog, p.Seed)
	if err != nil {
		return err
	}

	g := game.New(cfg, cat, logger)
	model := tui.New(g, logger)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
