package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/natagames/natarun/internal/catalog"
	"github.com/natagames/natarun/internal/game"
)

// setupLogger configures structured logging to the given writer.
func setupLogger(w io.Writer, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadContent resolves the catalog and run config shared by every command.
func loadContent(configPath, catalogDir string, seed int64) (game.Config, *catalog.Catalog, error) {
	cfg, err := game.LoadConfig(configPath)
	if err != nil {
		return game.Config{}, nil, fmt.Errorf("loading config: %w", err)
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	var cat *catalog.Catalog
	if catalogDir != "" {
		cat, err = catalog.LoadDir(catalogDir)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		return game.Config{}, nil, fmt.Errorf("loading catalog: %w", err)
	}
	return cfg, cat, nil
}

// openLogFile opens a debug log file for commands that own the terminal.
func openLogFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
}
