package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/natagames/natarun/internal/server"
)

// ServeCmd hosts runs over websockets, one run per connection.
type ServeCmd struct {
	Addr        string        `help:"Listen address" default:":8080"`
	Config      string        `short:"c" help:"Run config file (HCL)" default:"natarun.hcl"`
	Catalog     string        `help:"Directory with swapped content catalogs (TOML)"`
	IdleTimeout time.Duration `help:"Disconnect clients idle for this long" default:"5m"`
	Debug       bool          `help:"Verbose logging"`
}

func (s *ServeCmd) Run() error {
	logger := setupLogger(os.Stderr, s.Debug)

	cfg, cat, err := loadContent(s.Config, s.Catalog, 0)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(s.Addr, cfg, cat, logger, server.WithIdleTimeout(s.IdleTimeout))
	return srv.ListenAndServe(ctx)
}
