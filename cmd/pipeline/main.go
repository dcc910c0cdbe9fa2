package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/abrystyle/ritualesbienestar/internal/config"
	"github.com/abrystyle/ritualesbienestar/internal/core"
	"github.com/abrystyle/ritualesbienestar/internal/store"
)

// pipeline runs one scrape-and-generate pass and exits, for cron or manual
// use. The JSON report goes to stdout; logs go to stderr.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var runs *store.Store
	if cfg.DatabaseURL != "" {
		runs, err = store.NewStore(cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to store", "error", err)
			os.Exit(1)
		}
		defer runs.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report := core.NewUpdateService(cfg, runs).Run(ctx)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(report)

	if !report.Success {
		os.Exit(1)
	}
}
