package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/abrystyle/ritualesbienestar/internal/api"
	"github.com/abrystyle/ritualesbienestar/internal/config"
	"github.com/abrystyle/ritualesbienestar/internal/core"
	"github.com/abrystyle/ritualesbienestar/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Run history is optional: without DATABASE_URL the service still scrapes
	// and serves, it just cannot answer /runs.
	var runs *store.Store
	if cfg.DatabaseURL != "" {
		runs, err = store.NewStore(cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to store", "error", err)
			os.Exit(1)
		}
		defer runs.Close()

		workDir, _ := os.Getwd()
		schemaPath := filepath.Join(workDir, "internal", "store", "schema.sql")
		if err := runs.RunMigrations(schemaPath); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	updater := core.NewUpdateService(cfg, runs)
	srv := api.NewServer(cfg, updater, runs)

	slog.Info("starting server", "port", cfg.Port, "shop", cfg.ShopURL)
	if err := http.ListenAndServe(":"+cfg.Port, srv.Router()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
