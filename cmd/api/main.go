package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/spendo/internal/config"
	"github.com/MrJamesThe3rd/spendo/internal/database"
	spendoHttp "github.com/MrJamesThe3rd/spendo/internal/http"
	"github.com/MrJamesThe3rd/spendo/internal/ledger"
	"github.com/MrJamesThe3rd/spendo/internal/ledger/store"
	"github.com/MrJamesThe3rd/spendo/internal/ledger/store/memory"
	"github.com/MrJamesThe3rd/spendo/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logs := logging.Setup(logging.Options{
		Level:      cfg.LogLevel(),
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		Stderr:     cfg.Log.Stderr,
	})
	defer logs.Close()

	repo, closeRepo, err := openRepository(cfg)
	if err != nil {
		slog.Error("failed to open store", "store", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	router := spendoHttp.NewWithRepository(spendoHttp.Options{
		Secret:         cfg.API.Secret,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, repo)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "port", srv.Addr, "store", cfg.Store.Driver, "auth", cfg.API.Secret != "")

	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func openRepository(cfg *config.Config) (ledger.Repository, func(), error) {
	if cfg.Store.Driver == config.StoreMemory {
		return memory.NewDefault(), func() {}, nil
	}

	if err := database.Migrate(cfg.ConnectionString()); err != nil {
		return nil, nil, fmt.Errorf("migrating database: %w", err)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		return nil, nil, err
	}

	return store.New(db), func() { db.Close() }, nil
}
