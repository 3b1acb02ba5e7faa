package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"go-prototype-builder/internal/config"
	"go-prototype-builder/internal/model"
	"go-prototype-builder/internal/presence"
	"go-prototype-builder/internal/prototypemanager"
	"go-prototype-builder/internal/storage"
	"go-prototype-builder/internal/templates"
)

func main() {
	// --- Initialize Logger ---
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// --- Load Configuration ---
	projectRoot, err := os.Getwd()
	if err != nil {
		logger.Error("Failed to get working directory", "error", err)
		os.Exit(1)
	}
	cfg, v, err := config.Load(projectRoot)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	dataDir := filepath.Join(projectRoot, cfg.DataDir)
	logger.Info("Using data directory", "path", dataDir, "quotaBytes", cfg.StorageQuotaBytes)

	// --- Initialize Storage ---
	store, err := storage.NewJSONStore(dataDir, cfg.StorageQuotaBytes)
	if err != nil {
		logger.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}

	// --- Initialize Services ---
	ids := model.UUIDGenerator{}
	clock := model.SystemClock{}
	manager := prototypemanager.NewManager(store, logger, ids, clock)
	library := templates.NewLibrary(store, logger, ids, clock)
	hub := presence.NewHub()

	app := &application{
		logger:   logger,
		cfg:      cfg,
		store:    store,
		manager:  manager,
		library:  library,
		hub:      hub,
		sessions: newSessionRegistry(store, logger, ids, clock, cfg.AutosaveInterval),
		ids:      ids,
		clock:    clock,
	}

	// Hot-reload the tunable settings on config file change.
	config.Watch(v, func(fresh *config.Config) {
		logger.Info("Configuration reloaded", "autosaveInterval", fresh.AutosaveInterval)
		app.sessions.setAutosaveInterval(fresh.AutosaveInterval)
	})

	// --- Start Server ---
	addr := ":" + cfg.APIPort
	logger.Info("Starting builder API server", "address", "http://localhost"+addr)

	if err := http.ListenAndServe(addr, app.routes()); err != nil {
		logger.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}
