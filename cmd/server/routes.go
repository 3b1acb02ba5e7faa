package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"go-prototype-builder/internal/config"
	"go-prototype-builder/internal/model"
	"go-prototype-builder/internal/presence"
	"go-prototype-builder/internal/prototypemanager"
	"go-prototype-builder/internal/storage"
	"go-prototype-builder/internal/templates"
)

// application holds the application-wide dependencies for the API server.
type application struct {
	logger   *slog.Logger
	cfg      *config.Config
	store    storage.DataStore
	manager  *prototypemanager.PrototypeManager
	library  *templates.Library
	hub      *presence.Hub
	sessions *sessionRegistry
	ids      model.IDGenerator
	clock    model.Clock
}

// routes sets up the HTTP router for the API server.
func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger) // Chi's built-in logger
	r.Use(middleware.Recoverer)

	// Request/response handlers get the timeout. The presence stream is
	// mounted outside the group: it is long-lived and the timeout would
	// cut every subscriber off after a minute.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// --- Prototype lifecycle ---
		r.Get("/api/prototypes", app.listPrototypesHandler)
		r.Post("/api/prototypes", app.createPrototypeHandler)
		r.Get("/api/prototypes/{prototypeID}", app.getPrototypeHandler)
		r.Put("/api/prototypes/{prototypeID}", app.updatePrototypeHandler)
		r.Delete("/api/prototypes/{prototypeID}", app.deletePrototypeHandler)
		r.Post("/api/prototypes/{prototypeID}/duplicate", app.duplicatePrototypeHandler)

		// --- Edit session ---
		r.Post("/api/prototypes/{prototypeID}/commands", app.applyCommandHandler)
		r.Post("/api/prototypes/{prototypeID}/save", app.saveNowHandler)
		r.Get("/api/prototypes/{prototypeID}/autosave", app.autosaveStatusHandler)

		// --- Template library ---
		r.Get("/api/templates/{kind}", app.listTemplatesHandler)
		r.Post("/api/templates/{kind}", app.createTemplateHandler)
		r.Delete("/api/templates/{kind}/{templateID}", app.deleteTemplateHandler)
		r.Post("/api/templates/{kind}/{templateID}/instantiate", app.instantiateTemplateHandler)

		// --- Diagnostics ---
		r.Get("/api/storage/stats", app.storageStatsHandler)

		// --- Presence announcements ---
		r.Post("/api/presence/{prototypeID}", app.announcePresenceHandler)
	})

	// --- Presence stream (SSE, no timeout) ---
	r.Get("/api/presence/{prototypeID}/stream", app.presenceStreamHandler)

	return r
}
