package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// routes sets up the HTTP router for the admin application.
func (app *adminApplication) routes() http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger) // Chi's built-in logger
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// --- Handlers ---
	r.Get("/", app.dashboardHandler)

	// Prototype deletion (POST form from the dashboard)
	r.Post("/admin/prototypes/delete/{prototypeID}", app.prototypeDeleteHandler)

	// Template deletion (POST form from the dashboard)
	r.Post("/admin/templates/delete/{kind}/{templateID}", app.templateDeleteHandler)

	// Storage usage page
	r.Get("/admin/storage", app.storageHandler)

	// Read-only HTML preview of a prototype
	r.Get("/admin/preview/{prototypeID}", app.previewHandler)

	return r
}
