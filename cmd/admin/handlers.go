package main

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"go-prototype-builder/internal/model"
	"go-prototype-builder/internal/storage"
)

// DashboardPageData holds all data needed for the dashboard template.
type DashboardPageData struct {
	CurrentYear int
	Prototypes  []*model.Prototype
	Templates   map[model.TemplateKind][]*model.Template
	Error       string
}

// StoragePageData holds the data for the storage usage page.
type StoragePageData struct {
	CurrentYear int
	Stats       *storage.Stats
	Error       string
}

// dashboardHandler serves the main admin dashboard page: every stored
// prototype plus the three template collections.
func (app *adminApplication) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(r, "dashboard")

	pageData := DashboardPageData{
		CurrentYear: time.Now().Year(),
		Templates:   make(map[model.TemplateKind][]*model.Template),
	}
	pageData.Error = r.URL.Query().Get("error")

	prototypes, err := app.manager.ListPrototypes()
	if err != nil {
		app.logger.Error("Failed to read prototypes from store", "error", err)
		pageData.Error = "Failed to load prototype list."
	} else {
		pageData.Prototypes = prototypes
	}
	for _, kind := range model.TemplateKinds {
		ts, err := app.library.List(kind)
		if err != nil {
			app.logger.Error("Failed to read templates", "kind", kind, "error", err)
			continue
		}
		pageData.Templates[kind] = ts
	}
	data["Page"] = pageData

	app.render(w, "dashboard.html", data)
}

// prototypeDeleteHandler handles the dashboard's delete form. Deletion
// errors are surfaced back on the dashboard rather than swallowed, so
// the operator never gets a false confirmation.
func (app *adminApplication) prototypeDeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "prototypeID")

	// Parse the form so the CSRF token is processed by nosurf.
	if err := r.ParseForm(); err != nil {
		app.logger.Error("Error parsing delete form", "error", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := app.manager.DeletePrototype(id); err != nil {
		app.logger.Error("Failed to delete prototype", "id", id, "error", err)
		http.Redirect(w, r, "/?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// templateDeleteHandler handles the dashboard's template delete form.
func (app *adminApplication) templateDeleteHandler(w http.ResponseWriter, r *http.Request) {
	kind := model.TemplateKind(chi.URLParam(r, "kind"))
	id := chi.URLParam(r, "templateID")

	if err := r.ParseForm(); err != nil {
		app.logger.Error("Error parsing delete form", "error", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := app.library.Delete(kind, id); err != nil {
		app.logger.Error("Failed to delete template", "kind", kind, "id", id, "error", err)
		http.Redirect(w, r, "/?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// storageHandler serves the storage usage page: per-collection document
// counts and byte sizes against the configured quota.
func (app *adminApplication) storageHandler(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(r, "storage")

	pageData := StoragePageData{CurrentYear: time.Now().Year()}
	stats, err := app.store.UsageStats()
	if err != nil {
		app.logger.Error("Failed to read storage stats", "error", err)
		pageData.Error = "Failed to load storage statistics."
	} else {
		pageData.Stats = stats
	}
	data["Page"] = pageData

	app.render(w, "storage.html", data)
}

// previewHandler renders a read-only HTML preview of one prototype.
func (app *adminApplication) previewHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "prototypeID")
	html, err := app.previewEngine.RenderPrototype(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		app.logger.Error("Failed to render preview", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// render executes a cached page template inside the layout.
func (app *adminApplication) render(w http.ResponseWriter, page string, data map[string]any) {
	ts, ok := app.templateCache[page]
	if !ok {
		app.logger.Error("Template not found in cache", "page", page)
		http.Error(w, "Internal Server Error - Template not found", http.StatusInternalServerError)
		return
	}
	if err := ts.ExecuteTemplate(w, "layout.html", data); err != nil {
		app.logger.Error("Error executing admin layout template", "page", page, "error", err)
	}
}
