package main

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/justinas/nosurf"

	"go-prototype-builder/internal/config"
	"go-prototype-builder/internal/model"
	"go-prototype-builder/internal/preview"
	"go-prototype-builder/internal/prototypemanager"
	"go-prototype-builder/internal/storage"
	"go-prototype-builder/internal/templates"
)

// adminApplication holds the application-wide dependencies for the
// admin dashboard server.
type adminApplication struct {
	logger        *slog.Logger
	store         storage.DataStore
	manager       *prototypemanager.PrototypeManager
	library       *templates.Library
	previewEngine *preview.Engine
	templateCache map[string]*template.Template
	projectRoot   string
}

// newTemplateData creates the base data map passed to templates,
// including the CSRF token and active nav item.
func (app *adminApplication) newTemplateData(r *http.Request, activeNav string) map[string]any {
	return map[string]any{
		"CSRFToken": nosurf.Token(r),
		"ActiveNav": activeNav,
	}
}

func newTemplateCache(projectRoot string) (map[string]*template.Template, error) {
	cache := map[string]*template.Template{}

	// Pages that use layout.html as a base and define their own
	// "content" block.
	pages := []string{
		"dashboard.html",
		"storage.html",
	}

	adminTemplatesDir := filepath.Join(projectRoot, "web", "admin", "templates")

	for _, page := range pages {
		ts, err := template.ParseFiles(filepath.Join(adminTemplatesDir, "layout.html"))
		if err != nil {
			return nil, fmt.Errorf("error parsing layout template: %w", err)
		}
		ts, err = ts.ParseFiles(filepath.Join(adminTemplatesDir, page))
		if err != nil {
			return nil, fmt.Errorf("error parsing page template %s: %w", page, err)
		}
		cache[page] = ts
	}
	return cache, nil
}

func main() {
	// --- Initialize Logger ---
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// --- Load Configuration ---
	wd, err := os.Getwd()
	if err != nil {
		logger.Error("Failed to get working directory", "error", err)
		os.Exit(1)
	}
	cfg, _, err := config.Load(wd)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	dataDir := filepath.Join(wd, cfg.DataDir)
	logger.Info("Using data directory", "path", dataDir)

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

	// --- Initialize Template Cache ---
	templateCache, err := newTemplateCache(wd)
	if err != nil {
		logger.Error("Failed to create template cache", "error", err)
		os.Exit(1)
	}
	logger.Info("Admin UI templates cached successfully")

	app := &adminApplication{
		logger:        logger,
		store:         store,
		manager:       manager,
		library:       library,
		previewEngine: preview.NewEngine(store),
		templateCache: templateCache,
		projectRoot:   wd,
	}

	// --- Start Server ---
	addr := ":" + cfg.AdminPort
	logger.Info("Starting admin server", "address", fmt.Sprintf("http://localhost%s", addr))

	// nosurf wraps the whole router so every POST form is CSRF-checked.
	if err := http.ListenAndServe(addr, nosurf.New(app.routes())); err != nil {
		logger.Error("Admin server failed to start", "error", err)
		os.Exit(1)
	}
}
