package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"go-prototype-builder/internal/editor"
	"go-prototype-builder/internal/model"
	"go-prototype-builder/internal/presence"
	"go-prototype-builder/internal/storage"
)

// --- JSON helpers ---

func (app *application) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.logger.Error("Error encoding JSON response", "error", err)
	}
}

func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		app.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

// storageError maps storage failures onto distinct responses: missing
// documents are 404, quota violations are 507 with a usage breakdown
// and actionable guidance, everything else is a generic 500 carrying
// the raw message.
func (app *application) storageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		app.writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, storage.ErrQuotaExceeded):
		body := map[string]any{
			"error":    err.Error(),
			"guidance": "Storage is full. Remove unused templates or delete old prototypes to free space.",
		}
		if stats, statsErr := app.store.UsageStats(); statsErr == nil {
			body["usage"] = stats
		}
		app.writeJSON(w, http.StatusInsufficientStorage, body)
	default:
		app.logger.Error("Storage operation failed", "error", err)
		app.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

// --- Prototype lifecycle ---

func (app *application) listPrototypesHandler(w http.ResponseWriter, r *http.Request) {
	ps, err := app.manager.ListPrototypes()
	if err != nil {
		app.storageError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, ps)
}

func (app *application) createPrototypeHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !app.readJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		app.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	p, err := app.manager.CreatePrototype(req.Name, req.Description)
	if err != nil {
		app.storageError(w, err)
		return
	}
	app.writeJSON(w, http.StatusCreated, p)
}

func (app *application) getPrototypeHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "prototypeID")
	// An open edit session is more current than the stored snapshot.
	if as, ok := app.sessions.peek(id); ok {
		snapshot := as.session.Snapshot()
		app.writeJSON(w, http.StatusOK, snapshot)
		return
	}
	p, err := app.manager.GetPrototype(id)
	if err != nil {
		app.storageError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, p)
}

func (app *application) updatePrototypeHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "prototypeID")
	var req struct {
		Name         string `json:"name"`
		Description  string `json:"description"`
		PrimaryColor string `json:"primaryColor"`
		LogoURL      string `json:"logoUrl"`
	}
	if !app.readJSON(w, r, &req) {
		return
	}
	p, err := app.manager.UpdatePrototype(id, req.Name, req.Description, req.PrimaryColor, req.LogoURL)
	if err != nil {
		app.storageError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, p)
}

func (app *application) deletePrototypeHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "prototypeID")
	// Drop any open session first so a pending debounced save cannot
	// resurrect the document after the delete.
	if err := app.sessions.close(id, false); err != nil {
		app.logger.Error("Error closing session before delete", "id", id, "error", err)
	}
	if err := app.manager.DeletePrototype(id); err != nil {
		app.storageError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (app *application) duplicatePrototypeHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "prototypeID")
	var req struct {
		Name string `json:"name"`
	}
	if !app.readJSON(w, r, &req) {
		return
	}
	dup, err := app.manager.DuplicatePrototype(id, req.Name)
	if err != nil {
		app.storageError(w, err)
		return
	}
	app.writeJSON(w, http.StatusCreated, dup)
}

// --- Edit session ---

// destructiveOps are the commands that get an immediate durable write
// instead of waiting out the debounce, so a crash right after a delete
// can't bring the deleted data back.
var destructiveOps = map[string]bool{
	"deleteStep":    true,
	"deleteElement": true,
	"deleteOption":  true,
}

func (app *application) applyCommandHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "prototypeID")
	as, err := app.sessions.get(id)
	if err != nil {
		app.storageError(w, err)
		return
	}
	var cmd editor.Command
	if !app.readJSON(w, r, &cmd) {
		return
	}
	res := as.session.Apply(cmd)
	if res.Applied && destructiveOps[cmd.Op] {
		if err := as.saver.SaveNow(); err != nil {
			app.storageError(w, err)
			return
		}
	}
	app.writeJSON(w, http.StatusOK, res)
}

func (app *application) saveNowHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "prototypeID")
	as, err := app.sessions.get(id)
	if err != nil {
		app.storageError(w, err)
		return
	}
	if err := as.saver.SaveNow(); err != nil {
		app.storageError(w, err)
		return
	}
	lastSaved, _, _ := as.saver.Status()
	app.writeJSON(w, http.StatusOK, map[string]any{"lastSaved": lastSaved})
}

func (app *application) autosaveStatusHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "prototypeID")
	as, ok := app.sessions.peek(id)
	if !ok {
		app.writeJSON(w, http.StatusOK, map[string]any{"active": false})
		return
	}
	lastSaved, isSaving, lastErr := as.saver.Status()
	body := map[string]any{"active": true, "lastSaved": lastSaved, "isSaving": isSaving}
	if lastErr != nil {
		body["lastError"] = lastErr.Error()
	}
	app.writeJSON(w, http.StatusOK, body)
}

// --- Template library ---

func (app *application) listTemplatesHandler(w http.ResponseWriter, r *http.Request) {
	kind := model.TemplateKind(chi.URLParam(r, "kind"))
	ts, err := app.library.List(kind)
	if err != nil {
		if !kind.Valid() {
			app.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		app.storageError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, ts)
}

// createTemplateHandler snapshots a step (question/applicationStep
// kinds) or a whole prototype (prototype kind) into the library.
func (app *application) createTemplateHandler(w http.ResponseWriter, r *http.Request) {
	kind := model.TemplateKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		app.writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("unknown template kind %q", kind)})
		return
	}
	var req struct {
		Name        string `json:"name"`
		PrototypeID string `json:"prototypeId"`
		StepID      string `json:"stepId"`
	}
	if !app.readJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		app.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	p, err := app.currentDocument(req.PrototypeID)
	if err != nil {
		app.storageError(w, err)
		return
	}

	var t *model.Template
	if kind == model.KindPrototype {
		t, err = app.library.SavePrototypeTemplate(req.Name, *p)
	} else {
		var step *model.Step
		for i := range p.Steps {
			if p.Steps[i].ID == req.StepID {
				step = &p.Steps[i]
				break
			}
		}
		if step == nil {
			app.writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("step %s not found in prototype %s", req.StepID, req.PrototypeID)})
			return
		}
		t, err = app.library.SaveStepTemplate(kind, req.Name, *step)
	}
	if err != nil {
		app.storageError(w, err)
		return
	}
	app.writeJSON(w, http.StatusCreated, t)
}

func (app *application) deleteTemplateHandler(w http.ResponseWriter, r *http.Request) {
	kind := model.TemplateKind(chi.URLParam(r, "kind"))
	id := chi.URLParam(r, "templateID")
	if !kind.Valid() {
		app.writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("unknown template kind %q", kind)})
		return
	}
	if err := app.library.Delete(kind, id); err != nil {
		app.storageError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// instantiateTemplateHandler clones a template. Step templates are
// inserted into the target prototype's edit session (regular steps
// before the application suffix, application steps at the end);
// prototype templates become a fresh persisted document.
func (app *application) instantiateTemplateHandler(w http.ResponseWriter, r *http.Request) {
	kind := model.TemplateKind(chi.URLParam(r, "kind"))
	id := chi.URLParam(r, "templateID")
	var req struct {
		PrototypeID string `json:"prototypeId"`
	}
	if !app.readJSON(w, r, &req) {
		return
	}

	if kind == model.KindPrototype {
		p, err := app.library.InstantiatePrototype(id)
		if err != nil {
			app.storageError(w, err)
			return
		}
		if err := app.manager.SavePrototype(p); err != nil {
			app.storageError(w, err)
			return
		}
		app.writeJSON(w, http.StatusCreated, p)
		return
	}

	if !kind.Valid() {
		app.writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("unknown template kind %q", kind)})
		return
	}
	if req.PrototypeID == "" {
		app.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "prototypeId is required for step templates"})
		return
	}
	step, err := app.library.InstantiateStep(kind, id)
	if err != nil {
		app.storageError(w, err)
		return
	}
	as, err := app.sessions.get(req.PrototypeID)
	if err != nil {
		app.storageError(w, err)
		return
	}
	if !as.session.InsertStep(*step) {
		app.writeJSON(w, http.StatusConflict, map[string]string{"error": "step could not be inserted"})
		return
	}
	app.writeJSON(w, http.StatusCreated, step)
}

// currentDocument returns the freshest view of a prototype: the open
// edit session's snapshot if one exists, otherwise the stored document.
func (app *application) currentDocument(id string) (*model.Prototype, error) {
	if as, ok := app.sessions.peek(id); ok {
		snapshot := as.session.Snapshot()
		return &snapshot, nil
	}
	return app.manager.GetPrototype(id)
}

// --- Diagnostics ---

func (app *application) storageStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := app.store.UsageStats()
	if err != nil {
		app.storageError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, stats)
}

// --- Presence ---

func (app *application) announcePresenceHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "prototypeID")
	var msg presence.Message
	if !app.readJSON(w, r, &msg) {
		return
	}
	if msg.UserID == "" {
		app.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}
	app.hub.Publish(presence.ChannelForPrototype(id), msg)
	app.writeJSON(w, http.StatusAccepted, map[string]string{"status": "announced"})
}

// presenceStreamHandler holds an SSE stream open for one collaborator.
// Connecting announces {editing:true}; disconnecting announces
// {editing:false}. Each event carries the current roster of other
// collaborators, enough to render the "N people editing" badge.
func (app *application) presenceStreamHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "prototypeID")
	userID := r.URL.Query().Get("userId")
	name := r.URL.Query().Get("name")
	if userID == "" {
		app.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId query parameter is required"})
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		app.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "streaming unsupported"})
		return
	}

	tracker := presence.NewTracker(app.hub, id, userID, name)
	defer tracker.Close()

	// Second subscription used purely as a wake-up signal: any
	// announcement on the channel means the roster may have changed.
	wake, unsubscribe := app.hub.Subscribe(presence.ChannelForPrototype(id), app.cfg.PresenceBuffer)
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sendRoster := func() {
		data, err := json.Marshal(tracker.Roster())
		if err != nil {
			return
		}
		fmt.Fprintf(w, "event: roster\ndata: %s\n\n", data)
		flusher.Flush()
	}
	sendRoster()

	keepalive := time.NewTicker(15 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case _, ok := <-wake:
			if !ok {
				return
			}
			sendRoster()
		case <-keepalive.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		}
	}
}
