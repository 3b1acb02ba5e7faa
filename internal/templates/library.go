// Package templates implements the template library: CRUD over the
// three collections of reusable fragments (question templates,
// full-prototype templates, application-step templates) and their
// instantiation with fresh ids.
package templates

import (
	"fmt"
	"io"
	"log/slog"

	"go-prototype-builder/internal/model"
	"go-prototype-builder/internal/storage"
)

// Library provides methods for managing reusable templates.
type Library struct {
	store  storage.DataStore
	logger *slog.Logger
	ids    model.IDGenerator
	clock  model.Clock
}

// NewLibrary creates a new Library instance.
func NewLibrary(store storage.DataStore, logger *slog.Logger, ids model.IDGenerator, clock model.Clock) *Library {
	if logger == nil {
		// Provide a default discard logger if none is provided
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Library{store: store, logger: logger, ids: ids, clock: clock}
}

// SaveStepTemplate snapshots a step into the question or
// application-step collection under the given name. The snapshot is a
// deep copy; later edits to the source step do not leak into it.
func (l *Library) SaveStepTemplate(kind model.TemplateKind, name string, step model.Step) (*model.Template, error) {
	if kind != model.KindQuestion && kind != model.KindApplicationStep {
		return nil, fmt.Errorf("kind %q cannot hold step templates", kind)
	}
	if kind == model.KindApplicationStep != step.IsApplicationStep {
		return nil, fmt.Errorf("step and template kind %q do not match", kind)
	}
	snapshot := model.CopyStep(step)
	t := &model.Template{
		ID:        l.ids.NextID(),
		Name:      name,
		Kind:      kind,
		Step:      &snapshot,
		CreatedAt: l.clock.Now(),
	}
	if err := l.store.SaveTemplate(t); err != nil {
		l.logger.Error("Error saving step template", "kind", kind, "name", name, "error", err)
		return nil, fmt.Errorf("saving step template failed: %w", err)
	}
	l.logger.Info("Saved step template", "kind", kind, "id", t.ID, "name", name)
	return t, nil
}

// SavePrototypeTemplate snapshots a whole prototype under the given name.
func (l *Library) SavePrototypeTemplate(name string, p model.Prototype) (*model.Template, error) {
	snapshot := model.CopyPrototype(p)
	t := &model.Template{
		ID:        l.ids.NextID(),
		Name:      name,
		Kind:      model.KindPrototype,
		Prototype: &snapshot,
		CreatedAt: l.clock.Now(),
	}
	if err := l.store.SaveTemplate(t); err != nil {
		l.logger.Error("Error saving prototype template", "name", name, "error", err)
		return nil, fmt.Errorf("saving prototype template failed: %w", err)
	}
	l.logger.Info("Saved prototype template", "id", t.ID, "name", name)
	return t, nil
}

// List returns every template of one kind.
func (l *Library) List(kind model.TemplateKind) ([]*model.Template, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown template kind %q", kind)
	}
	ts, err := l.store.ReadAllTemplates(kind)
	if err != nil {
		return nil, fmt.Errorf("listing %s templates failed: %w", kind, err)
	}
	return ts, nil
}

// Delete removes a template. Errors propagate so callers never get a
// false confirmation of a delete that did not persist.
func (l *Library) Delete(kind model.TemplateKind, id string) error {
	if err := l.store.DeleteTemplate(kind, id); err != nil {
		l.logger.Error("Error deleting template", "kind", kind, "id", id, "error", err)
		return fmt.Errorf("deleting template %s failed: %w", id, err)
	}
	l.logger.Info("Deleted template", "kind", kind, "id", id)
	return nil
}

// InstantiateStep clones a step template into a fresh step. Every id
// (step, elements, options) is newly generated, so instantiating the
// same template twice never produces colliding ids.
func (l *Library) InstantiateStep(kind model.TemplateKind, id string) (*model.Step, error) {
	t, err := l.store.LoadTemplate(kind, id)
	if err != nil {
		return nil, fmt.Errorf("loading template %s failed: %w", id, err)
	}
	if t.Step == nil {
		return nil, fmt.Errorf("template %s has no step snapshot", id)
	}
	step := model.CloneStep(*t.Step, l.ids)
	return &step, nil
}

// InstantiatePrototype clones a prototype template into a fresh,
// unsaved prototype with new ids throughout and restamped timestamps.
func (l *Library) InstantiatePrototype(id string) (*model.Prototype, error) {
	t, err := l.store.LoadTemplate(model.KindPrototype, id)
	if err != nil {
		return nil, fmt.Errorf("loading template %s failed: %w", id, err)
	}
	if t.Prototype == nil {
		return nil, fmt.Errorf("template %s has no prototype snapshot", id)
	}
	p := model.ClonePrototype(*t.Prototype, l.ids)
	now := l.clock.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return &p, nil
}
