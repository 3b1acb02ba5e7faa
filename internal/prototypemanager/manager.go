package prototypemanager

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"go-prototype-builder/internal/elements"
	"go-prototype-builder/internal/model"
	"go-prototype-builder/internal/storage"
)

// PrototypeManager provides methods for managing prototype documents
// (create, delete, update, duplicate). It encapsulates the lifecycle
// logic shared by the API server, the admin dashboard and the CLI.
type PrototypeManager struct {
	store  storage.DataStore
	logger *slog.Logger
	ids    model.IDGenerator
	clock  model.Clock
}

// NewManager creates a new PrototypeManager instance.
func NewManager(store storage.DataStore, logger *slog.Logger, ids model.IDGenerator, clock model.Clock) *PrototypeManager {
	if logger == nil {
		// Provide a default discard logger if none is provided
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &PrototypeManager{store: store, logger: logger, ids: ids, clock: clock}
}

// CreatePrototype builds a starter prototype and persists it. The id is
// assigned here, on first save, and stays stable thereafter.
func (m *PrototypeManager) CreatePrototype(name, description string) (*model.Prototype, error) {
	m.logger.Info("Creating prototype", "name", name)

	// 1. Build the starter document (welcome step + one text field)
	p := elements.NewStarterPrototype(m.ids, m.clock, name, description)
	m.logger.Debug("Generated prototype ID", "id", p.ID)

	// 2. Persist it
	if err := m.store.SavePrototype(p); err != nil {
		m.logger.Error("Error saving prototype", "error", err, "name", name, "id", p.ID)
		return nil, fmt.Errorf("saving prototype failed: %w", err)
	}

	m.logger.Info("Successfully created prototype", "name", name, "id", p.ID)
	return p, nil
}

// SavePrototype persists a document snapshot, restamping UpdatedAt.
func (m *PrototypeManager) SavePrototype(p *model.Prototype) error {
	if p.ID == "" {
		return fmt.Errorf("prototype ID cannot be empty")
	}
	p.UpdatedAt = m.clock.Now()
	if err := m.store.SavePrototype(p); err != nil {
		m.logger.Error("Error saving prototype", "id", p.ID, "error", err)
		return fmt.Errorf("saving prototype %s failed: %w", p.ID, err)
	}
	return nil
}

// GetPrototype retrieves one prototype by id.
func (m *PrototypeManager) GetPrototype(id string) (*model.Prototype, error) {
	p, err := m.store.LoadPrototype(id)
	if err != nil {
		return nil, fmt.Errorf("loading prototype %s failed: %w", id, err)
	}
	return p, nil
}

// ListPrototypes retrieves every stored prototype.
func (m *PrototypeManager) ListPrototypes() ([]*model.Prototype, error) {
	ps, err := m.store.ReadAllPrototypes()
	if err != nil {
		m.logger.Error("Error reading prototypes", "error", err)
		return nil, fmt.Errorf("reading prototypes failed: %w", err)
	}
	return ps, nil
}

// UpdatePrototype updates document-level metadata based on provided
// non-empty values. Returns the updated document.
func (m *PrototypeManager) UpdatePrototype(id, newName, newDescription, newPrimaryColor, newLogoURL string) (*model.Prototype, error) {
	m.logger.Info("Updating prototype", "id", id)

	// 1. Load the document
	p, err := m.store.LoadPrototype(id)
	if err != nil {
		m.logger.Error("Error loading prototype for update", "id", id, "error", err)
		return nil, fmt.Errorf("loading prototype %s failed: %w", id, err)
	}

	// 2. Update fields based on provided non-empty values
	updated := false
	if newName != "" {
		m.logger.Debug("Updating Name", "id", id, "old", p.Name, "new", newName)
		p.Name = newName
		updated = true
	}
	if newDescription != "" {
		p.Description = newDescription
		updated = true
	}
	if newPrimaryColor != "" {
		p.PrimaryColor = newPrimaryColor
		updated = true
	}
	if newLogoURL != "" {
		p.LogoURL = newLogoURL
		updated = true
	}

	if !updated {
		m.logger.Info("No update values provided, nothing to change.", "id", id)
		return p, nil
	}

	p.UpdatedAt = m.clock.Now()

	// 3. Save the updated document
	if err := m.store.SavePrototype(p); err != nil {
		m.logger.Error("Error saving updated prototype", "id", id, "error", err)
		return nil, fmt.Errorf("saving updated prototype %s failed: %w", id, err)
	}

	m.logger.Info("Successfully updated prototype", "id", id)
	return p, nil
}

// DeletePrototype removes a prototype. Deletion errors propagate to the
// caller so a delete that did not persist is never silently confirmed.
func (m *PrototypeManager) DeletePrototype(id string) error {
	m.logger.Info("Processing delete request", "id", id)

	// Load first so a missing id is reported distinctly.
	if _, err := m.store.LoadPrototype(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			m.logger.Warn("Prototype not found, cannot delete.", "id", id)
			return fmt.Errorf("prototype %s: %w", id, storage.ErrNotFound)
		}
		m.logger.Error("Error loading prototype for delete", "id", id, "error", err)
		return fmt.Errorf("loading prototype %s failed: %w", id, err)
	}

	if err := m.store.DeletePrototype(id); err != nil {
		m.logger.Error("Error deleting prototype", "id", id, "error", err)
		return fmt.Errorf("deleting prototype %s failed: %w", id, err)
	}

	m.logger.Info("Successfully deleted prototype", "id", id)
	return nil
}

// DuplicatePrototype deep-clones an existing prototype under a new name
// with fresh ids throughout, and persists the copy.
func (m *PrototypeManager) DuplicatePrototype(id, newName string) (*model.Prototype, error) {
	m.logger.Info("Duplicating prototype", "id", id)

	src, err := m.store.LoadPrototype(id)
	if err != nil {
		return nil, fmt.Errorf("loading prototype %s failed: %w", id, err)
	}

	dup := model.ClonePrototype(*src, m.ids)
	if newName != "" {
		dup.Name = newName
	} else {
		dup.Name = src.Name + " (copy)"
	}
	now := m.clock.Now()
	dup.CreatedAt = now
	dup.UpdatedAt = now

	if err := m.store.SavePrototype(&dup); err != nil {
		m.logger.Error("Error saving duplicated prototype", "sourceId", id, "error", err)
		return nil, fmt.Errorf("saving duplicated prototype failed: %w", err)
	}

	m.logger.Info("Successfully duplicated prototype", "sourceId", id, "newId", dup.ID)
	return &dup, nil
}

// UsageStats returns the storage usage breakdown for diagnostics.
func (m *PrototypeManager) UsageStats() (*storage.Stats, error) {
	stats, err := m.store.UsageStats()
	if err != nil {
		m.logger.Error("Error reading storage stats", "error", err)
		return nil, fmt.Errorf("reading storage stats failed: %w", err)
	}
	return stats, nil
}

// GetStore returns the underlying DataStore instance.
func (m *PrototypeManager) GetStore() storage.DataStore {
	return m.store
}
