package storage

import (
	"errors"

	"go-prototype-builder/internal/model"
)

// ErrNotFound is returned when a document id does not exist in its
// collection. Deletes are idempotent and never return it.
var ErrNotFound = errors.New("document not found")

// ErrQuotaExceeded is returned when a write would push the store past
// its byte quota. Callers surface it distinctly from generic storage
// failures, together with a usage breakdown.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// CollectionStats holds the usage of one collection.
type CollectionStats struct {
	Documents int   `json:"documents"`
	Bytes     int64 `json:"bytes"`
}

// Stats is the per-collection usage breakdown, for diagnostic display
// (e.g. the quota-exceeded dialog and the admin storage page).
type Stats struct {
	Collections map[string]CollectionStats `json:"collections"`
	TotalBytes  int64                      `json:"totalBytes"`
	QuotaBytes  int64                      `json:"quotaBytes,omitempty"`
}

// DataStore defines the operations needed for persisting prototype and
// template documents. This allows swapping implementations (e.g. JSON
// files vs. a database) later.
type DataStore interface {
	// SavePrototype persists the prototype document (create or update).
	SavePrototype(p *model.Prototype) error

	// LoadPrototype retrieves a prototype by its ID.
	LoadPrototype(id string) (*model.Prototype, error)

	// DeletePrototype removes a prototype. Idempotent.
	DeletePrototype(id string) error

	// ReadAllPrototypes retrieves every stored prototype.
	ReadAllPrototypes() ([]*model.Prototype, error)

	// SaveTemplate persists a template into its kind's collection.
	SaveTemplate(t *model.Template) error

	// LoadTemplate retrieves a template by kind and ID.
	LoadTemplate(kind model.TemplateKind, id string) (*model.Template, error)

	// DeleteTemplate removes a template. Idempotent.
	DeleteTemplate(kind model.TemplateKind, id string) error

	// ReadAllTemplates retrieves every template of one kind.
	ReadAllTemplates(kind model.TemplateKind) ([]*model.Template, error)

	// UsageStats returns the per-collection usage breakdown.
	UsageStats() (*Stats, error)

	// GetBasePath returns the storage base path.
	GetBasePath() string
}
