package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go-prototype-builder/internal/model"

	"go-prototype-builder/pkg/fsutils"
)

// Collection directory names under the store's base path.
const (
	prototypesCollection = "prototypes"
)

// templateCollections maps a template kind to its collection directory.
var templateCollections = map[model.TemplateKind]string{
	model.KindQuestion:        "question_templates",
	model.KindPrototype:       "prototype_templates",
	model.KindApplicationStep: "application_step_templates",
}

// JSONStore implements the DataStore interface using JSON files.
// Each collection is a subdirectory of BasePath holding one <id>.json
// file per document. An optional byte quota across the whole base path
// mimics the quota-limited browser store this replaces.
type JSONStore struct {
	BasePath   string
	QuotaBytes int64 // 0 means unlimited
}

// NewJSONStore creates a new JSONStore instance. It ensures the base
// directory and every collection directory exist.
func NewJSONStore(basePath string, quotaBytes int64) (*JSONStore, error) {
	dirs := []string{basePath, filepath.Join(basePath, prototypesCollection)}
	for _, coll := range templateCollections {
		dirs = append(dirs, filepath.Join(basePath, coll))
	}
	for _, dir := range dirs {
		if err := fsutils.CreateDir(dir); err != nil {
			return nil, fmt.Errorf("failed to create storage directory '%s': %w", dir, err)
		}
	}
	return &JSONStore{BasePath: basePath, QuotaBytes: quotaBytes}, nil
}

// GetBasePath returns the base path of the JSON store.
func (js *JSONStore) GetBasePath() string {
	return js.BasePath
}

// --- Generic per-collection plumbing ---

func (js *JSONStore) docPath(collection, id string) string {
	return filepath.Join(js.BasePath, collection, id+".json")
}

// write persists one marshaled document, enforcing the byte quota.
// The current size of the document being overwritten (if any) is
// credited before the check, so in-place updates don't double-count.
func (js *JSONStore) write(collection, id string, data []byte) error {
	path := js.docPath(collection, id)
	if js.QuotaBytes > 0 {
		used, err := fsutils.DirSize(js.BasePath)
		if err != nil {
			return fmt.Errorf("failed to measure storage usage: %w", err)
		}
		if info, err := os.Stat(path); err == nil {
			used -= info.Size()
		}
		if used+int64(len(data)) > js.QuotaBytes {
			return fmt.Errorf("writing %d bytes to %s/%s would exceed %d byte quota: %w",
				len(data), collection, id, js.QuotaBytes, ErrQuotaExceeded)
		}
	}
	if err := fsutils.WriteToFile(path, data); err != nil {
		return fmt.Errorf("failed to write document file %s: %w", path, err)
	}
	return nil
}

func (js *JSONStore) read(collection, id string) ([]byte, error) {
	path := js.docPath(collection, id)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read document file %s: %w", path, err)
	}
	return data, nil
}

// delete removes one document file. Idempotent.
func (js *JSONStore) delete(collection, id string) error {
	path := js.docPath(collection, id)
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete document file %s: %w", path, err)
	}
	return nil
}

// ids scans one collection directory for *.json files and extracts IDs.
func (js *JSONStore) ids(collection string) ([]string, error) {
	files, err := os.ReadDir(filepath.Join(js.BasePath, collection))
	if err != nil {
		// If the collection dir doesn't exist yet, return empty list, no error.
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read collection directory %s: %w", collection, err)
	}
	var out []string
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), ".json") {
			out = append(out, strings.TrimSuffix(file.Name(), ".json"))
		}
	}
	return out, nil
}

// --- Prototypes ---

// SavePrototype persists the prototype document to a JSON file.
func (js *JSONStore) SavePrototype(p *model.Prototype) error {
	if p.ID == "" {
		return fmt.Errorf("prototype ID cannot be empty")
	}
	// MarshalIndent keeps the stored documents readable.
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal prototype %s: %w", p.ID, err)
	}
	return js.write(prototypesCollection, p.ID, data)
}

// LoadPrototype retrieves a prototype from its JSON file.
func (js *JSONStore) LoadPrototype(id string) (*model.Prototype, error) {
	if id == "" {
		return nil, fmt.Errorf("prototype ID cannot be empty")
	}
	data, err := js.read(prototypesCollection, id)
	if err != nil {
		return nil, err
	}
	var p model.Prototype
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prototype %s: %w", id, err)
	}
	return &p, nil
}

// DeletePrototype removes the prototype's JSON file. Idempotent.
func (js *JSONStore) DeletePrototype(id string) error {
	if id == "" {
		return fmt.Errorf("prototype ID cannot be empty")
	}
	return js.delete(prototypesCollection, id)
}

// ReadAllPrototypes retrieves every prototype by loading each one
// individually.
func (js *JSONStore) ReadAllPrototypes() ([]*model.Prototype, error) {
	ids, err := js.ids(prototypesCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list prototype IDs: %w", err)
	}
	out := make([]*model.Prototype, 0, len(ids))
	for _, id := range ids {
		p, err := js.LoadPrototype(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load prototype %s during ReadAll: %w", id, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// --- Templates ---

// SaveTemplate persists a template into its kind's collection.
func (js *JSONStore) SaveTemplate(t *model.Template) error {
	if t.ID == "" {
		return fmt.Errorf("template ID cannot be empty")
	}
	coll, ok := templateCollections[t.Kind]
	if !ok {
		return fmt.Errorf("unknown template kind %q", t.Kind)
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal template %s: %w", t.ID, err)
	}
	return js.write(coll, t.ID, data)
}

// LoadTemplate retrieves a template by kind and ID.
func (js *JSONStore) LoadTemplate(kind model.TemplateKind, id string) (*model.Template, error) {
	coll, ok := templateCollections[kind]
	if !ok {
		return nil, fmt.Errorf("unknown template kind %q", kind)
	}
	data, err := js.read(coll, id)
	if err != nil {
		return nil, err
	}
	var t model.Template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal template %s: %w", id, err)
	}
	return &t, nil
}

// DeleteTemplate removes a template's JSON file. Idempotent.
func (js *JSONStore) DeleteTemplate(kind model.TemplateKind, id string) error {
	coll, ok := templateCollections[kind]
	if !ok {
		return fmt.Errorf("unknown template kind %q", kind)
	}
	return js.delete(coll, id)
}

// ReadAllTemplates retrieves every template of one kind.
func (js *JSONStore) ReadAllTemplates(kind model.TemplateKind) ([]*model.Template, error) {
	coll, ok := templateCollections[kind]
	if !ok {
		return nil, fmt.Errorf("unknown template kind %q", kind)
	}
	ids, err := js.ids(coll)
	if err != nil {
		return nil, fmt.Errorf("failed to list template IDs: %w", err)
	}
	out := make([]*model.Template, 0, len(ids))
	for _, id := range ids {
		t, err := js.LoadTemplate(kind, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load template %s during ReadAll: %w", id, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// --- Diagnostics ---

// UsageStats returns document counts and byte sizes per collection.
func (js *JSONStore) UsageStats() (*Stats, error) {
	stats := &Stats{
		Collections: make(map[string]CollectionStats),
		QuotaBytes:  js.QuotaBytes,
	}
	collections := []string{prototypesCollection}
	for _, coll := range templateCollections {
		collections = append(collections, coll)
	}
	for _, coll := range collections {
		dir := filepath.Join(js.BasePath, coll)
		size, err := fsutils.DirSize(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to measure collection %s: %w", coll, err)
		}
		ids, err := js.ids(coll)
		if err != nil {
			return nil, err
		}
		stats.Collections[coll] = CollectionStats{Documents: len(ids), Bytes: size}
		stats.TotalBytes += size
	}
	return stats, nil
}
