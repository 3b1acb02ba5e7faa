package main

import (
	"log/slog"
	"sync"
	"time"

	"go-prototype-builder/internal/autosave"
	"go-prototype-builder/internal/editor"
	"go-prototype-builder/internal/model"
	"go-prototype-builder/internal/storage"
)

// activeSession pairs one edit session with its auto-save controller.
type activeSession struct {
	session *editor.Session
	saver   *autosave.Controller
}

// sessionRegistry opens edit sessions on demand and keeps them until
// the document is closed or deleted. Only previously persisted
// documents get sessions (and therefore auto-save); creation always
// persists first.
type sessionRegistry struct {
	store    storage.DataStore
	logger   *slog.Logger
	ids      model.IDGenerator
	clock    model.Clock
	interval time.Duration

	mu     sync.Mutex
	active map[string]*activeSession
}

func newSessionRegistry(store storage.DataStore, logger *slog.Logger, ids model.IDGenerator, clock model.Clock, interval time.Duration) *sessionRegistry {
	return &sessionRegistry{
		store:    store,
		logger:   logger,
		ids:      ids,
		clock:    clock,
		interval: interval,
		active:   make(map[string]*activeSession),
	}
}

// get returns the open session for a document, opening one from the
// stored snapshot if needed.
func (r *sessionRegistry) get(prototypeID string) (*activeSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if as, ok := r.active[prototypeID]; ok {
		return as, nil
	}
	p, err := r.store.LoadPrototype(prototypeID)
	if err != nil {
		return nil, err
	}
	session := editor.NewSession(p, r.ids, r.clock)
	as := &activeSession{
		session: session,
		saver:   autosave.NewController(session, r.store, r.logger, r.clock, r.interval),
	}
	r.active[prototypeID] = as
	return as, nil
}

// peek returns the open session without opening a new one.
func (r *sessionRegistry) peek(prototypeID string) (*activeSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	as, ok := r.active[prototypeID]
	return as, ok
}

// close flushes and discards the session for a document, if open.
// flush=false drops without a final save (after a delete).
func (r *sessionRegistry) close(prototypeID string, flush bool) error {
	r.mu.Lock()
	as, ok := r.active[prototypeID]
	delete(r.active, prototypeID)
	r.mu.Unlock()
	if !ok {
		return nil
	}
	if !flush {
		as.saver.Abort()
		return nil
	}
	return as.saver.Close()
}

// setAutosaveInterval applies a reloaded debounce interval to every
// open session and to sessions opened later.
func (r *sessionRegistry) setAutosaveInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interval = interval
	for _, as := range r.active {
		as.saver.SetInterval(interval)
	}
}
