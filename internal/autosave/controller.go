// Package autosave persists edit-session snapshots on a debounce timer.
// The controller only reads the session (via Snapshot); it never
// mutates the tree.
package autosave

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"go-prototype-builder/internal/editor"
	"go-prototype-builder/internal/model"
	"go-prototype-builder/internal/storage"
)

// DefaultInterval is the debounce delay between the last edit and the
// write, matching the editor's save cadence.
const DefaultInterval = 1500 * time.Millisecond

// Controller observes one edit session and persists its document after
// edits settle. An explicit SaveNow bypasses the debounce for
// operations needing an immediate durable write (e.g. right after a
// delete); it also cancels any pending debounced save so stale data
// never overwrites the fresh write.
type Controller struct {
	session   *editor.Session
	store     storage.DataStore
	logger    *slog.Logger
	clock     model.Clock
	debouncer *Debouncer

	// saveMu serializes snapshot+write. Without it a debounced save
	// already in flight could land its stale snapshot after an explicit
	// SaveNow.
	saveMu sync.Mutex

	mu        sync.Mutex
	lastSaved time.Time
	isSaving  bool
	lastErr   error
	closed    bool
}

// NewController wires a controller to a session. Auto-save is only
// meaningful for previously persisted documents; callers must not
// attach a controller to a document that has never been saved.
func NewController(session *editor.Session, store storage.DataStore, logger *slog.Logger, clock model.Clock, interval time.Duration) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	c := &Controller{
		session:   session,
		store:     store,
		logger:    logger,
		clock:     clock,
		debouncer: NewDebouncer(interval),
	}
	session.OnChange(c.notifyChange)
	return c
}

// notifyChange (re)starts the debounce timer. Every document mutation
// lands here via the session's change hook.
func (c *Controller) notifyChange() {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return
	}
	c.debouncer.Debounce(func() {
		if err := c.SaveNow(); err != nil {
			// Debounced saves have no caller to report to; the error is
			// logged and kept for Status.
			c.logger.Error("Auto-save failed", "prototypeId", c.session.PrototypeID(), "error", err)
		}
	})
}

// SaveNow cancels any pending debounced save and persists the current
// snapshot immediately. Storage failures propagate to the caller.
func (c *Controller) SaveNow() error {
	c.debouncer.Cancel()

	// A debounced save that already fired holds saveMu until its write
	// lands; waiting here means this save snapshots after it and its
	// fresher snapshot is written last.
	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.isSaving = true
	c.mu.Unlock()

	snapshot := c.session.Snapshot()
	err := c.store.SavePrototype(&snapshot)

	c.mu.Lock()
	c.isSaving = false
	c.lastErr = err
	if err == nil {
		c.lastSaved = c.clock.Now()
	}
	c.mu.Unlock()

	if err != nil {
		return fmt.Errorf("persisting snapshot of %s failed: %w", snapshot.ID, err)
	}
	return nil
}

// Status returns the last successful save time, whether a save is in
// flight, and the last save error (nil after a successful save).
func (c *Controller) Status() (lastSaved time.Time, isSaving bool, lastErr error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSaved, c.isSaving, c.lastErr
}

// SetInterval changes the debounce delay for subsequent edits. Used
// when the configured autosave interval is hot-reloaded.
func (c *Controller) SetInterval(interval time.Duration) {
	if interval > 0 {
		c.debouncer.SetDuration(interval)
	}
}

// Close flushes a final save and detaches the controller. Further
// change notifications are ignored.
func (c *Controller) Close() error {
	err := c.SaveNow()
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.debouncer.Cancel()
	return err
}

// Abort detaches the controller without a final save. Used when the
// document was deleted and a pending debounced save would otherwise
// resurrect it.
func (c *Controller) Abort() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.debouncer.Cancel()

	// Wait out a write already in flight so the caller can delete the
	// document afterwards without it coming back.
	c.saveMu.Lock()
	c.saveMu.Unlock()
}
