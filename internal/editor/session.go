// Package editor implements the in-memory edit session for a prototype:
// the step/element tree operations, the option list operations and the
// selection-policy operations. All mutations are synchronous and total;
// an operation given an id that does not exist, or one that would break
// a structural invariant, is a silent no-op rather than an error.
package editor

import (
	"fmt"
	"sync"

	"go-prototype-builder/internal/elements"
	"go-prototype-builder/internal/model"
)

// Session owns the in-memory steps array of one prototype for the
// duration of an edit session. The auto-save controller only reads it
// (via Snapshot); it never mutates the tree.
type Session struct {
	mu    sync.Mutex
	proto *model.Prototype
	ids   model.IDGenerator
	clock model.Clock

	// UI state: which step/element is currently expanded. Cleared when
	// the referenced step/element is deleted; a freshly added step
	// auto-expands.
	openStepID    string
	openElementID string

	onChange func()
}

// NewSession starts an edit session over the given prototype. The
// session takes ownership of the document until Snapshot or the end of
// the session.
func NewSession(p *model.Prototype, ids model.IDGenerator, clock model.Clock) *Session {
	return &Session{proto: p, ids: ids, clock: clock}
}

// OnChange registers a hook invoked after every document mutation.
// Used by the auto-save controller to restart its debounce timer.
func (s *Session) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// mutate runs fn under the session lock and fires the change hook when
// fn reports that it altered the document.
func (s *Session) mutate(fn func() bool) bool {
	s.mu.Lock()
	changed := fn()
	hook := s.onChange
	s.mu.Unlock()
	if changed && hook != nil {
		hook()
	}
	return changed
}

// Snapshot returns a deep copy of the current document with UpdatedAt
// restamped, suitable for handing to the persistence layer.
func (s *Session) Snapshot() model.Prototype {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := model.CopyPrototype(*s.proto)
	out.UpdatedAt = s.clock.Now()
	return out
}

// PrototypeID returns the id of the document under edit.
func (s *Session) PrototypeID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proto.ID
}

// OpenStepID returns the id of the currently expanded step, if any.
func (s *Session) OpenStepID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openStepID
}

// SetOpenStep expands the step with the given id. No-op if absent.
func (s *Session) SetOpenStep(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stepIndex(id) < 0 {
		return false
	}
	s.openStepID = id
	return true
}

// --- Lookup helpers (callers hold s.mu) ---

func (s *Session) stepIndex(id string) int {
	for i := range s.proto.Steps {
		if s.proto.Steps[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) findStep(id string) *model.Step {
	if i := s.stepIndex(id); i >= 0 {
		return &s.proto.Steps[i]
	}
	return nil
}

func (s *Session) findElement(stepID, elementID string) *model.Element {
	step := s.findStep(stepID)
	if step == nil {
		return nil
	}
	for i := range step.Elements {
		if step.Elements[i].ID == elementID {
			return &step.Elements[i]
		}
	}
	return nil
}

// firstApplicationIndex returns the index of the first application step,
// or len(steps) when there is none. Application steps are always a
// suffix of the step order.
func (s *Session) firstApplicationIndex() int {
	for i := range s.proto.Steps {
		if s.proto.Steps[i].IsApplicationStep {
			return i
		}
	}
	return len(s.proto.Steps)
}

// --- Step operations ---

// AddStep appends a new regular step, inserting it before any
// application steps so the application suffix stays intact. The new
// step auto-expands.
func (s *Session) AddStep() string {
	var id string
	s.mutate(func() bool {
		// Numbering counts regular steps only; the index of the
		// application suffix is exactly that count.
		at := s.firstApplicationIndex()
		step := elements.NewStep(s.ids, fmt.Sprintf("Step %d", at+1))
		s.proto.Steps = append(s.proto.Steps, model.Step{})
		copy(s.proto.Steps[at+1:], s.proto.Steps[at:])
		s.proto.Steps[at] = step
		id = step.ID
		s.openStepID = id
		return true
	})
	return id
}

// AddApplicationStep appends a new application step at the very end of
// the step order.
func (s *Session) AddApplicationStep() string {
	var id string
	s.mutate(func() bool {
		step := elements.NewApplicationStep(s.ids, "Application step")
		s.proto.Steps = append(s.proto.Steps, step)
		id = step.ID
		s.openStepID = id
		return true
	})
	return id
}

// InsertStep adds an already-built step (e.g. one instantiated from a
// template) honoring the partition invariant: regular steps go before
// the application suffix, application steps go at the end. No-op if a
// step with the same id already exists.
func (s *Session) InsertStep(step model.Step) bool {
	return s.mutate(func() bool {
		if s.stepIndex(step.ID) >= 0 {
			return false
		}
		if step.IsApplicationStep {
			s.proto.Steps = append(s.proto.Steps, step)
		} else {
			at := s.firstApplicationIndex()
			s.proto.Steps = append(s.proto.Steps, model.Step{})
			copy(s.proto.Steps[at+1:], s.proto.Steps[at:])
			s.proto.Steps[at] = step
		}
		s.openStepID = step.ID
		return true
	})
}

// DeleteStep removes the step with the given id. No-op if absent. If
// the removed step was expanded, the UI-state reference is cleared.
func (s *Session) DeleteStep(id string) bool {
	return s.mutate(func() bool {
		i := s.stepIndex(id)
		if i < 0 {
			return false
		}
		s.proto.Steps = append(s.proto.Steps[:i], s.proto.Steps[i+1:]...)
		if s.openStepID == id {
			s.openStepID = ""
			s.openElementID = ""
		}
		return true
	})
}

// ReorderStep removes the dragged step and reinserts it at the target
// step's position. Reordering is confined to the regular-steps
// partition: dragging or targeting an application step is a no-op, as
// is a missing id or dragging a step onto itself.
func (s *Session) ReorderStep(draggedID, targetID string) bool {
	return s.mutate(func() bool {
		if draggedID == targetID {
			return false
		}
		from := s.stepIndex(draggedID)
		to := s.stepIndex(targetID)
		if from < 0 || to < 0 {
			return false
		}
		if s.proto.Steps[from].IsApplicationStep || s.proto.Steps[to].IsApplicationStep {
			return false
		}
		moved := s.proto.Steps[from]
		s.proto.Steps = append(s.proto.Steps[:from], s.proto.Steps[from+1:]...)
		s.proto.Steps = append(s.proto.Steps, model.Step{})
		copy(s.proto.Steps[to+1:], s.proto.Steps[to:])
		s.proto.Steps[to] = moved
		return true
	})
}

// UpdateStep merges non-zero metadata fields into the step, mirroring
// how per-field form edits arrive from the UI.
func (s *Session) UpdateStep(id string, patch StepPatch) bool {
	return s.mutate(func() bool {
		step := s.findStep(id)
		if step == nil {
			return false
		}
		patch.apply(step)
		return true
	})
}

// StepPatch is a partial update to a step's own fields (not its
// elements). Nil fields are left untouched.
type StepPatch struct {
	Name                      *string `json:"name,omitempty"`
	Question                  *string `json:"question,omitempty"`
	Description               *string `json:"description,omitempty"`
	SplitScreenWithImage      *bool   `json:"splitScreenWithImage,omitempty"`
	ImageURL                  *string `json:"imageUrl,omitempty"`
	ImageUploadMode           *string `json:"imageUploadMode,omitempty"`
	ImagePosition             *string `json:"imagePosition,omitempty"`
	ImageHasTitle             *bool   `json:"imageHasTitle,omitempty"`
	ImageTitle                *string `json:"imageTitle,omitempty"`
	ImageSubtitle             *string `json:"imageSubtitle,omitempty"`
	ApplicationStepHeading    *string `json:"applicationStepHeading,omitempty"`
	ApplicationStepSubheading *string `json:"applicationStepSubheading,omitempty"`
}

func (p StepPatch) apply(step *model.Step) {
	if p.Name != nil {
		step.Name = *p.Name
	}
	if p.Question != nil {
		step.Question = *p.Question
	}
	if p.Description != nil {
		step.Description = *p.Description
	}
	if p.SplitScreenWithImage != nil {
		step.SplitScreenWithImage = *p.SplitScreenWithImage
	}
	if p.ImageURL != nil {
		step.ImageURL = *p.ImageURL
	}
	if p.ImageUploadMode != nil {
		step.ImageUploadMode = *p.ImageUploadMode
	}
	if p.ImagePosition != nil {
		step.ImagePosition = *p.ImagePosition
	}
	if p.ImageHasTitle != nil {
		step.ImageHasTitle = *p.ImageHasTitle
	}
	if p.ImageTitle != nil {
		step.ImageTitle = *p.ImageTitle
	}
	if p.ImageSubtitle != nil {
		step.ImageSubtitle = *p.ImageSubtitle
	}
	if p.ApplicationStepHeading != nil {
		step.ApplicationStepHeading = *p.ApplicationStepHeading
	}
	if p.ApplicationStepSubheading != nil {
		step.ApplicationStepSubheading = *p.ApplicationStepSubheading
	}
}

// --- Element operations ---

// AddElement appends a new element of the given type to the step.
// Rejected (no-op) when:
//   - the type is unknown or the step is missing,
//   - the type is card-family and the step already holds a card-family
//     element (at most one per step),
//   - the step is an application step and the type is anything other
//     than application_card, or the type is application_card on a
//     regular step.
func (s *Session) AddElement(stepID string, t model.ElementType) (string, bool) {
	var id string
	ok := s.mutate(func() bool {
		if !elements.Known(t) {
			return false
		}
		step := s.findStep(stepID)
		if step == nil {
			return false
		}
		if step.IsApplicationStep != (t == model.TypeApplicationCard) {
			return false
		}
		if elements.IsCardFamily(t) {
			for i := range step.Elements {
				if elements.IsCardFamily(step.Elements[i].Type) {
					return false
				}
			}
		}
		el := elements.NewElement(s.ids, t)
		step.Elements = append(step.Elements, el)
		id = el.ID
		return true
	})
	return id, ok
}

// DeleteElement removes the element with the given id from the step.
// No-op if either id is missing.
func (s *Session) DeleteElement(stepID, elementID string) bool {
	return s.mutate(func() bool {
		step := s.findStep(stepID)
		if step == nil {
			return false
		}
		for i := range step.Elements {
			if step.Elements[i].ID == elementID {
				step.Elements = append(step.Elements[:i], step.Elements[i+1:]...)
				if s.openElementID == elementID {
					s.openElementID = ""
				}
				return true
			}
		}
		return false
	})
}

// ReorderElement removes the dragged element and reinserts it at the
// target element's position within the same step. No-op if either id is
// missing or they are equal.
func (s *Session) ReorderElement(stepID, draggedID, targetID string) bool {
	return s.mutate(func() bool {
		if draggedID == targetID {
			return false
		}
		step := s.findStep(stepID)
		if step == nil {
			return false
		}
		from, to := -1, -1
		for i := range step.Elements {
			switch step.Elements[i].ID {
			case draggedID:
				from = i
			case targetID:
				to = i
			}
		}
		if from < 0 || to < 0 {
			return false
		}
		moved := step.Elements[from]
		step.Elements = append(step.Elements[:from], step.Elements[from+1:]...)
		step.Elements = append(step.Elements, model.Element{})
		copy(step.Elements[to+1:], step.Elements[to:])
		step.Elements[to] = moved
		return true
	})
}

// UpdateElement merges a partial config into the element's config.
// Fields absent from the patch are preserved, so updating one field
// never loses its siblings. When the patch replaces the option list of
// a multi-select element, MaxSelection is re-clamped against the new
// option count.
func (s *Session) UpdateElement(stepID, elementID string, patch model.ConfigPatch) bool {
	return s.mutate(func() bool {
		el := s.findElement(stepID, elementID)
		if el == nil {
			return false
		}
		patch.Apply(&el.Config)
		if patch.Options != nil {
			reclampAfterShrink(el)
		}
		return true
	})
}
