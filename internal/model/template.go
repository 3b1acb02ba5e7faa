package model

import "time"

// TemplateKind names the three template collections.
type TemplateKind string

const (
	KindQuestion        TemplateKind = "question"
	KindPrototype       TemplateKind = "prototype"
	KindApplicationStep TemplateKind = "applicationStep"
)

// TemplateKinds lists every valid kind, in display order.
var TemplateKinds = []TemplateKind{KindQuestion, KindPrototype, KindApplicationStep}

// Valid reports whether k is one of the known template kinds.
func (k TemplateKind) Valid() bool {
	for _, known := range TemplateKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Template is a named, reusable snapshot of a Step (question and
// applicationStep kinds) or a whole Prototype (prototype kind).
// Templates carry no back-reference to the document they were extracted
// from; instantiating one clones the snapshot with fresh ids.
type Template struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Kind      TemplateKind `json:"kind"`
	Step      *Step        `json:"step,omitempty"`
	Prototype *Prototype   `json:"prototype,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}
