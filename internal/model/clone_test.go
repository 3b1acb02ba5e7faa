package model

import (
	"fmt"
	"reflect"
	"testing"
)

// seqIDs is a deterministic IDGenerator for tests.
type seqIDs struct{ n int }

func (s *seqIDs) NextID() string {
	s.n++
	return fmt.Sprintf("id-%03d", s.n)
}

func sampleStep(prefix string) Step {
	return Step{
		ID:       prefix + "-step",
		Name:     "Sample step",
		Question: "Pick a card",
		Elements: []Element{
			{
				ID:   prefix + "-el",
				Type: TypeSimpleCards,
				Config: ElementConfig{
					Options: []Option{
						{ID: prefix + "-opt-1", Title: "Card 1"},
						{ID: prefix + "-opt-2", Title: "Card 2"},
					},
					SelectionType: SelectionMultiple,
					MaxSelection:  2,
				},
			},
		},
	}
}

// collectIDs gathers every id (step, element, option) in a step.
func collectIDs(s Step) map[string]bool {
	out := map[string]bool{s.ID: true}
	for _, el := range s.Elements {
		out[el.ID] = true
		for _, opt := range el.Config.Options {
			out[opt.ID] = true
		}
	}
	return out
}

func TestCloneStep_FreshIDs(t *testing.T) {
	src := sampleStep("src")
	clone := CloneStep(src, &seqIDs{})

	srcIDs := collectIDs(src)
	for id := range collectIDs(clone) {
		if srcIDs[id] {
			t.Errorf("CloneStep() reused source id %q", id)
		}
	}

	// Everything except the ids must carry over.
	if clone.Name != src.Name || clone.Question != src.Question {
		t.Errorf("CloneStep() changed step fields: got Name=%q Question=%q", clone.Name, clone.Question)
	}
	if len(clone.Elements) != len(src.Elements) {
		t.Fatalf("CloneStep() produced %d elements, want %d", len(clone.Elements), len(src.Elements))
	}
	if clone.Elements[0].Config.Options[0].Title != "Card 1" {
		t.Errorf("CloneStep() lost option content: %+v", clone.Elements[0].Config.Options[0])
	}
}

func TestCloneStep_TwiceNeverCollides(t *testing.T) {
	src := sampleStep("src")
	ids := &seqIDs{}
	first := CloneStep(src, ids)
	second := CloneStep(src, ids)

	firstIDs := collectIDs(first)
	for id := range collectIDs(second) {
		if firstIDs[id] {
			t.Errorf("two clones of the same step share id %q", id)
		}
	}
}

func TestClonePrototype_FreshIDs(t *testing.T) {
	src := Prototype{
		ID:    "src-proto",
		Name:  "Source",
		Steps: []Step{sampleStep("a"), sampleStep("b")},
	}
	clone := ClonePrototype(src, &seqIDs{})

	if clone.ID == src.ID {
		t.Errorf("ClonePrototype() reused the source prototype id")
	}
	for i := range src.Steps {
		if clone.Steps[i].ID == src.Steps[i].ID {
			t.Errorf("ClonePrototype() reused step id %q", src.Steps[i].ID)
		}
	}
	if clone.Name != src.Name || len(clone.Steps) != len(src.Steps) {
		t.Errorf("ClonePrototype() changed content: Name=%q steps=%d", clone.Name, len(clone.Steps))
	}
}

func TestCopyStep_KeepsIDsAndIsolates(t *testing.T) {
	src := sampleStep("src")
	cp := CopyStep(src)

	if !reflect.DeepEqual(src, cp) {
		t.Fatalf("CopyStep() is not equal to source.\nSource: %+v\nCopy:   %+v", src, cp)
	}

	// Mutating the copy must not leak into the source.
	cp.Elements[0].Config.Options[0].Title = "mutated"
	if src.Elements[0].Config.Options[0].Title == "mutated" {
		t.Error("CopyStep() shares option storage with the source")
	}
	cp.Elements[0].ID = "mutated-el"
	if src.Elements[0].ID == "mutated-el" {
		t.Error("CopyStep() shares element storage with the source")
	}
}

func TestCopyPrototype_KeepsIDsAndIsolates(t *testing.T) {
	src := Prototype{
		ID:    "src-proto",
		Name:  "Source",
		Steps: []Step{sampleStep("a")},
	}
	cp := CopyPrototype(src)

	if !reflect.DeepEqual(src, cp) {
		t.Fatalf("CopyPrototype() is not equal to source.\nSource: %+v\nCopy:   %+v", src, cp)
	}

	cp.Steps[0].Elements[0].Config.Options[1].Title = "mutated"
	if src.Steps[0].Elements[0].Config.Options[1].Title == "mutated" {
		t.Error("CopyPrototype() shares option storage with the source")
	}
}

func TestConfigPatch_ApplyPreservesUnsetFields(t *testing.T) {
	cfg := ElementConfig{
		Label:         "Keep me",
		HasLabel:      true,
		Placeholder:   "Keep me too",
		SelectionType: SelectionMultiple,
		MaxSelection:  3,
	}
	newLabel := "New label"
	ConfigPatch{Label: &newLabel}.Apply(&cfg)

	if cfg.Label != "New label" {
		t.Errorf("Apply() did not set Label: %q", cfg.Label)
	}
	if !cfg.HasLabel || cfg.Placeholder != "Keep me too" || cfg.MaxSelection != 3 {
		t.Errorf("Apply() clobbered sibling fields: %+v", cfg)
	}
}
