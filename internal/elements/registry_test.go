package elements

import (
	"fmt"
	"testing"

	"go-prototype-builder/internal/model"
)

type seqIDs struct{ n int }

func (s *seqIDs) NextID() string {
	s.n++
	return fmt.Sprintf("id-%03d", s.n)
}

func TestKnown(t *testing.T) {
	all := []model.ElementType{
		model.TypeTextField, model.TypeTextArea, model.TypeDropdown,
		model.TypeCalendar, model.TypeSimpleCards, model.TypeImageCards,
		model.TypeAdvancedCards, model.TypeImageOnlyCard,
		model.TypeYesNoCards, model.TypeApplicationCard,
	}
	for _, typ := range all {
		if !Known(typ) {
			t.Errorf("Known(%q) = false, want true", typ)
		}
	}
	if Known(model.ElementType("bogus")) {
		t.Error("Known(\"bogus\") = true, want false")
	}
}

func TestIsCardFamily(t *testing.T) {
	cards := []model.ElementType{
		model.TypeSimpleCards, model.TypeImageCards, model.TypeAdvancedCards,
		model.TypeImageOnlyCard, model.TypeYesNoCards, model.TypeApplicationCard,
	}
	for _, typ := range cards {
		if !IsCardFamily(typ) {
			t.Errorf("IsCardFamily(%q) = false, want true", typ)
		}
	}
	nonCards := []model.ElementType{
		model.TypeTextField, model.TypeTextArea, model.TypeDropdown, model.TypeCalendar,
	}
	for _, typ := range nonCards {
		if IsCardFamily(typ) {
			t.Errorf("IsCardFamily(%q) = true, want false", typ)
		}
	}
}

func TestDefaultConfig_Dropdown(t *testing.T) {
	cfg := DefaultConfig(model.TypeDropdown, &seqIDs{})

	if cfg.Placeholder != "Select an option" {
		t.Errorf("dropdown placeholder = %q, want %q", cfg.Placeholder, "Select an option")
	}
	if len(cfg.Options) != 2 {
		t.Fatalf("dropdown default has %d options, want 2", len(cfg.Options))
	}
	if cfg.Options[0].Title != "Option 1" || cfg.Options[1].Title != "Option 2" {
		t.Errorf("dropdown default options titled %q, %q", cfg.Options[0].Title, cfg.Options[1].Title)
	}
	if cfg.SelectionType != model.SelectionMultiple {
		t.Errorf("dropdown selection type = %q, want multiple", cfg.SelectionType)
	}
	// MaxSelection equal to the option count is the "no limit" sentinel.
	if cfg.MaxSelection != len(cfg.Options) {
		t.Errorf("dropdown MaxSelection = %d, want %d (unlimited sentinel)", cfg.MaxSelection, len(cfg.Options))
	}
}

func TestDefaultConfig_CardGroups(t *testing.T) {
	for _, typ := range []model.ElementType{model.TypeSimpleCards, model.TypeImageCards, model.TypeAdvancedCards, model.TypeImageOnlyCard} {
		cfg := DefaultConfig(typ, &seqIDs{})
		if len(cfg.Options) != 2 {
			t.Errorf("%s default has %d options, want 2", typ, len(cfg.Options))
		}
		if cfg.SelectionType != model.SelectionMultiple {
			t.Errorf("%s selection type = %q, want multiple", typ, cfg.SelectionType)
		}
		if cfg.MaxSelection != 2 {
			t.Errorf("%s MaxSelection = %d, want 2", typ, cfg.MaxSelection)
		}
	}

	simple := DefaultConfig(model.TypeSimpleCards, &seqIDs{})
	if simple.Options[0].Title != "Card 1" || simple.Options[1].Title != "Card 2" {
		t.Errorf("simple_cards default options titled %q, %q", simple.Options[0].Title, simple.Options[1].Title)
	}

	imageOnly := DefaultConfig(model.TypeImageOnlyCard, &seqIDs{})
	if imageOnly.Options[0].Title != "" {
		t.Errorf("image_only_card options should be untitled, got %q", imageOnly.Options[0].Title)
	}
	if imageOnly.Options[0].ImageUploadMode != "url" {
		t.Errorf("image_only_card upload mode = %q, want url", imageOnly.Options[0].ImageUploadMode)
	}
}

func TestDefaultConfig_YesNo(t *testing.T) {
	cfg := DefaultConfig(model.TypeYesNoCards, &seqIDs{})
	if len(cfg.Options) != 2 || cfg.Options[0].Title != "Yes" || cfg.Options[1].Title != "No" {
		t.Fatalf("yes_no_cards default options = %+v, want Yes/No", cfg.Options)
	}
	if cfg.SelectionType != model.SelectionSingle || cfg.MaxSelection != 1 {
		t.Errorf("yes_no_cards selection = %q/%d, want single/1", cfg.SelectionType, cfg.MaxSelection)
	}
}

func TestDefaultConfig_ApplicationCard(t *testing.T) {
	cfg := DefaultConfig(model.TypeApplicationCard, &seqIDs{})
	if len(cfg.Options) != 0 {
		t.Errorf("application_card default has %d options, want 0", len(cfg.Options))
	}
	if cfg.SelectionType != model.SelectionSingle || cfg.MaxSelection != 1 {
		t.Errorf("application_card selection = %q/%d, want single/1", cfg.SelectionType, cfg.MaxSelection)
	}
}

func TestDefaultConfig_Unknown(t *testing.T) {
	cfg := DefaultConfig(model.ElementType("bogus"), &seqIDs{})
	if len(cfg.Options) != 0 || cfg.SelectionType != "" {
		t.Errorf("unknown type should yield zero config, got %+v", cfg)
	}
}

func TestNewOption(t *testing.T) {
	if _, ok := NewOption(model.TypeTextField, &seqIDs{}); ok {
		t.Error("NewOption(text_field) reported ok, but text fields have no options")
	}

	opt, ok := NewOption(model.TypeAdvancedCards, &seqIDs{})
	if !ok {
		t.Fatal("NewOption(advanced_cards) reported not ok")
	}
	if opt.ID == "" {
		t.Error("NewOption() did not assign an id")
	}
	if opt.Heading != "Heading" {
		t.Errorf("advanced card option heading = %q, want %q", opt.Heading, "Heading")
	}

	jobOpt, ok := NewOption(model.TypeApplicationCard, &seqIDs{})
	if !ok {
		t.Fatal("NewOption(application_card) reported not ok")
	}
	if jobOpt.EmploymentType != "full_time" {
		t.Errorf("application card option employment type = %q, want full_time", jobOpt.EmploymentType)
	}
}

func TestNewApplicationStep(t *testing.T) {
	step := NewApplicationStep(&seqIDs{}, "Application step")
	if !step.IsApplicationStep {
		t.Fatal("NewApplicationStep() did not flag the step")
	}
	if step.ApplicationStepHeading != "Open positions" {
		t.Errorf("heading = %q, want %q", step.ApplicationStepHeading, "Open positions")
	}
	if len(step.Elements) != 1 || step.Elements[0].Type != model.TypeApplicationCard {
		t.Fatalf("NewApplicationStep() elements = %+v, want one application_card", step.Elements)
	}
}

func TestNewStarterPrototype(t *testing.T) {
	p := NewStarterPrototype(&seqIDs{}, model.SystemClock{}, "My Form", "desc")
	if p.Name != "My Form" || p.Description != "desc" {
		t.Errorf("starter prototype metadata = %q/%q", p.Name, p.Description)
	}
	if len(p.Steps) != 1 {
		t.Fatalf("starter prototype has %d steps, want 1", len(p.Steps))
	}
	step := p.Steps[0]
	if step.Question != "Welcome" {
		t.Errorf("starter step question = %q, want Welcome", step.Question)
	}
	if len(step.Elements) != 1 || step.Elements[0].Type != model.TypeTextField {
		t.Fatalf("starter step elements = %+v, want one text_field", step.Elements)
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("starter prototype timestamps were not stamped")
	}
}
