package model

import "time"

// ElementType identifies the kind of widget an Element renders as.
// The set is closed; the elements package holds the dispatch table
// mapping each type to its default configuration and option shape.
type ElementType string

const (
	TypeTextField       ElementType = "text_field"
	TypeTextArea        ElementType = "text_area"
	TypeDropdown        ElementType = "dropdown"
	TypeCalendar        ElementType = "calendar"
	TypeSimpleCards     ElementType = "simple_cards"
	TypeImageCards      ElementType = "image_cards"
	TypeAdvancedCards   ElementType = "advanced_cards"
	TypeImageOnlyCard   ElementType = "image_only_card"
	TypeYesNoCards      ElementType = "yes_no_cards"
	TypeApplicationCard ElementType = "application_card"
)

// SelectionType distinguishes single-choice from multi-choice elements.
type SelectionType string

const (
	SelectionSingle   SelectionType = "single"
	SelectionMultiple SelectionType = "multiple"
)

// Option is one entry within a card-group or dropdown element.
// The populated field set depends on the owning element's type
// (card titles; heading/link fields; job metadata; image references).
// Order within ElementConfig.Options is display order.
type Option struct {
	ID              string `json:"id"`
	Title           string `json:"title,omitempty"`
	Heading         string `json:"heading,omitempty"`
	MainText        string `json:"mainText,omitempty"`
	LinkText        string `json:"linkText,omitempty"`
	LinkURL         string `json:"linkUrl,omitempty"`
	ImageURL        string `json:"imageUrl,omitempty"`
	ImageUploadMode string `json:"imageUploadMode,omitempty"`
	JobTitle        string `json:"jobTitle,omitempty"`
	Company         string `json:"company,omitempty"`
	Location        string `json:"location,omitempty"`
	EmploymentType  string `json:"employmentType,omitempty"`
}

// ElementConfig holds the per-type configuration of an Element.
// Only the fields relevant to the element's type are populated;
// unused fields stay at their zero value and are omitted from JSON.
type ElementConfig struct {
	Label         string        `json:"label,omitempty"`
	HasLabel      bool          `json:"hasLabel,omitempty"`
	Placeholder   string        `json:"placeholder,omitempty"`
	AllowRange    bool          `json:"allowRange,omitempty"`
	Options       []Option      `json:"options,omitempty"`
	SelectionType SelectionType `json:"selectionType,omitempty"`
	MaxSelection  int           `json:"maxSelection,omitempty"`
}

// ConfigPatch is a partial update to an ElementConfig. Nil fields are
// left untouched when the patch is applied, so updating one field never
// clobbers its siblings.
type ConfigPatch struct {
	Label         *string        `json:"label,omitempty"`
	HasLabel      *bool          `json:"hasLabel,omitempty"`
	Placeholder   *string        `json:"placeholder,omitempty"`
	AllowRange    *bool          `json:"allowRange,omitempty"`
	Options       *[]Option      `json:"options,omitempty"`
	SelectionType *SelectionType `json:"selectionType,omitempty"`
	MaxSelection  *int           `json:"maxSelection,omitempty"`
}

// Apply merges the patch into cfg, field by field.
func (p ConfigPatch) Apply(cfg *ElementConfig) {
	if p.Label != nil {
		cfg.Label = *p.Label
	}
	if p.HasLabel != nil {
		cfg.HasLabel = *p.HasLabel
	}
	if p.Placeholder != nil {
		cfg.Placeholder = *p.Placeholder
	}
	if p.AllowRange != nil {
		cfg.AllowRange = *p.AllowRange
	}
	if p.Options != nil {
		cfg.Options = *p.Options
	}
	if p.SelectionType != nil {
		cfg.SelectionType = *p.SelectionType
	}
	if p.MaxSelection != nil {
		cfg.MaxSelection = *p.MaxSelection
	}
}

// Element is one input/display widget placed within a step.
type Element struct {
	ID     string        `json:"id"`
	Type   ElementType   `json:"type"`
	Config ElementConfig `json:"config"`
}

// Step is one page of a prototype. Order within Prototype.Steps is the
// rendering/navigation order. Steps flagged IsApplicationStep always
// sort after all regular steps; the editor preserves that partition
// across every add and reorder operation.
type Step struct {
	ID                        string    `json:"id"`
	Name                      string    `json:"name"`
	Question                  string    `json:"question,omitempty"`
	Description               string    `json:"description,omitempty"`
	SplitScreenWithImage      bool      `json:"splitScreenWithImage,omitempty"`
	ImageURL                  string    `json:"imageUrl,omitempty"`
	ImageUploadMode           string    `json:"imageUploadMode,omitempty"`
	ImagePosition             string    `json:"imagePosition,omitempty"`
	ImageHasTitle             bool      `json:"imageHasTitle,omitempty"`
	ImageTitle                string    `json:"imageTitle,omitempty"`
	ImageSubtitle             string    `json:"imageSubtitle,omitempty"`
	Elements                  []Element `json:"elements"`
	IsApplicationStep         bool      `json:"isApplicationStep,omitempty"`
	ApplicationStepHeading    string    `json:"applicationStepHeading,omitempty"`
	ApplicationStepSubheading string    `json:"applicationStepSubheading,omitempty"`
}

// Prototype is the top-level persisted multi-step form document.
type Prototype struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	PrimaryColor   string    `json:"primaryColor,omitempty"`
	LogoURL        string    `json:"logoUrl,omitempty"`
	LogoUploadMode string    `json:"logoUploadMode,omitempty"`
	Steps          []Step    `json:"steps"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
