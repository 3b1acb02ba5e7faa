// Package elements is the single dispatch table for element types.
// Every per-type decision (default config, option shape, card-family
// membership) lives here so editors never repeat type switches.
package elements

import "go-prototype-builder/internal/model"

// typeSpec describes one element type in the registry.
type typeSpec struct {
	cardFamily bool
	hasOptions bool
	// newOption builds one type-appropriate default option. Nil for
	// types without an option list.
	newOption func(ids model.IDGenerator) model.Option
	// defaults builds the full default config for a freshly added element.
	defaults func(ids model.IDGenerator) model.ElementConfig
}

var registry = map[model.ElementType]typeSpec{
	model.TypeTextField: {
		defaults: func(model.IDGenerator) model.ElementConfig {
			return model.ElementConfig{HasLabel: true}
		},
	},
	model.TypeTextArea: {
		defaults: func(model.IDGenerator) model.ElementConfig {
			return model.ElementConfig{HasLabel: true}
		},
	},
	model.TypeCalendar: {
		defaults: func(model.IDGenerator) model.ElementConfig {
			return model.ElementConfig{HasLabel: true}
		},
	},
	model.TypeDropdown: {
		hasOptions: true,
		newOption:  titledOption("Option"),
		defaults: func(ids model.IDGenerator) model.ElementConfig {
			return model.ElementConfig{
				Placeholder: "Select an option",
				Options: []model.Option{
					{ID: ids.NextID(), Title: "Option 1"},
					{ID: ids.NextID(), Title: "Option 2"},
				},
				SelectionType: model.SelectionMultiple,
				// Equal to the option count, i.e. the "no limit" sentinel.
				MaxSelection: 2,
			}
		},
	},
	model.TypeSimpleCards: {
		cardFamily: true,
		hasOptions: true,
		newOption:  titledOption("Card"),
		defaults:   cardDefaults(titledOption("Card")),
	},
	model.TypeImageCards: {
		cardFamily: true,
		hasOptions: true,
		newOption:  imageCardOption,
		defaults:   cardDefaults(imageCardOption),
	},
	model.TypeAdvancedCards: {
		cardFamily: true,
		hasOptions: true,
		newOption:  advancedCardOption,
		defaults:   cardDefaults(advancedCardOption),
	},
	model.TypeImageOnlyCard: {
		cardFamily: true,
		hasOptions: true,
		newOption:  imageOnlyOption,
		defaults:   cardDefaults(imageOnlyOption),
	},
	model.TypeYesNoCards: {
		cardFamily: true,
		hasOptions: true,
		newOption:  titledOption("Card"),
		defaults: func(ids model.IDGenerator) model.ElementConfig {
			return model.ElementConfig{
				Options: []model.Option{
					{ID: ids.NextID(), Title: "Yes"},
					{ID: ids.NextID(), Title: "No"},
				},
				SelectionType: model.SelectionSingle,
				MaxSelection:  1,
			}
		},
	},
	model.TypeApplicationCard: {
		cardFamily: true,
		hasOptions: true,
		newOption:  applicationCardOption,
		defaults: func(model.IDGenerator) model.ElementConfig {
			// Application cards start empty; the first AddOption call
			// adds exactly one card.
			return model.ElementConfig{
				SelectionType: model.SelectionSingle,
				MaxSelection:  1,
			}
		},
	},
}

// titledOption returns an option factory producing options titled with
// the given prefix ("Card 1", "Option 2", ...). The numbering is filled
// in by callers that know the current option count; the factory itself
// leaves the title at the bare prefix.
func titledOption(prefix string) func(model.IDGenerator) model.Option {
	return func(ids model.IDGenerator) model.Option {
		return model.Option{ID: ids.NextID(), Title: prefix}
	}
}

func imageCardOption(ids model.IDGenerator) model.Option {
	return model.Option{ID: ids.NextID(), Title: "Card", ImageUploadMode: "url"}
}

func imageOnlyOption(ids model.IDGenerator) model.Option {
	return model.Option{ID: ids.NextID(), ImageUploadMode: "url"}
}

func advancedCardOption(ids model.IDGenerator) model.Option {
	return model.Option{ID: ids.NextID(), Heading: "Heading", MainText: "", LinkText: "", LinkURL: ""}
}

func applicationCardOption(ids model.IDGenerator) model.Option {
	return model.Option{ID: ids.NextID(), JobTitle: "", Company: "", Location: "", EmploymentType: "full_time"}
}

// cardDefaults builds the standard card-group default config: two
// default options, multiple selection, max selection 2.
func cardDefaults(newOpt func(model.IDGenerator) model.Option) func(model.IDGenerator) model.ElementConfig {
	return func(ids model.IDGenerator) model.ElementConfig {
		first := newOpt(ids)
		second := newOpt(ids)
		if first.Title != "" {
			first.Title = first.Title + " 1"
			second.Title = second.Title + " 2"
		}
		return model.ElementConfig{
			Options:       []model.Option{first, second},
			SelectionType: model.SelectionMultiple,
			MaxSelection:  2,
		}
	}
}

// Known reports whether t is a registered element type.
func Known(t model.ElementType) bool {
	_, ok := registry[t]
	return ok
}

// IsCardFamily reports whether t belongs to the card family. A step may
// hold at most one card-family element; application steps use
// application_card as their card.
func IsCardFamily(t model.ElementType) bool {
	return registry[t].cardFamily
}

// HasOptions reports whether elements of type t carry an option list.
func HasOptions(t model.ElementType) bool {
	return registry[t].hasOptions
}

// DefaultConfig returns the default configuration for a freshly added
// element of type t. Unknown types yield an empty config rather than an
// error.
func DefaultConfig(t model.ElementType, ids model.IDGenerator) model.ElementConfig {
	spec, ok := registry[t]
	if !ok {
		return model.ElementConfig{}
	}
	return spec.defaults(ids)
}

// NewOption returns a type-appropriate default option for t. The second
// return is false when t has no option list.
func NewOption(t model.ElementType, ids model.IDGenerator) (model.Option, bool) {
	spec, ok := registry[t]
	if !ok || spec.newOption == nil {
		return model.Option{}, false
	}
	return spec.newOption(ids), true
}
