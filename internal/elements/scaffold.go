package elements

import "go-prototype-builder/internal/model"

// NewStep builds an empty regular step with defaults.
func NewStep(ids model.IDGenerator, name string) model.Step {
	return model.Step{
		ID:       ids.NextID(),
		Name:     name,
		Elements: []model.Element{},
	}
}

// NewApplicationStep builds an application step carrying a single
// application_card element, matching what the application-step
// affordance produces.
func NewApplicationStep(ids model.IDGenerator, name string) model.Step {
	return model.Step{
		ID:                     ids.NextID(),
		Name:                   name,
		IsApplicationStep:      true,
		ApplicationStepHeading: "Open positions",
		Elements: []model.Element{
			NewElement(ids, model.TypeApplicationCard),
		},
	}
}

// NewElement builds an element of the given type with its default config.
func NewElement(ids model.IDGenerator, t model.ElementType) model.Element {
	return model.Element{
		ID:     ids.NextID(),
		Type:   t,
		Config: DefaultConfig(t, ids),
	}
}

// NewStarterPrototype builds the boilerplate document a fresh prototype
// starts from: one welcome step with a single text field.
func NewStarterPrototype(ids model.IDGenerator, clock model.Clock, name, description string) *model.Prototype {
	now := clock.Now()
	welcome := NewStep(ids, "Step 1")
	welcome.Question = "Welcome"
	welcome.Elements = append(welcome.Elements, NewElement(ids, model.TypeTextField))
	return &model.Prototype{
		ID:          ids.NextID(),
		Name:        name,
		Description: description,
		Steps:       []model.Step{welcome},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
