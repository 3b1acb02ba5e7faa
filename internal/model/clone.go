package model

// CloneStep returns a deep copy of a step with fresh ids assigned to the
// step, every element and every option. Instantiating the same template
// twice must never produce colliding ids, so source ids are never reused.
func CloneStep(src Step, ids IDGenerator) Step {
	out := src
	out.ID = ids.NextID()
	out.Elements = make([]Element, len(src.Elements))
	for i, el := range src.Elements {
		out.Elements[i] = CloneElement(el, ids)
	}
	return out
}

// CloneElement returns a deep copy of an element with fresh ids.
func CloneElement(src Element, ids IDGenerator) Element {
	out := src
	out.ID = ids.NextID()
	if src.Config.Options != nil {
		opts := make([]Option, len(src.Config.Options))
		for i, opt := range src.Config.Options {
			opts[i] = opt
			opts[i].ID = ids.NextID()
		}
		out.Config.Options = opts
	}
	return out
}

// ClonePrototype returns a deep copy of a prototype with fresh ids
// throughout. CreatedAt/UpdatedAt are carried over; callers that persist
// the clone are expected to restamp them.
func ClonePrototype(src Prototype, ids IDGenerator) Prototype {
	out := src
	out.ID = ids.NextID()
	out.Steps = make([]Step, len(src.Steps))
	for i, st := range src.Steps {
		out.Steps[i] = CloneStep(st, ids)
	}
	return out
}

// CopyStep returns a deep copy of a step keeping all ids.
func CopyStep(src Step) Step {
	out := src
	out.Elements = make([]Element, len(src.Elements))
	for i, el := range src.Elements {
		out.Elements[i] = el
		if el.Config.Options != nil {
			opts := make([]Option, len(el.Config.Options))
			copy(opts, el.Config.Options)
			out.Elements[i].Config.Options = opts
		}
	}
	return out
}

// CopyPrototype returns a deep copy of a prototype keeping all ids.
// Used for snapshots handed to the persistence layer.
func CopyPrototype(src Prototype) Prototype {
	out := src
	out.Steps = make([]Step, len(src.Steps))
	for i, st := range src.Steps {
		out.Steps[i] = CopyStep(st)
	}
	return out
}
