package editor

import "go-prototype-builder/internal/model"

// ClampMaxSelection clamps n into [2, maxOptions]. When maxOptions
// drops below 2 there is no valid clamped value; the count itself is
// returned so MaxSelection never exceeds the option count.
func ClampMaxSelection(n, maxOptions int) int {
	if maxOptions < 2 {
		return maxOptions
	}
	if n < 2 {
		return 2
	}
	if n > maxOptions {
		return maxOptions
	}
	return n
}

// isUnlimitedDropdown reports whether the element is a dropdown in
// "no limit" mode: MaxSelection at or above the option count is the
// sentinel for unlimited choices.
func isUnlimitedDropdown(el *model.Element) bool {
	return el.Type == model.TypeDropdown &&
		el.Config.SelectionType == model.SelectionMultiple &&
		el.Config.MaxSelection >= len(el.Config.Options)
}

// reclampAfterShrink re-establishes the MaxSelection bound after the
// option count changed. Unlimited dropdowns track the count so the
// sentinel keeps holding; limited multi-selects are clamped into
// [2, count]. Caller holds the session lock.
func reclampAfterShrink(el *model.Element) {
	if el.Config.SelectionType != model.SelectionMultiple {
		return
	}
	count := len(el.Config.Options)
	if el.Type == model.TypeDropdown && el.Config.MaxSelection >= count {
		el.Config.MaxSelection = count
		return
	}
	el.Config.MaxSelection = ClampMaxSelection(el.Config.MaxSelection, count)
}

// ChooseSingleSelection switches a non-dropdown element to single
// selection. Dropdowns have no single mode; both of their choices map
// to multiple selection (see ChooseUnlimited/ChooseLimited).
func (s *Session) ChooseSingleSelection(stepID, elementID string) bool {
	return s.mutate(func() bool {
		el := s.findElement(stepID, elementID)
		if el == nil || el.Type == model.TypeDropdown {
			return false
		}
		el.Config.SelectionType = model.SelectionSingle
		el.Config.MaxSelection = 1
		return true
	})
}

// ChooseMultipleSelection switches a non-dropdown element to multiple
// selection, clamping MaxSelection into [2, optionCount].
func (s *Session) ChooseMultipleSelection(stepID, elementID string) bool {
	return s.mutate(func() bool {
		el := s.findElement(stepID, elementID)
		if el == nil || el.Type == model.TypeDropdown {
			return false
		}
		el.Config.SelectionType = model.SelectionMultiple
		el.Config.MaxSelection = ClampMaxSelection(el.Config.MaxSelection, len(el.Config.Options))
		return true
	})
}

// ChooseUnlimited puts a dropdown into "no limit" mode: selection stays
// multiple and MaxSelection is set to the option count, the sentinel
// for unlimited choices.
func (s *Session) ChooseUnlimited(stepID, elementID string) bool {
	return s.mutate(func() bool {
		el := s.findElement(stepID, elementID)
		if el == nil || el.Type != model.TypeDropdown {
			return false
		}
		el.Config.SelectionType = model.SelectionMultiple
		el.Config.MaxSelection = len(el.Config.Options)
		return true
	})
}

// ChooseLimited puts a dropdown into "number of choices" mode. Coming
// from unset/unlimited the limit starts at 2; otherwise the current
// value is kept, clamped into [2, optionCount]. With fewer than two
// options there is no valid limit, so the switch is rejected.
func (s *Session) ChooseLimited(stepID, elementID string) bool {
	return s.mutate(func() bool {
		el := s.findElement(stepID, elementID)
		if el == nil || el.Type != model.TypeDropdown {
			return false
		}
		count := len(el.Config.Options)
		if count < 2 {
			return false
		}
		max := el.Config.MaxSelection
		if max == 0 || max >= count {
			max = 2
		}
		el.Config.SelectionType = model.SelectionMultiple
		el.Config.MaxSelection = ClampMaxSelection(max, count)
		return true
	})
}

// SetMaxSelection sets the selection limit, clamped into
// [2, optionCount]. Increment, decrement and direct entry all go
// through this. Only meaningful while multiple selection is active.
func (s *Session) SetMaxSelection(stepID, elementID string, n int) bool {
	return s.mutate(func() bool {
		el := s.findElement(stepID, elementID)
		if el == nil || el.Config.SelectionType != model.SelectionMultiple {
			return false
		}
		count := len(el.Config.Options)
		if count < 2 {
			return false
		}
		el.Config.MaxSelection = ClampMaxSelection(n, count)
		return true
	})
}
