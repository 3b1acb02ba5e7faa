package editor

import (
	"fmt"

	"go-prototype-builder/internal/elements"
	"go-prototype-builder/internal/model"
)

// Upload is one already-decoded image handed over by the file
// collaborator. The session never touches raw file bytes.
type Upload struct {
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	DataURL string `json:"dataUrl"`
}

// AddOption appends a new option with a fresh id and type-appropriate
// default fields to the element's option list. Options with a titled
// shape are numbered after the current count ("Card 3", "Option 5").
// For application cards with no existing options exactly one card is
// added, keeping app-step onboarding at its intended single card.
func (s *Session) AddOption(stepID, elementID string) (string, bool) {
	var id string
	ok := s.mutate(func() bool {
		el := s.findElement(stepID, elementID)
		if el == nil {
			return false
		}
		opt, ok := elements.NewOption(el.Type, s.ids)
		if !ok {
			return false
		}
		if opt.Title != "" {
			opt.Title = fmt.Sprintf("%s %d", opt.Title, len(el.Config.Options)+1)
		}
		wasUnlimited := isUnlimitedDropdown(el)
		el.Config.Options = append(el.Config.Options, opt)
		if wasUnlimited {
			// "No limit" keeps tracking the option count as it grows.
			el.Config.MaxSelection = len(el.Config.Options)
		}
		id = opt.ID
		return true
	})
	return id, ok
}

// DeleteOption removes the option with the given id. No-op if absent.
// MaxSelection is re-clamped when the shrink leaves it above the new
// option count.
func (s *Session) DeleteOption(stepID, elementID, optionID string) bool {
	return s.mutate(func() bool {
		el := s.findElement(stepID, elementID)
		if el == nil {
			return false
		}
		for i := range el.Config.Options {
			if el.Config.Options[i].ID == optionID {
				el.Config.Options = append(el.Config.Options[:i], el.Config.Options[i+1:]...)
				reclampAfterShrink(el)
				return true
			}
		}
		return false
	})
}

// ReorderOption removes the dragged option and reinserts it at the
// target option's position. No-op if either id is missing or they are
// equal; the multiset of ids never changes, only their order.
func (s *Session) ReorderOption(stepID, elementID, draggedID, targetID string) bool {
	return s.mutate(func() bool {
		if draggedID == targetID {
			return false
		}
		el := s.findElement(stepID, elementID)
		if el == nil {
			return false
		}
		opts := el.Config.Options
		from, to := -1, -1
		for i := range opts {
			switch opts[i].ID {
			case draggedID:
				from = i
			case targetID:
				to = i
			}
		}
		if from < 0 || to < 0 {
			return false
		}
		moved := opts[from]
		opts = append(opts[:from], opts[from+1:]...)
		opts = append(opts, model.Option{})
		copy(opts[to+1:], opts[to:])
		opts[to] = moved
		el.Config.Options = opts
		return true
	})
}

// UpdateOptionField merges one named field into the matching option.
// Options other than the target are left referentially unchanged. An
// unknown field name or missing option id is a no-op.
func (s *Session) UpdateOptionField(stepID, elementID, optionID, field, value string) bool {
	return s.mutate(func() bool {
		el := s.findElement(stepID, elementID)
		if el == nil {
			return false
		}
		for i := range el.Config.Options {
			if el.Config.Options[i].ID == optionID {
				return setOptionField(&el.Config.Options[i], field, value)
			}
		}
		return false
	})
}

// setOptionField writes one field by its JSON name. Returns false for
// unknown names.
func setOptionField(opt *model.Option, field, value string) bool {
	switch field {
	case "title":
		opt.Title = value
	case "heading":
		opt.Heading = value
	case "mainText":
		opt.MainText = value
	case "linkText":
		opt.LinkText = value
	case "linkUrl":
		opt.LinkURL = value
	case "imageUrl":
		opt.ImageURL = value
	case "imageUploadMode":
		opt.ImageUploadMode = value
	case "jobTitle":
		opt.JobTitle = value
	case "company":
		opt.Company = value
	case "location":
		opt.Location = value
	case "employmentType":
		opt.EmploymentType = value
	default:
		return false
	}
	return true
}

// BulkAddFromUploads turns N uploaded images into option images. If the
// option identified by currentOptionID has an empty image slot, the
// first upload fills it; every remaining upload becomes a new option,
// in upload order. When the current option already has an image (or no
// current option is given), all N uploads become new options.
func (s *Session) BulkAddFromUploads(stepID, elementID string, uploads []Upload, currentOptionID string) bool {
	if len(uploads) == 0 {
		return false
	}
	return s.mutate(func() bool {
		el := s.findElement(stepID, elementID)
		if el == nil || !elements.HasOptions(el.Type) {
			return false
		}
		wasUnlimited := isUnlimitedDropdown(el)
		rest := uploads
		if currentOptionID != "" {
			for i := range el.Config.Options {
				opt := &el.Config.Options[i]
				if opt.ID == currentOptionID && opt.ImageURL == "" {
					opt.ImageURL = uploads[0].DataURL
					opt.ImageUploadMode = "upload"
					rest = uploads[1:]
					break
				}
			}
		}
		for _, up := range rest {
			opt, ok := elements.NewOption(el.Type, s.ids)
			if !ok {
				return false
			}
			if opt.Title != "" {
				opt.Title = fmt.Sprintf("%s %d", opt.Title, len(el.Config.Options)+1)
			}
			opt.ImageURL = up.DataURL
			opt.ImageUploadMode = "upload"
			el.Config.Options = append(el.Config.Options, opt)
		}
		if wasUnlimited {
			el.Config.MaxSelection = len(el.Config.Options)
		}
		return true
	})
}
