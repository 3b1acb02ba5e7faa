package editor

import "go-prototype-builder/internal/model"

// Command is one mutation request against an edit session, as decoded
// from the JSON API. Mutations stay message-shaped so the transport can
// enqueue them while persistence runs as an independent consumer.
type Command struct {
	Op string `json:"op"`

	StepID    string `json:"stepId,omitempty"`
	ElementID string `json:"elementId,omitempty"`
	OptionID  string `json:"optionId,omitempty"`
	TargetID  string `json:"targetId,omitempty"`

	ElementType model.ElementType  `json:"elementType,omitempty"`
	StepPatch   *StepPatch         `json:"stepPatch,omitempty"`
	ConfigPatch *model.ConfigPatch `json:"configPatch,omitempty"`

	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`

	Uploads         []Upload `json:"uploads,omitempty"`
	CurrentOptionID string   `json:"currentOptionId,omitempty"`

	Max int `json:"max,omitempty"`
}

// Result reports what a command did. Applied is false for validation
// no-ops (missing ids, invariant violations, unknown ops); those are
// never errors.
type Result struct {
	Applied   bool   `json:"applied"`
	CreatedID string `json:"createdId,omitempty"`
}

// Apply dispatches a command to the session.
func (s *Session) Apply(cmd Command) Result {
	switch cmd.Op {
	case "addStep":
		return Result{Applied: true, CreatedID: s.AddStep()}
	case "addApplicationStep":
		return Result{Applied: true, CreatedID: s.AddApplicationStep()}
	case "deleteStep":
		return Result{Applied: s.DeleteStep(cmd.StepID)}
	case "reorderStep":
		return Result{Applied: s.ReorderStep(cmd.StepID, cmd.TargetID)}
	case "updateStep":
		if cmd.StepPatch == nil {
			return Result{}
		}
		return Result{Applied: s.UpdateStep(cmd.StepID, *cmd.StepPatch)}
	case "addElement":
		id, ok := s.AddElement(cmd.StepID, cmd.ElementType)
		return Result{Applied: ok, CreatedID: id}
	case "deleteElement":
		return Result{Applied: s.DeleteElement(cmd.StepID, cmd.ElementID)}
	case "reorderElement":
		return Result{Applied: s.ReorderElement(cmd.StepID, cmd.ElementID, cmd.TargetID)}
	case "updateElement":
		if cmd.ConfigPatch == nil {
			return Result{}
		}
		return Result{Applied: s.UpdateElement(cmd.StepID, cmd.ElementID, *cmd.ConfigPatch)}
	case "addOption":
		id, ok := s.AddOption(cmd.StepID, cmd.ElementID)
		return Result{Applied: ok, CreatedID: id}
	case "deleteOption":
		return Result{Applied: s.DeleteOption(cmd.StepID, cmd.ElementID, cmd.OptionID)}
	case "reorderOption":
		return Result{Applied: s.ReorderOption(cmd.StepID, cmd.ElementID, cmd.OptionID, cmd.TargetID)}
	case "updateOptionField":
		return Result{Applied: s.UpdateOptionField(cmd.StepID, cmd.ElementID, cmd.OptionID, cmd.Field, cmd.Value)}
	case "bulkAddFromUploads":
		return Result{Applied: s.BulkAddFromUploads(cmd.StepID, cmd.ElementID, cmd.Uploads, cmd.CurrentOptionID)}
	case "chooseSingle":
		return Result{Applied: s.ChooseSingleSelection(cmd.StepID, cmd.ElementID)}
	case "chooseMultiple":
		return Result{Applied: s.ChooseMultipleSelection(cmd.StepID, cmd.ElementID)}
	case "chooseUnlimited":
		return Result{Applied: s.ChooseUnlimited(cmd.StepID, cmd.ElementID)}
	case "chooseLimited":
		return Result{Applied: s.ChooseLimited(cmd.StepID, cmd.ElementID)}
	case "setMaxSelection":
		return Result{Applied: s.SetMaxSelection(cmd.StepID, cmd.ElementID, cmd.Max)}
	case "openStep":
		return Result{Applied: s.SetOpenStep(cmd.StepID)}
	default:
		return Result{}
	}
}
