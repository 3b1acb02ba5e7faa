package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-prototype-builder/internal/model"
)

// cardStep builds a session holding one step with one simple_cards
// element and returns the session plus the two ids.
func cardStep(t *testing.T) (*Session, string, string) {
	t.Helper()
	s := newTestSession()
	stepID := s.AddStep()
	elID, ok := s.AddElement(stepID, model.TypeSimpleCards)
	require.True(t, ok)
	return s, stepID, elID
}

func optionsOf(t *testing.T, s *Session, stepID, elID string) []model.Option {
	t.Helper()
	return findElementIn(t, s, stepID, elID).Config.Options
}

func TestAddOption_NumbersTitles(t *testing.T) {
	s, stepID, elID := cardStep(t)

	id, ok := s.AddOption(stepID, elID)
	require.True(t, ok)
	require.NotEmpty(t, id)

	opts := optionsOf(t, s, stepID, elID)
	require.Len(t, opts, 3)
	assert.Equal(t, "Card 3", opts[2].Title)
	assert.Equal(t, id, opts[2].ID)
}

func TestAddOption_NoOptionListTypes(t *testing.T) {
	s := newTestSession()
	stepID := s.AddStep()
	elID, _ := s.AddElement(stepID, model.TypeTextField)

	_, ok := s.AddOption(stepID, elID)
	assert.False(t, ok, "text fields have no option list")

	_, ok = s.AddOption(stepID, "missing")
	assert.False(t, ok)
}

func TestDeleteOption_Reclamps(t *testing.T) {
	s, stepID, elID := cardStep(t)

	// Grow to 4 options, raise the limit to 4, then shrink back down.
	s.AddOption(stepID, elID)
	s.AddOption(stepID, elID)
	require.True(t, s.SetMaxSelection(stepID, elID, 4))

	opts := optionsOf(t, s, stepID, elID)
	require.True(t, s.DeleteOption(stepID, elID, opts[3].ID))
	assert.Equal(t, 3, findElementIn(t, s, stepID, elID).Config.MaxSelection)

	opts = optionsOf(t, s, stepID, elID)
	require.True(t, s.DeleteOption(stepID, elID, opts[2].ID))
	assert.Equal(t, 2, findElementIn(t, s, stepID, elID).Config.MaxSelection)

	// Missing option id is a no-op.
	assert.False(t, s.DeleteOption(stepID, elID, "missing"))
}

func TestReorderOption_PermutesWithoutLoss(t *testing.T) {
	s, stepID, elID := cardStep(t)
	s.AddOption(stepID, elID)

	before := optionsOf(t, s, stepID, elID)
	require.Len(t, before, 3)
	a, b, c := before[0].ID, before[1].ID, before[2].ID

	require.True(t, s.ReorderOption(stepID, elID, c, a))
	after := optionsOf(t, s, stepID, elID)
	assert.Equal(t, []string{c, a, b}, []string{after[0].ID, after[1].ID, after[2].ID})

	// Same multiset of ids, only the order changed.
	assert.ElementsMatch(t,
		[]string{a, b, c},
		[]string{after[0].ID, after[1].ID, after[2].ID})

	// No-ops.
	assert.False(t, s.ReorderOption(stepID, elID, a, a))
	assert.False(t, s.ReorderOption(stepID, elID, "missing", a))
}

func TestUpdateOptionField(t *testing.T) {
	s, stepID, elID := cardStep(t)
	opts := optionsOf(t, s, stepID, elID)
	target, sibling := opts[0], opts[1]

	require.True(t, s.UpdateOptionField(stepID, elID, target.ID, "title", "Renamed card"))

	after := optionsOf(t, s, stepID, elID)
	assert.Equal(t, "Renamed card", after[0].Title)
	// The sibling option is untouched.
	assert.Equal(t, sibling, after[1])

	// Unknown field names and missing ids are no-ops.
	assert.False(t, s.UpdateOptionField(stepID, elID, target.ID, "bogusField", "x"))
	assert.False(t, s.UpdateOptionField(stepID, elID, "missing", "title", "x"))
}

func TestUpdateOptionField_JobFields(t *testing.T) {
	s := newTestSession()
	stepID := s.AddApplicationStep()
	step := findStepIn(t, s, stepID)
	elID := step.Elements[0].ID

	optID, ok := s.AddOption(stepID, elID)
	require.True(t, ok)

	require.True(t, s.UpdateOptionField(stepID, elID, optID, "jobTitle", "Backend Engineer"))
	require.True(t, s.UpdateOptionField(stepID, elID, optID, "company", "Acme"))
	require.True(t, s.UpdateOptionField(stepID, elID, optID, "employmentType", "part_time"))

	opt := optionsOf(t, s, stepID, elID)[0]
	assert.Equal(t, "Backend Engineer", opt.JobTitle)
	assert.Equal(t, "Acme", opt.Company)
	assert.Equal(t, "part_time", opt.EmploymentType)
}

func TestBulkAddFromUploads_FillsCurrentSlotFirst(t *testing.T) {
	s := newTestSession()
	stepID := s.AddStep()
	elID, _ := s.AddElement(stepID, model.TypeImageCards)

	// Both default image cards start without an image.
	opts := optionsOf(t, s, stepID, elID)
	require.Len(t, opts, 2)
	current := opts[0]
	require.Empty(t, current.ImageURL)

	uploads := []Upload{
		{Name: "one.png", Size: 10, DataURL: "data:image/png;base64,AAA"},
		{Name: "two.png", Size: 20, DataURL: "data:image/png;base64,BBB"},
		{Name: "three.png", Size: 30, DataURL: "data:image/png;base64,CCC"},
	}
	require.True(t, s.BulkAddFromUploads(stepID, elID, uploads, current.ID))

	after := optionsOf(t, s, stepID, elID)
	// First upload filled the current option; the other two became new
	// options, in upload order.
	require.Len(t, after, 4)
	assert.Equal(t, current.ID, after[0].ID)
	assert.Equal(t, "data:image/png;base64,AAA", after[0].ImageURL)
	assert.Equal(t, "upload", after[0].ImageUploadMode)
	assert.Equal(t, "data:image/png;base64,BBB", after[2].ImageURL)
	assert.Equal(t, "data:image/png;base64,CCC", after[3].ImageURL)
}

func TestBulkAddFromUploads_OccupiedSlotAddsAll(t *testing.T) {
	s := newTestSession()
	stepID := s.AddStep()
	elID, _ := s.AddElement(stepID, model.TypeImageCards)

	opts := optionsOf(t, s, stepID, elID)
	current := opts[0]
	require.True(t, s.UpdateOptionField(stepID, elID, current.ID, "imageUrl", "https://example.com/keep.png"))

	uploads := []Upload{
		{Name: "one.png", DataURL: "data:a"},
		{Name: "two.png", DataURL: "data:b"},
	}
	require.True(t, s.BulkAddFromUploads(stepID, elID, uploads, current.ID))

	after := optionsOf(t, s, stepID, elID)
	require.Len(t, after, 4)
	// The occupied slot keeps its image; both uploads became new options.
	assert.Equal(t, "https://example.com/keep.png", after[0].ImageURL)
	assert.Equal(t, "data:a", after[2].ImageURL)
	assert.Equal(t, "data:b", after[3].ImageURL)
}

func TestBulkAddFromUploads_Rejections(t *testing.T) {
	s := newTestSession()
	stepID := s.AddStep()
	textEl, _ := s.AddElement(stepID, model.TypeTextField)

	assert.False(t, s.BulkAddFromUploads(stepID, textEl, []Upload{{DataURL: "data:x"}}, ""))
	assert.False(t, s.BulkAddFromUploads(stepID, "missing", []Upload{{DataURL: "data:x"}}, ""))
	assert.False(t, s.BulkAddFromUploads(stepID, textEl, nil, ""))
}
