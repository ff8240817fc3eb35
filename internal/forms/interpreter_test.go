package forms

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachdesk/onboard/internal/models"
	"github.com/coachdesk/onboard/internal/schema"
)

type memorySaver struct {
	saved []models.FormSubmission
	err   error
}

func (m *memorySaver) Save(sub *models.FormSubmission) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, *sub)
	return nil
}

func draftSubmission() *models.FormSubmission {
	return &models.FormSubmission{
		ID:     "sub-1",
		Status: models.StatusDraft,
	}
}

func TestInterpreterDraftOpensEditing(t *testing.T) {
	def := gateDefinition(schema.ApplicantConfigSingle)
	it, err := NewInterpreter(def, draftSubmission(), &memorySaver{})
	require.NoError(t, err)

	assert.Equal(t, ModeEditing, it.Mode())
	assert.True(t, it.CanEdit())
}

func TestInterpreterSubmittedIsReadOnly(t *testing.T) {
	def := gateDefinition(schema.ApplicantConfigSingle)
	sub := draftSubmission()
	sub.Status = models.StatusSubmitted

	it, err := NewInterpreter(def, sub, &memorySaver{})
	require.NoError(t, err)

	assert.Equal(t, ModeViewing, it.Mode())
	assert.Error(t, it.Edit())
	assert.Error(t, it.SetValue(schema.ApplicantSingle, "contact", "full_name", "Ada"))
	assert.Error(t, it.SaveDraft())
	_, err = it.Submit()
	assert.Error(t, err)
}

func TestInterpreterSetValueUnknownSection(t *testing.T) {
	def := gateDefinition(schema.ApplicantConfigSingle)
	it, err := NewInterpreter(def, draftSubmission(), &memorySaver{})
	require.NoError(t, err)

	assert.Error(t, it.SetValue(schema.ApplicantSingle, "no-such-section", "x", 1))
	assert.Error(t, it.SetValue(schema.ApplicantTwo, "contact", "full_name", "Ada"))
}

func TestInterpreterCoercesNumberFields(t *testing.T) {
	def := gateDefinition(schema.ApplicantConfigSingle)
	def.Sections[0].Fields = append(def.Sections[0].Fields,
		schema.FormField{ID: "c-age", Name: "age", Type: schema.FieldNumber, Label: "Age"})

	it, err := NewInterpreter(def, draftSubmission(), &memorySaver{})
	require.NoError(t, err)

	require.NoError(t, it.SetValue(schema.ApplicantSingle, "contact", "age", "42"))
	assert.Equal(t, float64(42), it.Data().Answers(schema.ApplicantSingle).Value("contact", "age"))

	require.NoError(t, it.SetValue(schema.ApplicantSingle, "contact", "age", "garbage"))
	assert.Equal(t, float64(0), it.Data().Answers(schema.ApplicantSingle).Value("contact", "age"))
}

func TestInterpreterSaveDraftKeepsStatus(t *testing.T) {
	def := gateDefinition(schema.ApplicantConfigSingle)
	saver := &memorySaver{}
	it, err := NewInterpreter(def, draftSubmission(), saver)
	require.NoError(t, err)

	require.NoError(t, it.SetValue(schema.ApplicantSingle, "contact", "full_name", "Ada"))
	require.NoError(t, it.SaveDraft())

	require.Len(t, saver.saved, 1)
	assert.Equal(t, models.StatusDraft, saver.saved[0].Status)
	assert.Equal(t, ModeEditing, it.Mode())
}

func TestInterpreterSubmitIncompleteReturnsViolations(t *testing.T) {
	def := gateDefinition(schema.ApplicantConfigSingle)
	saver := &memorySaver{}
	it, err := NewInterpreter(def, draftSubmission(), saver)
	require.NoError(t, err)

	violations, err := it.Submit()
	require.NoError(t, err)
	assert.NotEmpty(t, violations)

	// Nothing persisted, still editable.
	assert.Empty(t, saver.saved)
	assert.Equal(t, ModeEditing, it.Mode())
	assert.Equal(t, models.StatusDraft, it.Submission().Status)
}

func TestInterpreterSubmitComplete(t *testing.T) {
	def := gateDefinition(schema.ApplicantConfigSingle)
	saver := &memorySaver{}
	it, err := NewInterpreter(def, draftSubmission(), saver)
	require.NoError(t, err)

	require.NoError(t, it.SetValue(schema.ApplicantSingle, "contact", "full_name", "Ada"))
	require.NoError(t, it.GrantConsent("privacy", true))

	violations, err := it.Submit()
	require.NoError(t, err)
	assert.Empty(t, violations)

	require.Len(t, saver.saved, 1)
	assert.Equal(t, models.StatusSubmitted, saver.saved[0].Status)
	assert.NotNil(t, it.Submission().SubmittedAt)
	assert.Equal(t, ModeViewing, it.Mode())
}

func TestInterpreterSubmitSaveFailureRollsBack(t *testing.T) {
	def := gateDefinition(schema.ApplicantConfigSingle)
	saver := &memorySaver{err: errors.New("connection lost")}
	it, err := NewInterpreter(def, draftSubmission(), saver)
	require.NoError(t, err)

	require.NoError(t, it.SetValue(schema.ApplicantSingle, "contact", "full_name", "Ada"))
	require.NoError(t, it.GrantConsent("privacy", true))

	_, err = it.Submit()
	require.Error(t, err)

	assert.Equal(t, models.StatusDraft, it.Submission().Status)
	assert.Nil(t, it.Submission().SubmittedAt)
	assert.Equal(t, ModeEditing, it.Mode())

	// The failure is transient from the interpreter's point of view.
	saver.err = nil
	violations, err := it.Submit()
	require.NoError(t, err)
	assert.Empty(t, violations)
	assert.Equal(t, models.StatusSubmitted, it.Submission().Status)
}

func TestInterpreterRejectsMalformedStoredData(t *testing.T) {
	def := gateDefinition(schema.ApplicantConfigSingle)
	sub := draftSubmission()
	sub.FormData = models.NewJSON([]byte(`not json`))

	_, err := NewInterpreter(def, sub, &memorySaver{})
	assert.Error(t, err)
}
