package forms

import (
	"fmt"
	"time"

	"github.com/coachdesk/onboard/internal/models"
	"github.com/coachdesk/onboard/internal/schema"
)

// Mode is the interpreter's client-facing edit state.
type Mode string

const (
	ModeViewing Mode = "viewing"
	ModeEditing Mode = "editing"
)

// Saver persists submission state transitions.
type Saver interface {
	Save(sub *models.FormSubmission) error
}

// Interpreter drives one submission through its edit/view state machine
// against a form definition. Fields are mutable only while editing; a
// submission past draft can only be viewed by the client.
type Interpreter struct {
	def   *schema.Definition
	sub   *models.FormSubmission
	data  *FormData
	mode  Mode
	saver Saver
}

// NewInterpreter loads a submission into the interpreter. Draft submissions
// open in editing mode, everything else is read-only.
func NewInterpreter(def *schema.Definition, sub *models.FormSubmission, saver Saver) (*Interpreter, error) {
	data, err := ParseFormData(def.ApplicantConfig, sub.FormData.Bytes())
	if err != nil {
		return nil, fmt.Errorf("invalid form data: %w", err)
	}

	mode := ModeViewing
	if sub.Status.ClientEditable() {
		mode = ModeEditing
	}

	return &Interpreter{def: def, sub: sub, data: data, mode: mode, saver: saver}, nil
}

// Mode returns the current edit state.
func (i *Interpreter) Mode() Mode {
	return i.mode
}

// CanEdit reports whether the submission may (re-)enter editing.
func (i *Interpreter) CanEdit() bool {
	return i.sub.Status.ClientEditable()
}

// Edit transitions from viewing to editing. Only draft submissions may be
// edited; submitted and reviewed states are terminal for the client.
func (i *Interpreter) Edit() error {
	if !i.CanEdit() {
		return fmt.Errorf("submission is %s and can no longer be edited", i.sub.Status)
	}
	i.mode = ModeEditing
	return nil
}

// SetValue records a field value for an applicant slice. Numeric fields are
// coerced permissively: malformed input becomes zero, never an error.
func (i *Interpreter) SetValue(at schema.ApplicantType, sectionID, fieldName string, value interface{}) error {
	if i.mode != ModeEditing {
		return fmt.Errorf("submission is read-only")
	}
	if !i.def.ApplicantConfig.Valid(at) {
		return fmt.Errorf("applicant %q not collected by this configuration", at)
	}

	sec := i.def.Section(sectionID)
	if sec == nil {
		return fmt.Errorf("unknown section %q", sectionID)
	}

	if field := effectiveField(sec, fieldName); field != nil && field.Type == schema.FieldNumber {
		value = schema.CoerceNumber(value)
	}

	i.data.Answers(at).Set(sectionID, fieldName, value)
	return nil
}

// GrantConsent records agreement for one consent form.
func (i *Interpreter) GrantConsent(consentFormID string, agreed bool) error {
	if i.mode != ModeEditing {
		return fmt.Errorf("submission is read-only")
	}
	i.data.Grant(consentFormID, agreed)
	return nil
}

// SaveDraft persists the current answers without leaving draft. The
// interpreter remains in editing mode.
func (i *Interpreter) SaveDraft() error {
	if i.mode != ModeEditing {
		return fmt.Errorf("submission is read-only")
	}
	return i.persist()
}

// Submit runs the completion gate and, on success, persists the submission
// with status submitted and transitions to viewing. On validation failure the
// violations are returned, the interpreter stays in editing mode, and nothing
// is persisted.
func (i *Interpreter) Submit() ([]string, error) {
	if i.mode != ModeEditing {
		return nil, fmt.Errorf("submission is read-only")
	}

	if violations := ValidateSubmission(i.def, i.data); len(violations) > 0 {
		return violations, nil
	}

	now := time.Now().UTC()
	i.sub.Status = models.StatusSubmitted
	i.sub.SubmittedAt = &now
	if err := i.persist(); err != nil {
		// Roll the in-memory transition back so the caller can retry.
		i.sub.Status = models.StatusDraft
		i.sub.SubmittedAt = nil
		return nil, err
	}

	i.mode = ModeViewing
	return nil, nil
}

// Submission returns the underlying submission record.
func (i *Interpreter) Submission() *models.FormSubmission {
	return i.sub
}

// Data returns the decoded answer data.
func (i *Interpreter) Data() *FormData {
	return i.data
}

func (i *Interpreter) persist() error {
	encoded, err := i.data.Encode()
	if err != nil {
		return err
	}
	i.sub.FormData = models.NewJSON(encoded)
	if i.saver == nil {
		return nil
	}
	return i.saver.Save(i.sub)
}

// effectiveField resolves a field by name against the section's rendered
// layout: known-category layouts win over the generic field list.
func effectiveField(sec *schema.Section, name string) *schema.FormField {
	fields := sec.EffectiveFields()
	for j := range fields {
		if fields[j].Name == name {
			return &fields[j]
		}
	}
	return nil
}
