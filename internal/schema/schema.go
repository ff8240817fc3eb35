package schema

// FormType identifies the business category of a form configuration.
type FormType string

const (
	FormTypePersonalDetails  FormType = "personal-details"
	FormTypeFamilyDetails    FormType = "family-details"
	FormTypeEmployment       FormType = "employment"
	FormTypeIncome           FormType = "income"
	FormTypeExpenses         FormType = "expenses"
	FormTypeAssets           FormType = "assets"
	FormTypeLiabilities      FormType = "liabilities"
	FormTypeFinancialProfile FormType = "financial-profile"
	FormTypeRiskAssessment   FormType = "risk-assessment"
	FormTypeGoalSetting      FormType = "goal-setting"
	FormTypeSingleApplicant  FormType = "single-applicant"
	FormTypeDualApplicant    FormType = "dual-applicant"
)

// ApplicantConfig determines whether a submission collects one answer set or two.
type ApplicantConfig string

const (
	ApplicantConfigSingle ApplicantConfig = "single"
	ApplicantConfigJoint  ApplicantConfig = "joint"
)

// ApplicantType identifies one answer-set slice within a submission.
type ApplicantType string

const (
	ApplicantSingle ApplicantType = "single"
	ApplicantOne    ApplicantType = "applicant1"
	ApplicantTwo    ApplicantType = "applicant2"
)

// ApplicantTypes returns the answer-set slices a configuration collects.
func (a ApplicantConfig) ApplicantTypes() []ApplicantType {
	if a == ApplicantConfigJoint {
		return []ApplicantType{ApplicantOne, ApplicantTwo}
	}
	return []ApplicantType{ApplicantSingle}
}

// Valid reports whether the applicant type belongs to this configuration.
func (a ApplicantConfig) Valid(at ApplicantType) bool {
	for _, t := range a.ApplicantTypes() {
		if t == at {
			return true
		}
	}
	return false
}

// FieldType is the input type of a form field. File uploads are never a field
// type; they are declared through DocumentRequirement only.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldTel      FieldType = "tel"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldSelect   FieldType = "select"
	FieldCheckbox FieldType = "checkbox"
	FieldTextarea FieldType = "textarea"
)

// PrefillSource names a client domain record category a section prefills from.
type PrefillSource string

const (
	PrefillNone        PrefillSource = ""
	PrefillPersonal    PrefillSource = "personal"
	PrefillFamily      PrefillSource = "family"
	PrefillEmployment  PrefillSource = "employment"
	PrefillIncome      PrefillSource = "income"
	PrefillExpenses    PrefillSource = "expenses"
	PrefillAssets      PrefillSource = "assets"
	PrefillLiabilities PrefillSource = "liabilities"
)

// FieldValidation holds the declared constraints of a field.
type FieldValidation struct {
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
}

// FormField is one input within a section. Values are keyed by Name inside the
// section's slice of submission data.
type FormField struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Type        FieldType        `json:"type"`
	Label       string           `json:"label"`
	Required    bool             `json:"required"`
	Placeholder string           `json:"placeholder,omitempty"`
	Options     []string         `json:"options,omitempty"`
	Validation  *FieldValidation `json:"validation,omitempty"`
}

// Section is an ordered group of fields. Order determines render sequence.
type Section struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Order       int           `json:"order"`
	Fields      []FormField   `json:"fields"`
	Required    bool          `json:"required"`
	Collapsible bool          `json:"collapsible"`
	// PrefillSource replaces the legacy title-keyword dispatch. Empty means
	// derive from the title for configurations authored before the field
	// existed (see EffectivePrefillSource).
	PrefillSource PrefillSource `json:"prefill_source,omitempty"`
}

// ConsentForm is an independently enabled/required consent declaration.
type ConsentForm struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	Enabled      bool   `json:"enabled"`
	Required     bool   `json:"required"`
	CheckboxText string `json:"checkboxText"`
}

// DocumentRequirement is a schema-declared need for an uploaded file,
// independent of regular fields.
type DocumentRequirement struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	MaxSizeMB     int64    `json:"maxSize"`
	Required      bool     `json:"required"`
	AcceptedTypes []string `json:"acceptedTypes"`
}

// Definition is the full authored form schema, decoded from storage.
type Definition struct {
	ConfigID        string                `json:"config_id"`
	Name            string                `json:"name"`
	FormType        FormType              `json:"form_type"`
	Version         string                `json:"version"`
	Description     string                `json:"description"`
	ApplicantConfig ApplicantConfig       `json:"applicantconfig"`
	Sections        []Section             `json:"sections"`
	ConsentForms    []ConsentForm         `json:"consent_forms"`
	Documents       []DocumentRequirement `json:"documents"`
}

// Section returns the section with the given id, or nil.
func (d *Definition) Section(id string) *Section {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return &d.Sections[i]
		}
	}
	return nil
}

// Document returns the document requirement with the given id, or nil.
func (d *Definition) Document(id string) *DocumentRequirement {
	for i := range d.Documents {
		if d.Documents[i].ID == id {
			return &d.Documents[i]
		}
	}
	return nil
}

// RequiredConsents returns the consent forms that gate submission.
func (d *Definition) RequiredConsents() []ConsentForm {
	var out []ConsentForm
	for _, cf := range d.ConsentForms {
		if cf.Enabled && cf.Required {
			out = append(out, cf)
		}
	}
	return out
}

// Field returns the field with the given name within the section, or nil.
func (s *Section) Field(name string) *FormField {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}
