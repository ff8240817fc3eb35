package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDefinition() *Definition {
	return &Definition{
		Name:            "Intake",
		FormType:        FormTypeSingleApplicant,
		Version:         "1.0.0",
		ApplicantConfig: ApplicantConfigSingle,
		Sections: []Section{
			{
				ID:          "contact",
				Title:       "Contact",
				Description: "Contact details",
				Fields: []FormField{
					{ID: "f1", Name: "email", Type: FieldEmail, Label: "Email", Required: true},
				},
			},
		},
	}
}

func TestValidateConfigurationValid(t *testing.T) {
	assert.Empty(t, ValidateConfiguration(validDefinition()))
}

func TestValidateConfigurationCollectsAllViolations(t *testing.T) {
	def := &Definition{
		ApplicantConfig: "trio",
		ConsentForms:    []ConsentForm{{ID: "c1"}},
		Documents:       []DocumentRequirement{{ID: "d1"}},
	}

	errs := ValidateConfiguration(def)

	assert.Contains(t, errs, "configuration name is required")
	assert.Contains(t, errs, "form type is required")
	assert.Contains(t, errs, "version is required")
	assert.Contains(t, errs, "at least one section is required")
	assert.Contains(t, errs, "consent form 1: title is required")
	assert.Contains(t, errs, "consent form 1: content is required")
	assert.Contains(t, errs, "document 1: name is required")
	assert.Contains(t, errs, "document 1: at least one accepted file type is required")
	assert.GreaterOrEqual(t, len(errs), 8)
}

func TestValidateConfigurationIdempotent(t *testing.T) {
	def := validDefinition()
	def.Name = ""

	first := ValidateConfiguration(def)
	second := ValidateConfiguration(def)

	assert.Equal(t, first, second)
}

func TestValidateConfigurationDuplicateFieldNames(t *testing.T) {
	def := validDefinition()
	def.Sections[0].Fields = append(def.Sections[0].Fields,
		FormField{ID: "f2", Name: "email", Type: FieldText})

	errs := ValidateConfiguration(def)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], `duplicate field name "email"`)
}

func TestValidateFieldValueRequired(t *testing.T) {
	field := &FormField{Name: "email", Type: FieldEmail, Label: "Email", Required: true}

	assert.Error(t, ValidateFieldValue(field, nil))
	assert.Error(t, ValidateFieldValue(field, ""))
	assert.Error(t, ValidateFieldValue(field, "   "))
	assert.NoError(t, ValidateFieldValue(field, "ada@example.com"))
}

func TestValidateFieldValueRequiredCheckbox(t *testing.T) {
	box := &FormField{Name: "accept", Type: FieldCheckbox, Required: true}

	assert.Error(t, ValidateFieldValue(box, false))
	assert.NoError(t, ValidateFieldValue(box, true))
}

func TestValidateFieldValueNumberZeroIsPresent(t *testing.T) {
	num := &FormField{Name: "children", Type: FieldNumber, Required: true}

	assert.NoError(t, ValidateFieldValue(num, 0))
	assert.NoError(t, ValidateFieldValue(num, float64(0)))
}

func TestValidateFieldValueRange(t *testing.T) {
	min, max := 1.0, 6.0
	field := &FormField{
		Name: "tax_class", Type: FieldNumber,
		Validation: &FieldValidation{Min: &min, Max: &max},
	}

	assert.NoError(t, ValidateFieldValue(field, 3))
	assert.Error(t, ValidateFieldValue(field, 0))
	assert.Error(t, ValidateFieldValue(field, 7))
}

func TestValidateFieldValuePatternIsAnchored(t *testing.T) {
	field := &FormField{
		Name: "postal_code", Type: FieldText,
		Validation: &FieldValidation{Pattern: `\d{5}`},
	}

	assert.NoError(t, ValidateFieldValue(field, "10115"))
	assert.Error(t, ValidateFieldValue(field, "x10115y"))
}

func TestCoerceNumber(t *testing.T) {
	assert.Equal(t, 42.5, CoerceNumber(42.5))
	assert.Equal(t, 42.0, CoerceNumber(42))
	assert.Equal(t, 42.0, CoerceNumber(" 42 "))
	assert.Equal(t, 1.0, CoerceNumber(true))
	assert.Equal(t, 0.0, CoerceNumber("not a number"))
	assert.Equal(t, 0.0, CoerceNumber(nil))
	assert.Equal(t, 0.0, CoerceNumber([]string{"1"}))
}
