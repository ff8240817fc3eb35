package forms

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachdesk/onboard/internal/schema"
)

func TestParseFormDataSingle(t *testing.T) {
	raw := []byte(`{
		"contact": {"full_name": "Ada Lovelace", "email": "ada@example.com"},
		"__consents": {"privacy": true}
	}`)

	fd, err := ParseFormData(schema.ApplicantConfigSingle, raw)
	require.NoError(t, err)

	answers := fd.Answers(schema.ApplicantSingle)
	assert.Equal(t, "Ada Lovelace", answers.Value("contact", "full_name"))
	assert.Equal(t, "ada@example.com", answers.Value("contact", "email"))
	assert.True(t, fd.Consents().Granted("privacy"))
	assert.False(t, fd.Consents().Granted("newsletter"))
}

func TestParseFormDataJoint(t *testing.T) {
	raw := []byte(`{
		"applicant1": {"contact": {"full_name": "Ada"}},
		"applicant2": {"contact": {"full_name": "Charles"}}
	}`)

	fd, err := ParseFormData(schema.ApplicantConfigJoint, raw)
	require.NoError(t, err)

	assert.Equal(t, "Ada", fd.Answers(schema.ApplicantOne).Value("contact", "full_name"))
	assert.Equal(t, "Charles", fd.Answers(schema.ApplicantTwo).Value("contact", "full_name"))
}

func TestParseFormDataLegacyConsentBool(t *testing.T) {
	raw := []byte(`{"contact": {"full_name": "Ada"}, "consent_agreed": true}`)

	fd, err := ParseFormData(schema.ApplicantConfigSingle, raw)
	require.NoError(t, err)

	assert.True(t, fd.Consents().Granted("privacy"))
	assert.True(t, fd.Consents().Granted("data-sharing"))
	// The legacy flag is metadata, not a section.
	assert.Nil(t, fd.Answers(schema.ApplicantSingle).Value("consent_agreed", "value"))
}

func TestParseFormDataEmpty(t *testing.T) {
	fd, err := ParseFormData(schema.ApplicantConfigSingle, nil)
	require.NoError(t, err)
	assert.Empty(t, fd.Answers(schema.ApplicantSingle))
}

func TestParseFormDataMalformed(t *testing.T) {
	_, err := ParseFormData(schema.ApplicantConfigSingle, []byte(`[1,2,3]`))
	assert.Error(t, err)
}

func TestEncodeRoundTripSingle(t *testing.T) {
	fd := NewFormData(schema.ApplicantConfigSingle)
	fd.Answers(schema.ApplicantSingle).Set("contact", "full_name", "Ada")
	fd.Grant("privacy", true)

	raw, err := fd.Encode()
	require.NoError(t, err)

	back, err := ParseFormData(schema.ApplicantConfigSingle, raw)
	require.NoError(t, err)
	assert.Equal(t, "Ada", back.Answers(schema.ApplicantSingle).Value("contact", "full_name"))
	assert.True(t, back.Consents().Granted("privacy"))
}

func TestEncodeJointShape(t *testing.T) {
	fd := NewFormData(schema.ApplicantConfigJoint)
	fd.Answers(schema.ApplicantOne).Set("income", "gross_income", float64(5200))

	raw, err := fd.Encode()
	require.NoError(t, err)

	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Contains(t, envelope, "applicant1")
	assert.Contains(t, envelope, "applicant2")
	assert.Contains(t, envelope, "__consents")
}
