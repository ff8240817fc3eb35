package forms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachdesk/onboard/internal/schema"
)

type fakeRecordSource struct {
	records map[schema.PrefillSource]map[string]interface{}
	lists   map[schema.PrefillSource][]map[string]interface{}
	failOn  map[schema.PrefillSource]error
	panicOn schema.PrefillSource
}

func (f *fakeRecordSource) Lookup(_ context.Context, _ string, source schema.PrefillSource) (map[string]interface{}, error) {
	if source == f.panicOn {
		panic("record source blew up")
	}
	if err, ok := f.failOn[source]; ok {
		return nil, err
	}
	return f.records[source], nil
}

func (f *fakeRecordSource) LookupList(_ context.Context, _ string, source schema.PrefillSource) ([]map[string]interface{}, error) {
	return f.lists[source], nil
}

func prefillDefinition(cfg schema.ApplicantConfig) *schema.Definition {
	return &schema.Definition{
		ConfigID:        "prefill-test",
		ApplicantConfig: cfg,
		Sections: []schema.Section{
			{ID: "personal", Title: "Personal Information", Description: "About you"},
			{ID: "income", Title: "Income", Description: "Your income"},
			{ID: "goals", Title: "Coaching Goals", Description: "What you want"},
		},
	}
}

func TestPrefillCopiesRecordsIntoSections(t *testing.T) {
	src := &fakeRecordSource{records: map[schema.PrefillSource]map[string]interface{}{
		schema.PrefillPersonal: {"first_name": "Ada", "last_name": "Lovelace"},
		schema.PrefillIncome:   {"gross_income": float64(5200)},
	}}

	fd := Prefill(context.Background(), prefillDefinition(schema.ApplicantConfigSingle), "u1", src)

	answers := fd.Answers(schema.ApplicantSingle)
	assert.Equal(t, "Ada", answers.Value("personal", "first_name"))
	assert.Equal(t, float64(5200), answers.Value("income", "gross_income"))
	// No record category matches the goals section.
	assert.Empty(t, answers["goals"])
}

func TestPrefillExplicitSourceWinsOverTitle(t *testing.T) {
	def := prefillDefinition(schema.ApplicantConfigSingle)
	def.Sections[2].PrefillSource = schema.PrefillAssets

	src := &fakeRecordSource{records: map[schema.PrefillSource]map[string]interface{}{
		schema.PrefillAssets: {"cash": float64(1000)},
	}}

	fd := Prefill(context.Background(), def, "u1", src)
	assert.Equal(t, float64(1000), fd.Answers(schema.ApplicantSingle).Value("goals", "cash"))
}

func TestPrefillJointTargetsPrimaryApplicant(t *testing.T) {
	src := &fakeRecordSource{records: map[schema.PrefillSource]map[string]interface{}{
		schema.PrefillPersonal: {"first_name": "Ada"},
	}}

	fd := Prefill(context.Background(), prefillDefinition(schema.ApplicantConfigJoint), "u1", src)

	assert.Equal(t, "Ada", fd.Answers(schema.ApplicantOne).Value("personal", "first_name"))
	assert.Empty(t, fd.Answers(schema.ApplicantTwo))
}

func TestPrefillFallsBackToListLookup(t *testing.T) {
	src := &fakeRecordSource{
		failOn: map[schema.PrefillSource]error{schema.PrefillIncome: errors.New("no single record")},
		lists: map[schema.PrefillSource][]map[string]interface{}{
			schema.PrefillIncome: {
				{"gross_income": float64(4000)},
				{"gross_income": float64(100)},
			},
		},
	}

	fd := Prefill(context.Background(), prefillDefinition(schema.ApplicantConfigSingle), "u1", src)
	assert.Equal(t, float64(4000), fd.Answers(schema.ApplicantSingle).Value("income", "gross_income"))
}

func TestPrefillSectionFailureIsIsolated(t *testing.T) {
	src := &fakeRecordSource{
		failOn: map[schema.PrefillSource]error{schema.PrefillPersonal: errors.New("table missing")},
		records: map[schema.PrefillSource]map[string]interface{}{
			schema.PrefillIncome: {"gross_income": float64(5200)},
		},
	}

	fd := Prefill(context.Background(), prefillDefinition(schema.ApplicantConfigSingle), "u1", src)

	answers := fd.Answers(schema.ApplicantSingle)
	assert.Empty(t, answers["personal"])
	assert.Equal(t, float64(5200), answers.Value("income", "gross_income"))
}

func TestPrefillSurvivesPanickingSource(t *testing.T) {
	src := &fakeRecordSource{
		panicOn: schema.PrefillPersonal,
		records: map[schema.PrefillSource]map[string]interface{}{
			schema.PrefillIncome: {"gross_income": float64(5200)},
		},
	}

	var fd *FormData
	require.NotPanics(t, func() {
		fd = Prefill(context.Background(), prefillDefinition(schema.ApplicantConfigSingle), "u1", src)
	})
	assert.Equal(t, float64(5200), fd.Answers(schema.ApplicantSingle).Value("income", "gross_income"))
}

func TestPrefillNilSourceYieldsEmptyData(t *testing.T) {
	fd := Prefill(context.Background(), prefillDefinition(schema.ApplicantConfigSingle), "u1", nil)
	assert.Empty(t, fd.Answers(schema.ApplicantSingle))
}
