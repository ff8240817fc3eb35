// Package forms implements the dynamic form interpreter: the engine that
// takes a form definition and a submission's answer data and drives the
// draft/submit lifecycle, validation gate, and prefill.
package forms

import (
	"encoding/json"

	"github.com/coachdesk/onboard/internal/schema"
)

// consentsKey is the metadata key carrying consent grants inside form_data.
const consentsKey = "__consents"

// AnswerSet maps section id to field name to value for one applicant.
type AnswerSet map[string]map[string]interface{}

// Value returns a field value, or nil when absent.
func (a AnswerSet) Value(sectionID, field string) interface{} {
	sec, ok := a[sectionID]
	if !ok {
		return nil
	}
	return sec[field]
}

// Set stores a field value, creating the section slice on demand.
func (a AnswerSet) Set(sectionID, field string, value interface{}) {
	sec, ok := a[sectionID]
	if !ok {
		sec = make(map[string]interface{})
		a[sectionID] = sec
	}
	sec[field] = value
}

// FormData is a submission's decoded answer data: one answer set per
// applicant slice plus consent grants. The stored JSON shape is the answer
// set itself for single configurations, or {"applicant1": ..., "applicant2":
// ...} for joint ones; consents travel under the __consents metadata key
// (legacy data used a top-level consent_agreed boolean, still accepted).
type FormData struct {
	applicantConfig schema.ApplicantConfig
	answers         map[schema.ApplicantType]AnswerSet
	consents        schema.ConsentGrants
}

// NewFormData returns empty form data for a configuration.
func NewFormData(cfg schema.ApplicantConfig) *FormData {
	answers := make(map[schema.ApplicantType]AnswerSet)
	for _, at := range cfg.ApplicantTypes() {
		answers[at] = make(AnswerSet)
	}
	return &FormData{applicantConfig: cfg, answers: answers}
}

// ParseFormData decodes stored form_data JSON.
func ParseFormData(cfg schema.ApplicantConfig, raw []byte) (*FormData, error) {
	fd := NewFormData(cfg)
	if len(raw) == 0 {
		return fd, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}

	if consents, ok := envelope[consentsKey]; ok {
		if err := json.Unmarshal(consents, &fd.consents); err != nil {
			return nil, err
		}
		delete(envelope, consentsKey)
	}
	if legacy, ok := envelope["consent_agreed"]; ok {
		var agreed bool
		if err := json.Unmarshal(legacy, &agreed); err == nil {
			fd.consents.GrantAll(agreed)
		}
		delete(envelope, "consent_agreed")
	}

	if cfg == schema.ApplicantConfigJoint {
		for _, at := range cfg.ApplicantTypes() {
			if slice, ok := envelope[string(at)]; ok {
				var answers AnswerSet
				if err := json.Unmarshal(slice, &answers); err != nil {
					return nil, err
				}
				fd.answers[at] = answers
			}
		}
		return fd, nil
	}

	sections := make(AnswerSet)
	for key, rawSection := range envelope {
		var fields map[string]interface{}
		if err := json.Unmarshal(rawSection, &fields); err != nil {
			return nil, err
		}
		sections[key] = fields
	}
	fd.answers[schema.ApplicantSingle] = sections
	return fd, nil
}

// Encode serializes the form data back to its stored JSON shape.
func (f *FormData) Encode() ([]byte, error) {
	out := make(map[string]interface{})

	if f.applicantConfig == schema.ApplicantConfigJoint {
		for at, answers := range f.answers {
			out[string(at)] = answers
		}
	} else {
		for sectionID, fields := range f.answers[schema.ApplicantSingle] {
			out[sectionID] = fields
		}
	}

	out[consentsKey] = f.consents
	return json.Marshal(out)
}

// Answers returns the answer set for an applicant slice.
func (f *FormData) Answers(at schema.ApplicantType) AnswerSet {
	if f.answers[at] == nil {
		f.answers[at] = make(AnswerSet)
	}
	return f.answers[at]
}

// Consents returns the recorded consent grants.
func (f *FormData) Consents() schema.ConsentGrants {
	return f.consents
}

// Grant records agreement for one consent form.
func (f *FormData) Grant(consentFormID string, agreed bool) {
	f.consents.Grant(consentFormID, agreed)
}

// ApplicantConfig returns the configuration cardinality the data was decoded for.
func (f *FormData) ApplicantConfig() schema.ApplicantConfig {
	return f.applicantConfig
}
