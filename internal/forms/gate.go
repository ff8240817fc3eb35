package forms

import (
	"fmt"

	"github.com/coachdesk/onboard/internal/schema"
)

// ValidateSubmission decides whether a submission may leave draft. Every
// required field in a required section must hold a non-empty value, for every
// applicant slice the configuration collects, and every required enabled
// consent form must be agreed. All violations are returned, not just the
// first.
func ValidateSubmission(def *schema.Definition, fd *FormData) []string {
	var errs []string

	applicants := def.ApplicantConfig.ApplicantTypes()
	joint := len(applicants) > 1

	for _, at := range applicants {
		answers := fd.Answers(at)
		for i := range def.Sections {
			sec := &def.Sections[i]
			if !sec.Required {
				continue
			}
			fields := sec.EffectiveFields()
			for j := range fields {
				field := &fields[j]
				if !field.Required {
					continue
				}
				if err := schema.ValidateFieldValue(field, answers.Value(sec.ID, field.Name)); err != nil {
					if joint {
						errs = append(errs, fmt.Sprintf("%s: %s: %v", at, sec.Title, err))
					} else {
						errs = append(errs, fmt.Sprintf("%s: %v", sec.Title, err))
					}
				}
			}
		}
	}

	for _, cf := range def.RequiredConsents() {
		if !fd.Consents().Granted(cf.ID) {
			errs = append(errs, fmt.Sprintf("consent %q must be agreed", cf.Title))
		}
	}

	return errs
}

// ValidateValues checks every present value against its field's declared
// constraints (min/max/pattern), regardless of required flags. Used on draft
// saves to surface constraint errors early without blocking the save.
func ValidateValues(def *schema.Definition, fd *FormData) []string {
	var errs []string
	for _, at := range def.ApplicantConfig.ApplicantTypes() {
		answers := fd.Answers(at)
		for i := range def.Sections {
			sec := &def.Sections[i]
			fields := sec.EffectiveFields()
			for j := range fields {
				field := &fields[j]
				value := answers.Value(sec.ID, field.Name)
				if value == nil {
					continue
				}
				relaxed := *field
				relaxed.Required = false
				if err := schema.ValidateFieldValue(&relaxed, value); err != nil {
					errs = append(errs, err.Error())
				}
			}
		}
	}
	return errs
}
