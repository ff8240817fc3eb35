package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ValidateConfiguration checks an authored definition and returns every
// violation found. It never fails fast so the authoring UI can show the
// complete list; an empty slice means the configuration is valid.
func ValidateConfiguration(d *Definition) []string {
	var errs []string

	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, "configuration name is required")
	}
	if d.FormType == "" {
		errs = append(errs, "form type is required")
	}
	if strings.TrimSpace(d.Version) == "" {
		errs = append(errs, "version is required")
	}
	if d.ApplicantConfig != ApplicantConfigSingle && d.ApplicantConfig != ApplicantConfigJoint {
		errs = append(errs, fmt.Sprintf("applicant config must be %q or %q", ApplicantConfigSingle, ApplicantConfigJoint))
	}

	if len(d.Sections) == 0 {
		errs = append(errs, "at least one section is required")
	}
	for i, sec := range d.Sections {
		if strings.TrimSpace(sec.Title) == "" {
			errs = append(errs, fmt.Sprintf("section %d: title is required", i+1))
		}
		if strings.TrimSpace(sec.Description) == "" {
			errs = append(errs, fmt.Sprintf("section %d: description is required", i+1))
		}
		seen := make(map[string]struct{}, len(sec.Fields))
		for _, f := range sec.Fields {
			if f.Name == "" {
				errs = append(errs, fmt.Sprintf("section %d: field with empty name", i+1))
				continue
			}
			if _, dup := seen[f.Name]; dup {
				errs = append(errs, fmt.Sprintf("section %d: duplicate field name %q", i+1, f.Name))
			}
			seen[f.Name] = struct{}{}
		}
	}

	for i, cf := range d.ConsentForms {
		if strings.TrimSpace(cf.Title) == "" {
			errs = append(errs, fmt.Sprintf("consent form %d: title is required", i+1))
		}
		if strings.TrimSpace(cf.Content) == "" {
			errs = append(errs, fmt.Sprintf("consent form %d: content is required", i+1))
		}
	}

	for i, doc := range d.Documents {
		if strings.TrimSpace(doc.Name) == "" {
			errs = append(errs, fmt.Sprintf("document %d: name is required", i+1))
		}
		if len(doc.AcceptedTypes) == 0 {
			errs = append(errs, fmt.Sprintf("document %d: at least one accepted file type is required", i+1))
		}
	}

	return errs
}

// ValidateFieldValue checks a single value against its field declaration.
// Required emptiness rules: empty string, nil, and (for checkboxes) false all
// count as missing. Declared min/max are numeric range checks, pattern is a
// full-string regex match.
func ValidateFieldValue(f *FormField, value interface{}) error {
	if f.Required && isEmptyValue(f, value) {
		return fmt.Errorf("%s is required", fieldLabel(f))
	}
	if value == nil {
		return nil
	}

	if f.Validation != nil {
		if f.Type == FieldNumber && (f.Validation.Min != nil || f.Validation.Max != nil) {
			n := CoerceNumber(value)
			if f.Validation.Min != nil && n < *f.Validation.Min {
				return fmt.Errorf("%s must be at least %v", fieldLabel(f), *f.Validation.Min)
			}
			if f.Validation.Max != nil && n > *f.Validation.Max {
				return fmt.Errorf("%s must be at most %v", fieldLabel(f), *f.Validation.Max)
			}
		}
		if f.Validation.Pattern != "" {
			s, ok := value.(string)
			if ok && s != "" {
				re, err := regexp.Compile("^(?:" + f.Validation.Pattern + ")$")
				if err != nil {
					return fmt.Errorf("%s has an invalid pattern constraint", fieldLabel(f))
				}
				if !re.MatchString(s) {
					return fmt.Errorf("%s does not match the expected format", fieldLabel(f))
				}
			}
		}
	}

	return nil
}

// CoerceNumber converts a field value to a float64. Malformed input never
// raises an error, it silently becomes zero.
func CoerceNumber(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return n
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// isEmptyValue reports whether a value counts as missing for required checks.
// Zero is a present value for number fields; false is missing for checkboxes.
func isEmptyValue(f *FormField, value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) == ""
	case bool:
		if f.Type == FieldCheckbox {
			return !v
		}
		return false
	default:
		return false
	}
}

func fieldLabel(f *FormField) string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}
