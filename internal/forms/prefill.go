package forms

import (
	"context"
	"log"

	"github.com/coachdesk/onboard/internal/schema"
)

// RecordSource looks up a client's persisted domain records for prefill.
// Lookup is the primary single-record accessor; LookupList is the fallback
// list accessor used when the primary fails.
type RecordSource interface {
	Lookup(ctx context.Context, userID string, source schema.PrefillSource) (map[string]interface{}, error)
	LookupList(ctx context.Context, userID string, source schema.PrefillSource) ([]map[string]interface{}, error)
}

// Prefill populates a new submission's answer data from the client's existing
// domain records. Each section resolves its prefill source (explicit
// prefill_source, falling back to title keywords) and copies the record's
// fields into that section's slice.
//
// Isolation: one section's lookup failure never affects another section and
// never aborts the overall prefill. Fallback chain per section: primary
// lookup, then list-and-take-first, then give up silently.
func Prefill(ctx context.Context, def *schema.Definition, userID string, src RecordSource) *FormData {
	fd := NewFormData(def.ApplicantConfig)
	if src == nil {
		return fd
	}

	// Joint configurations prefill only the primary applicant's slice; the
	// co-applicant has no persisted records to draw from.
	target := def.ApplicantConfig.ApplicantTypes()[0]

	for i := range def.Sections {
		sec := &def.Sections[i]
		source := sec.EffectivePrefillSource()
		if source == schema.PrefillNone {
			continue
		}
		record := lookupRecord(ctx, userID, source, src)
		if record == nil {
			continue
		}
		answers := fd.Answers(target)
		for name, value := range record {
			answers.Set(sec.ID, name, value)
		}
	}

	return fd
}

// lookupRecord runs the per-section fallback chain. Failures are swallowed;
// a panic in a source implementation is contained so it cannot take down the
// sections that follow.
func lookupRecord(ctx context.Context, userID string, source schema.PrefillSource, src RecordSource) (record map[string]interface{}) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("prefill %s for user %s panicked: %v", source, userID, r)
			record = nil
		}
	}()

	record, err := src.Lookup(ctx, userID, source)
	if err == nil && record != nil {
		return record
	}
	if err != nil {
		log.Printf("prefill %s for user %s: primary lookup failed: %v", source, userID, err)
	}

	list, err := src.LookupList(ctx, userID, source)
	if err != nil {
		log.Printf("prefill %s for user %s: list lookup failed: %v", source, userID, err)
		return nil
	}
	if len(list) == 0 {
		return nil
	}
	return list[0]
}
