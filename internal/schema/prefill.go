package schema

import "strings"

// titleKeywords maps legacy section-title keywords to prefill sources. Older
// configurations dispatched on the display title; new ones set PrefillSource
// explicitly in the schema.
var titleKeywords = []struct {
	keyword string
	source  PrefillSource
}{
	{"personal", PrefillPersonal},
	{"family", PrefillFamily},
	{"employment", PrefillEmployment},
	{"income", PrefillIncome},
	{"expenses", PrefillExpenses},
	{"assets", PrefillAssets},
	{"liabilities", PrefillLiabilities},
}

// EffectivePrefillSource returns the section's prefill source. An explicit
// prefill_source wins; otherwise the source is derived from the title by
// case-insensitive substring match, preserving the dispatch behavior of
// configurations authored before the field existed.
func (s *Section) EffectivePrefillSource() PrefillSource {
	if s.PrefillSource != PrefillNone {
		return s.PrefillSource
	}
	return DerivePrefillSource(s.Title)
}

// DerivePrefillSource matches a section title against the known category
// keywords. Returns PrefillNone when no keyword matches.
func DerivePrefillSource(title string) PrefillSource {
	lower := strings.ToLower(title)
	for _, k := range titleKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.source
		}
	}
	return PrefillNone
}
