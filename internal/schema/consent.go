package schema

import "encoding/json"

// ConsentGrants records a client's consent-form agreements keyed by consent
// form id. The legacy data model carried a single shared boolean; decoding
// accepts that shape and treats it as agreement to every consent form.
type ConsentGrants struct {
	all    bool
	byForm map[string]bool
}

// Grant records agreement for one consent form.
func (g *ConsentGrants) Grant(formID string, agreed bool) {
	if g.byForm == nil {
		g.byForm = make(map[string]bool)
	}
	g.byForm[formID] = agreed
}

// GrantAll records the legacy single shared agreement flag.
func (g *ConsentGrants) GrantAll(agreed bool) {
	g.all = agreed
}

// Granted reports whether the client agreed to the given consent form.
func (g ConsentGrants) Granted(formID string) bool {
	if g.all || g.byForm["*"] {
		return true
	}
	return g.byForm[formID]
}

// UnmarshalJSON accepts either the per-form map or the legacy boolean.
func (g *ConsentGrants) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var legacy bool
	if err := json.Unmarshal(data, &legacy); err == nil {
		g.all = legacy
		return nil
	}

	var byForm map[string]bool
	if err := json.Unmarshal(data, &byForm); err != nil {
		return err
	}
	g.byForm = byForm
	return nil
}

// MarshalJSON always writes the per-form map shape. Legacy all-forms grants
// are preserved as a marker entry so a round trip keeps their meaning.
func (g ConsentGrants) MarshalJSON() ([]byte, error) {
	out := make(map[string]bool, len(g.byForm)+1)
	for k, v := range g.byForm {
		out[k] = v
	}
	if g.all {
		out["*"] = true
	}
	return json.Marshal(out)
}
