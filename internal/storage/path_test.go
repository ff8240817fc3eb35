package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeDocumentName(t *testing.T) {
	cases := map[string]string{
		"ID Card.pdf":          "id_card.pdf",
		"Gehaltsnachweis Märź": "gehaltsnachweis_m_r_",
		"already-clean.png":    "already-clean.png",
		"a   b///c.pdf":        "a_b_c.pdf",
		"UPPER.PDF":            "upper.pdf",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeDocumentName(in), "input %q", in)
	}
}

func TestGenerateFilePath(t *testing.T) {
	got := GenerateFilePath(PathParams{
		CoachID:       "c1",
		ClientID:      "u1",
		ApplicantName: "single",
		DocumentID:    "d1",
		DocumentName:  "ID Card.pdf",
	})
	assert.Equal(t, "coaches/c1/clients/u1/applicants/single/documents/d1-id_card.pdf", got)
}

func TestResolveOwners(t *testing.T) {
	cases := []struct {
		name            string
		role            Role
		actingUserID    string
		assignedCoachID string
		ctx             OwnerContext
		wantCoach       string
		wantClient      string
	}{
		{"client with assigned coach", RoleClient, "u1", "c1", OwnerContext{}, "c1", "u1"},
		{"client without coach", RoleClient, "u1", "", OwnerContext{}, AdminFallbackID, "u1"},
		{"coach for context client", RoleCoach, "c1", "", OwnerContext{ClientID: "u2"}, "c1", "u2"},
		{"coach without context client", RoleCoach, "c1", "", OwnerContext{}, "c1", AdminFallbackID},
		{"admin with full context", RoleAdmin, "a1", "", OwnerContext{CoachID: "c9", ClientID: "u9"}, "c9", "u9"},
		{"admin without context", RoleAdmin, "a1", "", OwnerContext{}, AdminFallbackID, AdminFallbackID},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			coach, client := ResolveOwners(tc.role, tc.actingUserID, tc.assignedCoachID, tc.ctx)
			assert.Equal(t, tc.wantCoach, coach)
			assert.Equal(t, tc.wantClient, client)
		})
	}
}
