// Package storage provides the object-store abstraction for uploaded
// documents: deterministic path construction, storage-owner resolution, and
// the bucket-backed and in-memory store implementations.
package storage

import (
	"fmt"
	"regexp"
	"strings"
)

// AdminFallbackID is used when an admin acts without coach/client context.
const AdminFallbackID = "unknown"

// Role is the acting user's role for storage-owner resolution.
type Role string

const (
	RoleClient Role = "client"
	RoleCoach  Role = "coach"
	RoleAdmin  Role = "admin"
)

// PathParams are the inputs of the deterministic storage path.
type PathParams struct {
	CoachID       string
	ClientID      string
	ApplicantName string
	DocumentID    string
	DocumentName  string
}

var (
	invalidPathChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
	underscoreRuns   = regexp.MustCompile(`_+`)
)

// SanitizeDocumentName lowercases the name, replaces any character outside
// [a-zA-Z0-9.-] with an underscore, and collapses repeated underscores.
func SanitizeDocumentName(name string) string {
	s := strings.ToLower(name)
	s = invalidPathChars.ReplaceAllString(s, "_")
	return underscoreRuns.ReplaceAllString(s, "_")
}

// GenerateFilePath builds the storage key for an uploaded document. The path
// scheme is a storage contract shared with previously stored objects and must
// not change shape:
//
//	coaches/{coachId}/clients/{clientId}/applicants/{applicantName}/documents/{documentId}-{sanitizedName}
func GenerateFilePath(p PathParams) string {
	return fmt.Sprintf("coaches/%s/clients/%s/applicants/%s/documents/%s-%s",
		p.CoachID, p.ClientID, p.ApplicantName, p.DocumentID, SanitizeDocumentName(p.DocumentName))
}

// OwnerContext carries the optional coach/client ids supplied by the caller
// when acting on someone else's behalf.
type OwnerContext struct {
	ClientID string
	CoachID  string
}

// ResolveOwners determines which coach/client pair owns the storage path, as
// a pure function of the acting user's role and context. A client uploads
// into their own folder under their assigned coach; a coach uploads into the
// context client's folder under themselves; an admin relies on context with a
// fallback sentinel when it is absent.
func ResolveOwners(role Role, actingUserID, assignedCoachID string, ctx OwnerContext) (coachID, clientID string) {
	switch role {
	case RoleClient:
		coachID, clientID = assignedCoachID, actingUserID
		if coachID == "" {
			coachID = AdminFallbackID
		}
	case RoleCoach:
		coachID, clientID = actingUserID, ctx.ClientID
		if clientID == "" {
			clientID = AdminFallbackID
		}
	default:
		coachID, clientID = ctx.CoachID, ctx.ClientID
		if coachID == "" {
			coachID = AdminFallbackID
		}
		if clientID == "" {
			clientID = AdminFallbackID
		}
	}
	return coachID, clientID
}
