package documents

import (
	"github.com/coachdesk/onboard/internal/models"
	"github.com/coachdesk/onboard/internal/schema"
)

// StatusEntry is the derived upload state of one (requirement, applicant)
// pair: the most recent non-replaced tracking record, or pending when none
// exists. Not separately persisted.
type StatusEntry struct {
	DocumentID         string                    `json:"document_id"`
	DocumentName       string                    `json:"document_name"`
	ApplicantType      schema.ApplicantType      `json:"applicant_type"`
	Required           bool                      `json:"required"`
	UploadStatus       models.UploadStatus       `json:"upload_status"`
	VerificationStatus models.VerificationStatus `json:"verification_status"`
	RecordID           string                    `json:"record_id,omitempty"`
	DownloadURL        string                    `json:"download_url,omitempty"`
}

// AggregateStatus derives the status list for every (requirement, applicant)
// pair relevant to the configuration's applicant cardinality. It is a pure
// read of current record state and tolerates partial completion at any point.
func AggregateStatus(def *schema.Definition, records []models.SubmissionDocument) []StatusEntry {
	applicants := def.ApplicantConfig.ApplicantTypes()
	entries := make([]StatusEntry, 0, len(def.Documents)*len(applicants))

	for _, req := range def.Documents {
		for _, at := range applicants {
			entry := StatusEntry{
				DocumentID:         req.ID,
				DocumentName:       req.Name,
				ApplicantType:      at,
				Required:           req.Required,
				UploadStatus:       models.UploadPending,
				VerificationStatus: models.VerificationPending,
			}
			if rec := latestActive(records, req.ID, at); rec != nil {
				entry.UploadStatus = rec.UploadStatus
				entry.VerificationStatus = rec.VerificationStatus
				entry.RecordID = rec.ID
				entry.DownloadURL = rec.DownloadURL
			}
			entries = append(entries, entry)
		}
	}

	return entries
}

// AllRequiredUploaded reports whether every required requirement has an
// uploaded record for every relevant applicant. This gates the client's
// "complete upload" action; it is advisory and distinct from the submission's
// submitted status.
func AllRequiredUploaded(def *schema.Definition, records []models.SubmissionDocument) bool {
	for _, req := range def.Documents {
		if !req.Required {
			continue
		}
		for _, at := range def.ApplicantConfig.ApplicantTypes() {
			rec := latestActive(records, req.ID, at)
			if rec == nil || rec.UploadStatus != models.UploadUploaded {
				return false
			}
		}
	}
	return true
}

// latestActive returns the most recent non-replaced record for the pair.
func latestActive(records []models.SubmissionDocument, documentID string, at schema.ApplicantType) *models.SubmissionDocument {
	var latest *models.SubmissionDocument
	for i := range records {
		rec := &records[i]
		if rec.DocumentID != documentID || rec.ApplicantType != string(at) || !rec.Active() {
			continue
		}
		if latest == nil || rec.CreatedAt.After(latest.CreatedAt) {
			latest = rec
		}
	}
	return latest
}
