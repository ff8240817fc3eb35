package models

import "time"

// UploadStatus is the lifecycle state of one upload attempt.
type UploadStatus string

const (
	UploadPending   UploadStatus = "pending"
	UploadUploading UploadStatus = "uploading"
	UploadUploaded  UploadStatus = "uploaded"
	UploadFailed    UploadStatus = "failed"
	UploadReplaced  UploadStatus = "replaced"
)

// VerificationStatus is the coach/admin review state of an uploaded document.
type VerificationStatus string

const (
	VerificationPending             VerificationStatus = "pending"
	VerificationApproved            VerificationStatus = "approved"
	VerificationRejected            VerificationStatus = "rejected"
	VerificationRequiresReplacement VerificationStatus = "requires_replacement"
)

// SubmissionDocument is the durable record of one upload attempt/result.
// (FormSubmissionID, DocumentID, ApplicantType) is the natural key: at most
// one active (non-replaced) record exists per triple. Replacing a document
// creates a new record and marks the prior one replaced, preserving history.
type SubmissionDocument struct {
	ID                 string             `gorm:"type:char(36);primaryKey" json:"id"`
	FormSubmissionID   string             `gorm:"type:char(36);not null;index:idx_submission_document" json:"form_submission_id"`
	DocumentID         string             `gorm:"size:64;not null;index:idx_submission_document" json:"document_id"`
	ApplicantType      string             `gorm:"size:16;not null;index:idx_submission_document" json:"applicant_type"`
	OriginalFilename   string             `gorm:"size:512" json:"original_filename"`
	FileSizeBytes      int64              `json:"file_size_bytes"`
	ContentType        string             `gorm:"size:128" json:"content_type"`
	StoragePath        string             `gorm:"size:1024" json:"firebase_path"`
	DownloadURL        string             `gorm:"size:2048" json:"firebase_download_url"`
	UploadStatus       UploadStatus       `gorm:"size:16;not null;default:pending;index" json:"upload_status"`
	FailureReason      string             `gorm:"size:512" json:"failure_reason,omitempty"`
	UploadedAt         *time.Time         `json:"uploaded_at,omitempty"`
	UploadedBy         string             `gorm:"type:char(36)" json:"uploaded_by,omitempty"`
	VerificationStatus VerificationStatus `gorm:"size:32;not null;default:pending" json:"verification_status"`
	VerifiedBy         string             `gorm:"type:char(36)" json:"verified_by,omitempty"`
	VerifiedAt         *time.Time         `json:"verified_at,omitempty"`
	VerificationNotes  string             `gorm:"size:2048" json:"verification_notes,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// TableName overrides the table name for SubmissionDocument
func (SubmissionDocument) TableName() string {
	return "submission_documents"
}

// Active reports whether this record still represents the triple's current
// upload (anything not superseded by a replacement).
func (d *SubmissionDocument) Active() bool {
	return d.UploadStatus != UploadReplaced
}
