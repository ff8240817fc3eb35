package models

import "time"

// SubmissionStatus is the lifecycle state of a form submission.
type SubmissionStatus string

const (
	StatusDraft     SubmissionStatus = "draft"
	StatusSubmitted SubmissionStatus = "submitted"
	StatusReviewed  SubmissionStatus = "reviewed"
	StatusApproved  SubmissionStatus = "approved"
	StatusRejected  SubmissionStatus = "rejected"
)

// Terminal reports whether the status permits no further transitions.
func (s SubmissionStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ClientEditable reports whether the owning client may still mutate form data.
func (s SubmissionStatus) ClientEditable() bool {
	return s == StatusDraft
}

// FormSubmission is one client's answer set for one configuration. FormData
// mirrors the schema's sections but is stored independently so historical
// submissions remain valid even if the schema later changes.
type FormSubmission struct {
	ID           string           `gorm:"type:char(36);primaryKey" json:"id"`
	FormConfigID string           `gorm:"type:char(36);not null;index" json:"form_config_id"`
	UserID       string           `gorm:"type:char(36);not null;index" json:"user_id"`
	FormData     JSON             `json:"form_data"`
	Status       SubmissionStatus `gorm:"size:16;not null;default:draft;index" json:"status"`
	SubmittedAt  *time.Time       `json:"submitted_at,omitempty"`
	ReviewedAt   *time.Time       `json:"reviewed_at,omitempty"`
	ReviewedBy   string           `gorm:"type:char(36)" json:"reviewed_by,omitempty"`
	ReviewNotes  string           `gorm:"size:2048" json:"review_notes,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// TableName overrides the table name for FormSubmission
func (FormSubmission) TableName() string {
	return "form_submissions"
}
