package services

import (
	"context"
	"fmt"
	"time"

	"github.com/coachdesk/onboard/internal/documents"
	"github.com/coachdesk/onboard/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTracker persists upload tracking records through gorm. It satisfies
// documents.Tracker so the orchestrator stays storage-agnostic.
type GormTracker struct {
	DB *gorm.DB
}

// Create inserts a new tracking record, superseding any active record for the
// same (submission, document, applicant) triple in one transaction. The old
// record is kept and marked replaced rather than overwritten.
func (t GormTracker) Create(ctx context.Context, rec *models.SubmissionDocument) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	return t.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.SubmissionDocument{}).
			Where("form_submission_id = ? AND document_id = ? AND applicant_type = ? AND upload_status <> ?",
				rec.FormSubmissionID, rec.DocumentID, rec.ApplicantType, models.UploadReplaced).
			Update("upload_status", models.UploadReplaced).Error
		if err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
}

// MarkUploaded finalizes a successful upload with its storage location.
func (t GormTracker) MarkUploaded(ctx context.Context, recordID, storagePath, downloadURL string) error {
	now := time.Now().UTC()
	result := t.DB.WithContext(ctx).Model(&models.SubmissionDocument{}).
		Where("id = ?", recordID).
		Updates(map[string]interface{}{
			"upload_status": models.UploadUploaded,
			"storage_path":  storagePath,
			"download_url":  downloadURL,
			"uploaded_at":   &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("not found")
	}
	return nil
}

// MarkFailed records an upload failure with its reason.
func (t GormTracker) MarkFailed(ctx context.Context, recordID, reason string) error {
	result := t.DB.WithContext(ctx).Model(&models.SubmissionDocument{}).
		Where("id = ?", recordID).
		Updates(map[string]interface{}{
			"upload_status":  models.UploadFailed,
			"failure_reason": reason,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("not found")
	}
	return nil
}

// ListSubmissionDocuments retrieves all tracking records for a submission,
// replaced history included, newest first.
func ListSubmissionDocuments(db *gorm.DB, submissionID string) ([]models.SubmissionDocument, error) {
	var recs []models.SubmissionDocument
	err := db.Where("form_submission_id = ?", submissionID).
		Order("created_at DESC").Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// GetDocument fetches one tracking record by id.
func GetDocument(db *gorm.DB, recordID string) (*models.SubmissionDocument, error) {
	var rec models.SubmissionDocument
	err := db.Where("id = ?", recordID).First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}
	return &rec, nil
}

// GetDocumentStatus aggregates the per-requirement, per-applicant status view
// for a submission and reports whether every required document is uploaded.
func GetDocumentStatus(db *gorm.DB, submissionID string) ([]documents.StatusEntry, bool, error) {
	sub, err := GetSubmission(db, submissionID)
	if err != nil {
		return nil, false, err
	}
	config, err := GetConfigurationByConfigID(db, sub.FormConfigID)
	if err != nil {
		return nil, false, err
	}
	def, err := config.Definition()
	if err != nil {
		return nil, false, err
	}
	recs, err := ListSubmissionDocuments(db, submissionID)
	if err != nil {
		return nil, false, err
	}

	entries := documents.AggregateStatus(def, recs)
	return entries, documents.AllRequiredUploaded(def, recs), nil
}

// SoftDeleteDocument retires an active tracking record by marking it replaced.
// The record and its storage object survive so upload history stays auditable.
func SoftDeleteDocument(db *gorm.DB, recordID, reason string) error {
	rec, err := GetDocument(db, recordID)
	if err != nil {
		return err
	}
	if !rec.Active() {
		return fmt.Errorf("document record already replaced")
	}
	return db.Model(rec).Updates(map[string]interface{}{
		"upload_status":  models.UploadReplaced,
		"failure_reason": reason,
	}).Error
}

// VerifyDocument records a coach/admin verification decision on an uploaded
// document. Only uploaded records can be verified.
func VerifyDocument(db *gorm.DB, recordID, verifiedBy string, status models.VerificationStatus, notes string) (*models.SubmissionDocument, error) {
	switch status {
	case models.VerificationApproved, models.VerificationRejected, models.VerificationRequiresReplacement:
	default:
		return nil, fmt.Errorf("invalid verification status %q", status)
	}

	rec, err := GetDocument(db, recordID)
	if err != nil {
		return nil, err
	}
	if rec.UploadStatus != models.UploadUploaded {
		return nil, fmt.Errorf("document is %s, expected %s", rec.UploadStatus, models.UploadUploaded)
	}

	now := time.Now().UTC()
	rec.VerificationStatus = status
	rec.VerifiedBy = verifiedBy
	rec.VerifiedAt = &now
	rec.VerificationNotes = notes
	if err := db.Save(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}
