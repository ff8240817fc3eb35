package services

import (
	"context"
	"fmt"
	"time"

	"github.com/coachdesk/onboard/internal/forms"
	"github.com/coachdesk/onboard/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// submissionSaver adapts gorm persistence to the interpreter's Saver seam.
type submissionSaver struct {
	db *gorm.DB
}

func (s submissionSaver) Save(sub *models.FormSubmission) error {
	return s.db.Save(sub).Error
}

// CreateSubmission instantiates a new draft submission for a client against
// an active configuration, prefilling sections from the client's existing
// domain records when a source is supplied. The configuration's usage
// counters are bumped in the same transaction.
func CreateSubmission(db *gorm.DB, configID, userID string, src forms.RecordSource) (*models.FormSubmission, error) {
	config, err := GetConfigurationByConfigID(db, configID)
	if err != nil {
		return nil, err
	}
	if !config.IsActive {
		return nil, fmt.Errorf("not found")
	}

	def, err := config.Definition()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", configID, err)
	}

	data := forms.Prefill(context.Background(), def, userID, src)
	encoded, err := data.Encode()
	if err != nil {
		return nil, err
	}

	sub := &models.FormSubmission{
		ID:           uuid.New().String(),
		FormConfigID: configID,
		UserID:       userID,
		FormData:     models.NewJSON(encoded),
		Status:       models.StatusDraft,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		return touchConfigurationUsage(tx, configID)
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// GetSubmission fetches one submission by id.
func GetSubmission(db *gorm.DB, id string) (*models.FormSubmission, error) {
	var sub models.FormSubmission
	err := db.Where("id = ?", id).First(&sub).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}
	return &sub, nil
}

// ListSubmissionsByUser retrieves a client's submissions, newest first.
func ListSubmissionsByUser(db *gorm.DB, userID string) ([]models.FormSubmission, error) {
	var subs []models.FormSubmission
	if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// SaveSubmissionDraft persists new form data for an owned draft submission.
// The data must decode against the configuration's applicant cardinality;
// constraint violations on present values are returned as advisory messages
// without blocking the save.
func SaveSubmissionDraft(db *gorm.DB, id, userID string, rawFormData []byte) (*models.FormSubmission, []string, error) {
	sub, err := GetSubmission(db, id)
	if err != nil {
		return nil, nil, err
	}
	if sub.UserID != userID {
		return nil, nil, fmt.Errorf("not found")
	}
	if !sub.Status.ClientEditable() {
		return nil, nil, fmt.Errorf("submission is %s and can no longer be edited", sub.Status)
	}

	config, err := GetConfigurationByConfigID(db, sub.FormConfigID)
	if err != nil {
		return nil, nil, err
	}
	def, err := config.Definition()
	if err != nil {
		return nil, nil, err
	}

	data, err := forms.ParseFormData(def.ApplicantConfig, rawFormData)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid form data: %w", err)
	}
	warnings := forms.ValidateValues(def, data)

	encoded, err := data.Encode()
	if err != nil {
		return nil, nil, err
	}
	sub.FormData = models.NewJSON(encoded)
	if err := db.Save(sub).Error; err != nil {
		return nil, nil, err
	}
	return sub, warnings, nil
}

// SubmitSubmission runs the completion gate and transitions an owned draft to
// submitted. Violations are returned as a list; the submission stays draft
// while the list is non-empty.
func SubmitSubmission(db *gorm.DB, id, userID string) (*models.FormSubmission, []string, error) {
	sub, err := GetSubmission(db, id)
	if err != nil {
		return nil, nil, err
	}
	if sub.UserID != userID {
		return nil, nil, fmt.Errorf("not found")
	}

	config, err := GetConfigurationByConfigID(db, sub.FormConfigID)
	if err != nil {
		return nil, nil, err
	}
	def, err := config.Definition()
	if err != nil {
		return nil, nil, err
	}

	interp, err := forms.NewInterpreter(def, sub, submissionSaver{db: db})
	if err != nil {
		return nil, nil, err
	}
	if interp.Mode() != forms.ModeEditing {
		return nil, nil, fmt.Errorf("submission is %s and can no longer be submitted", sub.Status)
	}

	violations, err := interp.Submit()
	if err != nil {
		return nil, nil, err
	}
	if len(violations) > 0 {
		return sub, violations, nil
	}
	return sub, nil, nil
}

// ReviewSubmission marks a submitted submission as reviewed.
func ReviewSubmission(db *gorm.DB, id, reviewerID, notes string) (*models.FormSubmission, error) {
	sub, err := GetSubmission(db, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.StatusSubmitted {
		return nil, fmt.Errorf("submission is %s, expected %s", sub.Status, models.StatusSubmitted)
	}

	now := time.Now().UTC()
	sub.Status = models.StatusReviewed
	sub.ReviewedAt = &now
	sub.ReviewedBy = reviewerID
	sub.ReviewNotes = notes
	if err := db.Save(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// DecideSubmission resolves a reviewed submission to its terminal approved or
// rejected state.
func DecideSubmission(db *gorm.DB, id, reviewerID string, approve bool, notes string) (*models.FormSubmission, error) {
	sub, err := GetSubmission(db, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.StatusReviewed {
		return nil, fmt.Errorf("submission is %s, expected %s", sub.Status, models.StatusReviewed)
	}

	now := time.Now().UTC()
	if approve {
		sub.Status = models.StatusApproved
	} else {
		sub.Status = models.StatusRejected
	}
	sub.ReviewedAt = &now
	sub.ReviewedBy = reviewerID
	if notes != "" {
		sub.ReviewNotes = notes
	}
	if err := db.Save(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// DeleteSubmission removes an owned draft submission, e.g. to restart with a
// different configuration. Non-draft submissions cannot be deleted.
func DeleteSubmission(db *gorm.DB, id, userID string) error {
	sub, err := GetSubmission(db, id)
	if err != nil {
		return err
	}
	if sub.UserID != userID {
		return fmt.Errorf("not found")
	}
	if sub.Status != models.StatusDraft {
		return fmt.Errorf("only draft submissions can be deleted")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_submission_id = ?", id).Delete(&models.SubmissionDocument{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.FormSubmission{}, "id = ?", id).Error
	})
}
