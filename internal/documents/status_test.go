package documents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachdesk/onboard/internal/models"
	"github.com/coachdesk/onboard/internal/schema"
)

func statusDefinition(cfg schema.ApplicantConfig) *schema.Definition {
	return &schema.Definition{
		ApplicantConfig: cfg,
		Documents: []schema.DocumentRequirement{
			{ID: "id-card", Name: "ID Card", Required: true, AcceptedTypes: []string{"pdf"}},
			{ID: "bank-statement", Name: "Bank Statement", AcceptedTypes: []string{"pdf"}},
		},
	}
}

func uploadedRecord(documentID string, at schema.ApplicantType, createdAt time.Time) models.SubmissionDocument {
	return models.SubmissionDocument{
		ID:                 documentID + "-" + string(at) + "-" + createdAt.Format("150405"),
		FormSubmissionID:   "sub-1",
		DocumentID:         documentID,
		ApplicantType:      string(at),
		UploadStatus:       models.UploadUploaded,
		VerificationStatus: models.VerificationPending,
		DownloadURL:        "https://example.invalid/" + documentID,
		CreatedAt:          createdAt,
	}
}

func TestAggregateStatusPendingWithoutRecords(t *testing.T) {
	entries := AggregateStatus(statusDefinition(schema.ApplicantConfigSingle), nil)

	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, schema.ApplicantSingle, e.ApplicantType)
		assert.Equal(t, models.UploadPending, e.UploadStatus)
		assert.Equal(t, models.VerificationPending, e.VerificationStatus)
		assert.Empty(t, e.RecordID)
	}
	assert.True(t, entries[0].Required)
	assert.False(t, entries[1].Required)
}

func TestAggregateStatusJointFansOutPerApplicant(t *testing.T) {
	now := time.Now()
	records := []models.SubmissionDocument{
		uploadedRecord("id-card", schema.ApplicantOne, now),
	}

	entries := AggregateStatus(statusDefinition(schema.ApplicantConfigJoint), records)
	require.Len(t, entries, 4)

	byPair := make(map[string]StatusEntry)
	for _, e := range entries {
		byPair[e.DocumentID+"/"+string(e.ApplicantType)] = e
	}
	assert.Equal(t, models.UploadUploaded, byPair["id-card/applicant1"].UploadStatus)
	assert.Equal(t, models.UploadPending, byPair["id-card/applicant2"].UploadStatus)
}

func TestAggregateStatusIgnoresReplacedRecords(t *testing.T) {
	now := time.Now()
	old := uploadedRecord("id-card", schema.ApplicantSingle, now.Add(-time.Hour))
	old.UploadStatus = models.UploadReplaced
	current := uploadedRecord("id-card", schema.ApplicantSingle, now)

	entries := AggregateStatus(statusDefinition(schema.ApplicantConfigSingle),
		[]models.SubmissionDocument{old, current})

	require.Len(t, entries, 2)
	assert.Equal(t, current.ID, entries[0].RecordID)
	assert.Equal(t, models.UploadUploaded, entries[0].UploadStatus)
}

func TestAggregateStatusPicksLatestActive(t *testing.T) {
	now := time.Now()
	first := uploadedRecord("id-card", schema.ApplicantSingle, now.Add(-time.Hour))
	first.UploadStatus = models.UploadFailed
	second := uploadedRecord("id-card", schema.ApplicantSingle, now)

	entries := AggregateStatus(statusDefinition(schema.ApplicantConfigSingle),
		[]models.SubmissionDocument{second, first})

	assert.Equal(t, second.ID, entries[0].RecordID)
}

func TestAllRequiredUploadedSingle(t *testing.T) {
	def := statusDefinition(schema.ApplicantConfigSingle)

	assert.False(t, AllRequiredUploaded(def, nil))

	// The optional bank statement never gates completion.
	records := []models.SubmissionDocument{uploadedRecord("id-card", schema.ApplicantSingle, time.Now())}
	assert.True(t, AllRequiredUploaded(def, records))

	failed := records[0]
	failed.UploadStatus = models.UploadFailed
	assert.False(t, AllRequiredUploaded(def, []models.SubmissionDocument{failed}))
}

func TestAllRequiredUploadedJointNeedsBothApplicants(t *testing.T) {
	def := statusDefinition(schema.ApplicantConfigJoint)
	now := time.Now()

	one := []models.SubmissionDocument{uploadedRecord("id-card", schema.ApplicantOne, now)}
	assert.False(t, AllRequiredUploaded(def, one))

	both := append(one, uploadedRecord("id-card", schema.ApplicantTwo, now))
	assert.True(t, AllRequiredUploaded(def, both))
}
