// Package documents manages the per-document, per-applicant upload lifecycle
// and the derived document-status aggregation for a submission.
package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/coachdesk/onboard/internal/models"
	"github.com/coachdesk/onboard/internal/schema"
	"github.com/coachdesk/onboard/internal/storage"
)

// State is the orchestrator's upload phase.
type State string

const (
	StateNoFile       State = "no_file"
	StateFileSelected State = "file_selected"
	StateUploading    State = "uploading"
	StateUploaded     State = "uploaded"
)

// errUploadFailed is what the client sees when an upload attempt fails; the
// underlying cause goes into the tracking record's verification notes.
var errUploadFailed = errors.New("upload failed, please try again")

// LocalFile is a client-selected file pending upload.
type LocalFile struct {
	Name        string
	Size        int64
	ContentType string
	Content     io.Reader
}

// Tracker persists upload tracking records. The three operations are
// deliberately explicit rather than one overloaded write.
type Tracker interface {
	Create(ctx context.Context, rec *models.SubmissionDocument) error
	MarkUploaded(ctx context.Context, recordID, storagePath, downloadURL string) error
	MarkFailed(ctx context.Context, recordID, reason string) error
}

// Orchestrator drives one (document requirement, applicant) pair from local
// file selection through object-storage upload and tracking-record creation.
// Uploads are strictly sequential within one orchestrator; separate pairs use
// separate orchestrators and may proceed concurrently.
type Orchestrator struct {
	requirement  schema.DocumentRequirement
	applicant    schema.ApplicantType
	submissionID string
	uploadedBy   string
	owners       storage.PathParams
	store        storage.ObjectStore
	tracker      Tracker

	mu           sync.Mutex
	state        State
	file         *LocalFile
	selectionErr error
	downloadURL  string
}

// NewOrchestrator returns an orchestrator in the NoFile state. The owner path
// parameters must already be resolved (see storage.ResolveOwners); the
// orchestrator fills in the document-specific parts.
func NewOrchestrator(req schema.DocumentRequirement, applicant schema.ApplicantType, submissionID, uploadedBy string, owners storage.PathParams, store storage.ObjectStore, tracker Tracker) *Orchestrator {
	owners.ApplicantName = string(applicant)
	owners.DocumentID = req.ID
	return &Orchestrator{
		requirement:  req,
		applicant:    applicant,
		submissionID: submissionID,
		uploadedBy:   uploadedBy,
		owners:       owners,
		store:        store,
		tracker:      tracker,
		state:        StateNoFile,
	}
}

// SelectFile validates and stages a local file. An invalid file is still
// selected, but carries a selection error that blocks Upload until the file
// is removed.
func (o *Orchestrator) SelectFile(f *LocalFile) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateUploading || o.state == StateUploaded {
		return
	}
	o.file = f
	o.selectionErr = ValidateFile(&o.requirement, f.Name, f.Size)
	o.state = StateFileSelected
}

// Remove discards the staged file.
func (o *Orchestrator) Remove() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateFileSelected {
		return fmt.Errorf("no file selected")
	}
	o.file = nil
	o.selectionErr = nil
	o.state = StateNoFile
	return nil
}

// Upload pushes the staged file to object storage and records the attempt.
// On success the orchestrator reaches its terminal Uploaded state and the
// tracking record is marked uploaded. On failure the file stays selected with
// a generic retryable error and the tracking record is marked failed with the
// underlying cause; that secondary write is best-effort and only logged when
// it fails itself.
func (o *Orchestrator) Upload(ctx context.Context) (*models.SubmissionDocument, error) {
	o.mu.Lock()
	if o.state != StateFileSelected {
		o.mu.Unlock()
		return nil, fmt.Errorf("no file selected")
	}
	if o.selectionErr != nil {
		err := o.selectionErr
		o.mu.Unlock()
		return nil, err
	}
	file := o.file
	o.state = StateUploading
	o.mu.Unlock()

	rec := &models.SubmissionDocument{
		FormSubmissionID: o.submissionID,
		DocumentID:       o.requirement.ID,
		ApplicantType:    string(o.applicant),
		OriginalFilename: file.Name,
		FileSizeBytes:    file.Size,
		ContentType:      file.ContentType,
		UploadStatus:     models.UploadUploading,
		UploadedBy:       o.uploadedBy,
	}
	if err := o.tracker.Create(ctx, rec); err != nil {
		o.fail(errUploadFailed)
		return nil, fmt.Errorf("create tracking record: %w", err)
	}

	params := o.owners
	params.DocumentName = file.Name
	path := storage.GenerateFilePath(params)

	if err := o.store.Upload(ctx, path, file.ContentType, file.Content); err != nil {
		o.markFailed(ctx, rec.ID, err)
		o.fail(errUploadFailed)
		return nil, fmt.Errorf("upload: %w", err)
	}

	url, err := o.store.DownloadURL(ctx, path)
	if err != nil {
		o.markFailed(ctx, rec.ID, err)
		o.fail(errUploadFailed)
		return nil, fmt.Errorf("download url: %w", err)
	}

	if err := o.tracker.MarkUploaded(ctx, rec.ID, path, url); err != nil {
		o.fail(errUploadFailed)
		return nil, fmt.Errorf("mark uploaded: %w", err)
	}

	o.mu.Lock()
	o.state = StateUploaded
	o.downloadURL = url
	o.mu.Unlock()

	rec.StoragePath = path
	rec.DownloadURL = url
	rec.UploadStatus = models.UploadUploaded
	return rec, nil
}

// State returns the current upload phase.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// SelectionErr returns the staged file's validation error, if any.
func (o *Orchestrator) SelectionErr() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.selectionErr
}

// DownloadURL returns the uploaded object's URL once the orchestrator has
// reached the Uploaded state.
func (o *Orchestrator) DownloadURL() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.downloadURL
}

func (o *Orchestrator) fail(err error) {
	o.mu.Lock()
	o.state = StateFileSelected
	o.selectionErr = err
	o.mu.Unlock()
}

// markFailed records the failure reason on the tracking record. The write is
// best-effort: its own failure is logged, never surfaced.
func (o *Orchestrator) markFailed(ctx context.Context, recordID string, cause error) {
	if recordID == "" {
		return
	}
	if err := o.tracker.MarkFailed(ctx, recordID, cause.Error()); err != nil {
		log.Printf("failed to mark document %s as failed: %v", recordID, err)
	}
}

// ValidateFile checks a candidate file against the requirement: size within
// maxSize megabytes, extension in the accepted list (case-insensitive).
func ValidateFile(req *schema.DocumentRequirement, name string, sizeBytes int64) error {
	if req.MaxSizeMB > 0 && sizeBytes > req.MaxSizeMB*1024*1024 {
		return fmt.Errorf("file exceeds %dMB", req.MaxSizeMB)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	for _, accepted := range req.AcceptedTypes {
		// Accepted types may be declared with or without a leading dot.
		if ext == strings.TrimPrefix(strings.ToLower(accepted), ".") {
			return nil
		}
	}
	return fmt.Errorf("file type %q not accepted (allowed: %s)", ext, strings.Join(req.AcceptedTypes, ", "))
}
