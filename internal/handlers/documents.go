// documents.go
//
// The CoachDesk client onboarding data service.
// Copyright (c) 2026 CoachDesk GmbH <engineering@coachdesk.io> (https://www.coachdesk.io)
//
// This file is part of onboard.
// onboard is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// onboard is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with onboard.
// If not, see <https://www.gnu.org/licenses/>.

package handlers

import (
	"fmt"

	"github.com/coachdesk/onboard/internal/documents"
	"github.com/coachdesk/onboard/internal/models"
	"github.com/coachdesk/onboard/internal/schema"
	"github.com/coachdesk/onboard/internal/services"
	"github.com/coachdesk/onboard/internal/storage"
	"github.com/coachdesk/onboard/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DocumentHandler handles submission document routes
type DocumentHandler struct {
	DB    *gorm.DB
	Store storage.ObjectStore
}

// ListDocuments handles GET /api/form-submissions/:id/documents
// @Summary List submission documents
// @Description List all upload tracking records for a submission, history included
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {array} models.SubmissionDocument
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /form-submissions/{id}/documents [get]
func (h *DocumentHandler) ListDocuments(c *fiber.Ctx) error {
	sub, ok, resp := h.ownedSubmission(c)
	if !ok {
		return resp
	}

	recs, err := services.ListSubmissionDocuments(h.DB, sub.ID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listDocuments")
	}

	if len(recs) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.Status(fiber.StatusOK).JSON(recs)
}

// GetDocumentStatus handles GET /api/form-submissions/:id/documents/status
// @Summary Get aggregated document status
// @Description Per-requirement, per-applicant upload state with an overall complete flag
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /form-submissions/{id}/documents/status [get]
func (h *DocumentHandler) GetDocumentStatus(c *fiber.Ctx) error {
	sub, ok, resp := h.ownedSubmission(c)
	if !ok {
		return resp
	}

	entries, complete, err := services.GetDocumentStatus(h.DB, sub.ID)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, fmt.Sprintf("Submission '%s' not found", sub.ID))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getDocumentStatus")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"entries":  entries,
		"complete": complete,
	})
}

// UploadDocument handles POST /api/form-submissions/:id/documents/:documentId/upload
// @Summary Upload a document
// @Description Upload a file for one document requirement and applicant; replaces any prior upload
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Submission ID"
// @Param documentId path string true "Document requirement ID"
// @Param applicant query string false "Applicant slice (defaults to the primary)"
// @Param client_id query string false "Owning client (staff only)"
// @Param coach_id query string false "Owning coach (admin only)"
// @Param file formData file true "Document file"
// @Success 201 {object} models.SubmissionDocument
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /form-submissions/{id}/documents/{documentId}/upload [post]
func (h *DocumentHandler) UploadDocument(c *fiber.Ctx) error {
	s, ok, resp := sessionOrReply(c)
	if !ok {
		return resp
	}
	sub, ok, resp := h.ownedSubmission(c)
	if !ok {
		return resp
	}
	documentID := c.Params("documentId")

	config, err := services.GetConfigurationByConfigID(h.DB, sub.FormConfigID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "uploadDocument")
	}
	def, err := config.Definition()
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "uploadDocument")
	}

	req := def.Document(documentID)
	if req == nil {
		return utils.NotFoundResponse(c, fmt.Sprintf("Document requirement '%s' not found", documentID))
	}

	applicant := def.ApplicantConfig.ApplicantTypes()[0]
	if a := c.Query("applicant"); a != "" {
		applicant = schema.ApplicantType(a)
		if !def.ApplicantConfig.Valid(applicant) {
			return utils.ErrorResponse(c, fmt.Sprintf("Applicant %q not collected by this form", a), fiber.StatusBadRequest, "onboard.validation.input")
		}
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, "Missing file", fiber.StatusBadRequest, "onboard.validation.input")
	}
	if err := documents.ValidateFile(req, fileHeader.Filename, fileHeader.Size); err != nil {
		return utils.ValidationErrorResponse(c, "File rejected", []string{err.Error()})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "uploadDocument")
	}
	defer file.Close()

	assignedCoachID := s.CoachID
	if assignedCoachID == "" && s.Role == storage.RoleClient {
		assignedCoachID, _ = services.CoachIDForClient(h.DB, s.UserID)
	}
	ownerCtx := storage.OwnerContext{
		ClientID: c.Query("client_id", sub.UserID),
		CoachID:  c.Query("coach_id"),
	}
	coachID, clientID := storage.ResolveOwners(s.Role, s.UserID, assignedCoachID, ownerCtx)

	orch := documents.NewOrchestrator(*req, applicant, sub.ID, s.UserID,
		storage.PathParams{CoachID: coachID, ClientID: clientID},
		h.Store, services.GormTracker{DB: h.DB})

	orch.SelectFile(&documents.LocalFile{
		Name:        fileHeader.Filename,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Content:     file,
	})
	if err := orch.SelectionErr(); err != nil {
		return utils.ValidationErrorResponse(c, "File rejected", []string{err.Error()})
	}

	rec, err := orch.Upload(c.Context())
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "uploadDocument")
	}

	return c.Status(fiber.StatusCreated).JSON(rec)
}

// GetDownloadURL handles GET /api/documents/:recordId/download
// @Summary Get a document download URL
// @Description Return a short-lived URL for an uploaded document
// @Tags Documents
// @Accept json
// @Produce json
// @Param recordId path string true "Tracking record ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /documents/{recordId}/download [get]
func (h *DocumentHandler) GetDownloadURL(c *fiber.Ctx) error {
	s, ok, resp := sessionOrReply(c)
	if !ok {
		return resp
	}
	recordID := c.Params("recordId")

	rec, err := services.GetDocument(h.DB, recordID)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, fmt.Sprintf("Document record '%s' not found", recordID))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getDownloadURL")
	}
	if rec.UploadStatus != models.UploadUploaded {
		return utils.ErrorResponse(c, fmt.Sprintf("Document is %s", rec.UploadStatus), fiber.StatusConflict, "getDownloadURL")
	}
	if !isStaff(s) {
		sub, err := services.GetSubmission(h.DB, rec.FormSubmissionID)
		if err != nil || sub.UserID != s.UserID {
			return utils.NotFoundResponse(c, fmt.Sprintf("Document record '%s' not found", recordID))
		}
	}

	url, err := h.Store.DownloadURL(c.Context(), rec.StoragePath)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getDownloadURL")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"url": url})
}

// VerifyDocument handles POST /api/documents/:recordId/verify
// @Summary Verify an uploaded document
// @Description Record an approval, rejection, or replacement request on an upload
// @Tags Documents
// @Accept json
// @Produce json
// @Param recordId path string true "Tracking record ID"
// @Param body body object true "Verification status and optional notes"
// @Success 200 {object} models.SubmissionDocument
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /documents/{recordId}/verify [post]
func (h *DocumentHandler) VerifyDocument(c *fiber.Ctx) error {
	s, ok, resp := sessionOrReply(c)
	if !ok {
		return resp
	}
	recordID := c.Params("recordId")

	var body struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := c.BodyParser(&body); err != nil || body.Status == "" {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "onboard.validation.input")
	}

	rec, err := services.VerifyDocument(h.DB, recordID, s.UserID, models.VerificationStatus(body.Status), body.Notes)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, fmt.Sprintf("Document record '%s' not found", recordID))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusConflict, "verifyDocument")
	}

	return c.Status(fiber.StatusOK).JSON(rec)
}

// DeleteDocument handles DELETE /api/documents/:recordId
// @Summary Retire a document upload
// @Description Mark an upload replaced without destroying its stored object
// @Tags Documents
// @Accept json
// @Produce json
// @Param recordId path string true "Tracking record ID"
// @Param body body object false "Optional reason"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /documents/{recordId} [delete]
func (h *DocumentHandler) DeleteDocument(c *fiber.Ctx) error {
	s, ok, resp := sessionOrReply(c)
	if !ok {
		return resp
	}
	recordID := c.Params("recordId")

	rec, err := services.GetDocument(h.DB, recordID)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, fmt.Sprintf("Document record '%s' not found", recordID))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteDocument")
	}
	if !isStaff(s) {
		sub, err := services.GetSubmission(h.DB, rec.FormSubmissionID)
		if err != nil || sub.UserID != s.UserID {
			return utils.NotFoundResponse(c, fmt.Sprintf("Document record '%s' not found", recordID))
		}
	}

	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.BodyParser(&body)

	if err := services.SoftDeleteDocument(h.DB, recordID, body.Reason); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusConflict, "deleteDocument")
	}

	return utils.MutationSuccessResponse(c, "Document retired", fiber.Map{"id": recordID})
}

// ownedSubmission resolves the :id submission and enforces ownership for
// non-staff callers, writing the error response itself on failure.
func (h *DocumentHandler) ownedSubmission(c *fiber.Ctx) (*models.FormSubmission, bool, error) {
	s, ok, resp := sessionOrReply(c)
	if !ok {
		return nil, false, resp
	}
	id := c.Params("id")

	sub, err := services.GetSubmission(h.DB, id)
	if err != nil {
		if err.Error() == "not found" {
			return nil, false, utils.NotFoundResponse(c, fmt.Sprintf("Submission '%s' not found", id))
		}
		return nil, false, utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getSubmission")
	}
	if sub.UserID != s.UserID && !isStaff(s) {
		return nil, false, utils.NotFoundResponse(c, fmt.Sprintf("Submission '%s' not found", id))
	}
	return sub, true, nil
}
