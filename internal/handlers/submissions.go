// submissions.go
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

	"github.com/coachdesk/onboard/internal/services"
	"github.com/coachdesk/onboard/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SubmissionHandler handles form submission routes
type SubmissionHandler struct {
	DB *gorm.DB
}

// CreateSubmission handles POST /api/form-submissions
// @Summary Create a form submission
// @Description Start a new draft submission, prefilled from the client's records
// @Tags Submissions
// @Accept json
// @Produce json
// @Param body body object true "form_config_id of the configuration to fill"
// @Success 201 {object} models.FormSubmission
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /form-submissions [post]
func (h *SubmissionHandler) CreateSubmission(c *fiber.Ctx) error {
	s, ok, resp := sessionOrReply(c)
	if !ok {
		return resp
	}

	var body struct {
		FormConfigID string `json:"form_config_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.FormConfigID == "" {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "onboard.validation.input")
	}

	sub, err := services.CreateSubmission(h.DB, body.FormConfigID, s.UserID, services.ClientRecordSource{DB: h.DB})
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, fmt.Sprintf("Configuration '%s' not found", body.FormConfigID))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createSubmission")
	}

	return c.Status(fiber.StatusCreated).JSON(sub)
}

// ListSubmissions handles GET /api/form-submissions
// @Summary List form submissions
// @Description List the caller's submissions; staff may list any user's via user_id
// @Tags Submissions
// @Accept json
// @Produce json
// @Param user_id query string false "Target user (staff only)"
// @Param statuses query string false "Comma-separated status filter"
// @Success 200 {array} models.FormSubmission
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /form-submissions [get]
func (h *SubmissionHandler) ListSubmissions(c *fiber.Ctx) error {
	s, ok, resp := sessionOrReply(c)
	if !ok {
		return resp
	}

	userID := s.UserID
	if target := c.Query("user_id"); target != "" && isStaff(s) {
		userID = target
	}

	subs, err := services.ListSubmissionsByUser(h.DB, userID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listSubmissions")
	}

	subs = filterByStatus(subs, parseStatuses(c))
	if len(subs) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.Status(fiber.StatusOK).JSON(subs)
}

// GetSubmission handles GET /api/form-submissions/:id
// @Summary Get a form submission
// @Description Get one submission; clients only see their own
// @Tags Submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} models.FormSubmission
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /form-submissions/{id} [get]
func (h *SubmissionHandler) GetSubmission(c *fiber.Ctx) error {
	s, ok, resp := sessionOrReply(c)
	if !ok {
		return resp
	}
	id := c.Params("id")

	sub, err := services.GetSubmission(h.DB, id)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, fmt.Sprintf("Submission '%s' not found", id))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getSubmission")
	}
	if sub.UserID != s.UserID && !isStaff(s) {
		return utils.NotFoundResponse(c, fmt.Sprintf("Submission '%s' not found", id))
	}

	return c.Status(fiber.StatusOK).JSON(sub)
}

// SaveDraft handles PUT /api/form-submissions/:id
// @Summary Save draft form data
// @Description Replace the draft's form data; value problems come back as advisory violations
// @Tags Submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param body body object true "Form data keyed by applicant and section"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /form-submissions/{id} [put]
func (h *SubmissionHandler) SaveDraft(c *fiber.Ctx) error {
	s, ok, resp := sessionOrReply(c)
	if !ok {
		return resp
	}
	id := c.Params("id")

	sub, warnings, err := services.SaveSubmissionDraft(h.DB, id, s.UserID, c.Body())
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, fmt.Sprintf("Submission '%s' not found", id))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusConflict, "saveDraft")
	}

	return utils.MutationSuccessResponse(c, "Draft saved", fiber.Map{
		"submission": sub,
		"warnings":   warnings,
	})
}

// Submit handles POST /api/form-submissions/:id/submit
// @Summary Submit a form submission
// @Description Run the completion gate and move a draft to submitted
// @Tags Submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /form-submissions/{id}/submit [post]
func (h *SubmissionHandler) Submit(c *fiber.Ctx) error {
	s, ok, resp := sessionOrReply(c)
	if !ok {
		return resp
	}
	id := c.Params("id")

	sub, violations, err := services.SubmitSubmission(h.DB, id, s.UserID)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, fmt.Sprintf("Submission '%s' not found", id))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusConflict, "submitSubmission")
	}
	if len(violations) > 0 {
		return utils.ValidationErrorResponse(c, "Submission is incomplete", violations)
	}

	return utils.MutationSuccessResponse(c, "Submission submitted", sub)
}

// Review handles POST /api/form-submissions/:id/review
// @Summary Mark a submission reviewed
// @Description Move a submitted submission to reviewed with optional notes
// @Tags Submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param body body object false "Optional review notes"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /form-submissions/{id}/review [post]
func (h *SubmissionHandler) Review(c *fiber.Ctx) error {
	s, ok, resp := sessionOrReply(c)
	if !ok {
		return resp
	}
	id := c.Params("id")

	var body struct {
		Notes string `json:"notes"`
	}
	_ = c.BodyParser(&body)

	sub, err := services.ReviewSubmission(h.DB, id, s.UserID, body.Notes)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, fmt.Sprintf("Submission '%s' not found", id))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusConflict, "reviewSubmission")
	}

	return utils.MutationSuccessResponse(c, "Submission reviewed", sub)
}

// Decide handles POST /api/form-submissions/:id/decision
// @Summary Decide a reviewed submission
// @Description Approve or reject a reviewed submission
// @Tags Submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param body body object true "approve flag and optional notes"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /form-submissions/{id}/decision [post]
func (h *SubmissionHandler) Decide(c *fiber.Ctx) error {
	s, ok, resp := sessionOrReply(c)
	if !ok {
		return resp
	}
	id := c.Params("id")

	var body struct {
		Approve *bool  `json:"approve"`
		Notes   string `json:"notes"`
	}
	if err := c.BodyParser(&body); err != nil || body.Approve == nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "onboard.validation.input")
	}

	sub, err := services.DecideSubmission(h.DB, id, s.UserID, *body.Approve, body.Notes)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, fmt.Sprintf("Submission '%s' not found", id))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusConflict, "decideSubmission")
	}

	return utils.MutationSuccessResponse(c, "Submission decided", sub)
}

// DeleteSubmission handles DELETE /api/form-submissions/:id
// @Summary Delete a draft submission
// @Description Delete an owned draft along with its document records
// @Tags Submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /form-submissions/{id} [delete]
func (h *SubmissionHandler) DeleteSubmission(c *fiber.Ctx) error {
	s, ok, resp := sessionOrReply(c)
	if !ok {
		return resp
	}
	id := c.Params("id")

	if err := services.DeleteSubmission(h.DB, id, s.UserID); err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, fmt.Sprintf("Submission '%s' not found", id))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusConflict, "deleteSubmission")
	}

	return utils.MutationSuccessResponse(c, "Submission deleted", fiber.Map{"id": id})
}
