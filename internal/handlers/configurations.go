// configurations.go
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
	"strconv"

	"github.com/coachdesk/onboard/internal/schema"
	"github.com/coachdesk/onboard/internal/services"
	"github.com/coachdesk/onboard/internal/types"
	"github.com/coachdesk/onboard/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ConfigurationHandler handles form configuration routes
type ConfigurationHandler struct {
	DB *gorm.DB
}

// documentRequirementInput tolerates lenient authoring payloads: maxSize as
// number or string, acceptedTypes as one value or an array.
type documentRequirementInput struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	MaxSize       types.FlexUint64       `json:"maxSize"`
	Required      bool                   `json:"required"`
	AcceptedTypes types.FlexList[string] `json:"acceptedTypes"`
}

// configurationInput is the authoring request body for create and update.
type configurationInput struct {
	Name            string                                    `json:"name"`
	FormType        string                                    `json:"form_type"`
	Version         string                                    `json:"version"`
	Description     string                                    `json:"description"`
	ApplicantConfig string                                    `json:"applicantconfig"`
	Sections        types.FlexList[schema.Section]            `json:"sections"`
	ConsentForms    types.FlexList[schema.ConsentForm]        `json:"consent_forms"`
	Documents       types.FlexList[documentRequirementInput]  `json:"documents"`
	IsActive        *bool                                     `json:"is_active"`
}

func (in *configurationInput) definition() *schema.Definition {
	docs := make([]schema.DocumentRequirement, 0, len(in.Documents))
	for _, d := range in.Documents.Slice() {
		docs = append(docs, schema.DocumentRequirement{
			ID:            d.ID,
			Name:          d.Name,
			Description:   d.Description,
			MaxSizeMB:     int64(d.MaxSize.Uint64()),
			Required:      d.Required,
			AcceptedTypes: d.AcceptedTypes.Slice(),
		})
	}
	return &schema.Definition{
		Name:            in.Name,
		FormType:        schema.FormType(in.FormType),
		Version:         in.Version,
		Description:     in.Description,
		ApplicantConfig: schema.ApplicantConfig(in.ApplicantConfig),
		Sections:        in.Sections.Slice(),
		ConsentForms:    in.ConsentForms.Slice(),
		Documents:       docs,
	}
}

// ListConfigurations handles GET /api/form-configurations
// @Summary List form configurations
// @Description List form configurations with optional type/active/search filters
// @Tags Configurations
// @Accept json
// @Produce json
// @Param form_type query string false "Filter by form type"
// @Param is_active query bool false "Filter by active flag"
// @Param search query string false "Substring match on name or description"
// @Success 200 {array} models.FormConfiguration
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /form-configurations [get]
func (h *ConfigurationHandler) ListConfigurations(c *fiber.Ctx) error {
	s, ok, resp := sessionOrReply(c)
	if !ok {
		return resp
	}

	filters := services.ConfigurationFilters{
		FormType: c.Query("form_type"),
		Search:   c.Query("search"),
	}
	if v := c.Query("is_active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return utils.ErrorResponse(c, "Invalid is_active value", fiber.StatusBadRequest, "onboard.validation.input")
		}
		filters.IsActive = &active
	}
	// Clients only ever see active configurations.
	if !isStaff(s) {
		active := true
		filters.IsActive = &active
	}

	configs, err := services.ListConfigurations(h.DB, filters)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listConfigurations")
	}

	if len(configs) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.Status(fiber.StatusOK).JSON(configs)
}

// GetConfiguration handles GET /api/form-configurations/:configId
// @Summary Get a form configuration
// @Description Get one form configuration by its stable config id
// @Tags Configurations
// @Accept json
// @Produce json
// @Param configId path string true "Configuration ID"
// @Success 200 {object} models.FormConfiguration
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /form-configurations/{configId} [get]
func (h *ConfigurationHandler) GetConfiguration(c *fiber.Ctx) error {
	s, ok, resp := sessionOrReply(c)
	if !ok {
		return resp
	}
	configID := c.Params("configId")

	config, err := services.GetConfigurationByConfigID(h.DB, configID)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, fmt.Sprintf("Configuration '%s' not found", configID))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getConfiguration")
	}
	if !config.IsActive && !isStaff(s) {
		return utils.NotFoundResponse(c, fmt.Sprintf("Configuration '%s' not found", configID))
	}

	return c.Status(fiber.StatusOK).JSON(config)
}

// CreateConfiguration handles POST /api/form-configurations
// @Summary Create a form configuration
// @Description Create a new form configuration from an authored schema
// @Tags Configurations
// @Accept json
// @Produce json
// @Param body body handlers.configurationInput true "Configuration schema"
// @Success 201 {object} models.FormConfiguration
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /form-configurations [post]
func (h *ConfigurationHandler) CreateConfiguration(c *fiber.Ctx) error {
	s, ok, resp := sessionOrReply(c)
	if !ok {
		return resp
	}

	var body configurationInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "onboard.validation.input")
	}

	config, violations, err := services.CreateConfiguration(h.DB, body.definition(), s.UserID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createConfiguration")
	}
	if len(violations) > 0 {
		return utils.ValidationErrorResponse(c, "Configuration schema is invalid", violations)
	}

	return c.Status(fiber.StatusCreated).JSON(config)
}

// UpdateConfiguration handles PUT /api/form-configurations/:configId
// @Summary Update a form configuration
// @Description Replace the schema and active flag of a configuration
// @Tags Configurations
// @Accept json
// @Produce json
// @Param configId path string true "Configuration ID"
// @Param body body handlers.configurationInput true "Configuration schema"
// @Success 200 {object} models.FormConfiguration
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /form-configurations/{configId} [put]
func (h *ConfigurationHandler) UpdateConfiguration(c *fiber.Ctx) error {
	configID := c.Params("configId")

	existing, err := services.GetConfigurationByConfigID(h.DB, configID)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, fmt.Sprintf("Configuration '%s' not found", configID))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateConfiguration")
	}

	var body configurationInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "onboard.validation.input")
	}

	config, violations, err := services.UpdateConfiguration(h.DB, existing.ID, body.definition(), body.IsActive)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateConfiguration")
	}
	if len(violations) > 0 {
		return utils.ValidationErrorResponse(c, "Configuration schema is invalid", violations)
	}

	return c.Status(fiber.StatusOK).JSON(config)
}

// DeleteConfiguration handles DELETE /api/form-configurations/:configId
// @Summary Delete a form configuration
// @Description Delete a configuration that is no longer needed
// @Tags Configurations
// @Accept json
// @Produce json
// @Param configId path string true "Configuration ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /form-configurations/{configId} [delete]
func (h *ConfigurationHandler) DeleteConfiguration(c *fiber.Ctx) error {
	configID := c.Params("configId")

	existing, err := services.GetConfigurationByConfigID(h.DB, configID)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, fmt.Sprintf("Configuration '%s' not found", configID))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteConfiguration")
	}

	if err := services.DeleteConfiguration(h.DB, existing.ID); err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, fmt.Sprintf("Configuration '%s' not found", configID))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteConfiguration")
	}

	return utils.MutationSuccessResponse(c, "Configuration deleted", fiber.Map{"config_id": configID})
}

// CloneConfiguration handles POST /api/form-configurations/:configId/clone
// @Summary Clone a form configuration
// @Description Copy a configuration into a new inactive draft with a fresh id
// @Tags Configurations
// @Accept json
// @Produce json
// @Param configId path string true "Configuration ID"
// @Param body body object false "Optional new name"
// @Success 201 {object} models.FormConfiguration
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /form-configurations/{configId}/clone [post]
func (h *ConfigurationHandler) CloneConfiguration(c *fiber.Ctx) error {
	configID := c.Params("configId")

	existing, err := services.GetConfigurationByConfigID(h.DB, configID)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, fmt.Sprintf("Configuration '%s' not found", configID))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "cloneConfiguration")
	}

	var body struct {
		Name string `json:"name"`
	}
	// Body is optional for clone
	_ = c.BodyParser(&body)

	clone, err := services.CloneConfiguration(h.DB, existing.ID, body.Name)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "cloneConfiguration")
	}

	return c.Status(fiber.StatusCreated).JSON(clone)
}
