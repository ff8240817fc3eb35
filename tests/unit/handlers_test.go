// handlers_test.go
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

package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/coachdesk/onboard/internal/handlers"
	"github.com/coachdesk/onboard/internal/middleware"
	"github.com/coachdesk/onboard/internal/models"
	"github.com/coachdesk/onboard/internal/services"
	"github.com/coachdesk/onboard/internal/storage"
	"github.com/coachdesk/onboard/internal/types"
	"github.com/coachdesk/onboard/tests/helpers"
)

// newTestApp wires the full route table against a fresh database and an
// in-memory object store, mirroring the production setup.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *storage.MemoryStore) {
	t.Helper()

	db := helpers.OpenTestDB(t)
	store := storage.NewMemoryStore()
	secret := helpers.TestJWTSecret

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := err.Error()
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}
			if e, ok := err.(*types.CustomError); ok {
				code = e.Code
				message = e.Message
			}
			return c.Status(code).JSON(fiber.Map{"status": code, "message": message, "ok": false})
		},
	})

	configHandler := &handlers.ConfigurationHandler{DB: db}
	submissionHandler := &handlers.SubmissionHandler{DB: db}
	documentHandler := &handlers.DocumentHandler{DB: db, Store: store}

	api := app.Group("/api")
	api.Get("/form-configurations", middleware.AuthAny(secret), configHandler.ListConfigurations)
	api.Get("/form-configurations/:configId", middleware.AuthAny(secret), configHandler.GetConfiguration)
	api.Post("/form-configurations", middleware.AuthAdmin(secret), configHandler.CreateConfiguration)
	api.Put("/form-configurations/:configId", middleware.AuthAdmin(secret), configHandler.UpdateConfiguration)
	api.Delete("/form-configurations/:configId", middleware.AuthAdmin(secret), configHandler.DeleteConfiguration)
	api.Post("/form-configurations/:configId/clone", middleware.AuthAdmin(secret), configHandler.CloneConfiguration)

	api.Post("/form-submissions", middleware.AuthClient(secret), submissionHandler.CreateSubmission)
	api.Get("/form-submissions", middleware.AuthAny(secret), submissionHandler.ListSubmissions)
	api.Get("/form-submissions/:id", middleware.AuthAny(secret), submissionHandler.GetSubmission)
	api.Put("/form-submissions/:id", middleware.AuthClient(secret), submissionHandler.SaveDraft)
	api.Post("/form-submissions/:id/submit", middleware.AuthClient(secret), submissionHandler.Submit)
	api.Post("/form-submissions/:id/review", middleware.AuthCoach(secret), submissionHandler.Review)
	api.Post("/form-submissions/:id/decision", middleware.AuthCoach(secret), submissionHandler.Decide)
	api.Delete("/form-submissions/:id", middleware.AuthClient(secret), submissionHandler.DeleteSubmission)

	api.Get("/form-submissions/:id/documents", middleware.AuthAny(secret), documentHandler.ListDocuments)
	api.Get("/form-submissions/:id/documents/status", middleware.AuthAny(secret), documentHandler.GetDocumentStatus)
	api.Post("/form-submissions/:id/documents/:documentId/upload", middleware.AuthAny(secret), documentHandler.UploadDocument)
	api.Get("/documents/:recordId/download", middleware.AuthAny(secret), documentHandler.GetDownloadURL)
	api.Post("/documents/:recordId/verify", middleware.AuthCoach(secret), documentHandler.VerifyDocument)
	api.Delete("/documents/:recordId", middleware.AuthAny(secret), documentHandler.DeleteDocument)

	return app, db, store
}

func jsonRequest(t *testing.T, method, url, token string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	return resp
}

// configurationPayload is a valid authoring body for POST /form-configurations.
func configurationPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":            "Basic Intake",
		"form_type":       "single-applicant",
		"version":         "1.0.0",
		"description":     "Intake form",
		"applicantconfig": "single",
		"sections": []map[string]interface{}{
			{
				"id":          "contact",
				"title":       "Contact",
				"description": "How to reach you",
				"order":       1,
				"required":    true,
				"fields": []map[string]interface{}{
					{"id": "contact-name", "name": "full_name", "type": "text", "label": "Full Name", "required": true},
				},
			},
		},
		"consent_forms": []map[string]interface{}{
			{"id": "privacy", "title": "Privacy", "content": "Privacy terms", "enabled": true, "required": true},
		},
		"documents": []map[string]interface{}{
			{"id": "id-card", "name": "ID Card", "maxSize": 5, "required": true, "acceptedTypes": []string{"pdf"}},
		},
	}
}

func TestAuthRequired(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := doRequest(t, app, jsonRequest(t, "GET", "/api/form-configurations", "", nil))
	helpers.AssertStatus(t, resp, fiber.StatusUnauthorized)

	resp = doRequest(t, app, jsonRequest(t, "GET", "/api/form-configurations",
		helpers.SignExpiredToken(t, "client-1", "client"), nil))
	helpers.AssertStatus(t, resp, fiber.StatusUnauthorized)

	req := jsonRequest(t, "GET", "/api/form-configurations", "", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp = doRequest(t, app, req)
	helpers.AssertStatus(t, resp, fiber.StatusForbidden)
}

func TestRoleEnforcement(t *testing.T) {
	app, _, _ := newTestApp(t)
	clientToken := helpers.SignToken(t, "client-1", "client", "")

	// Clients cannot author configurations.
	resp := doRequest(t, app, jsonRequest(t, "POST", "/api/form-configurations", clientToken, configurationPayload()))
	helpers.AssertStatus(t, resp, fiber.StatusForbidden)

	// Coaches cannot either; authoring is admin-only.
	coachToken := helpers.SignToken(t, "coach-1", "coach", "")
	resp = doRequest(t, app, jsonRequest(t, "POST", "/api/form-configurations", coachToken, configurationPayload()))
	helpers.AssertStatus(t, resp, fiber.StatusForbidden)

	// Clients cannot review submissions.
	resp = doRequest(t, app, jsonRequest(t, "POST", "/api/form-submissions/any/review", clientToken, nil))
	helpers.AssertStatus(t, resp, fiber.StatusForbidden)
}

func TestCreateConfigurationEndpoint(t *testing.T) {
	app, _, _ := newTestApp(t)
	adminToken := helpers.SignToken(t, "admin-1", "admin", "")

	resp := doRequest(t, app, jsonRequest(t, "POST", "/api/form-configurations", adminToken, configurationPayload()))
	helpers.AssertStatus(t, resp, fiber.StatusCreated)

	var created models.FormConfiguration
	helpers.ParseJSON(t, resp, &created)
	if created.ConfigID == "" {
		t.Error("Expected a config_id on the created configuration")
	}
	if !created.IsActive {
		t.Error("Expected new configurations to start active")
	}
	if created.CreatedByID != "admin-1" {
		t.Errorf("Expected created_by_id admin-1, got %s", created.CreatedByID)
	}
}

func TestCreateConfigurationValidation(t *testing.T) {
	app, _, _ := newTestApp(t)
	adminToken := helpers.SignToken(t, "admin-1", "admin", "")

	payload := configurationPayload()
	payload["name"] = ""
	delete(payload, "sections")

	resp := doRequest(t, app, jsonRequest(t, "POST", "/api/form-configurations", adminToken, payload))
	helpers.AssertStatus(t, resp, fiber.StatusUnprocessableEntity)
	helpers.AssertViolation(t, resp, "configuration name is required")
}

func TestConfigurationLenientAuthoringPayload(t *testing.T) {
	app, _, _ := newTestApp(t)
	adminToken := helpers.SignToken(t, "admin-1", "admin", "")

	// maxSize as string, acceptedTypes as a single bare value.
	payload := configurationPayload()
	payload["documents"] = []map[string]interface{}{
		{"id": "id-card", "name": "ID Card", "maxSize": "5", "required": true, "acceptedTypes": "pdf"},
	}

	resp := doRequest(t, app, jsonRequest(t, "POST", "/api/form-configurations", adminToken, payload))
	helpers.AssertStatus(t, resp, fiber.StatusCreated)
}

func TestListConfigurationsVisibility(t *testing.T) {
	app, db, _ := newTestApp(t)
	adminToken := helpers.SignToken(t, "admin-1", "admin", "")
	clientToken := helpers.SignToken(t, "client-1", "client", "")

	active := helpers.CreateTestConfiguration(t, db, helpers.SimpleDefinition())
	hidden := helpers.CreateTestConfiguration(t, db, helpers.JointDefinition())
	off := false
	if _, _, err := services.UpdateConfiguration(db, hidden.ID, helpers.JointDefinition(), &off); err != nil {
		t.Fatalf("Failed to deactivate configuration: %v", err)
	}

	// Clients only see active configurations.
	resp := doRequest(t, app, jsonRequest(t, "GET", "/api/form-configurations", clientToken, nil))
	helpers.AssertStatus(t, resp, fiber.StatusOK)
	var clientView []models.FormConfiguration
	helpers.ParseJSON(t, resp, &clientView)
	if len(clientView) != 1 || clientView[0].ConfigID != active.ConfigID {
		t.Errorf("Expected clients to see only the active configuration, got %d", len(clientView))
	}

	// Staff see everything.
	resp = doRequest(t, app, jsonRequest(t, "GET", "/api/form-configurations", adminToken, nil))
	helpers.AssertStatus(t, resp, fiber.StatusOK)
	var staffView []models.FormConfiguration
	helpers.ParseJSON(t, resp, &staffView)
	if len(staffView) != 2 {
		t.Errorf("Expected staff to see 2 configurations, got %d", len(staffView))
	}

	// Inactive configurations 404 for clients on direct fetch.
	resp = doRequest(t, app, jsonRequest(t, "GET", "/api/form-configurations/"+hidden.ConfigID, clientToken, nil))
	helpers.AssertStatus(t, resp, fiber.StatusNotFound)
	resp = doRequest(t, app, jsonRequest(t, "GET", "/api/form-configurations/"+hidden.ConfigID, adminToken, nil))
	helpers.AssertStatus(t, resp, fiber.StatusOK)
}

func TestListConfigurationsEmpty(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := doRequest(t, app, jsonRequest(t, "GET", "/api/form-configurations",
		helpers.SignToken(t, "admin-1", "admin", ""), nil))
	helpers.AssertStatus(t, resp, fiber.StatusNoContent)
	helpers.AssertNoContent(t, resp)
}

func TestCloneConfigurationEndpoint(t *testing.T) {
	app, db, _ := newTestApp(t)
	adminToken := helpers.SignToken(t, "admin-1", "admin", "")
	source := helpers.CreateTestConfiguration(t, db, helpers.SimpleDefinition())

	resp := doRequest(t, app, jsonRequest(t, "POST",
		"/api/form-configurations/"+source.ConfigID+"/clone", adminToken,
		map[string]string{"name": "Copy of Basic Intake"}))
	helpers.AssertStatus(t, resp, fiber.StatusCreated)

	var clone models.FormConfiguration
	helpers.ParseJSON(t, resp, &clone)
	if clone.ConfigID == source.ConfigID {
		t.Error("Expected the clone to get a fresh config_id")
	}
	if clone.IsActive {
		t.Error("Expected the clone to start inactive")
	}
	if clone.Name != "Copy of Basic Intake" {
		t.Errorf("Expected renamed clone, got %q", clone.Name)
	}

	// An empty body falls back to a name derived from the source.
	resp = doRequest(t, app, jsonRequest(t, "POST",
		"/api/form-configurations/"+source.ConfigID+"/clone", adminToken, nil))
	helpers.AssertStatus(t, resp, fiber.StatusCreated)
	helpers.ParseJSON(t, resp, &clone)
	if clone.Name != "Basic Intake (Copy)" {
		t.Errorf("Expected defaulted clone name, got %q", clone.Name)
	}
}

func TestSubmissionLifecycleEndpoints(t *testing.T) {
	app, db, _ := newTestApp(t)
	clientToken := helpers.SignToken(t, "client-1", "client", "coach-1")
	coachToken := helpers.SignToken(t, "coach-1", "coach", "")
	config := helpers.CreateTestConfiguration(t, db, helpers.SimpleDefinition())

	// Create a draft.
	resp := doRequest(t, app, jsonRequest(t, "POST", "/api/form-submissions", clientToken,
		map[string]string{"form_config_id": config.ConfigID}))
	helpers.AssertStatus(t, resp, fiber.StatusCreated)
	var sub models.FormSubmission
	helpers.ParseJSON(t, resp, &sub)
	if sub.Status != models.StatusDraft {
		t.Fatalf("Expected draft status, got %s", sub.Status)
	}

	// Submitting the empty draft lists every gap.
	resp = doRequest(t, app, jsonRequest(t, "POST", "/api/form-submissions/"+sub.ID+"/submit", clientToken, nil))
	helpers.AssertStatus(t, resp, fiber.StatusUnprocessableEntity)
	helpers.AssertViolation(t, resp, "Full Name is required")
	helpers.AssertViolation(t, resp, "must be agreed")

	// Fill the draft.
	formData := map[string]interface{}{
		"contact":    map[string]interface{}{"full_name": "Ada Lovelace", "email": "ada@example.com"},
		"__consents": map[string]bool{"privacy": true},
	}
	resp = doRequest(t, app, jsonRequest(t, "PUT", "/api/form-submissions/"+sub.ID, clientToken, formData))
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	// Submit for real.
	resp = doRequest(t, app, jsonRequest(t, "POST", "/api/form-submissions/"+sub.ID+"/submit", clientToken, nil))
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	// Editing after submit conflicts.
	resp = doRequest(t, app, jsonRequest(t, "PUT", "/api/form-submissions/"+sub.ID, clientToken, formData))
	helpers.AssertStatus(t, resp, fiber.StatusConflict)

	// Coach reviews, then approves.
	resp = doRequest(t, app, jsonRequest(t, "POST", "/api/form-submissions/"+sub.ID+"/review", coachToken,
		map[string]string{"notes": "complete"}))
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	resp = doRequest(t, app, jsonRequest(t, "POST", "/api/form-submissions/"+sub.ID+"/decision", coachToken,
		map[string]interface{}{"approve": true}))
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	resp = doRequest(t, app, jsonRequest(t, "GET", "/api/form-submissions/"+sub.ID, clientToken, nil))
	helpers.AssertStatus(t, resp, fiber.StatusOK)
	var final models.FormSubmission
	helpers.ParseJSON(t, resp, &final)
	if final.Status != models.StatusApproved {
		t.Errorf("Expected approved, got %s", final.Status)
	}
}

func TestSubmissionOwnership(t *testing.T) {
	app, db, _ := newTestApp(t)
	config := helpers.CreateTestConfiguration(t, db, helpers.SimpleDefinition())
	ownerToken := helpers.SignToken(t, "client-1", "client", "")
	strangerToken := helpers.SignToken(t, "client-2", "client", "")

	resp := doRequest(t, app, jsonRequest(t, "POST", "/api/form-submissions", ownerToken,
		map[string]string{"form_config_id": config.ConfigID}))
	helpers.AssertStatus(t, resp, fiber.StatusCreated)
	var sub models.FormSubmission
	helpers.ParseJSON(t, resp, &sub)

	// Strangers get a 404, not a 403, so ids stay unguessable.
	resp = doRequest(t, app, jsonRequest(t, "GET", "/api/form-submissions/"+sub.ID, strangerToken, nil))
	helpers.AssertStatus(t, resp, fiber.StatusNotFound)

	resp = doRequest(t, app, jsonRequest(t, "DELETE", "/api/form-submissions/"+sub.ID, strangerToken, nil))
	helpers.AssertStatus(t, resp, fiber.StatusNotFound)

	// Staff can read any submission.
	resp = doRequest(t, app, jsonRequest(t, "GET", "/api/form-submissions/"+sub.ID,
		helpers.SignToken(t, "coach-1", "coach", ""), nil))
	helpers.AssertStatus(t, resp, fiber.StatusOK)
}

func TestDecisionRequiresApproveFlag(t *testing.T) {
	app, _, _ := newTestApp(t)
	coachToken := helpers.SignToken(t, "coach-1", "coach", "")

	resp := doRequest(t, app, jsonRequest(t, "POST", "/api/form-submissions/any/decision", coachToken,
		map[string]string{"notes": "no flag"}))
	helpers.AssertStatus(t, resp, fiber.StatusBadRequest)
}

func TestDeleteSubmissionEndpoint(t *testing.T) {
	app, db, _ := newTestApp(t)
	config := helpers.CreateTestConfiguration(t, db, helpers.SimpleDefinition())
	clientToken := helpers.SignToken(t, "client-1", "client", "")

	resp := doRequest(t, app, jsonRequest(t, "POST", "/api/form-submissions", clientToken,
		map[string]string{"form_config_id": config.ConfigID}))
	var sub models.FormSubmission
	helpers.ParseJSON(t, resp, &sub)

	resp = doRequest(t, app, jsonRequest(t, "DELETE", "/api/form-submissions/"+sub.ID, clientToken, nil))
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	resp = doRequest(t, app, jsonRequest(t, "GET", "/api/form-submissions/"+sub.ID, clientToken, nil))
	helpers.AssertStatus(t, resp, fiber.StatusNotFound)
}
