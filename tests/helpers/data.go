// data.go
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

package helpers

import (
	"testing"

	"github.com/coachdesk/onboard/internal/models"
	"github.com/coachdesk/onboard/internal/schema"
	"github.com/coachdesk/onboard/internal/services"
	"gorm.io/gorm"
)

// SimpleDefinition returns a minimal valid single-applicant form schema with
// one required section, one required consent, and one required document.
func SimpleDefinition() *schema.Definition {
	return &schema.Definition{
		Name:            "Basic Intake",
		FormType:        schema.FormTypeSingleApplicant,
		Version:         "1.0.0",
		ApplicantConfig: schema.ApplicantConfigSingle,
		Sections: []schema.Section{
			{
				ID:          "contact",
				Title:       "Contact",
				Description: "How to reach you",
				Order:       1,
				Required:    true,
				Fields: []schema.FormField{
					{ID: "contact-name", Name: "full_name", Type: schema.FieldText, Label: "Full Name", Required: true},
					{ID: "contact-email", Name: "email", Type: schema.FieldEmail, Label: "Email", Required: true},
				},
			},
		},
		ConsentForms: []schema.ConsentForm{
			{ID: "privacy", Title: "Privacy", Content: "Privacy terms", Enabled: true, Required: true, CheckboxText: "I agree"},
		},
		Documents: []schema.DocumentRequirement{
			{ID: "id-card", Name: "ID Card", MaxSizeMB: 5, Required: true, AcceptedTypes: []string{".pdf", ".jpg"}},
		},
	}
}

// JointDefinition returns a valid joint-applicant schema with a prefillable
// section and two document requirements.
func JointDefinition() *schema.Definition {
	def := SimpleDefinition()
	def.Name = "Joint Intake"
	def.FormType = schema.FormTypeDualApplicant
	def.ApplicantConfig = schema.ApplicantConfigJoint
	def.Sections = append(def.Sections, schema.Section{
		ID:            "income",
		Title:         "Income",
		Description:   "Monthly income",
		Order:         2,
		Required:      false,
		PrefillSource: schema.PrefillIncome,
	})
	def.Documents = append(def.Documents, schema.DocumentRequirement{
		ID: "salary-statement", Name: "Salary Statement", MaxSizeMB: 10, Required: true, AcceptedTypes: []string{".pdf"},
	})
	return def
}

// CreateTestConfiguration installs a configuration and fails the test on any
// schema violation.
func CreateTestConfiguration(t *testing.T, db *gorm.DB, def *schema.Definition) *models.FormConfiguration {
	t.Helper()
	config, violations, err := services.CreateConfiguration(db, def, "test-admin")
	if err != nil {
		t.Fatalf("Failed to create configuration: %v", err)
	}
	if len(violations) > 0 {
		t.Fatalf("Configuration rejected: %v", violations)
	}
	return config
}

// CreateTestClientProfile seeds a client profile with coach assignment and
// contact details for prefill tests.
func CreateTestClientProfile(t *testing.T, db *gorm.DB, userID, coachID string) {
	t.Helper()
	profile := models.ClientProfile{
		UserID:    userID,
		CoachID:   coachID,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "+49 30 1234567",
		City:      "Berlin",
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("Failed to create client profile: %v", err)
	}
}

// CreateTestIncomeRecord seeds an income record for prefill tests.
func CreateTestIncomeRecord(t *testing.T, db *gorm.DB, userID string) {
	t.Helper()
	rec := models.IncomeRecord{
		UserID:           userID,
		GrossIncome:      5200,
		NetIncome:        3400,
		TaxClass:         "1",
		NumberOfSalaries: 13,
	}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("Failed to create income record: %v", err)
	}
}
