package services

import (
	"encoding/json"
	"fmt"

	"github.com/coachdesk/onboard/data"
	"github.com/coachdesk/onboard/internal/models"
	"github.com/coachdesk/onboard/internal/schema"
	"gorm.io/gorm"
)

// EnsureSeedConfiguration installs the bundled demo configuration when no
// configuration of its form type exists yet. Idempotent across restarts.
func EnsureSeedConfiguration(db *gorm.DB) error {
	var def schema.Definition
	if err := json.Unmarshal(data.SeedFinancialProfile, &def); err != nil {
		return fmt.Errorf("decode seed configuration: %w", err)
	}

	var count int64
	err := db.Model(&models.FormConfiguration{}).
		Where("form_type = ?", def.FormType).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, violations, err := CreateConfiguration(db, &def, "seed")
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		return fmt.Errorf("seed configuration is invalid: %v", violations)
	}
	return nil
}
