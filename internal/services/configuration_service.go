package services

import (
	"fmt"
	"time"

	"github.com/coachdesk/onboard/internal/models"
	"github.com/coachdesk/onboard/internal/schema"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConfigurationFilters narrows configuration listings.
type ConfigurationFilters struct {
	FormType    string
	IsActive    *bool
	Search      string
	CreatedByID string
}

// ListConfigurations retrieves configurations matching the filters, newest
// first. Clients listing available forms pass IsActive=true; inactive
// configurations never appear in that listing.
func ListConfigurations(db *gorm.DB, f ConfigurationFilters) ([]models.FormConfiguration, error) {
	query := db.Model(&models.FormConfiguration{})
	if f.FormType != "" {
		query = query.Where("form_type = ?", f.FormType)
	}
	if f.IsActive != nil {
		query = query.Where("is_active = ?", *f.IsActive)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if f.CreatedByID != "" {
		query = query.Where("created_by_id = ?", f.CreatedByID)
	}

	var configs []models.FormConfiguration
	if err := query.Order("created_at DESC").Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

// GetConfigurationByConfigID fetches one configuration by its stable external
// identifier.
func GetConfigurationByConfigID(db *gorm.DB, configID string) (*models.FormConfiguration, error) {
	var config models.FormConfiguration
	err := db.Where("config_id = ?", configID).First(&config).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}
	return &config, nil
}

// GetConfigurationByID fetches one configuration by its storage identifier.
func GetConfigurationByID(db *gorm.DB, id uint64) (*models.FormConfiguration, error) {
	var config models.FormConfiguration
	err := db.First(&config, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}
	return &config, nil
}

// CreateConfiguration validates and persists a new configuration. Validation
// violations are returned as a list; the configuration is only created when
// the list is empty.
func CreateConfiguration(db *gorm.DB, def *schema.Definition, createdByID string) (*models.FormConfiguration, []string, error) {
	if violations := schema.ValidateConfiguration(def); len(violations) > 0 {
		return nil, violations, nil
	}

	config := &models.FormConfiguration{
		ConfigID:    uuid.New().String(),
		IsActive:    true,
		CreatedByID: createdByID,
	}
	if err := config.ApplyDefinition(def); err != nil {
		return nil, nil, err
	}
	if err := db.Create(config).Error; err != nil {
		return nil, nil, err
	}
	return config, nil, nil
}

// UpdateConfiguration validates and replaces an existing configuration's
// definition. IsActive toggles the publish flag when non-nil.
func UpdateConfiguration(db *gorm.DB, id uint64, def *schema.Definition, isActive *bool) (*models.FormConfiguration, []string, error) {
	if violations := schema.ValidateConfiguration(def); len(violations) > 0 {
		return nil, violations, nil
	}

	config, err := GetConfigurationByID(db, id)
	if err != nil {
		return nil, nil, err
	}
	if err := config.ApplyDefinition(def); err != nil {
		return nil, nil, err
	}
	if isActive != nil {
		config.IsActive = *isActive
	}
	if err := db.Save(config).Error; err != nil {
		return nil, nil, err
	}
	return config, nil, nil
}

// DeleteConfiguration removes a configuration permanently. Unpublishing
// without deletion goes through UpdateConfiguration's IsActive flag instead.
func DeleteConfiguration(db *gorm.DB, id uint64) error {
	result := db.Delete(&models.FormConfiguration{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("not found")
	}
	return nil
}

// CloneConfiguration duplicates a configuration under a new name and a fresh
// config id. An empty name falls back to the source name with a " (Copy)"
// suffix. The clone starts inactive so it can be reviewed before publishing,
// with usage counters reset.
func CloneConfiguration(db *gorm.DB, id uint64, name string) (*models.FormConfiguration, error) {
	source, err := GetConfigurationByID(db, id)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = source.Name + " (Copy)"
	}

	clone := *source
	clone.ID = 0
	clone.ConfigID = uuid.New().String()
	clone.Name = name
	clone.IsActive = false
	clone.UsageCount = 0
	clone.LastUsedAt = nil
	clone.CreatedAt = time.Time{}
	clone.UpdatedAt = time.Time{}

	// is_active carries a DB default of true, which Create would write for
	// the zero value; the explicit update keeps the clone unpublished.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&clone).Error; err != nil {
			return err
		}
		return tx.Model(&clone).Update("is_active", false).Error
	})
	if err != nil {
		return nil, err
	}
	return &clone, nil
}

// touchConfigurationUsage bumps the denormalized usage counters on
// submission creation.
func touchConfigurationUsage(tx *gorm.DB, configID string) error {
	now := time.Now().UTC()
	return tx.Model(&models.FormConfiguration{}).
		Where("config_id = ?", configID).
		Updates(map[string]interface{}{
			"usage_count":  gorm.Expr("usage_count + 1"),
			"last_used_at": now,
		}).Error
}
