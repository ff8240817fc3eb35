package models

import (
	"encoding/json"
	"time"

	"github.com/coachdesk/onboard/internal/schema"
)

// FormConfiguration is a persisted form schema. ConfigID is the stable
// external identifier submissions reference; ID is the storage identifier
// some authoring APIs key by. The two are distinct namespaces.
type FormConfiguration struct {
	ID              uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	ConfigID        string         `gorm:"type:char(36);uniqueIndex;not null" json:"config_id"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	FormType        string         `gorm:"size:64;not null;index" json:"form_type"`
	Version         string         `gorm:"size:32;not null" json:"version"`
	Description     string         `gorm:"size:1024" json:"description"`
	ApplicantConfig string         `gorm:"size:16;not null;default:single" json:"applicantconfig"`
	Sections        JSON           `json:"sections"`
	ConsentForms    JSON           `json:"consent_forms"`
	Documents       JSON           `json:"documents"`
	IsActive        bool           `gorm:"not null;default:true;index" json:"is_active"`
	UsageCount      uint64         `gorm:"not null;default:0" json:"usage_count"`
	LastUsedAt      *time.Time     `json:"last_used_at,omitempty"`
	CreatedByID     string         `gorm:"type:char(36);index" json:"created_by_id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// TableName overrides the table name for FormConfiguration
func (FormConfiguration) TableName() string {
	return "form_configurations"
}

// Definition decodes the stored schema columns into the in-memory definition
// the validation and interpreter engines work with.
func (c *FormConfiguration) Definition() (*schema.Definition, error) {
	def := &schema.Definition{
		ConfigID:        c.ConfigID,
		Name:            c.Name,
		FormType:        schema.FormType(c.FormType),
		Version:         c.Version,
		Description:     c.Description,
		ApplicantConfig: schema.ApplicantConfig(c.ApplicantConfig),
	}
	if len(c.Sections.Bytes()) > 0 {
		if err := json.Unmarshal(c.Sections.Bytes(), &def.Sections); err != nil {
			return nil, err
		}
	}
	if len(c.ConsentForms.Bytes()) > 0 {
		if err := json.Unmarshal(c.ConsentForms.Bytes(), &def.ConsentForms); err != nil {
			return nil, err
		}
	}
	if len(c.Documents.Bytes()) > 0 {
		if err := json.Unmarshal(c.Documents.Bytes(), &def.Documents); err != nil {
			return nil, err
		}
	}
	return def, nil
}

// ApplyDefinition encodes a definition into the storage columns. ConfigID is
// left untouched; it is owned by the row.
func (c *FormConfiguration) ApplyDefinition(def *schema.Definition) error {
	sections, err := json.Marshal(def.Sections)
	if err != nil {
		return err
	}
	consents, err := json.Marshal(def.ConsentForms)
	if err != nil {
		return err
	}
	documents, err := json.Marshal(def.Documents)
	if err != nil {
		return err
	}

	c.Name = def.Name
	c.FormType = string(def.FormType)
	c.Version = def.Version
	c.Description = def.Description
	c.ApplicantConfig = string(def.ApplicantConfig)
	c.Sections = NewJSON(sections)
	c.ConsentForms = NewJSON(consents)
	c.Documents = NewJSON(documents)
	return nil
}
