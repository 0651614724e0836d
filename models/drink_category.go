package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DrinkCategory represents a configurable drink group in the catalog,
// e.g. "aperitif", "wine", "non-alcoholic"
type DrinkCategory struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Category metadata
	Key       string `gorm:"not null;uniqueIndex" json:"key"` // e.g. "wine", "aperitif"
	Name      string `gorm:"not null" json:"name"`            // Human-readable name
	SortOrder int    `gorm:"not null;default:0" json:"sort_order"`
	IsActive  bool   `gorm:"not null;default:true" json:"is_active"`

	// Relationships
	Options []DrinkOption `gorm:"foreignKey:CategoryID" json:"options,omitempty"`
}

// BeforeCreate hook to generate UUID
func (dc *DrinkCategory) BeforeCreate(tx *gorm.DB) error {
	if dc.ID == "" {
		dc.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for DrinkCategory model
func (DrinkCategory) TableName() string {
	return "drink_categories"
}
