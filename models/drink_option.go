package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DrinkOption represents one selectable drink within a category
type DrinkOption struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Category relationship
	CategoryID string        `gorm:"type:uuid;not null;index:idx_drink_opt_cat_sort" json:"category_id"`
	Category   DrinkCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	// Option metadata
	Code      string `gorm:"not null" json:"code"` // Internal value, e.g. "house_red"
	Label     string `gorm:"not null" json:"label"`
	SortOrder int    `gorm:"not null;default:0;index:idx_drink_opt_cat_sort" json:"sort_order"`
	IsActive  bool   `gorm:"not null;default:true" json:"is_active"`
}

// BeforeCreate hook to generate UUID
func (do *DrinkOption) BeforeCreate(tx *gorm.DB) error {
	if do.ID == "" {
		do.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for DrinkOption model
func (DrinkOption) TableName() string {
	return "drink_options"
}
