package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course type constants
const (
	CourseStarter = "STARTER"
	CourseMain    = "MAIN"
	CourseSide    = "SIDE"
	CourseDessert = "DESSERT"
)

// Dish represents a selectable dish from the menu catalog (read-only to the engine)
type Dish struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name         string  `gorm:"not null" json:"name"`
	Course       string  `gorm:"not null;index" json:"course"`
	PricePerHead float64 `gorm:"not null;default:0" json:"price_per_head"`
	Description  string  `gorm:"type:text" json:"description,omitempty"`

	IsActive  bool `gorm:"not null;default:true" json:"is_active"`
	SortOrder int  `gorm:"not null;default:0" json:"sort_order"`
}

// BeforeCreate hook to generate UUID
func (d *Dish) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Dish model
func (Dish) TableName() string {
	return "dishes"
}

// IsValidCourse checks if the course type is valid
func IsValidCourse(course string) bool {
	switch course {
	case CourseStarter, CourseMain, CourseSide, CourseDessert:
		return true
	}
	return false
}
