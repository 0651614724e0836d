package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Package pricing mode constants
const (
	PackagePricingFlat   = "FLAT"   // one price regardless of guest count
	PackagePricingTiered = "TIERED" // base price up to a threshold, per-guest increment beyond
)

// MenuPackage represents a predefined catering bundle from the catalog.
// The offer engine reads packages but never writes them.
type MenuPackage struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Pricing policy
	PricingMode        string  `gorm:"not null;default:FLAT" json:"pricing_mode"`
	BasePrice          float64 `gorm:"not null;default:0" json:"base_price"`
	IncludedGuests     int     `gorm:"not null;default:0" json:"included_guests"`       // tiered: guests covered by the base price
	PricePerExtraGuest float64 `gorm:"not null;default:0" json:"price_per_extra_guest"` // tiered: per guest beyond the threshold

	IsActive  bool `gorm:"not null;default:true" json:"is_active"`
	SortOrder int  `gorm:"not null;default:0" json:"sort_order"`
}

// BeforeCreate hook to generate UUID
func (p *MenuPackage) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for MenuPackage model
func (MenuPackage) TableName() string {
	return "menu_packages"
}

// IsTiered checks if the package uses threshold-based pricing
func (p *MenuPackage) IsTiered() bool {
	return p.PricingMode == PackagePricingTiered
}
