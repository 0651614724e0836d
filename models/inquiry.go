package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Offer phase constants, in workflow order
const (
	OfferPhaseDraft             = "DRAFT"
	OfferPhaseProposalSent      = "PROPOSAL_SENT"
	OfferPhaseCustomerResponded = "CUSTOMER_RESPONDED"
	OfferPhaseFinalDraft        = "FINAL_DRAFT"
	OfferPhaseFinalSent         = "FINAL_SENT"
	OfferPhaseConfirmed         = "CONFIRMED"
	OfferPhasePaid              = "PAID"
)

// Inquiry source constants (how the customer reached us)
const (
	InquirySourceWebsite = "website"
	InquirySourcePhone   = "phone"
	InquirySourceEmail   = "email"
)

// Inquiry represents a customer request for a catering offer
type Inquiry struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Customer contact
	CustomerName  string `gorm:"not null" json:"customer_name"`
	CustomerEmail string `gorm:"not null;index" json:"customer_email"`
	CustomerPhone string `json:"customer_phone,omitempty"`

	// Event details
	EventDate  time.Time `gorm:"not null;index" json:"event_date"`
	EventVenue string    `json:"event_venue,omitempty"`
	GuestCount int       `gorm:"not null;default:0" json:"guest_count"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
	Source     string    `gorm:"not null;default:website" json:"source"`

	// Package originally requested by the customer (seeds the first proposal option)
	RequestedPackageID *string      `gorm:"type:uuid" json:"requested_package_id,omitempty"`
	RequestedPackage   *MenuPackage `gorm:"foreignKey:RequestedPackageID" json:"requested_package,omitempty"`

	// Offer lifecycle
	OfferPhase   string     `gorm:"not null;default:DRAFT;index" json:"offer_phase"`
	OfferVersion int        `gorm:"not null;default:1" json:"offer_version"`
	OfferSentAt  *time.Time `json:"offer_sent_at,omitempty"`
	OfferSentBy  *string    `gorm:"type:uuid" json:"offer_sent_by,omitempty"`
}

// BeforeCreate hook to generate UUID and initialize the offer lifecycle fields
func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.OfferPhase == "" {
		i.OfferPhase = OfferPhaseDraft
	}
	if i.OfferVersion == 0 {
		i.OfferVersion = 1
	}
	return nil
}

// TableName specifies the table name for Inquiry model
func (Inquiry) TableName() string {
	return "inquiries"
}

// IsLocked reports whether the inquiry has a recorded offer-sent timestamp.
// While locked, every option mutation is rejected until UnlockForNewVersion.
func (i *Inquiry) IsLocked() bool {
	return i.OfferSentAt != nil
}

// IsDraft checks if the offer is still in its initial draft phase
func (i *Inquiry) IsDraft() bool {
	return i.OfferPhase == OfferPhaseDraft
}

// IsFinalized checks if a final offer has been sent
func (i *Inquiry) IsFinalized() bool {
	return i.OfferPhase == OfferPhaseFinalSent ||
		i.OfferPhase == OfferPhaseConfirmed ||
		i.OfferPhase == OfferPhasePaid
}

// IsValidOfferPhase checks if the phase is a known workflow value
func IsValidOfferPhase(phase string) bool {
	validPhases := []string{
		OfferPhaseDraft,
		OfferPhaseProposalSent,
		OfferPhaseCustomerResponded,
		OfferPhaseFinalDraft,
		OfferPhaseFinalSent,
		OfferPhaseConfirmed,
		OfferPhasePaid,
	}
	for _, p := range validPhases {
		if p == phase {
			return true
		}
	}
	return false
}
