package services

import (
	"errors"
	"fmt"
	"time"

	"catering_app_go/models"

	"gorm.io/gorm"
)

var ErrInvalidInquiry = errors.New("inquiry is missing required fields")

// InquiryInput carries the fields a customer submits through the website form
type InquiryInput struct {
	CustomerName       string
	CustomerEmail      string
	CustomerPhone      string
	EventDate          time.Time
	EventVenue         string
	GuestCount         int
	Notes              string
	Source             string
	RequestedPackageID *string
}

// CreateInquiry records a new customer inquiry. A requested package, when
// given, must exist; it later seeds the first proposal option.
func CreateInquiry(db *gorm.DB, input InquiryInput) (*models.Inquiry, error) {
	if input.CustomerName == "" || input.CustomerEmail == "" {
		return nil, ErrInvalidInquiry
	}
	if input.EventDate.IsZero() || input.GuestCount <= 0 {
		return nil, ErrInvalidInquiry
	}

	if input.RequestedPackageID != nil {
		if _, err := GetMenuPackageByID(db, *input.RequestedPackageID); err != nil {
			return nil, err
		}
	}

	source := input.Source
	if source == "" {
		source = models.InquirySourceWebsite
	}

	inquiry := &models.Inquiry{
		CustomerName:       input.CustomerName,
		CustomerEmail:      input.CustomerEmail,
		CustomerPhone:      input.CustomerPhone,
		EventDate:          input.EventDate,
		EventVenue:         input.EventVenue,
		GuestCount:         input.GuestCount,
		Notes:              input.Notes,
		Source:             source,
		RequestedPackageID: input.RequestedPackageID,
	}
	if err := db.Create(inquiry).Error; err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}
	return inquiry, nil
}

// GetInquiryByID retrieves an inquiry by ID
func GetInquiryByID(db *gorm.DB, inquiryID string) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	err := db.First(&inquiry, "id = ?", inquiryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, err
	}
	return &inquiry, nil
}

// setOfferPhase writes a phase value delivered by an external signal. The
// engine itself never computes these phases.
func setOfferPhase(db *gorm.DB, inquiryID, phase string) error {
	if !models.IsValidOfferPhase(phase) {
		return fmt.Errorf("invalid offer phase %q", phase)
	}
	result := db.Model(&models.Inquiry{}).
		Where("id = ?", inquiryID).
		Update("offer_phase", phase)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInquiryNotFound
	}
	return nil
}

// MarkInquiryConfirmed records a manual confirmation of the final offer
func MarkInquiryConfirmed(db *gorm.DB, inquiryID string) error {
	return setOfferPhase(db, inquiryID, models.OfferPhaseConfirmed)
}

// MarkInquiryPaid records a completed payment reported by the provider webhook
func MarkInquiryPaid(db *gorm.DB, inquiryID string) error {
	return setOfferPhase(db, inquiryID, models.OfferPhasePaid)
}
