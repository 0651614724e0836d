package services

import (
	"errors"
	"fmt"
	"time"

	"catering_app_go/models"

	"gorm.io/gorm"
)

// Customer response errors
var (
	ErrNoProposalOutstanding = errors.New("no sent proposal to respond to")
)

// RecordCustomerResponse stores the customer's reaction to a sent proposal and
// moves the inquiry to CUSTOMER_RESPONDED. This is the external channel the
// offer engine only reads from: at most one live response per inquiry, a
// second submission replaces the first.
func RecordCustomerResponse(db *gorm.DB, inquiryID string, selectedOptionID *string, notes string) (*models.CustomerResponse, error) {
	inquiry, err := GetInquiryByID(db, inquiryID)
	if err != nil {
		return nil, err
	}
	if inquiry.OfferPhase != models.OfferPhaseProposalSent {
		return nil, ErrNoProposalOutstanding
	}

	if selectedOptionID != nil {
		var count int64
		err := db.Model(&models.ProposalOption{}).
			Where("inquiry_id = ? AND id = ?", inquiryID, *selectedOptionID).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrOptionNotFound
		}
	}

	response := models.CustomerResponse{
		InquiryID:        inquiryID,
		SelectedOptionID: selectedOptionID,
		Notes:            notes,
		RespondedAt:      time.Now(),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// Hard delete: a soft-deleted row would still occupy the unique
		// inquiry_id slot and block the replacement
		if err := tx.Unscoped().Where("inquiry_id = ?", inquiryID).Delete(&models.CustomerResponse{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&response).Error; err != nil {
			return err
		}
		return tx.Model(&models.Inquiry{}).
			Where("id = ?", inquiryID).
			Update("offer_phase", models.OfferPhaseCustomerResponded).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record customer response: %w", err)
	}
	return &response, nil
}
