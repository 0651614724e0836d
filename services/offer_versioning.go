package services

import (
	"errors"
	"fmt"
	"time"

	"catering_app_go/models"

	"gorm.io/gorm"
)

// Versioning errors
var (
	ErrInquiryNotLocked = errors.New("inquiry is not locked")
)

// createNewVersion stamps a new offer version inside the caller's transaction:
// it bumps the version counter, stamps every live option, appends an immutable
// history entry with the message and a full snapshot of the option set, and
// records the send timestamp/sender on the inquiry (which locks it).
//
// The options slice is mutated in place (version stamp); the caller persists it.
func createNewVersion(tx *gorm.DB, inquiry *models.Inquiry, options []models.ProposalOption, message, staffID, kind string) (*models.OfferHistoryEntry, error) {
	version := inquiry.OfferVersion + 1
	for i := range options {
		options[i].Version = version
	}

	entry := models.OfferHistoryEntry{
		InquiryID: inquiry.ID,
		Version:   version,
		Kind:      kind,
		SentBy:    staffID,
		SentAt:    time.Now(),
		Message:   message,
	}
	if err := entry.SetOptionsSnapshot(options); err != nil {
		return nil, fmt.Errorf("failed to snapshot options: %w", err)
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to append history entry: %w", err)
	}

	inquiry.OfferVersion = version
	inquiry.OfferSentAt = &entry.SentAt
	sentBy := staffID
	inquiry.OfferSentBy = &sentBy
	return &entry, nil
}

// GetOfferHistory returns an inquiry's history entries, newest version first
func GetOfferHistory(db *gorm.DB, inquiryID string) ([]models.OfferHistoryEntry, error) {
	var entries []models.OfferHistoryEntry
	err := db.Where("inquiry_id = ?", inquiryID).
		Order("version DESC").
		Find(&entries).Error
	return entries, err
}

// UnlockForNewVersion clears the lock after a send so staff can revise the
// offer: the version counter advances, the sent stamp is cleared and a
// finalized phase is mapped back to its editable counterpart. Option content
// is not touched.
func (s *OfferSession) UnlockForNewVersion(staffID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inquiry.IsLocked() {
		return ErrInquiryNotLocked
	}

	version := s.inquiry.OfferVersion + 1
	phase := phaseAfterUnlock(s.inquiry.OfferPhase)

	err := s.db.Model(&models.Inquiry{}).
		Where("id = ?", s.inquiry.ID).
		Updates(map[string]interface{}{
			"offer_version": version,
			"offer_phase":   phase,
			"offer_sent_at": nil,
			"offer_sent_by": nil,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to unlock inquiry: %w", err)
	}

	s.inquiry.OfferVersion = version
	s.inquiry.OfferPhase = phase
	s.inquiry.OfferSentAt = nil
	s.inquiry.OfferSentBy = nil
	return nil
}
