package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// History entry kinds
const (
	HistoryKindProposal = "PROPOSAL"
	HistoryKindFinal    = "FINAL"
)

// OfferHistoryEntry is an immutable snapshot of one sent offer version.
// Entries are append-only: never updated, never deleted.
type OfferHistoryEntry struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Inquiry relationship
	InquiryID string  `gorm:"type:uuid;not null;index:idx_history_inquiry_version" json:"inquiry_id"`
	Inquiry   Inquiry `gorm:"foreignKey:InquiryID" json:"inquiry,omitempty"`

	Version int    `gorm:"not null;index:idx_history_inquiry_version" json:"version"`
	Kind    string `gorm:"not null;default:PROPOSAL" json:"kind"`

	// Who sent it, when, and the outgoing message as it went out
	SentBy  string    `gorm:"type:uuid;not null" json:"sent_by"`
	SentAt  time.Time `gorm:"not null" json:"sent_at"`
	Message string    `gorm:"type:text;not null" json:"message"`

	// Full copy of the option set at send time, JSON encoded
	OptionsSnapshotJSON string `gorm:"type:text;not null" json:"-"`
}

// BeforeCreate hook to generate UUID and stamp the send time
func (h *OfferHistoryEntry) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	if h.SentAt.IsZero() {
		h.SentAt = time.Now()
	}
	return nil
}

// TableName specifies the table name for OfferHistoryEntry model
func (OfferHistoryEntry) TableName() string {
	return "offer_history_entries"
}

// OptionsSnapshot decodes the stored option set snapshot
func (h *OfferHistoryEntry) OptionsSnapshot() ([]ProposalOption, error) {
	var options []ProposalOption
	if h.OptionsSnapshotJSON == "" {
		return options, nil
	}
	err := json.Unmarshal([]byte(h.OptionsSnapshotJSON), &options)
	return options, err
}

// SetOptionsSnapshot encodes and stores the option set snapshot
func (h *OfferHistoryEntry) SetOptionsSnapshot(options []ProposalOption) error {
	data, err := json.Marshal(options)
	if err != nil {
		return err
	}
	h.OptionsSnapshotJSON = string(data)
	return nil
}
