package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerResponse records the customer's reaction to a sent proposal.
// At most one live record per inquiry; written by the public response channel
// and only read by the offer engine.
type CustomerResponse struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Inquiry relationship
	InquiryID string  `gorm:"type:uuid;not null;uniqueIndex" json:"inquiry_id"`
	Inquiry   Inquiry `gorm:"foreignKey:InquiryID" json:"inquiry,omitempty"`

	// Which option the customer picked, if any
	SelectedOptionID *string `gorm:"type:uuid" json:"selected_option_id,omitempty"`

	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	RespondedAt time.Time `gorm:"not null" json:"responded_at"`
}

// BeforeCreate hook to generate UUID and stamp the response time
func (r *CustomerResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.RespondedAt.IsZero() {
		r.RespondedAt = time.Now()
	}
	return nil
}

// TableName specifies the table name for CustomerResponse model
func (CustomerResponse) TableName() string {
	return "customer_responses"
}
