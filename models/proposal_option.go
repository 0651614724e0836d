package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Option mode constants
const (
	OptionModeMenu    = "MENU"    // freely composed courses/drinks, manually priced
	OptionModePackage = "PACKAGE" // predefined bundle with derived pricing
	OptionModeEmail   = "EMAIL"   // plain email proposal, no structured pricing
)

// OptionLabels is the fixed ordered alphabet of option labels per inquiry
const OptionLabels = "ABCDE"

// MaxOptionsPerInquiry caps how many labeled alternatives one inquiry can carry
const MaxOptionsPerInquiry = 5

// CourseSelection is one chosen course within a menu-mode option
type CourseSelection struct {
	Course        string   `json:"course"` // course type, e.g. CourseStarter
	Label         string   `json:"label,omitempty"`
	DishID        *string  `json:"dish_id,omitempty"`     // catalog reference
	CustomName    string   `json:"custom_name,omitempty"` // free text instead of catalog dish
	PriceOverride *float64 `json:"price_override,omitempty"`
}

// DrinkSelection is one chosen drink group value within a menu-mode option
type DrinkSelection struct {
	Group       string `json:"group"`
	Value       string `json:"value,omitempty"`
	CustomValue string `json:"custom_value,omitempty"`
}

// MenuSelection is the structured menu content of an option, stored as a JSON blob
type MenuSelection struct {
	Courses                 []CourseSelection `json:"courses"`
	Drinks                  []DrinkSelection  `json:"drinks"`
	WinePairing             bool              `json:"wine_pairing"`
	WinePairingPricePerHead float64           `json:"wine_pairing_price_per_head,omitempty"`
}

// ProposalOption is one labeled priced alternative ("A".."E") offered on an inquiry.
// Rows are replaced wholesale per inquiry on save, so there is no soft delete here.
type ProposalOption struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Inquiry relationship
	InquiryID string  `gorm:"type:uuid;not null;index:idx_option_inquiry_sort" json:"inquiry_id"`
	Inquiry   Inquiry `gorm:"foreignKey:InquiryID" json:"inquiry,omitempty"`

	// Identity within the inquiry
	Label     string `gorm:"not null;size:1" json:"label"`
	Mode      string `gorm:"not null;default:MENU" json:"mode"`
	SortOrder int    `gorm:"not null;default:0;index:idx_option_inquiry_sort" json:"sort_order"`

	// Content
	GuestCount        int     `gorm:"not null;default:0" json:"guest_count"`
	PackageID         *string `gorm:"type:uuid" json:"package_id,omitempty"` // package mode only
	MenuSelectionJSON string  `gorm:"type:text" json:"-"`                    // JSON encoded MenuSelection

	// Pricing: authoritative customer-facing amount. Manually editable in menu
	// mode, derived in package mode, unused in email mode.
	TotalAmount float64 `gorm:"not null;default:0" json:"total_amount"`

	// No column default: the replace-all writer must persist false as-is,
	// a default would make GORM skip the zero value on insert
	IsActive bool `gorm:"not null" json:"is_active"`

	// Versioning
	Version          int `gorm:"not null;default:1" json:"version"`
	CreatedInVersion int `gorm:"not null;default:1" json:"created_in_version"`

	// Payment link, attached exactly once during finalization
	PaymentLinkID  *string `json:"payment_link_id,omitempty"`
	PaymentLinkURL *string `json:"payment_link_url,omitempty"`

	// Relationships
	Package *MenuPackage `gorm:"foreignKey:PackageID" json:"package,omitempty"`
}

// BeforeCreate hook to generate UUID
func (o *ProposalOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for ProposalOption model
func (ProposalOption) TableName() string {
	return "proposal_options"
}

// Selection decodes the stored menu selection blob. An empty blob decodes to a
// zero-value selection rather than an error.
func (o *ProposalOption) Selection() (MenuSelection, error) {
	var sel MenuSelection
	if o.MenuSelectionJSON == "" {
		return sel, nil
	}
	err := json.Unmarshal([]byte(o.MenuSelectionJSON), &sel)
	return sel, err
}

// SetSelection encodes and stores the menu selection blob
func (o *ProposalOption) SetSelection(sel MenuSelection) error {
	data, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	o.MenuSelectionJSON = string(data)
	return nil
}

// HasPaymentLink checks whether a payment link was already provisioned
func (o *ProposalOption) HasPaymentLink() bool {
	return o.PaymentLinkID != nil && *o.PaymentLinkID != ""
}

// IsValidOptionMode checks if the mode is valid
func IsValidOptionMode(mode string) bool {
	return mode == OptionModeMenu || mode == OptionModePackage || mode == OptionModeEmail
}

// IsValidOptionLabel checks if the label belongs to the fixed alphabet
func IsValidOptionLabel(label string) bool {
	if len(label) != 1 {
		return false
	}
	for _, r := range OptionLabels {
		if string(r) == label {
			return true
		}
	}
	return false
}
