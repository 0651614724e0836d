package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"catering_app_go/config"
	"catering_app_go/models"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// Offer engine errors
var (
	ErrInquiryNotFound = errors.New("inquiry not found")
	ErrSessionClosed   = errors.New("offer session is closed")
	ErrPhaseNotAllowed = errors.New("operation not permitted in the current offer phase")
	ErrNoActiveOptions = errors.New("at least one active option is required")
	ErrEmptyMessage    = errors.New("outgoing message text must not be empty")
)

// messagePolicy sanitizes staff-entered offer messages before they are
// persisted and transmitted
var messagePolicy = bluemonday.UGCPolicy()

// SendResult reports the outcome of a send operation to the caller
type SendResult struct {
	Version          int    `json:"version"`
	HistoryEntryID   string `json:"history_entry_id"`
	LinksProvisioned int    `json:"links_provisioned"`
	LinkFailures     int    `json:"link_failures"`
	EmailSent        bool   `json:"email_sent"`
}

// OfferSession is the working set of one staff editor session on one inquiry:
// the inquiry's offer lifecycle fields, the live option set, the autosave
// scheduler and the persistence status. All mutations go through its methods;
// the application guarantees at most one session per inquiry at a time.
type OfferSession struct {
	db          *gorm.DB
	provisioner PaymentLinkProvisioner
	mailer      OfferMailer

	mu      sync.Mutex // guards every field below
	writeMu sync.Mutex // serializes replace-all writes, never held with mu

	inquiry *models.Inquiry
	options []models.ProposalOption

	debounce time.Duration
	timer    *time.Timer
	dirty    bool
	loaded   bool
	closed   bool
	status   SaveStatus
}

// LoadOfferSession fetches the inquiry and its options and opens an editor
// session. A draft inquiry without options gets its first option seeded from
// the customer's originally requested package. The seed is persisted before
// the autosave scheduler arms, so opening the editor alone never triggers a
// debounced write.
func LoadOfferSession(db *gorm.DB, cfg *config.Config, provisioner PaymentLinkProvisioner, mailer OfferMailer, inquiryID string) (*OfferSession, error) {
	var inquiry models.Inquiry
	if err := db.First(&inquiry, "id = ?", inquiryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, err
	}

	var options []models.ProposalOption
	err := db.Where("inquiry_id = ?", inquiryID).
		Order("sort_order ASC").
		Find(&options).Error
	if err != nil {
		return nil, err
	}

	s := &OfferSession{
		db:          db,
		provisioner: provisioner,
		mailer:      mailer,
		inquiry:     &inquiry,
		options:     options,
		debounce:    cfg.AutosaveDebounce,
		status:      SaveStatusIdle,
	}

	if len(options) == 0 && inquiry.IsDraft() && !inquiry.IsLocked() && inquiry.RequestedPackageID != nil {
		if err := s.seedFromRequestedPackage(); err != nil {
			return nil, err
		}
	}

	s.loaded = true
	return s, nil
}

// seedFromRequestedPackage creates option A from the package the customer
// asked for and persists it synchronously
func (s *OfferSession) seedFromRequestedPackage() error {
	pkg, err := GetMenuPackageByID(s.db, *s.inquiry.RequestedPackageID)
	if err != nil {
		if errors.Is(err, ErrMenuPackageNotFound) {
			log.Printf("[WARNING] Requested package %s no longer exists, skipping seed", *s.inquiry.RequestedPackageID)
			return nil
		}
		return err
	}

	option := models.ProposalOption{
		InquiryID:        s.inquiry.ID,
		Label:            string(models.OptionLabels[0]),
		Mode:             models.OptionModePackage,
		SortOrder:        1,
		IsActive:         true,
		GuestCount:       s.inquiry.GuestCount,
		PackageID:        s.inquiry.RequestedPackageID,
		Version:          s.inquiry.OfferVersion,
		CreatedInVersion: s.inquiry.OfferVersion,
	}
	RecalculatePackageTotal(&option, pkg)

	s.options = []models.ProposalOption{option}
	return ReplaceInquiryOptions(s.db, s.inquiry.ID, s.options)
}

// Inquiry returns a copy of the inquiry's current state
func (s *OfferSession) Inquiry() models.Inquiry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.inquiry
}

// Options returns a copy of the live option set in display order
func (s *OfferSession) Options() []models.ProposalOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyOptionsLocked()
}

// IsLocked reports whether the inquiry currently refuses edits
func (s *OfferSession) IsLocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inquiry.IsLocked()
}

// copyOptionsLocked snapshots the live set. Callers must hold s.mu.
func (s *OfferSession) copyOptionsLocked() []models.ProposalOption {
	snapshot := make([]models.ProposalOption, len(s.options))
	copy(snapshot, s.options)
	return snapshot
}

// CustomerResponse returns the inquiry's live customer response, or nil when
// the customer has not responded yet. Read-only to this engine.
func (s *OfferSession) CustomerResponse() (*models.CustomerResponse, error) {
	var response models.CustomerResponse
	err := s.db.First(&response, "inquiry_id = ?", s.inquiry.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &response, nil
}

// MenuReference computes the menu-mode reference total for one option and
// whether the manually edited total diverges from it. The reference figure is
// informational; TotalAmount stays authoritative.
func (s *OfferSession) MenuReference(optionID string) (reference float64, diverges bool, err error) {
	s.mu.Lock()
	option := s.findOptionLocked(optionID)
	if option == nil {
		s.mu.Unlock()
		return 0, false, ErrOptionNotFound
	}
	if option.Mode != models.OptionModeMenu {
		s.mu.Unlock()
		return 0, false, nil
	}
	optionCopy := *option
	s.mu.Unlock()

	sel, err := optionCopy.Selection()
	if err != nil {
		return 0, false, err
	}
	var dishIDs []string
	for _, course := range sel.Courses {
		if course.DishID != nil {
			dishIDs = append(dishIDs, *course.DishID)
		}
	}

	prices, err := GetDishPrices(s.db, dishIDs)
	if err != nil {
		return 0, false, err
	}

	reference, err = MenuReferenceTotal(&optionCopy, prices)
	if err != nil {
		return 0, false, err
	}
	return reference, PriceDiverges(optionCopy.TotalAmount, reference), nil
}

// SendProposal persists the current option set, stamps a new history version
// with the outgoing message and moves the inquiry to PROPOSAL_SENT. Permitted
// from DRAFT and PROPOSAL_SENT only, with at least one active option and a
// non-empty message.
func (s *OfferSession) SendProposal(message, staffID string) (*SendResult, error) {
	return s.sendOffer(message, staffID, models.HistoryKindProposal)
}

// SendFinalOffer does everything SendProposal does, plus provisions a payment
// link for every active option that lacks one, and moves the inquiry to
// FINAL_SENT. Permitted from CUSTOMER_RESPONDED and FINAL_DRAFT only.
func (s *OfferSession) SendFinalOffer(message, staffID string) (*SendResult, error) {
	return s.sendOffer(message, staffID, models.HistoryKindFinal)
}

func (s *OfferSession) sendOffer(message, staffID, kind string) (*SendResult, error) {
	clean := sanitizeOfferMessage(message)
	if clean == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if s.inquiry.IsLocked() {
		s.mu.Unlock()
		return nil, ErrInquiryLocked
	}
	phaseOK := canSendProposalFrom(s.inquiry.OfferPhase)
	targetPhase := models.OfferPhaseProposalSent
	if kind == models.HistoryKindFinal {
		phaseOK = canSendFinalFrom(s.inquiry.OfferPhase)
		targetPhase = models.OfferPhaseFinalSent
	}
	if !phaseOK {
		s.mu.Unlock()
		return nil, ErrPhaseNotAllowed
	}
	activeCount := 0
	for i := range s.options {
		if s.options[i].IsActive {
			activeCount++
		}
	}
	s.mu.Unlock()

	if activeCount == 0 {
		return nil, ErrNoActiveOptions
	}

	// Flush any pending debounced write so the snapshot reflects the last edit
	if err := s.SaveNow(); err != nil {
		return nil, fmt.Errorf("failed to persist options before send: %w", err)
	}

	result := &SendResult{}

	// Final offers get payment links before the version is stamped, so the
	// history snapshot already carries them
	if kind == models.HistoryKindFinal && s.provisioner != nil {
		s.mu.Lock()
		snapshot := s.copyOptionsLocked()
		inquiryCopy := *s.inquiry
		s.mu.Unlock()

		provisioned, failed := provisionPaymentLinks(s.provisioner, &inquiryCopy, snapshot)
		result.LinksProvisioned = provisioned
		result.LinkFailures = failed

		s.mu.Lock()
		for i := range snapshot {
			if live := s.findOptionLocked(snapshot[i].ID); live != nil {
				live.PaymentLinkID = snapshot[i].PaymentLinkID
				live.PaymentLinkURL = snapshot[i].PaymentLinkURL
			}
		}
		s.mu.Unlock()
	}

	s.mu.Lock()
	inquiryCopy := *s.inquiry
	snapshot := s.copyOptionsLocked()
	s.mu.Unlock()

	var entry *models.OfferHistoryEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		entry, txErr = createNewVersion(tx, &inquiryCopy, snapshot, clean, staffID, kind)
		if txErr != nil {
			return txErr
		}
		if txErr = ReplaceInquiryOptions(tx, inquiryCopy.ID, snapshot); txErr != nil {
			return txErr
		}
		inquiryCopy.OfferPhase = targetPhase
		return tx.Model(&models.Inquiry{}).
			Where("id = ?", inquiryCopy.ID).
			Updates(map[string]interface{}{
				"offer_phase":   inquiryCopy.OfferPhase,
				"offer_version": inquiryCopy.OfferVersion,
				"offer_sent_at": inquiryCopy.OfferSentAt,
				"offer_sent_by": inquiryCopy.OfferSentBy,
			}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to stamp offer version: %w", err)
	}

	s.mu.Lock()
	*s.inquiry = inquiryCopy
	s.options = snapshot
	s.mu.Unlock()

	result.Version = inquiryCopy.OfferVersion
	result.HistoryEntryID = entry.ID

	// Email failure is isolated: the version is stamped either way and the
	// result carries the outcome
	if s.mailer != nil {
		if mailErr := s.mailer.SendOfferEmail(&inquiryCopy, clean, kind); mailErr != nil {
			log.Printf("[WARNING] Offer email failed for inquiry %s: %v", inquiryCopy.ID, mailErr)
		} else {
			result.EmailSent = true
		}
	}

	return result, nil
}

// sanitizeOfferMessage strips dangerous markup from the staff-entered message
func sanitizeOfferMessage(message string) string {
	return strings.TrimSpace(messagePolicy.Sanitize(message))
}
