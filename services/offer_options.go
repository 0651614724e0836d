package services

import (
	"errors"
	"sort"

	"catering_app_go/models"

	"github.com/google/uuid"
)

// Option store errors
var (
	ErrInquiryLocked      = errors.New("inquiry is locked; unlock before editing")
	ErrOptionLimitReached = errors.New("all option labels are in use")
	ErrOptionNotFound     = errors.New("proposal option not found")
	ErrInvalidOptionMode  = errors.New("invalid option mode")
	ErrReorderMismatch    = errors.New("reorder ids do not match the current option set")
)

// OptionPatch carries a shallow partial update for one option. Nil fields are
// left untouched. The caller replaces nested structures wholesale: a Selection
// patch overwrites the entire menu selection.
type OptionPatch struct {
	GuestCount  *int
	TotalAmount *float64
	PackageID   *string
	Selection   *models.MenuSelection
}

// AddOption appends a new option with the lowest unused label. With all five
// labels in use it returns ErrOptionLimitReached and changes nothing; the
// console surfaces the error as a warning, not a failure dialog.
func (s *OfferSession) AddOption(mode string) (*models.ProposalOption, error) {
	if !models.IsValidOptionMode(mode) {
		return nil, ErrInvalidOptionMode
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inquiry.IsLocked() {
		return nil, ErrInquiryLocked
	}
	if len(s.options) >= models.MaxOptionsPerInquiry {
		return nil, ErrOptionLimitReached
	}

	label, ok := s.lowestUnusedLabelLocked()
	if !ok {
		return nil, ErrOptionLimitReached
	}

	maxSort := 0
	for i := range s.options {
		if s.options[i].SortOrder > maxSort {
			maxSort = s.options[i].SortOrder
		}
	}

	option := models.ProposalOption{
		ID:               uuid.New().String(),
		InquiryID:        s.inquiry.ID,
		Label:            label,
		Mode:             mode,
		SortOrder:        maxSort + 1,
		IsActive:         true,
		GuestCount:       s.inquiry.GuestCount,
		Version:          s.inquiry.OfferVersion,
		CreatedInVersion: s.inquiry.OfferVersion,
	}
	s.options = append(s.options, option)
	s.markDirty()

	added := s.options[len(s.options)-1]
	return &added, nil
}

// RemoveOption removes an option from the live set. History snapshots that
// contain it are untouched.
func (s *OfferSession) RemoveOption(optionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inquiry.IsLocked() {
		return ErrInquiryLocked
	}

	for i := range s.options {
		if s.options[i].ID == optionID {
			s.options = append(s.options[:i], s.options[i+1:]...)
			s.markDirty()
			return nil
		}
	}
	return ErrOptionNotFound
}

// UpdateOption shallow-merges the patch into the option. A package-mode option
// rederives its total whenever the guest count or package changes. The patch is
// staged on a copy and committed only after validation, so a failed update
// leaves the live option untouched.
func (s *OfferSession) UpdateOption(optionID string, patch OptionPatch) error {
	s.mu.Lock()
	if s.inquiry.IsLocked() {
		s.mu.Unlock()
		return ErrInquiryLocked
	}
	option := s.findOptionLocked(optionID)
	if option == nil {
		s.mu.Unlock()
		return ErrOptionNotFound
	}
	staged := *option
	s.mu.Unlock()

	changed := false
	repriceNeeded := false
	if patch.GuestCount != nil && *patch.GuestCount != staged.GuestCount {
		staged.GuestCount = *patch.GuestCount
		changed = true
		repriceNeeded = true
	}
	if patch.PackageID != nil {
		staged.PackageID = patch.PackageID
		changed = true
		repriceNeeded = true
	}
	if patch.TotalAmount != nil && *patch.TotalAmount != staged.TotalAmount {
		// Manual totals only exist in menu mode; package mode derives below
		staged.TotalAmount = *patch.TotalAmount
		changed = true
	}
	if patch.Selection != nil {
		if err := staged.SetSelection(*patch.Selection); err != nil {
			return err
		}
		changed = true
	}
	if !changed {
		return nil
	}

	if repriceNeeded && staged.Mode == models.OptionModePackage {
		var pkg *models.MenuPackage
		if staged.PackageID != nil {
			loaded, err := GetMenuPackageByID(s.db, *staged.PackageID)
			if err != nil {
				return err
			}
			pkg = loaded
		}
		RecalculatePackageTotal(&staged, pkg)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inquiry.IsLocked() {
		return ErrInquiryLocked
	}
	current := s.findOptionLocked(optionID)
	if current == nil {
		return ErrOptionNotFound
	}
	*current = staged
	s.markDirty()
	return nil
}

// ToggleOptionActive flips whether the option is offered to the customer.
// Inactive options are hidden from outgoing offers but retained.
func (s *OfferSession) ToggleOptionActive(optionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inquiry.IsLocked() {
		return ErrInquiryLocked
	}

	option := s.findOptionLocked(optionID)
	if option == nil {
		return ErrOptionNotFound
	}
	option.IsActive = !option.IsActive
	s.markDirty()
	return nil
}

// ReorderOptions applies an explicit ordering, independent of labels. The id
// list must be a permutation of the current live set.
func (s *OfferSession) ReorderOptions(optionIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inquiry.IsLocked() {
		return ErrInquiryLocked
	}
	if len(optionIDs) != len(s.options) {
		return ErrReorderMismatch
	}

	for pos, id := range optionIDs {
		option := s.findOptionLocked(id)
		if option == nil {
			return ErrReorderMismatch
		}
		option.SortOrder = pos + 1
	}
	s.sortOptionsLocked()
	s.markDirty()
	return nil
}

// SwitchOptionMode changes an option's mode and clears mode-specific state so
// no stale cross-mode data survives: the menu selection is always reset, the
// package reference is dropped when leaving package mode, and the manually
// edited total is dropped when entering package mode (package totals are
// derived, never manual).
func (s *OfferSession) SwitchOptionMode(optionID, mode string) error {
	if !models.IsValidOptionMode(mode) {
		return ErrInvalidOptionMode
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inquiry.IsLocked() {
		return ErrInquiryLocked
	}

	option := s.findOptionLocked(optionID)
	if option == nil {
		return ErrOptionNotFound
	}
	if option.Mode == mode {
		return nil
	}

	if option.Mode == models.OptionModePackage {
		option.PackageID = nil
	}
	if mode == models.OptionModePackage {
		option.TotalAmount = 0
	}
	option.Mode = mode
	option.MenuSelectionJSON = ""
	s.markDirty()
	return nil
}

// lowestUnusedLabelLocked walks the fixed alphabet and returns the first label
// not taken by a live option. Callers must hold s.mu.
func (s *OfferSession) lowestUnusedLabelLocked() (string, bool) {
	used := make(map[string]bool, len(s.options))
	for i := range s.options {
		used[s.options[i].Label] = true
	}
	for _, r := range models.OptionLabels {
		if label := string(r); !used[label] {
			return label, true
		}
	}
	return "", false
}

// findOptionLocked returns a pointer into the live set. Callers must hold s.mu.
func (s *OfferSession) findOptionLocked(optionID string) *models.ProposalOption {
	for i := range s.options {
		if s.options[i].ID == optionID {
			return &s.options[i]
		}
	}
	return nil
}

// sortOptionsLocked orders the live set by sort order, labels as tie-breaker.
// Callers must hold s.mu.
func (s *OfferSession) sortOptionsLocked() {
	sort.SliceStable(s.options, func(i, j int) bool {
		if s.options[i].SortOrder != s.options[j].SortOrder {
			return s.options[i].SortOrder < s.options[j].SortOrder
		}
		return s.options[i].Label < s.options[j].Label
	})
}
