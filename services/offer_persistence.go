package services

import (
	"fmt"
	"log"
	"time"

	"catering_app_go/models"

	"gorm.io/gorm"
)

// SaveStatus is the caller-visible persistence state of an offer session
type SaveStatus string

const (
	SaveStatusIdle   SaveStatus = "idle"
	SaveStatusSaving SaveStatus = "saving"
	SaveStatusSaved  SaveStatus = "saved"
	SaveStatusError  SaveStatus = "error"
)

// ReplaceInquiryOptions persists the in-memory option set with a replace-all
// strategy: within one transaction, every option row of the inquiry is deleted
// and the current set inserted. The transaction keeps concurrent readers from
// ever observing an empty option set.
func ReplaceInquiryOptions(db *gorm.DB, inquiryID string, options []models.ProposalOption) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("inquiry_id = ?", inquiryID).Delete(&models.ProposalOption{}).Error; err != nil {
			return fmt.Errorf("failed to clear options for inquiry %s: %w", inquiryID, err)
		}
		for i := range options {
			if err := tx.Create(&options[i]).Error; err != nil {
				return fmt.Errorf("failed to insert option %s: %w", options[i].Label, err)
			}
		}
		return nil
	})
}

// markDirty flags unsaved changes and (re)starts the debounce timer. Each new
// mutation cancels the previously scheduled write, so the write always lands a
// quiet period after the last edit. Suppressed until the initial load finished,
// so merely opening the editor never writes.
// Callers must hold s.mu.
func (s *OfferSession) markDirty() {
	if !s.loaded || s.closed {
		return
	}
	s.dirty = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.autosave)
}

// autosave is the debounce timer callback. The write mutex guarantees a single
// write in flight: a timer firing while a write runs blocks until that write
// finishes and then re-checks dirty, so newer mutations produce a follow-up
// write instead of racing.
func (s *OfferSession) autosave() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.closed || !s.dirty || s.inquiry.IsLocked() {
		s.mu.Unlock()
		return
	}
	s.dirty = false
	s.status = SaveStatusSaving
	inquiryID := s.inquiry.ID
	snapshot := s.copyOptionsLocked()
	s.mu.Unlock()

	err := ReplaceInquiryOptions(s.db, inquiryID, snapshot)

	s.mu.Lock()
	if err != nil {
		// Sticky until the next successful save. In-memory state is not rolled
		// back and edits continue; the next autosave cycle reconciles the store.
		log.Printf("[WARNING] Autosave failed for inquiry %s: %v", inquiryID, err)
		s.status = SaveStatusError
	} else {
		s.status = SaveStatusSaved
	}
	s.mu.Unlock()
}

// SaveNow performs the replace-all write synchronously, bypassing the debounce
// window. Phase transitions call this first so the history snapshot never races
// with a pending debounced write. While the inquiry is locked no write is
// issued: the store already holds the stamped option set and mutators cannot
// dirty the session, so there is nothing a write could legitimately replace.
func (s *OfferSession) SaveNow() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.inquiry.IsLocked() {
		s.mu.Unlock()
		return nil
	}
	s.dirty = false
	s.status = SaveStatusSaving
	inquiryID := s.inquiry.ID
	snapshot := s.copyOptionsLocked()
	s.mu.Unlock()

	err := ReplaceInquiryOptions(s.db, inquiryID, snapshot)

	s.mu.Lock()
	if err != nil {
		s.status = SaveStatusError
	} else {
		s.status = SaveStatusSaved
	}
	s.mu.Unlock()
	return err
}

// Close cancels any pending debounce timer, flushes unsaved changes and marks
// the session unusable. Called when the editor session ends.
func (s *OfferSession) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	needsFlush := s.dirty
	s.mu.Unlock()

	var err error
	if needsFlush {
		err = s.SaveNow()
	}

	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return err
}

// Status returns the current persistence status
func (s *OfferSession) Status() SaveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}
