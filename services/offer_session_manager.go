package services

import (
	"sync"

	"catering_app_go/config"

	"gorm.io/gorm"
)

// OfferSessionManager keeps at most one live editor session per inquiry.
// Mutual exclusion between two staff members editing the same inquiry is a
// single-editor application assumption; the manager only guarantees that one
// process reuses the same session instead of racing two schedulers.
type OfferSessionManager struct {
	db          *gorm.DB
	cfg         *config.Config
	provisioner PaymentLinkProvisioner
	mailer      OfferMailer

	mu       sync.Mutex
	sessions map[string]*OfferSession
}

// NewOfferSessionManager builds the manager used by the staff console
func NewOfferSessionManager(db *gorm.DB, cfg *config.Config, provisioner PaymentLinkProvisioner, mailer OfferMailer) *OfferSessionManager {
	return &OfferSessionManager{
		db:          db,
		cfg:         cfg,
		provisioner: provisioner,
		mailer:      mailer,
		sessions:    make(map[string]*OfferSession),
	}
}

// Session returns the live session for an inquiry, loading one if needed
func (m *OfferSessionManager) Session(inquiryID string) (*OfferSession, error) {
	m.mu.Lock()
	if session, ok := m.sessions[inquiryID]; ok {
		m.mu.Unlock()
		return session, nil
	}
	m.mu.Unlock()

	session, err := LoadOfferSession(m.db, m.cfg, m.provisioner, m.mailer, inquiryID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// another request may have loaded the session while we did
	if existing, ok := m.sessions[inquiryID]; ok {
		_ = session.Close()
		return existing, nil
	}
	m.sessions[inquiryID] = session
	return session, nil
}

// CloseSession flushes and discards an inquiry's session, if any
func (m *OfferSessionManager) CloseSession(inquiryID string) error {
	m.mu.Lock()
	session, ok := m.sessions[inquiryID]
	delete(m.sessions, inquiryID)
	m.mu.Unlock()

	if !ok {
		return nil
	}
	return session.Close()
}

// CloseAll flushes every live session, used on shutdown
func (m *OfferSessionManager) CloseAll() {
	m.mu.Lock()
	sessions := make([]*OfferSession, 0, len(m.sessions))
	for _, session := range m.sessions {
		sessions = append(sessions, session)
	}
	m.sessions = make(map[string]*OfferSession)
	m.mu.Unlock()

	for _, session := range sessions {
		_ = session.Close()
	}
}
