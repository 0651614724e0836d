package services

import (
	"fmt"
	"log"
	"strings"

	"catering_app_go/config"
	"catering_app_go/models"

	"github.com/resend/resend-go/v2"
)

// OfferMailer transmits the outgoing offer message to the customer. The engine
// treats the message as an opaque, already-rendered string.
type OfferMailer interface {
	SendOfferEmail(inquiry *models.Inquiry, message, kind string) error
}

// ResendOfferMailer sends offer emails through the Resend API
type ResendOfferMailer struct {
	cfg *config.Config
}

// NewResendOfferMailer builds the mailer from configuration
func NewResendOfferMailer(cfg *config.Config) *ResendOfferMailer {
	return &ResendOfferMailer{cfg: cfg}
}

// SendOfferEmail sends the offer message to the inquiry's customer address.
// In development mode the email is logged instead of sent.
func (m *ResendOfferMailer) SendOfferEmail(inquiry *models.Inquiry, message, kind string) error {
	subject := fmt.Sprintf("Your catering offer for %s", inquiry.EventDate.Format("02.01.2006"))
	if kind == models.HistoryKindFinal {
		subject = fmt.Sprintf("Your final catering offer for %s", inquiry.EventDate.Format("02.01.2006"))
	}

	if m.cfg.EmailTestMode {
		logOfferEmailToConsole(inquiry.CustomerEmail, subject, message)
		return nil
	}

	if m.cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(m.cfg.ResendAPIKey)
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", m.cfg.EmailFromName, m.cfg.EmailFrom),
		To:      []string{inquiry.CustomerEmail},
		Subject: subject,
		Html:    message,
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send offer email via Resend: %w", err)
	}

	log.Printf("Offer email sent to %s (id: %s)", inquiry.CustomerEmail, sent.Id)
	return nil
}

func logOfferEmailToConsole(to, subject, message string) {
	log.Println(strings.Repeat("=", 60))
	log.Println("📧 OFFER EMAIL (development mode)")
	log.Printf("To:      %s", to)
	log.Printf("Subject: %s", subject)
	log.Println(strings.Repeat("-", 60))
	log.Println(message)
	log.Println(strings.Repeat("=", 60))
}
