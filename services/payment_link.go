package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"catering_app_go/config"
	"catering_app_go/models"
)

// PaymentLinkRequest carries everything the external provider needs to create
// a hosted payment link for one proposal option
type PaymentLinkRequest struct {
	InquiryID     string    `json:"inquiry_id"`
	OptionID      string    `json:"option_id"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	EventDate     time.Time `json:"event_date"`
}

// PaymentLink is the provider's reference to a created link
type PaymentLink struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// PaymentLinkProvisioner creates hosted payment links via the external
// transactional service. The engine guarantees at most one call per option
// through its own idempotency check; the provider is not assumed to dedup.
type PaymentLinkProvisioner interface {
	CreatePaymentLink(req *PaymentLinkRequest) (*PaymentLink, error)
}

// HTTPPaymentLinkProvisioner talks to the provider's REST API
type HTTPPaymentLinkProvisioner struct {
	apiURL   string
	apiKey   string
	testMode bool
	client   *http.Client
}

// NewPaymentLinkProvisioner builds the provider adapter from configuration
func NewPaymentLinkProvisioner(cfg *config.Config) *HTTPPaymentLinkProvisioner {
	return &HTTPPaymentLinkProvisioner{
		apiURL:   cfg.PaymentAPIURL,
		apiKey:   cfg.PaymentAPIKey,
		testMode: cfg.PaymentTestMode,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// CreatePaymentLink creates one payment link. In test mode the link is stubbed
// locally and logged instead of calling out.
func (p *HTTPPaymentLinkProvisioner) CreatePaymentLink(req *PaymentLinkRequest) (*PaymentLink, error) {
	if p.testMode {
		link := &PaymentLink{
			ID:  "test_link_" + req.OptionID,
			URL: fmt.Sprintf("%s/test/pay/%s", p.apiURL, req.OptionID),
		}
		log.Printf("💳 Payment link stubbed (test mode): option %s, amount %.2f", req.OptionID, req.Amount)
		return link, nil
	}

	if p.apiKey == "" {
		return nil, fmt.Errorf("PAYMENT_API_KEY not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment link request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, p.apiURL+"/payment-links", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build payment link request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment link request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var link PaymentLink
	if err := json.NewDecoder(resp.Body).Decode(&link); err != nil {
		return nil, fmt.Errorf("failed to decode payment link response: %w", err)
	}
	if link.ID == "" || link.URL == "" {
		return nil, fmt.Errorf("payment provider returned an incomplete link")
	}
	return &link, nil
}

// provisionPaymentLinks attaches a payment link to every active option that
// needs one. Options that already carry a link are skipped (idempotent), as
// are options with nothing to charge. A failure for one option never aborts
// the others; the caller gets the per-option outcome as counts.
func provisionPaymentLinks(provisioner PaymentLinkProvisioner, inquiry *models.Inquiry, options []models.ProposalOption) (provisioned, failed int) {
	for i := range options {
		option := &options[i]
		if !option.IsActive || option.HasPaymentLink() || option.TotalAmount <= 0 {
			continue
		}

		link, err := provisioner.CreatePaymentLink(&PaymentLinkRequest{
			InquiryID:     inquiry.ID,
			OptionID:      option.ID,
			Description:   fmt.Sprintf("Catering offer %s (option %s)", inquiry.EventDate.Format("2006-01-02"), option.Label),
			Amount:        option.TotalAmount,
			CustomerName:  inquiry.CustomerName,
			CustomerEmail: inquiry.CustomerEmail,
			EventDate:     inquiry.EventDate,
		})
		if err != nil {
			log.Printf("[WARNING] Payment link provisioning failed for option %s: %v", option.Label, err)
			failed++
			continue
		}

		option.PaymentLinkID = &link.ID
		option.PaymentLinkURL = &link.URL
		provisioned++
	}
	return provisioned, failed
}
