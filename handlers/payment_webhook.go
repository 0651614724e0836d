package handlers

import (
	"crypto/subtle"
	"errors"
	"log"
	"net/http"

	"catering_app_go/config"
	"catering_app_go/db"
	"catering_app_go/services"

	"github.com/labstack/echo/v4"
)

// PaymentWebhookHandler receives payment events from the link provider. A
// completed payment is the external signal that moves the inquiry to PAID.
func PaymentWebhookHandler(c echo.Context) error {
	cfg, _ := c.Get("config").(*config.Config)
	if cfg == nil || cfg.PaymentWebhookSecret == "" {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Webhook not configured")
	}

	secret := c.Request().Header.Get("X-Webhook-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(cfg.PaymentWebhookSecret)) != 1 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid webhook secret")
	}

	var event struct {
		InquiryID string `json:"inquiry_id"`
		OptionID  string `json:"option_id"`
		LinkID    string `json:"link_id"`
		Status    string `json:"status"`
	}
	if err := c.Bind(&event); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid webhook payload")
	}

	// Only completed payments change the phase; other events are acknowledged
	// so the provider stops retrying
	if event.Status != "paid" && event.Status != "completed" {
		return c.NoContent(http.StatusOK)
	}

	if err := services.MarkInquiryPaid(db.DB, event.InquiryID); err != nil {
		if errors.Is(err, services.ErrInquiryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Inquiry not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to record payment")
	}

	log.Printf("Payment completed for inquiry %s (link %s)", event.InquiryID, event.LinkID)
	return c.NoContent(http.StatusOK)
}
