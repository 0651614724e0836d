package handlers

import (
	"errors"
	"net/http"

	"catering_app_go/db"
	"catering_app_go/services"

	"github.com/labstack/echo/v4"
)

// CreateInquiryHandler is the public endpoint behind the website inquiry form
func CreateInquiryHandler(c echo.Context) error {
	var req struct {
		CustomerName       string  `json:"customer_name"`
		CustomerEmail      string  `json:"customer_email"`
		CustomerPhone      string  `json:"customer_phone"`
		EventDate          string  `json:"event_date"`
		EventVenue         string  `json:"event_venue"`
		GuestCount         int     `json:"guest_count"`
		Notes              string  `json:"notes"`
		RequestedPackageID *string `json:"requested_package_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	eventDate, err := services.ParseDate(req.EventDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid event date, expected YYYY-MM-DD")
	}

	inquiry, err := services.CreateInquiry(db.DB, services.InquiryInput{
		CustomerName:       req.CustomerName,
		CustomerEmail:      req.CustomerEmail,
		CustomerPhone:      req.CustomerPhone,
		EventDate:          eventDate,
		EventVenue:         req.EventVenue,
		GuestCount:         req.GuestCount,
		Notes:              req.Notes,
		RequestedPackageID: req.RequestedPackageID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInquiry):
			return echo.NewHTTPError(http.StatusBadRequest, "Name, email, event date and guest count are required")
		case errors.Is(err, services.ErrMenuPackageNotFound):
			return echo.NewHTTPError(http.StatusBadRequest, "Requested package does not exist")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create inquiry")
		}
	}
	return c.JSON(http.StatusCreated, inquiry)
}
