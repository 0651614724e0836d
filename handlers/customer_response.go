package handlers

import (
	"errors"
	"net/http"

	"catering_app_go/db"
	"catering_app_go/services"

	"github.com/labstack/echo/v4"
)

// RespondToOfferHandler is the public endpoint a customer uses to react to a
// sent proposal. It records the response and moves the inquiry to
// CUSTOMER_RESPONDED; the offer engine only ever reads the result.
func RespondToOfferHandler(c echo.Context) error {
	var req struct {
		SelectedOptionID *string `json:"selected_option_id"`
		Notes            string  `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	response, err := services.RecordCustomerResponse(db.DB, c.Param("id"), req.SelectedOptionID, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInquiryNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Inquiry not found")
		case errors.Is(err, services.ErrNoProposalOutstanding):
			return echo.NewHTTPError(http.StatusConflict, "There is no open proposal to respond to")
		case errors.Is(err, services.ErrOptionNotFound):
			return echo.NewHTTPError(http.StatusBadRequest, "Selected option does not exist")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to record response")
		}
	}
	return c.JSON(http.StatusCreated, response)
}
