package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"catering_app_go/db"
	"catering_app_go/models"
	"catering_app_go/services"

	"github.com/labstack/echo/v4"
)

// OfferSessions is the shared session manager, wired in main
var OfferSessions *services.OfferSessionManager

// optionView is one option as shown in the offer console, with the computed
// menu reference figure alongside the authoritative total
type optionView struct {
	models.ProposalOption
	ReferenceTotal *float64 `json:"reference_total,omitempty"`
	PriceDiverges  bool     `json:"price_diverges"`
}

// offerStateResponse is the console's full view of one inquiry's offer
type offerStateResponse struct {
	Inquiry          models.Inquiry           `json:"inquiry"`
	Options          []optionView             `json:"options"`
	Locked           bool                     `json:"locked"`
	SaveStatus       services.SaveStatus      `json:"save_status"`
	CustomerResponse *models.CustomerResponse `json:"customer_response,omitempty"`
}

// offerSession resolves the editor session for the inquiry in the route
func offerSession(c echo.Context) (*services.OfferSession, error) {
	session, err := OfferSessions.Session(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrInquiryNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Inquiry not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Failed to open offer session")
	}
	return session, nil
}

// offerError maps engine errors onto HTTP responses
func offerError(err error) error {
	switch {
	case errors.Is(err, services.ErrInquiryLocked):
		return echo.NewHTTPError(http.StatusConflict, "Offer is locked; unlock it to make changes")
	case errors.Is(err, services.ErrInquiryNotLocked):
		return echo.NewHTTPError(http.StatusConflict, "Offer is not locked")
	case errors.Is(err, services.ErrOptionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Option not found")
	case errors.Is(err, services.ErrInvalidOptionMode):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid option mode")
	case errors.Is(err, services.ErrReorderMismatch):
		return echo.NewHTTPError(http.StatusBadRequest, "Reorder list does not match the option set")
	case errors.Is(err, services.ErrPhaseNotAllowed):
		return echo.NewHTTPError(http.StatusConflict, "Not permitted in the current offer phase")
	case errors.Is(err, services.ErrNoActiveOptions):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "At least one active option is required")
	case errors.Is(err, services.ErrEmptyMessage):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Message text must not be empty")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Offer operation failed")
	}
}

// GetOfferHandler returns the full offer editor state for an inquiry
func GetOfferHandler(c echo.Context) error {
	session, err := offerSession(c)
	if err != nil {
		return err
	}

	options := session.Options()
	views := make([]optionView, 0, len(options))
	for i := range options {
		view := optionView{ProposalOption: options[i]}
		if options[i].Mode == models.OptionModeMenu {
			reference, diverges, refErr := session.MenuReference(options[i].ID)
			if refErr == nil {
				view.ReferenceTotal = &reference
				view.PriceDiverges = diverges
			}
		}
		views = append(views, view)
	}

	response, err := session.CustomerResponse()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load customer response")
	}

	return c.JSON(http.StatusOK, offerStateResponse{
		Inquiry:          session.Inquiry(),
		Options:          views,
		Locked:           session.IsLocked(),
		SaveStatus:       session.Status(),
		CustomerResponse: response,
	})
}

// AddOptionHandler adds a proposal option. Exhausting the label space is a
// warning, not an error: the option set is unchanged and the console shows
// the hint.
func AddOptionHandler(c echo.Context) error {
	session, err := offerSession(c)
	if err != nil {
		return err
	}

	var req struct {
		Mode string `json:"mode"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	option, err := session.AddOption(req.Mode)
	if err != nil {
		if errors.Is(err, services.ErrOptionLimitReached) {
			return c.JSON(http.StatusOK, map[string]interface{}{
				"warning": fmt.Sprintf("All %d option labels are in use", models.MaxOptionsPerInquiry),
			})
		}
		return offerError(err)
	}
	return c.JSON(http.StatusCreated, option)
}

// UpdateOptionHandler shallow-merges a partial update into one option
func UpdateOptionHandler(c echo.Context) error {
	session, err := offerSession(c)
	if err != nil {
		return err
	}

	var req struct {
		GuestCount  *int                  `json:"guest_count"`
		TotalAmount *float64              `json:"total_amount"`
		PackageID   *string               `json:"package_id"`
		Selection   *models.MenuSelection `json:"selection"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	patch := services.OptionPatch{
		GuestCount:  req.GuestCount,
		TotalAmount: req.TotalAmount,
		PackageID:   req.PackageID,
		Selection:   req.Selection,
	}
	if err := session.UpdateOption(c.Param("optionId"), patch); err != nil {
		return offerError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Option updated"})
}

// DeleteOptionHandler removes an option from the live set
func DeleteOptionHandler(c echo.Context) error {
	session, err := offerSession(c)
	if err != nil {
		return err
	}
	if err := session.RemoveOption(c.Param("optionId")); err != nil {
		return offerError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Option removed"})
}

// ToggleOptionHandler flips whether an option is offered to the customer
func ToggleOptionHandler(c echo.Context) error {
	session, err := offerSession(c)
	if err != nil {
		return err
	}
	if err := session.ToggleOptionActive(c.Param("optionId")); err != nil {
		return offerError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Option toggled"})
}

// ReorderOptionsHandler applies an explicit option ordering
func ReorderOptionsHandler(c echo.Context) error {
	session, err := offerSession(c)
	if err != nil {
		return err
	}

	var req struct {
		OptionIDs []string `json:"option_ids"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := session.ReorderOptions(req.OptionIDs); err != nil {
		return offerError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Options reordered"})
}

// SwitchOptionModeHandler changes an option's mode, clearing cross-mode state
func SwitchOptionModeHandler(c echo.Context) error {
	session, err := offerSession(c)
	if err != nil {
		return err
	}

	var req struct {
		Mode string `json:"mode"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := session.SwitchOptionMode(c.Param("optionId"), req.Mode); err != nil {
		return offerError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Option mode switched"})
}

type sendOfferRequest struct {
	Message string `json:"message"`
	SentBy  string `json:"sent_by"`
}

// SendProposalHandler sends the proposal and stamps a new offer version
func SendProposalHandler(c echo.Context) error {
	session, err := offerSession(c)
	if err != nil {
		return err
	}

	var req sendOfferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	result, err := session.SendProposal(req.Message, req.SentBy)
	if err != nil {
		return offerError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// SendFinalOfferHandler sends the final offer, provisioning payment links
func SendFinalOfferHandler(c echo.Context) error {
	session, err := offerSession(c)
	if err != nil {
		return err
	}

	var req sendOfferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	result, err := session.SendFinalOffer(req.Message, req.SentBy)
	if err != nil {
		return offerError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// UnlockOfferHandler starts a new version after a send so staff can revise
func UnlockOfferHandler(c echo.Context) error {
	session, err := offerSession(c)
	if err != nil {
		return err
	}

	var req struct {
		StaffID string `json:"staff_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := session.UnlockForNewVersion(req.StaffID); err != nil {
		return offerError(err)
	}
	return c.JSON(http.StatusOK, session.Inquiry())
}

// SaveOfferHandler forces a synchronous save, bypassing the debounce window
func SaveOfferHandler(c echo.Context) error {
	session, err := offerSession(c)
	if err != nil {
		return err
	}
	if err := session.SaveNow(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Save failed")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"save_status": session.Status()})
}

// CloseOfferSessionHandler flushes and discards the editor session
func CloseOfferSessionHandler(c echo.Context) error {
	if err := OfferSessions.CloseSession(c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to close session")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Session closed"})
}

// GetOfferHistoryHandler lists the inquiry's sent versions, newest first
func GetOfferHistoryHandler(c echo.Context) error {
	entries, err := services.GetOfferHistory(db.DB, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch offer history")
	}
	return c.JSON(http.StatusOK, entries)
}

// ExportOfferHistoryHandler downloads the history as a spreadsheet
func ExportOfferHistoryHandler(c echo.Context) error {
	data, err := services.ExportOfferHistoryXLSX(db.DB, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to export offer history")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="offer-history.xlsx"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
