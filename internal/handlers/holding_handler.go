package handlers

import (
	"net/http"

	"finledger/internal/dto"
	apperrors "finledger/internal/errors"
	"finledger/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HoldingHandler handles investment holding endpoints
type HoldingHandler struct {
	holdingService services.HoldingServiceInterface
}

// NewHoldingHandler creates a new holding handler
func NewHoldingHandler(holdingService services.HoldingServiceInterface) *HoldingHandler {
	return &HoldingHandler{
		holdingService: holdingService,
	}
}

func holdingIDFromPath(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("holdings_id"))
}

// Create handles POST /holdings
func (h *HoldingHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	var req dto.CreateHoldingRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	holding, err := h.holdingService.CreateHolding(userID, &req)
	if err != nil {
		return sendDomainError(c, err, holdingCodes)
	}

	return c.JSON(http.StatusCreated, holding)
}

// List handles GET /holdings
func (h *HoldingHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	req := &dto.ListHoldingsRequest{
		AssetType: parseStringParam(c, "asset_type"),
	}
	if req.AccountID, err = parseUUIDParam(c, "account_id"); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails(err.Error()))
	}

	holdings, err := h.holdingService.ListHoldings(userID, req)
	if err != nil {
		return sendDomainError(c, err, holdingCodes)
	}

	return c.JSON(http.StatusOK, holdings)
}

// Get handles GET /holdings/:holdings_id
func (h *HoldingHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	holdingID, err := holdingIDFromPath(c)
	if err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid holdings ID"))
	}

	holding, err := h.holdingService.GetHolding(userID, holdingID)
	if err != nil {
		return sendDomainError(c, err, holdingCodes)
	}

	return c.JSON(http.StatusOK, holding)
}

// Update handles PUT /holdings/:holdings_id
func (h *HoldingHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	holdingID, err := holdingIDFromPath(c)
	if err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid holdings ID"))
	}

	var req dto.UpdateHoldingRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid request body"))
	}

	holding, err := h.holdingService.UpdateHolding(userID, holdingID, &req)
	if err != nil {
		return sendDomainError(c, err, holdingCodes)
	}

	return c.JSON(http.StatusOK, holding)
}

// Delete handles DELETE /holdings/:holdings_id
func (h *HoldingHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	holdingID, err := holdingIDFromPath(c)
	if err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid holdings ID"))
	}

	if err := h.holdingService.DeleteHolding(userID, holdingID); err != nil {
		return sendDomainError(c, err, holdingCodes)
	}

	return c.NoContent(http.StatusNoContent)
}
