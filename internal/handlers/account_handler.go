package handlers

import (
	"net/http"

	"finledger/internal/dto"
	apperrors "finledger/internal/errors"
	"finledger/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AccountHandler handles account endpoints
type AccountHandler struct {
	accountService services.AccountServiceInterface
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService services.AccountServiceInterface) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

func accountIDFromPath(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("account_id"))
}

// Create handles POST /accounts
func (h *AccountHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	var req dto.CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	account, err := h.accountService.CreateAccount(userID, &req)
	if err != nil {
		return sendDomainError(c, err, accountCodes)
	}

	return c.JSON(http.StatusCreated, account)
}

// List handles GET /accounts
func (h *AccountHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	accounts, err := h.accountService.ListAccounts(userID)
	if err != nil {
		return sendDomainError(c, err, accountCodes)
	}

	return c.JSON(http.StatusOK, accounts)
}

// Get handles GET /accounts/:account_id
func (h *AccountHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	accountID, err := accountIDFromPath(c)
	if err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid account ID"))
	}

	account, err := h.accountService.GetAccount(userID, accountID)
	if err != nil {
		return sendDomainError(c, err, accountCodes)
	}

	return c.JSON(http.StatusOK, account)
}

// Update handles PUT /accounts/:account_id
func (h *AccountHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	accountID, err := accountIDFromPath(c)
	if err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid account ID"))
	}

	var req dto.UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid request body"))
	}

	account, err := h.accountService.UpdateAccount(userID, accountID, &req)
	if err != nil {
		return sendDomainError(c, err, accountCodes)
	}

	return c.JSON(http.StatusOK, account)
}

// Delete handles DELETE /accounts/:account_id
func (h *AccountHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	accountID, err := accountIDFromPath(c)
	if err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid account ID"))
	}

	if err := h.accountService.DeleteAccount(userID, accountID); err != nil {
		return sendDomainError(c, err, accountCodes)
	}

	return c.NoContent(http.StatusNoContent)
}
