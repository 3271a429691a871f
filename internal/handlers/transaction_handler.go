package handlers

import (
	"net/http"

	"finledger/internal/dto"
	apperrors "finledger/internal/errors"
	"finledger/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TransactionHandler handles transaction endpoints
type TransactionHandler struct {
	txnService services.TransactionServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(txnService services.TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{
		txnService: txnService,
	}
}

func txnIDFromPath(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("txn_id"))
}

// Create handles POST /transactions
func (h *TransactionHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	txn, err := h.txnService.CreateTransaction(userID, &req)
	if err != nil {
		return sendDomainError(c, err, transactionCodes)
	}

	return c.JSON(http.StatusCreated, txn)
}

// List handles GET /transactions
func (h *TransactionHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	req, err := bindListTransactionsRequest(c)
	if err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails(err.Error()))
	}

	transactions, err := h.txnService.ListTransactions(userID, req)
	if err != nil {
		return sendDomainError(c, err, transactionCodes)
	}

	return c.JSON(http.StatusOK, transactions)
}

// bindListTransactionsRequest parses the listing filters from query
// parameters. Absent parameters stay nil.
func bindListTransactionsRequest(c echo.Context) (*dto.ListTransactionsRequest, error) {
	req := &dto.ListTransactionsRequest{
		Category: parseStringParam(c, "category"),
		Keyword:  parseStringParam(c, "keyword"),
		TxnType:  parseStringParam(c, "txn_type"),
	}

	var err error
	if req.Start, err = parseTimeParam(c, "start"); err != nil {
		return nil, err
	}
	if req.End, err = parseTimeParam(c, "end"); err != nil {
		return nil, err
	}
	if req.AccountID, err = parseUUIDParam(c, "account_id"); err != nil {
		return nil, err
	}
	if req.MinAmount, err = parseDecimalParam(c, "min_amount"); err != nil {
		return nil, err
	}
	if req.MaxAmount, err = parseDecimalParam(c, "max_amount"); err != nil {
		return nil, err
	}
	if req.Limit, err = parseIntParam(c, "limit"); err != nil {
		return nil, err
	}
	if req.Offset, err = parseIntParam(c, "offset"); err != nil {
		return nil, err
	}

	return req, nil
}

// Get handles GET /transactions/:txn_id
func (h *TransactionHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	txnID, err := txnIDFromPath(c)
	if err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid transaction ID"))
	}

	txn, err := h.txnService.GetTransaction(userID, txnID)
	if err != nil {
		return sendDomainError(c, err, transactionCodes)
	}

	return c.JSON(http.StatusOK, txn)
}

// Update handles PUT /transactions/:txn_id
func (h *TransactionHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	txnID, err := txnIDFromPath(c)
	if err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid transaction ID"))
	}

	var req dto.UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid request body"))
	}

	txn, err := h.txnService.UpdateTransaction(userID, txnID, &req)
	if err != nil {
		return sendDomainError(c, err, transactionCodes)
	}

	return c.JSON(http.StatusOK, txn)
}

// Delete handles DELETE /transactions/:txn_id
func (h *TransactionHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	txnID, err := txnIDFromPath(c)
	if err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid transaction ID"))
	}

	if err := h.txnService.DeleteTransaction(userID, txnID); err != nil {
		return sendDomainError(c, err, transactionCodes)
	}

	return c.NoContent(http.StatusNoContent)
}
