package handlers

import (
	"net/http"

	apperrors "finledger/internal/errors"

	"github.com/labstack/echo/v4"
)

// STANDARDIZED ERROR HANDLING PATTERNS
//
// All handlers must use the following standardized error response functions:
//
// 1. SendError - For client errors and business logic errors (4xx responses)
// 2. SendSystemError - For system/internal errors (500 responses)
// 3. sendDomainError - For errors coming back from the service layer; it
//    inspects the error shape (validation, conflict, not found, forbidden)
//    and picks the right code and status.
//
// DO NOT USE:
//    - echo.NewHTTPError() - Use SendError or SendSystemError instead
//    - Direct c.JSON() for errors - Use the helper functions

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code apperrors.ErrorCode, opts ...apperrors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := apperrors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError wraps a system error with a generic message so internal
// details never reach the client.
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, _ := apperrors.WrapSystemError(err, traceID)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}

// entityCodes selects the not-found and conflict codes for one entity kind
type entityCodes struct {
	notFound apperrors.ErrorCode
	conflict apperrors.ErrorCode
}

var (
	accountCodes     = entityCodes{notFound: apperrors.AccountNotFound, conflict: apperrors.AccountHasReferences}
	transactionCodes = entityCodes{notFound: apperrors.TransactionNotFound, conflict: apperrors.TransactionHasRefunds}
	holdingCodes     = entityCodes{notFound: apperrors.HoldingNotFound, conflict: apperrors.HoldingAlreadyExists}
)

// sendDomainError translates a service-layer error into an error response.
// Validation and conflict messages are caller-facing and pass through
// verbatim; everything else maps to a fixed code.
func sendDomainError(c echo.Context, err error, codes entityCodes) error {
	switch {
	case apperrors.IsValidation(err):
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithMessage(err.Error()))
	case apperrors.IsConflict(err):
		return SendError(c, codes.conflict, apperrors.WithMessage(err.Error()))
	case apperrors.IsNotFound(err):
		return SendError(c, codes.notFound)
	case apperrors.IsForbidden(err):
		return SendError(c, apperrors.AuthAccessForbidden)
	default:
		return SendSystemError(c, err)
	}
}
