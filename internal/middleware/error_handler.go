package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"sort"

	apperrors "finledger/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API errors counter metric
	apiErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of API errors by code, endpoint, and status",
		},
		[]string{"code", "endpoint", "status"},
	)
)

// CustomHTTPErrorHandler is a custom error handler for Echo that formats errors
// as standardized error responses and logs them appropriately
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	traceID := GetTraceID(c)
	if traceID == "" {
		traceID = "unknown"
	}

	var errorResponse *apperrors.ErrorResponse
	var httpStatus int

	if echoErr, ok := err.(*echo.HTTPError); ok {
		errorCode := mapHTTPStatusToErrorCode(echoErr.Code)
		message := fmt.Sprintf("%v", echoErr.Message)

		errorResponse = apperrors.NewErrorResponse(
			errorCode,
			traceID,
			apperrors.WithMessage(message),
		)
		httpStatus = echoErr.Code
	} else if validationErrs, ok := err.(validator.ValidationErrors); ok {
		// Handle validation errors from go-playground/validator
		details := make([]string, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			details = append(details, fmt.Sprintf("%s %s", fieldErr.Field(), formatValidationError(fieldErr)))
		}
		sort.Strings(details)
		errorResponse = apperrors.NewErrorResponse(
			apperrors.ValidationGeneral,
			traceID,
			apperrors.WithDetails(details...),
		)
		httpStatus = http.StatusBadRequest
	} else {
		errorResponse, _ = apperrors.WrapSystemError(err, traceID)
		httpStatus = errorResponse.GetHTTPStatus()
	}

	logLevel := slog.LevelWarn
	if httpStatus >= 500 {
		logLevel = slog.LevelError
	}

	slog.Log(c.Request().Context(), logLevel, "HTTP error occurred",
		"trace_id", traceID,
		"error_code", errorResponse.Error.Code,
		"status", httpStatus,
		"message", errorResponse.Error.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", err.Error(),
	)

	apiErrorsTotal.WithLabelValues(
		errorResponse.Error.Code,
		c.Path(),
		fmt.Sprintf("%d", httpStatus),
	).Inc()

	if sendErr := c.JSON(httpStatus, errorResponse); sendErr != nil {
		slog.Error("Failed to send error response",
			"trace_id", traceID,
			"error", sendErr.Error(),
		)
	}
}

// mapHTTPStatusToErrorCode maps HTTP status codes to error codes
func mapHTTPStatusToErrorCode(status int) apperrors.ErrorCode {
	switch status {
	case http.StatusBadRequest:
		return apperrors.ValidationGeneral
	case http.StatusUnauthorized:
		return apperrors.AuthMissingToken
	case http.StatusForbidden:
		return apperrors.AuthAccessForbidden
	case http.StatusNotFound:
		return apperrors.AccountNotFound // Generic not found
	case http.StatusMethodNotAllowed:
		return apperrors.ValidationGeneral
	case http.StatusUnprocessableEntity:
		return apperrors.ValidationGeneral
	case http.StatusTooManyRequests:
		return apperrors.SystemRateLimitExceeded
	case http.StatusServiceUnavailable:
		return apperrors.SystemServiceUnavailable
	default:
		return apperrors.SystemInternalError
	}
}

// formatValidationError converts a validator.FieldError to a human-readable message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "alphanum":
		return "must contain only alphanumeric characters"
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "txn_type":
		return "must be a valid transaction type (expense, income, transfer, refund, adjustment)"
	case "asset_type":
		return "must be a valid asset type (stock, etf, fund, crypto, bond, cash, other)"
	case "currency_code":
		return "must be a 3-letter currency code"
	case "account_currency":
		return "must be an alphanumeric currency code of at most 10 characters"
	default:
		return fmt.Sprintf("failed validation for '%s'", fe.Tag())
	}
}
