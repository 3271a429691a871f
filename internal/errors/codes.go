package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials ErrorCode = "AUTH_001"
	AuthMissingToken       ErrorCode = "AUTH_002"
	AuthExpiredToken       ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat ErrorCode = "AUTH_004"
	AuthAccessForbidden    ErrorCode = "AUTH_005"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
)

// User error codes (USER_*)
const (
	UserNotFound      ErrorCode = "USER_001"
	UserAlreadyExists ErrorCode = "USER_002"
)

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound      ErrorCode = "ACCOUNT_001"
	AccountHasReferences ErrorCode = "ACCOUNT_002"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound    ErrorCode = "TRANSACTION_001"
	TransactionInvalidType ErrorCode = "TRANSACTION_002"
	TransactionHasRefunds  ErrorCode = "TRANSACTION_003"
)

// Holding error codes (HOLDING_*)
const (
	HoldingNotFound      ErrorCode = "HOLDING_001"
	HoldingAlreadyExists ErrorCode = "HOLDING_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
	SystemNotificationError  ErrorCode = "SYSTEM_005"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidCredentials: "Invalid username or password",
	AuthMissingToken:       "Authorization token is required",
	AuthExpiredToken:       "Authorization token has expired",
	AuthInvalidTokenFormat: "Invalid authorization token format",
	AuthAccessForbidden:    "Access forbidden",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",

	// User errors
	UserNotFound:      "User not found",
	UserAlreadyExists: "A user with this username already exists",

	// Account errors
	AccountNotFound:      "Account not found",
	AccountHasReferences: "Cannot delete account with existing transactions or holdings",

	// Transaction errors
	TransactionNotFound:    "Transaction not found",
	TransactionInvalidType: "Invalid transaction type",
	TransactionHasRefunds:  "Cannot delete transaction with existing refunds",

	// Holding errors
	HoldingNotFound:      "Holding not found",
	HoldingAlreadyExists: "Holding with same account, asset type and symbol already exists",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	SystemNotificationError:  "Notification delivery failed",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
