package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"finledger/internal/models"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("txn_type", validateTxnType)
	_ = v.RegisterValidation("asset_type", validateAssetType)
	_ = v.RegisterValidation("currency_code", validateCurrencyCode)
	_ = v.RegisterValidation("account_currency", validateAccountCurrency)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

// validateTxnType validates that a transaction type is one of the allowed kinds
func validateTxnType(fl validator.FieldLevel) bool {
	txnType := models.TxnType(strings.ToLower(strings.TrimSpace(fl.Field().String())))
	return models.IsValidTxnType(txnType)
}

// validateAssetType validates that an asset type is one of the allowed classes
func validateAssetType(fl validator.FieldLevel) bool {
	assetType := models.AssetType(strings.ToLower(strings.TrimSpace(fl.Field().String())))
	return models.IsValidAssetType(assetType)
}

// validateCurrencyCode validates a 3-letter currency code
func validateCurrencyCode(fl validator.FieldLevel) bool {
	code := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	matched, _ := regexp.MatchString(`^[A-Z]{3}$`, code)
	return matched
}

// validateAccountCurrency validates the looser account currency format,
// up to 10 alphanumeric characters
func validateAccountCurrency(fl validator.FieldLevel) bool {
	code := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	matched, _ := regexp.MatchString(`^[A-Z0-9]{1,10}$`, code)
	return matched
}
