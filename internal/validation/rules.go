package validation

import (
	"strings"

	"finledger/internal/errors"
	"finledger/internal/models"
)

// Normalizing validators used by the service layer. Each takes raw client
// input and returns the canonical form that gets persisted, or a validation
// error describing what was wrong.

// NormalizeAccountName trims the name and rejects blank input.
func NormalizeAccountName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", errors.NewValidation("Account name cannot be empty")
	}
	return trimmed, nil
}

// NormalizeAccountType trims and lowercases the account type.
func NormalizeAccountType(accountType string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(accountType))
	if normalized == "" {
		return "", errors.NewValidation("Account type cannot be empty")
	}
	return normalized, nil
}

// NormalizeAccountCurrency trims and uppercases an account currency code.
// Account currencies allow up to 10 alphanumeric characters, which is looser
// than the 3-letter rule applied to transactions and holdings.
func NormalizeAccountCurrency(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return "", errors.NewValidation("Currency code cannot be empty")
	}
	if len(normalized) > 10 {
		return "", errors.NewValidation("Currency code too long (max 10 chars)")
	}
	for _, r := range normalized {
		if !isASCIIAlphanumeric(r) {
			return "", errors.NewValidation("Currency code must be alphanumeric")
		}
	}
	return normalized, nil
}

// NormalizeCurrencyCode trims and uppercases a currency code and requires
// exactly three ASCII letters.
func NormalizeCurrencyCode(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if len(normalized) != 3 || !isASCIIAlphabetic(normalized) {
		return "", errors.NewValidation("Currency code must be 3 letters")
	}
	return normalized, nil
}

// NormalizeTxnType trims and lowercases a transaction type and checks it
// against the closed set.
func NormalizeTxnType(raw string) (models.TxnType, error) {
	normalized := models.TxnType(strings.ToLower(strings.TrimSpace(raw)))
	if !models.IsValidTxnType(normalized) {
		return "", errors.NewValidation("Invalid transaction type: %s", normalized)
	}
	return normalized, nil
}

// NormalizeAssetType trims and lowercases an asset type and checks it against
// the closed set.
func NormalizeAssetType(raw string) (models.AssetType, error) {
	normalized := models.AssetType(strings.ToLower(strings.TrimSpace(raw)))
	if !models.IsValidAssetType(normalized) {
		return "", errors.NewValidation("Invalid asset type: %s", normalized)
	}
	return normalized, nil
}

// NormalizeSymbol trims and uppercases a holding symbol.
func NormalizeSymbol(symbol string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(symbol))
	if normalized == "" {
		return "", errors.NewValidation("Symbol cannot be empty")
	}
	return normalized, nil
}

func isASCIIAlphabetic(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

func isASCIIAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
