package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/errors"
	"finledger/internal/models"
)

func TestNormalizeAccountName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain name", "Checking", "Checking", false},
		{"trims whitespace", "  My Savings  ", "My Savings", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAccountName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidation(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalizeAccountType(t *testing.T) {
	got, err := NormalizeAccountType("  Bank  ")
	require.NoError(t, err)
	assert.Equal(t, "bank", got)

	_, err = NormalizeAccountType("   ")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestNormalizeAccountCurrency(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"standard code", "usd", "USD", false},
		{"trims and uppercases", " eur ", "EUR", false},
		{"long alphanumeric allowed", "USDT2024", "USDT2024", false},
		{"exactly ten characters", "ABCDEFGHIJ", "ABCDEFGHIJ", false},
		{"empty", "", "", true},
		{"too long", "ABCDEFGHIJK", "", true},
		{"non alphanumeric", "US-D", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAccountCurrency(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidation(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalizeCurrencyCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"standard code", "usd", "USD", false},
		{"trims whitespace", " gbp ", "GBP", false},
		{"too short", "US", "", true},
		{"too long", "USDT", "", true},
		{"digits rejected", "US1", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeCurrencyCode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidation(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalizeTxnType(t *testing.T) {
	got, err := NormalizeTxnType("  Expense  ")
	require.NoError(t, err)
	assert.Equal(t, models.TxnTypeExpense, got)

	got, err = NormalizeTxnType("TRANSFER")
	require.NoError(t, err)
	assert.Equal(t, models.TxnTypeTransfer, got)

	_, err = NormalizeTxnType("purchase")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Contains(t, err.Error(), "purchase")
}

func TestNormalizeAssetType(t *testing.T) {
	got, err := NormalizeAssetType(" Stock ")
	require.NoError(t, err)
	assert.Equal(t, models.AssetTypeStock, got)

	_, err = NormalizeAssetType("derivative")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestNormalizeSymbol(t *testing.T) {
	got, err := NormalizeSymbol(" aapl ")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", got)

	_, err = NormalizeSymbol("   ")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}
