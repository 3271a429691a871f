package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AssetType represents the class of a held asset
type AssetType string

const (
	AssetTypeStock  AssetType = "stock"
	AssetTypeFund   AssetType = "fund"
	AssetTypeCrypto AssetType = "crypto"
	AssetTypeBond   AssetType = "bond"
	AssetTypeCash   AssetType = "cash"
	AssetTypeOther  AssetType = "other"
)

// IsValidAssetType checks if the asset type is valid
func IsValidAssetType(t AssetType) bool {
	switch t {
	case AssetTypeStock, AssetTypeFund, AssetTypeCrypto, AssetTypeBond, AssetTypeCash, AssetTypeOther:
		return true
	default:
		return false
	}
}

// Holding represents an investment position inside an account. A user may hold
// at most one row per (account, asset type, symbol); the composite unique index
// backs the duplicate check.
type Holding struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_holdings_identity" json:"user_id"`
	AccountID      uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_holdings_identity" json:"account_id"`
	AssetType      AssetType        `gorm:"type:varchar(16);not null;uniqueIndex:idx_holdings_identity" json:"asset_type"`
	Symbol         string           `gorm:"type:varchar(64);not null;uniqueIndex:idx_holdings_identity" json:"symbol"`
	Name           *string          `gorm:"type:varchar(255)" json:"name,omitempty"`
	Quantity       decimal.Decimal  `gorm:"type:decimal(28,10);not null" json:"quantity"`
	CostBasisTotal decimal.Decimal  `gorm:"type:decimal(20,8);not null" json:"cost_basis_total"`
	CurrencyCode   string           `gorm:"type:varchar(10);not null" json:"currency_code"`
	LastPrice      *decimal.Decimal `gorm:"type:decimal(20,8)" json:"last_price,omitempty"`
	LastPriceAt    *time.Time       `json:"last_price_at,omitempty"`
	MarketValue    *decimal.Decimal `gorm:"type:decimal(20,8)" json:"market_value,omitempty"`
	CreatedAt      time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Holding
func (h *Holding) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}

	now := time.Now()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now
	}
	if h.UpdatedAt.IsZero() {
		h.UpdatedAt = now
	}

	return h.Validate()
}

// BeforeUpdate hook for Holding
func (h *Holding) BeforeUpdate(tx *gorm.DB) error {
	h.UpdatedAt = time.Now()
	return h.Validate()
}

// Validate validates the holding fields
func (h *Holding) Validate() error {
	if h.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if h.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if !IsValidAssetType(h.AssetType) {
		return errors.New("invalid asset type")
	}

	if strings.TrimSpace(h.Symbol) == "" {
		return errors.New("symbol is required")
	}

	if h.Quantity.IsNegative() {
		return errors.New("quantity must not be negative")
	}

	if h.CostBasisTotal.IsNegative() {
		return errors.New("cost basis total must not be negative")
	}

	if h.CurrencyCode == "" {
		return errors.New("currency code is required")
	}

	return nil
}

// TableName returns the table name for Holding
func (h *Holding) TableName() string {
	return "holdings"
}
