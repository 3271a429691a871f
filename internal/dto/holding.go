package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Holding Request DTOs

// CreateHoldingRequest contains the fields for recording a new holding
type CreateHoldingRequest struct {
	AccountID      uuid.UUID        `json:"account_id" validate:"required"`
	AssetType      string           `json:"asset_type" validate:"required"`
	Symbol         string           `json:"symbol" validate:"required"`
	Name           *string          `json:"name,omitempty"`
	Quantity       decimal.Decimal  `json:"quantity"`
	CostBasisTotal decimal.Decimal  `json:"cost_basis_total"`
	CurrencyCode   string           `json:"currency_code" validate:"required"`
	LastPrice      *decimal.Decimal `json:"last_price,omitempty"`
	LastPriceAt    *time.Time       `json:"last_price_at,omitempty"`
	MarketValue    *decimal.Decimal `json:"market_value,omitempty"`
}

// UpdateHoldingRequest contains the mutable holding fields
type UpdateHoldingRequest struct {
	Quantity       *decimal.Decimal `json:"quantity,omitempty"`
	CostBasisTotal *decimal.Decimal `json:"cost_basis_total,omitempty"`
	LastPrice      *decimal.Decimal `json:"last_price,omitempty"`
	LastPriceAt    *time.Time       `json:"last_price_at,omitempty"`
	MarketValue    *decimal.Decimal `json:"market_value,omitempty"`
	Name           *string          `json:"name,omitempty"`
}

// ListHoldingsRequest contains the optional listing filters, bound from query
// parameters
type ListHoldingsRequest struct {
	AccountID *uuid.UUID `query:"account_id"`
	AssetType *string    `query:"asset_type"`
}
