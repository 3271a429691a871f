package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction Request DTOs

// CreateTransactionRequest contains the fields for recording a transaction.
// Which optional fields are allowed depends on txn_type.
type CreateTransactionRequest struct {
	TxnType          string           `json:"txn_type" validate:"required"`
	Amount           decimal.Decimal  `json:"amount" validate:"required"`
	CurrencyCode     string           `json:"currency_code" validate:"required"`
	FromAccountID    *uuid.UUID       `json:"from_account_id,omitempty"`
	ToAccountID      *uuid.UUID       `json:"to_account_id,omitempty"`
	ToAmount         *decimal.Decimal `json:"to_amount,omitempty"`
	ToCurrencyCode   *string          `json:"to_currency_code,omitempty"`
	RefTransactionID *uuid.UUID       `json:"ref_transaction_id,omitempty"`
	Category         *string          `json:"category,omitempty"`
	Note             *string          `json:"note,omitempty"`
	Merchant         *string          `json:"merchant,omitempty"`
	OccurredAt       time.Time        `json:"occurred_at" validate:"required"`
}

// UpdateTransactionRequest contains the mutable transaction fields
type UpdateTransactionRequest struct {
	Category   *string    `json:"category,omitempty"`
	Note       *string    `json:"note,omitempty"`
	OccurredAt *time.Time `json:"occurred_at,omitempty"`
	Merchant   *string    `json:"merchant,omitempty"`
}

// ListTransactionsRequest contains the optional listing filters, bound from
// query parameters
type ListTransactionsRequest struct {
	Start     *time.Time       `query:"start"`
	End       *time.Time       `query:"end"`
	Category  *string          `query:"category"`
	AccountID *uuid.UUID       `query:"account_id"`
	MinAmount *decimal.Decimal `query:"min_amount"`
	MaxAmount *decimal.Decimal `query:"max_amount"`
	Keyword   *string          `query:"keyword"`
	TxnType   *string          `query:"txn_type"`
	Limit     *int             `query:"limit"`
	Offset    *int             `query:"offset"`
}
