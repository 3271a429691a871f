package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionFilters narrows a user's transaction listing. All fields are
// optional; zero values mean "no constraint".
type TransactionFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  *string
	AccountID *uuid.UUID
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	Keyword   *string
	TxnType   *TxnType
	Limit     *int
	Offset    *int
}

// HoldingFilters narrows a user's holding listing.
type HoldingFilters struct {
	AccountID *uuid.UUID
	AssetType *AssetType
}
