package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TxnType represents the kind of ledger transaction
type TxnType string

const (
	TxnTypeExpense    TxnType = "expense"
	TxnTypeIncome     TxnType = "income"
	TxnTypeTransfer   TxnType = "transfer"
	TxnTypeRefund     TxnType = "refund"
	TxnTypeAdjustment TxnType = "adjustment"
)

// IsValidTxnType checks if the transaction type is valid
func IsValidTxnType(t TxnType) bool {
	switch t {
	case TxnTypeExpense, TxnTypeIncome, TxnTypeTransfer, TxnTypeRefund, TxnTypeAdjustment:
		return true
	default:
		return false
	}
}

// Transaction represents a single ledger movement. Which of the optional
// columns may be set depends on TxnType; the service layer enforces the
// per-type shape before the row reaches the database.
type Transaction struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID           uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	TxnType          TxnType          `gorm:"type:varchar(16);not null;index" json:"txn_type"`
	Amount           decimal.Decimal  `gorm:"type:decimal(20,8);not null" json:"amount"`
	CurrencyCode     string           `gorm:"type:varchar(10);not null" json:"currency_code"`
	FromAccountID    *uuid.UUID       `gorm:"type:uuid;index" json:"from_account_id,omitempty"`
	ToAccountID      *uuid.UUID       `gorm:"type:uuid;index" json:"to_account_id,omitempty"`
	ToAmount         *decimal.Decimal `gorm:"type:decimal(20,8)" json:"to_amount,omitempty"`
	ToCurrencyCode   *string          `gorm:"type:varchar(10)" json:"to_currency_code,omitempty"`
	RefTransactionID *uuid.UUID       `gorm:"type:uuid;index" json:"ref_transaction_id,omitempty"`
	Category         *string          `gorm:"type:varchar(128)" json:"category,omitempty"`
	Merchant         *string          `gorm:"type:varchar(255)" json:"merchant,omitempty"`
	Note             *string          `gorm:"type:text" json:"note,omitempty"`
	OccurredAt       time.Time        `gorm:"not null;index" json:"occurred_at"`
	CreatedAt        time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}
	if t.OccurredAt.IsZero() {
		t.OccurredAt = now
	}

	return t.Validate()
}

// BeforeUpdate hook for Transaction
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if !IsValidTxnType(t.TxnType) {
		return errors.New("invalid transaction type")
	}

	if !t.Amount.IsPositive() {
		return errors.New("amount must be positive")
	}

	if t.CurrencyCode == "" {
		return errors.New("currency code is required")
	}

	return nil
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}
