package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account represents a money container owned by a single user. AccountType and
// CurrencyCode are stored normalized (lowercased and uppercased respectively)
// by the service layer before persistence.
type Account struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	AccountType  string          `gorm:"type:varchar(32);not null" json:"account_type"`
	CurrencyCode string          `gorm:"type:varchar(10);not null" json:"currency_code"`
	Balance      decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0" json:"balance"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	return a.Validate()
}

// BeforeUpdate hook for Account
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return a.Validate()
}

// Validate validates the account fields
func (a *Account) Validate() error {
	if a.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if strings.TrimSpace(a.Name) == "" {
		return errors.New("account name is required")
	}

	if strings.TrimSpace(a.AccountType) == "" {
		return errors.New("account type is required")
	}

	if strings.TrimSpace(a.CurrencyCode) == "" {
		return errors.New("currency code is required")
	}

	return nil
}

// TableName returns the table name for Account
func (a *Account) TableName() string {
	return "accounts"
}
