package dto

import "github.com/shopspring/decimal"

// Account Request DTOs

// CreateAccountRequest contains the fields for opening a new account
type CreateAccountRequest struct {
	Name           string           `json:"name" validate:"required"`
	AccountType    string           `json:"account_type" validate:"required"`
	CurrencyCode   string           `json:"currency_code" validate:"required"`
	InitialBalance *decimal.Decimal `json:"initial_balance,omitempty"`
}

// UpdateAccountRequest contains the mutable account fields. Balance is not
// updatable through this path.
type UpdateAccountRequest struct {
	Name         *string `json:"name,omitempty"`
	AccountType  *string `json:"account_type,omitempty"`
	CurrencyCode *string `json:"currency_code,omitempty"`
}
