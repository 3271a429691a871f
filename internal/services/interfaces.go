package services

import (
	"time"

	"finledger/internal/dto"
	"finledger/internal/models"

	"github.com/google/uuid"
)

// AuthServiceInterface defines the contract for authentication operations
type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest) (*models.User, error)
	Login(req *dto.LoginRequest) (*dto.TokenResponse, error)
}

// AccountServiceInterface defines the contract for account operations
type AccountServiceInterface interface {
	CreateAccount(userID uuid.UUID, req *dto.CreateAccountRequest) (*models.Account, error)
	GetAccount(userID, accountID uuid.UUID) (*models.Account, error)
	ListAccounts(userID uuid.UUID) ([]models.Account, error)
	UpdateAccount(userID, accountID uuid.UUID, req *dto.UpdateAccountRequest) (*models.Account, error)
	DeleteAccount(userID, accountID uuid.UUID) error
}

// TransactionServiceInterface defines the contract for transaction operations
type TransactionServiceInterface interface {
	CreateTransaction(userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error)
	GetTransaction(userID, txnID uuid.UUID) (*models.Transaction, error)
	ListTransactions(userID uuid.UUID, req *dto.ListTransactionsRequest) ([]models.Transaction, error)
	UpdateTransaction(userID, txnID uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error)
	DeleteTransaction(userID, txnID uuid.UUID) error
}

// HoldingServiceInterface defines the contract for investment holding operations
type HoldingServiceInterface interface {
	CreateHolding(userID uuid.UUID, req *dto.CreateHoldingRequest) (*models.Holding, error)
	GetHolding(userID, holdingID uuid.UUID) (*models.Holding, error)
	ListHoldings(userID uuid.UUID, req *dto.ListHoldingsRequest) ([]models.Holding, error)
	UpdateHolding(userID, holdingID uuid.UUID, req *dto.UpdateHoldingRequest) (*models.Holding, error)
	DeleteHolding(userID, holdingID uuid.UUID) error
}

// PasswordServiceInterface defines the contract for password hashing
type PasswordServiceInterface interface {
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// TokenServiceInterface defines the contract for JWT operations
type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

// MetricsRecorderInterface defines the contract for recording application metrics
type MetricsRecorderInterface interface {
	IncrementCounter(metric string, labels ...string)
	RecordProcessingTime(metric string, duration time.Duration, labels ...string)
	RecordGauge(metric string, value float64, labels ...string)
}
