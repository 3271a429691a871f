package repositories

import (
	"finledger/internal/models"

	"github.com/google/uuid"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
}

// AccountRepositoryInterface defines the contract for account repository operations
type AccountRepositoryInterface interface {
	Create(account *models.Account) error
	GetByID(id uuid.UUID) (*models.Account, error)
	GetByUserID(userID uuid.UUID) ([]models.Account, error)
	Save(account *models.Account) error
	Delete(id uuid.UUID) error
}

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	GetByID(id uuid.UUID) (*models.Transaction, error)
	GetWithFilters(userID uuid.UUID, filters models.TransactionFilters) ([]models.Transaction, int64, error)
	CountByAccount(accountID uuid.UUID) (int64, error)
	CountByRefTransaction(refTransactionID uuid.UUID) (int64, error)
	Save(transaction *models.Transaction) error
	Delete(id uuid.UUID) error
}

// HoldingRepositoryInterface defines the contract for holding repository operations
type HoldingRepositoryInterface interface {
	Create(holding *models.Holding) error
	GetByID(id uuid.UUID) (*models.Holding, error)
	List(userID uuid.UUID, filters models.HoldingFilters) ([]models.Holding, error)
	CountByAccount(accountID uuid.UUID) (int64, error)
	Save(holding *models.Holding) error
	Delete(id uuid.UUID) error
}
