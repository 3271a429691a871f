package services

import (
	"fmt"
	"log/slog"

	"finledger/internal/dto"
	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/repositories"
	"finledger/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountService manages a user's ledger accounts
type AccountService struct {
	accountRepo repositories.AccountRepositoryInterface
	txnRepo     repositories.TransactionRepositoryInterface
	holdingRepo repositories.HoldingRepositoryInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewAccountService creates a new account service
func NewAccountService(
	accountRepo repositories.AccountRepositoryInterface,
	txnRepo repositories.TransactionRepositoryInterface,
	holdingRepo repositories.HoldingRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		holdingRepo: holdingRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// CreateAccount opens a new account for the user. The balance starts at the
// requested initial balance, or zero when absent.
func (s *AccountService) CreateAccount(userID uuid.UUID, req *dto.CreateAccountRequest) (*models.Account, error) {
	name, err := validation.NormalizeAccountName(req.Name)
	if err != nil {
		return nil, err
	}

	accountType, err := validation.NormalizeAccountType(req.AccountType)
	if err != nil {
		return nil, err
	}

	currency, err := validation.NormalizeAccountCurrency(req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	balance := decimal.Zero
	if req.InitialBalance != nil {
		balance = *req.InitialBalance
	}

	account := &models.Account{
		UserID:       userID,
		Name:         name,
		AccountType:  accountType,
		CurrencyCode: currency,
		Balance:      balance,
	}

	if err := s.accountRepo.Create(account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.metrics.IncrementCounter("accounts_created", accountType)
	s.logger.Info("account created",
		"account_id", account.ID,
		"user_id", userID,
		"account_type", accountType,
	)

	return account, nil
}

// GetAccount retrieves a single account owned by the user
func (s *AccountService) GetAccount(userID, accountID uuid.UUID) (*models.Account, error) {
	return loadOwnedAccount(s.accountRepo, userID, accountID)
}

// ListAccounts retrieves all accounts owned by the user
func (s *AccountService) ListAccounts(userID uuid.UUID) ([]models.Account, error) {
	accounts, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount applies the mutable fields of the request to an owned
// account. The balance cannot be changed through this path.
func (s *AccountService) UpdateAccount(userID, accountID uuid.UUID, req *dto.UpdateAccountRequest) (*models.Account, error) {
	account, err := loadOwnedAccount(s.accountRepo, userID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name, err := validation.NormalizeAccountName(*req.Name)
		if err != nil {
			return nil, err
		}
		account.Name = name
	}
	if req.AccountType != nil {
		accountType, err := validation.NormalizeAccountType(*req.AccountType)
		if err != nil {
			return nil, err
		}
		account.AccountType = accountType
	}
	if req.CurrencyCode != nil {
		currency, err := validation.NormalizeAccountCurrency(*req.CurrencyCode)
		if err != nil {
			return nil, err
		}
		account.CurrencyCode = currency
	}

	if err := s.accountRepo.Save(account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.logger.Info("account updated", "account_id", accountID, "user_id", userID)
	return account, nil
}

// DeleteAccount removes an owned account, refusing while transactions or
// holdings still reference it.
func (s *AccountService) DeleteAccount(userID, accountID uuid.UUID) error {
	if _, err := loadOwnedAccount(s.accountRepo, userID, accountID); err != nil {
		return err
	}

	txnCount, err := s.txnRepo.CountByAccount(accountID)
	if err != nil {
		return fmt.Errorf("failed to count account transactions: %w", err)
	}
	if txnCount > 0 {
		return apperrors.NewConflict("Cannot delete account with existing transactions")
	}

	holdingCount, err := s.holdingRepo.CountByAccount(accountID)
	if err != nil {
		return fmt.Errorf("failed to count account holdings: %w", err)
	}
	if holdingCount > 0 {
		return apperrors.NewConflict("Cannot delete account with existing holdings")
	}

	if err := s.accountRepo.Delete(accountID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.metrics.IncrementCounter("accounts_deleted")
	s.logger.Info("account deleted", "account_id", accountID, "user_id", userID)
	return nil
}
