package services

import (
	"errors"
	"fmt"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/repositories"

	"github.com/google/uuid"
)

// Ownership guards shared by the ledger services.
//
// Two distinct failure shapes are deliberate. Looking up an entity that the
// request addresses directly (GET /transactions/:id) yields ErrNotFound when
// it does not exist and ErrForbidden when it belongs to another user. But an
// account merely referenced inside a request body is caller input, so a
// missing account there is a validation failure naming the offending ID.

// verifyAccountRef checks that a referenced account exists and belongs to the
// user. A missing account is reported as a validation error; a foreign one as
// forbidden.
func verifyAccountRef(accountRepo repositories.AccountRepositoryInterface, userID, accountID uuid.UUID) error {
	account, err := accountRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return apperrors.NewValidation("Account %s not found", accountID)
		}
		return fmt.Errorf("failed to verify account ownership: %w", err)
	}
	if account.UserID != userID {
		return apperrors.ErrForbidden
	}
	return nil
}

// loadOwnedAccount fetches an account addressed directly by the caller
func loadOwnedAccount(accountRepo repositories.AccountRepositoryInterface, userID, accountID uuid.UUID) (*models.Account, error) {
	account, err := accountRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if account.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return account, nil
}

// loadOwnedTransaction fetches a transaction addressed directly by the caller
func loadOwnedTransaction(txnRepo repositories.TransactionRepositoryInterface, userID, txnID uuid.UUID) (*models.Transaction, error) {
	txn, err := txnRepo.GetByID(txnID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	if txn.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return txn, nil
}

// loadOwnedHolding fetches a holding addressed directly by the caller
func loadOwnedHolding(holdingRepo repositories.HoldingRepositoryInterface, userID, holdingID uuid.UUID) (*models.Holding, error) {
	holding, err := holdingRepo.GetByID(holdingID)
	if err != nil {
		if errors.Is(err, repositories.ErrHoldingNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load holding: %w", err)
	}
	if holding.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return holding, nil
}
