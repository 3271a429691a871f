package services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"finledger/internal/dto"
	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/repositories"
	"finledger/internal/validation"

	"github.com/google/uuid"
)

const (
	defaultTransactionPageSize = 100
	maxTransactionPageSize     = 500
	maxKeywordLength           = 100
)

// TransactionService implements the ledger's transaction engine. Creation
// dispatches on the transaction type: transfers move value between two owned
// accounts, refunds and adjustments point back at an original transaction,
// and expenses/incomes touch exactly one account.
type TransactionService struct {
	txnRepo     repositories.TransactionRepositoryInterface
	accountRepo repositories.AccountRepositoryInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	txnRepo repositories.TransactionRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) TransactionServiceInterface {
	return &TransactionService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// CreateTransaction validates and records a new transaction for the user
func (s *TransactionService) CreateTransaction(userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	start := time.Now()

	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidation("Amount must be positive")
	}

	txnType, err := validation.NormalizeTxnType(req.TxnType)
	if err != nil {
		return nil, err
	}

	currency, err := validation.NormalizeCurrencyCode(req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		UserID:       userID,
		TxnType:      txnType,
		Amount:       req.Amount,
		CurrencyCode: currency,
		Category:     req.Category,
		Note:         req.Note,
		Merchant:     req.Merchant,
		OccurredAt:   req.OccurredAt,
	}

	switch txnType {
	case models.TxnTypeTransfer:
		err = s.prepareTransfer(userID, req, txn)
	case models.TxnTypeRefund, models.TxnTypeAdjustment:
		err = s.prepareRefundOrAdjustment(userID, req, txn, txnType, currency)
	case models.TxnTypeExpense, models.TxnTypeIncome:
		err = s.prepareSingleSided(userID, req, txn)
	default:
		err = apperrors.NewValidation("Invalid transaction type: %s", txnType)
	}
	if err != nil {
		return nil, err
	}

	if err := s.txnRepo.Create(txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.metrics.IncrementCounter("transactions_created", string(txnType))
	s.metrics.RecordProcessingTime("transaction_create", time.Since(start))
	s.logger.Info("transaction created",
		"transaction_id", txn.ID,
		"user_id", userID,
		"txn_type", txnType,
	)

	return txn, nil
}

// prepareTransfer fills in the two-account fields of a transfer. A cross-
// currency transfer carries both to_amount and to_currency_code; a same-
// currency one carries neither.
func (s *TransactionService) prepareTransfer(userID uuid.UUID, req *dto.CreateTransactionRequest, txn *models.Transaction) error {
	if req.FromAccountID == nil {
		return apperrors.NewValidation("Transfer must have from_account_id")
	}
	if req.ToAccountID == nil {
		return apperrors.NewValidation("Transfer must have to_account_id")
	}
	if *req.FromAccountID == *req.ToAccountID {
		return apperrors.NewValidation("Transfer from and to accounts must be different")
	}

	if err := verifyAccountRef(s.accountRepo, userID, *req.FromAccountID); err != nil {
		return err
	}
	if err := verifyAccountRef(s.accountRepo, userID, *req.ToAccountID); err != nil {
		return err
	}

	var toCurrency *string
	if req.ToCurrencyCode != nil {
		normalized, err := validation.NormalizeCurrencyCode(*req.ToCurrencyCode)
		if err != nil {
			return err
		}
		toCurrency = &normalized
	}

	if (req.ToAmount != nil) != (toCurrency != nil) {
		return apperrors.NewValidation("to_amount and to_currency_code must both be present or both be absent")
	}
	if req.ToAmount != nil && !req.ToAmount.IsPositive() {
		return apperrors.NewValidation("To amount must be positive")
	}

	txn.FromAccountID = req.FromAccountID
	txn.ToAccountID = req.ToAccountID
	txn.ToAmount = req.ToAmount
	txn.ToCurrencyCode = toCurrency
	txn.RefTransactionID = nil
	return nil
}

// prepareRefundOrAdjustment fills in the fields of a refund or adjustment,
// which must reference an owned original transaction in the same currency and
// touch exactly one account.
func (s *TransactionService) prepareRefundOrAdjustment(userID uuid.UUID, req *dto.CreateTransactionRequest, txn *models.Transaction, txnType models.TxnType, currency string) error {
	if req.ToAmount != nil || req.ToCurrencyCode != nil {
		return apperrors.NewValidation("Refund/adjustment cannot have to_amount or to_currency_code")
	}
	if req.RefTransactionID == nil {
		return apperrors.NewValidation("%s must have ref_transaction_id", txnType)
	}

	refTxn, err := loadOwnedTransaction(s.txnRepo, userID, *req.RefTransactionID)
	if err != nil {
		return err
	}
	if refTxn.CurrencyCode != currency {
		return apperrors.NewValidation("Refund/adjustment currency must match original transaction")
	}

	if req.FromAccountID != nil && req.ToAccountID != nil {
		return apperrors.NewValidation("Refund/adjustment must have only one of from_account_id or to_account_id")
	}
	if req.FromAccountID == nil && req.ToAccountID == nil {
		return apperrors.NewValidation("Refund/adjustment must have from_account_id or to_account_id")
	}

	if req.FromAccountID != nil {
		if err := verifyAccountRef(s.accountRepo, userID, *req.FromAccountID); err != nil {
			return err
		}
	}
	if req.ToAccountID != nil {
		if err := verifyAccountRef(s.accountRepo, userID, *req.ToAccountID); err != nil {
			return err
		}
	}

	txn.FromAccountID = req.FromAccountID
	txn.ToAccountID = req.ToAccountID
	txn.ToAmount = nil
	txn.ToCurrencyCode = nil
	txn.RefTransactionID = req.RefTransactionID
	return nil
}

// prepareSingleSided fills in the fields of an expense or income, which
// involves exactly one account on either side.
func (s *TransactionService) prepareSingleSided(userID uuid.UUID, req *dto.CreateTransactionRequest, txn *models.Transaction) error {
	if req.ToAmount != nil || req.ToCurrencyCode != nil {
		return apperrors.NewValidation("Non-transfer transaction cannot have to_amount or to_currency_code")
	}
	if req.RefTransactionID != nil {
		return apperrors.NewValidation("Non-refund/adjustment transaction cannot have ref_transaction_id")
	}
	if req.FromAccountID != nil && req.ToAccountID != nil {
		return apperrors.NewValidation("Non-transfer transaction cannot have both from and to accounts")
	}
	if req.FromAccountID == nil && req.ToAccountID == nil {
		return apperrors.NewValidation("Transaction must have from_account_id or to_account_id")
	}

	if req.FromAccountID != nil {
		if err := verifyAccountRef(s.accountRepo, userID, *req.FromAccountID); err != nil {
			return err
		}
	}
	if req.ToAccountID != nil {
		if err := verifyAccountRef(s.accountRepo, userID, *req.ToAccountID); err != nil {
			return err
		}
	}

	txn.FromAccountID = req.FromAccountID
	txn.ToAccountID = req.ToAccountID
	txn.ToAmount = nil
	txn.ToCurrencyCode = nil
	txn.RefTransactionID = nil
	return nil
}

// GetTransaction retrieves a single transaction owned by the user
func (s *TransactionService) GetTransaction(userID, txnID uuid.UUID) (*models.Transaction, error) {
	return loadOwnedTransaction(s.txnRepo, userID, txnID)
}

// ListTransactions retrieves the user's transactions matching the request
// filters, newest first.
//
// Pagination derives a page number from the raw offset and limit, so offsets
// that are not exact multiples of the limit round down to a page boundary.
// Known quirk, kept for compatibility with existing clients.
func (s *TransactionService) ListTransactions(userID uuid.UUID, req *dto.ListTransactionsRequest) ([]models.Transaction, error) {
	filters := models.TransactionFilters{
		StartDate: req.Start,
		EndDate:   req.End,
		Category:  req.Category,
		AccountID: req.AccountID,
		MinAmount: req.MinAmount,
		MaxAmount: req.MaxAmount,
	}

	if req.Keyword != nil {
		if len(*req.Keyword) > maxKeywordLength {
			return nil, apperrors.NewValidation("Keyword too long")
		}
		filters.Keyword = req.Keyword
	}

	// The type filter is a plain equality match after lowercasing. Unknown
	// types are not rejected, they simply match no rows.
	if req.TxnType != nil {
		txnType := models.TxnType(strings.ToLower(*req.TxnType))
		filters.TxnType = &txnType
	}

	rawLimit := defaultTransactionPageSize
	if req.Limit != nil && *req.Limit > 0 {
		rawLimit = *req.Limit
	}
	rawOffset := 0
	if req.Offset != nil && *req.Offset > 0 {
		rawOffset = *req.Offset
	}

	page := rawOffset / rawLimit
	limit := rawLimit
	if limit > maxTransactionPageSize {
		limit = maxTransactionPageSize
	}
	offset := page * limit

	filters.Limit = &limit
	filters.Offset = &offset

	transactions, _, err := s.txnRepo.GetWithFilters(userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// UpdateTransaction applies the mutable fields of the request to an owned
// transaction. Absent fields are left untouched.
func (s *TransactionService) UpdateTransaction(userID, txnID uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error) {
	txn, err := loadOwnedTransaction(s.txnRepo, userID, txnID)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		txn.Category = req.Category
	}
	if req.Note != nil {
		txn.Note = req.Note
	}
	if req.OccurredAt != nil {
		txn.OccurredAt = *req.OccurredAt
	}
	if req.Merchant != nil {
		txn.Merchant = req.Merchant
	}

	if err := s.txnRepo.Save(txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.logger.Info("transaction updated", "transaction_id", txnID, "user_id", userID)
	return txn, nil
}

// DeleteTransaction removes an owned transaction unless refunds or
// adjustments still reference it.
func (s *TransactionService) DeleteTransaction(userID, txnID uuid.UUID) error {
	if _, err := loadOwnedTransaction(s.txnRepo, userID, txnID); err != nil {
		return err
	}

	refCount, err := s.txnRepo.CountByRefTransaction(txnID)
	if err != nil {
		return fmt.Errorf("failed to count referencing transactions: %w", err)
	}
	if refCount > 0 {
		return apperrors.NewConflict("Cannot delete transaction with existing refunds")
	}

	if err := s.txnRepo.Delete(txnID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.metrics.IncrementCounter("transactions_deleted")
	s.logger.Info("transaction deleted", "transaction_id", txnID, "user_id", userID)
	return nil
}
