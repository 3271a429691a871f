package repositories

import (
	"errors"
	"fmt"
	"strings"

	"finledger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by ID
func (r *transactionRepository) GetByID(id uuid.UUID) (*models.Transaction, error) {
	transaction := &models.Transaction{ID: id}
	if err := r.db.First(transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return transaction, nil
}

// GetWithFilters retrieves a user's transactions with optional filters applied,
// newest first. The caller is responsible for clamping Limit and Offset.
func (r *transactionRepository) GetWithFilters(userID uuid.UUID, filters models.TransactionFilters) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	query := r.db.Model(&models.Transaction{}).Where("user_id = ?", userID)

	if filters.StartDate != nil {
		query = query.Where("occurred_at >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("occurred_at <= ?", *filters.EndDate)
	}
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.AccountID != nil {
		query = query.Where("(from_account_id = ? OR to_account_id = ?)", *filters.AccountID, *filters.AccountID)
	}
	if filters.MinAmount != nil {
		query = query.Where("amount >= ?", *filters.MinAmount)
	}
	if filters.MaxAmount != nil {
		query = query.Where("amount <= ?", *filters.MaxAmount)
	}
	if filters.Keyword != nil && *filters.Keyword != "" {
		pattern := "%" + escapeLikePattern(*filters.Keyword) + "%"
		query = query.Where("(note LIKE ? ESCAPE '\\' OR merchant LIKE ? ESCAPE '\\')", pattern, pattern)
	}
	if filters.TxnType != nil {
		query = query.Where("txn_type = ?", *filters.TxnType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count filtered transactions: %w", err)
	}

	offset := 0
	if filters.Offset != nil {
		offset = *filters.Offset
	}
	limit := 100
	if filters.Limit != nil {
		limit = *filters.Limit
	}

	if err := query.Offset(offset).Limit(limit).
		Order("occurred_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get filtered transactions: %w", err)
	}

	return transactions, total, nil
}

// CountByAccount counts transactions that reference the account on either side
func (r *transactionRepository) CountByAccount(accountID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).
		Where("from_account_id = ? OR to_account_id = ?", accountID, accountID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions by account: %w", err)
	}
	return count, nil
}

// CountByRefTransaction counts transactions that reference the given transaction
func (r *transactionRepository) CountByRefTransaction(refTransactionID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).
		Where("ref_transaction_id = ?", refTransactionID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count referencing transactions: %w", err)
	}
	return count, nil
}

// Save persists changes to an existing transaction
func (r *transactionRepository) Save(transaction *models.Transaction) error {
	if err := r.db.Save(transaction).Error; err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

// Delete removes a transaction by ID
func (r *transactionRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Transaction{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// escapeLikePattern escapes LIKE wildcards so keyword characters match
// literally inside the pattern.
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
