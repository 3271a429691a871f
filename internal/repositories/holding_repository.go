package repositories

import (
	"errors"
	"fmt"

	"finledger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrHoldingNotFound  = errors.New("holding not found")
	ErrDuplicateHolding = errors.New("holding already exists")
)

// holdingRepository implements HoldingRepositoryInterface
type holdingRepository struct {
	db *gorm.DB
}

// NewHoldingRepository creates a new holding repository
func NewHoldingRepository(db *gorm.DB) HoldingRepositoryInterface {
	return &holdingRepository{
		db: db,
	}
}

// Create creates a new holding. The composite unique index on
// (user, account, asset type, symbol) maps violations to ErrDuplicateHolding.
func (r *holdingRepository) Create(holding *models.Holding) error {
	if err := r.db.Create(holding).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return ErrDuplicateHolding
		}
		return fmt.Errorf("failed to create holding: %w", err)
	}
	return nil
}

// GetByID retrieves a holding by ID
func (r *holdingRepository) GetByID(id uuid.UUID) (*models.Holding, error) {
	holding := &models.Holding{ID: id}
	if err := r.db.First(holding).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHoldingNotFound
		}
		return nil, fmt.Errorf("failed to get holding: %w", err)
	}
	return holding, nil
}

// List retrieves a user's holdings with optional filters applied
func (r *holdingRepository) List(userID uuid.UUID, filters models.HoldingFilters) ([]models.Holding, error) {
	var holdings []models.Holding

	query := r.db.Where("user_id = ?", userID)

	if filters.AccountID != nil {
		query = query.Where("account_id = ?", *filters.AccountID)
	}
	if filters.AssetType != nil {
		query = query.Where("asset_type = ?", *filters.AssetType)
	}

	if err := query.Order("created_at ASC").Find(&holdings).Error; err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	return holdings, nil
}

// CountByAccount counts holdings attached to the account
func (r *holdingRepository) CountByAccount(accountID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Holding{}).
		Where("account_id = ?", accountID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count holdings by account: %w", err)
	}
	return count, nil
}

// Save persists changes to an existing holding
func (r *holdingRepository) Save(holding *models.Holding) error {
	if err := r.db.Save(holding).Error; err != nil {
		return fmt.Errorf("failed to save holding: %w", err)
	}
	return nil
}

// Delete removes a holding by ID
func (r *holdingRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Holding{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete holding: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrHoldingNotFound
	}
	return nil
}
