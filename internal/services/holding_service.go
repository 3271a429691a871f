package services

import (
	"errors"
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

// HoldingService manages investment holdings. A user holds at most one row
// per (account, asset type, symbol) triple.
type HoldingService struct {
	holdingRepo repositories.HoldingRepositoryInterface
	accountRepo repositories.AccountRepositoryInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewHoldingService creates a new holding service
func NewHoldingService(
	holdingRepo repositories.HoldingRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) HoldingServiceInterface {
	return &HoldingService{
		holdingRepo: holdingRepo,
		accountRepo: accountRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// CreateHolding records a new holding under one of the user's accounts
func (s *HoldingService) CreateHolding(userID uuid.UUID, req *dto.CreateHoldingRequest) (*models.Holding, error) {
	if err := verifyAccountRef(s.accountRepo, userID, req.AccountID); err != nil {
		return nil, err
	}

	if req.Quantity.IsNegative() {
		return nil, apperrors.NewValidation("Quantity cannot be negative")
	}
	if req.CostBasisTotal.IsNegative() {
		return nil, apperrors.NewValidation("Cost basis total cannot be negative")
	}
	if err := validateOptionalPrices(req.LastPrice, req.MarketValue); err != nil {
		return nil, err
	}

	assetType, err := validation.NormalizeAssetType(req.AssetType)
	if err != nil {
		return nil, err
	}

	currency, err := validation.NormalizeCurrencyCode(req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	symbol, err := validation.NormalizeSymbol(req.Symbol)
	if err != nil {
		return nil, err
	}

	holding := &models.Holding{
		UserID:         userID,
		AccountID:      req.AccountID,
		AssetType:      assetType,
		Symbol:         symbol,
		Name:           req.Name,
		Quantity:       req.Quantity,
		CostBasisTotal: req.CostBasisTotal,
		CurrencyCode:   currency,
		LastPrice:      req.LastPrice,
		LastPriceAt:    req.LastPriceAt,
		MarketValue:    req.MarketValue,
	}

	if err := s.holdingRepo.Create(holding); err != nil {
		if errors.Is(err, repositories.ErrDuplicateHolding) {
			return nil, apperrors.NewConflict("Holdings with same account, asset type and symbol already exists")
		}
		return nil, fmt.Errorf("failed to create holding: %w", err)
	}

	s.metrics.IncrementCounter("holdings_created", string(assetType))
	s.logger.Info("holding created",
		"holding_id", holding.ID,
		"user_id", userID,
		"account_id", req.AccountID,
		"symbol", symbol,
	)

	return holding, nil
}

// GetHolding retrieves a single holding owned by the user
func (s *HoldingService) GetHolding(userID, holdingID uuid.UUID) (*models.Holding, error) {
	return loadOwnedHolding(s.holdingRepo, userID, holdingID)
}

// ListHoldings retrieves the user's holdings, optionally narrowed to one
// account or one asset type.
func (s *HoldingService) ListHoldings(userID uuid.UUID, req *dto.ListHoldingsRequest) ([]models.Holding, error) {
	filters := models.HoldingFilters{AccountID: req.AccountID}

	if req.AssetType != nil {
		assetType, err := validation.NormalizeAssetType(*req.AssetType)
		if err != nil {
			return nil, err
		}
		filters.AssetType = &assetType
	}

	holdings, err := s.holdingRepo.List(userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	return holdings, nil
}

// UpdateHolding applies the mutable fields of the request to an owned
// holding. All bounds are checked before anything is applied.
func (s *HoldingService) UpdateHolding(userID, holdingID uuid.UUID, req *dto.UpdateHoldingRequest) (*models.Holding, error) {
	holding, err := loadOwnedHolding(s.holdingRepo, userID, holdingID)
	if err != nil {
		return nil, err
	}

	if req.Quantity != nil && req.Quantity.IsNegative() {
		return nil, apperrors.NewValidation("Quantity cannot be negative")
	}
	if req.CostBasisTotal != nil && req.CostBasisTotal.IsNegative() {
		return nil, apperrors.NewValidation("Cost basis total cannot be negative")
	}
	if err := validateOptionalPrices(req.LastPrice, req.MarketValue); err != nil {
		return nil, err
	}

	if req.Quantity != nil {
		holding.Quantity = *req.Quantity
	}
	if req.CostBasisTotal != nil {
		holding.CostBasisTotal = *req.CostBasisTotal
	}
	if req.LastPrice != nil {
		holding.LastPrice = req.LastPrice
	}
	if req.LastPriceAt != nil {
		holding.LastPriceAt = req.LastPriceAt
	}
	if req.MarketValue != nil {
		holding.MarketValue = req.MarketValue
	}
	if req.Name != nil {
		holding.Name = req.Name
	}

	if err := s.holdingRepo.Save(holding); err != nil {
		return nil, fmt.Errorf("failed to update holding: %w", err)
	}

	s.logger.Info("holding updated", "holding_id", holdingID, "user_id", userID)
	return holding, nil
}

// DeleteHolding removes an owned holding
func (s *HoldingService) DeleteHolding(userID, holdingID uuid.UUID) error {
	if _, err := loadOwnedHolding(s.holdingRepo, userID, holdingID); err != nil {
		return err
	}

	if err := s.holdingRepo.Delete(holdingID); err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}

	s.metrics.IncrementCounter("holdings_deleted")
	s.logger.Info("holding deleted", "holding_id", holdingID, "user_id", userID)
	return nil
}

func validateOptionalPrices(lastPrice, marketValue *decimal.Decimal) error {
	if lastPrice != nil && lastPrice.IsNegative() {
		return apperrors.NewValidation("Price cannot be negative")
	}
	if marketValue != nil && marketValue.IsNegative() {
		return apperrors.NewValidation("Market value cannot be negative")
	}
	return nil
}
