package services

import (
	"log/slog"
	"testing"

	apperrors "finledger/internal/errors"
	"finledger/internal/dto"
	"finledger/internal/models"
	"finledger/internal/repositories"
	"finledger/internal/repositories/repository_mocks"
	"finledger/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// AccountServiceSuite defines the test suite for AccountServiceInterface
type AccountServiceSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	accountRepo   *repository_mocks.MockAccountRepositoryInterface
	txnRepo       *repository_mocks.MockTransactionRepositoryInterface
	holdingRepo   *repository_mocks.MockHoldingRepositoryInterface
	metrics       *service_mocks.MockMetricsRecorderInterface
	service       AccountServiceInterface
	testUserID    uuid.UUID
	testAccountID uuid.UUID
}

// SetupTest runs before each test in the suite
func (s *AccountServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.accountRepo = repository_mocks.NewMockAccountRepositoryInterface(s.ctrl)
	s.txnRepo = repository_mocks.NewMockTransactionRepositoryInterface(s.ctrl)
	s.holdingRepo = repository_mocks.NewMockHoldingRepositoryInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.metrics.EXPECT().IncrementCounter(gomock.Any(), gomock.Any()).AnyTimes()
	s.service = NewAccountService(s.accountRepo, s.txnRepo, s.holdingRepo, s.metrics, slog.Default())

	s.testUserID = uuid.New()
	s.testAccountID = uuid.New()
}

// TearDownTest runs after each test in the suite
func (s *AccountServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestAccountServiceSuite runs the test suite
func TestAccountServiceSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceSuite))
}

func (s *AccountServiceSuite) ownedAccount() *models.Account {
	return &models.Account{
		ID:           s.testAccountID,
		UserID:       s.testUserID,
		Name:         "Checking",
		AccountType:  "bank",
		CurrencyCode: "USD",
		Balance:      decimal.NewFromInt(100),
	}
}

func (s *AccountServiceSuite) TestCreateAccount_NormalizesFields() {
	s.accountRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(account *models.Account) error {
		account.ID = s.testAccountID
		return nil
	})

	initial := decimal.NewFromInt(250)
	account, err := s.service.CreateAccount(s.testUserID, &dto.CreateAccountRequest{
		Name:           "  My Savings  ",
		AccountType:    " Bank ",
		CurrencyCode:   "usd",
		InitialBalance: &initial,
	})

	s.Require().NoError(err)
	s.Equal("My Savings", account.Name)
	s.Equal("bank", account.AccountType)
	s.Equal("USD", account.CurrencyCode)
	s.True(account.Balance.Equal(decimal.NewFromInt(250)))
	s.Equal(s.testUserID, account.UserID)
}

func (s *AccountServiceSuite) TestCreateAccount_DefaultsBalanceToZero() {
	s.accountRepo.EXPECT().Create(gomock.Any()).Return(nil)

	account, err := s.service.CreateAccount(s.testUserID, &dto.CreateAccountRequest{
		Name:         "Wallet",
		AccountType:  "cash",
		CurrencyCode: "EUR",
	})

	s.Require().NoError(err)
	s.True(account.Balance.IsZero())
}

func (s *AccountServiceSuite) TestCreateAccount_ValidationFailures() {
	tests := []struct {
		name    string
		req     *dto.CreateAccountRequest
		message string
	}{
		{"empty name", &dto.CreateAccountRequest{Name: "   ", AccountType: "bank", CurrencyCode: "USD"}, "Account name cannot be empty"},
		{"empty type", &dto.CreateAccountRequest{Name: "A", AccountType: "  ", CurrencyCode: "USD"}, "Account type cannot be empty"},
		{"empty currency", &dto.CreateAccountRequest{Name: "A", AccountType: "bank", CurrencyCode: " "}, "Currency code cannot be empty"},
		{"currency too long", &dto.CreateAccountRequest{Name: "A", AccountType: "bank", CurrencyCode: "ABCDEFGHIJK"}, "Currency code too long (max 10 chars)"},
		{"currency not alphanumeric", &dto.CreateAccountRequest{Name: "A", AccountType: "bank", CurrencyCode: "US-D"}, "Currency code must be alphanumeric"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			account, err := s.service.CreateAccount(s.testUserID, tt.req)
			s.Nil(account)
			s.Require().Error(err)
			s.True(apperrors.IsValidation(err))
			s.Equal(tt.message, err.Error())
		})
	}
}

func (s *AccountServiceSuite) TestGetAccount_Success() {
	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(s.ownedAccount(), nil)

	account, err := s.service.GetAccount(s.testUserID, s.testAccountID)

	s.Require().NoError(err)
	s.Equal(s.testAccountID, account.ID)
}

func (s *AccountServiceSuite) TestGetAccount_NotFound() {
	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(nil, repositories.ErrAccountNotFound)

	account, err := s.service.GetAccount(s.testUserID, s.testAccountID)

	s.Nil(account)
	s.True(apperrors.IsNotFound(err))
}

func (s *AccountServiceSuite) TestGetAccount_ForeignAccountForbidden() {
	foreign := s.ownedAccount()
	foreign.UserID = uuid.New()
	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(foreign, nil)

	account, err := s.service.GetAccount(s.testUserID, s.testAccountID)

	s.Nil(account)
	s.True(apperrors.IsForbidden(err))
}

func (s *AccountServiceSuite) TestListAccounts() {
	s.accountRepo.EXPECT().GetByUserID(s.testUserID).Return([]models.Account{*s.ownedAccount()}, nil)

	accounts, err := s.service.ListAccounts(s.testUserID)

	s.Require().NoError(err)
	s.Len(accounts, 1)
}

func (s *AccountServiceSuite) TestUpdateAccount_PartialUpdate() {
	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(s.ownedAccount(), nil)
	s.accountRepo.EXPECT().Save(gomock.Any()).Return(nil)

	newName := " Renamed "
	account, err := s.service.UpdateAccount(s.testUserID, s.testAccountID, &dto.UpdateAccountRequest{
		Name: &newName,
	})

	s.Require().NoError(err)
	s.Equal("Renamed", account.Name)
	s.Equal("bank", account.AccountType)
	s.Equal("USD", account.CurrencyCode)
}

func (s *AccountServiceSuite) TestUpdateAccount_RejectsEmptyName() {
	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(s.ownedAccount(), nil)

	blank := "  "
	account, err := s.service.UpdateAccount(s.testUserID, s.testAccountID, &dto.UpdateAccountRequest{
		Name: &blank,
	})

	s.Nil(account)
	s.True(apperrors.IsValidation(err))
}

func (s *AccountServiceSuite) TestDeleteAccount_Success() {
	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(s.ownedAccount(), nil)
	s.txnRepo.EXPECT().CountByAccount(s.testAccountID).Return(int64(0), nil)
	s.holdingRepo.EXPECT().CountByAccount(s.testAccountID).Return(int64(0), nil)
	s.accountRepo.EXPECT().Delete(s.testAccountID).Return(nil)

	err := s.service.DeleteAccount(s.testUserID, s.testAccountID)

	s.NoError(err)
}

func (s *AccountServiceSuite) TestDeleteAccount_BlockedByTransactions() {
	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(s.ownedAccount(), nil)
	s.txnRepo.EXPECT().CountByAccount(s.testAccountID).Return(int64(3), nil)

	err := s.service.DeleteAccount(s.testUserID, s.testAccountID)

	s.Require().Error(err)
	s.True(apperrors.IsConflict(err))
	s.Equal("Cannot delete account with existing transactions", err.Error())
}

func (s *AccountServiceSuite) TestDeleteAccount_BlockedByHoldings() {
	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(s.ownedAccount(), nil)
	s.txnRepo.EXPECT().CountByAccount(s.testAccountID).Return(int64(0), nil)
	s.holdingRepo.EXPECT().CountByAccount(s.testAccountID).Return(int64(1), nil)

	err := s.service.DeleteAccount(s.testUserID, s.testAccountID)

	s.Require().Error(err)
	s.True(apperrors.IsConflict(err))
	s.Equal("Cannot delete account with existing holdings", err.Error())
}
