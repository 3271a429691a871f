package repositories

import (
	"testing"

	"finledger/internal/database"
	"finledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// AccountRepositorySuite defines the test suite for AccountRepository
type AccountRepositorySuite struct {
	suite.Suite
	db       *database.DB
	repo     AccountRepositoryInterface
	testUser *models.User
}

// SetupTest runs before each test in the suite
func (s *AccountRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewAccountRepository(s.db.DB)
	s.testUser = database.CreateTestUser(s.T(), s.db, "accountowner")
}

// TearDownTest runs after each test in the suite
func (s *AccountRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestAccountRepositorySuite runs the test suite
func TestAccountRepositorySuite(t *testing.T) {
	suite.Run(t, new(AccountRepositorySuite))
}

func (s *AccountRepositorySuite) newAccount(name string) *models.Account {
	return &models.Account{
		UserID:       s.testUser.ID,
		Name:         name,
		AccountType:  "bank",
		CurrencyCode: "USD",
		Balance:      decimal.NewFromFloat(100.00),
	}
}

func (s *AccountRepositorySuite) TestCreate() {
	account := s.newAccount("Checking")

	err := s.repo.Create(account)
	s.NoError(err)
	s.NotEqual(uuid.Nil, account.ID)
	s.NotZero(account.CreatedAt)
	s.NotZero(account.UpdatedAt)
}

func (s *AccountRepositorySuite) TestGetByID() {
	account := s.newAccount("Checking")
	s.NoError(s.repo.Create(account))

	found, err := s.repo.GetByID(account.ID)
	s.NoError(err)
	s.Equal(account.Name, found.Name)
	s.Equal(s.testUser.ID, found.UserID)
}

func (s *AccountRepositorySuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(uuid.New())
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *AccountRepositorySuite) TestGetByUserID() {
	s.NoError(s.repo.Create(s.newAccount("Checking")))
	s.NoError(s.repo.Create(s.newAccount("Savings")))

	otherUser := database.CreateTestUser(s.T(), s.db, "otheruser")
	other := &models.Account{
		UserID:       otherUser.ID,
		Name:         "Other",
		AccountType:  "bank",
		CurrencyCode: "EUR",
	}
	s.NoError(s.repo.Create(other))

	accounts, err := s.repo.GetByUserID(s.testUser.ID)
	s.NoError(err)
	s.Len(accounts, 2)
	for _, account := range accounts {
		s.Equal(s.testUser.ID, account.UserID)
	}
}

func (s *AccountRepositorySuite) TestGetByUserID_Empty() {
	accounts, err := s.repo.GetByUserID(uuid.New())
	s.NoError(err)
	s.Empty(accounts)
}

func (s *AccountRepositorySuite) TestSave() {
	account := s.newAccount("Checking")
	s.NoError(s.repo.Create(account))

	account.Name = "Renamed"
	s.NoError(s.repo.Save(account))

	found, err := s.repo.GetByID(account.ID)
	s.NoError(err)
	s.Equal("Renamed", found.Name)
}

func (s *AccountRepositorySuite) TestDelete() {
	account := s.newAccount("Checking")
	s.NoError(s.repo.Create(account))

	s.NoError(s.repo.Delete(account.ID))

	_, err := s.repo.GetByID(account.ID)
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *AccountRepositorySuite) TestDelete_NotFound() {
	err := s.repo.Delete(uuid.New())
	s.ErrorIs(err, ErrAccountNotFound)
}
