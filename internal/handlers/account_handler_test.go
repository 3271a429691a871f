package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"finledger/internal/dto"
	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerSuite))
}

type AccountHandlerSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	accountService *service_mocks.MockAccountServiceInterface
	handler        *AccountHandler
	e              *echo.Echo
	userID         uuid.UUID
}

func (s *AccountHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.accountService = service_mocks.NewMockAccountServiceInterface(s.ctrl)
	s.handler = NewAccountHandler(s.accountService)
	s.e = echo.New()
	s.e.Validator = NewValidator()
	s.userID = uuid.New()
}

func (s *AccountHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

// newContext builds an authenticated request context. Pass a nil body for
// requests without one.
func (s *AccountHandlerSuite) newContext(method, path string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		req = httptest.NewRequest(method, path, bytes.NewBuffer(raw))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.Set("user_id", s.userID)
	return c, rec
}

func (s *AccountHandlerSuite) TestCreate_Success() {
	account := &models.Account{
		ID:           uuid.New(),
		UserID:       s.userID,
		Name:         "Checking",
		AccountType:  "checking",
		CurrencyCode: "USD",
		Balance:      decimal.NewFromInt(100),
	}

	s.accountService.EXPECT().
		CreateAccount(s.userID, gomock.Any()).
		Return(account, nil)

	c, rec := s.newContext(http.MethodPost, "/accounts", map[string]interface{}{
		"name":            "Checking",
		"account_type":    "Checking",
		"currency_code":   "usd",
		"initial_balance": "100",
	})

	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusCreated, rec.Code)

	var resp models.Account
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(account.ID, resp.ID)
	s.Equal("USD", resp.CurrencyCode)
}

func (s *AccountHandlerSuite) TestCreate_Unauthenticated() {
	req := httptest.NewRequest(http.MethodPost, "/accounts", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AccountHandlerSuite) TestCreate_ValidationFailure() {
	s.accountService.EXPECT().
		CreateAccount(s.userID, gomock.Any()).
		Return(nil, apperrors.NewValidation("Account name cannot be empty"))

	// Whitespace-only name passes struct validation but fails normalization.
	c, rec := s.newContext(http.MethodPost, "/accounts", map[string]interface{}{
		"name":          "   ",
		"account_type":  "checking",
		"currency_code": "USD",
	})

	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	var resp apperrors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("Account name cannot be empty", resp.Error.Message)
}

func (s *AccountHandlerSuite) TestList_Success() {
	accounts := []models.Account{
		{ID: uuid.New(), UserID: s.userID, Name: "Checking"},
		{ID: uuid.New(), UserID: s.userID, Name: "Savings"},
	}

	s.accountService.EXPECT().
		ListAccounts(s.userID).
		Return(accounts, nil)

	c, rec := s.newContext(http.MethodGet, "/accounts", nil)

	s.NoError(s.handler.List(c))
	s.Equal(http.StatusOK, rec.Code)

	// Plain array body directly, no envelope.
	var resp []models.Account
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Len(resp, 2)
}

func (s *AccountHandlerSuite) TestGet_Success() {
	accountID := uuid.New()
	account := &models.Account{ID: accountID, UserID: s.userID, Name: "Checking"}

	s.accountService.EXPECT().
		GetAccount(s.userID, accountID).
		Return(account, nil)

	c, rec := s.newContext(http.MethodGet, "/accounts/"+accountID.String(), nil)
	c.SetParamNames("account_id")
	c.SetParamValues(accountID.String())

	s.NoError(s.handler.Get(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *AccountHandlerSuite) TestGet_InvalidID() {
	c, rec := s.newContext(http.MethodGet, "/accounts/not-a-uuid", nil)
	c.SetParamNames("account_id")
	c.SetParamValues("not-a-uuid")

	s.NoError(s.handler.Get(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *AccountHandlerSuite) TestGet_NotFound() {
	accountID := uuid.New()

	s.accountService.EXPECT().
		GetAccount(s.userID, accountID).
		Return(nil, apperrors.ErrNotFound)

	c, rec := s.newContext(http.MethodGet, "/accounts/"+accountID.String(), nil)
	c.SetParamNames("account_id")
	c.SetParamValues(accountID.String())

	s.NoError(s.handler.Get(c))
	s.Equal(http.StatusNotFound, rec.Code)

	var resp apperrors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(string(apperrors.AccountNotFound), resp.Error.Code)
}

func (s *AccountHandlerSuite) TestGet_Forbidden() {
	accountID := uuid.New()

	s.accountService.EXPECT().
		GetAccount(s.userID, accountID).
		Return(nil, apperrors.ErrForbidden)

	c, rec := s.newContext(http.MethodGet, "/accounts/"+accountID.String(), nil)
	c.SetParamNames("account_id")
	c.SetParamValues(accountID.String())

	s.NoError(s.handler.Get(c))
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *AccountHandlerSuite) TestUpdate_Success() {
	accountID := uuid.New()
	updated := &models.Account{ID: accountID, UserID: s.userID, Name: "Renamed"}

	s.accountService.EXPECT().
		UpdateAccount(s.userID, accountID, gomock.Any()).
		DoAndReturn(func(_ uuid.UUID, _ uuid.UUID, req *dto.UpdateAccountRequest) (*models.Account, error) {
			s.Require().NotNil(req.Name)
			s.Equal("Renamed", *req.Name)
			s.Nil(req.AccountType)
			return updated, nil
		})

	c, rec := s.newContext(http.MethodPut, "/accounts/"+accountID.String(), map[string]interface{}{
		"name": "Renamed",
	})
	c.SetParamNames("account_id")
	c.SetParamValues(accountID.String())

	s.NoError(s.handler.Update(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *AccountHandlerSuite) TestDelete_Success() {
	accountID := uuid.New()

	s.accountService.EXPECT().
		DeleteAccount(s.userID, accountID).
		Return(nil)

	c, rec := s.newContext(http.MethodDelete, "/accounts/"+accountID.String(), nil)
	c.SetParamNames("account_id")
	c.SetParamValues(accountID.String())

	s.NoError(s.handler.Delete(c))
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *AccountHandlerSuite) TestDelete_HasTransactions() {
	accountID := uuid.New()

	s.accountService.EXPECT().
		DeleteAccount(s.userID, accountID).
		Return(apperrors.NewConflict("Cannot delete account with existing transactions"))

	c, rec := s.newContext(http.MethodDelete, "/accounts/"+accountID.String(), nil)
	c.SetParamNames("account_id")
	c.SetParamValues(accountID.String())

	s.NoError(s.handler.Delete(c))
	s.Equal(http.StatusConflict, rec.Code)

	var resp apperrors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(string(apperrors.AccountHasReferences), resp.Error.Code)
	s.Equal("Cannot delete account with existing transactions", resp.Error.Message)
}
