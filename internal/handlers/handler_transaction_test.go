package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finbook/finbook_backend/internal/apperrors"
	"github.com/finbook/finbook_backend/internal/core/domain"
	portssvc "github.com/finbook/finbook_backend/internal/core/ports/services"
	"github.com/finbook/finbook_backend/internal/core/services"
	"github.com/finbook/finbook_backend/internal/dto"
	"github.com/finbook/finbook_backend/internal/handlers"
	"github.com/finbook/finbook_backend/internal/utils"
	"github.com/finbook/finbook_backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) PostTransaction(ctx context.Context, actorID int64, req dto.PostTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, actorID, transactionID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, actorID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, actorID int64, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, actorID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, ownerID int64, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, ownerID, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, ownerID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, ownerID int64, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAccountsResponse), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, ownerID, accountID int64, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, ownerID, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockTransactionService *MockTransactionService
	jwtSecret              string
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockTransactionService = new(MockTransactionService)

	cfg := &config.AppConfig{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skip swagger routes
	}
	container := &portssvc.ServiceContainer{
		User:        new(MockUserService),
		Auth:        new(MockAuthService),
		Account:     new(MockAccountService),
		Transaction: suite.mockTransactionService,
	}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	token, err := utils.GenerateJWT(userID, suite.jwtSecret, time.Hour, "finbook-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *TransactionHandlerTestSuite) doRequest(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestPostTransaction_Success() {
	token := suite.generateTestToken("1")
	amount := decimal.NewFromFloat(25.40)

	suite.mockTransactionService.On("PostTransaction", mock.Anything, int64(1),
		mock.MatchedBy(func(req dto.PostTransactionRequest) bool {
			return *req.TransactionType == domain.Transfer &&
				req.Amount.Equal(amount) &&
				*req.Source == int64(1) &&
				*req.Target == int64(2)
		}),
	).Return(&domain.Transaction{
		TransactionID:   1,
		TransactionType: domain.Transfer,
		Amount:          amount,
		Date:            time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		Transfer:        &domain.TransferDetail{SourceAccountID: 1, TargetAccountID: 2},
	}, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", token, gin.H{
		"type":   0,
		"amount": "25.40",
		"date":   "2026-08-15",
		"source": 1,
		"target": 2,
	})

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(1), resp.TransactionID)
	suite.Equal("Transfer", resp.TypeName)
	suite.Equal("2026-08-15", resp.Date)
	suite.Require().NotNil(resp.Source)
	suite.Equal(int64(1), *resp.Source)
	suite.Nil(resp.Account)
	suite.mockTransactionService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestPostTransaction_NoToken() {
	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", "", gin.H{
		"type": 0, "amount": "10", "source": 1, "target": 2,
	})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTransactionService.AssertNotCalled(suite.T(), "PostTransaction")
}

func (suite *TransactionHandlerTestSuite) TestPostTransaction_MissingRequiredFields() {
	token := suite.generateTestToken("1")

	// Binding rejects a payload without type and amount before the service
	// is consulted.
	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", token, gin.H{
		"source": 1, "target": 2,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransactionService.AssertNotCalled(suite.T(), "PostTransaction")
}

func (suite *TransactionHandlerTestSuite) TestPostTransaction_ValidationErrorMapsTo400() {
	token := suite.generateTestToken("1")

	suite.mockTransactionService.On("PostTransaction", mock.Anything, int64(1), mock.Anything).
		Return(nil, services.ErrTargetEqualsSource).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", token, gin.H{
		"type": 0, "amount": "10", "source": 1, "target": 1,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestPostTransaction_UnknownAccountMapsTo404() {
	token := suite.generateTestToken("1")

	suite.mockTransactionService.On("PostTransaction", mock.Anything, int64(1), mock.Anything).
		Return(nil, services.ErrSourceAccountNotFound).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", token, gin.H{
		"type": 0, "amount": "10", "source": 42, "target": 2,
	})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	token := suite.generateTestToken("1")

	suite.mockTransactionService.On("GetTransactionByID", mock.Anything, int64(1), int64(77)).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions/77", token, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_BindsQueryParams() {
	token := suite.generateTestToken("3")

	suite.mockTransactionService.On("ListTransactions", mock.Anything, int64(3),
		mock.MatchedBy(func(params dto.ListTransactionsParams) bool {
			return params.TransactionType != nil && *params.TransactionType == domain.Interest &&
				params.Date != nil && *params.Date == "2026-08-15" &&
				params.Account != nil && *params.Account == int64(2) &&
				params.Size == 3 && params.Page == 1
		}),
	).Return(&dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{},
		HasMore:      false,
	}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions?type=1&date=2026-08-15&account=2&size=3&page=1", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockTransactionService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_DefaultPagination() {
	token := suite.generateTestToken("3")

	suite.mockTransactionService.On("ListTransactions", mock.Anything, int64(3),
		mock.MatchedBy(func(params dto.ListTransactionsParams) bool {
			return params.Size == 5 && params.Page == 0 &&
				params.TransactionType == nil && params.Date == nil && params.Account == nil
		}),
	).Return(&dto.ListTransactionsResponse{Transactions: []dto.TransactionResponse{}}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockTransactionService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestListTransactionTypes() {
	token := suite.generateTestToken("1")

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions/types", token, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListTransactionTypesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Types, 2)
	suite.Equal("Transfer", resp.Types[0].Name)
	suite.Equal("Interest", resp.Types[1].Name)
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
