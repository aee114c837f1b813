package services

import (
	"context"
	"time"

	"github.com/finbook/finbook_backend/internal/core/domain"
	"github.com/finbook/finbook_backend/internal/dto"
)

// UserSvcFacade exposes user management operations.
type UserSvcFacade interface {
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
}

// AuthSvcFacade is the authentication collaborator: it verifies credentials
// and issues access tokens. The ledger core never sees raw passwords.
type AuthSvcFacade interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// AccountSvcFacade exposes the account ledger operations. Every operation
// takes the acting user explicitly; there is no ambient request state.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, ownerID int64, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, ownerID, accountID int64) (*domain.Account, error)
	ListAccounts(ctx context.Context, ownerID int64, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error)
	UpdateAccount(ctx context.Context, ownerID, accountID int64, req dto.UpdateAccountRequest) (*domain.Account, error)
}

// TransactionSvcFacade exposes the transaction poster and query engine.
type TransactionSvcFacade interface {
	PostTransaction(ctx context.Context, actorID int64, req dto.PostTransactionRequest) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, actorID, transactionID int64) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, actorID int64, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// ServiceContainer bundles all service facades for route registration.
type ServiceContainer struct {
	User        UserSvcFacade
	Auth        AuthSvcFacade
	Account     AccountSvcFacade
	Transaction TransactionSvcFacade
}
