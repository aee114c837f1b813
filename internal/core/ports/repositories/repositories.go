package repositories

import (
	"context"

	"github.com/finbook/finbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// SaveUser inserts a new user and returns it with the generated ID.
	SaveUser(ctx context.Context, user domain.User) (*domain.User, error)
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AccountRepository defines persistence operations for accounts.
// All lookups that take an ownerID fold the ownership check into the query,
// so accounts belonging to other users read as not found.
type AccountRepository interface {
	// SaveAccount inserts a new account and returns it with the generated ID.
	// A (owner, name) collision surfaces as apperrors.ErrDuplicate; the DB
	// unique constraint is the authoritative guard against creation races.
	SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error)
	FindAccountByID(ctx context.Context, ownerID, accountID int64) (*domain.Account, error)
	FindAccountByName(ctx context.Context, ownerID int64, name string) (*domain.Account, error)
	// FindAccountsByIDs retrieves accounts by ID without an ownership filter;
	// callers perform their own ownership checks on the result.
	FindAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error)
	ListAccounts(ctx context.Context, ownerID int64, accountType *domain.AccountType, limit, offset int) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// TransactionRepository defines persistence operations for the polymorphic
// transaction set (supertype row plus one subtype detail row).
type TransactionRepository interface {
	// SaveTransaction atomically applies the given balance deltas to the
	// affected accounts and inserts the transaction plus its detail row,
	// all within a single database transaction. Account rows are locked
	// before the balance read-modify-write to serialize concurrent posts.
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[int64]decimal.Decimal) (*domain.Transaction, error)
	// FindTransactionByID retrieves one transaction with its detail row,
	// visible only if ownerID owns an account the transaction references.
	FindTransactionByID(ctx context.Context, ownerID, transactionID int64) (*domain.Transaction, error)
	// ListTransactions retrieves transactions visible to ownerID matching the
	// filter, ordered by date descending then ID descending.
	ListTransactions(ctx context.Context, ownerID int64, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, error)
}
