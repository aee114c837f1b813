package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/finbook/finbook_backend/internal/apperrors"
	"github.com/finbook/finbook_backend/internal/core/domain"
	portsrepo "github.com/finbook/finbook_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = "account_id, owner_id, account_type, name, balance, created_at, last_updated_at"

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// NewPgxAccountRepository creates a new repository for account data.
func NewPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	err := row.Scan(
		&acc.AccountID,
		&acc.OwnerID,
		&acc.AccountType,
		&acc.Name,
		&acc.Balance,
		&acc.CreatedAt,
		&acc.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan account row: %w", err)
	}
	return &acc, nil
}

// SaveAccount inserts a new account and returns it with the generated ID.
// The unique constraint on (owner_id, name) is the authoritative guard
// against duplicate names under concurrent creates.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (owner_id, account_type, name, balance, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING account_id;
	`
	now := time.Now().UTC()
	account.CreatedAt = now
	account.LastUpdatedAt = now

	err := r.pool.QueryRow(ctx, query,
		account.OwnerID,
		account.AccountType,
		account.Name,
		account.Balance,
		account.CreatedAt,
		account.LastUpdatedAt,
	).Scan(&account.AccountID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: account named %q", apperrors.ErrDuplicate, account.Name)
		}
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	return &account, nil
}

// FindAccountByID retrieves an account by ID, scoped to its owner. Accounts
// belonging to other users read as not found so their existence is not leaked.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, ownerID, accountID int64) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = $1 AND owner_id = $2;
	`
	return scanAccount(r.pool.QueryRow(ctx, query, accountID, ownerID))
}

// FindAccountByName retrieves an account by its owner-scoped name.
func (r *PgxAccountRepository) FindAccountByName(ctx context.Context, ownerID int64, name string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE owner_id = $1 AND name = $2;
	`
	return scanAccount(r.pool.QueryRow(ctx, query, ownerID, name))
}

// FindAccountsByIDs retrieves multiple accounts by their IDs. Missing IDs are
// simply absent from the returned map; callers check for what they need.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[int64]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1);
	`
	rows, err := r.pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[int64]domain.Account)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accountsMap[acc.AccountID] = *acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accountsMap, nil
}

// ListAccounts retrieves one page of an owner's accounts, sorted by name
// ascending, optionally filtered by account type.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, ownerID int64, accountType *domain.AccountType, limit, offset int) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE owner_id = $1
	`
	args := []any{ownerID}
	if accountType != nil {
		args = append(args, *accountType)
		query += " AND account_type = $" + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query += " ORDER BY name ASC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for owner %d: %w", ownerID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows for owner %d: %w", ownerID, err)
	}
	return accounts, nil
}

// UpdateAccount updates an account's type and name. Balance is deliberately
// not updatable here; balances mutate only through SaveTransaction.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET account_type = $3, name = $4, last_updated_at = $5
		WHERE account_id = $1 AND owner_id = $2;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		account.AccountID,
		account.OwnerID,
		account.AccountType,
		account.Name,
		time.Now().UTC(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account named %q", apperrors.ErrDuplicate, account.Name)
		}
		return fmt.Errorf("failed to update account %d: %w", account.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
