package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/finbook/finbook_backend/internal/apperrors"
	"github.com/finbook/finbook_backend/internal/core/domain"
	portsrepo "github.com/finbook/finbook_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewPgxTransactionRepository creates a new repository for transaction data.
func NewPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{pool: pool}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

// SaveTransaction applies the balance deltas and inserts the transaction plus
// its detail row within a single database transaction. The affected account
// rows are locked FOR UPDATE before the balance writes, which serializes
// concurrent posts against the same accounts; a conflicting concurrent
// transaction surfaces as a transient error the caller may retry.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[int64]decimal.Decimal) (*domain.Transaction, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// Lock in ascending ID order so concurrent posts touching the same
	// accounts cannot deadlock each other.
	accountIDs := make([]int64, 0, len(balanceChanges))
	for accountID := range balanceChanges {
		accountIDs = append(accountIDs, accountID)
	}
	sort.Slice(accountIDs, func(i, j int) bool { return accountIDs[i] < accountIDs[j] })

	lockQuery := `
		SELECT account_id FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, lockQuery, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account rows: %w", err)
	}
	locked := 0
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		locked++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}
	if locked != len(accountIDs) {
		// Validated accounts vanished between the check and the lock.
		return nil, fmt.Errorf("%w: could not lock all affected accounts", apperrors.ErrNotFound)
	}

	now := time.Now().UTC()
	balanceQuery := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3
		WHERE account_id = $1;
	`
	batch := &pgx.Batch{}
	for _, accountID := range accountIDs {
		batch.Queue(balanceQuery, accountID, balanceChanges[accountID], now)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to apply balance changes: %w", err)
	}

	txnQuery := `
		INSERT INTO transactions (transaction_type, amount, transaction_date, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING transaction_id;
	`
	txn.CreatedAt = now
	err = tx.QueryRow(ctx, txnQuery,
		txn.TransactionType,
		txn.Amount,
		txn.Date,
		txn.CreatedAt,
	).Scan(&txn.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	switch txn.TransactionType {
	case domain.Transfer:
		if txn.Transfer == nil {
			return nil, fmt.Errorf("%w: transfer transaction without transfer detail", apperrors.ErrInternal)
		}
		detailQuery := `
			INSERT INTO transfers (transaction_id, source_account_id, target_account_id)
			VALUES ($1, $2, $3);
		`
		_, err = tx.Exec(ctx, detailQuery, txn.TransactionID, txn.Transfer.SourceAccountID, txn.Transfer.TargetAccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert transfer detail for transaction %d: %w", txn.TransactionID, err)
		}
	case domain.Interest:
		if txn.Interest == nil {
			return nil, fmt.Errorf("%w: interest transaction without interest detail", apperrors.ErrInternal)
		}
		detailQuery := `
			INSERT INTO interest (transaction_id, account_id, start_date, end_date)
			VALUES ($1, $2, $3, $4);
		`
		_, err = tx.Exec(ctx, detailQuery, txn.TransactionID, txn.Interest.AccountID, txn.Interest.StartDate, txn.Interest.EndDate)
		if err != nil {
			return nil, fmt.Errorf("failed to insert interest detail for transaction %d: %w", txn.TransactionID, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported transaction type %d", apperrors.ErrInternal, txn.TransactionType)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction %d: %w", txn.TransactionID, err)
	}
	return &txn, nil
}

// transactionSelect reads the supertype row plus both candidate detail rows;
// at most one of the detail joins matches per transaction.
const transactionSelect = `
	SELECT t.transaction_id, t.transaction_type, t.amount, t.transaction_date, t.created_at,
	       tr.source_account_id, tr.target_account_id,
	       i.account_id, i.start_date, i.end_date
	FROM transactions t
	LEFT JOIN transfers tr ON tr.transaction_id = t.transaction_id
	LEFT JOIN interest i ON i.transaction_id = t.transaction_id
	LEFT JOIN accounts src ON src.account_id = tr.source_account_id
	LEFT JOIN accounts tgt ON tgt.account_id = tr.target_account_id
	LEFT JOIN accounts ia ON ia.account_id = i.account_id
`

// visibilityPredicate restricts rows to transactions whose referenced
// accounts belong to the owner. Ownership is derivative: it lives on the
// accounts joined through whichever subtype row the transaction has.
const visibilityPredicate = `(src.owner_id = $1 OR tgt.owner_id = $1 OR ia.owner_id = $1)`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	var sourceID, targetID, interestAccountID sql.NullInt64
	var startDate, endDate sql.NullTime

	err := row.Scan(
		&txn.TransactionID,
		&txn.TransactionType,
		&txn.Amount,
		&txn.Date,
		&txn.CreatedAt,
		&sourceID,
		&targetID,
		&interestAccountID,
		&startDate,
		&endDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan transaction row: %w", err)
	}

	// Hydrate the subtype detail. A row whose type demands a detail but has
	// none means the supertype and subtype tables diverged: a server fault.
	switch txn.TransactionType {
	case domain.Transfer:
		if !sourceID.Valid || !targetID.Valid {
			return nil, fmt.Errorf("%w: transfer detail missing for transaction %d", apperrors.ErrCorrupt, txn.TransactionID)
		}
		txn.Transfer = &domain.TransferDetail{
			SourceAccountID: sourceID.Int64,
			TargetAccountID: targetID.Int64,
		}
	case domain.Interest:
		if !interestAccountID.Valid {
			return nil, fmt.Errorf("%w: interest detail missing for transaction %d", apperrors.ErrCorrupt, txn.TransactionID)
		}
		detail := &domain.InterestDetail{AccountID: interestAccountID.Int64}
		if startDate.Valid {
			s := startDate.Time
			detail.StartDate = &s
		}
		if endDate.Valid {
			e := endDate.Time
			detail.EndDate = &e
		}
		txn.Interest = detail
	default:
		return nil, fmt.Errorf("%w: unrecognized transaction type %d for transaction %d", apperrors.ErrCorrupt, txn.TransactionType, txn.TransactionID)
	}

	return &txn, nil
}

// FindTransactionByID retrieves one transaction with its detail, visible only
// to an owner of an account it references.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, ownerID, transactionID int64) (*domain.Transaction, error) {
	query := transactionSelect + `
	WHERE ` + visibilityPredicate + ` AND t.transaction_id = $2;`

	return scanTransaction(r.pool.QueryRow(ctx, query, ownerID, transactionID))
}

// ListTransactions retrieves transactions visible to the owner matching the
// filter, ordered by date descending then ID descending. The filter is
// assembled as a parameterized predicate list, never by value interpolation.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, ownerID int64, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, error) {
	query := transactionSelect + `
	WHERE ` + visibilityPredicate
	args := []any{ownerID}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += " AND t.transaction_type = $" + strconv.Itoa(len(args))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		query += " AND t.transaction_date = $" + strconv.Itoa(len(args))
	}
	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		n := strconv.Itoa(len(args))
		query += " AND (tr.source_account_id = $" + n + " OR tr.target_account_id = $" + n + " OR i.account_id = $" + n + ")"
	}

	args = append(args, limit)
	query += `
	ORDER BY t.transaction_date DESC, t.transaction_id DESC
	LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for owner %d: %w", ownerID, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows for owner %d: %w", ownerID, err)
	}
	return transactions, nil
}
