package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finbook/finbook_backend/internal/apperrors"
	"github.com/finbook/finbook_backend/internal/core/domain"
	portsrepo "github.com/finbook/finbook_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgxUserRepository creates a new repository for user data.
func NewPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{pool: pool}
}

var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

// SaveUser inserts a new user and returns it with the generated ID.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING user_id;
	`
	now := time.Now().UTC()
	user.CreatedAt = now
	user.LastUpdatedAt = now

	err := r.pool.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.LastUpdatedAt,
	).Scan(&user.UserID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: user with email %s already exists", apperrors.ErrDuplicate, user.Email)
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return &user, nil
}

// FindUserByID retrieves a user by their ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `
		SELECT user_id, name, email, password_hash, created_at, last_updated_at
		FROM users
		WHERE user_id = $1;
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, userID))
}

// FindUserByEmail retrieves a user by their email address. The match is
// case-sensitive, as stored.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT user_id, name, email, password_hash, created_at, last_updated_at
		FROM users
		WHERE email = $1;
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *PgxUserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.UserID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}
	return &user, nil
}
