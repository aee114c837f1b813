package services

import (
	"github.com/finbook/finbook_backend/internal/adapters/database/pgsql"
	portssvc "github.com/finbook/finbook_backend/internal/core/ports/services"
	"github.com/finbook/finbook_backend/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewServiceContainer wires repositories and services onto the given pool.
func NewServiceContainer(cfg *config.AppConfig, pool *pgxpool.Pool) *portssvc.ServiceContainer {
	userRepo := pgsql.NewPgxUserRepository(pool)
	accountRepo := pgsql.NewPgxAccountRepository(pool)
	transactionRepo := pgsql.NewPgxTransactionRepository(pool)

	return &portssvc.ServiceContainer{
		User:        NewUserService(userRepo),
		Auth:        NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer),
		Account:     NewAccountService(accountRepo),
		Transaction: NewTransactionService(transactionRepo, accountRepo),
	}
}
