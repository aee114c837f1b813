package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/finbook/finbook_backend/internal/apperrors"
	"github.com/finbook/finbook_backend/internal/core/domain"
	portsrepo "github.com/finbook/finbook_backend/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_backend/internal/core/ports/services"
	"github.com/finbook/finbook_backend/internal/dto"
	"github.com/finbook/finbook_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAccountType indicates an unrecognized account type value.
	ErrInvalidAccountType = fmt.Errorf("%w: unknown account type", apperrors.ErrValidation)
	// ErrInvalidAccountName indicates an empty or over-long account name.
	ErrInvalidAccountName = fmt.Errorf("%w: account name must be 1 to %d characters", apperrors.ErrValidation, domain.MaxAccountNameLength)
	// ErrDuplicateAccountName indicates the owner already has an account with
	// that name.
	ErrDuplicateAccountName = fmt.Errorf("%w: account name already in use", apperrors.ErrDuplicate)
)

// AccountService implements the account ledger operations.
type AccountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

func validateAccountName(name string) error {
	if len(name) == 0 || len(name) > domain.MaxAccountNameLength {
		return ErrInvalidAccountName
	}
	if strings.TrimSpace(name) == "" {
		return ErrInvalidAccountName
	}
	return nil
}

// CreateAccount validates and persists a new account for the owner. The
// balance defaults to zero when omitted; negative opening balances are
// permitted, matching the overdraft policy for transfers.
func (s *AccountService) CreateAccount(ctx context.Context, ownerID int64, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.AccountType.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAccountType, *req.AccountType)
	}
	if err := validateAccountName(*req.Name); err != nil {
		return nil, err
	}

	// Friendly pre-check; the unique constraint remains the authoritative
	// guard under concurrent creates.
	if _, err := s.accountRepo.FindAccountByName(ctx, ownerID, *req.Name); err == nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateAccountName, *req.Name)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	balance := decimal.Zero
	if req.Balance != nil {
		balance = *req.Balance
	}

	account := domain.Account{
		OwnerID:     ownerID,
		AccountType: *req.AccountType,
		Name:        *req.Name,
		Balance:     balance,
	}
	saved, err := s.accountRepo.SaveAccount(ctx, account)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAccountName, *req.Name)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Account created", slog.Int64("account_id", saved.AccountID))
	return saved, nil
}

// GetAccountByID retrieves a single account owned by ownerID.
func (s *AccountService) GetAccountByID(ctx context.Context, ownerID, accountID int64) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, ownerID, accountID)
}

// ListAccounts returns one page of the owner's accounts sorted by name,
// optionally filtered by type. One extra row is fetched to decide whether a
// further page exists.
func (s *AccountService) ListAccounts(ctx context.Context, ownerID int64, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.AccountType != nil && !params.AccountType.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAccountType, *params.AccountType)
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, ownerID, params.AccountType, params.Limit()+1, params.Offset())
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, err
	}

	hasMore := len(accounts) > params.Limit()
	if hasMore {
		accounts = accounts[:params.Limit()]
	}

	resp := &dto.ListAccountsResponse{
		Accounts: make([]dto.AccountResponse, 0, len(accounts)),
		HasMore:  hasMore,
	}
	for i := range accounts {
		resp.Accounts = append(resp.Accounts, dto.ToAccountResponse(&accounts[i]))
	}
	if hasMore {
		next := params.Next()
		resp.NextPage = &next
	}
	return resp, nil
}

// UpdateAccount applies a partial update to the account's type and name.
// Balance is not updatable; it mutates only through posted transactions.
func (s *AccountService) UpdateAccount(ctx context.Context, ownerID, accountID int64, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, ownerID, accountID)
	if err != nil {
		return nil, err
	}

	if req.AccountType != nil {
		if !req.AccountType.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrInvalidAccountType, *req.AccountType)
		}
		account.AccountType = *req.AccountType
	}
	if req.Name != nil {
		if err := validateAccountName(*req.Name); err != nil {
			return nil, err
		}
		if existing, err := s.accountRepo.FindAccountByName(ctx, ownerID, *req.Name); err == nil {
			if existing.AccountID != accountID {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateAccountName, *req.Name)
			}
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		account.Name = *req.Name
	}

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAccountName, account.Name)
		}
		logger.Error("Failed to update account", slog.Int64("account_id", accountID), slog.String("error", err.Error()))
		return nil, err
	}

	return s.accountRepo.FindAccountByID(ctx, ownerID, accountID)
}
