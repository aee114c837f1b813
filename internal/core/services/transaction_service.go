package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbook/finbook_backend/internal/apperrors"
	"github.com/finbook/finbook_backend/internal/core/domain"
	portsrepo "github.com/finbook/finbook_backend/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_backend/internal/core/ports/services"
	"github.com/finbook/finbook_backend/internal/dto"
	"github.com/finbook/finbook_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidTransactionType indicates an unrecognized transaction type.
	ErrInvalidTransactionType = fmt.Errorf("%w: unknown transaction type", apperrors.ErrValidation)
	// ErrInvalidAmount indicates a zero or negative amount.
	ErrInvalidAmount = fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	// ErrInvalidDate indicates a date that does not parse as YYYY-MM-DD.
	ErrInvalidDate = fmt.Errorf("%w: date must be formatted YYYY-MM-DD", apperrors.ErrValidation)
	// ErrMissingSource indicates a transfer without a source account.
	ErrMissingSource = fmt.Errorf("%w: transfer requires a source account", apperrors.ErrValidation)
	// ErrMissingTarget indicates a transfer without a target account.
	ErrMissingTarget = fmt.Errorf("%w: transfer requires a target account", apperrors.ErrValidation)
	// ErrTargetEqualsSource indicates a transfer from an account to itself.
	ErrTargetEqualsSource = fmt.Errorf("%w: target account must differ from source account", apperrors.ErrValidation)
	// ErrMissingAccount indicates an interest transaction without an account.
	ErrMissingAccount = fmt.Errorf("%w: interest requires an account", apperrors.ErrValidation)
	// ErrIncompleteDateRange indicates an interest date range with only one
	// endpoint; the range is provided whole or not at all.
	ErrIncompleteDateRange = fmt.Errorf("%w: startdate and enddate must be provided together", apperrors.ErrValidation)
	// ErrInvalidDateRange indicates an interest range whose start follows its end.
	ErrInvalidDateRange = fmt.Errorf("%w: startdate must not be after enddate", apperrors.ErrValidation)

	// ErrSourceAccountNotFound indicates the transfer source does not resolve
	// to an account of the acting user.
	ErrSourceAccountNotFound = fmt.Errorf("%w: source account", apperrors.ErrNotFound)
	// ErrTargetAccountNotFound indicates the transfer target does not resolve
	// to an account of the acting user.
	ErrTargetAccountNotFound = fmt.Errorf("%w: target account", apperrors.ErrNotFound)
	// ErrInterestAccountNotFound indicates the interest account does not
	// resolve to an account of the acting user.
	ErrInterestAccountNotFound = fmt.Errorf("%w: interest account", apperrors.ErrNotFound)
)

// TransactionService implements the transaction poster and query engine.
// Posting validates the full request before touching any balance; the
// repository then applies the balance deltas and both inserts atomically.
type TransactionService struct {
	transactionRepo portsrepo.TransactionRepository
	accountRepo     portsrepo.AccountRepository
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(transactionRepo portsrepo.TransactionRepository, accountRepo portsrepo.AccountRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*TransactionService)(nil)

func parseTransactionDate(raw string) (time.Time, error) {
	d, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return d, nil
}

// PostTransaction validates and records a transaction for the acting user.
// Validation completes fully before any mutation; overdrafts are allowed, so
// balances are never a reason to reject.
func (s *TransactionService) PostTransaction(ctx context.Context, actorID int64, req dto.PostTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.TransactionType.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTransactionType, *req.TransactionType)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, req.Amount.String())
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Date != nil {
		var err error
		if date, err = parseTransactionDate(*req.Date); err != nil {
			return nil, err
		}
	}

	txn := domain.Transaction{
		TransactionType: *req.TransactionType,
		Amount:          *req.Amount,
		Date:            date,
	}

	var balanceChanges map[int64]decimal.Decimal
	var err error
	switch *req.TransactionType {
	case domain.Transfer:
		balanceChanges, err = s.prepareTransfer(ctx, actorID, req, &txn)
	case domain.Interest:
		balanceChanges, err = s.prepareInterest(ctx, actorID, req, &txn)
	}
	if err != nil {
		return nil, err
	}

	saved, err := s.transactionRepo.SaveTransaction(ctx, txn, balanceChanges)
	if err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transaction posted",
		slog.Int64("transaction_id", saved.TransactionID),
		slog.String("type", saved.TransactionType.Name()),
		slog.String("amount", saved.Amount.String()),
	)
	return saved, nil
}

// prepareTransfer resolves and checks both legs of a transfer. The source is
// resolved before the self-transfer check and the target after it, so an
// unresolvable source wins over a source/target clash.
func (s *TransactionService) prepareTransfer(ctx context.Context, actorID int64, req dto.PostTransactionRequest, txn *domain.Transaction) (map[int64]decimal.Decimal, error) {
	if req.Source == nil {
		return nil, ErrMissingSource
	}
	if req.Target == nil {
		return nil, ErrMissingTarget
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []int64{*req.Source, *req.Target})
	if err != nil {
		return nil, err
	}
	source, ok := accounts[*req.Source]
	if !ok || source.OwnerID != actorID {
		return nil, fmt.Errorf("%w %d", ErrSourceAccountNotFound, *req.Source)
	}
	if *req.Source == *req.Target {
		return nil, ErrTargetEqualsSource
	}
	target, ok := accounts[*req.Target]
	if !ok || target.OwnerID != actorID {
		return nil, fmt.Errorf("%w %d", ErrTargetAccountNotFound, *req.Target)
	}

	txn.Transfer = &domain.TransferDetail{
		SourceAccountID: source.AccountID,
		TargetAccountID: target.AccountID,
	}
	return map[int64]decimal.Decimal{
		source.AccountID: txn.Amount.Neg(),
		target.AccountID: txn.Amount,
	}, nil
}

// prepareInterest resolves the credited account and validates the optional
// accrual date range.
func (s *TransactionService) prepareInterest(ctx context.Context, actorID int64, req dto.PostTransactionRequest, txn *domain.Transaction) (map[int64]decimal.Decimal, error) {
	if req.Account == nil {
		return nil, ErrMissingAccount
	}
	if (req.StartDate == nil) != (req.EndDate == nil) {
		return nil, ErrIncompleteDateRange
	}

	detail := &domain.InterestDetail{}
	if req.StartDate != nil {
		start, err := parseTransactionDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := parseTransactionDate(*req.EndDate)
		if err != nil {
			return nil, err
		}
		if start.After(end) {
			return nil, ErrInvalidDateRange
		}
		detail.StartDate = &start
		detail.EndDate = &end
	}

	account, err := s.accountRepo.FindAccountByID(ctx, actorID, *req.Account)
	if err != nil {
		return nil, fmt.Errorf("%w %d", ErrInterestAccountNotFound, *req.Account)
	}

	detail.AccountID = account.AccountID
	txn.Interest = detail
	return map[int64]decimal.Decimal{
		account.AccountID: txn.Amount,
	}, nil
}

// GetTransactionByID retrieves one transaction visible to the acting user.
func (s *TransactionService) GetTransactionByID(ctx context.Context, actorID, transactionID int64) (*domain.Transaction, error) {
	return s.transactionRepo.FindTransactionByID(ctx, actorID, transactionID)
}

// ListTransactions returns one page of transactions visible to the acting
// user, newest first, with all requested filters combined. One extra row is
// fetched to decide whether a further page exists.
func (s *TransactionService) ListTransactions(ctx context.Context, actorID int64, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.TransactionType != nil && !params.TransactionType.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTransactionType, *params.TransactionType)
	}

	filter := domain.TransactionFilter{
		Type:      params.TransactionType,
		AccountID: params.Account,
	}
	if params.Date != nil {
		d, err := parseTransactionDate(*params.Date)
		if err != nil {
			return nil, err
		}
		filter.Date = &d
	}

	transactions, err := s.transactionRepo.ListTransactions(ctx, actorID, filter, params.Limit()+1, params.Offset())
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, err
	}

	hasMore := len(transactions) > params.Limit()
	if hasMore {
		transactions = transactions[:params.Limit()]
	}

	resp := &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(transactions),
		HasMore:      hasMore,
	}
	if hasMore {
		next := params.Next()
		resp.NextPage = &next
	}
	return resp, nil
}
