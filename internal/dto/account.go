package dto

import (
	"time"

	"github.com/finbook/finbook_backend/internal/core/domain"
	"github.com/finbook/finbook_backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// Type and name presence is enforced by binding; value validation (known
// type, name length, uniqueness) happens in the service.
type CreateAccountRequest struct {
	AccountType *domain.AccountType `json:"type" binding:"required"`
	Name        *string             `json:"name" binding:"required"`
	Balance     *decimal.Decimal    `json:"balance"` // Optional, defaults to 0
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish fields not provided from zero-value updates.
type UpdateAccountRequest struct {
	AccountType *domain.AccountType `json:"type"`
	Name        *string             `json:"name"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     int64              `json:"id"`
	AccountType   domain.AccountType `json:"type"`
	TypeName      string             `json:"typeName"`
	Name          string             `json:"name"`
	Balance       decimal.Decimal    `json:"balance"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to an AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		AccountType:   acc.AccountType,
		TypeName:      acc.AccountType.Name(),
		Name:          acc.Name,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	AccountType *domain.AccountType `form:"type"`
	pagination.Params
}

// ListAccountsResponse wraps one page of accounts. NextPage is set to
// page+1 when more results exist; callers re-issue the request with the
// same filters and the new page number.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	HasMore  bool              `json:"hasMore"`
	NextPage *int              `json:"nextPage,omitempty"`
}

// AccountTypeEntry describes one valid account type for the type catalog.
type AccountTypeEntry struct {
	ID   domain.AccountType `json:"id"`
	Name string             `json:"name"`
}

// ListAccountTypesResponse wraps the account type catalog.
type ListAccountTypesResponse struct {
	Types []AccountTypeEntry `json:"types"`
}
