package dto

import (
	"time"

	"github.com/finbook/finbook_backend/internal/core/domain"
	"github.com/finbook/finbook_backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// PostTransactionRequest is the polymorphic payload for posting a
// transaction. Type and amount are always required; the remaining fields
// depend on the type and are validated by the service before any mutation.
type PostTransactionRequest struct {
	TransactionType *domain.TransactionType `json:"type" binding:"required"`
	Amount          *decimal.Decimal        `json:"amount" binding:"required"`
	Date            *string                 `json:"date"` // YYYY-MM-DD, defaults to today

	// Transfer fields
	Source *int64 `json:"source"`
	Target *int64 `json:"target"`

	// Interest fields
	Account   *int64  `json:"account"`
	StartDate *string `json:"startdate"` // YYYY-MM-DD, requires enddate
	EndDate   *string `json:"enddate"`   // YYYY-MM-DD, requires startdate
}

// TransactionResponse is the composed supertype+detail view of a
// transaction. Subtype fields are omitted when not applicable.
type TransactionResponse struct {
	TransactionID   int64                  `json:"id"`
	TransactionType domain.TransactionType `json:"type"`
	TypeName        string                 `json:"typeName"`
	Amount          decimal.Decimal        `json:"amount"`
	Date            string                 `json:"date"`

	Source    *int64  `json:"source,omitempty"`
	Target    *int64  `json:"target,omitempty"`
	Account   *int64  `json:"account,omitempty"`
	StartDate *string `json:"startdate,omitempty"`
	EndDate   *string `json:"enddate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:   txn.TransactionID,
		TransactionType: txn.TransactionType,
		TypeName:        txn.TransactionType.Name(),
		Amount:          txn.Amount,
		Date:            txn.Date.Format(domain.DateFormat),
		CreatedAt:       txn.CreatedAt,
	}
	if txn.Transfer != nil {
		resp.Source = &txn.Transfer.SourceAccountID
		resp.Target = &txn.Transfer.TargetAccountID
	}
	if txn.Interest != nil {
		resp.Account = &txn.Interest.AccountID
		if txn.Interest.StartDate != nil {
			s := txn.Interest.StartDate.Format(domain.DateFormat)
			resp.StartDate = &s
		}
		if txn.Interest.EndDate != nil {
			e := txn.Interest.EndDate.Format(domain.DateFormat)
			resp.EndDate = &e
		}
	}
	return resp
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsParams defines query parameters for listing transactions.
// All filters are optional and combined with AND.
type ListTransactionsParams struct {
	TransactionType *domain.TransactionType `form:"type"`
	Date            *string                 `form:"date"` // YYYY-MM-DD exact match
	Account         *int64                  `form:"account"`
	pagination.Params
}

// ListTransactionsResponse wraps one page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	HasMore      bool                  `json:"hasMore"`
	NextPage     *int                  `json:"nextPage,omitempty"`
}

// TransactionTypeEntry describes one valid transaction type.
type TransactionTypeEntry struct {
	ID   domain.TransactionType `json:"id"`
	Name string                 `json:"name"`
}

// ListTransactionTypesResponse wraps the transaction type catalog.
type ListTransactionTypesResponse struct {
	Types []TransactionTypeEntry `json:"types"`
}
