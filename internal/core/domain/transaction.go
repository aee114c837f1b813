package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType discriminates the transaction subtypes. Values are part of
// the wire contract and must stay stable.
type TransactionType int16

const (
	Transfer TransactionType = 0
	Interest TransactionType = 1
)

var transactionTypeNames = map[TransactionType]string{
	Transfer: "Transfer",
	Interest: "Interest",
}

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	_, ok := transactionTypeNames[t]
	return ok
}

// Name returns the display name of the transaction type, or "" if unknown.
func (t TransactionType) Name() string {
	return transactionTypeNames[t]
}

// TransactionTypes returns all valid transaction types.
func TransactionTypes() []TransactionType {
	return []TransactionType{Transfer, Interest}
}

// TransferDetail holds the subtype fields of a Transfer transaction.
// Source and target are distinct accounts owned by the same user.
type TransferDetail struct {
	SourceAccountID int64 `json:"sourceAccountID"`
	TargetAccountID int64 `json:"targetAccountID"`
}

// InterestDetail holds the subtype fields of an Interest transaction.
// StartDate and EndDate are either both set or both nil.
type InterestDetail struct {
	AccountID int64      `json:"accountID"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// Transaction is the supertype of all posted transactions. Exactly one of
// Transfer/Interest is non-nil, matching TransactionType. Transactions are
// immutable once posted.
type Transaction struct {
	TransactionID   int64           `json:"transactionID"`
	TransactionType TransactionType `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	Date            time.Time       `json:"date"`
	CreatedAt       time.Time       `json:"createdAt"`

	Transfer *TransferDetail `json:"transfer,omitempty"`
	Interest *InterestDetail `json:"interest,omitempty"`
}

// TransactionFilter restricts a transaction listing. All fields are optional
// and combined with AND.
type TransactionFilter struct {
	Type      *TransactionType
	Date      *time.Time
	AccountID *int64
}
