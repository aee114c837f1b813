package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType identifies the kind of account. Values are part of the wire
// contract and must stay stable.
type AccountType int16

const (
	Checking AccountType = 0
	Savings  AccountType = 1
)

// accountTypeNames maps each valid account type to its display name.
var accountTypeNames = map[AccountType]string{
	Checking: "Checking",
	Savings:  "Savings",
}

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	_, ok := accountTypeNames[t]
	return ok
}

// Name returns the display name of the account type, or "" if unknown.
func (t AccountType) Name() string {
	return accountTypeNames[t]
}

// AccountTypes returns all valid account types.
func AccountTypes() []AccountType {
	return []AccountType{Checking, Savings}
}

// MaxAccountNameLength bounds user-supplied account names.
const MaxAccountNameLength = 64

// Account represents a financial account owned by a single user.
// Balance mutates only as a side effect of posting a transaction.
type Account struct {
	AccountID   int64           `json:"accountID"`
	OwnerID     int64           `json:"ownerID"`
	AccountType AccountType     `json:"accountType"`
	Name        string          `json:"name"`
	Balance     decimal.Decimal `json:"balance"`
	AuditFields
}
