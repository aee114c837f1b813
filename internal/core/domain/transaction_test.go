package domain_test

import (
	"testing"

	"github.com/finbook/finbook_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestTransactionType_Valid(t *testing.T) {
	assert.True(t, domain.Transfer.Valid())
	assert.True(t, domain.Interest.Valid())
	assert.False(t, domain.TransactionType(-1).Valid())
	assert.False(t, domain.TransactionType(2).Valid())
}

func TestTransactionType_Name(t *testing.T) {
	assert.Equal(t, "Transfer", domain.Transfer.Name())
	assert.Equal(t, "Interest", domain.Interest.Name())
	assert.Equal(t, "", domain.TransactionType(9).Name())
}

func TestAccountType_Valid(t *testing.T) {
	assert.True(t, domain.Checking.Valid())
	assert.True(t, domain.Savings.Valid())
	assert.False(t, domain.AccountType(2).Valid())
}

func TestAccountType_Name(t *testing.T) {
	assert.Equal(t, "Checking", domain.Checking.Name())
	assert.Equal(t, "Savings", domain.Savings.Name())
}

func TestTypeCatalogsAreStable(t *testing.T) {
	// Wire values are contract: 0 before 1, always both present.
	assert.Equal(t, []domain.AccountType{domain.Checking, domain.Savings}, domain.AccountTypes())
	assert.Equal(t, []domain.TransactionType{domain.Transfer, domain.Interest}, domain.TransactionTypes())
}
