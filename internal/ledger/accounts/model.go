package accounts

import (
	"strings"
	"time"
)

// AccountType enumerates chart-of-accounts categories.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// Valid reports whether the type is a known category.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// BalanceType is the side on which an account's normal balance accumulates.
type BalanceType string

const (
	BalanceTypeDebit  BalanceType = "DEBIT"
	BalanceTypeCredit BalanceType = "CREDIT"
)

// Valid reports whether the balance type is a known side.
func (b BalanceType) Valid() bool {
	return b == BalanceTypeDebit || b == BalanceTypeCredit
}

// NormalSide returns the conventional balance side for an account type:
// DEBIT for ASSET/EXPENSE, CREDIT for LIABILITY/EQUITY/REVENUE. The store
// does not enforce this; callers are expected to set BalanceType accordingly
// when creating accounts.
func NormalSide(t AccountType) BalanceType {
	if t == AccountTypeAsset || t == AccountTypeExpense {
		return BalanceTypeDebit
	}
	return BalanceTypeCredit
}

// Account models a chart-of-accounts node. IDs are hierarchical dotted codes
// such as "1.1.01"; the parent relation is a lookup, not containment.
type Account struct {
	ID          string
	Name        string
	Type        AccountType
	ParentID    *string
	BalanceType BalanceType
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Depth returns the hierarchy depth implied by the dotted code.
func (a Account) Depth() int {
	return strings.Count(a.ID, ".") + 1
}
