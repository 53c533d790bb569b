package journal

import "time"

// ReferenceType tags a journal entry with its origin.
type ReferenceType string

const (
	ReferenceManual   ReferenceType = "MANUAL"
	ReferencePurchase ReferenceType = "PURCHASE"
	ReferenceExpense  ReferenceType = "EXPENSE"
)

// Entry is a ledger transaction header. Entries are append-only: created
// exactly once by the poster, never mutated or deleted afterwards.
type Entry struct {
	ID            int64
	EntryDate     time.Time
	Description   string
	ReferenceType ReferenceType
	ReferenceID   *string
	CreatedBy     string
	CreatedAt     time.Time
	Lines         []Line
}

// Line is one debit or credit leg of an entry. Exactly one of Debit and
// Credit is positive; the other is zero. AccountName is filled on reads by
// joining the chart of accounts.
type Line struct {
	ID          int64
	EntryID     int64
	AccountID   string
	AccountName string
	Debit       float64
	Credit      float64
	Description string
}
