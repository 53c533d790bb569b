package shared

import "errors"

var (
	// ErrInsufficientLines indicates fewer than two journal lines.
	ErrInsufficientLines = errors.New("ledger: journal entry requires at least two lines")
	// ErrLineBothSides indicates a line carrying both a debit and a credit.
	ErrLineBothSides = errors.New("ledger: line cannot have both debit and credit")
	// ErrLineNoSide indicates a line with neither a debit nor a credit.
	ErrLineNoSide = errors.New("ledger: line must have debit or credit")
	// ErrUnbalanced indicates debit total != credit total for an entry.
	ErrUnbalanced = errors.New("ledger: entry is not balanced")
	// ErrAccountNotFound indicates a missing chart-of-accounts entry.
	ErrAccountNotFound = errors.New("ledger: account not found")
	// ErrAccountExists indicates a duplicate account code.
	ErrAccountExists = errors.New("ledger: account already exists")
	// ErrEntryNotFound indicates a missing journal entry.
	ErrEntryNotFound = errors.New("ledger: journal entry not found")
)
