package journal

import (
	"fmt"
	"math"
	"time"

	"github.com/cinefin/cinefin/internal/ledger/shared"
)

// LineInput describes one leg of a posting request.
type LineInput struct {
	AccountID   string
	Debit       float64
	Credit      float64
	Description string
}

// PostingInput groups the fields required to create a journal entry.
type PostingInput struct {
	EntryDate     time.Time
	Description   string
	ReferenceType ReferenceType
	ReferenceID   *string
	CreatedBy     string
	Lines         []LineInput
}

// Validate checks the double-entry invariants before anything is written:
// at least two lines, exactly one side per line, and debit and credit totals
// matching within the rounding tolerance.
func (in PostingInput) Validate() error {
	if len(in.Lines) < 2 {
		return shared.ErrInsufficientLines
	}
	var debits, credits float64
	for idx, line := range in.Lines {
		if line.AccountID == "" {
			return fmt.Errorf("ledger: line %d missing account", idx)
		}
		if line.Debit < 0 || line.Credit < 0 {
			return fmt.Errorf("ledger: line %d negative amount", idx)
		}
		hasDebit := line.Debit > 0
		hasCredit := line.Credit > 0
		if hasDebit && hasCredit {
			return fmt.Errorf("line %d: %w", idx, shared.ErrLineBothSides)
		}
		if !hasDebit && !hasCredit {
			return fmt.Errorf("line %d: %w", idx, shared.ErrLineNoSide)
		}
		debits += line.Debit
		credits += line.Credit
	}
	if math.Abs(debits-credits) > shared.Tolerance {
		return fmt.Errorf("%w: debits %.2f, credits %.2f", shared.ErrUnbalanced, debits, credits)
	}
	return nil
}

// TicketSaleInput carries the facts needed to book a ticket sale.
type TicketSaleInput struct {
	Date        time.Time
	Amount      float64
	Tickets     int
	MovieTitle  string
	Reference   string
	Username    string
	Description string
}

// ExpenseInput carries the facts needed to book an expense.
type ExpenseInput struct {
	Date             time.Time
	Description      string
	Amount           float64
	ExpenseAccountID string
	PaymentAccountID string
	Reference        *string
	CreatedBy        string
}

// ListFilter narrows journal entry listings.
type ListFilter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	ReferenceType *ReferenceType
	Limit         int
}
