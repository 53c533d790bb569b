package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AccountDefaults names the accounts the posting recipes fall back to.
type AccountDefaults struct {
	Cash          string
	Bank          string
	TicketRevenue string
}

// Service posts journal entries. It holds no mutable state of its own; all
// ledger facts live in the store and every operation is safe to call
// concurrently.
type Service struct {
	repo     Repository
	defaults AccountDefaults
	now      func() time.Time
}

func NewService(repo Repository, defaults AccountDefaults) *Service {
	return &Service{repo: repo, defaults: defaults, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	return s.repo.List(ctx, filter)
}

// Post validates the input and persists the header plus all lines in a
// single transaction. Any validation or store failure aborts the whole
// posting; the store never ends up holding a header without its full set of
// balanced lines. The returned entry carries its lines enriched with account
// names.
func (s *Service) Post(ctx context.Context, input PostingInput) (Entry, error) {
	if err := input.Validate(); err != nil {
		return Entry{}, err
	}
	if input.EntryDate.IsZero() {
		input.EntryDate = s.now()
	}
	if input.CreatedBy == "" {
		input.CreatedBy = "system"
	}
	if input.ReferenceType == "" {
		input.ReferenceType = ReferenceManual
	}
	var entry Entry
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		inserted, err := tx.InsertEntry(ctx, input)
		if err != nil {
			return err
		}
		if err := tx.InsertLines(ctx, inserted.ID, input.Description, input.Lines); err != nil {
			return err
		}
		entry, err = tx.GetEntryWithLines(ctx, inserted.ID)
		return err
	})
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// RecordTicketSale books a ticket sale as a two-line entry: debit cash,
// credit ticket revenue.
func (s *Service) RecordTicketSale(ctx context.Context, input TicketSaleInput) (Entry, error) {
	description := input.Description
	if description == "" {
		description = fmt.Sprintf("Ticket sale - %s", input.MovieTitle)
	}
	reference := input.Reference
	if reference == "" {
		reference = uuid.NewString()
	}
	createdBy := input.Username
	if createdBy == "" {
		createdBy = "system"
	}
	posting := PostingInput{
		EntryDate:     input.Date,
		Description:   description,
		ReferenceType: ReferencePurchase,
		ReferenceID:   &reference,
		CreatedBy:     createdBy,
		Lines: []LineInput{
			{
				AccountID:   s.defaults.Cash,
				Debit:       input.Amount,
				Description: fmt.Sprintf("Collected for %d ticket(s)", input.Tickets),
			},
			{
				AccountID:   s.defaults.TicketRevenue,
				Credit:      input.Amount,
				Description: fmt.Sprintf("Sale of %d ticket(s) - %s", input.Tickets, input.MovieTitle),
			},
		},
	}
	return s.Post(ctx, posting)
}

// RecordExpense books an expense as a two-line entry: debit the expense
// account, credit the payment account (the bank account when unspecified).
func (s *Service) RecordExpense(ctx context.Context, input ExpenseInput) (Entry, error) {
	paymentAccount := input.PaymentAccountID
	if paymentAccount == "" {
		paymentAccount = s.defaults.Bank
	}
	createdBy := input.CreatedBy
	if createdBy == "" {
		createdBy = "admin"
	}
	posting := PostingInput{
		EntryDate:     input.Date,
		Description:   input.Description,
		ReferenceType: ReferenceExpense,
		ReferenceID:   input.Reference,
		CreatedBy:     createdBy,
		Lines: []LineInput{
			{
				AccountID:   input.ExpenseAccountID,
				Debit:       input.Amount,
				Description: input.Description,
			},
			{
				AccountID:   paymentAccount,
				Credit:      input.Amount,
				Description: fmt.Sprintf("Payment for %s", input.Description),
			},
		},
	}
	return s.Post(ctx, posting)
}
