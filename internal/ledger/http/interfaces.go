package http

import (
	"context"
	"time"

	"github.com/cinefin/cinefin/internal/ledger/accounts"
	"github.com/cinefin/cinefin/internal/ledger/journal"
	"github.com/cinefin/cinefin/internal/ledger/reports"
)

// AccountService is the chart-of-accounts surface the handlers need.
type AccountService interface {
	List(ctx context.Context, filter accounts.ListFilter) ([]accounts.Account, error)
	Create(ctx context.Context, account accounts.Account) (accounts.Account, error)
}

// JournalService posts and lists ledger transactions.
type JournalService interface {
	List(ctx context.Context, filter journal.ListFilter) ([]journal.Entry, error)
	Post(ctx context.Context, input journal.PostingInput) (journal.Entry, error)
	RecordTicketSale(ctx context.Context, input journal.TicketSaleInput) (journal.Entry, error)
	RecordExpense(ctx context.Context, input journal.ExpenseInput) (journal.Entry, error)
}

// ReportService derives balances and financial statements.
type ReportService interface {
	AccountBalances(ctx context.Context, start, end time.Time) ([]reports.AccountBalance, error)
	TrialBalance(ctx context.Context, start, end time.Time) (reports.TrialBalance, error)
	IncomeStatement(ctx context.Context, start, end time.Time) (reports.IncomeStatement, error)
	BalanceSheet(ctx context.Context, asOf time.Time) (reports.BalanceSheet, error)
}
