package reports

import (
	"time"

	"github.com/cinefin/cinefin/internal/ledger/accounts"
	"github.com/cinefin/cinefin/internal/ledger/shared"
)

// AccountBalance is a signed per-account aggregate over a date window. The
// sign convention follows the account's normal balance side: a positive
// Balance means the account moved in its normal direction.
type AccountBalance struct {
	AccountID   string
	Name        string
	Type        accounts.AccountType
	BalanceType accounts.BalanceType
	TotalDebit  float64
	TotalCredit float64
	Balance     float64
}

// TrialBalanceRow reports an account's raw debit/credit totals.
type TrialBalanceRow struct {
	AccountID   string
	Name        string
	Type        accounts.AccountType
	BalanceType accounts.BalanceType
	TotalDebit  float64
	TotalCredit float64
}

// TrialBalance lists raw totals per account over a period. IsBalanced must
// hold whenever every posted entry satisfied the poster's invariant; a false
// value signals historical data corruption, not a computation bug.
type TrialBalance struct {
	StartDate    time.Time
	EndDate      time.Time
	Accounts     []TrialBalanceRow
	TotalDebits  float64
	TotalCredits float64
	IsBalanced   bool
}

// StatementLine is one account row inside a financial statement section.
type StatementLine struct {
	AccountID string
	Name      string
	ParentID  *string
	Amount    float64
}

// IncomeStatement aggregates revenue and expense activity over a period.
// Accounts with zero or negative net amounts are omitted rather than shown
// at zero.
type IncomeStatement struct {
	StartDate     time.Time
	EndDate       time.Time
	Revenues      []StatementLine
	TotalRevenue  float64
	Expenses      []StatementLine
	TotalExpenses float64
	NetIncome     float64
	IsProfit      bool
}

// BalanceSheet reports cumulative positions through a cutoff date. The
// equity section includes a synthesized current-period-earnings line that is
// never persisted. IsBalanced is a structural health check: it can fail when
// account types or balance sides were misconfigured, and is surfaced as a
// boolean rather than an error.
type BalanceSheet struct {
	AsOfDate                  time.Time
	Assets                    []StatementLine
	TotalAssets               float64
	Liabilities               []StatementLine
	TotalLiabilities          float64
	Equity                    []StatementLine
	TotalEquity               float64
	TotalLiabilitiesAndEquity float64
	IsBalanced                bool
}

// CurrentPeriodEarningsLabel names the synthesized equity line.
const CurrentPeriodEarningsLabel = "Current Period Earnings"

// BuildTrialBalance totals the rows and flags whether the ledger balances.
func BuildTrialBalance(start, end time.Time, rows []TrialBalanceRow) TrialBalance {
	tb := TrialBalance{StartDate: start, EndDate: end, Accounts: rows}
	for _, row := range rows {
		tb.TotalDebits += row.TotalDebit
		tb.TotalCredits += row.TotalCredit
	}
	tb.IsBalanced = shared.WithinTolerance(tb.TotalDebits, tb.TotalCredits)
	return tb
}

// BuildIncomeStatement composes pre-filtered revenue and expense lines into
// the statement view.
func BuildIncomeStatement(start, end time.Time, revenues, expenses []StatementLine) IncomeStatement {
	is := IncomeStatement{StartDate: start, EndDate: end, Revenues: revenues, Expenses: expenses}
	for _, line := range revenues {
		is.TotalRevenue += line.Amount
	}
	for _, line := range expenses {
		is.TotalExpenses += line.Amount
	}
	is.NetIncome = is.TotalRevenue - is.TotalExpenses
	is.IsProfit = is.NetIncome >= 0
	return is
}

// BuildBalanceSheet assembles the section lines and appends the synthesized
// current-period-earnings equity line when net income is non-zero.
func BuildBalanceSheet(asOf time.Time, assets, liabilities, equity []StatementLine, netIncome float64, retainedEarningsID, equityRootID string) BalanceSheet {
	bs := BalanceSheet{AsOfDate: asOf, Assets: assets, Liabilities: liabilities, Equity: equity}
	for _, line := range assets {
		bs.TotalAssets += line.Amount
	}
	for _, line := range liabilities {
		bs.TotalLiabilities += line.Amount
	}
	if netIncome != 0 {
		parent := equityRootID
		bs.Equity = append(bs.Equity, StatementLine{
			AccountID: retainedEarningsID,
			Name:      CurrentPeriodEarningsLabel,
			ParentID:  &parent,
			Amount:    netIncome,
		})
	}
	for _, line := range bs.Equity {
		bs.TotalEquity += line.Amount
	}
	bs.TotalLiabilitiesAndEquity = bs.TotalLiabilities + bs.TotalEquity
	bs.IsBalanced = shared.WithinTolerance(bs.TotalAssets, bs.TotalLiabilitiesAndEquity)
	return bs
}
