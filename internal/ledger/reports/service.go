package reports

import (
	"context"
	"time"
)

// Config carries the reporting constants that would otherwise hide as magic
// literals in the statement code.
type Config struct {
	// Epoch is the floor for cumulative "since inception" queries. It must
	// predate all ledger activity; it is configuration, never derived from
	// the data.
	Epoch time.Time
	// RetainedEarningsAccount is the reserved equity account id used for the
	// synthesized current-period-earnings line.
	RetainedEarningsAccount string
	// EquityRootAccount is the parent assigned to the synthesized line.
	EquityRootAccount string
}

// Service derives financial statements from the posted ledger. Generation is
// read-only and holds no in-process state, so concurrent calls are safe; a
// statement may or may not reflect postings that commit mid-read.
type Service struct {
	repo Repository
	cfg  Config
}

func NewService(repo Repository, cfg Config) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// AccountBalances returns signed per-account aggregates for active accounts
// with activity in the inclusive date range, ordered by account id.
func (s *Service) AccountBalances(ctx context.Context, start, end time.Time) ([]AccountBalance, error) {
	return s.repo.AccountBalances(ctx, start, end)
}

// TrialBalance reports raw debit/credit totals per account plus the global
// balanced flag.
func (s *Service) TrialBalance(ctx context.Context, start, end time.Time) (TrialBalance, error) {
	rows, err := s.repo.TrialBalanceRows(ctx, start, end)
	if err != nil {
		return TrialBalance{}, err
	}
	return BuildTrialBalance(start, end, rows), nil
}

// IncomeStatement aggregates revenue and expense activity over the period.
func (s *Service) IncomeStatement(ctx context.Context, start, end time.Time) (IncomeStatement, error) {
	revenues, err := s.repo.RevenueLines(ctx, start, end)
	if err != nil {
		return IncomeStatement{}, err
	}
	expenses, err := s.repo.ExpenseLines(ctx, start, end)
	if err != nil {
		return IncomeStatement{}, err
	}
	return BuildIncomeStatement(start, end, revenues, expenses), nil
}

// BalanceSheet reports cumulative positions through asOf. Net income for the
// synthesized equity line comes from the income statement over
// [epoch, asOf], the same computation reporting callers see rather than a
// re-derivation.
func (s *Service) BalanceSheet(ctx context.Context, asOf time.Time) (BalanceSheet, error) {
	assets, err := s.repo.AssetLines(ctx, asOf)
	if err != nil {
		return BalanceSheet{}, err
	}
	liabilities, err := s.repo.LiabilityLines(ctx, asOf)
	if err != nil {
		return BalanceSheet{}, err
	}
	equity, err := s.repo.EquityLines(ctx, asOf, s.cfg.RetainedEarningsAccount)
	if err != nil {
		return BalanceSheet{}, err
	}
	income, err := s.IncomeStatement(ctx, s.cfg.Epoch, asOf)
	if err != nil {
		return BalanceSheet{}, err
	}
	return BuildBalanceSheet(asOf, assets, liabilities, equity, income.NetIncome, s.cfg.RetainedEarningsAccount, s.cfg.EquityRootAccount), nil
}
