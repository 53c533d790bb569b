package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository runs the aggregate queries behind balances and statements. All
// reads are plain pool queries; point-in-time consistency across multiple
// queries is the caller's concern.
type Repository interface {
	AccountBalances(ctx context.Context, start, end time.Time) ([]AccountBalance, error)
	TrialBalanceRows(ctx context.Context, start, end time.Time) ([]TrialBalanceRow, error)
	RevenueLines(ctx context.Context, start, end time.Time) ([]StatementLine, error)
	ExpenseLines(ctx context.Context, start, end time.Time) ([]StatementLine, error)
	AssetLines(ctx context.Context, asOf time.Time) ([]StatementLine, error)
	LiabilityLines(ctx context.Context, asOf time.Time) ([]StatementLine, error)
	EquityLines(ctx context.Context, asOf time.Time, excludeAccountID string) ([]StatementLine, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

// Date ranges are inclusive on both ends and compare against the owning
// entry's entry_date; lines carry no date of their own.

func (r *repository) AccountBalances(ctx context.Context, start, end time.Time) ([]AccountBalance, error) {
	rows, err := r.db.Query(ctx, `SELECT coa.id, coa.name, coa.account_type, coa.balance_type,
	COALESCE(SUM(jel.debit), 0) AS total_debit,
	COALESCE(SUM(jel.credit), 0) AS total_credit,
	CASE WHEN coa.balance_type = 'DEBIT'
		THEN COALESCE(SUM(jel.debit), 0) - COALESCE(SUM(jel.credit), 0)
		ELSE COALESCE(SUM(jel.credit), 0) - COALESCE(SUM(jel.debit), 0)
	END AS balance
FROM chart_of_accounts coa
JOIN journal_entry_lines jel ON jel.account_id = coa.id
JOIN journal_entries je ON je.id = jel.journal_entry_id
WHERE coa.is_active AND je.entry_date >= $1 AND je.entry_date <= $2
GROUP BY coa.id, coa.name, coa.account_type, coa.balance_type
HAVING COALESCE(SUM(jel.debit), 0) > 0 OR COALESCE(SUM(jel.credit), 0) > 0
ORDER BY coa.id`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []AccountBalance
	for rows.Next() {
		var b AccountBalance
		if err := rows.Scan(&b.AccountID, &b.Name, &b.Type, &b.BalanceType, &b.TotalDebit, &b.TotalCredit, &b.Balance); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repository) TrialBalanceRows(ctx context.Context, start, end time.Time) ([]TrialBalanceRow, error) {
	rows, err := r.db.Query(ctx, `SELECT coa.id, coa.name, coa.account_type, coa.balance_type,
	COALESCE(SUM(jel.debit), 0) AS total_debit,
	COALESCE(SUM(jel.credit), 0) AS total_credit
FROM chart_of_accounts coa
JOIN journal_entry_lines jel ON jel.account_id = coa.id
JOIN journal_entries je ON je.id = jel.journal_entry_id
WHERE coa.is_active AND je.entry_date >= $1 AND je.entry_date <= $2
GROUP BY coa.id, coa.name, coa.account_type, coa.balance_type
HAVING COALESCE(SUM(jel.debit), 0) > 0 OR COALESCE(SUM(jel.credit), 0) > 0
ORDER BY coa.id`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []TrialBalanceRow
	for rows.Next() {
		var row TrialBalanceRow
		if err := rows.Scan(&row.AccountID, &row.Name, &row.Type, &row.BalanceType, &row.TotalDebit, &row.TotalCredit); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) RevenueLines(ctx context.Context, start, end time.Time) ([]StatementLine, error) {
	return r.statementLines(ctx, `SELECT coa.id, coa.name, coa.parent_id,
	SUM(jel.credit - jel.debit) AS amount
FROM chart_of_accounts coa
JOIN journal_entry_lines jel ON jel.account_id = coa.id
JOIN journal_entries je ON je.id = jel.journal_entry_id
WHERE coa.account_type = 'REVENUE' AND je.entry_date >= $1 AND je.entry_date <= $2
GROUP BY coa.id, coa.name, coa.parent_id
HAVING SUM(jel.credit - jel.debit) > 0
ORDER BY coa.id`, start, end)
}

func (r *repository) ExpenseLines(ctx context.Context, start, end time.Time) ([]StatementLine, error) {
	return r.statementLines(ctx, `SELECT coa.id, coa.name, coa.parent_id,
	SUM(jel.debit - jel.credit) AS amount
FROM chart_of_accounts coa
JOIN journal_entry_lines jel ON jel.account_id = coa.id
JOIN journal_entries je ON je.id = jel.journal_entry_id
WHERE coa.account_type = 'EXPENSE' AND je.entry_date >= $1 AND je.entry_date <= $2
GROUP BY coa.id, coa.name, coa.parent_id
HAVING SUM(jel.debit - jel.credit) > 0
ORDER BY coa.id`, start, end)
}

func (r *repository) AssetLines(ctx context.Context, asOf time.Time) ([]StatementLine, error) {
	return r.statementLines(ctx, `SELECT coa.id, coa.name, coa.parent_id,
	SUM(jel.debit - jel.credit) AS amount
FROM chart_of_accounts coa
JOIN journal_entry_lines jel ON jel.account_id = coa.id
JOIN journal_entries je ON je.id = jel.journal_entry_id
WHERE coa.account_type = 'ASSET' AND je.entry_date <= $1
GROUP BY coa.id, coa.name, coa.parent_id
HAVING SUM(jel.debit - jel.credit) <> 0
ORDER BY coa.id`, asOf)
}

func (r *repository) LiabilityLines(ctx context.Context, asOf time.Time) ([]StatementLine, error) {
	return r.statementLines(ctx, `SELECT coa.id, coa.name, coa.parent_id,
	SUM(jel.credit - jel.debit) AS amount
FROM chart_of_accounts coa
JOIN journal_entry_lines jel ON jel.account_id = coa.id
JOIN journal_entries je ON je.id = jel.journal_entry_id
WHERE coa.account_type = 'LIABILITY' AND je.entry_date <= $1
GROUP BY coa.id, coa.name, coa.parent_id
HAVING SUM(jel.credit - jel.debit) <> 0
ORDER BY coa.id`, asOf)
}

func (r *repository) EquityLines(ctx context.Context, asOf time.Time, excludeAccountID string) ([]StatementLine, error) {
	return r.statementLines(ctx, `SELECT coa.id, coa.name, coa.parent_id,
	SUM(jel.credit - jel.debit) AS amount
FROM chart_of_accounts coa
JOIN journal_entry_lines jel ON jel.account_id = coa.id
JOIN journal_entries je ON je.id = jel.journal_entry_id
WHERE coa.account_type = 'EQUITY' AND coa.id <> $2 AND je.entry_date <= $1
GROUP BY coa.id, coa.name, coa.parent_id
HAVING SUM(jel.credit - jel.debit) <> 0
ORDER BY coa.id`, asOf, excludeAccountID)
}

func (r *repository) statementLines(ctx context.Context, query string, args ...any) ([]StatementLine, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []StatementLine
	for rows.Next() {
		var line StatementLine
		if err := rows.Scan(&line.AccountID, &line.Name, &line.ParentID, &line.Amount); err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	return out, rows.Err()
}
