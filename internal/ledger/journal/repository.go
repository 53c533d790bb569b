package journal

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinefin/cinefin/internal/ledger/shared"
	"github.com/cinefin/cinefin/internal/platform/db"
)

// Repository encapsulates DB operations for journal entries.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Entry, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the writes available inside a posting transaction.
type TxRepository interface {
	InsertEntry(ctx context.Context, in PostingInput) (Entry, error)
	InsertLines(ctx context.Context, entryID int64, defaultDescription string, lines []LineInput) error
	GetEntryWithLines(ctx context.Context, entryID int64) (Entry, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	query := `SELECT id, entry_date, description, reference_type, reference_id, created_by, created_at
FROM journal_entries WHERE 1=1`
	args := []any{}
	if filter.StartDate != nil && filter.EndDate != nil {
		args = append(args, *filter.StartDate, *filter.EndDate)
		query += fmt.Sprintf(" AND entry_date BETWEEN $%d AND $%d", len(args)-1, len(args))
	}
	if filter.ReferenceType != nil {
		args = append(args, *filter.ReferenceType)
		query += fmt.Sprintf(" AND reference_type = $%d", len(args))
	}
	query += " ORDER BY entry_date DESC, id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.EntryDate, &e.Description, &e.ReferenceType, &e.ReferenceID, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range entries {
		lines, err := r.entryLines(ctx, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Lines = lines
	}
	return entries, nil
}

func (r *repository) entryLines(ctx context.Context, entryID int64) ([]Line, error) {
	rows, err := r.db.Query(ctx, `SELECT jel.id, jel.journal_entry_id, jel.account_id, COALESCE(coa.name, ''), jel.debit, jel.credit, jel.description
FROM journal_entry_lines jel
LEFT JOIN chart_of_accounts coa ON jel.account_id = coa.id
WHERE jel.journal_entry_id = $1
ORDER BY jel.id`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []Line
	for rows.Next() {
		var line Line
		if err := rows.Scan(&line.ID, &line.EntryID, &line.AccountID, &line.AccountName, &line.Debit, &line.Credit, &line.Description); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) InsertEntry(ctx context.Context, in PostingInput) (Entry, error) {
	row := r.tx.QueryRow(ctx, `INSERT INTO journal_entries (entry_date, description, reference_type, reference_id, created_by)
VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at`,
		in.EntryDate, in.Description, in.ReferenceType, in.ReferenceID, in.CreatedBy)
	entry := Entry{
		EntryDate:     in.EntryDate,
		Description:   in.Description,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		CreatedBy:     in.CreatedBy,
	}
	if err := row.Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (r *txRepository) InsertLines(ctx context.Context, entryID int64, defaultDescription string, lines []LineInput) error {
	for _, line := range lines {
		description := line.Description
		if description == "" {
			description = defaultDescription
		}
		if _, err := r.tx.Exec(ctx, `INSERT INTO journal_entry_lines (journal_entry_id, account_id, debit, credit, description)
VALUES ($1,$2,$3,$4,$5)`, entryID, line.AccountID, line.Debit, line.Credit, description); err != nil {
			return err
		}
	}
	return nil
}

func (r *txRepository) GetEntryWithLines(ctx context.Context, entryID int64) (Entry, error) {
	var entry Entry
	err := r.tx.QueryRow(ctx, `SELECT id, entry_date, description, reference_type, reference_id, created_by, created_at
FROM journal_entries WHERE id=$1`, entryID).
		Scan(&entry.ID, &entry.EntryDate, &entry.Description, &entry.ReferenceType, &entry.ReferenceID, &entry.CreatedBy, &entry.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, shared.ErrEntryNotFound
		}
		return Entry{}, err
	}
	rows, err := r.tx.Query(ctx, `SELECT jel.id, jel.journal_entry_id, jel.account_id, COALESCE(coa.name, ''), jel.debit, jel.credit, jel.description
FROM journal_entry_lines jel
LEFT JOIN chart_of_accounts coa ON jel.account_id = coa.id
WHERE jel.journal_entry_id = $1
ORDER BY jel.id`, entryID)
	if err != nil {
		return Entry{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var line Line
		if err := rows.Scan(&line.ID, &line.EntryID, &line.AccountID, &line.AccountName, &line.Debit, &line.Credit, &line.Description); err != nil {
			return Entry{}, err
		}
		entry.Lines = append(entry.Lines, line)
	}
	return entry, rows.Err()
}
