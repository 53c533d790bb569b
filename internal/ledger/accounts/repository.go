package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinefin/cinefin/internal/ledger/shared"
)

// ListFilter narrows chart-of-accounts listings.
type ListFilter struct {
	Type       *AccountType
	ActiveOnly bool
}

// Repository encapsulates DB operations for the chart of accounts.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Account, error)
	Get(ctx context.Context, id string) (Account, error)
	Create(ctx context.Context, account Account) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Account, error) {
	query := `SELECT id, name, account_type, parent_id, balance_type, description, is_active, created_at, updated_at
FROM chart_of_accounts WHERE 1=1`
	args := []any{}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += fmt.Sprintf(" AND account_type = $%d", len(args))
	}
	if filter.ActiveOnly {
		query += " AND is_active"
	}
	query += " ORDER BY id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.ParentID, &a.BalanceType, &a.Description, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (Account, error) {
	var a Account
	err := r.db.QueryRow(ctx, `SELECT id, name, account_type, parent_id, balance_type, description, is_active, created_at, updated_at
FROM chart_of_accounts WHERE id=$1`, id).
		Scan(&a.ID, &a.Name, &a.Type, &a.ParentID, &a.BalanceType, &a.Description, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, shared.ErrAccountNotFound
		}
		return Account{}, err
	}
	return a, nil
}

func (r *repository) Create(ctx context.Context, account Account) error {
	_, err := r.db.Exec(ctx, `INSERT INTO chart_of_accounts (id, name, account_type, parent_id, balance_type, description, is_active)
VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		account.ID, account.Name, account.Type, account.ParentID, account.BalanceType, account.Description, account.IsActive)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return shared.ErrAccountExists
		}
		return err
	}
	return nil
}
