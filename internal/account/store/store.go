package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/pedrosantos/grana/internal/account"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, user_id, name, initial_balance, include_in_total, is_archived, created_at, updated_at
func scanAccount(s scanner) (*account.Account, error) {
	var acc account.Account

	if err := s.Scan(
		&acc.ID, &acc.UserID, &acc.Name, &acc.InitialBalance,
		&acc.IncludeInTotal, &acc.IsArchived,
		&acc.CreatedAt, &acc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &acc, nil
}

const selectAccountColumns = `
	id, user_id, name, initial_balance, include_in_total, is_archived, created_at, updated_at
`

func (s *Store) CreateAccount(ctx context.Context, acc *account.Account) error {
	query := `
		INSERT INTO accounts (user_id, name, initial_balance, include_in_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		acc.UserID,
		acc.Name,
		acc.InitialBalance,
		acc.IncludeInTotal,
	).Scan(&acc.ID, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, userID, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + `
		FROM accounts
		WHERE user_id = $1 AND id = $2`

	acc, err := scanAccount(s.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return acc, nil
}

func (s *Store) ListAccounts(ctx context.Context, userID uuid.UUID, filter account.ListFilter) ([]*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + `
		FROM accounts
		WHERE user_id = $1`

	args := []any{userID}

	argIdx := 2

	if filter.IncludeInTotal != nil {
		query += fmt.Sprintf(" AND include_in_total = $%d", argIdx)

		args = append(args, *filter.IncludeInTotal)
		argIdx++
	}

	if filter.IsArchived != nil {
		query += fmt.Sprintf(" AND is_archived = $%d", argIdx)

		args = append(args, *filter.IsArchived)
		argIdx++
	}

	query += " ORDER BY name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accs []*account.Account

	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accs = append(accs, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account rows: %w", err)
	}

	return accs, nil
}

func (s *Store) SetArchived(ctx context.Context, userID, id uuid.UUID, archived bool) error {
	query := `
		UPDATE accounts
		SET is_archived = $1, updated_at = NOW()
		WHERE user_id = $2 AND id = $3
	`

	_, err := s.db.ExecContext(ctx, query, archived, userID, id)
	if err != nil {
		return fmt.Errorf("archiving account: %w", err)
	}

	return nil
}
