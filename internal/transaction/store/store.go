package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/pedrosantos/grana/internal/transaction"
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

// scanTransaction reads a transaction row from the scanner and returns a populated Transaction.
// Expected column order: id, user_id, amount, type, status, description, date,
// account_id, category_id, recurrence_id, savings_goal_id, credit_card_id, created_at, updated_at
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr, statusStr string

	var date time.Time

	if err := s.Scan(
		&tx.ID, &tx.UserID, &tx.Amount, &typeStr, &statusStr, &tx.Description, &date,
		&tx.AccountID, &tx.CategoryID, &tx.RecurrenceID, &tx.SavingsGoalID, &tx.CreditCardID,
		&tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)
	tx.Status = transaction.Status(statusStr)
	tx.Date = civil.DateOf(date)

	return &tx, nil
}

const selectTransactionColumns = `
	id, user_id, amount, type, status, description, date,
	account_id, category_id, recurrence_id, savings_goal_id, credit_card_id,
	created_at, updated_at
`

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, amount, type, status, description, date,
			account_id, category_id, recurrence_id, savings_goal_id, credit_card_id,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.UserID,
		tx.Amount,
		tx.Type,
		tx.Status,
		tx.Description,
		tx.Date.In(time.UTC),
		tx.AccountID,
		tx.CategoryID,
		tx.RecurrenceID,
		tx.SavingsGoalID,
		tx.CreditCardID,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND id = $2`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, userID uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE user_id = $1`

	args := []any{userID}

	argIdx := 2

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, filter.StartDate.In(time.UTC))
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, filter.EndDate.In(time.UTC))
		argIdx++
	}

	if len(filter.Statuses) > 0 {
		query += " AND status IN ("

		for i, st := range filter.Statuses {
			if i > 0 {
				query += ", "
			}

			query += fmt.Sprintf("$%d", argIdx)

			args = append(args, st)
			argIdx++
		}

		query += ")"
	}

	if filter.CreditCardIsNull {
		query += " AND credit_card_id IS NULL"
	}

	if filter.ExcludeSavingsGoal {
		query += " AND savings_goal_id IS NULL"
	}

	if filter.RecurrenceID != nil {
		query += fmt.Sprintf(" AND recurrence_id = $%d", argIdx)

		args = append(args, *filter.RecurrenceID)
		argIdx++
	}

	query += " ORDER BY date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status transaction.Status) error {
	query := `
		UPDATE transactions
		SET status = $1, updated_at = NOW()
		WHERE user_id = $2 AND id = $3
	`

	_, err := s.db.ExecContext(ctx, query, status, userID, id)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	query := `
		DELETE FROM transactions
		WHERE user_id = $1 AND id = $2
	`

	_, err := s.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return nil
}
