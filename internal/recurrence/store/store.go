package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pedrosantos/grana/internal/recurrence"
	"github.com/pedrosantos/grana/internal/transaction"
)

// uniqueViolation is the Postgres error code raised when an insert hits
// the (recurrence_id, date) uniqueness constraint on transactions.
const uniqueViolation = "23505"

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

// Expected column order: id, user_id, frequency, start_date, end_date, is_active,
// amount, type, description, category_id, account_id, credit_card_id, created_at, updated_at
func scanRule(s scanner) (*recurrence.Rule, error) {
	var rule recurrence.Rule

	var freqStr, typeStr string

	var startDate time.Time

	var endDate *time.Time

	if err := s.Scan(
		&rule.ID, &rule.UserID, &freqStr, &startDate, &endDate, &rule.IsActive,
		&rule.Amount, &typeStr, &rule.Description,
		&rule.CategoryID, &rule.AccountID, &rule.CreditCardID,
		&rule.CreatedAt, &rule.UpdatedAt,
	); err != nil {
		return nil, err
	}

	rule.Frequency = recurrence.Frequency(freqStr)
	rule.Type = transaction.Type(typeStr)
	rule.StartDate = civil.DateOf(startDate)

	if endDate != nil {
		d := civil.DateOf(*endDate)
		rule.EndDate = &d
	}

	return &rule, nil
}

const selectRuleColumns = `
	id, user_id, frequency, start_date, end_date, is_active,
	amount, type, description, category_id, account_id, credit_card_id,
	created_at, updated_at
`

func (s *Store) CreateRule(ctx context.Context, rule *recurrence.Rule) error {
	query := `
		INSERT INTO recurrences (user_id, frequency, start_date, end_date, is_active,
			amount, type, description, category_id, account_id, credit_card_id,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	var endDate *time.Time

	if rule.EndDate != nil {
		t := rule.EndDate.In(time.UTC)
		endDate = &t
	}

	err := s.db.QueryRowContext(ctx, query,
		rule.UserID,
		rule.Frequency,
		rule.StartDate.In(time.UTC),
		endDate,
		rule.IsActive,
		rule.Amount,
		rule.Type,
		rule.Description,
		rule.CategoryID,
		rule.AccountID,
		rule.CreditCardID,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating recurrence: %w", err)
	}

	return nil
}

func (s *Store) GetRule(ctx context.Context, userID, id uuid.UUID) (*recurrence.Rule, error) {
	query := `SELECT ` + selectRuleColumns + `
		FROM recurrences
		WHERE user_id = $1 AND id = $2`

	rule, err := scanRule(s.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, recurrence.ErrNotFound
		}

		return nil, fmt.Errorf("getting recurrence: %w", err)
	}

	return rule, nil
}

func (s *Store) ListRules(ctx context.Context, userID uuid.UUID, filter recurrence.ListFilter) ([]*recurrence.Rule, error) {
	query := `SELECT ` + selectRuleColumns + `
		FROM recurrences
		WHERE user_id = $1`

	args := []any{userID}

	argIdx := 2

	if filter.IsActive != nil {
		query += fmt.Sprintf(" AND is_active = $%d", argIdx)

		args = append(args, *filter.IsActive)
		argIdx++
	}

	if filter.CreditCardIsNull {
		query += " AND credit_card_id IS NULL"
	}

	query += " ORDER BY start_date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing recurrences: %w", err)
	}
	defer rows.Close()

	var rules []*recurrence.Rule

	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning recurrence: %w", err)
		}

		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recurrence rows: %w", err)
	}

	return rules, nil
}

func (s *Store) SetActive(ctx context.Context, userID, id uuid.UUID, active bool) error {
	query := `
		UPDATE recurrences
		SET is_active = $1, updated_at = NOW()
		WHERE user_id = $2 AND id = $3
	`

	_, err := s.db.ExecContext(ctx, query, active, userID, id)
	if err != nil {
		return fmt.Errorf("updating recurrence: %w", err)
	}

	return nil
}

func (s *Store) DeleteRule(ctx context.Context, userID, id uuid.UUID) error {
	query := `
		DELETE FROM recurrences
		WHERE user_id = $1 AND id = $2
	`

	_, err := s.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("deleting recurrence: %w", err)
	}

	return nil
}

// InsertMaterialized inserts occurrence transactions one at a time so a
// uniqueness collision on (recurrence_id, date) only skips that row.
// Concurrent materialization attempts for the same window collide on the
// constraint instead of double-inserting.
func (s *Store) InsertMaterialized(ctx context.Context, txs []*transaction.Transaction) ([]*transaction.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, amount, type, status, description, date,
			account_id, category_id, recurrence_id, savings_goal_id, credit_card_id,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	var inserted []*transaction.Transaction

	for _, tx := range txs {
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
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				// Already materialized by an earlier or concurrent call.
				continue
			}

			return nil, fmt.Errorf("inserting materialized occurrence: %w", err)
		}

		inserted = append(inserted, tx)
	}

	return inserted, nil
}
