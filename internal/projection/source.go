package projection

import (
	"context"

	"github.com/google/uuid"

	"github.com/pedrosantos/grana/internal/account"
	"github.com/pedrosantos/grana/internal/recurrence"
	"github.com/pedrosantos/grana/internal/transaction"
)

// NewStoreSource combines the three repositories into a projection Source.
func NewStoreSource(accounts account.Repository, transactions transaction.Repository, recurrences recurrence.Repository) Source {
	return &storeSource{
		accounts:     accounts,
		transactions: transactions,
		recurrences:  recurrences,
	}
}

type storeSource struct {
	accounts     account.Repository
	transactions transaction.Repository
	recurrences  recurrence.Repository
}

func (s *storeSource) ListAccounts(ctx context.Context, userID uuid.UUID, filter account.ListFilter) ([]*account.Account, error) {
	return s.accounts.ListAccounts(ctx, userID, filter)
}

func (s *storeSource) ListTransactions(ctx context.Context, userID uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	return s.transactions.ListTransactions(ctx, userID, filter)
}

func (s *storeSource) ListRecurrences(ctx context.Context, userID uuid.UUID, filter recurrence.ListFilter) ([]*recurrence.Rule, error) {
	return s.recurrences.ListRules(ctx, userID, filter)
}
