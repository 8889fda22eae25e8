package projection

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/pedrosantos/grana/internal/account"
	"github.com/pedrosantos/grana/internal/recurrence"
	"github.com/pedrosantos/grana/internal/transaction"
)

// Source is the read surface of the data store the aggregator projects
// from. A failed fetch fails the whole projection: a partial result
// would understate income or expenses.
//
//go:generate mockgen -source=service.go -destination=source_mock.go -package=projection
type Source interface {
	ListAccounts(ctx context.Context, userID uuid.UUID, filter account.ListFilter) ([]*account.Account, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error)
	ListRecurrences(ctx context.Context, userID uuid.UUID, filter recurrence.ListFilter) ([]*recurrence.Rule, error)
}

type Service struct {
	source Source
}

func NewService(source Source) *Service {
	return &Service{source: source}
}

// projectionStatuses are the transaction states that count towards a
// balance: confirmed and still-pending movements alike.
var projectionStatuses = []transaction.Status{
	transaction.StatusConfirmed,
	transaction.StatusPending,
}

// Project computes the balance forecast for [periodStart, periodEnd],
// both endpoints inclusive. Credit-card and savings-goal movements are
// outside the aggregate and excluded throughout. Each call fetches a
// fresh snapshot; concurrent calls share no state.
func (s *Service) Project(ctx context.Context, userID uuid.UUID, periodStart, periodEnd civil.Date) (*Result, error) {
	var (
		accounts  []*account.Account
		priorTxs  []*transaction.Transaction
		periodTxs []*transaction.Transaction
		rules     []*recurrence.Rule
	)

	// The four reads are independent; fetch them concurrently.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		include := true
		archived := false

		var err error

		accounts, err = s.source.ListAccounts(gctx, userID, account.ListFilter{
			IncludeInTotal: &include,
			IsArchived:     &archived,
		})
		if err != nil {
			return fmt.Errorf("fetching accounts: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		before := periodStart.AddDays(-1)

		var err error

		priorTxs, err = s.source.ListTransactions(gctx, userID, transaction.ListFilter{
			EndDate:            &before,
			Statuses:           projectionStatuses,
			CreditCardIsNull:   true,
			ExcludeSavingsGoal: true,
		})
		if err != nil {
			return fmt.Errorf("fetching prior transactions: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		var err error

		periodTxs, err = s.source.ListTransactions(gctx, userID, transaction.ListFilter{
			StartDate:          &periodStart,
			EndDate:            &periodEnd,
			Statuses:           projectionStatuses,
			CreditCardIsNull:   true,
			ExcludeSavingsGoal: true,
		})
		if err != nil {
			return fmt.Errorf("fetching period transactions: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		active := true

		var err error

		rules, err = s.source.ListRecurrences(gctx, userID, recurrence.ListFilter{
			IsActive:         &active,
			CreditCardIsNull: true,
		})
		if err != nil {
			return fmt.Errorf("fetching recurrences: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	initialBalance := accountBaseline(accounts).Add(foldBalance(priorTxs))

	entries, err := mergeEntries(periodTxs, rules, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	result := &Result{
		PeriodStart:       periodStart,
		PeriodEnd:         periodEnd,
		InitialBalance:    initialBalance,
		ProjectedIncome:   decimal.Zero,
		ProjectedExpenses: decimal.Zero,
	}

	for _, e := range entries {
		switch e.Type {
		case transaction.TypeIncome:
			result.IncomeEntries = append(result.IncomeEntries, e)
			result.ProjectedIncome = result.ProjectedIncome.Add(e.Amount)
		case transaction.TypeExpense:
			result.ExpenseEntries = append(result.ExpenseEntries, e)
			result.ProjectedExpenses = result.ProjectedExpenses.Add(e.Amount)
		}
	}

	sortByDate(result.IncomeEntries)
	sortByDate(result.ExpenseEntries)

	result.ProjectedBalance = result.InitialBalance.
		Add(result.ProjectedIncome).
		Sub(result.ProjectedExpenses)

	return result, nil
}

func accountBaseline(accounts []*account.Account) decimal.Decimal {
	total := decimal.Zero
	for _, acc := range accounts {
		total = total.Add(acc.InitialBalance)
	}

	return total
}

// foldBalance nets a transaction list into a single balance delta.
// Income and adjustments add; expenses subtract. A transfer is an
// outflow from the aggregate: the destination account's side of it is
// outside this view.
func foldBalance(txs []*transaction.Transaction) decimal.Decimal {
	total := decimal.Zero

	for _, tx := range txs {
		switch tx.Type {
		case transaction.TypeIncome, transaction.TypeAdjustment:
			total = total.Add(tx.Amount)
		case transaction.TypeExpense, transaction.TypeTransfer:
			total = total.Sub(tx.Amount)
		}
	}

	return total
}

// mergeEntries combines the period's real transactions with synthesized
// occurrences of the active rules. An occurrence whose (recurrence, date)
// pair already exists as a transaction is suppressed so nothing is
// counted twice.
func mergeEntries(txs []*transaction.Transaction, rules []*recurrence.Rule, periodStart, periodEnd civil.Date) ([]Entry, error) {
	materialized := make(map[string]struct{}, len(txs))

	entries := make([]Entry, 0, len(txs))

	for _, tx := range txs {
		if tx.RecurrenceID != nil {
			materialized[occurrenceKey(*tx.RecurrenceID, tx.Date)] = struct{}{}
		}

		entries = append(entries, Entry{
			Date:         tx.Date,
			Description:  tx.Description,
			Amount:       tx.Amount,
			Type:         tx.Type,
			Status:       tx.Status,
			CategoryID:   tx.CategoryID,
			RecurrenceID: tx.RecurrenceID,
		})
	}

	for _, rule := range rules {
		dates, err := recurrence.Enumerate(rule, periodStart, periodEnd)
		if err != nil {
			return nil, fmt.Errorf("enumerating recurrence %s: %w", rule.ID, err)
		}

		for _, date := range dates {
			if _, ok := materialized[occurrenceKey(rule.ID, date)]; ok {
				continue
			}

			ruleID := rule.ID
			entries = append(entries, Entry{
				Date:         date,
				Description:  rule.Description,
				Amount:       rule.Amount,
				Type:         rule.Type,
				Status:       transaction.StatusPending,
				CategoryID:   rule.CategoryID,
				RecurrenceID: &ruleID,
				Projected:    true,
			})
		}
	}

	return entries, nil
}

func occurrenceKey(recurrenceID uuid.UUID, date civil.Date) string {
	return recurrenceID.String() + "|" + date.String()
}

func sortByDate(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
}
