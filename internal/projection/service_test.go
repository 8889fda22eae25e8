package projection_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pedrosantos/grana/internal/account"
	"github.com/pedrosantos/grana/internal/projection"
	"github.com/pedrosantos/grana/internal/recurrence"
	"github.com/pedrosantos/grana/internal/transaction"
)

func date(year int, month time.Month, day int) civil.Date {
	return civil.Date{Year: year, Month: month, Day: day}
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, money(want).Equal(got), "want %s, got %s", want, got)
}

type fixture struct {
	accounts []*account.Account
	txs      []*transaction.Transaction
	rules    []*recurrence.Rule
}

// stub wires the source mock to answer list calls from the fixture,
// applying the same date and exclusion filters the real store would.
func (f fixture) stub(t *testing.T, m *projection.MockSource) {
	t.Helper()

	m.EXPECT().
		ListAccounts(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, filter account.ListFilter) ([]*account.Account, error) {
			if assert.NotNil(t, filter.IncludeInTotal) {
				assert.True(t, *filter.IncludeInTotal)
			}

			if assert.NotNil(t, filter.IsArchived) {
				assert.False(t, *filter.IsArchived)
			}

			return f.accounts, nil
		}).
		AnyTimes()

	m.EXPECT().
		ListTransactions(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
			assert.True(t, filter.CreditCardIsNull)
			assert.True(t, filter.ExcludeSavingsGoal)
			assert.ElementsMatch(t,
				[]transaction.Status{transaction.StatusConfirmed, transaction.StatusPending},
				filter.Statuses)

			var out []*transaction.Transaction

			for _, tx := range f.txs {
				if tx.CreditCardID != nil || tx.SavingsGoalID != nil {
					continue
				}

				if filter.StartDate != nil && tx.Date.Before(*filter.StartDate) {
					continue
				}

				if filter.EndDate != nil && tx.Date.After(*filter.EndDate) {
					continue
				}

				out = append(out, tx)
			}

			return out, nil
		}).
		AnyTimes()

	m.EXPECT().
		ListRecurrences(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, filter recurrence.ListFilter) ([]*recurrence.Rule, error) {
			if assert.NotNil(t, filter.IsActive) {
				assert.True(t, *filter.IsActive)
			}

			assert.True(t, filter.CreditCardIsNull)

			return f.rules, nil
		}).
		AnyTimes()
}

func incomeTx(d civil.Date, amount string) *transaction.Transaction {
	return &transaction.Transaction{
		ID:     uuid.New(),
		Amount: money(amount),
		Type:   transaction.TypeIncome,
		Status: transaction.StatusConfirmed,
		Date:   d,
	}
}

func expenseTx(d civil.Date, amount string) *transaction.Transaction {
	return &transaction.Transaction{
		ID:     uuid.New(),
		Amount: money(amount),
		Type:   transaction.TypeExpense,
		Status: transaction.StatusConfirmed,
		Date:   d,
	}
}

func TestService_Project_Totals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := projection.NewMockSource(ctrl)

	fixture{
		accounts: []*account.Account{
			{ID: uuid.New(), InitialBalance: money("1000.00"), IncludeInTotal: true},
		},
		txs: []*transaction.Transaction{
			incomeTx(date(2024, time.March, 5), "500.00"),
			expenseTx(date(2024, time.March, 12), "200.00"),
		},
	}.stub(t, source)

	svc := projection.NewService(source)

	result, err := svc.Project(context.Background(), uuid.New(),
		date(2024, time.March, 1), date(2024, time.March, 31))

	require.NoError(t, err)
	assertAmount(t, "1000.00", result.InitialBalance)
	assertAmount(t, "500.00", result.ProjectedIncome)
	assertAmount(t, "200.00", result.ProjectedExpenses)
	assertAmount(t, "1300.00", result.ProjectedBalance)
	assert.Len(t, result.IncomeEntries, 1)
	assert.Len(t, result.ExpenseEntries, 1)

	// Balance identity holds exactly.
	assert.True(t, result.ProjectedBalance.Equal(
		result.InitialBalance.Add(result.ProjectedIncome).Sub(result.ProjectedExpenses)))
}

func TestService_Project_PriorBalanceFold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := projection.NewMockSource(ctrl)

	transferOut := &transaction.Transaction{
		ID:     uuid.New(),
		Amount: money("50.00"),
		Type:   transaction.TypeTransfer,
		Status: transaction.StatusConfirmed,
		Date:   date(2024, time.February, 20),
	}
	adjustment := &transaction.Transaction{
		ID:     uuid.New(),
		Amount: money("20.00"),
		Type:   transaction.TypeAdjustment,
		Status: transaction.StatusConfirmed,
		Date:   date(2024, time.February, 25),
	}

	fixture{
		accounts: []*account.Account{
			{ID: uuid.New(), InitialBalance: money("100.00"), IncludeInTotal: true},
			{ID: uuid.New(), InitialBalance: money("400.00"), IncludeInTotal: true},
		},
		txs: []*transaction.Transaction{
			incomeTx(date(2024, time.January, 10), "100.00"),
			expenseTx(date(2024, time.February, 15), "30.00"),
			transferOut,
			adjustment,
		},
	}.stub(t, source)

	svc := projection.NewService(source)

	result, err := svc.Project(context.Background(), uuid.New(),
		date(2024, time.March, 1), date(2024, time.March, 31))

	require.NoError(t, err)

	// 500 baseline + 100 income - 30 expense - 50 transfer + 20 adjustment.
	assertAmount(t, "540.00", result.InitialBalance)
	assertAmount(t, "0", result.ProjectedIncome)
	assertAmount(t, "0", result.ProjectedExpenses)
	assertAmount(t, "540.00", result.ProjectedBalance)
}

func TestService_Project_SynthesizesOccurrences(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := projection.NewMockSource(ctrl)

	rule := &recurrence.Rule{
		ID:          uuid.New(),
		Frequency:   recurrence.FrequencyMonthly,
		StartDate:   date(2024, time.January, 10),
		IsActive:    true,
		Amount:      money("1200.00"),
		Type:        transaction.TypeExpense,
		Description: "Rent",
	}

	fixture{
		accounts: []*account.Account{
			{ID: uuid.New(), InitialBalance: money("5000.00"), IncludeInTotal: true},
		},
		rules: []*recurrence.Rule{rule},
	}.stub(t, source)

	svc := projection.NewService(source)

	result, err := svc.Project(context.Background(), uuid.New(),
		date(2024, time.March, 1), date(2024, time.March, 31))

	require.NoError(t, err)
	require.Len(t, result.ExpenseEntries, 1)

	entry := result.ExpenseEntries[0]
	assert.Equal(t, date(2024, time.March, 10), entry.Date)
	assert.Equal(t, "Rent", entry.Description)
	assert.Equal(t, transaction.StatusPending, entry.Status)
	assert.True(t, entry.Projected)
	require.NotNil(t, entry.RecurrenceID)
	assert.Equal(t, rule.ID, *entry.RecurrenceID)

	assertAmount(t, "1200.00", result.ProjectedExpenses)
	assertAmount(t, "3800.00", result.ProjectedBalance)
}

// A materialized transaction for (recurrence, date) suppresses the
// synthesized occurrence for the same pair.
func TestService_Project_NoDoubleCounting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := projection.NewMockSource(ctrl)

	rule := &recurrence.Rule{
		ID:          uuid.New(),
		Frequency:   recurrence.FrequencyMonthly,
		StartDate:   date(2024, time.January, 10),
		IsActive:    true,
		Amount:      money("1200.00"),
		Type:        transaction.TypeExpense,
		Description: "Rent",
	}

	ruleID := rule.ID
	materialized := &transaction.Transaction{
		ID:           uuid.New(),
		Amount:       money("1200.00"),
		Type:         transaction.TypeExpense,
		Status:       transaction.StatusPending,
		Description:  "Rent",
		Date:         date(2024, time.March, 10),
		RecurrenceID: &ruleID,
	}

	fixture{
		accounts: []*account.Account{
			{ID: uuid.New(), InitialBalance: money("5000.00"), IncludeInTotal: true},
		},
		txs:   []*transaction.Transaction{materialized},
		rules: []*recurrence.Rule{rule},
	}.stub(t, source)

	svc := projection.NewService(source)

	result, err := svc.Project(context.Background(), uuid.New(),
		date(2024, time.March, 1), date(2024, time.March, 31))

	require.NoError(t, err)
	require.Len(t, result.ExpenseEntries, 1)
	assert.False(t, result.ExpenseEntries[0].Projected)
	assertAmount(t, "1200.00", result.ProjectedExpenses)
}

func TestService_Project_FetchFailureFailsWholeProjection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := projection.NewMockSource(ctrl)

	source.EXPECT().
		ListAccounts(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil).
		AnyTimes()
	source.EXPECT().
		ListTransactions(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil).
		AnyTimes()
	source.EXPECT().
		ListRecurrences(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("store unreachable")).
		AnyTimes()

	svc := projection.NewService(source)

	result, err := svc.Project(context.Background(), uuid.New(),
		date(2024, time.March, 1), date(2024, time.March, 31))

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestService_ProjectChain_CompoundsScenarioImpact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := projection.NewMockSource(ctrl)

	fixture{
		accounts: []*account.Account{
			{ID: uuid.New(), InitialBalance: money("1000.00"), IncludeInTotal: true},
		},
		txs: []*transaction.Transaction{
			incomeTx(date(2025, time.February, 5), "800.00"),
			expenseTx(date(2025, time.February, 20), "600.00"),
			incomeTx(date(2025, time.March, 5), "900.00"),
			expenseTx(date(2025, time.March, 20), "700.00"),
		},
	}.stub(t, source)

	svc := projection.NewService(source)

	result, err := svc.ProjectChain(context.Background(), uuid.New(),
		date(2025, time.January, 1), date(2025, time.March, 1),
		[]projection.ScenarioDelta{
			{Type: transaction.TypeIncome, Amount: money("300.00")},
		})

	require.NoError(t, err)
	require.Len(t, result.Months, 3)

	assertAmount(t, "1000.00", result.Months[0].InitialBalance)
	assertAmount(t, "1300.00", result.Months[0].Balance)

	assertAmount(t, "1300.00", result.Months[1].InitialBalance)
	assertAmount(t, "800.00", result.Months[1].Income)
	assertAmount(t, "600.00", result.Months[1].Expenses)
	assertAmount(t, "1800.00", result.Months[1].Balance)

	assertAmount(t, "1800.00", result.Months[2].InitialBalance)
	assertAmount(t, "900.00", result.Months[2].Income)
	assertAmount(t, "700.00", result.Months[2].Expenses)
	assertAmount(t, "2300.00", result.Months[2].Balance)

	assertAmount(t, "2300.00", result.FinalBalance)

	// Real March projection, untouched by the scenario:
	// 1000 baseline + February's net 200, plus March's own 200.
	assertAmount(t, "1400.00", result.RealTargetBalance)
}

func TestService_ProjectChain_SingleMonth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := projection.NewMockSource(ctrl)

	fixture{
		accounts: []*account.Account{
			{ID: uuid.New(), InitialBalance: money("1000.00"), IncludeInTotal: true},
		},
	}.stub(t, source)

	svc := projection.NewService(source)

	result, err := svc.ProjectChain(context.Background(), uuid.New(),
		date(2025, time.January, 1), date(2025, time.January, 15),
		[]projection.ScenarioDelta{
			{Type: transaction.TypeIncome, Amount: money("500.00")},
			{Type: transaction.TypeExpense, Amount: money("200.00")},
		})

	require.NoError(t, err)
	require.Len(t, result.Months, 1)
	assertAmount(t, "1300.00", result.FinalBalance)
	assertAmount(t, "1000.00", result.RealTargetBalance)
}
