package projection

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pedrosantos/grana/internal/transaction"
)

// ScenarioDelta is a hypothetical recurring income or expense applied
// identically to every month of a chained projection. It is not tied to
// any stored recurrence rule.
type ScenarioDelta struct {
	Type   transaction.Type
	Amount decimal.Decimal
}

// ChainMonth is one month of a chained projection.
type ChainMonth struct {
	Month          civil.Date // first day of the month
	InitialBalance decimal.Decimal
	Income         decimal.Decimal
	Expenses       decimal.Decimal
	ScenarioImpact decimal.Decimal
	Balance        decimal.Decimal
}

// ChainResult is a multi-month what-if projection. RealTargetBalance is
// the target month's unmodified projection, for comparison against the
// simulated FinalBalance.
type ChainResult struct {
	Months            []ChainMonth
	FinalBalance      decimal.Decimal
	RealTargetBalance decimal.Decimal
}

// ProjectChain simulates carrying the scenario deltas forward from
// baseMonth through targetMonth. The base month uses its real projection
// plus the scenario impact; every following month takes its real income
// and expenses from the data and compounds the simulated balance, with
// the impact applied once per month. Months of baseMonth and targetMonth
// are taken from the dates' year and month; the day is ignored.
func (s *Service) ProjectChain(ctx context.Context, userID uuid.UUID, baseMonth, targetMonth civil.Date, deltas []ScenarioDelta) (*ChainResult, error) {
	base := monthStart(baseMonth)
	target := monthStart(targetMonth)
	impact := scenarioImpact(deltas)

	baseResult, err := s.Project(ctx, userID, base, monthEnd(base))
	if err != nil {
		return nil, err
	}

	balance := baseResult.ProjectedBalance.Add(impact)

	result := &ChainResult{
		Months: []ChainMonth{{
			Month:          base,
			InitialBalance: baseResult.InitialBalance,
			Income:         baseResult.ProjectedIncome,
			Expenses:       baseResult.ProjectedExpenses,
			ScenarioImpact: impact,
			Balance:        balance,
		}},
	}

	months := monthsBetween(base, target)
	if months <= 0 {
		result.FinalBalance = balance
		result.RealTargetBalance = baseResult.ProjectedBalance

		return result, nil
	}

	for m := 1; m <= months; m++ {
		month := addMonths(base, m)

		monthResult, err := s.Project(ctx, userID, month, monthEnd(month))
		if err != nil {
			return nil, err
		}

		// Real income and expenses, simulated balance carried forward;
		// the month's own initial balance is ignored.
		prev := balance
		balance = prev.
			Add(monthResult.ProjectedIncome).
			Sub(monthResult.ProjectedExpenses).
			Add(impact)

		result.Months = append(result.Months, ChainMonth{
			Month:          month,
			InitialBalance: prev,
			Income:         monthResult.ProjectedIncome,
			Expenses:       monthResult.ProjectedExpenses,
			ScenarioImpact: impact,
			Balance:        balance,
		})

		if m == months {
			result.RealTargetBalance = monthResult.ProjectedBalance
		}
	}

	result.FinalBalance = balance

	return result, nil
}

// scenarioImpact nets the deltas into one per-month amount: income adds,
// expense subtracts.
func scenarioImpact(deltas []ScenarioDelta) decimal.Decimal {
	impact := decimal.Zero

	for _, d := range deltas {
		switch d.Type {
		case transaction.TypeIncome:
			impact = impact.Add(d.Amount)
		case transaction.TypeExpense:
			impact = impact.Sub(d.Amount)
		}
	}

	return impact
}

func monthStart(d civil.Date) civil.Date {
	return civil.Date{Year: d.Year, Month: d.Month, Day: 1}
}

func monthEnd(d civil.Date) civil.Date {
	// Day zero of the following month is the last day of this one.
	t := time.Date(d.Year, d.Month+1, 0, 0, 0, 0, 0, time.UTC)

	return civil.DateOf(t)
}

func addMonths(d civil.Date, n int) civil.Date {
	months := int(d.Month) - 1 + n

	return civil.Date{
		Year:  d.Year + months/12,
		Month: time.Month(months%12 + 1),
		Day:   1,
	}
}

func monthsBetween(from, to civil.Date) int {
	return (to.Year-from.Year)*12 + int(to.Month) - int(from.Month)
}
