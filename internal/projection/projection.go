package projection

import (
	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pedrosantos/grana/internal/transaction"
)

// Entry is one line contributing to a projection: either a real
// transaction inside the period or a synthesized occurrence of an
// active recurrence that has not been materialized yet.
type Entry struct {
	Date         civil.Date
	Description  string
	Amount       decimal.Decimal
	Type         transaction.Type
	Status       transaction.Status
	CategoryID   *uuid.UUID
	RecurrenceID *uuid.UUID
	Projected    bool
}

// Result is a balance forecast for one period. It is computed fresh per
// call and never persisted: a pure function of the store's state at
// fetch time.
type Result struct {
	PeriodStart       civil.Date
	PeriodEnd         civil.Date
	InitialBalance    decimal.Decimal
	ProjectedIncome   decimal.Decimal
	ProjectedExpenses decimal.Decimal
	ProjectedBalance  decimal.Decimal
	IncomeEntries     []Entry
	ExpenseEntries    []Entry
}
