package recurrence

import (
	"errors"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pedrosantos/grana/internal/transaction"
)

var (
	ErrNotFound    = errors.New("recurrence not found")
	ErrInvalidRule = errors.New("recurrence start date is after end date")
)

// Frequency is the repeat cadence of a rule.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyYearly   Frequency = "yearly"
)

// Rule is a template describing a repeating financial event. The anchor
// day for monthly and yearly frequencies is StartDate's day-of-month,
// fixed at creation and never recomputed from later occurrences.
type Rule struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Frequency    Frequency
	StartDate    civil.Date
	EndDate      *civil.Date // nil means unbounded
	IsActive     bool
	Amount       decimal.Decimal
	Type         transaction.Type
	Description  string
	CategoryID   *uuid.UUID
	AccountID    *uuid.UUID
	CreditCardID *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Validate checks the rule's date invariant. A rule with a start date
// after its end date never reaches the enumerator.
func (r *Rule) Validate() error {
	if r.EndDate != nil && r.StartDate.After(*r.EndDate) {
		return ErrInvalidRule
	}

	return nil
}

// Occurrence is one concrete scheduled date derived from a rule. It has
// no lifecycle of its own; it is recomputed on every projection request.
type Occurrence struct {
	Date         civil.Date
	RecurrenceID uuid.UUID
}
