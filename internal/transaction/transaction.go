package transaction

import (
	"errors"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("transaction not found")

// Type represents the kind of transaction. Amounts are non-negative
// magnitudes; the sign of a movement is carried by the type, never by
// the stored amount.
type Type string

const (
	TypeIncome     Type = "income"
	TypeExpense    Type = "expense"
	TypeTransfer   Type = "transfer"
	TypeAdjustment Type = "adjustment"
)

// Status represents the lifecycle state of a transaction.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusPending   Status = "pending"
)

// Transaction represents a financial transaction. Date is a pure
// calendar date; there is no time-of-day or timezone component.
type Transaction struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Amount        decimal.Decimal
	Type          Type
	Status        Status
	Description   string
	Date          civil.Date
	AccountID     *uuid.UUID
	CategoryID    *uuid.UUID
	RecurrenceID  *uuid.UUID
	SavingsGoalID *uuid.UUID
	CreditCardID  *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
