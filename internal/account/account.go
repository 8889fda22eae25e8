package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("account not found")

// Account represents a bank account or wallet owned by a user.
type Account struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	InitialBalance decimal.Decimal
	IncludeInTotal bool
	IsArchived     bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
