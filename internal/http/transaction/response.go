package transaction

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pedrosantos/grana/internal/transaction"
)

type transactionResponse struct {
	ID            uuid.UUID          `json:"id"`
	Amount        decimal.Decimal    `json:"amount"`
	Type          transaction.Type   `json:"type"`
	Status        transaction.Status `json:"status"`
	Description   string             `json:"description"`
	Date          civil.Date         `json:"date"`
	AccountID     *uuid.UUID         `json:"account_id,omitempty"`
	CategoryID    *uuid.UUID         `json:"category_id,omitempty"`
	RecurrenceID  *uuid.UUID         `json:"recurrence_id,omitempty"`
	SavingsGoalID *uuid.UUID         `json:"savings_goal_id,omitempty"`
	CreditCardID  *uuid.UUID         `json:"credit_card_id,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     *time.Time         `json:"updated_at,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:            tx.ID,
		Amount:        tx.Amount,
		Type:          tx.Type,
		Status:        tx.Status,
		Description:   tx.Description,
		Date:          tx.Date,
		AccountID:     tx.AccountID,
		CategoryID:    tx.CategoryID,
		RecurrenceID:  tx.RecurrenceID,
		SavingsGoalID: tx.SavingsGoalID,
		CreditCardID:  tx.CreditCardID,
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
