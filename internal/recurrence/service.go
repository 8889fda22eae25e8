package recurrence

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pedrosantos/grana/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=recurrence
type Repository interface {
	CreateRule(ctx context.Context, rule *Rule) error
	GetRule(ctx context.Context, userID, id uuid.UUID) (*Rule, error)
	ListRules(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Rule, error)
	SetActive(ctx context.Context, userID, id uuid.UUID, active bool) error
	DeleteRule(ctx context.Context, userID, id uuid.UUID) error

	// InsertMaterialized persists occurrence transactions, relying on the
	// store's uniqueness constraint on (recurrence_id, date). Rows that
	// collide with an already-materialized occurrence are skipped, not
	// treated as errors. Returns the rows actually inserted.
	InsertMaterialized(ctx context.Context, txs []*transaction.Transaction) ([]*transaction.Transaction, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID       uuid.UUID
	Frequency    Frequency
	StartDate    civil.Date
	EndDate      *civil.Date
	Amount       decimal.Decimal
	Type         transaction.Type
	Description  string
	CategoryID   *uuid.UUID
	AccountID    *uuid.UUID
	CreditCardID *uuid.UUID
}

type ListFilter struct {
	IsActive         *bool
	CreditCardIsNull bool
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Rule, error) {
	rule := &Rule{
		UserID:       params.UserID,
		Frequency:    params.Frequency,
		StartDate:    params.StartDate,
		EndDate:      params.EndDate,
		IsActive:     true,
		Amount:       params.Amount,
		Type:         params.Type,
		Description:  params.Description,
		CategoryID:   params.CategoryID,
		AccountID:    params.AccountID,
		CreditCardID: params.CreditCardID,
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateRule(ctx, rule); err != nil {
		return nil, err
	}

	return rule, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Rule, error) {
	return s.repo.GetRule(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Rule, error) {
	return s.repo.ListRules(ctx, userID, filter)
}

func (s *Service) SetActive(ctx context.Context, userID, id uuid.UUID, active bool) error {
	return s.repo.SetActive(ctx, userID, id, active)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteRule(ctx, userID, id)
}

// Occurrences previews the rule's due dates within [rangeStart, rangeEnd]
// without persisting anything.
func (s *Service) Occurrences(ctx context.Context, userID, id uuid.UUID, rangeStart, rangeEnd civil.Date) ([]civil.Date, error) {
	rule, err := s.repo.GetRule(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	return Enumerate(rule, rangeStart, rangeEnd)
}

// Materialize turns the rule's due dates within [rangeStart, rangeEnd]
// into pending transactions. Occurrences already materialized by an
// earlier call, or by a concurrent caller, are skipped via the store's
// (recurrence_id, date) uniqueness constraint. Returns the transactions
// created by this call.
func (s *Service) Materialize(ctx context.Context, userID, id uuid.UUID, rangeStart, rangeEnd civil.Date) ([]*transaction.Transaction, error) {
	rule, err := s.repo.GetRule(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	dates, err := Enumerate(rule, rangeStart, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("enumerating occurrences: %w", err)
	}

	if len(dates) == 0 {
		return nil, nil
	}

	txs := make([]*transaction.Transaction, len(dates))
	for i, date := range dates {
		ruleID := rule.ID
		txs[i] = &transaction.Transaction{
			UserID:       rule.UserID,
			Amount:       rule.Amount,
			Type:         rule.Type,
			Status:       transaction.StatusPending,
			Description:  rule.Description,
			Date:         date,
			AccountID:    rule.AccountID,
			CategoryID:   rule.CategoryID,
			RecurrenceID: &ruleID,
			CreditCardID: rule.CreditCardID,
		}
	}

	inserted, err := s.repo.InsertMaterialized(ctx, txs)
	if err != nil {
		return nil, fmt.Errorf("materializing occurrences: %w", err)
	}

	return inserted, nil
}
