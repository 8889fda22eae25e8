package transaction

import (
	"context"
	"errors"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNegativeAmount = errors.New("transaction amount must not be negative")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, userID, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Transaction, error)
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status Status) error
	DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID        uuid.UUID
	Amount        decimal.Decimal
	Type          Type
	Status        Status
	Description   string
	Date          civil.Date
	AccountID     *uuid.UUID
	CategoryID    *uuid.UUID
	SavingsGoalID *uuid.UUID
	CreditCardID  *uuid.UUID
}

type ListFilter struct {
	StartDate          *civil.Date
	EndDate            *civil.Date
	Statuses           []Status
	CreditCardIsNull   bool
	ExcludeSavingsGoal bool
	RecurrenceID       *uuid.UUID
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if params.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	tx := &Transaction{
		UserID:        params.UserID,
		Amount:        params.Amount,
		Type:          params.Type,
		Status:        params.Status,
		Description:   params.Description,
		Date:          params.Date,
		AccountID:     params.AccountID,
		CategoryID:    params.CategoryID,
		SavingsGoalID: params.SavingsGoalID,
		CreditCardID:  params.CreditCardID,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, userID, filter)
}

func (s *Service) Confirm(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.UpdateStatus(ctx, userID, id, StatusConfirmed)
}

func (s *Service) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status Status) error {
	return s.repo.UpdateStatus(ctx, userID, id, status)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, userID, id)
}
