package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	CreateAccount(ctx context.Context, acc *Account) error
	GetAccount(ctx context.Context, userID, id uuid.UUID) (*Account, error)
	ListAccounts(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Account, error)
	SetArchived(ctx context.Context, userID, id uuid.UUID, archived bool) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID         uuid.UUID
	Name           string
	InitialBalance decimal.Decimal
	IncludeInTotal bool
}

type ListFilter struct {
	IncludeInTotal *bool
	IsArchived     *bool
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Account, error) {
	acc := &Account{
		UserID:         params.UserID,
		Name:           params.Name,
		InitialBalance: params.InitialBalance,
		IncludeInTotal: params.IncludeInTotal,
	}
	if err := s.repo.CreateAccount(ctx, acc); err != nil {
		return nil, err
	}

	return acc, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Account, error) {
	return s.repo.ListAccounts(ctx, userID, filter)
}

func (s *Service) Archive(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.SetArchived(ctx, userID, id, true)
}

func (s *Service) Unarchive(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.SetArchived(ctx, userID, id, false)
}
