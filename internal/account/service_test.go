package account_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/pedrosantos/grana/internal/account"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    account.CreateParams
		setupMock func(m *account.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: account.CreateParams{
				UserID:         uuid.New(),
				Name:           "Checking",
				InitialBalance: decimal.RequireFromString("1500.00"),
				IncludeInTotal: true,
			},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().
					CreateAccount(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, acc *account.Account) error {
						acc.ID = uuid.New()
						acc.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "RepoError",
			params: account.CreateParams{
				UserID: uuid.New(),
				Name:   "Savings",
			},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().
					CreateAccount(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := account.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Archive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	id := uuid.New()

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().
		SetArchived(gomock.Any(), userID, id, true).
		Return(nil)

	svc := account.NewService(repo)

	assert.NoError(t, svc.Archive(context.Background(), userID, id))
}
