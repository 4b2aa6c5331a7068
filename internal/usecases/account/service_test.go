package account_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adsync-engine/infrastructure/repository/mocks"
	"github.com/vfg2006/adsync-engine/internal/domain"
	"github.com/vfg2006/adsync-engine/internal/usecases/account"
	"go.uber.org/mock/gomock"
)

func TestListAccounts(t *testing.T) {
	ctx := context.Background()

	t.Run("Deve listar contas na projeção da API sem expor a credencial", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		metricRepo := mocks.NewMockMetricRecordRepository(ctrl)
		service := account.NewService(accountRepo, metricRepo)

		accountRepo.EXPECT().ListByHealth(ctx, []domain.AccountHealth{domain.AccountHealthActive}).
			Return([]*domain.Account{
				{ID: "acc1", Platform: domain.PlatformMeta, ExternalID: "ext1", Name: "Conta 1", AccessToken: "tok", Health: domain.AccountHealthActive},
			}, nil)

		accounts, err := service.ListAccounts(ctx, []domain.AccountHealth{domain.AccountHealthActive})

		require.NoError(t, err)
		require.Len(t, accounts, 1)
		assert.Equal(t, "acc1", accounts[0].ID)
		assert.Equal(t, domain.PlatformMeta, accounts[0].Platform)
	})

	t.Run("Deve converter falha do repositório em erro de domínio", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		metricRepo := mocks.NewMockMetricRecordRepository(ctrl)
		service := account.NewService(accountRepo, metricRepo)

		accountRepo.EXPECT().ListByHealth(ctx, gomock.Nil()).Return(nil, errors.New("connection refused"))

		_, err := service.ListAccounts(ctx, nil)

		assert.ErrorIs(t, err, account.ErrFetchAccounts)
	})
}

func TestConnectAccount(t *testing.T) {
	ctx := context.Background()

	validRequest := func() *domain.ConnectAccountRequest {
		return &domain.ConnectAccountRequest{
			UserID:      "u1",
			Platform:    domain.PlatformMeta,
			ExternalID:  "ext1",
			Name:        "Conta Meta",
			AccessToken: "tok_abc123",
		}
	}

	t.Run("Deve conectar conta nova com id gerado e saúde ativa", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		metricRepo := mocks.NewMockMetricRecordRepository(ctrl)
		service := account.NewService(accountRepo, metricRepo)

		accountRepo.EXPECT().GetByExternalID(ctx, domain.PlatformMeta, "ext1").Return(nil, nil)
		accountRepo.EXPECT().SaveOrUpdate(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, acc *domain.Account) error {
				assert.NotEmpty(t, acc.ID)
				assert.Equal(t, domain.AccountHealthActive, acc.Health)
				assert.Equal(t, "tok_abc123", acc.AccessToken)
				return nil
			})

		response, err := service.ConnectAccount(ctx, validRequest())

		require.NoError(t, err)
		assert.NotEmpty(t, response.ID)
		assert.Equal(t, domain.AccountHealthActive, response.Health)
	})

	t.Run("Reconectar conta existente deve reutilizar o id interno", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		metricRepo := mocks.NewMockMetricRecordRepository(ctrl)
		service := account.NewService(accountRepo, metricRepo)

		accountRepo.EXPECT().GetByExternalID(ctx, domain.PlatformMeta, "ext1").
			Return(&domain.Account{ID: "acc_existente", Platform: domain.PlatformMeta, ExternalID: "ext1"}, nil)
		accountRepo.EXPECT().SaveOrUpdate(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, acc *domain.Account) error {
				assert.Equal(t, "acc_existente", acc.ID)
				return nil
			})

		response, err := service.ConnectAccount(ctx, validRequest())

		require.NoError(t, err)
		assert.Equal(t, "acc_existente", response.ID)
	})

	t.Run("Deve rejeitar requisição sem external_id ou credencial", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		metricRepo := mocks.NewMockMetricRecordRepository(ctrl)
		service := account.NewService(accountRepo, metricRepo)

		request := validRequest()
		request.AccessToken = ""

		_, err := service.ConnectAccount(ctx, request)

		assert.ErrorIs(t, err, account.ErrMissingRequiredData)
	})

	t.Run("Deve rejeitar plataforma não suportada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		metricRepo := mocks.NewMockMetricRecordRepository(ctrl)
		service := account.NewService(accountRepo, metricRepo)

		request := validRequest()
		request.Platform = domain.Platform("orkut")

		_, err := service.ConnectAccount(ctx, request)

		assert.ErrorIs(t, err, account.ErrPlatformUnsupported)
	})
}

func TestGetAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Deve retornar a conta pelo id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		metricRepo := mocks.NewMockMetricRecordRepository(ctrl)
		service := account.NewService(accountRepo, metricRepo)

		accountRepo.EXPECT().GetByID(ctx, "acc1").Return(&domain.Account{ID: "acc1"}, nil)

		result, err := service.GetAccount(ctx, "acc1")

		require.NoError(t, err)
		assert.Equal(t, "acc1", result.ID)
	})

	t.Run("Deve rejeitar id vazio", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		metricRepo := mocks.NewMockMetricRecordRepository(ctrl)
		service := account.NewService(accountRepo, metricRepo)

		_, err := service.GetAccount(ctx, "")

		assert.ErrorIs(t, err, account.ErrAccountIDRequired)
	})

	t.Run("Deve retornar erro de conta não encontrada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		metricRepo := mocks.NewMockMetricRecordRepository(ctrl)
		service := account.NewService(accountRepo, metricRepo)

		accountRepo.EXPECT().GetByID(ctx, "acc_missing").Return(nil, nil)

		_, err := service.GetAccount(ctx, "acc_missing")

		assert.ErrorIs(t, err, account.ErrAccountNotFound)

		var accountErr *account.AccountError
		require.ErrorAs(t, err, &accountErr)
		assert.Equal(t, "acc_missing", accountErr.AccountID)
	})
}

func TestGetAccountMetrics(t *testing.T) {
	ctx := context.Background()
	startDate := time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	t.Run("Deve agregar o sumário e servir as razões armazenadas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		metricRepo := mocks.NewMockMetricRecordRepository(ctrl)
		service := account.NewService(accountRepo, metricRepo)

		accountRepo.EXPECT().GetByID(ctx, "acc1").Return(&domain.Account{ID: "acc1"}, nil)
		metricRepo.EXPECT().GetByDateRange(ctx, "acc1", startDate, endDate).Return([]*domain.MetricRecord{
			{AdID: "a1", Impressions: 1000, Clicks: 50, SpendCents: 10000, Conversions: 4, RevenueCents: 40000, CTR: 5, CPA: 25, ROAS: 4},
			{AdID: "a2", Impressions: 500, Clicks: 10, SpendCents: 2000, Conversions: 1, RevenueCents: 3000},
		}, nil)

		response, err := service.GetAccountMetrics(ctx, "acc1", startDate, endDate)

		require.NoError(t, err)
		assert.Equal(t, "2026-08-18", response.StartDate)
		assert.Equal(t, "2026-08-24", response.EndDate)
		assert.Equal(t, int64(1500), response.Summary.Impressions)
		assert.Equal(t, int64(60), response.Summary.Clicks)
		assert.Equal(t, int64(12000), response.Summary.SpendCents)
		assert.Equal(t, int64(5), response.Summary.Conversions)
		assert.Equal(t, int64(43000), response.Summary.RevenueCents)

		require.Len(t, response.Records, 2)
		assert.Equal(t, 5.0, response.Records[0].CTR)
	})

	t.Run("Deve falhar quando a conta não existe", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		metricRepo := mocks.NewMockMetricRecordRepository(ctrl)
		service := account.NewService(accountRepo, metricRepo)

		accountRepo.EXPECT().GetByID(ctx, "acc_missing").Return(nil, nil)

		_, err := service.GetAccountMetrics(ctx, "acc_missing", startDate, endDate)

		assert.ErrorIs(t, err, account.ErrAccountNotFound)
	})
}
