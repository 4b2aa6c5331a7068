package account

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-engine/infrastructure/repository"
	"github.com/vfg2006/adsync-engine/internal/domain"
	"github.com/vfg2006/adsync-engine/pkg/apiErrors"
	"github.com/vfg2006/adsync-engine/pkg/utils"
)

type AccountService interface {
	ListAccounts(ctx context.Context, health []domain.AccountHealth) ([]*domain.AccountResponse, error)
	ConnectAccount(ctx context.Context, request *domain.ConnectAccountRequest) (*domain.AccountResponse, error)
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountMetrics(ctx context.Context, accountID string, startDate, endDate time.Time) (*domain.AccountMetricsResponse, error)
}

type Service struct {
	accountRepository repository.AccountRepository
	metricRepository  repository.MetricRecordRepository
}

func NewService(
	accountRepository repository.AccountRepository,
	metricRepository repository.MetricRecordRepository,
) AccountService {
	return &Service{
		accountRepository: accountRepository,
		metricRepository:  metricRepository,
	}
}

var supportedPlatforms = map[domain.Platform]struct{}{
	domain.PlatformMeta:      {},
	domain.PlatformGoogleAds: {},
	domain.PlatformTikTok:    {},
	domain.PlatformLinkedIn:  {},
	domain.PlatformPinterest: {},
	domain.PlatformSnapchat:  {},
}

func (s *Service) ListAccounts(ctx context.Context, health []domain.AccountHealth) ([]*domain.AccountResponse, error) {
	accounts, err := s.accountRepository.ListByHealth(ctx, health)
	if err != nil {
		return nil, NewAccountError(ErrFetchAccounts, apiErrors.ErrDatabaseOperation, "Falha ao listar contas no banco de dados")
	}

	// Transforma os accounts para o formato de resposta da API
	accountsResponse := make([]*domain.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		accountsResponse = append(accountsResponse, account.ToResponse())
	}

	return accountsResponse, nil
}

// ConnectAccount conecta uma conta de anúncios externa. A conexão é
// idempotente: reconectar uma conta já existente atualiza nome, credencial
// e saúde em vez de duplicar.
func (s *Service) ConnectAccount(ctx context.Context, request *domain.ConnectAccountRequest) (*domain.AccountResponse, error) {
	if request.ExternalID == "" || request.AccessToken == "" {
		return nil, NewAccountError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "external_id e access_token são obrigatórios")
	}

	if _, ok := supportedPlatforms[request.Platform]; !ok {
		return nil, NewAccountError(ErrPlatformUnsupported, apiErrors.ErrPlatformUnsupported, "Plataforma não suportada")
	}

	account := &domain.Account{
		UserID:      request.UserID,
		Platform:    request.Platform,
		ExternalID:  request.ExternalID,
		Name:        request.Name,
		AccessToken: request.AccessToken,
		Health:      domain.AccountHealthActive,
	}

	existing, err := s.accountRepository.GetByExternalID(ctx, request.Platform, request.ExternalID)
	if err != nil {
		return nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar conta no banco de dados")
	}

	if existing != nil {
		account.ID = existing.ID
	} else {
		accountID, err := utils.GenerateID()
		if err != nil {
			return nil, NewAccountError(ErrGenerateID, apiErrors.ErrInternalServer, "Falha ao gerar identificador único para conta")
		}
		account.ID = accountID
	}

	if err := s.accountRepository.SaveOrUpdate(ctx, account); err != nil {
		logrus.Error("Error saving account on the repository:", err)
		return nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar conta")
	}

	logrus.WithFields(logrus.Fields{
		"account_id":  account.ID,
		"platform":    account.Platform,
		"external_id": account.ExternalID,
	}).Info("Conta de anúncios conectada")

	return account.ToResponse(), nil
}

func (s *Service) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	if accountID == "" {
		return nil, ErrAccountIDRequired
	}

	account, err := s.accountRepository.GetByID(ctx, accountID)
	if err != nil {
		logrus.Error("Error getting account by id on the repository:", err)
		return nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao buscar conta no banco de dados")
	}

	if account == nil {
		return nil, NewAccountErrorWithID(ErrAccountNotFound, apiErrors.ErrAccountNotFound, accountID, "Conta não encontrada")
	}

	return account, nil
}

// GetAccountMetrics consulta as métricas diárias persistidas da conta no
// período informado. Os valores derivados (CTR, CPA, ROAS) são servidos como
// foram armazenados, sem recalcular.
func (s *Service) GetAccountMetrics(ctx context.Context, accountID string, startDate, endDate time.Time) (*domain.AccountMetricsResponse, error) {
	if _, err := s.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}

	records, err := s.metricRepository.GetByDateRange(ctx, accountID, startDate, endDate)
	if err != nil {
		return nil, NewAccountErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, accountID, "Erro ao consultar métricas no banco de dados")
	}

	summary := domain.MetricsSummary{}
	for _, record := range records {
		summary.Impressions += record.Impressions
		summary.Clicks += record.Clicks
		summary.SpendCents += record.SpendCents
		summary.Conversions += record.Conversions
		summary.RevenueCents += record.RevenueCents
	}

	return &domain.AccountMetricsResponse{
		AccountID: accountID,
		StartDate: startDate.Format("2006-01-02"),
		EndDate:   endDate.Format("2006-01-02"),
		Summary:   summary,
		Records:   records,
	}, nil
}
