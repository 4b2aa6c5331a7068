package syncengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adsync-engine/internal/domain"
	"github.com/vfg2006/adsync-engine/internal/syncengine"
	"github.com/vfg2006/adsync-engine/internal/syncengine/mocks"
	"go.uber.org/mock/gomock"
)

type orchestratorFixture struct {
	orchestrator *syncengine.Orchestrator
	accounts     *mocks.MockAccountStore
	campaigns    *mocks.MockCampaignStore
	adGroups     *mocks.MockAdGroupStore
	ads          *mocks.MockAdStore
	metrics      *mocks.MockMetricStore
	adapter      *mocks.MockPlatformAdapter
}

func newOrchestratorFixture(ctrl *gomock.Controller) *orchestratorFixture {
	f := &orchestratorFixture{
		accounts:  mocks.NewMockAccountStore(ctrl),
		campaigns: mocks.NewMockCampaignStore(ctrl),
		adGroups:  mocks.NewMockAdGroupStore(ctrl),
		ads:       mocks.NewMockAdStore(ctrl),
		metrics:   mocks.NewMockMetricStore(ctrl),
		adapter:   mocks.NewMockPlatformAdapter(ctrl),
	}

	guard := syncengine.NewRateLimitGuard(3, 1*time.Millisecond)
	fetcher := syncengine.NewPaginatedFetcher(guard)
	gate := syncengine.NewTokenHealthGate(f.accounts)
	reconciler := syncengine.NewEntityReconciler(f.campaigns, f.adGroups, f.ads, f.metrics)

	f.orchestrator = syncengine.NewOrchestrator(f.accounts, gate, fetcher, reconciler, 7)

	f.adapter.EXPECT().Platform().Return(domain.PlatformMeta).AnyTimes()
	f.orchestrator.RegisterAdapter(f.adapter)

	return f
}

func healthyAccount() *domain.Account {
	return &domain.Account{
		ID:          "acc1",
		Platform:    domain.PlatformMeta,
		ExternalID:  "ext1",
		Name:        "Conta Meta",
		AccessToken: "tok_abc123",
		Health:      domain.AccountHealthActive,
	}
}

func page(records []syncengine.RawRecord, cursor string) *syncengine.Page {
	return &syncengine.Page{Records: records, NextCursor: cursor}
}

func stepByName(report *domain.SyncReport, step domain.SyncStep) *domain.StepResult {
	for i := range report.Steps {
		if report.Steps[i].Step == step {
			return &report.Steps[i]
		}
	}
	return nil
}

func TestSyncAccountFullCycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOrchestratorFixture(ctrl)
	ctx := context.Background()
	account := healthyAccount()

	f.accounts.EXPECT().GetByID(gomock.Any(), "acc1").Return(account, nil)
	f.adapter.EXPECT().NormalizeStatus(gomock.Any()).
		DoAndReturn(func(raw string) domain.CanonicalStatus {
			return domain.CanonicalStatus(raw)
		}).AnyTimes()

	ref := syncengine.AccountRef{ExternalID: "ext1", AccessToken: "tok_abc123"}

	// Campanhas chegam em duas páginas; a paginação deve seguir o cursor
	f.adapter.EXPECT().FetchCampaigns(gomock.Any(), ref, "").Return(page([]syncengine.RawRecord{
		{syncengine.FieldExternalID: "c1", syncengine.FieldName: "Summer Sale", syncengine.FieldStatus: "active"},
	}, "page_1"), nil)
	f.adapter.EXPECT().FetchCampaigns(gomock.Any(), ref, "page_1").Return(page([]syncengine.RawRecord{
		{syncengine.FieldExternalID: "c2", syncengine.FieldName: "Winter Sale", syncengine.FieldStatus: "paused"},
	}, ""), nil)

	campaignIDs := make(map[string]string)
	f.campaigns.EXPECT().UpsertBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, rows []*domain.Campaign) error {
			for _, row := range rows {
				campaignIDs[row.ExternalID] = row.ID
			}
			return nil
		})

	// Grupo g2 referencia uma campanha desconhecida e deve ser pulado
	f.adapter.EXPECT().FetchAdGroups(gomock.Any(), ref, "").Return(page([]syncengine.RawRecord{
		{syncengine.FieldExternalID: "g1", syncengine.FieldParentID: "c1", syncengine.FieldName: "Grupo 1", syncengine.FieldStatus: "active"},
		{syncengine.FieldExternalID: "g2", syncengine.FieldParentID: "c_missing", syncengine.FieldName: "Grupo órfão", syncengine.FieldStatus: "active"},
	}, ""), nil)

	f.campaigns.EXPECT().ExternalIDMap(gomock.Any(), "acc1").
		DoAndReturn(func(ctx context.Context, accountID string) (map[string]string, error) {
			return campaignIDs, nil
		})

	adGroupIDs := make(map[string]string)
	f.adGroups.EXPECT().UpsertBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, rows []*domain.AdGroup) error {
			for _, row := range rows {
				adGroupIDs[row.ExternalID] = row.ID
			}
			return nil
		})

	f.adapter.EXPECT().FetchAds(gomock.Any(), ref, "").Return(page([]syncengine.RawRecord{
		{syncengine.FieldExternalID: "a1", syncengine.FieldParentID: "g1", syncengine.FieldName: "Anúncio 1", syncengine.FieldStatus: "active"},
	}, ""), nil)

	f.adGroups.EXPECT().ExternalIDMap(gomock.Any(), "acc1").
		DoAndReturn(func(ctx context.Context, accountID string) (map[string]string, error) {
			return adGroupIDs, nil
		})

	adIDs := make(map[string]string)
	f.ads.EXPECT().UpsertBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, rows []*domain.Ad) error {
			for _, row := range rows {
				adIDs[row.ExternalID] = row.ID
			}
			return nil
		})

	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	var window syncengine.DateRange
	f.adapter.EXPECT().FetchMetrics(gomock.Any(), ref, gomock.Any(), "").
		DoAndReturn(func(ctx context.Context, r syncengine.AccountRef, w syncengine.DateRange, cursor string) (*syncengine.Page, error) {
			window = w
			return page([]syncengine.RawRecord{
				{
					syncengine.FieldExternalID:  "a1",
					syncengine.FieldDate:        day,
					syncengine.FieldImpressions: int64(1000),
					syncengine.FieldClicks:      int64(50),
				},
			}, ""), nil
		})

	f.ads.EXPECT().ExternalIDMap(gomock.Any(), "acc1").
		DoAndReturn(func(ctx context.Context, accountID string) (map[string]string, error) {
			return adIDs, nil
		})

	var savedMetrics []*domain.MetricRecord
	f.metrics.EXPECT().UpsertBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, rows []*domain.MetricRecord) error {
			savedMetrics = rows
			return nil
		})

	f.accounts.EXPECT().TouchLastSync(gomock.Any(), "acc1", gomock.Any()).Return(nil)

	report, err := f.orchestrator.SyncAccount(ctx, "acc1")

	require.NoError(t, err)
	assert.Equal(t, domain.SyncStateDone, report.FinalState)
	assert.Empty(t, report.AbortReason)
	assert.Len(t, report.Steps, 5)

	assert.Equal(t, 2, stepByName(report, domain.SyncStepCampaigns).Synced)
	assert.Equal(t, 1, stepByName(report, domain.SyncStepAdGroups).Synced)
	assert.Equal(t, 1, stepByName(report, domain.SyncStepAdGroups).Skipped)
	assert.Equal(t, 1, stepByName(report, domain.SyncStepAds).Synced)
	assert.Equal(t, 1, stepByName(report, domain.SyncStepMetrics).Synced)

	// A métrica referencia o id interno do anúncio resolvido pelo external_id
	require.Len(t, savedMetrics, 1)
	assert.Equal(t, adIDs["a1"], savedMetrics[0].AdID)

	// A janela de métricas termina ontem e cobre o lookback configurado
	assert.Equal(t, window.Since.AddDate(0, 0, 6), window.Until)
}

func TestSyncAccountPreflightInvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOrchestratorFixture(ctrl)

	account := healthyAccount()
	account.AccessToken = ""

	f.accounts.EXPECT().GetByID(gomock.Any(), "acc1").Return(account, nil)

	// Nenhuma chamada de rede deve acontecer: as expectativas dos fetches
	// não são registradas e qualquer chamada falharia o teste
	f.accounts.EXPECT().MarkHealth(gomock.Any(), "acc1", domain.AccountHealthTokenInvalid).Return(nil)

	report, err := f.orchestrator.SyncAccount(context.Background(), "acc1")

	require.NoError(t, err)
	assert.Equal(t, domain.SyncStateAborted, report.FinalState)
	assert.Equal(t, domain.AbortReasonInvalidCredentials, report.AbortReason)

	require.Len(t, report.Steps, 1)
	assert.Equal(t, domain.SyncStepTokenCheck, report.Steps[0].Step)
	assert.Equal(t, domain.StepStatusFailed, report.Steps[0].Status)
}

func TestSyncAccountTokenExpiredMidCycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOrchestratorFixture(ctrl)
	account := healthyAccount()
	ref := syncengine.AccountRef{ExternalID: "ext1", AccessToken: "tok_abc123"}

	f.accounts.EXPECT().GetByID(gomock.Any(), "acc1").Return(account, nil)
	f.adapter.EXPECT().NormalizeStatus(gomock.Any()).Return(domain.StatusActive).AnyTimes()

	f.adapter.EXPECT().FetchCampaigns(gomock.Any(), ref, "").Return(page([]syncengine.RawRecord{
		{syncengine.FieldExternalID: "c1", syncengine.FieldName: "Summer Sale", syncengine.FieldStatus: "ACTIVE"},
	}, ""), nil)
	f.campaigns.EXPECT().UpsertBatch(gomock.Any(), gomock.Any()).Return(nil)

	// O token expira na etapa de grupos; anúncios e métricas nunca são buscados
	f.adapter.EXPECT().FetchAdGroups(gomock.Any(), ref, "").
		Return(nil, syncengine.NewTokenExpiredError("190", "token expired"))

	f.accounts.EXPECT().MarkHealth(gomock.Any(), "acc1", domain.AccountHealthTokenExpired).Return(nil)

	// O progresso parcial das campanhas mantém a conta visível para o
	// próximo ciclo
	f.accounts.EXPECT().TouchLastSync(gomock.Any(), "acc1", gomock.Any()).Return(nil)

	report, err := f.orchestrator.SyncAccount(context.Background(), "acc1")

	require.NoError(t, err)
	assert.Equal(t, domain.SyncStateAborted, report.FinalState)
	assert.Equal(t, domain.AbortReasonTokenExpired, report.AbortReason)

	assert.Equal(t, domain.StepStatusOK, stepByName(report, domain.SyncStepCampaigns).Status)
	assert.Equal(t, domain.StepStatusFailed, stepByName(report, domain.SyncStepAdGroups).Status)
	assert.Nil(t, stepByName(report, domain.SyncStepAds))
	assert.Nil(t, stepByName(report, domain.SyncStepMetrics))
}

func TestSyncAccountRateLimitExhaustion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOrchestratorFixture(ctrl)
	account := healthyAccount()
	ref := syncengine.AccountRef{ExternalID: "ext1", AccessToken: "tok_abc123"}

	f.accounts.EXPECT().GetByID(gomock.Any(), "acc1").Return(account, nil)

	// Rate limit persistente: exatamente o teto de tentativas, nunca mais
	f.adapter.EXPECT().FetchCampaigns(gomock.Any(), ref, "").
		Return(nil, syncengine.NewRateLimitedError("429", "too many requests", 0)).
		Times(3)

	f.accounts.EXPECT().TouchLastSync(gomock.Any(), "acc1", gomock.Any()).Return(nil)

	report, err := f.orchestrator.SyncAccount(context.Background(), "acc1")

	require.NoError(t, err)
	assert.Equal(t, domain.SyncStateTokenChecked, report.FinalState)
	assert.Empty(t, report.AbortReason)

	failed := stepByName(report, domain.SyncStepCampaigns)
	require.NotNil(t, failed)
	assert.Equal(t, domain.StepStatusFailed, failed.Status)
	assert.NotEmpty(t, failed.Error)
}

func TestSyncAccountNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOrchestratorFixture(ctrl)

	f.accounts.EXPECT().GetByID(gomock.Any(), "acc_missing").Return(nil, nil)

	report, err := f.orchestrator.SyncAccount(context.Background(), "acc_missing")

	assert.Nil(t, report)
	assert.Error(t, err)
}

func TestSyncAccountAdapterNotRegistered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOrchestratorFixture(ctrl)

	account := healthyAccount()
	account.Platform = domain.PlatformLinkedIn

	f.accounts.EXPECT().GetByID(gomock.Any(), "acc1").Return(account, nil)

	report, err := f.orchestrator.SyncAccount(context.Background(), "acc1")

	assert.Nil(t, report)
	assert.True(t, errors.Is(err, syncengine.ErrAdapterNotRegistered))
}

func TestSyncAccountInFlightDedup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOrchestratorFixture(ctrl)
	account := healthyAccount()
	ref := syncengine.AccountRef{ExternalID: "ext1", AccessToken: "tok_abc123"}

	f.accounts.EXPECT().GetByID(gomock.Any(), "acc1").Return(account, nil)

	started := make(chan struct{})
	release := make(chan struct{})

	f.adapter.EXPECT().FetchCampaigns(gomock.Any(), ref, "").
		DoAndReturn(func(ctx context.Context, r syncengine.AccountRef, cursor string) (*syncengine.Page, error) {
			close(started)
			<-release
			return nil, syncengine.NewOtherAPIError("", "cycle interrupted")
		})

	f.accounts.EXPECT().TouchLastSync(gomock.Any(), "acc1", gomock.Any()).Return(nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = f.orchestrator.SyncAccount(context.Background(), "acc1")
	}()

	<-started

	// O segundo ciclo da mesma conta deve ser rejeitado sem tocar a conta
	report, err := f.orchestrator.SyncAccount(context.Background(), "acc1")

	assert.Nil(t, report)
	assert.True(t, errors.Is(err, syncengine.ErrSyncInProgress))

	close(release)
	<-done
}
