package syncengine

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-engine/internal/domain"
	"github.com/vfg2006/adsync-engine/pkg/utils"
)

// Orchestrator sequencia um ciclo completo de sync de uma conta:
// campanhas -> grupos de anúncio -> anúncios -> métricas. Cada etapa
// alimenta o conjunto de lookup da seguinte, então a ordem é obrigatória
// dentro de uma conta; entre contas não há ordem nenhuma.
type Orchestrator struct {
	accounts     AccountStore
	gate         *TokenHealthGate
	fetcher      *PaginatedFetcher
	reconciler   *EntityReconciler
	adapters     map[domain.Platform]PlatformAdapter
	lookbackDays int

	now func() time.Time

	// No máximo um ciclo em andamento por conta: dois reconciliadores
	// concorrentes disputariam a mesma chave (pai, external_id)
	inFlightMutex sync.Mutex
	inFlight      map[string]struct{}
}

func NewOrchestrator(
	accounts AccountStore,
	gate *TokenHealthGate,
	fetcher *PaginatedFetcher,
	reconciler *EntityReconciler,
	lookbackDays int,
) *Orchestrator {
	if lookbackDays <= 0 {
		lookbackDays = 7
	}

	return &Orchestrator{
		accounts:     accounts,
		gate:         gate,
		fetcher:      fetcher,
		reconciler:   reconciler,
		adapters:     make(map[domain.Platform]PlatformAdapter),
		lookbackDays: lookbackDays,
		now:          time.Now,
		inFlight:     make(map[string]struct{}),
	}
}

// RegisterAdapter registra o adapter de uma plataforma no orquestrador
func (o *Orchestrator) RegisterAdapter(adapter PlatformAdapter) {
	o.adapters[adapter.Platform()] = adapter
}

// SyncAccount executa um ciclo completo de sync para a conta e devolve o
// relatório estruturado. Falhas de etapa nunca viram panic: tudo é
// convertido em StepResult para o dispatcher continuar com as outras contas.
func (o *Orchestrator) SyncAccount(ctx context.Context, accountID string) (*domain.SyncReport, error) {
	if !o.acquire(accountID) {
		return nil, ErrSyncInProgress
	}
	defer o.release(accountID)

	account, err := o.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load account")
	}

	if account == nil {
		return nil, errors.Errorf("account not found: %s", accountID)
	}

	adapter, ok := o.adapters[account.Platform]
	if !ok {
		return nil, errors.Wrapf(ErrAdapterNotRegistered, "platform %s", account.Platform)
	}

	report := &domain.SyncReport{
		AccountID:  account.ID,
		Platform:   account.Platform,
		StartedAt:  o.now(),
		FinalState: domain.SyncStateIdle,
	}

	logrus.WithFields(logrus.Fields{
		"account_id":  account.ID,
		"platform":    account.Platform,
		"external_id": account.ExternalID,
	}).Info("Iniciando ciclo de sync da conta")

	o.runCycle(ctx, account, adapter, report)

	// Bookkeeping terminal: progresso parcial ou falha não-token deixam a
	// conta visível e retentável no próximo ciclo agendado, nunca
	// silenciosamente esquecida
	if report.FinalState != domain.SyncStateAborted || report.HasProgress() {
		if err := o.accounts.TouchLastSync(ctx, account.ID, o.now()); err != nil {
			logrus.WithError(err).WithField("account_id", account.ID).
				Error("Erro ao atualizar last_sync_at da conta")
		}
	}

	report.FinishedAt = o.now()

	logrus.WithFields(logrus.Fields{
		"account_id":  account.ID,
		"final_state": report.FinalState,
		"synced":      report.TotalSynced(),
		"skipped":     report.TotalSkipped(),
	}).Info("Ciclo de sync da conta finalizado")

	return report, nil
}

// runCycle percorre a máquina de estados do ciclo. A primeira falha
// interrompe o avanço; condições de token abortam com atualização de saúde.
func (o *Orchestrator) runCycle(
	ctx context.Context,
	account *domain.Account,
	adapter PlatformAdapter,
	report *domain.SyncReport,
) {
	// Pre-flight: nenhuma chamada de rede acontece com credencial vazia
	if err := o.gate.Preflight(account); err != nil {
		if gateErr := o.gate.OnInvalidCredentials(ctx, account); gateErr != nil {
			logrus.WithError(gateErr).WithField("account_id", account.ID).
				Error("Erro ao marcar saúde da conta")
		}

		report.AddStep(domain.StepResult{
			Step:   domain.SyncStepTokenCheck,
			Status: domain.StepStatusFailed,
			Error:  err.Error(),
		})
		report.FinalState = domain.SyncStateAborted
		report.AbortReason = domain.AbortReasonInvalidCredentials
		return
	}

	report.AddStep(domain.StepResult{
		Step:   domain.SyncStepTokenCheck,
		Status: domain.StepStatusOK,
	})
	report.FinalState = domain.SyncStateTokenChecked

	ref := AccountRef{
		ExternalID:  account.ExternalID,
		AccessToken: account.AccessToken,
	}
	normalize := adapter.NormalizeStatus
	window := o.metricsWindow()

	steps := []struct {
		step  domain.SyncStep
		state domain.SyncState
		run   func(ctx context.Context) (Result, error)
	}{
		{
			step:  domain.SyncStepCampaigns,
			state: domain.SyncStateCampaignsSynced,
			run: func(ctx context.Context) (Result, error) {
				records, err := o.fetcher.FetchAll(ctx, func(ctx context.Context, cursor string) (*Page, error) {
					return adapter.FetchCampaigns(ctx, ref, cursor)
				})
				if err != nil {
					return Result{}, err
				}
				return o.reconciler.ReconcileCampaigns(ctx, account, records, normalize)
			},
		},
		{
			step:  domain.SyncStepAdGroups,
			state: domain.SyncStateAdGroupsSynced,
			run: func(ctx context.Context) (Result, error) {
				records, err := o.fetcher.FetchAll(ctx, func(ctx context.Context, cursor string) (*Page, error) {
					return adapter.FetchAdGroups(ctx, ref, cursor)
				})
				if err != nil {
					return Result{}, err
				}
				return o.reconciler.ReconcileAdGroups(ctx, account, records, normalize)
			},
		},
		{
			step:  domain.SyncStepAds,
			state: domain.SyncStateAdsSynced,
			run: func(ctx context.Context) (Result, error) {
				records, err := o.fetcher.FetchAll(ctx, func(ctx context.Context, cursor string) (*Page, error) {
					return adapter.FetchAds(ctx, ref, cursor)
				})
				if err != nil {
					return Result{}, err
				}
				return o.reconciler.ReconcileAds(ctx, account, records, normalize)
			},
		},
		{
			step:  domain.SyncStepMetrics,
			state: domain.SyncStateMetricsSynced,
			run: func(ctx context.Context) (Result, error) {
				records, err := o.fetcher.FetchAll(ctx, func(ctx context.Context, cursor string) (*Page, error) {
					return adapter.FetchMetrics(ctx, ref, window, cursor)
				})
				if err != nil {
					return Result{}, err
				}
				return o.reconciler.ReconcileMetrics(ctx, account, records)
			},
		},
	}

	for _, s := range steps {
		result, err := s.run(ctx)
		if err != nil {
			o.recordStepFailure(ctx, account, report, s.step, err)
			return
		}

		report.AddStep(domain.StepResult{
			Step:    s.step,
			Status:  domain.StepStatusOK,
			Synced:  result.Synced,
			Skipped: result.Skipped,
		})
		report.FinalState = s.state

		logrus.WithFields(logrus.Fields{
			"account_id": account.ID,
			"step":       s.step,
			"synced":     result.Synced,
			"skipped":    result.Skipped,
		}).Info("Etapa de sync concluída")
	}

	report.FinalState = domain.SyncStateDone
}

// recordStepFailure converte a falha da etapa em StepResult e decide se o
// ciclo aborta (token expirado) ou apenas para de avançar
func (o *Orchestrator) recordStepFailure(
	ctx context.Context,
	account *domain.Account,
	report *domain.SyncReport,
	step domain.SyncStep,
	err error,
) {
	result := domain.StepResult{
		Step:   step,
		Status: domain.StepStatusFailed,
		Error:  err.Error(),
	}

	if apiErr, ok := AsAPIError(err); ok && apiErr.Kind == ErrorKindRateLimited {
		result.RetryAfterSeconds = int(apiErr.RetryAfter / time.Second)
	}

	report.AddStep(result)

	if IsTokenExpired(err) {
		// Aborta as etapas restantes; o progresso já persistido das etapas
		// anteriores do mesmo ciclo é mantido
		if gateErr := o.gate.OnTokenExpired(ctx, account); gateErr != nil {
			logrus.WithError(gateErr).WithField("account_id", account.ID).
				Error("Erro ao marcar saúde da conta")
		}

		report.FinalState = domain.SyncStateAborted
		report.AbortReason = domain.AbortReasonTokenExpired
		return
	}

	logrus.WithError(err).WithFields(logrus.Fields{
		"account_id": account.ID,
		"step":       step,
	}).Error("Etapa de sync falhou, etapas seguintes não serão executadas")
}

// metricsWindow calcula a janela de métricas do ciclo: de ontem para trás,
// conforme o lookback configurado
func (o *Orchestrator) metricsWindow() DateRange {
	today := utils.TruncateToDay(o.now())

	return DateRange{
		Since: today.AddDate(0, 0, -o.lookbackDays),
		Until: today.AddDate(0, 0, -1),
	}
}

func (o *Orchestrator) acquire(accountID string) bool {
	o.inFlightMutex.Lock()
	defer o.inFlightMutex.Unlock()

	if _, running := o.inFlight[accountID]; running {
		return false
	}

	o.inFlight[accountID] = struct{}{}
	return true
}

func (o *Orchestrator) release(accountID string) {
	o.inFlightMutex.Lock()
	defer o.inFlightMutex.Unlock()

	delete(o.inFlight, accountID)
}
