package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-engine/infrastructure/repository"
	"github.com/vfg2006/adsync-engine/internal/config"
	"github.com/vfg2006/adsync-engine/internal/domain"
)

// AccountSyncer executa o ciclo de sync de uma conta e devolve o relatório
type AccountSyncer interface {
	SyncAccount(ctx context.Context, accountID string) (*domain.SyncReport, error)
}

// AccountSyncConfig representa a configuração do agendador de sync de contas
type AccountSyncConfig struct {
	CronSchedule      string
	LookbackDays      int
	MaxConcurrentJobs int
	SyncEnabled       bool
}

// AccountSyncService gerencia o agendamento e a execução da sincronização
// das contas conectadas. As contas são independentes entre si, então o
// dispatcher as processa em paralelo até o limite configurado; a ordem das
// etapas dentro de cada conta é responsabilidade do orquestrador.
type AccountSyncService struct {
	scheduler   *gocron.Scheduler
	config      AccountSyncConfig
	accountRepo repository.AccountRepository
	syncer      AccountSyncer

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time

	// Último relatório por conta, para consulta pela API
	reportsMutex sync.RWMutex
	lastReports  map[string]*domain.SyncReport
}

// NewAccountSyncService cria uma nova instância do serviço de sincronização de contas
func NewAccountSyncService(
	accountRepo repository.AccountRepository,
	syncer AccountSyncer,
	appConfig *config.Config,
) *AccountSyncService {
	syncConfig := AccountSyncConfig{
		CronSchedule:      appConfig.AccountSync.CronSchedule,
		LookbackDays:      appConfig.AccountSync.LookbackDays,
		MaxConcurrentJobs: appConfig.AccountSync.MaxConcurrentJobs,
		SyncEnabled:       appConfig.AccountSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"lookback_days":       syncConfig.LookbackDays,
		"max_concurrent_jobs": syncConfig.MaxConcurrentJobs,
		"sync_enabled":        syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sync de contas carregada")

	return &AccountSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		accountRepo: accountRepo,
		syncer:      syncer,
		syncRunning: false,
		lastReports: make(map[string]*domain.SyncReport),
	}
}

// Start inicia o agendador
func (s *AccountSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de contas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de contas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllAccounts()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de contas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de contas")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllAccounts sincroniza todas as contas com credencial saudável
func (s *AccountSyncService) syncAllAccounts() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de contas já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização de todas as contas saudáveis")

	accounts, err := s.getSyncableAccounts()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar lista de contas para sincronização")
		return
	}

	if len(accounts) == 0 {
		logrus.Info("Nenhuma conta saudável encontrada para sincronização")
		return
	}

	s.processAccounts(accounts)

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"accounts": len(accounts),
	}).Info("Sincronização de contas concluída")

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()
}

// getSyncableAccounts busca as contas elegíveis para o ciclo automático.
// Contas com token inválido ou expirado ficam fora até a reautorização.
func (s *AccountSyncService) getSyncableAccounts() ([]*domain.Account, error) {
	accounts, err := s.accountRepo.ListByHealth(context.Background(), []domain.AccountHealth{domain.AccountHealthActive})
	if err != nil {
		return nil, err
	}

	if len(accounts) == 0 {
		return []*domain.Account{}, nil
	}

	logrus.WithFields(logrus.Fields{
		"syncable_accounts": len(accounts),
	}).Info("Contas encontradas para sincronização")

	return accounts, nil
}

// processAccounts dispara o sync das contas em paralelo, limitado pelo
// semáforo de jobs concorrentes
func (s *AccountSyncService) processAccounts(accounts []*domain.Account) {
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup

	for _, account := range accounts {
		if account.ExternalID == "" {
			logrus.WithField("account_id", account.ID).Warn("Conta sem external_id. Pulando.")
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{} // Adquirir semáforo

		go func(acc *domain.Account) {
			defer func() {
				<-semaphore // Liberar semáforo
				wg.Done()
			}()

			s.syncAccount(acc)
		}(account)
	}

	wg.Wait()
}

// syncAccount executa o ciclo de uma conta e guarda o relatório
func (s *AccountSyncService) syncAccount(account *domain.Account) {
	logrus.WithFields(logrus.Fields{
		"account_id":   account.ID,
		"platform":     account.Platform,
		"account_name": account.Name,
	}).Info("Processando sincronização da conta")

	report, err := s.syncer.SyncAccount(context.Background(), account.ID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": account.ID,
			"platform":   account.Platform,
			"error":      err.Error(),
		}).Error("Erro ao sincronizar a conta")
		return
	}

	s.storeReport(report)
}

func (s *AccountSyncService) storeReport(report *domain.SyncReport) {
	if report == nil {
		return
	}

	s.reportsMutex.Lock()
	defer s.reportsMutex.Unlock()

	s.lastReports[report.AccountID] = report
}

// LastReport devolve o último relatório de sync de uma conta, se houver
func (s *AccountSyncService) LastReport(accountID string) *domain.SyncReport {
	s.reportsMutex.RLock()
	defer s.reportsMutex.RUnlock()

	return s.lastReports[accountID]
}

// TriggerManualSync inicia manualmente uma sincronização de todas as contas
func (s *AccountSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de contas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de contas")
	go s.syncAllAccounts()
}

// TriggerAccountSync executa o ciclo de uma única conta de forma síncrona
// e devolve o relatório
func (s *AccountSyncService) TriggerAccountSync(ctx context.Context, accountID string) (*domain.SyncReport, error) {
	report, err := s.syncer.SyncAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	s.storeReport(report)

	return report, nil
}

// GetStatus retorna o status atual do agendador
func (s *AccountSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	running := s.syncRunning
	startedAt := s.lastSyncStartedAt
	completedAt := s.lastSyncCompletedAt
	s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_running":           running,
		"last_sync_started_at":   startedAt,
		"last_sync_completed_at": completedAt,
	}
}
