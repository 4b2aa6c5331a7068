package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/adsync-engine/infrastructure/integrator/googleads"
	"github.com/vfg2006/adsync-engine/infrastructure/integrator/linkedin"
	"github.com/vfg2006/adsync-engine/infrastructure/integrator/meta"
	"github.com/vfg2006/adsync-engine/infrastructure/integrator/pinterest"
	"github.com/vfg2006/adsync-engine/infrastructure/integrator/snapchat"
	"github.com/vfg2006/adsync-engine/infrastructure/integrator/tiktok"
	"github.com/vfg2006/adsync-engine/infrastructure/repository"
	"github.com/vfg2006/adsync-engine/internal/api"
	"github.com/vfg2006/adsync-engine/internal/config"
	"github.com/vfg2006/adsync-engine/internal/scheduler"
	"github.com/vfg2006/adsync-engine/internal/syncengine"
	"github.com/vfg2006/adsync-engine/internal/usecases/account"
	"github.com/vfg2006/adsync-engine/internal/usecases/authenticating"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	accountRepo := repository.NewAccountRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	adGroupRepo := repository.NewAdGroupRepository(pgConn)
	adRepo := repository.NewAdRepository(pgConn)
	metricRepo := repository.NewMetricRecordRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)
	accountService := account.NewService(accountRepo, metricRepo)

	// Monta o motor de sincronização: guard de rate limit, paginação,
	// verificação de credencial e reconciliação do grafo de entidades
	guard := syncengine.NewRateLimitGuard(
		cfg.SyncRetry.MaxAttempts,
		time.Duration(cfg.SyncRetry.InitialDelaySeconds)*time.Second,
	)
	fetcher := syncengine.NewPaginatedFetcher(guard)
	gate := syncengine.NewTokenHealthGate(accountRepo)
	reconciler := syncengine.NewEntityReconciler(campaignRepo, adGroupRepo, adRepo, metricRepo)

	orchestrator := syncengine.NewOrchestrator(
		accountRepo,
		gate,
		fetcher,
		reconciler,
		cfg.AccountSync.LookbackDays,
	)

	// Registra os adapters das plataformas suportadas
	orchestrator.RegisterAdapter(meta.NewAdapter(cfg.Meta))
	orchestrator.RegisterAdapter(googleads.NewAdapter(cfg.GoogleAds))
	orchestrator.RegisterAdapter(tiktok.NewAdapter(cfg.TikTok))
	orchestrator.RegisterAdapter(linkedin.NewAdapter(cfg.LinkedIn))
	orchestrator.RegisterAdapter(pinterest.NewAdapter(cfg.Pinterest))
	orchestrator.RegisterAdapter(snapchat.NewAdapter(cfg.Snapchat))

	accountSyncService := scheduler.NewAccountSyncService(accountRepo, orchestrator, cfg)
	metricsRetentionService := scheduler.NewMetricsRetentionService(metricRepo, cfg)

	// Inicia os agendadores em background
	if err := accountSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de contas")
	} else {
		logrus.Info("Agendador de sincronização de contas iniciado com sucesso")
	}

	if err := metricsRetentionService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de métricas")
	} else {
		logrus.Info("Agendador de limpeza de métricas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		accountService,
		authenticator,
		accountSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
