package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-engine/infrastructure/repository"
	"github.com/vfg2006/adsync-engine/internal/config"
)

// retentionCronSchedule roda a limpeza diariamente às 4h, depois da janela
// normal de sincronização
const retentionCronSchedule = "0 4 * * *"

// MetricsRetentionService remove métricas diárias mais antigas que a janela
// de retenção configurada. A limpeza é independente do ciclo de sync: métricas
// antigas não participam de nenhuma reconciliação.
type MetricsRetentionService struct {
	scheduler     *gocron.Scheduler
	metricRepo    repository.MetricRecordRepository
	retentionDays int
	enabled       bool
}

// NewMetricsRetentionService cria o serviço de retenção de métricas
func NewMetricsRetentionService(
	metricRepo repository.MetricRecordRepository,
	appConfig *config.Config,
) *MetricsRetentionService {
	return &MetricsRetentionService{
		scheduler:     gocron.NewScheduler(time.Local),
		metricRepo:    metricRepo,
		retentionDays: appConfig.AccountSync.RetentionDays,
		enabled:       appConfig.AccountSync.Enabled,
	}
}

// Start inicia o agendador de limpeza
func (s *MetricsRetentionService) Start(ctx context.Context) error {
	if !s.enabled || s.retentionDays <= 0 {
		logrus.Info("Limpeza de métricas antigas desabilitada por configuração")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"cron":           retentionCronSchedule,
		"retention_days": s.retentionDays,
	}).Info("Iniciando agendador de limpeza de métricas antigas")

	_, err := s.scheduler.Cron(retentionCronSchedule).Do(func() {
		s.cleanup()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de métricas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza de métricas")
		s.scheduler.Stop()
	}()

	return nil
}

// cleanup remove as métricas fora da janela de retenção
func (s *MetricsRetentionService) cleanup() {
	startTime := time.Now()

	removed, err := s.metricRepo.DeleteOlderThan(context.Background(), s.retentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover métricas antigas")
		return
	}

	logrus.WithFields(logrus.Fields{
		"removed":        removed,
		"retention_days": s.retentionDays,
		"duration":       time.Since(startTime).String(),
	}).Info("Limpeza de métricas antigas concluída")
}
