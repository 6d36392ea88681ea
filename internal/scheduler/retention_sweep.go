package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/clinsight/clinic-insights-api/infrastructure/repository"
	"github.com/clinsight/clinic-insights-api/internal/config"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// RetentionSweepConfig representa a configuração da varredura de retenção
type RetentionSweepConfig struct {
	CronSchedule  string
	RetentionDays int
	SweepEnabled  bool
}

// RetentionSweepService remove fatos e lotes além da janela de retenção.
// Fatos nunca são editados nem removidos individualmente: a varredura opera
// apenas por idade de lote.
type RetentionSweepService struct {
	scheduler      *gocron.Scheduler
	config         RetentionSweepConfig
	factRepo       repository.FactRepository
	batchRepo      repository.UploadBatchRepository
	sweepRunning   bool
	sweepMutex     sync.Mutex
	lastSweepRunAt time.Time
}

// NewRetentionSweepService cria uma nova instância do serviço de retenção
func NewRetentionSweepService(
	factRepo repository.FactRepository,
	batchRepo repository.UploadBatchRepository,
	appConfig *config.Config,
) *RetentionSweepService {
	sweepConfig := RetentionSweepConfig{
		CronSchedule:  appConfig.RetentionSweep.CronSchedule,
		RetentionDays: appConfig.RetentionSweep.RetentionDays,
		SweepEnabled:  appConfig.RetentionSweep.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  sweepConfig.CronSchedule,
		"retention_days": sweepConfig.RetentionDays,
		"sweep_enabled":  sweepConfig.SweepEnabled,
	}).Info("Configuração da varredura de retenção carregada")

	return &RetentionSweepService{
		scheduler: scheduler,
		config:    sweepConfig,
		factRepo:  factRepo,
		batchRepo: batchRepo,
	}
}

// Start inicia o agendador
func (s *RetentionSweepService) Start(ctx context.Context) error {
	if !s.config.SweepEnabled {
		logrus.Info("Varredura de retenção desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador da varredura de retenção")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.Sweep()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar varredura de retenção: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador da varredura de retenção")
		s.scheduler.Stop()
	}()

	return nil
}

// Sweep executa a varredura imediatamente
func (s *RetentionSweepService) Sweep() {
	s.sweepMutex.Lock()
	if s.sweepRunning {
		s.sweepMutex.Unlock()
		logrus.Info("Varredura de retenção já em andamento, ignorando")
		return
	}
	s.sweepRunning = true
	s.sweepMutex.Unlock()

	defer func() {
		s.sweepMutex.Lock()
		s.sweepRunning = false
		s.sweepMutex.Unlock()
	}()

	logrus.WithField("retention_days", s.config.RetentionDays).Info("Iniciando varredura de retenção")

	factsRemoved, err := s.factRepo.DeleteOlderThan(s.config.RetentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover fatos antigos na varredura de retenção")
		return
	}

	batchesRemoved, err := s.batchRepo.DeleteOlderThan(s.config.RetentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover lotes antigos na varredura de retenção")
		return
	}

	s.lastSweepRunAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"facts_removed":   factsRemoved,
		"batches_removed": batchesRemoved,
	}).Info("Varredura de retenção concluída")
}

// GetStatus retorna o status atual do agendador
func (s *RetentionSweepService) GetStatus() map[string]any {
	return map[string]any{
		"sweep_enabled":     s.config.SweepEnabled,
		"sweep_cron":        s.config.CronSchedule,
		"retention_days":    s.config.RetentionDays,
		"last_sweep_run_at": s.lastSweepRunAt,
	}
}
