package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/clinsight/clinic-insights-api/infrastructure/integrator/crm"
	"github.com/clinsight/clinic-insights-api/infrastructure/repository"
	"github.com/clinsight/clinic-insights-api/internal/config"
	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/clinsight/clinic-insights-api/pkg/utils"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// CRMSyncConfig representa a configuração do agendador de sincronização do CRM
type CRMSyncConfig struct {
	CronSchedule        string
	LookbackDays        int
	RequestDelaySeconds int
	SyncEnabled         bool
}

// CRMSyncService gerencia o agendamento e execução da sincronização de
// agendamentos do CRM para o repositório de fatos
type CRMSyncService struct {
	scheduler           *gocron.Scheduler
	config              CRMSyncConfig
	clinicRepo          repository.ClinicRepository
	factRepo            repository.FactRepository
	crmService          crm.CRMIntegrator
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewCRMSyncService cria uma nova instância do serviço de sincronização do CRM
func NewCRMSyncService(
	clinicRepo repository.ClinicRepository,
	factRepo repository.FactRepository,
	crmService crm.CRMIntegrator,
	appConfig *config.Config,
) *CRMSyncService {
	syncConfig := CRMSyncConfig{
		CronSchedule:        appConfig.CRMSync.CronSchedule,
		LookbackDays:        appConfig.CRMSync.LookbackDays,
		RequestDelaySeconds: appConfig.CRMSync.RequestDelaySeconds,
		SyncEnabled:         appConfig.CRMSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"lookback_days":         syncConfig.LookbackDays,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização do CRM carregada")

	return &CRMSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		clinicRepo:  clinicRepo,
		factRepo:    factRepo,
		crmService:  crmService,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *CRMSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização do CRM desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização do CRM")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllClinics(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização do CRM: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização do CRM")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllClinics sincroniza os agendamentos do CRM de todas as clínicas ativas
func (s *CRMSyncService) syncAllClinics(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização do CRM já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização do CRM para todas as clínicas ativas")

	clinics, err := s.clinicRepo.ListActive()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar clínicas para sincronização do CRM")
		return
	}

	if len(clinics) == 0 {
		logrus.Info("Nenhuma clínica ativa encontrada para sincronização do CRM")
		return
	}

	endDate := time.Now().UTC()
	startDate := endDate.AddDate(0, 0, -s.config.LookbackDays)

	logrus.WithFields(logrus.Fields{
		"days":       s.config.LookbackDays,
		"start_date": startDate.Format(time.DateOnly),
		"end_date":   endDate.Format(time.DateOnly),
	}).Info("Período para sincronização do CRM")

	synced := 0
	for _, clinic := range clinics {
		if s.syncClinic(ctx, clinic, startDate, endDate) {
			synced++
		}

		// Aguardar antes da próxima requisição para evitar sobrecarga na API
		time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"clinics":  len(clinics),
		"synced":   synced,
	}).Info("Sincronização do CRM concluída")

	s.lastSyncCompletedAt = time.Now()
}

// syncClinic busca os eventos de uma clínica e grava o lote de fatos
func (s *CRMSyncService) syncClinic(ctx context.Context, clinic *domain.Clinic, startDate, endDate time.Time) bool {
	logrus.WithFields(logrus.Fields{
		"clinic_id":   clinic.ID,
		"clinic_name": clinic.Name,
	}).Info("Sincronizando agendamentos do CRM para clínica")

	facts, err := s.crmService.GetAppointmentFacts(clinic.ID, clinic.ID, startDate, endDate)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"clinic_id": clinic.ID,
			"error":     err.Error(),
		}).Error("Erro ao obter agendamentos do CRM para clínica")
		return false
	}

	if len(facts) == 0 {
		logrus.WithField("clinic_id", clinic.ID).Warn("Nenhum agendamento do CRM para clínica no período")
		return false
	}

	batchID, err := utils.GenerateID()
	if err != nil {
		logrus.WithError(err).Error("Erro ao gerar id do lote de sincronização do CRM")
		return false
	}

	for i := range facts {
		rowID, err := utils.GenerateID()
		if err != nil {
			logrus.WithError(err).Error("Erro ao gerar id de fato do CRM")
			return false
		}
		facts[i].ID = rowID
		facts[i].BatchID = batchID
	}

	batch := &domain.UploadBatch{
		ID:       batchID,
		ClinicID: clinic.ID,
		FileName: fmt.Sprintf("crm-sync-%s", endDate.Format(time.DateOnly)),
		FileType: domain.FileTypeCSV,
		RowCount: len(facts),
	}

	if err := s.factRepo.SaveBatch(ctx, batch, facts); err != nil {
		logrus.WithFields(logrus.Fields{
			"clinic_id": clinic.ID,
			"error":     err.Error(),
		}).Error("Erro ao salvar lote de fatos do CRM no banco de dados")
		return false
	}

	logrus.WithFields(logrus.Fields{
		"clinic_id": clinic.ID,
		"facts":     len(facts),
	}).Info("Agendamentos do CRM salvos com sucesso para clínica")

	return true
}

// TriggerManualSync inicia manualmente uma sincronização do CRM
func (s *CRMSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização do CRM já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual do CRM")
	go s.syncAllClinics(context.Background())
}

// CheckCRMConnection valida as credenciais do CRM com uma consulta mínima.
func (s *CRMSyncService) CheckCRMConnection() (bool, error) {
	if s.crmService == nil {
		return false, nil
	}

	return s.crmService.CheckConnection()
}

// GetStatus retorna o status atual do agendador
func (s *CRMSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
