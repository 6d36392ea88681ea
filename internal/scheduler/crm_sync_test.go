package scheduler

import (
	"context"
	"testing"
	"time"

	crmmocks "github.com/clinsight/clinic-insights-api/infrastructure/integrator/crm/mocks"
	"github.com/clinsight/clinic-insights-api/infrastructure/repository/mocks"
	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestCRMSyncService_syncClinic(t *testing.T) {
	startDate := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	clinic := &domain.Clinic{
		ID:   "CLI001",
		Name: "Clínica Sorriso Pleno",
	}

	tests := []struct {
		name     string
		setup    func(crmMock *crmmocks.MockCRMIntegrator, factMock *mocks.MockFactRepository)
		expected bool
	}{
		{
			name: "Sincronização com sucesso grava lote com ids gerados",
			setup: func(crmMock *crmmocks.MockCRMIntegrator, factMock *mocks.MockFactRepository) {
				crmMock.EXPECT().
					GetAppointmentFacts("CLI001", "CLI001", startDate, endDate).
					Return([]domain.FactRow{
						{ClinicID: "CLI001", Status: domain.StatusScheduled, TicketAverage: 150},
						{ClinicID: "CLI001", Status: domain.StatusCompleted, Entries: 300},
					}, nil)

				factMock.EXPECT().
					SaveBatch(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, batch *domain.UploadBatch, rows []domain.FactRow) error {
						assert.NotEmpty(t, batch.ID)
						assert.Equal(t, "CLI001", batch.ClinicID)
						assert.Equal(t, "crm-sync-2024-01-15", batch.FileName)
						assert.Equal(t, domain.FileTypeCSV, batch.FileType)
						assert.Equal(t, 2, batch.RowCount)

						assert.Len(t, rows, 2)
						for _, row := range rows {
							assert.NotEmpty(t, row.ID)
							assert.Equal(t, batch.ID, row.BatchID)
						}

						return nil
					})
			},
			expected: true,
		},
		{
			name: "Erro do CRM não grava nada",
			setup: func(crmMock *crmmocks.MockCRMIntegrator, factMock *mocks.MockFactRepository) {
				crmMock.EXPECT().
					GetAppointmentFacts("CLI001", "CLI001", startDate, endDate).
					Return(nil, assert.AnError)
			},
			expected: false,
		},
		{
			name: "Período sem agendamentos não gera lote",
			setup: func(crmMock *crmmocks.MockCRMIntegrator, factMock *mocks.MockFactRepository) {
				crmMock.EXPECT().
					GetAppointmentFacts("CLI001", "CLI001", startDate, endDate).
					Return([]domain.FactRow{}, nil)
			},
			expected: false,
		},
		{
			name: "Erro ao salvar lote retorna falha",
			setup: func(crmMock *crmmocks.MockCRMIntegrator, factMock *mocks.MockFactRepository) {
				crmMock.EXPECT().
					GetAppointmentFacts("CLI001", "CLI001", startDate, endDate).
					Return([]domain.FactRow{
						{ClinicID: "CLI001", Status: domain.StatusScheduled},
					}, nil)

				factMock.EXPECT().
					SaveBatch(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(assert.AnError)
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			crmMock := crmmocks.NewMockCRMIntegrator(ctrl)
			factMock := mocks.NewMockFactRepository(ctrl)

			tt.setup(crmMock, factMock)

			service := &CRMSyncService{
				crmService: crmMock,
				factRepo:   factMock,
				config:     CRMSyncConfig{LookbackDays: 7},
			}

			assert.Equal(t, tt.expected, service.syncClinic(context.Background(), clinic, startDate, endDate))
		})
	}
}

func TestCRMSyncService_syncAllClinics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	crmMock := crmmocks.NewMockCRMIntegrator(ctrl)
	factMock := mocks.NewMockFactRepository(ctrl)
	clinicMock := mocks.NewMockClinicRepository(ctrl)

	clinics := []*domain.Clinic{
		{ID: "CLI001", Name: "Clínica Sorriso Pleno"},
		{ID: "CLI002", Name: "OdontoVida Centro"},
	}

	clinicMock.EXPECT().ListActive().Return(clinics, nil)

	// A primeira clínica sincroniza, a segunda falha no CRM: o loop segue.
	crmMock.EXPECT().
		GetAppointmentFacts("CLI001", "CLI001", gomock.Any(), gomock.Any()).
		Return([]domain.FactRow{{ClinicID: "CLI001", Status: domain.StatusScheduled}}, nil)
	crmMock.EXPECT().
		GetAppointmentFacts("CLI002", "CLI002", gomock.Any(), gomock.Any()).
		Return(nil, assert.AnError)

	factMock.EXPECT().
		SaveBatch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	service := &CRMSyncService{
		clinicRepo: clinicMock,
		factRepo:   factMock,
		crmService: crmMock,
		config: CRMSyncConfig{
			LookbackDays:        7,
			RequestDelaySeconds: 0,
		},
	}

	service.syncAllClinics(context.Background())

	assert.False(t, service.syncRunning)
	assert.False(t, service.lastSyncStartedAt.IsZero())
	assert.False(t, service.lastSyncCompletedAt.IsZero())
}

func TestCRMSyncService_syncAllClinics_SemClinicasAtivas(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clinicMock := mocks.NewMockClinicRepository(ctrl)
	clinicMock.EXPECT().ListActive().Return([]*domain.Clinic{}, nil)

	service := &CRMSyncService{
		clinicRepo: clinicMock,
		config:     CRMSyncConfig{LookbackDays: 7},
	}

	service.syncAllClinics(context.Background())

	assert.False(t, service.syncRunning)
}

func TestCRMSyncService_CheckCRMConnection(t *testing.T) {
	t.Run("Credenciais válidas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		crmMock := crmmocks.NewMockCRMIntegrator(ctrl)
		crmMock.EXPECT().CheckConnection().Return(true, nil)

		service := &CRMSyncService{crmService: crmMock}

		reachable, err := service.CheckCRMConnection()

		assert.NoError(t, err)
		assert.True(t, reachable)
	})

	t.Run("Falha do CRM propaga", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		crmMock := crmmocks.NewMockCRMIntegrator(ctrl)
		crmMock.EXPECT().CheckConnection().Return(false, assert.AnError)

		service := &CRMSyncService{crmService: crmMock}

		reachable, err := service.CheckCRMConnection()

		assert.Error(t, err)
		assert.False(t, reachable)
	})

	t.Run("Sem integrador configurado", func(t *testing.T) {
		service := &CRMSyncService{}

		reachable, err := service.CheckCRMConnection()

		assert.NoError(t, err)
		assert.False(t, reachable)
	})
}

func TestCRMSyncService_GetStatus(t *testing.T) {
	service := &CRMSyncService{
		config: CRMSyncConfig{
			CronSchedule:        "0 3 * * *",
			LookbackDays:        7,
			RequestDelaySeconds: 2,
			SyncEnabled:         true,
		},
	}

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 3 * * *", status["sync_cron"])
	assert.Equal(t, 7, status["sync_lookback_days"])
	assert.Equal(t, 2, status["sync_request_delay_s"])
}
