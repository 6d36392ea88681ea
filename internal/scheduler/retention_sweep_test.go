package scheduler

import (
	"testing"

	"github.com/clinsight/clinic-insights-api/infrastructure/repository/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRetentionSweepService_Sweep(t *testing.T) {
	tests := []struct {
		name  string
		setup func(factMock *mocks.MockFactRepository, batchMock *mocks.MockUploadBatchRepository)
	}{
		{
			name: "Varredura remove fatos e lotes além da janela",
			setup: func(factMock *mocks.MockFactRepository, batchMock *mocks.MockUploadBatchRepository) {
				factMock.EXPECT().DeleteOlderThan(730).Return(int64(42), nil)
				batchMock.EXPECT().DeleteOlderThan(730).Return(int64(3), nil)
			},
		},
		{
			name: "Erro ao remover fatos interrompe antes dos lotes",
			setup: func(factMock *mocks.MockFactRepository, batchMock *mocks.MockUploadBatchRepository) {
				factMock.EXPECT().DeleteOlderThan(730).Return(int64(0), assert.AnError)
			},
		},
		{
			name: "Erro ao remover lotes é registrado sem propagar",
			setup: func(factMock *mocks.MockFactRepository, batchMock *mocks.MockUploadBatchRepository) {
				factMock.EXPECT().DeleteOlderThan(730).Return(int64(10), nil)
				batchMock.EXPECT().DeleteOlderThan(730).Return(int64(0), assert.AnError)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			factMock := mocks.NewMockFactRepository(ctrl)
			batchMock := mocks.NewMockUploadBatchRepository(ctrl)

			tt.setup(factMock, batchMock)

			service := &RetentionSweepService{
				factRepo:  factMock,
				batchRepo: batchMock,
				config:    RetentionSweepConfig{RetentionDays: 730},
			}

			service.Sweep()

			assert.False(t, service.sweepRunning)
		})
	}
}

func TestRetentionSweepService_Sweep_AtualizaUltimaExecucao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	factMock := mocks.NewMockFactRepository(ctrl)
	batchMock := mocks.NewMockUploadBatchRepository(ctrl)

	factMock.EXPECT().DeleteOlderThan(365).Return(int64(0), nil)
	batchMock.EXPECT().DeleteOlderThan(365).Return(int64(0), nil)

	service := &RetentionSweepService{
		factRepo:  factMock,
		batchRepo: batchMock,
		config:    RetentionSweepConfig{RetentionDays: 365},
	}

	assert.True(t, service.lastSweepRunAt.IsZero())

	service.Sweep()

	assert.False(t, service.lastSweepRunAt.IsZero())
}

func TestRetentionSweepService_GetStatus(t *testing.T) {
	service := &RetentionSweepService{
		config: RetentionSweepConfig{
			CronSchedule:  "0 4 * * 0",
			RetentionDays: 730,
			SweepEnabled:  true,
		},
	}

	status := service.GetStatus()

	assert.Equal(t, true, status["sweep_enabled"])
	assert.Equal(t, "0 4 * * 0", status["sweep_cron"])
	assert.Equal(t, 730, status["retention_days"])
}
