package ingesting

import (
	"context"
	"testing"

	"github.com/clinsight/clinic-insights-api/infrastructure/repository/mocks"
	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestIngestService_Ingest(t *testing.T) {
	validUpload := domain.RawUpload{
		FileName: "agenda.csv",
		FileType: domain.FileTypeCSV,
		Content:  []byte("data,situacao,entradas\n2024-01-10,realizado,100\n2024-01-11,faltou,0\n"),
	}

	tests := []struct {
		name     string
		clinicID string
		upload   domain.RawUpload
		setup    func(factRepo *mocks.MockFactRepository)
		validate func(t *testing.T, batch *domain.UploadBatch, result domain.ParseResult, err error)
	}{
		{
			name:     "Commit feliz persiste lote e fatos com ids definitivos",
			clinicID: "CLI001",
			upload:   validUpload,
			setup: func(factRepo *mocks.MockFactRepository) {
				factRepo.EXPECT().
					SaveBatch(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, batch *domain.UploadBatch, rows []domain.FactRow) error {
						assert.Equal(t, "CLI001", batch.ClinicID)
						assert.Equal(t, 2, batch.RowCount)
						assert.Len(t, rows, 2)
						for _, row := range rows {
							assert.Equal(t, "CLI001", row.ClinicID)
							assert.Equal(t, batch.ID, row.BatchID)
							assert.NotContains(t, row.ID, "row-")
							assert.Equal(t, domain.SourceUpload, row.SourceType)
						}
						return nil
					})
			},
			validate: func(t *testing.T, batch *domain.UploadBatch, result domain.ParseResult, err error) {
				assert.NoError(t, err)
				assert.NotNil(t, batch)
				assert.Equal(t, "agenda.csv", batch.FileName)
				assert.Len(t, result.Rows, 2)
			},
		},
		{
			name:     "Clínica não informada rejeita o commit",
			clinicID: "",
			upload:   validUpload,
			setup:    func(factRepo *mocks.MockFactRepository) {},
			validate: func(t *testing.T, batch *domain.UploadBatch, result domain.ParseResult, err error) {
				assert.ErrorIs(t, err, ErrClinicNotInformed)
				assert.Nil(t, batch)
			},
		},
		{
			name:     "Zero linhas devolve o resultado do parse sem persistir",
			clinicID: "CLI001",
			upload: domain.RawUpload{
				FileName: "vazio.csv",
				FileType: domain.FileTypeCSV,
				Content:  []byte("data,entradas\n"),
			},
			setup: func(factRepo *mocks.MockFactRepository) {},
			validate: func(t *testing.T, batch *domain.UploadBatch, result domain.ParseResult, err error) {
				assert.ErrorIs(t, err, ErrNoRowsToCommit)
				assert.Nil(t, batch)
				assert.NotEmpty(t, result.Warnings)
			},
		},
		{
			name:     "Falha do banco vira erro de persistência de lote",
			clinicID: "CLI001",
			upload:   validUpload,
			setup: func(factRepo *mocks.MockFactRepository) {
				factRepo.EXPECT().
					SaveBatch(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("conexão recusada"))
			},
			validate: func(t *testing.T, batch *domain.UploadBatch, result domain.ParseResult, err error) {
				assert.ErrorIs(t, err, ErrBatchPersistence)
				assert.Nil(t, batch)
				assert.Len(t, result.Rows, 2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			factRepo := mocks.NewMockFactRepository(ctrl)
			batchRepo := mocks.NewMockUploadBatchRepository(ctrl)
			tt.setup(factRepo)

			service := NewIngestService(NewParserWithClock(fixedClock), factRepo, batchRepo)

			batch, result, err := service.Ingest(context.Background(), tt.clinicID, tt.upload)
			tt.validate(t, batch, result, err)
		})
	}
}

func TestIngestService_Preview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewIngestService(
		NewParserWithClock(fixedClock),
		mocks.NewMockFactRepository(ctrl),
		mocks.NewMockUploadBatchRepository(ctrl),
	)

	result := service.Preview(domain.RawUpload{
		FileType: domain.FileTypeCSV,
		Content:  []byte("data,situacao\n2024-01-10,realizado\n"),
	})

	// Preview não persiste: nenhum mock tem expectativa configurada.
	assert.Len(t, result.Rows, 1)
	assert.Equal(t, "row-1", result.Rows[0].ID)
}

func TestIngestService_ListBatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	factRepo := mocks.NewMockFactRepository(ctrl)
	batchRepo := mocks.NewMockUploadBatchRepository(ctrl)

	expected := []*domain.UploadBatch{{ID: "BAT001", ClinicID: "CLI001"}}
	batchRepo.EXPECT().ListByClinic("CLI001").Return(expected, nil)

	service := NewIngestService(NewParserWithClock(fixedClock), factRepo, batchRepo)

	batches, err := service.ListBatches("CLI001")
	assert.NoError(t, err)
	assert.Equal(t, expected, batches)
}
