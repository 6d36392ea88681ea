package ingesting

import (
	"context"
	"time"

	"github.com/clinsight/clinic-insights-api/infrastructure/repository"
	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/clinsight/clinic-insights-api/pkg/utils"
	"github.com/pkg/errors"
)

// IngestService é a fronteira de commit da ingestão: normaliza o upload e
// grava fatos mais o registro do lote em uma única transação.
type IngestService interface {
	Preview(upload domain.RawUpload) domain.ParseResult
	Ingest(ctx context.Context, clinicID string, upload domain.RawUpload) (*domain.UploadBatch, domain.ParseResult, error)
	ListBatches(clinicID string) ([]*domain.UploadBatch, error)
}

type ingestService struct {
	parser    *Parser
	factRepo  repository.FactRepository
	batchRepo repository.UploadBatchRepository
}

func NewIngestService(
	parser *Parser,
	factRepo repository.FactRepository,
	batchRepo repository.UploadBatchRepository,
) IngestService {
	return &ingestService{
		parser:    parser,
		factRepo:  factRepo,
		batchRepo: batchRepo,
	}
}

// Preview normaliza sem persistir. Usado pela tela de conferência do upload.
func (s *ingestService) Preview(upload domain.RawUpload) domain.ParseResult {
	return s.parser.Parse(upload)
}

// Ingest normaliza e commita. Os ids batch-locais (row-{n}) do parse são
// substituídos por nanoids globais no momento do commit.
func (s *ingestService) Ingest(ctx context.Context, clinicID string, upload domain.RawUpload) (*domain.UploadBatch, domain.ParseResult, error) {
	if clinicID == "" {
		return nil, domain.ParseResult{}, ErrClinicNotInformed
	}

	result := s.parser.Parse(upload)
	if len(result.Rows) == 0 {
		return nil, result, ErrNoRowsToCommit
	}

	batchID, err := utils.GenerateID()
	if err != nil {
		return nil, result, errors.Wrap(err, "erro ao gerar id do lote")
	}

	rows := make([]domain.FactRow, len(result.Rows))
	for i, row := range result.Rows {
		rowID, err := utils.GenerateID()
		if err != nil {
			return nil, result, errors.Wrap(err, "erro ao gerar id do fato")
		}

		row.ID = rowID
		row.ClinicID = clinicID
		row.BatchID = batchID
		if row.SourceType == "" {
			row.SourceType = domain.SourceUpload
		}
		rows[i] = row
	}

	batch := &domain.UploadBatch{
		ID:           batchID,
		ClinicID:     clinicID,
		FileName:     upload.FileName,
		FileType:     upload.FileType,
		RowCount:     len(rows),
		WarningCount: len(result.Warnings),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.factRepo.SaveBatch(ctx, batch, rows); err != nil {
		return nil, result, errors.Wrap(ErrBatchPersistence, err.Error())
	}

	return batch, result, nil
}

func (s *ingestService) ListBatches(clinicID string) ([]*domain.UploadBatch, error) {
	return s.batchRepo.ListByClinic(clinicID)
}
