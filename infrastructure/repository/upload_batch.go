package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/clinsight/clinic-insights-api/infrastructure/database/postgres"
	"github.com/clinsight/clinic-insights-api/internal/domain"
)

const (
	uploadBatchesTable = "upload_batches ub"
)

type UploadBatchRepository interface {
	ListByClinic(clinicID string) ([]*domain.UploadBatch, error)
	DeleteOlderThan(days int) (int64, error)
}

type uploadBatchRepository struct {
	conn *postgres.Connection
}

func NewUploadBatchRepository(conn *postgres.Connection) UploadBatchRepository {
	return &uploadBatchRepository{
		conn: conn,
	}
}

func (r *uploadBatchRepository) ListByClinic(clinicID string) ([]*domain.UploadBatch, error) {
	query, args, err := squirrel.
		Select("ub.id, ub.clinic_id, ub.file_name, ub.file_type, ub.row_count, ub.warning_count, ub.created_at").
		From(uploadBatchesTable).
		Where(squirrel.Eq{"ub.clinic_id": clinicID}).
		OrderBy("ub.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	batches := make([]*domain.UploadBatch, 0)
	for rows.Next() {
		batch := &domain.UploadBatch{}
		err := rows.Scan(
			&batch.ID,
			&batch.ClinicID,
			&batch.FileName,
			&batch.FileType,
			&batch.RowCount,
			&batch.WarningCount,
			&batch.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear lote: %w", err)
		}
		batches = append(batches, batch)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return batches, nil
}

func (r *uploadBatchRepository) DeleteOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	query, args, err := squirrel.
		Delete("upload_batches").
		Where(squirrel.Lt{"created_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}
