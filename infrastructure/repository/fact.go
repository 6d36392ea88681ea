package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/clinsight/clinic-insights-api/infrastructure/database/postgres"
	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/clinsight/clinic-insights-api/pkg/utils"
	"github.com/lib/pq"
)

const (
	factsTable = "facts f"
)

type FactRepository interface {
	// SaveBatch grava o lote de fatos e o registro do lote na mesma
	// transação: ou o lote inteiro entra, ou nada entra.
	SaveBatch(ctx context.Context, batch *domain.UploadBatch, rows []domain.FactRow) error
	GetByClinicAndPeriod(clinicID string, startDate, endDate *time.Time) ([]domain.FactRow, error)
	DeleteOlderThan(days int) (int64, error)
}

type factRepository struct {
	conn *postgres.Connection
}

func NewFactRepository(conn *postgres.Connection) FactRepository {
	return &factRepository{
		conn: conn,
	}
}

func (r *factRepository) SaveBatch(ctx context.Context, batch *domain.UploadBatch, rows []domain.FactRow) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		batchSQL, batchArgs, err := squirrel.
			Insert("upload_batches").
			Columns("id", "clinic_id", "file_name", "file_type", "row_count", "warning_count").
			Values(batch.ID, batch.ClinicID, batch.FileName, batch.FileType, batch.RowCount, batch.WarningCount).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query do lote: %w", err)
		}

		if _, err := tx.Exec(batchSQL, batchArgs...); err != nil {
			if pqErr, ok := err.(*pq.Error); ok {
				return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
			}
			return fmt.Errorf("erro ao gravar o lote: %w", err)
		}

		builder := squirrel.
			Insert("facts").
			Columns(
				"id", "clinic_id", "batch_id", "timestamp", "channel", "professional",
				"procedure", "status", "pipeline", "unit", "entries", "exits",
				"slots_available", "slots_empty", "ticket_average", "variable_cost",
				"duration_minutes", "materials", "wait_minutes", "nps_score",
				"base_revenue_current", "base_revenue_previous", "crm_lead_id", "source_type",
			).
			PlaceholderFormat(squirrel.Dollar)

		for _, row := range rows {
			builder = builder.Values(
				row.ID, batch.ClinicID, batch.ID, row.Timestamp, row.Channel, row.Professional,
				row.Procedure, row.Status, row.Pipeline, row.Unit, row.Entries, row.Exits,
				row.SlotsAvailable, row.SlotsEmpty, row.TicketAverage, row.VariableCost,
				row.DurationMinutes, pq.Array(row.Materials), row.WaitMinutes, row.NPSScore,
				row.BaseRevenueCurrent, row.BaseRevenuePrevious, row.CRMLeadID, row.SourceType,
			)
		}

		if len(rows) == 0 {
			return nil
		}

		factsSQL, factsArgs, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query de fatos: %w", err)
		}

		if _, err := tx.Exec(factsSQL, factsArgs...); err != nil {
			if pqErr, ok := err.(*pq.Error); ok {
				return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
			}
			return fmt.Errorf("erro ao gravar os fatos: %w", err)
		}

		return nil
	})
}

func (r *factRepository) GetByClinicAndPeriod(clinicID string, startDate, endDate *time.Time) ([]domain.FactRow, error) {
	builder := squirrel.
		Select(
			"f.id, f.clinic_id, f.batch_id, f.timestamp, f.channel, f.professional, " +
				"f.procedure, f.status, f.pipeline, f.unit, f.entries, f.exits, " +
				"f.slots_available, f.slots_empty, f.ticket_average, f.variable_cost, " +
				"f.duration_minutes, f.materials, f.wait_minutes, f.nps_score, " +
				"f.base_revenue_current, f.base_revenue_previous, f.crm_lead_id, f.source_type",
		).
		From(factsTable).
		Where(squirrel.Eq{"f.clinic_id": clinicID}).
		OrderBy("f.timestamp ASC, f.id ASC")

	if startDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"f.timestamp": *startDate})
	}

	if endDate != nil {
		// A data final é inclusiva no dia inteiro, como em ApplyFilters.
		builder = builder.Where(squirrel.LtOrEq{"f.timestamp": utils.EndOfDay(*endDate)})
	}

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	sqlRows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer sqlRows.Close()

	facts := make([]domain.FactRow, 0)
	for sqlRows.Next() {
		fact, err := r.scanFact(sqlRows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear fato: %w", err)
		}
		facts = append(facts, *fact)
	}

	if err = sqlRows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return facts, nil
}

func (r *factRepository) DeleteOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	query, args, err := squirrel.
		Delete("facts").
		Where(squirrel.Lt{"timestamp": cutoff}).
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

func (r *factRepository) scanFact(rows *sql.Rows) (*domain.FactRow, error) {
	fact := &domain.FactRow{}
	var materials pq.StringArray

	err := rows.Scan(
		&fact.ID,
		&fact.ClinicID,
		&fact.BatchID,
		&fact.Timestamp,
		&fact.Channel,
		&fact.Professional,
		&fact.Procedure,
		&fact.Status,
		&fact.Pipeline,
		&fact.Unit,
		&fact.Entries,
		&fact.Exits,
		&fact.SlotsAvailable,
		&fact.SlotsEmpty,
		&fact.TicketAverage,
		&fact.VariableCost,
		&fact.DurationMinutes,
		&materials,
		&fact.WaitMinutes,
		&fact.NPSScore,
		&fact.BaseRevenueCurrent,
		&fact.BaseRevenuePrevious,
		&fact.CRMLeadID,
		&fact.SourceType,
	)
	if err != nil {
		return nil, err
	}

	fact.Materials = []string(materials)

	return fact, nil
}
