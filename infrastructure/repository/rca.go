package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/clinsight/clinic-insights-api/infrastructure/database/postgres"
	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/lib/pq"
)

const (
	rcaDraftsTable = "rca_drafts rd"
)

type RcaRepository interface {
	// SaveOrUpdate persiste o rascunho de RCA. A chave de conflito é
	// (clinic_id, alert_id): reabrir o mesmo alerta edita o mesmo rascunho.
	SaveOrUpdate(draft *domain.RcaDraftPayload) error
	GetByAlertID(clinicID, alertID string) (*domain.RcaDraftPayload, error)
	ListByClinic(clinicID string) ([]*domain.RcaDraftPayload, error)
}

type rcaRepository struct {
	conn *postgres.Connection
}

func NewRcaRepository(conn *postgres.Connection) RcaRepository {
	return &rcaRepository{
		conn: conn,
	}
}

func (r *rcaRepository) SaveOrUpdate(draft *domain.RcaDraftPayload) error {
	query := squirrel.StatementBuilder.
		Insert("rca_drafts").
		Columns("id", "clinic_id", "alert_id", "severity", "title", "root_cause", "action_plan", "owner", "due_date", "status").
		Values(
			draft.ID,
			draft.ClinicID,
			draft.AlertID,
			draft.Severity,
			draft.Title,
			draft.RootCause,
			draft.ActionPlan,
			draft.Owner,
			draft.DueDate,
			draft.Status,
		).
		Suffix(`
			ON CONFLICT (clinic_id, alert_id) DO UPDATE SET
				severity = EXCLUDED.severity,
				title = EXCLUDED.title,
				root_cause = EXCLUDED.root_cause,
				action_plan = EXCLUDED.action_plan,
				owner = EXCLUDED.owner,
				due_date = EXCLUDED.due_date,
				status = EXCLUDED.status,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *rcaRepository) GetByAlertID(clinicID, alertID string) (*domain.RcaDraftPayload, error) {
	query, args, err := squirrel.
		Select("rd.id, rd.clinic_id, rd.alert_id, rd.severity, rd.title, rd.root_cause, rd.action_plan, rd.owner, rd.due_date, rd.status, rd.created_at, rd.updated_at").
		From(rcaDraftsTable).
		Where(squirrel.Eq{"rd.clinic_id": clinicID, "rd.alert_id": alertID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	draft, err := r.scanDraftRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear rascunho de RCA: %w", err)
	}

	return draft, nil
}

func (r *rcaRepository) ListByClinic(clinicID string) ([]*domain.RcaDraftPayload, error) {
	query, args, err := squirrel.
		Select("rd.id, rd.clinic_id, rd.alert_id, rd.severity, rd.title, rd.root_cause, rd.action_plan, rd.owner, rd.due_date, rd.status, rd.created_at, rd.updated_at").
		From(rcaDraftsTable).
		Where(squirrel.Eq{"rd.clinic_id": clinicID}).
		OrderBy("rd.created_at DESC").
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

	drafts := make([]*domain.RcaDraftPayload, 0)
	for rows.Next() {
		draft := &domain.RcaDraftPayload{}
		err := rows.Scan(
			&draft.ID,
			&draft.ClinicID,
			&draft.AlertID,
			&draft.Severity,
			&draft.Title,
			&draft.RootCause,
			&draft.ActionPlan,
			&draft.Owner,
			&draft.DueDate,
			&draft.Status,
			&draft.CreatedAt,
			&draft.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear rascunho de RCA: %w", err)
		}
		drafts = append(drafts, draft)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return drafts, nil
}

func (r *rcaRepository) scanDraftRow(row *sql.Row) (*domain.RcaDraftPayload, error) {
	draft := &domain.RcaDraftPayload{}

	err := row.Scan(
		&draft.ID,
		&draft.ClinicID,
		&draft.AlertID,
		&draft.Severity,
		&draft.Title,
		&draft.RootCause,
		&draft.ActionPlan,
		&draft.Owner,
		&draft.DueDate,
		&draft.Status,
		&draft.CreatedAt,
		&draft.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return draft, nil
}
