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
	clinicsTable = "clinics c"
)

type ClinicRepository interface {
	GetByID(clinicID string) (*domain.Clinic, error)
	ListActive() ([]*domain.Clinic, error)
	List() ([]*domain.Clinic, error)
	Create(clinic *domain.Clinic) error
	Update(request *domain.UpdateClinicRequest) error
}

type clinicRepository struct {
	conn *postgres.Connection
}

func NewClinicRepository(conn *postgres.Connection) ClinicRepository {
	return &clinicRepository{
		conn: conn,
	}
}

func (r *clinicRepository) GetByID(clinicID string) (*domain.Clinic, error) {
	query, args, err := squirrel.
		Select("c.id, c.name, c.cnpj, c.plan_tier, c.cac, c.active, c.created_at, c.updated_at").
		From(clinicsTable).
		Where(squirrel.Eq{"c.id": clinicID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	clinic := &domain.Clinic{}
	err = row.Scan(
		&clinic.ID,
		&clinic.Name,
		&clinic.CNPJ,
		&clinic.PlanTier,
		&clinic.CAC,
		&clinic.Active,
		&clinic.CreatedAt,
		&clinic.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear clínica: %w", err)
	}

	return clinic, nil
}

func (r *clinicRepository) ListActive() ([]*domain.Clinic, error) {
	return r.list(squirrel.Eq{"c.active": true})
}

func (r *clinicRepository) List() ([]*domain.Clinic, error) {
	return r.list(nil)
}

func (r *clinicRepository) list(whereClause map[string]interface{}) ([]*domain.Clinic, error) {
	builder := squirrel.
		Select("c.id, c.name, c.cnpj, c.plan_tier, c.cac, c.active, c.created_at, c.updated_at").
		From(clinicsTable).
		OrderBy("c.name ASC")

	if whereClause != nil {
		builder = builder.Where(squirrel.Eq(whereClause))
	}

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
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

	clinics := make([]*domain.Clinic, 0)
	for rows.Next() {
		clinic := &domain.Clinic{}
		err := rows.Scan(
			&clinic.ID,
			&clinic.Name,
			&clinic.CNPJ,
			&clinic.PlanTier,
			&clinic.CAC,
			&clinic.Active,
			&clinic.CreatedAt,
			&clinic.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear clínica: %w", err)
		}
		clinics = append(clinics, clinic)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return clinics, nil
}

func (r *clinicRepository) Create(clinic *domain.Clinic) error {
	query, args, err := squirrel.
		Insert("clinics").
		Columns("id", "name", "cnpj", "plan_tier", "cac", "active").
		Values(clinic.ID, clinic.Name, clinic.CNPJ, clinic.PlanTier, clinic.CAC, clinic.Active).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *clinicRepository) Update(request *domain.UpdateClinicRequest) error {
	builder := squirrel.
		Update("clinics").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": request.ID})

	if request.Name != nil {
		builder = builder.Set("name", *request.Name)
	}

	if request.CNPJ != nil {
		builder = builder.Set("cnpj", request.CNPJ)
	}

	if request.PlanTier != nil {
		builder = builder.Set("plan_tier", *request.PlanTier)
	}

	if request.CAC != nil {
		builder = builder.Set("cac", *request.CAC)
	}

	if request.Active != nil {
		builder = builder.Set("active", *request.Active)
	}

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}
