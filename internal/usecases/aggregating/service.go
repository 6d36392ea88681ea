package aggregating

import (
	"github.com/clinsight/clinic-insights-api/infrastructure/repository"
	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/pkg/errors"
)

// SnapshotService é a superfície de consulta do snapshot: carrega os fatos da
// clínica, aplica o recorte e agrega.
type SnapshotService interface {
	GetSnapshot(clinicID string, filters domain.FilterState) (*domain.Snapshot, error)
	GetFacts(clinicID string, filters domain.FilterState) ([]domain.FactRow, error)
}

type snapshotService struct {
	factRepo   repository.FactRepository
	aggregator *Aggregator
}

func NewSnapshotService(factRepo repository.FactRepository, aggregator *Aggregator) SnapshotService {
	return &snapshotService{
		factRepo:   factRepo,
		aggregator: aggregator,
	}
}

func (s *snapshotService) GetSnapshot(clinicID string, filters domain.FilterState) (*domain.Snapshot, error) {
	facts, err := s.GetFacts(clinicID, filters)
	if err != nil {
		return nil, err
	}

	snapshot := s.aggregator.BuildSnapshot(facts)

	return &snapshot, nil
}

func (s *snapshotService) GetFacts(clinicID string, filters domain.FilterState) ([]domain.FactRow, error) {
	facts, err := s.factRepo.GetByClinicAndPeriod(clinicID, filters.StartDate, filters.EndDate)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar fatos da clínica")
	}

	return ApplyFilters(facts, filters), nil
}
