package clinic

import (
	"github.com/clinsight/clinic-insights-api/infrastructure/repository"
	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/clinsight/clinic-insights-api/pkg/apiErrors"
	"github.com/clinsight/clinic-insights-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

type ClinicService interface {
	GetClinic(clinicID string) (*domain.Clinic, error)
	ListClinics(onlyActive bool) ([]*domain.Clinic, error)
	CreateClinic(request *domain.Clinic) (*domain.Clinic, error)
	UpdateClinic(request *domain.UpdateClinicRequest) error
	AllowedSections(clinicID string) ([]domain.SectionID, error)
}

type Service struct {
	clinicRepository repository.ClinicRepository
}

func NewService(clinicRepository repository.ClinicRepository) ClinicService {
	return &Service{
		clinicRepository: clinicRepository,
	}
}

func (s *Service) GetClinic(clinicID string) (*domain.Clinic, error) {
	if clinicID == "" {
		return nil, ErrClinicIDRequired
	}

	clinic, err := s.clinicRepository.GetByID(clinicID)
	if err != nil {
		logrus.Error("Error getting clinic by id on the repository:", err)
		return nil, NewClinicError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao buscar clínica no banco de dados")
	}

	if clinic == nil {
		return nil, NewClinicErrorWithID(ErrClinicNotFound, apiErrors.ErrClinicNotFound, clinicID, "Clínica não encontrada")
	}

	return clinic, nil
}

func (s *Service) ListClinics(onlyActive bool) ([]*domain.Clinic, error) {
	var (
		clinics []*domain.Clinic
		err     error
	)

	if onlyActive {
		clinics, err = s.clinicRepository.ListActive()
	} else {
		clinics, err = s.clinicRepository.List()
	}

	if err != nil {
		return nil, NewClinicError(ErrFetchClinics, apiErrors.ErrDatabaseOperation, "Falha ao listar clínicas no banco de dados")
	}

	return clinics, nil
}

func (s *Service) CreateClinic(request *domain.Clinic) (*domain.Clinic, error) {
	if request.Name == "" {
		return nil, ErrClinicNameRequired
	}

	if request.ID == "" {
		clinicID, err := utils.GenerateID()
		if err != nil {
			return nil, NewClinicError(ErrGenerateID, apiErrors.ErrInternalServer, "Falha ao gerar identificador único para clínica")
		}
		request.ID = clinicID
	}

	// Plano desconhecido resolve para o tier de entrada.
	request.PlanTier = domain.ParsePlanTier(string(request.PlanTier))
	request.Active = true

	if err := s.clinicRepository.Create(request); err != nil {
		logrus.Error("Error creating clinic on the repository:", err)
		return nil, NewClinicError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar clínica no banco de dados")
	}

	return request, nil
}

func (s *Service) UpdateClinic(request *domain.UpdateClinicRequest) error {
	if request.ID == "" {
		return ErrClinicIDRequired
	}

	clinic, err := s.clinicRepository.GetByID(request.ID)
	if err != nil {
		logrus.Error("Error getting clinic by id on the repository:", err)
		return NewClinicError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao buscar clínica no banco de dados")
	}

	if clinic == nil {
		return NewClinicErrorWithID(ErrClinicNotFound, apiErrors.ErrClinicNotFound, request.ID, "Clínica não encontrada")
	}

	if request.PlanTier != nil {
		normalized := domain.ParsePlanTier(string(*request.PlanTier))
		request.PlanTier = &normalized
	}

	if err := s.clinicRepository.Update(request); err != nil {
		logrus.Error("Error updating clinic on the repository:", err)
		return NewClinicErrorWithID(ErrUpdateClinic, apiErrors.ErrDatabaseOperation, request.ID, "Falha ao atualizar clínica no banco de dados")
	}

	return nil
}

// AllowedSections resolve as seções visíveis para o plano contratado da
// clínica.
func (s *Service) AllowedSections(clinicID string) ([]domain.SectionID, error) {
	clinic, err := s.GetClinic(clinicID)
	if err != nil {
		return nil, err
	}

	return domain.AllowedSections(clinic.PlanTier), nil
}
