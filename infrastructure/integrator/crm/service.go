package crm

import (
	"time"

	"github.com/clinsight/clinic-insights-api/infrastructure/integrator/crm/crmclient"
	crmdomain "github.com/clinsight/clinic-insights-api/infrastructure/integrator/crm/domain"
	"github.com/clinsight/clinic-insights-api/internal/config"
	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/clinsight/clinic-insights-api/internal/usecases/ingesting"
)

type CRMIntegrator interface {
	GetAppointmentFacts(clinicID, clinicExternalID string, startDate, endDate time.Time) ([]domain.FactRow, error)
	CheckConnection() (bool, error)
}

type CRMService struct {
	cfg    *config.Config
	Client crmclient.Client
}

func New(cfg *config.Config, client crmclient.Client) CRMIntegrator {
	return &CRMService{
		cfg:    cfg,
		Client: client,
	}
}

// GetAppointmentFacts busca os eventos de agenda do CRM e os converte para
// fatos canônicos com sourceType=crm. O id definitivo e o lote são atribuídos
// no commit, não aqui.
func (s *CRMService) GetAppointmentFacts(clinicID, clinicExternalID string, startDate, endDate time.Time) ([]domain.FactRow, error) {
	events, err := s.Client.GetAppointments(crmdomain.FetchEventsParams{
		ClinicExternalID: clinicExternalID,
		StartDate:        startDate.Format(time.DateOnly),
		EndDate:          endDate.Format(time.DateOnly),
	})
	if err != nil {
		return nil, err
	}

	facts := make([]domain.FactRow, 0, len(events))
	for _, event := range events {
		facts = append(facts, s.mapEvent(clinicID, event))
	}

	return facts, nil
}

func (s *CRMService) mapEvent(clinicID string, event crmdomain.AppointmentEvent) domain.FactRow {
	timestamp, err := time.Parse(time.RFC3339, event.ScheduledAt)
	if err != nil {
		if timestamp, err = time.Parse(time.DateOnly, event.ScheduledAt); err != nil {
			timestamp = time.Now().UTC()
		}
	}

	channel := event.Channel
	if channel == "" {
		channel = "unknown"
	}

	professional := event.Professional
	if professional == "" {
		professional = "unknown"
	}

	procedure := event.Procedure
	if procedure == "" {
		procedure = "unknown"
	}

	return domain.FactRow{
		ClinicID:      clinicID,
		Timestamp:     timestamp,
		Channel:       channel,
		Professional:  professional,
		Procedure:     procedure,
		Status:        ingesting.NormalizeStatus(event.Status),
		Pipeline:      event.Pipeline,
		Unit:          event.Unit,
		Entries:       event.Value,
		TicketAverage: event.TicketAvg,
		Materials:     []string{},
		CRMLeadID:     event.LeadID,
		SourceType:    domain.SourceCRM,
	}
}

// CheckConnection valida as credenciais configuradas com uma janela mínima.
func (s *CRMService) CheckConnection() (bool, error) {
	today := time.Now().UTC()

	_, err := s.Client.GetAppointments(crmdomain.FetchEventsParams{
		StartDate: today.Format(time.DateOnly),
		EndDate:   today.Format(time.DateOnly),
	})
	if err != nil {
		return false, err
	}

	return true, nil
}
