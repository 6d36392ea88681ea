package crmclient

import (
	"net/http"
	"time"

	crmdomain "github.com/clinsight/clinic-insights-api/infrastructure/integrator/crm/domain"
	"github.com/clinsight/clinic-insights-api/internal/config"
)

type Client interface {
	GetAppointments(params crmdomain.FetchEventsParams) ([]crmdomain.AppointmentEvent, error)
}

type CRMClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &CRMClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: cfg,
	}
}
