package domain

import (
	"time"
)

// FactStatus é o status canônico de um evento operacional da clínica
type FactStatus string

const (
	StatusScheduled FactStatus = "scheduled"
	StatusCompleted FactStatus = "completed"
	StatusCancelled FactStatus = "cancelled"
	StatusNoShow    FactStatus = "no-show"
)

// SourceType identifica a origem de um fato normalizado
type SourceType string

const (
	SourceCRM     SourceType = "crm"
	SourceAPI     SourceType = "api"
	SourceWebhook SourceType = "webhook"
	SourceManual  SourceType = "manual"
	SourceUpload  SourceType = "upload"
)

// FactRow representa um evento operacional/financeiro normalizado da clínica.
// É imutável após o commit: novos uploads substituem lotes inteiros, nunca
// linhas individuais.
type FactRow struct {
	ID                  string     `json:"id"`
	ClinicID            string     `json:"clinic_id,omitempty"`
	BatchID             string     `json:"batch_id,omitempty"`
	Timestamp           time.Time  `json:"timestamp"`
	Channel             string     `json:"channel"`
	Professional        string     `json:"professional"`
	Procedure           string     `json:"procedure"`
	Status              FactStatus `json:"status"`
	Pipeline            string     `json:"pipeline,omitempty"`
	Unit                string     `json:"unit,omitempty"`
	Entries             float64    `json:"entries"`
	Exits               float64    `json:"exits"`
	SlotsAvailable      int        `json:"slots_available"`
	SlotsEmpty          int        `json:"slots_empty"`
	TicketAverage       float64    `json:"ticket_average"`
	VariableCost        float64    `json:"variable_cost"`
	DurationMinutes     float64    `json:"duration_minutes"`
	Materials           []string   `json:"materials"`
	WaitMinutes         float64    `json:"wait_minutes"`
	NPSScore            float64    `json:"nps_score"`
	BaseRevenueCurrent  float64    `json:"base_revenue_current"`
	BaseRevenuePrevious float64    `json:"base_revenue_previous"`
	CRMLeadID           string     `json:"crm_lead_id,omitempty"`
	SourceType          SourceType `json:"source_type,omitempty"`
}

// FilterState representa o recorte aplicado sobre os fatos antes da agregação.
// Campos vazios ou "all" não filtram.
type FilterState struct {
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Channel      string     `json:"channel,omitempty"`
	Professional string     `json:"professional,omitempty"`
	Procedure    string     `json:"procedure,omitempty"`
	Status       string     `json:"status,omitempty"`
	Unit         string     `json:"unit,omitempty"`
	Pipeline     string     `json:"pipeline,omitempty"`
	Severity     string     `json:"severity,omitempty"`
}
