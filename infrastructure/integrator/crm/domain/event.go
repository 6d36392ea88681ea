package domain

// AppointmentEvent é o evento de agenda como o CRM entrega na API de
// integração.
type AppointmentEvent struct {
	LeadID       string  `json:"lead_id"`
	ScheduledAt  string  `json:"scheduled_at"`
	Channel      string  `json:"channel"`
	Professional string  `json:"professional"`
	Procedure    string  `json:"procedure"`
	Status       string  `json:"status"`
	Pipeline     string  `json:"pipeline"`
	Unit         string  `json:"unit"`
	Value        float64 `json:"value"`
	TicketAvg    float64 `json:"ticket_avg"`
}

// FetchEventsParams delimita a janela de busca de eventos por clínica.
type FetchEventsParams struct {
	ClinicExternalID string
	StartDate        string
	EndDate          string
}
