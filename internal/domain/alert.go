package domain

import "time"

// Severity é o nível de urgência de um alerta. P1 é o mais crítico.
type Severity string

const (
	SeverityP1 Severity = "P1"
	SeverityP2 Severity = "P2"
	SeverityP3 Severity = "P3"
)

// AlertEvent é um desvio detectado sobre um Snapshot. É efêmero: recalculado
// a cada consulta, nunca persistido diretamente (apenas o rascunho de RCA).
// O ID é estável por regra para que rascunhos de RCA sobrevivam ao recálculo.
type AlertEvent struct {
	ID              string   `json:"id"`
	Severity        Severity `json:"severity"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	MetricKey       string   `json:"metric_key"`
	FinancialImpact float64  `json:"financial_impact"`
}

// RcaStatus é o estado de um rascunho de análise de causa raiz. Transições
// terminais (resolved) pertencem ao fluxo externo de tickets.
type RcaStatus string

const (
	RcaStatusOpen RcaStatus = "open"
)

// RcaDraftPayload é o registro editável de RCA vinculado a um alerta.
type RcaDraftPayload struct {
	ID         string    `json:"id,omitempty"`
	ClinicID   string    `json:"clinic_id,omitempty"`
	AlertID    string    `json:"alert_id"`
	Severity   Severity  `json:"severity"`
	Title      string    `json:"title"`
	RootCause  string    `json:"root_cause"`
	ActionPlan string    `json:"action_plan"`
	Owner      string    `json:"owner"`
	DueDate    string    `json:"due_date"` // YYYY-MM-DD, UTC
	Status     RcaStatus `json:"status"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// HighestSeverity retorna a severidade mais urgente da lista: o primeiro P1,
// senão o primeiro P2, senão P3. Lista vazia resolve para P3. O desempate por
// ordem de entrada mantém o resultado determinístico.
func HighestSeverity(alerts []AlertEvent) Severity {
	for _, a := range alerts {
		if a.Severity == SeverityP1 {
			return SeverityP1
		}
	}
	for _, a := range alerts {
		if a.Severity == SeverityP2 {
			return SeverityP2
		}
	}
	return SeverityP3
}
