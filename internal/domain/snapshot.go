package domain

// Snapshot é o agregado derivado de um conjunto filtrado de FactRow.
// Nunca é persistido: é recalculado a cada consulta e depende apenas do
// multiconjunto de fatos de entrada (não carrega relógio de parede).
type Snapshot struct {
	GrossRevenue      float64 `json:"gross_revenue"`
	ExitsTotal        float64 `json:"exits_total"`
	NetRevenue        float64 `json:"net_revenue"`
	MarginPercent     float64 `json:"margin_percent"`
	NoShowRate        float64 `json:"no_show_rate"`
	IdleRate          float64 `json:"idle_rate"`
	FinancialImpact   float64 `json:"financial_impact"`
	RevPAS            float64 `json:"revpas"`
	RevPAS7d          float64 `json:"revpas_7d"`
	RevPASDropPercent float64 `json:"revpas_drop_percent"`
	AvgTicket         float64 `json:"avg_ticket"`
	VariableCostTotal float64 `json:"variable_cost_total"`

	TotalFacts     int `json:"total_facts"`
	NoShowCount    int `json:"no_show_count"`
	CancelledCount int `json:"cancelled_count"`
	CompletedCount int `json:"completed_count"`
	SlotsAvailable int `json:"slots_available"`
	SlotsEmpty     int `json:"slots_empty"`
}
