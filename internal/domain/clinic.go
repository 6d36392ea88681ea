package domain

import "time"

// Clinic representa uma clínica assinante do produto. O plano controla a
// visibilidade de seções via matriz de acesso; o CAC alimenta a regra de
// alerta CAC x RevPAS quando informado.
type Clinic struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CNPJ      *string   `json:"cnpj"`
	PlanTier  PlanTier  `json:"plan_tier"`
	CAC       float64   `json:"cac"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateClinicRequest atualiza parcialmente uma clínica (campos nil são
// preservados).
type UpdateClinicRequest struct {
	ID       string    `json:"id"`
	Name     *string   `json:"name"`
	CNPJ     *string   `json:"cnpj"`
	PlanTier *PlanTier `json:"plan_tier"`
	CAC      *float64  `json:"cac"`
	Active   *bool     `json:"active"`
}
