package domain

// PlanTier é o nível de assinatura da clínica, totalmente ordenado.
type PlanTier string

const (
	PlanEssential  PlanTier = "essential"
	PlanPro        PlanTier = "pro"
	PlanEnterprise PlanTier = "enterprise"
)

// planOrder define a ordem total essential < pro < enterprise.
var planOrder = map[PlanTier]int{
	PlanEssential:  1,
	PlanPro:        2,
	PlanEnterprise: 3,
}

// SectionID identifica um módulo do dashboard.
type SectionID string

const (
	SectionOverview   SectionID = "overview"
	SectionAgenda     SectionID = "agenda"
	SectionRevenue    SectionID = "revenue"
	SectionAlerts     SectionID = "alerts"
	SectionRCA        SectionID = "rca"
	SectionBenchmarks SectionID = "benchmarks"
	SectionCRM        SectionID = "crm"
	SectionForecasts  SectionID = "forecasts"
	SectionExports    SectionID = "exports"
)

// sectionMinimumPlan é a matriz de acesso: cada seção exige um plano mínimo.
// Tabela estática carregada na inicialização e nunca mutada; a monotonicidade
// (planos maiores enxergam tudo que os menores enxergam) decorre da forma
// "plano mínimo por seção".
var sectionMinimumPlan = map[SectionID]PlanTier{
	SectionOverview:   PlanEssential,
	SectionAgenda:     PlanEssential,
	SectionRevenue:    PlanEssential,
	SectionAlerts:     PlanEssential,
	SectionRCA:        PlanPro,
	SectionBenchmarks: PlanPro,
	SectionCRM:        PlanPro,
	SectionForecasts:  PlanEnterprise,
	SectionExports:    PlanEnterprise,
}

// sectionOrder fixa a ordem de listagem das seções nas respostas da API.
var sectionOrder = []SectionID{
	SectionOverview,
	SectionAgenda,
	SectionRevenue,
	SectionAlerts,
	SectionRCA,
	SectionBenchmarks,
	SectionCRM,
	SectionForecasts,
	SectionExports,
}

// ParsePlanTier normaliza uma string para um PlanTier válido.
// Valores desconhecidos resolvem para o plano mais restrito.
func ParsePlanTier(raw string) PlanTier {
	tier := PlanTier(raw)
	if _, ok := planOrder[tier]; ok {
		return tier
	}
	return PlanEssential
}

// PlanAtLeast informa se o plano atende o mínimo exigido.
func PlanAtLeast(plan, minimum PlanTier) bool {
	return planOrder[plan] >= planOrder[minimum]
}

// MinimumPlanFor retorna o plano mínimo que enxerga a seção. Seções
// desconhecidas exigem o plano mais alto.
func MinimumPlanFor(section SectionID) PlanTier {
	if minimum, ok := sectionMinimumPlan[section]; ok {
		return minimum
	}
	return PlanEnterprise
}

// IsSectionAllowed informa se o plano enxerga a seção.
func IsSectionAllowed(plan PlanTier, section SectionID) bool {
	return PlanAtLeast(plan, MinimumPlanFor(section))
}

// AllowedSections lista, em ordem estável, as seções visíveis para o plano.
func AllowedSections(plan PlanTier) []SectionID {
	sections := make([]SectionID, 0, len(sectionOrder))
	for _, section := range sectionOrder {
		if IsSectionAllowed(plan, section) {
			sections = append(sections, section)
		}
	}
	return sections
}

// AllSections lista todas as seções conhecidas em ordem estável.
func AllSections() []SectionID {
	sections := make([]SectionID, len(sectionOrder))
	copy(sections, sectionOrder)
	return sections
}
