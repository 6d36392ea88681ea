package handler

import (
	"encoding/json"
	"net/http"

	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/clinsight/clinic-insights-api/pkg/apiErrors"
	"github.com/clinsight/clinic-insights-api/pkg/middleware"
)

type SectionEntry struct {
	Section     domain.SectionID `json:"section"`
	MinimumPlan domain.PlanTier  `json:"minimum_plan"`
	Allowed     bool             `json:"allowed"`
}

type SectionsResponse struct {
	PlanTier domain.PlanTier `json:"plan_tier"`
	Sections []SectionEntry  `json:"sections"`
}

// GetSections devolve a matriz de acesso avaliada para o plano do token: o
// que o painel mostra, o que fica atrás de upgrade.
func GetSections() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		tier := domain.ParsePlanTier(string(userClaims.PlanTier))

		sections := make([]SectionEntry, 0, len(domain.AllSections()))
		for _, section := range domain.AllSections() {
			sections = append(sections, SectionEntry{
				Section:     section,
				MinimumPlan: domain.MinimumPlanFor(section),
				Allowed:     domain.IsSectionAllowed(tier, section),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SectionsResponse{
			PlanTier: tier,
			Sections: sections,
		})
	}
}
