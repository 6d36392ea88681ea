package middleware

import (
	"net/http"

	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/clinsight/clinic-insights-api/pkg/apiErrors"
	"github.com/sirupsen/logrus"
)

// RequireSection restringe a rota às assinaturas que enxergam a seção,
// aplicando a matriz de acesso sobre o plano presente nas claims. O plano
// vem resolvido da assinatura no login; este middleware nunca o busca.
func RequireSection(section domain.SectionID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims)

			if !ok {
				logrus.Warning("Tentativa de acesso a seção sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			if !domain.IsSectionAllowed(userClaims.PlanTier, section) {
				logrus.Warningf(
					"Seção %s indisponível para o plano %s (usuário ID=%d)",
					section, userClaims.PlanTier, userClaims.UserID,
				)
				apiErrors.WriteError(
					w,
					apiErrors.ErrSectionNotInPlan,
					"Este módulo não está disponível no seu plano",
					map[string]any{
						"section":      section,
						"minimum_plan": domain.MinimumPlanFor(section),
					},
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
