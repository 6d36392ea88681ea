package handler

import (
	"encoding/json"
	"net/http"

	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/clinsight/clinic-insights-api/internal/usecases/aggregating"
	"github.com/clinsight/clinic-insights-api/pkg/apiErrors"
	"github.com/clinsight/clinic-insights-api/pkg/log"
	"github.com/clinsight/clinic-insights-api/pkg/utils"
	"github.com/julienschmidt/httprouter"
)

// GetSnapshot calcula os KPIs da clínica sobre o recorte pedido na query.
func GetSnapshot(service aggregating.SnapshotService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		clinicID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if clinicID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da clínica não fornecido", nil)
			return
		}

		filters, err := parseFilterState(r)
		if err != nil {
			logger.WithError(err).Warn("snapshot: invalid filter parameters")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Datas do filtro devem estar no formato YYYY-MM-DD", nil)
			return
		}

		snapshot, err := service.GetSnapshot(clinicID, *filters)
		if err != nil {
			logger.WithFields(log.Fields{
				"clinic_id": clinicID,
				"error":     err.Error(),
			}).Error("snapshot: failed to build snapshot")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao calcular o snapshot", nil)
			return
		}

		logger.WithFields(log.Fields{
			"clinic_id": clinicID,
			"facts":     snapshot.TotalFacts,
		}).Info("snapshot: snapshot built")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snapshot); err != nil {
			logger.WithError(err).Error("snapshot: failed to encode response")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// parseFilterState monta o FilterState a partir da query string. Datas vazias
// não filtram.
func parseFilterState(r *http.Request) (*domain.FilterState, error) {
	query := r.URL.Query()

	filters := &domain.FilterState{
		Channel:      query.Get("channel"),
		Professional: query.Get("professional"),
		Procedure:    query.Get("procedure"),
		Status:       query.Get("status"),
		Unit:         query.Get("unit"),
		Pipeline:     query.Get("pipeline"),
		Severity:     query.Get("severity"),
	}

	if raw := query.Get("start_date"); raw != "" {
		startDate, err := utils.ParseDate(raw)
		if err != nil {
			return nil, err
		}
		filters.StartDate = startDate
	}

	if raw := query.Get("end_date"); raw != "" {
		endDate, err := utils.ParseDate(raw)
		if err != nil {
			return nil, err
		}
		filters.EndDate = endDate
	}

	return filters, nil
}
