package handler

import (
	"encoding/json"
	"net/http"

	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/clinsight/clinic-insights-api/internal/usecases/aggregating"
	"github.com/clinsight/clinic-insights-api/internal/usecases/alerting"
	clinicusecase "github.com/clinsight/clinic-insights-api/internal/usecases/clinic"
	"github.com/clinsight/clinic-insights-api/pkg/apiErrors"
	"github.com/clinsight/clinic-insights-api/pkg/log"
	"github.com/julienschmidt/httprouter"
)

type AlertsResponse struct {
	Alerts          []domain.AlertEvent `json:"alerts"`
	HighestSeverity domain.Severity     `json:"highest_severity"`
}

// GetAlerts avalia o snapshot corrente da clínica e devolve os desvios
// detectados. Alertas são recalculados a cada consulta, nunca lidos do banco.
func GetAlerts(
	snapshotService aggregating.SnapshotService,
	alertService alerting.AlertService,
	clinicService clinicusecase.ClinicService,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		clinicID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if clinicID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da clínica não fornecido", nil)
			return
		}

		clinic, err := clinicService.GetClinic(clinicID)
		if err != nil {
			handleClinicError(w, err)
			return
		}

		filters, err := parseFilterState(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Datas do filtro devem estar no formato YYYY-MM-DD", nil)
			return
		}

		snapshot, err := snapshotService.GetSnapshot(clinicID, *filters)
		if err != nil {
			logger.WithFields(log.Fields{
				"clinic_id": clinicID,
				"error":     err.Error(),
			}).Error("alerts: failed to build snapshot for evaluation")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao calcular o snapshot", nil)
			return
		}

		alerts := alertService.EvaluateAlerts(snapshot, clinic)

		// O filtro de severidade recorta a resposta, não a avaliação.
		if filters.Severity != "" {
			filtered := make([]domain.AlertEvent, 0, len(alerts))
			for _, alert := range alerts {
				if string(alert.Severity) == filters.Severity {
					filtered = append(filtered, alert)
				}
			}
			alerts = filtered
		}

		logger.WithFields(log.Fields{
			"clinic_id": clinicID,
			"alerts":    len(alerts),
		}).Info("alerts: evaluation completed")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(AlertsResponse{
			Alerts:          alerts,
			HighestSeverity: alertService.HighestSeverity(alerts),
		})
	})
}

// DraftRCA devolve o rascunho de RCA para o alerta informado no corpo: o já
// salvo para a clínica, se houver, ou um novo. Nada é persistido aqui: o
// operador edita e salva explicitamente depois.
func DraftRCA(alertService alerting.AlertService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		clinicID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if clinicID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da clínica não fornecido", nil)
			return
		}

		var alert domain.AlertEvent
		if err := json.NewDecoder(r.Body).Decode(&alert); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if alert.ID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do alerta não fornecido", nil)
			return
		}

		draft, err := alertService.DraftRCA(clinicID, alert)
		if err != nil {
			logger.WithFields(log.Fields{
				"clinic_id": clinicID,
				"alert_id":  alert.ID,
				"error":     err.Error(),
			}).Error("alerts: failed to load RCA draft")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar rascunho de RCA", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(draft)
	})
}

// SaveRCA persiste o rascunho editado pelo operador. Falha de persistência é
// terminal para a operação: o operador precisa tentar de novo.
func SaveRCA(alertService alerting.AlertService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		clinicID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if clinicID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da clínica não fornecido", nil)
			return
		}

		var draft domain.RcaDraftPayload
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if err := alertService.SaveRCA(clinicID, &draft); err != nil {
			logger.WithFields(log.Fields{
				"clinic_id": clinicID,
				"alert_id":  draft.AlertID,
				"error":     err.Error(),
			}).Error("alerts: failed to save RCA draft")

			switch err {
			case alerting.ErrAlertNotInformed:
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do alerta não fornecido no rascunho", nil)
			default:
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Falha ao salvar o rascunho de RCA; tente novamente", nil)
			}
			return
		}

		logger.WithFields(log.Fields{
			"clinic_id": clinicID,
			"alert_id":  draft.AlertID,
		}).Info("alerts: RCA draft saved")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(draft)
	})
}

// ListRCAs lista os rascunhos de RCA persistidos da clínica.
func ListRCAs(alertService alerting.AlertService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		clinicID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if clinicID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da clínica não fornecido", nil)
			return
		}

		drafts, err := alertService.ListRCAs(clinicID)
		if err != nil {
			logger.WithError(err).Error("alerts: failed to list RCA drafts")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar rascunhos de RCA", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(drafts)
	})
}
