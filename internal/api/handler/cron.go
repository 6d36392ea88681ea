package handler

import (
	"encoding/json"
	"net/http"

	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/clinsight/clinic-insights-api/internal/scheduler"
	"github.com/clinsight/clinic-insights-api/pkg/apiErrors"
	"github.com/clinsight/clinic-insights-api/pkg/middleware"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeCRM       = "crm"
	CronJobTypeRetention = "retention"
	CronJobTypeAll       = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	CRMSyncService        *scheduler.CRMSyncService
	RetentionSweepService *scheduler.RetentionSweepService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Verificar permissões - apenas administradores podem executar cron jobs
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != 1 {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem executar cron jobs", nil)
			return
		}

		// Obter o tipo de cron job da URL
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeCRM:
			if services.CRMSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização do CRM não disponível", nil)
				return
			}
			services.CRMSyncService.TriggerManualSync()

		case CronJobTypeRetention:
			if services.RetentionSweepService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de varredura de retenção não disponível", nil)
				return
			}
			go services.RetentionSweepService.Sweep()

		case CronJobTypeAll:
			if services.CRMSyncService != nil {
				services.CRMSyncService.TriggerManualSync()
			}
			if services.RetentionSweepService != nil {
				go services.RetentionSweepService.Sweep()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: crm, retention, all", nil)
			return
		}

		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != 1 {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem verificar status de cron jobs", nil)
			return
		}

		crmStatus := services.CRMSyncService.GetStatus()

		reachable, err := services.CRMSyncService.CheckCRMConnection()
		crmStatus["crm_reachable"] = reachable
		if err != nil {
			logrus.WithError(err).Warn("Falha ao verificar conexão com o CRM")
			crmStatus["crm_error"] = err.Error()
		}

		status := map[string]any{
			"crm":       crmStatus,
			"retention": services.RetentionSweepService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
