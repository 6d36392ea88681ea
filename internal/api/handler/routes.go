package handler

import (
	"net/http"

	"github.com/clinsight/clinic-insights-api/internal/api/handler/router"
	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/clinsight/clinic-insights-api/internal/usecases/aggregating"
	"github.com/clinsight/clinic-insights-api/internal/usecases/alerting"
	"github.com/clinsight/clinic-insights-api/internal/usecases/authenticating"
	clinicusecase "github.com/clinsight/clinic-insights-api/internal/usecases/clinic"
	"github.com/clinsight/clinic-insights-api/internal/usecases/ingesting"
	"github.com/clinsight/clinic-insights-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Clinics(service clinicusecase.ClinicService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/clinics",
			Method:      http.MethodGet,
			Handler:     ListClinics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/clinics",
			Method:      http.MethodPost,
			Handler:     CreateClinic(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/clinics/:id",
			Method:      http.MethodGet,
			Handler:     GetClinic(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/clinics/:id",
			Method:      http.MethodPut,
			Handler:     UpdateClinic(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Uploads(service ingesting.IngestService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/uploads/preview",
			Method:      http.MethodPost,
			Handler:     PreviewUpload(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/clinics/:id/uploads",
			Method:      http.MethodPost,
			Handler:     CommitUpload(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/clinics/:id/uploads",
			Method:      http.MethodGet,
			Handler:     ListUploadBatches(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Snapshots(service aggregating.SnapshotService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/clinics/:id/snapshot",
			Method:  http.MethodGet,
			Handler: GetSnapshot(service),
			Middlewares: []func(http.Handler) http.Handler{
				middleware.AllRoles(),
				middleware.RequireSection(domain.SectionOverview),
			},
		},
	}
}

func Alerts(
	snapshotService aggregating.SnapshotService,
	alertService alerting.AlertService,
	clinicService clinicusecase.ClinicService,
) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/clinics/:id/alerts",
			Method:  http.MethodGet,
			Handler: GetAlerts(snapshotService, alertService, clinicService),
			Middlewares: []func(http.Handler) http.Handler{
				middleware.AllRoles(),
				middleware.RequireSection(domain.SectionAlerts),
			},
		},
		{
			Path:    "/v1/clinics/:id/rca/draft",
			Method:  http.MethodPost,
			Handler: DraftRCA(alertService),
			Middlewares: []func(http.Handler) http.Handler{
				middleware.AllRoles(),
				middleware.RequireSection(domain.SectionRCA),
			},
		},
		{
			Path:    "/v1/clinics/:id/rca",
			Method:  http.MethodPost,
			Handler: SaveRCA(alertService),
			Middlewares: []func(http.Handler) http.Handler{
				middleware.AllRoles(),
				middleware.RequireSection(domain.SectionRCA),
			},
		},
		{
			Path:    "/v1/clinics/:id/rca",
			Method:  http.MethodGet,
			Handler: ListRCAs(alertService),
			Middlewares: []func(http.Handler) http.Handler{
				middleware.AllRoles(),
				middleware.RequireSection(domain.SectionRCA),
			},
		},
	}
}

func Sections() []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sections",
			Method:      http.MethodGet,
			Handler:     GetSections(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Formulas() []router.Route {
	return []router.Route{
		{
			Path:        "/v1/formulas",
			Method:      http.MethodGet,
			Handler:     ListFormulas(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/formulas/:key",
			Method:      http.MethodGet,
			Handler:     GetFormulaByKey(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
	}
}
