package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vfg2006/sales-ops-api/internal/api/handler/router"
	"github.com/vfg2006/sales-ops-api/internal/usecases/dashboard"
	"github.com/vfg2006/sales-ops-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-ops-api/pkg/middleware"
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

func Metrics(registry *prometheus.Registry) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: MetricsHandler(registry),
		},
	}
}

func Dashboard(service dashboard.Dashboarder) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard/metrics",
			Method:      http.MethodGet,
			Handler:     GetDashboardMetrics(service.GetMetrics),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/funnel",
			Method:      http.MethodGet,
			Handler:     GetDashboardFunnel(service.GetFunnel),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/ranking",
			Method:      http.MethodGet,
			Handler:     GetDashboardRanking(service.GetRanking),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/comparison",
			Method:      http.MethodGet,
			Handler:     GetDashboardComparison(service.GetComparison),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// RankingSnapshots expõe o ranking persistido da organização inteira, sem recorte por time
func RankingSnapshots(service ranking.SnapshotService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/rankings/snapshots",
			Method:      http.MethodGet,
			Handler:     GetRankingSnapshot(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/rankings/snapshots/periods",
			Method:      http.MethodGet,
			Handler:     GetRankingSnapshotPeriods(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
