package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/vfg2006/sales-ops-api/internal/domain"
	"github.com/vfg2006/sales-ops-api/internal/usecases/period"
	"github.com/vfg2006/sales-ops-api/pkg/apiErrors"
	"github.com/vfg2006/sales-ops-api/pkg/log"
	"github.com/vfg2006/sales-ops-api/pkg/metrics"
	"github.com/vfg2006/sales-ops-api/pkg/middleware"
	"github.com/vfg2006/sales-ops-api/pkg/utils"
)

// Painéis do dashboard, usados como label nas métricas
const (
	PanelMetrics    = "metrics"
	PanelFunnel     = "funnel"
	PanelRanking    = "ranking"
	PanelComparison = "comparison"
)

type dashboardFunc[T any] func(ctx context.Context, filters domain.DashboardFilters, scope domain.Scope) (T, error)

func GetDashboardMetrics(fn dashboardFunc[*domain.MetricsResponse]) http.Handler {
	return serveDashboard(PanelMetrics, fn)
}

func GetDashboardFunnel(fn dashboardFunc[*domain.FunnelResponse]) http.Handler {
	return serveDashboard(PanelFunnel, fn)
}

func GetDashboardRanking(fn dashboardFunc[*domain.RankingResponse]) http.Handler {
	return serveDashboard(PanelRanking, fn)
}

func GetDashboardComparison(fn dashboardFunc[*domain.ComparisonResponse]) http.Handler {
	return serveDashboard(PanelComparison, fn)
}

func serveDashboard[T any](panel string, fn dashboardFunc[T]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context()).WithField("panel", panel)

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		filters, err := parseDashboardFilters(r, panel == PanelRanking)
		if err != nil {
			logger.WithFields(log.Fields{
				"query": r.URL.RawQuery,
				"error": err.Error(),
			}).Warn("dashboard: parâmetros inválidos")

			code := apiErrors.ErrInvalidFormat
			if errors.Is(err, domain.ErrUnknownGroupBy) {
				code = apiErrors.ErrInvalidGroupBy
			}
			apiErrors.WriteError(w, code, err.Error(), nil)
			return
		}

		response, err := fn(r.Context(), filters, claims.Scope())
		metrics.RecordDashboardComputation(panel, err)
		if err != nil {
			code, message := dashboardError(err)
			logger.WithFields(log.Fields{
				"period": filters.Period,
				"code":   code,
				"error":  err.Error(),
			}).Warn("dashboard: falha ao calcular painel")

			apiErrors.WriteError(w, code, message, nil)
			return
		}

		writeJSON(w, r, http.StatusOK, response)
	})
}

// parseDashboardFilters lê period, start_date e end_date; group_by só é lido pelo ranking
func parseDashboardFilters(r *http.Request, withGroupBy bool) (domain.DashboardFilters, error) {
	query := r.URL.Query()

	startDate, err := utils.ParseDate(query.Get("start_date"))
	if err != nil {
		return domain.DashboardFilters{}, errors.New("start_date deve estar no formato YYYY-MM-DD")
	}

	endDate, err := utils.ParseDate(query.Get("end_date"))
	if err != nil {
		return domain.DashboardFilters{}, errors.New("end_date deve estar no formato YYYY-MM-DD")
	}

	filters := domain.DashboardFilters{
		Period:    query.Get("period"),
		StartDate: startDate,
		EndDate:   endDate,
	}

	if withGroupBy {
		groupBy, err := domain.ParseGroupBy(query.Get("group_by"))
		if err != nil {
			return domain.DashboardFilters{}, err
		}
		filters.GroupBy = groupBy
	}

	return filters, nil
}

// dashboardError traduz erros de domínio para os códigos da API
func dashboardError(err error) (string, string) {
	switch {
	case errors.Is(err, period.ErrUnknownPeriod), errors.Is(err, period.ErrMissingBounds):
		return apiErrors.ErrInvalidPeriod, err.Error()
	case errors.Is(err, domain.ErrInvalidWindow):
		return apiErrors.ErrInvalidWindow, err.Error()
	case errors.Is(err, domain.ErrUnknownGroupBy):
		return apiErrors.ErrInvalidGroupBy, err.Error()
	default:
		return apiErrors.ErrDatabaseOperation, "Erro ao calcular o painel"
	}
}
