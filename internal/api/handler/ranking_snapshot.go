package handler

import (
	"errors"
	"net/http"

	"github.com/vfg2006/sales-ops-api/internal/domain"
	"github.com/vfg2006/sales-ops-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-ops-api/pkg/apiErrors"
	"github.com/vfg2006/sales-ops-api/pkg/log"
)

// GetRankingSnapshot retorna o ranking persistido de um mês (month=mm-yyyy)
func GetRankingSnapshot(service ranking.SnapshotService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		groupBy, err := domain.ParseGroupBy(r.URL.Query().Get("group_by"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidGroupBy, err.Error(), nil)
			return
		}

		month := r.URL.Query().Get("month")
		snapshot, err := service.GetSnapshot(r.Context(), month, groupBy)
		if err != nil {
			if errors.Is(err, ranking.ErrInvalidMonth) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
				return
			}

			logger.WithFields(log.Fields{
				"month":    month,
				"group_by": groupBy,
				"error":    err.Error(),
			}).Error("ranking-snapshot: erro ao buscar snapshot")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar ranking do mês", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, snapshot)
	})
}

// GetRankingSnapshotPeriods lista os meses com snapshot disponível
func GetRankingSnapshotPeriods(service ranking.SnapshotService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		groupBy, err := domain.ParseGroupBy(r.URL.Query().Get("group_by"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidGroupBy, err.Error(), nil)
			return
		}

		periods, err := service.GetAvailablePeriods(r.Context(), groupBy)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("ranking-snapshot: erro ao listar períodos")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar períodos disponíveis", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, periods)
	})
}
