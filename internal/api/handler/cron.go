package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-ops-api/pkg/apiErrors"
	"github.com/vfg2006/sales-ops-api/pkg/log"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeRankingSnapshot = "ranking-snapshot"
)

// ManualSyncer é uma cron job que pode ser disparada pela API
type ManualSyncer interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	RankingSnapshotSyncService ManualSyncer
}

func (s CronJobServices) byType(cronType string) (ManualSyncer, bool) {
	switch cronType {
	case CronJobTypeRankingSnapshot:
		return s.RankingSnapshotSyncService, s.RankingSnapshotSyncService != nil
	default:
		return nil, false
	}
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		syncer, ok := services.byType(cronType)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: "+CronJobTypeRankingSnapshot, nil)
			return
		}

		logger.WithField("type", cronType).Info("cron: execução manual solicitada")
		syncer.TriggerManualSync()

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.RankingSnapshotSyncService != nil {
			status[CronJobTypeRankingSnapshot] = services.RankingSnapshotSyncService.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	})
}
