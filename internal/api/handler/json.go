package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-ops-api/pkg/apiErrors"
	"github.com/vfg2006/sales-ops-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// writeJSON serializa antes de escrever o status; falha de serialização ainda pode virar 500
func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.ForContext(r.Context()).WithError(err).Error("handler: erro ao serializar resposta")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("handler: conexão encerrada ao enviar resposta")
	}
}
