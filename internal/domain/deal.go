// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// Source identifica de qual esquema de origem o registro foi adaptado
type Source string

const (
	SourceAttendance Source = "attendance"
	SourcePipeline   Source = "pipeline"
)

// Deal é o registro canônico consumido pelo motor de métricas.
// A categoria canônica não é armazenada: é sempre derivada pelo classificador.
type Deal struct {
	ID          string    `json:"id"`
	Source      Source    `json:"source"`
	Closer      *string   `json:"closer,omitempty"`
	SDR         *string   `json:"sdr,omitempty"`
	TeamID      *string   `json:"team_id,omitempty"`
	OriginID    *string   `json:"origin_id,omitempty"`
	OriginLabel *string   `json:"origin_label,omitempty"`
	RawStatus   string    `json:"raw_status"`
	StageCode   string    `json:"stage_code,omitempty"`
	Value       float64   `json:"value"`
	OccurredAt  time.Time `json:"occurred_at"`
}
