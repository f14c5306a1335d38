package domain

import "time"

type RankingSnapshotResponse struct {
	Month      string                `json:"month"`
	GroupBy    GroupBy               `json:"group_by"`
	Ranking    []RankingSnapshotItem `json:"ranking"`
	LastUpdate time.Time             `json:"last_update"`
}

type RankingSnapshotItem struct {
	ID               int       `json:"id"`
	RunID            string    `json:"run_id"`
	Month            string    `json:"month"` // Formato mm-yyyy (ex: 01-2024)
	GroupBy          GroupBy   `json:"group_by"`
	EntityID         string    `json:"entity_id"`
	EntityName       string    `json:"entity_name"`
	Revenue          float64   `json:"revenue"`
	WonCount         int       `json:"won_count"`
	AttendedCount    int       `json:"attended_count"`
	CloseRate        float64   `json:"close_rate"`
	Position         int       `json:"position"`
	PositionChange   int       `json:"position_change"` // Valor positivo = subiu, negativo = desceu, 0 = manteve
	PreviousPosition int       `json:"previous_position"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// RankingSnapshotRun identifica uma execução do job: o mês e todos os agrupamentos calculados,
// inclusive os que terminaram sem nenhuma entidade ativa
type RankingSnapshotRun struct {
	RunID    string
	Month    string
	GroupBys []GroupBy
}
