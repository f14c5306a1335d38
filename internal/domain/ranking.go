package domain

import (
	"errors"
	"strings"
)

// ErrUnknownGroupBy é retornado para agrupamentos fora de closer, sdr e team
var ErrUnknownGroupBy = errors.New("agrupamento de ranking desconhecido")

type GroupBy string

const (
	GroupByCloser GroupBy = "closer"
	GroupBySDR    GroupBy = "sdr"
	GroupByTeam   GroupBy = "team"
)

func ParseGroupBy(value string) (GroupBy, error) {
	switch g := GroupBy(strings.ToLower(strings.TrimSpace(value))); g {
	case GroupByCloser, GroupBySDR, GroupByTeam:
		return g, nil
	case "":
		return GroupByCloser, nil
	default:
		return "", ErrUnknownGroupBy
	}
}

// Entity é um closer, SDR ou time do elenco atual
type Entity struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Active bool    `json:"active"`
	TeamID *string `json:"team_id,omitempty"`
}

// Roster é o elenco completo usado para semear os acumuladores do ranking
type Roster struct {
	Closers []Entity
	SDRs    []Entity
	Teams   []Entity
}

// Entities retorna o elenco correspondente ao agrupamento
func (r Roster) Entities(groupBy GroupBy) []Entity {
	switch groupBy {
	case GroupBySDR:
		return r.SDRs
	case GroupByTeam:
		return r.Teams
	default:
		return r.Closers
	}
}

// TeamLookup mapeia a chave normalizada do closer (id ou nome) para o id do time
type TeamLookup map[string]string

// NewTeamLookup constrói o lookup a partir dos closers que têm time
func NewTeamLookup(closers []Entity) TeamLookup {
	lookup := make(TeamLookup, len(closers)*2)
	for _, closer := range closers {
		if closer.TeamID == nil || *closer.TeamID == "" {
			continue
		}
		lookup[EntityKey(closer.ID)] = *closer.TeamID
		if closer.Name != "" {
			lookup[EntityKey(closer.Name)] = *closer.TeamID
		}
	}
	return lookup
}

// TeamOf resolve o time do closer; false quando não há vínculo
func (l TeamLookup) TeamOf(closer *string) (string, bool) {
	if closer == nil {
		return "", false
	}
	teamID, ok := l[EntityKey(*closer)]
	return teamID, ok
}

// EntityKey normaliza nomes e ids para comparação
func EntityKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

type EntityStats struct {
	EntityID      string  `json:"entity_id"`
	Name          string  `json:"name"`
	Position      int     `json:"position"`
	TotalCount    int     `json:"total_count"`
	AttendedCount int     `json:"attended_count"`
	WonCount      int     `json:"won_count"`
	Revenue       float64 `json:"revenue"`
	CloseRate     float64 `json:"close_rate"`
}

type RankingResponse struct {
	Window  Window        `json:"window"`
	GroupBy GroupBy       `json:"group_by"`
	Ranking []EntityStats `json:"ranking"`
}
