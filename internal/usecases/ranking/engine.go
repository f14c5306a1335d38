// Package ranking ordena closers, SDRs e times por receita e calcula a taxa de fechamento
// de cada um sobre o elenco ativo.
package ranking

import (
	"sort"

	"github.com/vfg2006/sales-ops-api/internal/domain"
	"github.com/vfg2006/sales-ops-api/internal/usecases/insighting"
	"github.com/vfg2006/sales-ops-api/pkg/utils"
)

// Summarizer calcula o pacote de métricas de um subconjunto já filtrado
type Summarizer interface {
	Summarize(deals []domain.Deal) domain.MetricsBundle
}

type Engine struct {
	summarizer Summarizer
}

func NewEngine(summarizer Summarizer) *Engine {
	return &Engine{summarizer: summarizer}
}

// Rank gera uma linha por entidade ativa, na ordem recebida, e ordena por receita
// decrescente. Empates mantêm a ordem de entrada. Entidades sem atividade aparecem zeradas.
// Para o agrupamento por time o closer de cada registro é resolvido pelo lookup; registros
// sem time resolvido ficam fora de todos os times.
func (e *Engine) Rank(
	deals []domain.Deal,
	entities []domain.Entity,
	window domain.Window,
	groupBy domain.GroupBy,
	lookup domain.TeamLookup,
) ([]domain.EntityStats, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	attribute, err := attribution(groupBy, lookup)
	if err != nil {
		return nil, err
	}

	active := activeEntities(entities)
	index := indexEntities(active, groupBy)
	subsets := make([][]domain.Deal, len(active))

	for _, deal := range insighting.FilterWindow(deals, window) {
		key, ok := attribute(deal)
		if !ok {
			continue
		}

		position, exists := index[key]
		if !exists {
			continue
		}

		subsets[position] = append(subsets[position], deal)
	}

	ranking := make([]domain.EntityStats, 0, len(active))
	for i, entity := range active {
		bundle := e.summarizer.Summarize(subsets[i])

		ranking = append(ranking, domain.EntityStats{
			EntityID:      entity.ID,
			Name:          entity.Name,
			TotalCount:    bundle.TotalCount,
			AttendedCount: bundle.AttendedCount,
			WonCount:      bundle.WonCount,
			Revenue:       bundle.WonRevenue,
			CloseRate:     utils.SafeDivide(float64(bundle.WonCount), float64(bundle.AttendedCount)),
		})
	}

	updatePositions(ranking)

	return ranking, nil
}

func updatePositions(ranking []domain.EntityStats) {
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Revenue > ranking[j].Revenue
	})

	for i := range ranking {
		ranking[i].Position = i + 1
	}
}

// attribution devolve a chave de entidade de cada registro conforme o agrupamento
func attribution(groupBy domain.GroupBy, lookup domain.TeamLookup) (func(domain.Deal) (string, bool), error) {
	switch groupBy {
	case domain.GroupByCloser:
		return func(deal domain.Deal) (string, bool) {
			return keyOf(deal.Closer)
		}, nil
	case domain.GroupBySDR:
		return func(deal domain.Deal) (string, bool) {
			return keyOf(deal.SDR)
		}, nil
	case domain.GroupByTeam:
		return func(deal domain.Deal) (string, bool) {
			teamID, ok := lookup.TeamOf(deal.Closer)
			if !ok {
				return "", false
			}
			return domain.EntityKey(teamID), true
		}, nil
	default:
		return nil, domain.ErrUnknownGroupBy
	}
}

func keyOf(value *string) (string, bool) {
	if value == nil {
		return "", false
	}
	key := domain.EntityKey(*value)
	return key, key != ""
}

func activeEntities(entities []domain.Entity) []domain.Entity {
	active := make([]domain.Entity, 0, len(entities))
	for _, entity := range entities {
		if entity.Active {
			active = append(active, entity)
		}
	}
	return active
}

// indexEntities indexa por id e, para closers e SDRs, também por nome.
// Ids são registrados primeiro e nunca são sobrescritos por um nome.
func indexEntities(entities []domain.Entity, groupBy domain.GroupBy) map[string]int {
	index := make(map[string]int, len(entities)*2)
	for i, entity := range entities {
		if key := domain.EntityKey(entity.ID); key != "" {
			index[key] = i
		}
	}

	if groupBy == domain.GroupByTeam {
		return index
	}

	for i, entity := range entities {
		key := domain.EntityKey(entity.Name)
		if key == "" {
			continue
		}
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}
	return index
}
