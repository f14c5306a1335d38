// Package insighting calcula os KPIs e o funil de conversão de um conjunto de registros.
package insighting

import (
	"github.com/vfg2006/sales-ops-api/internal/domain"
	"github.com/vfg2006/sales-ops-api/pkg/utils"
)

// Aggregator não guarda estado além do classificador; é seguro para uso concorrente
type Aggregator struct {
	classifier Classifier
}

func NewAggregator(classifier Classifier) *Aggregator {
	return &Aggregator{classifier: classifier}
}

// Aggregate filtra os registros pela janela e calcula o pacote de métricas
func (a *Aggregator) Aggregate(deals []domain.Deal, window domain.Window) (domain.MetricsBundle, error) {
	if err := window.Validate(); err != nil {
		return domain.MetricsBundle{}, err
	}

	return a.Summarize(FilterWindow(deals, window)), nil
}

// Summarize calcula as métricas sobre todos os registros recebidos, sem filtrar por janela
func (a *Aggregator) Summarize(deals []domain.Deal) domain.MetricsBundle {
	bundle := domain.MetricsBundle{TotalCount: len(deals)}

	for _, deal := range deals {
		classification := a.classifier.Classify(deal)

		switch classification.Category {
		case domain.CategoryNoShow:
			bundle.NoShowCount++
		case domain.CategoryWon:
			bundle.WonCount++
			bundle.WonRevenue += deal.Value
		case domain.CategoryNegotiating:
			bundle.NegotiatingCount++
		case domain.CategoryRefunded:
			bundle.RefundedCount++
		}
	}

	bundle.AttendedCount = bundle.TotalCount - bundle.NoShowCount
	bundle.AttendanceRate = utils.SafeDivide(float64(bundle.AttendedCount), float64(bundle.TotalCount))
	// Conversão é medida sobre quem compareceu: no-show nunca converte
	bundle.ConversionRate = utils.SafeDivide(float64(bundle.WonCount), float64(bundle.AttendedCount))
	bundle.AverageTicket = utils.SafeDivide(bundle.WonRevenue, float64(bundle.WonCount))

	return bundle
}

// FilterWindow devolve uma nova fatia; a entrada não é alterada
func FilterWindow(deals []domain.Deal, window domain.Window) []domain.Deal {
	filtered := make([]domain.Deal, 0, len(deals))
	for _, deal := range deals {
		if window.Contains(deal.OccurredAt) {
			filtered = append(filtered, deal)
		}
	}
	return filtered
}
