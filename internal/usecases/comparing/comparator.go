// Package comparing compara as métricas de uma janela com a janela anterior de mesma duração.
package comparing

import (
	"github.com/vfg2006/sales-ops-api/internal/domain"
	"github.com/vfg2006/sales-ops-api/internal/usecases/period"
)

// Aggregator calcula o pacote de métricas de uma janela
type Aggregator interface {
	Aggregate(deals []domain.Deal, window domain.Window) (domain.MetricsBundle, error)
}

type Comparator struct {
	aggregator Aggregator
}

func NewComparator(aggregator Aggregator) *Comparator {
	return &Comparator{aggregator: aggregator}
}

// Compare calcula as métricas da janela e da anterior sobre o mesmo conjunto de registros
func (c *Comparator) Compare(deals []domain.Deal, window domain.Window) (domain.Comparison, error) {
	comparison, _, err := c.CompareWithPrevious(deals, window)
	return comparison, err
}

// CompareWithPrevious também devolve a janela anterior usada na comparação
func (c *Comparator) CompareWithPrevious(deals []domain.Deal, window domain.Window) (domain.Comparison, domain.Window, error) {
	if err := window.Validate(); err != nil {
		return nil, domain.Window{}, err
	}

	previousWindow := period.Previous(window)

	current, err := c.aggregator.Aggregate(deals, window)
	if err != nil {
		return nil, domain.Window{}, err
	}

	previous, err := c.aggregator.Aggregate(deals, previousWindow)
	if err != nil {
		return nil, domain.Window{}, err
	}

	return Build(current, previous), previousWindow, nil
}

// Build monta a comparação a partir de dois pacotes já calculados
func Build(current, previous domain.MetricsBundle) domain.Comparison {
	comparison := domain.Comparison{
		domain.MetricRevenue:       relative(current.WonRevenue, previous.WonRevenue),
		domain.MetricWonCount:      relative(float64(current.WonCount), float64(previous.WonCount)),
		domain.MetricTotalCount:    relative(float64(current.TotalCount), float64(previous.TotalCount)),
		domain.MetricAverageTicket: relative(current.AverageTicket, previous.AverageTicket),
	}

	currentRate := current.ConversionRate * 100
	previousRate := previous.ConversionRate * 100
	comparison[domain.MetricConversionRate] = domain.MetricComparison{
		Current:  currentRate,
		Previous: previousRate,
		Change:   currentRate - previousRate,
	}

	return comparison
}

func relative(current, previous float64) domain.MetricComparison {
	return domain.MetricComparison{
		Current:  current,
		Previous: previous,
		Change:   PercentChange(current, previous),
	}
}

// PercentChange é a variação relativa em %. Sem base anterior: 100 se houve valor, 0 caso contrário.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}
