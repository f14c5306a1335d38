package comparing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-ops-api/internal/domain"
	"github.com/vfg2006/sales-ops-api/internal/usecases/classifying"
	"github.com/vfg2006/sales-ops-api/internal/usecases/insighting"
)

func newTestComparator() *Comparator {
	return NewComparator(insighting.NewAggregator(classifying.New(classifying.DefaultTaxonomy())))
}

func deal(status string, value float64, at time.Time) domain.Deal {
	return domain.Deal{
		Source:     domain.SourceAttendance,
		RawStatus:  status,
		Value:      value,
		OccurredAt: at,
	}
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		expected float64
	}{
		{name: "Crescimento de 50%", current: 150, previous: 100, expected: 50},
		{name: "Queda de 25%", current: 75, previous: 100, expected: -25},
		{name: "Sem variação", current: 100, previous: 100, expected: 0},
		{name: "Sem base anterior e com valor atual", current: 10, previous: 0, expected: 100},
		{name: "Sem base anterior e sem valor atual", current: 0, previous: 0, expected: 0},
		{name: "Queda total", current: 0, previous: 80, expected: -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, PercentChange(tt.current, tt.previous), 0.0001)
		})
	}
}

func TestComparator_Compare(t *testing.T) {
	comparator := newTestComparator()

	// Fevereiro/2024 tem 29 dias: a janela anterior vai de 02/01 a 31/01
	february := domain.Window{
		Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC),
	}
	inFebruary := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)
	inJanuary := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

	deals := []domain.Deal{
		deal("Venda", 3000, inFebruary),
		deal("Venda", 1000, inFebruary),
		deal("Sem interesse", 0, inFebruary),
		deal("Sem interesse", 0, inFebruary),
		deal("Venda", 2000, inJanuary),
		deal("Sem interesse", 0, inJanuary),
		deal("Sem interesse", 0, inJanuary),
		deal("Sem interesse", 0, inJanuary),
	}

	comparison, previousWindow, err := comparator.CompareWithPrevious(deals, february)
	require.NoError(t, err)

	assert.False(t, previousWindow.End.After(february.Start))
	assert.Len(t, comparison, 5)

	revenue := comparison[domain.MetricRevenue]
	assert.Equal(t, 4000.0, revenue.Current)
	assert.Equal(t, 2000.0, revenue.Previous)
	assert.InDelta(t, 100.0, revenue.Change, 0.0001)

	won := comparison[domain.MetricWonCount]
	assert.InDelta(t, 100.0, won.Change, 0.0001)

	total := comparison[domain.MetricTotalCount]
	assert.InDelta(t, 0.0, total.Change, 0.0001)

	ticket := comparison[domain.MetricAverageTicket]
	assert.Equal(t, 2000.0, ticket.Current)
	assert.Equal(t, 2000.0, ticket.Previous)
	assert.InDelta(t, 0.0, ticket.Change, 0.0001)

	// Conversão em pontos percentuais: 50% agora contra 25% antes
	conversion := comparison[domain.MetricConversionRate]
	assert.InDelta(t, 50.0, conversion.Current, 0.0001)
	assert.InDelta(t, 25.0, conversion.Previous, 0.0001)
	assert.InDelta(t, 25.0, conversion.Change, 0.0001)
}

func TestComparator_CompareWithoutPreviousData(t *testing.T) {
	comparator := newTestComparator()

	window := domain.Window{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
	}

	comparison, err := comparator.Compare([]domain.Deal{
		deal("Venda", 500, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
	}, window)
	require.NoError(t, err)

	assert.Equal(t, 100.0, comparison[domain.MetricRevenue].Change)
	assert.Equal(t, 100.0, comparison[domain.MetricWonCount].Change)
	assert.Equal(t, 100.0, comparison[domain.MetricConversionRate].Change)

	empty, err := comparator.Compare(nil, window)
	require.NoError(t, err)
	for name, metric := range empty {
		assert.Equal(t, 0.0, metric.Change, "métrica %s", name)
	}
}

func TestComparator_CompareInvalidWindow(t *testing.T) {
	comparator := newTestComparator()

	_, err := comparator.Compare(nil, domain.Window{
		Start: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)
}
