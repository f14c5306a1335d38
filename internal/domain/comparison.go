package domain

type MetricName string

const (
	MetricRevenue        MetricName = "revenue"
	MetricWonCount       MetricName = "won_count"
	MetricTotalCount     MetricName = "total_count"
	MetricAverageTicket  MetricName = "average_ticket"
	MetricConversionRate MetricName = "conversion_rate"
)

// MetricComparison traz o valor atual, o anterior e a variação.
// Para conversion_rate os valores estão em 0-100 e Change é em pontos percentuais.
type MetricComparison struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Change   float64 `json:"change"`
}

type Comparison map[MetricName]MetricComparison

type ComparisonResponse struct {
	Window         Window     `json:"window"`
	PreviousWindow Window     `json:"previous_window"`
	Comparison     Comparison `json:"comparison"`
}
