package domain

// MetricsBundle agrupa os KPIs de uma janela. Taxas são frações em [0,1].
type MetricsBundle struct {
	TotalCount       int     `json:"total_count"`
	AttendedCount    int     `json:"attended_count"`
	NoShowCount      int     `json:"no_show_count"`
	NegotiatingCount int     `json:"negotiating_count"`
	RefundedCount    int     `json:"refunded_count"`
	WonCount         int     `json:"won_count"`
	WonRevenue       float64 `json:"won_revenue"`
	AttendanceRate   float64 `json:"attendance_rate"`
	ConversionRate   float64 `json:"conversion_rate"`
	AverageTicket    float64 `json:"average_ticket"`
}

type MetricsResponse struct {
	Window  Window        `json:"window"`
	Metrics MetricsBundle `json:"metrics"`
}
