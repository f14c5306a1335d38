package domain

import "time"

// DashboardFilters são os parâmetros de período recebidos pelo dashboard
type DashboardFilters struct {
	Period    string
	StartDate *time.Time
	EndDate   *time.Time
	GroupBy   GroupBy
	Reference time.Time
}
