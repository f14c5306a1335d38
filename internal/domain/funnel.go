package domain

type StageName string

const (
	StageScheduled   StageName = "scheduled"
	StageAttended    StageName = "attended"
	StageNegotiating StageName = "negotiating"
	StageWon         StageName = "won"
)

// FunnelStage é uma etapa do funil. Baseline vazio indica a primeira etapa.
type FunnelStage struct {
	Name           StageName `json:"name"`
	Count          int       `json:"count"`
	Baseline       StageName `json:"baseline,omitempty"`
	ConversionRate float64   `json:"conversion_rate"`
}

type Funnel struct {
	Stages                []FunnelStage `json:"stages"`
	OverallConversion     float64       `json:"overall_conversion"`
	PaymentScheduledCount int           `json:"payment_scheduled_count"`
}

// Stage busca a etapa pelo nome
func (f Funnel) Stage(name StageName) (FunnelStage, bool) {
	for _, stage := range f.Stages {
		if stage.Name == name {
			return stage, true
		}
	}
	return FunnelStage{}, false
}

type FunnelResponse struct {
	Window Window `json:"window"`
	Funnel Funnel `json:"funnel"`
}
