package insighting

import (
	"github.com/vfg2006/sales-ops-api/internal/domain"
	"github.com/vfg2006/sales-ops-api/pkg/utils"
)

// BuildFunnel monta as quatro etapas fixas: scheduled, attended, negotiating e won.
// A conversão da etapa won usa attended como base, e não negotiating, para responder
// "de quem compareceu, quantos compraram".
func (a *Aggregator) BuildFunnel(deals []domain.Deal) domain.Funnel {
	var attended, negotiating, won, paymentScheduled int

	for _, deal := range deals {
		classification := a.classifier.Classify(deal)

		if classification.Attended() {
			attended++
		}

		switch classification.Category {
		case domain.CategoryNegotiating:
			negotiating++
			if classification.Detail == domain.DetailPaymentScheduled {
				paymentScheduled++
			}
		case domain.CategoryWon:
			won++
		}
	}

	scheduled := len(deals)

	return domain.Funnel{
		Stages: []domain.FunnelStage{
			{Name: domain.StageScheduled, Count: scheduled},
			stage(domain.StageAttended, attended, domain.StageScheduled, scheduled),
			stage(domain.StageNegotiating, negotiating, domain.StageAttended, attended),
			stage(domain.StageWon, won, domain.StageAttended, attended),
		},
		OverallConversion:     utils.SafeDivide(float64(won), float64(scheduled)),
		PaymentScheduledCount: paymentScheduled,
	}
}

// BuildFunnelInWindow filtra pela janela antes de montar o funil
func (a *Aggregator) BuildFunnelInWindow(deals []domain.Deal, window domain.Window) (domain.Funnel, error) {
	if err := window.Validate(); err != nil {
		return domain.Funnel{}, err
	}

	return a.BuildFunnel(FilterWindow(deals, window)), nil
}

func stage(name domain.StageName, count int, baseline domain.StageName, baselineCount int) domain.FunnelStage {
	return domain.FunnelStage{
		Name:           name,
		Count:          count,
		Baseline:       baseline,
		ConversionRate: utils.SafeDivide(float64(count), float64(baselineCount)),
	}
}
