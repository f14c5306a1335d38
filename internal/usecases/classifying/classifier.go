// Package classifying converte os vocabulários de status dos dois esquemas de origem
// na taxonomia canônica usada por métricas, funil e ranking.
package classifying

import (
	"strings"

	"github.com/vfg2006/sales-ops-api/internal/domain"
)

// Taxonomy é a tabela imutável de marcadores. Marcadores "contém" são comparados sem
// diferenciar maiúsculas; marcadores exatos são comparados após trim, também sem diferenciar.
type Taxonomy struct {
	SaleMarkers      []string
	RefundMarkers    []string
	NoShowMarkers    []string
	PaymentScheduled []string
	Negotiating      []string
	LostSoft         []string
	PipelineWon      []string
	PipelineLost     []string
}

// DefaultTaxonomy carrega o vocabulário do sistema de origem (pt-BR) e os equivalentes em inglês
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		SaleMarkers:      []string{"venda", "sale"},
		RefundMarkers:    []string{"reembols", "estorn", "refund"},
		NoShowMarkers:    []string{"no-show", "no show", "noshow", "não compareceu", "nao compareceu"},
		PaymentScheduled: []string{"Pagamento agendado", "Payment scheduled"},
		Negotiating:      []string{"Negociando", "Em negociação", "Negotiating"},
		LostSoft:         []string{"Sem interesse", "Sem orçamento", "Sem orcamento", "No interest", "No budget"},
		PipelineWon:      []string{"won", "ganho"},
		PipelineLost:     []string{"lost", "perdido"},
	}
}

// WithDefaults completa listas vazias com os valores padrão
func (t Taxonomy) WithDefaults() Taxonomy {
	def := DefaultTaxonomy()
	fill := func(current, fallback []string) []string {
		if len(current) == 0 {
			return fallback
		}
		return current
	}

	return Taxonomy{
		SaleMarkers:      fill(t.SaleMarkers, def.SaleMarkers),
		RefundMarkers:    fill(t.RefundMarkers, def.RefundMarkers),
		NoShowMarkers:    fill(t.NoShowMarkers, def.NoShowMarkers),
		PaymentScheduled: fill(t.PaymentScheduled, def.PaymentScheduled),
		Negotiating:      fill(t.Negotiating, def.Negotiating),
		LostSoft:         fill(t.LostSoft, def.LostSoft),
		PipelineWon:      fill(t.PipelineWon, def.PipelineWon),
		PipelineLost:     fill(t.PipelineLost, def.PipelineLost),
	}
}

// Classifier é puro e sem estado mutável; pode ser compartilhado entre goroutines.
type Classifier struct {
	saleMarkers      []string
	refundMarkers    []string
	noShowMarkers    []string
	paymentScheduled []string
	negotiating      []string
	lostSoft         []string
	pipelineWon      []string
	pipelineLost     []string
}

func New(taxonomy Taxonomy) *Classifier {
	t := taxonomy.WithDefaults()
	return &Classifier{
		saleMarkers:      normalizeAll(t.SaleMarkers),
		refundMarkers:    normalizeAll(t.RefundMarkers),
		noShowMarkers:    normalizeAll(t.NoShowMarkers),
		paymentScheduled: normalizeAll(t.PaymentScheduled),
		negotiating:      normalizeAll(t.Negotiating),
		lostSoft:         normalizeAll(t.LostSoft),
		pipelineWon:      normalizeAll(t.PipelineWon),
		pipelineLost:     normalizeAll(t.PipelineLost),
	}
}

// Classify escolhe a tabela de acordo com o esquema de origem do registro
func (c *Classifier) Classify(deal domain.Deal) domain.Classification {
	if deal.Source == domain.SourcePipeline {
		return c.ClassifyStage(deal.StageCode)
	}
	return c.ClassifyStatus(deal.RawStatus)
}

// ClassifyStatus aplica as regras do esquema legado; a primeira regra que casar vence.
func (c *Classifier) ClassifyStatus(rawStatus string) domain.Classification {
	status := normalize(rawStatus)
	if status == "" {
		return domain.Classification{Category: domain.CategoryOther}
	}

	refunded := containsAny(status, c.refundMarkers)

	switch {
	case containsAny(status, c.saleMarkers) && !refunded:
		return domain.Classification{Category: domain.CategoryWon}
	case refunded:
		return domain.Classification{Category: domain.CategoryRefunded}
	case equalsAny(status, c.paymentScheduled):
		return domain.Classification{Category: domain.CategoryNegotiating, Detail: domain.DetailPaymentScheduled}
	case equalsAny(status, c.negotiating):
		return domain.Classification{Category: domain.CategoryNegotiating}
	case containsAny(status, c.noShowMarkers):
		return domain.Classification{Category: domain.CategoryNoShow}
	case equalsAny(status, c.lostSoft):
		return domain.Classification{Category: domain.CategoryOther, Detail: domain.DetailLostSoft}
	default:
		return domain.Classification{Category: domain.CategoryOther}
	}
}

// ClassifyStage aplica as regras do pipeline: won, lost ou qualquer outra etapa em aberto.
func (c *Classifier) ClassifyStage(stageCode string) domain.Classification {
	stage := normalize(stageCode)

	switch {
	case equalsAny(stage, c.pipelineWon):
		return domain.Classification{Category: domain.CategoryWon}
	case equalsAny(stage, c.pipelineLost):
		return domain.Classification{Category: domain.CategoryOther, Detail: domain.DetailLostHard}
	default:
		return domain.Classification{Category: domain.CategoryNegotiating}
	}
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func normalizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if n := normalize(v); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func containsAny(value string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(value, marker) {
			return true
		}
	}
	return false
}

func equalsAny(value string, options []string) bool {
	for _, option := range options {
		if value == option {
			return true
		}
	}
	return false
}
