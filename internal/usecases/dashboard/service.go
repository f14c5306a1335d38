// Package dashboard orquestra o carregamento dos registros e a execução do motor de métricas
// para cada painel do dashboard.
package dashboard

import (
	"context"
	"fmt"

	"github.com/vfg2006/sales-ops-api/infrastructure/repository"
	"github.com/vfg2006/sales-ops-api/internal/domain"
	"github.com/vfg2006/sales-ops-api/internal/usecases/comparing"
	"github.com/vfg2006/sales-ops-api/internal/usecases/insighting"
	"github.com/vfg2006/sales-ops-api/internal/usecases/period"
	"github.com/vfg2006/sales-ops-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-ops-api/pkg/log"
	"golang.org/x/sync/errgroup"
)

// Dashboarder define os painéis servidos pela API
type Dashboarder interface {
	GetMetrics(ctx context.Context, filters domain.DashboardFilters, scope domain.Scope) (*domain.MetricsResponse, error)
	GetFunnel(ctx context.Context, filters domain.DashboardFilters, scope domain.Scope) (*domain.FunnelResponse, error)
	GetRanking(ctx context.Context, filters domain.DashboardFilters, scope domain.Scope) (*domain.RankingResponse, error)
	GetComparison(ctx context.Context, filters domain.DashboardFilters, scope domain.Scope) (*domain.ComparisonResponse, error)
}

type Service struct {
	dealRepository   repository.DealRepository
	rosterRepository repository.RosterRepository
	resolver         *period.Resolver
	aggregator       *insighting.Aggregator
	rankingEngine    *ranking.Engine
	comparator       *comparing.Comparator
}

func NewService(
	dealRepository repository.DealRepository,
	rosterRepository repository.RosterRepository,
	resolver *period.Resolver,
	aggregator *insighting.Aggregator,
) *Service {
	return &Service{
		dealRepository:   dealRepository,
		rosterRepository: rosterRepository,
		resolver:         resolver,
		aggregator:       aggregator,
		rankingEngine:    ranking.NewEngine(aggregator),
		comparator:       comparing.NewComparator(aggregator),
	}
}

func (s *Service) GetMetrics(ctx context.Context, filters domain.DashboardFilters, scope domain.Scope) (*domain.MetricsResponse, error) {
	window, deals, err := s.load(ctx, filters, scope)
	if err != nil {
		return nil, err
	}

	bundle, err := s.aggregator.Aggregate(deals, window)
	if err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"total_count": bundle.TotalCount,
		"won_count":   bundle.WonCount,
	}).Debug("dashboard: métricas calculadas")

	return &domain.MetricsResponse{Window: window, Metrics: bundle}, nil
}

func (s *Service) GetFunnel(ctx context.Context, filters domain.DashboardFilters, scope domain.Scope) (*domain.FunnelResponse, error) {
	window, deals, err := s.load(ctx, filters, scope)
	if err != nil {
		return nil, err
	}

	funnel, err := s.aggregator.BuildFunnelInWindow(deals, window)
	if err != nil {
		return nil, err
	}

	return &domain.FunnelResponse{Window: window, Funnel: funnel}, nil
}

// GetRanking carrega registros e elenco em paralelo
func (s *Service) GetRanking(ctx context.Context, filters domain.DashboardFilters, scope domain.Scope) (*domain.RankingResponse, error) {
	groupBy := filters.GroupBy
	if groupBy == "" {
		groupBy = domain.GroupByCloser
	}

	window, err := s.resolver.ResolveFilters(filters)
	if err != nil {
		return nil, err
	}

	var (
		deals  []domain.Deal
		roster *domain.Roster
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		deals, err = s.dealRepository.ListDeals(gctx, window, scope)
		return
	})

	g.Go(func() (err error) {
		roster, err = s.rosterRepository.GetRoster(gctx)
		return
	})

	if err := g.Wait(); err != nil {
		log.ForContext(ctx).WithError(err).Error("dashboard: erro ao carregar dados do ranking")
		return nil, fmt.Errorf("erro ao carregar dados do ranking: %w", err)
	}

	if roster == nil {
		roster = &domain.Roster{}
	}

	stats, err := s.rankingEngine.Rank(
		deals,
		roster.Entities(groupBy),
		window,
		groupBy,
		domain.NewTeamLookup(roster.Closers),
	)
	if err != nil {
		return nil, err
	}

	return &domain.RankingResponse{Window: window, GroupBy: groupBy, Ranking: stats}, nil
}

// GetComparison carrega de uma só vez o intervalo que cobre a janela atual e a anterior
func (s *Service) GetComparison(ctx context.Context, filters domain.DashboardFilters, scope domain.Scope) (*domain.ComparisonResponse, error) {
	window, err := s.resolver.ResolveFilters(filters)
	if err != nil {
		return nil, err
	}

	deals, err := s.listDeals(ctx, window.Span(period.Previous(window)), scope)
	if err != nil {
		return nil, err
	}

	comparison, previousWindow, err := s.comparator.CompareWithPrevious(deals, window)
	if err != nil {
		return nil, err
	}

	return &domain.ComparisonResponse{
		Window:         window,
		PreviousWindow: previousWindow,
		Comparison:     comparison,
	}, nil
}

func (s *Service) load(ctx context.Context, filters domain.DashboardFilters, scope domain.Scope) (domain.Window, []domain.Deal, error) {
	window, err := s.resolver.ResolveFilters(filters)
	if err != nil {
		return domain.Window{}, nil, err
	}

	deals, err := s.listDeals(ctx, window, scope)
	if err != nil {
		return domain.Window{}, nil, err
	}

	return window, deals, nil
}

func (s *Service) listDeals(ctx context.Context, window domain.Window, scope domain.Scope) ([]domain.Deal, error) {
	deals, err := s.dealRepository.ListDeals(ctx, window, scope)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("dashboard: erro ao carregar registros")
		return nil, fmt.Errorf("erro ao carregar registros: %w", err)
	}
	return deals, nil
}
