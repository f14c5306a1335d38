// Package scheduler contém os serviços de agendamento para sincronização de dados
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-ops-api/infrastructure/repository"
	"github.com/vfg2006/sales-ops-api/internal/config"
	"github.com/vfg2006/sales-ops-api/internal/domain"
	"github.com/vfg2006/sales-ops-api/internal/usecases/period"
	"github.com/vfg2006/sales-ops-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-ops-api/pkg/metrics"
	"github.com/vfg2006/sales-ops-api/pkg/utils"
)

type RankingSnapshotSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
	GroupBy      []domain.GroupBy
}

// RankingSnapshotSyncService persiste diariamente o ranking do mês corrente
// e registra a variação de posição de cada entidade desde a execução anterior.
type RankingSnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	dealRepo            repository.DealRepository
	rosterRepo          repository.RosterRepository
	snapshotRepo        repository.RankingSnapshotRepository
	resolver            *period.Resolver
	engine              *ranking.Engine
	config              RankingSnapshotSyncConfig
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastRunID           string
}

func NewRankingSnapshotSyncService(
	dealRepo repository.DealRepository,
	rosterRepo repository.RosterRepository,
	snapshotRepo repository.RankingSnapshotRepository,
	resolver *period.Resolver,
	engine *ranking.Engine,
	cfg *config.Config,
) *RankingSnapshotSyncService {
	syncConfig := RankingSnapshotSyncConfig{
		CronSchedule: cfg.RankingSnapshot.CronSchedule, // Default: 6h da manhã todos os dias
		SyncEnabled:  cfg.RankingSnapshot.SyncEnabled,  // Default: desabilitado
		GroupBy:      parseGroupBys(cfg.RankingSnapshot.GroupBy),
	}

	scheduler := gocron.NewScheduler(resolver.Location())

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"group_by":      syncConfig.GroupBy,
	}).Info("ranking-snapshot: configuração do agendador carregada")

	return &RankingSnapshotSyncService{
		scheduler:    scheduler,
		dealRepo:     dealRepo,
		rosterRepo:   rosterRepo,
		snapshotRepo: snapshotRepo,
		resolver:     resolver,
		engine:       engine,
		config:       syncConfig,
		now:          time.Now,
	}
}

func (s *RankingSnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("ranking-snapshot: cron desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("ranking-snapshot: iniciando cron")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.UpdateRankingSnapshots(ctx); err != nil {
			logrus.WithError(err).Error("ranking-snapshot: erro na atualização do ranking")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar snapshot do ranking: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("ranking-snapshot: parando cron")
		s.scheduler.Stop()
	}()

	return nil
}

// UpdateRankingSnapshots ignora a chamada quando já existe uma execução em andamento
func (s *RankingSnapshotSyncService) UpdateRankingSnapshots(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("ranking-snapshot: sincronização já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = s.now()
		s.syncMutex.Unlock()
	}()

	logrus.Info("ranking-snapshot: iniciando atualização")

	items, err := s.processSnapshotsWithDate(ctx, s.now())
	metrics.ObserveSnapshotRun(err)
	if err != nil {
		return err
	}

	logrus.WithField("items", len(items)).Info("ranking-snapshot: atualização concluída")

	return nil
}

// processSnapshotsWithDate calcula o ranking do mês de ontem em relação à data de processamento
func (s *RankingSnapshotSyncService) processSnapshotsWithDate(ctx context.Context, processingDate time.Time) ([]*domain.RankingSnapshotItem, error) {
	yesterday := processingDate.In(s.resolver.Location()).AddDate(0, 0, -1)
	month := yesterday.Format(ranking.MonthLayout)

	window, err := s.resolver.Resolve(period.Month, yesterday)
	if err != nil {
		return nil, err
	}

	runID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da execução: %w", err)
	}

	deals, err := s.dealRepo.ListDeals(ctx, window, domain.Scope{RoleID: domain.RoleAdmin})
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar registros do mês %s: %w", month, err)
	}

	roster, err := s.rosterRepo.GetRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar elenco: %w", err)
	}
	if roster == nil {
		roster = &domain.Roster{}
	}

	lookup := domain.NewTeamLookup(roster.Closers)
	items := make([]*domain.RankingSnapshotItem, 0)

	for _, groupBy := range s.config.GroupBy {
		stats, err := s.engine.Rank(deals, roster.Entities(groupBy), window, groupBy, lookup)
		if err != nil {
			return nil, fmt.Errorf("erro ao calcular ranking por %s: %w", groupBy, err)
		}

		previous, err := s.snapshotRepo.GetSnapshot(ctx, month, groupBy)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar snapshot anterior por %s: %w", groupBy, err)
		}

		logrus.WithFields(logrus.Fields{
			"run_id":   runID,
			"month":    month,
			"group_by": groupBy,
			"entities": len(stats),
		}).Info("ranking-snapshot: ranking calculado")

		items = append(items, buildSnapshotItems(runID, month, groupBy, stats, previous)...)
	}

	run := domain.RankingSnapshotRun{RunID: runID, Month: month, GroupBys: s.config.GroupBy}
	if err := s.snapshotRepo.SaveOrUpdate(ctx, run, items); err != nil {
		return nil, fmt.Errorf("erro ao salvar snapshot do ranking: %w", err)
	}

	s.syncMutex.Lock()
	s.lastRunID = runID
	s.syncMutex.Unlock()

	return items, nil
}

// buildSnapshotItems compara com a posição gravada na execução anterior do mesmo mês.
// PositionChange positivo indica que a entidade subiu.
func buildSnapshotItems(
	runID string,
	month string,
	groupBy domain.GroupBy,
	stats []domain.EntityStats,
	previous *domain.RankingSnapshotResponse,
) []*domain.RankingSnapshotItem {
	previousPositions := make(map[string]int)
	if previous != nil {
		for _, item := range previous.Ranking {
			previousPositions[item.EntityID] = item.Position
		}
	}

	items := make([]*domain.RankingSnapshotItem, 0, len(stats))
	for _, entity := range stats {
		item := &domain.RankingSnapshotItem{
			RunID:         runID,
			Month:         month,
			GroupBy:       groupBy,
			EntityID:      entity.EntityID,
			EntityName:    entity.Name,
			Revenue:       utils.RoundWithTwoDecimalPlace(entity.Revenue),
			WonCount:      entity.WonCount,
			AttendedCount: entity.AttendedCount,
			CloseRate:     entity.CloseRate,
			Position:      entity.Position,
		}

		if position, exists := previousPositions[entity.EntityID]; exists && position > 0 {
			item.PreviousPosition = position
			item.PositionChange = position - entity.Position
		}

		items = append(items, item)
	}

	return items
}

func parseGroupBys(values []string) []domain.GroupBy {
	groupBys := make([]domain.GroupBy, 0, len(values))
	seen := make(map[domain.GroupBy]bool)

	for _, value := range values {
		groupBy, err := domain.ParseGroupBy(value)
		if err != nil {
			logrus.WithField("group_by", value).Warn("ranking-snapshot: agrupamento ignorado")
			continue
		}
		if seen[groupBy] {
			continue
		}
		seen[groupBy] = true
		groupBys = append(groupBys, groupBy)
	}

	if len(groupBys) == 0 {
		groupBys = append(groupBys, domain.GroupByCloser)
	}

	return groupBys
}

// TriggerManualSync inicia manualmente uma atualização do snapshot
func (s *RankingSnapshotSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("ranking-snapshot: sincronização já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("ranking-snapshot: iniciando sincronização manual")
	go func() {
		if err := s.UpdateRankingSnapshots(context.Background()); err != nil {
			logrus.WithError(err).Error("ranking-snapshot: erro na sincronização manual")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *RankingSnapshotSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"group_by":               s.config.GroupBy,
		"last_run_id":            s.lastRunID,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
