package ranking

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/sales-ops-api/infrastructure/repository"
	"github.com/vfg2006/sales-ops-api/internal/domain"
)

// MonthLayout é o formato mm-yyyy usado para identificar o mês de um snapshot
const MonthLayout = "01-2006"

type SnapshotService interface {
	GetSnapshot(ctx context.Context, month string, groupBy domain.GroupBy) (*domain.RankingSnapshotResponse, error)
	GetAvailablePeriods(ctx context.Context, groupBy domain.GroupBy) (*domain.AvailablePeriods, error)
}

type RankingSnapshotService struct {
	RankingSnapshotRepository repository.RankingSnapshotRepository
	now                       func() time.Time
}

func NewRankingSnapshotService(rankingSnapshotRepository repository.RankingSnapshotRepository) SnapshotService {
	return &RankingSnapshotService{
		RankingSnapshotRepository: rankingSnapshotRepository,
		now:                       time.Now,
	}
}

// GetSnapshot busca o ranking persistido do mês. Sem mês informado usa o mês de ontem,
// que é o mês que o job diário atualiza.
func (s *RankingSnapshotService) GetSnapshot(ctx context.Context, month string, groupBy domain.GroupBy) (*domain.RankingSnapshotResponse, error) {
	if month == "" {
		month = s.now().AddDate(0, 0, -1).Format(MonthLayout)
	}

	if _, err := time.Parse(MonthLayout, month); err != nil {
		return nil, fmt.Errorf("%w: mês deve estar no formato mm-yyyy", ErrInvalidMonth)
	}

	snapshot, err := s.RankingSnapshotRepository.GetSnapshot(ctx, month, groupBy)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *RankingSnapshotService) GetAvailablePeriods(ctx context.Context, groupBy domain.GroupBy) (*domain.AvailablePeriods, error) {
	return s.RankingSnapshotRepository.ListAvailablePeriods(ctx, groupBy)
}
