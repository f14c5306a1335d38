package repository

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-ops-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-ops-api/internal/domain"
)

const (
	rankingSnapshotTable = "ranking_snapshots rs"
)

type RankingSnapshotRepository interface {
	GetSnapshot(ctx context.Context, month string, groupBy domain.GroupBy) (*domain.RankingSnapshotResponse, error)
	SaveOrUpdate(ctx context.Context, run domain.RankingSnapshotRun, items []*domain.RankingSnapshotItem) error
	ListAvailablePeriods(ctx context.Context, groupBy domain.GroupBy) (*domain.AvailablePeriods, error)
}

type rankingSnapshotRepository struct {
	conn postgres.Queryer
}

func NewRankingSnapshotRepository(conn postgres.Queryer) RankingSnapshotRepository {
	return &rankingSnapshotRepository{
		conn: conn,
	}
}

func (r *rankingSnapshotRepository) GetSnapshot(ctx context.Context, month string, groupBy domain.GroupBy) (*domain.RankingSnapshotResponse, error) {
	queryBuilder := squirrel.
		Select(
			"rs.id",
			"rs.run_id",
			"rs.month",
			"rs.group_by",
			"rs.entity_id",
			"rs.entity_name",
			"rs.revenue",
			"rs.won_count",
			"rs.attended_count",
			"rs.close_rate",
			"rs.position",
			"rs.position_change",
			"rs.previous_position",
			"rs.created_at",
			"rs.updated_at",
		).
		From(rankingSnapshotTable).
		Where(squirrel.Eq{"rs.month": month, "rs.group_by": string(groupBy)}).
		OrderBy("rs.position ASC").
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	ranking := make([]domain.RankingSnapshotItem, 0)
	var lastUpdate time.Time

	for rows.Next() {
		var item domain.RankingSnapshotItem

		err := rows.Scan(
			&item.ID,
			&item.RunID,
			&item.Month,
			&item.GroupBy,
			&item.EntityID,
			&item.EntityName,
			&item.Revenue,
			&item.WonCount,
			&item.AttendedCount,
			&item.CloseRate,
			&item.Position,
			&item.PositionChange,
			&item.PreviousPosition,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear item do ranking")
		}

		ranking = append(ranking, item)

		// Manter o último update mais recente
		if item.UpdatedAt.After(lastUpdate) {
			lastUpdate = item.UpdatedAt
		}
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return &domain.RankingSnapshotResponse{
		Month:      month,
		GroupBy:    groupBy,
		Ranking:    ranking,
		LastUpdate: lastUpdate,
	}, nil
}

// SaveOrUpdate grava os itens da execução e remove do mês o que sobrou de execuções anteriores.
// Um agrupamento da execução sem itens tem as linhas antigas removidas.
func (r *rankingSnapshotRepository) SaveOrUpdate(ctx context.Context, run domain.RankingSnapshotRun, items []*domain.RankingSnapshotItem) error {
	if len(items) == 0 && len(run.GroupBys) == 0 {
		return nil
	}

	return postgres.InTransaction(ctx, r.conn, func(q postgres.Queryer) error {
		if len(items) > 0 {
			if err := upsertSnapshotItems(ctx, q, items); err != nil {
				return err
			}
		}

		return pruneStaleEntities(ctx, q, run)
	})
}

func upsertSnapshotItems(ctx context.Context, q postgres.Queryer, items []*domain.RankingSnapshotItem) error {
	query := squirrel.StatementBuilder.
		Insert("ranking_snapshots").
		Columns(
			"run_id",
			"month",
			"group_by",
			"entity_id",
			"entity_name",
			"revenue",
			"won_count",
			"attended_count",
			"close_rate",
			"position",
			"position_change",
			"previous_position",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, item := range items {
		query = query.Values(
			item.RunID,
			item.Month,
			string(item.GroupBy),
			item.EntityID,
			item.EntityName,
			item.Revenue,
			item.WonCount,
			item.AttendedCount,
			item.CloseRate,
			item.Position,
			item.PositionChange,
			item.PreviousPosition,
		)
	}

	// Uma linha por entidade, mês e agrupamento
	query = query.Suffix(`
		ON CONFLICT (month, group_by, entity_id) DO UPDATE SET
			run_id = EXCLUDED.run_id,
			entity_name = EXCLUDED.entity_name,
			revenue = EXCLUDED.revenue,
			won_count = EXCLUDED.won_count,
			attended_count = EXCLUDED.attended_count,
			close_rate = EXCLUDED.close_rate,
			position = EXCLUDED.position,
			position_change = EXCLUDED.position_change,
			previous_position = EXCLUDED.previous_position,
			updated_at = CURRENT_TIMESTAMP
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir query de inserção")
	}

	if _, err := q.Exec(ctx, sqlQuery, args...); err != nil {
		return errors.Wrap(err, "erro ao executar query de inserção")
	}

	return nil
}

// pruneStaleEntities remove do mês as entidades que não vieram nesta execução,
// como closers desativados depois do último snapshot
func pruneStaleEntities(ctx context.Context, q postgres.Queryer, run domain.RankingSnapshotRun) error {
	for _, groupBy := range run.GroupBys {
		query, args, err := squirrel.
			Delete("ranking_snapshots").
			Where(squirrel.Eq{"month": run.Month, "group_by": string(groupBy)}).
			Where(squirrel.NotEq{"run_id": run.RunID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return errors.Wrap(err, "erro ao construir query de limpeza")
		}

		if _, err := q.Exec(ctx, query, args...); err != nil {
			return errors.Wrap(err, "erro ao remover entidades fora do snapshot")
		}
	}

	return nil
}

// ListAvailablePeriods lista os meses (mm-yyyy) que já têm snapshot, do mais recente ao mais antigo
func (r *rankingSnapshotRepository) ListAvailablePeriods(ctx context.Context, groupBy domain.GroupBy) (*domain.AvailablePeriods, error) {
	query, args, err := squirrel.
		Select("DISTINCT rs.month", "to_date(rs.month, 'MM-YYYY') AS month_date").
		From(rankingSnapshotTable).
		Where(squirrel.Eq{"rs.group_by": string(groupBy)}).
		OrderBy("month_date DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	periods := &domain.AvailablePeriods{
		Periods: make([]string, 0),
		Years:   make([]string, 0),
		Months:  make([]string, 0),
	}
	seenYears := make(map[string]bool)
	seenMonths := make(map[string]bool)

	for rows.Next() {
		var month string
		var monthDate time.Time
		if err := rows.Scan(&month, &monthDate); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear período")
		}

		periods.Periods = append(periods.Periods, month)

		parts := strings.SplitN(month, "-", 2)
		if len(parts) != 2 {
			continue
		}
		if !seenMonths[parts[0]] {
			seenMonths[parts[0]] = true
			periods.Months = append(periods.Months, parts[0])
		}
		if !seenYears[parts[1]] {
			seenYears[parts[1]] = true
			periods.Years = append(periods.Years, parts[1])
		}
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return periods, nil
}
