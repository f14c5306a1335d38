// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-ops-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-ops-api/internal/domain"
)

const (
	attendancesTable   = "attendances a"
	pipelineDealsTable = "pipeline_deals p"
)

// DealRepository carrega o retrato de registros das duas origens já normalizado em domain.Deal
type DealRepository interface {
	ListDeals(ctx context.Context, window domain.Window, scope domain.Scope) ([]domain.Deal, error)
}

type dealRepository struct {
	conn postgres.Queryer
}

func NewDealRepository(conn postgres.Queryer) DealRepository {
	return &dealRepository{
		conn: conn,
	}
}

// ListDeals lê atendimentos legados e negócios do pipeline dentro da janela.
// Usuários sem acesso irrestrito só enxergam os registros dos seus times.
func (r *dealRepository) ListDeals(ctx context.Context, window domain.Window, scope domain.Scope) ([]domain.Deal, error) {
	if !scope.Unrestricted() && len(scope.TeamIDs) == 0 {
		return []domain.Deal{}, nil
	}

	attendances, err := r.listAttendances(ctx, window, scope)
	if err != nil {
		return nil, err
	}

	pipeline, err := r.listPipelineDeals(ctx, window, scope)
	if err != nil {
		return nil, err
	}

	deals := make([]domain.Deal, 0, len(attendances)+len(pipeline))
	for _, attendance := range attendances {
		deals = append(deals, attendance.ToDeal())
	}
	for _, deal := range pipeline {
		deals = append(deals, deal.ToDeal())
	}

	return deals, nil
}

func (r *dealRepository) listAttendances(ctx context.Context, window domain.Window, scope domain.Scope) ([]domain.AttendanceRecord, error) {
	queryBuilder := squirrel.
		Select(
			"a.id",
			"a.closer",
			"a.sdr",
			"a.team_id",
			"a.origin_id",
			"a.origin_label",
			"COALESCE(a.status, '')",
			"a.valor",
			"a.call_date",
		).
		From(attendancesTable).
		Where(squirrel.GtOrEq{"a.call_date": window.Start}).
		Where(squirrel.LtOrEq{"a.call_date": window.End}).
		OrderBy("a.call_date ASC").
		PlaceholderFormat(squirrel.Dollar)

	queryBuilder = withTeamScope(queryBuilder, "a.team_id", scope)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de atendimentos")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query de atendimentos")
	}
	defer rows.Close()

	records := make([]domain.AttendanceRecord, 0)
	for rows.Next() {
		var record domain.AttendanceRecord
		var value sql.NullFloat64

		err := rows.Scan(
			&record.ID,
			&record.Closer,
			&record.SDR,
			&record.TeamID,
			&record.OriginID,
			&record.OriginLabel,
			&record.Status,
			&value,
			&record.CallDate,
		)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear atendimento")
		}

		record.Value = nullFloat(value)
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de atendimentos")
	}

	return records, nil
}

func (r *dealRepository) listPipelineDeals(ctx context.Context, window domain.Window, scope domain.Scope) ([]domain.PipelineDeal, error) {
	queryBuilder := squirrel.
		Select(
			"p.id",
			"p.closer",
			"p.sdr",
			"p.team_id",
			"p.origin_id",
			"p.origin_label",
			"COALESCE(p.stage, '')",
			"COALESCE(p.status, '')",
			"p.valor_potencial",
			"p.created_at",
		).
		From(pipelineDealsTable).
		Where(squirrel.GtOrEq{"p.created_at": window.Start}).
		Where(squirrel.LtOrEq{"p.created_at": window.End}).
		OrderBy("p.created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	queryBuilder = withTeamScope(queryBuilder, "p.team_id", scope)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query do pipeline")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query do pipeline")
	}
	defer rows.Close()

	deals := make([]domain.PipelineDeal, 0)
	for rows.Next() {
		var deal domain.PipelineDeal
		var value sql.NullFloat64

		err := rows.Scan(
			&deal.ID,
			&deal.Closer,
			&deal.SDR,
			&deal.TeamID,
			&deal.OriginID,
			&deal.OriginLabel,
			&deal.Stage,
			&deal.Status,
			&value,
			&deal.CreatedAt,
		)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear negócio do pipeline")
		}

		deal.PotentialValue = nullFloat(value)
		deals = append(deals, deal)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração do pipeline")
	}

	return deals, nil
}

func withTeamScope(queryBuilder squirrel.SelectBuilder, column string, scope domain.Scope) squirrel.SelectBuilder {
	if scope.Unrestricted() {
		return queryBuilder
	}
	return queryBuilder.Where(squirrel.Expr(column+" = ANY(?)", pq.Array(scope.TeamIDs)))
}

func nullFloat(value sql.NullFloat64) *float64 {
	if !value.Valid {
		return nil
	}
	return &value.Float64
}
