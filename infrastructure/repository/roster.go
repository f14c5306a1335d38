package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-ops-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-ops-api/internal/domain"
)

// RosterRepository lê o elenco atual de closers, SDRs e times
type RosterRepository interface {
	GetRoster(ctx context.Context) (*domain.Roster, error)
}

type rosterRepository struct {
	conn postgres.Queryer
}

func NewRosterRepository(conn postgres.Queryer) RosterRepository {
	return &rosterRepository{
		conn: conn,
	}
}

func (r *rosterRepository) GetRoster(ctx context.Context) (*domain.Roster, error) {
	closers, err := r.listEntities(ctx, "closers", true)
	if err != nil {
		return nil, err
	}

	sdrs, err := r.listEntities(ctx, "sdrs", true)
	if err != nil {
		return nil, err
	}

	teams, err := r.listEntities(ctx, "teams", false)
	if err != nil {
		return nil, err
	}

	return &domain.Roster{
		Closers: closers,
		SDRs:    sdrs,
		Teams:   teams,
	}, nil
}

// listEntities mantém a ordem de cadastro, que é a ordem de desempate do ranking
func (r *rosterRepository) listEntities(ctx context.Context, table string, withTeam bool) ([]domain.Entity, error) {
	columns := []string{"id", "name", "active"}
	if withTeam {
		columns = append(columns, "team_id")
	}

	query, args, err := squirrel.
		Select(columns...).
		From(table).
		OrderBy("created_at ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao construir a query de %s", table)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao executar a query de %s", table)
	}
	defer rows.Close()

	entities := make([]domain.Entity, 0)
	for rows.Next() {
		var entity domain.Entity

		dest := []any{&entity.ID, &entity.Name, &entity.Active}
		if withTeam {
			dest = append(dest, &entity.TeamID)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrapf(err, "erro ao escanear %s", table)
		}

		entities = append(entities, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "erro durante a iteração de %s", table)
	}

	return entities, nil
}
