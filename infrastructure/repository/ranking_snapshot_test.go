package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-ops-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-ops-api/internal/domain"
)

type execCall struct {
	query string
	args  []interface{}
}

// recordingQueryer guarda os comandos executados, sem banco
type recordingQueryer struct {
	calls   []execCall
	failing string
}

var _ postgres.Queryer = (*recordingQueryer)(nil)

func (q *recordingQueryer) Exec(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	q.calls = append(q.calls, execCall{query: query, args: args})
	if q.failing != "" && strings.HasPrefix(strings.TrimSpace(query), q.failing) {
		return nil, errors.New("falha no banco")
	}
	return driver.RowsAffected(1), nil
}

func (q *recordingQueryer) Query(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("não usado")
}

func (q *recordingQueryer) QueryRow(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (q *recordingQueryer) deletes() []execCall {
	deletes := make([]execCall, 0)
	for _, call := range q.calls {
		if strings.HasPrefix(strings.TrimSpace(call.query), "DELETE") {
			deletes = append(deletes, call)
		}
	}
	return deletes
}

func TestRankingSnapshotRepository_SaveOrUpdate(t *testing.T) {
	run := domain.RankingSnapshotRun{
		RunID:    "run002",
		Month:    "02-2024",
		GroupBys: []domain.GroupBy{domain.GroupByCloser, domain.GroupByTeam},
	}
	closerItem := &domain.RankingSnapshotItem{
		RunID:    "run002",
		Month:    "02-2024",
		GroupBy:  domain.GroupByCloser,
		EntityID: "C1",
		Revenue:  1000,
		Position: 1,
	}

	t.Run("Limpa agrupamento que ficou sem itens", func(t *testing.T) {
		q := &recordingQueryer{}
		repo := NewRankingSnapshotRepository(q)

		require.NoError(t, repo.SaveOrUpdate(context.Background(), run, []*domain.RankingSnapshotItem{closerItem}))

		require.Len(t, q.calls, 3)
		assert.True(t, strings.HasPrefix(strings.TrimSpace(q.calls[0].query), "INSERT INTO ranking_snapshots"))

		deletes := q.deletes()
		require.Len(t, deletes, 2)
		assert.Contains(t, deletes[0].args, "closer")
		assert.Contains(t, deletes[1].args, "team")
		for _, call := range deletes {
			assert.Contains(t, call.args, "02-2024")
			assert.Contains(t, call.args, "run002")
		}
	})

	t.Run("Sem itens ainda remove linhas antigas", func(t *testing.T) {
		q := &recordingQueryer{}
		repo := NewRankingSnapshotRepository(q)

		require.NoError(t, repo.SaveOrUpdate(context.Background(), domain.RankingSnapshotRun{
			RunID:    "run003",
			Month:    "02-2024",
			GroupBys: []domain.GroupBy{domain.GroupByTeam},
		}, nil))

		require.Len(t, q.calls, 1)
		assert.Len(t, q.deletes(), 1)
		assert.Contains(t, q.calls[0].args, "team")
		assert.Contains(t, q.calls[0].args, "run003")
	})

	t.Run("Execução vazia não toca o banco", func(t *testing.T) {
		q := &recordingQueryer{}
		repo := NewRankingSnapshotRepository(q)

		require.NoError(t, repo.SaveOrUpdate(context.Background(), domain.RankingSnapshotRun{}, nil))
		assert.Empty(t, q.calls)
	})

	t.Run("Erro na inserção interrompe a limpeza", func(t *testing.T) {
		q := &recordingQueryer{failing: "INSERT"}
		repo := NewRankingSnapshotRepository(q)

		err := repo.SaveOrUpdate(context.Background(), run, []*domain.RankingSnapshotItem{closerItem})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "erro ao executar query de inserção")
		assert.Empty(t, q.deletes())
	})
}
