package postgres

import (
	"context"
	"database/sql"
)

type Queryer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (sql.Result, error)
	Query(ctx context.Context, sql string, args ...interface{}) (*sql.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) *sql.Row
}

// Transactor abre uma transação e entrega um Queryer ligado a ela
type Transactor interface {
	InTransaction(ctx context.Context, fn func(Queryer) error) error
}

var (
	_ Queryer    = (*Connection)(nil)
	_ Transactor = (*Connection)(nil)
	_ Queryer    = txQueryer{}
)

type txQueryer struct {
	tx *sql.Tx
}

func (q txQueryer) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return q.tx.ExecContext(ctx, query, args...)
}

func (q txQueryer) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return q.tx.QueryContext(ctx, query, args...)
}

func (q txQueryer) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return q.tx.QueryRowContext(ctx, query, args...)
}

func (c *Connection) InTransaction(ctx context.Context, fn func(Queryer) error) error {
	return c.RunInTransaction(ctx, func(tx *sql.Tx) error {
		return fn(txQueryer{tx: tx})
	})
}

// InTransaction usa a transação quando o Queryer suporta; caso contrário executa direto
func InTransaction(ctx context.Context, q Queryer, fn func(Queryer) error) error {
	if t, ok := q.(Transactor); ok {
		return t.InTransaction(ctx, fn)
	}
	return fn(q)
}
