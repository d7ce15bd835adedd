package tx

import (
	"context"
	"errors"

	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTxManager struct {
	db *pgxpool.Pool
}

func NewPgxTxManager(db *pgxpool.Pool) *PgxTxManager {
	return &PgxTxManager{db: db}
}

func (m *PgxTxManager) Begin(ctx context.Context) (Tx, *app_errors.AppError) {
	tx, err := m.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, app_errors.Internal(err)
	}

	return &PgxTx{Tx: tx}, nil
}

type PgxTx struct {
	Tx pgx.Tx
}

func (t *PgxTx) Commit(ctx context.Context) *app_errors.AppError {
	if err := t.Tx.Commit(ctx); err != nil {
		return app_errors.Internal(err)
	}
	return nil
}

// Rollback nach Commit ist ein No-op, deshalb kann es per defer aufgerufen werden.
func (t *PgxTx) Rollback(ctx context.Context) *app_errors.AppError {
	if err := t.Tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return app_errors.Internal(err)
	}
	return nil
}

// Use liefert die laufende Transaktion oder, wenn t nil ist, den Pool.
func Use(pool *pgxpool.Pool, t Tx) Querier {
	if pt, ok := t.(*PgxTx); ok && pt != nil {
		return pt.Tx
	}
	return pool
}
