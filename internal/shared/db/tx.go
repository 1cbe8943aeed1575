package db_conn

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

// Querier — общий интерфейс pgxpool.Pool и pgx.Tx. Репозитории работают
// через него и потому одинаково ведут себя внутри и вне транзакции.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// QuerierFrom возвращает транзакцию из контекста, если она там есть,
// иначе пул соединений.
func QuerierFrom(ctx context.Context, pool *pgxpool.Pool) Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}

// TxManager управляет транзакциями PostgreSQL: транзакция кладется
// в контекст, репозитории подхватывают ее через QuerierFrom.
type TxManager struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewTxManager создает новый менеджер транзакций
func NewTxManager(pool *pgxpool.Pool, log *logger.Logger) *TxManager {
	return &TxManager{pool: pool, log: log}
}

// WithinTx выполняет fn в транзакции. Ошибка fn или коммита откатывает
// все изменения.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			m.log.Error(logger.Entry{
				Action:  "tx_rollback_failed",
				Message: rbErr.Error(),
				Error:   &logger.ErrObj{Msg: rbErr.Error()},
			})
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
