package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/GlebRadaev/investledger/internal/domain"
)

const maxTxAttempts = 3

const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

type TxManager struct {
	pool        Pool
	maxAttempts int
}

func NewTXManager(pool Pool) *TxManager {
	return &TxManager{
		pool:        pool,
		maxAttempts: maxTxAttempts,
	}
}

// IsRetryable reports whether err is a conflict that a fresh attempt of the
// same transaction may resolve.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeSerializationFailure || pgErr.Code == codeDeadlockDetected
	}
	return false
}

// Begin runs fn inside a transaction. Calls nested in an open transaction
// join it. At the outermost level conflicts re-run fn from scratch, and once
// attempts run out the error wraps domain.ErrTransactionAborted.
func (m *TxManager) Begin(ctx context.Context, fn TransactionalFn) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	var err error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		err = m.run(ctx, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}
		zap.L().Warn("transaction conflict, retrying", zap.Int("attempt", attempt), zap.Error(err))
	}
	return fmt.Errorf("%w after %d attempts: %w", domain.ErrTransactionAborted, m.maxAttempts, err)
}

func (m *TxManager) run(ctx context.Context, fn TransactionalFn) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		zap.L().Error("can't begin transaction", zap.Error(err))
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			zap.L().Error("can't rollback transaction", zap.Error(rbErr))
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		zap.L().Error("can't commit transaction", zap.Error(err))
		return err
	}
	return nil
}
