package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/ports"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/pkg/logger"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool          *pgxpool.Pool
	lockTimeoutMs int
	retries       int
	backoff       time.Duration
	log           *logger.Logger
}

// NewTxRunner construye el runner con el pool. lockTimeoutMs acota la espera por un lock de fila;
// retries es cuántas veces se repite una transacción que chocó por contención.
func NewTxRunner(pool *pgxpool.Pool, lockTimeoutMs, retries int, log *logger.Logger) *TxRunner {
	if retries < 0 {
		retries = 0
	}
	return &TxRunner{
		pool:          pool,
		lockTimeoutMs: lockTimeoutMs,
		retries:       retries,
		backoff:       25 * time.Millisecond,
		log:           log.WithComponent("postgres"),
	}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los fallos por contención reintentan la transacción completa; agotados los intentos se devuelve ErrConflict.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	var err error
	for attempt := 0; attempt <= r.retries; attempt++ {
		if attempt > 0 {
			wait := r.backoff * time.Duration(1<<(attempt-1))
			r.log.Warn().Err(err).Int("intento", attempt).Dur("espera", wait).Msg("transacción con contención, reintentando")
			select {
			case <-ctx.Done():
				return fmt.Errorf("transacción cancelada: %w: %w", domain.ErrStorageUnavailable, ctx.Err())
			case <-time.After(wait):
			}
		}
		err = r.runOnce(ctx, fn)
		if err == nil || !isContention(err) {
			return err
		}
	}
	return fmt.Errorf("transacción agotó %d reintentos: %w: %w", r.retries, domain.ErrConflict, err)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeoutMs > 0 {
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeoutMs)); err != nil {
			return wrapErr("set lock_timeout", err)
		}
	}

	repos := repository.TxRepos{
		Invoices:     NewInvoiceRepository(tx),
		Payments:     NewPaymentRepository(tx),
		Sequences:    NewSequenceRepository(tx),
		Shipments:    NewShipmentRepository(tx),
		PackingLists: NewPackingListRepository(tx),
		Outbox:       NewOutboxRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return wrapErr("commit transaction", err)
	}
	return nil
}
