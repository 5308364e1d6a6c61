package outbox

import (
	"context"
	"time"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/ports"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/pkg/logger"
)

// RelayConfig parámetros del relay.
type RelayConfig struct {
	Interval  time.Duration
	Grace     time.Duration
	BatchSize int
}

// Relay reintenta periódicamente los eventos pendientes (entrega al menos una vez).
type Relay struct {
	repo       repository.OutboxRepository
	dispatcher *Dispatcher
	clock      ports.Clock
	cfg        RelayConfig
	log        *logger.Logger
}

// NewRelay construye el relay.
func NewRelay(repo repository.OutboxRepository, dispatcher *Dispatcher, clock ports.Clock, cfg RelayConfig, log *logger.Logger) *Relay {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	return &Relay{repo: repo, dispatcher: dispatcher, clock: clock, cfg: cfg, log: log.WithComponent("outbox-relay")}
}

// RunOnce entrega un lote de pendientes con antigüedad mayor al periodo de gracia.
// Devuelve cuántos se entregaron.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	pending, err := r.repo.ListPending(ctx, r.clock.Now().Add(-r.cfg.Grace), r.cfg.BatchSize)
	if err != nil {
		return 0, err
	}
	delivered := 0
	for _, rec := range pending {
		if ctx.Err() != nil {
			return delivered, ctx.Err()
		}
		if err := r.dispatcher.Deliver(ctx, rec); err == nil {
			delivered++
		}
	}
	if len(pending) > 0 {
		r.log.Info().Int("pending", len(pending)).Int("delivered", delivered).Msg("relay de outbox ejecutado")
	}
	return delivered, nil
}

// Run ejecuta RunOnce en cada intervalo hasta que ctx se cancela.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.RunOnce(ctx); err != nil && ctx.Err() == nil {
				r.log.Warn().Err(err).Msg("relay de outbox fallido")
			}
		}
	}
}
