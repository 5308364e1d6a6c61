// Package outbox entrega al EventSink los eventos registrados en el outbox transaccional.
package outbox

import (
	"context"
	"fmt"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/ports"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/pkg/logger"
)

var _ ports.EventPublisher = (*Dispatcher)(nil)

// Dispatcher decodifica registros del outbox, los emite al sink y los marca entregados.
type Dispatcher struct {
	repo  repository.OutboxRepository
	sink  ports.EventSink
	clock ports.Clock
	log   *logger.Logger
}

// NewDispatcher construye el dispatcher. repo debe operar fuera de transacción (pool).
func NewDispatcher(repo repository.OutboxRepository, sink ports.EventSink, clock ports.Clock, log *logger.Logger) *Dispatcher {
	return &Dispatcher{repo: repo, sink: sink, clock: clock, log: log.WithComponent("outbox")}
}

// Publish entrega los registros en orden. Los fallos quedan pendientes para el relay.
func (d *Dispatcher) Publish(ctx context.Context, records []*entity.OutboxEvent) {
	for _, rec := range records {
		_ = d.Deliver(ctx, rec)
	}
}

// Deliver entrega un registro y actualiza su estado en el outbox.
func (d *Dispatcher) Deliver(ctx context.Context, rec *entity.OutboxEvent) error {
	evt, err := rec.Decode()
	if err != nil {
		d.fail(ctx, rec, err)
		return err
	}
	if err := d.sink.Emit(ctx, evt); err != nil {
		err = fmt.Errorf("emitir %s: %w", rec.EventType, err)
		d.fail(ctx, rec, err)
		return err
	}
	if err := d.repo.MarkDelivered(ctx, rec.ID, d.clock.Now()); err != nil {
		// El evento ya salió; el relay lo reenviará y el sink debe tolerar el duplicado.
		d.log.Error().Err(err).Str("event_id", rec.ID).Msg("no se pudo marcar evento como entregado")
		return err
	}
	d.log.Debug().Str("event_id", rec.ID).Str("type", rec.EventType).Str("aggregate_id", rec.AggregateID).Msg("evento entregado")
	return nil
}

func (d *Dispatcher) fail(ctx context.Context, rec *entity.OutboxEvent, cause error) {
	d.log.Warn().Err(cause).Str("event_id", rec.ID).Str("type", rec.EventType).Int("attempts", rec.Attempts+1).Msg("entrega de evento fallida, queda pendiente")
	if err := d.repo.MarkFailed(ctx, rec.ID, cause.Error()); err != nil {
		d.log.Error().Err(err).Str("event_id", rec.ID).Msg("no se pudo registrar el fallo de entrega")
	}
}
