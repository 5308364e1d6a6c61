package ports

import (
	"context"
	"time"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
)

// EventSink consumidor externo de eventos de dominio (notificaciones push).
// La entrega es al menos una vez: el consumidor debe tolerar duplicados.
type EventSink interface {
	Emit(ctx context.Context, events ...entity.DomainEvent) error
}

// EventPublisher entrega registros del outbox ya confirmados al EventSink.
// Los casos de uso lo llaman después del commit; un fallo deja los registros pendientes para el relay.
type EventPublisher interface {
	Publish(ctx context.Context, records []*entity.OutboxEvent)
}

// Clock fuente de tiempo inyectable.
type Clock interface {
	Now() time.Time
}

// SystemClock reloj del sistema en la zona horaria dada.
type SystemClock struct {
	Location *time.Location
}

// Now hora actual en la zona configurada (UTC si no hay zona).
func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now().UTC()
	}
	return time.Now().In(c.Location)
}
