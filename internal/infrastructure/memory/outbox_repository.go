package memory

import (
	"context"
	"slices"
	"time"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
)

var _ repository.OutboxRepository = (*OutboxRepo)(nil)

// OutboxRepo outbox en memoria; se guarda en el mismo estado que la transacción que lo escribe.
type OutboxRepo struct{ b binding }

func cloneOutbox(e entity.OutboxEvent) *entity.OutboxEvent {
	e.Payload = slices.Clone(e.Payload)
	e.DeliveredAt = cloneTime(e.DeliveredAt)
	return &e
}

func (r *OutboxRepo) Save(_ context.Context, events ...*entity.OutboxEvent) error {
	defer r.b.lock()()
	st := r.b.state()
	for _, e := range events {
		st.outbox = append(st.outbox, *cloneOutbox(*e))
	}
	return nil
}

func (r *OutboxRepo) ListPending(_ context.Context, olderThan time.Time, limit int) ([]*entity.OutboxEvent, error) {
	defer r.b.lock()()
	var out []*entity.OutboxEvent
	for _, e := range r.b.state().outbox {
		if e.DeliveredAt == nil && e.CreatedAt.Before(olderThan) {
			out = append(out, cloneOutbox(e))
		}
	}
	slices.SortStableFunc(out, func(a, b *entity.OutboxEvent) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return page(out, limit, 0), nil
}

func (r *OutboxRepo) MarkDelivered(_ context.Context, id string, at time.Time) error {
	defer r.b.lock()()
	st := r.b.state()
	for i := range st.outbox {
		if st.outbox[i].ID == id {
			st.outbox[i].DeliveredAt = cloneTime(&at)
			return nil
		}
	}
	return nil
}

func (r *OutboxRepo) MarkFailed(_ context.Context, id, lastError string) error {
	defer r.b.lock()()
	st := r.b.state()
	for i := range st.outbox {
		if st.outbox[i].ID == id {
			st.outbox[i].Attempts++
			st.outbox[i].LastError = lastError
			return nil
		}
	}
	return nil
}

// All devuelve todos los registros (entregados o no), en orden de escritura.
func (r *OutboxRepo) All() []*entity.OutboxEvent {
	defer r.b.lock()()
	out := make([]*entity.OutboxEvent, 0, len(r.b.state().outbox))
	for _, e := range r.b.state().outbox {
		out = append(out, cloneOutbox(e))
	}
	return out
}
