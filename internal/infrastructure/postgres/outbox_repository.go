package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
)

var _ repository.OutboxRepository = (*OutboxRepo)(nil)

// OutboxRepo tabla outbox_events. Save se llama con la tx de la mutación;
// ListPending y las marcas de entrega van contra el pool.
type OutboxRepo struct {
	q Querier
}

// NewOutboxRepository construye el adaptador.
func NewOutboxRepository(q Querier) *OutboxRepo {
	return &OutboxRepo{q: q}
}

func (r *OutboxRepo) Save(ctx context.Context, events ...*entity.OutboxEvent) error {
	for _, e := range events {
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		_, err := r.q.Exec(ctx, `
			INSERT INTO outbox_events (id, event_type, aggregate_id, payload, created_at, attempts)
			VALUES ($1, $2, $3, $4, $5, 0)`,
			e.ID, e.EventType, e.AggregateID, string(e.Payload), e.CreatedAt,
		)
		if err != nil {
			return wrapErr("insert outbox event", err)
		}
	}
	return nil
}

// ListPending eventos sin entregar creados antes de olderThan, más antiguos primero.
func (r *OutboxRepo) ListPending(ctx context.Context, olderThan time.Time, limit int) ([]*entity.OutboxEvent, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, event_type, aggregate_id, payload, created_at, delivered_at, attempts, last_error
		FROM outbox_events
		WHERE delivered_at IS NULL AND created_at < $1
		ORDER BY created_at
		LIMIT $2`, olderThan, limitOrAll(limit))
	if err != nil {
		return nil, wrapErr("list pending outbox", err)
	}
	defer rows.Close()
	var list []*entity.OutboxEvent
	for rows.Next() {
		var e entity.OutboxEvent
		var payload string
		var lastError *string
		if err := rows.Scan(&e.ID, &e.EventType, &e.AggregateID, &payload, &e.CreatedAt, &e.DeliveredAt, &e.Attempts, &lastError); err != nil {
			return nil, wrapErr("scan outbox event", err)
		}
		e.Payload = []byte(payload)
		e.LastError = derefStr(lastError)
		list = append(list, &e)
	}
	return list, rows.Err()
}

func (r *OutboxRepo) MarkDelivered(ctx context.Context, id string, at time.Time) error {
	if _, err := r.q.Exec(ctx, `UPDATE outbox_events SET delivered_at = $2 WHERE id = $1`, id, at); err != nil {
		return wrapErr("mark outbox delivered", err)
	}
	return nil
}

func (r *OutboxRepo) MarkFailed(ctx context.Context, id, lastError string) error {
	_, err := r.q.Exec(ctx, `
		UPDATE outbox_events SET attempts = attempts + 1, last_error = $2
		WHERE id = $1`, id, lastError)
	if err != nil {
		return wrapErr("mark outbox failed", err)
	}
	return nil
}
