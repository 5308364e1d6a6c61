package repository

import (
	"context"
	"time"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
)

// OutboxRepository registro durable de eventos pendientes de entregar.
type OutboxRepository interface {
	Save(ctx context.Context, events ...*entity.OutboxEvent) error
	// ListPending devuelve eventos sin entregar creados antes de olderThan, más antiguos primero.
	ListPending(ctx context.Context, olderThan time.Time, limit int) ([]*entity.OutboxEvent, error)
	MarkDelivered(ctx context.Context, id string, at time.Time) error
	MarkFailed(ctx context.Context, id, lastError string) error
}
