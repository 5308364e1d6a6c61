package repository

import (
	"context"
	"time"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
)

// NotificationRepository historial de notificaciones por usuario.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, error)
	// MarkRead devuelve false si la notificación no existe o no pertenece al usuario.
	MarkRead(ctx context.Context, id, userID string, at time.Time) (bool, error)
	MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error)
	CountUnread(ctx context.Context, userID string) (int, error)
}

// DeviceRepository tokens push por usuario. El token es único: registrarlo de nuevo lo reasigna.
type DeviceRepository interface {
	Upsert(ctx context.Context, d *entity.UserDevice) error
	ListActiveByUser(ctx context.Context, userID string) ([]*entity.UserDevice, error)
}
