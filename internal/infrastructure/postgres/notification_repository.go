package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
)

var (
	_ repository.NotificationRepository = (*NotificationRepo)(nil)
	_ repository.DeviceRepository       = (*DeviceRepo)(nil)
)

// NotificationRepo historial de notificaciones (tabla notifications, data en JSONB).
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	data := n.Data
	if data == nil {
		data = map[string]string{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO notifications (id, user_id, type, title, message, data, is_read, sent_at, read_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		n.ID, n.UserID, n.Type, n.Title, n.Message, data, n.IsRead, n.SentAt, n.ReadAt,
	)
	if err != nil {
		return wrapErr("insert notification", err)
	}
	return nil
}

// ListByUser más recientes primero.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, type, title, message, data, is_read, sent_at, read_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY sent_at DESC, id DESC
		LIMIT $2 OFFSET $3`, userID, limitOrAll(limit), offset)
	if err != nil {
		return nil, wrapErr("list notifications", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Data, &n.IsRead, &n.SentAt, &n.ReadAt); err != nil {
			return nil, wrapErr("scan notification", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// MarkRead marca como leída; la fecha de lectura original se conserva si ya estaba leída.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID string, at time.Time) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE, read_at = COALESCE(read_at, $3)
		WHERE id = $1 AND user_id = $2`, id, userID, at)
	if err != nil {
		return false, wrapErr("mark notification read", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE, read_at = $2
		WHERE user_id = $1 AND NOT is_read`, userID, at)
	if err != nil {
		return 0, wrapErr("mark all notifications read", err)
	}
	return tag.RowsAffected(), nil
}

func (r *NotificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID).Scan(&count)
	if err != nil {
		return 0, wrapErr("count unread notifications", err)
	}
	return count, nil
}

// DeviceRepo tokens push (tabla user_devices, token único).
type DeviceRepo struct {
	q Querier
}

// NewDeviceRepository construye el adaptador.
func NewDeviceRepository(q Querier) *DeviceRepo {
	return &DeviceRepo{q: q}
}

// Upsert registra el token o lo reasigna al usuario actual si ya existía.
func (r *DeviceRepo) Upsert(ctx context.Context, d *entity.UserDevice) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO user_devices (id, user_id, device_token, device_type, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, $5, $6)
		ON CONFLICT (device_token) DO UPDATE
		SET user_id = EXCLUDED.user_id,
		    device_type = EXCLUDED.device_type,
		    is_active = TRUE,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`,
		d.ID, d.UserID, d.Token, d.Type, d.CreatedAt, d.UpdatedAt,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return wrapErr("upsert device", err)
	}
	d.IsActive = true
	return nil
}

func (r *DeviceRepo) ListActiveByUser(ctx context.Context, userID string) ([]*entity.UserDevice, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, device_token, device_type, is_active, created_at, updated_at
		FROM user_devices
		WHERE user_id = $1 AND is_active
		ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, wrapErr("list devices", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.UserDevice, error) {
		var d entity.UserDevice
		err := row.Scan(&d.ID, &d.UserID, &d.Token, &d.Type, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
		return &d, err
	})
}
