package memory

import (
	"context"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
)

var (
	_ repository.NotificationRepository = (*NotificationRepo)(nil)
	_ repository.DeviceRepository       = (*DeviceRepo)(nil)
)

// NotificationRepo historial de notificaciones en memoria.
type NotificationRepo struct{ b binding }

func cloneNotification(n entity.Notification) *entity.Notification {
	n.Data = maps.Clone(n.Data)
	n.ReadAt = cloneTime(n.ReadAt)
	return &n
}

func (r *NotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	defer r.b.lock()()
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	st := r.b.state()
	st.notifications = append(st.notifications, *cloneNotification(*n))
	return nil
}

// ListByUser más recientes primero.
func (r *NotificationRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.Notification, error) {
	defer r.b.lock()()
	st := r.b.state()
	var out []*entity.Notification
	for i := len(st.notifications) - 1; i >= 0; i-- {
		if st.notifications[i].UserID == userID {
			out = append(out, cloneNotification(st.notifications[i]))
		}
	}
	return page(out, limit, offset), nil
}

func (r *NotificationRepo) MarkRead(_ context.Context, id, userID string, at time.Time) (bool, error) {
	defer r.b.lock()()
	st := r.b.state()
	for i := range st.notifications {
		n := &st.notifications[i]
		if n.ID == id && n.UserID == userID {
			if !n.IsRead {
				n.IsRead = true
				n.ReadAt = cloneTime(&at)
			}
			return true, nil
		}
	}
	return false, nil
}

func (r *NotificationRepo) MarkAllRead(_ context.Context, userID string, at time.Time) (int64, error) {
	defer r.b.lock()()
	st := r.b.state()
	var n int64
	for i := range st.notifications {
		if st.notifications[i].UserID == userID && !st.notifications[i].IsRead {
			st.notifications[i].IsRead = true
			st.notifications[i].ReadAt = cloneTime(&at)
			n++
		}
	}
	return n, nil
}

func (r *NotificationRepo) CountUnread(_ context.Context, userID string) (int, error) {
	defer r.b.lock()()
	count := 0
	for _, n := range r.b.state().notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

// DeviceRepo tokens push en memoria.
type DeviceRepo struct{ b binding }

func (r *DeviceRepo) Upsert(_ context.Context, d *entity.UserDevice) error {
	defer r.b.lock()()
	st := r.b.state()
	for i := range st.devices {
		if st.devices[i].Token == d.Token {
			d.ID = st.devices[i].ID
			d.CreatedAt = st.devices[i].CreatedAt
			st.devices[i] = *d
			return nil
		}
	}
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	st.devices = append(st.devices, *d)
	return nil
}

func (r *DeviceRepo) ListActiveByUser(_ context.Context, userID string) ([]*entity.UserDevice, error) {
	defer r.b.lock()()
	var out []*entity.UserDevice
	for _, d := range r.b.state().devices {
		if d.UserID == userID && d.IsActive {
			out = append(out, &d)
		}
	}
	return out, nil
}
