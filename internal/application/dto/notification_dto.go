package dto

import (
	"time"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
)

// RegisterDeviceRequest token push del dispositivo.
type RegisterDeviceRequest struct {
	DeviceToken string `json:"device_token"`
	DeviceType  string `json:"device_type" example:"android"`
}

// DeviceResponse dispositivo registrado.
type DeviceResponse struct {
	ID         string `json:"id"`
	DeviceType string `json:"device_type"`
	IsActive   bool   `json:"is_active"`
}

// NotificationResponse notificación del historial.
type NotificationResponse struct {
	ID      string            `json:"id"`
	Type    string            `json:"notification_type"`
	Title   string            `json:"title"`
	Message string            `json:"message"`
	Data    map[string]string `json:"data,omitempty"`
	IsRead  bool              `json:"is_read"`
	SentAt  time.Time         `json:"sent_at"`
	ReadAt  *time.Time        `json:"read_at,omitempty"`
}

// UnreadCountResponse contador de no leídas.
type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

// MarkAllReadResponse cuántas notificaciones cambiaron.
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// ToNotificationResponse mapea la entidad.
func ToNotificationResponse(n *entity.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID: n.ID, Type: n.Type, Title: n.Title, Message: n.Message,
		Data: n.Data, IsRead: n.IsRead, SentAt: n.SentAt, ReadAt: n.ReadAt,
	}
}

// ToNotifications mapea un listado.
func ToNotifications(list []*entity.Notification) []*NotificationResponse {
	out := make([]*NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, ToNotificationResponse(n))
	}
	return out
}
