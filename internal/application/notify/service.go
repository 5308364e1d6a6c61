package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/ports"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
)

// Service historial de notificaciones y registro de dispositivos del usuario autenticado.
type Service struct {
	notifications repository.NotificationRepository
	devices       repository.DeviceRepository
	clock         ports.Clock
}

// NewService construye el caso de uso.
func NewService(notifications repository.NotificationRepository, devices repository.DeviceRepository, clock ports.Clock) *Service {
	return &Service{notifications: notifications, devices: devices, clock: clock}
}

// RegisterDevice registra o reasigna el token push al usuario.
func (s *Service) RegisterDevice(ctx context.Context, userID, token, deviceType string) (*entity.UserDevice, error) {
	token = strings.TrimSpace(token)
	if userID == "" || token == "" {
		return nil, fmt.Errorf("token de dispositivo requerido: %w", domain.ErrInvalidInput)
	}
	if deviceType != entity.DeviceAndroid && deviceType != entity.DeviceIOS {
		return nil, fmt.Errorf("tipo de dispositivo %q: %w", deviceType, domain.ErrInvalidInput)
	}
	now := s.clock.Now()
	d := &entity.UserDevice{
		UserID:    userID,
		Token:     token,
		Type:      deviceType,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.devices.Upsert(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// List notificaciones del usuario, más recientes primero.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, error) {
	return s.notifications.ListByUser(ctx, userID, limit, offset)
}

// MarkRead marca una notificación propia como leída.
func (s *Service) MarkRead(ctx context.Context, userID, id string) error {
	ok, err := s.notifications.MarkRead(ctx, id, userID, s.clock.Now())
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marca todas las notificaciones del usuario y devuelve cuántas cambiaron.
func (s *Service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.notifications.MarkAllRead(ctx, userID, s.clock.Now())
}

// UnreadCount número de notificaciones sin leer.
func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.notifications.CountUnread(ctx, userID)
}
