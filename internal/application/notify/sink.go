// Package notify convierte eventos de dominio en notificaciones del cliente y las empuja a sus dispositivos.
package notify

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/ports"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/pkg/logger"
)

// PushMessage contenido de una notificación push.
type PushMessage struct {
	Title string
	Body  string
	Data  map[string]string
}

// Pusher transporte push hacia los dispositivos de un usuario. Se construye una vez al arrancar.
type Pusher interface {
	Push(ctx context.Context, devices []*entity.UserDevice, msg PushMessage) error
}

var _ ports.EventSink = (*Sink)(nil)

// Sink EventSink que persiste la notificación del cliente dueño y la empuja.
// Un fallo al persistir se devuelve para que el outbox reintente; un fallo de push solo se registra.
type Sink struct {
	notifications repository.NotificationRepository
	devices       repository.DeviceRepository
	pusher        Pusher
	clock         ports.Clock
	log           *logger.Logger
}

// NewSink construye el sink.
func NewSink(notifications repository.NotificationRepository, devices repository.DeviceRepository, pusher Pusher, clock ports.Clock, log *logger.Logger) *Sink {
	return &Sink{
		notifications: notifications,
		devices:       devices,
		pusher:        pusher,
		clock:         clock,
		log:           log.WithComponent("notify"),
	}
}

// Emit procesa los eventos en orden.
func (s *Sink) Emit(ctx context.Context, events ...entity.DomainEvent) error {
	for _, evt := range events {
		n := s.build(evt)
		if n == nil {
			continue
		}
		if err := s.notifications.Create(ctx, n); err != nil {
			return fmt.Errorf("guardar notificación: %w", err)
		}
		s.push(ctx, n)
	}
	return nil
}

// build arma la notificación; nil si el evento no tiene cliente dueño.
func (s *Sink) build(evt entity.DomainEvent) *entity.Notification {
	n := &entity.Notification{ID: uuid.New().String(), SentAt: s.clock.Now()}
	switch e := evt.(type) {
	case entity.ShipmentStatusChanged:
		n.UserID = e.CustomerID
		n.Type = entity.NotificationShipmentStatus
		n.Title = "Shipment Status Updated"
		n.Message = fmt.Sprintf("Your shipment %s is now %s", e.TrackingCode, e.NewStatus.Display())
		n.Data = map[string]string{
			"shipment_id":    e.ShipmentID,
			"tracking_code":  e.TrackingCode,
			"status":         string(e.NewStatus),
			"status_display": e.NewStatus.Display(),
		}
	case entity.ShipmentRouteChanged:
		n.UserID = e.CustomerID
		n.Type = entity.NotificationShipmentRoute
		n.Title = "Shipment Location Updated"
		n.Message = fmt.Sprintf("Your shipment %s has arrived at %s", e.TrackingCode, e.NewStage.Display())
		n.Data = map[string]string{
			"shipment_id":         e.ShipmentID,
			"tracking_code":       e.TrackingCode,
			"route_stage":         string(e.NewStage),
			"route_stage_display": e.NewStage.Display(),
			"progress":            strconv.FormatFloat(e.Progress, 'f', -1, 64),
		}
	case entity.InvoiceStatusChanged:
		n.UserID = e.UserID
		n.Type = entity.NotificationInvoicePayment
		n.Title = "Invoice Payment Updated"
		n.Message = fmt.Sprintf("Your invoice %s is now %s", e.InvoiceNumber, paymentStatusDisplay(e.NewStatus))
		n.Data = map[string]string{
			"invoice_id":     e.InvoiceID,
			"invoice_number": e.InvoiceNumber,
			"payment_status": string(e.NewStatus),
		}
	default:
		s.log.Warn().Str("type", evt.EventType()).Msg("evento sin notificación asociada")
		return nil
	}
	if n.UserID == "" {
		s.log.Debug().Str("type", evt.EventType()).Str("aggregate_id", evt.AggregateID()).Msg("evento sin cliente, no se notifica")
		return nil
	}
	return n
}

func (s *Sink) push(ctx context.Context, n *entity.Notification) {
	devices, err := s.devices.ListActiveByUser(ctx, n.UserID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", n.UserID).Msg("no se pudieron leer los dispositivos")
		return
	}
	if len(devices) == 0 {
		s.log.Debug().Str("user_id", n.UserID).Msg("usuario sin dispositivos activos")
		return
	}
	msg := PushMessage{Title: n.Title, Body: n.Message, Data: withClickAction(n.Data)}
	if err := s.pusher.Push(ctx, devices, msg); err != nil {
		s.log.Warn().Err(err).Str("user_id", n.UserID).Str("notification_id", n.ID).Msg("push fallido")
	}
}

func withClickAction(data map[string]string) map[string]string {
	out := make(map[string]string, len(data)+1)
	for k, v := range data {
		out[k] = v
	}
	out["click_action"] = "FLUTTER_NOTIFICATION_CLICK"
	return out
}

func paymentStatusDisplay(s entity.PaymentStatus) string {
	switch s {
	case entity.PaymentStatusPaid:
		return "Paid"
	case entity.PaymentStatusPartiallyPaid:
		return "Partially Paid"
	case entity.PaymentStatusUnpaid:
		return "Unpaid"
	}
	return string(s)
}
