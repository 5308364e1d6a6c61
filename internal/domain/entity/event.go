package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Tipos de evento de dominio.
const (
	EventInvoiceStatusChanged  = "invoice.status_changed"
	EventShipmentStatusChanged = "shipment.status_changed"
	EventShipmentRouteChanged  = "shipment.route_changed"
)

// DomainEvent notificación de una transición aceptada.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// InvoiceStatusChanged se emite cuando el recálculo cambia payment_status.
type InvoiceStatusChanged struct {
	InvoiceID     string        `json:"invoice_id"`
	InvoiceNumber string        `json:"invoice_number"`
	UserID        string        `json:"user_id"`
	OldStatus     PaymentStatus `json:"old_status"`
	NewStatus     PaymentStatus `json:"new_status"`
	OccurredAt    time.Time     `json:"occurred_at"`
}

func (e InvoiceStatusChanged) EventType() string   { return EventInvoiceStatusChanged }
func (e InvoiceStatusChanged) AggregateID() string { return e.InvoiceID }

// ShipmentStatusChanged se emite cuando el estado del envío cambia.
type ShipmentStatusChanged struct {
	ShipmentID   string         `json:"shipment_id"`
	TrackingCode string         `json:"tracking_code"`
	CustomerID   string         `json:"customer_id"`
	OldStatus    ShipmentStatus `json:"old_status"`
	NewStatus    ShipmentStatus `json:"new_status"`
	OccurredAt   time.Time      `json:"occurred_at"`
}

func (e ShipmentStatusChanged) EventType() string   { return EventShipmentStatusChanged }
func (e ShipmentStatusChanged) AggregateID() string { return e.ShipmentID }

// ShipmentRouteChanged se emite cuando la etapa de ruta cambia; lleva el progreso recalculado.
type ShipmentRouteChanged struct {
	ShipmentID   string     `json:"shipment_id"`
	TrackingCode string     `json:"tracking_code"`
	CustomerID   string     `json:"customer_id"`
	OldStage     RouteStage `json:"old_stage"`
	NewStage     RouteStage `json:"new_stage"`
	Progress     float64    `json:"progress"`
	OccurredAt   time.Time  `json:"occurred_at"`
}

func (e ShipmentRouteChanged) EventType() string   { return EventShipmentRouteChanged }
func (e ShipmentRouteChanged) AggregateID() string { return e.ShipmentID }

// OutboxEvent registro durable de un evento, escrito en la misma transacción que el cambio de estado.
type OutboxEvent struct {
	ID          string
	EventType   string
	AggregateID string
	Payload     []byte
	CreatedAt   time.Time
	DeliveredAt *time.Time
	Attempts    int
	LastError   string
}

// NewOutboxEvent serializa el evento para guardarlo en el outbox.
func NewOutboxEvent(evt DomainEvent, now time.Time) (*OutboxEvent, error) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("serializar evento %s: %w", evt.EventType(), err)
	}
	return &OutboxEvent{
		ID:          uuid.New().String(),
		EventType:   evt.EventType(),
		AggregateID: evt.AggregateID(),
		Payload:     payload,
		CreatedAt:   now,
	}, nil
}

// Decode reconstruye el evento tipado a partir del payload.
func (o *OutboxEvent) Decode() (DomainEvent, error) {
	switch o.EventType {
	case EventInvoiceStatusChanged:
		var e InvoiceStatusChanged
		if err := json.Unmarshal(o.Payload, &e); err != nil {
			return nil, fmt.Errorf("decodificar %s: %w", o.EventType, err)
		}
		return e, nil
	case EventShipmentStatusChanged:
		var e ShipmentStatusChanged
		if err := json.Unmarshal(o.Payload, &e); err != nil {
			return nil, fmt.Errorf("decodificar %s: %w", o.EventType, err)
		}
		return e, nil
	case EventShipmentRouteChanged:
		var e ShipmentRouteChanged
		if err := json.Unmarshal(o.Payload, &e); err != nil {
			return nil, fmt.Errorf("decodificar %s: %w", o.EventType, err)
		}
		return e, nil
	}
	return nil, fmt.Errorf("tipo de evento desconocido: %s", o.EventType)
}
