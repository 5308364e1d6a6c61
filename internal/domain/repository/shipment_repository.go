package repository

import (
	"context"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
)

// ShipmentFilter filtros del listado. CustomerID vacío lista todos.
type ShipmentFilter struct {
	CustomerID string
	Status     entity.ShipmentStatus
	Limit      int
	Offset     int
}

// ShipmentRepository define el puerto de persistencia para Shipment.
type ShipmentRepository interface {
	Create(ctx context.Context, s *entity.Shipment) error
	GetByID(ctx context.Context, id string) (*entity.Shipment, error)
	GetByTrackingCode(ctx context.Context, code string) (*entity.Shipment, error)
	// GetForUpdate bloquea la fila del envío hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Shipment, error)
	// Update persiste estado, etapa, fechas y notas administrativas.
	Update(ctx context.Context, s *entity.Shipment) error
	List(ctx context.Context, f ShipmentFilter) ([]*entity.Shipment, error)
}
