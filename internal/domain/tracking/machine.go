// Package tracking implementa las transiciones de estado y etapa de ruta de un envío.
// Cada función recibe el envío ya leído (el valor anterior), aplica el cambio y devuelve
// el evento a emitir, o nil si no hubo cambio.
package tracking

import (
	"time"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
)

// ApplyStatus fija el estado. No se impone orden entre estados; al pasar a delivered
// por primera vez se registra la fecha real de entrega.
func ApplyStatus(s *entity.Shipment, next entity.ShipmentStatus, now time.Time) (*entity.ShipmentStatusChanged, error) {
	if !next.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	old := s.Status
	if old == next {
		return nil, nil
	}
	s.Status = next
	if next == entity.ShipmentStatusDelivered && old != entity.ShipmentStatusDelivered {
		delivered := now
		s.ActualDeliveryDate = &delivered
	}
	s.LastUpdated = now
	return &entity.ShipmentStatusChanged{
		ShipmentID:   s.ID,
		TrackingCode: s.TrackingCode,
		CustomerID:   s.CustomerID,
		OldStatus:    old,
		NewStatus:    next,
		OccurredAt:   now,
	}, nil
}

// NextStage etapa siguiente en el orden fijo; false si ya está en la última (o la etapa es desconocida).
func NextStage(current entity.RouteStage) (entity.RouteStage, bool) {
	i := current.Index()
	if i < 0 || i+1 >= len(entity.RouteStages) {
		return current, false
	}
	return entity.RouteStages[i+1], true
}

// AdvanceStage mueve el envío a la etapa siguiente. En la última etapa no hace nada.
func AdvanceStage(s *entity.Shipment, now time.Time) *entity.ShipmentRouteChanged {
	next, ok := NextStage(s.CurrentRouteStage)
	if !ok {
		return nil
	}
	return moveTo(s, next, now)
}

// SetStage fija una etapa arbitraria. No exige monotonía: los llamadores administrativos
// pueden corregir una etapa hacia atrás.
func SetStage(s *entity.Shipment, stage entity.RouteStage, now time.Time) (*entity.ShipmentRouteChanged, error) {
	if !stage.Valid() {
		return nil, domain.ErrInvalidStage
	}
	if s.CurrentRouteStage == stage {
		return nil, nil
	}
	return moveTo(s, stage, now), nil
}

// IsBackward indica si el evento retrocede la etapa.
func IsBackward(evt *entity.ShipmentRouteChanged) bool {
	return evt != nil && evt.NewStage.Index() < evt.OldStage.Index()
}

func moveTo(s *entity.Shipment, stage entity.RouteStage, now time.Time) *entity.ShipmentRouteChanged {
	old := s.CurrentRouteStage
	s.CurrentRouteStage = stage
	s.LastUpdated = now
	return &entity.ShipmentRouteChanged{
		ShipmentID:   s.ID,
		TrackingCode: s.TrackingCode,
		CustomerID:   s.CustomerID,
		OldStage:     old,
		NewStage:     stage,
		Progress:     stage.Progress(),
		OccurredAt:   now,
	}
}
