// Package tracking aplica las transiciones de estado y de etapa de ruta de los envíos
// y publica un evento por cada transición aceptada.
package tracking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/ports"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/sequence"
	dtracking "github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/tracking"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/pkg/logger"
)

// Service caso de uso de seguimiento de envíos.
type Service struct {
	txRunner     ports.TxRunner
	shipmentRepo repository.ShipmentRepository
	publisher    ports.EventPublisher
	clock        ports.Clock
	log          *logger.Logger
}

// NewService construye el caso de uso.
func NewService(txRunner ports.TxRunner, shipmentRepo repository.ShipmentRepository, publisher ports.EventPublisher, clock ports.Clock, log *logger.Logger) *Service {
	return &Service{
		txRunner:     txRunner,
		shipmentRepo: shipmentRepo,
		publisher:    publisher,
		clock:        clock,
		log:          log.WithComponent("tracking"),
	}
}

// RegisterShipmentInput alta de un envío. TrackingCode vacío se genera como TRK-%06d.
type RegisterShipmentInput struct {
	TrackingCode      string
	CustomerID        string
	CustomerName      string
	CustomerEmail     string
	CustomerPhone     string
	Origin            string
	Destination       string
	Weight            decimal.Decimal
	Description       string
	EstimatedDelivery *time.Time
	AdminNotes        string
}

// RegisterShipment crea el envío en estado pending y etapa china.
func (s *Service) RegisterShipment(ctx context.Context, in RegisterShipmentInput) (*entity.Shipment, error) {
	in.TrackingCode = strings.TrimSpace(in.TrackingCode)
	if strings.TrimSpace(in.Origin) == "" || strings.TrimSpace(in.Destination) == "" {
		return nil, fmt.Errorf("origen y destino requeridos: %w", domain.ErrInvalidInput)
	}
	if !in.Weight.IsPositive() {
		return nil, domain.ErrInvalidWeight
	}

	var sh *entity.Shipment
	err := s.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		code := in.TrackingCode
		if code == "" {
			n, err := repos.Sequences.Next(ctx, sequence.ScopeShipment)
			if err != nil {
				return err
			}
			code = sequence.FormatTrackingCode(n)
		}
		now := s.clock.Now()
		sh = &entity.Shipment{
			ID:                uuid.New().String(),
			TrackingCode:      code,
			CustomerID:        in.CustomerID,
			CustomerName:      in.CustomerName,
			CustomerEmail:     in.CustomerEmail,
			CustomerPhone:     in.CustomerPhone,
			Origin:            in.Origin,
			Destination:       in.Destination,
			Weight:            in.Weight,
			Description:       in.Description,
			Status:            entity.ShipmentStatusPending,
			CurrentRouteStage: entity.RouteStageChina,
			RegisteredDate:    now,
			LastUpdated:       now,
			EstimatedDelivery: in.EstimatedDelivery,
			AdminNotes:        in.AdminNotes,
		}
		return repos.Shipments.Create(ctx, sh)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("shipment_id", sh.ID).Str("tracking_code", sh.TrackingCode).Msg("envío registrado")
	return sh, nil
}

// mutation cambia el envío bloqueado y devuelve los eventos a emitir y si hubo cambios que persistir.
type mutation func(sh *entity.Shipment, now time.Time) (events []entity.DomainEvent, changed bool, err error)

// mutate lee el envío con la fila bloqueada (valor anterior), aplica fn y persiste estado y outbox juntos.
func (s *Service) mutate(ctx context.Context, id string, fn mutation) (*entity.Shipment, []entity.DomainEvent, error) {
	var (
		sh     *entity.Shipment
		events []entity.DomainEvent
		recs   []*entity.OutboxEvent
	)
	err := s.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		recs = nil
		var err error
		sh, err = repos.Shipments.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sh == nil {
			return domain.ErrShipmentNotFound
		}
		now := s.clock.Now()
		var changed bool
		events, changed, err = fn(sh, now)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		if err := repos.Shipments.Update(ctx, sh); err != nil {
			return err
		}
		for _, evt := range events {
			rec, err := entity.NewOutboxEvent(evt, now)
			if err != nil {
				return err
			}
			recs = append(recs, rec)
		}
		if len(recs) == 0 {
			return nil
		}
		return repos.Outbox.Save(ctx, recs...)
	})
	if err != nil {
		return nil, nil, err
	}
	if len(recs) > 0 {
		s.publisher.Publish(ctx, recs)
	}
	return sh, events, nil
}

// ApplyStatus fija el estado del envío. Sin restricción de orden; al pasar a delivered se fija la fecha de entrega.
func (s *Service) ApplyStatus(ctx context.Context, id string, status entity.ShipmentStatus) (*entity.Shipment, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	sh, events, err := s.mutate(ctx, id, func(sh *entity.Shipment, now time.Time) ([]entity.DomainEvent, bool, error) {
		evt, err := dtracking.ApplyStatus(sh, status, now)
		if err != nil || evt == nil {
			return nil, false, err
		}
		return []entity.DomainEvent{*evt}, true, nil
	})
	if err != nil {
		return nil, err
	}
	s.logTransitions(events)
	return sh, nil
}

// AdvanceRouteStage avanza a la etapa siguiente. En la última etapa no hace nada ni emite evento.
func (s *Service) AdvanceRouteStage(ctx context.Context, id string) (*entity.Shipment, error) {
	sh, events, err := s.mutate(ctx, id, func(sh *entity.Shipment, now time.Time) ([]entity.DomainEvent, bool, error) {
		evt := dtracking.AdvanceStage(sh, now)
		if evt == nil {
			return nil, false, nil
		}
		return []entity.DomainEvent{*evt}, true, nil
	})
	if err != nil {
		return nil, err
	}
	s.logTransitions(events)
	return sh, nil
}

// SetRouteStage fija una etapa arbitraria, incluso anterior a la actual.
func (s *Service) SetRouteStage(ctx context.Context, id string, stage entity.RouteStage) (*entity.Shipment, error) {
	if !stage.Valid() {
		return nil, domain.ErrInvalidStage
	}
	sh, events, err := s.mutate(ctx, id, func(sh *entity.Shipment, now time.Time) ([]entity.DomainEvent, bool, error) {
		evt, err := dtracking.SetStage(sh, stage, now)
		if err != nil || evt == nil {
			return nil, false, err
		}
		return []entity.DomainEvent{*evt}, true, nil
	})
	if err != nil {
		return nil, err
	}
	s.logTransitions(events)
	return sh, nil
}

// UpdateShipmentInput edición administrativa. Los campos nil no se tocan.
type UpdateShipmentInput struct {
	Status            *entity.ShipmentStatus
	RouteStage        *entity.RouteStage
	EstimatedDelivery *time.Time
	AdminNotes        *string
	Description       *string
}

// UpdateShipment aplica en una sola transacción los cambios de detalle y las transiciones pedidas;
// cada transición aceptada produce su propio evento.
func (s *Service) UpdateShipment(ctx context.Context, id string, in UpdateShipmentInput) (*entity.Shipment, error) {
	if in.Status != nil && !in.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if in.RouteStage != nil && !in.RouteStage.Valid() {
		return nil, domain.ErrInvalidStage
	}
	sh, events, err := s.mutate(ctx, id, func(sh *entity.Shipment, now time.Time) ([]entity.DomainEvent, bool, error) {
		var (
			events  []entity.DomainEvent
			changed bool
		)
		if in.Status != nil {
			evt, err := dtracking.ApplyStatus(sh, *in.Status, now)
			if err != nil {
				return nil, false, err
			}
			if evt != nil {
				events = append(events, *evt)
				changed = true
			}
		}
		if in.RouteStage != nil {
			evt, err := dtracking.SetStage(sh, *in.RouteStage, now)
			if err != nil {
				return nil, false, err
			}
			if evt != nil {
				events = append(events, *evt)
				changed = true
			}
		}
		if in.EstimatedDelivery != nil {
			sh.EstimatedDelivery = in.EstimatedDelivery
			changed = true
		}
		if in.AdminNotes != nil {
			sh.AdminNotes = *in.AdminNotes
			changed = true
		}
		if in.Description != nil {
			sh.Description = *in.Description
			changed = true
		}
		if changed {
			sh.LastUpdated = now
		}
		return events, changed, nil
	})
	if err != nil {
		return nil, err
	}
	s.logTransitions(events)
	return sh, nil
}

func (s *Service) logTransitions(events []entity.DomainEvent) {
	for _, e := range events {
		switch evt := e.(type) {
		case entity.ShipmentStatusChanged:
			s.log.Info().Str("shipment_id", evt.ShipmentID).Str("old", string(evt.OldStatus)).Str("new", string(evt.NewStatus)).Msg("estado de envío actualizado")
		case entity.ShipmentRouteChanged:
			if dtracking.IsBackward(&evt) {
				s.log.Warn().Str("shipment_id", evt.ShipmentID).Str("old", string(evt.OldStage)).Str("new", string(evt.NewStage)).Msg("etapa de ruta retrocedida")
				continue
			}
			s.log.Info().Str("shipment_id", evt.ShipmentID).Str("old", string(evt.OldStage)).Str("new", string(evt.NewStage)).Float64("progress", evt.Progress).Msg("etapa de ruta actualizada")
		}
	}
}

// GetShipment devuelve el envío si el llamador puede verlo.
func (s *Service) GetShipment(ctx context.Context, caller ports.Caller, id string) (*entity.Shipment, error) {
	sh, err := s.shipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, domain.ErrShipmentNotFound
	}
	if !caller.CanRead(sh.CustomerID) {
		return nil, domain.ErrForbidden
	}
	return sh, nil
}

// TrackByCode búsqueda por código de seguimiento; el código actúa como credencial de lectura.
func (s *Service) TrackByCode(ctx context.Context, code string) (*entity.Shipment, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("código de seguimiento requerido: %w", domain.ErrInvalidInput)
	}
	sh, err := s.shipmentRepo.GetByTrackingCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, domain.ErrShipmentNotFound
	}
	return sh, nil
}

// ListShipments staff ve todos; un cliente solo los suyos.
func (s *Service) ListShipments(ctx context.Context, caller ports.Caller, f repository.ShipmentFilter) ([]*entity.Shipment, error) {
	if !caller.Staff {
		f.CustomerID = caller.UserID
	}
	return s.shipmentRepo.List(ctx, f)
}
