package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo envíos en memoria.
type ShipmentRepo struct{ b binding }

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneShipment(s entity.Shipment) *entity.Shipment {
	s.EstimatedDelivery = cloneTime(s.EstimatedDelivery)
	s.ActualDeliveryDate = cloneTime(s.ActualDeliveryDate)
	return &s
}

func (r *ShipmentRepo) Create(_ context.Context, s *entity.Shipment) error {
	defer r.b.lock()()
	st := r.b.state()
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	for _, existing := range st.shipments {
		if existing.TrackingCode == s.TrackingCode {
			return fmt.Errorf("tracking code %s: %w", s.TrackingCode, domain.ErrDuplicate)
		}
	}
	st.shipments = append(st.shipments, *cloneShipment(*s))
	return nil
}

func (r *ShipmentRepo) find(match func(entity.Shipment) bool) *entity.Shipment {
	for _, s := range r.b.state().shipments {
		if match(s) {
			return cloneShipment(s)
		}
	}
	return nil
}

func (r *ShipmentRepo) GetByID(_ context.Context, id string) (*entity.Shipment, error) {
	defer r.b.lock()()
	return r.find(func(s entity.Shipment) bool { return s.ID == id }), nil
}

func (r *ShipmentRepo) GetByTrackingCode(_ context.Context, code string) (*entity.Shipment, error) {
	defer r.b.lock()()
	return r.find(func(s entity.Shipment) bool { return s.TrackingCode == code }), nil
}

func (r *ShipmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Shipment, error) {
	return r.GetByID(ctx, id)
}

func (r *ShipmentRepo) Update(_ context.Context, s *entity.Shipment) error {
	defer r.b.lock()()
	st := r.b.state()
	for i := range st.shipments {
		if st.shipments[i].ID == s.ID {
			st.shipments[i] = *cloneShipment(*s)
			return nil
		}
	}
	return domain.ErrShipmentNotFound
}

// List más recientes primero.
func (r *ShipmentRepo) List(_ context.Context, f repository.ShipmentFilter) ([]*entity.Shipment, error) {
	defer r.b.lock()()
	st := r.b.state()
	var out []*entity.Shipment
	for i := len(st.shipments) - 1; i >= 0; i-- {
		s := st.shipments[i]
		if f.CustomerID != "" && s.CustomerID != f.CustomerID {
			continue
		}
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		out = append(out, cloneShipment(s))
	}
	return page(out, f.Limit, f.Offset), nil
}
