package tracking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/outbox"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/ports"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/tracking"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/infrastructure/memory"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type recordingSink struct {
	mu     sync.Mutex
	events []entity.DomainEvent
}

func (s *recordingSink) Emit(_ context.Context, events ...entity.DomainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
	return nil
}

func (s *recordingSink) all() []entity.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.DomainEvent(nil), s.events...)
}

var now = time.Date(2025, 12, 16, 14, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*tracking.Service, *recordingSink, *memory.Store) {
	t.Helper()
	store := memory.New()
	sink := &recordingSink{}
	clock := fixedClock{now: now}
	dispatcher := outbox.NewDispatcher(store.Outbox(), sink, clock, logger.Nop())
	return tracking.NewService(store, store.Shipments(), dispatcher, clock, logger.Nop()), sink, store
}

func register(t *testing.T, svc *tracking.Service, code string) *entity.Shipment {
	t.Helper()
	sh, err := svc.RegisterShipment(context.Background(), tracking.RegisterShipmentInput{
		TrackingCode: code,
		CustomerID:   "customer-1",
		Origin:       "Guangzhou",
		Destination:  "Dar es Salaam",
		Weight:       decimal.NewFromInt(40),
	})
	require.NoError(t, err)
	return sh
}

func TestRegisterShipment_Defaults(t *testing.T) {
	svc, _, _ := newService(t)
	sh := register(t, svc, "")

	assert.Equal(t, "TRK-000001", sh.TrackingCode)
	assert.Equal(t, entity.ShipmentStatusPending, sh.Status)
	assert.Equal(t, entity.RouteStageChina, sh.CurrentRouteStage)
	assert.Equal(t, 25.0, sh.RouteProgress())
	assert.Equal(t, now, sh.RegisteredDate)

	second := register(t, svc, "")
	assert.Equal(t, "TRK-000002", second.TrackingCode)
}

func TestRegisterShipment_CodigoDuplicado(t *testing.T) {
	svc, _, _ := newService(t)
	register(t, svc, "KX-1")
	_, err := svc.RegisterShipment(context.Background(), tracking.RegisterShipmentInput{
		TrackingCode: "KX-1", Origin: "a", Destination: "b", Weight: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegisterShipment_Validacion(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.RegisterShipment(context.Background(), tracking.RegisterShipmentInput{Origin: "a", Destination: "b"})
	assert.ErrorIs(t, err, domain.ErrInvalidWeight)
	_, err = svc.RegisterShipment(context.Background(), tracking.RegisterShipmentInput{Weight: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Escenario: desde china, tres avances dan 50/75/100 y el cuarto no cambia nada ni emite evento.
func TestAdvanceRouteStage_Escenario(t *testing.T) {
	ctx := context.Background()
	svc, sink, _ := newService(t)
	sh := register(t, svc, "")

	for _, want := range []struct {
		stage    entity.RouteStage
		progress float64
	}{
		{entity.RouteStageEthiopia, 50},
		{entity.RouteStageZanzibar, 75},
		{entity.RouteStageDarEsSalaam, 100},
	} {
		got, err := svc.AdvanceRouteStage(ctx, sh.ID)
		require.NoError(t, err)
		assert.Equal(t, want.stage, got.CurrentRouteStage)
		assert.Equal(t, want.progress, got.RouteProgress())
	}

	got, err := svc.AdvanceRouteStage(ctx, sh.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RouteStageDarEsSalaam, got.CurrentRouteStage)
	assert.Equal(t, 100.0, got.RouteProgress())

	events := sink.all()
	require.Len(t, events, 3)
	last, ok := events[2].(entity.ShipmentRouteChanged)
	require.True(t, ok)
	assert.Equal(t, entity.RouteStageZanzibar, last.OldStage)
	assert.Equal(t, entity.RouteStageDarEsSalaam, last.NewStage)
	assert.Equal(t, 100.0, last.Progress)
}

func TestApplyStatus_EmiteYFijaEntrega(t *testing.T) {
	ctx := context.Background()
	svc, sink, store := newService(t)
	sh := register(t, svc, "")

	got, err := svc.ApplyStatus(ctx, sh.ID, entity.ShipmentStatusDelivered)
	require.NoError(t, err)
	require.NotNil(t, got.ActualDeliveryDate)
	assert.True(t, got.IsDelivered())

	_, err = svc.ApplyStatus(ctx, sh.ID, entity.ShipmentStatusDelivered)
	require.NoError(t, err)

	events := sink.all()
	require.Len(t, events, 1)
	evt := events[0].(entity.ShipmentStatusChanged)
	assert.Equal(t, entity.ShipmentStatusPending, evt.OldStatus)
	assert.Equal(t, entity.ShipmentStatusDelivered, evt.NewStatus)
	assert.Equal(t, "customer-1", evt.CustomerID)

	stored, _ := store.Shipments().GetByID(ctx, sh.ID)
	assert.Equal(t, entity.ShipmentStatusDelivered, stored.Status)
	for _, rec := range store.Outbox().All() {
		assert.NotNil(t, rec.DeliveredAt, "el evento queda marcado como entregado")
	}
}

func TestApplyStatus_Errores(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	_, err := svc.ApplyStatus(ctx, "missing", entity.ShipmentStatusInTransit)
	assert.ErrorIs(t, err, domain.ErrShipmentNotFound)

	sh := register(t, svc, "")
	_, err = svc.ApplyStatus(ctx, sh.ID, "lost")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestSetRouteStage_PermiteRetroceso(t *testing.T) {
	ctx := context.Background()
	svc, sink, _ := newService(t)
	sh := register(t, svc, "")

	_, err := svc.SetRouteStage(ctx, sh.ID, entity.RouteStageZanzibar)
	require.NoError(t, err)
	got, err := svc.SetRouteStage(ctx, sh.ID, entity.RouteStageEthiopia)
	require.NoError(t, err)
	assert.Equal(t, entity.RouteStageEthiopia, got.CurrentRouteStage)
	assert.Len(t, sink.all(), 2)

	_, err = svc.SetRouteStage(ctx, sh.ID, "nairobi")
	assert.ErrorIs(t, err, domain.ErrInvalidStage)
}

func TestUpdateShipment_DosTransicionesDosEventos(t *testing.T) {
	ctx := context.Background()
	svc, sink, _ := newService(t)
	sh := register(t, svc, "")

	status := entity.ShipmentStatusInTransit
	stage := entity.RouteStageEthiopia
	notes := "carga revisada"
	got, err := svc.UpdateShipment(ctx, sh.ID, tracking.UpdateShipmentInput{Status: &status, RouteStage: &stage, AdminNotes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, got.AdminNotes)

	events := sink.all()
	require.Len(t, events, 2)
	assert.Equal(t, entity.EventShipmentStatusChanged, events[0].EventType())
	assert.Equal(t, entity.EventShipmentRouteChanged, events[1].EventType())

	// Solo detalles: persiste pero no emite.
	notes2 := "otra nota"
	_, err = svc.UpdateShipment(ctx, sh.ID, tracking.UpdateShipmentInput{AdminNotes: &notes2})
	require.NoError(t, err)
	assert.Len(t, sink.all(), 2)
}

func TestAccesoCliente(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	sh := register(t, svc, "KX-9")

	_, err := svc.GetShipment(ctx, ports.Caller{UserID: "customer-1"}, sh.ID)
	require.NoError(t, err)
	_, err = svc.GetShipment(ctx, ports.Caller{UserID: "customer-2"}, sh.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := svc.ListShipments(ctx, ports.Caller{UserID: "customer-2"}, repository.ShipmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	found, err := svc.TrackByCode(ctx, " KX-9 ")
	require.NoError(t, err)
	assert.Equal(t, sh.ID, found.ID)
	_, err = svc.TrackByCode(ctx, "KX-0")
	assert.ErrorIs(t, err, domain.ErrShipmentNotFound)
}
