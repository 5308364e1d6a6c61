package tracking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/tracking"
)

var now = time.Date(2025, 12, 16, 12, 0, 0, 0, time.UTC)

func newShipment() *entity.Shipment {
	return &entity.Shipment{
		ID: "s-1", TrackingCode: "TRK-000001", CustomerID: "u-1",
		Status: entity.ShipmentStatusPending, CurrentRouteStage: entity.RouteStageChina,
	}
}

// Escenario: desde china, tres avances llegan a dar_es_salaam con 50/75/100; el cuarto no hace nada.
func TestAdvanceStage_RecorreLaRuta(t *testing.T) {
	s := newShipment()
	want := []struct {
		stage    entity.RouteStage
		progress float64
	}{
		{entity.RouteStageEthiopia, 50},
		{entity.RouteStageZanzibar, 75},
		{entity.RouteStageDarEsSalaam, 100},
	}
	for _, w := range want {
		evt := tracking.AdvanceStage(s, now)
		require.NotNil(t, evt)
		assert.Equal(t, w.stage, evt.NewStage)
		assert.Equal(t, w.progress, evt.Progress)
		assert.Equal(t, w.stage, s.CurrentRouteStage)
	}

	evt := tracking.AdvanceStage(s, now)
	assert.Nil(t, evt, "en la última etapa avanzar es un no-op")
	assert.Equal(t, entity.RouteStageDarEsSalaam, s.CurrentRouteStage)
	assert.Equal(t, 100.0, s.RouteProgress())
}

func TestApplyStatus_DeliveredFijaFechaUnaVez(t *testing.T) {
	s := newShipment()

	evt, err := tracking.ApplyStatus(s, entity.ShipmentStatusDelivered, now)
	require.NoError(t, err)
	require.NotNil(t, evt)
	assert.Equal(t, entity.ShipmentStatusPending, evt.OldStatus)
	assert.Equal(t, entity.ShipmentStatusDelivered, evt.NewStatus)
	require.NotNil(t, s.ActualDeliveryDate)
	assert.Equal(t, now, *s.ActualDeliveryDate)

	evt, err = tracking.ApplyStatus(s, entity.ShipmentStatusDelivered, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Nil(t, evt, "mismo estado no emite evento")
	assert.Equal(t, now, *s.ActualDeliveryDate, "la fecha de entrega no se sobrescribe")
}

func TestApplyStatus_SinRestriccionDeOrden(t *testing.T) {
	s := newShipment()
	s.Status = entity.ShipmentStatusInTransit

	evt, err := tracking.ApplyStatus(s, entity.ShipmentStatusPending, now)
	require.NoError(t, err)
	require.NotNil(t, evt)
	assert.Equal(t, entity.ShipmentStatusPending, s.Status)
}

func TestApplyStatus_EstadoInvalido(t *testing.T) {
	s := newShipment()
	_, err := tracking.ApplyStatus(s, "lost", now)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.ShipmentStatusPending, s.Status)
}

func TestSetStage_PermiteRetroceso(t *testing.T) {
	s := newShipment()
	s.CurrentRouteStage = entity.RouteStageZanzibar

	evt, err := tracking.SetStage(s, entity.RouteStageEthiopia, now)
	require.NoError(t, err)
	require.NotNil(t, evt)
	assert.True(t, tracking.IsBackward(evt))
	assert.Equal(t, 50.0, evt.Progress)
}

func TestSetStage_MismaEtapaNoEmite(t *testing.T) {
	s := newShipment()
	evt, err := tracking.SetStage(s, entity.RouteStageChina, now)
	require.NoError(t, err)
	assert.Nil(t, evt)
}

func TestSetStage_EtapaInvalida(t *testing.T) {
	_, err := tracking.SetStage(newShipment(), "nairobi", now)
	assert.ErrorIs(t, err, domain.ErrInvalidStage)
}
