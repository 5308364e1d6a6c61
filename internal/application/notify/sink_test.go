package notify_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/notify"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/infrastructure/memory"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/pkg/logger"
)

// MockPusher implementación mock de notify.Pusher.
type MockPusher struct {
	mock.Mock
}

func (m *MockPusher) Push(ctx context.Context, devices []*entity.UserDevice, msg notify.PushMessage) error {
	args := m.Called(ctx, devices, msg)
	return args.Error(0)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var clock = fixedClock{now: time.Date(2025, 12, 16, 10, 0, 0, 0, time.UTC)}

func TestEmit_RutaPersisteYEmpuja(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := notify.NewService(store.Notifications(), store.Devices(), clock)
	_, err := svc.RegisterDevice(ctx, "customer-1", "tok-1", entity.DeviceAndroid)
	require.NoError(t, err)

	pusher := new(MockPusher)
	pusher.On("Push", mock.Anything, mock.MatchedBy(func(ds []*entity.UserDevice) bool {
		return len(ds) == 1 && ds[0].Token == "tok-1"
	}), mock.MatchedBy(func(m notify.PushMessage) bool {
		return m.Title == "Shipment Location Updated" &&
			m.Body == "Your shipment TRK-000001 has arrived at Dar es Salaam" &&
			m.Data["progress"] == "100" &&
			m.Data["click_action"] == "FLUTTER_NOTIFICATION_CLICK"
	})).Return(nil).Once()

	sink := notify.NewSink(store.Notifications(), store.Devices(), pusher, clock, logger.Nop())
	err = sink.Emit(ctx, entity.ShipmentRouteChanged{
		ShipmentID: "s-1", TrackingCode: "TRK-000001", CustomerID: "customer-1",
		OldStage: entity.RouteStageZanzibar, NewStage: entity.RouteStageDarEsSalaam, Progress: 100,
	})
	require.NoError(t, err)
	pusher.AssertExpectations(t)

	list, err := svc.List(ctx, "customer-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.NotificationShipmentRoute, list[0].Type)
	assert.Equal(t, "dar_es_salaam", list[0].Data["route_stage"])
	_, hasClick := list[0].Data["click_action"]
	assert.False(t, hasClick, "click_action solo viaja en el push")
}

func TestEmit_SinClienteNoNotifica(t *testing.T) {
	store := memory.New()
	pusher := new(MockPusher)
	sink := notify.NewSink(store.Notifications(), store.Devices(), pusher, clock, logger.Nop())

	err := sink.Emit(context.Background(), entity.ShipmentStatusChanged{ShipmentID: "s-1", NewStatus: entity.ShipmentStatusDelivered})
	require.NoError(t, err)
	pusher.AssertNotCalled(t, "Push", mock.Anything, mock.Anything, mock.Anything)
}

func TestEmit_SinDispositivosSoloPersiste(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	pusher := new(MockPusher)
	sink := notify.NewSink(store.Notifications(), store.Devices(), pusher, clock, logger.Nop())

	err := sink.Emit(ctx, entity.InvoiceStatusChanged{
		InvoiceID: "i-1", InvoiceNumber: "INV-0007", UserID: "customer-1",
		OldStatus: entity.PaymentStatusUnpaid, NewStatus: entity.PaymentStatusPartiallyPaid,
	})
	require.NoError(t, err)
	pusher.AssertNotCalled(t, "Push", mock.Anything, mock.Anything, mock.Anything)

	list, _ := store.Notifications().ListByUser(ctx, "customer-1", 10, 0)
	require.Len(t, list, 1)
	assert.Equal(t, "Your invoice INV-0007 is now Partially Paid", list[0].Message)
}

func TestEmit_FalloDePushNoEsError(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Devices().Upsert(ctx, &entity.UserDevice{UserID: "customer-1", Token: "t", Type: entity.DeviceIOS, IsActive: true}))
	pusher := new(MockPusher)
	pusher.On("Push", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("gateway down"))
	sink := notify.NewSink(store.Notifications(), store.Devices(), pusher, clock, logger.Nop())

	err := sink.Emit(ctx, entity.ShipmentStatusChanged{ShipmentID: "s-1", CustomerID: "customer-1", NewStatus: entity.ShipmentStatusInTransit})
	assert.NoError(t, err)
	count, _ := store.Notifications().CountUnread(ctx, "customer-1")
	assert.Equal(t, 1, count)
}

func TestService_LeidasYDispositivos(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := notify.NewService(store.Notifications(), store.Devices(), clock)

	_, err := svc.RegisterDevice(ctx, "customer-1", "tok", "windows")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	d1, err := svc.RegisterDevice(ctx, "customer-1", "tok", entity.DeviceIOS)
	require.NoError(t, err)
	d2, err := svc.RegisterDevice(ctx, "customer-2", "tok", entity.DeviceIOS)
	require.NoError(t, err)
	assert.Equal(t, d1.ID, d2.ID, "el token se reasigna al nuevo usuario")
	mine, _ := store.Devices().ListActiveByUser(ctx, "customer-1")
	assert.Empty(t, mine)

	n := &entity.Notification{UserID: "customer-1", Title: "x"}
	require.NoError(t, store.Notifications().Create(ctx, n))
	assert.ErrorIs(t, svc.MarkRead(ctx, "customer-2", n.ID), domain.ErrNotificationNotFound)
	require.NoError(t, svc.MarkRead(ctx, "customer-1", n.ID))

	count, err := svc.UnreadCount(ctx, "customer-1")
	require.NoError(t, err)
	assert.Zero(t, count)
	changed, err := svc.MarkAllRead(ctx, "customer-1")
	require.NoError(t, err)
	assert.Zero(t, changed)
}
