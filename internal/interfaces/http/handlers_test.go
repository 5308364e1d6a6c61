package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/dto"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/ledger"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/notify"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/outbox"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/packing"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/rates"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/tracking"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/infrastructure/memory"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/infrastructure/pdf"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/infrastructure/push"
	apphttp "github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/interfaces/http"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/pkg/jwt"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/pkg/logger"
)

const (
	staffID    = "staff-1"
	customerID = "cust-1"
	otherID    = "cust-2"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type testAPI struct {
	app        *fiber.App
	tierID     string
	handlingID string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memory.New()
	clock := fixedClock{now: time.Date(2025, 12, 16, 9, 30, 0, 0, time.UTC)}
	log := logger.Nop()

	sink := notify.NewSink(store.Notifications(), store.Devices(), push.NewLogPusher(log), clock, log)
	dispatcher := outbox.NewDispatcher(store.Outbox(), sink, clock, log)
	ratesSvc := rates.NewService(store.Rates(), log)

	ctx := context.Background()
	tier, err := ratesSvc.CreateServiceTier(ctx, "Standard", "", decimal.RequireFromString("8"))
	require.NoError(t, err)
	handling, err := ratesSvc.CreateWeightHandling(ctx, "Normal", "", decimal.RequireFromString("2500"))
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:     ledger.NewEngine(store, store.Invoices(), store.Payments(), store.Rates(), dispatcher, clock, log),
		Tracking:   tracking.NewService(store, store.Shipments(), dispatcher, clock, log),
		Packing:    packing.NewService(store, store.PackingLists(), clock, log),
		Rates:      ratesSvc,
		Notify:     notify.NewService(store.Notifications(), store.Devices(), clock),
		InvoicePDF: pdf.NewMarotoPDFGenerator("Kaluuu Express"),
		JWTSecret:  testJWTSecret,
	})
	return &testAPI{app: app, tierID: tier.ID, handlingID: handling.ID}
}

// do lanza la petición como el usuario dado (vacío = anónimo) y devuelve status y cuerpo.
func (a *testAPI) do(t *testing.T, method, path, userID, role string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("Authorization", tokenFor(t, userID, role))
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func (a *testAPI) staff(t *testing.T, method, path string, body interface{}) (int, []byte) {
	t.Helper()
	return a.do(t, method, path, staffID, jwt.RoleStaff, body)
}

func (a *testAPI) customer(t *testing.T, userID, method, path string, body interface{}) (int, []byte) {
	t.Helper()
	return a.do(t, method, path, userID, jwt.RoleCustomer, body)
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func (a *testAPI) createInvoice(t *testing.T, payingBill string) dto.InvoiceResponse {
	t.Helper()
	status, raw := a.staff(t, http.MethodPost, "/api/invoices", map[string]interface{}{
		"user_id":            customerID,
		"description":        "Electronics",
		"weight_kg":          "10",
		"service_tier_id":    a.tierID,
		"weight_handling_id": a.handlingID,
		"paying_bill":        payingBill,
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	return decode[dto.InvoiceResponse](t, raw)
}

func TestInvoiceAPI_CicloDePagos(t *testing.T) {
	api := newTestAPI(t)
	inv := api.createInvoice(t, "0")
	assert.Equal(t, "INV-0001", inv.InvoiceNumber)
	assert.Equal(t, "200000.00", inv.TotalAmount)
	assert.Equal(t, "unpaid", inv.PaymentStatus)

	status, raw := api.staff(t, http.MethodPost, "/api/invoices/"+inv.ID+"/payments", map[string]interface{}{
		"amount": "50000", "payment_method": "mobile",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	res := decode[dto.PaymentResultResponse](t, raw)
	assert.Equal(t, "50000.00", res.Invoice.PaidAmount)
	assert.Equal(t, "150000.00", res.Invoice.CreditAmount)
	assert.Equal(t, "partially_paid", res.Invoice.PaymentStatus)

	status, raw = api.customer(t, customerID, http.MethodGet, "/api/invoices/"+inv.ID, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	got := decode[dto.InvoiceResponse](t, raw)
	require.Len(t, got.Payments, 1)
	assert.Equal(t, "50000.00", got.Payments[0].Amount)

	status, _ = api.customer(t, otherID, http.MethodGet, "/api/invoices/"+inv.ID, nil)
	assert.Equal(t, http.StatusForbidden, status, "otro cliente no puede ver la factura")

	status, raw = api.staff(t, http.MethodDelete, "/api/payments/"+res.Payment.ID, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	after := decode[dto.InvoiceResponse](t, raw)
	assert.Equal(t, "0.00", after.PaidAmount)
	assert.Equal(t, "unpaid", after.PaymentStatus)

	status, _ = api.staff(t, http.MethodDelete, "/api/payments/"+res.Payment.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestInvoiceAPI_PayingBillQuedaComoPagoInicial(t *testing.T) {
	api := newTestAPI(t)
	inv := api.createInvoice(t, "200000")
	assert.Equal(t, "paid", inv.PaymentStatus)
	assert.Equal(t, "200000.00", inv.PaidAmount)
	assert.Equal(t, "0.00", inv.Balance)
}

func TestInvoiceAPI_ClienteNoPuedeCrearNiPagar(t *testing.T) {
	api := newTestAPI(t)
	status, _ := api.customer(t, customerID, http.MethodPost, "/api/invoices", map[string]interface{}{"user_id": customerID})
	assert.Equal(t, http.StatusForbidden, status)

	inv := api.createInvoice(t, "0")
	status, _ = api.customer(t, customerID, http.MethodPost, "/api/invoices/"+inv.ID+"/payments", map[string]interface{}{"amount": "10"})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestInvoiceAPI_ErroresDeValidacionYNoEncontrado(t *testing.T) {
	api := newTestAPI(t)
	inv := api.createInvoice(t, "0")

	status, raw := api.staff(t, http.MethodPost, "/api/invoices/"+inv.ID+"/payments", map[string]interface{}{"amount": "0"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)

	status, _ = api.staff(t, http.MethodPost, "/api/invoices/"+inv.ID+"/payments", map[string]interface{}{"amount": "10", "payment_method": "cheque"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw = api.staff(t, http.MethodPost, "/api/invoices/no-existe/payments", map[string]interface{}{"amount": "10"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, raw).Code)

	status, _ = api.staff(t, http.MethodPost, "/api/invoices", map[string]interface{}{
		"user_id": customerID, "weight_kg": "10", "service_tier_id": "x", "weight_handling_id": api.handlingID,
	})
	assert.Equal(t, http.StatusBadRequest, status, "tarifa inexistente")
}

func TestInvoiceAPI_ListadoFiltradoPorCliente(t *testing.T) {
	api := newTestAPI(t)
	api.createInvoice(t, "0")
	api.createInvoice(t, "0")

	status, raw := api.customer(t, customerID, http.MethodGet, "/api/invoices", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[dto.InvoiceListResponse](t, raw).Items, 2)

	status, raw = api.customer(t, otherID, http.MethodGet, "/api/invoices?user_id="+customerID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[dto.InvoiceListResponse](t, raw).Items, "un cliente no puede listar facturas ajenas")
}

func TestInvoiceAPI_RecalculoYPDF(t *testing.T) {
	api := newTestAPI(t)
	inv := api.createInvoice(t, "1000")

	status, raw := api.staff(t, http.MethodPost, "/api/invoices/"+inv.ID+"/recompute", nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, "1000.00", decode[dto.InvoiceResponse](t, raw).PaidAmount)

	status, raw = api.staff(t, http.MethodPost, "/api/invoices/recompute", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, decode[dto.RecomputeAllResponse](t, raw).Corrected)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/"+inv.ID+"/pdf", nil)
	req.Header.Set("Authorization", tokenFor(t, customerID, jwt.RoleCustomer))
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestShipmentAPI_SeguimientoYNotificaciones(t *testing.T) {
	api := newTestAPI(t)
	status, raw := api.staff(t, http.MethodPost, "/api/shipments", map[string]interface{}{
		"customer_id": customerID, "customer_name": "Amina", "origin": "Guangzhou",
		"destination": "Dar es Salaam", "weight": "12.5", "estimated_delivery": "2025-12-30",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	sh := decode[dto.ShipmentResponse](t, raw)
	assert.Equal(t, "TRK-000001", sh.TrackingCode)
	assert.Equal(t, "china", sh.CurrentRouteStage)
	assert.Equal(t, 25.0, sh.RouteProgress)
	assert.Equal(t, "2025-12-30", sh.EstimatedDelivery)

	status, raw = api.do(t, http.MethodGet, "/api/track/"+sh.TrackingCode, "", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, string(raw), "Amina", "la vista pública no expone datos del cliente")

	status, raw = api.staff(t, http.MethodPost, "/api/shipments/"+sh.ID+"/advance", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 50.0, decode[dto.ShipmentResponse](t, raw).RouteProgress)

	status, _ = api.staff(t, http.MethodPost, "/api/shipments/"+sh.ID+"/stage", map[string]string{"route_stage": "nairobi"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw = api.staff(t, http.MethodPost, "/api/shipments/"+sh.ID+"/status", map[string]string{"status": "delivered"})
	require.Equal(t, http.StatusOK, status)
	delivered := decode[dto.ShipmentResponse](t, raw)
	assert.True(t, delivered.IsDelivered)
	assert.NotNil(t, delivered.ActualDeliveryDate)

	status, raw = api.customer(t, customerID, http.MethodGet, "/api/notifications/unread-count", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, decode[dto.UnreadCountResponse](t, raw).UnreadCount, "una por la etapa y otra por el estado")

	status, raw = api.customer(t, customerID, http.MethodPost, "/api/notifications/read-all", nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, decode[dto.MarkAllReadResponse](t, raw).Updated)

	status, _ = api.customer(t, otherID, http.MethodGet, "/api/shipments/"+sh.ID, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestShipmentAPI_CodigoDuplicadoEsConflicto(t *testing.T) {
	api := newTestAPI(t)
	body := map[string]interface{}{"tracking_code": "KX-1", "origin": "A", "destination": "B", "weight": "1"}
	status, _ := api.staff(t, http.MethodPost, "/api/shipments", body)
	require.Equal(t, http.StatusCreated, status)

	status, raw := api.staff(t, http.MethodPost, "/api/shipments", body)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", decode[dto.ErrorResponse](t, raw).Code)
}

func TestPackingAPI_CodigoDelDia(t *testing.T) {
	api := newTestAPI(t)
	for _, want := range []string{"PL-20251216-001", "PL-20251216-002"} {
		status, raw := api.staff(t, http.MethodPost, "/api/packing-lists", map[string]interface{}{
			"total_cartons": 4, "total_weight": "80.5",
		})
		require.Equal(t, http.StatusCreated, status, string(raw))
		assert.Equal(t, want, decode[dto.PackingListResponse](t, raw).Code)
	}

	status, _ := api.customer(t, customerID, http.MethodGet, "/api/packing-lists", nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestRatesAPI_CatalogoPublico(t *testing.T) {
	api := newTestAPI(t)
	status, raw := api.do(t, http.MethodGet, "/api/shipping-config", "", "", nil)
	require.Equal(t, http.StatusOK, status)
	cfg := decode[dto.ShippingConfigResponse](t, raw)
	require.Len(t, cfg.ServiceTiers, 1)
	assert.Equal(t, "8.00", cfg.ServiceTiers[0].PricePerKgUSD)

	status, _ = api.staff(t, http.MethodPost, "/api/service-tiers", map[string]interface{}{"name": "Standard", "rate": "9"})
	assert.Equal(t, http.StatusConflict, status, "nombre de tarifa duplicado")
}

func TestDevicesAPI_Registro(t *testing.T) {
	api := newTestAPI(t)
	status, raw := api.customer(t, customerID, http.MethodPost, "/api/devices", map[string]string{
		"device_token": "tok-1", "device_type": "android",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	assert.True(t, decode[dto.DeviceResponse](t, raw).IsActive)

	status, _ = api.customer(t, customerID, http.MethodPost, "/api/devices", map[string]string{
		"device_token": "tok-2", "device_type": "windows",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}
