package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/ledger"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/notify"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/packing"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/ports"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/rates"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/tracking"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger     *ledger.Engine
	Tracking   *tracking.Service
	Packing    *packing.Service
	Rates      *rates.Service
	Notify     *notify.Service
	InvoicePDF ports.InvoicePDFGenerator
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	invoiceHandler := NewInvoiceHandler(deps.Ledger, deps.InvoicePDF)
	shipmentHandler := NewShipmentHandler(deps.Tracking)
	packingHandler := NewPackingHandler(deps.Packing)
	ratesHandler := NewRatesHandler(deps.Rates)
	notificationHandler := NewNotificationHandler(deps.Notify)

	// Públicas
	api.Get("/track/:code", shipmentHandler.Track)
	api.Get("/shipping-config", ratesHandler.ShippingConfig)

	auth := AuthMiddleware(deps.JWTSecret)
	staff := RequireRole(jwt.RoleStaff)
	anyRole := RequireRole(jwt.RoleStaff, jwt.RoleCustomer)

	// Facturas y pagos
	invoices := api.Group("/invoices", auth)
	invoices.Post("/", staff, invoiceHandler.Create)
	invoices.Get("/", anyRole, invoiceHandler.List)
	invoices.Post("/recompute", staff, invoiceHandler.RecomputeAll)
	invoices.Get("/:id", anyRole, invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", anyRole, invoiceHandler.PDF)
	invoices.Post("/:id/recompute", staff, invoiceHandler.Recompute)
	invoices.Post("/:id/payments", staff, invoiceHandler.RecordPayment)

	payments := api.Group("/payments", auth)
	payments.Delete("/:id", staff, invoiceHandler.DeletePayment)

	// Envíos
	shipments := api.Group("/shipments", auth)
	shipments.Post("/", staff, shipmentHandler.Register)
	shipments.Get("/", anyRole, shipmentHandler.List)
	shipments.Get("/:id", anyRole, shipmentHandler.GetByID)
	shipments.Patch("/:id", staff, shipmentHandler.Update)
	shipments.Post("/:id/status", staff, shipmentHandler.UpdateStatus)
	shipments.Post("/:id/advance", staff, shipmentHandler.AdvanceStage)
	shipments.Post("/:id/stage", staff, shipmentHandler.SetStage)

	// Packing lists (staff)
	packingLists := api.Group("/packing-lists", auth, staff)
	packingLists.Post("/", packingHandler.Create)
	packingLists.Get("/", packingHandler.List)
	packingLists.Get("/:id", packingHandler.GetByID)

	// Catálogo de tarifas (alta solo staff)
	api.Post("/service-tiers", auth, staff, ratesHandler.CreateServiceTier)
	api.Post("/weight-handlings", auth, staff, ratesHandler.CreateWeightHandling)

	// Notificaciones del usuario autenticado
	notifications := api.Group("/notifications", auth, anyRole)
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Post("/read-all", notificationHandler.MarkAllRead)
	notifications.Post("/:id/read", notificationHandler.MarkRead)
	api.Post("/devices", auth, anyRole, notificationHandler.RegisterDevice)
}
