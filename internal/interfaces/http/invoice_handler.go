package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/dto"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/ledger"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/ports"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
)

// InvoiceHandler maneja facturas y pagos (protegido).
type InvoiceHandler struct {
	engine *ledger.Engine
	pdf    ports.InvoicePDFGenerator
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(engine *ledger.Engine, pdf ports.InvoicePDFGenerator) *InvoiceHandler {
	return &InvoiceHandler{engine: engine, pdf: pdf}
}

// Create godoc
// @Summary      Crear factura
// @Description  Asigna el número INV-NNNN, congela las tarifas del catálogo y registra paying_bill como pago inicial.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateInvoiceRequest  true  "Factura"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	inv, err := h.engine.CreateInvoiceFromRates(c.Context(), ledger.CreateFromRatesInput{
		UserID:           in.UserID,
		Description:      in.Description,
		Packages:         in.Packages,
		Quantity:         in.Quantity,
		WeightKg:         in.WeightKg,
		ServiceTierID:    in.ServiceTierID,
		WeightHandlingID: in.WeightHandlingID,
		PayingBill:       in.PayingBill,
		PayingMethod:     entity.PaymentMethod(in.PayingMethod),
		RecordedBy:       GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToInvoiceResponse(inv, nil))
}

// List godoc
// @Summary      Listar facturas
// @Description  Staff ve todas; un cliente solo las suyas.
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        status  query     string  false  "unpaid | partially_paid | paid"
// @Param        user_id query     string  false  "Filtro por cliente (solo staff)"
// @Param        limit   query     int     false  "Límite (default 20)"
// @Param        offset  query     int     false  "Offset"
// @Success      200     {object}  dto.InvoiceListResponse
// @Failure      401     {object}  dto.ErrorResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	list, err := h.engine.ListInvoices(c.Context(), CallerFrom(c), repository.InvoiceFilter{
		UserID: c.Query("user_id"),
		Status: entity.PaymentStatus(c.Query("status")),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToInvoiceList(list, page))
}

// GetByID godoc
// @Summary      Detalle de factura
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	inv, payments, err := h.engine.GetInvoice(c.Context(), CallerFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToInvoiceResponse(inv, payments))
}

// PDF godoc
// @Summary      Descargar factura en PDF
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	inv, payments, err := h.engine.GetInvoice(c.Context(), CallerFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	pdf, err := h.pdf.GenerateInvoicePDF(c.Context(), inv, payments)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s.pdf"`, inv.InvoiceNumber))
	return c.Send(pdf)
}

// Recompute godoc
// @Summary      Recalcular totales de una factura
// @Description  Resuma los pagos actuales; es idempotente.
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/recompute [post]
func (h *InvoiceHandler) Recompute(c *fiber.Ctx) error {
	inv, err := h.engine.RecomputeInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToInvoiceResponse(inv, nil))
}

// RecomputeAll godoc
// @Summary      Recalcular todas las facturas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RecomputeAllResponse
// @Router       /api/invoices/recompute [post]
func (h *InvoiceHandler) RecomputeAll(c *fiber.Ctx) error {
	n, err := h.engine.RecomputeAll(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.RecomputeAllResponse{Corrected: n})
}

// RecordPayment godoc
// @Summary      Registrar pago
// @Description  Guarda el pago y recalcula la factura en la misma transacción.
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID de la factura"
// @Param        body  body      dto.RecordPaymentRequest  true  "Pago"
// @Success      201   {object}  dto.PaymentResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/payments [post]
func (h *InvoiceHandler) RecordPayment(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	input := ledger.RecordPaymentInput{
		InvoiceID:  c.Params("id"),
		Amount:     in.Amount,
		Method:     entity.PaymentMethod(in.PaymentMethod),
		Reference:  in.Reference,
		Notes:      in.Notes,
		RecordedBy: GetUserID(c),
	}
	if in.PaymentDate != nil {
		input.Date = *in.PaymentDate
	}
	res, err := h.engine.RecordPayment(c.Context(), input)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PaymentResultResponse{
		Payment: dto.ToPaymentResponse(res.Payment),
		Invoice: dto.ToInvoiceResponse(res.Invoice, nil),
	})
}

// DeletePayment godoc
// @Summary      Borrar pago
// @Description  Borra el pago y recalcula su factura; devuelve la factura resultante.
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del pago"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [delete]
func (h *InvoiceHandler) DeletePayment(c *fiber.Ctx) error {
	inv, err := h.engine.DeletePayment(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToInvoiceResponse(inv, nil))
}
