package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/dto"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/tracking"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
)

// ShipmentHandler maneja el registro y seguimiento de envíos.
type ShipmentHandler struct {
	svc *tracking.Service
}

// NewShipmentHandler construye el handler.
func NewShipmentHandler(svc *tracking.Service) *ShipmentHandler {
	return &ShipmentHandler{svc: svc}
}

// Register godoc
// @Summary      Registrar envío
// @Description  Crea el envío en estado pending y etapa china. Sin tracking_code se genera TRK-NNNNNN.
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterShipmentRequest  true  "Envío"
// @Success      201   {object}  dto.ShipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	eta, err := dto.ParseDate(in.EstimatedDelivery)
	if err != nil {
		return badRequest(c, "VALIDATION", "estimated_delivery debe ser YYYY-MM-DD")
	}
	sh, err := h.svc.RegisterShipment(c.Context(), tracking.RegisterShipmentInput{
		TrackingCode:      in.TrackingCode,
		CustomerID:        in.CustomerID,
		CustomerName:      in.CustomerName,
		CustomerEmail:     in.CustomerEmail,
		CustomerPhone:     in.CustomerPhone,
		Origin:            in.Origin,
		Destination:       in.Destination,
		Weight:            in.Weight,
		Description:       in.Description,
		EstimatedDelivery: eta,
		AdminNotes:        in.AdminNotes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToShipmentResponse(sh))
}

// List godoc
// @Summary      Listar envíos
// @Description  Staff ve todos; un cliente solo los suyos.
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        status  query     string  false  "Filtro por estado"
// @Param        limit   query     int     false  "Límite (default 20)"
// @Param        offset  query     int     false  "Offset"
// @Success      200     {object}  dto.ShipmentListResponse
// @Router       /api/shipments [get]
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	list, err := h.svc.ListShipments(c.Context(), CallerFrom(c), repository.ShipmentFilter{
		CustomerID: c.Query("customer_id"),
		Status:     entity.ShipmentStatus(c.Query("status")),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToShipmentList(list, page))
}

// GetByID godoc
// @Summary      Detalle de envío
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del envío"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [get]
func (h *ShipmentHandler) GetByID(c *fiber.Ctx) error {
	sh, err := h.svc.GetShipment(c.Context(), CallerFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToShipmentResponse(sh))
}

// Track godoc
// @Summary      Seguimiento público
// @Description  Consulta por código de seguimiento sin autenticación; no expone datos del cliente.
// @Tags         tracking
// @Produce      json
// @Param        code  path      string  true  "Código de seguimiento"
// @Success      200   {object}  dto.PublicTrackingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/track/{code} [get]
func (h *ShipmentHandler) Track(c *fiber.Ctx) error {
	sh, err := h.svc.TrackByCode(c.Context(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToPublicTracking(sh))
}

// UpdateStatus godoc
// @Summary      Cambiar estado del envío
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "ID del envío"
// @Param        body  body      dto.StatusRequest  true  "Estado"
// @Success      200   {object}  dto.ShipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/status [post]
func (h *ShipmentHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	sh, err := h.svc.ApplyStatus(c.Context(), c.Params("id"), entity.ShipmentStatus(in.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToShipmentResponse(sh))
}

// AdvanceStage godoc
// @Summary      Avanzar etapa de ruta
// @Description  Mueve el envío a la siguiente etapa; en la última no hace nada.
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del envío"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/advance [post]
func (h *ShipmentHandler) AdvanceStage(c *fiber.Ctx) error {
	sh, err := h.svc.AdvanceRouteStage(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToShipmentResponse(sh))
}

// SetStage godoc
// @Summary      Fijar etapa de ruta
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "ID del envío"
// @Param        body  body      dto.RouteStageRequest  true  "Etapa"
// @Success      200   {object}  dto.ShipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/stage [post]
func (h *ShipmentHandler) SetStage(c *fiber.Ctx) error {
	var in dto.RouteStageRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	sh, err := h.svc.SetRouteStage(c.Context(), c.Params("id"), entity.RouteStage(in.RouteStage))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToShipmentResponse(sh))
}

// Update godoc
// @Summary      Edición parcial del envío
// @Description  Aplica estado y etapa con las mismas reglas que los endpoints dedicados.
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID del envío"
// @Param        body  body      dto.UpdateShipmentRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ShipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [patch]
func (h *ShipmentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	upd := tracking.UpdateShipmentInput{AdminNotes: in.AdminNotes, Description: in.Description}
	if in.Status != nil {
		st := entity.ShipmentStatus(*in.Status)
		upd.Status = &st
	}
	if in.RouteStage != nil {
		rs := entity.RouteStage(*in.RouteStage)
		upd.RouteStage = &rs
	}
	if in.EstimatedDelivery != nil {
		eta, err := dto.ParseDate(*in.EstimatedDelivery)
		if err != nil || eta == nil {
			return badRequest(c, "VALIDATION", "estimated_delivery debe ser YYYY-MM-DD")
		}
		upd.EstimatedDelivery = eta
	}
	sh, err := h.svc.UpdateShipment(c.Context(), c.Params("id"), upd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToShipmentResponse(sh))
}
