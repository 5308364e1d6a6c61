package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/dto"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/notify"
)

// NotificationHandler historial de notificaciones y registro de dispositivos del usuario autenticado.
type NotificationHandler struct {
	svc *notify.Service
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(svc *notify.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// RegisterDevice godoc
// @Summary      Registrar dispositivo para push
// @Description  Si el token ya existe se reasigna al usuario actual y se reactiva.
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterDeviceRequest  true  "Dispositivo"
// @Success      201   {object}  dto.DeviceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/devices [post]
func (h *NotificationHandler) RegisterDevice(c *fiber.Ctx) error {
	var in dto.RegisterDeviceRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	d, err := h.svc.RegisterDevice(c.Context(), GetUserID(c), in.DeviceToken, in.DeviceType)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DeviceResponse{ID: d.ID, DeviceType: d.Type, IsActive: d.IsActive})
}

// List godoc
// @Summary      Historial de notificaciones
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        limit   query    int  false  "Límite (default 20)"
// @Param        offset  query    int  false  "Offset"
// @Success      200     {array}  dto.NotificationResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	list, err := h.svc.List(c.Context(), GetUserID(c), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToNotifications(list))
}

// MarkRead godoc
// @Summary      Marcar notificación como leída
// @Tags         notifications
// @Security     Bearer
// @Param        id   path  string  true  "ID de la notificación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.svc.MarkRead(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllRead godoc
// @Summary      Marcar todas como leídas
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MarkAllReadResponse
// @Router       /api/notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	n, err := h.svc.MarkAllRead(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MarkAllReadResponse{Updated: n})
}

// UnreadCount godoc
// @Summary      Contador de no leídas
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UnreadCountResponse
// @Router       /api/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	n, err := h.svc.UnreadCount(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.UnreadCountResponse{UnreadCount: n})
}
