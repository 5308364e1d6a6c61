package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/dto"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/packing"
)

// PackingHandler maneja las packing lists (solo staff).
type PackingHandler struct {
	svc *packing.Service
}

// NewPackingHandler construye el handler.
func NewPackingHandler(svc *packing.Service) *PackingHandler {
	return &PackingHandler{svc: svc}
}

// Create godoc
// @Summary      Crear packing list
// @Description  Asigna el código PL-YYYYMMDD-NNN del día; el contador reinicia cada día.
// @Tags         packing-lists
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreatePackingListRequest  true  "Packing list"
// @Success      201   {object}  dto.PackingListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/packing-lists [post]
func (h *PackingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePackingListRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	pl, err := h.svc.Create(c.Context(), packing.CreateInput{
		CreatedBy:    GetUserID(c),
		TotalCartons: in.TotalCartons,
		TotalWeight:  in.TotalWeight,
		PDFFile:      in.PDFFile,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToPackingListResponse(pl))
}

// List godoc
// @Summary      Listar packing lists
// @Tags         packing-lists
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (default 20)"
// @Param        offset  query  int  false  "Offset"
// @Success      200     {array}  dto.PackingListResponse
// @Router       /api/packing-lists [get]
func (h *PackingHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	list, err := h.svc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToPackingLists(list))
}

// GetByID godoc
// @Summary      Detalle de packing list
// @Tags         packing-lists
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID"
// @Success      200  {object}  dto.PackingListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packing-lists/{id} [get]
func (h *PackingHandler) GetByID(c *fiber.Ctx) error {
	pl, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToPackingListResponse(pl))
}
