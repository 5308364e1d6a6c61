package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/dto"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/rates"
)

// RatesHandler expone el catálogo de tarifas.
type RatesHandler struct {
	svc *rates.Service
}

// NewRatesHandler construye el handler.
func NewRatesHandler(svc *rates.Service) *RatesHandler {
	return &RatesHandler{svc: svc}
}

// ShippingConfig godoc
// @Summary      Catálogo de tarifas
// @Description  Tarifas de servicio (USD/kg) y de manejo (TSh/kg) para cotizar.
// @Tags         rates
// @Produce      json
// @Success      200  {object}  dto.ShippingConfigResponse
// @Router       /api/shipping-config [get]
func (h *RatesHandler) ShippingConfig(c *fiber.Ctx) error {
	cfg, err := h.svc.GetShippingConfig(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToShippingConfig(cfg.ServiceTiers, cfg.WeightHandlings))
}

// CreateServiceTier godoc
// @Summary      Crear tarifa de servicio
// @Tags         rates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateRateRequest  true  "Tarifa"
// @Success      201   {object}  dto.ServiceTierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/service-tiers [post]
func (h *RatesHandler) CreateServiceTier(c *fiber.Ctx) error {
	var in dto.CreateRateRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	t, err := h.svc.CreateServiceTier(c.Context(), in.Name, in.Description, in.Rate)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToServiceTierResponse(t))
}

// CreateWeightHandling godoc
// @Summary      Crear tarifa de manejo
// @Tags         rates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateRateRequest  true  "Tarifa"
// @Success      201   {object}  dto.WeightHandlingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/weight-handlings [post]
func (h *RatesHandler) CreateWeightHandling(c *fiber.Ctx) error {
	var in dto.CreateRateRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	w, err := h.svc.CreateWeightHandling(c.Context(), in.Name, in.Description, in.Rate)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToWeightHandlingResponse(w))
}
