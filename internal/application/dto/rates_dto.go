package dto

import (
	"github.com/shopspring/decimal"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
)

// CreateRateRequest alta de una tarifa (de servicio o de manejo).
type CreateRateRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Rate        decimal.Decimal `json:"rate" swaggertype:"string" example:"8.00"`
}

// ServiceTierResponse tarifa de servicio.
type ServiceTierResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	PricePerKgUSD string `json:"price_per_kg_usd"`
}

// WeightHandlingResponse tarifa de manejo.
type WeightHandlingResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	RateTshPerKg string `json:"rate_tsh_per_kg"`
}

// ShippingConfigResponse catálogo completo.
type ShippingConfigResponse struct {
	ServiceTiers    []*ServiceTierResponse    `json:"service_tiers"`
	WeightHandlings []*WeightHandlingResponse `json:"weight_handlings"`
}

// ToServiceTierResponse mapea la entidad.
func ToServiceTierResponse(t *entity.ServiceTier) *ServiceTierResponse {
	return &ServiceTierResponse{ID: t.ID, Name: t.Name, Description: t.Description, PricePerKgUSD: t.PricePerKgUSD.StringFixed(2)}
}

// ToWeightHandlingResponse mapea la entidad.
func ToWeightHandlingResponse(w *entity.WeightHandling) *WeightHandlingResponse {
	return &WeightHandlingResponse{ID: w.ID, Name: w.Name, Description: w.Description, RateTshPerKg: w.RateTshPerKg.StringFixed(2)}
}

// ToShippingConfig mapea el catálogo.
func ToShippingConfig(tiers []*entity.ServiceTier, handlings []*entity.WeightHandling) *ShippingConfigResponse {
	out := &ShippingConfigResponse{
		ServiceTiers:    make([]*ServiceTierResponse, 0, len(tiers)),
		WeightHandlings: make([]*WeightHandlingResponse, 0, len(handlings)),
	}
	for _, t := range tiers {
		out.ServiceTiers = append(out.ServiceTiers, ToServiceTierResponse(t))
	}
	for _, w := range handlings {
		out.WeightHandlings = append(out.WeightHandlings, ToWeightHandlingResponse(w))
	}
	return out
}
