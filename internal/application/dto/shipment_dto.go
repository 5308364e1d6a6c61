package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
)

// RegisterShipmentRequest alta de envío. tracking_code vacío se genera en el servidor.
type RegisterShipmentRequest struct {
	TrackingCode      string          `json:"tracking_code"`
	CustomerID        string          `json:"customer_id"`
	CustomerName      string          `json:"customer_name"`
	CustomerEmail     string          `json:"customer_email"`
	CustomerPhone     string          `json:"customer_phone"`
	Origin            string          `json:"origin" example:"Guangzhou"`
	Destination       string          `json:"destination" example:"Dar es Salaam"`
	Weight            decimal.Decimal `json:"weight" swaggertype:"string" example:"12.5"`
	Description       string          `json:"description"`
	EstimatedDelivery string          `json:"estimated_delivery" example:"2025-12-30"`
	AdminNotes        string          `json:"admin_notes"`
}

// StatusRequest cambio de estado.
type StatusRequest struct {
	Status string `json:"status" example:"intransit"`
}

// RouteStageRequest fija una etapa de ruta.
type RouteStageRequest struct {
	RouteStage string `json:"route_stage" example:"zanzibar"`
}

// UpdateShipmentRequest edición parcial: los campos ausentes no se tocan.
type UpdateShipmentRequest struct {
	Status            *string `json:"status,omitempty"`
	RouteStage        *string `json:"current_route_stage,omitempty"`
	EstimatedDelivery *string `json:"estimated_delivery,omitempty"`
	AdminNotes        *string `json:"admin_notes,omitempty"`
	Description       *string `json:"description,omitempty"`
}

// ShipmentResponse envío con el progreso derivado de la etapa.
type ShipmentResponse struct {
	ID                 string     `json:"id"`
	TrackingCode       string     `json:"tracking_code"`
	CustomerID         string     `json:"customer_id,omitempty"`
	CustomerName       string     `json:"customer_name"`
	CustomerEmail      string     `json:"customer_email,omitempty"`
	CustomerPhone      string     `json:"customer_phone,omitempty"`
	Origin             string     `json:"origin"`
	Destination        string     `json:"destination"`
	Weight             string     `json:"weight"`
	Description        string     `json:"description,omitempty"`
	Status             string     `json:"status"`
	StatusDisplay      string     `json:"status_display"`
	CurrentRouteStage  string     `json:"current_route_stage"`
	RouteStageDisplay  string     `json:"route_stage_display"`
	RouteProgress      float64    `json:"route_progress"`
	IsDelivered        bool       `json:"is_delivered"`
	RegisteredDate     time.Time  `json:"registered_date"`
	LastUpdated        time.Time  `json:"last_updated"`
	EstimatedDelivery  string     `json:"estimated_delivery,omitempty"`
	ActualDeliveryDate *time.Time `json:"actual_delivery_date,omitempty"`
	AdminNotes         string     `json:"admin_notes,omitempty"`
}

// PublicTrackingResponse vista pública por código de seguimiento (sin datos del cliente).
type PublicTrackingResponse struct {
	TrackingCode      string  `json:"tracking_code"`
	Origin            string  `json:"origin"`
	Destination       string  `json:"destination"`
	Status            string  `json:"status"`
	StatusDisplay     string  `json:"status_display"`
	CurrentRouteStage string  `json:"current_route_stage"`
	RouteStageDisplay string  `json:"route_stage_display"`
	RouteProgress     float64 `json:"route_progress"`
	IsDelivered       bool    `json:"is_delivered"`
	EstimatedDelivery string  `json:"estimated_delivery,omitempty"`
}

// ShipmentListResponse listado paginado.
type ShipmentListResponse struct {
	Items []*ShipmentResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// ParseDate interpreta YYYY-MM-DD; vacío devuelve nil.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// ToShipmentResponse mapea la entidad.
func ToShipmentResponse(s *entity.Shipment) *ShipmentResponse {
	return &ShipmentResponse{
		ID:                 s.ID,
		TrackingCode:       s.TrackingCode,
		CustomerID:         s.CustomerID,
		CustomerName:       s.CustomerName,
		CustomerEmail:      s.CustomerEmail,
		CustomerPhone:      s.CustomerPhone,
		Origin:             s.Origin,
		Destination:        s.Destination,
		Weight:             s.Weight.StringFixed(2),
		Description:        s.Description,
		Status:             string(s.Status),
		StatusDisplay:      s.Status.Display(),
		CurrentRouteStage:  string(s.CurrentRouteStage),
		RouteStageDisplay:  s.CurrentRouteStage.Display(),
		RouteProgress:      s.RouteProgress(),
		IsDelivered:        s.IsDelivered(),
		RegisteredDate:     s.RegisteredDate,
		LastUpdated:        s.LastUpdated,
		EstimatedDelivery:  formatDate(s.EstimatedDelivery),
		ActualDeliveryDate: s.ActualDeliveryDate,
		AdminNotes:         s.AdminNotes,
	}
}

// ToPublicTracking mapea la vista pública.
func ToPublicTracking(s *entity.Shipment) *PublicTrackingResponse {
	return &PublicTrackingResponse{
		TrackingCode:      s.TrackingCode,
		Origin:            s.Origin,
		Destination:       s.Destination,
		Status:            string(s.Status),
		StatusDisplay:     s.Status.Display(),
		CurrentRouteStage: string(s.CurrentRouteStage),
		RouteStageDisplay: s.CurrentRouteStage.Display(),
		RouteProgress:     s.RouteProgress(),
		IsDelivered:       s.IsDelivered(),
		EstimatedDelivery: formatDate(s.EstimatedDelivery),
	}
}

// ToShipmentList mapea un listado.
func ToShipmentList(list []*entity.Shipment, page PageRequest) *ShipmentListResponse {
	items := make([]*ShipmentResponse, 0, len(list))
	for _, s := range list {
		items = append(items, ToShipmentResponse(s))
	}
	return &ShipmentListResponse{Items: items, Page: PageResponse{Limit: page.Limit, Offset: page.Offset}}
}
