package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentStatus estado del envío.
type ShipmentStatus string

const (
	ShipmentStatusPending   ShipmentStatus = "pending"
	ShipmentStatusInTransit ShipmentStatus = "intransit"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
)

// Valid indica si el estado pertenece al catálogo.
func (s ShipmentStatus) Valid() bool {
	switch s {
	case ShipmentStatusPending, ShipmentStatusInTransit, ShipmentStatusDelivered:
		return true
	}
	return false
}

// Display etiqueta legible del estado.
func (s ShipmentStatus) Display() string {
	switch s {
	case ShipmentStatusPending:
		return "Pending"
	case ShipmentStatusInTransit:
		return "In Transit"
	case ShipmentStatusDelivered:
		return "Delivered"
	}
	return string(s)
}

// RouteStage punto de paso de la ruta física.
type RouteStage string

const (
	RouteStageChina       RouteStage = "china"
	RouteStageEthiopia    RouteStage = "ethiopia"
	RouteStageZanzibar    RouteStage = "zanzibar"
	RouteStageDarEsSalaam RouteStage = "dar_es_salaam"
)

// RouteStages orden fijo de la ruta.
var RouteStages = []RouteStage{
	RouteStageChina,
	RouteStageEthiopia,
	RouteStageZanzibar,
	RouteStageDarEsSalaam,
}

// Index posición (base 0) de la etapa en la ruta; -1 si no existe.
func (r RouteStage) Index() int {
	for i, s := range RouteStages {
		if s == r {
			return i
		}
	}
	return -1
}

// Valid indica si la etapa pertenece a la ruta.
func (r RouteStage) Valid() bool { return r.Index() >= 0 }

// Display etiqueta legible de la etapa.
func (r RouteStage) Display() string {
	switch r {
	case RouteStageChina:
		return "China"
	case RouteStageEthiopia:
		return "Ethiopia"
	case RouteStageZanzibar:
		return "Zanzibar"
	case RouteStageDarEsSalaam:
		return "Dar es Salaam"
	}
	return string(r)
}

// Progress porcentaje de avance: (índice base 1 / número de etapas) * 100. 0 si la etapa no existe.
func (r RouteStage) Progress() float64 {
	i := r.Index()
	if i < 0 {
		return 0
	}
	return float64(i+1) / float64(len(RouteStages)) * 100
}

// Shipment envío físico con seguimiento de estado y etapa de ruta.
// RouteProgress no se almacena: se deriva de CurrentRouteStage en cada lectura.
type Shipment struct {
	ID                 string
	TrackingCode       string
	CustomerID         string // opcional
	CustomerName       string
	CustomerEmail      string
	CustomerPhone      string
	Origin             string
	Destination        string
	Weight             decimal.Decimal
	Description        string
	Status             ShipmentStatus
	CurrentRouteStage  RouteStage
	RegisteredDate     time.Time
	LastUpdated        time.Time
	EstimatedDelivery  *time.Time
	ActualDeliveryDate *time.Time
	AdminNotes         string
}

// RouteProgress porcentaje derivado de la etapa actual.
func (s *Shipment) RouteProgress() float64 { return s.CurrentRouteStage.Progress() }

// IsDelivered indica si el envío llegó a su estado terminal.
func (s *Shipment) IsDelivered() bool { return s.Status == ShipmentStatusDelivered }
