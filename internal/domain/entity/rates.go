package entity

import "github.com/shopspring/decimal"

// ServiceTier tarifa de servicio por kg (USD), fijada por el administrador.
type ServiceTier struct {
	ID            string
	Name          string
	Description   string
	PricePerKgUSD decimal.Decimal
}

// WeightHandling tarifa de manejo por kg (TSh), fijada por el administrador.
type WeightHandling struct {
	ID           string
	Name         string
	Description  string
	RateTshPerKg decimal.Decimal
}
