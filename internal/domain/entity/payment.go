package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod medio de pago aceptado.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodBank   PaymentMethod = "bank"
	PaymentMethodMobile PaymentMethod = "mobile"
)

// Valid indica si el método pertenece al catálogo.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBank, PaymentMethodMobile:
		return true
	}
	return false
}

// Payment abono parcial o total contra una factura. Solo referencia a su factura;
// la factura es dueña de la colección.
type Payment struct {
	ID         string
	InvoiceID  string
	Amount     decimal.Decimal
	Date       time.Time
	Method     PaymentMethod
	Reference  string
	Notes      string
	RecordedBy string
	CreatedAt  time.Time
}
