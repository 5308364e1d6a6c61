package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus estado de cobro de una factura; función pura de paid_amount vs total_amount.
type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "unpaid"
	PaymentStatusPartiallyPaid PaymentStatus = "partially_paid"
	PaymentStatusPaid          PaymentStatus = "paid"
)

// Invoice representa la factura de un cliente por un envío de carga.
//
// InvoiceNumber (INV-%04d) se asigna una sola vez al crear y no cambia.
// ServicePricePerKg y HandlingRatePerKg son la foto de las tarifas al momento de
// crear: TotalAmount no se recalcula si la tarifa referenciada cambia después.
// PaidAmount, CreditAmount y PaymentStatus se derivan siempre del conjunto actual de pagos.
type Invoice struct {
	ID               string
	InvoiceNumber    string
	UserID           string // cliente dueño de la factura
	Description      string
	Packages         string
	Quantity         int
	WeightKg         decimal.Decimal
	ServiceTierID    string // referencia informativa; puede quedar vacía si la tarifa se borra
	WeightHandlingID string

	ServicePricePerKg decimal.Decimal
	HandlingRatePerKg decimal.Decimal

	TotalAmount   decimal.Decimal
	PayingBill    decimal.Decimal // monto pagado al crear (queda registrado como pago inicial)
	PaidAmount    decimal.Decimal
	CreditAmount  decimal.Decimal // TotalAmount - PaidAmount; negativo = saldo a favor del cliente
	PaymentStatus PaymentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Balance devuelve el saldo pendiente sin reportar nunca un valor negativo como deuda.
func (i *Invoice) Balance() decimal.Decimal {
	if i.CreditAmount.IsNegative() {
		return decimal.Zero
	}
	return i.CreditAmount
}
