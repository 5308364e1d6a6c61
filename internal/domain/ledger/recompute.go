// Package ledger contiene la lógica pura de conciliación de facturas (servicio de dominio):
// total a partir de las tarifas congeladas y totales derivados del conjunto de pagos.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
)

// MoneyPlaces decimales con los que se almacenan los montos (NUMERIC(12,2)).
const MoneyPlaces = 2

// Money normaliza un monto a la escala de almacenamiento.
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// InvoiceTotal total = peso_kg * precio_servicio_kg * tarifa_manejo_kg.
func InvoiceTotal(weightKg, servicePricePerKg, handlingRatePerKg decimal.Decimal) decimal.Decimal {
	return Money(weightKg.Mul(servicePricePerKg).Mul(handlingRatePerKg))
}

// StatusFor estado de cobro según lo pagado frente al total.
// paid >= total (con algo pagado) -> paid; 0 < paid < total -> partially_paid; paid == 0 -> unpaid.
func StatusFor(paid, total decimal.Decimal) entity.PaymentStatus {
	switch {
	case !paid.IsPositive():
		return entity.PaymentStatusUnpaid
	case paid.GreaterThanOrEqual(total):
		return entity.PaymentStatusPaid
	default:
		return entity.PaymentStatusPartiallyPaid
	}
}

// Totals campos derivados de una factura.
type Totals struct {
	PaidAmount    decimal.Decimal
	CreditAmount  decimal.Decimal
	PaymentStatus entity.PaymentStatus
}

// Recompute deriva los totales resumiendo los pagos actuales. Es pura: el mismo total y
// el mismo conjunto de pagos producen siempre el mismo resultado.
func Recompute(total decimal.Decimal, payments []*entity.Payment) Totals {
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}
	paid = Money(paid)
	return Totals{
		PaidAmount:    paid,
		CreditAmount:  Money(total.Sub(paid)),
		PaymentStatus: StatusFor(paid, total),
	}
}

// Matches indica si la factura ya refleja estos totales.
func (t Totals) Matches(inv *entity.Invoice) bool {
	return inv.PaidAmount.Equal(t.PaidAmount) &&
		inv.CreditAmount.Equal(t.CreditAmount) &&
		inv.PaymentStatus == t.PaymentStatus
}

// Apply copia los totales a la factura.
func (t Totals) Apply(inv *entity.Invoice) {
	inv.PaidAmount = t.PaidAmount
	inv.CreditAmount = t.CreditAmount
	inv.PaymentStatus = t.PaymentStatus
}

// TotalsOf totales tal como están almacenados en la factura.
func TotalsOf(inv *entity.Invoice) Totals {
	return Totals{
		PaidAmount:    inv.PaidAmount,
		CreditAmount:  inv.CreditAmount,
		PaymentStatus: inv.PaymentStatus,
	}
}
