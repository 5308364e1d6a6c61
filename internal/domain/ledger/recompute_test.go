package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/ledger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func payments(amounts ...string) []*entity.Payment {
	out := make([]*entity.Payment, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, &entity.Payment{Amount: d(a)})
	}
	return out
}

func TestInvoiceTotal_ProductoDeTarifas(t *testing.T) {
	total := ledger.InvoiceTotal(d("12.5"), d("8"), d("10"))
	assert.True(t, total.Equal(d("1000")), "total: %s", total)
	assert.Equal(t, "1000.00", total.StringFixed(2))
}

func TestInvoiceTotal_RedondeaADosDecimales(t *testing.T) {
	total := ledger.InvoiceTotal(d("1.333"), d("1"), d("1"))
	assert.True(t, total.Equal(d("1.33")))
}

// Frontera de estado: igual al total es pagada, cero es sin pagar, intermedio es parcial.
func TestStatusFor_Fronteras(t *testing.T) {
	total := d("1000.00")
	assert.Equal(t, entity.PaymentStatusPaid, ledger.StatusFor(d("1000.00"), total))
	assert.Equal(t, entity.PaymentStatusPaid, ledger.StatusFor(d("1000.01"), total))
	assert.Equal(t, entity.PaymentStatusUnpaid, ledger.StatusFor(decimal.Zero, total))
	assert.Equal(t, entity.PaymentStatusPartiallyPaid, ledger.StatusFor(d("0.01"), total))
	assert.Equal(t, entity.PaymentStatusPartiallyPaid, ledger.StatusFor(d("999.99"), total))
}

func TestRecompute_SumaPagosYCredito(t *testing.T) {
	tot := ledger.Recompute(d("1000.00"), payments("400.00", "250.50"))
	assert.True(t, tot.PaidAmount.Equal(d("650.50")))
	assert.True(t, tot.CreditAmount.Equal(d("349.50")))
	assert.Equal(t, entity.PaymentStatusPartiallyPaid, tot.PaymentStatus)
}

func TestRecompute_SobrepagoDejaCreditoNegativo(t *testing.T) {
	tot := ledger.Recompute(d("1000.00"), payments("1200.00"))
	assert.True(t, tot.CreditAmount.Equal(d("-200.00")))
	assert.Equal(t, entity.PaymentStatusPaid, tot.PaymentStatus)
}

func TestRecompute_SinPagos(t *testing.T) {
	tot := ledger.Recompute(d("1000.00"), nil)
	assert.True(t, tot.PaidAmount.IsZero())
	assert.True(t, tot.CreditAmount.Equal(d("1000.00")))
	assert.Equal(t, entity.PaymentStatusUnpaid, tot.PaymentStatus)
}

// Recompute es idempotente: aplicar dos veces produce exactamente los mismos campos.
func TestRecompute_Idempotente(t *testing.T) {
	inv := &entity.Invoice{TotalAmount: d("1000.00")}
	ps := payments("400.00", "600.00")

	first := ledger.Recompute(inv.TotalAmount, ps)
	first.Apply(inv)
	snapshot := *inv

	second := ledger.Recompute(inv.TotalAmount, ps)
	assert.True(t, second.Matches(inv))
	second.Apply(inv)
	assert.Equal(t, snapshot, *inv)
	assert.Equal(t, first.PaidAmount.String(), second.PaidAmount.String())
}

func TestTotals_MatchesDetectaDiferencias(t *testing.T) {
	inv := &entity.Invoice{
		PaidAmount: d("400.00"), CreditAmount: d("600.00"),
		PaymentStatus: entity.PaymentStatusPartiallyPaid,
	}
	assert.True(t, ledger.Recompute(d("1000.00"), payments("400")).Matches(inv))
	assert.False(t, ledger.Recompute(d("1000.00"), payments("400", "1")).Matches(inv))
}
