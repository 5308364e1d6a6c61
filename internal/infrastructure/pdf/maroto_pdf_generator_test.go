package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
)

func TestGenerateInvoicePDF(t *testing.T) {
	g := NewMarotoPDFGenerator("Kaluuu Express")
	now := time.Date(2025, 12, 16, 9, 0, 0, 0, time.UTC)
	inv := &entity.Invoice{
		InvoiceNumber: "INV-0001", UserID: "customer-1", Description: "Electronics", Quantity: 1,
		WeightKg: decimal.RequireFromString("12.5"), ServicePricePerKg: decimal.NewFromInt(8), HandlingRatePerKg: decimal.NewFromInt(10),
		TotalAmount: decimal.NewFromInt(1000), PaidAmount: decimal.NewFromInt(400), CreditAmount: decimal.NewFromInt(600),
		PaymentStatus: entity.PaymentStatusPartiallyPaid, CreatedAt: now,
	}
	payments := []*entity.Payment{{Amount: decimal.NewFromInt(400), Method: entity.PaymentMethodCash, Date: now}}

	out, err := g.GenerateInvoicePDF(context.Background(), inv, payments)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	out, err = g.GenerateInvoicePDF(context.Background(), inv, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestAmount_SeparadorDeMiles(t *testing.T) {
	g := NewMarotoPDFGenerator("x")
	assert.Equal(t, "1,234,567.50", g.amount(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "0.00", g.amount(decimal.Zero))
}

func TestBalanceLabel(t *testing.T) {
	assert.Equal(t, "Balance due:", balanceLabel(&entity.Invoice{CreditAmount: decimal.NewFromInt(5)}))
	assert.Equal(t, "Credit in favour:", balanceLabel(&entity.Invoice{CreditAmount: decimal.NewFromInt(-5)}))
}
