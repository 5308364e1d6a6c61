package sequence_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/sequence"
)

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-0001", sequence.FormatInvoiceNumber(1))
	assert.Equal(t, "INV-0050", sequence.FormatInvoiceNumber(50))
	assert.Equal(t, "INV-9999", sequence.FormatInvoiceNumber(9999))
	assert.Equal(t, "INV-10000", sequence.FormatInvoiceNumber(10000), "pasado 9999 el formato se ensancha")
}

func TestFormatPackingListCode(t *testing.T) {
	day := time.Date(2025, 12, 16, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "PL-20251216-001", sequence.FormatPackingListCode(day, 1))
	assert.Equal(t, "PL-20251216-042", sequence.FormatPackingListCode(day, 42))
}

func TestPackingListScope_CambiaConElDia(t *testing.T) {
	d1 := time.Date(2025, 12, 16, 8, 0, 0, 0, time.UTC)
	d1b := time.Date(2025, 12, 16, 22, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 12, 17, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, sequence.PackingListScope(d1), sequence.PackingListScope(d1b))
	assert.NotEqual(t, sequence.PackingListScope(d1), sequence.PackingListScope(d2))
	assert.NotEqual(t, sequence.ScopeInvoice, sequence.PackingListScope(d1))
}

func TestFormatTrackingCode(t *testing.T) {
	assert.Equal(t, "TRK-000123", sequence.FormatTrackingCode(123))
}
