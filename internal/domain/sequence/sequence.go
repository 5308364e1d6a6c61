// Package sequence define los ámbitos de numeración y el formato de los identificadores legibles.
// La asignación atómica vive en el puerto repository.SequenceRepository.
package sequence

import (
	"fmt"
	"time"
)

// Scope espacio de nombres dentro del cual un contador garantiza unicidad y orden.
type Scope string

const (
	// ScopeInvoice contador global de facturas.
	ScopeInvoice Scope = "invoice"
	// ScopeShipment contador global de códigos de seguimiento generados.
	ScopeShipment Scope = "shipment"

	packingListPrefix = "packing_list:"
	dayLayout         = "20060102"
)

// PackingListScope ámbito global+día calendario: el contador reinicia cada día.
func PackingListScope(day time.Time) Scope {
	return Scope(packingListPrefix + day.Format(dayLayout))
}

// FormatInvoiceNumber INV-%04d; pasado 9999 el formato simplemente se ensancha.
func FormatInvoiceNumber(n int64) string {
	return fmt.Sprintf("INV-%04d", n)
}

// FormatPackingListCode PL-YYYYMMDD-%03d.
func FormatPackingListCode(day time.Time, n int64) string {
	return fmt.Sprintf("PL-%s-%03d", day.Format(dayLayout), n)
}

// FormatTrackingCode TRK-%06d para envíos registrados sin código.
func FormatTrackingCode(n int64) string {
	return fmt.Sprintf("TRK-%06d", n)
}
