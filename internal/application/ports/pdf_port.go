package ports

import (
	"context"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
)

// InvoicePDFGenerator genera el estado de cuenta de una factura con sus pagos actuales.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, payments []*entity.Payment) ([]byte, error)
}
