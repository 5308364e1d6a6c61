package repository

import (
	"context"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
)

// PaymentRepository define el puerto de persistencia para Payment.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	// Delete devuelve false si el pago ya no existía.
	Delete(ctx context.Context, id string) (bool, error)
	// ListByInvoice devuelve los pagos actuales de la factura ordenados por fecha de registro.
	ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.Payment, error)
}
