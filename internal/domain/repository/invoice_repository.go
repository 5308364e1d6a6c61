package repository

import (
	"context"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
)

// InvoiceFilter filtros del listado. UserID vacío lista todas (vista de staff).
type InvoiceFilter struct {
	UserID string
	Status entity.PaymentStatus
	Limit  int
	Offset int
}

// InvoiceRepository define el puerto de persistencia para Invoice.
// GetByID y GetForUpdate devuelven (nil, nil) cuando la factura no existe.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// GetForUpdate bloquea la fila de la factura hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	// UpdateTotals persiste solo paid_amount, credit_amount, payment_status y updated_at.
	UpdateTotals(ctx context.Context, invoice *entity.Invoice) error
	List(ctx context.Context, f InvoiceFilter) ([]*entity.Invoice, error)
	ListIDs(ctx context.Context) ([]string, error)
}
