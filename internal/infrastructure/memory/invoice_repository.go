package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo facturas en memoria.
type InvoiceRepo struct{ b binding }

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	defer r.b.lock()()
	st := r.b.state()
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	for _, existing := range st.invoices {
		if existing.ID == inv.ID || existing.InvoiceNumber == inv.InvoiceNumber {
			return fmt.Errorf("invoice number %s: %w", inv.InvoiceNumber, domain.ErrDuplicate)
		}
	}
	st.invoices = append(st.invoices, *inv)
	return nil
}

func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	defer r.b.lock()()
	for _, inv := range r.b.state().invoices {
		if inv.ID == id {
			out := inv
			return &out, nil
		}
	}
	return nil, nil
}

// GetForUpdate equivale a GetByID: el mutex del almacén ya serializa la transacción.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *InvoiceRepo) UpdateTotals(_ context.Context, inv *entity.Invoice) error {
	defer r.b.lock()()
	st := r.b.state()
	for i := range st.invoices {
		if st.invoices[i].ID == inv.ID {
			st.invoices[i].PaidAmount = inv.PaidAmount
			st.invoices[i].CreditAmount = inv.CreditAmount
			st.invoices[i].PaymentStatus = inv.PaymentStatus
			st.invoices[i].UpdatedAt = inv.UpdatedAt
			return nil
		}
	}
	return domain.ErrInvoiceNotFound
}

// List más recientes primero.
func (r *InvoiceRepo) List(_ context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	defer r.b.lock()()
	st := r.b.state()
	var out []*entity.Invoice
	for i := len(st.invoices) - 1; i >= 0; i-- {
		inv := st.invoices[i]
		if f.UserID != "" && inv.UserID != f.UserID {
			continue
		}
		if f.Status != "" && inv.PaymentStatus != f.Status {
			continue
		}
		out = append(out, &inv)
	}
	return page(out, f.Limit, f.Offset), nil
}

func (r *InvoiceRepo) ListIDs(_ context.Context) ([]string, error) {
	defer r.b.lock()()
	st := r.b.state()
	ids := make([]string, 0, len(st.invoices))
	for _, inv := range st.invoices {
		ids = append(ids, inv.ID)
	}
	return ids, nil
}
