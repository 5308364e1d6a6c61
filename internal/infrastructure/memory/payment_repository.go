package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo pagos en memoria, en orden de registro.
type PaymentRepo struct{ b binding }

func (r *PaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	defer r.b.lock()()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	st := r.b.state()
	st.payments = append(st.payments, *p)
	return nil
}

func (r *PaymentRepo) GetByID(_ context.Context, id string) (*entity.Payment, error) {
	defer r.b.lock()()
	for _, p := range r.b.state().payments {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, nil
}

func (r *PaymentRepo) Delete(_ context.Context, id string) (bool, error) {
	defer r.b.lock()()
	st := r.b.state()
	i := slices.IndexFunc(st.payments, func(p entity.Payment) bool { return p.ID == id })
	if i < 0 {
		return false, nil
	}
	st.payments = slices.Delete(st.payments, i, i+1)
	return true, nil
}

func (r *PaymentRepo) ListByInvoice(_ context.Context, invoiceID string) ([]*entity.Payment, error) {
	defer r.b.lock()()
	var out []*entity.Payment
	for _, p := range r.b.state().payments {
		if p.InvoiceID == invoiceID {
			out = append(out, &p)
		}
	}
	return out, nil
}
