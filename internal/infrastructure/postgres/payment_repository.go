package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, invoice_id, amount, payment_date, method, reference, notes, recorded_by, created_at`

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `INSERT INTO payments (` + paymentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.InvoiceID, p.Amount, p.Date, p.Method,
		nullIfEmpty(p.Reference), nullIfEmpty(p.Notes), nullIfEmpty(p.RecordedBy), p.CreatedAt,
	)
	if err != nil {
		return wrapErr("insert payment", err)
	}
	return nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	p, err := scanPayment(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get payment", err)
	}
	return p, nil
}

// Delete borra el pago; false si no existía (p.ej. otro llamador lo borró primero).
func (r *PaymentRepo) Delete(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return false, wrapErr("delete payment", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PaymentRepo) ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE invoice_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, wrapErr("list payments", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, wrapErr("scan payment", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	var reference, notes, recordedBy *string
	err := row.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.Date, &p.Method, &reference, &notes, &recordedBy, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Reference = derefStr(reference)
	p.Notes = derefStr(notes)
	p.RecordedBy = derefStr(recordedBy)
	return &p, nil
}
