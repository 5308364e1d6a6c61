package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
	id, invoice_number, user_id, description, packages, quantity, weight_kg,
	service_tier_id, weight_handling_id, service_price_per_kg, handling_rate_per_kg,
	total_amount, paying_bill, paid_amount, credit_amount, payment_status,
	created_at, updated_at`

// Create persiste la factura con su número ya asignado.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.InvoiceNumber, invoice.UserID, invoice.Description, invoice.Packages,
		invoice.Quantity, invoice.WeightKg,
		nullIfEmpty(invoice.ServiceTierID), nullIfEmpty(invoice.WeightHandlingID),
		invoice.ServicePricePerKg, invoice.HandlingRatePerKg,
		invoice.TotalAmount, invoice.PayingBill, invoice.PaidAmount, invoice.CreditAmount, invoice.PaymentStatus,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number already exists: %w: %w", domain.ErrDuplicate, err)
		}
		return wrapErr("insert invoice", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get invoice", err)
	}
	return inv, nil
}

// GetForUpdate obtiene la factura con bloqueo de fila (SELECT FOR UPDATE).
// Los pagos concurrentes sobre la misma factura esperan aquí hasta el commit.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get invoice for update", err)
	}
	return inv, nil
}

// UpdateTotals persiste solo los campos derivados de los pagos.
func (r *InvoiceRepo) UpdateTotals(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET paid_amount    = $2,
		    credit_amount  = $3,
		    payment_status = $4,
		    updated_at     = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.PaidAmount, invoice.CreditAmount, invoice.PaymentStatus, invoice.UpdatedAt,
	)
	if err != nil {
		return wrapErr("update invoice totals", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

// List lista facturas, más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE ($1 = '' OR user_id = $1)
		  AND ($2 = '' OR payment_status = $2)
		ORDER BY created_at DESC, length(invoice_number) DESC, invoice_number DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, f.UserID, string(f.Status), limitOrAll(f.Limit), f.Offset)
	if err != nil {
		return nil, wrapErr("list invoices", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, wrapErr("scan invoice", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// ListIDs devuelve los IDs de todas las facturas (para el recálculo masivo).
func (r *InvoiceRepo) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM invoices ORDER BY length(invoice_number), invoice_number`)
	if err != nil {
		return nil, wrapErr("list invoice ids", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, wrapErr("scan invoice id", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var tierID, handlingID *string
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.UserID, &inv.Description, &inv.Packages,
		&inv.Quantity, &inv.WeightKg, &tierID, &handlingID,
		&inv.ServicePricePerKg, &inv.HandlingRatePerKg,
		&inv.TotalAmount, &inv.PayingBill, &inv.PaidAmount, &inv.CreditAmount, &inv.PaymentStatus,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.ServiceTierID = derefStr(tierID)
	inv.WeightHandlingID = derefStr(handlingID)
	return &inv, nil
}
