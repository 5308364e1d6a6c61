package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	dledger "github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/ledger"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
)

// RecordPaymentInput abono contra una factura. Date vacía toma la hora actual; Method vacío es cash.
type RecordPaymentInput struct {
	InvoiceID  string
	Amount     decimal.Decimal
	Method     entity.PaymentMethod
	Date       time.Time
	Reference  string
	Notes      string
	RecordedBy string
}

// PaymentResult pago registrado y la factura con sus totales ya recalculados.
type PaymentResult struct {
	Payment *entity.Payment
	Invoice *entity.Invoice
}

// RecordPayment guarda el pago y recalcula la factura en la misma transacción,
// con la fila de la factura bloqueada antes de leer sus pagos.
func (e *Engine) RecordPayment(ctx context.Context, in RecordPaymentInput) (*PaymentResult, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if in.Method == "" {
		in.Method = entity.PaymentMethodCash
	}
	if !in.Method.Valid() {
		return nil, domain.ErrInvalidMethod
	}

	var (
		res = &PaymentResult{}
		rec *entity.OutboxEvent
	)
	err := e.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		inv, err := repos.Invoices.GetForUpdate(ctx, in.InvoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrInvoiceNotFound
		}

		now := e.clock.Now()
		date := in.Date
		if date.IsZero() {
			date = now
		}
		p := &entity.Payment{
			ID:         uuid.New().String(),
			InvoiceID:  inv.ID,
			Amount:     dledger.Money(in.Amount),
			Date:       date,
			Method:     in.Method,
			Reference:  in.Reference,
			Notes:      in.Notes,
			RecordedBy: in.RecordedBy,
			CreatedAt:  now,
		}
		if err := repos.Payments.Create(ctx, p); err != nil {
			return err
		}
		rec, err = e.recompute(ctx, repos, inv)
		if err != nil {
			return err
		}
		res.Payment, res.Invoice = p, inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info().
		Str("invoice_id", res.Invoice.ID).
		Str("payment_id", res.Payment.ID).
		Str("amount", res.Payment.Amount.StringFixed(2)).
		Str("status", string(res.Invoice.PaymentStatus)).
		Msg("pago registrado")
	e.publish(ctx, rec)
	return res, nil
}

// DeletePayment elimina el pago y recalcula su factura resumiendo los pagos que quedan.
func (e *Engine) DeletePayment(ctx context.Context, paymentID string) (*entity.Invoice, error) {
	var (
		inv *entity.Invoice
		rec *entity.OutboxEvent
	)
	err := e.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		p, err := repos.Payments.GetByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrPaymentNotFound
		}
		inv, err = repos.Invoices.GetForUpdate(ctx, p.InvoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrInvoiceNotFound
		}
		// Con la factura bloqueada, un borrado concurrente del mismo pago ya habrá confirmado.
		deleted, err := repos.Payments.Delete(ctx, paymentID)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.ErrPaymentNotFound
		}
		rec, err = e.recompute(ctx, repos, inv)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.log.Info().
		Str("invoice_id", inv.ID).
		Str("payment_id", paymentID).
		Str("status", string(inv.PaymentStatus)).
		Msg("pago eliminado")
	e.publish(ctx, rec)
	return inv, nil
}
