// Package ledger implementa el motor de facturación: creación de facturas numeradas,
// registro y borrado de pagos, y recálculo de los totales derivados.
package ledger

import (
	"context"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/ports"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	dledger "github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/ledger"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/pkg/logger"
)

// Engine caso de uso del libro de facturas.
// Toda mutación corre en una transacción que bloquea la fila de la factura antes de leer sus pagos,
// de modo que dos pagos concurrentes sobre la misma factura nunca recalculan desde una foto vieja.
type Engine struct {
	txRunner    ports.TxRunner
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	rateRepo    repository.RateRepository
	publisher   ports.EventPublisher
	clock       ports.Clock
	log         *logger.Logger
}

// NewEngine construye el motor. Los repositorios sueltos se usan solo para lecturas.
func NewEngine(
	txRunner ports.TxRunner,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	rateRepo repository.RateRepository,
	publisher ports.EventPublisher,
	clock ports.Clock,
	log *logger.Logger,
) *Engine {
	return &Engine{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		rateRepo:    rateRepo,
		publisher:   publisher,
		clock:       clock,
		log:         log.WithComponent("ledger"),
	}
}

// recompute resuma los pagos actuales de una factura ya bloqueada y persiste los totales si cambiaron.
// Devuelve el registro de outbox cuando cambia payment_status.
func (e *Engine) recompute(ctx context.Context, repos repository.TxRepos, inv *entity.Invoice) (*entity.OutboxEvent, error) {
	payments, err := repos.Payments.ListByInvoice(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	totals := dledger.Recompute(inv.TotalAmount, payments)
	if totals.Matches(inv) {
		return nil, nil
	}

	now := e.clock.Now()
	oldStatus := inv.PaymentStatus
	totals.Apply(inv)
	inv.UpdatedAt = now
	if err := repos.Invoices.UpdateTotals(ctx, inv); err != nil {
		return nil, err
	}
	if oldStatus == inv.PaymentStatus {
		return nil, nil
	}

	rec, err := entity.NewOutboxEvent(entity.InvoiceStatusChanged{
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		UserID:        inv.UserID,
		OldStatus:     oldStatus,
		NewStatus:     inv.PaymentStatus,
		OccurredAt:    now,
	}, now)
	if err != nil {
		return nil, err
	}
	if err := repos.Outbox.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// publish entrega los eventos ya confirmados.
func (e *Engine) publish(ctx context.Context, recs ...*entity.OutboxEvent) {
	var out []*entity.OutboxEvent
	for _, r := range recs {
		if r != nil {
			out = append(out, r)
		}
	}
	if len(out) > 0 {
		e.publisher.Publish(ctx, out)
	}
}

// RecomputeInvoice reconstruye los totales de la factura a partir de sus pagos. Es idempotente:
// una segunda llamada sin mutaciones intermedias no escribe nada.
func (e *Engine) RecomputeInvoice(ctx context.Context, invoiceID string) (*entity.Invoice, error) {
	var (
		inv *entity.Invoice
		rec *entity.OutboxEvent
	)
	err := e.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		var err error
		inv, err = repos.Invoices.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrInvoiceNotFound
		}
		rec, err = e.recompute(ctx, repos, inv)
		return err
	})
	if err != nil {
		return nil, err
	}
	if rec != nil {
		e.log.Warn().Str("invoice_id", inv.ID).Str("status", string(inv.PaymentStatus)).Msg("totales de factura corregidos por recálculo")
	}
	e.publish(ctx, rec)
	return inv, nil
}

// RecomputeAll recalcula todas las facturas y devuelve cuántas se corrigieron.
func (e *Engine) RecomputeAll(ctx context.Context) (int, error) {
	ids, err := e.invoiceRepo.ListIDs(ctx)
	if err != nil {
		return 0, err
	}
	fixed := 0
	for _, id := range ids {
		before, err := e.invoiceRepo.GetByID(ctx, id)
		if err != nil {
			return fixed, err
		}
		after, err := e.RecomputeInvoice(ctx, id)
		if err != nil {
			return fixed, err
		}
		if before != nil && !dledger.TotalsOf(after).Matches(before) {
			fixed++
		}
	}
	return fixed, nil
}

// GetInvoice devuelve la factura con sus pagos, verificando que el llamador pueda verla.
func (e *Engine) GetInvoice(ctx context.Context, caller ports.Caller, id string) (*entity.Invoice, []*entity.Payment, error) {
	inv, err := e.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if inv == nil {
		return nil, nil, domain.ErrInvoiceNotFound
	}
	if !caller.CanRead(inv.UserID) {
		return nil, nil, domain.ErrForbidden
	}
	payments, err := e.paymentRepo.ListByInvoice(ctx, inv.ID)
	if err != nil {
		return nil, nil, err
	}
	return inv, payments, nil
}

// ListInvoices staff ve todas las facturas; un cliente solo las suyas.
func (e *Engine) ListInvoices(ctx context.Context, caller ports.Caller, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	if !caller.Staff {
		f.UserID = caller.UserID
	}
	return e.invoiceRepo.List(ctx, f)
}
