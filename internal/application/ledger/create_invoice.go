package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	dledger "github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/ledger"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/sequence"
)

// CreateInvoiceInput datos para crear una factura a partir de tarifas ya resueltas.
// ServiceTier y Handling son la foto de las tarifas: su precio queda congelado en la factura.
type CreateInvoiceInput struct {
	UserID       string
	Description  string
	Packages     string
	Quantity     int
	WeightKg     decimal.Decimal
	ServiceTier  *entity.ServiceTier
	Handling     *entity.WeightHandling
	PayingBill   decimal.Decimal
	PayingMethod entity.PaymentMethod // método del pago inicial; cash por defecto
	RecordedBy   string
}

func (in *CreateInvoiceInput) validate() error {
	if in.UserID == "" {
		return fmt.Errorf("cliente requerido: %w", domain.ErrInvalidInput)
	}
	if in.ServiceTier == nil || in.Handling == nil ||
		!in.ServiceTier.PricePerKgUSD.IsPositive() || !in.Handling.RateTshPerKg.IsPositive() {
		return domain.ErrInvalidTier
	}
	if !in.WeightKg.IsPositive() {
		return domain.ErrInvalidWeight
	}
	if in.PayingBill.IsNegative() {
		return domain.ErrInvalidAmount
	}
	if in.Quantity < 0 {
		return fmt.Errorf("cantidad negativa: %w", domain.ErrInvalidInput)
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.PayingMethod == "" {
		in.PayingMethod = entity.PaymentMethodCash
	}
	if !in.PayingMethod.Valid() {
		return domain.ErrInvalidMethod
	}
	return nil
}

// CreateInvoice asigna el número INV-%04d, calcula el total con las tarifas congeladas y persiste
// la factura en una sola transacción. Un paying_bill positivo queda como pago inicial de la factura,
// así los totales derivados salen siempre de resumir pagos.
func (e *Engine) CreateInvoice(ctx context.Context, in CreateInvoiceInput) (*entity.Invoice, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var inv *entity.Invoice
	err := e.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		n, err := repos.Sequences.Next(ctx, sequence.ScopeInvoice)
		if err != nil {
			return err
		}
		now := e.clock.Now()
		total := dledger.InvoiceTotal(in.WeightKg, in.ServiceTier.PricePerKgUSD, in.Handling.RateTshPerKg)
		inv = &entity.Invoice{
			ID:                uuid.New().String(),
			InvoiceNumber:     sequence.FormatInvoiceNumber(n),
			UserID:            in.UserID,
			Description:       in.Description,
			Packages:          in.Packages,
			Quantity:          in.Quantity,
			WeightKg:          in.WeightKg,
			ServiceTierID:     in.ServiceTier.ID,
			WeightHandlingID:  in.Handling.ID,
			ServicePricePerKg: in.ServiceTier.PricePerKgUSD,
			HandlingRatePerKg: in.Handling.RateTshPerKg,
			TotalAmount:       total,
			PayingBill:        dledger.Money(in.PayingBill),
			PaidAmount:        decimal.Zero,
			CreditAmount:      total,
			PaymentStatus:     entity.PaymentStatusUnpaid,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := repos.Invoices.Create(ctx, inv); err != nil {
			return err
		}
		if !inv.PayingBill.IsPositive() {
			return nil
		}

		opening := &entity.Payment{
			ID:         uuid.New().String(),
			InvoiceID:  inv.ID,
			Amount:     inv.PayingBill,
			Date:       now,
			Method:     in.PayingMethod,
			Notes:      "paying bill",
			RecordedBy: in.RecordedBy,
			CreatedAt:  now,
		}
		if err := repos.Payments.Create(ctx, opening); err != nil {
			return err
		}
		// La factura recién creada no tiene un estado previo observable: no se emite evento.
		payments, err := repos.Payments.ListByInvoice(ctx, inv.ID)
		if err != nil {
			return err
		}
		dledger.Recompute(inv.TotalAmount, payments).Apply(inv)
		return repos.Invoices.UpdateTotals(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	e.log.Info().
		Str("invoice_id", inv.ID).
		Str("invoice_number", inv.InvoiceNumber).
		Str("total", inv.TotalAmount.StringFixed(2)).
		Str("status", string(inv.PaymentStatus)).
		Msg("factura creada")
	return inv, nil
}

// CreateFromRatesInput creación de factura referenciando tarifas del catálogo por id.
type CreateFromRatesInput struct {
	UserID           string
	Description      string
	Packages         string
	Quantity         int
	WeightKg         decimal.Decimal
	ServiceTierID    string
	WeightHandlingID string
	PayingBill       decimal.Decimal
	PayingMethod     entity.PaymentMethod
	RecordedBy       string
}

// CreateInvoiceFromRates resuelve las tarifas del catálogo y crea la factura. Un id inexistente es ErrInvalidTier.
func (e *Engine) CreateInvoiceFromRates(ctx context.Context, in CreateFromRatesInput) (*entity.Invoice, error) {
	if in.ServiceTierID == "" || in.WeightHandlingID == "" {
		return nil, domain.ErrInvalidTier
	}
	tier, err := e.rateRepo.GetServiceTier(ctx, in.ServiceTierID)
	if err != nil {
		return nil, err
	}
	handling, err := e.rateRepo.GetWeightHandling(ctx, in.WeightHandlingID)
	if err != nil {
		return nil, err
	}
	return e.CreateInvoice(ctx, CreateInvoiceInput{
		UserID:       in.UserID,
		Description:  in.Description,
		Packages:     in.Packages,
		Quantity:     in.Quantity,
		WeightKg:     in.WeightKg,
		ServiceTier:  tier,
		Handling:     handling,
		PayingBill:   in.PayingBill,
		PayingMethod: in.PayingMethod,
		RecordedBy:   in.RecordedBy,
	})
}
