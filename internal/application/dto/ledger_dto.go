package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
)

// CreateInvoiceRequest alta de factura por ids del catálogo de tarifas.
type CreateInvoiceRequest struct {
	UserID           string          `json:"user_id"`
	Description      string          `json:"description"`
	Packages         string          `json:"packages"`
	Quantity         int             `json:"quantity"`
	WeightKg         decimal.Decimal `json:"weight_kg" swaggertype:"string" example:"12.5"`
	ServiceTierID    string          `json:"service_tier_id"`
	WeightHandlingID string          `json:"weight_handling_id"`
	PayingBill       decimal.Decimal `json:"paying_bill" swaggertype:"string" example:"0"`
	PayingMethod     string          `json:"paying_method" example:"cash"`
}

// RecordPaymentRequest abono contra una factura. payment_date vacía toma la hora del servidor.
type RecordPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" swaggertype:"string" example:"400.00"`
	PaymentMethod string          `json:"payment_method" example:"mobile"`
	PaymentDate   *time.Time      `json:"payment_date,omitempty"`
	Reference     string          `json:"reference"`
	Notes         string          `json:"notes"`
}

// InvoiceResponse factura con importes como strings de dos decimales.
type InvoiceResponse struct {
	ID                string             `json:"id"`
	InvoiceNumber     string             `json:"invoice_number"`
	UserID            string             `json:"user_id"`
	Description       string             `json:"description"`
	Packages          string             `json:"packages"`
	Quantity          int                `json:"quantity"`
	WeightKg          string             `json:"weight_kg"`
	ServiceTierID     string             `json:"service_tier_id,omitempty"`
	WeightHandlingID  string             `json:"weight_handling_id,omitempty"`
	ServicePricePerKg string             `json:"service_price_per_kg"`
	HandlingRatePerKg string             `json:"handling_rate_per_kg"`
	TotalAmount       string             `json:"total_amount"`
	PayingBill        string             `json:"paying_bill"`
	PaidAmount        string             `json:"paid_amount"`
	CreditAmount      string             `json:"credit_amount"`
	Balance           string             `json:"balance"`
	PaymentStatus     string             `json:"payment_status"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	Payments          []*PaymentResponse `json:"payments,omitempty"`
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID            string    `json:"id"`
	InvoiceID     string    `json:"invoice_id"`
	Amount        string    `json:"amount"`
	PaymentDate   time.Time `json:"payment_date"`
	PaymentMethod string    `json:"payment_method"`
	Reference     string    `json:"reference,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	RecordedBy    string    `json:"recorded_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaymentResultResponse pago y factura recalculada.
type PaymentResultResponse struct {
	Payment *PaymentResponse `json:"payment"`
	Invoice *InvoiceResponse `json:"invoice"`
}

// InvoiceListResponse listado paginado.
type InvoiceListResponse struct {
	Items []*InvoiceResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// RecomputeAllResponse resultado del recálculo masivo.
type RecomputeAllResponse struct {
	Corrected int `json:"corrected"`
}

// ToInvoiceResponse mapea la entidad; payments nil omite el detalle.
func ToInvoiceResponse(inv *entity.Invoice, payments []*entity.Payment) *InvoiceResponse {
	out := &InvoiceResponse{
		ID:                inv.ID,
		InvoiceNumber:     inv.InvoiceNumber,
		UserID:            inv.UserID,
		Description:       inv.Description,
		Packages:          inv.Packages,
		Quantity:          inv.Quantity,
		WeightKg:          inv.WeightKg.StringFixed(2),
		ServiceTierID:     inv.ServiceTierID,
		WeightHandlingID:  inv.WeightHandlingID,
		ServicePricePerKg: inv.ServicePricePerKg.String(),
		HandlingRatePerKg: inv.HandlingRatePerKg.String(),
		TotalAmount:       inv.TotalAmount.StringFixed(2),
		PayingBill:        inv.PayingBill.StringFixed(2),
		PaidAmount:        inv.PaidAmount.StringFixed(2),
		CreditAmount:      inv.CreditAmount.StringFixed(2),
		Balance:           inv.Balance().StringFixed(2),
		PaymentStatus:     string(inv.PaymentStatus),
		CreatedAt:         inv.CreatedAt,
		UpdatedAt:         inv.UpdatedAt,
	}
	for _, p := range payments {
		out.Payments = append(out.Payments, ToPaymentResponse(p))
	}
	return out
}

// ToPaymentResponse mapea un pago.
func ToPaymentResponse(p *entity.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:            p.ID,
		InvoiceID:     p.InvoiceID,
		Amount:        p.Amount.StringFixed(2),
		PaymentDate:   p.Date,
		PaymentMethod: string(p.Method),
		Reference:     p.Reference,
		Notes:         p.Notes,
		RecordedBy:    p.RecordedBy,
		CreatedAt:     p.CreatedAt,
	}
}

// ToInvoiceList mapea un listado.
func ToInvoiceList(list []*entity.Invoice, page PageRequest) *InvoiceListResponse {
	items := make([]*InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, ToInvoiceResponse(inv, nil))
	}
	return &InvoiceListResponse{Items: items, Page: PageResponse{Limit: page.Limit, Offset: page.Offset}}
}
