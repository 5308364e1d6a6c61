// Package pdf genera el estado de cuenta de una factura de carga.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa             │  N° Factura + Fecha          │
//	│  CLIENTE + estado de cobro                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CARGA: Descripción | Bultos | Cant | Peso | Tarifas         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PAGOS: Fecha | Método | Referencia | Monto                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total / Pagado / Saldo                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/ports"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ports.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	company string
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador. company es el nombre impreso en la cabecera.
func NewMarotoPDFGenerator(company string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company, printer: message.NewPrinter(language.English)}
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, invoice *entity.Invoice, payments []*entity.Payment) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+invoice.InvoiceNumber, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.customerRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("CARGO"))
	m.AddRows(cargoHeaderRow())
	m.AddRows(g.cargoRow(invoice))

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("PAYMENTS"))
	m.AddRows(paymentsHeaderRow())
	if len(payments) == 0 {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New("No payments recorded", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		)))
	}
	for _, p := range payments {
		m.AddRows(g.paymentRow(p))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(invoice))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(invoice *entity.Invoice) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("China - Ethiopia - Zanzibar - Dar es Salaam", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+invoice.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoPDFGenerator) customerRow(invoice *entity.Invoice) core.Row {
	return row.New(12).Add(
		col.New(8).Add(
			text.New("CUSTOMER", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(invoice.UserID, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("STATUS", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(statusLabel(invoice.PaymentStatus), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 7}),
		),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

func header(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func cargoHeaderRow() core.Row {
	return row.New(7).Add(
		header("Description", 4, align.Left),
		header("Packages", 2, align.Left),
		header("Qty", 1, align.Center),
		header("Weight (kg)", 2, align.Right),
		header("USD/kg", 1, align.Right),
		header("TSh/kg", 2, align.Right),
	)
}

func (g *MarotoPDFGenerator) cargoRow(invoice *entity.Invoice) core.Row {
	return row.New(7).Add(
		cell(nonEmpty(invoice.Description, "-"), 4, align.Left),
		cell(nonEmpty(invoice.Packages, "-"), 2, align.Left),
		cell(g.printer.Sprintf("%d", invoice.Quantity), 1, align.Center),
		cell(g.amount(invoice.WeightKg), 2, align.Right),
		cell(g.amount(invoice.ServicePricePerKg), 1, align.Right),
		cell(g.amount(invoice.HandlingRatePerKg), 2, align.Right),
	)
}

func paymentsHeaderRow() core.Row {
	return row.New(7).Add(
		header("Date", 3, align.Left),
		header("Method", 2, align.Left),
		header("Reference", 4, align.Left),
		header("Amount", 3, align.Right),
	)
}

func (g *MarotoPDFGenerator) paymentRow(p *entity.Payment) core.Row {
	return row.New(6).Add(
		cell(p.Date.Format("02/01/2006"), 3, align.Left),
		cell(string(p.Method), 2, align.Left),
		cell(nonEmpty(p.Reference, "-"), 4, align.Left),
		cell(g.amount(p.Amount), 3, align.Right),
	)
}

func (g *MarotoPDFGenerator) totalsRow(invoice *entity.Invoice) core.Row {
	label := func(s string, bold bool) core.Component {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		return text.New(s, props.Text{Style: style, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string, bold bool) core.Component {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		return text.New(s, props.Text{Style: style, Size: 9, Align: align.Right, Right: 1})
	}

	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Total:", false),
			label("Paid:", false),
			label(balanceLabel(invoice), true),
		),
		col.New(3).Add(
			value(g.amount(invoice.TotalAmount), false),
			value(g.amount(invoice.PaidAmount), false),
			value(g.amount(invoice.CreditAmount.Abs()), true),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// amount formatea con separador de miles y dos decimales: 1234.5 → "1,234.50".
func (g *MarotoPDFGenerator) amount(v decimal.Decimal) string {
	f, _ := v.Round(2).Float64()
	return g.printer.Sprintf("%.2f", f)
}

func balanceLabel(invoice *entity.Invoice) string {
	if invoice.CreditAmount.IsNegative() {
		return "Credit in favour:"
	}
	return "Balance due:"
}

func statusLabel(s entity.PaymentStatus) string {
	switch s {
	case entity.PaymentStatusPaid:
		return "PAID"
	case entity.PaymentStatusPartiallyPaid:
		return "PARTIALLY PAID"
	default:
		return "UNPAID"
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
