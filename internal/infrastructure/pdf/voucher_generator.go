// Package pdf renders the printable payment voucher for a paid spending
// request.
//
// A4 layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Project name          │  Voucher no. + payment date │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PAYEE: supplier / professional + request description        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Kind | Description | Amount (KES)                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PAYMENT: method / reference / approved by + notes           │
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

	"github.com/Victorkib/kisheka-construction-sub011/internal/application/approval"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 30, Green: 80, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoVoucherGenerator implements approval.VoucherPDFGenerator using
// Maroto v2.
type MarotoVoucherGenerator struct{}

// NewMarotoVoucherGenerator builds the generator.
func NewMarotoVoucherGenerator() *MarotoVoucherGenerator { return &MarotoVoucherGenerator{} }

var _ approval.VoucherPDFGenerator = (*MarotoVoucherGenerator)(nil)

// GenerateVoucherPDF renders the voucher and returns its bytes.
func (g *MarotoVoucherGenerator) GenerateVoucherPDF(
	_ context.Context,
	request *entity.SpendingRequest,
	project *entity.Project,
	expense *entity.ExpenseRecord,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Payment Voucher", true).
		WithAuthor(project.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(request, project))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(payeeRow(request))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(detailRow(request))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(request))
	m.AddRows(line.NewRow(3))
	for _, r := range paymentRows(request, expense) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate voucher: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: project name (left), voucher number and payment date (right).
func headerRow(request *entity.SpendingRequest, project *entity.Project) core.Row {
	date := "—"
	if request.Payment.Date != nil {
		date = request.Payment.Date.Format("02/01/2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(project.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Construction project payment voucher", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PAYMENT VOUCHER", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(request.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Paid: "+date, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// payeeRow: supplier or professional being paid.
func payeeRow(request *entity.SpendingRequest) core.Row {
	payee := request.SupplierName
	if payee == "" {
		payee = "—"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PAYEE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(payee, props.Text{Size: 9, Top: 7}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	return row.New(7).Add(
		col.New(3).Add(text.New("Kind", header)),
		col.New(6).Add(text.New("Description", header)),
		col.New(3).Add(text.New("Amount (KES)", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Right,
		})),
	)
}

func detailRow(request *entity.SpendingRequest) core.Row {
	kind := "Material request"
	if request.Kind == entity.RequestKindProfessionalFee {
		kind = "Professional fee"
	}
	desc := request.Description
	if desc == "" {
		desc = "—"
	}
	return row.New(7).Add(
		col.New(3).Add(text.New(kind, props.Text{Size: 8, Top: 1})),
		col.New(6).Add(text.New(desc, props.Text{Size: 8, Top: 1})),
		col.New(3).Add(text.New(request.Amount.StringFixed(2), props.Text{
			Size: 8, Top: 1, Align: align.Right,
		})),
	)
}

func totalRow(request *entity.SpendingRequest) core.Row {
	return row.New(9).Add(
		col.New(9).Add(text.New("TOTAL PAID", props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 1, Align: align.Right, Color: colorPrimary,
		})),
		col.New(3).Add(text.New("KES "+request.Amount.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 1, Align: align.Right,
		})),
	)
}

// paymentRows: method, reference, expense id and approval trail.
func paymentRows(request *entity.SpendingRequest, expense *entity.ExpenseRecord) []core.Row {
	expenseID := "—"
	if expense != nil {
		expenseID = shortID(expense.ID)
	}
	reference := request.Payment.Reference
	if reference == "" {
		reference = "—"
	}
	notes := request.ApprovalNotes
	if notes == "" {
		notes = "—"
	}
	return []core.Row{
		row.New(7).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Method: %s   |   Reference: %s   |   Expense: %s",
					request.Payment.Method, reference, expenseID,
				), props.Text{Size: 8, Top: 1, Color: colorGray}),
			),
		),
		row.New(7).Add(
			col.New(12).Add(
				text.New("Approval notes: "+notes, props.Text{Size: 8, Top: 1, Color: colorGray}),
			),
		),
	}
}

// shortID: first block of a UUID, enough for a printed reference.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
