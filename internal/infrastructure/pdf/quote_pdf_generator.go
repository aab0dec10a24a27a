// Package pdf renders quote documents with Maroto v2.
//
// A4 layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: business name          │  "OFFERTE" + date         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CUSTOMER: name + contact                                   │
//	│  EVENT: date + guest count + request message                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                      │
//	│  FOOTER: business contact details                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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

	"github.com/caterkit/caterkit-api/internal/application/usecase"
	"github.com/caterkit/caterkit-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 26, Green: 122, Blue: 76}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Ensure MarotoQuoteGenerator implements usecase.QuotePDFGenerator.
var _ usecase.QuotePDFGenerator = (*MarotoQuoteGenerator)(nil)

// MarotoQuoteGenerator renders quote PDFs.
type MarotoQuoteGenerator struct{}

// NewMarotoQuoteGenerator builds the generator.
func NewMarotoQuoteGenerator() *MarotoQuoteGenerator { return &MarotoQuoteGenerator{} }

// Generate renders the quote PDF and returns its bytes.
func (g *MarotoQuoteGenerator) Generate(quote *entity.Quote, tenant *entity.Tenant, settings *entity.Settings) ([]byte, error) {
	name := tenant.Name
	if settings != nil && settings.DisplayName != "" {
		name = settings.DisplayName
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Offerte "+name, true).
		WithAuthor(name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(quote, name))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(quote))
	m.AddRows(eventRow(quote))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(quote))

	if settings != nil {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(footerRow(settings))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: business name on the left, document title and date on the right.
func headerRow(quote *entity.Quote, name string) core.Row {
	date := quote.UpdatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("OFFERTE", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Datum: "+date, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func customerRow(quote *entity.Quote) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("KLANT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(quote.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s",
				nonEmpty(quote.CustomerEmail, "—"),
				nonEmpty(quote.CustomerPhone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func eventRow(quote *entity.Quote) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("EVENEMENT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Datum: %s   |   Aantal gasten: %d",
				quote.EventDate.Format("02/01/2006"), quote.GuestCount,
			), props.Text{Size: 9, Top: 7}),
			text.New(nonEmpty(quote.Message, ""), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

// totalRow: quoted amount, right-aligned.
func totalRow(quote *entity.Quote) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(
			text.New("TOTAALBEDRAG:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 2, Right: 2,
			}),
		),
		col.New(3).Add(
			text.New("€ "+quote.Amount.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 2, Right: 1,
			}),
		),
	)
}

func footerRow(settings *entity.Settings) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Contact: %s   |   Tel: %s",
				nonEmpty(settings.ContactEmail, "—"),
				nonEmpty(settings.ContactPhone, "—"),
			), props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
