// Package pdf genera la ficha comercial de un producto en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del producto  │  Proveedor + fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: Categoría / Unidad / Stock / Precio base             │
//	│  DESCRIPCIONES: EN y ZH                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Precio sugerido | Razonamiento               │
//	│  TABLA: Región | Transportista | Días | Costo                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR a la página del producto                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/agromarket-api/internal/application/ports"
	"github.com/jhoicas/agromarket-api/internal/domain/entity"
)

var _ ports.ProductSheetGenerator = (*MarotoSheetGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 46, Green: 125, Blue: 50}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoSheetGenerator implementa ports.ProductSheetGenerator usando Maroto v2.
type MarotoSheetGenerator struct{}

// NewMarotoSheetGenerator construye el generador.
func NewMarotoSheetGenerator() *MarotoSheetGenerator { return &MarotoSheetGenerator{} }

// GenerateProductSheet genera el PDF y devuelve sus bytes.
func (g *MarotoSheetGenerator) GenerateProductSheet(_ context.Context, s ports.ProductSheet) ([]byte, error) {
	if s.Product == nil {
		return nil, fmt.Errorf("pdf: producto requerido")
	}
	author := "Agromarket"
	if s.Supplier != nil && s.Supplier.CompanyName != "" {
		author = s.Supplier.CompanyName
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(s.Product.Name, true).
		WithAuthor(author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(factsRow(s.Product))
	m.AddRows(descriptionRows(s.Product)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("Price suggestions"))
	m.AddRows(priceRows(s.Prices)...)
	m.AddRows(sectionTitle("Logistics estimates"))
	m.AddRows(logisticsRows(s.Logistics)...)

	if s.PageURL != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(row.New(45).Add(
			col.New(4).Add(code.NewQr(s.PageURL, props.Rect{Percent: 95, Center: true})),
			col.New(8).Add(text.New("Scan to open the product page:\n"+s.PageURL, props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			})),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(s ports.ProductSheet) core.Row {
	supplier := "—"
	if s.Supplier != nil {
		supplier = nonEmpty(s.Supplier.CompanyName, "—")
	}
	return row.New(16).Add(
		col.New(8).Add(text.New(printable(s.Product.Name, "Product #"+fmt.Sprint(s.Product.ID)), props.Text{
			Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
		})),
		col.New(4).Add(
			text.New(printable(supplier, "—"), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1}),
			text.New("Generated: "+s.GeneratedAt.Format("2006-01-02"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func factsRow(p *entity.Product) core.Row {
	return row.New(10).Add(col.New(12).Add(text.New(
		fmt.Sprintf("Category: %s   |   Unit: %s   |   Stock: %d   |   Base price: %s / %s",
			printable(nonEmpty(p.Category, "—"), "—"), p.UnitOrDefault(), p.Stock,
			p.BasePrice.StringFixed(2), p.UnitOrDefault()),
		props.Text{Size: 9, Top: 3},
	)))
}

func descriptionRows(p *entity.Product) []core.Row {
	zh := nonEmpty(p.DescriptionZH, "—")
	if !latin1(zh) {
		// La fuente base del PDF no tiene glifos CJK.
		zh = "Available on the product page."
	}
	return []core.Row{
		labeledText("Description (EN)", printable(nonEmpty(p.DescriptionEN, "—"), "—")),
		labeledText("Description (ZH)", zh),
	}
}

func labeledText(label, value string) core.Row {
	return row.New(28).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(value, props.Text{Size: 8, Top: 6}),
	))
}

func sectionTitle(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(text.New(title, props.Text{
		Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
	})))
}

func priceRows(prices []*entity.PriceSuggestion) []core.Row {
	if len(prices) == 0 {
		return []core.Row{emptyRow()}
	}
	rows := make([]core.Row, 0, len(prices))
	for _, ps := range prices {
		rows = append(rows, row.New(10).Add(
			col.New(2).Add(text.New(ps.CreatedAt.Format("2006-01-02"), props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(ps.SuggestedPrice.StringFixed(2), props.Text{Size: 8, Top: 1, Align: align.Right, Right: 2})),
			col.New(8).Add(text.New(printable(ps.Rationale, ""), props.Text{Size: 7, Top: 1, Color: colorGray})),
		))
	}
	return rows
}

func logisticsRows(estimates []*entity.LogisticsEstimate) []core.Row {
	if len(estimates) == 0 {
		return []core.Row{emptyRow()}
	}
	rows := make([]core.Row, 0, len(estimates))
	for _, e := range estimates {
		rows = append(rows, row.New(6).Add(
			col.New(4).Add(text.New(printable(e.Region, "—"), props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(printable(nonEmpty(e.Carrier, "—"), "—"), props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d days", e.EstimatedDays), props.Text{Size: 8, Top: 1, Align: align.Center})),
			col.New(3).Add(text.New(e.CostEstimate.StringFixed(2), props.Text{Size: 8, Top: 1, Align: align.Right, Right: 2})),
		))
	}
	return rows
}

func emptyRow() core.Row {
	return row.New(6).Add(col.New(12).Add(text.New("No history yet.", props.Text{Size: 8, Top: 1, Color: colorGray})))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// latin1 indica si s se puede representar con la fuente base (Windows-1252).
func latin1(s string) bool {
	_, err := charmap.Windows1252.NewEncoder().String(s)
	return err == nil
}

// printable devuelve s si la fuente base lo puede dibujar; si no, fallback.
func printable(s, fallback string) string {
	if latin1(s) {
		return s
	}
	return fallback
}
