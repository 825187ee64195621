// Package pdf genera el informe de estado del inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del informe   │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Ítems / Bajo punto de pedido / Alertas / Valor     │
//	│  VALOR POR CATEGORÍA                                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ítem | Categoría | Stock | P.Pedido | Vence | Estado │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ALERTAS ABIERTAS: Nivel | Tipo | Mensaje                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/jhoicas/inventario-ledger/internal/application/report"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorUrgent  = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorWarning = &props.Color{Red: 200, Green: 120, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStockReport(_ context.Context, r *report.StockReport) ([]byte, error) {
	if r == nil || r.Summary == nil {
		return nil, fmt.Errorf("pdf: informe sin datos")
	}
	loc := r.Location
	if loc == nil {
		loc = time.UTC
	}
	title := nonEmpty(r.Title, "Informe de inventario")

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, r.Summary.GeneratedAt.In(loc)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(r))
	m.AddRows(categoryRows(r)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionRow("EXISTENCIAS"))
	m.AddRows(itemHeaderRow())
	m.AddRows(itemRows(r.Items, r.OpenAlerts)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(sectionRow(fmt.Sprintf("ALERTAS ABIERTAS (%d)", len(r.OpenAlerts))))
	m.AddRows(alertRows(r.OpenAlerts, r.Items, loc)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(title string, generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado", props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 1,
			}),
			text.New(generatedAt.Format("02/01/2006 15:04"), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6,
			}),
		),
	)
}

// summaryRow: cuatro indicadores en una fila.
func summaryRow(r *report.StockReport) core.Row {
	kpi := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Top: 6, Align: align.Center}),
		)
	}
	s := r.Summary
	return row.New(16).Add(
		kpi("Ítems", fmt.Sprint(s.ItemCount)),
		kpi("En o bajo punto de pedido", fmt.Sprint(s.LowStockCount)),
		kpi("Alertas abiertas", fmt.Sprint(s.OpenAlerts)),
		kpi("Valor del inventario", "¥"+formatMoney(s.StockValue.StringFixed(0))),
	)
}

// categoryRows: valor por categoría, ya ordenado de mayor a menor.
func categoryRows(r *report.StockReport) []core.Row {
	if len(r.Summary.Categories) == 0 {
		return nil
	}
	rows := []core.Row{sectionRow("VALOR POR CATEGORÍA")}
	for _, c := range r.Summary.Categories {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(c.Category, props.Text{Size: 8, Left: 2})),
			col.New(2).Add(text.New(fmt.Sprintf("%d ítems", c.ItemCount), props.Text{Size: 8, Align: align.Right, Color: colorGray})),
			col.New(4).Add(text.New("¥"+formatMoney(c.Value.StringFixed(0)), props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

func sectionRow(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
	))
}

// itemHeaderRow: cabecera de la tabla de existencias.
func itemHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Ítem", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Stock", 2, align.Right),
		h("P. pedido", 1, align.Right),
		h("Vence", 2, align.Center),
		h("Estado", 1, align.Center),
	)
}

// itemRows: una fila por ítem; el estado refleja la alerta abierta más grave.
func itemRows(items []*entity.InventoryItem, open []*entity.Alert) []core.Row {
	worst := worstLevelByItem(open)
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		status, color := "OK", colorGray
		switch worst[it.ID] {
		case entity.AlertLevelUrgent:
			status, color = "URGENTE", colorUrgent
		case entity.AlertLevelWarning:
			status, color = "AVISO", colorWarning
		}
		expiry := "-"
		if it.ExpiryDate != nil {
			expiry = it.ExpiryDate.Format("02/01/2006")
		}
		result = append(result, row.New(6).Add(
			col.New(4).Add(text.New(it.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(it.Category, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatQty(it.CurrentStock)+" "+it.Unit, props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1})),
			col.New(1).Add(text.New(formatQty(it.ReorderPoint), props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1})),
			col.New(2).Add(text.New(expiry, props.Text{Size: 8, Top: 1, Align: align.Center})),
			col.New(1).Add(text.New(status, props.Text{Style: fontstyle.Bold, Size: 7, Top: 1, Align: align.Center, Color: color})),
		))
	}
	return result
}

// alertRows: nivel, tipo y mensaje de cada alerta abierta.
func alertRows(open []*entity.Alert, items []*entity.InventoryItem, loc *time.Location) []core.Row {
	if len(open) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Sin alertas abiertas.", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2}),
		))}
	}
	names := make(map[string]string, len(items))
	for _, it := range items {
		names[it.ID] = it.Name
	}
	result := make([]core.Row, 0, len(open))
	for _, a := range open {
		color := colorWarning
		if a.Level == entity.AlertLevelUrgent {
			color = colorUrgent
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(a.CreatedAt.In(loc).Format("02/01 15:04"), props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
			col.New(1).Add(text.New(a.Level, props.Text{Style: fontstyle.Bold, Size: 7, Top: 1, Color: color})),
			col.New(2).Add(text.New(alertTypeLabel(a.Type), props.Text{Size: 7, Top: 1})),
			col.New(3).Add(text.New(nonEmpty(names[a.ItemID], a.ItemID), props.Text{Size: 7, Top: 1})),
			col.New(4).Add(text.New(a.Message, props.Text{Size: 7, Top: 1})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func worstLevelByItem(open []*entity.Alert) map[string]string {
	out := make(map[string]string, len(open))
	for _, a := range open {
		if out[a.ItemID] != entity.AlertLevelUrgent {
			out[a.ItemID] = a.Level
		}
	}
	return out
}

func alertTypeLabel(t string) string {
	switch t {
	case entity.AlertTypeLowStock:
		return "Stock bajo"
	case entity.AlertTypeExpiryWarning:
		return "Vencimiento"
	default:
		return t
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatQty imprime cantidades sin ceros de relleno ("12.5", "3").
func formatQty(d decimal.Decimal) string {
	return d.String()
}

// formatMoney inserta comas de miles en un string numérico sin decimales.
// Ej: "25000" → "25,000", "-1000000" → "-1,000,000"
func formatMoney(s string) string {
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
