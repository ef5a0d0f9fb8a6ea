// Package pdf implementa la generación del reporte kardex de movimientos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte │ Fecha de generación           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Producto | Tipo | Cant. | Saldo | Referencia │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: totales de entradas y salidas                      │
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

	appinv "github.com/stockline/stockline-api/internal/application/inventory"
	"github.com/stockline/stockline-api/internal/domain/entity"
)

var _ appinv.KardexPDFGenerator = (*KardexGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 16, Green: 94, Blue: 74}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// KardexGenerator implementa inventory.KardexPDFGenerator usando Maroto v2.
type KardexGenerator struct{}

// NewKardexGenerator construye el generador.
func NewKardexGenerator() *KardexGenerator { return &KardexGenerator{} }

// GenerateKardexPDF genera el reporte y devuelve sus bytes.
func (g *KardexGenerator) GenerateKardexPDF(_ context.Context, title string, movements []*entity.Movement) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex de inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range movementRows(movements) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(summaryRow(movements))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar kardex: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título del reporte (izq) y fecha de generación (der).
func headerRow(title string) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Kardex de movimientos de inventario", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Tipo", 1, align.Center),
		h("Cant.", 1, align.Right),
		h("Saldo", 1, align.Right),
		h("Referencia", 3, align.Left),
	)
}

// movementRows: una fila por movimiento; las salidas en rojo.
func movementRows(movements []*entity.Movement) []core.Row {
	result := make([]core.Row, 0, len(movements))
	for _, m := range movements {
		tipo := "Entrada"
		qtyColor := colorPrimary
		qty := fmt.Sprintf("+%d", m.Quantity)
		if m.Type == entity.MovementTypeExit {
			tipo = "Salida"
			qtyColor = colorRed
			qty = fmt.Sprintf("-%d", m.Quantity)
		}
		ref := m.ReferenceDocument
		if ref == "" {
			ref = m.Notes
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				m.Date.Format("02/01/2006 15:04"),
				props.Text{Size: 8, Top: 1},
			)),
			col.New(4).Add(text.New(
				m.ProductName,
				props.Text{Size: 8, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				tipo,
				props.Text{Size: 8, Align: align.Center, Top: 1, Color: qtyColor},
			)),
			col.New(1).Add(text.New(
				qty,
				props.Text{Size: 8, Align: align.Right, Top: 1, Color: qtyColor, Right: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", m.ResultingBalance),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				ref,
				props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray},
			)),
		))
	}
	return result
}

// summaryRow: totales de entradas y salidas del reporte.
func summaryRow(movements []*entity.Movement) core.Row {
	var entries, exits int64
	for _, m := range movements {
		if m.Type == entity.MovementTypeEntry {
			entries += m.Quantity
		} else {
			exits += m.Quantity
		}
	}
	return row.New(10).Add(
		col.New(6).Add(text.New(
			fmt.Sprintf("Movimientos: %d", len(movements)),
			props.Text{Size: 9, Top: 2, Color: colorGray},
		)),
		col.New(3).Add(text.New(
			fmt.Sprintf("Entradas: +%d", entries),
			props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Color: colorPrimary},
		)),
		col.New(3).Add(text.New(
			fmt.Sprintf("Salidas: -%d", exits),
			props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Color: colorRed},
		)),
	)
}
