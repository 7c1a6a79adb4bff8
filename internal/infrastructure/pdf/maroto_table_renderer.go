// Package pdf genera los reportes tabulares del inventario en PDF.
//
// Layout de la página A4 horizontal:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│  TÍTULO: <org> - <REPORTE> | Generado: fecha                  │
//	│  ──────────────────────────────────────────────────────────  │
//	│  CABECERA: columnas sobre fondo azul                          │
//	│  FILAS: una por registro, numéricos a la derecha              │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TOTALES (opcional)                                           │
//	└──────────────────────────────────────────────────────────────┘
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
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Inventario-suministros/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

const gridSize = 12

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoTableRenderer implementa report.TableRenderer usando Maroto v2.
type MarotoTableRenderer struct{}

// NewMarotoTableRenderer construye el renderer.
func NewMarotoTableRenderer() *MarotoTableRenderer { return &MarotoTableRenderer{} }

// ContentType tipo MIME del documento.
func (r *MarotoTableRenderer) ContentType() string { return "application/pdf" }

// Extension extensión de archivo.
func (r *MarotoTableRenderer) Extension() string { return "pdf" }

// Render genera el PDF y devuelve sus bytes.
func (r *MarotoTableRenderer) Render(_ context.Context, t report.Table) ([]byte, error) {
	if err := checkWidths(t.Columns); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(gridSize).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(t.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(t.Title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(headerRow(t.Columns))

	if len(t.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(gridSize).Add(
			text.New("Sin registros", props.Text{Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}
	for i, cells := range t.Rows {
		m.AddRows(dataRow(t.Columns, cells, i%2 == 1, false))
	}

	if len(t.Totals) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(dataRow(t.Columns, t.Totals, false, true))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRow(title string) core.Row {
	return row.New(12).Add(
		col.New(gridSize).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 2,
		})),
	)
}

// headerRow: cabecera de la tabla con fondo azul.
func headerRow(columns []report.Column) core.Row {
	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, col.New(c.Width).Add(text.New(c.Header, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: alignFor(c),
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func dataRow(columns []report.Column, cells []string, striped, bold bool) core.Row {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	cols := make([]core.Col, 0, len(columns))
	for i, c := range columns {
		value := ""
		if i < len(cells) {
			value = cells[i]
		}
		cols = append(cols, col.New(c.Width).Add(text.New(value, props.Text{
			Style: style, Size: 8, Align: alignFor(c), Top: 1, Left: 1, Right: 1,
		})))
	}
	r := row.New(7).Add(cols...)
	if striped {
		r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

// ── helpers ───────────────────────────────────────────────────────────────────

func alignFor(c report.Column) align.Type {
	if c.Numeric {
		return align.Right
	}
	return align.Left
}

// checkWidths las columnas deben ocupar exactamente la grilla.
func checkWidths(columns []report.Column) error {
	if len(columns) == 0 {
		return fmt.Errorf("pdf: reporte sin columnas")
	}
	sum := 0
	for _, c := range columns {
		sum += c.Width
	}
	if sum != gridSize {
		return fmt.Errorf("pdf: el ancho de columnas suma %d, se esperaba %d", sum, gridSize)
	}
	return nil
}
