// Package excel genera los reportes tabulares del inventario en formato xlsx.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Inventario-suministros/internal/application/report"
)

const (
	sheetName = "Reporte"
	titleRow  = 1
	headerRow = 3

	colorPrimary = "00467F"
	// Ancho en caracteres por unidad de la grilla de 12.
	widthPerUnit = 7.0
)

// ExcelizeTableRenderer implementa report.TableRenderer usando excelize.
type ExcelizeTableRenderer struct{}

// NewExcelizeTableRenderer construye el renderer.
func NewExcelizeTableRenderer() *ExcelizeTableRenderer { return &ExcelizeTableRenderer{} }

// ContentType tipo MIME del documento.
func (r *ExcelizeTableRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension extensión de archivo.
func (r *ExcelizeTableRenderer) Extension() string { return "xlsx" }

// Render título combinado en la fila 1, cabecera en la 3 y datos desde la 4.
func (r *ExcelizeTableRenderer) Render(_ context.Context, t report.Table) ([]byte, error) {
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("excel: reporte sin columnas")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("excel: hoja: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	lastCol, err := excelize.ColumnNumberToName(len(t.Columns))
	if err != nil {
		return nil, fmt.Errorf("excel: columnas: %w", err)
	}

	// Título
	if err := f.SetCellValue(sheetName, "A1", t.Title); err != nil {
		return nil, fmt.Errorf("excel: título: %w", err)
	}
	if err := f.MergeCell(sheetName, "A1", fmt.Sprintf("%s%d", lastCol, titleRow)); err != nil {
		return nil, fmt.Errorf("excel: combinar título: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "A1", styles.title); err != nil {
		return nil, fmt.Errorf("excel: estilo título: %w", err)
	}

	// Cabecera y anchos
	for i, c := range t.Columns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s%d", name, headerRow)
		if err := f.SetCellValue(sheetName, cell, c.Header); err != nil {
			return nil, fmt.Errorf("excel: cabecera: %w", err)
		}
		if err := f.SetColWidth(sheetName, name, name, float64(c.Width)*widthPerUnit); err != nil {
			return nil, fmt.Errorf("excel: ancho de columna: %w", err)
		}
	}
	if err := f.SetCellStyle(sheetName, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), styles.header); err != nil {
		return nil, fmt.Errorf("excel: estilo cabecera: %w", err)
	}

	// Filas
	rowNum := headerRow + 1
	for _, cells := range t.Rows {
		if err := writeRow(f, t.Columns, cells, rowNum, styles.text, styles.number); err != nil {
			return nil, err
		}
		rowNum++
	}
	if len(t.Totals) > 0 {
		if err := writeRow(f, t.Columns, t.Totals, rowNum, styles.total, styles.total); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetStyles struct {
	title, header, text, number, total int
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&s.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 13, Color: colorPrimary}}},
		{&s.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{colorPrimary}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		}},
		{&s.text, &excelize.Style{Alignment: &excelize.Alignment{Horizontal: "left"}}},
		{&s.number, &excelize.Style{Alignment: &excelize.Alignment{Horizontal: "right"}}},
		{&s.total, &excelize.Style{
			Font:      &excelize.Font{Bold: true},
			Alignment: &excelize.Alignment{Horizontal: "right"},
			Border:    []excelize.Border{{Type: "top", Color: colorPrimary, Style: 1}},
		}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return s, fmt.Errorf("excel: estilo: %w", err)
		}
		*d.dst = id
	}
	return s, nil
}

func writeRow(f *excelize.File, columns []report.Column, cells []string, rowNum, textStyle, numberStyle int) error {
	for i, c := range columns {
		value := ""
		if i < len(cells) {
			value = cells[i]
		}
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return fmt.Errorf("excel: celda: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return fmt.Errorf("excel: valor: %w", err)
		}
		style := textStyle
		if c.Numeric {
			style = numberStyle
		}
		if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
			return fmt.Errorf("excel: estilo: %w", err)
		}
	}
	return nil
}
