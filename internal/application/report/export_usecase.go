// Package report arma los reportes del inventario (consolidado y exportaciones PDF/Excel).
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Inventario-suministros/internal/application/dto"
	"github.com/jhoicas/Inventario-suministros/internal/domain"
	"github.com/jhoicas/Inventario-suministros/internal/domain/entity"
	"github.com/jhoicas/Inventario-suministros/internal/domain/repository"
)

// Kind tipo de reporte exportable.
type Kind string

const (
	KindIssues           Kind = "issues"
	KindReceipts         Kind = "receipts"
	KindInactiveProducts Kind = "inactive-products"
	KindConsolidated     Kind = "consolidated"
)

// Format formato de salida.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
)

var kindTitles = map[Kind]string{
	KindIssues:           "REPORTE DE SALIDAS",
	KindReceipts:         "REPORTE DE INGRESOS",
	KindInactiveProducts: "PRODUCTOS DADOS DE BAJA",
	KindConsolidated:     "REPORTE CONSOLIDADO DE STOCK",
}

var kindFileNames = map[Kind]string{
	KindIssues:           "salidas",
	KindReceipts:         "ingresos",
	KindInactiveProducts: "productos_baja",
	KindConsolidated:     "consolidado",
}

// File documento generado.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExportUseCase genera los reportes exportables.
type ExportUseCase struct {
	movements  MovementSource
	products   ProductSource
	reconciler Reconciler
	renderers  map[Format]TableRenderer
	org        string
	printer    *message.Printer
	now        func() time.Time
}

// NewExportUseCase construye el caso de uso. org encabeza el título de cada reporte.
func NewExportUseCase(
	movements MovementSource,
	products ProductSource,
	reconciler Reconciler,
	pdf, excel TableRenderer,
	org string,
) *ExportUseCase {
	return &ExportUseCase{
		movements:  movements,
		products:   products,
		reconciler: reconciler,
		renderers:  map[Format]TableRenderer{FormatPDF: pdf, FormatExcel: excel},
		org:        org,
		printer:    message.NewPrinter(language.Spanish),
		now:        time.Now,
	}
}

// Consolidated conciliación de todos los productos en formato de respuesta.
func (uc *ExportUseCase) Consolidated(ctx context.Context) ([]dto.StockReconciliationDTO, error) {
	recs, err := uc.reconciler.ReconcileAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockReconciliationDTO, 0, len(recs))
	for i := range recs {
		out = append(out, ToReconciliationDTO(&recs[i]))
	}
	return out, nil
}

// Export genera el reporte kind en el formato pedido. filter aplica a ingresos y salidas.
func (uc *ExportUseCase) Export(ctx context.Context, kind Kind, format Format, filter repository.MovementFilter) (*File, error) {
	renderer, ok := uc.renderers[format]
	if !ok || renderer == nil {
		return nil, fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidInput, format)
	}
	title, ok := kindTitles[kind]
	if !ok {
		return nil, fmt.Errorf("%w: reporte %q no soportado", domain.ErrInvalidInput, kind)
	}

	now := uc.now()
	var (
		table Table
		err   error
	)
	switch kind {
	case KindIssues:
		table, err = uc.issuesTable(ctx, filter)
	case KindReceipts:
		table, err = uc.receiptsTable(ctx, filter)
	case KindInactiveProducts:
		table, err = uc.inactiveTable(ctx)
	case KindConsolidated:
		table, err = uc.consolidatedTable(ctx)
	}
	if err != nil {
		return nil, err
	}
	table.Title = uc.Title(title, now)

	data, err := renderer.Render(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("report: renderizar %s: %w", kind, err)
	}
	return &File{
		Name:        fmt.Sprintf("%s_%s.%s", kindFileNames[kind], now.Format("20060102_1504"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Data:        data,
	}, nil
}

// Title "<org> - <TITULO> | Generado: YYYY-MM-DD HH:MM".
func (uc *ExportUseCase) Title(title string, at time.Time) string {
	return fmt.Sprintf("%s - %s | Generado: %s", uc.org, title, at.Format("2006-01-02 15:04"))
}

func (uc *ExportUseCase) issuesTable(ctx context.Context, filter repository.MovementFilter) (Table, error) {
	filter.Limit, filter.Offset = 0, 0
	issues, err := uc.movements.ListIssues(ctx, filter)
	if err != nil {
		return Table{}, err
	}
	t := Table{Columns: []Column{
		{Header: "Fecha", Width: 2},
		{Header: "Producto", Width: 3},
		{Header: "Cantidad", Width: 1, Numeric: true},
		{Header: "Destino", Width: 2},
		{Header: "Responsable", Width: 2},
		{Header: "Observaciones", Width: 2},
	}}
	var total int64
	for _, i := range issues {
		total += i.Quantity
		t.Rows = append(t.Rows, []string{
			i.OccurredOn.Format(dto.DateLayout),
			i.ProductName,
			uc.integer(i.Quantity),
			i.Destination,
			i.Responsible,
			i.Notes,
		})
	}
	t.Totals = []string{"TOTAL", "", uc.integer(total), "", "", ""}
	return t, nil
}

func (uc *ExportUseCase) receiptsTable(ctx context.Context, filter repository.MovementFilter) (Table, error) {
	filter.Limit, filter.Offset = 0, 0
	receipts, err := uc.movements.ListReceipts(ctx, filter)
	if err != nil {
		return Table{}, err
	}
	t := Table{Columns: []Column{
		{Header: "Fecha", Width: 2},
		{Header: "Producto", Width: 3},
		{Header: "Cantidad", Width: 1, Numeric: true},
		{Header: "Precio Unit.", Width: 2, Numeric: true},
		{Header: "Total", Width: 2, Numeric: true},
		{Header: "Responsable", Width: 2},
	}}
	var (
		qty   int64
		total = decimal.Zero
	)
	for _, r := range receipts {
		qty += r.Quantity
		total = total.Add(r.Total)
		t.Rows = append(t.Rows, []string{
			r.OccurredOn.Format(dto.DateLayout),
			r.ProductName,
			uc.integer(r.Quantity),
			uc.money(r.UnitPrice),
			uc.money(r.Total),
			r.Responsible,
		})
	}
	t.Totals = []string{"TOTAL", "", uc.integer(qty), "", uc.money(total), ""}
	return t, nil
}

func (uc *ExportUseCase) inactiveTable(ctx context.Context) (Table, error) {
	products, err := uc.products.ListInactive(ctx)
	if err != nil {
		return Table{}, err
	}
	t := Table{Columns: []Column{
		{Header: "Producto", Width: 3},
		{Header: "Tipo", Width: 2},
		{Header: "Marca", Width: 2},
		{Header: "Modelo", Width: 2},
		{Header: "Color", Width: 2},
		{Header: "Stock", Width: 1, Numeric: true},
	}}
	for _, p := range products {
		t.Rows = append(t.Rows, []string{
			p.Name, p.CategoryName, p.Brand, p.PrinterModel, p.Color, uc.integer(p.Stock),
		})
	}
	return t, nil
}

func (uc *ExportUseCase) consolidatedTable(ctx context.Context) (Table, error) {
	recs, err := uc.reconciler.ReconcileAll(ctx)
	if err != nil {
		return Table{}, err
	}
	t := Table{Columns: []Column{
		{Header: "Producto", Width: 3},
		{Header: "Tipo", Width: 2},
		{Header: "Stock Inicial", Width: 1, Numeric: true},
		{Header: "Ingresos", Width: 1, Numeric: true},
		{Header: "Salidas", Width: 1, Numeric: true},
		{Header: "Stock Actual", Width: 2, Numeric: true},
		{Header: "Diferencia", Width: 2, Numeric: true},
	}}
	var in, out, stock int64
	for _, r := range recs {
		in += r.TotalReceipts
		out += r.TotalIssues
		stock += r.LedgerBalance
		t.Rows = append(t.Rows, []string{
			productLabel(r),
			r.CategoryName,
			uc.integer(r.InitialStock),
			uc.integer(r.TotalReceipts),
			uc.integer(r.TotalIssues),
			uc.integer(r.LedgerBalance),
			uc.integer(r.Discrepancy),
		})
	}
	t.Totals = []string{"TOTAL", "", "", uc.integer(in), uc.integer(out), uc.integer(stock), ""}
	return t, nil
}

// integer formatea con separador de miles (es: 1.234).
func (uc *ExportUseCase) integer(n int64) string {
	return uc.printer.Sprintf("%d", n)
}

// money formatea con dos decimales (es: 1.234,50).
func (uc *ExportUseCase) money(d decimal.Decimal) string {
	return "$" + uc.printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

func productLabel(r entity.StockReconciliation) string {
	parts := []string{r.ProductName}
	for _, s := range []string{r.Brand, r.PrinterModel, r.Color} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	label := strings.Join(parts, " ")
	if !r.Active {
		label += " (baja)"
	}
	return label
}

// ToReconciliationDTO mapea la conciliación de un producto a su respuesta.
func ToReconciliationDTO(r *entity.StockReconciliation) dto.StockReconciliationDTO {
	return dto.StockReconciliationDTO{
		ProductID:     r.ProductID,
		ProductName:   r.ProductName,
		CategoryName:  r.CategoryName,
		Brand:         r.Brand,
		PrinterModel:  r.PrinterModel,
		Color:         r.Color,
		Unit:          r.Unit,
		InitialStock:  r.InitialStock,
		TotalReceipts: r.TotalReceipts,
		TotalIssues:   r.TotalIssues,
		DerivedStock:  r.DerivedStock,
		LedgerBalance: r.LedgerBalance,
		Discrepancy:   r.Discrepancy,
	}
}
