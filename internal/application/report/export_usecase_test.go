package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-suministros/internal/domain"
	"github.com/jhoicas/Inventario-suministros/internal/domain/entity"
	"github.com/jhoicas/Inventario-suministros/internal/domain/repository"
)

type fakeSource struct {
	receipts []*entity.Receipt
	issues   []*entity.Issue
	inactive []*entity.Product
	recs     []entity.StockReconciliation
	filter   repository.MovementFilter
}

func (f *fakeSource) ListReceipts(_ context.Context, filter repository.MovementFilter) ([]*entity.Receipt, error) {
	f.filter = filter
	return f.receipts, nil
}

func (f *fakeSource) ListIssues(_ context.Context, filter repository.MovementFilter) ([]*entity.Issue, error) {
	f.filter = filter
	return f.issues, nil
}

func (f *fakeSource) ListInactive(context.Context) ([]*entity.Product, error) {
	return f.inactive, nil
}

func (f *fakeSource) ReconcileAll(context.Context) ([]entity.StockReconciliation, error) {
	return f.recs, nil
}

type captureRenderer struct {
	ext   string
	table Table
}

func (r *captureRenderer) Render(_ context.Context, t Table) ([]byte, error) {
	r.table = t
	return []byte("doc"), nil
}

func (r *captureRenderer) ContentType() string { return "application/" + r.ext }
func (r *captureRenderer) Extension() string   { return r.ext }

func newTestExport(src *fakeSource) (*ExportUseCase, *captureRenderer, *captureRenderer) {
	pdf := &captureRenderer{ext: "pdf"}
	xlsx := &captureRenderer{ext: "xlsx"}
	uc := NewExportUseCase(src, src, src, pdf, xlsx, "Oficina Central")
	uc.now = func() time.Time { return time.Date(2026, 10, 18, 9, 5, 0, 0, time.UTC) }
	return uc, pdf, xlsx
}

func TestExport_SalidasPDF(t *testing.T) {
	day := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	src := &fakeSource{issues: []*entity.Issue{
		{ProductName: "Tóner 85A", Quantity: 3, OccurredOn: day, Destination: "Contabilidad", Responsible: "Ana"},
		{ProductName: "Cinta LX", Quantity: 2, OccurredOn: day, Destination: "Bodega"},
	}}
	uc, pdf, _ := newTestExport(src)

	file, err := uc.Export(context.Background(), KindIssues, FormatPDF, repository.MovementFilter{ProductID: "p1", Limit: 20, Offset: 40})
	require.NoError(t, err)

	assert.Equal(t, "salidas_20261018_0905.pdf", file.Name)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, "Oficina Central - REPORTE DE SALIDAS | Generado: 2026-10-18 09:05", pdf.table.Title)
	require.Len(t, pdf.table.Rows, 2)
	assert.Equal(t, []string{"2026-10-01", "Tóner 85A", "3", "Contabilidad", "Ana", ""}, pdf.table.Rows[0])
	assert.Equal(t, "5", pdf.table.Totals[2])

	// Las exportaciones no paginan
	assert.Equal(t, "p1", src.filter.ProductID)
	assert.Zero(t, src.filter.Limit)
	assert.Zero(t, src.filter.Offset)
}

func TestExport_IngresosExcel(t *testing.T) {
	src := &fakeSource{receipts: []*entity.Receipt{
		{ProductName: "Tinta negra", Quantity: 4, UnitPrice: decimal.NewFromInt(10), Total: decimal.NewFromInt(40)},
	}}
	uc, _, xlsx := newTestExport(src)

	file, err := uc.Export(context.Background(), KindReceipts, FormatExcel, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, "ingresos_20261018_0905.xlsx", file.Name)
	assert.Len(t, xlsx.table.Columns, 6)
	assert.Equal(t, "4", xlsx.table.Rows[0][2])
	assert.Contains(t, xlsx.table.Rows[0][4], "40")
}

func TestExport_Consolidado(t *testing.T) {
	src := &fakeSource{recs: []entity.StockReconciliation{
		{ProductID: "p1", ProductName: "Tóner", Brand: "HP", Active: true, InitialStock: 5, TotalReceipts: 10, TotalIssues: 3, DerivedStock: 12, LedgerBalance: 12},
		{ProductID: "p2", ProductName: "Cinta", Active: false, InitialStock: 1, LedgerBalance: 1, DerivedStock: 1},
	}}
	uc, pdf, _ := newTestExport(src)

	_, err := uc.Export(context.Background(), KindConsolidated, FormatPDF, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, pdf.table.Rows, 2)
	assert.Equal(t, "Tóner HP", pdf.table.Rows[0][0])
	assert.Equal(t, "Cinta (baja)", pdf.table.Rows[1][0])
	assert.Equal(t, []string{"TOTAL", "", "", "10", "3", "13", ""}, pdf.table.Totals)

	list, err := uc.Consolidated(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(12), list[0].DerivedStock)
}

func TestExport_ParametrosInvalidos(t *testing.T) {
	uc, _, _ := newTestExport(&fakeSource{})

	_, err := uc.Export(context.Background(), KindIssues, Format("csv"), repository.MovementFilter{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Export(context.Background(), Kind("ventas"), FormatPDF, repository.MovementFilter{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExport_ProductosDeBaja(t *testing.T) {
	src := &fakeSource{inactive: []*entity.Product{
		{Name: "Cartucho 664", CategoryName: "Tinta", Brand: "HP", Color: "Negro", Stock: 0},
	}}
	uc, pdf, _ := newTestExport(src)

	file, err := uc.Export(context.Background(), KindInactiveProducts, FormatPDF, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, "productos_baja_20261018_0905.pdf", file.Name)
	assert.Equal(t, []string{"Cartucho 664", "Tinta", "HP", "", "Negro", "0"}, pdf.table.Rows[0])
	assert.Nil(t, pdf.table.Totals)
}
