package report

import (
	"context"

	"github.com/jhoicas/Inventario-suministros/internal/domain/entity"
	"github.com/jhoicas/Inventario-suministros/internal/domain/repository"
)

// Column columna de un reporte tabular. Width usa la grilla de 12 columnas del PDF.
type Column struct {
	Header  string
	Width   int
	Numeric bool // alineado a la derecha
}

// Table reporte listo para renderizar. Title ya incluye organización y fecha de generación.
type Table struct {
	Title   string
	Columns []Column
	Rows    [][]string
	Totals  []string // fila final opcional, misma cantidad de celdas que Columns
}

// TableRenderer convierte una Table en un documento (PDF, Excel).
type TableRenderer interface {
	Render(ctx context.Context, t Table) ([]byte, error)
	ContentType() string
	Extension() string
}

// MovementSource lectura de ingresos y salidas para exportar.
type MovementSource interface {
	ListReceipts(ctx context.Context, filter repository.MovementFilter) ([]*entity.Receipt, error)
	ListIssues(ctx context.Context, filter repository.MovementFilter) ([]*entity.Issue, error)
}

// ProductSource productos dados de baja.
type ProductSource interface {
	ListInactive(ctx context.Context) ([]*entity.Product, error)
}

// Reconciler conciliación de todos los productos.
type Reconciler interface {
	ReconcileAll(ctx context.Context) ([]entity.StockReconciliation, error)
}
