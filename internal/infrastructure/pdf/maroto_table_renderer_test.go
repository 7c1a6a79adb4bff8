package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-suministros/internal/application/report"
)

func TestRender_GeneraPDF(t *testing.T) {
	table := report.Table{
		Title: "Oficina - REPORTE DE SALIDAS | Generado: 2026-10-18 09:05",
		Columns: []report.Column{
			{Header: "Fecha", Width: 3},
			{Header: "Producto", Width: 6},
			{Header: "Cantidad", Width: 3, Numeric: true},
		},
		Rows: [][]string{
			{"2026-10-01", "Tóner 85A", "3"},
			{"2026-10-02", "Cinta LX", "1"},
		},
		Totals: []string{"TOTAL", "", "4"},
	}

	out, err := NewMarotoTableRenderer().Render(context.Background(), table)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRender_SinFilas(t *testing.T) {
	table := report.Table{
		Title:   "Oficina - PRODUCTOS DADOS DE BAJA",
		Columns: []report.Column{{Header: "Producto", Width: 12}},
	}
	out, err := NewMarotoTableRenderer().Render(context.Background(), table)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRender_AnchoInvalido(t *testing.T) {
	table := report.Table{Columns: []report.Column{{Header: "A", Width: 5}}}
	_, err := NewMarotoTableRenderer().Render(context.Background(), table)
	assert.Error(t, err)
}
