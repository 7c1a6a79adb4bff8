// Package analytics contiene los casos de uso del tablero de inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-suministros/internal/application/dto"
	"github.com/jhoicas/Inventario-suministros/internal/domain/repository"
)

const (
	dashboardTopIssued = 5 // productos en el widget "más entregados"
	noReceiptsLabel    = "Sin registros"
)

// DashboardUseCase genera el resumen del inventario para la pantalla de inicio.
//
// Fuente de datos: ReportRepository (consultas read-only sobre el pool).
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reportRepo repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Tres consultas en paralelo:
//  1. GetStockSummary      → contadores del catálogo y stock total
//  2. GetLastReceiptDate   → fecha del último ingreso
//  3. GetTopIssued(top 5)  → productos más entregados
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type summaryResult struct {
		s   repository.StockSummary
		err error
	}
	type lastResult struct {
		t   *time.Time
		err error
	}
	type topResult struct {
		top []repository.TopIssuedResult
		err error
	}

	summaryCh := make(chan summaryResult, 1)
	lastCh := make(chan lastResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		s, err := uc.reportRepo.GetStockSummary(ctx)
		summaryCh <- summaryResult{s, err}
	}()
	go func() {
		t, err := uc.reportRepo.GetLastReceiptDate(ctx)
		lastCh <- lastResult{t, err}
	}()
	go func() {
		top, err := uc.reportRepo.GetTopIssued(ctx, dashboardTopIssued)
		topCh <- topResult{top, err}
	}()

	summary := <-summaryCh
	last := <-lastCh
	top := <-topCh

	if summary.err != nil {
		return nil, fmt.Errorf("dashboard: resumen de stock: %w", summary.err)
	}
	if last.err != nil {
		return nil, fmt.Errorf("dashboard: último ingreso: %w", last.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: más entregados: %w", top.err)
	}

	lastLabel := noReceiptsLabel
	if last.t != nil {
		lastLabel = last.t.Format("02/01/2006")
	}
	topIssued := make([]dto.TopIssuedDTO, 0, len(top.top))
	for _, t := range top.top {
		topIssued = append(topIssued, dto.TopIssuedDTO{
			ProductID:   t.ProductID,
			ProductName: t.ProductName,
			TotalIssued: t.TotalIssued,
		})
	}

	s := summary.s
	return &dto.DashboardSummaryDTO{
		TotalProducts:      s.TotalProducts,
		TotalStock:         s.TotalStock,
		LowStockProducts:   s.LowStockProducts,
		OutOfStockProducts: s.OutOfStockProducts,
		ActiveProducts:     s.ActiveProducts,
		InactiveProducts:   s.InactiveProducts,
		LastReceiptDate:    lastLabel,
		TopIssued:          topIssued,
	}, nil
}

// GetKPIs indicadores del reporte de stock: total, en alerta, normales y stock total.
func (uc *DashboardUseCase) GetKPIs(ctx context.Context) (*dto.KPIsDTO, error) {
	s, err := uc.reportRepo.GetStockSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("kpis: %w", err)
	}
	return &dto.KPIsDTO{
		TotalProducts:  s.TotalProducts,
		AlertProducts:  s.LowStockProducts,
		NormalProducts: s.TotalProducts - s.LowStockProducts,
		TotalStock:     s.TotalStock,
	}, nil
}
