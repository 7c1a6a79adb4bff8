package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-suministros/internal/domain/entity"
	"github.com/jhoicas/Inventario-suministros/internal/domain/repository"
)

type mockReportRepo struct {
	mock.Mock
}

func (m *mockReportRepo) Reconcile(ctx context.Context, productID string) (*entity.StockReconciliation, error) {
	args := m.Called(ctx, productID)
	rec, _ := args.Get(0).(*entity.StockReconciliation)
	return rec, args.Error(1)
}

func (m *mockReportRepo) ReconcileAll(ctx context.Context) ([]entity.StockReconciliation, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]entity.StockReconciliation)
	return list, args.Error(1)
}

func (m *mockReportRepo) ListAlerts(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.Product)
	return list, args.Error(1)
}

func (m *mockReportRepo) GetStockSummary(ctx context.Context) (repository.StockSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(repository.StockSummary), args.Error(1)
}

func (m *mockReportRepo) GetLastReceiptDate(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	t, _ := args.Get(0).(*time.Time)
	return t, args.Error(1)
}

func (m *mockReportRepo) GetTopIssued(ctx context.Context, limit int) ([]repository.TopIssuedResult, error) {
	args := m.Called(ctx, limit)
	list, _ := args.Get(0).([]repository.TopIssuedResult)
	return list, args.Error(1)
}

func TestGetSummary_ArmaResumen(t *testing.T) {
	repo := new(mockReportRepo)
	last := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	repo.On("GetStockSummary", mock.Anything).Return(repository.StockSummary{
		TotalProducts: 12, ActiveProducts: 10, InactiveProducts: 2,
		LowStockProducts: 3, OutOfStockProducts: 1, TotalStock: 140,
	}, nil)
	repo.On("GetLastReceiptDate", mock.Anything).Return(&last, nil)
	repo.On("GetTopIssued", mock.Anything, 5).Return([]repository.TopIssuedResult{
		{ProductID: "p1", ProductName: "Tóner 85A", TotalIssued: 40},
	}, nil)

	out, err := NewDashboardUseCase(repo).GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), out.TotalProducts)
	assert.Equal(t, int64(3), out.LowStockProducts)
	assert.Equal(t, "30/09/2026", out.LastReceiptDate)
	require.Len(t, out.TopIssued, 1)
	assert.Equal(t, "Tóner 85A", out.TopIssued[0].ProductName)
	repo.AssertExpectations(t)
}

func TestGetSummary_SinIngresos(t *testing.T) {
	repo := new(mockReportRepo)
	repo.On("GetStockSummary", mock.Anything).Return(repository.StockSummary{}, nil)
	repo.On("GetLastReceiptDate", mock.Anything).Return(nil, nil)
	repo.On("GetTopIssued", mock.Anything, 5).Return(nil, nil)

	out, err := NewDashboardUseCase(repo).GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sin registros", out.LastReceiptDate)
	assert.NotNil(t, out.TopIssued)
}

func TestGetSummary_PropagaError(t *testing.T) {
	repo := new(mockReportRepo)
	boom := errors.New("sin conexión")
	repo.On("GetStockSummary", mock.Anything).Return(repository.StockSummary{}, nil)
	repo.On("GetLastReceiptDate", mock.Anything).Return(nil, boom)
	repo.On("GetTopIssued", mock.Anything, 5).Return(nil, nil)

	_, err := NewDashboardUseCase(repo).GetSummary(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestGetKPIs(t *testing.T) {
	repo := new(mockReportRepo)
	repo.On("GetStockSummary", mock.Anything).Return(repository.StockSummary{
		TotalProducts: 10, LowStockProducts: 4, TotalStock: 55,
	}, nil)

	kpis, err := NewDashboardUseCase(repo).GetKPIs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), kpis.AlertProducts)
	assert.Equal(t, int64(6), kpis.NormalProducts)
	assert.Equal(t, int64(55), kpis.TotalStock)
}
