//go:build integration

package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Inventario-suministros/internal/application/inventory"
	"github.com/jhoicas/Inventario-suministros/internal/domain"
	"github.com/jhoicas/Inventario-suministros/internal/domain/entity"
	"github.com/jhoicas/Inventario-suministros/pkg/config"
)

// newTestPool levanta PostgreSQL en un contenedor, aplica las migraciones y devuelve el pool.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("inventario_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "no se pudo iniciar el contenedor de PostgreSQL")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	m, err := NewMigrator(pool, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())
	return pool
}

type fixture struct {
	pool   *pgxpool.Pool
	ledger *inventory.Ledger
	userID string
	catID  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	pool := newTestPool(t)

	now := time.Now().UTC()
	user := &entity.User{ID: uuid.NewString(), Username: "operador1", PasswordHash: "x", Role: entity.RoleOperador,
		Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewUserRepository(pool).Create(ctx, user))

	cat := &entity.Category{ID: uuid.NewString(), Name: "Tóner", CreatedAt: now}
	require.NoError(t, NewCategoryRepository(pool).Create(ctx, cat))

	runner, err := NewTxRunner(pool, "serializable")
	require.NoError(t, err)
	ledger := inventory.NewLedger(runner, NewReportRepository(pool), zerolog.Nop(),
		inventory.LedgerConfig{ConflictRetryBackoff: 20 * time.Millisecond})

	return &fixture{pool: pool, ledger: ledger, userID: user.ID, catID: cat.ID}
}

func (f *fixture) product(t *testing.T, name string, initial int64) string {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{ID: uuid.NewString(), Name: name, CategoryID: f.catID, InitialStock: initial,
		Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewProductRepository(f.pool).Create(context.Background(), p))
	return p.ID
}

func (f *fixture) stock(t *testing.T, id string) int64 {
	t.Helper()
	p, err := NewProductRepository(f.pool).GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

// Dos salidas concurrentes de 6 sobre stock 10: exactamente una se confirma y el stock final es 4.
func TestIntegration_SalidasConcurrentes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.product(t, "Tóner 85A", 10)

	start := make(chan struct{})
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for n := range errs {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			<-start
			_, errs[n] = f.ledger.RecordIssue(ctx, inventory.IssueInput{
				UserID: f.userID, ProductID: id, Quantity: 6, Destination: "Contabilidad",
			})
		}(n)
	}
	close(start)
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrConflict), "error: %v", err)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, int64(4), f.stock(t, id))

	rec, err := f.ledger.ReconcileStock(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, rec.Discrepancy)
}

func TestIntegration_CicloCompletoYConciliacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.product(t, "Tinta T544 Negro", 0)

	r, err := f.ledger.RecordReceipt(ctx, inventory.ReceiptInput{
		UserID: f.userID, ProductID: id, Quantity: 20, UnitPrice: decimal.RequireFromString("3.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "70", r.Total.String())

	i, err := f.ledger.RecordIssue(ctx, inventory.IssueInput{UserID: f.userID, ProductID: id, Quantity: 15})
	require.NoError(t, err)
	assert.Equal(t, int64(5), f.stock(t, id))

	_, err = f.ledger.RecordIssue(ctx, inventory.IssueInput{UserID: f.userID, ProductID: id, Quantity: 6})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = f.ledger.EditReceipt(ctx, r.ID, inventory.ReceiptEdit{UserID: f.userID, Quantity: 10, UnitPrice: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "el ingreso ya fue consumido")

	require.NoError(t, f.ledger.DeleteIssue(ctx, i.ID, f.userID))
	assert.Equal(t, int64(20), f.stock(t, id))

	stored, err := NewReceiptRepository(f.pool).GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, stored.UnitPrice.Equal(decimal.RequireFromString("3.5")))
	assert.Equal(t, f.userID, stored.CreatedBy)

	rec, err := f.ledger.ReconcileStock(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(20), rec.TotalReceipts)
	assert.Equal(t, int64(0), rec.TotalIssues)
	assert.Zero(t, rec.Discrepancy)

	logs, err := NewAuditLogRepository(f.pool).List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
	assert.Equal(t, "operador1", logs[0].Username)
}

func TestIntegration_ProductoConMovimientosNoSeElimina(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.product(t, "Cinta Epson", 2)

	_, err := f.ledger.RecordIssue(ctx, inventory.IssueInput{UserID: f.userID, ProductID: id, Quantity: 1})
	require.NoError(t, err)

	repo := NewProductRepository(f.pool)
	assert.ErrorIs(t, repo.Delete(ctx, id), domain.ErrInUse)
	require.NoError(t, repo.SetActive(ctx, id, false))

	_, err = f.ledger.RecordIssue(ctx, inventory.IssueInput{UserID: f.userID, ProductID: id, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	unused := f.product(t, "Sin uso", 0)
	require.NoError(t, repo.Delete(ctx, unused))
	assert.ErrorIs(t, repo.Delete(ctx, unused), domain.ErrNotFound)
}

func TestIntegration_VarianteNuevaSeReutiliza(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := &inventory.ProductDraft{Name: "Tóner 12A", CategoryID: f.catID, Brand: "HP", Color: "Negro"}

	r1, err := f.ledger.RecordReceipt(ctx, inventory.ReceiptInput{UserID: f.userID, NewProduct: draft, Quantity: 3})
	require.NoError(t, err)

	draft2 := *draft
	draft2.Name = "TÓNER 12A"
	r2, err := f.ledger.RecordReceipt(ctx, inventory.ReceiptInput{UserID: f.userID, NewProduct: &draft2, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, r1.ProductID, r2.ProductID)
	assert.Equal(t, int64(5), f.stock(t, r1.ProductID))
}

func TestIntegration_ReportesYResumen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.product(t, "A", 0)
	f.product(t, "B", 8)

	_, err := f.ledger.RecordReceipt(ctx, inventory.ReceiptInput{UserID: f.userID, ProductID: a, Quantity: 4,
		OccurredOn: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	_, err = f.ledger.RecordIssue(ctx, inventory.IssueInput{UserID: f.userID, ProductID: a, Quantity: 4})
	require.NoError(t, err)

	reports := NewReportRepository(f.pool)
	s, err := reports.GetStockSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), s.TotalProducts)
	assert.Equal(t, int64(1), s.OutOfStockProducts)
	assert.Equal(t, int64(1), s.LowStockProducts)
	assert.Equal(t, int64(8), s.TotalStock)

	last, err := reports.GetLastReceiptDate(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "2026-05-02", last.Format("2006-01-02"))

	top, err := reports.GetTopIssued(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, int64(4), top[0].TotalIssued)

	all, err := reports.ReconcileAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
