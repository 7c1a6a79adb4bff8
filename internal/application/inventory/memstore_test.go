package inventory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Inventario-suministros/internal/domain"
	"github.com/jhoicas/Inventario-suministros/internal/domain/entity"
	"github.com/jhoicas/Inventario-suministros/internal/domain/inventory"
	"github.com/jhoicas/Inventario-suministros/internal/domain/repository"
)

// memStore almacén transaccional en memoria para probar el Ledger.
// Las transacciones se serializan con mu (equivale al bloqueo de fila del producto)
// y un error dentro de fn restaura la foto previa (rollback).
type memStore struct {
	mu         sync.Mutex
	products   map[string]entity.Product
	categories map[string]entity.Category
	receipts   map[string]entity.Receipt
	issues     map[string]entity.Issue
	logs       []entity.AuditLog

	conflicts int   // número de Run que fallarán con ErrConflict antes de ejecutar fn
	failLogs  error // error devuelto por Logs.Create
	runs      int
}

var (
	_ TxRunner                    = (*memStore)(nil)
	_ repository.ReportRepository = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		products:   map[string]entity.Product{},
		categories: map[string]entity.Category{},
		receipts:   map[string]entity.Receipt{},
		issues:     map[string]entity.Issue{},
	}
}

type memSnapshot struct {
	products map[string]entity.Product
	receipts map[string]entity.Receipt
	issues   map[string]entity.Issue
	logs     int
}

func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		products: make(map[string]entity.Product, len(s.products)),
		receipts: make(map[string]entity.Receipt, len(s.receipts)),
		issues:   make(map[string]entity.Issue, len(s.issues)),
		logs:     len(s.logs),
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.receipts {
		snap.receipts[k] = v
	}
	for k, v := range s.issues {
		snap.issues[k] = v
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.products = snap.products
	s.receipts = snap.receipts
	s.issues = snap.issues
	s.logs = s.logs[:snap.logs]
}

func (s *memStore) Run(ctx context.Context, fn func(repos TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs++
	if s.conflicts > 0 {
		s.conflicts--
		return domain.ErrConflict
	}
	snap := s.snapshot()
	err := fn(TxRepos{
		Products:   memProducts{s},
		Categories: memCategories{s},
		Receipts:   memReceipts{s},
		Issues:     memIssues{s},
		Logs:       memLogs{s},
	})
	if err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// addProduct siembra un producto con saldo inicial.
func (s *memStore) addProduct(id string, initial, minimum int64, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[id] = entity.Product{
		ID: id, Name: "Producto " + id, InitialStock: initial, Stock: initial,
		StockMinimum: minimum, Active: active, CreatedAt: time.Now(),
	}
}

func (s *memStore) stock(id string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Stock
}

// ── ReportRepository ─────────────────────────────────────────────────────────

func (s *memStore) Reconcile(_ context.Context, productID string) (*entity.StockReconciliation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok {
		return nil, nil
	}
	rec := s.reconcileLocked(p)
	return &rec, nil
}

func (s *memStore) reconcileLocked(p entity.Product) entity.StockReconciliation {
	var in, out int64
	for _, r := range s.receipts {
		if r.ProductID == p.ID {
			in += r.Quantity
		}
	}
	for _, i := range s.issues {
		if i.ProductID == p.ID {
			out += i.Quantity
		}
	}
	return inventory.Reconcile(&p, in, out)
}

func (s *memStore) ReconcileAll(_ context.Context) ([]entity.StockReconciliation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]entity.StockReconciliation, 0, len(s.products))
	for _, p := range s.products {
		list = append(list, s.reconcileLocked(p))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ProductID < list[j].ProductID })
	return list, nil
}

func (s *memStore) ListAlerts(_ context.Context) ([]*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*entity.Product
	for _, p := range s.products {
		if p.Active && p.InAlert() {
			p := p
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (s *memStore) GetStockSummary(context.Context) (repository.StockSummary, error) {
	return repository.StockSummary{}, nil
}

func (s *memStore) GetLastReceiptDate(context.Context) (*time.Time, error) { return nil, nil }

func (s *memStore) GetTopIssued(context.Context, int) ([]repository.TopIssuedResult, error) {
	return nil, nil
}

// ── repos atados a la "transacción" (el llamador ya tiene s.mu) ───────────────

type memProducts struct{ s *memStore }

func (r memProducts) Create(_ context.Context, p *entity.Product) error {
	for _, existing := range r.s.products {
		if variantOf(existing) == variantOf(*p) {
			return domain.ErrDuplicate
		}
	}
	p.Stock = p.InitialStock
	r.s.products[p.ID] = *p
	return nil
}

func (r memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memProducts) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r memProducts) FindByVariant(_ context.Context, key entity.VariantKey) (*entity.Product, error) {
	for _, p := range r.s.products {
		if variantOf(p) == key.Normalize() {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r memProducts) Update(_ context.Context, p *entity.Product) error {
	cur, ok := r.s.products[p.ID]
	if !ok {
		return nil
	}
	p.Stock = cur.Stock
	r.s.products[p.ID] = *p
	return nil
}

func (r memProducts) SetActive(_ context.Context, id string, active bool) error {
	p := r.s.products[id]
	p.Active = active
	r.s.products[id] = p
	return nil
}

func (r memProducts) AdjustStock(_ context.Context, id string, delta int64) (int64, error) {
	p, ok := r.s.products[id]
	if !ok || p.Stock+delta < 0 {
		return 0, domain.ErrInsufficientStock
	}
	p.Stock += delta
	r.s.products[id] = p
	return p.Stock, nil
}

func (r memProducts) List(context.Context, repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}

func (r memProducts) Delete(_ context.Context, id string) error {
	delete(r.s.products, id)
	return nil
}

func variantOf(p entity.Product) entity.VariantKey {
	return entity.VariantKey{
		Name: p.Name, CategoryID: p.CategoryID, Brand: p.Brand, PrinterModel: p.PrinterModel, Color: p.Color,
	}.Normalize()
}

type memCategories struct{ s *memStore }

func (r memCategories) Create(_ context.Context, c *entity.Category) error {
	r.s.categories[c.ID] = *c
	return nil
}

func (r memCategories) GetByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r memCategories) List(context.Context) ([]*entity.Category, error) { return nil, nil }

type memReceipts struct{ s *memStore }

func (r memReceipts) Create(_ context.Context, rc *entity.Receipt) error {
	r.s.receipts[rc.ID] = *rc
	return nil
}

func (r memReceipts) GetByID(_ context.Context, id string) (*entity.Receipt, error) {
	rc, ok := r.s.receipts[id]
	if !ok {
		return nil, nil
	}
	return &rc, nil
}

func (r memReceipts) GetForUpdate(ctx context.Context, id string) (*entity.Receipt, error) {
	return r.GetByID(ctx, id)
}

func (r memReceipts) Update(_ context.Context, rc *entity.Receipt) error {
	r.s.receipts[rc.ID] = *rc
	return nil
}

func (r memReceipts) Delete(_ context.Context, id string) error {
	delete(r.s.receipts, id)
	return nil
}

func (r memReceipts) List(context.Context, repository.MovementFilter) ([]*entity.Receipt, error) {
	return nil, nil
}

type memIssues struct{ s *memStore }

func (r memIssues) Create(_ context.Context, i *entity.Issue) error {
	r.s.issues[i.ID] = *i
	return nil
}

func (r memIssues) GetByID(_ context.Context, id string) (*entity.Issue, error) {
	i, ok := r.s.issues[id]
	if !ok {
		return nil, nil
	}
	return &i, nil
}

func (r memIssues) GetForUpdate(ctx context.Context, id string) (*entity.Issue, error) {
	return r.GetByID(ctx, id)
}

func (r memIssues) Update(_ context.Context, i *entity.Issue) error {
	r.s.issues[i.ID] = *i
	return nil
}

func (r memIssues) Delete(_ context.Context, id string) error {
	delete(r.s.issues, id)
	return nil
}

func (r memIssues) List(context.Context, repository.MovementFilter) ([]*entity.Issue, error) {
	return nil, nil
}

type memLogs struct{ s *memStore }

func (r memLogs) Create(_ context.Context, l *entity.AuditLog) error {
	if r.s.failLogs != nil {
		return r.s.failLogs
	}
	r.s.logs = append(r.s.logs, *l)
	return nil
}

func (r memLogs) List(context.Context, int, int) ([]*entity.AuditLog, error) { return nil, nil }

func containsAction(logs []entity.AuditLog, action string) bool {
	for _, l := range logs {
		if strings.EqualFold(l.Action, action) {
			return true
		}
	}
	return false
}
