package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-suministros/internal/domain"
	"github.com/jhoicas/Inventario-suministros/internal/domain/entity"
	"github.com/jhoicas/Inventario-suministros/internal/domain/inventory"
	"github.com/jhoicas/Inventario-suministros/internal/domain/repository"
)

// LedgerConfig parámetros del Ledger.
type LedgerConfig struct {
	// ConflictRetryBackoff espera antes del único reintento tras un conflicto de serialización.
	ConflictRetryBackoff time.Duration
}

// Ledger mantiene el stock de cada producto consistente con su historial de ingresos y salidas.
// Toda mutación del stock pasa por aquí: cada operación bloquea la fila del producto (SELECT FOR UPDATE),
// aplica el delta con un UPDATE condicional y persiste el movimiento y la bitácora en la misma transacción.
type Ledger struct {
	txRunner     TxRunner
	reportRepo   repository.ReportRepository
	log          zerolog.Logger
	retryBackoff time.Duration
	now          func() time.Time
}

// NewLedger construye el Ledger.
func NewLedger(txRunner TxRunner, reportRepo repository.ReportRepository, log zerolog.Logger, cfg LedgerConfig) *Ledger {
	return &Ledger{
		txRunner:     txRunner,
		reportRepo:   reportRepo,
		log:          log.With().Str("component", "ledger").Logger(),
		retryBackoff: cfg.ConflictRetryBackoff,
		now:          time.Now,
	}
}

// ProductDraft datos de una variante nueva que llega por primera vez con un ingreso.
type ProductDraft struct {
	Name         string
	CategoryID   string
	Brand        string
	PrinterModel string
	Color        string
	Unit         string
	StockMinimum int64
}

// ReceiptInput entrada para RecordReceipt. Se indica ProductID o NewProduct (no ambos).
type ReceiptInput struct {
	UserID      string
	ProductID   string
	NewProduct  *ProductDraft
	Quantity    int64
	UnitPrice   decimal.Decimal
	OccurredOn  time.Time // cero = hoy
	Responsible string
	Notes       string
}

// ReceiptEdit nuevos valores de un ingreso existente. El producto no se puede cambiar.
type ReceiptEdit struct {
	UserID      string
	Quantity    int64
	UnitPrice   decimal.Decimal
	OccurredOn  time.Time
	Responsible string
	Notes       string
}

// IssueInput entrada para RecordIssue.
type IssueInput struct {
	UserID      string
	ProductID   string
	Quantity    int64
	OccurredOn  time.Time // cero = hoy
	Destination string
	Responsible string
	Notes       string
}

// IssueEdit nuevos valores de una salida existente. El producto no se puede cambiar.
type IssueEdit struct {
	UserID      string
	Quantity    int64
	OccurredOn  time.Time
	Destination string
	Responsible string
	Notes       string
}

// RecordReceipt registra un ingreso y suma la cantidad al stock del producto (misma transacción).
func (l *Ledger) RecordReceipt(ctx context.Context, in ReceiptInput) (*entity.Receipt, error) {
	if err := validateReceiptInput(in); err != nil {
		return nil, err
	}
	var out *entity.Receipt
	err := l.withRetry(ctx, "record_receipt", func() error {
		return l.txRunner.Run(ctx, func(tx TxRepos) error {
			product, err := l.resolveReceiptProduct(ctx, tx, in)
			if err != nil {
				return err
			}
			now := l.now()
			receipt := &entity.Receipt{
				ID:          uuid.New().String(),
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    in.Quantity,
				UnitPrice:   in.UnitPrice,
				Total:       inventory.ReceiptTotal(in.Quantity, in.UnitPrice),
				OccurredOn:  dateOrToday(in.OccurredOn, now),
				Responsible: strings.TrimSpace(in.Responsible),
				Notes:       strings.TrimSpace(in.Notes),
				CreatedAt:   now,
				CreatedBy:   in.UserID,
				UpdatedAt:   now,
			}
			if err := tx.Receipts.Create(ctx, receipt); err != nil {
				return err
			}
			if _, err := tx.Products.AdjustStock(ctx, product.ID, in.Quantity); err != nil {
				return err
			}
			out = receipt
			return tx.Logs.Create(ctx, l.auditEntry(in.UserID, entity.ActionReceiptCreated, "receipt", receipt.ID,
				fmt.Sprintf("producto=%s cantidad=%d total=%s", product.Name, receipt.Quantity, receipt.Total.StringFixed(2))))
		})
	})
	if err != nil {
		return nil, err
	}
	l.log.Info().Str("receipt_id", out.ID).Str("product_id", out.ProductID).Int64("quantity", out.Quantity).Msg("ingreso registrado")
	return out, nil
}

// resolveReceiptProduct bloquea el producto existente o crea la variante nueva dentro de la transacción.
func (l *Ledger) resolveReceiptProduct(ctx context.Context, tx TxRepos, in ReceiptInput) (*entity.Product, error) {
	if in.ProductID != "" {
		product, err := tx.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		return product, nil
	}

	draft := in.NewProduct
	category, err := tx.Categories.GetByID(ctx, draft.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: categoría", domain.ErrNotFound)
	}
	key := entity.VariantKey{
		Name: draft.Name, CategoryID: draft.CategoryID, Brand: draft.Brand,
		PrinterModel: draft.PrinterModel, Color: draft.Color,
	}
	existing, err := tx.Products.FindByVariant(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		product, err := tx.Products.GetForUpdate(ctx, existing.ID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrConflict
		}
		return product, nil
	}

	now := l.now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(draft.Name),
		CategoryID:   draft.CategoryID,
		CategoryName: category.Name,
		Brand:        strings.TrimSpace(draft.Brand),
		PrinterModel: strings.TrimSpace(draft.PrinterModel),
		Color:        strings.TrimSpace(draft.Color),
		Unit:         strings.TrimSpace(draft.Unit),
		StockMinimum: draft.StockMinimum,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tx.Products.Create(ctx, product); err != nil {
		// Otra transacción creó la misma variante en paralelo: se reintenta y se reutiliza.
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: variante creada concurrentemente", domain.ErrConflict)
		}
		return nil, err
	}
	if err := tx.Logs.Create(ctx, l.auditEntry(in.UserID, entity.ActionProductCreated, "product", product.ID,
		"variante nueva desde ingreso: "+product.Name)); err != nil {
		return nil, err
	}
	return product, nil
}

// RecordIssue registra una salida. Falla con domain.ErrInsufficientStock si la cantidad supera el stock
// del producto al momento de la transacción; en ese caso no se aplica ningún cambio.
func (l *Ledger) RecordIssue(ctx context.Context, in IssueInput) (*entity.Issue, error) {
	if err := validateIssueInput(in); err != nil {
		return nil, err
	}
	var out *entity.Issue
	err := l.withRetry(ctx, "record_issue", func() error {
		return l.txRunner.Run(ctx, func(tx TxRepos) error {
			product, err := tx.Products.GetForUpdate(ctx, in.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if !product.Active {
				return fmt.Errorf("%w: el producto está inactivo", domain.ErrInvalidInput)
			}
			if in.Quantity > product.Stock {
				return domain.ErrInsufficientStock
			}
			now := l.now()
			issue := &entity.Issue{
				ID:          uuid.New().String(),
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    in.Quantity,
				OccurredOn:  dateOrToday(in.OccurredOn, now),
				Destination: strings.TrimSpace(in.Destination),
				Responsible: strings.TrimSpace(in.Responsible),
				Notes:       strings.TrimSpace(in.Notes),
				CreatedAt:   now,
				CreatedBy:   in.UserID,
				UpdatedAt:   now,
			}
			if err := tx.Issues.Create(ctx, issue); err != nil {
				return err
			}
			if _, err := tx.Products.AdjustStock(ctx, product.ID, -in.Quantity); err != nil {
				return err
			}
			out = issue
			return tx.Logs.Create(ctx, l.auditEntry(in.UserID, entity.ActionIssueCreated, "issue", issue.ID,
				fmt.Sprintf("producto=%s cantidad=%d destino=%s", product.Name, issue.Quantity, issue.Destination)))
		})
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			l.log.Info().Str("product_id", in.ProductID).Int64("quantity", in.Quantity).Msg("salida rechazada por stock insuficiente")
		}
		return nil, err
	}
	l.log.Info().Str("issue_id", out.ID).Str("product_id", out.ProductID).Int64("quantity", out.Quantity).Msg("salida registrada")
	return out, nil
}

// EditReceipt actualiza un ingreso y ajusta el stock por la diferencia de cantidad (nueva - anterior).
// Si reducir el ingreso dejara el stock negativo (ya se entregó esa mercadería) falla con ErrInsufficientStock.
func (l *Ledger) EditReceipt(ctx context.Context, receiptID string, in ReceiptEdit) (*entity.Receipt, error) {
	if receiptID == "" || in.UserID == "" || in.Quantity <= 0 || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if !inventory.ValidReceiptAmount(in.Quantity, in.UnitPrice) {
		return nil, errInvalidAmount
	}
	var out *entity.Receipt
	err := l.withRetry(ctx, "edit_receipt", func() error {
		return l.txRunner.Run(ctx, func(tx TxRepos) error {
			receipt, err := tx.Receipts.GetForUpdate(ctx, receiptID)
			if err != nil {
				return err
			}
			if receipt == nil {
				return domain.ErrNotFound
			}
			product, err := tx.Products.GetForUpdate(ctx, receipt.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			oldQty := receipt.Quantity
			delta := inventory.ReceiptDelta(oldQty, in.Quantity)
			if delta != 0 {
				if !inventory.CanApply(product.Stock, delta) {
					return domain.ErrInsufficientStock
				}
				if _, err := tx.Products.AdjustStock(ctx, product.ID, delta); err != nil {
					return err
				}
			}
			now := l.now()
			receipt.Quantity = in.Quantity
			receipt.UnitPrice = in.UnitPrice
			receipt.Total = inventory.ReceiptTotal(in.Quantity, in.UnitPrice)
			if !in.OccurredOn.IsZero() {
				receipt.OccurredOn = dateOrToday(in.OccurredOn, now)
			}
			receipt.Responsible = strings.TrimSpace(in.Responsible)
			receipt.Notes = strings.TrimSpace(in.Notes)
			receipt.UpdatedAt = now
			receipt.ProductName = product.Name
			if err := tx.Receipts.Update(ctx, receipt); err != nil {
				return err
			}
			out = receipt
			return tx.Logs.Create(ctx, l.auditEntry(in.UserID, entity.ActionReceiptUpdated, "receipt", receipt.ID,
				fmt.Sprintf("producto=%s cantidad %d -> %d", product.Name, oldQty, in.Quantity)))
		})
	})
	if err != nil {
		return nil, err
	}
	l.log.Info().Str("receipt_id", out.ID).Int64("quantity", out.Quantity).Msg("ingreso editado")
	return out, nil
}

// DeleteReceipt revierte el ingreso en el stock (stock -= cantidad) y elimina el registro.
func (l *Ledger) DeleteReceipt(ctx context.Context, receiptID, userID string) error {
	if receiptID == "" || userID == "" {
		return domain.ErrInvalidInput
	}
	err := l.withRetry(ctx, "delete_receipt", func() error {
		return l.txRunner.Run(ctx, func(tx TxRepos) error {
			receipt, err := tx.Receipts.GetForUpdate(ctx, receiptID)
			if err != nil {
				return err
			}
			if receipt == nil {
				return domain.ErrNotFound
			}
			product, err := tx.Products.GetForUpdate(ctx, receipt.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if !inventory.CanApply(product.Stock, -receipt.Quantity) {
				return domain.ErrInsufficientStock
			}
			if _, err := tx.Products.AdjustStock(ctx, product.ID, -receipt.Quantity); err != nil {
				return err
			}
			if err := tx.Receipts.Delete(ctx, receipt.ID); err != nil {
				return err
			}
			return tx.Logs.Create(ctx, l.auditEntry(userID, entity.ActionReceiptDeleted, "receipt", receipt.ID,
				fmt.Sprintf("producto=%s cantidad=%d revertida", product.Name, receipt.Quantity)))
		})
	})
	if err != nil {
		return err
	}
	l.log.Info().Str("receipt_id", receiptID).Msg("ingreso eliminado")
	return nil
}

// EditIssue actualiza una salida. La nueva cantidad se valida contra el saldo que resulta de revertir
// la cantidad anterior: nueva <= stock + anterior.
func (l *Ledger) EditIssue(ctx context.Context, issueID string, in IssueEdit) (*entity.Issue, error) {
	if issueID == "" || in.UserID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.Issue
	err := l.withRetry(ctx, "edit_issue", func() error {
		return l.txRunner.Run(ctx, func(tx TxRepos) error {
			issue, err := tx.Issues.GetForUpdate(ctx, issueID)
			if err != nil {
				return err
			}
			if issue == nil {
				return domain.ErrNotFound
			}
			product, err := tx.Products.GetForUpdate(ctx, issue.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			oldQty := issue.Quantity
			delta := inventory.IssueDelta(oldQty, in.Quantity)
			if delta != 0 {
				if !inventory.CanApply(product.Stock, delta) {
					return domain.ErrInsufficientStock
				}
				if _, err := tx.Products.AdjustStock(ctx, product.ID, delta); err != nil {
					return err
				}
			}
			now := l.now()
			issue.Quantity = in.Quantity
			if !in.OccurredOn.IsZero() {
				issue.OccurredOn = dateOrToday(in.OccurredOn, now)
			}
			issue.Destination = strings.TrimSpace(in.Destination)
			issue.Responsible = strings.TrimSpace(in.Responsible)
			issue.Notes = strings.TrimSpace(in.Notes)
			issue.UpdatedAt = now
			issue.ProductName = product.Name
			if err := tx.Issues.Update(ctx, issue); err != nil {
				return err
			}
			out = issue
			return tx.Logs.Create(ctx, l.auditEntry(in.UserID, entity.ActionIssueUpdated, "issue", issue.ID,
				fmt.Sprintf("producto=%s cantidad %d -> %d", product.Name, oldQty, in.Quantity)))
		})
	})
	if err != nil {
		return nil, err
	}
	l.log.Info().Str("issue_id", out.ID).Int64("quantity", out.Quantity).Msg("salida editada")
	return out, nil
}

// DeleteIssue devuelve la cantidad de la salida al stock (stock += cantidad) y elimina el registro.
func (l *Ledger) DeleteIssue(ctx context.Context, issueID, userID string) error {
	if issueID == "" || userID == "" {
		return domain.ErrInvalidInput
	}
	err := l.withRetry(ctx, "delete_issue", func() error {
		return l.txRunner.Run(ctx, func(tx TxRepos) error {
			issue, err := tx.Issues.GetForUpdate(ctx, issueID)
			if err != nil {
				return err
			}
			if issue == nil {
				return domain.ErrNotFound
			}
			product, err := tx.Products.GetForUpdate(ctx, issue.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if _, err := tx.Products.AdjustStock(ctx, product.ID, issue.Quantity); err != nil {
				return err
			}
			if err := tx.Issues.Delete(ctx, issue.ID); err != nil {
				return err
			}
			return tx.Logs.Create(ctx, l.auditEntry(userID, entity.ActionIssueDeleted, "issue", issue.ID,
				fmt.Sprintf("producto=%s cantidad=%d devuelta", product.Name, issue.Quantity)))
		})
	})
	if err != nil {
		return err
	}
	l.log.Info().Str("issue_id", issueID).Msg("salida eliminada")
	return nil
}

// ReconcileStock recalcula StockInicial + ΣIngresos - ΣSalidas y lo compara con el stock almacenado.
// Es de solo lectura; una discrepancia distinta de cero indica deriva del contador.
func (l *Ledger) ReconcileStock(ctx context.Context, productID string) (*entity.StockReconciliation, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	rec, err := l.reportRepo.Reconcile(ctx, productID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	if rec.Discrepancy != 0 {
		l.log.Warn().Str("product_id", productID).Int64("discrepancy", rec.Discrepancy).Msg("stock con discrepancia")
	}
	return rec, nil
}

// ReconcileAll concilia todos los productos (base del reporte consolidado).
func (l *Ledger) ReconcileAll(ctx context.Context) ([]entity.StockReconciliation, error) {
	list, err := l.reportRepo.ReconcileAll(ctx)
	if err != nil {
		return nil, err
	}
	drift := 0
	for _, r := range list {
		if r.Discrepancy != 0 {
			drift++
		}
	}
	if drift > 0 {
		l.log.Warn().Int("products", drift).Msg("conciliación con discrepancias")
	}
	return list, nil
}

// withRetry ejecuta fn y, ante un conflicto de serialización, la reintenta una sola vez tras el backoff.
func (l *Ledger) withRetry(ctx context.Context, op string, fn func() error) error {
	err := fn()
	if !errors.Is(err, domain.ErrConflict) {
		return err
	}
	l.log.Warn().Err(err).Str("op", op).Dur("backoff", l.retryBackoff).Msg("conflicto de concurrencia, reintentando")
	if l.retryBackoff > 0 {
		timer := time.NewTimer(l.retryBackoff)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return fn()
}

func (l *Ledger) auditEntry(userID, action, entityName, entityID, detail string) *entity.AuditLog {
	return &entity.AuditLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Entity:    entityName,
		EntityID:  entityID,
		Detail:    detail,
		CreatedAt: l.now(),
	}
}

var errInvalidAmount = fmt.Errorf("%w: unit_price con máximo %d decimales, menor a 10^12 y total menor a 10^16", domain.ErrInvalidInput, inventory.PriceScale)

func validateReceiptInput(in ReceiptInput) error {
	if in.UserID == "" || in.Quantity <= 0 || in.UnitPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	if !inventory.ValidReceiptAmount(in.Quantity, in.UnitPrice) {
		return errInvalidAmount
	}
	hasProduct := in.ProductID != ""
	hasDraft := in.NewProduct != nil
	if hasProduct == hasDraft {
		return fmt.Errorf("%w: indique product_id o new_product", domain.ErrInvalidInput)
	}
	if hasDraft {
		d := in.NewProduct
		if strings.TrimSpace(d.Name) == "" || d.CategoryID == "" || d.StockMinimum < 0 {
			return fmt.Errorf("%w: new_product requiere nombre y categoría", domain.ErrInvalidInput)
		}
	}
	return nil
}

func validateIssueInput(in IssueInput) error {
	if in.UserID == "" || in.ProductID == "" || in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

// dateOrToday trunca a fecha (sin hora); si d es cero usa la fecha de now.
func dateOrToday(d, now time.Time) time.Time {
	if d.IsZero() {
		d = now
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
