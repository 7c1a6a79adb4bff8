package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-suministros/internal/domain"
	"github.com/jhoicas/Inventario-suministros/internal/domain/entity"
	"github.com/jhoicas/Inventario-suministros/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productSelect = `
		SELECT p.id, p.name, p.category_id, c.name, p.brand, p.printer_model, p.color, p.unit,
		       p.initial_stock, p.stock, p.stock_minimum, p.active, p.created_at, p.updated_at
		FROM products p
		JOIN categories c ON c.id = p.category_id`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.CategoryID, &p.CategoryName, &p.Brand, &p.PrinterModel, &p.Color, &p.Unit,
		&p.InitialStock, &p.Stock, &p.StockMinimum, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. El stock corriente arranca en el stock inicial.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, category_id, brand, printer_model, color, unit,
		                      initial_stock, stock, stock_minimum, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.CategoryID, p.Brand, p.PrinterModel, p.Color, p.Unit,
		p.InitialStock, p.StockMinimum, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return fmt.Errorf("%w: categoría", domain.ErrNotFound)
		}
		return mapStoreError(fmt.Errorf("insert product: %w", err))
	}
	p.Stock = p.InitialStock
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapStoreError(fmt.Errorf("get product: %w", err))
	}
	return p, nil
}

// GetForUpdate obtiene el producto y bloquea su fila hasta el fin de la tx (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1 FOR UPDATE OF p`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapStoreError(fmt.Errorf("get product for update: %w", err))
	}
	return p, nil
}

// FindByVariant busca un producto por nombre, categoría, marca, modelo y color sin distinguir mayúsculas.
// Usa las mismas expresiones que el índice único ux_products_variant.
func (r *ProductRepo) FindByVariant(ctx context.Context, key entity.VariantKey) (*entity.Product, error) {
	k := key.Normalize()
	query := productSelect + `
		WHERE lower(btrim(p.name)) = $1 AND p.category_id = $2 AND lower(btrim(p.brand)) = $3
		  AND lower(btrim(p.printer_model)) = $4 AND lower(btrim(p.color)) = $5`
	p, err := scanProduct(r.q.QueryRow(ctx, query, k.Name, k.CategoryID, k.Brand, k.PrinterModel, k.Color))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapStoreError(fmt.Errorf("find product by variant: %w", err))
	}
	return p, nil
}

// Update actualiza los campos descriptivos y el stock mínimo. No toca stock ni initial_stock.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, category_id = $3, brand = $4, printer_model = $5, color = $6, unit = $7,
		       stock_minimum = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.CategoryID, p.Brand, p.PrinterModel, p.Color, p.Unit, p.StockMinimum, p.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return fmt.Errorf("%w: categoría", domain.ErrNotFound)
		}
		return mapStoreError(fmt.Errorf("update product: %w", err))
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive activa o desactiva (baja lógica) el producto.
func (r *ProductRepo) SetActive(ctx context.Context, id string, active bool) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return mapStoreError(fmt.Errorf("set product active: %w", err))
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStock aplica stock = stock + delta solo si el resultado no es negativo y devuelve el saldo nuevo.
// Sin fila afectada el producto existe (el llamador lo bloqueó) pero el saldo no alcanza.
func (r *ProductRepo) AdjustStock(ctx context.Context, id string, delta int64) (int64, error) {
	query := `
		UPDATE products SET stock = stock + $2, updated_at = now()
		WHERE id = $1 AND stock + $2 >= 0
		RETURNING stock`
	var stock int64
	if err := r.q.QueryRow(ctx, query, id, delta).Scan(&stock); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isCheckViolation(err) {
			return 0, domain.ErrInsufficientStock
		}
		return 0, mapStoreError(fmt.Errorf("adjust stock: %w", err))
	}
	return stock, nil
}

// List lista productos con filtros opcionales (activo, categoría, texto). Limit 0 = sin límite.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var w whereBuilder
	if f.Active != nil {
		w.add("p.active = $%d", *f.Active)
	}
	if f.CategoryID != "" {
		w.add("p.category_id = $%d", f.CategoryID)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		w.add("(p.name ILIKE $%[1]d OR p.brand ILIKE $%[1]d OR p.printer_model ILIKE $%[1]d)", "%"+q+"%")
	}
	query := productSelect + w.sql() + ` ORDER BY c.name, p.name` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapStoreError(fmt.Errorf("list products: %w", err))
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, mapStoreError(fmt.Errorf("scan product: %w", err))
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto sin movimientos. Con ingresos o salidas asociados la FK lo impide (ErrInUse).
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return mapStoreError(fmt.Errorf("delete product: %w", err))
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
