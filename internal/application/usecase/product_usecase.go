package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-suministros/internal/application/dto"
	"github.com/jhoicas/Inventario-suministros/internal/domain"
	"github.com/jhoicas/Inventario-suministros/internal/domain/entity"
	"github.com/jhoicas/Inventario-suministros/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de productos. El stock solo se mueve con ingresos y salidas.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories}
}

// Create crea un producto. InitialStock es el saldo de apertura y también el stock corriente inicial.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.Name) == "" || in.InitialStock < 0 || in.StockMinimum < 0 {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: categoría", domain.ErrNotFound)
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Brand:        strings.TrimSpace(in.Brand),
		PrinterModel: strings.TrimSpace(in.PrinterModel),
		Color:        strings.TrimSpace(in.Color),
		Unit:         strings.TrimSpace(in.Unit),
		InitialStock: in.InitialStock,
		Stock:        in.InitialStock,
		StockMinimum: in.StockMinimum,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// Update actualiza los datos descriptivos y el stock mínimo.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.CategoryID != nil && *in.CategoryID != product.CategoryID {
		category, err := uc.categories.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, fmt.Errorf("%w: categoría", domain.ErrNotFound)
		}
		product.CategoryID, product.CategoryName = category.ID, category.Name
	}
	if in.Brand != nil {
		product.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.PrinterModel != nil {
		product.PrinterModel = strings.TrimSpace(*in.PrinterModel)
	}
	if in.Color != nil {
		product.Color = strings.TrimSpace(*in.Color)
	}
	if in.Unit != nil {
		product.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.StockMinimum != nil {
		if *in.StockMinimum < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.StockMinimum = *in.StockMinimum
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List lista productos con filtros. Limit 0 aplica el tamaño de página por defecto.
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	page := dto.PageRequest{Limit: filter.Limit, Offset: filter.Offset}
	page.DefaultPage()
	filter.Limit, filter.Offset = page.Limit, page.Offset

	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// ListInactive todos los productos dados de baja (reporte de inactivos, sin paginar).
func (uc *ProductUseCase) ListInactive(ctx context.Context) ([]*entity.Product, error) {
	inactive := false
	return uc.repo.List(ctx, repository.ProductFilter{Active: &inactive})
}

// Deactivate baja lógica: el producto deja de aceptar salidas pero conserva su historial.
func (uc *ProductUseCase) Deactivate(ctx context.Context, id string) error {
	return uc.repo.SetActive(ctx, id, false)
}

// Activate revierte la baja lógica.
func (uc *ProductUseCase) Activate(ctx context.Context, id string) error {
	return uc.repo.SetActive(ctx, id, true)
}

// Delete elimina un producto solo si no tiene ingresos ni salidas (domain.ErrInUse en caso contrario).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// ToProductResponse mapea la entidad a la respuesta HTTP.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		Brand:        p.Brand,
		PrinterModel: p.PrinterModel,
		Color:        p.Color,
		Unit:         p.Unit,
		InitialStock: p.InitialStock,
		Stock:        p.Stock,
		StockMinimum: p.StockMinimum,
		InAlert:      p.InAlert(),
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
