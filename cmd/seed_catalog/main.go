// seed_catalog carga el catálogo inicial de suministros desde un CSV.
//
// Columnas (con encabezado): tipo;nombre;marca;modelo;color;unidad;stock_inicial;stock_minimo
//
// Uso: go run ./cmd/seed_catalog [-latin1] [-sep ';'] catalogo.csv
// -latin1 decodifica archivos ISO-8859-1 (exportados desde Excel en español).
// Las variantes que ya existen se omiten.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Inventario-suministros/internal/application/dto"
	"github.com/jhoicas/Inventario-suministros/internal/application/usecase"
	"github.com/jhoicas/Inventario-suministros/internal/domain"
	"github.com/jhoicas/Inventario-suministros/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-suministros/pkg/config"
	"github.com/jhoicas/Inventario-suministros/pkg/logger"
)

type catalogRow struct {
	line         int
	category     string
	name         string
	brand        string
	printerModel string
	color        string
	unit         string
	initialStock int64
	stockMinimum int64
}

func main() {
	latin1 := flag.Bool("latin1", false, "El archivo está en ISO-8859-1")
	sep := flag.String("sep", ";", "Separador de columnas")
	flag.Parse()

	if flag.NArg() != 1 || len([]rune(*sep)) != 1 {
		fmt.Fprintln(os.Stderr, "Uso: seed_catalog [-latin1] [-sep ';'] catalogo.csv")
		os.Exit(1)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := parseCatalog(f, *latin1, []rune(*sep)[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed_catalog"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	categoryRepo := postgres.NewCategoryRepository(pool)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	productUC := usecase.NewProductUseCase(postgres.NewProductRepository(pool), categoryRepo)

	categories, err := categoryUC.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listar tipos de producto")
	}
	categoryIDs := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryIDs[strings.ToLower(c.Name)] = c.ID
	}

	var created, skipped int
	for _, r := range rows {
		key := strings.ToLower(r.category)
		categoryID, ok := categoryIDs[key]
		if !ok {
			c, err := categoryUC.Create(ctx, dto.CreateCategoryRequest{Name: r.category})
			if err != nil {
				log.Fatal().Err(err).Int("line", r.line).Str("category", r.category).Msg("crear tipo de producto")
			}
			categoryID = c.ID
			categoryIDs[key] = categoryID
		}
		_, err := productUC.Create(ctx, dto.CreateProductRequest{
			Name:         r.name,
			CategoryID:   categoryID,
			Brand:        r.brand,
			PrinterModel: r.printerModel,
			Color:        r.color,
			Unit:         r.unit,
			InitialStock: r.initialStock,
			StockMinimum: r.stockMinimum,
		})
		if errors.Is(err, domain.ErrDuplicate) {
			skipped++
			continue
		}
		if err != nil {
			log.Fatal().Err(err).Int("line", r.line).Str("product", r.name).Msg("crear producto")
		}
		created++
	}
	log.Info().Int("created", created).Int("skipped", skipped).Msg("catálogo cargado")
}

// parseCatalog lee el CSV completo y valida cada fila antes de tocar la base.
func parseCatalog(in io.Reader, latin1 bool, sep rune) ([]catalogRow, error) {
	if latin1 {
		in = transform.NewReader(in, charmap.ISO8859_1.NewDecoder())
	}
	r := csv.NewReader(in)
	r.Comma = sep
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("archivo vacío")
	}

	var rows []catalogRow
	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) < 8 {
			return nil, fmt.Errorf("línea %d: se esperaban 8 columnas, hay %d", line, len(rec))
		}
		field := func(n int) string { return strings.TrimSpace(rec[n]) }
		row := catalogRow{
			line:         line,
			category:     field(0),
			name:         field(1),
			brand:        field(2),
			printerModel: field(3),
			color:        field(4),
			unit:         field(5),
		}
		if row.category == "" || row.name == "" {
			return nil, fmt.Errorf("línea %d: tipo y nombre son requeridos", line)
		}
		if row.initialStock, err = parseQuantity(field(6)); err != nil {
			return nil, fmt.Errorf("línea %d: stock_inicial: %w", line, err)
		}
		if row.stockMinimum, err = parseQuantity(field(7)); err != nil {
			return nil, fmt.Errorf("línea %d: stock_minimo: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseQuantity(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q no es un entero", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%d es negativo", n)
	}
	return n, nil
}
