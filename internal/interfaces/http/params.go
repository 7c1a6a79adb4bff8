package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-suministros/internal/application/dto"
	"github.com/jhoicas/Inventario-suministros/internal/domain"
	"github.com/jhoicas/Inventario-suministros/internal/domain/repository"
)

// pageFromQuery limit/offset con los mismos topes en todos los listados.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", dto.DefaultPageLimit),
		Offset: c.QueryInt("offset", 0),
	}
	page.DefaultPage()
	return page
}

// pathID valida que el parámetro :id sea un UUID antes de llegar a la base de datos.
func pathID(c *fiber.Ctx) (string, error) {
	raw := c.Params("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: id %q no es un UUID", domain.ErrInvalidInput, raw)
	}
	return id.String(), nil
}

// parseDate fecha YYYY-MM-DD; vacío devuelve el tiempo cero.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q, formato %s", domain.ErrInvalidInput, s, dto.DateLayout)
	}
	return t, nil
}

// movementFilterFromQuery product_id, from, to, limit, offset.
func movementFilterFromQuery(c *fiber.Ctx) (repository.MovementFilter, error) {
	page := pageFromQuery(c)
	f := repository.MovementFilter{
		ProductID: strings.TrimSpace(c.Query("product_id")),
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	for _, p := range []struct {
		key string
		dst **time.Time
	}{{"from", &f.From}, {"to", &f.To}} {
		t, err := parseDate(c.Query(p.key))
		if err != nil {
			return f, err
		}
		if !t.IsZero() {
			*p.dst = &t
		}
	}
	return f, nil
}

// optionalBool "true"/"false"; vacío o inválido = nil.
func optionalBool(s string) *bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &b
}
