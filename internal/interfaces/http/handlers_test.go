package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-suministros/internal/application/dto"
	"github.com/jhoicas/Inventario-suministros/internal/application/usecase"
	"github.com/jhoicas/Inventario-suministros/internal/domain"
	"github.com/jhoicas/Inventario-suministros/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Inventario-suministros/pkg/jwt"
)

const handlerTestSecret = "handler-test-secret"

// memCategoryRepo CategoryRepository en memoria.
type memCategoryRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.Category
}

func (r *memCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if strings.EqualFold(existing.Name, c.Name) {
			return domain.ErrDuplicate
		}
	}
	r.byID[c.ID] = c
	return nil
}

func (r *memCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *memCategoryRepo) List(context.Context) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Category, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

func newCategoryTestApp() *fiber.App {
	app := fiber.New()
	app.Use(RequestLogger(zerolog.Nop()))
	h := NewCategoryHandler(usecase.NewCategoryUseCase(&memCategoryRepo{byID: map[string]*entity.Category{}}))
	g := app.Group("/api/categories", AuthMiddleware(handlerTestSecret))
	g.Get("/", h.List)
	g.Post("/", RequireRole(entity.RoleAdmin, entity.RoleOperador), h.Create)
	return app
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(handlerTestSecret, "u1", "ana", role, "test", 5)
	require.NoError(t, err)
	return "Bearer " + tok
}

func postJSON(t *testing.T, app *fiber.App, path, role, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCategoryHandler_CrearYListar(t *testing.T) {
	app := newCategoryTestApp()

	resp := postJSON(t, app, "/api/categories", entity.RoleOperador, `{"name":"Tóner"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(headerRequestID))

	var created dto.CategoryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "Tóner", created.Name)

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set("Authorization", bearer(t, entity.RoleOperador))
	listResp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer listResp.Body.Close()

	var list []dto.CategoryResponse
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	assert.Len(t, list, 1)
}

func TestCategoryHandler_ValidacionYDuplicado(t *testing.T) {
	app := newCategoryTestApp()

	resp := postJSON(t, app, "/api/categories", entity.RoleAdmin, `{"name":""}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var verr dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&verr))
	assert.Equal(t, "VALIDATION", verr.Code)
	assert.Equal(t, "es requerido", verr.Fields["name"])

	bad := postJSON(t, app, "/api/categories", entity.RoleAdmin, `{"name":`)
	defer bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)

	first := postJSON(t, app, "/api/categories", entity.RoleAdmin, `{"name":"Cinta"}`)
	defer first.Body.Close()
	require.Equal(t, http.StatusCreated, first.StatusCode)

	dup := postJSON(t, app, "/api/categories", entity.RoleAdmin, `{"name":"cinta"}`)
	defer dup.Body.Close()
	assert.Equal(t, http.StatusConflict, dup.StatusCode)
}

func TestMovementFilterFromQuery(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		f, err := movementFilterFromQuery(c)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"product_id": f.ProductID,
			"from":       f.From.Format(dto.DateLayout),
			"has_to":     f.To != nil,
			"limit":      f.Limit,
		})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/?product_id=p1&from=2026-01-31&limit=500", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "p1", body["product_id"])
	assert.Equal(t, "2026-01-31", body["from"])
	assert.Equal(t, false, body["has_to"])
	assert.Equal(t, float64(dto.MaxPageLimit), body["limit"])

	bad, err := app.Test(httptest.NewRequest(http.MethodGet, "/?from=31/01/2026", nil), -1)
	require.NoError(t, err)
	defer bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

// Un :id que no es UUID se rechaza con 400 antes de llegar a los casos de uso.
func TestHandlers_IDMalformado(t *testing.T) {
	app := fiber.New()
	app.Use(RequestLogger(zerolog.Nop()))
	inv := NewInventoryHandler(nil, nil)
	products := NewProductHandler(nil, nil)
	api := app.Group("/api", AuthMiddleware(handlerTestSecret))
	api.Get("/receipts/:id", inv.GetReceipt)
	api.Put("/receipts/:id", inv.UpdateReceipt)
	api.Delete("/issues/:id", inv.DeleteIssue)
	api.Get("/products/:id", products.GetByID)
	api.Get("/products/:id/reconciliation", products.Reconciliation)
	api.Patch("/products/:id/deactivate", products.Deactivate)

	cases := []struct{ method, path string }{
		{http.MethodGet, "/api/receipts/abc"},
		{http.MethodPut, "/api/receipts/abc"},
		{http.MethodDelete, "/api/issues/abc"},
		{http.MethodGet, "/api/products/abc"},
		{http.MethodGet, "/api/products/abc/reconciliation"},
		{http.MethodPatch, "/api/products/1234/deactivate"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{}`))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", bearer(t, entity.RoleAdmin))
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, "VALIDATION", body.Code)
		})
	}
}
