package rest

import (
	"context"
	"net/http"
	"testing"

	"retroFinder/business/catalog"
	"retroFinder/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCatalogRepo struct {
	items map[string]domain.CatalogItem
}

func (r *memCatalogRepo) Create(ctx context.Context, item *domain.CatalogItem) error {
	r.items[item.ID] = *item
	return nil
}

func (r *memCatalogRepo) FindByID(ctx context.Context, id string) (domain.CatalogItem, error) {
	it, ok := r.items[id]
	if !ok {
		return domain.CatalogItem{}, catalog.ErrItemNotFound
	}
	return it, nil
}

func (r *memCatalogRepo) FindAll(ctx context.Context) ([]domain.CatalogItem, error) {
	out := make([]domain.CatalogItem, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	return out, nil
}

func (r *memCatalogRepo) Update(ctx context.Context, item *domain.CatalogItem) error {
	r.items[item.ID] = *item
	return nil
}

func (r *memCatalogRepo) Delete(ctx context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func newCatalogServer() *echo.Echo {
	repo := &memCatalogRepo{items: map[string]domain.CatalogItem{}}
	h := NewCatalogHandler(catalog.NewCatalogService(repo))

	e := echo.New()
	g := e.Group("/api/v1/catalog")
	g.GET("", h.GetAllItems)
	g.GET("/:id", h.GetItemByID)
	g.POST("", h.CreateItem)
	g.PUT("/:id", h.UpdateItem)
	g.DELETE("/:id", h.DeleteItem)
	return e
}

func TestCatalogHandler_CRUD(t *testing.T) {
	e := newCatalogServer()

	body := `{"id":"SNES-001","name":"Chrono Trigger","genre":"RPG","platform":"SNES","price":120,"image":"/ct.webp"}`
	rec := do(e, http.MethodPost, "/api/v1/catalog", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Chrono Trigger")

	rec = do(e, http.MethodPost, "/api/v1/catalog", body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/catalog/SNES-001", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "SNES-001")

	rec = do(e, http.MethodPut, "/api/v1/catalog/SNES-001",
		`{"name":"Chrono Trigger","genre":"RPG","platform":"SNES","price":120,"sale_price":99,"image":"/ct.webp"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"sale_price":99`)

	rec = do(e, http.MethodGet, "/api/v1/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "SNES-001")

	rec = do(e, http.MethodDelete, "/api/v1/catalog/SNES-001", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/catalog/SNES-001", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogHandler_Validation(t *testing.T) {
	e := newCatalogServer()

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing name", `{"id":"a","platform":"SNES","price":10}`, http.StatusBadRequest},
		{"zero price", `{"id":"a","name":"x","platform":"SNES","price":0}`, http.StatusBadRequest},
		{"negative sale", `{"id":"a","name":"x","platform":"SNES","price":10,"sale_price":-1}`, http.StatusBadRequest},
		{"missing id", `{"name":"x","platform":"SNES","price":10}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, "/api/v1/catalog", tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}

	rec := do(e, http.MethodPut, "/api/v1/catalog/missing", `{"name":"x","platform":"SNES","price":10}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
