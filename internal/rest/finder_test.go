package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"retroFinder/business/finder"
	"retroFinder/domain"
	"retroFinder/internal/repository/memory"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCatalog []domain.CatalogItem

func (s staticCatalog) FindAll(ctx context.Context) ([]domain.CatalogItem, error) {
	return s, nil
}

func testCatalog(n int) staticCatalog {
	genres := []string{"RPG", "Actie", "Puzzel", "Platformer"}
	platforms := []string{"SNES", "Switch", "Nintendo 64"}

	items := make(staticCatalog, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, domain.CatalogItem{
			ID:       fmt.Sprintf("item-%02d", i),
			Name:     fmt.Sprintf("Game %d", i),
			Genre:    genres[i%len(genres)],
			Platform: platforms[i%len(platforms)],
			Price:    float64(10 + 5*i),
			Image:    fmt.Sprintf("/images/%d.webp", i),
		})
	}
	return items
}

func newFinderServer(catalog staticCatalog) *echo.Echo {
	cfg := finder.DefaultConfig()
	cfg.Jitter = false
	cfg.Seed = 99

	svc := finder.NewFinderService(catalog, memory.NewSessionRepository(time.Hour), nil, nil, "default", cfg)
	h := NewFinderHandler(svc)

	e := echo.New()
	g := e.Group("/api/v1/finder")
	g.POST("/sessions", h.StartSession)
	g.GET("/sessions/:id", h.GetSession)
	g.POST("/sessions/:id/choices", h.Choose)
	g.POST("/sessions/:id/restart", h.Restart)
	g.DELETE("/sessions/:id", h.Abandon)
	e.GET("/api/v1/admin/finder/sessions/:id/ranking", h.DebugRanking)
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// findObject walks decoded JSON depth first and returns the first object
// holding key.
func findObject(v interface{}, key string) (map[string]interface{}, bool) {
	switch t := v.(type) {
	case map[string]interface{}:
		if _, ok := t[key]; ok {
			return t, true
		}
		for _, child := range t {
			if obj, ok := findObject(child, key); ok {
				return obj, true
			}
		}
	case []interface{}:
		for _, child := range t {
			if obj, ok := findObject(child, key); ok {
				return obj, true
			}
		}
	}
	return nil, false
}

// sessionField reads key from the session object in the response body.
func sessionField(t *testing.T, rec *httptest.ResponseRecorder, key string) string {
	t.Helper()

	var body interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	anchor := "session_id"
	if key == "pair_id" {
		anchor = "pair_id"
	}

	obj, ok := findObject(body, anchor)
	require.True(t, ok, "missing %q in %s", anchor, rec.Body.String())

	s, ok := obj[key].(string)
	require.True(t, ok, "missing %q in %s", key, rec.Body.String())
	return s
}

func TestFinderHandler_PlaySession(t *testing.T) {
	e := newFinderServer(testCatalog(16))

	rec := do(e, http.MethodPost, "/api/v1/finder/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	sessionID := sessionField(t, rec, "session_id")
	pairID := sessionField(t, rec, "pair_id")

	for i := 0; i < finder.DefaultConfig().TotalRounds; i++ {
		body := fmt.Sprintf(`{"pair_id":%q,"side":"left"}`, pairID)
		rec = do(e, http.MethodPost, "/api/v1/finder/sessions/"+sessionID+"/choices", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		if i < finder.DefaultConfig().TotalRounds-1 {
			pairID = sessionField(t, rec, "pair_id")
		}
	}

	assert.Contains(t, rec.Body.String(), `"done":true`)
	assert.Contains(t, rec.Body.String(), `"primary"`)
	assert.Equal(t, string(finder.EndRoundsCompleted), sessionField(t, rec, "end_reason"))

	rec = do(e, http.MethodGet, "/api/v1/finder/sessions/"+sessionID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(finder.StatusCompleted), sessionField(t, rec, "status"))

	rec = do(e, http.MethodPost, "/api/v1/finder/sessions/"+sessionID+"/choices", `{"pair_id":"x","side":"left"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/admin/finder/sessions/"+sessionID+"/ranking", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"final_score"`)

	rec = do(e, http.MethodPost, "/api/v1/finder/sessions/"+sessionID+"/restart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(finder.StatusInRound), sessionField(t, rec, "status"))
}

func TestFinderHandler_ChooseValidation(t *testing.T) {
	e := newFinderServer(testCatalog(8))

	rec := do(e, http.MethodPost, "/api/v1/finder/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	sessionID := sessionField(t, rec, "session_id")
	pairID := sessionField(t, rec, "pair_id")

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"pair_id":`, http.StatusBadRequest},
		{"missing pair", `{"side":"left"}`, http.StatusBadRequest},
		{"bad side", fmt.Sprintf(`{"pair_id":%q,"side":"up"}`, pairID), http.StatusBadRequest},
		{"stale pair", `{"pair_id":"0000000000000000","side":"left"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, "/api/v1/finder/sessions/"+sessionID+"/choices", tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}

	// the session still accepts the real pair
	rec = do(e, http.MethodPost, "/api/v1/finder/sessions/"+sessionID+"/choices",
		fmt.Sprintf(`{"pair_id":%q,"side":"right"}`, pairID))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFinderHandler_NotFound(t *testing.T) {
	e := newFinderServer(testCatalog(8))

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/api/v1/finder/sessions/nope", "").Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodPost, "/api/v1/finder/sessions/nope/restart", "").Code)
	assert.Equal(t, http.StatusNotFound,
		do(e, http.MethodPost, "/api/v1/finder/sessions/nope/choices", `{"pair_id":"p","side":"left"}`).Code)
}

func TestFinderHandler_Abandon(t *testing.T) {
	e := newFinderServer(testCatalog(8))

	rec := do(e, http.MethodPost, "/api/v1/finder/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	sessionID := sessionField(t, rec, "session_id")

	rec = do(e, http.MethodDelete, "/api/v1/finder/sessions/"+sessionID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/api/v1/finder/sessions/"+sessionID, "").Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodDelete, "/api/v1/finder/sessions/"+sessionID, "").Code)
}

func TestFinderHandler_InsufficientCatalog(t *testing.T) {
	e := newFinderServer(testCatalog(1))

	rec := do(e, http.MethodPost, "/api/v1/finder/sessions", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
