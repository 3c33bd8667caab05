package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/interfaces/http/handler"
	"github.com/wordpress-mobile/fluxc-go/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSites struct{}

func (stubSites) GetSites(context.Context) ([]shared.Site, error) {
	return []shared.Site{{LocalID: 1, SiteID: 10}}, nil
}

func (stubSites) GetSiteByLocalID(context.Context, int64) (*shared.Site, error) {
	return nil, nil
}

func (stubSites) RegisterSite(context.Context, *shared.Site) error {
	return nil
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	group := NewDomainGroup("test", "/test").
		GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") }).
		Use(func(c *gin.Context) { c.Header("X-Group", "test"); c.Next() })
	assert.Equal(t, "test", group.Name())
	assert.Equal(t, "/test", group.Prefix())

	NewRouter(engine).Register(group).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/test/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, "test", w.Header().Get("X-Group"))
}

func TestHandlers_Groups(t *testing.T) {
	assert.Empty(t, Handlers{}.Groups())

	h := Handlers{
		Health: handler.NewHealthHandler(nil, "test"),
		Sites:  handler.NewSiteHandler(stubSites{}),
		Orders: handler.NewOrderHandler(stubSites{}, nil, handler.ActionBus{}),
	}
	names := make([]string, 0)
	for _, g := range h.Groups() {
		names = append(names, g.Name())
	}
	assert.Equal(t, []string{"health", "sites", "orders"}, names)
}

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine(EngineConfig{Tracing: middleware.TracingConfig{Enabled: false}}, Handlers{
		Health: handler.NewHealthHandler(nil, "1.2.3"),
		Sites:  handler.NewSiteHandler(stubSites{}),
		Orders: handler.NewOrderHandler(stubSites{}, nil, handler.ActionBus{}),
	})
	require.NoError(t, err)

	routes := make(map[string]bool)
	for _, route := range engine.Routes() {
		routes[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{
		"GET /api/v1/health",
		"GET /api/v1/sites",
		"POST /api/v1/sites",
		"GET /api/v1/sites/:site_id/orders",
		"POST /api/v1/sites/:site_id/orders/fetch",
		"GET /api/v1/sites/:site_id/orders/:order_id",
		"PUT /api/v1/sites/:site_id/orders/:order_id/status",
		"GET /api/v1/sites/:site_id/orders/:order_id/notes",
	} {
		assert.True(t, routes[want], want)
	}

	t.Run("health carries a request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		assert.Contains(t, w.Body.String(), `"version":"1.2.3"`)
	})

	t.Run("unknown site", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sites/5/orders", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
	})
}

func TestNewEngine_Swagger(t *testing.T) {
	h := Handlers{Health: handler.NewHealthHandler(nil, "test")}

	t.Run("serves the API document when enabled", func(t *testing.T) {
		engine, err := NewEngine(EngineConfig{Swagger: true}, h)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"title": "FluxC Inspector API"`)
		assert.Contains(t, w.Body.String(), `"/sites/{site_id}/orders/fetch"`)
		assert.Contains(t, w.Body.String(), `"/sites/{site_id}/sync"`)
	})

	t.Run("not routed when disabled", func(t *testing.T) {
		engine, err := NewEngine(EngineConfig{}, h)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
