package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/logger"
	"github.com/wordpress-mobile/fluxc-go/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// ---- Request ID Tests ----

func TestRequestID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	var fromCtx string
	engine.GET("/", func(c *gin.Context) {
		fromCtx = logger.GetRequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	t.Run("generates an id", func(t *testing.T) {
		w := serve(engine, http.MethodGet, "/", "", nil)
		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, fromCtx)
	})

	t.Run("keeps the caller id", func(t *testing.T) {
		w := serve(engine, http.MethodGet, "/", "", http.Header{RequestIDHeader: {"abc-123"}})
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})

	t.Run("replaces oversized ids", func(t *testing.T) {
		w := serve(engine, http.MethodGet, "/", "", http.Header{RequestIDHeader: {strings.Repeat("x", 200)}})
		assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	})
}

// ---- Logger Tests ----

func TestLogger_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	engine := gin.New()
	engine.Use(RequestID(), Logger(zap.New(core)))
	engine.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	engine.GET("/broken", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	serve(engine, http.MethodGet, "/ok?x=1", "", nil)
	serve(engine, http.MethodGet, "/missing", "", nil)
	serve(engine, http.MethodGet, "/broken", "", nil)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, "x=1", entries[0].ContextMap()["query"])
	assert.Equal(t, "/ok", entries[0].ContextMap()["route"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
	assert.NotEmpty(t, entries[2].ContextMap()["request_id"])
}

// ---- Recovery Tests ----

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	engine := gin.New()
	engine.Use(RequestID(), Recovery(zap.New(core)))
	engine.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := serve(engine, http.MethodGet, "/panic", "", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
	assert.Equal(t, w.Header().Get(RequestIDHeader), resp.Error.RequestID)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

// ---- Body Limit Tests ----

func TestBodyLimit(t *testing.T) {
	engine := gin.New()
	engine.Use(BodyLimit(8))
	engine.POST("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, serve(engine, http.MethodPost, "/", "{}", nil).Code)

	w := serve(engine, http.MethodPost, "/", `{"too":"large"}`, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrCodeRequestTooLarge)
}

// ---- Tracing Tests ----

func TestTracing_AddsSiteAttributes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	engine := gin.New()
	engine.Use(RequestID(), Tracing(TracingConfig{ServiceName: "fluxc-test", Enabled: true, TracerProvider: tp}), SpanAttributes())
	engine.GET("/sites/:site_id/orders", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(engine, http.MethodGet, "/sites/7/orders", "", nil)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Name(), "/sites/:site_id/orders")
	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "7", attrs["fluxc.site_id"])
	assert.NotEmpty(t, attrs["request_id"])
}

func TestTracing_Disabled(t *testing.T) {
	engine := gin.New()
	engine.Use(Tracing(TracingConfig{}))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/", "", nil).Code)
}

// ---- Metrics Tests ----

func TestHTTPMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	mw, err := HTTPMetrics(mp.Meter("test"))
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(mw)
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	serve(engine, http.MethodGet, "/health", "", nil)
	serve(engine, http.MethodGet, "/nowhere", "", nil)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	var total int64
	for _, m := range rm.ScopeMetrics[0].Metrics {
		if m.Name != MetricHTTPRequests {
			continue
		}
		sum := m.Data.(metricdata.Sum[int64])
		for _, dp := range sum.DataPoints {
			total += dp.Value
			route, _ := dp.Attributes.Value("http.route")
			assert.Contains(t, []string{"/health", "unmatched"}, route.AsString())
		}
	}
	assert.Equal(t, int64(2), total)
}

func TestHTTPMetrics_NilMeter(t *testing.T) {
	mw, err := HTTPMetrics(nil)
	require.NoError(t, err)
	engine := gin.New()
	engine.Use(mw)
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/", "", nil).Code)
}

func TestStatusGroup(t *testing.T) {
	assert.Equal(t, "2xx", StatusGroup(204))
	assert.Equal(t, "5xx", StatusGroup(502))
	assert.Equal(t, "unknown", StatusGroup(42))
}
