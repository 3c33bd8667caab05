// Package network is the HTTP transport shared by the WordPress.com and
// WooCommerce REST clients.
package network

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/config"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/logger"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// API namespaces on public-api.wordpress.com
const (
	RESTv11 = "rest/v1.1"
	WPComV2 = "wpcom/v2"
	RESTv2  = "wp/v2"
)

// Request is a single HTTP call
type Request struct {
	Method string
	URL    string
	Query  url.Values
	Body   any
	// Endpoint is a low-cardinality name used for metrics and spans
	Endpoint string
}

type settings struct {
	BaseURL          string        `validate:"required,url"`
	UserAgent        string        `validate:"required"`
	Timeout          time.Duration `validate:"gt=0"`
	MaxResponseBytes int64         `validate:"gt=0"`
}

// Client performs authenticated requests against WordPress.com
type Client struct {
	baseURL          string
	token            string
	userAgent        string
	maxResponseBytes int64

	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *telemetry.RESTMetrics
	logger     *zap.Logger
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithMetrics records request counters and latency histograms
func WithMetrics(m *telemetry.RESTMetrics) ClientOption {
	return func(c *Client) { c.metrics = m }
}

// WithLimiter replaces the client-side rate limiter
func WithLimiter(l *rate.Limiter) ClientOption {
	return func(c *Client) { c.limiter = l }
}

// NewClient creates a transport from the api section of the configuration
func NewClient(cfg config.APIConfig, log *zap.Logger, opts ...ClientOption) (*Client, error) {
	s := settings{
		BaseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		UserAgent:        cfg.UserAgent,
		Timeout:          cfg.Timeout,
		MaxResponseBytes: cfg.MaxResponseBytes,
	}
	if err := validator.New().Struct(s); err != nil {
		return nil, fmt.Errorf("network: invalid api configuration: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	c := &Client{
		baseURL:          s.BaseURL,
		token:            cfg.AccessToken,
		userAgent:        s.UserAgent,
		maxResponseBytes: s.MaxResponseBytes,
		httpClient:       &http.Client{Timeout: s.Timeout},
		limiter:          rate.NewLimiter(limit, burst),
		logger:           log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the WordPress.com API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WPComURL builds an absolute URL for namespace (e.g. RESTv11) and path
func (c *Client) WPComURL(namespace, path string) string {
	return c.baseURL + "/" + namespace + "/" + strings.TrimLeft(path, "/")
}

// GetWPCom performs a GET against a WordPress.com namespace
func (c *Client) GetWPCom(ctx context.Context, namespace, path string, params url.Values) ([]byte, error) {
	return c.Do(ctx, Request{
		Method:   http.MethodGet,
		URL:      c.WPComURL(namespace, path),
		Query:    params,
		Endpoint: namespace + "/" + endpointName(path),
	})
}

// PostWPCom performs a POST with a JSON body against a WordPress.com namespace
func (c *Client) PostWPCom(ctx context.Context, namespace, path string, body any) ([]byte, error) {
	return c.Do(ctx, Request{
		Method:   http.MethodPost,
		URL:      c.WPComURL(namespace, path),
		Body:     body,
		Endpoint: namespace + "/" + endpointName(path),
	})
}

// GetWPAPI performs a GET against a site's own wp-json API
func (c *Client) GetWPAPI(ctx context.Context, site *shared.Site, path string, params url.Values) ([]byte, error) {
	return c.Do(ctx, Request{
		Method:   http.MethodGet,
		URL:      site.BaseURL() + "/wp-json/" + strings.TrimLeft(path, "/"),
		Query:    params,
		Endpoint: "wp-json/" + endpointName(path),
	})
}

// Do sends req and returns the response body. Every failure is a *shared.NetworkError.
func (c *Client) Do(ctx context.Context, req Request) (body []byte, err error) {
	ctx, span := telemetry.StartSpan(ctx, "HTTP "+req.Method,
		telemetry.WithSpanKind(trace.SpanKindClient),
		telemetry.WithAttribute("http.method", req.Method),
		telemetry.WithAttribute(telemetry.SpanAttrRequestRoute, req.Endpoint),
	)
	start := time.Now()
	status := 0
	defer func() {
		errType := ""
		if ne := shared.AsNetworkError(err); ne != nil {
			errType = string(ne.Type)
			telemetry.SetAttributes(span, telemetry.SpanAttrErrorType, errType)
		}
		telemetry.SetAttributes(span, "http.status_code", status)
		telemetry.EndSpan(span, err)
		c.metrics.Record(ctx, req.Method, req.Endpoint, status, errType, time.Since(start))
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, classifyTransportError(err)
	}

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, shared.WrapNetworkError(shared.ErrorUnknown, err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	body, err = io.ReadAll(io.LimitReader(resp.Body, c.maxResponseBytes))
	if err != nil {
		return nil, classifyTransportError(err)
	}

	logger.L(ctx).Debug("rest request",
		zap.String("method", req.Method),
		zap.String("endpoint", req.Endpoint),
		zap.Int("status", status),
		zap.Duration("elapsed", time.Since(start)),
	)

	if status >= http.StatusBadRequest {
		return nil, classifyHTTPError(status, body)
	}
	return body, nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	var reader io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("network: marshal body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	target := req.URL
	if len(req.Query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("network: create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if reader != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}
	return httpReq, nil
}

// endpointName strips numeric path segments so metrics stay low-cardinality
func endpointName(path string) string {
	path = strings.Trim(path, "/")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p != "" && strings.Trim(p, "0123456789") == "" {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}
