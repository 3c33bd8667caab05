package wpcom

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/network"
)

// ParseRequestURL splits "path?a=b&c=d" into its path and query parameters
func ParseRequestURL(raw string) (string, url.Values) {
	path, query, found := strings.Cut(raw, "?")
	if !found {
		return path, url.Values{}
	}
	params, err := url.ParseQuery(query)
	if err != nil {
		params = url.Values{}
		for _, pair := range strings.Split(query, "&") {
			key, value, _ := strings.Cut(pair, "=")
			if key != "" {
				params.Add(key, value)
			}
		}
	}
	return path, params
}

// ProxyClient performs arbitrary GET requests and returns the raw JSON
type ProxyClient struct {
	transport Transport
}

// NewProxyClient creates a proxy client
func NewProxyClient(transport Transport) *ProxyClient {
	return &ProxyClient{transport: transport}
}

// PerformWPComRequest GETs path (e.g. "/rest/v1.1/me") on WordPress.com
func (c *ProxyClient) PerformWPComRequest(ctx context.Context, path string, params url.Values) ([]byte, error) {
	return c.transport.Do(ctx, network.Request{
		Method:   http.MethodGet,
		URL:      c.transport.BaseURL() + "/" + strings.TrimLeft(path, "/"),
		Query:    params,
		Endpoint: "proxy/wpcom",
	})
}

// PerformWPAPIRequest GETs path on the site's own wp-json API
func (c *ProxyClient) PerformWPAPIRequest(ctx context.Context, site shared.Site, path string, params url.Values) ([]byte, error) {
	return c.transport.GetWPAPI(ctx, &site, path, params)
}
