// Package woocommerce implements the WooCommerce RestClients. Every call goes
// through the Jetpack tunnel of the site and is decoded into domain models.
package woocommerce

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/network"
	"go.uber.org/zap"
)

// wp-json namespaces
const (
	nsV3        = "wc/v3"
	nsV2        = "wc/v2"
	nsAnalytics = "wc-analytics"
)

// Transport is the part of network.Client used by the RestClients
type Transport interface {
	Tunnel(ctx context.Context, siteID int64, method, wpAPIPath string, params url.Values, body any) ([]byte, error)
}

// Client sends WooCommerce requests for a site
type Client struct {
	transport Transport
	logger    *zap.Logger
}

// NewClient creates a WooCommerce client on top of the transport
func NewClient(transport Transport, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{transport: transport, logger: logger}
}

// call performs a request and decodes the unwrapped body into out (when non-nil)
func (c *Client) call(ctx context.Context, site shared.Site, method, path string, params url.Values, body, out any) error {
	raw, err := c.transport.Tunnel(ctx, site.SiteID, method, path, params, body)
	if err != nil {
		c.logger.Debug("woocommerce request failed",
			zap.Int64("site_id", site.SiteID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return err
	}
	if out == nil {
		return nil
	}
	return network.Decode(raw, out)
}

// raw performs a request and returns the unwrapped body
func (c *Client) raw(ctx context.Context, site shared.Site, method, path string, params url.Values) ([]byte, error) {
	return c.transport.Tunnel(ctx, site.SiteID, method, path, params, nil)
}

func route(namespace string, segments ...string) string {
	return namespace + "/" + strings.Join(segments, "/")
}

// ParseDecimal parses a WooCommerce money string, returning zero on failure
func ParseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseOptionalDecimal returns nil for empty amounts
func parseOptionalDecimal(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// gmtDate marks a *_gmt date as UTC
func gmtDate(s string) string {
	if s == "" || strings.HasSuffix(s, "Z") {
		return s
	}
	return s + "Z"
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = formatID(id)
	}
	return strings.Join(parts, ",")
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
