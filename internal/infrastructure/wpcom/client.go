// Package wpcom implements the WordPress.com RestClients: notifications,
// blogging prompts, dashboard cards and the raw request proxy.
package wpcom

import (
	"context"
	"net/url"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/network"
)

// Transport is the part of network.Client used by the WordPress.com clients
type Transport interface {
	GetWPCom(ctx context.Context, namespace, path string, params url.Values) ([]byte, error)
	PostWPCom(ctx context.Context, namespace, path string, body any) ([]byte, error)
	GetWPAPI(ctx context.Context, site *shared.Site, path string, params url.Values) ([]byte, error)
	Do(ctx context.Context, req network.Request) ([]byte, error)
	BaseURL() string
}

var _ Transport = (*network.Client)(nil)
