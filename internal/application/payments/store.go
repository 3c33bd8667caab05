// Package payments implements the in-person payments store.
package payments

import (
	"context"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/payments"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/logger"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/woocommerce"
	"go.uber.org/zap"
)

// RestClient is the remote side of the payments store
type RestClient interface {
	FetchStoreLocation(ctx context.Context, site shared.Site, plugin payments.PluginType) (*payments.TerminalStoreLocation, error)
}

var _ RestClient = (*woocommerce.SystemRestClient)(nil)

// Store is the in-person payments store
type Store struct {
	client RestClient
	logger *zap.Logger
}

// NewStore creates a payments store
func NewStore(client RestClient, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{client: client, logger: logger.Named("payments_store")}
}

// FetchStoreLocationForSite returns the terminal location the payment gateway
// registered for the store. Failures are returned as *payments.StoreLocationError.
func (s *Store) FetchStoreLocationForSite(ctx context.Context, site shared.Site, plugin payments.PluginType) (*payments.TerminalStoreLocation, error) {
	logger.WithLogger(ctx, s.logger).Debug("fetching terminal store location",
		zap.Int64("site_id", site.LocalID), zap.String("plugin", string(plugin)))

	location, err := s.client.FetchStoreLocation(ctx, site, plugin)
	if err != nil {
		s.logger.Warn("fetch store location failed", zap.Int64("site_id", site.LocalID), zap.Error(err))
		return nil, payments.StoreLocationErrorFromNetwork(err)
	}
	return location, nil
}
