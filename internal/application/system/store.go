// Package system implements the WooCommerce site store: the registry of known
// sites, their installed plugins, tax classes and the system status report.
package system

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/system"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/logger"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/woocommerce"
	"go.uber.org/zap"
)

// RestClient is the remote side of the system store
type RestClient interface {
	FetchSitePlugins(ctx context.Context, site shared.Site) ([]system.SitePlugin, error)
	FetchSSR(ctx context.Context, site shared.Site) (*system.StatusReport, error)
	FetchTaxClassList(ctx context.Context, site shared.Site) ([]system.TaxClass, error)
}

var _ RestClient = (*woocommerce.SystemRestClient)(nil)

// Store is the WooCommerce site store
type Store struct {
	client     RestClient
	sites      shared.SiteRepository
	plugins    system.PluginRepository
	taxClasses system.TaxClassRepository
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewStore creates a system store
func NewStore(client RestClient, sites shared.SiteRepository, plugins system.PluginRepository, taxClasses system.TaxClassRepository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		client:     client,
		sites:      sites,
		plugins:    plugins,
		taxClasses: taxClasses,
		validate:   validator.New(),
		logger:     logger.Named("woocommerce_store"),
	}
}

// RegisterSite validates and stores a site. LocalID is assigned on first save.
func (s *Store) RegisterSite(ctx context.Context, site *shared.Site) error {
	if err := s.validate.Struct(site); err != nil {
		return shared.NewDomainError("INVALID_SITE", err.Error())
	}
	return s.sites.Save(ctx, site)
}

// GetSites returns every known site
func (s *Store) GetSites(ctx context.Context) ([]shared.Site, error) {
	return s.sites.FindAll(ctx)
}

// GetSiteByLocalID returns a known site, or nil
func (s *Store) GetSiteByLocalID(ctx context.Context, localID int64) (*shared.Site, error) {
	site, err := s.sites.FindByLocalID(ctx, localID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return site, err
}

// GetWooCommerceSites returns the sites WooCommerce calls can be made for,
// both Jetpack connected and WordPress.com hosted
func (s *Store) GetWooCommerceSites(ctx context.Context) ([]shared.Site, error) {
	return s.sites.FindWooCommerceSites(ctx)
}

// FetchSitePlugins fetches the plugins of a site and replaces the cached ones
func (s *Store) FetchSitePlugins(ctx context.Context, site shared.Site) ([]system.SitePlugin, error) {
	logger.WithLogger(ctx, s.logger).Debug("fetching site plugins", zap.Int64("site_id", site.LocalID))

	plugins, err := s.client.FetchSitePlugins(ctx, site)
	if err != nil {
		s.logger.Warn("fetch site plugins failed", zap.Int64("site_id", site.LocalID), zap.Error(err))
		return nil, shared.NewWooError(err)
	}
	if err := s.plugins.Replace(ctx, site.LocalID, plugins); err != nil {
		return nil, err
	}
	return plugins, nil
}

// GetSitePlugins returns the cached plugins of a site
func (s *Store) GetSitePlugins(ctx context.Context, site shared.Site) ([]system.SitePlugin, error) {
	return s.plugins.FindForSite(ctx, site.LocalID)
}

// GetSitePlugin returns one cached plugin by name, or nil
func (s *Store) GetSitePlugin(ctx context.Context, site shared.Site, name string) (*system.SitePlugin, error) {
	plugin, err := s.plugins.FindByName(ctx, site.LocalID, name)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return plugin, err
}

// FetchSSR fetches the system status report. The report is not cached.
func (s *Store) FetchSSR(ctx context.Context, site shared.Site) (*system.StatusReport, error) {
	report, err := s.client.FetchSSR(ctx, site)
	if err != nil {
		s.logger.Warn("fetch system status failed", zap.Int64("site_id", site.LocalID), zap.Error(err))
		return nil, shared.NewWooError(err)
	}
	return report, nil
}

// FetchTaxClassList fetches the tax classes of a site and replaces the cached ones
func (s *Store) FetchTaxClassList(ctx context.Context, site shared.Site) ([]system.TaxClass, error) {
	classes, err := s.client.FetchTaxClassList(ctx, site)
	if err != nil {
		s.logger.Warn("fetch tax classes failed", zap.Int64("site_id", site.LocalID), zap.Error(err))
		return nil, shared.NewWooError(err)
	}
	if err := s.taxClasses.Replace(ctx, site.LocalID, classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// GetTaxClassListForSite returns the cached tax classes of a site
func (s *Store) GetTaxClassListForSite(ctx context.Context, site shared.Site) ([]system.TaxClass, error) {
	return s.taxClasses.FindForSite(ctx, site.LocalID)
}
