// Package system holds site plugin, system status report and tax class models.
package system

import (
	"context"
	"html"
	"strings"
)

// Well known plugins
const (
	PluginWooCommerce         = "woocommerce/woocommerce"
	PluginWooCommerceServices = "woocommerce-services/woocommerce-services"
	PluginWooCommercePayments = "woocommerce-payments/woocommerce-payments"
	PluginStripeGateway       = "woocommerce-gateway-stripe/woocommerce-gateway-stripe"
	PluginShipmentTracking    = "woocommerce-shipment-tracking/woocommerce-shipment-tracking"
)

// SitePlugin is a plugin installed on a site
type SitePlugin struct {
	ID          int64  `json:"id"`
	LocalSiteID int64  `json:"local_site_id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Version     string `json:"version"`
	URL         string `json:"url"`
	IsActive    bool   `json:"is_active"`
}

// Slug returns the plugin directory, e.g. "woocommerce" for "woocommerce/woocommerce"
func (p SitePlugin) Slug() string {
	slug, _, _ := strings.Cut(p.Name, "/")
	return slug
}

// NewSitePlugin builds a plugin row from a system status entry. Display names
// arrive HTML escaped.
func NewSitePlugin(localSiteID int64, plugin, name, version, url string, active bool) SitePlugin {
	return SitePlugin{
		LocalSiteID: localSiteID,
		Name:        plugin,
		DisplayName: html.UnescapeString(name),
		Version:     version,
		URL:         url,
		IsActive:    active,
	}
}

// StatusReport is the WooCommerce system status report. Sections are kept as raw JSON.
type StatusReport struct {
	SiteID        int64  `json:"site_id"`
	Environment   string `json:"environment,omitempty"`
	Database      string `json:"database,omitempty"`
	ActivePlugins string `json:"active_plugins,omitempty"`
	Theme         string `json:"theme,omitempty"`
	Settings      string `json:"settings,omitempty"`
	Security      string `json:"security,omitempty"`
	Pages         string `json:"pages,omitempty"`
}

// TaxClass is a WooCommerce tax class
type TaxClass struct {
	LocalSiteID int64  `json:"local_site_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
}

// PluginRepository persists site plugins
type PluginRepository interface {
	Replace(ctx context.Context, localSiteID int64, plugins []SitePlugin) error
	FindForSite(ctx context.Context, localSiteID int64) ([]SitePlugin, error)
	FindByName(ctx context.Context, localSiteID int64, name string) (*SitePlugin, error)
}

// TaxClassRepository persists tax classes
type TaxClassRepository interface {
	Replace(ctx context.Context, localSiteID int64, classes []TaxClass) error
	FindForSite(ctx context.Context, localSiteID int64) ([]TaxClass, error)
}
