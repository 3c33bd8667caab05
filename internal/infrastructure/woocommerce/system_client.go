package woocommerce

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/payments"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/system"
)

// SystemPluginDTO is an entry of the system status plugin lists
type SystemPluginDTO struct {
	Plugin  string `json:"plugin"`
	Name    string `json:"name"`
	Version string `json:"version"`
	URL     string `json:"url"`
}

// SystemPluginsDTO is the system status reduced to its plugin lists
type SystemPluginsDTO struct {
	ActivePlugins   []SystemPluginDTO `json:"active_plugins"`
	InactivePlugins []SystemPluginDTO `json:"inactive_plugins"`
}

// TaxClassDTO is an entry of wc/v3/taxes/classes
type TaxClassDTO struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// SystemRestClient calls the system status, tax and in-person payments endpoints
type SystemRestClient struct {
	*Client
}

// NewSystemRestClient creates a system client
func NewSystemRestClient(c *Client) *SystemRestClient {
	return &SystemRestClient{Client: c}
}

// FetchSitePlugins returns the active and inactive plugins of a site
func (c *SystemRestClient) FetchSitePlugins(ctx context.Context, site shared.Site) ([]system.SitePlugin, error) {
	params := url.Values{"_fields": {"active_plugins,inactive_plugins"}}
	var dto SystemPluginsDTO
	if err := c.call(ctx, site, http.MethodGet, route(nsV3, "system_status"), params, nil, &dto); err != nil {
		return nil, err
	}

	plugins := make([]system.SitePlugin, 0, len(dto.ActivePlugins)+len(dto.InactivePlugins))
	for _, p := range dto.ActivePlugins {
		plugins = append(plugins, p.toDomain(site.LocalID, true))
	}
	for _, p := range dto.InactivePlugins {
		plugins = append(plugins, p.toDomain(site.LocalID, false))
	}
	return plugins, nil
}

func (p SystemPluginDTO) toDomain(localSiteID int64, active bool) system.SitePlugin {
	return system.NewSitePlugin(localSiteID, strings.TrimSuffix(p.Plugin, ".php"), p.Name, p.Version, p.URL, active)
}

// FetchSSR fetches the system status report, keeping every section as raw JSON
func (c *SystemRestClient) FetchSSR(ctx context.Context, site shared.Site) (*system.StatusReport, error) {
	body, err := c.raw(ctx, site, http.MethodGet, route(nsV3, "system_status"), nil)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, shared.NewNetworkError(shared.ErrorParseError, "system status is not valid JSON")
	}
	parsed := gjson.ParseBytes(body)
	section := func(name string) string {
		return parsed.Get(name).Raw
	}
	return &system.StatusReport{
		SiteID:        site.SiteID,
		Environment:   section("environment"),
		Database:      section("database"),
		ActivePlugins: section("active_plugins"),
		Theme:         section("theme"),
		Settings:      section("settings"),
		Security:      section("security"),
		Pages:         section("pages"),
	}, nil
}

// FetchTaxClassList fetches the tax classes of a site
func (c *SystemRestClient) FetchTaxClassList(ctx context.Context, site shared.Site) ([]system.TaxClass, error) {
	var dtos []TaxClassDTO
	if err := c.call(ctx, site, http.MethodGet, route(nsV3, "taxes/classes"), nil, nil, &dtos); err != nil {
		return nil, err
	}
	classes := make([]system.TaxClass, 0, len(dtos))
	for _, d := range dtos {
		classes = append(classes, system.TaxClass{LocalSiteID: site.LocalID, Name: d.Name, Slug: d.Slug})
	}
	return classes, nil
}

// FetchStoreLocation fetches the terminal store location registered with the payment gateway
func (c *SystemRestClient) FetchStoreLocation(ctx context.Context, site shared.Site, plugin payments.PluginType) (*payments.TerminalStoreLocation, error) {
	var location payments.TerminalStoreLocation
	if err := c.call(ctx, site, http.MethodGet, plugin.LocationsPath(), nil, nil, &location); err != nil {
		return nil, err
	}
	return &location, nil
}
