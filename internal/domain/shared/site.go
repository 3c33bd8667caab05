package shared

import (
	"context"
	"strings"
)

// Site is a WordPress site known to the local cache
type Site struct {
	LocalID            int64  `json:"local_id"`
	SiteID             int64  `json:"site_id" validate:"required,gt=0"`
	Name               string `json:"name"`
	URL                string `json:"url" validate:"required,url"`
	IsWPCom            bool   `json:"is_wpcom"`
	IsJetpackConnected bool   `json:"is_jetpack_connected"`
	HasWooCommerce     bool   `json:"has_woocommerce"`
}

// IsWooCommerceSite reports whether WooCommerce calls can be made for this site.
// Jetpack connected sites and WordPress.com Atomic sites both qualify.
func (s *Site) IsWooCommerceSite() bool {
	return s.HasWooCommerce
}

// BaseURL returns the site URL without a trailing slash
func (s *Site) BaseURL() string {
	return strings.TrimRight(s.URL, "/")
}

// SiteRepository persists sites
type SiteRepository interface {
	Save(ctx context.Context, site *Site) error
	FindByLocalID(ctx context.Context, localID int64) (*Site, error)
	FindBySiteID(ctx context.Context, siteID int64) (*Site, error)
	FindAll(ctx context.Context) ([]Site, error)
	FindWooCommerceSites(ctx context.Context) ([]Site, error)
}
