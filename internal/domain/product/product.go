// Package product holds the product and product category rows referenced by coupons.
package product

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product is a WooCommerce product cached for a site
type Product struct {
	LocalSiteID int64           `json:"local_site_id"`
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	Price       decimal.Decimal `json:"price"`
	Permalink   string          `json:"permalink"`
}

// Category is a WooCommerce product category cached for a site
type Category struct {
	LocalSiteID int64  `json:"local_site_id"`
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Parent      int64  `json:"parent"`
}

// Repository persists products
type Repository interface {
	Upsert(ctx context.Context, products ...Product) error
	FindByIDs(ctx context.Context, localSiteID int64, ids []int64) ([]Product, error)
	FindCouponProducts(ctx context.Context, localSiteID, couponID int64, excluded bool) ([]Product, error)
	DeleteAll(ctx context.Context, localSiteID int64) (int64, error)
}

// CategoryRepository persists product categories
type CategoryRepository interface {
	Upsert(ctx context.Context, categories ...Category) error
	FindByIDs(ctx context.Context, localSiteID int64, ids []int64) ([]Category, error)
	FindCouponCategories(ctx context.Context, localSiteID, couponID int64, excluded bool) ([]Category, error)
	DeleteAll(ctx context.Context, localSiteID int64) (int64, error)
}

// MissingIDs returns the ids that are not present in found, preserving order
func MissingIDs(ids []int64, found []int64) []int64 {
	have := make(map[int64]struct{}, len(found))
	for _, id := range found {
		have[id] = struct{}{}
	}
	var missing []int64
	for _, id := range ids {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
