// Package coupon holds the WooCommerce coupon models, their related product and
// category rows, the usage report and the update request.
package coupon

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/product"
)

const (
	// DefaultPageSize asks for every coupon of a typical store at once
	DefaultPageSize = 100
	DefaultPage     = 1
)

// Discount types
const (
	DiscountPercent      = "percent"
	DiscountFixedCart    = "fixed_cart"
	DiscountFixedProduct = "fixed_product"
)

// Coupon is a WooCommerce coupon cached for a site
type Coupon struct {
	ID                       int64            `json:"id"`
	LocalSiteID              int64            `json:"local_site_id"`
	Code                     string           `json:"code"`
	DiscountType             string           `json:"discount_type"`
	Description              string           `json:"description"`
	Amount                   decimal.Decimal  `json:"amount"`
	MinimumAmount            *decimal.Decimal `json:"minimum_amount,omitempty"`
	MaximumAmount            *decimal.Decimal `json:"maximum_amount,omitempty"`
	DateCreated              string           `json:"date_created"`
	DateModified             string           `json:"date_modified"`
	DateExpires              string           `json:"date_expires"`
	UsageCount               int              `json:"usage_count"`
	UsageLimit               *int             `json:"usage_limit,omitempty"`
	UsageLimitPerUser        *int             `json:"usage_limit_per_user,omitempty"`
	LimitUsageToXItems       *int             `json:"limit_usage_to_x_items,omitempty"`
	IsIndividualUse          bool             `json:"individual_use"`
	IsFreeShipping           bool             `json:"free_shipping"`
	AreSaleItemsExcluded     bool             `json:"exclude_sale_items"`
	ProductIDs               []int64          `json:"product_ids,omitempty"`
	ExcludedProductIDs       []int64          `json:"excluded_product_ids,omitempty"`
	CategoryIDs              []int64          `json:"product_categories,omitempty"`
	ExcludedCategoryIDs      []int64          `json:"excluded_product_categories,omitempty"`
	RestrictedEmailAddresses []string         `json:"email_restrictions,omitempty"`
}

// Email is a billing email the coupon is restricted to
type Email struct {
	LocalSiteID int64  `json:"local_site_id"`
	CouponID    int64  `json:"coupon_id"`
	Email       string `json:"email"`
}

// DataModel is a coupon with its related rows resolved
type DataModel struct {
	Coupon             Coupon             `json:"coupon"`
	Products           []product.Product  `json:"products"`
	ExcludedProducts   []product.Product  `json:"excluded_products"`
	Categories         []product.Category `json:"categories"`
	ExcludedCategories []product.Category `json:"excluded_categories"`
	RestrictedEmails   []string           `json:"restricted_emails"`
}

// SearchResult is the outcome of a coupon search
type SearchResult struct {
	Coupons     []DataModel `json:"coupons"`
	CanLoadMore bool        `json:"can_load_more"`
}

// Report summarizes how a coupon was used
type Report struct {
	CouponID    int64           `json:"coupon_id"`
	Amount      decimal.Decimal `json:"amount"`
	OrdersCount int             `json:"orders_count"`
}

// UpdateRequest holds the fields to change on a coupon. Nil fields are left untouched.
type UpdateRequest struct {
	Code                     *string          `json:"code,omitempty" validate:"omitempty,min=1"`
	Amount                   *decimal.Decimal `json:"amount,omitempty"`
	DiscountType             *string          `json:"discount_type,omitempty" validate:"omitempty,oneof=percent fixed_cart fixed_product"`
	Description              *string          `json:"description,omitempty"`
	ExpiryDate               *string          `json:"date_expires,omitempty"`
	MinimumAmount            *decimal.Decimal `json:"minimum_amount,omitempty"`
	MaximumAmount            *decimal.Decimal `json:"maximum_amount,omitempty"`
	ProductIDs               []int64          `json:"product_ids,omitempty"`
	ExcludedProductIDs       []int64          `json:"excluded_product_ids,omitempty"`
	CategoryIDs              []int64          `json:"product_categories,omitempty"`
	ExcludedCategoryIDs      []int64          `json:"excluded_product_categories,omitempty"`
	IsShippingFree           *bool            `json:"free_shipping,omitempty"`
	IsForIndividualUse       *bool            `json:"individual_use,omitempty"`
	AreSaleItemsExcluded     *bool            `json:"exclude_sale_items,omitempty"`
	UsageLimit               *int             `json:"usage_limit,omitempty" validate:"omitempty,gte=0"`
	UsageLimitPerUser        *int             `json:"usage_limit_per_user,omitempty" validate:"omitempty,gte=0"`
	LimitUsageToXItems       *int             `json:"limit_usage_to_x_items,omitempty" validate:"omitempty,gte=0"`
	RestrictedEmailAddresses []string         `json:"email_restrictions,omitempty" validate:"omitempty,dive,email"`
}

// Repository persists coupons and their join rows
type Repository interface {
	Upsert(ctx context.Context, c *Coupon) error
	FindByID(ctx context.Context, localSiteID, couponID int64) (*Coupon, error)
	FindForSite(ctx context.Context, localSiteID int64) ([]Coupon, error)
	FindByIDs(ctx context.Context, localSiteID int64, couponIDs []int64) ([]Coupon, error)
	Delete(ctx context.Context, localSiteID, couponID int64) error
	DeleteAll(ctx context.Context, localSiteID int64) (int64, error)
	UpsertProductLink(ctx context.Context, localSiteID, couponID, productID int64, excluded bool) error
	UpsertCategoryLink(ctx context.Context, localSiteID, couponID, categoryID int64, excluded bool) error
	UpsertEmail(ctx context.Context, email Email) error
	FindEmails(ctx context.Context, localSiteID, couponID int64) ([]Email, error)
}
