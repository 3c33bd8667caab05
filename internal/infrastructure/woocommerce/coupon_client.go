package woocommerce

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/coupon"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

// CouponDTO is a coupon as returned by wc/v3/coupons
type CouponDTO struct {
	ID                        int64    `json:"id"`
	Code                      string   `json:"code"`
	Amount                    string   `json:"amount"`
	DateCreatedGMT            string   `json:"date_created_gmt"`
	DateModifiedGMT           string   `json:"date_modified_gmt"`
	DiscountType              string   `json:"discount_type"`
	Description               string   `json:"description"`
	DateExpiresGMT            *string  `json:"date_expires_gmt"`
	UsageCount                int      `json:"usage_count"`
	IndividualUse             bool     `json:"individual_use"`
	ProductIDs                []int64  `json:"product_ids"`
	ExcludedProductIDs        []int64  `json:"excluded_product_ids"`
	UsageLimit                *int     `json:"usage_limit"`
	UsageLimitPerUser         *int     `json:"usage_limit_per_user"`
	LimitUsageToXItems        *int     `json:"limit_usage_to_x_items"`
	FreeShipping              bool     `json:"free_shipping"`
	ProductCategories         []int64  `json:"product_categories"`
	ExcludedProductCategories []int64  `json:"excluded_product_categories"`
	ExcludeSaleItems          bool     `json:"exclude_sale_items"`
	MinimumAmount             string   `json:"minimum_amount"`
	MaximumAmount             string   `json:"maximum_amount"`
	EmailRestrictions         []string `json:"email_restrictions"`
}

// ToDomain maps the DTO onto a coupon of the given local site
func (d *CouponDTO) ToDomain(localSiteID int64) coupon.Coupon {
	c := coupon.Coupon{
		ID:                       d.ID,
		LocalSiteID:              localSiteID,
		Code:                     d.Code,
		DiscountType:             d.DiscountType,
		Description:              d.Description,
		Amount:                   ParseDecimal(d.Amount),
		MinimumAmount:            parseOptionalDecimal(d.MinimumAmount),
		MaximumAmount:            parseOptionalDecimal(d.MaximumAmount),
		DateCreated:              gmtDate(d.DateCreatedGMT),
		DateModified:             gmtDate(d.DateModifiedGMT),
		UsageCount:               d.UsageCount,
		UsageLimit:               d.UsageLimit,
		UsageLimitPerUser:        d.UsageLimitPerUser,
		LimitUsageToXItems:       d.LimitUsageToXItems,
		IsIndividualUse:          d.IndividualUse,
		IsFreeShipping:           d.FreeShipping,
		AreSaleItemsExcluded:     d.ExcludeSaleItems,
		ProductIDs:               d.ProductIDs,
		ExcludedProductIDs:       d.ExcludedProductIDs,
		CategoryIDs:              d.ProductCategories,
		ExcludedCategoryIDs:      d.ExcludedProductCategories,
		RestrictedEmailAddresses: d.EmailRestrictions,
	}
	if d.DateExpiresGMT != nil {
		c.DateExpires = gmtDate(*d.DateExpiresGMT)
	}
	return c
}

// CouponReportDTO is an entry of wc-analytics/reports/coupons
type CouponReportDTO struct {
	CouponID    int64           `json:"coupon_id"`
	Amount      decimal.Decimal `json:"amount"`
	OrdersCount int             `json:"orders_count"`
}

// CouponRestClient calls the WooCommerce coupon endpoints
type CouponRestClient struct {
	*Client
}

// NewCouponRestClient creates a coupon client
func NewCouponRestClient(c *Client) *CouponRestClient {
	return &CouponRestClient{Client: c}
}

func toCoupons(localSiteID int64, dtos []CouponDTO) []coupon.Coupon {
	out := make([]coupon.Coupon, 0, len(dtos))
	for i := range dtos {
		out = append(out, dtos[i].ToDomain(localSiteID))
	}
	return out
}

// FetchCoupons fetches a page of coupons, optionally filtered by a search string
func (c *CouponRestClient) FetchCoupons(ctx context.Context, site shared.Site, page, pageSize int, search string) ([]coupon.Coupon, error) {
	params := url.Values{
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(pageSize)},
	}
	if search != "" {
		params.Set("search", search)
	}
	var dtos []CouponDTO
	if err := c.call(ctx, site, http.MethodGet, route(nsV3, "coupons/"), params, nil, &dtos); err != nil {
		return nil, err
	}
	return toCoupons(site.LocalID, dtos), nil
}

// FetchCoupon fetches a single coupon
func (c *CouponRestClient) FetchCoupon(ctx context.Context, site shared.Site, couponID int64) (*coupon.Coupon, error) {
	var dto CouponDTO
	if err := c.call(ctx, site, http.MethodGet, route(nsV3, "coupons", formatID(couponID)), nil, nil, &dto); err != nil {
		return nil, err
	}
	cp := dto.ToDomain(site.LocalID)
	return &cp, nil
}

// DeleteCoupon trashes a coupon, or deletes it permanently when trash is false
func (c *CouponRestClient) DeleteCoupon(ctx context.Context, site shared.Site, couponID int64, trash bool) error {
	params := url.Values{"force": {strconv.FormatBool(!trash)}}
	return c.call(ctx, site, http.MethodDelete, route(nsV3, "coupons", formatID(couponID)), params, nil, nil)
}

// FetchCouponReport fetches the usage report of a coupon for orders created after the given time
func (c *CouponRestClient) FetchCouponReport(ctx context.Context, site shared.Site, couponID int64, after time.Time) (*coupon.Report, error) {
	params := url.Values{
		"after":   {after.UTC().Format("2006-01-02T15:04:05")},
		"coupons": {formatID(couponID)},
	}
	var dtos []CouponReportDTO
	if err := c.call(ctx, site, http.MethodGet, route(nsAnalytics, "reports/coupons"), params, nil, &dtos); err != nil {
		return nil, err
	}
	report := &coupon.Report{CouponID: couponID, Amount: decimal.Zero}
	for _, d := range dtos {
		if d.CouponID == couponID {
			report.Amount = d.Amount
			report.OrdersCount = d.OrdersCount
		}
	}
	return report, nil
}

// UpdateCoupon sends the changed fields and returns the updated coupon
func (c *CouponRestClient) UpdateCoupon(ctx context.Context, site shared.Site, couponID int64, req coupon.UpdateRequest) (*coupon.Coupon, error) {
	var dto CouponDTO
	if err := c.call(ctx, site, http.MethodPut, route(nsV3, "coupons", formatID(couponID)), nil, req, &dto); err != nil {
		return nil, err
	}
	cp := dto.ToDomain(site.LocalID)
	return &cp, nil
}
