// Package coupon implements the WooCommerce coupon store. Coupons are cached
// with their product, category and email restrictions; referenced products and
// categories missing from the cache are fetched through the product store.
package coupon

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/coupon"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/product"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/logger"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/telemetry"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/woocommerce"
	"go.uber.org/zap"
)

// reportStart is the lower bound of coupon reports. The analytics endpoint
// treats a zero "after" as unset and falls back to the last month.
var reportStart = time.Unix(1, 0).UTC()

// RestClient is the remote side of the coupon store
type RestClient interface {
	FetchCoupons(ctx context.Context, site shared.Site, page, pageSize int, search string) ([]coupon.Coupon, error)
	FetchCoupon(ctx context.Context, site shared.Site, couponID int64) (*coupon.Coupon, error)
	DeleteCoupon(ctx context.Context, site shared.Site, couponID int64, trash bool) error
	FetchCouponReport(ctx context.Context, site shared.Site, couponID int64, after time.Time) (*coupon.Report, error)
	UpdateCoupon(ctx context.Context, site shared.Site, couponID int64, req coupon.UpdateRequest) (*coupon.Coupon, error)
}

var _ RestClient = (*woocommerce.CouponRestClient)(nil)

// ProductSource resolves the products and categories a coupon refers to
type ProductSource interface {
	FetchProductListSynced(ctx context.Context, site shared.Site, ids []int64) ([]product.Product, error)
	FetchProductCategoryListSynced(ctx context.Context, site shared.Site, ids []int64) ([]product.Category, error)
	GetProductsByIDs(ctx context.Context, site shared.Site, ids []int64) ([]product.Product, error)
	GetCategoriesByIDs(ctx context.Context, site shared.Site, ids []int64) ([]product.Category, error)
	GetCouponProducts(ctx context.Context, site shared.Site, couponID int64, excluded bool) ([]product.Product, error)
	GetCouponCategories(ctx context.Context, site shared.Site, couponID int64, excluded bool) ([]product.Category, error)
}

// Store is the coupon store
type Store struct {
	client   RestClient
	coupons  coupon.Repository
	products ProductSource
	tx       shared.TransactionExecutor
	validate *validator.Validate
	logger   *zap.Logger
}

// NewStore creates a coupon store
func NewStore(client RestClient, coupons coupon.Repository, products ProductSource, tx shared.TransactionExecutor, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		client:   client,
		coupons:  coupons,
		products: products,
		tx:       tx,
		validate: validator.New(),
		logger:   logger.Named("coupon_store"),
	}
}

// FetchCoupons fetches a page of coupons. The first page replaces the site's
// cached coupons. It reports whether another page may exist.
func (s *Store) FetchCoupons(ctx context.Context, site shared.Site, page, pageSize int) (canLoadMore bool, err error) {
	ctx, span := telemetry.StartStoreSpan(ctx, "coupon_store", "fetch_coupons",
		telemetry.WithAttribute("site_id", site.LocalID),
		telemetry.WithAttribute("page", page))
	defer func() { telemetry.EndSpan(span, err) }()

	logger.WithLogger(ctx, s.logger).Debug("fetching coupons",
		zap.Int64("site_id", site.LocalID), zap.Int("page", page), zap.Int("page_size", pageSize))

	coupons, fetchErr := s.client.FetchCoupons(ctx, site, page, pageSize, "")
	if fetchErr != nil {
		s.logger.Warn("fetch coupons failed", zap.Int64("site_id", site.LocalID), zap.Error(fetchErr))
		return false, shared.NewWooError(fetchErr)
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if page == coupon.DefaultPage {
			if _, err := s.coupons.DeleteAll(ctx, site.LocalID); err != nil {
				return err
			}
		}
		for i := range coupons {
			if err := s.addCouponToDatabase(ctx, site, &coupons[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return len(coupons) == pageSize, nil
}

// SearchCoupons searches the remote coupons. Results are cached without
// clearing the coupons already stored.
func (s *Store) SearchCoupons(ctx context.Context, site shared.Site, query string, page, pageSize int) (*coupon.SearchResult, error) {
	logger.WithLogger(ctx, s.logger).Debug("searching coupons",
		zap.Int64("site_id", site.LocalID), zap.String("query", query), zap.Int("page", page))

	coupons, err := s.client.FetchCoupons(ctx, site, page, pageSize, query)
	if err != nil {
		s.logger.Warn("search coupons failed", zap.String("query", query), zap.Error(err))
		return nil, shared.NewWooError(err)
	}

	ids := make([]int64, len(coupons))
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for i := range coupons {
			ids[i] = coupons[i].ID
			if err := s.addCouponToDatabase(ctx, site, &coupons[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cached, err := s.coupons.FindByIDs(ctx, site.LocalID, ids)
	if err != nil {
		return nil, err
	}
	models, err := s.assemble(ctx, site, cached)
	if err != nil {
		return nil, err
	}
	return &coupon.SearchResult{Coupons: models, CanLoadMore: len(coupons) == pageSize}, nil
}

// FetchCoupon fetches and caches a single coupon
func (s *Store) FetchCoupon(ctx context.Context, site shared.Site, couponID int64) error {
	logger.WithLogger(ctx, s.logger).Debug("fetching coupon",
		zap.Int64("site_id", site.LocalID), zap.Int64("coupon_id", couponID))

	c, err := s.client.FetchCoupon(ctx, site, couponID)
	if err != nil {
		s.logger.Warn("fetch coupon failed", zap.Int64("coupon_id", couponID), zap.Error(err))
		return shared.NewWooError(err)
	}
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.addCouponToDatabase(ctx, site, c)
	})
}

// DeleteCoupon deletes a coupon remotely, moving it to the trash unless trash
// is false, and removes it from the cache
func (s *Store) DeleteCoupon(ctx context.Context, site shared.Site, couponID int64, trash bool) error {
	if err := s.client.DeleteCoupon(ctx, site, couponID, trash); err != nil {
		s.logger.Warn("delete coupon failed", zap.Int64("coupon_id", couponID), zap.Error(err))
		return shared.NewWooError(err)
	}
	return s.coupons.Delete(ctx, site.LocalID, couponID)
}

// FetchCouponReport returns the usage of a coupon over the store's lifetime
func (s *Store) FetchCouponReport(ctx context.Context, site shared.Site, couponID int64) (*coupon.Report, error) {
	report, err := s.client.FetchCouponReport(ctx, site, couponID, reportStart)
	if err != nil {
		s.logger.Warn("fetch coupon report failed", zap.Int64("coupon_id", couponID), zap.Error(err))
		return nil, shared.NewWooError(err)
	}
	return report, nil
}

// UpdateCoupon changes a coupon remotely and caches the result
func (s *Store) UpdateCoupon(ctx context.Context, couponID int64, site shared.Site, req coupon.UpdateRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return &shared.WooError{Type: shared.WooErrorInvalidParam, Original: shared.ErrorUnknown, Message: err.Error()}
	}
	updated, err := s.client.UpdateCoupon(ctx, site, couponID, req)
	if err != nil {
		s.logger.Warn("update coupon failed", zap.Int64("coupon_id", couponID), zap.Error(err))
		return shared.NewWooError(err)
	}
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.addCouponToDatabase(ctx, site, updated)
	})
}

// addCouponToDatabase replaces a coupon and its restrictions. Products and
// categories it refers to are fetched first when they are not cached.
func (s *Store) addCouponToDatabase(ctx context.Context, site shared.Site, c *coupon.Coupon) error {
	c.LocalSiteID = site.LocalID
	if err := s.coupons.Delete(ctx, site.LocalID, c.ID); err != nil {
		return err
	}
	if err := s.coupons.Upsert(ctx, c); err != nil {
		return err
	}

	productIDs := append(append([]int64{}, c.ProductIDs...), c.ExcludedProductIDs...)
	if err := s.fetchMissingProducts(ctx, site, productIDs); err != nil {
		s.logger.Warn("fetch coupon products failed", zap.Int64("coupon_id", c.ID), zap.Error(err))
	}
	categoryIDs := append(append([]int64{}, c.CategoryIDs...), c.ExcludedCategoryIDs...)
	if err := s.fetchMissingCategories(ctx, site, categoryIDs); err != nil {
		s.logger.Warn("fetch coupon categories failed", zap.Int64("coupon_id", c.ID), zap.Error(err))
	}

	links := []struct {
		ids      []int64
		excluded bool
		upsert   func(context.Context, int64, int64, int64, bool) error
	}{
		{c.ProductIDs, false, s.coupons.UpsertProductLink},
		{c.ExcludedProductIDs, true, s.coupons.UpsertProductLink},
		{c.CategoryIDs, false, s.coupons.UpsertCategoryLink},
		{c.ExcludedCategoryIDs, true, s.coupons.UpsertCategoryLink},
	}
	for _, link := range links {
		for _, id := range link.ids {
			if err := link.upsert(ctx, site.LocalID, c.ID, id, link.excluded); err != nil {
				return err
			}
		}
	}
	for _, email := range c.RestrictedEmailAddresses {
		if err := s.coupons.UpsertEmail(ctx, coupon.Email{LocalSiteID: site.LocalID, CouponID: c.ID, Email: email}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) fetchMissingProducts(ctx context.Context, site shared.Site, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	cached, err := s.products.GetProductsByIDs(ctx, site, ids)
	if err != nil {
		return err
	}
	found := make([]int64, len(cached))
	for i, p := range cached {
		found[i] = p.ID
	}
	if missing := product.MissingIDs(ids, found); len(missing) > 0 {
		_, err = s.products.FetchProductListSynced(ctx, site, missing)
	}
	return err
}

func (s *Store) fetchMissingCategories(ctx context.Context, site shared.Site, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	cached, err := s.products.GetCategoriesByIDs(ctx, site, ids)
	if err != nil {
		return err
	}
	found := make([]int64, len(cached))
	for i, c := range cached {
		found[i] = c.ID
	}
	if missing := product.MissingIDs(ids, found); len(missing) > 0 {
		_, err = s.products.FetchProductCategoryListSynced(ctx, site, missing)
	}
	return err
}

// GetCoupon returns a cached coupon with its restrictions, or nil
func (s *Store) GetCoupon(ctx context.Context, site shared.Site, couponID int64) (*coupon.DataModel, error) {
	c, err := s.coupons.FindByID(ctx, site.LocalID, couponID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	models, err := s.assemble(ctx, site, []coupon.Coupon{*c})
	if err != nil {
		return nil, err
	}
	return &models[0], nil
}

// GetCoupons returns the cached coupons of a site with their restrictions
func (s *Store) GetCoupons(ctx context.Context, site shared.Site) ([]coupon.DataModel, error) {
	coupons, err := s.coupons.FindForSite(ctx, site.LocalID)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, site, coupons)
}

func (s *Store) assemble(ctx context.Context, site shared.Site, coupons []coupon.Coupon) ([]coupon.DataModel, error) {
	out := make([]coupon.DataModel, 0, len(coupons))
	for _, c := range coupons {
		m := coupon.DataModel{Coupon: c}
		var err error
		if m.Products, err = s.products.GetCouponProducts(ctx, site, c.ID, false); err != nil {
			return nil, err
		}
		if m.ExcludedProducts, err = s.products.GetCouponProducts(ctx, site, c.ID, true); err != nil {
			return nil, err
		}
		if m.Categories, err = s.products.GetCouponCategories(ctx, site, c.ID, false); err != nil {
			return nil, err
		}
		if m.ExcludedCategories, err = s.products.GetCouponCategories(ctx, site, c.ID, true); err != nil {
			return nil, err
		}
		emails, err := s.coupons.FindEmails(ctx, site.LocalID, c.ID)
		if err != nil {
			return nil, err
		}
		for _, e := range emails {
			m.RestrictedEmails = append(m.RestrictedEmails, e.Email)
		}
		out = append(out, m)
	}
	return out, nil
}
