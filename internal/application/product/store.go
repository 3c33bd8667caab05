// Package product keeps the products and product categories referenced by
// coupons in sync with the remote store.
package product

import (
	"context"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/product"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/logger"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/woocommerce"
	"go.uber.org/zap"
)

// RestClient is the remote side of the product store
type RestClient interface {
	FetchProducts(ctx context.Context, site shared.Site, ids []int64) ([]product.Product, error)
	FetchProductCategories(ctx context.Context, site shared.Site, ids []int64) ([]product.Category, error)
}

var _ RestClient = (*woocommerce.ProductRestClient)(nil)

// Store is the product store
type Store struct {
	client     RestClient
	products   product.Repository
	categories product.CategoryRepository
	logger     *zap.Logger
}

// NewStore creates a product store
func NewStore(client RestClient, products product.Repository, categories product.CategoryRepository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		client:     client,
		products:   products,
		categories: categories,
		logger:     logger.Named("product_store"),
	}
}

// FetchProductListSynced fetches the products with the given ids, caches and returns them
func (s *Store) FetchProductListSynced(ctx context.Context, site shared.Site, ids []int64) ([]product.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	logger.WithLogger(ctx, s.logger).Debug("fetching products",
		zap.Int64("site_id", site.LocalID), zap.Int64s("ids", ids))

	products, err := s.client.FetchProducts(ctx, site, ids)
	if err != nil {
		s.logger.Warn("fetch products failed", zap.Int64("site_id", site.LocalID), zap.Error(err))
		return nil, shared.NewWooError(err)
	}
	if err := s.products.Upsert(ctx, products...); err != nil {
		return nil, err
	}
	return products, nil
}

// FetchProductCategoryListSynced fetches the categories with the given ids, caches and returns them
func (s *Store) FetchProductCategoryListSynced(ctx context.Context, site shared.Site, ids []int64) ([]product.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	logger.WithLogger(ctx, s.logger).Debug("fetching product categories",
		zap.Int64("site_id", site.LocalID), zap.Int64s("ids", ids))

	categories, err := s.client.FetchProductCategories(ctx, site, ids)
	if err != nil {
		s.logger.Warn("fetch product categories failed", zap.Int64("site_id", site.LocalID), zap.Error(err))
		return nil, shared.NewWooError(err)
	}
	if err := s.categories.Upsert(ctx, categories...); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetProductsByIDs returns the cached products among ids
func (s *Store) GetProductsByIDs(ctx context.Context, site shared.Site, ids []int64) ([]product.Product, error) {
	return s.products.FindByIDs(ctx, site.LocalID, ids)
}

// GetCouponProducts returns the products a coupon applies to, or excludes
func (s *Store) GetCouponProducts(ctx context.Context, site shared.Site, couponID int64, excluded bool) ([]product.Product, error) {
	return s.products.FindCouponProducts(ctx, site.LocalID, couponID, excluded)
}

// GetCategoriesByIDs returns the cached categories among ids
func (s *Store) GetCategoriesByIDs(ctx context.Context, site shared.Site, ids []int64) ([]product.Category, error) {
	return s.categories.FindByIDs(ctx, site.LocalID, ids)
}

// GetCouponCategories returns the categories a coupon applies to, or excludes
func (s *Store) GetCouponCategories(ctx context.Context, site shared.Site, couponID int64, excluded bool) ([]product.Category, error) {
	return s.categories.FindCouponCategories(ctx, site.LocalID, couponID, excluded)
}

// DeleteAll clears the cached products and categories of a site
func (s *Store) DeleteAll(ctx context.Context, site shared.Site) (int64, error) {
	products, err := s.products.DeleteAll(ctx, site.LocalID)
	if err != nil {
		return 0, err
	}
	categories, err := s.categories.DeleteAll(ctx, site.LocalID)
	return products + categories, err
}
