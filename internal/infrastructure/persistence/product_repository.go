package persistence

import (
	"context"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/product"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements product.Repository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Upsert inserts products or replaces the cached copies
func (r *GormProductRepository) Upsert(ctx context.Context, products ...product.Product) error {
	if len(products) == 0 {
		return nil
	}
	rows := make([]models.ProductModel, len(products))
	for i, p := range products {
		rows[i] = models.ProductModelFromDomain(p)
	}
	return dbFromContext(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "local_site_id"}, {Name: "id"}},
		UpdateAll: true,
	}).Create(&rows).Error
}

// FindByIDs returns the cached products among ids
func (r *GormProductRepository) FindByIDs(ctx context.Context, localSiteID int64, ids []int64) ([]product.Product, error) {
	if len(ids) == 0 {
		return []product.Product{}, nil
	}
	var rows []models.ProductModel
	if err := dbFromContext(ctx, r.db).
		Where("local_site_id = ? AND id IN ?", localSiteID, ids).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return productsToDomain(rows), nil
}

// FindCouponProducts returns the products a coupon includes or excludes
func (r *GormProductRepository) FindCouponProducts(ctx context.Context, localSiteID, couponID int64, excluded bool) ([]product.Product, error) {
	var rows []models.ProductModel
	if err := dbFromContext(ctx, r.db).
		Joins("JOIN woo_coupon_products cp ON cp.local_site_id = woo_products.local_site_id AND cp.product_id = woo_products.id").
		Where("cp.local_site_id = ? AND cp.coupon_id = ? AND cp.is_excluded = ?", localSiteID, couponID, excluded).
		Order("woo_products.id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return productsToDomain(rows), nil
}

// DeleteAll removes every cached product of a site
func (r *GormProductRepository) DeleteAll(ctx context.Context, localSiteID int64) (int64, error) {
	result := dbFromContext(ctx, r.db).Where("local_site_id = ?", localSiteID).Delete(&models.ProductModel{})
	return result.RowsAffected, result.Error
}

func productsToDomain(rows []models.ProductModel) []product.Product {
	out := make([]product.Product, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out
}

// GormProductCategoryRepository implements product.CategoryRepository using GORM
type GormProductCategoryRepository struct {
	db *gorm.DB
}

// NewGormProductCategoryRepository creates a new GormProductCategoryRepository
func NewGormProductCategoryRepository(db *gorm.DB) *GormProductCategoryRepository {
	return &GormProductCategoryRepository{db: db}
}

// Upsert inserts categories or replaces the cached copies
func (r *GormProductCategoryRepository) Upsert(ctx context.Context, categories ...product.Category) error {
	if len(categories) == 0 {
		return nil
	}
	rows := make([]models.ProductCategoryModel, len(categories))
	for i, c := range categories {
		rows[i] = models.ProductCategoryModelFromDomain(c)
	}
	return dbFromContext(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "local_site_id"}, {Name: "id"}},
		UpdateAll: true,
	}).Create(&rows).Error
}

// FindByIDs returns the cached categories among ids
func (r *GormProductCategoryRepository) FindByIDs(ctx context.Context, localSiteID int64, ids []int64) ([]product.Category, error) {
	if len(ids) == 0 {
		return []product.Category{}, nil
	}
	var rows []models.ProductCategoryModel
	if err := dbFromContext(ctx, r.db).
		Where("local_site_id = ? AND id IN ?", localSiteID, ids).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return categoriesToDomain(rows), nil
}

// FindCouponCategories returns the categories a coupon includes or excludes
func (r *GormProductCategoryRepository) FindCouponCategories(ctx context.Context, localSiteID, couponID int64, excluded bool) ([]product.Category, error) {
	var rows []models.ProductCategoryModel
	if err := dbFromContext(ctx, r.db).
		Joins("JOIN woo_coupon_categories cc ON cc.local_site_id = woo_product_categories.local_site_id AND cc.category_id = woo_product_categories.id").
		Where("cc.local_site_id = ? AND cc.coupon_id = ? AND cc.is_excluded = ?", localSiteID, couponID, excluded).
		Order("woo_product_categories.id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return categoriesToDomain(rows), nil
}

// DeleteAll removes every cached category of a site
func (r *GormProductCategoryRepository) DeleteAll(ctx context.Context, localSiteID int64) (int64, error) {
	result := dbFromContext(ctx, r.db).Where("local_site_id = ?", localSiteID).Delete(&models.ProductCategoryModel{})
	return result.RowsAffected, result.Error
}

func categoriesToDomain(rows []models.ProductCategoryModel) []product.Category {
	out := make([]product.Category, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out
}

// Ensure the GORM repositories implement the domain interfaces
var (
	_ product.Repository         = (*GormProductRepository)(nil)
	_ product.CategoryRepository = (*GormProductCategoryRepository)(nil)
)
