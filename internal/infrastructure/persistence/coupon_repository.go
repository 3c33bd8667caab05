package persistence

import (
	"context"
	"errors"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/coupon"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCouponRepository implements coupon.Repository using GORM
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GormCouponRepository
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// Upsert inserts or replaces the coupon row. Links are written separately.
func (r *GormCouponRepository) Upsert(ctx context.Context, c *coupon.Coupon) error {
	return dbFromContext(ctx, r.db).Save(models.CouponModelFromDomain(c)).Error
}

// FindByID finds a coupon by its remote id within a site
func (r *GormCouponRepository) FindByID(ctx context.Context, localSiteID, couponID int64) (*coupon.Coupon, error) {
	var model models.CouponModel
	if err := dbFromContext(ctx, r.db).
		Where("local_site_id = ? AND id = ?", localSiteID, couponID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindForSite returns the coupons of a site, newest first
func (r *GormCouponRepository) FindForSite(ctx context.Context, localSiteID int64) ([]coupon.Coupon, error) {
	var rows []models.CouponModel
	if err := dbFromContext(ctx, r.db).
		Where("local_site_id = ?", localSiteID).
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return couponsToDomain(rows), nil
}

// FindByIDs returns the cached coupons among couponIDs, keeping the given order
func (r *GormCouponRepository) FindByIDs(ctx context.Context, localSiteID int64, couponIDs []int64) ([]coupon.Coupon, error) {
	if len(couponIDs) == 0 {
		return []coupon.Coupon{}, nil
	}
	var rows []models.CouponModel
	if err := dbFromContext(ctx, r.db).
		Where("local_site_id = ? AND id IN ?", localSiteID, couponIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[int64]models.CouponModel, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	ordered := make([]models.CouponModel, 0, len(rows))
	for _, id := range couponIDs {
		if row, ok := byID[id]; ok {
			ordered = append(ordered, row)
		}
	}
	return couponsToDomain(ordered), nil
}

// Delete removes a coupon and its links
func (r *GormCouponRepository) Delete(ctx context.Context, localSiteID, couponID int64) error {
	return runInTx(ctx, r.db, func(tx *gorm.DB) error {
		where := "local_site_id = ? AND coupon_id = ?"
		if err := tx.Where(where, localSiteID, couponID).Delete(&models.CouponProductModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where(where, localSiteID, couponID).Delete(&models.CouponCategoryModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where(where, localSiteID, couponID).Delete(&models.CouponEmailModel{}).Error; err != nil {
			return err
		}
		return tx.Where("local_site_id = ? AND id = ?", localSiteID, couponID).Delete(&models.CouponModel{}).Error
	})
}

// DeleteAll removes every coupon of a site with its links
func (r *GormCouponRepository) DeleteAll(ctx context.Context, localSiteID int64) (int64, error) {
	var deleted int64
	err := runInTx(ctx, r.db, func(tx *gorm.DB) error {
		for _, link := range []any{&models.CouponProductModel{}, &models.CouponCategoryModel{}, &models.CouponEmailModel{}} {
			if err := tx.Where("local_site_id = ?", localSiteID).Delete(link).Error; err != nil {
				return err
			}
		}
		result := tx.Where("local_site_id = ?", localSiteID).Delete(&models.CouponModel{})
		deleted = result.RowsAffected
		return result.Error
	})
	return deleted, err
}

// UpsertProductLink records that a coupon includes or excludes a product
func (r *GormCouponRepository) UpsertProductLink(ctx context.Context, localSiteID, couponID, productID int64, excluded bool) error {
	row := models.CouponProductModel{LocalSiteID: localSiteID, CouponID: couponID, ProductID: productID, IsExcluded: excluded}
	return dbFromContext(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "local_site_id"}, {Name: "coupon_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_excluded"}),
	}).Create(&row).Error
}

// UpsertCategoryLink records that a coupon includes or excludes a category
func (r *GormCouponRepository) UpsertCategoryLink(ctx context.Context, localSiteID, couponID, categoryID int64, excluded bool) error {
	row := models.CouponCategoryModel{LocalSiteID: localSiteID, CouponID: couponID, CategoryID: categoryID, IsExcluded: excluded}
	return dbFromContext(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "local_site_id"}, {Name: "coupon_id"}, {Name: "category_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_excluded"}),
	}).Create(&row).Error
}

// UpsertEmail records an email restriction of a coupon
func (r *GormCouponRepository) UpsertEmail(ctx context.Context, email coupon.Email) error {
	row := models.CouponEmailModel{LocalSiteID: email.LocalSiteID, CouponID: email.CouponID, Email: email.Email}
	return dbFromContext(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

// FindEmails returns the email restrictions of a coupon
func (r *GormCouponRepository) FindEmails(ctx context.Context, localSiteID, couponID int64) ([]coupon.Email, error) {
	var rows []models.CouponEmailModel
	if err := dbFromContext(ctx, r.db).
		Where("local_site_id = ? AND coupon_id = ?", localSiteID, couponID).
		Order("email ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]coupon.Email, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

func couponsToDomain(rows []models.CouponModel) []coupon.Coupon {
	out := make([]coupon.Coupon, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ coupon.Repository = (*GormCouponRepository)(nil)
