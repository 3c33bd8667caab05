package persistence

import (
	"context"
	"errors"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSiteRepository implements shared.SiteRepository using GORM
type GormSiteRepository struct {
	db *gorm.DB
}

// NewGormSiteRepository creates a new GormSiteRepository
func NewGormSiteRepository(db *gorm.DB) *GormSiteRepository {
	return &GormSiteRepository{db: db}
}

// Save inserts the site or updates the row with the same remote site id.
// The local id assigned by the cache is written back to site.
func (r *GormSiteRepository) Save(ctx context.Context, site *shared.Site) error {
	model := models.SiteModelFromDomain(site)
	db := dbFromContext(ctx, r.db)
	if model.ID == 0 {
		var existing models.SiteModel
		err := db.Select("id").Where("site_id = ?", site.SiteID).Take(&existing).Error
		switch {
		case err == nil:
			model.ID = existing.ID
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
	}
	if err := db.Omit(clause.Associations).Save(model).Error; err != nil {
		return err
	}
	site.LocalID = model.ID
	return nil
}

// FindByLocalID finds a site by its local id
func (r *GormSiteRepository) FindByLocalID(ctx context.Context, localID int64) (*shared.Site, error) {
	var model models.SiteModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", localID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySiteID finds a site by its remote WordPress.com id
func (r *GormSiteRepository) FindBySiteID(ctx context.Context, siteID int64) (*shared.Site, error) {
	var model models.SiteModel
	if err := dbFromContext(ctx, r.db).First(&model, "site_id = ?", siteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every known site ordered by local id
func (r *GormSiteRepository) FindAll(ctx context.Context) ([]shared.Site, error) {
	return r.find(dbFromContext(ctx, r.db))
}

// FindWooCommerceSites returns the sites running WooCommerce
func (r *GormSiteRepository) FindWooCommerceSites(ctx context.Context) ([]shared.Site, error) {
	return r.find(dbFromContext(ctx, r.db).Where("has_woo_commerce = ?", true))
}

func (r *GormSiteRepository) find(db *gorm.DB) ([]shared.Site, error) {
	var rows []models.SiteModel
	if err := db.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	sites := make([]shared.Site, len(rows))
	for i := range rows {
		sites[i] = *rows[i].ToDomain()
	}
	return sites, nil
}

// Ensure GormSiteRepository implements the domain interface
var _ shared.SiteRepository = (*GormSiteRepository)(nil)
