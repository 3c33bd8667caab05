package persistence

import (
	"context"
	"errors"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/system"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSitePluginRepository implements system.PluginRepository using GORM
type GormSitePluginRepository struct {
	db *gorm.DB
}

// NewGormSitePluginRepository creates a new GormSitePluginRepository
func NewGormSitePluginRepository(db *gorm.DB) *GormSitePluginRepository {
	return &GormSitePluginRepository{db: db}
}

// Replace swaps the plugin list of a site for plugins
func (r *GormSitePluginRepository) Replace(ctx context.Context, localSiteID int64, plugins []system.SitePlugin) error {
	return runInTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("local_site_id = ?", localSiteID).Delete(&models.SitePluginModel{}).Error; err != nil {
			return err
		}
		if len(plugins) == 0 {
			return nil
		}
		rows := make([]models.SitePluginModel, len(plugins))
		for i, p := range plugins {
			rows[i] = models.SitePluginModelFromDomain(p)
			rows[i].ID = 0
			rows[i].LocalSiteID = localSiteID
		}
		return tx.Create(&rows).Error
	})
}

// FindForSite returns the plugins of a site ordered by name
func (r *GormSitePluginRepository) FindForSite(ctx context.Context, localSiteID int64) ([]system.SitePlugin, error) {
	var rows []models.SitePluginModel
	if err := dbFromContext(ctx, r.db).
		Where("local_site_id = ?", localSiteID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]system.SitePlugin, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// FindByName finds a plugin of a site by its "dir/file" name
func (r *GormSitePluginRepository) FindByName(ctx context.Context, localSiteID int64, name string) (*system.SitePlugin, error) {
	var model models.SitePluginModel
	if err := dbFromContext(ctx, r.db).
		Where("local_site_id = ? AND name = ?", localSiteID, name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	p := model.ToDomain()
	return &p, nil
}

// GormTaxClassRepository implements system.TaxClassRepository using GORM
type GormTaxClassRepository struct {
	db *gorm.DB
}

// NewGormTaxClassRepository creates a new GormTaxClassRepository
func NewGormTaxClassRepository(db *gorm.DB) *GormTaxClassRepository {
	return &GormTaxClassRepository{db: db}
}

// Replace swaps the tax classes of a site for classes
func (r *GormTaxClassRepository) Replace(ctx context.Context, localSiteID int64, classes []system.TaxClass) error {
	return runInTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("local_site_id = ?", localSiteID).Delete(&models.TaxClassModel{}).Error; err != nil {
			return err
		}
		if len(classes) == 0 {
			return nil
		}
		rows := make([]models.TaxClassModel, len(classes))
		for i, c := range classes {
			rows[i] = models.TaxClassModel{LocalSiteID: localSiteID, Slug: c.Slug, Name: c.Name}
		}
		return tx.Create(&rows).Error
	})
}

// FindForSite returns the tax classes of a site ordered by name
func (r *GormTaxClassRepository) FindForSite(ctx context.Context, localSiteID int64) ([]system.TaxClass, error) {
	var rows []models.TaxClassModel
	if err := dbFromContext(ctx, r.db).
		Where("local_site_id = ?", localSiteID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]system.TaxClass, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// Ensure the GORM repositories implement the domain interfaces
var (
	_ system.PluginRepository   = (*GormSitePluginRepository)(nil)
	_ system.TaxClassRepository = (*GormTaxClassRepository)(nil)
)
