package persistence

import (
	"context"
	"errors"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/customer"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository implements customer.Repository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Upsert inserts customers or replaces the rows with the same remote id
func (r *GormCustomerRepository) Upsert(ctx context.Context, customers ...customer.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	return runInTx(ctx, r.db, func(tx *gorm.DB) error {
		for _, c := range customers {
			model := models.CustomerModelFromDomain(c)
			var existing models.CustomerModel
			err := tx.Select("id").
				Where("local_site_id = ? AND remote_customer_id = ?", c.LocalSiteID, c.RemoteCustomerID).
				Take(&existing).Error
			switch {
			case err == nil:
				model.ID = existing.ID
			case errors.Is(err, gorm.ErrRecordNotFound):
				model.ID = 0
			default:
				return err
			}
			if err := tx.Save(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindForSite returns the customers of a site ordered by remote id
func (r *GormCustomerRepository) FindForSite(ctx context.Context, localSiteID int64) ([]customer.Customer, error) {
	var rows []models.CustomerModel
	if err := dbFromContext(ctx, r.db).
		Where("local_site_id = ?", localSiteID).
		Order("remote_customer_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]customer.Customer, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// FindByRemoteID finds a customer by its remote id within a site
func (r *GormCustomerRepository) FindByRemoteID(ctx context.Context, localSiteID, remoteCustomerID int64) (*customer.Customer, error) {
	var model models.CustomerModel
	if err := dbFromContext(ctx, r.db).
		Where("local_site_id = ? AND remote_customer_id = ?", localSiteID, remoteCustomerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	c := model.ToDomain()
	return &c, nil
}

// DeleteForSite removes every cached customer of a site
func (r *GormCustomerRepository) DeleteForSite(ctx context.Context, localSiteID int64) (int64, error) {
	result := dbFromContext(ctx, r.db).Where("local_site_id = ?", localSiteID).Delete(&models.CustomerModel{})
	return result.RowsAffected, result.Error
}

var _ customer.Repository = (*GormCustomerRepository)(nil)
