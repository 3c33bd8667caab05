package persistence

import (
	"context"
	"errors"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/order"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements order.Repository using GORM.
// Line items and displayable metadata are replaced together with the order row.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) saveRow(tx *gorm.DB, o *order.Order) (*models.OrderModel, error) {
	model := models.OrderModelFromDomain(o)
	var existing models.OrderModel
	err := tx.Select("id").
		Where("local_site_id = ? AND remote_order_id = ?", o.LocalSiteID, o.RemoteOrderID).
		Take(&existing).Error
	switch {
	case err == nil:
		model.ID = existing.ID
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	default:
		model.ID = 0
	}
	if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
		return nil, err
	}
	return model, nil
}

// Upsert inserts or replaces an order together with its line items and metadata.
func (r *GormOrderRepository) Upsert(ctx context.Context, o *order.Order) error {
	return runInTx(ctx, r.db, func(tx *gorm.DB) error {
		model, err := r.saveRow(tx, o)
		if err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", model.ID).Delete(&models.OrderLineItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", model.ID).Delete(&models.OrderMetaDataModel{}).Error; err != nil {
			return err
		}

		if len(o.LineItems) > 0 {
			items := make([]models.OrderLineItemModel, len(o.LineItems))
			for i, li := range o.LineItems {
				items[i] = models.OrderLineItemModelFromDomain(model.ID, o.LocalSiteID, li)
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		meta := order.DisplayableMetaData(o.MetaData)
		if len(meta) > 0 {
			rows := make([]models.OrderMetaDataModel, len(meta))
			for i, m := range meta {
				rows[i] = models.OrderMetaDataModel{
					OrderID:       model.ID,
					RemoteMetaID:  m.ID,
					LocalSiteID:   o.LocalSiteID,
					RemoteOrderID: o.RemoteOrderID,
					Key:           m.Key,
					Value:         m.Value,
				}
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
				return err
			}
		}

		o.ID = model.ID
		return nil
	})
}

// UpsertInfo writes only the order row, leaving line items and metadata untouched.
func (r *GormOrderRepository) UpsertInfo(ctx context.Context, o *order.Order) error {
	model, err := r.saveRow(dbFromContext(ctx, r.db), o)
	if err != nil {
		return err
	}
	o.ID = model.ID
	return nil
}

// UpdateStatus sets the cached status of one order.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, localSiteID, remoteOrderID int64, status string) error {
	result := dbFromContext(ctx, r.db).Model(&models.OrderModel{}).
		Where("local_site_id = ? AND remote_order_id = ?", localSiteID, remoteOrderID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByRemoteID finds an order by its remote id within a site
func (r *GormOrderRepository) FindByRemoteID(ctx context.Context, localSiteID, remoteOrderID int64) (*order.Order, error) {
	var model models.OrderModel
	if err := dbFromContext(ctx, r.db).
		Preload("LineItems").
		Preload("MetaData").
		Where("local_site_id = ? AND remote_order_id = ?", localSiteID, remoteOrderID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindForSite returns the orders of a site, newest first, optionally filtered by status.
func (r *GormOrderRepository) FindForSite(ctx context.Context, localSiteID int64, statuses ...string) ([]order.Order, error) {
	query := dbFromContext(ctx, r.db).
		Preload("LineItems").
		Preload("MetaData").
		Where("local_site_id = ?", localSiteID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	var rows []models.OrderModel
	if err := query.Order("date_created DESC").Order("remote_order_id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return ordersToDomain(rows), nil
}

// FindByRemoteIDs returns the cached orders among remoteOrderIDs
func (r *GormOrderRepository) FindByRemoteIDs(ctx context.Context, localSiteID int64, remoteOrderIDs []int64) ([]order.Order, error) {
	if len(remoteOrderIDs) == 0 {
		return []order.Order{}, nil
	}
	var rows []models.OrderModel
	if err := dbFromContext(ctx, r.db).
		Preload("LineItems").
		Preload("MetaData").
		Where("local_site_id = ? AND remote_order_id IN ?", localSiteID, remoteOrderIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return ordersToDomain(rows), nil
}

// CountForSite counts the cached orders of a site
func (r *GormOrderRepository) CountForSite(ctx context.Context, localSiteID int64) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&models.OrderModel{}).
		Where("local_site_id = ?", localSiteID).
		Count(&count).Error
	return count, err
}

// DeleteForSite removes every cached order of a site with its children.
func (r *GormOrderRepository) DeleteForSite(ctx context.Context, localSiteID int64) (int64, error) {
	var deleted int64
	err := runInTx(ctx, r.db, func(tx *gorm.DB) error {
		orderIDs := tx.Model(&models.OrderModel{}).Select("id").Where("local_site_id = ?", localSiteID)
		if err := tx.Where("order_id IN (?)", orderIDs).Delete(&models.OrderLineItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id IN (?)", orderIDs).Delete(&models.OrderMetaDataModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("local_site_id = ?", localSiteID).Delete(&models.OrderModel{})
		deleted = result.RowsAffected
		return result.Error
	})
	return deleted, err
}

// FindMetaData returns the displayable metadata stored for an order
func (r *GormOrderRepository) FindMetaData(ctx context.Context, localSiteID, remoteOrderID int64) ([]order.MetaData, error) {
	var rows []models.OrderMetaDataModel
	if err := dbFromContext(ctx, r.db).
		Where("local_site_id = ? AND remote_order_id = ?", localSiteID, remoteOrderID).
		Order("remote_meta_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]order.MetaData, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

func ordersToDomain(rows []models.OrderModel) []order.Order {
	orders := make([]order.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders
}

// GormOrderSummaryRepository implements order.SummaryRepository using GORM
type GormOrderSummaryRepository struct {
	db *gorm.DB
}

// NewGormOrderSummaryRepository creates a new GormOrderSummaryRepository
func NewGormOrderSummaryRepository(db *gorm.DB) *GormOrderSummaryRepository {
	return &GormOrderSummaryRepository{db: db}
}

// Upsert inserts summaries, refreshing the dates of known ones.
func (r *GormOrderSummaryRepository) Upsert(ctx context.Context, summaries []order.Summary) error {
	if len(summaries) == 0 {
		return nil
	}
	rows := make([]models.OrderSummaryModel, len(summaries))
	for i, s := range summaries {
		rows[i] = models.OrderSummaryModelFromDomain(s)
		rows[i].ID = 0
	}
	return dbFromContext(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "local_site_id"}, {Name: "remote_order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"date_created", "date_modified"}),
	}).Create(&rows).Error
}

// FindByRemoteIDs returns the summaries among remoteOrderIDs
func (r *GormOrderSummaryRepository) FindByRemoteIDs(ctx context.Context, localSiteID int64, remoteOrderIDs []int64) ([]order.Summary, error) {
	if len(remoteOrderIDs) == 0 {
		return []order.Summary{}, nil
	}
	var rows []models.OrderSummaryModel
	if err := dbFromContext(ctx, r.db).
		Where("local_site_id = ? AND remote_order_id IN ?", localSiteID, remoteOrderIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]order.Summary, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// GormOrderNoteRepository implements order.NoteRepository using GORM
type GormOrderNoteRepository struct {
	db *gorm.DB
}

// NewGormOrderNoteRepository creates a new GormOrderNoteRepository
func NewGormOrderNoteRepository(db *gorm.DB) *GormOrderNoteRepository {
	return &GormOrderNoteRepository{db: db}
}

// InsertOrIgnore inserts notes not cached yet and reports how many were added.
func (r *GormOrderNoteRepository) InsertOrIgnore(ctx context.Context, notes ...order.Note) (int64, error) {
	if len(notes) == 0 {
		return 0, nil
	}
	rows := make([]models.OrderNoteModel, len(notes))
	for i, n := range notes {
		rows[i] = models.OrderNoteModelFromDomain(n)
		rows[i].ID = 0
	}
	result := dbFromContext(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	return result.RowsAffected, result.Error
}

// FindForOrder returns the notes of an order, newest first
func (r *GormOrderNoteRepository) FindForOrder(ctx context.Context, localOrderID int64) ([]order.Note, error) {
	var rows []models.OrderNoteModel
	if err := dbFromContext(ctx, r.db).
		Where("local_order_id = ?", localOrderID).
		Order("date_created DESC").
		Order("remote_note_id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]order.Note, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// DeleteForSite removes the notes of a site
func (r *GormOrderNoteRepository) DeleteForSite(ctx context.Context, localSiteID int64) (int64, error) {
	result := dbFromContext(ctx, r.db).Where("local_site_id = ?", localSiteID).Delete(&models.OrderNoteModel{})
	return result.RowsAffected, result.Error
}

// GormOrderStatusOptionRepository implements order.StatusOptionRepository using GORM
type GormOrderStatusOptionRepository struct {
	db *gorm.DB
}

// NewGormOrderStatusOptionRepository creates a new GormOrderStatusOptionRepository
func NewGormOrderStatusOptionRepository(db *gorm.DB) *GormOrderStatusOptionRepository {
	return &GormOrderStatusOptionRepository{db: db}
}

// FindForSite returns the status options of a site ordered by key
func (r *GormOrderStatusOptionRepository) FindForSite(ctx context.Context, localSiteID int64) ([]order.StatusOption, error) {
	var rows []models.OrderStatusOptionModel
	if err := dbFromContext(ctx, r.db).
		Where("local_site_id = ?", localSiteID).
		Order("status_key ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]order.StatusOption, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// FindByKey finds a status option by its key
func (r *GormOrderStatusOptionRepository) FindByKey(ctx context.Context, localSiteID int64, key string) (*order.StatusOption, error) {
	var model models.OrderStatusOptionModel
	if err := dbFromContext(ctx, r.db).
		Where("local_site_id = ? AND status_key = ?", localSiteID, key).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	option := model.ToDomain()
	return &option, nil
}

// Upsert inserts the option or updates its label and count. It returns the
// number of rows written, zero when nothing changed.
func (r *GormOrderStatusOptionRepository) Upsert(ctx context.Context, option *order.StatusOption) (int64, error) {
	db := dbFromContext(ctx, r.db)
	existing, err := r.FindByKey(ctx, option.LocalSiteID, option.StatusKey)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		model := models.OrderStatusOptionModelFromDomain(option)
		model.ID = 0
		result := db.Create(model)
		if result.Error == nil {
			option.ID = model.ID
		}
		return result.RowsAffected, result.Error
	case err != nil:
		return 0, err
	}

	option.ID = existing.ID
	if existing.Label == option.Label && existing.StatusCount == option.StatusCount {
		return 0, nil
	}
	result := db.Model(&models.OrderStatusOptionModel{}).
		Where("id = ?", existing.ID).
		Updates(map[string]any{"label": option.Label, "status_count": option.StatusCount})
	return result.RowsAffected, result.Error
}

// Delete removes a status option by site and key
func (r *GormOrderStatusOptionRepository) Delete(ctx context.Context, option *order.StatusOption) (int64, error) {
	result := dbFromContext(ctx, r.db).
		Where("local_site_id = ? AND status_key = ?", option.LocalSiteID, option.StatusKey).
		Delete(&models.OrderStatusOptionModel{})
	return result.RowsAffected, result.Error
}

// GormShipmentTrackingRepository implements order.TrackingRepository using GORM
type GormShipmentTrackingRepository struct {
	db *gorm.DB
}

// NewGormShipmentTrackingRepository creates a new GormShipmentTrackingRepository
func NewGormShipmentTrackingRepository(db *gorm.DB) *GormShipmentTrackingRepository {
	return &GormShipmentTrackingRepository{db: db}
}

// FindForOrder returns the trackings of an order
func (r *GormShipmentTrackingRepository) FindForOrder(ctx context.Context, localSiteID, localOrderID int64) ([]order.ShipmentTracking, error) {
	var rows []models.ShipmentTrackingModel
	if err := dbFromContext(ctx, r.db).
		Where("local_site_id = ? AND local_order_id = ?", localSiteID, localOrderID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]order.ShipmentTracking, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// FindByTrackingNumber finds a tracking of an order by its tracking number
func (r *GormShipmentTrackingRepository) FindByTrackingNumber(ctx context.Context, localSiteID, localOrderID int64, trackingNumber string) (*order.ShipmentTracking, error) {
	var model models.ShipmentTrackingModel
	if err := dbFromContext(ctx, r.db).
		Where("local_site_id = ? AND local_order_id = ? AND tracking_number = ?", localSiteID, localOrderID, trackingNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	tracking := model.ToDomain()
	return &tracking, nil
}

// InsertOrIgnore inserts trackings not cached yet and reports how many were added.
func (r *GormShipmentTrackingRepository) InsertOrIgnore(ctx context.Context, trackings ...order.ShipmentTracking) (int64, error) {
	if len(trackings) == 0 {
		return 0, nil
	}
	rows := make([]models.ShipmentTrackingModel, len(trackings))
	for i, t := range trackings {
		rows[i] = models.ShipmentTrackingModelFromDomain(t)
		rows[i].ID = 0
	}
	result := dbFromContext(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	return result.RowsAffected, result.Error
}

// Delete removes a tracking by its remote id
func (r *GormShipmentTrackingRepository) Delete(ctx context.Context, tracking *order.ShipmentTracking) (int64, error) {
	result := dbFromContext(ctx, r.db).
		Where("local_site_id = ? AND local_order_id = ? AND remote_tracking_id = ?",
			tracking.LocalSiteID, tracking.LocalOrderID, tracking.RemoteTrackingID).
		Delete(&models.ShipmentTrackingModel{})
	return result.RowsAffected, result.Error
}

// DeleteForSite removes the trackings of a site
func (r *GormShipmentTrackingRepository) DeleteForSite(ctx context.Context, localSiteID int64) (int64, error) {
	result := dbFromContext(ctx, r.db).Where("local_site_id = ?", localSiteID).Delete(&models.ShipmentTrackingModel{})
	return result.RowsAffected, result.Error
}

// GormShipmentProviderRepository implements order.ProviderRepository using GORM
type GormShipmentProviderRepository struct {
	db *gorm.DB
}

// NewGormShipmentProviderRepository creates a new GormShipmentProviderRepository
func NewGormShipmentProviderRepository(db *gorm.DB) *GormShipmentProviderRepository {
	return &GormShipmentProviderRepository{db: db}
}

// FindForSite returns the providers of a site ordered by country and carrier
func (r *GormShipmentProviderRepository) FindForSite(ctx context.Context, localSiteID int64) ([]order.ShipmentProvider, error) {
	var rows []models.ShipmentProviderModel
	if err := dbFromContext(ctx, r.db).
		Where("local_site_id = ?", localSiteID).
		Order("country ASC").
		Order("carrier_name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]order.ShipmentProvider, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// InsertOrIgnore inserts providers not cached yet and reports how many were added.
func (r *GormShipmentProviderRepository) InsertOrIgnore(ctx context.Context, providers ...order.ShipmentProvider) (int64, error) {
	if len(providers) == 0 {
		return 0, nil
	}
	rows := make([]models.ShipmentProviderModel, len(providers))
	for i, p := range providers {
		rows[i] = models.ShipmentProviderModelFromDomain(p)
		rows[i].ID = 0
	}
	result := dbFromContext(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	return result.RowsAffected, result.Error
}

// DeleteForSite removes the providers of a site
func (r *GormShipmentProviderRepository) DeleteForSite(ctx context.Context, localSiteID int64) (int64, error) {
	result := dbFromContext(ctx, r.db).Where("local_site_id = ?", localSiteID).Delete(&models.ShipmentProviderModel{})
	return result.RowsAffected, result.Error
}

// Ensure the GORM repositories implement the domain interfaces
var (
	_ order.Repository             = (*GormOrderRepository)(nil)
	_ order.SummaryRepository      = (*GormOrderSummaryRepository)(nil)
	_ order.NoteRepository         = (*GormOrderNoteRepository)(nil)
	_ order.StatusOptionRepository = (*GormOrderStatusOptionRepository)(nil)
	_ order.TrackingRepository     = (*GormShipmentTrackingRepository)(nil)
	_ order.ProviderRepository     = (*GormShipmentProviderRepository)(nil)
)
