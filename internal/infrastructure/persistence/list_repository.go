package persistence

import (
	"context"
	"errors"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/list"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormListRepository implements list.Repository using GORM
type GormListRepository struct {
	db *gorm.DB
}

// NewGormListRepository creates a new GormListRepository
func NewGormListRepository(db *gorm.DB) *GormListRepository {
	return &GormListRepository{db: db}
}

// GetOrCreate returns the list row of a descriptor, inserting it in
// NEEDS_REFRESH state on first use.
func (r *GormListRepository) GetOrCreate(ctx context.Context, descriptor list.Descriptor) (*list.Model, error) {
	model := models.ListModel{
		DescriptorUniqueID: descriptor.UniqueIdentifier(),
		DescriptorTypeID:   descriptor.TypeIdentifier(),
		State:              list.StateNeedsRefresh,
	}
	err := dbFromContext(ctx, r.db).
		Where("descriptor_unique_id = ?", model.DescriptorUniqueID).
		Attrs(models.ListModel{DescriptorTypeID: model.DescriptorTypeID, State: model.State}).
		FirstOrCreate(&model).Error
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDescriptor returns the list row of a descriptor or shared.ErrNotFound
func (r *GormListRepository) FindByDescriptor(ctx context.Context, descriptor list.Descriptor) (*list.Model, error) {
	var model models.ListModel
	if err := dbFromContext(ctx, r.db).
		Where("descriptor_unique_id = ?", descriptor.UniqueIdentifier()).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTypeIdentifier returns every list sharing a type identifier
func (r *GormListRepository) FindByTypeIdentifier(ctx context.Context, typeIdentifier string) ([]list.Model, error) {
	var rows []models.ListModel
	if err := dbFromContext(ctx, r.db).
		Where("descriptor_type_id = ?", typeIdentifier).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]list.Model, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// UpdateState sets the state of a list and refreshes its modification time
func (r *GormListRepository) UpdateState(ctx context.Context, listID int64, state list.State) error {
	result := dbFromContext(ctx, r.db).Model(&models.ListModel{ID: listID}).Update("state", state)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormListItemRepository implements list.ItemRepository using GORM
type GormListItemRepository struct {
	db *gorm.DB
}

// NewGormListItemRepository creates a new GormListItemRepository
func NewGormListItemRepository(db *gorm.DB) *GormListItemRepository {
	return &GormListItemRepository{db: db}
}

// CountForList counts the items of a list
func (r *GormListItemRepository) CountForList(ctx context.Context, listID int64) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&models.ListItemModel{}).Where("list_id = ?", listID).Count(&count).Error
	return count, err
}

// FindForList returns the items of a list in insertion order
func (r *GormListItemRepository) FindForList(ctx context.Context, listID int64) ([]list.Item, error) {
	var rows []models.ListItemModel
	if err := dbFromContext(ctx, r.db).Where("list_id = ?", listID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]list.Item, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// InsertItems appends remote ids to a list, skipping ids already present
func (r *GormListItemRepository) InsertItems(ctx context.Context, listID int64, remoteIDs []int64) error {
	if len(remoteIDs) == 0 {
		return nil
	}
	rows := make([]models.ListItemModel, len(remoteIDs))
	for i, id := range remoteIDs {
		rows[i] = models.ListItemModel{ListID: listID, RemoteItemID: id}
	}
	return dbFromContext(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

// DeleteForList removes every item of a list
func (r *GormListItemRepository) DeleteForList(ctx context.Context, listID int64) error {
	return dbFromContext(ctx, r.db).Where("list_id = ?", listID).Delete(&models.ListItemModel{}).Error
}

// DeleteFromLists removes the given remote ids from each of the lists
func (r *GormListItemRepository) DeleteFromLists(ctx context.Context, listIDs []int64, remoteIDs []int64) (int64, error) {
	if len(listIDs) == 0 || len(remoteIDs) == 0 {
		return 0, nil
	}
	result := dbFromContext(ctx, r.db).
		Where("list_id IN ? AND remote_item_id IN ?", listIDs, remoteIDs).
		Delete(&models.ListItemModel{})
	return result.RowsAffected, result.Error
}

// Ensure the GORM repositories implement the domain interfaces
var (
	_ list.Repository     = (*GormListRepository)(nil)
	_ list.ItemRepository = (*GormListItemRepository)(nil)
)
