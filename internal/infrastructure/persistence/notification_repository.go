package persistence

import (
	"context"
	"errors"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/notification"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormNotificationRepository implements notification.Repository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// ReplaceAll drops every cached notification and stores notes instead
func (r *GormNotificationRepository) ReplaceAll(ctx context.Context, notes []notification.Notification) error {
	return runInTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.NotificationModel{}).Error; err != nil {
			return err
		}
		if len(notes) == 0 {
			return nil
		}
		rows := make([]*models.NotificationModel, len(notes))
		for i := range notes {
			rows[i] = models.NotificationModelFromDomain(&notes[i])
			rows[i].ID = 0
		}
		return tx.Create(&rows).Error
	})
}

// Upsert inserts the note or replaces the row with the same remote id.
// It returns the number of rows written.
func (r *GormNotificationRepository) Upsert(ctx context.Context, note *notification.Notification) (int64, error) {
	db := dbFromContext(ctx, r.db)
	model := models.NotificationModelFromDomain(note)

	var existing models.NotificationModel
	err := db.Select("id").Where("remote_note_id = ?", note.RemoteNoteID).Take(&existing).Error
	switch {
	case err == nil:
		model.ID = existing.ID
	case errors.Is(err, gorm.ErrRecordNotFound):
		model.ID = 0
	default:
		return 0, err
	}

	result := db.Save(model)
	if result.Error != nil {
		return 0, result.Error
	}
	note.LocalID = model.ID
	return result.RowsAffected, nil
}

// MarkRead flags the given remote notes as read and returns the local ids
// of the rows that changed.
func (r *GormNotificationRepository) MarkRead(ctx context.Context, remoteNoteIDs []int64) ([]int64, error) {
	if len(remoteNoteIDs) == 0 {
		return []int64{}, nil
	}
	var changed []int64
	err := runInTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Model(&models.NotificationModel{}).
			Where("remote_note_id IN ? AND read = ?", remoteNoteIDs, false).
			Order("id ASC").
			Pluck("id", &changed).Error; err != nil {
			return err
		}
		if len(changed) == 0 {
			return nil
		}
		return tx.Model(&models.NotificationModel{}).
			Where("id IN ?", changed).
			Update("read", true).Error
	})
	if err != nil {
		return nil, err
	}
	if changed == nil {
		changed = []int64{}
	}
	return changed, nil
}

// Find returns notifications matching the filter, newest first. Empty
// filter fields match everything.
func (r *GormNotificationRepository) Find(ctx context.Context, filter notification.Filter) ([]notification.Notification, error) {
	query := dbFromContext(ctx, r.db)
	if len(filter.Types) > 0 {
		query = query.Where("type IN ?", filter.Types)
	}
	if len(filter.Subtypes) > 0 {
		query = query.Where("subtype IN ?", filter.Subtypes)
	}
	return r.find(query)
}

// FindForSite returns the notifications of a remote site, newest first
func (r *GormNotificationRepository) FindForSite(ctx context.Context, remoteSiteID int64) ([]notification.Notification, error) {
	return r.find(dbFromContext(ctx, r.db).Where("remote_site_id = ?", remoteSiteID))
}

// FindByLocalID finds a notification by its local id
func (r *GormNotificationRepository) FindByLocalID(ctx context.Context, localID int64) (*notification.Notification, error) {
	return r.first(dbFromContext(ctx, r.db).Where("id = ?", localID))
}

// FindByRemoteID finds a notification by its remote note id
func (r *GormNotificationRepository) FindByRemoteID(ctx context.Context, remoteNoteID int64) (*notification.Notification, error) {
	return r.first(dbFromContext(ctx, r.db).Where("remote_note_id = ?", remoteNoteID))
}

// CountUnread counts the notifications not read yet
func (r *GormNotificationRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&models.NotificationModel{}).Where("read = ?", false).Count(&count).Error
	return count, err
}

func (r *GormNotificationRepository) find(query *gorm.DB) ([]notification.Notification, error) {
	var rows []models.NotificationModel
	if err := query.Order("note_timestamp DESC").Order("remote_note_id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]notification.Notification, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

func (r *GormNotificationRepository) first(query *gorm.DB) (*notification.Notification, error) {
	var model models.NotificationModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	n := model.ToDomain()
	return &n, nil
}

var _ notification.Repository = (*GormNotificationRepository)(nil)
