package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/bloggingprompt"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBloggingPromptRepository implements bloggingprompt.Repository using GORM
type GormBloggingPromptRepository struct {
	db *gorm.DB
}

// NewGormBloggingPromptRepository creates a new GormBloggingPromptRepository
func NewGormBloggingPromptRepository(db *gorm.DB) *GormBloggingPromptRepository {
	return &GormBloggingPromptRepository{db: db}
}

// Upsert inserts prompts for a site or replaces the cached copies
func (r *GormBloggingPromptRepository) Upsert(ctx context.Context, localSiteID int64, prompts []bloggingprompt.Prompt) error {
	if len(prompts) == 0 {
		return nil
	}
	rows := make([]models.BloggingPromptModel, len(prompts))
	for i, p := range prompts {
		rows[i] = models.BloggingPromptModelFromDomain(localSiteID, p)
	}
	return dbFromContext(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}, {Name: "local_site_id"}},
		UpdateAll: true,
	}).Create(&rows).Error
}

// FindForSite returns the prompts of a site ordered by day
func (r *GormBloggingPromptRepository) FindForSite(ctx context.Context, localSiteID int64) ([]bloggingprompt.Prompt, error) {
	var rows []models.BloggingPromptModel
	if err := dbFromContext(ctx, r.db).
		Where("local_site_id = ?", localSiteID).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]bloggingprompt.Prompt, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// FindForDate returns the prompt of a site for the calendar day of date
func (r *GormBloggingPromptRepository) FindForDate(ctx context.Context, localSiteID int64, date time.Time) (*bloggingprompt.Prompt, error) {
	var model models.BloggingPromptModel
	if err := dbFromContext(ctx, r.db).
		Where("local_site_id = ? AND date = ?", localSiteID, models.PromptDay(date)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	p := model.ToDomain()
	return &p, nil
}

var _ bloggingprompt.Repository = (*GormBloggingPromptRepository)(nil)
