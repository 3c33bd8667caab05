package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/dashboard"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDashboardCardRepository implements dashboard.Repository using GORM.
// Each card is stored as one JSON document keyed by site and card type.
type GormDashboardCardRepository struct {
	db *gorm.DB
}

// NewGormDashboardCardRepository creates a new GormDashboardCardRepository
func NewGormDashboardCardRepository(db *gorm.DB) *GormDashboardCardRepository {
	return &GormDashboardCardRepository{db: db}
}

// Save replaces the cards of a site
func (r *GormDashboardCardRepository) Save(ctx context.Context, localSiteID int64, cards dashboard.Cards) error {
	return runInTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("local_site_id = ?", localSiteID).Delete(&models.DashboardCardModel{}).Error; err != nil {
			return err
		}
		if cards.Posts == nil {
			return nil
		}
		data, err := json.Marshal(cards.Posts)
		if err != nil {
			return fmt.Errorf("failed to encode posts card: %w", err)
		}
		return tx.Create(&models.DashboardCardModel{
			LocalSiteID: localSiteID,
			Type:        string(dashboard.CardPosts),
			JSON:        string(data),
		}).Error
	})
}

// Find returns the cached cards of a site. A site without cached cards
// yields empty Cards.
func (r *GormDashboardCardRepository) Find(ctx context.Context, localSiteID int64) (*dashboard.Cards, error) {
	var rows []models.DashboardCardModel
	if err := dbFromContext(ctx, r.db).Where("local_site_id = ?", localSiteID).Find(&rows).Error; err != nil {
		return nil, err
	}
	cards := &dashboard.Cards{}
	for _, row := range rows {
		switch dashboard.CardType(row.Type) {
		case dashboard.CardPosts:
			var posts dashboard.PostsCard
			if err := json.Unmarshal([]byte(row.JSON), &posts); err != nil {
				return nil, fmt.Errorf("failed to decode posts card: %w", err)
			}
			cards.Posts = &posts
		}
	}
	return cards, nil
}

var _ dashboard.Repository = (*GormDashboardCardRepository)(nil)
