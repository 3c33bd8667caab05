// Package dashboard implements the My Site dashboard cards store.
package dashboard

import (
	"context"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/dashboard"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/logger"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/wpcom"
	"go.uber.org/zap"
)

// RestClient is the remote side of the cards store
type RestClient interface {
	FetchCards(ctx context.Context, site shared.Site) (*dashboard.Cards, error)
}

var _ RestClient = (*wpcom.DashboardRestClient)(nil)

// Store is the dashboard cards store
type Store struct {
	client RestClient
	cards  dashboard.Repository
	logger *zap.Logger
}

// NewStore creates a cards store
func NewStore(client RestClient, cards dashboard.Repository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{client: client, cards: cards, logger: logger.Named("cards_store")}
}

// FetchCards fetches and caches the dashboard cards of a site. The returned
// error is a *dashboard.CardsError.
func (s *Store) FetchCards(ctx context.Context, site shared.Site) error {
	logger.WithLogger(ctx, s.logger).Debug("fetching dashboard cards", zap.Int64("site_id", site.LocalID))

	cards, err := s.client.FetchCards(ctx, site)
	if err != nil {
		s.logger.Warn("fetch dashboard cards failed", zap.Int64("site_id", site.LocalID), zap.Error(err))
		if cardsErr := dashboard.ErrorFromNetwork(err); cardsErr != nil {
			return cardsErr
		}
		return &dashboard.CardsError{Type: dashboard.ErrorGeneric, Message: err.Error()}
	}
	if cards == nil {
		return &dashboard.CardsError{Type: dashboard.ErrorInvalidResponse}
	}
	if err := s.cards.Save(ctx, site.LocalID, *cards); err != nil {
		s.logger.Error("store dashboard cards failed", zap.Int64("site_id", site.LocalID), zap.Error(err))
		return &dashboard.CardsError{Type: dashboard.ErrorGeneric}
	}
	return nil
}

// GetCards returns the cached cards of a site
func (s *Store) GetCards(ctx context.Context, site shared.Site) (*dashboard.Cards, error) {
	return s.cards.Find(ctx, site.LocalID)
}
