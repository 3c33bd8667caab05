// Package bloggingprompt implements the blogging prompts store.
package bloggingprompt

import (
	"context"
	"errors"
	"time"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/bloggingprompt"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/logger"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/telemetry"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/wpcom"
	"go.uber.org/zap"
)

// RestClient is the remote side of the prompts store
type RestClient interface {
	FetchPrompts(ctx context.Context, site shared.Site, number int, from time.Time) ([]bloggingprompt.Prompt, error)
}

var _ RestClient = (*wpcom.PromptRestClient)(nil)

// Store is the blogging prompts store
type Store struct {
	client  RestClient
	prompts bloggingprompt.Repository
	logger  *zap.Logger
}

// NewStore creates a prompts store
func NewStore(client RestClient, prompts bloggingprompt.Repository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{client: client, prompts: prompts, logger: logger.Named("prompts_store")}
}

// FetchPrompts fetches number prompts starting at the day of from, caches and returns them
func (s *Store) FetchPrompts(ctx context.Context, site shared.Site, number int, from time.Time) (prompts []bloggingprompt.Prompt, err error) {
	ctx, span := telemetry.StartStoreSpan(ctx, "prompts_store", "fetch_prompts",
		telemetry.WithAttribute("site_id", site.LocalID),
		telemetry.WithAttribute("number", number))
	defer func() { telemetry.EndSpan(span, err) }()

	logger.WithLogger(ctx, s.logger).Debug("fetching blogging prompts",
		zap.Int64("site_id", site.LocalID), zap.Int("number", number), zap.String("from", bloggingprompt.FormatDate(from)))

	prompts, err = s.client.FetchPrompts(ctx, site, number, from)
	if err != nil {
		s.logger.Warn("fetch blogging prompts failed", zap.Int64("site_id", site.LocalID), zap.Error(err))
		if promptErr := bloggingprompt.ErrorFromNetwork(err); promptErr != nil {
			return nil, promptErr
		}
		return nil, &bloggingprompt.Error{Type: bloggingprompt.ErrorGeneric, Message: err.Error()}
	}
	if err := s.prompts.Upsert(ctx, site.LocalID, prompts); err != nil {
		return nil, &bloggingprompt.Error{Type: bloggingprompt.ErrorGeneric, Message: err.Error()}
	}
	return prompts, nil
}

// GetPrompts returns the cached prompts of a site ordered by day
func (s *Store) GetPrompts(ctx context.Context, site shared.Site) ([]bloggingprompt.Prompt, error) {
	return s.prompts.FindForSite(ctx, site.LocalID)
}

// GetPromptForDate returns the cached prompt for the day of date, or nil
func (s *Store) GetPromptForDate(ctx context.Context, site shared.Site, date time.Time) (*bloggingprompt.Prompt, error) {
	prompt, err := s.prompts.FindForDate(ctx, site.LocalID, date)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return prompt, err
}
