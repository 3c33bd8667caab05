// Package list implements the list store. It keeps the ordered remote ids of
// every paged list together with its paging state and delegates the actual
// fetching to the DataSource registered for the list's kind.
package list

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/list"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ErrNoDataSource is returned when no DataSource is registered for a descriptor kind
var ErrNoDataSource = errors.New("list: no data source for kind")

// Store is the list store
type Store struct {
	dispatcher shared.ActionDispatcher
	lists      list.Repository
	items      list.ItemRepository
	tx         shared.TransactionExecutor
	logger     *zap.Logger

	mu      sync.RWMutex
	sources map[string]list.DataSource
}

// NewStore creates a list store
func NewStore(dispatcher shared.ActionDispatcher, lists list.Repository, items list.ItemRepository, tx shared.TransactionExecutor, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		dispatcher: dispatcher,
		lists:      lists,
		items:      items,
		tx:         tx,
		logger:     logger.Named("list_store"),
		sources:    make(map[string]list.DataSource),
	}
}

// RegisterDataSource makes source responsible for every descriptor of kind
func (s *Store) RegisterDataSource(kind string, source list.DataSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources[kind] = source
}

func (s *Store) dataSource(kind string) (list.DataSource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	source, ok := s.sources[kind]
	return source, ok
}

// ActionTypes implements shared.ActionHandler
func (s *Store) ActionTypes() []shared.ActionType {
	return []shared.ActionType{
		list.ActionFetchedListItems,
		list.ActionListDataInvalidated,
		list.ActionListItemsRemoved,
	}
}

// OnAction implements shared.ActionHandler
func (s *Store) OnAction(ctx context.Context, action shared.Action) error {
	switch p := action.Payload.(type) {
	case list.FetchedListItemsPayload:
		return s.handleFetchedListItems(ctx, p)
	case *list.FetchedListItemsPayload:
		return s.handleFetchedListItems(ctx, *p)
	case list.ListDataInvalidatedPayload:
		s.dispatcher.Emit(ctx, list.NewOnListDataInvalidated(p.TypeIdentifier))
		return nil
	case *list.ListDataInvalidatedPayload:
		s.dispatcher.Emit(ctx, list.NewOnListDataInvalidated(p.TypeIdentifier))
		return nil
	case list.ListItemsRemovedPayload:
		return s.handleListItemsRemoved(ctx, p)
	case *list.ListItemsRemovedPayload:
		return s.handleListItemsRemoved(ctx, *p)
	}
	return fmt.Errorf("list: unexpected payload %T for %s", action.Payload, action.Type)
}

// FetchList requests the first page of a list, or the next one when loadMore
// is set. A list that is already being fetched is left alone.
func (s *Store) FetchList(ctx context.Context, descriptor list.Descriptor, loadMore bool) error {
	source, ok := s.dataSource(descriptor.Kind())
	if !ok {
		return fmt.Errorf("%w %q", ErrNoDataSource, descriptor.Kind())
	}

	model, err := s.lists.GetOrCreate(ctx, descriptor)
	if err != nil {
		return err
	}
	if model.State.IsFetching() {
		logger.WithLogger(ctx, s.logger).Debug("list already fetching",
			zap.String("list", descriptor.UniqueIdentifier()), zap.String("state", string(model.State)))
		return nil
	}

	var offset int64
	state := list.StateFetchingFirstPage
	if loadMore {
		if offset, err = s.items.CountForList(ctx, model.ID); err != nil {
			return err
		}
		state = list.StateLoadingMore
	}
	if err := s.lists.UpdateState(ctx, model.ID, state); err != nil {
		return err
	}
	s.dispatcher.Emit(ctx, list.NewOnListChanged(descriptor, list.CauseStateChanged, nil))

	logger.WithLogger(ctx, s.logger).Debug("fetching list",
		zap.String("list", descriptor.UniqueIdentifier()), zap.Int64("offset", offset))
	return source.FetchList(ctx, descriptor, offset)
}

func (s *Store) handleFetchedListItems(ctx context.Context, p list.FetchedListItemsPayload) error {
	model, err := s.lists.GetOrCreate(ctx, p.Descriptor)
	if err != nil {
		return err
	}

	if p.Error != nil {
		s.logger.Warn("list fetch failed",
			zap.String("list", p.Descriptor.UniqueIdentifier()), zap.Error(p.Error))
		if err := s.lists.UpdateState(ctx, model.ID, list.StateError); err != nil {
			return err
		}
		s.dispatcher.Emit(ctx, list.NewOnListChanged(p.Descriptor, list.CauseError, p.Error))
		return nil
	}

	state := list.StateFetched
	if p.CanLoadMore {
		state = list.StateCanLoadMore
	}
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if !p.LoadedMore {
			if err := s.items.DeleteForList(ctx, model.ID); err != nil {
				return err
			}
		}
		if err := s.items.InsertItems(ctx, model.ID, p.RemoteItemIDs); err != nil {
			return err
		}
		return s.lists.UpdateState(ctx, model.ID, state)
	})
	if err != nil {
		return err
	}

	cause := list.CauseFirstPageFetched
	if p.LoadedMore {
		cause = list.CauseLoadedMore
	}
	s.dispatcher.Emit(ctx, list.NewOnListChanged(p.Descriptor, cause, nil))
	return nil
}

func (s *Store) handleListItemsRemoved(ctx context.Context, p list.ListItemsRemovedPayload) error {
	lists, err := s.lists.FindByTypeIdentifier(ctx, p.TypeIdentifier)
	if err != nil {
		return err
	}
	ids := make([]int64, len(lists))
	for i, l := range lists {
		ids[i] = l.ID
	}
	rows, err := s.items.DeleteFromLists(ctx, ids, p.RemoteItemIDs)
	if err != nil {
		return err
	}
	s.dispatcher.Emit(ctx, list.NewOnListItemsChanged(p.TypeIdentifier, rows))
	return nil
}

// GetListItems returns the remote ids of a list in fetch order. A list that was
// never fetched is empty.
func (s *Store) GetListItems(ctx context.Context, descriptor list.Descriptor) ([]int64, error) {
	model, err := s.lists.FindByDescriptor(ctx, descriptor)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	items, err := s.items.FindForList(ctx, model.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.RemoteItemID
	}
	return ids, nil
}

// GetListState returns the paging state of a list, NEEDS_REFRESH when it was never fetched
func (s *Store) GetListState(ctx context.Context, descriptor list.Descriptor) (list.State, error) {
	model, err := s.lists.FindByDescriptor(ctx, descriptor)
	if errors.Is(err, shared.ErrNotFound) {
		return list.StateNeedsRefresh, nil
	}
	if err != nil {
		return "", err
	}
	return model.State, nil
}

var _ shared.ActionHandler = (*Store)(nil)
