// Package list models paged remote lists (descriptors, cached item ids and
// paging state) shared by the order list and any other list-backed store.
package list

import (
	"context"
	"fmt"
	"time"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

// Descriptor identifies a remote list and the filters it was requested with.
type Descriptor interface {
	// UniqueIdentifier distinguishes two lists with different filters
	UniqueIdentifier() string
	// TypeIdentifier groups every list of the same kind on the same site
	TypeIdentifier() string
	// Kind selects the DataSource that can fetch the list
	Kind() string
	LocalSiteID() int64
}

// State is the paging state of a list
type State string

const (
	StateNeedsRefresh      State = "NEEDS_REFRESH"
	StateFetchingFirstPage State = "FETCHING_FIRST_PAGE"
	StateLoadingMore       State = "LOADING_MORE"
	StateCanLoadMore       State = "CAN_LOAD_MORE"
	StateFetched           State = "FETCHED"
	StateError             State = "ERROR"
)

// IsFetching reports whether a request for the list is in flight
func (s State) IsFetching() bool {
	return s == StateFetchingFirstPage || s == StateLoadingMore
}

// Model is the stored row of a list
type Model struct {
	ID                 int64
	DescriptorUniqueID string
	DescriptorTypeID   string
	State              State
	LastModified       time.Time
}

// Item is one remote id held by a list, in fetch order
type Item struct {
	ListID       int64
	RemoteItemID int64
}

// ErrorType classifies list failures
type ErrorType string

const (
	ErrorGeneric    ErrorType = "GENERIC_ERROR"
	ErrorPermission ErrorType = "PERMISSION_ERROR"
)

// ListError is attached to a FETCHED_LIST_ITEMS payload when the page could not be fetched
type ListError struct {
	Type    ErrorType
	Message string
}

func (e *ListError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("list error %s", e.Type)
	}
	return fmt.Sprintf("list error %s: %s", e.Type, e.Message)
}

// Actions handled by the list store
const (
	ActionFetchedListItems    shared.ActionType = "FETCHED_LIST_ITEMS"
	ActionListDataInvalidated shared.ActionType = "LIST_DATA_INVALIDATED"
	ActionListItemsRemoved    shared.ActionType = "LIST_ITEMS_REMOVED"
)

// FetchedListItemsPayload carries one fetched page back to the list store
type FetchedListItemsPayload struct {
	Descriptor    Descriptor
	RemoteItemIDs []int64
	LoadedMore    bool
	CanLoadMore   bool
	Error         *ListError
}

// ListDataInvalidatedPayload signals that the items of every list of a type changed
type ListDataInvalidatedPayload struct {
	TypeIdentifier string
}

// ListItemsRemovedPayload removes remote ids from every list of a type
type ListItemsRemovedPayload struct {
	TypeIdentifier string
	RemoteItemIDs  []int64
}

// DataSource fetches a page of a list. It must eventually dispatch
// ActionFetchedListItems for the descriptor.
type DataSource interface {
	FetchList(ctx context.Context, descriptor Descriptor, offset int64) error
}

// Repository persists lists
type Repository interface {
	GetOrCreate(ctx context.Context, descriptor Descriptor) (*Model, error)
	FindByDescriptor(ctx context.Context, descriptor Descriptor) (*Model, error)
	FindByTypeIdentifier(ctx context.Context, typeIdentifier string) ([]Model, error)
	UpdateState(ctx context.Context, listID int64, state State) error
}

// ItemRepository persists list items
type ItemRepository interface {
	CountForList(ctx context.Context, listID int64) (int64, error)
	FindForList(ctx context.Context, listID int64) ([]Item, error)
	InsertItems(ctx context.Context, listID int64, remoteIDs []int64) error
	DeleteForList(ctx context.Context, listID int64) error
	DeleteFromLists(ctx context.Context, listIDs []int64, remoteIDs []int64) (int64, error)
}
