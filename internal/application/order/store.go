// Package order implements the WooCommerce order store: it fetches orders,
// order lists and order details through the RestClient, keeps the local cache
// in sync and emits the change events UI layers observe.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/order"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/woocommerce"
	"go.uber.org/zap"
)

// ErrUpdateStatusAction is returned when UPDATE_ORDER_STATUS is dispatched.
// Status updates report two results and must go through Store.UpdateOrderStatus.
var ErrUpdateStatusAction = errors.New("order: UPDATE_ORDER_STATUS must be called through UpdateOrderStatus")

// RestClient is the remote side of the order store
type RestClient interface {
	FetchOrders(ctx context.Context, site shared.Site, offset int64, statusFilter string) (*woocommerce.OrdersPage, error)
	FetchOrderListSummaries(ctx context.Context, descriptor order.ListDescriptor, offset int64) (*woocommerce.SummariesPage, error)
	FetchOrdersByIDs(ctx context.Context, site shared.Site, remoteIDs []int64) ([]order.Order, error)
	SearchOrders(ctx context.Context, site shared.Site, query string, offset int) (*woocommerce.OrdersPage, error)
	FetchOrderCount(ctx context.Context, site shared.Site, statusFilter string) (int, error)
	FetchOrderStatusOptions(ctx context.Context, site shared.Site) ([]order.StatusOption, error)
	FetchHasOrders(ctx context.Context, site shared.Site, status string) (bool, error)
	FetchSingleOrder(ctx context.Context, site shared.Site, remoteOrderID int64) (*order.Order, error)
	PostSimplePayment(ctx context.Context, site shared.Site, amount decimal.Decimal, isTaxable bool) (*order.Order, error)
	UpdateOrderStatus(ctx context.Context, site shared.Site, remoteOrderID int64, status string) (*order.Order, error)
	UpdateOrderAddresses(ctx context.Context, site shared.Site, remoteOrderID int64, billing, shipping order.Address) (*order.Order, error)
	FetchOrderNotes(ctx context.Context, site shared.Site, localOrderID, remoteOrderID int64) ([]order.Note, error)
	PostOrderNote(ctx context.Context, site shared.Site, localOrderID, remoteOrderID int64, note order.Note) (*order.Note, error)
	FetchOrderShipmentTrackings(ctx context.Context, site shared.Site, localOrderID, remoteOrderID int64) ([]order.ShipmentTracking, error)
	AddOrderShipmentTracking(ctx context.Context, site shared.Site, localOrderID, remoteOrderID int64, tracking order.ShipmentTracking, isCustomProvider bool) (*order.ShipmentTracking, error)
	DeleteOrderShipmentTracking(ctx context.Context, site shared.Site, remoteOrderID int64, tracking order.ShipmentTracking) error
	FetchOrderShipmentProviders(ctx context.Context, site shared.Site, remoteOrderID int64) ([]order.ShipmentProvider, error)
}

var _ RestClient = (*woocommerce.OrderRestClient)(nil)

// Repositories groups the DAOs used by the store
type Repositories struct {
	Orders        order.Repository
	Summaries     order.SummaryRepository
	Notes         order.NoteRepository
	StatusOptions order.StatusOptionRepository
	Trackings     order.TrackingRepository
	Providers     order.ProviderRepository
	Tx            shared.TransactionExecutor
}

// Store is the WooCommerce order store
type Store struct {
	dispatcher shared.ActionDispatcher
	client     RestClient
	orders     order.Repository
	summaries  order.SummaryRepository
	notes      order.NoteRepository
	statuses   order.StatusOptionRepository
	trackings  order.TrackingRepository
	providers  order.ProviderRepository
	tx         shared.TransactionExecutor
	validate   *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
	// maxConcurrentFetches bounds the by-id chunks fetched at once
	maxConcurrentFetches int
}

// NewStore creates an order store
func NewStore(dispatcher shared.ActionDispatcher, client RestClient, repos Repositories, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		dispatcher:           dispatcher,
		client:               client,
		orders:               repos.Orders,
		summaries:            repos.Summaries,
		notes:                repos.Notes,
		statuses:             repos.StatusOptions,
		trackings:            repos.Trackings,
		providers:            repos.Providers,
		tx:                   repos.Tx,
		validate:             validator.New(),
		logger:               logger.Named("order_store"),
		now:                  time.Now,
		maxConcurrentFetches: 4,
	}
}

// ActionTypes implements shared.ActionHandler
func (s *Store) ActionTypes() []shared.ActionType {
	return []shared.ActionType{
		order.ActionFetchOrders,
		order.ActionFetchOrderList,
		order.ActionFetchOrdersByIDs,
		order.ActionFetchOrdersCount,
		order.ActionSearchOrders,
		order.ActionFetchOrderStatusOptions,
		order.ActionUpdateOrderStatus,
		order.ActionFetchedOrders,
		order.ActionFetchedOrderList,
		order.ActionFetchedOrdersByIDs,
		order.ActionFetchedOrdersCount,
		order.ActionSearchedOrders,
		order.ActionFetchedOrderStatusOptions,
	}
}

// OnAction implements shared.ActionHandler
func (s *Store) OnAction(ctx context.Context, action shared.Action) error {
	switch action.Type {
	case order.ActionFetchOrders:
		return withPayload(ctx, action, s.fetchOrders)
	case order.ActionFetchOrderList:
		return withPayload(ctx, action, s.fetchOrderList)
	case order.ActionFetchOrdersByIDs:
		return withPayload(ctx, action, s.fetchOrdersByIDs)
	case order.ActionFetchOrdersCount:
		return withPayload(ctx, action, s.fetchOrdersCount)
	case order.ActionSearchOrders:
		return withPayload(ctx, action, s.searchOrders)
	case order.ActionFetchOrderStatusOptions:
		return withPayload(ctx, action, s.fetchOrderStatusOptions)
	case order.ActionUpdateOrderStatus:
		return ErrUpdateStatusAction
	case order.ActionFetchedOrders:
		return withPayload(ctx, action, s.handleFetchOrdersCompleted)
	case order.ActionFetchedOrderList:
		return withPayload(ctx, action, s.handleFetchOrderListCompleted)
	case order.ActionFetchedOrdersByIDs:
		return withPayload(ctx, action, s.handleFetchOrdersByIDsCompleted)
	case order.ActionFetchedOrdersCount:
		return withPayload(ctx, action, s.handleFetchOrdersCountCompleted)
	case order.ActionSearchedOrders:
		return withPayload(ctx, action, s.handleSearchOrdersCompleted)
	case order.ActionFetchedOrderStatusOptions:
		return withPayload(ctx, action, s.handleFetchOrderStatusOptionsCompleted)
	}
	return nil
}

// withPayload runs fn with the action payload, accepting values and pointers
func withPayload[P any](ctx context.Context, action shared.Action, fn func(context.Context, P) error) error {
	switch p := action.Payload.(type) {
	case P:
		return fn(ctx, p)
	case *P:
		if p != nil {
			return fn(ctx, *p)
		}
	}
	return fmt.Errorf("order: unexpected payload %T for %s", action.Payload, action.Type)
}

// respond dispatches the response action of a remote call back to the stores
func (s *Store) respond(ctx context.Context, actionType shared.ActionType, payload any) error {
	return s.dispatcher.DispatchSync(ctx, shared.NewAction(actionType, payload))
}

func (s *Store) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.RunInTx(ctx, fn)
}

var _ shared.ActionHandler = (*Store)(nil)
