package order

import (
	"time"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

// Event types
const (
	EventOrderChanged                  = "OnOrderChanged"
	EventOrderSummariesFetched         = "OnOrderSummariesFetched"
	EventOrdersFetchedByIDs            = "OnOrdersFetchedByIds"
	EventOrdersSearched                = "OnOrdersSearched"
	EventOrderStatusOptionsChanged     = "OnOrderStatusOptionsChanged"
	EventOrderShipmentProvidersChanged = "OnOrderShipmentProvidersChanged"
	EventQuickOrderResult              = "OnQuickOrderResult"
)

// asError keeps a nil *OrderError from becoming a non-nil error interface
func asError(e *OrderError) error {
	if e == nil {
		return nil
	}
	return e
}

// OnOrderChanged is emitted after orders of a site were fetched or updated
type OnOrderChanged struct {
	shared.BaseChangeEvent
	StatusFilter  string
	CanLoadMore   bool
	CauseOfChange shared.ActionType
	Count         int
	RowsAffected  int64
	OrderError    *OrderError
}

// NewOnOrderChanged creates an OnOrderChanged event. A nil orderErr means success.
func NewOnOrderChanged(cause shared.ActionType, orderErr *OrderError) *OnOrderChanged {
	return &OnOrderChanged{
		BaseChangeEvent: shared.NewBaseChangeEvent(EventOrderChanged, asError(orderErr)),
		CauseOfChange:   cause,
		OrderError:      orderErr,
	}
}

// OnOrderSummariesFetched is emitted after a page of order summaries was fetched
type OnOrderSummariesFetched struct {
	shared.BaseChangeEvent
	Descriptor ListDescriptor
	Duration   time.Duration
	OrderError *OrderError
}

// NewOnOrderSummariesFetched creates an OnOrderSummariesFetched event
func NewOnOrderSummariesFetched(descriptor ListDescriptor, duration time.Duration, orderErr *OrderError) *OnOrderSummariesFetched {
	return &OnOrderSummariesFetched{
		BaseChangeEvent: shared.NewBaseChangeEvent(EventOrderSummariesFetched, asError(orderErr)),
		Descriptor:      descriptor,
		Duration:        duration,
		OrderError:      orderErr,
	}
}

// OnOrdersFetchedByIDs is emitted for every chunk of orders fetched by id
type OnOrdersFetchedByIDs struct {
	shared.BaseChangeEvent
	Site       shared.Site
	OrderIDs   []int64
	OrderError *OrderError
}

// NewOnOrdersFetchedByIDs creates an OnOrdersFetchedByIDs event
func NewOnOrdersFetchedByIDs(site shared.Site, ids []int64, orderErr *OrderError) *OnOrdersFetchedByIDs {
	return &OnOrdersFetchedByIDs{
		BaseChangeEvent: shared.NewBaseChangeEvent(EventOrdersFetchedByIDs, asError(orderErr)),
		Site:            site,
		OrderIDs:        ids,
		OrderError:      orderErr,
	}
}

// OnOrdersSearched carries search results. Results are not cached.
type OnOrdersSearched struct {
	shared.BaseChangeEvent
	Query       string
	CanLoadMore bool
	NextOffset  int
	Results     []Order
	OrderError  *OrderError
}

// NewOnOrdersSearched creates an OnOrdersSearched event
func NewOnOrdersSearched(query string, orderErr *OrderError) *OnOrdersSearched {
	return &OnOrdersSearched{
		BaseChangeEvent: shared.NewBaseChangeEvent(EventOrdersSearched, asError(orderErr)),
		Query:           query,
		OrderError:      orderErr,
	}
}

// OnOrderStatusOptionsChanged is emitted after the status options were reconciled
type OnOrderStatusOptionsChanged struct {
	shared.BaseChangeEvent
	Site         shared.Site
	RowsAffected int64
	OrderError   *OrderError
}

// NewOnOrderStatusOptionsChanged creates an OnOrderStatusOptionsChanged event
func NewOnOrderStatusOptionsChanged(site shared.Site, rows int64, orderErr *OrderError) *OnOrderStatusOptionsChanged {
	return &OnOrderStatusOptionsChanged{
		BaseChangeEvent: shared.NewBaseChangeEvent(EventOrderStatusOptionsChanged, asError(orderErr)),
		Site:            site,
		RowsAffected:    rows,
		OrderError:      orderErr,
	}
}

// OnOrderShipmentProvidersChanged is emitted after the shipment providers were replaced
type OnOrderShipmentProvidersChanged struct {
	shared.BaseChangeEvent
	RowsAffected int64
	OrderError   *OrderError
}

// NewOnOrderShipmentProvidersChanged creates an OnOrderShipmentProvidersChanged event
func NewOnOrderShipmentProvidersChanged(rows int64, orderErr *OrderError) *OnOrderShipmentProvidersChanged {
	return &OnOrderShipmentProvidersChanged{
		BaseChangeEvent: shared.NewBaseChangeEvent(EventOrderShipmentProvidersChanged, asError(orderErr)),
		RowsAffected:    rows,
		OrderError:      orderErr,
	}
}

// OnQuickOrderResult is returned by PostSimplePayment
type OnQuickOrderResult struct {
	shared.BaseChangeEvent
	Order      *Order
	OrderError *OrderError
}

// NewOnQuickOrderResult creates an OnQuickOrderResult event
func NewOnQuickOrderResult(o *Order, orderErr *OrderError) *OnQuickOrderResult {
	return &OnQuickOrderResult{
		BaseChangeEvent: shared.NewBaseChangeEvent(EventQuickOrderResult, asError(orderErr)),
		Order:           o,
		OrderError:      orderErr,
	}
}

// UpdateResultKind tells the optimistic and the remote phase of a status update apart
type UpdateResultKind string

const (
	UpdateOptimistic UpdateResultKind = "OPTIMISTIC"
	UpdateRemote     UpdateResultKind = "REMOTE"
)

// UpdateOrderResult is one phase of UpdateOrderStatus
type UpdateOrderResult struct {
	Kind  UpdateResultKind
	Event *OnOrderChanged
}

// HasOrdersResult is the outcome of FetchHasOrders
type HasOrdersResult struct {
	HasOrders bool
	Error     *OrderError
}

// IsSuccess reports whether the check reached the server
func (r HasOrdersResult) IsSuccess() bool {
	return r.Error == nil
}
