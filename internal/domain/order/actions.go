package order

import (
	"fmt"
	"time"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

// Order actions. Requests are dispatched by callers; responses are dispatched
// by the store itself once the remote call finished.
const (
	ActionFetchOrders               shared.ActionType = "FETCH_ORDERS"
	ActionFetchOrderList            shared.ActionType = "FETCH_ORDER_LIST"
	ActionFetchOrdersByIDs          shared.ActionType = "FETCH_ORDERS_BY_IDS"
	ActionFetchOrdersCount          shared.ActionType = "FETCH_ORDERS_COUNT"
	ActionSearchOrders              shared.ActionType = "SEARCH_ORDERS"
	ActionFetchOrderStatusOptions   shared.ActionType = "FETCH_ORDER_STATUS_OPTIONS"
	ActionUpdateOrderStatus         shared.ActionType = "UPDATE_ORDER_STATUS"
	ActionFetchedOrders             shared.ActionType = "FETCHED_ORDERS"
	ActionFetchedOrderList          shared.ActionType = "FETCHED_ORDER_LIST"
	ActionFetchedOrdersByIDs        shared.ActionType = "FETCHED_ORDERS_BY_IDS"
	ActionFetchedOrdersCount        shared.ActionType = "FETCHED_ORDERS_COUNT"
	ActionSearchedOrders            shared.ActionType = "SEARCHED_ORDERS"
	ActionFetchedOrderStatusOptions shared.ActionType = "FETCHED_ORDER_STATUS_OPTIONS"
)

// FetchOrdersPayload requests a page of orders
type FetchOrdersPayload struct {
	Site         shared.Site
	StatusFilter string
	LoadMore     bool
}

// FetchOrdersResponsePayload is the result of FETCH_ORDERS
type FetchOrdersResponsePayload struct {
	Site         shared.Site
	Orders       []Order
	StatusFilter string
	LoadedMore   bool
	CanLoadMore  bool
	Error        *OrderError
}

// FetchOrderListPayload requests a page of order summaries for a list
type FetchOrderListPayload struct {
	Descriptor       ListDescriptor
	Offset           int64
	RequestStartTime time.Time
}

// FetchOrderListResponsePayload is the result of FETCH_ORDER_LIST
type FetchOrderListResponsePayload struct {
	Descriptor       ListDescriptor
	Summaries        []Summary
	LoadedMore       bool
	CanLoadMore      bool
	RequestStartTime time.Time
	Error            *OrderError
}

// FetchOrdersByIDsPayload requests specific orders
type FetchOrdersByIDsPayload struct {
	Site      shared.Site
	RemoteIDs []int64
}

// FetchOrdersByIDsResponsePayload is the result of one chunk of FETCH_ORDERS_BY_IDS
type FetchOrdersByIDsResponsePayload struct {
	Site      shared.Site
	RemoteIDs []int64
	Orders    []Order
	Error     *OrderError
}

// SearchOrdersPayload requests orders matching a query
type SearchOrdersPayload struct {
	Site   shared.Site
	Query  string
	Offset int
}

// SearchOrdersResponsePayload is the result of SEARCH_ORDERS
type SearchOrdersResponsePayload struct {
	Site        shared.Site
	Query       string
	CanLoadMore bool
	Offset      int
	Orders      []Order
	Error       *OrderError
}

// FetchOrdersCountPayload requests the number of orders with a status
type FetchOrdersCountPayload struct {
	Site         shared.Site
	StatusFilter string
}

// FetchOrdersCountResponsePayload is the result of FETCH_ORDERS_COUNT
type FetchOrdersCountResponsePayload struct {
	Site         shared.Site
	StatusFilter string
	Count        int
	Error        *OrderError
}

// FetchOrderStatusOptionsPayload requests the site's order statuses
type FetchOrderStatusOptionsPayload struct {
	Site shared.Site
}

// DedupeKey collapses repeated refreshes of the same site
func (p FetchOrderStatusOptionsPayload) DedupeKey() string {
	return fmt.Sprintf("site=%d", p.Site.LocalID)
}

// FetchOrderStatusOptionsResponsePayload is the result of FETCH_ORDER_STATUS_OPTIONS
type FetchOrderStatusOptionsResponsePayload struct {
	Site    shared.Site
	Options []StatusOption
	Error   *OrderError
}

// AddShipmentTrackingPayload adds a tracking number to an order
type AddShipmentTrackingPayload struct {
	Site             shared.Site
	LocalOrderID     int64
	RemoteOrderID    int64
	Tracking         ShipmentTracking
	IsCustomProvider bool
}

// DeleteShipmentTrackingPayload removes a tracking number from an order
type DeleteShipmentTrackingPayload struct {
	Site          shared.Site
	LocalOrderID  int64
	RemoteOrderID int64
	Tracking      ShipmentTracking
}

// PostOrderNotePayload adds a note to an order
type PostOrderNotePayload struct {
	Site          shared.Site
	LocalOrderID  int64
	RemoteOrderID int64
	Note          Note
}
