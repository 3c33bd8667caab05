package woocommerce

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/order"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

const (
	summaryFields = "id,date_created_gmt,date_modified_gmt"
	// SimplePaymentFeeName names the fee line of a simple payment order
	SimplePaymentFeeName = "Simple Payment"
)

// OrderRestClient calls the WooCommerce order endpoints
type OrderRestClient struct {
	*Client
	now func() time.Time
}

// NewOrderRestClient creates an order client
func NewOrderRestClient(c *Client) *OrderRestClient {
	return &OrderRestClient{Client: c, now: time.Now}
}

// OrdersPage is one page of orders
type OrdersPage struct {
	Orders      []order.Order
	CanLoadMore bool
}

// SummariesPage is one page of order summaries
type SummariesPage struct {
	Summaries   []order.Summary
	CanLoadMore bool
}

func statusOrAny(status string) string {
	if status == "" {
		return order.DefaultOrderStatus
	}
	return status
}

func (c *OrderRestClient) getOrders(ctx context.Context, site shared.Site, params url.Values) ([]order.Order, error) {
	var dtos []OrderDTO
	if err := c.call(ctx, site, http.MethodGet, route(nsV3, "orders/"), params, nil, &dtos); err != nil {
		return nil, err
	}
	orders := make([]order.Order, 0, len(dtos))
	for i := range dtos {
		orders = append(orders, dtos[i].ToDomain(site.LocalID))
	}
	return orders, nil
}

// FetchOrders fetches one page of orders starting at offset
func (c *OrderRestClient) FetchOrders(ctx context.Context, site shared.Site, offset int64, statusFilter string) (*OrdersPage, error) {
	params := url.Values{
		"per_page": {strconv.Itoa(order.NumOrdersPerFetch)},
		"offset":   {strconv.FormatInt(offset, 10)},
		"status":   {statusOrAny(statusFilter)},
	}
	orders, err := c.getOrders(ctx, site, params)
	if err != nil {
		return nil, err
	}
	return &OrdersPage{Orders: orders, CanLoadMore: len(orders) == order.NumOrdersPerFetch}, nil
}

// FetchOrderListSummaries fetches one page of order ids and dates for a list
func (c *OrderRestClient) FetchOrderListSummaries(ctx context.Context, descriptor order.ListDescriptor, offset int64) (*SummariesPage, error) {
	params := url.Values{
		"per_page": {strconv.Itoa(order.NumOrdersPerFetch)},
		"offset":   {strconv.FormatInt(offset, 10)},
		"status":   {statusOrAny(descriptor.StatusFilter)},
		"_fields":  {summaryFields},
	}
	if descriptor.SearchQuery != "" {
		params.Set("search", descriptor.SearchQuery)
	}
	if descriptor.ExcludeFutureOrders {
		params.Set("before", c.now().UTC().Format("2006-01-02T15:04:05"))
	}

	var dtos []OrderSummaryDTO
	if err := c.call(ctx, descriptor.Site, http.MethodGet, route(nsV3, "orders/"), params, nil, &dtos); err != nil {
		return nil, err
	}
	summaries := make([]order.Summary, 0, len(dtos))
	for _, d := range dtos {
		summaries = append(summaries, d.toDomain(descriptor.Site.LocalID))
	}
	return &SummariesPage{Summaries: summaries, CanLoadMore: len(dtos) == order.NumOrdersPerFetch}, nil
}

// FetchOrdersByIDs fetches the given orders in one request
func (c *OrderRestClient) FetchOrdersByIDs(ctx context.Context, site shared.Site, remoteIDs []int64) ([]order.Order, error) {
	params := url.Values{
		"per_page": {strconv.Itoa(len(remoteIDs))},
		"include":  {joinIDs(remoteIDs)},
		"status":   {order.DefaultOrderStatus},
	}
	return c.getOrders(ctx, site, params)
}

// SearchOrders searches the site's orders. Offset is the number of results already shown.
func (c *OrderRestClient) SearchOrders(ctx context.Context, site shared.Site, query string, offset int) (*OrdersPage, error) {
	params := url.Values{
		"per_page": {strconv.Itoa(order.NumOrdersPerFetch)},
		"offset":   {strconv.Itoa(offset)},
		"status":   {order.DefaultOrderStatus},
		"search":   {query},
	}
	orders, err := c.getOrders(ctx, site, params)
	if err != nil {
		return nil, err
	}
	return &OrdersPage{Orders: orders, CanLoadMore: len(orders) == order.NumOrdersPerFetch}, nil
}

func (c *OrderRestClient) fetchTotals(ctx context.Context, site shared.Site) ([]OrderTotalDTO, error) {
	var totals []OrderTotalDTO
	if err := c.call(ctx, site, http.MethodGet, route(nsV3, "reports/orders/totals"), nil, nil, &totals); err != nil {
		return nil, err
	}
	return totals, nil
}

// FetchOrderCount returns the number of orders with the given status. Comma
// separated filters are summed; an empty filter counts every order.
func (c *OrderRestClient) FetchOrderCount(ctx context.Context, site shared.Site, statusFilter string) (int, error) {
	totals, err := c.fetchTotals(ctx, site)
	if err != nil {
		return 0, err
	}
	wanted := map[string]bool{}
	for _, s := range splitStatuses(statusFilter) {
		wanted[s] = true
	}
	count := 0
	for _, t := range totals {
		if len(wanted) == 0 || wanted[t.Slug] {
			count += t.Total
		}
	}
	return count, nil
}

// FetchOrderStatusOptions returns the statuses available on the site with their counts
func (c *OrderRestClient) FetchOrderStatusOptions(ctx context.Context, site shared.Site) ([]order.StatusOption, error) {
	totals, err := c.fetchTotals(ctx, site)
	if err != nil {
		return nil, err
	}
	options := make([]order.StatusOption, 0, len(totals))
	for _, t := range totals {
		options = append(options, order.StatusOption{
			LocalSiteID: site.LocalID,
			StatusKey:   t.Slug,
			Label:       t.Name,
			StatusCount: t.Total,
		})
	}
	return options, nil
}

// FetchHasOrders reports whether the site has at least one order with the status
func (c *OrderRestClient) FetchHasOrders(ctx context.Context, site shared.Site, status string) (bool, error) {
	params := url.Values{
		"per_page": {"1"},
		"offset":   {"0"},
		"status":   {statusOrAny(status)},
		"_fields":  {"id"},
	}
	body, err := c.raw(ctx, site, http.MethodGet, route(nsV3, "orders/"), params)
	if err != nil {
		return false, err
	}
	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return false, shared.NewNetworkError(shared.ErrorParseError, "orders response is not a list")
	}
	return len(parsed.Array()) > 0, nil
}

// FetchSingleOrder fetches one order
func (c *OrderRestClient) FetchSingleOrder(ctx context.Context, site shared.Site, remoteOrderID int64) (*order.Order, error) {
	var dto OrderDTO
	if err := c.call(ctx, site, http.MethodGet, route(nsV3, "orders", formatID(remoteOrderID)), nil, nil, &dto); err != nil {
		return nil, err
	}
	o := dto.ToDomain(site.LocalID)
	return &o, nil
}

type simplePaymentRequest struct {
	Status   string       `json:"status"`
	FeeLines []FeeLineDTO `json:"fee_lines"`
}

// PostSimplePayment creates a pending order with a single fee line of amount
func (c *OrderRestClient) PostSimplePayment(ctx context.Context, site shared.Site, amount decimal.Decimal, isTaxable bool) (*order.Order, error) {
	taxStatus := "none"
	if isTaxable {
		taxStatus = "taxable"
	}
	req := simplePaymentRequest{
		Status: order.StatusPending,
		FeeLines: []FeeLineDTO{{
			Name:      SimplePaymentFeeName,
			Total:     amount.StringFixed(2),
			TaxStatus: taxStatus,
		}},
	}
	var dto OrderDTO
	if err := c.call(ctx, site, http.MethodPost, route(nsV3, "orders/"), nil, req, &dto); err != nil {
		return nil, err
	}
	o := dto.ToDomain(site.LocalID)
	return &o, nil
}

// UpdateOrderStatus changes the status of an order remotely and returns the updated order
func (c *OrderRestClient) UpdateOrderStatus(ctx context.Context, site shared.Site, remoteOrderID int64, status string) (*order.Order, error) {
	var dto OrderDTO
	body := map[string]string{"status": status}
	if err := c.call(ctx, site, http.MethodPut, route(nsV3, "orders", formatID(remoteOrderID)), nil, body, &dto); err != nil {
		return nil, err
	}
	o := dto.ToDomain(site.LocalID)
	return &o, nil
}

// UpdateOrderAddresses replaces the billing and shipping addresses of an order
func (c *OrderRestClient) UpdateOrderAddresses(ctx context.Context, site shared.Site, remoteOrderID int64, billing, shipping order.Address) (*order.Order, error) {
	body := struct {
		Billing  BillingDTO  `json:"billing"`
		Shipping ShippingDTO `json:"shipping"`
	}{BillingFromAddress(billing), ShippingFromAddress(shipping)}

	var dto OrderDTO
	if err := c.call(ctx, site, http.MethodPut, route(nsV3, "orders", formatID(remoteOrderID)), nil, body, &dto); err != nil {
		return nil, err
	}
	o := dto.ToDomain(site.LocalID)
	return &o, nil
}

// FetchOrderNotes fetches every note of an order
func (c *OrderRestClient) FetchOrderNotes(ctx context.Context, site shared.Site, localOrderID, remoteOrderID int64) ([]order.Note, error) {
	var dtos []OrderNoteDTO
	path := route(nsV3, "orders", formatID(remoteOrderID), "notes/")
	if err := c.call(ctx, site, http.MethodGet, path, nil, nil, &dtos); err != nil {
		return nil, err
	}
	notes := make([]order.Note, 0, len(dtos))
	for _, d := range dtos {
		notes = append(notes, d.toDomain(site.LocalID, localOrderID))
	}
	return notes, nil
}

// PostOrderNote adds a note to an order
func (c *OrderRestClient) PostOrderNote(ctx context.Context, site shared.Site, localOrderID, remoteOrderID int64, note order.Note) (*order.Note, error) {
	body := map[string]any{"note": note.Note, "customer_note": note.IsCustomerNote}
	var dto OrderNoteDTO
	path := route(nsV3, "orders", formatID(remoteOrderID), "notes/")
	if err := c.call(ctx, site, http.MethodPost, path, nil, body, &dto); err != nil {
		return nil, err
	}
	n := dto.toDomain(site.LocalID, localOrderID)
	return &n, nil
}

func trackingsPath(remoteOrderID int64, rest ...string) string {
	segments := append([]string{"orders", formatID(remoteOrderID), "shipment-trackings"}, rest...)
	return route(nsV2, segments...) + "/"
}

// FetchOrderShipmentTrackings fetches the trackings of an order
func (c *OrderRestClient) FetchOrderShipmentTrackings(ctx context.Context, site shared.Site, localOrderID, remoteOrderID int64) ([]order.ShipmentTracking, error) {
	var dtos []ShipmentTrackingDTO
	if err := c.call(ctx, site, http.MethodGet, trackingsPath(remoteOrderID), nil, nil, &dtos); err != nil {
		return nil, err
	}
	trackings := make([]order.ShipmentTracking, 0, len(dtos))
	for _, d := range dtos {
		trackings = append(trackings, d.toDomain(site.LocalID, localOrderID))
	}
	return trackings, nil
}

// AddOrderShipmentTracking adds a tracking to an order. Custom providers are
// sent with their own name and link.
func (c *OrderRestClient) AddOrderShipmentTracking(ctx context.Context, site shared.Site, localOrderID, remoteOrderID int64, tracking order.ShipmentTracking, isCustomProvider bool) (*order.ShipmentTracking, error) {
	body := map[string]string{
		"tracking_number": tracking.TrackingNumber,
		"date_shipped":    tracking.DateShipped,
	}
	if isCustomProvider {
		body["custom_tracking_provider"] = tracking.TrackingProvider
		body["custom_tracking_link"] = tracking.TrackingLink
	} else {
		body["tracking_provider"] = tracking.TrackingProvider
	}

	var dto ShipmentTrackingDTO
	if err := c.call(ctx, site, http.MethodPost, trackingsPath(remoteOrderID), nil, body, &dto); err != nil {
		return nil, err
	}
	added := dto.toDomain(site.LocalID, localOrderID)
	return &added, nil
}

// DeleteOrderShipmentTracking removes a tracking from an order
func (c *OrderRestClient) DeleteOrderShipmentTracking(ctx context.Context, site shared.Site, remoteOrderID int64, tracking order.ShipmentTracking) error {
	if tracking.RemoteTrackingID == "" {
		return shared.NewNetworkError(shared.ErrorUnknown, "tracking has no remote id")
	}
	return c.call(ctx, site, http.MethodDelete, trackingsPath(remoteOrderID, tracking.RemoteTrackingID), nil, nil, nil)
}

// FetchOrderShipmentProviders fetches the carriers known to the plugin, grouped
// by country in the order the API lists them.
func (c *OrderRestClient) FetchOrderShipmentProviders(ctx context.Context, site shared.Site, remoteOrderID int64) ([]order.ShipmentProvider, error) {
	body, err := c.raw(ctx, site, http.MethodGet, trackingsPath(remoteOrderID, "providers"), nil)
	if err != nil {
		return nil, err
	}
	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return nil, shared.NewNetworkError(shared.ErrorParseError, fmt.Sprintf("unexpected providers payload %q", parsed.Type))
	}

	var providers []order.ShipmentProvider
	parsed.ForEach(func(country, carriers gjson.Result) bool {
		carriers.ForEach(func(name, link gjson.Result) bool {
			providers = append(providers, order.ShipmentProvider{
				LocalSiteID: site.LocalID,
				Country:     country.String(),
				CarrierName: name.String(),
				CarrierLink: link.String(),
			})
			return true
		})
		return true
	})
	return providers, nil
}

func splitStatuses(filter string) []string {
	var out []string
	for _, s := range strings.Split(filter, ",") {
		if s = strings.TrimSpace(s); s != "" && s != order.DefaultOrderStatus {
			out = append(out, s)
		}
	}
	return out
}
