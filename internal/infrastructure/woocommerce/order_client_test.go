package woocommerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/order"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

const sampleOrderJSON = `{
	"id": 1127,
	"number": "1127",
	"status": "processing",
	"currency": "USD",
	"order_key": "wc_order_abc",
	"date_created_gmt": "2024-03-01T10:00:00",
	"date_modified_gmt": "2024-03-02T11:30:00",
	"date_paid_gmt": "2024-03-01T10:05:00",
	"total": "44.20",
	"total_tax": "2.20",
	"shipping_total": "5.00",
	"discount_total": "3.00",
	"payment_method": "stripe",
	"payment_method_title": "Credit card",
	"prices_include_tax": false,
	"customer_note": "Leave at the door",
	"customer_id": 12,
	"billing": {"first_name": "Ana", "last_name": "Silva", "email": null, "city": "Lisbon", "country": "PT"},
	"shipping": {"first_name": "Ana", "last_name": "Silva", "city": "Porto", "country": "PT"},
	"line_items": [
		{"id": 7, "name": "Beanie", "product_id": 31, "variation_id": 0, "quantity": 2, "subtotal": "36.00", "total": "33.00", "total_tax": "2.20", "sku": "BEA-1", "price": 18}
	],
	"coupon_lines": [{"code": "spring"}, {"code": "vip"}],
	"refunds": [{"id": 1, "total": "-4.00"}, {"id": 2, "total": "-1.50"}],
	"meta_data": [
		{"id": 91, "key": "_wc_internal", "value": "x"},
		{"id": 92, "key": "gift_message", "value": "Happy birthday"},
		{"id": 93, "key": "gift_wrap", "value": {"paper": "red"}}
	]
}`

func sampleOrder(t *testing.T) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(sampleOrderJSON), &m))
	return m
}

func orderPage(t *testing.T, n int) []map[string]any {
	page := make([]map[string]any, n)
	for i := range page {
		o := sampleOrder(t)
		o["id"] = 1000 + i
		o["number"] = fmt.Sprint(1000 + i)
		page[i] = o
	}
	return page
}

// ---- Order Mapping Tests ----

func TestOrderDTO_ToDomain(t *testing.T) {
	var dto OrderDTO
	require.NoError(t, json.Unmarshal([]byte(sampleOrderJSON), &dto))

	o := dto.ToDomain(3)
	assert.Equal(t, int64(3), o.LocalSiteID)
	assert.Equal(t, int64(1127), o.RemoteOrderID)
	assert.Equal(t, "processing", o.Status)
	assert.Equal(t, "2024-03-01T10:00:00Z", o.DateCreated)
	assert.Equal(t, "2024-03-02T11:30:00Z", o.DateModified)
	assert.Equal(t, "2024-03-01T10:05:00Z", o.DatePaid)
	assert.True(t, o.Total.Equal(decimal.RequireFromString("44.20")))
	assert.True(t, o.RefundTotal.Equal(decimal.RequireFromString("-5.50")))
	assert.Equal(t, "spring,vip", o.DiscountCodes)
	assert.Equal(t, "", o.Billing.Email)
	assert.Equal(t, "Lisbon", o.Billing.City)
	assert.Equal(t, "Porto", o.Shipping.City)

	require.Len(t, o.LineItems, 1)
	li := o.LineItems[0]
	assert.Equal(t, int64(7), li.RemoteItemID)
	assert.Equal(t, float64(2), li.Quantity)
	assert.True(t, li.Price.Equal(decimal.NewFromInt(18)))
	assert.True(t, li.Subtotal.Equal(decimal.NewFromInt(36)))

	require.Len(t, o.MetaData, 2)
	assert.Equal(t, "gift_message", o.MetaData[0].Key)
	assert.Equal(t, `{"paper":"red"}`, o.MetaData[1].Value)
}

func TestBillingFromAddress_EmptyEmailIsNull(t *testing.T) {
	payload, err := json.Marshal(BillingFromAddress(order.Address{FirstName: "Ana"}))
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"email":null`)

	payload, err = json.Marshal(BillingFromAddress(order.Address{Email: "ana@example.com"}))
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"email":"ana@example.com"`)
}

// ---- Order Fetch Tests ----

func TestOrderRestClient_FetchOrders(t *testing.T) {
	t.Run("full page can load more", func(t *testing.T) {
		c := NewOrderRestClient(newTestClient(t, func(w http.ResponseWriter, req tunneled) any {
			assert.Equal(t, "get", req.Method)
			assert.Equal(t, "/wc/v3/orders/", req.Route)
			assert.Equal(t, "15", req.Query.Get("per_page"))
			assert.Equal(t, "30", req.Query.Get("offset"))
			assert.Equal(t, "processing", req.Query.Get("status"))
			return orderPage(t, order.NumOrdersPerFetch)
		}))

		page, err := c.FetchOrders(context.Background(), testSite, 30, "processing")
		require.NoError(t, err)
		assert.Len(t, page.Orders, order.NumOrdersPerFetch)
		assert.True(t, page.CanLoadMore)
		assert.Equal(t, int64(3), page.Orders[0].LocalSiteID)
	})

	t.Run("short page and default status", func(t *testing.T) {
		c := NewOrderRestClient(newTestClient(t, func(w http.ResponseWriter, req tunneled) any {
			assert.Equal(t, order.DefaultOrderStatus, req.Query.Get("status"))
			return orderPage(t, 2)
		}))

		page, err := c.FetchOrders(context.Background(), testSite, 0, "")
		require.NoError(t, err)
		assert.Len(t, page.Orders, 2)
		assert.False(t, page.CanLoadMore)
	})

	t.Run("api error keeps its code", func(t *testing.T) {
		c := NewOrderRestClient(newTestClient(t, func(w http.ResponseWriter, req tunneled) any {
			writeError(w, http.StatusBadRequest, "rest_invalid_param", "Invalid parameter(s): status")
			return nil
		}))

		_, err := c.FetchOrders(context.Background(), testSite, 0, "bogus")
		var ne *shared.NetworkError
		require.True(t, errors.As(err, &ne))
		assert.Equal(t, "rest_invalid_param", ne.APIError)
		assert.Equal(t, order.ErrorInvalidParam, order.ErrorFromNetwork(err).Type)
	})
}

func TestOrderRestClient_FetchOrderListSummaries(t *testing.T) {
	descriptor := order.ListDescriptor{Site: testSite, StatusFilter: "completed", SearchQuery: "ana", ExcludeFutureOrders: true}
	c := NewOrderRestClient(newTestClient(t, func(w http.ResponseWriter, req tunneled) any {
		assert.Equal(t, summaryFields, req.Query.Get("_fields"))
		assert.Equal(t, "completed", req.Query.Get("status"))
		assert.Equal(t, "ana", req.Query.Get("search"))
		assert.Equal(t, "2024-05-01T12:00:00", req.Query.Get("before"))
		assert.Equal(t, "15", req.Query.Get("offset"))
		return []map[string]any{
			{"id": 10, "date_created_gmt": "2024-04-01T00:00:00", "date_modified_gmt": "2024-04-02T00:00:00"},
			{"id": 11, "date_created_gmt": "2024-04-03T00:00:00", "date_modified_gmt": "2024-04-03T00:00:00"},
		}
	}))
	c.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	page, err := c.FetchOrderListSummaries(context.Background(), descriptor, 15)
	require.NoError(t, err)
	require.Len(t, page.Summaries, 2)
	assert.False(t, page.CanLoadMore)
	assert.Equal(t, order.Summary{LocalSiteID: 3, RemoteOrderID: 10, DateCreated: "2024-04-01T00:00:00Z", DateModified: "2024-04-02T00:00:00Z"}, page.Summaries[0])
}

func TestOrderRestClient_FetchOrdersByIDs(t *testing.T) {
	c := NewOrderRestClient(newTestClient(t, func(w http.ResponseWriter, req tunneled) any {
		assert.Equal(t, "5,6,7", req.Query.Get("include"))
		assert.Equal(t, "3", req.Query.Get("per_page"))
		return orderPage(t, 3)
	}))

	orders, err := c.FetchOrdersByIDs(context.Background(), testSite, []int64{5, 6, 7})
	require.NoError(t, err)
	assert.Len(t, orders, 3)
}

func TestOrderRestClient_Totals(t *testing.T) {
	totals := []map[string]any{
		{"slug": "pending", "name": "Pending payment", "total": 2},
		{"slug": "processing", "name": "Processing", "total": 5},
		{"slug": "completed", "name": "Completed", "total": 40},
	}
	c := NewOrderRestClient(newTestClient(t, func(w http.ResponseWriter, req tunneled) any {
		assert.Equal(t, "/wc/v3/reports/orders/totals", req.Route)
		return totals
	}))

	count, err := c.FetchOrderCount(context.Background(), testSite, "processing")
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	count, err = c.FetchOrderCount(context.Background(), testSite, "pending,processing")
	require.NoError(t, err)
	assert.Equal(t, 7, count)

	count, err = c.FetchOrderCount(context.Background(), testSite, "")
	require.NoError(t, err)
	assert.Equal(t, 47, count)

	options, err := c.FetchOrderStatusOptions(context.Background(), testSite)
	require.NoError(t, err)
	require.Len(t, options, 3)
	assert.Equal(t, order.StatusOption{LocalSiteID: 3, StatusKey: "pending", Label: "Pending payment", StatusCount: 2}, options[0])
}

func TestOrderRestClient_FetchHasOrders(t *testing.T) {
	tests := []struct {
		name string
		data any
		want bool
	}{
		{"no orders", []any{}, false},
		{"one order", []map[string]any{{"id": 1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOrderRestClient(newTestClient(t, func(w http.ResponseWriter, req tunneled) any {
				assert.Equal(t, "1", req.Query.Get("per_page"))
				return tt.data
			}))
			has, err := c.FetchHasOrders(context.Background(), testSite, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, has)
		})
	}
}

// ---- Order Update Tests ----

func TestOrderRestClient_PostSimplePayment(t *testing.T) {
	c := NewOrderRestClient(newTestClient(t, func(w http.ResponseWriter, req tunneled) any {
		assert.Equal(t, "post", req.Method)
		assert.JSONEq(t, `{"status":"pending","fee_lines":[{"name":"Simple Payment","total":"10.00","tax_status":"taxable"}]}`, req.Body)
		o := sampleOrder(t)
		o["status"] = "pending"
		return o
	}))

	o, err := c.PostSimplePayment(context.Background(), testSite, decimal.NewFromInt(10), true)
	require.NoError(t, err)
	assert.Equal(t, "pending", o.Status)
}

func TestOrderRestClient_UpdateOrderStatus(t *testing.T) {
	c := NewOrderRestClient(newTestClient(t, func(w http.ResponseWriter, req tunneled) any {
		assert.Equal(t, "put", req.Method)
		assert.Equal(t, "/wc/v3/orders/1127", req.Route)
		assert.JSONEq(t, `{"status":"completed"}`, req.Body)
		o := sampleOrder(t)
		o["status"] = "completed"
		return o
	}))

	o, err := c.UpdateOrderStatus(context.Background(), testSite, 1127, "completed")
	require.NoError(t, err)
	assert.Equal(t, "completed", o.Status)
	assert.Equal(t, int64(1127), o.RemoteOrderID)
}

func TestOrderRestClient_Notes(t *testing.T) {
	c := NewOrderRestClient(newTestClient(t, func(w http.ResponseWriter, req tunneled) any {
		assert.Equal(t, "/wc/v3/orders/1127/notes/", req.Route)
		if req.Method == "post" {
			assert.JSONEq(t, `{"note":"Packed","customer_note":true}`, req.Body)
			return map[string]any{"id": 80, "author": "Ana", "date_created_gmt": "2024-03-03T09:00:00", "note": "Packed", "customer_note": true}
		}
		return []map[string]any{
			{"id": 70, "author": "system", "date_created_gmt": "2024-03-01T10:05:00", "note": "Payment received"},
			{"id": 71, "author": "Ana", "date_created_gmt": "2024-03-02T10:05:00", "note": "Called customer"},
		}
	}))

	notes, err := c.FetchOrderNotes(context.Background(), testSite, 55, 1127)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.True(t, notes[0].IsSystemNote)
	assert.False(t, notes[1].IsSystemNote)
	assert.Equal(t, int64(55), notes[1].LocalOrderID)

	note, err := c.PostOrderNote(context.Background(), testSite, 55, 1127, order.Note{Note: "Packed", IsCustomerNote: true})
	require.NoError(t, err)
	assert.Equal(t, int64(80), note.RemoteNoteID)
	assert.True(t, note.IsCustomerNote)
}

// ---- Shipment Tracking Tests ----

func TestOrderRestClient_AddOrderShipmentTracking(t *testing.T) {
	tracking := order.ShipmentTracking{TrackingNumber: "TRK1", TrackingProvider: "Local Courier", TrackingLink: "https://courier.example/TRK1", DateShipped: "2024-03-04"}

	tests := []struct {
		name   string
		custom bool
		want   string
	}{
		{"known provider", false, `{"tracking_number":"TRK1","date_shipped":"2024-03-04","tracking_provider":"Local Courier"}`},
		{"custom provider", true, `{"tracking_number":"TRK1","date_shipped":"2024-03-04","custom_tracking_provider":"Local Courier","custom_tracking_link":"https://courier.example/TRK1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOrderRestClient(newTestClient(t, func(w http.ResponseWriter, req tunneled) any {
				assert.Equal(t, "/wc/v2/orders/1127/shipment-trackings/", req.Route)
				assert.JSONEq(t, tt.want, req.Body)
				return map[string]any{"tracking_id": "abc", "tracking_number": "TRK1", "tracking_provider": "Local Courier", "date_shipped": "2024-03-04"}
			}))
			added, err := c.AddOrderShipmentTracking(context.Background(), testSite, 55, 1127, tracking, tt.custom)
			require.NoError(t, err)
			assert.Equal(t, "abc", added.RemoteTrackingID)
			assert.Equal(t, int64(55), added.LocalOrderID)
		})
	}
}

func TestOrderRestClient_DeleteOrderShipmentTracking(t *testing.T) {
	c := NewOrderRestClient(newTestClient(t, func(w http.ResponseWriter, req tunneled) any {
		assert.Equal(t, "delete", req.Method)
		assert.Equal(t, "/wc/v2/orders/1127/shipment-trackings/abc/", req.Route)
		return map[string]any{"tracking_id": "abc"}
	}))

	require.NoError(t, c.DeleteOrderShipmentTracking(context.Background(), testSite, 1127, order.ShipmentTracking{RemoteTrackingID: "abc"}))
	assert.Error(t, c.DeleteOrderShipmentTracking(context.Background(), testSite, 1127, order.ShipmentTracking{}))
}

func TestOrderRestClient_FetchOrderShipmentProviders(t *testing.T) {
	c := NewOrderRestClient(newTestClient(t, func(w http.ResponseWriter, req tunneled) any {
		assert.Equal(t, "/wc/v2/orders/1127/shipment-trackings/providers/", req.Route)
		return json.RawMessage(`{"Portugal":{"CTT":"https://ctt.pt/%1$s"},"United States":{"USPS":"https://usps.com/%1$s","UPS":"https://ups.com/%1$s"}}`)
	}))

	providers, err := c.FetchOrderShipmentProviders(context.Background(), testSite, 1127)
	require.NoError(t, err)
	require.Len(t, providers, 3)
	assert.Equal(t, order.ShipmentProvider{LocalSiteID: 3, Country: "Portugal", CarrierName: "CTT", CarrierLink: "https://ctt.pt/%1$s"}, providers[0])
	assert.Equal(t, "USPS", providers[1].CarrierName)
	assert.Equal(t, "UPS", providers[2].CarrierName)
}
