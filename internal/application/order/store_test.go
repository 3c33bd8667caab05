package order

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/list"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/order"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/persistence"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/woocommerce"
	"github.com/wordpress-mobile/fluxc-go/internal/testutil"
	"go.uber.org/zap"
)

var testSite = shared.Site{LocalID: 1, SiteID: 4242, URL: "https://shop.example.com", IsJetpackConnected: true, HasWooCommerce: true}

type fixture struct {
	store      *Store
	client     *MockRestClient
	dispatcher *testutil.RecordingDispatcher
	orders     *persistence.GormOrderRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDatabase(t)
	client := &MockRestClient{}
	d := testutil.NewRecordingDispatcher()
	orders := persistence.NewGormOrderRepository(db.DB)
	store := NewStore(d, client, Repositories{
		Orders:        orders,
		Summaries:     persistence.NewGormOrderSummaryRepository(db.DB),
		Notes:         persistence.NewGormOrderNoteRepository(db.DB),
		StatusOptions: persistence.NewGormOrderStatusOptionRepository(db.DB),
		Trackings:     persistence.NewGormShipmentTrackingRepository(db.DB),
		Providers:     persistence.NewGormShipmentProviderRepository(db.DB),
		Tx:            db,
	}, zap.NewNop())
	d.Forward(store)
	t.Cleanup(func() { client.AssertExpectations(t) })
	return &fixture{store: store, client: client, dispatcher: d, orders: orders}
}

func newOrder(remoteID int64, status, modified string) order.Order {
	return order.Order{
		LocalSiteID:   testSite.LocalID,
		RemoteOrderID: remoteID,
		Number:        strconv.FormatInt(remoteID, 10),
		Status:        status,
		Currency:      "USD",
		DateCreated:   "2024-01-01T10:00:00Z",
		DateModified:  modified,
		Total:         decimal.RequireFromString("10.00"),
		LineItems: []order.LineItem{
			{RemoteItemID: remoteID * 10, ProductID: 7, Name: "Mug", Quantity: 1, Total: decimal.RequireFromString("10.00")},
		},
	}
}

func (f *fixture) seed(t *testing.T, orders ...order.Order) {
	t.Helper()
	for i := range orders {
		require.NoError(t, f.orders.Upsert(context.Background(), &orders[i]))
	}
}

func lastOrderChanged(t *testing.T, d *testutil.RecordingDispatcher) *order.OnOrderChanged {
	t.Helper()
	events := d.Events(order.EventOrderChanged)
	require.NotEmpty(t, events)
	return events[len(events)-1].(*order.OnOrderChanged)
}

func networkErr(t shared.GenericErrorType, apiError, message string) *shared.NetworkError {
	ne := shared.NewNetworkError(t, message)
	ne.APIError = apiError
	return ne
}

// ---- Fetch Orders Tests ----

func TestStore_FetchOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("first page replaces the cached orders", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, newOrder(1, order.StatusCompleted, "2024-01-01T10:00:00Z"))
		page := make([]order.Order, order.NumOrdersPerFetch)
		for i := range page {
			page[i] = newOrder(int64(100+i), order.StatusProcessing, "2024-02-01T10:00:00Z")
		}
		f.client.On("FetchOrders", mock.Anything, testSite, int64(0), "processing").
			Return(&woocommerce.OrdersPage{Orders: page, CanLoadMore: true}, nil).Once()

		err := f.store.OnAction(ctx, shared.NewAction(order.ActionFetchOrders,
			order.FetchOrdersPayload{Site: testSite, StatusFilter: "processing"}))
		require.NoError(t, err)

		cached, err := f.store.GetOrdersForSite(ctx, testSite)
		require.NoError(t, err)
		assert.Len(t, cached, order.NumOrdersPerFetch)
		missing, err := f.store.GetOrderByIDAndSite(ctx, 1, testSite)
		require.NoError(t, err)
		assert.Nil(t, missing)

		event := lastOrderChanged(t, f.dispatcher)
		assert.NoError(t, event.Err())
		assert.Equal(t, order.ActionFetchOrders, event.CauseOfChange)
		assert.Equal(t, "processing", event.StatusFilter)
		assert.True(t, event.CanLoadMore)
		assert.Equal(t, order.NumOrdersPerFetch, event.Count)
		assert.Equal(t, int64(order.NumOrdersPerFetch), event.RowsAffected)
		assert.Len(t, f.dispatcher.Actions(order.ActionFetchedOrders), 1)
	})

	t.Run("load more starts at the cached count and keeps existing rows", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, newOrder(1, order.StatusCompleted, "x"), newOrder(2, order.StatusCompleted, "x"))
		f.client.On("FetchOrders", mock.Anything, testSite, int64(2), "").
			Return(&woocommerce.OrdersPage{Orders: []order.Order{newOrder(3, order.StatusPending, "x")}}, nil).Once()

		require.NoError(t, f.store.OnAction(ctx, shared.NewAction(order.ActionFetchOrders,
			order.FetchOrdersPayload{Site: testSite, LoadMore: true})))

		cached, err := f.store.GetOrdersForSite(ctx, testSite)
		require.NoError(t, err)
		assert.Len(t, cached, 3)
		assert.False(t, lastOrderChanged(t, f.dispatcher).CanLoadMore)
	})

	t.Run("error is reported and the cache is untouched", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, newOrder(1, order.StatusCompleted, "x"))
		f.client.On("FetchOrders", mock.Anything, testSite, int64(0), "bogus").
			Return(nil, networkErr(shared.ErrorUnknown, "rest_invalid_param", "Invalid parameter(s): status")).Once()

		require.NoError(t, f.store.OnAction(ctx, shared.NewAction(order.ActionFetchOrders,
			order.FetchOrdersPayload{Site: testSite, StatusFilter: "bogus"})))

		event := lastOrderChanged(t, f.dispatcher)
		require.NotNil(t, event.OrderError)
		assert.Equal(t, order.ErrorInvalidParam, event.OrderError.Type)
		cached, err := f.store.GetOrdersForSite(ctx, testSite)
		require.NoError(t, err)
		assert.Len(t, cached, 1)
	})
}

// ---- Order List Tests ----

func TestStore_FetchOrderList(t *testing.T) {
	ctx := context.Background()
	descriptor := order.NewListDescriptor(testSite, order.StatusProcessing)

	t.Run("fetches outdated and missing orders and reports the page", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t,
			newOrder(10, order.StatusProcessing, "2024-01-01T00:00:00Z"),
			newOrder(11, order.StatusProcessing, "2024-01-01T00:00:00Z"),
		)
		summaries := []order.Summary{
			{LocalSiteID: 1, RemoteOrderID: 10, DateModified: "2024-01-01T00:00:00Z"},
			{LocalSiteID: 1, RemoteOrderID: 11, DateModified: "2024-03-01T00:00:00Z"},
			{LocalSiteID: 1, RemoteOrderID: 12, DateModified: "2024-03-01T00:00:00Z"},
		}
		f.client.On("FetchOrderListSummaries", mock.Anything, descriptor, int64(0)).
			Return(&woocommerce.SummariesPage{Summaries: summaries}, nil).Once()
		f.client.On("FetchOrdersByIDs", mock.Anything, testSite, []int64{11, 12}).
			Return([]order.Order{
				newOrder(11, order.StatusCompleted, "2024-03-01T00:00:00Z"),
				newOrder(12, order.StatusProcessing, "2024-03-01T00:00:00Z"),
			}, nil).Once()

		err := f.store.OnAction(ctx, shared.NewAction(order.ActionFetchOrderList, order.FetchOrderListPayload{
			Descriptor:       descriptor,
			RequestStartTime: time.Now().Add(-time.Second),
		}))
		require.NoError(t, err)

		refreshed, err := f.store.GetOrdersForDescriptor(ctx, descriptor, []int64{10, 11, 12})
		require.NoError(t, err)
		assert.Len(t, refreshed, 3)
		assert.Equal(t, order.StatusCompleted, refreshed[11].Status)

		stored, err := f.store.GetOrderSummariesByRemoteOrderIDs(ctx, testSite, []int64{10, 11, 12})
		require.NoError(t, err)
		assert.Len(t, stored, 3)

		fetched := f.dispatcher.Events(order.EventOrderSummariesFetched)
		require.Len(t, fetched, 1)
		assert.Positive(t, fetched[0].(*order.OnOrderSummariesFetched).Duration)

		byIDs := f.dispatcher.Events(order.EventOrdersFetchedByIDs)
		require.Len(t, byIDs, 1)
		assert.Equal(t, []int64{11, 12}, byIDs[0].(*order.OnOrdersFetchedByIDs).OrderIDs)

		invalidated := f.dispatcher.Actions(list.ActionListDataInvalidated)
		require.Len(t, invalidated, 1)
		assert.Equal(t, order.CalculateTypeIdentifier(1), invalidated[0].Payload.(list.ListDataInvalidatedPayload).TypeIdentifier)

		items := f.dispatcher.Actions(list.ActionFetchedListItems)
		require.Len(t, items, 1)
		payload := items[0].Payload.(list.FetchedListItemsPayload)
		assert.Equal(t, []int64{10, 11, 12}, payload.RemoteItemIDs)
		assert.False(t, payload.LoadedMore)
		assert.Nil(t, payload.Error)
	})

	t.Run("nothing to fetch when the cache is current", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, newOrder(10, order.StatusProcessing, "same"))
		f.client.On("FetchOrderListSummaries", mock.Anything, descriptor, int64(15)).
			Return(&woocommerce.SummariesPage{Summaries: []order.Summary{{LocalSiteID: 1, RemoteOrderID: 10, DateModified: "same"}}}, nil).Once()

		require.NoError(t, f.store.OnAction(ctx, shared.NewAction(order.ActionFetchOrderList,
			order.FetchOrderListPayload{Descriptor: descriptor, Offset: 15})))

		assert.Empty(t, f.dispatcher.Actions(order.ActionFetchOrdersByIDs))
		payload := f.dispatcher.Actions(list.ActionFetchedListItems)[0].Payload.(list.FetchedListItemsPayload)
		assert.True(t, payload.LoadedMore)
	})

	t.Run("failure becomes a generic list error", func(t *testing.T) {
		f := newFixture(t)
		f.client.On("FetchOrderListSummaries", mock.Anything, descriptor, int64(0)).
			Return(nil, shared.NewNetworkError(shared.ErrorTimeout, "timed out")).Once()

		require.NoError(t, f.store.OnAction(ctx, shared.NewAction(order.ActionFetchOrderList,
			order.FetchOrderListPayload{Descriptor: descriptor})))

		assert.Len(t, f.dispatcher.Events(order.EventOrderSummariesFetched), 1)
		payload := f.dispatcher.Actions(list.ActionFetchedListItems)[0].Payload.(list.FetchedListItemsPayload)
		require.NotNil(t, payload.Error)
		assert.Equal(t, list.ErrorGeneric, payload.Error.Type)
		assert.Equal(t, "timed out", payload.Error.Message)
	})
}

func TestStore_FetchOrdersByIDs_Chunks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ids := make([]int64, 20)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	respond := func(chunk []int64) []order.Order {
		out := make([]order.Order, len(chunk))
		for i, id := range chunk {
			out[i] = newOrder(id, order.StatusProcessing, "x")
		}
		return out
	}
	f.client.On("FetchOrdersByIDs", mock.Anything, testSite, ids[:15]).Return(respond(ids[:15]), nil).Once()
	f.client.On("FetchOrdersByIDs", mock.Anything, testSite, ids[15:]).
		Return(nil, shared.NewNetworkError(shared.ErrorServerError, "boom")).Once()

	require.NoError(t, f.store.OnAction(ctx, shared.NewAction(order.ActionFetchOrdersByIDs,
		order.FetchOrdersByIDsPayload{Site: testSite, RemoteIDs: ids})))

	cached, err := f.store.GetOrdersForSite(ctx, testSite)
	require.NoError(t, err)
	assert.Len(t, cached, 15)

	events := f.dispatcher.Events(order.EventOrdersFetchedByIDs)
	require.Len(t, events, 2)
	failures := 0
	for _, e := range events {
		if e.Err() != nil {
			failures++
			assert.Equal(t, ids[15:], e.(*order.OnOrdersFetchedByIDs).OrderIDs)
		}
	}
	assert.Equal(t, 1, failures)
	assert.Len(t, f.dispatcher.Actions(list.ActionListDataInvalidated), 1)
}

func TestStore_FetchOrdersByIDs_ReportsReturnedOrders(t *testing.T) {
	f := newFixture(t)
	f.client.On("FetchOrdersByIDs", mock.Anything, testSite, []int64{7, 8, 9}).
		Return([]order.Order{newOrder(7, order.StatusPending, "x"), newOrder(9, order.StatusPending, "x")}, nil).Once()

	require.NoError(t, f.store.OnAction(context.Background(), shared.NewAction(order.ActionFetchOrdersByIDs,
		order.FetchOrdersByIDsPayload{Site: testSite, RemoteIDs: []int64{7, 8, 9}})))

	events := f.dispatcher.Events(order.EventOrdersFetchedByIDs)
	require.Len(t, events, 1)
	assert.NoError(t, events[0].Err())
	assert.Equal(t, []int64{7, 9}, events[0].(*order.OnOrdersFetchedByIDs).OrderIDs)
}

// ---- Search And Count Tests ----

func TestStore_SearchOrders(t *testing.T) {
	f := newFixture(t)
	results := []order.Order{newOrder(5, order.StatusCompleted, "x"), newOrder(6, order.StatusCompleted, "x")}
	f.client.On("SearchOrders", mock.Anything, testSite, "ada", 30).
		Return(&woocommerce.OrdersPage{Orders: results, CanLoadMore: false}, nil).Once()

	require.NoError(t, f.store.OnAction(context.Background(), shared.NewAction(order.ActionSearchOrders,
		&order.SearchOrdersPayload{Site: testSite, Query: "ada", Offset: 30})))

	events := f.dispatcher.Events(order.EventOrdersSearched)
	require.Len(t, events, 1)
	searched := events[0].(*order.OnOrdersSearched)
	assert.Equal(t, "ada", searched.Query)
	assert.Equal(t, 32, searched.NextOffset)
	assert.Len(t, searched.Results, 2)

	cached, err := f.store.GetOrdersForSite(context.Background(), testSite)
	require.NoError(t, err)
	assert.Empty(t, cached)
}

func TestStore_FetchOrdersCount(t *testing.T) {
	f := newFixture(t)
	f.client.On("FetchOrderCount", mock.Anything, testSite, "processing").Return(7, nil).Once()

	require.NoError(t, f.store.OnAction(context.Background(), shared.NewAction(order.ActionFetchOrdersCount,
		order.FetchOrdersCountPayload{Site: testSite, StatusFilter: "processing"})))

	event := lastOrderChanged(t, f.dispatcher)
	assert.Equal(t, order.ActionFetchOrdersCount, event.CauseOfChange)
	assert.Equal(t, 7, event.Count)
	assert.Equal(t, "processing", event.StatusFilter)
}

// ---- Status Option Tests ----

func TestStore_FetchOrderStatusOptions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first := []order.StatusOption{
		{LocalSiteID: 1, StatusKey: "pending", Label: "Pending payment", StatusCount: 1},
		{LocalSiteID: 1, StatusKey: "processing", Label: "Processing", StatusCount: 2},
		{LocalSiteID: 1, StatusKey: "legacy", Label: "Legacy", StatusCount: 0},
	}
	second := []order.StatusOption{
		{LocalSiteID: 1, StatusKey: "pending", Label: "Pending payment", StatusCount: 1},
		{LocalSiteID: 1, StatusKey: "processing", Label: "Processing", StatusCount: 5},
		{LocalSiteID: 1, StatusKey: "completed", Label: "Completed", StatusCount: 9},
	}
	f.client.On("FetchOrderStatusOptions", mock.Anything, testSite).Return(first, nil).Once()
	f.client.On("FetchOrderStatusOptions", mock.Anything, testSite).Return(second, nil).Once()
	action := shared.NewAction(order.ActionFetchOrderStatusOptions, order.FetchOrderStatusOptionsPayload{Site: testSite})

	require.NoError(t, f.store.OnAction(ctx, action))
	require.NoError(t, f.store.OnAction(ctx, action))

	events := f.dispatcher.Events(order.EventOrderStatusOptionsChanged)
	require.Len(t, events, 2)
	assert.Equal(t, int64(3), events[0].(*order.OnOrderStatusOptionsChanged).RowsAffected)
	// legacy deleted, processing updated, completed inserted
	assert.Equal(t, int64(3), events[1].(*order.OnOrderStatusOptionsChanged).RowsAffected)

	options, err := f.store.GetOrderStatusOptionsForSite(ctx, testSite)
	require.NoError(t, err)
	assert.Len(t, options, 3)
	processing, err := f.store.GetOrderStatusForSiteAndKey(ctx, testSite, "processing")
	require.NoError(t, err)
	assert.Equal(t, 5, processing.StatusCount)
	legacy, err := f.store.GetOrderStatusForSiteAndKey(ctx, testSite, "legacy")
	require.NoError(t, err)
	assert.Nil(t, legacy)
}

// ---- Cache Failure Tests ----

func TestStore_CacheFailuresAreReported(t *testing.T) {
	ctx := context.Background()
	diskErr := errors.New("disk I/O error")

	t.Run("orders that cannot be cached fail the fetch", func(t *testing.T) {
		f := newFixture(t)
		repo := &MockOrderRepository{Repository: f.orders}
		repo.On("Upsert", mock.Anything, mock.Anything).Return(diskErr).Once()
		f.store.orders = repo
		f.client.On("FetchOrders", mock.Anything, testSite, int64(0), "").
			Return(&woocommerce.OrdersPage{Orders: []order.Order{newOrder(1, order.StatusPending, "x")}}, nil).Once()

		require.NoError(t, f.store.OnAction(ctx, shared.NewAction(order.ActionFetchOrders,
			order.FetchOrdersPayload{Site: testSite})))

		event := lastOrderChanged(t, f.dispatcher)
		require.NotNil(t, event.OrderError)
		assert.Equal(t, order.ErrorGeneric, event.OrderError.Type)
		assert.Contains(t, event.OrderError.Message, "disk I/O error")
		assert.Zero(t, event.Count)
		repo.AssertExpectations(t)
	})

	t.Run("summaries that cannot be cached still finish the list fetch", func(t *testing.T) {
		f := newFixture(t)
		descriptor := order.NewListDescriptor(testSite, "")
		summaries := []order.Summary{{LocalSiteID: 1, RemoteOrderID: 10, DateModified: "x"}}
		repo := &MockSummaryRepository{}
		repo.On("Upsert", mock.Anything, summaries).Return(diskErr).Once()
		f.store.summaries = repo
		f.client.On("FetchOrderListSummaries", mock.Anything, descriptor, int64(0)).
			Return(&woocommerce.SummariesPage{Summaries: summaries}, nil).Once()

		require.NoError(t, f.store.OnAction(ctx, shared.NewAction(order.ActionFetchOrderList,
			order.FetchOrderListPayload{Descriptor: descriptor})))

		fetched := f.dispatcher.Events(order.EventOrderSummariesFetched)
		require.Len(t, fetched, 1)
		assert.Error(t, fetched[0].Err())
		assert.Empty(t, f.dispatcher.Actions(order.ActionFetchOrdersByIDs))

		items := f.dispatcher.Actions(list.ActionFetchedListItems)
		require.Len(t, items, 1)
		payload := items[0].Payload.(list.FetchedListItemsPayload)
		require.NotNil(t, payload.Error)
		assert.Equal(t, list.ErrorGeneric, payload.Error.Type)
		assert.Empty(t, payload.RemoteItemIDs)
		repo.AssertExpectations(t)
	})

	t.Run("orders fetched by id that cannot be cached are reported as failed", func(t *testing.T) {
		f := newFixture(t)
		repo := &MockOrderRepository{Repository: f.orders}
		repo.On("Upsert", mock.Anything, mock.Anything).Return(diskErr).Once()
		f.store.orders = repo
		f.client.On("FetchOrdersByIDs", mock.Anything, testSite, []int64{4}).
			Return([]order.Order{newOrder(4, order.StatusPending, "x")}, nil).Once()

		require.NoError(t, f.store.OnAction(ctx, shared.NewAction(order.ActionFetchOrdersByIDs,
			order.FetchOrdersByIDsPayload{Site: testSite, RemoteIDs: []int64{4}})))

		events := f.dispatcher.Events(order.EventOrdersFetchedByIDs)
		require.Len(t, events, 1)
		assert.Error(t, events[0].Err())
		assert.Empty(t, f.dispatcher.Actions(list.ActionListDataInvalidated))
		repo.AssertExpectations(t)
	})

	t.Run("status options that cannot be read are reported", func(t *testing.T) {
		f := newFixture(t)
		repo := &MockStatusOptionRepository{}
		repo.On("FindForSite", mock.Anything, testSite.LocalID).Return(nil, diskErr).Once()
		f.store.statuses = repo
		f.client.On("FetchOrderStatusOptions", mock.Anything, testSite).
			Return([]order.StatusOption{{StatusKey: "pending", Label: "Pending payment"}}, nil).Once()

		require.NoError(t, f.store.OnAction(ctx, shared.NewAction(order.ActionFetchOrderStatusOptions,
			order.FetchOrderStatusOptionsPayload{Site: testSite})))

		events := f.dispatcher.Events(order.EventOrderStatusOptionsChanged)
		require.Len(t, events, 1)
		changed := events[0].(*order.OnOrderStatusOptionsChanged)
		require.NotNil(t, changed.OrderError)
		assert.Equal(t, testSite, changed.Site)
		repo.AssertExpectations(t)
	})
}

// ---- Update Status Tests ----

func collect(results <-chan order.UpdateOrderResult) []order.UpdateOrderResult {
	var out []order.UpdateOrderResult
	for r := range results {
		out = append(out, r)
	}
	return out
}

func TestStore_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("missing order yields a single optimistic failure", func(t *testing.T) {
		f := newFixture(t)

		results := collect(f.store.UpdateOrderStatus(ctx, 99, testSite, order.StatusCompleted))

		require.Len(t, results, 1)
		assert.Equal(t, order.UpdateOptimistic, results[0].Kind)
		require.NotNil(t, results[0].Event.OrderError)
		assert.Equal(t, "Order with id 99 not found", results[0].Event.OrderError.Message)
	})

	t.Run("optimistic then remote success", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, newOrder(5, order.StatusProcessing, "x"))
		remote := newOrder(5, order.StatusCompleted, "y")
		f.client.On("UpdateOrderStatus", mock.Anything, testSite, int64(5), order.StatusCompleted).Return(&remote, nil).Once()

		results := collect(f.store.UpdateOrderStatus(ctx, 5, testSite, order.StatusCompleted))

		require.Len(t, results, 2)
		assert.Equal(t, order.UpdateOptimistic, results[0].Kind)
		assert.NoError(t, results[0].Event.Err())
		assert.Equal(t, order.UpdateRemote, results[1].Kind)
		assert.NoError(t, results[1].Event.Err())
		assert.Equal(t, order.ActionUpdateOrderStatus, results[1].Event.CauseOfChange)

		cached, err := f.store.GetOrderByIDAndSite(ctx, 5, testSite)
		require.NoError(t, err)
		assert.Equal(t, order.StatusCompleted, cached.Status)
		assert.Equal(t, "y", cached.DateModified)
		assert.Len(t, f.dispatcher.Events(order.EventOrderChanged), 1)
	})

	t.Run("remote failure restores the previous status", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, newOrder(5, order.StatusProcessing, "x"))
		f.client.On("UpdateOrderStatus", mock.Anything, testSite, int64(5), order.StatusCompleted).
			Return(nil, networkErr(shared.ErrorUnknown, "woocommerce_rest_shop_order_invalid_id", "Invalid ID.")).Once()

		results := f.store.UpdateOrderStatus(ctx, 5, testSite, order.StatusCompleted)
		first := <-results
		assert.Equal(t, order.UpdateOptimistic, first.Kind)
		second := <-results
		_, open := <-results
		assert.False(t, open)

		assert.Equal(t, order.UpdateRemote, second.Kind)
		require.NotNil(t, second.Event.OrderError)
		assert.Equal(t, order.ErrorInvalidID, second.Event.OrderError.Type)

		cached, err := f.store.GetOrderByIDAndSite(ctx, 5, testSite)
		require.NoError(t, err)
		assert.Equal(t, order.StatusProcessing, cached.Status)
	})

	t.Run("dispatching the action is rejected", func(t *testing.T) {
		f := newFixture(t)
		err := f.store.OnAction(ctx, shared.NewAction(order.ActionUpdateOrderStatus, nil))
		assert.ErrorIs(t, err, ErrUpdateStatusAction)
	})
}

// ---- Single Order Tests ----

func TestStore_FetchSingleOrderAndHasOrders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	remote := newOrder(8, order.StatusOnHold, "x")
	remote.MetaData = []order.MetaData{{ID: 1, Key: "gift", Value: "yes"}}
	f.client.On("FetchSingleOrder", mock.Anything, testSite, int64(8)).Return(&remote, nil).Once()
	f.client.On("FetchHasOrders", mock.Anything, testSite, "").Return(true, nil).Once()
	f.client.On("FetchHasOrders", mock.Anything, testSite, "failed").
		Return(false, shared.NewNetworkError(shared.ErrorParseError, "bad json")).Once()

	event := f.store.FetchSingleOrder(ctx, testSite, 8)
	require.NoError(t, event.Err())
	cached, err := f.store.GetOrderByIDAndSite(ctx, 8, testSite)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Len(t, cached.LineItems, 1)
	meta, err := f.store.GetOrderMetaData(ctx, testSite, 8)
	require.NoError(t, err)
	assert.Len(t, meta, 1)

	has := f.store.FetchHasOrders(ctx, testSite, "")
	assert.True(t, has.IsSuccess())
	assert.True(t, has.HasOrders)

	failed := f.store.FetchHasOrders(ctx, testSite, "failed")
	assert.False(t, failed.IsSuccess())
	assert.Equal(t, order.ErrorInvalidResponse, failed.Error.Type)
}

func TestStore_PostSimplePayment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	amount := decimal.RequireFromString("12.5")
	created := newOrder(77, order.StatusPending, "x")
	created.LineItems = nil
	created.FeeLines = []order.FeeLine{{Name: "Simple Payment", Total: amount, TaxStatus: "none"}}
	f.client.On("PostSimplePayment", mock.Anything, testSite, amount, false).Return(&created, nil).Once()

	result := f.store.PostSimplePayment(ctx, testSite, amount, false)

	require.NoError(t, result.Err())
	require.NotNil(t, result.Order)
	assert.Equal(t, int64(77), result.Order.RemoteOrderID)
	cached, err := f.store.GetOrderByIDAndSite(ctx, 77, testSite)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, cached.Status)
}

// ---- Notes And Tracking Tests ----

func TestStore_OrderNotes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	notes := []order.Note{
		{LocalSiteID: 1, LocalOrderID: 3, RemoteNoteID: 1, Note: "Paid", Author: "system", IsSystemNote: true},
		{LocalSiteID: 1, LocalOrderID: 3, RemoteNoteID: 2, Note: "Thanks!", Author: "ada", IsCustomerNote: true},
	}
	f.client.On("FetchOrderNotes", mock.Anything, testSite, int64(3), int64(30)).Return(notes, nil).Twice()

	first := f.store.FetchOrderNotes(ctx, testSite, 3, 30)
	second := f.store.FetchOrderNotes(ctx, testSite, 3, 30)
	assert.Equal(t, int64(2), first.RowsAffected)
	assert.Equal(t, int64(0), second.RowsAffected)

	t.Run("post validates the note", func(t *testing.T) {
		event := f.store.PostOrderNote(ctx, order.PostOrderNotePayload{Site: testSite, LocalOrderID: 3, RemoteOrderID: 30})
		require.NotNil(t, event.OrderError)
		assert.Equal(t, order.ErrorInvalidParam, event.OrderError.Type)
	})

	t.Run("post stores the created note", func(t *testing.T) {
		draft := order.Note{Note: "Shipped today", IsCustomerNote: true}
		created := order.Note{LocalSiteID: 1, LocalOrderID: 3, RemoteNoteID: 3, Note: "Shipped today", Author: "ada", IsCustomerNote: true}
		f.client.On("PostOrderNote", mock.Anything, testSite, int64(3), int64(30), draft).Return(&created, nil).Once()

		event := f.store.PostOrderNote(ctx, order.PostOrderNotePayload{Site: testSite, LocalOrderID: 3, RemoteOrderID: 30, Note: draft})
		require.NoError(t, event.Err())

		stored, err := f.store.GetOrderNotesForOrder(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, stored, 3)
	})
}

func TestStore_ShipmentTrackings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tracking := func(id, number string) order.ShipmentTracking {
		return order.ShipmentTracking{LocalSiteID: 1, LocalOrderID: 3, RemoteTrackingID: id, TrackingNumber: number, TrackingProvider: "USPS"}
	}
	f.client.On("FetchOrderShipmentTrackings", mock.Anything, testSite, int64(3), int64(30)).
		Return([]order.ShipmentTracking{tracking("a", "111"), tracking("b", "222")}, nil).Once()
	f.client.On("FetchOrderShipmentTrackings", mock.Anything, testSite, int64(3), int64(30)).
		Return([]order.ShipmentTracking{tracking("b", "222")}, nil).Once()

	require.NoError(t, f.store.FetchOrderShipmentTrackings(ctx, testSite, 3, 30).Err())
	require.NoError(t, f.store.FetchOrderShipmentTrackings(ctx, testSite, 3, 30).Err())

	stored, err := f.store.GetShipmentTrackingsForOrder(ctx, testSite, 3)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "b", stored[0].RemoteTrackingID)

	t.Run("add custom provider", func(t *testing.T) {
		draft := order.ShipmentTracking{TrackingNumber: "333", TrackingProvider: "Local courier", TrackingLink: "https://courier.example.com/333"}
		created := tracking("c", "333")
		f.client.On("AddOrderShipmentTracking", mock.Anything, testSite, int64(3), int64(30), draft, true).Return(&created, nil).Once()

		event := f.store.AddOrderShipmentTracking(ctx, order.AddShipmentTrackingPayload{
			Site: testSite, LocalOrderID: 3, RemoteOrderID: 30, Tracking: draft, IsCustomProvider: true,
		})
		require.NoError(t, event.Err())
		found, err := f.store.GetShipmentTrackingByTrackingNumber(ctx, testSite, 3, "333")
		require.NoError(t, err)
		assert.Equal(t, "c", found.RemoteTrackingID)
	})

	t.Run("add rejects an invalid tracking", func(t *testing.T) {
		event := f.store.AddOrderShipmentTracking(ctx, order.AddShipmentTrackingPayload{Site: testSite, LocalOrderID: 3, RemoteOrderID: 30})
		require.NotNil(t, event.OrderError)
		assert.Equal(t, order.ErrorInvalidParam, event.OrderError.Type)
	})

	t.Run("delete removes the cached row", func(t *testing.T) {
		target := tracking("b", "222")
		f.client.On("DeleteOrderShipmentTracking", mock.Anything, testSite, int64(30), target).Return(nil).Once()

		event := f.store.DeleteOrderShipmentTracking(ctx, order.DeleteShipmentTrackingPayload{
			Site: testSite, LocalOrderID: 3, RemoteOrderID: 30, Tracking: target,
		})
		require.NoError(t, event.Err())
		assert.Equal(t, int64(1), event.RowsAffected)
		gone, err := f.store.GetShipmentTrackingByTrackingNumber(ctx, testSite, 3, "222")
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}

func TestStore_FetchOrderShipmentProviders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	providers := []order.ShipmentProvider{
		{LocalSiteID: 1, Country: "United States", CarrierName: "USPS", CarrierLink: "https://usps/%1$s"},
		{LocalSiteID: 1, Country: "Australia", CarrierName: "Australia Post", CarrierLink: "https://auspost/%1$s"},
	}
	f.client.On("FetchOrderShipmentProviders", mock.Anything, testSite, int64(30)).Return(providers, nil).Twice()

	f.store.FetchOrderShipmentProviders(ctx, testSite, 30)
	event := f.store.FetchOrderShipmentProviders(ctx, testSite, 30)

	require.NoError(t, event.Err())
	assert.Equal(t, int64(2), event.RowsAffected)
	stored, err := f.store.GetShipmentProvidersForSite(ctx, testSite)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Australia", stored[0].Country)
}

// ---- List Data Source Tests ----

func TestListDataSource_FetchList(t *testing.T) {
	d := testutil.NewRecordingDispatcher()
	source := NewListDataSource(d)
	descriptor := order.NewListDescriptor(testSite, "")

	require.NoError(t, source.FetchList(context.Background(), descriptor, 30))

	actions := d.Actions(order.ActionFetchOrderList)
	require.Len(t, actions, 1)
	payload := actions[0].Payload.(order.FetchOrderListPayload)
	assert.Equal(t, descriptor, payload.Descriptor)
	assert.Equal(t, int64(30), payload.Offset)
	assert.False(t, payload.RequestStartTime.IsZero())
}
