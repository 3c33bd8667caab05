package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	orderapp "github.com/wordpress-mobile/fluxc-go/internal/application/order"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/bloggingprompt"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/coupon"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/customer"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/notification"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/order"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/config"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/dispatcher"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/event"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/network"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/persistence"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/scheduler"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/woocommerce"
	"github.com/wordpress-mobile/fluxc-go/internal/interfaces/http/dto"
	"github.com/wordpress-mobile/fluxc-go/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var wooSite = shared.Site{LocalID: 3, SiteID: 4242, Name: "Shop", URL: "https://shop.example", HasWooCommerce: true}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
}

func perform(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func knownSite(sites *MockSiteService) {
	site := wooSite
	sites.On("GetSiteByLocalID", mock.Anything, int64(3)).Return(&site, nil)
	sites.On("GetSiteByLocalID", mock.Anything, mock.Anything).Return(nil, nil)
}

// ---- HandleError Tests ----

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"domain not found", shared.ErrSiteNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"woo invalid param", &shared.WooError{Type: shared.WooErrorInvalidParam, Message: "bad"}, http.StatusBadRequest, dto.ErrCodeValidation},
		{"order timeout", order.NewOrderError(order.ErrorType("TIMEOUT"), "slow"), http.StatusGatewayTimeout, dto.ErrCodeUpstreamTimeout},
		{"prompt auth", &bloggingprompt.Error{Type: bloggingprompt.ErrorAuthorizationRequired}, http.StatusUnauthorized, dto.ErrCodeUnauthorized},
		{"notification invalid response", &notification.Error{Type: notification.ErrorInvalidResponse}, http.StatusBadGateway, dto.ErrCodeInvalidResponse},
		{"network timeout", &shared.NetworkError{Type: shared.ErrorTimeout}, http.StatusGatewayTimeout, dto.ErrCodeUpstreamTimeout},
		{"wrapped domain error", errors.Join(errors.New("ctx"), shared.ErrNotFound), http.StatusNotFound, dto.ErrCodeNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			h := &BaseHandler{}
			r.GET("/", func(c *gin.Context) { h.HandleError(c, tt.err) })

			w, resp := perform(t, r, http.MethodGet, "/", nil)
			assert.Equal(t, tt.status, w.Code)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"processing", "pending"}, splitList("processing, pending,,"))
	assert.Nil(t, splitList(""))
}

// ---- Site Tests ----

func TestSiteHandler_Register(t *testing.T) {
	t.Run("creates site", func(t *testing.T) {
		sites := new(MockSiteService)
		sites.On("RegisterSite", mock.Anything, mock.MatchedBy(func(s *shared.Site) bool {
			return s.SiteID == 77 && s.HasWooCommerce
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*shared.Site).LocalID = 9
		}).Return(nil)

		r := gin.New()
		h := NewSiteHandler(sites)
		r.POST("/sites", h.Register)

		w, resp := perform(t, r, http.MethodPost, "/sites", dto.RegisterSiteRequest{
			SiteID: 77, URL: "https://store.example", HasWooCommerce: true,
		})
		assert.Equal(t, http.StatusCreated, w.Code)

		var site shared.Site
		require.NoError(t, json.Unmarshal(resp.Data, &site))
		assert.Equal(t, int64(9), site.LocalID)
		sites.AssertExpectations(t)
	})

	t.Run("rejects invalid body", func(t *testing.T) {
		sites := new(MockSiteService)
		r := gin.New()
		r.POST("/sites", NewSiteHandler(sites).Register)

		w, resp := perform(t, r, http.MethodPost, "/sites", map[string]any{"site_id": 0, "url": "nope"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		sites.AssertNotCalled(t, "RegisterSite", mock.Anything, mock.Anything)
	})
}

func TestSiteHandler_List(t *testing.T) {
	sites := new(MockSiteService)
	sites.On("GetSites", mock.Anything).Return([]shared.Site{wooSite}, nil)

	r := gin.New()
	r.GET("/sites", NewSiteHandler(sites).List)

	w, resp := perform(t, r, http.MethodGet, "/sites", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var got []shared.Site
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Len(t, got, 1)
}

// ---- Order Tests ----

func orderRouter(sites *MockSiteService, orders *MockOrderService, dispatcher *emittingDispatcher, bus *event.InMemoryEventBus) *gin.Engine {
	h := NewOrderHandler(sites, orders, ActionBus{Dispatcher: dispatcher, Events: bus})
	r := gin.New()
	r.GET("/sites/:site_id/orders", h.List)
	r.POST("/sites/:site_id/orders/fetch", h.Fetch)
	r.GET("/sites/:site_id/orders/:order_id", h.Get)
	r.GET("/sites/:site_id/orders/:order_id/notes", h.Notes)
	r.PUT("/sites/:site_id/orders/:order_id/status", h.UpdateStatus)
	return r
}

func TestOrderHandler_List(t *testing.T) {
	sites, orders := new(MockSiteService), new(MockOrderService)
	knownSite(sites)
	orders.On("GetOrdersForSite", mock.Anything, wooSite, []string{"processing", "on-hold"}).
		Return([]order.Order{{ID: 1, RemoteOrderID: 100}}, nil)
	r := orderRouter(sites, orders, nil, event.NewInMemoryEventBus(nil))

	t.Run("filters by status", func(t *testing.T) {
		w, resp := perform(t, r, http.MethodGet, "/sites/3/orders?status=processing,on-hold", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var got []order.Order
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.Len(t, got, 1)
	})

	t.Run("unknown site", func(t *testing.T) {
		w, resp := perform(t, r, http.MethodGet, "/sites/99/orders", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("invalid site id", func(t *testing.T) {
		w, _ := perform(t, r, http.MethodGet, "/sites/abc/orders", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderHandler_Fetch(t *testing.T) {
	t.Run("returns the fetched page", func(t *testing.T) {
		sites := new(MockSiteService)
		knownSite(sites)
		bus := event.NewInMemoryEventBus(nil)
		fetched := order.NewOnOrderChanged(order.ActionFetchOrders, nil)
		fetched.Count = 25
		fetched.CanLoadMore = true
		dispatcher := &emittingDispatcher{bus: bus, emit: []shared.ChangeEvent{
			order.NewOnOrderChanged(order.ActionUpdateOrderStatus, nil),
			fetched,
		}}

		w, resp := perform(t, orderRouter(sites, new(MockOrderService), dispatcher, bus),
			http.MethodPost, "/sites/3/orders/fetch", dto.FetchOrdersRequest{Status: "processing"})
		assert.Equal(t, http.StatusOK, w.Code)

		var result dto.FetchResult
		require.NoError(t, json.Unmarshal(resp.Data, &result))
		assert.Equal(t, dto.FetchResult{Count: 25, CanLoadMore: true}, result)

		require.Len(t, dispatcher.actions, 1)
		payload := dispatcher.actions[0].Payload.(order.FetchOrdersPayload)
		assert.Equal(t, "processing", payload.StatusFilter)
		assert.Equal(t, wooSite, payload.Site)
	})

	t.Run("reports the event error", func(t *testing.T) {
		sites := new(MockSiteService)
		knownSite(sites)
		bus := event.NewInMemoryEventBus(nil)
		dispatcher := &emittingDispatcher{bus: bus, emit: []shared.ChangeEvent{
			order.NewOnOrderChanged(order.ActionFetchOrders, order.NewOrderError(order.ErrorPluginNotActive, "inactive")),
		}}

		w, resp := perform(t, orderRouter(sites, new(MockOrderService), dispatcher, bus),
			http.MethodPost, "/sites/3/orders/fetch", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidState, resp.Error.Code)
	})

	t.Run("dispatch failure", func(t *testing.T) {
		sites := new(MockSiteService)
		knownSite(sites)
		bus := event.NewInMemoryEventBus(nil)
		dispatcher := &emittingDispatcher{bus: bus, err: errors.New("no handler")}

		w, _ := perform(t, orderRouter(sites, new(MockOrderService), dispatcher, bus),
			http.MethodPost, "/sites/3/orders/fetch", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestOrderHandler_Fetch_CountsCachedOrders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1.1/jetpack-blogs/4242/rest-api/", r.URL.Path)
		page := make([]map[string]any, 3)
		for i := range page {
			page[i] = map[string]any{"id": 500 + i, "number": "50" + strconv.Itoa(i), "status": "processing", "currency": "USD", "total": "12.00"}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": page})
	}))
	t.Cleanup(srv.Close)

	transport, err := network.NewClient(config.APIConfig{
		BaseURL:          srv.URL,
		AccessToken:      "token",
		UserAgent:        "fluxc-go/test",
		Timeout:          2 * time.Second,
		MaxResponseBytes: 1 << 20,
	}, zap.NewNop())
	require.NoError(t, err)

	db := testutil.NewTestDatabase(t)
	bus := event.NewInMemoryEventBus(nil)
	d := dispatcher.New(bus)
	d.Register(orderapp.NewStore(d, woocommerce.NewOrderRestClient(woocommerce.NewClient(transport, zap.NewNop())), orderapp.Repositories{
		Orders:        persistence.NewGormOrderRepository(db.DB),
		Summaries:     persistence.NewGormOrderSummaryRepository(db.DB),
		Notes:         persistence.NewGormOrderNoteRepository(db.DB),
		StatusOptions: persistence.NewGormOrderStatusOptionRepository(db.DB),
		Trackings:     persistence.NewGormShipmentTrackingRepository(db.DB),
		Providers:     persistence.NewGormShipmentProviderRepository(db.DB),
		Tx:            db,
	}, zap.NewNop()))

	sites := new(MockSiteService)
	knownSite(sites)
	h := NewOrderHandler(sites, new(MockOrderService), ActionBus{Dispatcher: d, Events: bus})
	r := gin.New()
	r.POST("/sites/:site_id/orders/fetch", h.Fetch)

	w, resp := perform(t, r, http.MethodPost, "/sites/3/orders/fetch", dto.FetchOrdersRequest{Status: "processing"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result dto.FetchResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, dto.FetchResult{Count: 3, CanLoadMore: false}, result)
}

func TestOrderHandler_GetAndNotes(t *testing.T) {
	sites, orders := new(MockSiteService), new(MockOrderService)
	knownSite(sites)
	orders.On("GetOrderByIDAndSite", mock.Anything, int64(100), wooSite).Return(&order.Order{ID: 12, RemoteOrderID: 100}, nil)
	orders.On("GetOrderByIDAndSite", mock.Anything, int64(101), wooSite).Return(nil, nil)
	orders.On("GetOrderNotesForOrder", mock.Anything, int64(12)).Return([]order.Note{{ID: 1, LocalOrderID: 12}}, nil)
	r := orderRouter(sites, orders, nil, event.NewInMemoryEventBus(nil))

	w, _ := perform(t, r, http.MethodGet, "/sites/3/orders/100", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp := perform(t, r, http.MethodGet, "/sites/3/orders/100/notes", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var notes []order.Note
	require.NoError(t, json.Unmarshal(resp.Data, &notes))
	assert.Len(t, notes, 1)

	w, _ = perform(t, r, http.MethodGet, "/sites/3/orders/101", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func results(rs ...order.UpdateOrderResult) <-chan order.UpdateOrderResult {
	ch := make(chan order.UpdateOrderResult, len(rs))
	for _, r := range rs {
		ch <- r
	}
	close(ch)
	return ch
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	applied := func(kind order.UpdateResultKind) order.UpdateOrderResult {
		ev := order.NewOnOrderChanged(order.ActionUpdateOrderStatus, nil)
		ev.RowsAffected = 1
		return order.UpdateOrderResult{Kind: kind, Event: ev}
	}

	t.Run("both phases succeed", func(t *testing.T) {
		sites, orders := new(MockSiteService), new(MockOrderService)
		knownSite(sites)
		orders.On("UpdateOrderStatus", mock.Anything, int64(100), wooSite, "completed").
			Return(results(applied(order.UpdateOptimistic), applied(order.UpdateRemote)))

		w, resp := perform(t, orderRouter(sites, orders, nil, event.NewInMemoryEventBus(nil)),
			http.MethodPut, "/sites/3/orders/100/status", dto.UpdateOrderStatusRequest{Status: "completed"})
		assert.Equal(t, http.StatusOK, w.Code)

		var result dto.UpdateStatusResult
		require.NoError(t, json.Unmarshal(resp.Data, &result))
		assert.Equal(t, dto.UpdateStatusResult{OptimisticRows: 1, RemoteRows: 1, Status: "completed"}, result)
	})

	t.Run("remote failure", func(t *testing.T) {
		sites, orders := new(MockSiteService), new(MockOrderService)
		knownSite(sites)
		failed := order.UpdateOrderResult{
			Kind:  order.UpdateRemote,
			Event: order.NewOnOrderChanged(order.ActionUpdateOrderStatus, order.NewOrderError(order.ErrorInvalidParam, "bad status")),
		}
		orders.On("UpdateOrderStatus", mock.Anything, int64(100), wooSite, "nope").
			Return(results(applied(order.UpdateOptimistic), failed))

		w, resp := perform(t, orderRouter(sites, orders, nil, event.NewInMemoryEventBus(nil)),
			http.MethodPut, "/sites/3/orders/100/status", dto.UpdateOrderStatusRequest{Status: "nope"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad status", resp.Error.Message)
	})

	t.Run("missing status", func(t *testing.T) {
		sites := new(MockSiteService)
		knownSite(sites)
		w, _ := perform(t, orderRouter(sites, new(MockOrderService), nil, event.NewInMemoryEventBus(nil)),
			http.MethodPut, "/sites/3/orders/100/status", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// ---- Coupon and Customer Tests ----

func TestCouponHandler(t *testing.T) {
	sites, coupons := new(MockSiteService), new(MockCouponService)
	knownSite(sites)
	coupons.On("FetchCoupons", mock.Anything, wooSite, 1, 25).Return(true, nil)
	coupons.On("FetchCoupons", mock.Anything, wooSite, 2, 10).Return(false, &shared.WooError{Type: shared.WooErrorGeneric})
	coupons.On("GetCoupons", mock.Anything, wooSite).Return([]coupon.DataModel{}, nil)

	h := NewCouponHandler(sites, coupons)
	r := gin.New()
	r.GET("/sites/:site_id/coupons", h.List)
	r.POST("/sites/:site_id/coupons/fetch", h.Fetch)

	w, resp := perform(t, r, http.MethodPost, "/sites/3/coupons/fetch", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var result dto.FetchResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.True(t, result.CanLoadMore)

	w, _ = perform(t, r, http.MethodPost, "/sites/3/coupons/fetch", dto.PageRequest{Page: 2, PageSize: 10})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w, _ = perform(t, r, http.MethodPost, "/sites/3/coupons/fetch", dto.PageRequest{Page: 1, PageSize: 500})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = perform(t, r, http.MethodGet, "/sites/3/coupons", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	coupons.AssertExpectations(t)
}

func TestCustomerHandler_Fetch(t *testing.T) {
	sites, customers := new(MockSiteService), new(MockCustomerService)
	knownSite(sites)
	customers.On("FetchCustomers", mock.Anything, wooSite, 0, customer.FetchOptions{SearchQuery: "ann", Role: "customer"}).
		Return([]customer.Customer{{RemoteCustomerID: 5}}, nil)

	r := gin.New()
	r.POST("/sites/:site_id/customers/fetch", NewCustomerHandler(sites, customers).Fetch)

	w, resp := perform(t, r, http.MethodPost, "/sites/3/customers/fetch", dto.FetchCustomersRequest{Search: "ann", Role: "customer"})
	assert.Equal(t, http.StatusOK, w.Code)
	var got []customer.Customer
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Len(t, got, 1)
}

// ---- Prompt Tests ----

func TestPromptHandler_Fetch(t *testing.T) {
	today := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	from, err := bloggingprompt.ParseDate("2026-01-02")
	require.NoError(t, err)

	sites, prompts := new(MockSiteService), new(MockPromptService)
	knownSite(sites)
	prompts.On("FetchPrompts", mock.Anything, wooSite, defaultPromptNumber, today).Return([]bloggingprompt.Prompt{}, nil)
	prompts.On("FetchPrompts", mock.Anything, wooSite, 3, from).Return([]bloggingprompt.Prompt{}, nil)

	h := NewPromptHandler(sites, prompts)
	h.now = func() time.Time { return today }
	r := gin.New()
	r.POST("/sites/:site_id/prompts/fetch", h.Fetch)

	w, _ := perform(t, r, http.MethodPost, "/sites/3/prompts/fetch", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = perform(t, r, http.MethodPost, "/sites/3/prompts/fetch", dto.FetchPromptsRequest{Number: 3, From: "2026-01-02"})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = perform(t, r, http.MethodPost, "/sites/3/prompts/fetch", dto.FetchPromptsRequest{From: "02/01/2026"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	prompts.AssertExpectations(t)
}

// ---- Notification Tests ----

func TestNotificationHandler(t *testing.T) {
	newRouter := func(notes *MockNotificationService, dispatcher *emittingDispatcher, bus *event.InMemoryEventBus) *gin.Engine {
		h := NewNotificationHandler(notes, ActionBus{Dispatcher: dispatcher, Events: bus})
		r := gin.New()
		r.GET("/notifications", h.List)
		r.POST("/notifications/fetch", h.Fetch)
		r.POST("/notifications/seen", h.MarkSeen)
		return r
	}

	t.Run("list with filter", func(t *testing.T) {
		notes := new(MockNotificationService)
		notes.On("GetNotifications", mock.Anything, notification.Filter{
			Types: []notification.Kind{notification.KindComment, notification.KindLike},
		}).Return([]notification.Notification{{LocalID: 1}}, nil)
		notes.On("GetUnreadCount", mock.Anything).Return(int64(4), nil)

		w, resp := perform(t, newRouter(notes, nil, event.NewInMemoryEventBus(nil)), http.MethodGet, "/notifications?type=comment,like", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var got struct {
			Notifications []notification.Notification `json:"notifications"`
			Unread        int64                       `json:"unread"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.Len(t, got.Notifications, 1)
		assert.Equal(t, int64(4), got.Unread)
	})

	t.Run("fetch", func(t *testing.T) {
		bus := event.NewInMemoryEventBus(nil)
		fetched := notification.NewOnNotificationChanged(notification.ActionFetchNotifications, nil)
		fetched.ChangedNotificationLocalIDs = []int64{1, 2}
		dispatcher := &emittingDispatcher{bus: bus, emit: []shared.ChangeEvent{fetched}}

		w, resp := perform(t, newRouter(new(MockNotificationService), dispatcher, bus), http.MethodPost, "/notifications/fetch", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var result dto.FetchResult
		require.NoError(t, json.Unmarshal(resp.Data, &result))
		assert.Equal(t, 2, result.Count)
	})

	t.Run("mark seen", func(t *testing.T) {
		bus := event.NewInMemoryEventBus(nil)
		seen := notification.NewOnNotificationChanged(notification.ActionMarkNotificationsSeen, nil)
		seen.LastSeenTime = 1700000000
		dispatcher := &emittingDispatcher{bus: bus, emit: []shared.ChangeEvent{seen}}

		w, resp := perform(t, newRouter(new(MockNotificationService), dispatcher, bus), http.MethodPost, "/notifications/seen",
			dto.MarkSeenRequest{LastSeenTime: 1700000000})
		assert.Equal(t, http.StatusOK, w.Code)

		var result dto.MarkSeenResponse
		require.NoError(t, json.Unmarshal(resp.Data, &result))
		assert.Equal(t, int64(1700000000), result.LastSeenTime)
		assert.Equal(t, notification.MarkSeenPayload{LastSeenTime: 1700000000}, dispatcher.actions[0].Payload)
	})

	t.Run("fetch error", func(t *testing.T) {
		bus := event.NewInMemoryEventBus(nil)
		dispatcher := &emittingDispatcher{bus: bus, emit: []shared.ChangeEvent{
			notification.NewOnNotificationChanged(notification.ActionFetchNotifications,
				&notification.Error{Type: notification.ErrorAuthorizationRequired, Message: "login"}),
		}}

		w, resp := perform(t, newRouter(new(MockNotificationService), dispatcher, bus), http.MethodPost, "/notifications/fetch", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "login", resp.Error.Message)
	})
}

// ---- Sync Tests ----

func TestSyncHandler(t *testing.T) {
	next := time.Date(2026, 3, 14, 9, 15, 0, 0, time.UTC)
	job := scheduler.SyncJob{LocalSiteID: 3, Status: scheduler.SyncJobStatusSuccess, NextRunAt: next}

	t.Run("jobs", func(t *testing.T) {
		jobs := new(MockSyncService)
		jobs.On("Jobs").Return([]scheduler.SyncJob{job})
		r := gin.New()
		r.GET("/scheduler/jobs", NewSyncHandler(new(MockSiteService), jobs).Jobs)

		w, resp := perform(t, r, http.MethodGet, "/scheduler/jobs", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var got []dto.SyncJobResponse
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		require.Len(t, got, 1)
		assert.Equal(t, "SUCCESS", got[0].Status)
	})

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"triggered", nil, http.StatusOK},
		{"already running", scheduler.ErrSyncInProgress, http.StatusConflict},
		{"not woo", scheduler.ErrNotWooCommerceSite, http.StatusUnprocessableEntity},
		{"refresh failed", errors.New("dispatch"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sites, jobs := new(MockSiteService), new(MockSyncService)
			knownSite(sites)
			jobs.On("TriggerNow", mock.Anything, wooSite).Return(tt.err)
			jobs.On("Job", int64(3)).Return(job, true)
			r := gin.New()
			r.POST("/sites/:site_id/sync", NewSyncHandler(sites, jobs).Trigger)

			w, _ := perform(t, r, http.MethodPost, "/sites/3/sync", nil)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
