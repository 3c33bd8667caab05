package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/bloggingprompt"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/coupon"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/customer"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/notification"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/order"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/scheduler"
)

// MockSiteService is a mock implementation of SiteService
type MockSiteService struct {
	mock.Mock
}

func (m *MockSiteService) GetSites(ctx context.Context) ([]shared.Site, error) {
	args := m.Called(ctx)
	return args.Get(0).([]shared.Site), args.Error(1)
}

func (m *MockSiteService) GetSiteByLocalID(ctx context.Context, localID int64) (*shared.Site, error) {
	args := m.Called(ctx, localID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Site), args.Error(1)
}

func (m *MockSiteService) RegisterSite(ctx context.Context, site *shared.Site) error {
	args := m.Called(ctx, site)
	return args.Error(0)
}

// MockOrderService is a mock implementation of OrderService
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) GetOrdersForSite(ctx context.Context, site shared.Site, statuses ...string) ([]order.Order, error) {
	args := m.Called(ctx, site, statuses)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrderByIDAndSite(ctx context.Context, remoteOrderID int64, site shared.Site) (*order.Order, error) {
	args := m.Called(ctx, remoteOrderID, site)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrderNotesForOrder(ctx context.Context, localOrderID int64) ([]order.Note, error) {
	args := m.Called(ctx, localOrderID)
	return args.Get(0).([]order.Note), args.Error(1)
}

func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, remoteOrderID int64, site shared.Site, newStatus string) <-chan order.UpdateOrderResult {
	args := m.Called(ctx, remoteOrderID, site, newStatus)
	return args.Get(0).(<-chan order.UpdateOrderResult)
}

// MockCouponService is a mock implementation of CouponService
type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) FetchCoupons(ctx context.Context, site shared.Site, page, pageSize int) (bool, error) {
	args := m.Called(ctx, site, page, pageSize)
	return args.Bool(0), args.Error(1)
}

func (m *MockCouponService) GetCoupons(ctx context.Context, site shared.Site) ([]coupon.DataModel, error) {
	args := m.Called(ctx, site)
	return args.Get(0).([]coupon.DataModel), args.Error(1)
}

// MockCustomerService is a mock implementation of CustomerService
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) FetchCustomers(ctx context.Context, site shared.Site, pageSize int, opts customer.FetchOptions) ([]customer.Customer, error) {
	args := m.Called(ctx, site, pageSize, opts)
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerService) GetCustomersForSite(ctx context.Context, site shared.Site) ([]customer.Customer, error) {
	args := m.Called(ctx, site)
	return args.Get(0).([]customer.Customer), args.Error(1)
}

// MockPromptService is a mock implementation of PromptService
type MockPromptService struct {
	mock.Mock
}

func (m *MockPromptService) FetchPrompts(ctx context.Context, site shared.Site, number int, from time.Time) ([]bloggingprompt.Prompt, error) {
	args := m.Called(ctx, site, number, from)
	return args.Get(0).([]bloggingprompt.Prompt), args.Error(1)
}

func (m *MockPromptService) GetPrompts(ctx context.Context, site shared.Site) ([]bloggingprompt.Prompt, error) {
	args := m.Called(ctx, site)
	return args.Get(0).([]bloggingprompt.Prompt), args.Error(1)
}

// MockNotificationService is a mock implementation of NotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) GetNotifications(ctx context.Context, filter notification.Filter) ([]notification.Notification, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *MockNotificationService) GetUnreadCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockSyncService is a mock implementation of SyncService
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) Jobs() []scheduler.SyncJob {
	args := m.Called()
	return args.Get(0).([]scheduler.SyncJob)
}

func (m *MockSyncService) Job(localSiteID int64) (scheduler.SyncJob, bool) {
	args := m.Called(localSiteID)
	return args.Get(0).(scheduler.SyncJob), args.Bool(1)
}

func (m *MockSyncService) TriggerNow(ctx context.Context, site shared.Site) error {
	args := m.Called(ctx, site)
	return args.Error(0)
}

// emittingDispatcher publishes the configured events while handling an action
type emittingDispatcher struct {
	bus     shared.EventPublisher
	emit    []shared.ChangeEvent
	err     error
	actions []shared.Action
}

func (d *emittingDispatcher) DispatchSync(ctx context.Context, action shared.Action) error {
	d.actions = append(d.actions, action)
	if d.err != nil {
		return d.err
	}
	return d.bus.Publish(ctx, d.emit...)
}
