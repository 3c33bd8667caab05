package order

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/order"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/woocommerce"
)

// MockRestClient is a mock implementation of RestClient
type MockRestClient struct {
	mock.Mock
}

func (m *MockRestClient) FetchOrders(ctx context.Context, site shared.Site, offset int64, statusFilter string) (*woocommerce.OrdersPage, error) {
	args := m.Called(ctx, site, offset, statusFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*woocommerce.OrdersPage), args.Error(1)
}

func (m *MockRestClient) FetchOrderListSummaries(ctx context.Context, descriptor order.ListDescriptor, offset int64) (*woocommerce.SummariesPage, error) {
	args := m.Called(ctx, descriptor, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*woocommerce.SummariesPage), args.Error(1)
}

func (m *MockRestClient) FetchOrdersByIDs(ctx context.Context, site shared.Site, remoteIDs []int64) ([]order.Order, error) {
	args := m.Called(ctx, site, remoteIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockRestClient) SearchOrders(ctx context.Context, site shared.Site, query string, offset int) (*woocommerce.OrdersPage, error) {
	args := m.Called(ctx, site, query, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*woocommerce.OrdersPage), args.Error(1)
}

func (m *MockRestClient) FetchOrderCount(ctx context.Context, site shared.Site, statusFilter string) (int, error) {
	args := m.Called(ctx, site, statusFilter)
	return args.Int(0), args.Error(1)
}

func (m *MockRestClient) FetchOrderStatusOptions(ctx context.Context, site shared.Site) ([]order.StatusOption, error) {
	args := m.Called(ctx, site)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.StatusOption), args.Error(1)
}

func (m *MockRestClient) FetchHasOrders(ctx context.Context, site shared.Site, status string) (bool, error) {
	args := m.Called(ctx, site, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockRestClient) FetchSingleOrder(ctx context.Context, site shared.Site, remoteOrderID int64) (*order.Order, error) {
	args := m.Called(ctx, site, remoteOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockRestClient) PostSimplePayment(ctx context.Context, site shared.Site, amount decimal.Decimal, isTaxable bool) (*order.Order, error) {
	args := m.Called(ctx, site, amount, isTaxable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockRestClient) UpdateOrderStatus(ctx context.Context, site shared.Site, remoteOrderID int64, status string) (*order.Order, error) {
	args := m.Called(ctx, site, remoteOrderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockRestClient) UpdateOrderAddresses(ctx context.Context, site shared.Site, remoteOrderID int64, billing, shipping order.Address) (*order.Order, error) {
	args := m.Called(ctx, site, remoteOrderID, billing, shipping)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockRestClient) FetchOrderNotes(ctx context.Context, site shared.Site, localOrderID, remoteOrderID int64) ([]order.Note, error) {
	args := m.Called(ctx, site, localOrderID, remoteOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Note), args.Error(1)
}

func (m *MockRestClient) PostOrderNote(ctx context.Context, site shared.Site, localOrderID, remoteOrderID int64, note order.Note) (*order.Note, error) {
	args := m.Called(ctx, site, localOrderID, remoteOrderID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Note), args.Error(1)
}

func (m *MockRestClient) FetchOrderShipmentTrackings(ctx context.Context, site shared.Site, localOrderID, remoteOrderID int64) ([]order.ShipmentTracking, error) {
	args := m.Called(ctx, site, localOrderID, remoteOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.ShipmentTracking), args.Error(1)
}

func (m *MockRestClient) AddOrderShipmentTracking(ctx context.Context, site shared.Site, localOrderID, remoteOrderID int64, tracking order.ShipmentTracking, isCustomProvider bool) (*order.ShipmentTracking, error) {
	args := m.Called(ctx, site, localOrderID, remoteOrderID, tracking, isCustomProvider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.ShipmentTracking), args.Error(1)
}

func (m *MockRestClient) DeleteOrderShipmentTracking(ctx context.Context, site shared.Site, remoteOrderID int64, tracking order.ShipmentTracking) error {
	args := m.Called(ctx, site, remoteOrderID, tracking)
	return args.Error(0)
}

func (m *MockRestClient) FetchOrderShipmentProviders(ctx context.Context, site shared.Site, remoteOrderID int64) ([]order.ShipmentProvider, error) {
	args := m.Called(ctx, site, remoteOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.ShipmentProvider), args.Error(1)
}

var _ RestClient = (*MockRestClient)(nil)

// MockOrderRepository mocks Upsert and leaves the rest to the wrapped repository
type MockOrderRepository struct {
	mock.Mock
	order.Repository
}

func (m *MockOrderRepository) Upsert(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

// MockSummaryRepository mocks Upsert and leaves the rest to the wrapped repository
type MockSummaryRepository struct {
	mock.Mock
	order.SummaryRepository
}

func (m *MockSummaryRepository) Upsert(ctx context.Context, summaries []order.Summary) error {
	args := m.Called(ctx, summaries)
	return args.Error(0)
}

// MockStatusOptionRepository mocks FindForSite and leaves the rest to the wrapped repository
type MockStatusOptionRepository struct {
	mock.Mock
	order.StatusOptionRepository
}

func (m *MockStatusOptionRepository) FindForSite(ctx context.Context, localSiteID int64) ([]order.StatusOption, error) {
	args := m.Called(ctx, localSiteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.StatusOption), args.Error(1)
}
