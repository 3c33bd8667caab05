package coupon

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	productapp "github.com/wordpress-mobile/fluxc-go/internal/application/product"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/coupon"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/product"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/persistence"
	"github.com/wordpress-mobile/fluxc-go/internal/testutil"
)

type MockRestClient struct {
	mock.Mock
}

func (m *MockRestClient) FetchCoupons(ctx context.Context, site shared.Site, page, pageSize int, search string) ([]coupon.Coupon, error) {
	args := m.Called(ctx, site, page, pageSize, search)
	coupons, _ := args.Get(0).([]coupon.Coupon)
	return coupons, args.Error(1)
}

func (m *MockRestClient) FetchCoupon(ctx context.Context, site shared.Site, couponID int64) (*coupon.Coupon, error) {
	args := m.Called(ctx, site, couponID)
	c, _ := args.Get(0).(*coupon.Coupon)
	return c, args.Error(1)
}

func (m *MockRestClient) DeleteCoupon(ctx context.Context, site shared.Site, couponID int64, trash bool) error {
	return m.Called(ctx, site, couponID, trash).Error(0)
}

func (m *MockRestClient) FetchCouponReport(ctx context.Context, site shared.Site, couponID int64, after time.Time) (*coupon.Report, error) {
	args := m.Called(ctx, site, couponID, after)
	r, _ := args.Get(0).(*coupon.Report)
	return r, args.Error(1)
}

func (m *MockRestClient) UpdateCoupon(ctx context.Context, site shared.Site, couponID int64, req coupon.UpdateRequest) (*coupon.Coupon, error) {
	args := m.Called(ctx, site, couponID, req)
	c, _ := args.Get(0).(*coupon.Coupon)
	return c, args.Error(1)
}

type MockProductClient struct {
	mock.Mock
}

func (m *MockProductClient) FetchProducts(ctx context.Context, site shared.Site, ids []int64) ([]product.Product, error) {
	args := m.Called(ctx, site, ids)
	products, _ := args.Get(0).([]product.Product)
	return products, args.Error(1)
}

func (m *MockProductClient) FetchProductCategories(ctx context.Context, site shared.Site, ids []int64) ([]product.Category, error) {
	args := m.Called(ctx, site, ids)
	categories, _ := args.Get(0).([]product.Category)
	return categories, args.Error(1)
}

var testSite = shared.Site{LocalID: 2, SiteID: 777, URL: "https://shop.example.com", HasWooCommerce: true}

type fixture struct {
	store    *Store
	client   *MockRestClient
	products *MockProductClient
	catalog  *productapp.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDatabase(t)
	client := &MockRestClient{}
	productClient := &MockProductClient{}
	catalog := productapp.NewStore(productClient,
		persistence.NewGormProductRepository(db.DB),
		persistence.NewGormProductCategoryRepository(db.DB), nil)
	store := NewStore(client, persistence.NewGormCouponRepository(db.DB), catalog, db, nil)
	t.Cleanup(func() {
		client.AssertExpectations(t)
		productClient.AssertExpectations(t)
	})
	return &fixture{store: store, client: client, products: productClient, catalog: catalog}
}

func newCoupon(id int64, code string) coupon.Coupon {
	return coupon.Coupon{
		ID:           id,
		Code:         code,
		DiscountType: coupon.DiscountPercent,
		Amount:       decimal.RequireFromString("10"),
		DateCreated:  "2024-01-01T00:00:00",
	}
}

func testProduct(id int64, name string) product.Product {
	return product.Product{LocalSiteID: testSite.LocalID, ID: id, Name: name, Type: "simple", Status: "publish", Price: decimal.RequireFromString("4.50")}
}

// ---- Fetch Coupons Tests ----

func TestStore_FetchCoupons(t *testing.T) {
	ctx := context.Background()

	t.Run("first page replaces the cache and resolves restrictions", func(t *testing.T) {
		f := newFixture(t)
		old := newCoupon(1, "OLD")
		f.client.On("FetchCoupon", mock.Anything, testSite, int64(1)).Return(&old, nil).Once()
		require.NoError(t, f.store.FetchCoupon(ctx, testSite, 1))

		summer := newCoupon(10, "SUMMER")
		summer.ProductIDs = []int64{100, 101}
		summer.ExcludedProductIDs = []int64{102}
		summer.CategoryIDs = []int64{5}
		summer.RestrictedEmailAddresses = []string{"ada@example.com"}
		f.client.On("FetchCoupons", mock.Anything, testSite, 1, 2, "").
			Return([]coupon.Coupon{summer, newCoupon(11, "WINTER")}, nil).Once()

		f.products.On("FetchProducts", mock.Anything, testSite, []int64{100}).
			Return([]product.Product{testProduct(100, "Mug")}, nil).Once()
		_, err := f.catalog.FetchProductListSynced(ctx, testSite, []int64{100})
		require.NoError(t, err)
		f.products.On("FetchProducts", mock.Anything, testSite, []int64{101, 102}).
			Return([]product.Product{testProduct(101, "Cap"), testProduct(102, "Gift card")}, nil).Once()
		f.products.On("FetchProductCategories", mock.Anything, testSite, []int64{5}).
			Return([]product.Category{{LocalSiteID: testSite.LocalID, ID: 5, Name: "Kitchen", Slug: "kitchen"}}, nil).Once()

		canLoadMore, err := f.store.FetchCoupons(ctx, testSite, 1, 2)
		require.NoError(t, err)
		assert.True(t, canLoadMore)

		coupons, err := f.store.GetCoupons(ctx, testSite)
		require.NoError(t, err)
		require.Len(t, coupons, 2)

		model, err := f.store.GetCoupon(ctx, testSite, 10)
		require.NoError(t, err)
		require.NotNil(t, model)
		assert.Equal(t, "SUMMER", model.Coupon.Code)
		assert.Len(t, model.Products, 2)
		require.Len(t, model.ExcludedProducts, 1)
		assert.Equal(t, "Gift card", model.ExcludedProducts[0].Name)
		require.Len(t, model.Categories, 1)
		assert.Equal(t, "Kitchen", model.Categories[0].Name)
		assert.Empty(t, model.ExcludedCategories)
		assert.Equal(t, []string{"ada@example.com"}, model.RestrictedEmails)

		gone, err := f.store.GetCoupon(ctx, testSite, 1)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("later pages append", func(t *testing.T) {
		f := newFixture(t)
		f.client.On("FetchCoupons", mock.Anything, testSite, 1, coupon.DefaultPageSize, "").
			Return([]coupon.Coupon{newCoupon(1, "A")}, nil).Once()
		f.client.On("FetchCoupons", mock.Anything, testSite, 2, coupon.DefaultPageSize, "").
			Return([]coupon.Coupon{newCoupon(2, "B")}, nil).Once()

		_, err := f.store.FetchCoupons(ctx, testSite, 1, coupon.DefaultPageSize)
		require.NoError(t, err)
		canLoadMore, err := f.store.FetchCoupons(ctx, testSite, 2, coupon.DefaultPageSize)
		require.NoError(t, err)
		assert.False(t, canLoadMore)

		coupons, err := f.store.GetCoupons(ctx, testSite)
		require.NoError(t, err)
		assert.Len(t, coupons, 2)
	})

	t.Run("network error is classified", func(t *testing.T) {
		f := newFixture(t)
		ne := shared.NewNetworkError(shared.ErrorUnknown, "No route was found")
		ne.APIError = "rest_no_route"
		f.client.On("FetchCoupons", mock.Anything, testSite, 1, 10, "").Return(nil, ne).Once()

		_, err := f.store.FetchCoupons(ctx, testSite, 1, 10)

		var wooErr *shared.WooError
		require.ErrorAs(t, err, &wooErr)
		assert.Equal(t, shared.WooErrorPluginNotActive, wooErr.Type)
	})
}

func TestStore_SearchCoupons(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.client.On("FetchCoupon", mock.Anything, testSite, int64(1)).Return(&coupon.Coupon{ID: 1, Code: "KEEP"}, nil).Once()
	require.NoError(t, f.store.FetchCoupon(ctx, testSite, 1))
	f.client.On("FetchCoupons", mock.Anything, testSite, 1, 25, "sum").
		Return([]coupon.Coupon{newCoupon(10, "SUMMER")}, nil).Once()

	result, err := f.store.SearchCoupons(ctx, testSite, "sum", 1, 25)

	require.NoError(t, err)
	assert.False(t, result.CanLoadMore)
	require.Len(t, result.Coupons, 1)
	assert.Equal(t, "SUMMER", result.Coupons[0].Coupon.Code)
	coupons, err := f.store.GetCoupons(ctx, testSite)
	require.NoError(t, err)
	assert.Len(t, coupons, 2)
}

// ---- Single Coupon Tests ----

func TestStore_DeleteCoupon(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := newCoupon(3, "BYE")
	c.RestrictedEmailAddresses = []string{"a@example.com"}
	f.client.On("FetchCoupon", mock.Anything, testSite, int64(3)).Return(&c, nil).Once()
	f.client.On("DeleteCoupon", mock.Anything, testSite, int64(3), true).Return(nil).Once()
	require.NoError(t, f.store.FetchCoupon(ctx, testSite, 3))

	require.NoError(t, f.store.DeleteCoupon(ctx, testSite, 3, true))

	model, err := f.store.GetCoupon(ctx, testSite, 3)
	require.NoError(t, err)
	assert.Nil(t, model)
}

func TestStore_FetchCouponReport(t *testing.T) {
	f := newFixture(t)
	report := &coupon.Report{CouponID: 3, Amount: decimal.RequireFromString("42.10"), OrdersCount: 4}
	f.client.On("FetchCouponReport", mock.Anything, testSite, int64(3), time.Unix(1, 0).UTC()).Return(report, nil).Once()

	got, err := f.store.FetchCouponReport(context.Background(), testSite, 3)

	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("42.1")))
	assert.Equal(t, 4, got.OrdersCount)
}

func TestStore_UpdateCoupon(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid request is rejected locally", func(t *testing.T) {
		f := newFixture(t)
		discount := "half_off"
		err := f.store.UpdateCoupon(ctx, 3, testSite, coupon.UpdateRequest{DiscountType: &discount})

		var wooErr *shared.WooError
		require.ErrorAs(t, err, &wooErr)
		assert.Equal(t, shared.WooErrorInvalidParam, wooErr.Type)
	})

	t.Run("updated coupon replaces its restrictions", func(t *testing.T) {
		f := newFixture(t)
		before := newCoupon(3, "OLD")
		before.RestrictedEmailAddresses = []string{"old@example.com"}
		f.client.On("FetchCoupon", mock.Anything, testSite, int64(3)).Return(&before, nil).Once()
		require.NoError(t, f.store.FetchCoupon(ctx, testSite, 3))

		code := "NEW"
		req := coupon.UpdateRequest{Code: &code, RestrictedEmailAddresses: []string{"new@example.com"}}
		after := newCoupon(3, "NEW")
		after.RestrictedEmailAddresses = []string{"new@example.com"}
		f.client.On("UpdateCoupon", mock.Anything, testSite, int64(3), req).Return(&after, nil).Once()

		require.NoError(t, f.store.UpdateCoupon(ctx, 3, testSite, req))

		model, err := f.store.GetCoupon(ctx, testSite, 3)
		require.NoError(t, err)
		assert.Equal(t, "NEW", model.Coupon.Code)
		assert.Equal(t, []string{"new@example.com"}, model.RestrictedEmails)
	})
}
