package handler

import (
	"context"
	"time"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/bloggingprompt"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/coupon"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/customer"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/notification"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/order"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/scheduler"
)

// ActionDispatcher runs actions synchronously against the registered stores
type ActionDispatcher interface {
	DispatchSync(ctx context.Context, action shared.Action) error
}

// ActionBus pairs the dispatcher with the event bus its stores emit on
type ActionBus struct {
	Dispatcher ActionDispatcher
	Events     shared.EventSubscriber
}

// SiteService is the site side of the system store
type SiteService interface {
	GetSites(ctx context.Context) ([]shared.Site, error)
	GetSiteByLocalID(ctx context.Context, localID int64) (*shared.Site, error)
	RegisterSite(ctx context.Context, site *shared.Site) error
}

// OrderService is the query side of the order store plus status updates
type OrderService interface {
	GetOrdersForSite(ctx context.Context, site shared.Site, statuses ...string) ([]order.Order, error)
	GetOrderByIDAndSite(ctx context.Context, remoteOrderID int64, site shared.Site) (*order.Order, error)
	GetOrderNotesForOrder(ctx context.Context, localOrderID int64) ([]order.Note, error)
	UpdateOrderStatus(ctx context.Context, remoteOrderID int64, site shared.Site, newStatus string) <-chan order.UpdateOrderResult
}

// CouponService is the coupon store
type CouponService interface {
	FetchCoupons(ctx context.Context, site shared.Site, page, pageSize int) (bool, error)
	GetCoupons(ctx context.Context, site shared.Site) ([]coupon.DataModel, error)
}

// CustomerService is the customer store
type CustomerService interface {
	FetchCustomers(ctx context.Context, site shared.Site, pageSize int, opts customer.FetchOptions) ([]customer.Customer, error)
	GetCustomersForSite(ctx context.Context, site shared.Site) ([]customer.Customer, error)
}

// PromptService is the blogging prompts store
type PromptService interface {
	FetchPrompts(ctx context.Context, site shared.Site, number int, from time.Time) ([]bloggingprompt.Prompt, error)
	GetPrompts(ctx context.Context, site shared.Site) ([]bloggingprompt.Prompt, error)
}

// NotificationService is the query side of the notification store
type NotificationService interface {
	GetNotifications(ctx context.Context, filter notification.Filter) ([]notification.Notification, error)
	GetUnreadCount(ctx context.Context) (int64, error)
}

// SyncService is the background refresh scheduler
type SyncService interface {
	Jobs() []scheduler.SyncJob
	Job(localSiteID int64) (scheduler.SyncJob, bool)
	TriggerNow(ctx context.Context, site shared.Site) error
}
