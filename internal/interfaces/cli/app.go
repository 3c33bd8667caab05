package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	bloggingpromptapp "github.com/wordpress-mobile/fluxc-go/internal/application/bloggingprompt"
	couponapp "github.com/wordpress-mobile/fluxc-go/internal/application/coupon"
	customerapp "github.com/wordpress-mobile/fluxc-go/internal/application/customer"
	dashboardapp "github.com/wordpress-mobile/fluxc-go/internal/application/dashboard"
	listapp "github.com/wordpress-mobile/fluxc-go/internal/application/list"
	notificationapp "github.com/wordpress-mobile/fluxc-go/internal/application/notification"
	orderapp "github.com/wordpress-mobile/fluxc-go/internal/application/order"
	paymentsapp "github.com/wordpress-mobile/fluxc-go/internal/application/payments"
	productapp "github.com/wordpress-mobile/fluxc-go/internal/application/product"
	systemapp "github.com/wordpress-mobile/fluxc-go/internal/application/system"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/order"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/cache"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/config"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/dispatcher"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/event"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/logger"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/migration"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/network"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/persistence"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/telemetry"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/woocommerce"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/wpcom"
)

const metricsExportInterval = 30 * time.Second

// App holds the wired stores and the infrastructure they run on
type App struct {
	Config *config.Config
	Logger *zap.Logger
	Meter  metric.Meter

	DB         *persistence.Database
	Bus        *event.InMemoryEventBus
	Dispatcher *dispatcher.Dispatcher
	Transport  *network.Client
	Proxy      *wpcom.ProxyClient

	Sites         *systemapp.Store
	Orders        *orderapp.Store
	Lists         *listapp.Store
	Products      *productapp.Store
	Coupons       *couponapp.Store
	Customers     *customerapp.Store
	Payments      *paymentsapp.Store
	Prompts       *bloggingpromptapp.Store
	Cards         *dashboardapp.Store
	Notifications *notificationapp.Store

	closers []func(context.Context) error
}

// loadConfig reads the configuration and applies the --log-level override
func loadConfig(opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// NewApp wires every store against the configured cache and transport.
// The cache schema is brought up to date before the stores are built.
func NewApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (app *App, err error) {
	app = &App{Config: cfg}
	defer func() {
		if err != nil {
			_ = app.Close(context.Background())
		}
	}()

	tp, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}
	app.closers = append(app.closers, tp.Shutdown)

	mp, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, metricsExportInterval, log)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	app.closers = append(app.closers, mp.Shutdown)
	app.Meter = mp.Meter("fluxc")

	lp, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		return nil, fmt.Errorf("logs: %w", err)
	}
	app.closers = append(app.closers, lp.Shutdown)
	app.Logger = lp.Bridge(log, cfg.Telemetry.ServiceName, zapcore.InfoLevel)

	if err := ensureSchema(cfg.Database, app.Logger); err != nil {
		return nil, err
	}

	db, err := persistence.NewDatabase(&cfg.Database, app.Logger)
	if err != nil {
		return nil, err
	}
	app.DB = db
	app.closers = append(app.closers, func(context.Context) error { return db.Close() })
	if isMemoryDSN(cfg.Database) {
		if err := db.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("failed to create cache schema: %w", err)
		}
	}

	restMetrics, err := telemetry.NewRESTMetrics(app.Meter)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	transport, err := network.NewClient(cfg.API, app.Logger, network.WithMetrics(restMetrics))
	if err != nil {
		return nil, err
	}
	app.Transport = transport

	dedupe := cache.NewDedupeStore(ctx, cfg.Redis, app.Logger)
	if c, ok := dedupe.(io.Closer); ok {
		app.closers = append(app.closers, func(context.Context) error { return c.Close() })
	}

	app.Bus = event.NewInMemoryEventBus(app.Logger)
	if err := app.Bus.Start(ctx); err != nil {
		return nil, err
	}
	app.closers = append(app.closers, app.Bus.Stop)
	app.Dispatcher = dispatcher.New(app.Bus,
		dispatcher.WithLogger(app.Logger),
		dispatcher.WithDedupe(dedupe, cfg.Redis.DedupeTTL))

	app.wireStores(db)
	return app, nil
}

func (a *App) wireStores(db *persistence.Database) {
	gdb := db.DB
	woo := woocommerce.NewClient(a.Transport, a.Logger)
	systemClient := woocommerce.NewSystemRestClient(woo)

	a.Proxy = wpcom.NewProxyClient(a.Transport)
	a.Sites = systemapp.NewStore(systemClient, persistence.NewGormSiteRepository(gdb),
		persistence.NewGormSitePluginRepository(gdb), persistence.NewGormTaxClassRepository(gdb), a.Logger)
	a.Payments = paymentsapp.NewStore(systemClient, a.Logger)

	a.Orders = orderapp.NewStore(a.Dispatcher, woocommerce.NewOrderRestClient(woo), orderapp.Repositories{
		Orders:        persistence.NewGormOrderRepository(gdb),
		Summaries:     persistence.NewGormOrderSummaryRepository(gdb),
		Notes:         persistence.NewGormOrderNoteRepository(gdb),
		StatusOptions: persistence.NewGormOrderStatusOptionRepository(gdb),
		Trackings:     persistence.NewGormShipmentTrackingRepository(gdb),
		Providers:     persistence.NewGormShipmentProviderRepository(gdb),
		Tx:            db,
	}, a.Logger)
	a.Lists = listapp.NewStore(a.Dispatcher, persistence.NewGormListRepository(gdb),
		persistence.NewGormListItemRepository(gdb), db, a.Logger)
	a.Lists.RegisterDataSource(order.ListKind, orderapp.NewListDataSource(a.Dispatcher))

	a.Products = productapp.NewStore(woocommerce.NewProductRestClient(woo),
		persistence.NewGormProductRepository(gdb), persistence.NewGormProductCategoryRepository(gdb), a.Logger)
	a.Coupons = couponapp.NewStore(woocommerce.NewCouponRestClient(woo),
		persistence.NewGormCouponRepository(gdb), a.Products, db, a.Logger)
	a.Customers = customerapp.NewStore(woocommerce.NewCustomerRestClient(woo),
		persistence.NewGormCustomerRepository(gdb), nil, a.Logger)

	a.Prompts = bloggingpromptapp.NewStore(wpcom.NewPromptRestClient(a.Transport),
		persistence.NewGormBloggingPromptRepository(gdb), a.Logger)
	a.Cards = dashboardapp.NewStore(wpcom.NewDashboardRestClient(a.Transport),
		persistence.NewGormDashboardCardRepository(gdb), a.Logger)
	a.Notifications = notificationapp.NewStore(a.Dispatcher,
		wpcom.NewNotificationRestClient(a.Transport, a.Logger),
		persistence.NewGormNotificationRepository(gdb), a.Logger)

	a.Dispatcher.Register(a.Orders)
	a.Dispatcher.Register(a.Lists)
	a.Dispatcher.Register(a.Notifications)
}

// Close releases everything NewApp opened, in reverse order
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Site loads a registered site by its local id
func (a *App) Site(ctx context.Context, localID int64) (shared.Site, error) {
	site, err := a.Sites.GetSiteByLocalID(ctx, localID)
	if err != nil {
		return shared.Site{}, err
	}
	if site == nil {
		return shared.Site{}, fmt.Errorf("site %d: %w", localID, shared.ErrSiteNotFound)
	}
	return *site, nil
}

// dispatchAndWait dispatches action and returns the first event of eventType
// caused by it
func (a *App) dispatchAndWait(ctx context.Context, action shared.Action, eventType string, causedBy func(shared.ChangeEvent) bool) (shared.ChangeEvent, error) {
	collector := event.NewCollector(16, eventType)
	a.Bus.Subscribe(collector, eventType)
	defer a.Bus.Unsubscribe(collector)

	if err := a.Dispatcher.DispatchSync(ctx, action); err != nil {
		return nil, err
	}
	for {
		select {
		case ev := <-collector.Events():
			if causedBy(ev) {
				return ev, nil
			}
		default:
			return nil, fmt.Errorf("%s finished without %s", action.Type, eventType)
		}
	}
}

// ensureSchema applies the embedded migrations to a file or server database.
// An in-memory sqlite cache lives on its own connection and is created with
// AutoMigrate instead.
func ensureSchema(cfg config.DatabaseConfig, log *zap.Logger) error {
	if isMemoryDSN(cfg) {
		return nil
	}
	m, err := newMigrator(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()
	return m.Up()
}

func newMigrator(cfg config.DatabaseConfig, log *zap.Logger) (*migration.Migrator, error) {
	dsn := cfg.DSN
	if cfg.Driver != persistence.DriverPostgres {
		dsn = persistence.SQLiteDSN(dsn)
	}
	return migration.NewFromDSN(cfg.Driver, dsn, log)
}

func isMemoryDSN(cfg config.DatabaseConfig) bool {
	return cfg.Driver != persistence.DriverPostgres &&
		(cfg.DSN == "" || strings.Contains(cfg.DSN, ":memory:") || strings.Contains(cfg.DSN, "mode=memory"))
}
