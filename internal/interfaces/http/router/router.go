package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	_ "github.com/wordpress-mobile/fluxc-go/docs"
	"github.com/wordpress-mobile/fluxc-go/internal/interfaces/http/handler"
	"github.com/wordpress-mobile/fluxc-go/internal/interfaces/http/middleware"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, apiVersion: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DomainGroup collects the routes of one store under a common prefix
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, path, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, path, handlers)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPut, path, handlers)
}

func (dg *DomainGroup) handle(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: path, handlers: handlers})
	return dg
}

// RegisterRoutes implements RouteRegistrar interface
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}

// Handlers are the inspector endpoints. A nil handler leaves its routes out.
type Handlers struct {
	Health        *handler.HealthHandler
	Sites         *handler.SiteHandler
	Orders        *handler.OrderHandler
	Coupons       *handler.CouponHandler
	Customers     *handler.CustomerHandler
	Prompts       *handler.PromptHandler
	Notifications *handler.NotificationHandler
	Sync          *handler.SyncHandler
}

// Groups builds the route groups of the inspector API
func (h Handlers) Groups() []*DomainGroup {
	var groups []*DomainGroup
	if h.Health != nil {
		groups = append(groups, NewDomainGroup("health", "").GET("/health", h.Health.Check))
	}
	if h.Sites != nil {
		groups = append(groups, NewDomainGroup("sites", "/sites").
			GET("", h.Sites.List).
			POST("", h.Sites.Register))
	}
	if h.Orders != nil {
		groups = append(groups, NewDomainGroup("orders", "/sites/:site_id/orders").
			GET("", h.Orders.List).
			POST("/fetch", h.Orders.Fetch).
			GET("/:order_id", h.Orders.Get).
			PUT("/:order_id/status", h.Orders.UpdateStatus).
			GET("/:order_id/notes", h.Orders.Notes))
	}
	if h.Coupons != nil {
		groups = append(groups, NewDomainGroup("coupons", "/sites/:site_id/coupons").
			GET("", h.Coupons.List).
			POST("/fetch", h.Coupons.Fetch))
	}
	if h.Customers != nil {
		groups = append(groups, NewDomainGroup("customers", "/sites/:site_id/customers").
			GET("", h.Customers.List).
			POST("/fetch", h.Customers.Fetch))
	}
	if h.Prompts != nil {
		groups = append(groups, NewDomainGroup("prompts", "/sites/:site_id/prompts").
			GET("", h.Prompts.List).
			POST("/fetch", h.Prompts.Fetch))
	}
	if h.Notifications != nil {
		groups = append(groups, NewDomainGroup("notifications", "/notifications").
			GET("", h.Notifications.List).
			POST("/fetch", h.Notifications.Fetch).
			POST("/seen", h.Notifications.MarkSeen))
	}
	if h.Sync != nil {
		groups = append(groups,
			NewDomainGroup("scheduler", "/scheduler").GET("/jobs", h.Sync.Jobs),
			NewDomainGroup("sync", "/sites/:site_id/sync").POST("", h.Sync.Trigger))
	}
	return groups
}

// EngineConfig configures the middleware chain of the inspector
type EngineConfig struct {
	Logger    *zap.Logger
	Tracing   middleware.TracingConfig
	Meter     metric.Meter
	BodyLimit int64
	// Swagger serves the API documentation under /swagger
	Swagger bool
}

// NewEngine creates a gin engine with the middleware chain and every route of h
//
//	@title			FluxC Inspector API
//	@version		1.0
//	@description	Read and refresh the local WooCommerce and WordPress.com cache
//	@BasePath		/api/v1
func NewEngine(cfg EngineConfig, h Handlers) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	limit := cfg.BodyLimit
	if limit <= 0 {
		limit = middleware.DefaultBodyLimit
	}
	metrics, err := middleware.HTTPMetrics(cfg.Meter)
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(log),
		middleware.Logger(log),
		middleware.Tracing(cfg.Tracing),
		middleware.SpanAttributes(),
		metrics,
		middleware.BodyLimit(limit),
	)

	if cfg.Swagger {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r := NewRouter(engine)
	for _, group := range h.Groups() {
		r.Register(group)
	}
	r.Setup()
	return engine, nil
}
