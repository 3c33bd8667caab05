package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/logger"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/persistence"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/scheduler"
	"github.com/wordpress-mobile/fluxc-go/internal/interfaces/http/handler"
	"github.com/wordpress-mobile/fluxc-go/internal/interfaces/http/middleware"
	"github.com/wordpress-mobile/fluxc-go/internal/interfaces/http/router"
)

const shutdownTimeout = 30 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the inspector API and the background refresh",
		Long: `Start the dispatcher with every store registered, the background refresh of
WooCommerce sites and the inspector HTTP API.

Example:
  fluxc serve --config ./config.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, rootOpts)
		},
	}
}

func runServe(ctx context.Context, opts *RootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	app, err := NewApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Close(closeCtx); err != nil {
			log.Error("Error closing resources", zap.Error(err))
		}
	}()
	log = app.Logger

	syncCfg := scheduler.DefaultSiteSyncConfig()
	syncCfg.Interval = cfg.Scheduler.Interval
	syncCfg.MaxRetries = cfg.Scheduler.MaxRetries
	sched, err := scheduler.NewSiteSyncScheduler(syncCfg, persistence.NewGormSiteRepository(app.DB.DB), app.Dispatcher, app.Bus, log)
	if err != nil {
		return err
	}
	if cfg.Scheduler.Enabled {
		if err := sched.Start(ctx); err != nil {
			return err
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := sched.Stop(stopCtx); err != nil {
				log.Warn("Scheduler did not stop cleanly", zap.Error(err))
			}
		}()
	}

	sqlDB, err := app.DB.DB.DB()
	if err != nil {
		return err
	}
	bus := handler.ActionBus{Dispatcher: app.Dispatcher, Events: app.Bus}

	gin.SetMode(cfg.HTTP.Mode)
	engine, err := router.NewEngine(router.EngineConfig{
		Logger: log,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		},
		Meter:   app.Meter,
		Swagger: cfg.HTTP.Swagger,
	}, router.Handlers{
		Health:        handler.NewHealthHandler(sqlDB, opts.Version),
		Sites:         handler.NewSiteHandler(app.Sites),
		Orders:        handler.NewOrderHandler(app.Sites, app.Orders, bus),
		Coupons:       handler.NewCouponHandler(app.Sites, app.Coupons),
		Customers:     handler.NewCustomerHandler(app.Sites, app.Customers),
		Prompts:       handler.NewPromptHandler(app.Sites, app.Prompts),
		Notifications: handler.NewNotificationHandler(app.Notifications, bus),
		Sync:          handler.NewSyncHandler(app.Sites, sched),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Inspector listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down inspector...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	app.Dispatcher.Wait()
	log.Info("Inspector exited gracefully")
	return nil
}
