package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/order"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/logger"
)

// SyncOptions holds flags for the sync commands.
type SyncOptions struct {
	*RootOptions
	SiteID   int64
	Status   string
	LoadMore bool
}

// NewSyncCommand creates the sync command.
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SyncOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch remote data into the cache once",
	}

	orders := &cobra.Command{
		Use:   "orders",
		Short: "Fetch a page of orders for a site",
		Long: `Dispatch FETCH_ORDERS for a registered site and print how many orders
were cached.

Example:
  fluxc sync orders --site 1 --status processing,on-hold`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), rootOpts, func(ctx context.Context, app *App) error {
				return syncOrders(ctx, cmd, app, opts)
			})
		},
	}
	orders.Flags().Int64Var(&opts.SiteID, "site", 0, "local id of the site (required)")
	orders.Flags().StringVar(&opts.Status, "status", "", "comma separated status filter")
	orders.Flags().BoolVar(&opts.LoadMore, "load-more", false, "fetch the page after the cached orders")
	_ = orders.MarkFlagRequired("site")

	cmd.AddCommand(orders)
	return cmd
}

func syncOrders(ctx context.Context, cmd *cobra.Command, app *App, opts *SyncOptions) error {
	site, err := app.Site(ctx, opts.SiteID)
	if err != nil {
		return err
	}

	action := shared.NewAction(order.ActionFetchOrders, order.FetchOrdersPayload{
		Site:         site,
		StatusFilter: opts.Status,
		LoadMore:     opts.LoadMore,
	})
	ev, err := app.dispatchAndWait(ctx, action, order.EventOrderChanged, func(ev shared.ChangeEvent) bool {
		changed, ok := ev.(*order.OnOrderChanged)
		return ok && changed.CauseOfChange == order.ActionFetchOrders
	})
	if err != nil {
		return err
	}
	changed := ev.(*order.OnOrderChanged)
	if changed.OrderError != nil {
		return changed.OrderError
	}

	fmt.Fprintf(cmd.OutOrStdout(), "fetched %d orders for site %d (more available: %t)\n",
		changed.Count, site.LocalID, changed.CanLoadMore)
	return nil
}

// withApp loads the configuration, wires the stores and runs fn
func withApp(ctx context.Context, opts *RootOptions, fn func(ctx context.Context, app *App) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
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
	defer func() { _ = app.Close(context.Background()) }()
	return fn(ctx, app)
}
