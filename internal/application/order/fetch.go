package order

import (
	"context"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/list"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/order"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/logger"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func (s *Store) fetchOrders(ctx context.Context, p order.FetchOrdersPayload) (err error) {
	ctx, span := telemetry.StartStoreSpan(ctx, "order_store", "fetch_orders",
		telemetry.WithAttribute("site_id", p.Site.LocalID))
	defer func() { telemetry.EndSpan(span, err) }()

	var offset int64
	if p.LoadMore {
		if offset, err = s.orders.CountForSite(ctx, p.Site.LocalID); err != nil {
			return err
		}
	}
	logger.WithLogger(ctx, s.logger).Debug("fetching orders",
		zap.Int64("site_id", p.Site.LocalID), zap.Int64("offset", offset), zap.String("status", p.StatusFilter))

	resp := order.FetchOrdersResponsePayload{Site: p.Site, StatusFilter: p.StatusFilter, LoadedMore: p.LoadMore}
	page, fetchErr := s.client.FetchOrders(ctx, p.Site, offset, p.StatusFilter)
	if fetchErr != nil {
		s.logger.Warn("fetch orders failed", zap.Int64("site_id", p.Site.LocalID), zap.Error(fetchErr))
		resp.Error = order.ErrorFromNetwork(fetchErr)
	} else {
		resp.Orders = page.Orders
		resp.CanLoadMore = page.CanLoadMore
	}
	return s.respond(ctx, order.ActionFetchedOrders, resp)
}

func (s *Store) handleFetchOrdersCompleted(ctx context.Context, p order.FetchOrdersResponsePayload) error {
	orderErr := p.Error
	if orderErr == nil {
		err := s.inTx(ctx, func(ctx context.Context) error {
			if !p.LoadedMore {
				if err := s.deleteSiteOrders(ctx, p.Site.LocalID); err != nil {
					return err
				}
			}
			for i := range p.Orders {
				if err := s.orders.Upsert(ctx, &p.Orders[i]); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			s.logger.Error("failed to cache fetched orders", zap.Int64("site_id", p.Site.LocalID), zap.Error(err))
			orderErr = cacheError(err)
		}
	}

	event := order.NewOnOrderChanged(order.ActionFetchOrders, orderErr)
	event.StatusFilter = p.StatusFilter
	if orderErr == nil {
		event.CanLoadMore = p.CanLoadMore
		event.Count = len(p.Orders)
		event.RowsAffected = int64(len(p.Orders))
	}
	s.dispatcher.Emit(ctx, event)
	return nil
}

// cacheError reports a failed cache write the same way a remote failure is reported
func cacheError(err error) *order.OrderError {
	return order.NewOrderError(order.ErrorGeneric, err.Error())
}

// deleteSiteOrders clears the orders of a site with their notes and trackings
func (s *Store) deleteSiteOrders(ctx context.Context, localSiteID int64) error {
	if _, err := s.notes.DeleteForSite(ctx, localSiteID); err != nil {
		return err
	}
	if _, err := s.trackings.DeleteForSite(ctx, localSiteID); err != nil {
		return err
	}
	_, err := s.orders.DeleteForSite(ctx, localSiteID)
	return err
}

func (s *Store) fetchOrderList(ctx context.Context, p order.FetchOrderListPayload) (err error) {
	ctx, span := telemetry.StartStoreSpan(ctx, "order_store", "fetch_order_list",
		telemetry.WithAttribute("site_id", p.Descriptor.Site.LocalID),
		telemetry.WithAttribute("offset", p.Offset))
	defer func() { telemetry.EndSpan(span, err) }()

	logger.WithLogger(ctx, s.logger).Debug("fetching order list",
		zap.String("list", p.Descriptor.UniqueIdentifier()), zap.Int64("offset", p.Offset))

	resp := order.FetchOrderListResponsePayload{
		Descriptor:       p.Descriptor,
		LoadedMore:       p.Offset > 0,
		RequestStartTime: p.RequestStartTime,
	}
	page, fetchErr := s.client.FetchOrderListSummaries(ctx, p.Descriptor, p.Offset)
	if fetchErr != nil {
		s.logger.Warn("fetch order list failed", zap.String("list", p.Descriptor.UniqueIdentifier()), zap.Error(fetchErr))
		resp.Error = order.ErrorFromNetwork(fetchErr)
	} else {
		resp.Summaries = page.Summaries
		resp.CanLoadMore = page.CanLoadMore
	}
	return s.respond(ctx, order.ActionFetchedOrderList, resp)
}

func (s *Store) handleFetchOrderListCompleted(ctx context.Context, p order.FetchOrderListResponsePayload) error {
	orderErr := p.Error
	var remoteIDs []int64
	if orderErr == nil {
		remoteIDs = make([]int64, 0, len(p.Summaries))
		for _, summary := range p.Summaries {
			remoteIDs = append(remoteIDs, summary.RemoteOrderID)
		}
		err := s.summaries.Upsert(ctx, p.Summaries)
		if err == nil {
			err = s.fetchOutdatedOrMissingOrders(ctx, p.Descriptor.Site, p.Summaries, remoteIDs)
		}
		if err != nil {
			s.logger.Error("failed to cache order summaries",
				zap.String("list", p.Descriptor.UniqueIdentifier()), zap.Error(err))
			orderErr = cacheError(err)
			remoteIDs = nil
		}
	}

	duration := s.now().Sub(p.RequestStartTime)
	if p.RequestStartTime.IsZero() {
		duration = 0
	}
	s.dispatcher.Emit(ctx, order.NewOnOrderSummariesFetched(p.Descriptor, duration, orderErr))

	var listErr *list.ListError
	if orderErr != nil {
		listErr = &list.ListError{Type: list.ErrorGeneric, Message: orderErr.Message}
	}
	s.dispatcher.Dispatch(ctx, shared.NewAction(list.ActionFetchedListItems, list.FetchedListItemsPayload{
		Descriptor:    p.Descriptor,
		RemoteItemIDs: remoteIDs,
		LoadedMore:    p.LoadedMore,
		CanLoadMore:   p.CanLoadMore,
		Error:         listErr,
	}))
	return nil
}

// fetchOutdatedOrMissingOrders requests the orders of a summary page that are
// not cached or whose modification date changed
func (s *Store) fetchOutdatedOrMissingOrders(ctx context.Context, site shared.Site, summaries []order.Summary, remoteIDs []int64) error {
	cached, err := s.orders.FindByRemoteIDs(ctx, site.LocalID, remoteIDs)
	if err != nil {
		return err
	}
	ids := append(order.OutdatedOrderIDs(summaries, cached), order.MissingOrderIDs(summaries, cached)...)
	if len(ids) == 0 {
		return nil
	}
	s.dispatcher.Dispatch(ctx, shared.NewAction(order.ActionFetchOrdersByIDs, order.FetchOrdersByIDsPayload{
		Site:      site,
		RemoteIDs: ids,
	}))
	return nil
}

func (s *Store) fetchOrdersByIDs(ctx context.Context, p order.FetchOrdersByIDsPayload) (err error) {
	ctx, span := telemetry.StartStoreSpan(ctx, "order_store", "fetch_orders_by_ids",
		telemetry.WithAttribute("site_id", p.Site.LocalID),
		telemetry.WithAttribute("count", len(p.RemoteIDs)))
	defer func() { telemetry.EndSpan(span, err) }()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrentFetches)
	for _, chunk := range order.Chunk(p.RemoteIDs, order.NumOrdersPerFetch) {
		g.Go(func() error {
			logger.WithLogger(gctx, s.logger).Debug("fetching orders by ids",
				zap.Int64("site_id", p.Site.LocalID), zap.Int64s("ids", chunk))
			resp := order.FetchOrdersByIDsResponsePayload{Site: p.Site, RemoteIDs: chunk}
			orders, fetchErr := s.client.FetchOrdersByIDs(gctx, p.Site, chunk)
			if fetchErr != nil {
				s.logger.Warn("fetch orders by ids failed", zap.Int64s("ids", chunk), zap.Error(fetchErr))
				resp.Error = order.ErrorFromNetwork(fetchErr)
			} else {
				resp.Orders = orders
			}
			return s.respond(gctx, order.ActionFetchedOrdersByIDs, resp)
		})
	}
	return g.Wait()
}

func (s *Store) handleFetchOrdersByIDsCompleted(ctx context.Context, p order.FetchOrdersByIDsResponsePayload) error {
	if p.Error != nil {
		s.dispatcher.Emit(ctx, order.NewOnOrdersFetchedByIDs(p.Site, p.RemoteIDs, p.Error))
		return nil
	}

	err := s.inTx(ctx, func(ctx context.Context) error {
		for i := range p.Orders {
			if err := s.orders.Upsert(ctx, &p.Orders[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to cache orders fetched by id", zap.Int64s("ids", p.RemoteIDs), zap.Error(err))
		s.dispatcher.Emit(ctx, order.NewOnOrdersFetchedByIDs(p.Site, p.RemoteIDs, cacheError(err)))
		return nil
	}

	// ids the site did not return are left out
	fetched := make([]int64, 0, len(p.Orders))
	for i := range p.Orders {
		fetched = append(fetched, p.Orders[i].RemoteOrderID)
	}
	s.dispatcher.Dispatch(ctx, shared.NewAction(list.ActionListDataInvalidated, list.ListDataInvalidatedPayload{
		TypeIdentifier: order.CalculateTypeIdentifier(p.Site.LocalID),
	}))
	s.dispatcher.Emit(ctx, order.NewOnOrdersFetchedByIDs(p.Site, fetched, nil))
	return nil
}

func (s *Store) searchOrders(ctx context.Context, p order.SearchOrdersPayload) error {
	logger.WithLogger(ctx, s.logger).Debug("searching orders",
		zap.Int64("site_id", p.Site.LocalID), zap.String("query", p.Query), zap.Int("offset", p.Offset))

	resp := order.SearchOrdersResponsePayload{Site: p.Site, Query: p.Query, Offset: p.Offset}
	page, err := s.client.SearchOrders(ctx, p.Site, p.Query, p.Offset)
	if err != nil {
		s.logger.Warn("search orders failed", zap.String("query", p.Query), zap.Error(err))
		resp.Error = order.ErrorFromNetwork(err)
	} else {
		resp.Orders = page.Orders
		resp.CanLoadMore = page.CanLoadMore
	}
	return s.respond(ctx, order.ActionSearchedOrders, resp)
}

func (s *Store) handleSearchOrdersCompleted(ctx context.Context, p order.SearchOrdersResponsePayload) error {
	event := order.NewOnOrdersSearched(p.Query, p.Error)
	if p.Error == nil {
		event.CanLoadMore = p.CanLoadMore
		event.NextOffset = p.Offset + len(p.Orders)
		event.Results = p.Orders
	}
	s.dispatcher.Emit(ctx, event)
	return nil
}

func (s *Store) fetchOrdersCount(ctx context.Context, p order.FetchOrdersCountPayload) error {
	logger.WithLogger(ctx, s.logger).Debug("fetching order count",
		zap.Int64("site_id", p.Site.LocalID), zap.String("status", p.StatusFilter))

	resp := order.FetchOrdersCountResponsePayload{Site: p.Site, StatusFilter: p.StatusFilter}
	count, err := s.client.FetchOrderCount(ctx, p.Site, p.StatusFilter)
	if err != nil {
		s.logger.Warn("fetch order count failed", zap.Int64("site_id", p.Site.LocalID), zap.Error(err))
		resp.Error = order.ErrorFromNetwork(err)
	} else {
		resp.Count = count
	}
	return s.respond(ctx, order.ActionFetchedOrdersCount, resp)
}

func (s *Store) handleFetchOrdersCountCompleted(ctx context.Context, p order.FetchOrdersCountResponsePayload) error {
	event := order.NewOnOrderChanged(order.ActionFetchOrdersCount, p.Error)
	event.StatusFilter = p.StatusFilter
	event.Count = p.Count
	s.dispatcher.Emit(ctx, event)
	return nil
}

func (s *Store) fetchOrderStatusOptions(ctx context.Context, p order.FetchOrderStatusOptionsPayload) error {
	logger.WithLogger(ctx, s.logger).Debug("fetching order status options", zap.Int64("site_id", p.Site.LocalID))

	resp := order.FetchOrderStatusOptionsResponsePayload{Site: p.Site}
	options, err := s.client.FetchOrderStatusOptions(ctx, p.Site)
	if err != nil {
		s.logger.Warn("fetch order status options failed", zap.Int64("site_id", p.Site.LocalID), zap.Error(err))
		resp.Error = order.ErrorFromNetwork(err)
	} else {
		resp.Options = options
	}
	return s.respond(ctx, order.ActionFetchedOrderStatusOptions, resp)
}

// handleFetchOrderStatusOptionsCompleted reconciles the cached options with the
// fetched ones: unknown keys are deleted, new keys inserted and changed labels
// or counts updated.
func (s *Store) handleFetchOrderStatusOptionsCompleted(ctx context.Context, p order.FetchOrderStatusOptionsResponsePayload) error {
	if p.Error != nil {
		s.dispatcher.Emit(ctx, order.NewOnOrderStatusOptionsChanged(p.Site, 0, p.Error))
		return nil
	}

	var rows int64
	err := s.inTx(ctx, func(ctx context.Context) error {
		cached, err := s.statuses.FindForSite(ctx, p.Site.LocalID)
		if err != nil {
			return err
		}
		remote := make(map[string]struct{}, len(p.Options))
		for _, option := range p.Options {
			remote[option.StatusKey] = struct{}{}
		}
		for i := range cached {
			if _, ok := remote[cached[i].StatusKey]; ok {
				continue
			}
			n, err := s.statuses.Delete(ctx, &cached[i])
			if err != nil {
				return err
			}
			rows += n
		}
		for i := range p.Options {
			option := p.Options[i]
			option.LocalSiteID = p.Site.LocalID
			n, err := s.statuses.Upsert(ctx, &option)
			if err != nil {
				return err
			}
			rows += n
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to reconcile order status options", zap.Int64("site_id", p.Site.LocalID), zap.Error(err))
		s.dispatcher.Emit(ctx, order.NewOnOrderStatusOptionsChanged(p.Site, 0, cacheError(err)))
		return nil
	}
	s.dispatcher.Emit(ctx, order.NewOnOrderStatusOptionsChanged(p.Site, rows, nil))
	return nil
}
