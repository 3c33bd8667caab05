package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/order"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/logger"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// FetchHasOrders reports whether the site has at least one order with status.
// An empty status checks every status.
func (s *Store) FetchHasOrders(ctx context.Context, site shared.Site, status string) order.HasOrdersResult {
	hasOrders, err := s.client.FetchHasOrders(ctx, site, status)
	if err != nil {
		s.logger.Warn("fetch has orders failed", zap.Int64("site_id", site.LocalID), zap.Error(err))
		return order.HasOrdersResult{Error: order.ErrorFromNetwork(err)}
	}
	return order.HasOrdersResult{HasOrders: hasOrders}
}

// FetchSingleOrder fetches one order and caches it with its line items
func (s *Store) FetchSingleOrder(ctx context.Context, site shared.Site, remoteOrderID int64) *order.OnOrderChanged {
	logger.WithLogger(ctx, s.logger).Debug("fetching order",
		zap.Int64("site_id", site.LocalID), zap.Int64("order_id", remoteOrderID))

	o, err := s.client.FetchSingleOrder(ctx, site, remoteOrderID)
	if err != nil {
		s.logger.Warn("fetch order failed", zap.Int64("order_id", remoteOrderID), zap.Error(err))
		return s.emitOrderChanged(ctx, order.ActionFetchOrders, order.ErrorFromNetwork(err), 0)
	}
	if err := s.orders.Upsert(ctx, o); err != nil {
		return s.emitOrderChanged(ctx, order.ActionFetchOrders, storageError(err), 0)
	}
	return s.emitOrderChanged(ctx, order.ActionFetchOrders, nil, 1)
}

// PostSimplePayment creates a pending order holding a single fee of amount
func (s *Store) PostSimplePayment(ctx context.Context, site shared.Site, amount decimal.Decimal, isTaxable bool) *order.OnQuickOrderResult {
	logger.WithLogger(ctx, s.logger).Debug("posting simple payment",
		zap.Int64("site_id", site.LocalID), zap.String("amount", amount.StringFixed(2)), zap.Bool("taxable", isTaxable))

	o, err := s.client.PostSimplePayment(ctx, site, amount, isTaxable)
	if err != nil {
		s.logger.Warn("simple payment failed", zap.Int64("site_id", site.LocalID), zap.Error(err))
		return order.NewOnQuickOrderResult(nil, order.ErrorFromNetwork(err))
	}
	if err := s.orders.UpsertInfo(ctx, o); err != nil {
		return order.NewOnQuickOrderResult(nil, storageError(err))
	}
	return order.NewOnQuickOrderResult(o, nil)
}

// UpdateOrderStatus changes the status of an order in two phases. The cached
// order is updated first and an Optimistic result is sent; once the remote call
// finished a Remote result follows and is also emitted on the event bus. A
// failed remote update restores the previous status. The channel is closed
// after the last result.
func (s *Store) UpdateOrderStatus(ctx context.Context, remoteOrderID int64, site shared.Site, newStatus string) <-chan order.UpdateOrderResult {
	results := make(chan order.UpdateOrderResult, 2)

	current, err := s.orders.FindByRemoteID(ctx, site.LocalID, remoteOrderID)
	if err != nil {
		orderErr := storageError(err)
		if errors.Is(err, shared.ErrNotFound) {
			orderErr = order.NewOrderError(order.ErrorGeneric, fmt.Sprintf("Order with id %d not found", remoteOrderID))
		}
		results <- order.UpdateOrderResult{
			Kind:  order.UpdateOptimistic,
			Event: order.NewOnOrderChanged(order.ActionUpdateOrderStatus, orderErr),
		}
		close(results)
		return results
	}

	previous := current.Status
	optimistic := order.NewOnOrderChanged(order.ActionUpdateOrderStatus, nil)
	if err := s.orders.UpdateStatus(ctx, site.LocalID, remoteOrderID, newStatus); err != nil {
		optimistic = order.NewOnOrderChanged(order.ActionUpdateOrderStatus, storageError(err))
	} else {
		optimistic.RowsAffected = 1
	}
	results <- order.UpdateOrderResult{Kind: order.UpdateOptimistic, Event: optimistic}

	go func() {
		defer close(results)
		remote := s.updateRemoteStatus(ctx, site, remoteOrderID, previous, newStatus)
		results <- order.UpdateOrderResult{Kind: order.UpdateRemote, Event: remote}
		s.dispatcher.Emit(ctx, remote)
	}()
	return results
}

func (s *Store) updateRemoteStatus(ctx context.Context, site shared.Site, remoteOrderID int64, previous, newStatus string) (event *order.OnOrderChanged) {
	ctx, span := telemetry.StartStoreSpan(ctx, "order_store", "update_order_status",
		telemetry.WithAttribute("site_id", site.LocalID),
		telemetry.WithAttribute("order_id", remoteOrderID),
		telemetry.WithAttribute("status", newStatus))
	defer func() { telemetry.EndSpan(span, event.Err()) }()

	updated, err := s.client.UpdateOrderStatus(ctx, site, remoteOrderID, newStatus)
	if err != nil {
		s.logger.Warn("update order status failed",
			zap.Int64("order_id", remoteOrderID), zap.String("status", newStatus), zap.Error(err))
		if revertErr := s.orders.UpdateStatus(ctx, site.LocalID, remoteOrderID, previous); revertErr != nil {
			s.logger.Error("revert order status failed", zap.Int64("order_id", remoteOrderID), zap.Error(revertErr))
		}
		return order.NewOnOrderChanged(order.ActionUpdateOrderStatus, order.ErrorFromNetwork(err))
	}
	if err := s.orders.Upsert(ctx, updated); err != nil {
		return order.NewOnOrderChanged(order.ActionUpdateOrderStatus, storageError(err))
	}
	event = order.NewOnOrderChanged(order.ActionUpdateOrderStatus, nil)
	event.RowsAffected = 1
	return event
}

// UpdateOrderAddresses replaces the billing and shipping addresses of an order
func (s *Store) UpdateOrderAddresses(ctx context.Context, site shared.Site, remoteOrderID int64, billing, shipping order.Address) *order.OnOrderChanged {
	updated, err := s.client.UpdateOrderAddresses(ctx, site, remoteOrderID, billing, shipping)
	if err != nil {
		s.logger.Warn("update order addresses failed", zap.Int64("order_id", remoteOrderID), zap.Error(err))
		orderErr := order.ErrorFromNetwork(err)
		if orderErr.Type == order.ErrorInvalidParam && billing.Email == "" {
			orderErr.Type = order.ErrorEmptyBillingEmail
		}
		return s.emitOrderChanged(ctx, order.ActionUpdateOrderStatus, orderErr, 0)
	}
	if err := s.orders.Upsert(ctx, updated); err != nil {
		return s.emitOrderChanged(ctx, order.ActionUpdateOrderStatus, storageError(err), 0)
	}
	return s.emitOrderChanged(ctx, order.ActionUpdateOrderStatus, nil, 1)
}

func (s *Store) emitOrderChanged(ctx context.Context, cause shared.ActionType, orderErr *order.OrderError, rows int64) *order.OnOrderChanged {
	event := order.NewOnOrderChanged(cause, orderErr)
	event.RowsAffected = rows
	s.dispatcher.Emit(ctx, event)
	return event
}

// storageError reports a cache failure as a generic order error
func storageError(err error) *order.OrderError {
	return order.NewOrderError(order.ErrorGeneric, err.Error())
}
