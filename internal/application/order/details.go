package order

import (
	"context"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/order"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Causes of OnOrderChanged events emitted by the order detail operations
const (
	CauseFetchOrderNotes        shared.ActionType = "FETCH_ORDER_NOTES"
	CausePostOrderNote          shared.ActionType = "POST_ORDER_NOTE"
	CauseFetchShipmentTrackings shared.ActionType = "FETCH_ORDER_SHIPMENT_TRACKINGS"
	CauseAddShipmentTracking    shared.ActionType = "ADD_ORDER_SHIPMENT_TRACKING"
	CauseDeleteShipmentTracking shared.ActionType = "DELETE_ORDER_SHIPMENT_TRACKING"
	CauseFetchShipmentProviders shared.ActionType = "FETCH_ORDER_SHIPMENT_PROVIDERS"
)

// FetchOrderNotes fetches the notes of an order. Notes already cached are kept.
func (s *Store) FetchOrderNotes(ctx context.Context, site shared.Site, localOrderID, remoteOrderID int64) *order.OnOrderChanged {
	logger.WithLogger(ctx, s.logger).Debug("fetching order notes",
		zap.Int64("site_id", site.LocalID), zap.Int64("order_id", remoteOrderID))

	notes, err := s.client.FetchOrderNotes(ctx, site, localOrderID, remoteOrderID)
	if err != nil {
		s.logger.Warn("fetch order notes failed", zap.Int64("order_id", remoteOrderID), zap.Error(err))
		return s.emitOrderChanged(ctx, CauseFetchOrderNotes, order.ErrorFromNetwork(err), 0)
	}
	rows, err := s.notes.InsertOrIgnore(ctx, notes...)
	if err != nil {
		return s.emitOrderChanged(ctx, CauseFetchOrderNotes, storageError(err), 0)
	}
	return s.emitOrderChanged(ctx, CauseFetchOrderNotes, nil, rows)
}

// PostOrderNote adds a note to an order and caches it
func (s *Store) PostOrderNote(ctx context.Context, p order.PostOrderNotePayload) *order.OnOrderChanged {
	if err := s.validate.Struct(p.Note); err != nil {
		return s.emitOrderChanged(ctx, CausePostOrderNote, order.NewOrderError(order.ErrorInvalidParam, err.Error()), 0)
	}
	note, err := s.client.PostOrderNote(ctx, p.Site, p.LocalOrderID, p.RemoteOrderID, p.Note)
	if err != nil {
		s.logger.Warn("post order note failed", zap.Int64("order_id", p.RemoteOrderID), zap.Error(err))
		return s.emitOrderChanged(ctx, CausePostOrderNote, order.ErrorFromNetwork(err), 0)
	}
	rows, err := s.notes.InsertOrIgnore(ctx, *note)
	if err != nil {
		return s.emitOrderChanged(ctx, CausePostOrderNote, storageError(err), 0)
	}
	return s.emitOrderChanged(ctx, CausePostOrderNote, nil, rows)
}

// FetchOrderShipmentTrackings fetches the trackings of an order. Cached
// trackings missing from the response are deleted.
func (s *Store) FetchOrderShipmentTrackings(ctx context.Context, site shared.Site, localOrderID, remoteOrderID int64) *order.OnOrderChanged {
	logger.WithLogger(ctx, s.logger).Debug("fetching shipment trackings",
		zap.Int64("site_id", site.LocalID), zap.Int64("order_id", remoteOrderID))

	trackings, err := s.client.FetchOrderShipmentTrackings(ctx, site, localOrderID, remoteOrderID)
	if err != nil {
		s.logger.Warn("fetch shipment trackings failed", zap.Int64("order_id", remoteOrderID), zap.Error(err))
		return s.emitOrderChanged(ctx, CauseFetchShipmentTrackings, order.ErrorFromNetwork(err), 0)
	}

	var rows int64
	err = s.inTx(ctx, func(ctx context.Context) error {
		cached, err := s.trackings.FindForOrder(ctx, site.LocalID, localOrderID)
		if err != nil {
			return err
		}
		remote := make(map[string]struct{}, len(trackings))
		for _, t := range trackings {
			remote[t.RemoteTrackingID] = struct{}{}
		}
		for i := range cached {
			if _, ok := remote[cached[i].RemoteTrackingID]; ok {
				continue
			}
			n, err := s.trackings.Delete(ctx, &cached[i])
			if err != nil {
				return err
			}
			rows += n
		}
		n, err := s.trackings.InsertOrIgnore(ctx, trackings...)
		rows += n
		return err
	})
	if err != nil {
		return s.emitOrderChanged(ctx, CauseFetchShipmentTrackings, storageError(err), 0)
	}
	return s.emitOrderChanged(ctx, CauseFetchShipmentTrackings, nil, rows)
}

// AddOrderShipmentTracking adds a tracking number to an order. A custom
// provider is sent with its own name and link.
func (s *Store) AddOrderShipmentTracking(ctx context.Context, p order.AddShipmentTrackingPayload) *order.OnOrderChanged {
	if err := s.validate.Struct(p.Tracking); err != nil {
		return s.emitOrderChanged(ctx, CauseAddShipmentTracking, order.NewOrderError(order.ErrorInvalidParam, err.Error()), 0)
	}
	tracking, err := s.client.AddOrderShipmentTracking(ctx, p.Site, p.LocalOrderID, p.RemoteOrderID, p.Tracking, p.IsCustomProvider)
	if err != nil {
		s.logger.Warn("add shipment tracking failed", zap.Int64("order_id", p.RemoteOrderID), zap.Error(err))
		return s.emitOrderChanged(ctx, CauseAddShipmentTracking, order.ErrorFromNetwork(err), 0)
	}
	rows, err := s.trackings.InsertOrIgnore(ctx, *tracking)
	if err != nil {
		return s.emitOrderChanged(ctx, CauseAddShipmentTracking, storageError(err), 0)
	}
	return s.emitOrderChanged(ctx, CauseAddShipmentTracking, nil, rows)
}

// DeleteOrderShipmentTracking removes a tracking number from an order
func (s *Store) DeleteOrderShipmentTracking(ctx context.Context, p order.DeleteShipmentTrackingPayload) *order.OnOrderChanged {
	if err := s.client.DeleteOrderShipmentTracking(ctx, p.Site, p.RemoteOrderID, p.Tracking); err != nil {
		s.logger.Warn("delete shipment tracking failed", zap.Int64("order_id", p.RemoteOrderID), zap.Error(err))
		return s.emitOrderChanged(ctx, CauseDeleteShipmentTracking, order.ErrorFromNetwork(err), 0)
	}
	tracking := p.Tracking
	tracking.LocalSiteID = p.Site.LocalID
	tracking.LocalOrderID = p.LocalOrderID
	rows, err := s.trackings.Delete(ctx, &tracking)
	if err != nil {
		return s.emitOrderChanged(ctx, CauseDeleteShipmentTracking, storageError(err), 0)
	}
	return s.emitOrderChanged(ctx, CauseDeleteShipmentTracking, nil, rows)
}

// FetchOrderShipmentProviders replaces the site's shipment providers with the
// ones offered for an order
func (s *Store) FetchOrderShipmentProviders(ctx context.Context, site shared.Site, remoteOrderID int64) *order.OnOrderShipmentProvidersChanged {
	logger.WithLogger(ctx, s.logger).Debug("fetching shipment providers",
		zap.Int64("site_id", site.LocalID), zap.Int64("order_id", remoteOrderID))

	emit := func(rows int64, orderErr *order.OrderError) *order.OnOrderShipmentProvidersChanged {
		event := order.NewOnOrderShipmentProvidersChanged(rows, orderErr)
		s.dispatcher.Emit(ctx, event)
		return event
	}

	providers, err := s.client.FetchOrderShipmentProviders(ctx, site, remoteOrderID)
	if err != nil {
		s.logger.Warn("fetch shipment providers failed", zap.Int64("site_id", site.LocalID), zap.Error(err))
		return emit(0, order.ErrorFromNetwork(err))
	}

	var rows int64
	err = s.inTx(ctx, func(ctx context.Context) error {
		if _, err := s.providers.DeleteForSite(ctx, site.LocalID); err != nil {
			return err
		}
		n, err := s.providers.InsertOrIgnore(ctx, providers...)
		rows = n
		return err
	})
	if err != nil {
		return emit(0, storageError(err))
	}
	return emit(rows, nil)
}
