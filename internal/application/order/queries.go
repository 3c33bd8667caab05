package order

import (
	"context"
	"errors"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/order"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

// GetOrdersForSite returns the cached orders of a site, optionally only those with one of statuses
func (s *Store) GetOrdersForSite(ctx context.Context, site shared.Site, statuses ...string) ([]order.Order, error) {
	return s.orders.FindForSite(ctx, site.LocalID, statuses...)
}

// GetOrdersForDescriptor returns the cached orders of a list among remoteOrderIDs, keyed by remote id
func (s *Store) GetOrdersForDescriptor(ctx context.Context, descriptor order.ListDescriptor, remoteOrderIDs []int64) (map[int64]order.Order, error) {
	orders, err := s.orders.FindByRemoteIDs(ctx, descriptor.Site.LocalID, remoteOrderIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]order.Order, len(orders))
	for _, o := range orders {
		byID[o.RemoteOrderID] = o
	}
	return byID, nil
}

// GetOrderSummariesByRemoteOrderIDs returns the cached summaries among remoteOrderIDs
func (s *Store) GetOrderSummariesByRemoteOrderIDs(ctx context.Context, site shared.Site, remoteOrderIDs []int64) ([]order.Summary, error) {
	return s.summaries.FindByRemoteIDs(ctx, site.LocalID, remoteOrderIDs)
}

// GetOrderByIDAndSite returns a cached order, or nil when it is not cached
func (s *Store) GetOrderByIDAndSite(ctx context.Context, remoteOrderID int64, site shared.Site) (*order.Order, error) {
	o, err := s.orders.FindByRemoteID(ctx, site.LocalID, remoteOrderID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return o, err
}

// GetOrderNotesForOrder returns the cached notes of an order
func (s *Store) GetOrderNotesForOrder(ctx context.Context, localOrderID int64) ([]order.Note, error) {
	return s.notes.FindForOrder(ctx, localOrderID)
}

// GetOrderStatusOptionsForSite returns the cached status options of a site
func (s *Store) GetOrderStatusOptionsForSite(ctx context.Context, site shared.Site) ([]order.StatusOption, error) {
	return s.statuses.FindForSite(ctx, site.LocalID)
}

// GetOrderStatusForSiteAndKey returns one cached status option, or nil
func (s *Store) GetOrderStatusForSiteAndKey(ctx context.Context, site shared.Site, key string) (*order.StatusOption, error) {
	option, err := s.statuses.FindByKey(ctx, site.LocalID, key)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return option, err
}

// GetShipmentTrackingsForOrder returns the cached trackings of an order
func (s *Store) GetShipmentTrackingsForOrder(ctx context.Context, site shared.Site, localOrderID int64) ([]order.ShipmentTracking, error) {
	return s.trackings.FindForOrder(ctx, site.LocalID, localOrderID)
}

// GetShipmentTrackingByTrackingNumber returns one cached tracking, or nil
func (s *Store) GetShipmentTrackingByTrackingNumber(ctx context.Context, site shared.Site, localOrderID int64, trackingNumber string) (*order.ShipmentTracking, error) {
	tracking, err := s.trackings.FindByTrackingNumber(ctx, site.LocalID, localOrderID, trackingNumber)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return tracking, err
}

// GetShipmentProvidersForSite returns the cached shipment providers of a site
func (s *Store) GetShipmentProvidersForSite(ctx context.Context, site shared.Site) ([]order.ShipmentProvider, error) {
	return s.providers.FindForSite(ctx, site.LocalID)
}

// GetOrderMetaData returns the displayable meta data of a cached order
func (s *Store) GetOrderMetaData(ctx context.Context, site shared.Site, remoteOrderID int64) ([]order.MetaData, error) {
	return s.orders.FindMetaData(ctx, site.LocalID, remoteOrderID)
}
