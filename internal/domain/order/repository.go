package order

import "context"

// Repository persists orders with their line items and meta data
type Repository interface {
	// Upsert inserts or updates an order, replacing its line items and meta data
	Upsert(ctx context.Context, o *Order) error
	// UpsertInfo inserts or updates the order row only
	UpsertInfo(ctx context.Context, o *Order) error
	UpdateStatus(ctx context.Context, localSiteID, remoteOrderID int64, status string) error
	FindByRemoteID(ctx context.Context, localSiteID, remoteOrderID int64) (*Order, error)
	FindForSite(ctx context.Context, localSiteID int64, statuses ...string) ([]Order, error)
	FindByRemoteIDs(ctx context.Context, localSiteID int64, remoteOrderIDs []int64) ([]Order, error)
	CountForSite(ctx context.Context, localSiteID int64) (int64, error)
	DeleteForSite(ctx context.Context, localSiteID int64) (int64, error)
	FindMetaData(ctx context.Context, localSiteID, remoteOrderID int64) ([]MetaData, error)
}

// SummaryRepository persists order summaries
type SummaryRepository interface {
	Upsert(ctx context.Context, summaries []Summary) error
	FindByRemoteIDs(ctx context.Context, localSiteID int64, remoteOrderIDs []int64) ([]Summary, error)
}

// NoteRepository persists order notes
type NoteRepository interface {
	InsertOrIgnore(ctx context.Context, notes ...Note) (int64, error)
	FindForOrder(ctx context.Context, localOrderID int64) ([]Note, error)
	DeleteForSite(ctx context.Context, localSiteID int64) (int64, error)
}

// StatusOptionRepository persists order status options
type StatusOptionRepository interface {
	FindForSite(ctx context.Context, localSiteID int64) ([]StatusOption, error)
	FindByKey(ctx context.Context, localSiteID int64, key string) (*StatusOption, error)
	Upsert(ctx context.Context, option *StatusOption) (int64, error)
	Delete(ctx context.Context, option *StatusOption) (int64, error)
}

// TrackingRepository persists shipment trackings
type TrackingRepository interface {
	FindForOrder(ctx context.Context, localSiteID, localOrderID int64) ([]ShipmentTracking, error)
	FindByTrackingNumber(ctx context.Context, localSiteID, localOrderID int64, trackingNumber string) (*ShipmentTracking, error)
	InsertOrIgnore(ctx context.Context, trackings ...ShipmentTracking) (int64, error)
	Delete(ctx context.Context, tracking *ShipmentTracking) (int64, error)
	DeleteForSite(ctx context.Context, localSiteID int64) (int64, error)
}

// ProviderRepository persists shipment providers
type ProviderRepository interface {
	FindForSite(ctx context.Context, localSiteID int64) ([]ShipmentProvider, error)
	InsertOrIgnore(ctx context.Context, providers ...ShipmentProvider) (int64, error)
	DeleteForSite(ctx context.Context, localSiteID int64) (int64, error)
}
