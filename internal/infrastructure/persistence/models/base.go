package models

import "time"

// BaseModel provides the surrogate key shared by cached rows. UpdatedAt records
// when the row was last written from a remote payload.
type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UpdatedAt time.Time `gorm:"not null"`
}

// SiteScopedModel is a cached row that belongs to a single local site.
type SiteScopedModel struct {
	BaseModel
	LocalSiteID int64 `gorm:"not null;index"`
}

// All returns every persistence model in dependency order, parents first.
func All() []any {
	return []any{
		&SiteModel{},
		&OrderModel{},
		&OrderLineItemModel{},
		&OrderMetaDataModel{},
		&OrderSummaryModel{},
		&OrderNoteModel{},
		&OrderStatusOptionModel{},
		&ShipmentTrackingModel{},
		&ShipmentProviderModel{},
		&ListModel{},
		&ListItemModel{},
		&CouponModel{},
		&CouponProductModel{},
		&CouponCategoryModel{},
		&CouponEmailModel{},
		&ProductModel{},
		&ProductCategoryModel{},
		&CustomerModel{},
		&TaxClassModel{},
		&SitePluginModel{},
		&BloggingPromptModel{},
		&NotificationModel{},
		&DashboardCardModel{},
	}
}
