package models

import (
	"github.com/shopspring/decimal"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/order"
)

// AddressColumns is embedded twice in OrderModel with billing_ and shipping_ prefixes.
type AddressColumns struct {
	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`
	Company   string `gorm:"type:varchar(200)"`
	Address1  string `gorm:"type:varchar(255)"`
	Address2  string `gorm:"type:varchar(255)"`
	City      string `gorm:"type:varchar(100)"`
	State     string `gorm:"type:varchar(100)"`
	Postcode  string `gorm:"type:varchar(20)"`
	Country   string `gorm:"type:varchar(10)"`
	Email     string `gorm:"type:varchar(255)"`
	Phone     string `gorm:"type:varchar(50)"`
}

func addressColumnsFromDomain(a order.Address) AddressColumns {
	return AddressColumns(a)
}

func (c AddressColumns) toDomain() order.Address {
	return order.Address(c)
}

// OrderModel is the persistence model for a cached WooCommerce order.
// (local_site_id, remote_order_id) is unique.
type OrderModel struct {
	BaseModel
	LocalSiteID        int64                `gorm:"not null;uniqueIndex:idx_woo_orders_site_remote,priority:1"`
	RemoteOrderID      int64                `gorm:"not null;uniqueIndex:idx_woo_orders_site_remote,priority:2"`
	Number             string               `gorm:"type:varchar(50)"`
	Status             string               `gorm:"type:varchar(50);index"`
	Currency           string               `gorm:"type:varchar(10)"`
	OrderKey           string               `gorm:"type:varchar(100)"`
	DateCreated        string               `gorm:"type:varchar(30);index"`
	DateModified       string               `gorm:"type:varchar(30)"`
	DatePaid           string               `gorm:"type:varchar(30)"`
	Total              decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	TotalTax           decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingTotal      decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountTotal      decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	RefundTotal        decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountCodes      string               `gorm:"type:text"`
	PaymentMethod      string               `gorm:"type:varchar(100)"`
	PaymentMethodTitle string               `gorm:"type:varchar(255)"`
	PricesIncludeTax   bool                 `gorm:"not null;default:false"`
	CustomerNote       string               `gorm:"type:text"`
	CustomerID         int64                `gorm:"not null;default:0"`
	Billing            AddressColumns       `gorm:"embedded;embeddedPrefix:billing_"`
	Shipping           AddressColumns       `gorm:"embedded;embeddedPrefix:shipping_"`
	LineItems          []OrderLineItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	MetaData           []OrderMetaDataModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "woo_orders"
}

// ToDomain converts the persistence model to a domain Order.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		ID:                 m.ID,
		LocalSiteID:        m.LocalSiteID,
		RemoteOrderID:      m.RemoteOrderID,
		Number:             m.Number,
		Status:             m.Status,
		Currency:           m.Currency,
		OrderKey:           m.OrderKey,
		DateCreated:        m.DateCreated,
		DateModified:       m.DateModified,
		DatePaid:           m.DatePaid,
		Total:              m.Total,
		TotalTax:           m.TotalTax,
		ShippingTotal:      m.ShippingTotal,
		DiscountTotal:      m.DiscountTotal,
		RefundTotal:        m.RefundTotal,
		DiscountCodes:      m.DiscountCodes,
		PaymentMethod:      m.PaymentMethod,
		PaymentMethodTitle: m.PaymentMethodTitle,
		PricesIncludeTax:   m.PricesIncludeTax,
		CustomerNote:       m.CustomerNote,
		CustomerID:         m.CustomerID,
		Billing:            m.Billing.toDomain(),
		Shipping:           m.Shipping.toDomain(),
		LineItems:          make([]order.LineItem, 0, len(m.LineItems)),
		MetaData:           make([]order.MetaData, 0, len(m.MetaData)),
	}
	for i := range m.LineItems {
		o.LineItems = append(o.LineItems, m.LineItems[i].ToDomain())
	}
	for i := range m.MetaData {
		o.MetaData = append(o.MetaData, m.MetaData[i].ToDomain())
	}
	return o
}

// OrderModelFromDomain creates a persistence model from a domain Order.
// Children are not copied; the repository writes them separately.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{
		LocalSiteID:        o.LocalSiteID,
		RemoteOrderID:      o.RemoteOrderID,
		Number:             o.Number,
		Status:             o.Status,
		Currency:           o.Currency,
		OrderKey:           o.OrderKey,
		DateCreated:        o.DateCreated,
		DateModified:       o.DateModified,
		DatePaid:           o.DatePaid,
		Total:              o.Total,
		TotalTax:           o.TotalTax,
		ShippingTotal:      o.ShippingTotal,
		DiscountTotal:      o.DiscountTotal,
		RefundTotal:        o.RefundTotal,
		DiscountCodes:      o.DiscountCodes,
		PaymentMethod:      o.PaymentMethod,
		PaymentMethodTitle: o.PaymentMethodTitle,
		PricesIncludeTax:   o.PricesIncludeTax,
		CustomerNote:       o.CustomerNote,
		CustomerID:         o.CustomerID,
		Billing:            addressColumnsFromDomain(o.Billing),
		Shipping:           addressColumnsFromDomain(o.Shipping),
	}
	m.ID = o.ID
	return m
}

// OrderLineItemModel is a line item owned by an OrderModel.
type OrderLineItemModel struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	OrderID      int64           `gorm:"not null;index"`
	LocalSiteID  int64           `gorm:"not null;index"`
	RemoteItemID int64           `gorm:"not null"`
	ProductID    int64           `gorm:"not null;default:0"`
	VariationID  int64           `gorm:"not null;default:0"`
	Name         string          `gorm:"type:varchar(255)"`
	SKU          string          `gorm:"type:varchar(100)"`
	Quantity     float64         `gorm:"not null;default:0"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalTax     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Price        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderLineItemModel) TableName() string {
	return "woo_order_line_items"
}

// ToDomain converts the persistence model to a domain LineItem.
func (m *OrderLineItemModel) ToDomain() order.LineItem {
	return order.LineItem{
		ID:           m.ID,
		RemoteItemID: m.RemoteItemID,
		ProductID:    m.ProductID,
		VariationID:  m.VariationID,
		Name:         m.Name,
		SKU:          m.SKU,
		Quantity:     m.Quantity,
		Subtotal:     m.Subtotal,
		Total:        m.Total,
		TotalTax:     m.TotalTax,
		Price:        m.Price,
	}
}

// OrderLineItemModelFromDomain creates a line item row for the given order row.
func OrderLineItemModelFromDomain(orderID, localSiteID int64, li order.LineItem) OrderLineItemModel {
	return OrderLineItemModel{
		OrderID:      orderID,
		LocalSiteID:  localSiteID,
		RemoteItemID: li.RemoteItemID,
		ProductID:    li.ProductID,
		VariationID:  li.VariationID,
		Name:         li.Name,
		SKU:          li.SKU,
		Quantity:     li.Quantity,
		Subtotal:     li.Subtotal,
		Total:        li.Total,
		TotalTax:     li.TotalTax,
		Price:        li.Price,
	}
}

// OrderMetaDataModel stores one displayable metadata entry of an order.
type OrderMetaDataModel struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	OrderID       int64  `gorm:"not null;uniqueIndex:idx_woo_order_meta_order_remote,priority:1"`
	RemoteMetaID  int64  `gorm:"not null;uniqueIndex:idx_woo_order_meta_order_remote,priority:2"`
	LocalSiteID   int64  `gorm:"not null;index:idx_woo_order_meta_site_order,priority:1"`
	RemoteOrderID int64  `gorm:"not null;index:idx_woo_order_meta_site_order,priority:2"`
	Key           string `gorm:"type:varchar(255);not null"`
	Value         string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (OrderMetaDataModel) TableName() string {
	return "woo_order_meta_data"
}

// ToDomain converts the persistence model to a domain MetaData entry.
func (m *OrderMetaDataModel) ToDomain() order.MetaData {
	return order.MetaData{ID: m.RemoteMetaID, Key: m.Key, Value: m.Value}
}

// OrderSummaryModel tracks the modification date of a remote order.
type OrderSummaryModel struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	LocalSiteID   int64  `gorm:"not null;uniqueIndex:idx_woo_order_summaries_site_remote,priority:1"`
	RemoteOrderID int64  `gorm:"not null;uniqueIndex:idx_woo_order_summaries_site_remote,priority:2"`
	DateCreated   string `gorm:"type:varchar(30)"`
	DateModified  string `gorm:"type:varchar(30)"`
}

// TableName returns the table name for GORM
func (OrderSummaryModel) TableName() string {
	return "woo_order_summaries"
}

// ToDomain converts the persistence model to a domain Summary.
func (m *OrderSummaryModel) ToDomain() order.Summary {
	return order.Summary{
		ID:            m.ID,
		LocalSiteID:   m.LocalSiteID,
		RemoteOrderID: m.RemoteOrderID,
		DateCreated:   m.DateCreated,
		DateModified:  m.DateModified,
	}
}

// OrderSummaryModelFromDomain creates a persistence model from a domain Summary.
func OrderSummaryModelFromDomain(s order.Summary) OrderSummaryModel {
	return OrderSummaryModel{
		ID:            s.ID,
		LocalSiteID:   s.LocalSiteID,
		RemoteOrderID: s.RemoteOrderID,
		DateCreated:   s.DateCreated,
		DateModified:  s.DateModified,
	}
}

// OrderNoteModel is a cached order note.
type OrderNoteModel struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	LocalSiteID    int64  `gorm:"not null;uniqueIndex:idx_woo_order_notes_unique,priority:1"`
	LocalOrderID   int64  `gorm:"not null;uniqueIndex:idx_woo_order_notes_unique,priority:2"`
	RemoteNoteID   int64  `gorm:"not null;uniqueIndex:idx_woo_order_notes_unique,priority:3"`
	DateCreated    string `gorm:"type:varchar(30)"`
	Note           string `gorm:"type:text;not null"`
	Author         string `gorm:"type:varchar(255)"`
	IsSystemNote   bool   `gorm:"not null;default:false"`
	IsCustomerNote bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (OrderNoteModel) TableName() string {
	return "woo_order_notes"
}

// ToDomain converts the persistence model to a domain Note.
func (m *OrderNoteModel) ToDomain() order.Note {
	return order.Note{
		ID:             m.ID,
		LocalSiteID:    m.LocalSiteID,
		LocalOrderID:   m.LocalOrderID,
		RemoteNoteID:   m.RemoteNoteID,
		DateCreated:    m.DateCreated,
		Note:           m.Note,
		Author:         m.Author,
		IsSystemNote:   m.IsSystemNote,
		IsCustomerNote: m.IsCustomerNote,
	}
}

// OrderNoteModelFromDomain creates a persistence model from a domain Note.
func OrderNoteModelFromDomain(n order.Note) OrderNoteModel {
	return OrderNoteModel{
		ID:             n.ID,
		LocalSiteID:    n.LocalSiteID,
		LocalOrderID:   n.LocalOrderID,
		RemoteNoteID:   n.RemoteNoteID,
		DateCreated:    n.DateCreated,
		Note:           n.Note,
		Author:         n.Author,
		IsSystemNote:   n.IsSystemNote,
		IsCustomerNote: n.IsCustomerNote,
	}
}

// OrderStatusOptionModel is a status key/label pair configured on a store.
type OrderStatusOptionModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	LocalSiteID int64  `gorm:"not null;uniqueIndex:idx_woo_order_status_site_key,priority:1"`
	StatusKey   string `gorm:"type:varchar(100);not null;uniqueIndex:idx_woo_order_status_site_key,priority:2"`
	Label       string `gorm:"type:varchar(255)"`
	StatusCount int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderStatusOptionModel) TableName() string {
	return "woo_order_status_options"
}

// ToDomain converts the persistence model to a domain StatusOption.
func (m *OrderStatusOptionModel) ToDomain() order.StatusOption {
	return order.StatusOption{
		ID:          m.ID,
		LocalSiteID: m.LocalSiteID,
		StatusKey:   m.StatusKey,
		Label:       m.Label,
		StatusCount: m.StatusCount,
	}
}

// OrderStatusOptionModelFromDomain creates a persistence model from a domain StatusOption.
func OrderStatusOptionModelFromDomain(s *order.StatusOption) *OrderStatusOptionModel {
	return &OrderStatusOptionModel{
		ID:          s.ID,
		LocalSiteID: s.LocalSiteID,
		StatusKey:   s.StatusKey,
		Label:       s.Label,
		StatusCount: s.StatusCount,
	}
}

// ShipmentTrackingModel is a tracking record attached to an order.
type ShipmentTrackingModel struct {
	ID               int64  `gorm:"primaryKey;autoIncrement"`
	LocalSiteID      int64  `gorm:"not null;uniqueIndex:idx_woo_trackings_unique,priority:1"`
	LocalOrderID     int64  `gorm:"not null;uniqueIndex:idx_woo_trackings_unique,priority:2"`
	RemoteTrackingID string `gorm:"type:varchar(100);not null;uniqueIndex:idx_woo_trackings_unique,priority:3"`
	TrackingNumber   string `gorm:"type:varchar(255);not null"`
	TrackingProvider string `gorm:"type:varchar(255);not null"`
	TrackingLink     string `gorm:"type:varchar(512)"`
	DateShipped      string `gorm:"type:varchar(30)"`
}

// TableName returns the table name for GORM
func (ShipmentTrackingModel) TableName() string {
	return "woo_order_shipment_trackings"
}

// ToDomain converts the persistence model to a domain ShipmentTracking.
func (m *ShipmentTrackingModel) ToDomain() order.ShipmentTracking {
	return order.ShipmentTracking{
		ID:               m.ID,
		LocalSiteID:      m.LocalSiteID,
		LocalOrderID:     m.LocalOrderID,
		RemoteTrackingID: m.RemoteTrackingID,
		TrackingNumber:   m.TrackingNumber,
		TrackingProvider: m.TrackingProvider,
		TrackingLink:     m.TrackingLink,
		DateShipped:      m.DateShipped,
	}
}

// ShipmentTrackingModelFromDomain creates a persistence model from a domain ShipmentTracking.
func ShipmentTrackingModelFromDomain(t order.ShipmentTracking) ShipmentTrackingModel {
	return ShipmentTrackingModel{
		ID:               t.ID,
		LocalSiteID:      t.LocalSiteID,
		LocalOrderID:     t.LocalOrderID,
		RemoteTrackingID: t.RemoteTrackingID,
		TrackingNumber:   t.TrackingNumber,
		TrackingProvider: t.TrackingProvider,
		TrackingLink:     t.TrackingLink,
		DateShipped:      t.DateShipped,
	}
}

// ShipmentProviderModel is a carrier available for shipment tracking.
type ShipmentProviderModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	LocalSiteID int64  `gorm:"not null;uniqueIndex:idx_woo_providers_unique,priority:1"`
	Country     string `gorm:"type:varchar(100);not null;uniqueIndex:idx_woo_providers_unique,priority:2"`
	CarrierName string `gorm:"type:varchar(255);not null;uniqueIndex:idx_woo_providers_unique,priority:3"`
	CarrierLink string `gorm:"type:varchar(512)"`
}

// TableName returns the table name for GORM
func (ShipmentProviderModel) TableName() string {
	return "woo_order_shipment_providers"
}

// ToDomain converts the persistence model to a domain ShipmentProvider.
func (m *ShipmentProviderModel) ToDomain() order.ShipmentProvider {
	return order.ShipmentProvider{
		ID:          m.ID,
		LocalSiteID: m.LocalSiteID,
		Country:     m.Country,
		CarrierName: m.CarrierName,
		CarrierLink: m.CarrierLink,
	}
}

// ShipmentProviderModelFromDomain creates a persistence model from a domain ShipmentProvider.
func ShipmentProviderModelFromDomain(p order.ShipmentProvider) ShipmentProviderModel {
	return ShipmentProviderModel{
		ID:          p.ID,
		LocalSiteID: p.LocalSiteID,
		Country:     p.Country,
		CarrierName: p.CarrierName,
		CarrierLink: p.CarrierLink,
	}
}
