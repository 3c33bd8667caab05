// Package order holds the WooCommerce order models cached per site, the
// order list descriptor, reconciliation helpers and the order error taxonomy.
package order

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// NumOrdersPerFetch is the page size for order fetches and by-id chunks
	NumOrdersPerFetch = 15
	// DefaultOrderStatus requests orders of every status
	DefaultOrderStatus = "any"
)

// Standard WooCommerce order statuses
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusOnHold     = "on-hold"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusRefunded   = "refunded"
	StatusFailed     = "failed"
)

// Address is a billing or shipping address
type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone"`
}

// IsEmpty reports whether no address field is set
func (a Address) IsEmpty() bool {
	return a == Address{}
}

// LineItem is a product line of an order
type LineItem struct {
	ID           int64           `json:"id"`
	RemoteItemID int64           `json:"remote_item_id"`
	ProductID    int64           `json:"product_id"`
	VariationID  int64           `json:"variation_id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Quantity     float64         `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Total        decimal.Decimal `json:"total"`
	TotalTax     decimal.Decimal `json:"total_tax"`
	Price        decimal.Decimal `json:"price"`
}

// FeeLine is a fee added to an order. Fee lines are only sent, not cached.
type FeeLine struct {
	Name      string          `json:"name"`
	Total     decimal.Decimal `json:"total"`
	TaxStatus string          `json:"tax_status"`
}

// MetaData is a custom field attached to an order
type MetaData struct {
	ID    int64  `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// IsDisplayable reports whether the entry is meant to be shown. WooCommerce
// and plugins prefix internal keys with an underscore.
func (m MetaData) IsDisplayable() bool {
	return m.Key != "" && !strings.HasPrefix(m.Key, "_")
}

// DisplayableMetaData drops internal entries
func DisplayableMetaData(entries []MetaData) []MetaData {
	out := make([]MetaData, 0, len(entries))
	for _, m := range entries {
		if m.IsDisplayable() {
			out = append(out, m)
		}
	}
	return out
}

// Order is a WooCommerce order cached for a site
type Order struct {
	ID                 int64           `json:"id"`
	LocalSiteID        int64           `json:"local_site_id"`
	RemoteOrderID      int64           `json:"remote_order_id"`
	Number             string          `json:"number"`
	Status             string          `json:"status"`
	Currency           string          `json:"currency"`
	OrderKey           string          `json:"order_key"`
	DateCreated        string          `json:"date_created"`
	DateModified       string          `json:"date_modified"`
	DatePaid           string          `json:"date_paid"`
	Total              decimal.Decimal `json:"total"`
	TotalTax           decimal.Decimal `json:"total_tax"`
	ShippingTotal      decimal.Decimal `json:"shipping_total"`
	DiscountTotal      decimal.Decimal `json:"discount_total"`
	RefundTotal        decimal.Decimal `json:"refund_total"`
	DiscountCodes      string          `json:"discount_codes"`
	PaymentMethod      string          `json:"payment_method"`
	PaymentMethodTitle string          `json:"payment_method_title"`
	PricesIncludeTax   bool            `json:"prices_include_tax"`
	CustomerNote       string          `json:"customer_note"`
	CustomerID         int64           `json:"customer_id"`
	Billing            Address         `json:"billing"`
	Shipping           Address         `json:"shipping"`
	LineItems          []LineItem      `json:"line_items"`
	FeeLines           []FeeLine       `json:"fee_lines,omitempty"`
	MetaData           []MetaData      `json:"meta_data"`
}

// IsPaid reports whether the order has a payment date
func (o *Order) IsPaid() bool {
	return o.DatePaid != ""
}

// Summary is the lightweight id and timestamps pair used to reconcile order lists
type Summary struct {
	ID            int64  `json:"id"`
	LocalSiteID   int64  `json:"local_site_id"`
	RemoteOrderID int64  `json:"remote_order_id"`
	DateCreated   string `json:"date_created"`
	DateModified  string `json:"date_modified"`
}

// Note is an order note
type Note struct {
	ID             int64  `json:"id"`
	LocalSiteID    int64  `json:"local_site_id"`
	LocalOrderID   int64  `json:"local_order_id"`
	RemoteNoteID   int64  `json:"remote_note_id"`
	DateCreated    string `json:"date_created"`
	Note           string `json:"note" validate:"required"`
	Author         string `json:"author"`
	IsSystemNote   bool   `json:"is_system_note"`
	IsCustomerNote bool   `json:"is_customer_note"`
}

// IsSystemAuthor reports whether an author value denotes a note written by WooCommerce itself
func IsSystemAuthor(author string) bool {
	return author == "" || author == "system"
}

// StatusOption is an order status available on a site, with its order count
type StatusOption struct {
	ID          int64  `json:"id"`
	LocalSiteID int64  `json:"local_site_id"`
	StatusKey   string `json:"status_key"`
	Label       string `json:"label"`
	StatusCount int    `json:"status_count"`
}

// ShipmentTracking is a tracking number attached to an order by the shipment tracking plugin
type ShipmentTracking struct {
	ID               int64  `json:"id"`
	LocalSiteID      int64  `json:"local_site_id"`
	LocalOrderID     int64  `json:"local_order_id"`
	RemoteTrackingID string `json:"remote_tracking_id"`
	TrackingNumber   string `json:"tracking_number" validate:"required"`
	TrackingProvider string `json:"tracking_provider" validate:"required"`
	TrackingLink     string `json:"tracking_link" validate:"omitempty,url"`
	DateShipped      string `json:"date_shipped"`
}

// ShipmentProvider is a carrier known to the shipment tracking plugin
type ShipmentProvider struct {
	ID          int64  `json:"id"`
	LocalSiteID int64  `json:"local_site_id"`
	Country     string `json:"country"`
	CarrierName string `json:"carrier_name"`
	CarrierLink string `json:"carrier_link"`
}
