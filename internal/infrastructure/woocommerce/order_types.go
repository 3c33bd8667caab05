package woocommerce

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/order"
)

// ---------------------------------------------------------------------------
// Order DTOs (wc/v3/orders)
// ---------------------------------------------------------------------------

// OrderDTO is an order as returned by wc/v3/orders
type OrderDTO struct {
	ID                 int64         `json:"id"`
	Number             string        `json:"number"`
	Status             string        `json:"status"`
	Currency           string        `json:"currency"`
	OrderKey           string        `json:"order_key"`
	DateCreatedGMT     string        `json:"date_created_gmt"`
	DateModifiedGMT    string        `json:"date_modified_gmt"`
	DatePaidGMT        *string       `json:"date_paid_gmt"`
	Total              string        `json:"total"`
	TotalTax           string        `json:"total_tax"`
	ShippingTotal      string        `json:"shipping_total"`
	DiscountTotal      string        `json:"discount_total"`
	PaymentMethod      string        `json:"payment_method"`
	PaymentMethodTitle string        `json:"payment_method_title"`
	PricesIncludeTax   bool          `json:"prices_include_tax"`
	CustomerNote       string        `json:"customer_note"`
	CustomerID         int64         `json:"customer_id"`
	Billing            *BillingDTO   `json:"billing,omitempty"`
	Shipping           *ShippingDTO  `json:"shipping,omitempty"`
	LineItems          []LineItemDTO `json:"line_items"`
	FeeLines           []FeeLineDTO  `json:"fee_lines,omitempty"`
	CouponLines        []CouponLine  `json:"coupon_lines,omitempty"`
	Refunds            []RefundDTO   `json:"refunds,omitempty"`
	MetaData           []MetaDataDTO `json:"meta_data,omitempty"`
}

// BillingDTO is the billing address. An empty email is sent as null because
// WooCommerce rejects orders with an empty billing email.
type BillingDTO struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Company   string  `json:"company"`
	Address1  string  `json:"address_1"`
	Address2  string  `json:"address_2"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Postcode  string  `json:"postcode"`
	Country   string  `json:"country"`
	Email     *string `json:"email"`
	Phone     string  `json:"phone"`
}

// ShippingDTO is the shipping address
type ShippingDTO struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

// LineItemDTO is one product line
type LineItemDTO struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	ProductID   int64           `json:"product_id"`
	VariationID int64           `json:"variation_id"`
	Quantity    float64         `json:"quantity"`
	Subtotal    string          `json:"subtotal"`
	Total       string          `json:"total"`
	TotalTax    string          `json:"total_tax"`
	SKU         string          `json:"sku"`
	Price       decimal.Decimal `json:"price"`
}

// FeeLineDTO is a fee line
type FeeLineDTO struct {
	Name      string `json:"name"`
	Total     string `json:"total"`
	TaxStatus string `json:"tax_status"`
}

// CouponLine is a coupon applied to an order
type CouponLine struct {
	Code string `json:"code"`
}

// RefundDTO is a refund summary. Totals are negative.
type RefundDTO struct {
	ID    int64  `json:"id"`
	Total string `json:"total"`
}

// MetaDataDTO is a custom field. Values can be any JSON value.
type MetaDataDTO struct {
	ID    int64           `json:"id"`
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// OrderSummaryDTO is the reduced order used to reconcile lists
type OrderSummaryDTO struct {
	ID              int64  `json:"id"`
	DateCreatedGMT  string `json:"date_created_gmt"`
	DateModifiedGMT string `json:"date_modified_gmt"`
}

// OrderNoteDTO is an order note
type OrderNoteDTO struct {
	ID             int64  `json:"id"`
	Author         string `json:"author"`
	DateCreatedGMT string `json:"date_created_gmt"`
	Note           string `json:"note"`
	CustomerNote   bool   `json:"customer_note"`
}

// OrderTotalDTO is an entry of reports/orders/totals
type OrderTotalDTO struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Total int    `json:"total"`
}

// ShipmentTrackingDTO is a tracking entry of the shipment tracking plugin
type ShipmentTrackingDTO struct {
	TrackingID       string `json:"tracking_id"`
	TrackingNumber   string `json:"tracking_number"`
	TrackingProvider string `json:"tracking_provider"`
	TrackingLink     string `json:"tracking_link"`
	DateShipped      string `json:"date_shipped"`
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

// ToDomain maps the DTO onto an order of the given local site
func (d *OrderDTO) ToDomain(localSiteID int64) order.Order {
	o := order.Order{
		LocalSiteID:        localSiteID,
		RemoteOrderID:      d.ID,
		Number:             d.Number,
		Status:             d.Status,
		Currency:           d.Currency,
		OrderKey:           d.OrderKey,
		DateCreated:        gmtDate(d.DateCreatedGMT),
		DateModified:       gmtDate(d.DateModifiedGMT),
		Total:              ParseDecimal(d.Total),
		TotalTax:           ParseDecimal(d.TotalTax),
		ShippingTotal:      ParseDecimal(d.ShippingTotal),
		DiscountTotal:      ParseDecimal(d.DiscountTotal),
		PaymentMethod:      d.PaymentMethod,
		PaymentMethodTitle: d.PaymentMethodTitle,
		PricesIncludeTax:   d.PricesIncludeTax,
		CustomerNote:       d.CustomerNote,
		CustomerID:         d.CustomerID,
	}
	if d.Number == "" {
		o.Number = formatID(d.ID)
	}
	if d.DatePaidGMT != nil {
		o.DatePaid = gmtDate(*d.DatePaidGMT)
	}

	refunds := decimal.Zero
	for _, r := range d.Refunds {
		refunds = refunds.Add(ParseDecimal(r.Total))
	}
	o.RefundTotal = refunds

	codes := make([]string, 0, len(d.CouponLines))
	for _, c := range d.CouponLines {
		codes = append(codes, c.Code)
	}
	o.DiscountCodes = strings.Join(codes, ",")

	if d.Billing != nil {
		o.Billing = d.Billing.toAddress()
	}
	if d.Shipping != nil {
		o.Shipping = d.Shipping.toAddress()
	}

	o.LineItems = make([]order.LineItem, 0, len(d.LineItems))
	for _, li := range d.LineItems {
		o.LineItems = append(o.LineItems, li.toDomain())
	}
	for _, f := range d.FeeLines {
		o.FeeLines = append(o.FeeLines, order.FeeLine{Name: f.Name, Total: ParseDecimal(f.Total), TaxStatus: f.TaxStatus})
	}

	meta := make([]order.MetaData, 0, len(d.MetaData))
	for _, m := range d.MetaData {
		meta = append(meta, order.MetaData{ID: m.ID, Key: m.Key, Value: metaValue(m.Value)})
	}
	o.MetaData = order.DisplayableMetaData(meta)
	return o
}

func (li LineItemDTO) toDomain() order.LineItem {
	return order.LineItem{
		RemoteItemID: li.ID,
		ProductID:    li.ProductID,
		VariationID:  li.VariationID,
		Name:         li.Name,
		SKU:          li.SKU,
		Quantity:     li.Quantity,
		Subtotal:     ParseDecimal(li.Subtotal),
		Total:        ParseDecimal(li.Total),
		TotalTax:     ParseDecimal(li.TotalTax),
		Price:        li.Price,
	}
}

// metaValue keeps string values as is and any other JSON value as its text
func metaValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func (b *BillingDTO) toAddress() order.Address {
	a := order.Address{
		FirstName: b.FirstName,
		LastName:  b.LastName,
		Company:   b.Company,
		Address1:  b.Address1,
		Address2:  b.Address2,
		City:      b.City,
		State:     b.State,
		Postcode:  b.Postcode,
		Country:   b.Country,
		Phone:     b.Phone,
	}
	if b.Email != nil {
		a.Email = *b.Email
	}
	return a
}

func (s *ShippingDTO) toAddress() order.Address {
	return order.Address{
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Company:   s.Company,
		Address1:  s.Address1,
		Address2:  s.Address2,
		City:      s.City,
		State:     s.State,
		Postcode:  s.Postcode,
		Country:   s.Country,
		Phone:     s.Phone,
	}
}

// BillingFromAddress builds the billing DTO sent to WooCommerce
func BillingFromAddress(a order.Address) BillingDTO {
	dto := BillingDTO{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Company:   a.Company,
		Address1:  a.Address1,
		Address2:  a.Address2,
		City:      a.City,
		State:     a.State,
		Postcode:  a.Postcode,
		Country:   a.Country,
		Phone:     a.Phone,
	}
	if a.Email != "" {
		email := a.Email
		dto.Email = &email
	}
	return dto
}

// ShippingFromAddress builds the shipping DTO sent to WooCommerce
func ShippingFromAddress(a order.Address) ShippingDTO {
	return ShippingDTO{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Company:   a.Company,
		Address1:  a.Address1,
		Address2:  a.Address2,
		City:      a.City,
		State:     a.State,
		Postcode:  a.Postcode,
		Country:   a.Country,
		Phone:     a.Phone,
	}
}

func (d OrderSummaryDTO) toDomain(localSiteID int64) order.Summary {
	return order.Summary{
		LocalSiteID:   localSiteID,
		RemoteOrderID: d.ID,
		DateCreated:   gmtDate(d.DateCreatedGMT),
		DateModified:  gmtDate(d.DateModifiedGMT),
	}
}

func (d OrderNoteDTO) toDomain(localSiteID, localOrderID int64) order.Note {
	return order.Note{
		LocalSiteID:    localSiteID,
		LocalOrderID:   localOrderID,
		RemoteNoteID:   d.ID,
		DateCreated:    gmtDate(d.DateCreatedGMT),
		Note:           d.Note,
		Author:         d.Author,
		IsSystemNote:   order.IsSystemAuthor(d.Author),
		IsCustomerNote: d.CustomerNote,
	}
}

func (d ShipmentTrackingDTO) toDomain(localSiteID, localOrderID int64) order.ShipmentTracking {
	return order.ShipmentTracking{
		LocalSiteID:      localSiteID,
		LocalOrderID:     localOrderID,
		RemoteTrackingID: d.TrackingID,
		TrackingNumber:   d.TrackingNumber,
		TrackingProvider: d.TrackingProvider,
		TrackingLink:     d.TrackingLink,
		DateShipped:      d.DateShipped,
	}
}
