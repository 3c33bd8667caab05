package models

import "github.com/wordpress-mobile/fluxc-go/internal/domain/customer"

// CustomerAddressColumns is embedded with billing_ and shipping_ prefixes.
type CustomerAddressColumns struct {
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

// CustomerModel is the persistence model for a cached WooCommerce customer.
type CustomerModel struct {
	BaseModel
	LocalSiteID      int64                  `gorm:"not null;uniqueIndex:idx_woo_customers_site_remote,priority:1"`
	RemoteCustomerID int64                  `gorm:"not null;uniqueIndex:idx_woo_customers_site_remote,priority:2"`
	FirstName        string                 `gorm:"type:varchar(100)"`
	LastName         string                 `gorm:"type:varchar(100)"`
	Email            string                 `gorm:"type:varchar(255);index"`
	Role             string                 `gorm:"type:varchar(50)"`
	Username         string                 `gorm:"type:varchar(100)"`
	AvatarURL        string                 `gorm:"type:varchar(512)"`
	IsPayingCustomer bool                   `gorm:"not null;default:false"`
	DateCreated      string                 `gorm:"type:varchar(30)"`
	DateCreatedGMT   string                 `gorm:"type:varchar(30)"`
	DateModified     string                 `gorm:"type:varchar(30)"`
	DateModifiedGMT  string                 `gorm:"type:varchar(30)"`
	Billing          CustomerAddressColumns `gorm:"embedded;embeddedPrefix:billing_"`
	Shipping         CustomerAddressColumns `gorm:"embedded;embeddedPrefix:shipping_"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "woo_customers"
}

// ToDomain converts the persistence model to a domain Customer.
func (m *CustomerModel) ToDomain() customer.Customer {
	return customer.Customer{
		ID:               m.ID,
		LocalSiteID:      m.LocalSiteID,
		RemoteCustomerID: m.RemoteCustomerID,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Email:            m.Email,
		Role:             m.Role,
		Username:         m.Username,
		AvatarURL:        m.AvatarURL,
		IsPayingCustomer: m.IsPayingCustomer,
		DateCreated:      m.DateCreated,
		DateCreatedGMT:   m.DateCreatedGMT,
		DateModified:     m.DateModified,
		DateModifiedGMT:  m.DateModifiedGMT,
		Billing:          customer.Address(m.Billing),
		Shipping:         customer.Address(m.Shipping),
	}
}

// CustomerModelFromDomain creates a persistence model from a domain Customer.
func CustomerModelFromDomain(c customer.Customer) *CustomerModel {
	m := &CustomerModel{
		LocalSiteID:      c.LocalSiteID,
		RemoteCustomerID: c.RemoteCustomerID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Email:            c.Email,
		Role:             c.Role,
		Username:         c.Username,
		AvatarURL:        c.AvatarURL,
		IsPayingCustomer: c.IsPayingCustomer,
		DateCreated:      c.DateCreated,
		DateCreatedGMT:   c.DateCreatedGMT,
		DateModified:     c.DateModified,
		DateModifiedGMT:  c.DateModifiedGMT,
		Billing:          CustomerAddressColumns(c.Billing),
		Shipping:         CustomerAddressColumns(c.Shipping),
	}
	m.ID = c.ID
	return m
}
