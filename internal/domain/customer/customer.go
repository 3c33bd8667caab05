// Package customer holds the WooCommerce customer model and list filters.
package customer

import "context"

// DefaultPageSize is the number of customers requested per page
const DefaultPageSize = 25

// Address is a customer's billing or shipping address
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
	Phone     string `json:"phone,omitempty"`
}

// Customer is a WooCommerce customer
type Customer struct {
	ID               int64   `json:"id"`
	LocalSiteID      int64   `json:"local_site_id"`
	RemoteCustomerID int64   `json:"remote_customer_id"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Email            string  `json:"email"`
	Role             string  `json:"role"`
	Username         string  `json:"username"`
	AvatarURL        string  `json:"avatar_url"`
	IsPayingCustomer bool    `json:"is_paying_customer"`
	DateCreated      string  `json:"date_created"`
	DateCreatedGMT   string  `json:"date_created_gmt"`
	DateModified     string  `json:"date_modified"`
	DateModifiedGMT  string  `json:"date_modified_gmt"`
	Billing          Address `json:"billing"`
	Shipping         Address `json:"shipping"`
}

// Order values accepted by the customers endpoint
const (
	OrderByName         = "name"
	OrderByID           = "id"
	OrderByRegisteredAt = "registered_date"
)

// FetchOptions filters a customer list request
type FetchOptions struct {
	Page        int
	SearchQuery string
	Email       string
	Role        string
	OrderBy     string
	IncludeIDs  []int64
	ExcludeIDs  []int64
}

// WithDefaults fills in page 1 and ordering by name
func (o FetchOptions) WithDefaults() FetchOptions {
	if o.Page <= 0 {
		o.Page = 1
	}
	if o.OrderBy == "" {
		o.OrderBy = OrderByName
	}
	return o
}

// IsFiltered reports whether the result is a filtered subset that must not be cached
func (o FetchOptions) IsFiltered() bool {
	return o.SearchQuery != "" || o.Email != "" || o.Role != "" ||
		len(o.IncludeIDs) > 0 || len(o.ExcludeIDs) > 0
}

// Repository persists customers
type Repository interface {
	Upsert(ctx context.Context, customers ...Customer) error
	FindForSite(ctx context.Context, localSiteID int64) ([]Customer, error)
	FindByRemoteID(ctx context.Context, localSiteID, remoteCustomerID int64) (*Customer, error)
	DeleteForSite(ctx context.Context, localSiteID int64) (int64, error)
}
