package woocommerce

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/customer"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

// CustomerAddressDTO is a customer billing or shipping address
type CustomerAddressDTO struct {
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

// CustomerDTO is a customer as returned by wc/v3/customers
type CustomerDTO struct {
	ID               int64               `json:"id"`
	DateCreated      string              `json:"date_created"`
	DateCreatedGMT   string              `json:"date_created_gmt"`
	DateModified     string              `json:"date_modified"`
	DateModifiedGMT  string              `json:"date_modified_gmt"`
	Email            string              `json:"email"`
	FirstName        string              `json:"first_name"`
	LastName         string              `json:"last_name"`
	Role             string              `json:"role"`
	Username         string              `json:"username"`
	Billing          *CustomerAddressDTO `json:"billing"`
	Shipping         *CustomerAddressDTO `json:"shipping"`
	IsPayingCustomer bool                `json:"is_paying_customer"`
	AvatarURL        string              `json:"avatar_url"`
}

// CustomerMapper maps customer DTOs onto cached customers
type CustomerMapper struct{}

// MapToModel maps dto onto a customer of site
func (CustomerMapper) MapToModel(site shared.Site, dto CustomerDTO) customer.Customer {
	c := customer.Customer{
		LocalSiteID:      site.LocalID,
		RemoteCustomerID: dto.ID,
		FirstName:        dto.FirstName,
		LastName:         dto.LastName,
		Email:            dto.Email,
		Role:             dto.Role,
		Username:         dto.Username,
		AvatarURL:        dto.AvatarURL,
		IsPayingCustomer: dto.IsPayingCustomer,
		DateCreated:      dto.DateCreated,
		DateCreatedGMT:   gmtDate(dto.DateCreatedGMT),
		DateModified:     dto.DateModified,
		DateModifiedGMT:  gmtDate(dto.DateModifiedGMT),
	}
	if dto.Billing != nil {
		c.Billing = customer.Address(*dto.Billing)
	}
	if dto.Shipping != nil {
		c.Shipping = customer.Address(*dto.Shipping)
	}
	return c
}

// CustomerRestClient calls the WooCommerce customer endpoints
type CustomerRestClient struct {
	*Client
}

// NewCustomerRestClient creates a customer client
func NewCustomerRestClient(c *Client) *CustomerRestClient {
	return &CustomerRestClient{Client: c}
}

// FetchSingleCustomer fetches one customer
func (c *CustomerRestClient) FetchSingleCustomer(ctx context.Context, site shared.Site, remoteCustomerID int64) (*CustomerDTO, error) {
	var dto CustomerDTO
	if err := c.call(ctx, site, http.MethodGet, route(nsV3, "customers", formatID(remoteCustomerID)), nil, nil, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

// FetchCustomers fetches a page of customers matching opts
func (c *CustomerRestClient) FetchCustomers(ctx context.Context, site shared.Site, pageSize int, opts customer.FetchOptions) ([]CustomerDTO, error) {
	opts = opts.WithDefaults()
	params := url.Values{
		"per_page": {strconv.Itoa(pageSize)},
		"page":     {strconv.Itoa(opts.Page)},
		"orderby":  {opts.OrderBy},
		"order":    {"asc"},
	}
	if opts.SearchQuery != "" {
		params.Set("search", opts.SearchQuery)
	}
	if opts.Email != "" {
		params.Set("email", opts.Email)
	}
	if opts.Role != "" {
		params.Set("role", opts.Role)
	}
	if len(opts.IncludeIDs) > 0 {
		params.Set("include", joinIDs(opts.IncludeIDs))
	}
	if len(opts.ExcludeIDs) > 0 {
		params.Set("exclude", joinIDs(opts.ExcludeIDs))
	}

	var dtos []CustomerDTO
	if err := c.call(ctx, site, http.MethodGet, route(nsV3, "customers/"), params, nil, &dtos); err != nil {
		return nil, err
	}
	return dtos, nil
}
