package woocommerce

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/product"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

// ProductDTO is the subset of wc/v3/products kept in the cache
type ProductDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Price     string `json:"price"`
	Permalink string `json:"permalink"`
}

// ProductCategoryDTO is an entry of wc/v3/products/categories
type ProductCategoryDTO struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Parent int64  `json:"parent"`
}

const productFields = "id,name,sku,type,status,price,permalink"

// ProductRestClient calls the WooCommerce product endpoints
type ProductRestClient struct {
	*Client
}

// NewProductRestClient creates a product client
func NewProductRestClient(c *Client) *ProductRestClient {
	return &ProductRestClient{Client: c}
}

// FetchProducts fetches the products with the given ids
func (c *ProductRestClient) FetchProducts(ctx context.Context, site shared.Site, ids []int64) ([]product.Product, error) {
	params := url.Values{
		"include":  {joinIDs(ids)},
		"per_page": {strconv.Itoa(max(len(ids), 1))},
		"_fields":  {productFields},
	}
	var dtos []ProductDTO
	if err := c.call(ctx, site, http.MethodGet, route(nsV3, "products/"), params, nil, &dtos); err != nil {
		return nil, err
	}
	products := make([]product.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, product.Product{
			LocalSiteID: site.LocalID,
			ID:          d.ID,
			Name:        d.Name,
			SKU:         d.SKU,
			Type:        d.Type,
			Status:      d.Status,
			Price:       ParseDecimal(d.Price),
			Permalink:   d.Permalink,
		})
	}
	return products, nil
}

// FetchProductCategories fetches the categories with the given ids
func (c *ProductRestClient) FetchProductCategories(ctx context.Context, site shared.Site, ids []int64) ([]product.Category, error) {
	params := url.Values{
		"include":  {joinIDs(ids)},
		"per_page": {strconv.Itoa(max(len(ids), 1))},
	}
	var dtos []ProductCategoryDTO
	if err := c.call(ctx, site, http.MethodGet, route(nsV3, "products/categories"), params, nil, &dtos); err != nil {
		return nil, err
	}
	categories := make([]product.Category, 0, len(dtos))
	for _, d := range dtos {
		categories = append(categories, product.Category{
			LocalSiteID: site.LocalID,
			ID:          d.ID,
			Name:        d.Name,
			Slug:        d.Slug,
			Parent:      d.Parent,
		})
	}
	return categories, nil
}
