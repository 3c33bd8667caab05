package models

import (
	"github.com/shopspring/decimal"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/product"
)

// ProductModel is the subset of a WooCommerce product cached for coupon restrictions.
type ProductModel struct {
	LocalSiteID int64           `gorm:"primaryKey;autoIncrement:false"`
	ID          int64           `gorm:"primaryKey;autoIncrement:false"`
	Name        string          `gorm:"type:varchar(255)"`
	SKU         string          `gorm:"type:varchar(100)"`
	Type        string          `gorm:"type:varchar(30)"`
	Status      string          `gorm:"type:varchar(30)"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Permalink   string          `gorm:"type:varchar(512)"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "woo_products"
}

// ToDomain converts the persistence model to a domain Product.
func (m *ProductModel) ToDomain() product.Product {
	return product.Product{
		LocalSiteID: m.LocalSiteID,
		ID:          m.ID,
		Name:        m.Name,
		SKU:         m.SKU,
		Type:        m.Type,
		Status:      m.Status,
		Price:       m.Price,
		Permalink:   m.Permalink,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product.
func ProductModelFromDomain(p product.Product) ProductModel {
	return ProductModel(p)
}

// ProductCategoryModel is a cached product category.
type ProductCategoryModel struct {
	LocalSiteID int64  `gorm:"primaryKey;autoIncrement:false"`
	ID          int64  `gorm:"primaryKey;autoIncrement:false"`
	Name        string `gorm:"type:varchar(255)"`
	Slug        string `gorm:"type:varchar(255)"`
	Parent      int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductCategoryModel) TableName() string {
	return "woo_product_categories"
}

// ToDomain converts the persistence model to a domain Category.
func (m *ProductCategoryModel) ToDomain() product.Category {
	return product.Category(*m)
}

// ProductCategoryModelFromDomain creates a persistence model from a domain Category.
func ProductCategoryModelFromDomain(c product.Category) ProductCategoryModel {
	return ProductCategoryModel(c)
}
