package models

import (
	"github.com/shopspring/decimal"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/coupon"
)

// CouponModel is the persistence model for a cached coupon. Product, category
// and email restrictions live in their own link tables.
type CouponModel struct {
	LocalSiteID          int64            `gorm:"primaryKey;autoIncrement:false"`
	ID                   int64            `gorm:"primaryKey;autoIncrement:false"`
	Code                 string           `gorm:"type:varchar(100);index"`
	DiscountType         string           `gorm:"type:varchar(30)"`
	Description          string           `gorm:"type:text"`
	Amount               decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	MinimumAmount        *decimal.Decimal `gorm:"type:decimal(18,4)"`
	MaximumAmount        *decimal.Decimal `gorm:"type:decimal(18,4)"`
	DateCreated          string           `gorm:"type:varchar(30)"`
	DateModified         string           `gorm:"type:varchar(30)"`
	DateExpires          string           `gorm:"type:varchar(30)"`
	UsageCount           int              `gorm:"not null;default:0"`
	UsageLimit           *int
	UsageLimitPerUser    *int
	LimitUsageToXItems   *int
	IsIndividualUse      bool `gorm:"not null;default:false"`
	IsFreeShipping       bool `gorm:"not null;default:false"`
	AreSaleItemsExcluded bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (CouponModel) TableName() string {
	return "woo_coupons"
}

// ToDomain converts the persistence model to a domain Coupon without its links.
func (m *CouponModel) ToDomain() *coupon.Coupon {
	return &coupon.Coupon{
		ID:                   m.ID,
		LocalSiteID:          m.LocalSiteID,
		Code:                 m.Code,
		DiscountType:         m.DiscountType,
		Description:          m.Description,
		Amount:               m.Amount,
		MinimumAmount:        m.MinimumAmount,
		MaximumAmount:        m.MaximumAmount,
		DateCreated:          m.DateCreated,
		DateModified:         m.DateModified,
		DateExpires:          m.DateExpires,
		UsageCount:           m.UsageCount,
		UsageLimit:           m.UsageLimit,
		UsageLimitPerUser:    m.UsageLimitPerUser,
		LimitUsageToXItems:   m.LimitUsageToXItems,
		IsIndividualUse:      m.IsIndividualUse,
		IsFreeShipping:       m.IsFreeShipping,
		AreSaleItemsExcluded: m.AreSaleItemsExcluded,
	}
}

// CouponModelFromDomain creates a persistence model from a domain Coupon.
func CouponModelFromDomain(c *coupon.Coupon) *CouponModel {
	return &CouponModel{
		LocalSiteID:          c.LocalSiteID,
		ID:                   c.ID,
		Code:                 c.Code,
		DiscountType:         c.DiscountType,
		Description:          c.Description,
		Amount:               c.Amount,
		MinimumAmount:        c.MinimumAmount,
		MaximumAmount:        c.MaximumAmount,
		DateCreated:          c.DateCreated,
		DateModified:         c.DateModified,
		DateExpires:          c.DateExpires,
		UsageCount:           c.UsageCount,
		UsageLimit:           c.UsageLimit,
		UsageLimitPerUser:    c.UsageLimitPerUser,
		LimitUsageToXItems:   c.LimitUsageToXItems,
		IsIndividualUse:      c.IsIndividualUse,
		IsFreeShipping:       c.IsFreeShipping,
		AreSaleItemsExcluded: c.AreSaleItemsExcluded,
	}
}

// CouponProductModel links a coupon to an included or excluded product.
type CouponProductModel struct {
	LocalSiteID int64 `gorm:"primaryKey;autoIncrement:false"`
	CouponID    int64 `gorm:"primaryKey;autoIncrement:false"`
	ProductID   int64 `gorm:"primaryKey;autoIncrement:false"`
	IsExcluded  bool  `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (CouponProductModel) TableName() string {
	return "woo_coupon_products"
}

// CouponCategoryModel links a coupon to an included or excluded product category.
type CouponCategoryModel struct {
	LocalSiteID int64 `gorm:"primaryKey;autoIncrement:false"`
	CouponID    int64 `gorm:"primaryKey;autoIncrement:false"`
	CategoryID  int64 `gorm:"primaryKey;autoIncrement:false"`
	IsExcluded  bool  `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (CouponCategoryModel) TableName() string {
	return "woo_coupon_categories"
}

// CouponEmailModel is an email address a coupon is restricted to.
type CouponEmailModel struct {
	LocalSiteID int64  `gorm:"primaryKey;autoIncrement:false"`
	CouponID    int64  `gorm:"primaryKey;autoIncrement:false"`
	Email       string `gorm:"primaryKey;type:varchar(255)"`
}

// TableName returns the table name for GORM
func (CouponEmailModel) TableName() string {
	return "woo_coupon_emails"
}

// ToDomain converts the persistence model to a domain Email.
func (m *CouponEmailModel) ToDomain() coupon.Email {
	return coupon.Email{LocalSiteID: m.LocalSiteID, CouponID: m.CouponID, Email: m.Email}
}
