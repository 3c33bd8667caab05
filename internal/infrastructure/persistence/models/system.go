package models

import "github.com/wordpress-mobile/fluxc-go/internal/domain/system"

// SitePluginModel is a plugin installed on a site as reported by the site itself.
type SitePluginModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	LocalSiteID int64  `gorm:"not null;uniqueIndex:idx_woo_site_plugins_site_name,priority:1"`
	Name        string `gorm:"type:varchar(255);not null;uniqueIndex:idx_woo_site_plugins_site_name,priority:2"`
	DisplayName string `gorm:"type:varchar(255)"`
	Version     string `gorm:"type:varchar(50)"`
	URL         string `gorm:"type:varchar(512)"`
	IsActive    bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (SitePluginModel) TableName() string {
	return "woo_site_plugins"
}

// ToDomain converts the persistence model to a domain SitePlugin.
func (m *SitePluginModel) ToDomain() system.SitePlugin {
	return system.SitePlugin(*m)
}

// SitePluginModelFromDomain creates a persistence model from a domain SitePlugin.
func SitePluginModelFromDomain(p system.SitePlugin) SitePluginModel {
	return SitePluginModel(p)
}

// TaxClassModel is a tax class configured on a store.
type TaxClassModel struct {
	LocalSiteID int64  `gorm:"primaryKey;autoIncrement:false"`
	Slug        string `gorm:"primaryKey;type:varchar(100)"`
	Name        string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (TaxClassModel) TableName() string {
	return "woo_tax_classes"
}

// ToDomain converts the persistence model to a domain TaxClass.
func (m *TaxClassModel) ToDomain() system.TaxClass {
	return system.TaxClass{LocalSiteID: m.LocalSiteID, Name: m.Name, Slug: m.Slug}
}
