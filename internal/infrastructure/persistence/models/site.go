package models

import "github.com/wordpress-mobile/fluxc-go/internal/domain/shared"

// SiteModel is the persistence model for a WordPress site known to the library.
type SiteModel struct {
	BaseModel
	SiteID             int64  `gorm:"not null;uniqueIndex"`
	Name               string `gorm:"type:varchar(255)"`
	URL                string `gorm:"type:varchar(512);not null"`
	IsWPCom            bool   `gorm:"not null;default:false"`
	IsJetpackConnected bool   `gorm:"not null;default:false"`
	HasWooCommerce     bool   `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (SiteModel) TableName() string {
	return "sites"
}

// ToDomain converts the persistence model to a domain Site.
func (m *SiteModel) ToDomain() *shared.Site {
	return &shared.Site{
		LocalID:            m.ID,
		SiteID:             m.SiteID,
		Name:               m.Name,
		URL:                m.URL,
		IsWPCom:            m.IsWPCom,
		IsJetpackConnected: m.IsJetpackConnected,
		HasWooCommerce:     m.HasWooCommerce,
	}
}

// SiteModelFromDomain creates a persistence model from a domain Site.
func SiteModelFromDomain(s *shared.Site) *SiteModel {
	m := &SiteModel{
		SiteID:             s.SiteID,
		Name:               s.Name,
		URL:                s.URL,
		IsWPCom:            s.IsWPCom,
		IsJetpackConnected: s.IsJetpackConnected,
		HasWooCommerce:     s.HasWooCommerce,
	}
	m.ID = s.LocalID
	return m
}
