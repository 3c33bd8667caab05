package models

// DashboardCardModel stores one dashboard card of a site as its JSON document.
type DashboardCardModel struct {
	LocalSiteID int64  `gorm:"primaryKey;autoIncrement:false"`
	Type        string `gorm:"primaryKey;type:varchar(30)"`
	JSON        string `gorm:"type:text;not null;column:json"`
}

// TableName returns the table name for GORM
func (DashboardCardModel) TableName() string {
	return "dashboard_cards"
}
