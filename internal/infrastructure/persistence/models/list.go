package models

import (
	"time"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/list"
)

// ListModel is the persistence model for a paginated list keyed by its descriptor.
type ListModel struct {
	ID                 int64           `gorm:"primaryKey;autoIncrement"`
	DescriptorUniqueID string          `gorm:"type:varchar(512);not null;uniqueIndex"`
	DescriptorTypeID   string          `gorm:"type:varchar(255);not null;index"`
	State              list.State      `gorm:"type:varchar(30);not null;default:'NEEDS_REFRESH'"`
	LastModified       time.Time       `gorm:"autoUpdateTime"`
	Items              []ListItemModel `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ListModel) TableName() string {
	return "list_models"
}

// ToDomain converts the persistence model to a domain list Model.
func (m *ListModel) ToDomain() *list.Model {
	return &list.Model{
		ID:                 m.ID,
		DescriptorUniqueID: m.DescriptorUniqueID,
		DescriptorTypeID:   m.DescriptorTypeID,
		State:              m.State,
		LastModified:       m.LastModified,
	}
}

// ListItemModel is one remote item id in a list, in insertion order.
type ListItemModel struct {
	ID           int64 `gorm:"primaryKey;autoIncrement"`
	ListID       int64 `gorm:"not null;uniqueIndex:idx_list_items_list_remote,priority:1"`
	RemoteItemID int64 `gorm:"not null;uniqueIndex:idx_list_items_list_remote,priority:2"`
}

// TableName returns the table name for GORM
func (ListItemModel) TableName() string {
	return "list_items"
}

// ToDomain converts the persistence model to a domain list Item.
func (m *ListItemModel) ToDomain() list.Item {
	return list.Item{ListID: m.ListID, RemoteItemID: m.RemoteItemID}
}
