package models

import (
	"encoding/json"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/notification"
)

// NotificationModel is a cached WordPress.com notification. Subject, body and
// meta blocks are kept as raw JSON.
type NotificationModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	RemoteNoteID int64  `gorm:"not null;uniqueIndex"`
	RemoteSiteID int64  `gorm:"not null;index"`
	NoteHash     int64  `gorm:"not null;default:0"`
	Type         string `gorm:"type:varchar(30);index"`
	Subtype      string `gorm:"type:varchar(30)"`
	Read         bool   `gorm:"not null;default:false;index"`
	Icon         string `gorm:"type:varchar(512)"`
	Noticon      string `gorm:"type:varchar(20)"`
	Timestamp    string `gorm:"type:varchar(30);index;column:note_timestamp"`
	URL          string `gorm:"type:varchar(512)"`
	Title        string `gorm:"type:varchar(255)"`
	Subject      string `gorm:"type:text"`
	Body         string `gorm:"type:text"`
	Meta         string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

func rawOrNil(s string) json.RawMessage {
	if s == "" {
		return nil
	}
	return json.RawMessage(s)
}

// ToDomain converts the persistence model to a domain Notification.
func (m *NotificationModel) ToDomain() notification.Notification {
	return notification.Notification{
		LocalID:      m.ID,
		RemoteNoteID: m.RemoteNoteID,
		RemoteSiteID: m.RemoteSiteID,
		NoteHash:     m.NoteHash,
		Type:         notification.Kind(m.Type),
		Subtype:      notification.Subkind(m.Subtype),
		Read:         m.Read,
		Icon:         m.Icon,
		Noticon:      m.Noticon,
		Timestamp:    m.Timestamp,
		URL:          m.URL,
		Title:        m.Title,
		Subject:      rawOrNil(m.Subject),
		Body:         rawOrNil(m.Body),
		Meta:         rawOrNil(m.Meta),
	}
}

// NotificationModelFromDomain creates a persistence model from a domain Notification.
func NotificationModelFromDomain(n *notification.Notification) *NotificationModel {
	return &NotificationModel{
		ID:           n.LocalID,
		RemoteNoteID: n.RemoteNoteID,
		RemoteSiteID: n.RemoteSiteID,
		NoteHash:     n.NoteHash,
		Type:         string(n.Type),
		Subtype:      string(n.Subtype),
		Read:         n.Read,
		Icon:         n.Icon,
		Noticon:      n.Noticon,
		Timestamp:    n.Timestamp,
		URL:          n.URL,
		Title:        n.Title,
		Subject:      string(n.Subject),
		Body:         string(n.Body),
		Meta:         string(n.Meta),
	}
}
