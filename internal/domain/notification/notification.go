// Package notification holds WordPress.com notifications and their kinds.
package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

// Kind is the notification type
type Kind string

const (
	KindComment      Kind = "COMMENT"
	KindLike         Kind = "LIKE"
	KindCommentLike  Kind = "COMMENT_LIKE"
	KindAutomattcher Kind = "AUTOMATTCHER"
	KindFollow       Kind = "FOLLOW"
	KindReblog       Kind = "REBLOG"
	KindStoreOrder   Kind = "STORE_ORDER"
	KindNewPost      Kind = "NEW_POST"
	KindUnknown      Kind = "UNKNOWN"
)

var kindsByAPIName = map[string]Kind{
	"comment":      KindComment,
	"like":         KindLike,
	"comment_like": KindCommentLike,
	"automattcher": KindAutomattcher,
	"follow":       KindFollow,
	"reblog":       KindReblog,
	"store_order":  KindStoreOrder,
	"new_post":     KindNewPost,
}

// KindFromAPI maps the API "type" value
func KindFromAPI(s string) Kind {
	if k, ok := kindsByAPIName[s]; ok {
		return k
	}
	return KindUnknown
}

// Subkind refines a Kind
type Subkind string

const (
	SubkindStoreReview         Subkind = "STORE_REVIEW"
	SubkindRewindBackupInitial Subkind = "REWIND_BACKUP_INITIAL"
	SubkindUnknown             Subkind = "UNKNOWN"
)

// SubkindFromAPI maps the API "subtype" value
func SubkindFromAPI(s string) Subkind {
	switch s {
	case "store_review":
		return SubkindStoreReview
	case "rewind_backup_initial":
		return SubkindRewindBackupInitial
	default:
		return SubkindUnknown
	}
}

// Notification is a WordPress.com notification
type Notification struct {
	LocalID      int64           `json:"local_id"`
	RemoteNoteID int64           `json:"remote_note_id"`
	RemoteSiteID int64           `json:"remote_site_id"`
	NoteHash     int64           `json:"note_hash"`
	Type         Kind            `json:"type"`
	Subtype      Subkind         `json:"subtype"`
	Read         bool            `json:"read"`
	Icon         string          `json:"icon"`
	Noticon      string          `json:"noticon"`
	Timestamp    string          `json:"timestamp"`
	URL          string          `json:"url"`
	Title        string          `json:"title"`
	Subject      json.RawMessage `json:"subject,omitempty"`
	Body         json.RawMessage `json:"body,omitempty"`
	Meta         json.RawMessage `json:"meta,omitempty"`
}

// Filter narrows GetNotifications. Empty slices match everything.
type Filter struct {
	Types    []Kind
	Subtypes []Subkind
}

// ErrorType classifies notification failures
type ErrorType string

const (
	ErrorGeneric               ErrorType = "GENERIC_ERROR"
	ErrorAuthorizationRequired ErrorType = "AUTHORIZATION_REQUIRED"
	ErrorInvalidResponse       ErrorType = "INVALID_RESPONSE"
	ErrorAPI                   ErrorType = "API_ERROR"
	ErrorTimeout               ErrorType = "TIMEOUT"
)

// Error is carried by OnNotificationChanged
type Error struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("notification error %s: %s", e.Type, e.Message)
}

// ErrorFromNetwork maps a transport failure by its category
func ErrorFromNetwork(err error) *Error {
	ne := shared.AsNetworkError(err)
	if ne == nil {
		return nil
	}
	return &Error{Type: ErrorType(shared.CategoryOf(ne.Type)), Message: ne.Message}
}

// Repository persists notifications
type Repository interface {
	// ReplaceAll deletes every stored notification and inserts the given ones
	ReplaceAll(ctx context.Context, notes []Notification) error
	// Upsert inserts or updates by remote note id and returns the local id
	Upsert(ctx context.Context, note *Notification) (int64, error)
	MarkRead(ctx context.Context, remoteNoteIDs []int64) ([]int64, error)
	Find(ctx context.Context, filter Filter) ([]Notification, error)
	FindForSite(ctx context.Context, remoteSiteID int64) ([]Notification, error)
	FindByLocalID(ctx context.Context, localID int64) (*Notification, error)
	FindByRemoteID(ctx context.Context, remoteNoteID int64) (*Notification, error)
	CountUnread(ctx context.Context) (int64, error)
}
