package notification

import "github.com/wordpress-mobile/fluxc-go/internal/domain/shared"

// Actions handled by the notification store
const (
	ActionFetchNotifications    shared.ActionType = "FETCH_NOTIFICATIONS"
	ActionFetchNotification     shared.ActionType = "FETCH_NOTIFICATION"
	ActionMarkNotificationsSeen shared.ActionType = "MARK_NOTIFICATIONS_SEEN"
	ActionMarkNotificationsRead shared.ActionType = "MARK_NOTIFICATIONS_READ"
	ActionUpdateNotification    shared.ActionType = "UPDATE_NOTIFICATION"
)

// FetchNotificationPayload requests a single notification
type FetchNotificationPayload struct {
	RemoteNoteID int64
}

// MarkSeenPayload records the newest notification timestamp the user has seen
type MarkSeenPayload struct {
	LastSeenTime int64
}

// MarkReadPayload marks notifications as read
type MarkReadPayload struct {
	Notifications []Notification
}

// EventNotificationChanged is the event type of OnNotificationChanged
const EventNotificationChanged = "OnNotificationChanged"

// OnNotificationChanged is emitted by every notification action
type OnNotificationChanged struct {
	shared.BaseChangeEvent
	CauseOfChange               shared.ActionType
	ChangedNotificationLocalIDs []int64
	LastSeenTime                int64
	NotificationError           *Error
}

// NewOnNotificationChanged creates an OnNotificationChanged event. A nil notifErr means success.
func NewOnNotificationChanged(cause shared.ActionType, notifErr *Error) *OnNotificationChanged {
	var err error
	if notifErr != nil {
		err = notifErr
	}
	return &OnNotificationChanged{
		BaseChangeEvent:   shared.NewBaseChangeEvent(EventNotificationChanged, err),
		CauseOfChange:     cause,
		NotificationError: notifErr,
	}
}
