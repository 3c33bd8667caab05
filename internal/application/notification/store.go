// Package notification implements the WordPress.com notifications store.
package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/notification"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/logger"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/telemetry"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/wpcom"
	"go.uber.org/zap"
)

// RestClient is the remote side of the notification store
type RestClient interface {
	FetchNotifications(ctx context.Context) ([]notification.Notification, error)
	FetchNotification(ctx context.Context, remoteNoteID int64) (*notification.Notification, error)
	MarkSeen(ctx context.Context, lastSeenTime int64) (int64, error)
	MarkRead(ctx context.Context, remoteNoteIDs []int64) error
}

var _ RestClient = (*wpcom.NotificationRestClient)(nil)

// Store is the notification store
type Store struct {
	dispatcher shared.ActionDispatcher
	client     RestClient
	notes      notification.Repository
	logger     *zap.Logger
}

// NewStore creates a notification store
func NewStore(dispatcher shared.ActionDispatcher, client RestClient, notes notification.Repository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dispatcher: dispatcher, client: client, notes: notes, logger: logger.Named("notification_store")}
}

// ActionTypes implements shared.ActionHandler
func (s *Store) ActionTypes() []shared.ActionType {
	return []shared.ActionType{
		notification.ActionFetchNotifications,
		notification.ActionFetchNotification,
		notification.ActionMarkNotificationsSeen,
		notification.ActionMarkNotificationsRead,
		notification.ActionUpdateNotification,
	}
}

// OnAction implements shared.ActionHandler. Remote failures are reported on
// the emitted OnNotificationChanged, not returned.
func (s *Store) OnAction(ctx context.Context, action shared.Action) (err error) {
	ctx, span := telemetry.StartStoreSpan(ctx, "notification_store", string(action.Type))
	defer func() { telemetry.EndSpan(span, err) }()

	var event *notification.OnNotificationChanged
	switch action.Type {
	case notification.ActionFetchNotifications:
		event = s.fetchNotifications(ctx)
	case notification.ActionFetchNotification:
		payload, ok := payloadOf[notification.FetchNotificationPayload](action)
		if !ok {
			return unexpectedPayload(action)
		}
		event = s.fetchNotification(ctx, payload.RemoteNoteID)
	case notification.ActionMarkNotificationsSeen:
		payload, ok := payloadOf[notification.MarkSeenPayload](action)
		if !ok {
			return unexpectedPayload(action)
		}
		event = s.markSeen(ctx, payload.LastSeenTime)
	case notification.ActionMarkNotificationsRead:
		payload, ok := payloadOf[notification.MarkReadPayload](action)
		if !ok {
			return unexpectedPayload(action)
		}
		event = s.markRead(ctx, payload.Notifications)
	case notification.ActionUpdateNotification:
		note, ok := payloadOf[notification.Notification](action)
		if !ok {
			return unexpectedPayload(action)
		}
		event, err = s.updateNotification(ctx, note)
		if err != nil {
			return err
		}
	default:
		return nil
	}
	s.dispatcher.Emit(ctx, event)
	return nil
}

func (s *Store) fetchNotifications(ctx context.Context) *notification.OnNotificationChanged {
	notes, err := s.client.FetchNotifications(ctx)
	if err != nil {
		return s.failed(notification.ActionFetchNotifications, err)
	}
	if err := s.notes.ReplaceAll(ctx, notes); err != nil {
		return s.failed(notification.ActionFetchNotifications, err)
	}
	logger.WithLogger(ctx, s.logger).Debug("notifications replaced", zap.Int("count", len(notes)))
	return notification.NewOnNotificationChanged(notification.ActionFetchNotifications, nil)
}

func (s *Store) fetchNotification(ctx context.Context, remoteNoteID int64) *notification.OnNotificationChanged {
	note, err := s.client.FetchNotification(ctx, remoteNoteID)
	if err != nil {
		return s.failed(notification.ActionFetchNotification, err)
	}
	localID, err := s.notes.Upsert(ctx, note)
	if err != nil {
		return s.failed(notification.ActionFetchNotification, err)
	}
	event := notification.NewOnNotificationChanged(notification.ActionFetchNotification, nil)
	event.ChangedNotificationLocalIDs = []int64{localID}
	return event
}

func (s *Store) markSeen(ctx context.Context, lastSeenTime int64) *notification.OnNotificationChanged {
	stored, err := s.client.MarkSeen(ctx, lastSeenTime)
	if err != nil {
		return s.failed(notification.ActionMarkNotificationsSeen, err)
	}
	event := notification.NewOnNotificationChanged(notification.ActionMarkNotificationsSeen, nil)
	event.LastSeenTime = stored
	return event
}

func (s *Store) markRead(ctx context.Context, notes []notification.Notification) *notification.OnNotificationChanged {
	remoteIDs := make([]int64, 0, len(notes))
	for _, n := range notes {
		remoteIDs = append(remoteIDs, n.RemoteNoteID)
	}
	if err := s.client.MarkRead(ctx, remoteIDs); err != nil {
		return s.failed(notification.ActionMarkNotificationsRead, err)
	}
	localIDs, err := s.notes.MarkRead(ctx, remoteIDs)
	if err != nil {
		return s.failed(notification.ActionMarkNotificationsRead, err)
	}
	event := notification.NewOnNotificationChanged(notification.ActionMarkNotificationsRead, nil)
	event.ChangedNotificationLocalIDs = localIDs
	return event
}

func (s *Store) updateNotification(ctx context.Context, note notification.Notification) (*notification.OnNotificationChanged, error) {
	localID, err := s.notes.Upsert(ctx, &note)
	if err != nil {
		return nil, fmt.Errorf("update notification %d: %w", note.RemoteNoteID, err)
	}
	event := notification.NewOnNotificationChanged(notification.ActionUpdateNotification, nil)
	event.ChangedNotificationLocalIDs = []int64{localID}
	return event, nil
}

func (s *Store) failed(cause shared.ActionType, err error) *notification.OnNotificationChanged {
	s.logger.Warn("notification action failed", zap.String("action", string(cause)), zap.Error(err))
	notifErr := notification.ErrorFromNetwork(err)
	if notifErr == nil {
		notifErr = &notification.Error{Type: notification.ErrorGeneric, Message: err.Error()}
	}
	return notification.NewOnNotificationChanged(cause, notifErr)
}

// GetNotifications returns cached notifications matching the filter, newest first
func (s *Store) GetNotifications(ctx context.Context, filter notification.Filter) ([]notification.Notification, error) {
	return s.notes.Find(ctx, filter)
}

// GetNotificationsForSite returns the cached notifications of a site
func (s *Store) GetNotificationsForSite(ctx context.Context, site shared.Site) ([]notification.Notification, error) {
	return s.notes.FindForSite(ctx, site.SiteID)
}

// GetNotificationByLocalID returns a cached notification, or nil
func (s *Store) GetNotificationByLocalID(ctx context.Context, localID int64) (*notification.Notification, error) {
	return orNil(s.notes.FindByLocalID(ctx, localID))
}

// GetNotificationByRemoteID returns a cached notification, or nil
func (s *Store) GetNotificationByRemoteID(ctx context.Context, remoteNoteID int64) (*notification.Notification, error) {
	return orNil(s.notes.FindByRemoteID(ctx, remoteNoteID))
}

// GetUnreadCount returns the number of cached unread notifications
func (s *Store) GetUnreadCount(ctx context.Context) (int64, error) {
	return s.notes.CountUnread(ctx)
}

func orNil(note *notification.Notification, err error) (*notification.Notification, error) {
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return note, err
}

func payloadOf[P any](action shared.Action) (P, bool) {
	switch p := action.Payload.(type) {
	case P:
		return p, true
	case *P:
		if p != nil {
			return *p, true
		}
	}
	var zero P
	return zero, false
}

func unexpectedPayload(action shared.Action) error {
	return fmt.Errorf("notification: unexpected payload %T for %s", action.Payload, action.Type)
}

var _ shared.ActionHandler = (*Store)(nil)
