package wpcom

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/notification"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/network"
	"go.uber.org/zap"
)

const (
	notificationFields = "id,type,subtype,read,noticon,timestamp,icon,url,subject,body,meta,title,note_hash"
	// NotificationPageSize is the number of notifications requested by a full fetch
	NotificationPageSize = 200
	// readCount is the value WordPress.com expects for notes being marked read
	readCount = 9999
)

// NoteDTO is a notification as returned by rest/v1.1/notifications
type NoteDTO struct {
	ID        int64           `json:"id"`
	Type      string          `json:"type"`
	Subtype   string          `json:"subtype"`
	Read      json.RawMessage `json:"read"`
	Noticon   string          `json:"noticon"`
	Timestamp string          `json:"timestamp"`
	Icon      string          `json:"icon"`
	URL       string          `json:"url"`
	Title     string          `json:"title"`
	NoteHash  int64           `json:"note_hash"`
	Subject   json.RawMessage `json:"subject"`
	Body      json.RawMessage `json:"body"`
	Meta      json.RawMessage `json:"meta"`
}

// ToDomain maps the DTO. The site is read from meta.ids.site.
func (d *NoteDTO) ToDomain() notification.Notification {
	return notification.Notification{
		RemoteNoteID: d.ID,
		RemoteSiteID: gjson.GetBytes(d.Meta, "ids.site").Int(),
		NoteHash:     d.NoteHash,
		Type:         notification.KindFromAPI(d.Type),
		Subtype:      notification.SubkindFromAPI(d.Subtype),
		Read:         gjson.ParseBytes(d.Read).Bool(),
		Icon:         d.Icon,
		Noticon:      d.Noticon,
		Timestamp:    d.Timestamp,
		URL:          d.URL,
		Title:        d.Title,
		Subject:      d.Subject,
		Body:         d.Body,
		Meta:         d.Meta,
	}
}

type notesResponse struct {
	Notes        []NoteDTO `json:"notes"`
	LastSeenTime string    `json:"last_seen_time"`
}

// NotificationRestClient calls rest/v1.1/notifications
type NotificationRestClient struct {
	transport Transport
	logger    *zap.Logger
}

// NewNotificationRestClient creates a notification client
func NewNotificationRestClient(transport Transport, logger *zap.Logger) *NotificationRestClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationRestClient{transport: transport, logger: logger}
}

// FetchNotifications fetches the most recent notifications of the user
func (c *NotificationRestClient) FetchNotifications(ctx context.Context) ([]notification.Notification, error) {
	params := url.Values{
		"number": {strconv.Itoa(NotificationPageSize)},
		"fields": {notificationFields},
	}
	body, err := c.transport.GetWPCom(ctx, network.RESTv11, "notifications/", params)
	if err != nil {
		return nil, err
	}
	var resp notesResponse
	if err := network.Decode(body, &resp); err != nil {
		return nil, err
	}
	notes := make([]notification.Notification, 0, len(resp.Notes))
	for i := range resp.Notes {
		notes = append(notes, resp.Notes[i].ToDomain())
	}
	c.logger.Debug("notifications fetched", zap.Int("count", len(notes)))
	return notes, nil
}

// FetchNotification fetches a single notification
func (c *NotificationRestClient) FetchNotification(ctx context.Context, remoteNoteID int64) (*notification.Notification, error) {
	params := url.Values{"fields": {notificationFields}}
	body, err := c.transport.GetWPCom(ctx, network.RESTv11, "notifications/"+strconv.FormatInt(remoteNoteID, 10), params)
	if err != nil {
		return nil, err
	}
	var resp notesResponse
	if err := network.Decode(body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Notes) == 0 {
		return nil, shared.NewNetworkError(shared.ErrorInvalidResponse, "notification not in response")
	}
	note := resp.Notes[0].ToDomain()
	return &note, nil
}

// MarkSeen records the timestamp of the newest notification the user has seen
// and returns the last seen time stored by the server.
func (c *NotificationRestClient) MarkSeen(ctx context.Context, lastSeenTime int64) (int64, error) {
	body, err := c.transport.PostWPCom(ctx, network.RESTv11, "notifications/seen", map[string]int64{"time": lastSeenTime})
	if err != nil {
		return 0, err
	}
	parsed := gjson.ParseBytes(body)
	if !parsed.Get("success").Bool() {
		return 0, shared.NewNetworkError(shared.ErrorInvalidResponse, "notifications were not marked seen")
	}
	return parsed.Get("last_seen_time").Int(), nil
}

// MarkRead marks the given notifications read
func (c *NotificationRestClient) MarkRead(ctx context.Context, remoteNoteIDs []int64) error {
	counts := make(map[string]int, len(remoteNoteIDs))
	for _, id := range remoteNoteIDs {
		counts[strconv.FormatInt(id, 10)] = readCount
	}
	body, err := c.transport.PostWPCom(ctx, network.RESTv11, "notifications/read", map[string]any{"counts": counts})
	if err != nil {
		return err
	}
	if !gjson.GetBytes(body, "success").Bool() {
		return shared.NewNetworkError(shared.ErrorInvalidResponse, "notifications were not marked read")
	}
	return nil
}
