package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/notification"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/interfaces/http/dto"
)

// NotificationHandler exposes the notification store
type NotificationHandler struct {
	BaseHandler
	notes NotificationService
	bus   ActionBus
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notes NotificationService, bus ActionBus) *NotificationHandler {
	return &NotificationHandler{notes: notes, bus: bus}
}

// List handles GET /notifications
// @Summary      List cached notifications
// @Description  Lists cached notifications with the unread count
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        type query string false "Comma separated kinds"
// @Param        subtype query string false "Comma separated subkinds"
// @Success      200 {object} dto.Response{data=dto.NotificationsResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	var query dto.ListNotificationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleError(c, err)
		return
	}
	var filter notification.Filter
	for _, t := range splitList(query.Type) {
		filter.Types = append(filter.Types, notification.Kind(strings.ToUpper(t)))
	}
	for _, t := range splitList(query.Subtype) {
		filter.Subtypes = append(filter.Subtypes, notification.Subkind(strings.ToUpper(t)))
	}

	ctx := c.Request.Context()
	notes, err := h.notes.GetNotifications(ctx, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	unread, err := h.notes.GetUnreadCount(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NotificationsResponse{Notifications: notes, Unread: unread})
}

// Fetch handles POST /notifications/fetch
// @Summary      Fetch notifications
// @Description  Fetches the latest notifications from WordPress.com
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response{data=dto.FetchResult}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /notifications/fetch [post]
func (h *NotificationHandler) Fetch(c *gin.Context) {
	changed, ok := h.dispatch(c, shared.NewAction(notification.ActionFetchNotifications, nil))
	if !ok {
		return
	}
	h.Success(c, dto.FetchResult{Count: len(changed.ChangedNotificationLocalIDs)})
}

// MarkSeen handles POST /notifications/seen
// @Summary      Mark notifications seen
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        request body dto.MarkSeenRequest true "Newest seen timestamp"
// @Success      200 {object} dto.Response{data=dto.MarkSeenResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /notifications/seen [post]
func (h *NotificationHandler) MarkSeen(c *gin.Context) {
	var req dto.MarkSeenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleError(c, err)
		return
	}
	changed, ok := h.dispatch(c, shared.NewAction(notification.ActionMarkNotificationsSeen,
		notification.MarkSeenPayload{LastSeenTime: req.LastSeenTime}))
	if !ok {
		return
	}
	h.Success(c, dto.MarkSeenResponse{LastSeenTime: changed.LastSeenTime})
}

func (h *NotificationHandler) dispatch(c *gin.Context, action shared.Action) (*notification.OnNotificationChanged, bool) {
	events, err := dispatchAndCollect(c.Request.Context(), h.bus, action, notification.EventNotificationChanged)
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}
	for _, ev := range events {
		changed, ok := ev.(*notification.OnNotificationChanged)
		if !ok || changed.CauseOfChange != action.Type {
			continue
		}
		if changed.NotificationError != nil {
			h.HandleError(c, changed.NotificationError)
			return nil, false
		}
		return changed, true
	}
	h.InternalError(c, "notification action finished without a result")
	return nil, false
}
