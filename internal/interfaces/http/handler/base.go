// Package handler implements the inspector API endpoints.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/bloggingprompt"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/dashboard"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/notification"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/order"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/event"
	"github.com/wordpress-mobile/fluxc-go/internal/interfaces/http/dto"
	"github.com/wordpress-mobile/fluxc-go/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError converts store errors to HTTP responses
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	var (
		domainErr  *shared.DomainError
		wooErr     *shared.WooError
		orderErr   *order.OrderError
		promptErr  *bloggingprompt.Error
		notifErr   *notification.Error
		cardsErr   *dashboard.CardsError
		networkErr *shared.NetworkError
		validation validator.ValidationErrors
	)
	switch {
	case errors.As(err, &domainErr):
		h.ErrorWithCode(c, dto.NormalizeDomainCode(domainErr.Code), domainErr.Message)
	case errors.As(err, &wooErr):
		h.ErrorWithCode(c, dto.NormalizeRemoteType(string(wooErr.Type)), wooErr.Message)
	case errors.As(err, &orderErr):
		h.ErrorWithCode(c, dto.NormalizeRemoteType(string(orderErr.Type)), orderErr.Message)
	case errors.As(err, &promptErr):
		h.ErrorWithCode(c, dto.NormalizeRemoteType(string(promptErr.Type)), promptErr.Message)
	case errors.As(err, &notifErr):
		h.ErrorWithCode(c, dto.NormalizeRemoteType(string(notifErr.Type)), notifErr.Message)
	case errors.As(err, &cardsErr):
		h.ErrorWithCode(c, dto.NormalizeRemoteType(string(cardsErr.Type)), cardsErr.Message)
	case errors.As(err, &networkErr):
		h.ErrorWithCode(c, dto.NormalizeRemoteType(string(shared.CategoryOf(networkErr.Type))), networkErr.Message)
	case errors.As(err, &validation):
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, validation.Error())
	default:
		h.InternalError(c, "An unexpected error occurred")
	}
}

// BindJSON binds an optional JSON body. An empty body leaves req untouched.
func (h *BaseHandler) BindJSON(c *gin.Context, req any) bool {
	if c.Request.ContentLength == 0 {
		if err := binding.Validator.ValidateStruct(req); err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
			return false
		}
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
		return false
	}
	return true
}

// int64Param parses a numeric path parameter
func (h *BaseHandler) int64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		h.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// siteResolver resolves the :site_id parameter to a cached site
type siteResolver struct {
	BaseHandler
	sites SiteService
}

// site loads the site of the request. It writes the error response and
// returns false when the site is unknown.
func (h *siteResolver) site(c *gin.Context) (shared.Site, bool) {
	id, ok := h.int64Param(c, "site_id")
	if !ok {
		return shared.Site{}, false
	}
	site, err := h.sites.GetSiteByLocalID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return shared.Site{}, false
	}
	if site == nil {
		h.HandleError(c, shared.ErrSiteNotFound)
		return shared.Site{}, false
	}
	return *site, true
}

// dispatchAndCollect dispatches action synchronously and returns the events
// of the given types emitted while it ran.
func dispatchAndCollect(ctx context.Context, bus ActionBus, action shared.Action, eventTypes ...string) ([]shared.ChangeEvent, error) {
	collector := event.NewCollector(16, eventTypes...)
	bus.Events.Subscribe(collector, eventTypes...)
	defer bus.Events.Unsubscribe(collector)

	if err := bus.Dispatcher.DispatchSync(ctx, action); err != nil {
		return nil, err
	}

	var events []shared.ChangeEvent
	for {
		select {
		case ev := <-collector.Events():
			events = append(events, ev)
		default:
			return events, nil
		}
	}
}

// splitList splits a comma separated query value
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
