package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/order"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/interfaces/http/dto"
)

// OrderHandler exposes the order store
type OrderHandler struct {
	siteResolver
	orders OrderService
	bus    ActionBus
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(sites SiteService, orders OrderService, bus ActionBus) *OrderHandler {
	return &OrderHandler{siteResolver: siteResolver{sites: sites}, orders: orders, bus: bus}
}

// List handles GET /sites/:site_id/orders
// @Summary      List cached orders
// @Description  Lists the cached orders of a site, optionally filtered by a comma separated status list
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        site_id path int true "Local site ID"
// @Param        status query string false "Comma separated statuses"
// @Success      200 {object} dto.Response{data=[]order.Order}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sites/{site_id}/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	site, ok := h.site(c)
	if !ok {
		return
	}
	var query dto.ListOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleError(c, err)
		return
	}

	orders, err := h.orders.GetOrdersForSite(c.Request.Context(), site, splitList(query.Status)...)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Fetch handles POST /sites/:site_id/orders/fetch
// @Summary      Fetch orders
// @Description  Fetches a page of orders from the site and replaces or extends the cache
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        site_id path int true "Local site ID"
// @Param        request body dto.FetchOrdersRequest false "Filter and paging"
// @Success      200 {object} dto.Response{data=dto.FetchResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sites/{site_id}/orders/fetch [post]
func (h *OrderHandler) Fetch(c *gin.Context) {
	site, ok := h.site(c)
	if !ok {
		return
	}
	var req dto.FetchOrdersRequest
	if !h.BindJSON(c, &req) {
		return
	}

	action := shared.NewAction(order.ActionFetchOrders, order.FetchOrdersPayload{
		Site:         site,
		StatusFilter: req.Status,
		LoadMore:     req.LoadMore,
	})
	events, err := dispatchAndCollect(c.Request.Context(), h.bus, action, order.EventOrderChanged)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	for _, ev := range events {
		changed, ok := ev.(*order.OnOrderChanged)
		if !ok || changed.CauseOfChange != order.ActionFetchOrders {
			continue
		}
		if changed.OrderError != nil {
			h.HandleError(c, changed.OrderError)
			return
		}
		h.Success(c, dto.FetchResult{Count: changed.Count, CanLoadMore: changed.CanLoadMore})
		return
	}
	h.InternalError(c, "order fetch finished without a result")
}

// Get handles GET /sites/:site_id/orders/:order_id
// @Summary      Get cached order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        site_id path int true "Local site ID"
// @Param        order_id path int true "Remote order ID"
// @Success      200 {object} dto.Response{data=order.Order}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sites/{site_id}/orders/{order_id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	o, ok := h.order(c)
	if !ok {
		return
	}
	h.Success(c, o)
}

// Notes handles GET /sites/:site_id/orders/:order_id/notes
// @Summary      List order notes
// @Description  Lists the cached notes of an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        site_id path int true "Local site ID"
// @Param        order_id path int true "Remote order ID"
// @Success      200 {object} dto.Response{data=[]order.Note}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sites/{site_id}/orders/{order_id}/notes [get]
func (h *OrderHandler) Notes(c *gin.Context) {
	o, ok := h.order(c)
	if !ok {
		return
	}
	notes, err := h.orders.GetOrderNotesForOrder(c.Request.Context(), o.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, notes)
}

// UpdateStatus handles PUT /sites/:site_id/orders/:order_id/status.
// The response is written once the remote update has finished.
// @Summary      Update order status
// @Description  Applies the status optimistically, then pushes it to the site
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        site_id path int true "Local site ID"
// @Param        order_id path int true "Remote order ID"
// @Param        request body dto.UpdateOrderStatusRequest true "New status"
// @Success      200 {object} dto.Response{data=dto.UpdateStatusResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sites/{site_id}/orders/{order_id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	site, ok := h.site(c)
	if !ok {
		return
	}
	orderID, ok := h.int64Param(c, "order_id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleError(c, err)
		return
	}

	result := dto.UpdateStatusResult{Status: req.Status}
	for r := range h.orders.UpdateOrderStatus(c.Request.Context(), orderID, site, req.Status) {
		if r.Event.OrderError != nil {
			h.HandleError(c, r.Event.OrderError)
			return
		}
		switch r.Kind {
		case order.UpdateOptimistic:
			result.OptimisticRows = r.Event.RowsAffected
		case order.UpdateRemote:
			result.RemoteRows = r.Event.RowsAffected
		}
	}
	h.Success(c, result)
}

func (h *OrderHandler) order(c *gin.Context) (*order.Order, bool) {
	site, ok := h.site(c)
	if !ok {
		return nil, false
	}
	orderID, ok := h.int64Param(c, "order_id")
	if !ok {
		return nil, false
	}
	o, err := h.orders.GetOrderByIDAndSite(c.Request.Context(), orderID, site)
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}
	if o == nil {
		h.NotFound(c, "order not found")
		return nil, false
	}
	return o, true
}
