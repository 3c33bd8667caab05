package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/wordpress-mobile/fluxc-go/internal/interfaces/http/dto"
)

const defaultCouponPageSize = 25

// CouponHandler exposes the coupon store
type CouponHandler struct {
	siteResolver
	coupons CouponService
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(sites SiteService, coupons CouponService) *CouponHandler {
	return &CouponHandler{siteResolver: siteResolver{sites: sites}, coupons: coupons}
}

// List handles GET /sites/:site_id/coupons
// @Summary      List cached coupons
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Param        site_id path int true "Local site ID"
// @Success      200 {object} dto.Response{data=[]coupon.Coupon}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sites/{site_id}/coupons [get]
func (h *CouponHandler) List(c *gin.Context) {
	site, ok := h.site(c)
	if !ok {
		return
	}
	coupons, err := h.coupons.GetCoupons(c.Request.Context(), site)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, coupons)
}

// Fetch handles POST /sites/:site_id/coupons/fetch
// @Summary      Fetch coupons
// @Description  Fetches a page of coupons from the site
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Param        site_id path int true "Local site ID"
// @Param        request body dto.PageRequest false "Paging"
// @Success      200 {object} dto.Response{data=dto.FetchResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sites/{site_id}/coupons/fetch [post]
func (h *CouponHandler) Fetch(c *gin.Context) {
	site, ok := h.site(c)
	if !ok {
		return
	}
	req := dto.PageRequest{Page: 1, PageSize: defaultCouponPageSize}
	if !h.BindJSON(c, &req) {
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = defaultCouponPageSize
	}

	canLoadMore, err := h.coupons.FetchCoupons(c.Request.Context(), site, req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.FetchResult{CanLoadMore: canLoadMore})
}
