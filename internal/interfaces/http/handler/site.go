package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/interfaces/http/dto"
)

// SiteHandler exposes the cached sites
type SiteHandler struct {
	BaseHandler
	sites SiteService
}

// NewSiteHandler creates a new SiteHandler
func NewSiteHandler(sites SiteService) *SiteHandler {
	return &SiteHandler{sites: sites}
}

// List handles GET /sites
// @Summary      List sites
// @Description  Lists the sites stored in the local cache
// @Tags         sites
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response{data=[]shared.Site}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sites [get]
func (h *SiteHandler) List(c *gin.Context) {
	sites, err := h.sites.GetSites(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sites)
}

// Register handles POST /sites
// @Summary      Register site
// @Description  Stores a site in the local cache
// @Tags         sites
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterSiteRequest true "Site"
// @Success      200 {object} dto.Response{data=shared.Site}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sites [post]
func (h *SiteHandler) Register(c *gin.Context) {
	var req dto.RegisterSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleError(c, err)
		return
	}

	site := &shared.Site{
		SiteID:             req.SiteID,
		Name:               req.Name,
		URL:                req.URL,
		IsWPCom:            req.IsWPCom,
		IsJetpackConnected: req.IsJetpackConnected,
		HasWooCommerce:     req.HasWooCommerce,
	}
	if err := h.sites.RegisterSite(c.Request.Context(), site); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, site)
}
