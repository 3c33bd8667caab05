package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/customer"
	"github.com/wordpress-mobile/fluxc-go/internal/interfaces/http/dto"
)

// CustomerHandler exposes the customer store
type CustomerHandler struct {
	siteResolver
	customers CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(sites SiteService, customers CustomerService) *CustomerHandler {
	return &CustomerHandler{siteResolver: siteResolver{sites: sites}, customers: customers}
}

// List handles GET /sites/:site_id/customers
// @Summary      List cached customers
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        site_id path int true "Local site ID"
// @Success      200 {object} dto.Response{data=[]customer.Customer}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sites/{site_id}/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	site, ok := h.site(c)
	if !ok {
		return
	}
	customers, err := h.customers.GetCustomersForSite(c.Request.Context(), site)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customers)
}

// Fetch handles POST /sites/:site_id/customers/fetch
// @Summary      Fetch customers
// @Description  Fetches a page of customers from the site
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        site_id path int true "Local site ID"
// @Param        request body dto.FetchCustomersRequest false "Paging and filters"
// @Success      200 {object} dto.Response{data=dto.FetchResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sites/{site_id}/customers/fetch [post]
func (h *CustomerHandler) Fetch(c *gin.Context) {
	site, ok := h.site(c)
	if !ok {
		return
	}
	var req dto.FetchCustomersRequest
	if !h.BindJSON(c, &req) {
		return
	}

	fetched, err := h.customers.FetchCustomers(c.Request.Context(), site, req.PageSize, customer.FetchOptions{
		Page:        req.Page,
		SearchQuery: req.Search,
		Email:       req.Email,
		Role:        req.Role,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, fetched)
}
