package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/bloggingprompt"
	"github.com/wordpress-mobile/fluxc-go/internal/interfaces/http/dto"
)

const defaultPromptNumber = 10

// PromptHandler exposes the blogging prompts store
type PromptHandler struct {
	siteResolver
	prompts PromptService
	now     func() time.Time
}

// NewPromptHandler creates a new PromptHandler
func NewPromptHandler(sites SiteService, prompts PromptService) *PromptHandler {
	return &PromptHandler{siteResolver: siteResolver{sites: sites}, prompts: prompts, now: time.Now}
}

// List handles GET /sites/:site_id/prompts
// @Summary      List cached blogging prompts
// @Tags         prompts
// @Accept       json
// @Produce      json
// @Param        site_id path int true "Local site ID"
// @Success      200 {object} dto.Response{data=[]bloggingprompt.Prompt}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sites/{site_id}/prompts [get]
func (h *PromptHandler) List(c *gin.Context) {
	site, ok := h.site(c)
	if !ok {
		return
	}
	prompts, err := h.prompts.GetPrompts(c.Request.Context(), site)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, prompts)
}

// Fetch handles POST /sites/:site_id/prompts/fetch
// @Summary      Fetch blogging prompts
// @Description  Fetches prompts starting at a date, today by default
// @Tags         prompts
// @Accept       json
// @Produce      json
// @Param        site_id path int true "Local site ID"
// @Param        request body dto.FetchPromptsRequest false "Number and start date"
// @Success      200 {object} dto.Response{data=dto.FetchResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sites/{site_id}/prompts/fetch [post]
func (h *PromptHandler) Fetch(c *gin.Context) {
	site, ok := h.site(c)
	if !ok {
		return
	}
	var req dto.FetchPromptsRequest
	if !h.BindJSON(c, &req) {
		return
	}
	number := req.Number
	if number == 0 {
		number = defaultPromptNumber
	}
	from := h.now()
	if req.From != "" {
		parsed, err := bloggingprompt.ParseDate(req.From)
		if err != nil {
			h.BadRequest(c, "invalid from date")
			return
		}
		from = parsed
	}

	prompts, err := h.prompts.FetchPrompts(c.Request.Context(), site, number, from)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, prompts)
}
