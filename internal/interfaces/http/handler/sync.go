package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/scheduler"
	"github.com/wordpress-mobile/fluxc-go/internal/interfaces/http/dto"
)

// SyncHandler exposes the background refresh scheduler
type SyncHandler struct {
	siteResolver
	scheduler SyncService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(sites SiteService, jobs SyncService) *SyncHandler {
	return &SyncHandler{siteResolver: siteResolver{sites: sites}, scheduler: jobs}
}

// Jobs handles GET /scheduler/jobs
// @Summary      List sync jobs
// @Description  Lists the background refresh job of every site
// @Tags         sync
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response{data=[]dto.SyncJobResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /scheduler/jobs [get]
func (h *SyncHandler) Jobs(c *gin.Context) {
	jobs := h.scheduler.Jobs()
	resp := make([]dto.SyncJobResponse, 0, len(jobs))
	for _, job := range jobs {
		resp = append(resp, toSyncJobResponse(job))
	}
	h.Success(c, resp)
}

// Trigger handles POST /sites/:site_id/sync
// @Summary      Trigger site sync
// @Description  Refreshes the order list and status options of a site immediately
// @Tags         sync
// @Accept       json
// @Produce      json
// @Param        site_id path int true "Local site ID"
// @Success      200 {object} dto.Response{data=dto.SyncJobResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sites/{site_id}/sync [post]
func (h *SyncHandler) Trigger(c *gin.Context) {
	site, ok := h.site(c)
	if !ok {
		return
	}
	if err := h.scheduler.TriggerNow(c.Request.Context(), site); err != nil {
		switch {
		case errors.Is(err, scheduler.ErrNotWooCommerceSite):
			h.ErrorWithCode(c, dto.ErrCodeInvalidState, err.Error())
		case errors.Is(err, scheduler.ErrSyncInProgress):
			h.ErrorWithCode(c, dto.ErrCodeConflict, err.Error())
		default:
			h.HandleError(c, err)
		}
		return
	}
	if job, ok := h.scheduler.Job(site.LocalID); ok {
		h.Success(c, toSyncJobResponse(job))
		return
	}
	h.Success(c, gin.H{"local_site_id": site.LocalID})
}

func toSyncJobResponse(job scheduler.SyncJob) dto.SyncJobResponse {
	return dto.SyncJobResponse{
		LocalSiteID:   job.LocalSiteID,
		Status:        string(job.Status),
		Attempts:      job.Attempts,
		LastError:     job.LastError,
		LastSuccessAt: job.LastSuccessAt,
		NextRunAt:     job.NextRunAt,
	}
}
