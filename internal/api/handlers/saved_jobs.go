package handlers

import (
	"net/http"

	"jobportal/internal/api/middleware"
	"jobportal/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SavedJobHandler serves seeker bookmarks.
type SavedJobHandler struct {
	service services.SavedJobService
	log     *zap.Logger
}

func NewSavedJobHandler(service services.SavedJobService, log *zap.Logger) *SavedJobHandler {
	return &SavedJobHandler{service: service, log: log}
}

// SaveJob godoc
// @Summary      Bookmark a job
// @Tags         saved-jobs
// @Produce      json
// @Param        jobId path      string true "Job ID" Format(uuid)
// @Success      201 {object}  map[string]interface{} "Saved"
// @Failure      403 {object}  map[string]interface{} "Job seekers only"
// @Failure      404 {object}  map[string]interface{} "Job not found"
// @Router       /saved-jobs/{jobId} [post]
// @Security     BearerAuth
func (h *SavedJobHandler) SaveJob(c *gin.Context) {
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	if err := h.service.SaveJob(c.Request.Context(), middleware.PrincipalFromContext(c), jobID); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusCreated, "Job saved successfully", nil)
}

// RemoveSavedJob godoc
// @Summary      Remove a bookmark
// @Tags         saved-jobs
// @Produce      json
// @Param        jobId path      string true "Job ID" Format(uuid)
// @Success      200 {object}  map[string]interface{} "Removed"
// @Failure      404 {object}  map[string]interface{} "Not saved"
// @Router       /saved-jobs/{jobId} [delete]
// @Security     BearerAuth
func (h *SavedJobHandler) RemoveSavedJob(c *gin.Context) {
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	if err := h.service.RemoveSavedJob(c.Request.Context(), middleware.PrincipalFromContext(c), jobID); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, "Job removed from saved jobs", nil)
}

// ListSavedJobs godoc
// @Summary      List bookmarked jobs
// @Tags         saved-jobs
// @Produce      json
// @Success      200 {array}   dto.JobResponse
// @Router       /saved-jobs [get]
// @Security     BearerAuth
func (h *SavedJobHandler) ListSavedJobs(c *gin.Context) {
	jobs, err := h.service.ListSavedJobs(c.Request.Context(), middleware.PrincipalFromContext(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, "Saved jobs fetched successfully", gin.H{
		"jobs":  MapJobsToResponse(jobs),
		"count": len(jobs),
	})
}
