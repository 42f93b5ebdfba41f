package handlers

import (
	"net/http"

	"jobportal/internal/api/middleware"
	"jobportal/internal/services"
	"jobportal/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JobHandler holds dependencies for job operations.
type JobHandler struct {
	service services.JobService
	log     *zap.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service services.JobService, log *zap.Logger) *JobHandler {
	return &JobHandler{
		service: service,
		log:     log,
	}
}

// CreateJob godoc
// @Summary      Create a job posting
// @Description  Creates an active job owned by the authenticated recruiter.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job body      dto.CreateJobRequest true  "Job details"
// @Success      201 {object}  dto.JobResponse
// @Failure      400 {object}  map[string]interface{} "Validation failed"
// @Failure      401 {object}  map[string]interface{} "Unauthorized"
// @Failure      403 {object}  map[string]interface{} "Recruiters only"
// @Router       /jobs/create [post]
// @Security     BearerAuth
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.service.CreateJob(c.Request.Context(), middleware.PrincipalFromContext(c), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusCreated, "Job created successfully", gin.H{"job": MapJobToResponse(job)})
}

// ListJobs godoc
// @Summary      List open jobs
// @Description  Lists jobs that are accepting applications, newest first.
// @Tags         jobs
// @Produce      json
// @Param        limit    query int    false "Page size" default(20)
// @Param        offset   query int    false "Page offset" default(0)
// @Param        jobType  query string false "Job type filter" Enums(Full-time, Part-time, Contract, Internship, Remote)
// @Param        location query string false "Location substring filter"
// @Success      200 {array}   dto.JobResponse
// @Failure      400 {object}  map[string]interface{} "Invalid query parameters"
// @Router       /jobs/all [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "Invalid query parameters", map[string]string{"query": err.Error()})
		return
	}

	jobs, err := h.service.ListOpenJobs(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, "Jobs fetched successfully", gin.H{
		"jobs":  MapJobsToResponse(jobs),
		"count": len(jobs),
	})
}

// ListRecruiterJobs godoc
// @Summary      List the recruiter's jobs
// @Description  Lists every job the authenticated recruiter posted, with applications attached.
// @Tags         jobs
// @Produce      json
// @Success      200 {array}   dto.JobResponse
// @Failure      401 {object}  map[string]interface{} "Unauthorized"
// @Failure      403 {object}  map[string]interface{} "Recruiters only"
// @Router       /jobs/recruiter/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListRecruiterJobs(c *gin.Context) {
	jobs, err := h.service.ListRecruiterJobs(c.Request.Context(), middleware.PrincipalFromContext(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, "Jobs fetched successfully", gin.H{
		"jobs":  MapJobsToResponse(jobs),
		"count": len(jobs),
	})
}

// GetJob godoc
// @Summary      Get a job
// @Description  Public. The owning recruiter also receives the applications.
// @Tags         jobs
// @Produce      json
// @Param        jobId path      string true "Job ID" Format(uuid)
// @Success      200 {object}  dto.JobResponse
// @Failure      400 {object}  map[string]interface{} "Invalid ID format"
// @Failure      404 {object}  map[string]interface{} "Job not found"
// @Router       /jobs/{jobId} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}

	job, err := h.service.GetJob(c.Request.Context(), middleware.PrincipalFromContext(c), jobID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, "Job fetched successfully", gin.H{"job": MapJobToResponse(job)})
}

// UpdateJob godoc
// @Summary      Update a job
// @Description  Partially updates a job owned by the authenticated recruiter.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        jobId path      string               true "Job ID" Format(uuid)
// @Param        job   body      dto.UpdateJobRequest true "Fields to change"
// @Success      200 {object}  dto.JobResponse
// @Failure      400 {object}  map[string]interface{} "Validation failed"
// @Failure      403 {object}  map[string]interface{} "Not the owner"
// @Failure      404 {object}  map[string]interface{} "Job not found"
// @Router       /jobs/{jobId} [put]
// @Security     BearerAuth
func (h *JobHandler) UpdateJob(c *gin.Context) {
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	var req dto.UpdateJobRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.service.UpdateJob(c.Request.Context(), middleware.PrincipalFromContext(c), jobID, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, "Job updated successfully", gin.H{"job": MapJobToResponse(job)})
}

// CloseJob godoc
// @Summary      Close a job
// @Description  Stops a job from accepting applications. Closing a closed job is a no-op.
// @Tags         jobs
// @Produce      json
// @Param        jobId path      string true "Job ID" Format(uuid)
// @Success      200 {object}  dto.JobResponse
// @Failure      403 {object}  map[string]interface{} "Not the owner"
// @Failure      404 {object}  map[string]interface{} "Job not found"
// @Router       /jobs/{jobId}/close [put]
// @Security     BearerAuth
func (h *JobHandler) CloseJob(c *gin.Context) {
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}

	job, err := h.service.CloseJob(c.Request.Context(), middleware.PrincipalFromContext(c), jobID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, "Job closed successfully", gin.H{"job": MapJobToResponse(job)})
}

// ReopenJob godoc
// @Summary      Reopen a job
// @Description  Reopens a job with a new deadline in the future.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        jobId path      string               true "Job ID" Format(uuid)
// @Param        body  body      dto.ReopenJobRequest true "New deadline"
// @Success      200 {object}  dto.JobResponse
// @Failure      400 {object}  map[string]interface{} "Deadline missing or in the past"
// @Failure      403 {object}  map[string]interface{} "Not the owner"
// @Failure      404 {object}  map[string]interface{} "Job not found"
// @Router       /jobs/{jobId}/reopen [put]
// @Security     BearerAuth
func (h *JobHandler) ReopenJob(c *gin.Context) {
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	var req dto.ReopenJobRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.service.ReopenJob(c.Request.Context(), middleware.PrincipalFromContext(c), jobID, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, "Job reopened successfully", gin.H{"job": MapJobToResponse(job)})
}

// DeleteJob godoc
// @Summary      Delete a job
// @Description  Deletes a job together with its applications and bookmarks.
// @Tags         jobs
// @Produce      json
// @Param        jobId path      string true "Job ID" Format(uuid)
// @Success      200 {object}  map[string]interface{} "Job deleted"
// @Failure      403 {object}  map[string]interface{} "Not the owner"
// @Failure      404 {object}  map[string]interface{} "Job not found"
// @Router       /jobs/{jobId} [delete]
// @Security     BearerAuth
func (h *JobHandler) DeleteJob(c *gin.Context) {
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}

	if err := h.service.DeleteJob(c.Request.Context(), middleware.PrincipalFromContext(c), jobID); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, "Job deleted successfully", nil)
}
