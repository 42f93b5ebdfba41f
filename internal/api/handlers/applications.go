package handlers

import (
	"net/http"

	"jobportal/internal/api/middleware"
	"jobportal/internal/services"
	"jobportal/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ApplicationHandler holds dependencies for application operations.
type ApplicationHandler struct {
	service services.ApplicationService
	log     *zap.Logger
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(service services.ApplicationService, log *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		service: service,
		log:     log,
	}
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Submits the authenticated seeker's application with a PDF resume.
// @Tags         applications
// @Accept       multipart/form-data
// @Produce      json
// @Param        jobId       path     string true  "Job ID" Format(uuid)
// @Param        resume      formData file   true  "Resume (PDF, max 5 MB)"
// @Param        coverLetter formData string false "Cover letter"
// @Success      201 {object}  dto.ApplicationResponse
// @Failure      400 {object}  map[string]interface{} "Validation failed"
// @Failure      403 {object}  map[string]interface{} "Job seekers only"
// @Failure      404 {object}  map[string]interface{} "Job not found"
// @Failure      409 {object}  map[string]interface{} "Already applied or job not accepting applications"
// @Router       /applications/apply/{jobId} [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	var req dto.SubmitApplicationRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "Invalid form data", map[string]string{"body": err.Error()})
		return
	}
	resume, closeFile, err := formFile(c, services.ResumeField)
	if err != nil {
		respondBadRequest(c, "Invalid form data", map[string]string{services.ResumeField: "is not a valid file"})
		return
	}
	defer closeFile()

	app, err := h.service.SubmitApplication(c.Request.Context(), middleware.PrincipalFromContext(c), jobID, &req, resume)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusCreated, "Application submitted successfully", gin.H{
		"application": MapApplicationToResponse(app),
	})
}

// ListApplicants godoc
// @Summary      List a job's applications
// @Description  Lists applications for a job owned by the authenticated recruiter.
// @Tags         applications
// @Produce      json
// @Param        jobId path      string true "Job ID" Format(uuid)
// @Success      200 {array}   dto.ApplicationResponse
// @Failure      403 {object}  map[string]interface{} "Not the owner"
// @Failure      404 {object}  map[string]interface{} "Job not found"
// @Router       /applications/applicants/{jobId} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListApplicants(c *gin.Context) {
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}

	apps, err := h.service.ListApplicationsForJob(c.Request.Context(), middleware.PrincipalFromContext(c), jobID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, "Applications fetched successfully", gin.H{
		"applications": MapApplicationsToResponse(apps),
		"count":        len(apps),
	})
}

// UpdateStatus godoc
// @Summary      Update an application's status
// @Description  Sets the review status and notes. The applicant is emailed when the status changes.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        applicationId path      string                             true "Application ID" Format(uuid)
// @Param        body          body      dto.UpdateApplicationStatusRequest true "New status"
// @Success      200 {object}  dto.ApplicationResponse
// @Failure      400 {object}  map[string]interface{} "Validation failed"
// @Failure      403 {object}  map[string]interface{} "Not the job owner"
// @Failure      404 {object}  map[string]interface{} "Application not found"
// @Router       /applications/{applicationId} [put]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	applicationID, ok := pathID(c, "applicationId")
	if !ok {
		return
	}
	var req dto.UpdateApplicationStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.service.UpdateStatus(c.Request.Context(), middleware.PrincipalFromContext(c), applicationID, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, "Application status updated successfully", gin.H{
		"application": MapApplicationToResponse(app),
	})
}

// ListMine godoc
// @Summary      List my applications
// @Description  Lists the authenticated seeker's applications with job summaries.
// @Tags         applications
// @Produce      json
// @Success      200 {array}   dto.ApplicationResponse
// @Failure      401 {object}  map[string]interface{} "Unauthorized"
// @Failure      403 {object}  map[string]interface{} "Job seekers only"
// @Router       /applications/user [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	p := middleware.PrincipalFromContext(c)
	if p == nil {
		respondError(c, h.log, services.ErrAuthentication)
		return
	}

	apps, err := h.service.ListApplicationsForUser(c.Request.Context(), p, p.UserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, "Applications fetched successfully", gin.H{
		"applications": MapSeekerApplicationsToResponse(apps),
		"count":        len(apps),
	})
}

// ApplicantProfile godoc
// @Summary      View an applicant's profile
// @Description  Recruiters may view seekers who applied to one of their jobs.
// @Tags         applications
// @Produce      json
// @Param        applicantId path      string true "Applicant user ID" Format(uuid)
// @Success      200 {object}  map[string]interface{} "User and profile"
// @Failure      403 {object}  map[string]interface{} "No application to your jobs"
// @Failure      404 {object}  map[string]interface{} "Applicant not found"
// @Router       /applications/applicantProfile/{applicantId} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ApplicantProfile(c *gin.Context) {
	applicantID, ok := pathID(c, "applicantId")
	if !ok {
		return
	}

	view, err := h.service.GetApplicantProfile(c.Request.Context(), middleware.PrincipalFromContext(c), applicantID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, "Applicant profile fetched successfully", profilePayload(view))
}
