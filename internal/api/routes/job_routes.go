package routes

import (
	"jobportal/internal/api/handlers"
	"jobportal/internal/api/middleware"
	"jobportal/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterJobRoutes registers all routes related to jobs.
// Listing and reading a job are public; everything else is for recruiters.
func RegisterJobRoutes(
	rg *gin.RouterGroup, // Base group (e.g., /api/v1)
	jobHandler handlers.JobHandlerInterface, // Use interface
	authMiddleware gin.HandlerFunc,
	optionalAuth gin.HandlerFunc,
) {
	recruiterOnly := middleware.RequireRole(models.RoleRecruiter)

	jobs := rg.Group("/jobs")
	{
		jobs.GET("/all", jobHandler.ListJobs)
		jobs.GET("/:jobId", optionalAuth, jobHandler.GetJob) // Owner also gets applications

		owned := jobs.Group("", authMiddleware, recruiterOnly)
		owned.POST("/create", jobHandler.CreateJob)
		owned.GET("/recruiter/jobs", jobHandler.ListRecruiterJobs)
		owned.PUT("/:jobId", jobHandler.UpdateJob)
		owned.PUT("/:jobId/close", jobHandler.CloseJob)
		owned.PUT("/:jobId/reopen", jobHandler.ReopenJob)
		owned.DELETE("/:jobId", jobHandler.DeleteJob)
	}
}
