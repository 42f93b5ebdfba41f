package routes

import (
	"jobportal/internal/api/handlers"
	"jobportal/internal/api/middleware"
	"jobportal/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterApplicationRoutes registers all routes related to job applications.
func RegisterApplicationRoutes(
	rg *gin.RouterGroup,
	applicationHandler handlers.ApplicationHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	seekerOnly := middleware.RequireRole(models.RoleJobSeeker)
	recruiterOnly := middleware.RequireRole(models.RoleRecruiter)

	applications := rg.Group("/applications")
	applications.Use(authMiddleware)
	{
		applications.POST("/apply/:jobId", seekerOnly, applicationHandler.Apply)
		applications.GET("/user", seekerOnly, applicationHandler.ListMine)

		applications.GET("/applicants/:jobId", recruiterOnly, applicationHandler.ListApplicants)
		applications.PUT("/:applicationId", recruiterOnly, applicationHandler.UpdateStatus)
		applications.GET("/applicantProfile/:applicantId", recruiterOnly, applicationHandler.ApplicantProfile)
	}
}
