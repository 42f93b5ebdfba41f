package routes

import (
	"jobportal/internal/api/handlers"
	"jobportal/internal/api/middleware"
	"jobportal/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterProfileRoutes registers the caller's own profile routes.
func RegisterProfileRoutes(
	rg *gin.RouterGroup,
	profileHandler handlers.ProfileHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	profile := rg.Group("/profile")
	profile.Use(authMiddleware)
	{
		profile.GET("", profileHandler.GetProfile)
		profile.PUT("", profileHandler.UpdateProfile)
		profile.POST("/upload-photo", profileHandler.UploadPhoto)
		profile.POST("/upload-logo", middleware.RequireRole(models.RoleRecruiter), profileHandler.UploadLogo)
	}
}

// RegisterSavedJobRoutes registers seeker bookmark routes.
func RegisterSavedJobRoutes(
	rg *gin.RouterGroup,
	savedJobHandler handlers.SavedJobHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	saved := rg.Group("/saved-jobs")
	saved.Use(authMiddleware, middleware.RequireRole(models.RoleJobSeeker))
	{
		saved.GET("", savedJobHandler.ListSavedJobs)
		saved.POST("/:jobId", savedJobHandler.SaveJob)
		saved.DELETE("/:jobId", savedJobHandler.RemoveSavedJob)
	}
}
