package handlers

import (
	"context"

	"jobportal/internal/access"
	"jobportal/internal/models"
	"jobportal/internal/uploads"

	"github.com/gin-gonic/gin"
)

type uploadFunc func(ctx context.Context, p *access.Principal, file *uploads.File) (*models.User, error)

// AuthHandlerInterface defines the methods needed by the auth routes.
type AuthHandlerInterface interface {
	SendOTP(c *gin.Context)
	Signup(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
}

// JobHandlerInterface defines the methods needed by the job routes.
type JobHandlerInterface interface {
	CreateJob(c *gin.Context)
	ListJobs(c *gin.Context)
	ListRecruiterJobs(c *gin.Context)
	GetJob(c *gin.Context)
	UpdateJob(c *gin.Context)
	CloseJob(c *gin.Context)
	ReopenJob(c *gin.Context)
	DeleteJob(c *gin.Context)
}

// ApplicationHandlerInterface defines the methods needed by the application routes.
type ApplicationHandlerInterface interface {
	Apply(c *gin.Context)
	ListApplicants(c *gin.Context)
	UpdateStatus(c *gin.Context)
	ListMine(c *gin.Context)
	ApplicantProfile(c *gin.Context)
}

// ProfileHandlerInterface defines the methods needed by the profile routes.
type ProfileHandlerInterface interface {
	GetProfile(c *gin.Context)
	UpdateProfile(c *gin.Context)
	UploadPhoto(c *gin.Context)
	UploadLogo(c *gin.Context)
}

// SavedJobHandlerInterface defines the methods needed by the saved job routes.
type SavedJobHandlerInterface interface {
	SaveJob(c *gin.Context)
	RemoveSavedJob(c *gin.Context)
	ListSavedJobs(c *gin.Context)
}

// Ensure handlers implement the interfaces (compile-time check)
var _ AuthHandlerInterface = (*AuthHandler)(nil)
var _ JobHandlerInterface = (*JobHandler)(nil)
var _ ApplicationHandlerInterface = (*ApplicationHandler)(nil)
var _ ProfileHandlerInterface = (*ProfileHandler)(nil)
var _ SavedJobHandlerInterface = (*SavedJobHandler)(nil)
