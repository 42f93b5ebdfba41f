package services

import (
	"context"
	"time"

	"jobportal/internal/access"
	"jobportal/internal/models"
	"jobportal/internal/notify"
	"jobportal/internal/storage"
	"jobportal/internal/transport/dto"
	"jobportal/internal/uploads"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier is the email side of the lifecycle. Only SendOTP reports failure.
type Notifier interface {
	SendOTP(ctx context.Context, email, code string) error
	ApplicationSubmitted(ctx context.Context, e notify.ApplicationSubmitted)
	StatusChanged(ctx context.Context, e notify.StatusChanged)
	JobUpdated(ctx context.Context, e notify.JobUpdated)
}

var _ Notifier = (*notify.Dispatcher)(nil)

// Deps are the collaborators shared by every service.
type Deps struct {
	Store     storage.Store
	OTPs      storage.OTPStore
	Notifier  Notifier
	Files     uploads.Storage
	Tokens    *access.TokenManager
	Validator *validator.Validate
	Logger    *zap.Logger
	Now       func() time.Time
	OTPTTL    time.Duration
}

func (d Deps) clock() func() time.Time {
	if d.Now == nil {
		return time.Now
	}
	return d.Now
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// JobView is a job with its derived status. ApplicationCount is nil when it was not computed.
type JobView struct {
	models.Job
	Status           models.JobStatus
	ApplicationCount *int
	Applications     []models.ApplicationWithApplicant
}

// SeekerApplication is one of a seeker's applications with the job it targets.
type SeekerApplication struct {
	models.Application
	Job       models.Job
	JobStatus models.JobStatus
}

// ProfileView is an identity together with its profile.
type ProfileView struct {
	User    models.User
	Profile models.Profile
}

// JobService defines the job lifecycle.
type JobService interface {
	CreateJob(ctx context.Context, p *access.Principal, req *dto.CreateJobRequest) (*JobView, error)
	// GetJob is public; applications are attached only for the owning recruiter. p may be nil.
	GetJob(ctx context.Context, p *access.Principal, jobID uuid.UUID) (*JobView, error)
	ListOpenJobs(ctx context.Context, req *dto.ListJobsRequest) ([]JobView, error)
	ListRecruiterJobs(ctx context.Context, p *access.Principal) ([]JobView, error)
	UpdateJob(ctx context.Context, p *access.Principal, jobID uuid.UUID, req *dto.UpdateJobRequest) (*JobView, error)
	CloseJob(ctx context.Context, p *access.Principal, jobID uuid.UUID) (*JobView, error)
	ReopenJob(ctx context.Context, p *access.Principal, jobID uuid.UUID, req *dto.ReopenJobRequest) (*JobView, error)
	DeleteJob(ctx context.Context, p *access.Principal, jobID uuid.UUID) error
	Status(job *models.Job) models.JobStatus
}

// ApplicationService defines the application lifecycle.
type ApplicationService interface {
	SubmitApplication(ctx context.Context, p *access.Principal, jobID uuid.UUID, req *dto.SubmitApplicationRequest, resume *uploads.File) (*models.Application, error)
	ListApplicationsForJob(ctx context.Context, p *access.Principal, jobID uuid.UUID) ([]models.ApplicationWithApplicant, error)
	UpdateStatus(ctx context.Context, p *access.Principal, applicationID uuid.UUID, req *dto.UpdateApplicationStatusRequest) (*models.Application, error)
	ListApplicationsForUser(ctx context.Context, p *access.Principal, applicantID uuid.UUID) ([]SeekerApplication, error)
	GetApplicantProfile(ctx context.Context, p *access.Principal, applicantID uuid.UUID) (*ProfileView, error)
}

// AuthService defines OTP signup and login.
type AuthService interface {
	SendOTP(ctx context.Context, req *dto.SendOTPRequest) error
	Signup(ctx context.Context, req *dto.SignupRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, error) // Returns user and token
}

// ProfileService defines reads and updates of the caller's own identity and profile.
type ProfileService interface {
	GetProfile(ctx context.Context, p *access.Principal) (*ProfileView, error)
	UpdateProfile(ctx context.Context, p *access.Principal, req *dto.UpdateProfileRequest) (*ProfileView, error)
	UploadPhoto(ctx context.Context, p *access.Principal, file *uploads.File) (*models.User, error)
	UploadLogo(ctx context.Context, p *access.Principal, file *uploads.File) (*models.User, error)
}

// SavedJobService defines seeker bookmarks.
type SavedJobService interface {
	SaveJob(ctx context.Context, p *access.Principal, jobID uuid.UUID) error
	RemoveSavedJob(ctx context.Context, p *access.Principal, jobID uuid.UUID) error
	ListSavedJobs(ctx context.Context, p *access.Principal) ([]JobView, error)
}
