package services

import (
	"context"
	"errors"
	"time"

	"jobportal/internal/access"
	"jobportal/internal/logger"
	"jobportal/internal/models"
	"jobportal/internal/notify"
	"jobportal/internal/storage"
	"jobportal/internal/transport/dto"
	"jobportal/internal/uploads"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResumeField is the multipart field carrying the resume.
const ResumeField = "resume"

type applicationService struct {
	store     storage.Store
	files     uploads.Storage
	notifier  Notifier
	validator *validator.Validate
	log       *zap.Logger
	now       func() time.Time
}

// NewApplicationService creates a new instance of ApplicationService.
func NewApplicationService(d Deps) ApplicationService {
	return &applicationService{
		store:     d.Store,
		files:     d.Files,
		notifier:  d.Notifier,
		validator: d.Validator,
		log:       d.logger().Named("applications"),
		now:       d.clock(),
	}
}

func (s *applicationService) SubmitApplication(ctx context.Context, p *access.Principal, jobID uuid.UUID, req *dto.SubmitApplicationRequest, resume *uploads.File) (*models.Application, error) {
	log := logger.WithRequestID(ctx, s.log).With(zap.Stringer("job_id", jobID))
	if err := authorize(access.RequireRole(p, models.RoleJobSeeker)); err != nil {
		return nil, err
	}
	job, err := s.store.Jobs().GetByID(ctx, jobID)
	if err != nil {
		return nil, mapRepoError(err, "Job")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fromValidator(err)
	}
	prepared, err := uploads.Prepare(uploads.KindResume, resume)
	if err != nil {
		return nil, mapUploadError(err, uploads.KindResume, ResumeField)
	}
	if !job.AcceptsApplications(s.now()) {
		return nil, wrapError(ErrInvalidState, "This job is no longer accepting applications",
			errors.New(string(job.Status(s.now()))))
	}

	// Fast path for the common duplicate. The unique (job, applicant) constraint settles races.
	if _, err := s.store.Applications().GetByJobAndApplicant(ctx, job.ID, p.UserID); err == nil {
		return nil, newError(ErrConflict, "You have already applied to this job")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, mapRepoError(err, "Application")
	}

	applicant, err := s.store.Users().GetByID(ctx, p.UserID)
	if err != nil {
		return nil, mapRepoError(err, "User")
	}

	resumeURL, err := s.files.Put(ctx, prepared)
	if err != nil {
		log.Error("uploading resume", zap.Error(err))
		return nil, mapUploadError(err, uploads.KindResume, ResumeField)
	}

	created, err := s.store.Applications().Create(ctx, &models.Application{
		ID:          uuid.New(),
		JobID:       job.ID,
		ApplicantID: p.UserID,
		ResumeURL:   resumeURL,
		CoverLetter: req.CoverLetter,
		Status:      models.ApplicationStatusPending,
		AppliedAt:   s.now(),
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("concurrent duplicate application rejected", zap.Stringer("applicant_id", p.UserID))
			return nil, wrapError(ErrConflict, "You have already applied to this job", err)
		}
		log.Error("creating application", zap.Error(err))
		return nil, mapRepoError(err, "Application")
	}
	log.Info("application submitted",
		zap.Stringer("application_id", created.ID), zap.Stringer("applicant_id", p.UserID))

	s.notifier.ApplicationSubmitted(ctx, notify.ApplicationSubmitted{
		To:            applicant.Email,
		ApplicantName: applicant.DisplayName(),
		JobTitle:      job.Title,
		Company:       job.Company,
	})
	return created, nil
}

func (s *applicationService) ListApplicationsForJob(ctx context.Context, p *access.Principal, jobID uuid.UUID) ([]models.ApplicationWithApplicant, error) {
	if err := authorize(access.RequireRole(p, models.RoleRecruiter)); err != nil {
		return nil, err
	}
	job, err := s.store.Jobs().GetByID(ctx, jobID)
	if err != nil {
		return nil, mapRepoError(err, "Job")
	}
	if err := authorize(access.RequireOwner(p, job.RecruiterID)); err != nil {
		return nil, err
	}
	apps, err := s.store.Applications().ListByJob(ctx, job.ID)
	if err != nil {
		return nil, mapRepoError(err, "Applications")
	}
	return apps, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, p *access.Principal, applicationID uuid.UUID, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	log := logger.WithRequestID(ctx, s.log).With(zap.Stringer("application_id", applicationID))
	if err := authorize(access.RequireRole(p, models.RoleRecruiter)); err != nil {
		return nil, err
	}
	app, err := s.store.Applications().GetByID(ctx, applicationID)
	if err != nil {
		return nil, mapRepoError(err, "Application")
	}
	// Ownership follows application -> job -> recruiter.
	job, err := s.store.Jobs().GetByID(ctx, app.JobID)
	if err != nil {
		return nil, mapRepoError(err, "Job")
	}
	if err := access.RequireOwner(p, job.RecruiterID); err != nil {
		log.Warn("status update by non-owner", zap.Stringer("user_id", p.UserID))
		return nil, authorize(err)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fromValidator(err)
	}

	previous := app.Status
	next := models.ApplicationStatus(req.Status)
	// nil notes leave the stored value; an empty string clears it.
	updated, err := s.store.Applications().UpdateStatus(ctx, app.ID, next, req.Notes)
	if err != nil {
		log.Error("updating application status", zap.Error(err))
		return nil, mapRepoError(err, "Application")
	}
	if previous == next {
		return updated, nil
	}
	log.Info("application status changed",
		zap.String("from", string(previous)), zap.String("to", string(next)))

	applicant, err := s.store.Users().GetByID(ctx, app.ApplicantID)
	if err != nil {
		log.Warn("loading applicant for status notice", zap.Error(err))
		return updated, nil
	}
	s.notifier.StatusChanged(ctx, notify.StatusChanged{
		To:            applicant.Email,
		ApplicantName: applicant.DisplayName(),
		JobTitle:      job.Title,
		Company:       job.Company,
		Status:        next,
	})
	return updated, nil
}

func (s *applicationService) ListApplicationsForUser(ctx context.Context, p *access.Principal, applicantID uuid.UUID) ([]SeekerApplication, error) {
	if err := authorize(access.RequireRole(p, models.RoleJobSeeker)); err != nil {
		return nil, err
	}
	if err := authorize(access.RequireOwner(p, applicantID)); err != nil {
		return nil, err
	}
	apps, err := s.store.Applications().ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, mapRepoError(err, "Applications")
	}
	now := s.now()
	out := make([]SeekerApplication, 0, len(apps))
	for _, a := range apps {
		out = append(out, SeekerApplication{Application: a.Application, Job: a.Job, JobStatus: a.Job.Status(now)})
	}
	return out, nil
}

func (s *applicationService) GetApplicantProfile(ctx context.Context, p *access.Principal, applicantID uuid.UUID) (*ProfileView, error) {
	if err := authorize(access.RequireRole(p, models.RoleRecruiter)); err != nil {
		return nil, err
	}
	user, err := s.store.Users().GetByID(ctx, applicantID)
	if err != nil {
		return nil, mapRepoError(err, "Applicant")
	}
	related, err := s.store.Applications().ExistsForRecruiter(ctx, applicantID, p.UserID)
	if err != nil {
		return nil, mapRepoError(err, "Applications")
	}
	if !related {
		return nil, newError(ErrForbidden, "You can only view applicants who applied to your jobs")
	}
	profile, err := s.store.Profiles().GetByID(ctx, user.ProfileID)
	if err != nil {
		return nil, mapRepoError(err, "Profile")
	}
	return &ProfileView{User: *user, Profile: *profile}, nil
}
