package services

import (
	"context"
	"strings"
	"time"

	"jobportal/internal/access"
	"jobportal/internal/logger"
	"jobportal/internal/models"
	"jobportal/internal/notify"
	"jobportal/internal/storage"
	"jobportal/internal/transport/dto"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type jobService struct {
	store     storage.Store
	notifier  Notifier
	validator *validator.Validate
	log       *zap.Logger
	now       func() time.Time
}

// NewJobService creates a new instance of JobService.
func NewJobService(d Deps) JobService {
	return &jobService{
		store:     d.Store,
		notifier:  d.Notifier,
		validator: d.Validator,
		log:       d.logger().Named("jobs"),
		now:       d.clock(),
	}
}

// Status derives the job status at the current time.
func (s *jobService) Status(job *models.Job) models.JobStatus {
	return job.Status(s.now())
}

func (s *jobService) view(job *models.Job) *JobView {
	return &JobView{Job: *job, Status: s.Status(job)}
}

func (s *jobService) CreateJob(ctx context.Context, p *access.Principal, req *dto.CreateJobRequest) (*JobView, error) {
	if err := authorize(access.RequireRole(p, models.RoleRecruiter)); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fromValidator(err)
	}
	now := s.now()
	if req.Deadline != nil && req.Deadline.Before(now) {
		return nil, invalidField("deadline", "must be in the future")
	}

	job := &models.Job{
		ID:               uuid.New(),
		Title:            strings.TrimSpace(req.Title),
		Description:      req.Description,
		Company:          strings.TrimSpace(req.Company),
		Location:         strings.TrimSpace(req.Location),
		JobType:          models.JobType(req.JobType),
		Salary:           req.Salary,
		Requirements:     nonNil(req.Requirements),
		Responsibilities: nonNil(req.Responsibilities),
		Skills:           nonNil(req.Skills),
		RecruiterID:      p.UserID,
		PostedDate:       now,
		Deadline:         req.Deadline.TimePtr(),
		IsActive:         true,
		IsClosed:         false,
	}
	created, err := s.store.Jobs().Create(ctx, job)
	if err != nil {
		logger.WithRequestID(ctx, s.log).Error("creating job", zap.Error(err))
		return nil, mapRepoError(err, "Job")
	}
	logger.WithRequestID(ctx, s.log).Info("job created",
		zap.Stringer("job_id", created.ID), zap.Stringer("recruiter_id", p.UserID))
	v := s.view(created)
	v.ApplicationCount = ptr(0)
	return v, nil
}

func (s *jobService) GetJob(ctx context.Context, p *access.Principal, jobID uuid.UUID) (*JobView, error) {
	job, err := s.store.Jobs().GetByID(ctx, jobID)
	if err != nil {
		return nil, mapRepoError(err, "Job")
	}
	v := s.view(job)

	if p.Authenticated() && access.IsOwner(p, job.RecruiterID) {
		apps, err := s.store.Applications().ListByJob(ctx, job.ID)
		if err != nil {
			return nil, mapRepoError(err, "Applications")
		}
		v.Applications = apps
		v.ApplicationCount = ptr(len(apps))
		return v, nil
	}

	count, err := s.store.Applications().CountByJob(ctx, job.ID)
	if err != nil {
		return nil, mapRepoError(err, "Applications")
	}
	v.ApplicationCount = &count
	return v, nil
}

func (s *jobService) ListOpenJobs(ctx context.Context, req *dto.ListJobsRequest) ([]JobView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fromValidator(err)
	}
	filter := storage.JobFilter{
		Now:      s.now(),
		Location: strings.TrimSpace(req.Location),
		Limit:    req.Limit,
		Offset:   req.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if req.JobType != "" {
		filter.JobType = ptr(models.JobType(req.JobType))
	}

	jobs, err := s.store.Jobs().ListOpen(ctx, filter)
	if err != nil {
		logger.WithRequestID(ctx, s.log).Error("listing open jobs", zap.Error(err))
		return nil, mapRepoError(err, "Jobs")
	}
	views := make([]JobView, 0, len(jobs))
	for i := range jobs {
		views = append(views, *s.view(&jobs[i]))
	}
	return views, nil
}

func (s *jobService) ListRecruiterJobs(ctx context.Context, p *access.Principal) ([]JobView, error) {
	if err := authorize(access.RequireRole(p, models.RoleRecruiter)); err != nil {
		return nil, err
	}
	jobs, err := s.store.Jobs().ListByRecruiter(ctx, p.UserID)
	if err != nil {
		return nil, mapRepoError(err, "Jobs")
	}
	ids := make([]uuid.UUID, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	apps, err := s.store.Applications().ListByJobIDs(ctx, ids)
	if err != nil {
		return nil, mapRepoError(err, "Applications")
	}
	byJob := make(map[uuid.UUID][]models.ApplicationWithApplicant, len(jobs))
	for _, a := range apps {
		byJob[a.JobID] = append(byJob[a.JobID], a)
	}

	views := make([]JobView, 0, len(jobs))
	for i := range jobs {
		v := s.view(&jobs[i])
		v.Applications = nonNil(byJob[jobs[i].ID])
		v.ApplicationCount = ptr(len(v.Applications))
		views = append(views, *v)
	}
	return views, nil
}

// loadOwnedJob applies the recruiter guard, loads the job and checks ownership, in that order.
func (s *jobService) loadOwnedJob(ctx context.Context, p *access.Principal, jobID uuid.UUID) (*models.Job, error) {
	if err := authorize(access.RequireRole(p, models.RoleRecruiter)); err != nil {
		return nil, err
	}
	job, err := s.store.Jobs().GetByID(ctx, jobID)
	if err != nil {
		return nil, mapRepoError(err, "Job")
	}
	if err := access.RequireOwner(p, job.RecruiterID); err != nil {
		logger.WithRequestID(ctx, s.log).Warn("job mutation by non-owner",
			zap.Stringer("job_id", jobID), zap.Stringer("user_id", p.UserID))
		return nil, authorize(err)
	}
	return job, nil
}

func (s *jobService) UpdateJob(ctx context.Context, p *access.Principal, jobID uuid.UUID, req *dto.UpdateJobRequest) (*JobView, error) {
	job, err := s.loadOwnedJob(ctx, p, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fromValidator(err)
	}
	if req.Deadline != nil && req.Deadline.Before(s.now()) {
		return nil, invalidField("deadline", "must be in the future")
	}

	update := storage.JobUpdate{
		Title:            trimmed(req.Title),
		Description:      req.Description,
		Company:          trimmed(req.Company),
		Location:         trimmed(req.Location),
		Salary:           req.Salary,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Skills:           req.Skills,
		Deadline:         req.Deadline.TimePtr(),
	}
	if req.JobType != nil {
		update.JobType = ptr(models.JobType(*req.JobType))
	}
	if update.Empty() {
		return s.view(job), nil
	}

	updated, err := s.store.Jobs().Update(ctx, job.ID, update)
	if err != nil {
		logger.WithRequestID(ctx, s.log).Error("updating job", zap.Stringer("job_id", jobID), zap.Error(err))
		return nil, mapRepoError(err, "Job")
	}
	return s.view(updated), nil
}

func (s *jobService) CloseJob(ctx context.Context, p *access.Principal, jobID uuid.UUID) (*JobView, error) {
	job, err := s.loadOwnedJob(ctx, p, jobID)
	if err != nil {
		return nil, err
	}
	// Closing twice is a successful no-op.
	if job.IsClosed {
		return s.view(job), nil
	}

	before := s.Status(job)
	updated, err := s.store.Jobs().Update(ctx, job.ID, storage.JobUpdate{IsClosed: ptr(true)})
	if err != nil {
		return nil, mapRepoError(err, "Job")
	}
	logger.WithRequestID(ctx, s.log).Info("job closed", zap.Stringer("job_id", jobID))
	s.notifyJobUpdated(ctx, updated, before)
	return s.view(updated), nil
}

func (s *jobService) ReopenJob(ctx context.Context, p *access.Principal, jobID uuid.UUID, req *dto.ReopenJobRequest) (*JobView, error) {
	job, err := s.loadOwnedJob(ctx, p, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fromValidator(err)
	}
	if !req.Deadline.After(s.now()) {
		return nil, invalidField("deadline", "must be in the future")
	}

	before := s.Status(job)
	updated, err := s.store.Jobs().Update(ctx, job.ID, storage.JobUpdate{
		IsClosed: ptr(false),
		Deadline: req.Deadline.TimePtr(),
	})
	if err != nil {
		return nil, mapRepoError(err, "Job")
	}
	logger.WithRequestID(ctx, s.log).Info("job reopened",
		zap.Stringer("job_id", jobID), zap.Time("deadline", req.Deadline.Time))
	s.notifyJobUpdated(ctx, updated, before)
	return s.view(updated), nil
}

// notifyJobUpdated tells every applicant when the derived status changed.
func (s *jobService) notifyJobUpdated(ctx context.Context, job *models.Job, before models.JobStatus) {
	after := s.Status(job)
	if after == before {
		return
	}
	apps, err := s.store.Applications().ListByJob(ctx, job.ID)
	if err != nil {
		logger.WithRequestID(ctx, s.log).Warn("loading applicants for job update notice",
			zap.Stringer("job_id", job.ID), zap.Error(err))
		return
	}
	if len(apps) == 0 {
		return
	}
	recipients := make([]string, 0, len(apps))
	for _, a := range apps {
		recipients = append(recipients, a.Applicant.Email)
	}
	s.notifier.JobUpdated(ctx, notify.JobUpdated{
		Recipients: recipients,
		JobID:      job.ID,
		JobTitle:   job.Title,
		Company:    job.Company,
		Status:     after,
		Deadline:   job.Deadline,
	})
}

func (s *jobService) DeleteJob(ctx context.Context, p *access.Principal, jobID uuid.UUID) error {
	job, err := s.loadOwnedJob(ctx, p, jobID)
	if err != nil {
		return err
	}

	var removed int64
	err = s.store.WithTx(ctx, func(tx storage.Store) error {
		if err := tx.SavedJobs().DeleteByJob(ctx, job.ID); err != nil {
			return err
		}
		n, err := tx.Applications().DeleteByJob(ctx, job.ID)
		if err != nil {
			return err
		}
		removed = n
		return tx.Jobs().Delete(ctx, job.ID)
	})
	if err != nil {
		logger.WithRequestID(ctx, s.log).Error("deleting job", zap.Stringer("job_id", jobID), zap.Error(err))
		return mapRepoError(err, "Job")
	}
	logger.WithRequestID(ctx, s.log).Info("job deleted",
		zap.Stringer("job_id", jobID), zap.Int64("applications_removed", removed))
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	return ptr(strings.TrimSpace(*s))
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
