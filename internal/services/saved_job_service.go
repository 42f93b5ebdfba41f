package services

import (
	"context"
	"time"

	"jobportal/internal/access"
	"jobportal/internal/models"
	"jobportal/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type savedJobService struct {
	store storage.Store
	log   *zap.Logger
	now   func() time.Time
}

// NewSavedJobService creates a new instance of SavedJobService.
func NewSavedJobService(d Deps) SavedJobService {
	return &savedJobService{store: d.Store, log: d.logger().Named("saved_jobs"), now: d.clock()}
}

func (s *savedJobService) SaveJob(ctx context.Context, p *access.Principal, jobID uuid.UUID) error {
	if err := authorize(access.RequireRole(p, models.RoleJobSeeker)); err != nil {
		return err
	}
	if _, err := s.store.Jobs().GetByID(ctx, jobID); err != nil {
		return mapRepoError(err, "Job")
	}
	if err := s.store.SavedJobs().Save(ctx, p.UserID, jobID); err != nil {
		return mapRepoError(err, "Saved job")
	}
	return nil
}

func (s *savedJobService) RemoveSavedJob(ctx context.Context, p *access.Principal, jobID uuid.UUID) error {
	if err := authorize(access.RequireRole(p, models.RoleJobSeeker)); err != nil {
		return err
	}
	if err := s.store.SavedJobs().Remove(ctx, p.UserID, jobID); err != nil {
		return mapRepoError(err, "Saved job")
	}
	return nil
}

func (s *savedJobService) ListSavedJobs(ctx context.Context, p *access.Principal) ([]JobView, error) {
	if err := authorize(access.RequireRole(p, models.RoleJobSeeker)); err != nil {
		return nil, err
	}
	jobs, err := s.store.SavedJobs().ListJobs(ctx, p.UserID)
	if err != nil {
		return nil, mapRepoError(err, "Saved jobs")
	}
	now := s.now()
	views := make([]JobView, 0, len(jobs))
	for _, j := range jobs {
		views = append(views, JobView{Job: j, Status: j.Status(now)})
	}
	return views, nil
}
