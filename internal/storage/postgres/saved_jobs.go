package postgres

import (
	"context"
	"fmt"

	"jobportal/internal/models"
	"jobportal/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SavedJobRepo implements the storage.SavedJobRepository interface using PostgreSQL.
type SavedJobRepo struct {
	db Querier
}

func NewSavedJobRepo(db Querier) *SavedJobRepo {
	return &SavedJobRepo{db: db}
}

var _ storage.SavedJobRepository = (*SavedJobRepo)(nil)

func (r *SavedJobRepo) Save(ctx context.Context, userID, jobID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO saved_jobs (user_id, job_id, saved_at) VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, job_id) DO NOTHING`, userID, jobID)
	if err != nil {
		return mapWriteError(err, "save job")
	}
	return nil
}

func (r *SavedJobRepo) Remove(ctx context.Context, userID, jobID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	if err != nil {
		return fmt.Errorf("failed to remove saved job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *SavedJobRepo) ListJobs(ctx context.Context, userID uuid.UUID) ([]models.Job, error) {
	query := `
		SELECT j.id, j.title, j.description, j.company, j.location, j.job_type, j.salary, j.requirements,
			j.responsibilities, j.skills, j.recruiter_id, j.posted_date, j.deadline, j.is_active, j.is_closed,
			j.created_at, j.updated_at
		FROM saved_jobs s
		JOIN jobs j ON j.id = s.job_id
		WHERE s.user_id = $1
		ORDER BY s.saved_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved jobs: %w", err)
	}
	jobs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Job])
	if err != nil {
		return nil, fmt.Errorf("failed to scan saved jobs: %w", err)
	}
	return nonNil(jobs), nil
}

func (r *SavedJobRepo) DeleteByJob(ctx context.Context, jobID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM saved_jobs WHERE job_id = $1`, jobID); err != nil {
		return fmt.Errorf("failed to delete saved entries for job %s: %w", jobID, err)
	}
	return nil
}
