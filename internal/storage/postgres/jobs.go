// internal/storage/postgres/jobs.go
package postgres

import (
	"context"
	"fmt"

	"jobportal/internal/models"
	"jobportal/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, title, description, company, location, job_type, salary, requirements, responsibilities,
	skills, recruiter_id, posted_date, deadline, is_active, is_closed, created_at, updated_at`

// JobRepo implements the storage.JobRepository interface using PostgreSQL.
type JobRepo struct {
	db Querier
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db Querier) *JobRepo {
	return &JobRepo{db: db}
}

// Compile-time check to ensure JobRepo implements JobRepository
var _ storage.JobRepository = (*JobRepo)(nil)

// Create saves a new job posting.
func (r *JobRepo) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	if job.ID == uuid.Nil {
		job.ID = uuid.New() // Generate ID server-side
	}

	query := `
		INSERT INTO jobs (id, title, description, company, location, job_type, salary, requirements,
			responsibilities, skills, recruiter_id, posted_date, deadline, is_active, is_closed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		RETURNING ` + jobColumns

	rows, err := r.db.Query(ctx, query,
		job.ID,
		job.Title,
		job.Description,
		job.Company,
		job.Location,
		job.JobType,
		job.Salary,
		nonNil(job.Requirements),
		nonNil(job.Responsibilities),
		nonNil(job.Skills),
		job.RecruiterID, // FK violation means the recruiter does not exist
		job.PostedDate,
		job.Deadline,
		job.IsActive,
		job.IsClosed,
	)
	if err != nil {
		return nil, mapWriteError(err, "create job")
	}
	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Job])
	if err != nil {
		return nil, mapWriteError(err, "create job")
	}
	return created, nil
}

// GetByID retrieves a specific job by its ID.
func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query job %s: %w", id, err)
	}
	job, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Job])
	if err != nil {
		return nil, mapReadError(err, "get job by id")
	}
	return job, nil
}

// Update applies the non-nil fields of update.
func (r *JobRepo) Update(ctx context.Context, id uuid.UUID, update storage.JobUpdate) (*models.Job, error) {
	var set setClause
	if update.Title != nil {
		set.add("title", *update.Title)
	}
	if update.Description != nil {
		set.add("description", *update.Description)
	}
	if update.Company != nil {
		set.add("company", *update.Company)
	}
	if update.Location != nil {
		set.add("location", *update.Location)
	}
	if update.JobType != nil {
		set.add("job_type", *update.JobType)
	}
	if update.Salary != nil {
		set.add("salary", *update.Salary)
	}
	if update.Requirements != nil {
		set.add("requirements", nonNil(*update.Requirements))
	}
	if update.Responsibilities != nil {
		set.add("responsibilities", nonNil(*update.Responsibilities))
	}
	if update.Skills != nil {
		set.add("skills", nonNil(*update.Skills))
	}
	if update.Deadline != nil {
		set.add("deadline", *update.Deadline)
	}
	if update.IsClosed != nil {
		set.add("is_closed", *update.IsClosed)
	}
	if set.empty() {
		return r.GetByID(ctx, id)
	}

	query, args := set.build("jobs", id, jobColumns)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapWriteError(err, "update job")
	}
	job, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Job])
	if err != nil {
		return nil, mapReadError(err, "update job")
	}
	return job, nil
}

// ListOpen retrieves visible jobs whose derived status is Active at filter.Now.
func (r *JobRepo) ListOpen(ctx context.Context, filter storage.JobFilter) ([]models.Job, error) {
	baseQuery := `SELECT ` + jobColumns + ` FROM jobs`
	args := []any{filter.Now}
	conditions := []string{"is_active", "NOT is_closed", "(deadline IS NULL OR deadline >= $1)"}

	if filter.JobType != nil {
		args = append(args, *filter.JobType)
		conditions = append(conditions, fmt.Sprintf("job_type = $%d", len(args)))
	}
	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		conditions = append(conditions, fmt.Sprintf("location ILIKE $%d", len(args)))
	}

	query := buildListQuery(baseQuery, conditions, &args, "posted_date DESC, id", filter.Offset, filter.Limit)
	return r.queryJobs(ctx, query, args...)
}

// ListByRecruiter retrieves every job posted by recruiterID, newest first.
func (r *JobRepo) ListByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE recruiter_id = $1 ORDER BY posted_date DESC, id`
	return r.queryJobs(ctx, query, recruiterID)
}

func (r *JobRepo) queryJobs(ctx context.Context, query string, args ...any) ([]models.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	jobs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Job])
	if err != nil {
		return nil, fmt.Errorf("failed to scan jobs: %w", err)
	}
	if jobs == nil {
		jobs = []models.Job{} // Return empty slice, not nil
	}
	return jobs, nil
}

// Delete removes a job. Applications and saved entries go with it via ON DELETE CASCADE.
func (r *JobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
