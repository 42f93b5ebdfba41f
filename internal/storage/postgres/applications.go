package postgres

import (
	"context"
	"fmt"

	"jobportal/internal/models"
	"jobportal/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `id, job_id, applicant_id, resume_url, cover_letter, status, notes, applied_at, updated_at`

// ApplicationRepo implements the storage.ApplicationRepository interface using PostgreSQL.
type ApplicationRepo struct {
	db Querier
}

// NewApplicationRepo creates a new ApplicationRepo.
func NewApplicationRepo(db Querier) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

// Compile-time check to ensure ApplicationRepo implements ApplicationRepository
var _ storage.ApplicationRepository = (*ApplicationRepo)(nil)

// Create inserts an application. The applications_job_applicant_key constraint turns a
// concurrent duplicate into storage.ErrConflict.
func (r *ApplicationRepo) Create(ctx context.Context, app *models.Application) (*models.Application, error) {
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	query := `
		INSERT INTO applications (id, job_id, applicant_id, resume_url, cover_letter, status, notes, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING ` + applicationColumns
	rows, err := r.db.Query(ctx, query,
		app.ID, app.JobID, app.ApplicantID, app.ResumeURL, app.CoverLetter, app.Status, app.Notes, app.AppliedAt)
	if err != nil {
		return nil, mapWriteError(err, "create application")
	}
	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Application])
	if err != nil {
		return nil, mapWriteError(err, "create application")
	}
	return created, nil
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	rows, err := r.db.Query(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query application %s: %w", id, err)
	}
	app, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Application])
	if err != nil {
		return nil, mapReadError(err, "get application")
	}
	return app, nil
}

func (r *ApplicationRepo) GetByJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (*models.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 AND applicant_id = $2`, jobID, applicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query application: %w", err)
	}
	app, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Application])
	if err != nil {
		return nil, mapReadError(err, "get application by job and applicant")
	}
	return app, nil
}

const applicationWithApplicantQuery = `
	SELECT a.id, a.job_id, a.applicant_id, a.resume_url, a.cover_letter, a.status, a.notes, a.applied_at, a.updated_at,
		u.first_name, u.last_name, u.email, u.contact_number, u.profile_photo
	FROM applications a
	JOIN users u ON u.id = a.applicant_id`

func scanApplicationWithApplicant(row pgx.CollectableRow) (models.ApplicationWithApplicant, error) {
	var out models.ApplicationWithApplicant
	err := row.Scan(
		&out.ID, &out.JobID, &out.ApplicantID, &out.ResumeURL, &out.CoverLetter, &out.Status, &out.Notes,
		&out.AppliedAt, &out.UpdatedAt,
		&out.Applicant.FirstName, &out.Applicant.LastName, &out.Applicant.Email,
		&out.Applicant.ContactNumber, &out.Applicant.ProfilePhoto,
	)
	out.Applicant.ID = out.ApplicantID
	return out, err
}

// ListByJob returns the job's applications in submission order.
func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.ApplicationWithApplicant, error) {
	rows, err := r.db.Query(ctx, applicationWithApplicantQuery+` WHERE a.job_id = $1 ORDER BY a.applied_at, a.id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications for job %s: %w", jobID, err)
	}
	apps, err := pgx.CollectRows(rows, scanApplicationWithApplicant)
	if err != nil {
		return nil, fmt.Errorf("failed to scan applications: %w", err)
	}
	return nonNil(apps), nil
}

// ListByJobIDs returns the applications of every job in jobIDs, grouped by job in submission order.
func (r *ApplicationRepo) ListByJobIDs(ctx context.Context, jobIDs []uuid.UUID) ([]models.ApplicationWithApplicant, error) {
	if len(jobIDs) == 0 {
		return []models.ApplicationWithApplicant{}, nil
	}
	rows, err := r.db.Query(ctx,
		applicationWithApplicantQuery+` WHERE a.job_id = ANY($1) ORDER BY a.job_id, a.applied_at, a.id`, jobIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications for jobs: %w", err)
	}
	apps, err := pgx.CollectRows(rows, scanApplicationWithApplicant)
	if err != nil {
		return nil, fmt.Errorf("failed to scan applications: %w", err)
	}
	return nonNil(apps), nil
}

// ListByApplicant returns an applicant's applications with their jobs, newest first.
func (r *ApplicationRepo) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]models.ApplicationWithJob, error) {
	query := `
		SELECT a.id, a.job_id, a.applicant_id, a.resume_url, a.cover_letter, a.status, a.notes, a.applied_at, a.updated_at,
			j.id, j.title, j.description, j.company, j.location, j.job_type, j.salary, j.requirements,
			j.responsibilities, j.skills, j.recruiter_id, j.posted_date, j.deadline, j.is_active, j.is_closed,
			j.created_at, j.updated_at
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.applicant_id = $1
		ORDER BY a.applied_at DESC, a.id`
	rows, err := r.db.Query(ctx, query, applicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications for applicant %s: %w", applicantID, err)
	}
	apps, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ApplicationWithJob, error) {
		var out models.ApplicationWithJob
		j := &out.Job
		err := row.Scan(
			&out.ID, &out.JobID, &out.ApplicantID, &out.ResumeURL, &out.CoverLetter, &out.Status, &out.Notes,
			&out.AppliedAt, &out.UpdatedAt,
			&j.ID, &j.Title, &j.Description, &j.Company, &j.Location, &j.JobType, &j.Salary, &j.Requirements,
			&j.Responsibilities, &j.Skills, &j.RecruiterID, &j.PostedDate, &j.Deadline, &j.IsActive, &j.IsClosed,
			&j.CreatedAt, &j.UpdatedAt,
		)
		return out, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan applications: %w", err)
	}
	return nonNil(apps), nil
}

func (r *ApplicationRepo) CountByJob(ctx context.Context, jobID uuid.UUID) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE job_id = $1`, jobID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count applications for job %s: %w", jobID, err)
	}
	return n, nil
}

// UpdateStatus sets the status and, when notes is non-nil, the notes.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, notes *string) (*models.Application, error) {
	var set setClause
	set.add("status", status)
	if notes != nil {
		set.add("notes", *notes)
	}
	query, args := set.build("applications", id, applicationColumns)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapWriteError(err, "update application status")
	}
	app, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Application])
	if err != nil {
		return nil, mapReadError(err, "update application status")
	}
	return app, nil
}

func (r *ApplicationRepo) DeleteByJob(ctx context.Context, jobID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM applications WHERE job_id = $1`, jobID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete applications for job %s: %w", jobID, err)
	}
	return tag.RowsAffected(), nil
}

func (r *ApplicationRepo) ExistsForRecruiter(ctx context.Context, applicantID, recruiterID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM applications a JOIN jobs j ON j.id = a.job_id
			WHERE a.applicant_id = $1 AND j.recruiter_id = $2
		)`, applicantID, recruiterID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check applicant relationship: %w", err)
	}
	return exists, nil
}
