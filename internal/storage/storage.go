package storage

import (
	"context"
	"time"

	"jobportal/internal/models"

	"github.com/google/uuid"
)

// UserRepository defines the interface for identity records.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, id uuid.UUID, update UserUpdate) (*models.User, error)
}

// UserUpdate lists the mutable identity fields. Nil means unchanged.
type UserUpdate struct {
	FirstName     *string
	LastName      *string
	CompanyName   *string
	ContactNumber *string
	ProfilePhoto  *string
	CompanyLogo   *string
}

// ProfileRepository defines the interface for profile records.
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	// Update replaces every attribute of the stored profile with profile's.
	Update(ctx context.Context, profile *models.Profile) (*models.Profile, error)
}

// JobRepository defines the interface for job postings.
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) (*models.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	Update(ctx context.Context, id uuid.UUID, update JobUpdate) (*models.Job, error)
	ListOpen(ctx context.Context, filter JobFilter) ([]models.Job, error)
	ListByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]models.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// JobUpdate lists the mutable job fields. Nil means unchanged.
type JobUpdate struct {
	Title            *string
	Description      *string
	Company          *string
	Location         *string
	JobType          *models.JobType
	Salary           *string
	Requirements     *[]string
	Responsibilities *[]string
	Skills           *[]string
	Deadline         *time.Time
	IsClosed         *bool
}

// Empty reports whether the update changes nothing.
func (u JobUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Company == nil && u.Location == nil &&
		u.JobType == nil && u.Salary == nil && u.Requirements == nil && u.Responsibilities == nil &&
		u.Skills == nil && u.Deadline == nil && u.IsClosed == nil
}

// JobFilter narrows ListOpen. Only jobs whose derived status is Active at Now are returned.
type JobFilter struct {
	Now      time.Time
	JobType  *models.JobType
	Location string
	Limit    int
	Offset   int
}

// ApplicationRepository defines the interface for applications.
type ApplicationRepository interface {
	// Create fails with ErrConflict when the (job, applicant) pair already exists.
	Create(ctx context.Context, app *models.Application) (*models.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	GetByJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (*models.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.ApplicationWithApplicant, error)
	ListByJobIDs(ctx context.Context, jobIDs []uuid.UUID) ([]models.ApplicationWithApplicant, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]models.ApplicationWithJob, error)
	CountByJob(ctx context.Context, jobID uuid.UUID) (int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, notes *string) (*models.Application, error)
	DeleteByJob(ctx context.Context, jobID uuid.UUID) (int64, error)
	// ExistsForRecruiter reports whether applicantID applied to any job owned by recruiterID.
	ExistsForRecruiter(ctx context.Context, applicantID, recruiterID uuid.UUID) (bool, error)
}

// SavedJobRepository defines the interface for seeker bookmarks.
type SavedJobRepository interface {
	// Save is idempotent.
	Save(ctx context.Context, userID, jobID uuid.UUID) error
	Remove(ctx context.Context, userID, jobID uuid.UUID) error
	ListJobs(ctx context.Context, userID uuid.UUID) ([]models.Job, error)
	DeleteByJob(ctx context.Context, jobID uuid.UUID) error
}

// Store groups the repositories that share one database.
type Store interface {
	Users() UserRepository
	Profiles() ProfileRepository
	Jobs() JobRepository
	Applications() ApplicationRepository
	SavedJobs() SavedJobRepository
	// WithTx runs fn against a transactional Store, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}

// OTPStore keeps the latest one-time password per email until it expires.
type OTPStore interface {
	Save(ctx context.Context, email, code string, ttl time.Duration) error
	// Get returns ErrNotFound for an absent or expired code.
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}
