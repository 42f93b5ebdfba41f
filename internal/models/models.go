package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// scanString accepts the string or []byte forms drivers hand to sql.Scanner.
func scanString(value interface{}, typeName string) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("failed to scan %s: value is not string or []byte", typeName)
	}
}

// --- Role Enum ---

// Role is the closed set of account kinds. It never changes after signup.
type Role string

const (
	RoleJobSeeker Role = "JobSeeker"
	RoleRecruiter Role = "Recruiter"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleJobSeeker, RoleRecruiter:
		return true
	default:
		return false
	}
}

// ParseRole converts s to a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("invalid role value: %s", s)
	}
	return r, nil
}

// Scan implements the sql.Scanner interface for Role
func (r *Role) Scan(value interface{}) error {
	s, err := scanString(value, "Role")
	if err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value implements the driver.Valuer interface for Role
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// --- Job Type Enum ---
type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeInternship JobType = "Internship"
	JobTypeRemote     JobType = "Remote"
)

// JobTypes lists every accepted job type in display order.
var JobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeRemote}

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeRemote:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for JobType
func (t *JobType) Scan(value interface{}) error {
	s, err := scanString(value, "JobType")
	if err != nil {
		return err
	}
	v := JobType(s)
	if !v.Valid() {
		return fmt.Errorf("invalid JobType value: %s", s)
	}
	*t = v
	return nil
}

// Value implements the driver.Valuer interface for JobType
func (t JobType) Value() (driver.Value, error) {
	return string(t), nil
}

// --- Application Status Enum ---
type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "Pending"
	ApplicationStatusReviewing   ApplicationStatus = "Reviewing"
	ApplicationStatusShortlisted ApplicationStatus = "Shortlisted"
	ApplicationStatusRejected    ApplicationStatus = "Rejected"
	ApplicationStatusHired       ApplicationStatus = "Hired"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewing, ApplicationStatusShortlisted,
		ApplicationStatusRejected, ApplicationStatusHired:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for ApplicationStatus
func (s *ApplicationStatus) Scan(value interface{}) error {
	str, err := scanString(value, "ApplicationStatus")
	if err != nil {
		return err
	}
	v := ApplicationStatus(str)
	if !v.Valid() {
		return fmt.Errorf("invalid ApplicationStatus value: %s", str)
	}
	*s = v
	return nil
}

// Value implements the driver.Valuer interface for ApplicationStatus
func (s ApplicationStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// --- Gender Enum ---
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// --- Derived Job Status ---

// JobStatus is computed from a Job and is never stored.
type JobStatus string

const (
	JobStatusActive        JobStatus = "Active"
	JobStatusDeadlineEnded JobStatus = "Deadline Ended"
	JobStatusClosed        JobStatus = "Closed"
)

// User is an identity record: a job seeker or a recruiter account.
type User struct {
	ID            uuid.UUID `db:"id"`
	Email         string    `db:"email"`
	PasswordHash  string    `db:"password_hash"`
	Role          Role      `db:"account_type"`
	FirstName     string    `db:"first_name"`
	LastName      string    `db:"last_name"`
	CompanyName   string    `db:"company_name"`
	ContactNumber string    `db:"contact_number"`
	ProfilePhoto  string    `db:"profile_photo"`
	CompanyLogo   string    `db:"company_logo"`
	ProfileID     uuid.UUID `db:"profile_id"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// DisplayName is the name used in greetings and summaries.
func (u *User) DisplayName() string {
	switch u.Role {
	case RoleRecruiter:
		return u.CompanyName
	case RoleJobSeeker:
		return joinName(u.FirstName, u.LastName)
	default:
		return u.Email
	}
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}

type SocialProfiles struct {
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
}

type Experience struct {
	Company          string     `json:"company"`
	Position         string     `json:"position"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	CurrentlyWorking bool       `json:"currentlyWorking"`
	Description      string     `json:"description"`
}

type Education struct {
	Institution       string     `json:"institution"`
	Degree            string     `json:"degree"`
	Field             string     `json:"field"`
	StartDate         *time.Time `json:"startDate,omitempty"`
	EndDate           *time.Time `json:"endDate,omitempty"`
	CurrentlyStudying bool       `json:"currentlyStudying"`
}

// Profile holds the extensible attributes owned by exactly one User.
type Profile struct {
	ID                 uuid.UUID      `db:"id"`
	Bio                string         `db:"bio"`
	Location           string         `db:"location"`
	Address            string         `db:"address"`
	Gender             Gender         `db:"gender"`
	DateOfBirth        *time.Time     `db:"date_of_birth"`
	Skills             []string       `db:"skills"`
	Experience         []Experience   `db:"experience"`
	Education          []Education    `db:"education"`
	CompanyDescription string         `db:"company_description"`
	Industry           string         `db:"industry"`
	CompanySize        string         `db:"company_size"`
	FoundedYear        *int           `db:"founded_year"`
	Website            string         `db:"website"`
	SocialProfiles     SocialProfiles `db:"social_profiles"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

// Job is a posting owned by one recruiter.
type Job struct {
	ID               uuid.UUID  `db:"id"`
	Title            string     `db:"title"`
	Description      string     `db:"description"`
	Company          string     `db:"company"`
	Location         string     `db:"location"`
	JobType          JobType    `db:"job_type"`
	Salary           string     `db:"salary"`
	Requirements     []string   `db:"requirements"`
	Responsibilities []string   `db:"responsibilities"`
	Skills           []string   `db:"skills"`
	RecruiterID      uuid.UUID  `db:"recruiter_id"`
	PostedDate       time.Time  `db:"posted_date"`
	Deadline         *time.Time `db:"deadline"`
	IsActive         bool       `db:"is_active"`
	IsClosed         bool       `db:"is_closed"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

// Status derives the job status at now. Every acceptance check goes through it.
func (j *Job) Status(now time.Time) JobStatus {
	if j.IsClosed {
		return JobStatusClosed
	}
	if j.Deadline != nil && j.Deadline.Before(now) {
		return JobStatusDeadlineEnded
	}
	return JobStatusActive
}

// AcceptsApplications reports whether new applications may be submitted at now.
func (j *Job) AcceptsApplications(now time.Time) bool {
	return j.Status(now) == JobStatusActive
}

// Application is a seeker's submission against one job.
type Application struct {
	ID          uuid.UUID         `db:"id"`
	JobID       uuid.UUID         `db:"job_id"`
	ApplicantID uuid.UUID         `db:"applicant_id"`
	ResumeURL   string            `db:"resume_url"`
	CoverLetter string            `db:"cover_letter"`
	Status      ApplicationStatus `db:"status"`
	Notes       string            `db:"notes"`
	AppliedAt   time.Time         `db:"applied_at"`
	UpdatedAt   time.Time         `db:"updated_at"`
}

// ApplicantSummary is the slice of a User shown to recruiters next to an application.
type ApplicantSummary struct {
	ID            uuid.UUID
	FirstName     string
	LastName      string
	Email         string
	ContactNumber string
	ProfilePhoto  string
}

// ApplicationWithApplicant pairs an application with its applicant summary.
type ApplicationWithApplicant struct {
	Application
	Applicant ApplicantSummary
}

// ApplicationWithJob pairs an application with the job it targets.
type ApplicationWithJob struct {
	Application
	Job Job
}

// SavedJob is a seeker bookmark.
type SavedJob struct {
	UserID  uuid.UUID `db:"user_id"`
	JobID   uuid.UUID `db:"job_id"`
	SavedAt time.Time `db:"saved_at"`
}
