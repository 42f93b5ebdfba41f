// internal/transport/dto/job_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Job Request DTOs ---

// CreateJobRequest defines the structure for creating a new job posting.
type CreateJobRequest struct {
	Title            string   `json:"title" validate:"required,max=200"`
	Description      string   `json:"description" validate:"required"`
	Company          string   `json:"company" validate:"required,max=200"`
	Location         string   `json:"location" validate:"required,max=200"`
	JobType          string   `json:"jobType" validate:"required,job_type"`
	Salary           string   `json:"salary" validate:"max=100"`
	Requirements     []string `json:"requirements" validate:"dive,required"`
	Responsibilities []string `json:"responsibilities" validate:"dive,required"`
	Skills           []string `json:"skills" validate:"dive,required"`
	Deadline         *Date    `json:"deadline"`
}

// UpdateJobRequest is a partial update. Omitted fields are left unchanged.
type UpdateJobRequest struct {
	Title            *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Description      *string   `json:"description" validate:"omitempty,min=1"`
	Company          *string   `json:"company" validate:"omitempty,min=1,max=200"`
	Location         *string   `json:"location" validate:"omitempty,min=1,max=200"`
	JobType          *string   `json:"jobType" validate:"omitempty,job_type"`
	Salary           *string   `json:"salary" validate:"omitempty,max=100"`
	Requirements     *[]string `json:"requirements" validate:"omitempty,dive,required"`
	Responsibilities *[]string `json:"responsibilities" validate:"omitempty,dive,required"`
	Skills           *[]string `json:"skills" validate:"omitempty,dive,required"`
	Deadline         *Date     `json:"deadline"`
}

// ReopenJobRequest carries the new deadline, which must lie in the future.
type ReopenJobRequest struct {
	Deadline *Date `json:"deadline" validate:"required"`
}

// ListJobsRequest defines parameters for listing open jobs.
type ListJobsRequest struct {
	Limit    int    `form:"limit,default=20" validate:"gte=0,lte=100"`
	Offset   int    `form:"offset,default=0" validate:"gte=0"`
	JobType  string `form:"jobType" validate:"omitempty,job_type"`
	Location string `form:"location" validate:"max=200"`
}

// --- Job Response DTOs ---

// JobResponse defines the standard job data returned to the client.
type JobResponse struct {
	ID               uuid.UUID             `json:"id"`
	Title            string                `json:"title"`
	Description      string                `json:"description"`
	Company          string                `json:"company"`
	Location         string                `json:"location"`
	JobType          string                `json:"jobType"`
	Salary           string                `json:"salary"`
	Requirements     []string              `json:"requirements"`
	Responsibilities []string              `json:"responsibilities"`
	Skills           []string              `json:"skills"`
	RecruiterID      uuid.UUID             `json:"recruiter"`
	PostedDate       time.Time             `json:"postedDate"`
	Deadline         *time.Time            `json:"deadline,omitempty"`
	IsActive         bool                  `json:"isActive"`
	IsClosed         bool                  `json:"isClosed"`
	Status           string                `json:"status"`
	ApplicationCount *int                  `json:"applicationCount,omitempty"`
	Applications     []ApplicationResponse `json:"applications,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
}

// JobSummaryResponse is the job data attached to a seeker's application list.
type JobSummaryResponse struct {
	ID       uuid.UUID  `json:"id"`
	Title    string     `json:"title"`
	Company  string     `json:"company"`
	Location string     `json:"location"`
	JobType  string     `json:"jobType"`
	Salary   string     `json:"salary"`
	Deadline *time.Time `json:"deadline,omitempty"`
	Status   string     `json:"status"`
}
