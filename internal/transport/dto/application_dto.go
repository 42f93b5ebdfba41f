package dto

import (
	"time"

	"github.com/google/uuid"
)

// SubmitApplicationRequest is the non-file part of the multipart apply form.
type SubmitApplicationRequest struct {
	CoverLetter string `form:"coverLetter" validate:"max=10000"`
}

// UpdateApplicationStatusRequest changes status and optionally notes.
type UpdateApplicationStatusRequest struct {
	Status string  `json:"status" validate:"required,application_status"`
	Notes  *string `json:"notes" validate:"omitempty,max=5000"`
}

// ApplicantSummaryResponse is the applicant data a recruiter sees next to an application.
type ApplicantSummaryResponse struct {
	ID            uuid.UUID `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	ContactNumber string    `json:"contactNumber,omitempty"`
	ProfilePhoto  string    `json:"profilePhoto,omitempty"`
}

// ApplicationResponse defines the application data returned to the client.
type ApplicationResponse struct {
	ID          uuid.UUID                 `json:"id"`
	JobID       uuid.UUID                 `json:"jobId"`
	ApplicantID uuid.UUID                 `json:"applicantId"`
	Resume      string                    `json:"resume"`
	CoverLetter string                    `json:"coverLetter"`
	Status      string                    `json:"status"`
	Notes       string                    `json:"notes,omitempty"`
	AppliedDate time.Time                 `json:"appliedDate"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
	Applicant   *ApplicantSummaryResponse `json:"applicant,omitempty"`
	Job         *JobSummaryResponse       `json:"job,omitempty"`
}
