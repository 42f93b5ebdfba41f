package handlers

import (
	"errors"
	"net/http"

	"jobportal/internal/models"
	"jobportal/internal/services"
	"jobportal/internal/transport/dto"
	"jobportal/internal/uploads"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// bindJSON decodes the body. It reports false after writing a 400.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondBadRequest(c, "Invalid request body", map[string]string{"body": err.Error()})
		return false
	}
	return true
}

// pathID parses a UUID path parameter. It reports false after writing a 400.
func pathID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		respondBadRequest(c, "Invalid "+param, map[string]string{param: "must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

// formFile opens an optional multipart file. A missing file yields (nil, noop, nil) so the
// service decides whether it was required.
func formFile(c *gin.Context, field string) (*uploads.File, func(), error) {
	noop := func() {}
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	return &uploads.File{Name: fh.Filename, Size: fh.Size, Content: f}, func() { _ = f.Close() }, nil
}

// MapUserToResponse converts a models.User to a dto.UserResponse
func MapUserToResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		CompanyName:   u.CompanyName,
		Email:         u.Email,
		AccountType:   string(u.Role),
		ContactNumber: u.ContactNumber,
		ProfilePhoto:  u.ProfilePhoto,
		CompanyLogo:   u.CompanyLogo,
		CreatedAt:     u.CreatedAt,
	}
}

// MapJobToResponse converts a services.JobView to a dto.JobResponse
func MapJobToResponse(v *services.JobView) dto.JobResponse {
	resp := dto.JobResponse{
		ID:               v.ID,
		Title:            v.Title,
		Description:      v.Description,
		Company:          v.Company,
		Location:         v.Location,
		JobType:          string(v.JobType),
		Salary:           v.Salary,
		Requirements:     nonNil(v.Requirements),
		Responsibilities: nonNil(v.Responsibilities),
		Skills:           nonNil(v.Skills),
		RecruiterID:      v.RecruiterID,
		PostedDate:       v.PostedDate,
		Deadline:         v.Deadline,
		IsActive:         v.IsActive,
		IsClosed:         v.IsClosed,
		Status:           string(v.Status),
		ApplicationCount: v.ApplicationCount,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
	if v.Applications != nil {
		resp.Applications = MapApplicationsToResponse(v.Applications)
	}
	return resp
}

func MapJobsToResponse(views []services.JobView) []dto.JobResponse {
	out := make([]dto.JobResponse, 0, len(views))
	for i := range views {
		out = append(out, MapJobToResponse(&views[i]))
	}
	return out
}

func mapApplication(a *models.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		ApplicantID: a.ApplicantID,
		Resume:      a.ResumeURL,
		CoverLetter: a.CoverLetter,
		Status:      string(a.Status),
		Notes:       a.Notes,
		AppliedDate: a.AppliedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// MapApplicationToResponse converts a models.Application to a dto.ApplicationResponse
func MapApplicationToResponse(a *models.Application) dto.ApplicationResponse {
	return mapApplication(a)
}

// MapApplicationsToResponse attaches the applicant summary a recruiter sees.
func MapApplicationsToResponse(apps []models.ApplicationWithApplicant) []dto.ApplicationResponse {
	out := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		resp := mapApplication(&apps[i].Application)
		s := apps[i].Applicant
		resp.Applicant = &dto.ApplicantSummaryResponse{
			ID:            s.ID,
			FirstName:     s.FirstName,
			LastName:      s.LastName,
			Email:         s.Email,
			ContactNumber: s.ContactNumber,
			ProfilePhoto:  s.ProfilePhoto,
		}
		out = append(out, resp)
	}
	return out
}

// MapSeekerApplicationsToResponse attaches the job summary a seeker sees.
func MapSeekerApplicationsToResponse(apps []services.SeekerApplication) []dto.ApplicationResponse {
	out := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		resp := mapApplication(&apps[i].Application)
		j := apps[i].Job
		resp.Job = &dto.JobSummaryResponse{
			ID:       j.ID,
			Title:    j.Title,
			Company:  j.Company,
			Location: j.Location,
			JobType:  string(j.JobType),
			Salary:   j.Salary,
			Deadline: j.Deadline,
			Status:   string(apps[i].JobStatus),
		}
		out = append(out, resp)
	}
	return out
}

// MapProfileToResponse converts a models.Profile to a dto.ProfileResponse
func MapProfileToResponse(p *models.Profile) dto.ProfileResponse {
	resp := dto.ProfileResponse{
		ID:                 p.ID,
		Bio:                p.Bio,
		Location:           p.Location,
		Address:            p.Address,
		Gender:             string(p.Gender),
		DateOfBirth:        p.DateOfBirth,
		Skills:             nonNil(p.Skills),
		Experience:         make([]dto.ExperienceResponse, 0, len(p.Experience)),
		Education:          make([]dto.EducationResponse, 0, len(p.Education)),
		CompanyDescription: p.CompanyDescription,
		Industry:           p.Industry,
		CompanySize:        p.CompanySize,
		FoundedYear:        p.FoundedYear,
		Website:            p.Website,
		SocialProfiles: dto.SocialProfilesResponse{
			LinkedIn:  p.SocialProfiles.LinkedIn,
			GitHub:    p.SocialProfiles.GitHub,
			Portfolio: p.SocialProfiles.Portfolio,
		},
	}
	for _, e := range p.Experience {
		resp.Experience = append(resp.Experience, dto.ExperienceResponse(e))
	}
	for _, e := range p.Education {
		resp.Education = append(resp.Education, dto.EducationResponse(e))
	}
	return resp
}

func profilePayload(v *services.ProfileView) gin.H {
	return gin.H{
		"user":    MapUserToResponse(&v.User),
		"profile": MapProfileToResponse(&v.Profile),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
