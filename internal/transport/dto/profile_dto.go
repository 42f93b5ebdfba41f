package dto

import (
	"time"

	"github.com/google/uuid"
)

type ExperienceDTO struct {
	Company          string `json:"company" validate:"required,max=200"`
	Position         string `json:"position" validate:"required,max=200"`
	StartDate        *Date  `json:"startDate"`
	EndDate          *Date  `json:"endDate"`
	CurrentlyWorking bool   `json:"currentlyWorking"`
	Description      string `json:"description" validate:"max=5000"`
}

type EducationDTO struct {
	Institution       string `json:"institution" validate:"required,max=200"`
	Degree            string `json:"degree" validate:"max=200"`
	Field             string `json:"field" validate:"max=200"`
	StartDate         *Date  `json:"startDate"`
	EndDate           *Date  `json:"endDate"`
	CurrentlyStudying bool   `json:"currentlyStudying"`
}

// SocialProfilesPatch is merged key by key into the stored links.
type SocialProfilesPatch struct {
	LinkedIn  *string `json:"linkedin" validate:"omitempty,url"`
	GitHub    *string `json:"github" validate:"omitempty,url"`
	Portfolio *string `json:"portfolio" validate:"omitempty,url"`
}

// UpdateProfileRequest is a partial update of the caller's identity and profile.
type UpdateProfileRequest struct {
	// shared
	Bio            *string              `json:"bio" validate:"omitempty,max=2000"`
	Location       *string              `json:"location" validate:"omitempty,max=200"`
	Address        *string              `json:"address" validate:"omitempty,max=500"`
	ContactNumber  *string              `json:"contactNumber" validate:"omitempty,max=30"`
	SocialProfiles *SocialProfilesPatch `json:"socialProfiles"`

	// job seekers
	FirstName   *string          `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName    *string          `json:"lastName" validate:"omitempty,min=1,max=100"`
	Gender      *string          `json:"gender" validate:"omitempty,gender"`
	DateOfBirth *Date            `json:"dateOfBirth"`
	Skills      *[]string        `json:"skills" validate:"omitempty,dive,required"`
	Experience  *[]ExperienceDTO `json:"experience" validate:"omitempty,dive"`
	Education   *[]EducationDTO  `json:"education" validate:"omitempty,dive"`

	// recruiters
	CompanyName        *string `json:"companyName" validate:"omitempty,min=1,max=200"`
	CompanyDescription *string `json:"companyDescription" validate:"omitempty,max=5000"`
	Industry           *string `json:"industry" validate:"omitempty,max=200"`
	CompanySize        *string `json:"companySize" validate:"omitempty,max=50"`
	FoundedYear        *int    `json:"foundedYear" validate:"omitempty,gte=1800,lte=2100"`
	Website            *string `json:"website" validate:"omitempty,url"`
}

type SocialProfilesResponse struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

type ExperienceResponse struct {
	Company          string     `json:"company"`
	Position         string     `json:"position"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	CurrentlyWorking bool       `json:"currentlyWorking"`
	Description      string     `json:"description,omitempty"`
}

type EducationResponse struct {
	Institution       string     `json:"institution"`
	Degree            string     `json:"degree,omitempty"`
	Field             string     `json:"field,omitempty"`
	StartDate         *time.Time `json:"startDate,omitempty"`
	EndDate           *time.Time `json:"endDate,omitempty"`
	CurrentlyStudying bool       `json:"currentlyStudying"`
}

// ProfileResponse renders a profile. Role-specific fields are empty for the other role.
type ProfileResponse struct {
	ID                 uuid.UUID              `json:"id"`
	Bio                string                 `json:"bio,omitempty"`
	Location           string                 `json:"location,omitempty"`
	Address            string                 `json:"address,omitempty"`
	Gender             string                 `json:"gender,omitempty"`
	DateOfBirth        *time.Time             `json:"dateOfBirth,omitempty"`
	Skills             []string               `json:"skills"`
	Experience         []ExperienceResponse   `json:"experience"`
	Education          []EducationResponse    `json:"education"`
	CompanyDescription string                 `json:"companyDescription,omitempty"`
	Industry           string                 `json:"industry,omitempty"`
	CompanySize        string                 `json:"companySize,omitempty"`
	FoundedYear        *int                   `json:"foundedYear,omitempty"`
	Website            string                 `json:"website,omitempty"`
	SocialProfiles     SocialProfilesResponse `json:"socialProfiles"`
}
