package services_test

import (
	"errors"
	"testing"
	"time"

	"jobportal/internal/models"
	"jobportal/internal/services"
	"jobportal/internal/transport/dto"
	"jobportal/internal/uploads"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProfileService_GetProfile(t *testing.T) {
	f := newFixture(t)
	user, seeker := f.addUser(t, models.RoleJobSeeker, "Sam")

	view, err := f.profiles.GetProfile(f.ctx, seeker)
	require.NoError(t, err)
	assert.Equal(t, user.ID, view.User.ID)
	assert.Equal(t, user.ProfileID, view.Profile.ID)

	_, err = f.profiles.GetProfile(f.ctx, nil)
	assert.ErrorIs(t, err, services.ErrAuthentication)
}

func TestProfileService_UpdateProfile_Seeker(t *testing.T) {
	f := newFixture(t)
	_, seeker := f.addUser(t, models.RoleJobSeeker, "Sam")
	dob := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)

	view, err := f.profiles.UpdateProfile(f.ctx, seeker, &dto.UpdateProfileRequest{
		Bio:            ptrString("Gopher"),
		FirstName:      ptrString("Samuel"),
		Gender:         ptrString("Other"),
		DateOfBirth:    &dto.Date{Time: dob},
		Skills:         &[]string{"go", "postgres"},
		Experience:     &[]dto.ExperienceDTO{{Company: "Initech", Position: "Engineer", CurrentlyWorking: true}},
		SocialProfiles: &dto.SocialProfilesPatch{LinkedIn: ptrString("https://linkedin.com/in/sam")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Gopher", view.Profile.Bio)
	assert.Equal(t, "Samuel", view.User.FirstName)
	assert.Equal(t, models.GenderOther, view.Profile.Gender)
	require.NotNil(t, view.Profile.DateOfBirth)
	assert.True(t, view.Profile.DateOfBirth.Equal(dob))
	assert.Equal(t, []string{"go", "postgres"}, view.Profile.Skills)
	require.Len(t, view.Profile.Experience, 1)
	assert.Equal(t, "Initech", view.Profile.Experience[0].Company)

	// Social links merge key by key; untouched fields stay.
	view, err = f.profiles.UpdateProfile(f.ctx, seeker, &dto.UpdateProfileRequest{
		SocialProfiles: &dto.SocialProfilesPatch{GitHub: ptrString("https://github.com/sam")},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://linkedin.com/in/sam", view.Profile.SocialProfiles.LinkedIn)
	assert.Equal(t, "https://github.com/sam", view.Profile.SocialProfiles.GitHub)
	assert.Equal(t, "Gopher", view.Profile.Bio)
}

func TestProfileService_UpdateProfile_RejectsOtherRoleFields(t *testing.T) {
	f := newFixture(t)
	_, seeker := f.addUser(t, models.RoleJobSeeker, "Sam")
	_, recruiter := f.addUser(t, models.RoleRecruiter, "Acme")

	_, err := f.profiles.UpdateProfile(f.ctx, seeker, &dto.UpdateProfileRequest{
		CompanyDescription: ptrString("We build things"),
	})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "companyDescription")

	_, err = f.profiles.UpdateProfile(f.ctx, recruiter, &dto.UpdateProfileRequest{Skills: &[]string{"go"}})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "skills")
}

func TestProfileService_UpdateProfile_Recruiter(t *testing.T) {
	f := newFixture(t)
	_, recruiter := f.addUser(t, models.RoleRecruiter, "Acme")

	view, err := f.profiles.UpdateProfile(f.ctx, recruiter, &dto.UpdateProfileRequest{
		CompanyName:   ptrString("Acme Corp"),
		Industry:      ptrString("Software"),
		FoundedYear:   func() *int { y := 1999; return &y }(),
		Website:       ptrString("https://acme.test"),
		ContactNumber: ptrString("+49 30 1234"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", view.User.CompanyName)
	assert.Equal(t, "+49 30 1234", view.User.ContactNumber)
	assert.Equal(t, "Software", view.Profile.Industry)
	require.NotNil(t, view.Profile.FoundedYear)
	assert.Equal(t, 1999, *view.Profile.FoundedYear)

	_, err = f.profiles.UpdateProfile(f.ctx, recruiter, &dto.UpdateProfileRequest{Website: ptrString("not a url")})
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestProfileService_UploadPhoto(t *testing.T) {
	f := newFixture(t)
	_, seeker := f.addUser(t, models.RoleJobSeeker, "Sam")
	f.files.On("Put", mock.Anything, mock.MatchedBy(func(p *uploads.Prepared) bool {
		return p.Kind == uploads.KindProfilePhoto && p.ContentType == "image/png"
	})).Return("https://files.test/me.png", nil).Once()

	user, err := f.profiles.UploadPhoto(f.ctx, seeker, image())

	require.NoError(t, err)
	assert.Equal(t, "https://files.test/me.png", user.ProfilePhoto)
	f.files.AssertExpectations(t)
}

func TestProfileService_UploadPhoto_RejectsPDF(t *testing.T) {
	f := newFixture(t)
	_, seeker := f.addUser(t, models.RoleJobSeeker, "Sam")

	_, err := f.profiles.UploadPhoto(f.ctx, seeker, resume())

	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "only JPG, JPEG, and PNG files are allowed", verr.Fields[services.ProfilePhotoField])
	f.files.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestProfileService_UploadLogo(t *testing.T) {
	f := newFixture(t)
	_, seeker := f.addUser(t, models.RoleJobSeeker, "Sam")
	_, recruiter := f.addUser(t, models.RoleRecruiter, "Acme")

	_, err := f.profiles.UploadLogo(f.ctx, seeker, image())
	assert.ErrorIs(t, err, services.ErrForbidden)

	f.files.On("Put", mock.Anything, mock.Anything).Return("", errors.New("cloud unavailable")).Once()
	_, err = f.profiles.UploadLogo(f.ctx, recruiter, image())
	assert.ErrorIs(t, err, services.ErrDependency)

	f.files.On("Put", mock.Anything, mock.Anything).Return("https://files.test/logo.png", nil).Once()
	user, err := f.profiles.UploadLogo(f.ctx, recruiter, image())
	require.NoError(t, err)
	assert.Equal(t, "https://files.test/logo.png", user.CompanyLogo)
}
