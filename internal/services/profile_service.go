package services

import (
	"context"
	"strings"

	"jobportal/internal/access"
	"jobportal/internal/logger"
	"jobportal/internal/models"
	"jobportal/internal/storage"
	"jobportal/internal/transport/dto"
	"jobportal/internal/uploads"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Multipart fields for profile images.
const (
	ProfilePhotoField = "profilePhoto"
	CompanyLogoField  = "companyLogo"
)

type profileService struct {
	store     storage.Store
	files     uploads.Storage
	validator *validator.Validate
	log       *zap.Logger
}

// NewProfileService creates a new instance of ProfileService.
func NewProfileService(d Deps) ProfileService {
	return &profileService{
		store:     d.Store,
		files:     d.Files,
		validator: d.Validator,
		log:       d.logger().Named("profile"),
	}
}

func (s *profileService) load(ctx context.Context, p *access.Principal) (*models.User, *models.Profile, error) {
	if !p.Authenticated() {
		return nil, nil, authorize(access.ErrUnauthenticated)
	}
	user, err := s.store.Users().GetByID(ctx, p.UserID)
	if err != nil {
		return nil, nil, mapRepoError(err, "User")
	}
	profile, err := s.store.Profiles().GetByID(ctx, user.ProfileID)
	if err != nil {
		return nil, nil, mapRepoError(err, "Profile")
	}
	return user, profile, nil
}

func (s *profileService) GetProfile(ctx context.Context, p *access.Principal) (*ProfileView, error) {
	user, profile, err := s.load(ctx, p)
	if err != nil {
		return nil, err
	}
	return &ProfileView{User: *user, Profile: *profile}, nil
}

// foreignFields returns the patch fields set in req that belong to the other role.
func foreignFields(role models.Role, req *dto.UpdateProfileRequest) []string {
	var set []string
	mark := func(name string, present bool) {
		if present {
			set = append(set, name)
		}
	}
	switch role {
	case models.RoleJobSeeker:
		mark("companyName", req.CompanyName != nil)
		mark("companyDescription", req.CompanyDescription != nil)
		mark("industry", req.Industry != nil)
		mark("companySize", req.CompanySize != nil)
		mark("foundedYear", req.FoundedYear != nil)
		mark("website", req.Website != nil)
	case models.RoleRecruiter:
		mark("firstName", req.FirstName != nil)
		mark("lastName", req.LastName != nil)
		mark("gender", req.Gender != nil)
		mark("dateOfBirth", req.DateOfBirth != nil)
		mark("skills", req.Skills != nil)
		mark("experience", req.Experience != nil)
		mark("education", req.Education != nil)
	}
	return set
}

func (s *profileService) UpdateProfile(ctx context.Context, p *access.Principal, req *dto.UpdateProfileRequest) (*ProfileView, error) {
	user, profile, err := s.load(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fromValidator(err)
	}
	if foreign := foreignFields(user.Role, req); len(foreign) > 0 {
		fields := make(map[string]string, len(foreign))
		for _, f := range foreign {
			fields[f] = "not allowed for " + access.RoleLabel(user.Role) + " accounts"
		}
		return nil, &ValidationError{Message: "Validation failed", Fields: fields}
	}

	applyProfilePatch(profile, req)
	userUpdate := storage.UserUpdate{
		FirstName:     trimmed(req.FirstName),
		LastName:      trimmed(req.LastName),
		CompanyName:   trimmed(req.CompanyName),
		ContactNumber: trimmed(req.ContactNumber),
	}

	view := &ProfileView{}
	err = s.store.WithTx(ctx, func(tx storage.Store) error {
		updated, err := tx.Profiles().Update(ctx, profile)
		if err != nil {
			return err
		}
		view.Profile = *updated
		u, err := tx.Users().Update(ctx, user.ID, userUpdate)
		if err != nil {
			return err
		}
		view.User = *u
		return nil
	})
	if err != nil {
		logger.WithRequestID(ctx, s.log).Error("updating profile", zap.Stringer("user_id", user.ID), zap.Error(err))
		return nil, mapRepoError(err, "Profile")
	}
	return view, nil
}

func applyProfilePatch(profile *models.Profile, req *dto.UpdateProfileRequest) {
	setString(&profile.Bio, req.Bio)
	setString(&profile.Location, req.Location)
	setString(&profile.Address, req.Address)
	if sp := req.SocialProfiles; sp != nil {
		setString(&profile.SocialProfiles.LinkedIn, sp.LinkedIn)
		setString(&profile.SocialProfiles.GitHub, sp.GitHub)
		setString(&profile.SocialProfiles.Portfolio, sp.Portfolio)
	}

	if req.Gender != nil {
		profile.Gender = models.Gender(*req.Gender)
	}
	if req.DateOfBirth != nil {
		profile.DateOfBirth = req.DateOfBirth.TimePtr()
	}
	if req.Skills != nil {
		profile.Skills = nonNil(*req.Skills)
	}
	if req.Experience != nil {
		exp := make([]models.Experience, 0, len(*req.Experience))
		for _, e := range *req.Experience {
			exp = append(exp, models.Experience{
				Company:          strings.TrimSpace(e.Company),
				Position:         strings.TrimSpace(e.Position),
				StartDate:        e.StartDate.TimePtr(),
				EndDate:          e.EndDate.TimePtr(),
				CurrentlyWorking: e.CurrentlyWorking,
				Description:      e.Description,
			})
		}
		profile.Experience = exp
	}
	if req.Education != nil {
		edu := make([]models.Education, 0, len(*req.Education))
		for _, e := range *req.Education {
			edu = append(edu, models.Education{
				Institution:       strings.TrimSpace(e.Institution),
				Degree:            e.Degree,
				Field:             e.Field,
				StartDate:         e.StartDate.TimePtr(),
				EndDate:           e.EndDate.TimePtr(),
				CurrentlyStudying: e.CurrentlyStudying,
			})
		}
		profile.Education = edu
	}

	setString(&profile.CompanyDescription, req.CompanyDescription)
	setString(&profile.Industry, req.Industry)
	setString(&profile.CompanySize, req.CompanySize)
	setString(&profile.Website, req.Website)
	if req.FoundedYear != nil {
		profile.FoundedYear = ptr(*req.FoundedYear)
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func (s *profileService) UploadPhoto(ctx context.Context, p *access.Principal, file *uploads.File) (*models.User, error) {
	if !p.Authenticated() {
		return nil, authorize(access.ErrUnauthenticated)
	}
	url, err := s.upload(ctx, uploads.KindProfilePhoto, ProfilePhotoField, file)
	if err != nil {
		return nil, err
	}
	user, err := s.store.Users().Update(ctx, p.UserID, storage.UserUpdate{ProfilePhoto: &url})
	if err != nil {
		return nil, mapRepoError(err, "User")
	}
	return user, nil
}

func (s *profileService) UploadLogo(ctx context.Context, p *access.Principal, file *uploads.File) (*models.User, error) {
	if err := authorize(access.RequireRole(p, models.RoleRecruiter)); err != nil {
		return nil, err
	}
	url, err := s.upload(ctx, uploads.KindCompanyLogo, CompanyLogoField, file)
	if err != nil {
		return nil, err
	}
	user, err := s.store.Users().Update(ctx, p.UserID, storage.UserUpdate{CompanyLogo: &url})
	if err != nil {
		return nil, mapRepoError(err, "User")
	}
	return user, nil
}

func (s *profileService) upload(ctx context.Context, kind uploads.Kind, field string, file *uploads.File) (string, error) {
	prepared, err := uploads.Prepare(kind, file)
	if err != nil {
		return "", mapUploadError(err, kind, field)
	}
	url, err := s.files.Put(ctx, prepared)
	if err != nil {
		logger.WithRequestID(ctx, s.log).Error("uploading file", zap.String("kind", string(kind)), zap.Error(err))
		return "", mapUploadError(err, kind, field)
	}
	return url, nil
}
