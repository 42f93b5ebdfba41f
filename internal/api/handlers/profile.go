package handlers

import (
	"net/http"

	"jobportal/internal/api/middleware"
	"jobportal/internal/services"
	"jobportal/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfileHandler serves the caller's own identity and profile.
type ProfileHandler struct {
	service services.ProfileService
	log     *zap.Logger
}

func NewProfileHandler(service services.ProfileService, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{service: service, log: log}
}

// GetProfile godoc
// @Summary      Get my profile
// @Tags         profile
// @Produce      json
// @Success      200 {object}  map[string]interface{} "User and profile"
// @Failure      401 {object}  map[string]interface{} "Unauthorized"
// @Router       /profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	view, err := h.service.GetProfile(c.Request.Context(), middleware.PrincipalFromContext(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, "Profile fetched successfully", profilePayload(view))
}

// UpdateProfile godoc
// @Summary      Update my profile
// @Description  Partially updates the profile. Fields belonging to the other role are rejected.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body body      dto.UpdateProfileRequest true "Fields to change"
// @Success      200 {object}  map[string]interface{} "User and profile"
// @Failure      400 {object}  map[string]interface{} "Validation failed"
// @Failure      401 {object}  map[string]interface{} "Unauthorized"
// @Router       /profile [put]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.service.UpdateProfile(c.Request.Context(), middleware.PrincipalFromContext(c), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, "Profile updated successfully", profilePayload(view))
}

// UploadPhoto godoc
// @Summary      Upload a profile photo
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Param        profilePhoto formData file true "JPG or PNG image"
// @Success      200 {object}  dto.UserResponse
// @Failure      400 {object}  map[string]interface{} "Invalid file"
// @Router       /profile/upload-photo [post]
// @Security     BearerAuth
func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	h.upload(c, services.ProfilePhotoField, h.service.UploadPhoto, "Profile photo updated successfully")
}

// UploadLogo godoc
// @Summary      Upload a company logo
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Param        companyLogo formData file true "JPG or PNG image"
// @Success      200 {object}  dto.UserResponse
// @Failure      400 {object}  map[string]interface{} "Invalid file"
// @Failure      403 {object}  map[string]interface{} "Recruiters only"
// @Router       /profile/upload-logo [post]
// @Security     BearerAuth
func (h *ProfileHandler) UploadLogo(c *gin.Context) {
	h.upload(c, services.CompanyLogoField, h.service.UploadLogo, "Company logo updated successfully")
}

func (h *ProfileHandler) upload(c *gin.Context, field string, fn uploadFunc, message string) {
	file, closeFile, err := formFile(c, field)
	if err != nil {
		respondBadRequest(c, "Invalid form data", map[string]string{field: "is not a valid file"})
		return
	}
	defer closeFile()

	user, err := fn(c.Request.Context(), middleware.PrincipalFromContext(c), file)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, message, gin.H{"user": MapUserToResponse(user)})
}
