package handlers

import (
	"net/http"
	"time"

	"jobportal/internal/api/middleware"
	"jobportal/internal/services"
	"jobportal/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CookieOptions controls the session cookie written at login.
type CookieOptions struct {
	Lifetime time.Duration
	Secure   bool
}

// AuthHandler holds dependencies for OTP signup, login and logout.
type AuthHandler struct {
	service services.AuthService
	cookie  CookieOptions
	log     *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthService, cookie CookieOptions, log *zap.Logger) *AuthHandler {
	return &AuthHandler{service: service, cookie: cookie, log: log}
}

// SendOTP godoc
// @Summary      Send a signup OTP
// @Description  Emails a six digit code to an address that is not yet registered.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body      dto.SendOTPRequest true "Email"
// @Success      200 {object}  map[string]interface{} "OTP sent"
// @Failure      400 {object}  map[string]interface{} "Invalid email"
// @Failure      409 {object}  map[string]interface{} "Already registered"
// @Failure      429 {object}  map[string]interface{} "Too many requests"
// @Failure      502 {object}  map[string]interface{} "Email delivery failed"
// @Router       /auth/send-otp [post]
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req dto.SendOTPRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.service.SendOTP(c.Request.Context(), &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, "OTP sent successfully", nil)
}

// Signup godoc
// @Summary      Register an account
// @Description  Creates a job seeker or recruiter account after checking the OTP.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body      dto.SignupRequest true "Account details"
// @Success      201 {object}  dto.UserResponse
// @Failure      400 {object}  map[string]interface{} "Validation failed or OTP expired"
// @Failure      409 {object}  map[string]interface{} "Already registered or invalid OTP"
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.service.Signup(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusCreated, "User registered successfully", gin.H{"user": MapUserToResponse(user)})
}

// Login godoc
// @Summary      Log in
// @Description  Returns a token and sets it as an httpOnly cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body      dto.LoginRequest true "Credentials"
// @Success      200 {object}  map[string]interface{} "Token and user"
// @Failure      401 {object}  map[string]interface{} "Invalid email or password"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	user, token, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, int(h.cookie.Lifetime.Seconds()), "/", "", h.cookie.Secure, true)
	respondOK(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  MapUserToResponse(user),
	})
}

// Logout godoc
// @Summary      Log out
// @Description  Clears the session cookie.
// @Tags         auth
// @Produce      json
// @Success      200 {object}  map[string]interface{} "Logged out"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.cookie.Secure, true)
	respondOK(c, http.StatusOK, "Logged out successfully", nil)
}
