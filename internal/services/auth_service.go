package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"time"

	"jobportal/internal/access"
	"jobportal/internal/logger"
	"jobportal/internal/models"
	"jobportal/internal/storage"
	"jobportal/internal/transport/dto"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	otpDigits     = 6
	bcryptCost    = 10
	defaultOTPTTL = 5 * time.Minute
	avatarBaseURL = "https://api.dicebear.com/5.x/initials/svg?seed="
)

type authService struct {
	store     storage.Store
	otps      storage.OTPStore
	notifier  Notifier
	tokens    *access.TokenManager
	validator *validator.Validate
	log       *zap.Logger
	now       func() time.Time
	otpTTL    time.Duration
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(d Deps) AuthService {
	ttl := d.OTPTTL
	if ttl <= 0 {
		ttl = defaultOTPTTL
	}
	return &authService{
		store:     d.Store,
		otps:      d.OTPs,
		notifier:  d.Notifier,
		tokens:    d.Tokens,
		validator: d.Validator,
		log:       d.logger().Named("auth"),
		now:       d.clock(),
		otpTTL:    ttl,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateOTP returns a uniformly random numeric code.
func generateOTP() (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(otpDigits), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}

func (s *authService) SendOTP(ctx context.Context, req *dto.SendOTPRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return fromValidator(err)
	}
	email := normalizeEmail(req.Email)
	log := logger.WithRequestID(ctx, s.log)

	exists, err := s.store.Users().ExistsByEmail(ctx, email)
	if err != nil {
		return mapRepoError(err, "User")
	}
	if exists {
		return newError(ErrConflict, "User is already registered")
	}

	code, err := generateOTP()
	if err != nil {
		return wrapError(ErrDependency, "Could not generate a verification code", err)
	}
	// An undelivered code is useless, so delivery gates persistence.
	if err := s.notifier.SendOTP(ctx, email, code); err != nil {
		log.Error("sending otp", zap.Error(err))
		return wrapError(ErrDependency, "Failed to send the verification email", err)
	}
	if err := s.otps.Save(ctx, email, code, s.otpTTL); err != nil {
		log.Error("storing otp", zap.Error(err))
		return wrapError(ErrDependency, "Could not store the verification code", err)
	}
	log.Info("otp issued")
	return nil
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fromValidator(err)
	}
	if req.Password != req.ConfirmPassword {
		return nil, invalidField("confirmPassword", "must match password")
	}

	role := models.Role(req.AccountType)
	user := &models.User{
		ID:            uuid.New(),
		Email:         normalizeEmail(req.Email),
		Role:          role,
		ContactNumber: strings.TrimSpace(req.ContactNumber),
	}
	switch role {
	case models.RoleJobSeeker:
		user.FirstName = strings.TrimSpace(req.FirstName)
		user.LastName = strings.TrimSpace(req.LastName)
		fields := map[string]string{}
		if user.FirstName == "" {
			fields["firstName"] = "is required"
		}
		if user.LastName == "" {
			fields["lastName"] = "is required"
		}
		if len(fields) > 0 {
			return nil, &ValidationError{Message: "Validation failed", Fields: fields}
		}
		user.ProfilePhoto = avatarURL(user.FirstName + " " + user.LastName)
	case models.RoleRecruiter:
		user.CompanyName = strings.TrimSpace(req.CompanyName)
		if user.CompanyName == "" {
			return nil, invalidField("companyName", "is required")
		}
		user.ProfilePhoto = avatarURL(user.CompanyName)
	default:
		return nil, invalidField("accountType", "must be JobSeeker or Recruiter")
	}

	log := logger.WithRequestID(ctx, s.log)
	exists, err := s.store.Users().ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, mapRepoError(err, "User")
	}
	if exists {
		return nil, newError(ErrConflict, "User already exists. Please sign in to continue.")
	}

	code, err := s.otps.Get(ctx, user.Email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, invalid("OTP not found or expired")
	}
	if err != nil {
		return nil, wrapError(ErrDependency, "Could not read the verification code", err)
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(req.OTP)) != 1 {
		return nil, newError(ErrConflict, "Invalid OTP")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	user.PasswordHash = string(hash)

	var created *models.User
	err = s.store.WithTx(ctx, func(tx storage.Store) error {
		profile, err := tx.Profiles().Create(ctx, &models.Profile{ID: uuid.New()})
		if err != nil {
			return err
		}
		user.ProfileID = profile.ID
		created, err = tx.Users().Create(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, wrapError(ErrConflict, "User already exists. Please sign in to continue.", err)
		}
		log.Error("creating account", zap.Error(err))
		return nil, mapRepoError(err, "User")
	}

	if err := s.otps.Delete(ctx, user.Email); err != nil {
		log.Warn("consuming otp", zap.Error(err))
	}
	log.Info("account created", zap.Stringer("user_id", created.ID), zap.String("role", string(created.Role)))
	return created, nil
}

func avatarURL(seed string) string {
	return avatarBaseURL + url.QueryEscape(seed)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, "", fromValidator(err)
	}
	badCredentials := newError(ErrAuthentication, "Invalid email or password")

	user, err := s.store.Users().GetByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, "", badCredentials
	}
	if err != nil {
		return nil, "", mapRepoError(err, "User")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.WithRequestID(ctx, s.log).Info("login rejected", zap.Stringer("user_id", user.ID))
		return nil, "", badCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}
	return user, token, nil
}
