package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"jobportal/internal/access"
	"jobportal/internal/models"
	"jobportal/internal/notify"
	"jobportal/internal/services"
	"jobportal/internal/storage/memory"
	"jobportal/internal/uploads"
	"jobportal/internal/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

var (
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00\x90wS\xde")
)

// MockNotifier is a mock implementation of services.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendOTP(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}

func (m *MockNotifier) ApplicationSubmitted(ctx context.Context, e notify.ApplicationSubmitted) {
	m.Called(ctx, e)
}

func (m *MockNotifier) StatusChanged(ctx context.Context, e notify.StatusChanged) {
	m.Called(ctx, e)
}

func (m *MockNotifier) JobUpdated(ctx context.Context, e notify.JobUpdated) {
	m.Called(ctx, e)
}

// MockFileStorage is a mock implementation of uploads.Storage
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Put(ctx context.Context, file *uploads.Prepared) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

type fixture struct {
	ctx      context.Context
	now      time.Time
	store    *memory.Store
	otps     *memory.OTPStore
	notifier *MockNotifier
	files    *MockFileStorage
	tokens   *access.TokenManager

	jobs         services.JobService
	applications services.ApplicationService
	auth         services.AuthService
	profiles     services.ProfileService
	saved        services.SavedJobService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:      context.Background(),
		now:      testNow,
		notifier: new(MockNotifier),
		files:    new(MockFileStorage),
	}
	clock := func() time.Time { return f.now }
	f.store = memory.NewStore(clock)
	f.otps = memory.NewOTPStore(clock)
	f.tokens = access.NewTokenManager("test-secret", 24*time.Hour, clock)

	deps := services.Deps{
		Store:     f.store,
		OTPs:      f.otps,
		Notifier:  f.notifier,
		Files:     f.files,
		Tokens:    f.tokens,
		Validator: validation.New(),
		Logger:    zap.NewNop(),
		Now:       clock,
		OTPTTL:    5 * time.Minute,
	}
	f.jobs = services.NewJobService(deps)
	f.applications = services.NewApplicationService(deps)
	f.auth = services.NewAuthService(deps)
	f.profiles = services.NewProfileService(deps)
	f.saved = services.NewSavedJobService(deps)
	return f
}

// allowNotifications accepts any lifecycle notification. Calls are still recorded.
func (f *fixture) allowNotifications() {
	f.notifier.On("ApplicationSubmitted", mock.Anything, mock.Anything).Return().Maybe()
	f.notifier.On("StatusChanged", mock.Anything, mock.Anything).Return().Maybe()
	f.notifier.On("JobUpdated", mock.Anything, mock.Anything).Return().Maybe()
}

func (f *fixture) allowUploads() {
	f.files.On("Put", mock.Anything, mock.Anything).Return("https://files.test/upload", nil).Maybe()
}

func (f *fixture) addUser(t *testing.T, role models.Role, name string) (*models.User, *access.Principal) {
	t.Helper()
	profile, err := f.store.Profiles().Create(f.ctx, &models.Profile{ID: uuid.New()})
	require.NoError(t, err)

	u := &models.User{
		ID:        uuid.New(),
		Email:     strings.ToLower(name) + "@example.com",
		Role:      role,
		ProfileID: profile.ID,
	}
	if role == models.RoleRecruiter {
		u.CompanyName = name
	} else {
		u.FirstName = name
		u.LastName = "Tester"
	}
	created, err := f.store.Users().Create(f.ctx, u)
	require.NoError(t, err)
	return created, &access.Principal{UserID: created.ID, Email: created.Email, Role: created.Role}
}

func (f *fixture) addJob(t *testing.T, owner *access.Principal, deadline *time.Time) *models.Job {
	t.Helper()
	job, err := f.store.Jobs().Create(f.ctx, &models.Job{
		ID:          uuid.New(),
		Title:       "Backend Engineer",
		Description: "Build services",
		Company:     "Acme",
		Location:    "Berlin",
		JobType:     models.JobTypeFullTime,
		RecruiterID: owner.UserID,
		PostedDate:  f.now,
		Deadline:    deadline,
		IsActive:    true,
	})
	require.NoError(t, err)
	return job
}

func (f *fixture) addApplication(t *testing.T, job *models.Job, applicant *access.Principal) *models.Application {
	t.Helper()
	app, err := f.store.Applications().Create(f.ctx, &models.Application{
		ID:          uuid.New(),
		JobID:       job.ID,
		ApplicantID: applicant.UserID,
		ResumeURL:   "https://files.test/resume.pdf",
		Status:      models.ApplicationStatusPending,
		AppliedAt:   f.now,
	})
	require.NoError(t, err)
	return app
}

func resume() *uploads.File {
	return &uploads.File{Name: "cv.pdf", Size: int64(len(pdfBytes)), Content: strings.NewReader(string(pdfBytes))}
}

func image() *uploads.File {
	return &uploads.File{Name: "me.png", Size: int64(len(pngBytes)), Content: strings.NewReader(string(pngBytes))}
}

func ptrTime(t time.Time) *time.Time { return &t }

func ptrString(s string) *string { return &s }
