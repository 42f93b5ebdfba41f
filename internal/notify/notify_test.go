package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobportal/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func newTestDispatcher(t *testing.T, mailer Mailer) *Dispatcher {
	t.Helper()
	r, err := NewRenderer("http://client.test")
	require.NoError(t, err)
	return NewDispatcher(mailer, r, zap.NewNop(), time.Second, 5*time.Minute)
}

func TestRendererStatusChanged(t *testing.T) {
	r, err := NewRenderer("http://client.test")
	require.NoError(t, err)

	body, err := r.StatusChanged(StatusChanged{
		ApplicantName: "Ada <Admin>",
		JobTitle:      "Go Engineer",
		Company:       "Acme",
		Status:        models.ApplicationStatusShortlisted,
	})
	require.NoError(t, err)
	assert.Contains(t, body, "shortlisted for the next round")
	assert.Contains(t, body, "#10B981")
	assert.Contains(t, body, "Ada &lt;Admin&gt;")
	assert.Contains(t, body, "http://client.test/dashboard/jobseeker")
}

func TestRendererJobUpdatedDeadline(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)
	deadline := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)

	body, err := r.JobUpdated(JobUpdated{JobID: uuid.New(), JobTitle: "Go", Company: "Acme", Status: models.JobStatusActive, Deadline: &deadline})
	require.NoError(t, err)
	assert.Contains(t, body, "July 4, 2026")
	assert.Contains(t, body, "Active")
}

func TestSendOTPFailureIsReturned(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(m Message) bool {
		return m.To == "new@example.com"
	})).Return(errors.New("smtp down")).Once()

	d := newTestDispatcher(t, mailer)
	err := d.SendOTP(context.Background(), "new@example.com", "123456")
	assert.Error(t, err)
	mailer.AssertExpectations(t)
}

func TestSendOTPRendersCode(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(m Message) bool {
		return m.Subject == "Verification Email" && assert.Contains(t, m.HTML, "654321")
	})).Return(nil).Once()

	d := newTestDispatcher(t, mailer)
	require.NoError(t, d.SendOTP(context.Background(), "new@example.com", "654321"))
	mailer.AssertExpectations(t)
}

func TestBackgroundFailuresAreSwallowed(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	d := newTestDispatcher(t, mailer)
	ctx, cancel := context.WithCancel(context.Background())
	d.StatusChanged(ctx, StatusChanged{To: "s@example.com", Status: models.ApplicationStatusHired})
	cancel() // request finished; delivery must still be attempted

	require.NoError(t, d.Wait(context.Background()))
	mailer.AssertNumberOfCalls(t, "Send", 1)
}

func TestJobUpdatedFansOut(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("Send", mock.Anything, mock.Anything).Return(nil)

	d := newTestDispatcher(t, mailer)
	d.JobUpdated(context.Background(), JobUpdated{
		Recipients: []string{"a@example.com", "b@example.com"},
		JobTitle:   "Go",
		Status:     models.JobStatusClosed,
	})
	d.JobUpdated(context.Background(), JobUpdated{JobTitle: "nobody"})

	require.NoError(t, d.Wait(context.Background()))
	mailer.AssertNumberOfCalls(t, "Send", 2)
}
