package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		closed   bool
		deadline *time.Time
		want     JobStatus
	}{
		{"open without deadline", false, nil, JobStatusActive},
		{"open with future deadline", false, &future, JobStatusActive},
		{"deadline equal to now is still active", false, &now, JobStatusActive},
		{"open with past deadline", false, &past, JobStatusDeadlineEnded},
		{"closed without deadline", true, nil, JobStatusClosed},
		{"closed with future deadline", true, &future, JobStatusClosed},
		{"closed with past deadline", true, &past, JobStatusClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := Job{IsActive: true, IsClosed: tt.closed, Deadline: tt.deadline}
			got := job.Status(now)
			assert.Equal(t, tt.want, got)

			// Active iff not closed and deadline absent or not passed.
			expectActive := !tt.closed && (tt.deadline == nil || !tt.deadline.Before(now))
			assert.Equal(t, expectActive, job.AcceptsApplications(now))
		})
	}
}

func TestRoleParsing(t *testing.T) {
	r, err := ParseRole("Recruiter")
	require.NoError(t, err)
	assert.Equal(t, RoleRecruiter, r)

	_, err = ParseRole("Admin")
	assert.Error(t, err)

	var scanned Role
	require.NoError(t, scanned.Scan([]byte("JobSeeker")))
	assert.Equal(t, RoleJobSeeker, scanned)
	assert.Error(t, scanned.Scan(42))
}

func TestEnumValidity(t *testing.T) {
	for _, jt := range JobTypes {
		assert.True(t, jt.Valid(), jt)
	}
	assert.False(t, JobType("Freelance").Valid())

	for _, s := range []ApplicationStatus{"Pending", "Reviewing", "Shortlisted", "Rejected", "Hired"} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, ApplicationStatus("Accepted").Valid())

	var st ApplicationStatus
	assert.Error(t, st.Scan("Accepted"))
}

func TestDisplayName(t *testing.T) {
	seeker := User{Role: RoleJobSeeker, FirstName: "Ada", LastName: "Lovelace"}
	assert.Equal(t, "Ada Lovelace", seeker.DisplayName())

	recruiter := User{Role: RoleRecruiter, CompanyName: "Acme", FirstName: "ignored"}
	assert.Equal(t, "Acme", recruiter.DisplayName())
}
