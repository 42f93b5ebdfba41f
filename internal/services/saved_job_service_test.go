package services_test

import (
	"testing"

	"jobportal/internal/models"
	"jobportal/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavedJobService(t *testing.T) {
	f := newFixture(t)
	f.allowNotifications()
	_, recruiter := f.addUser(t, models.RoleRecruiter, "Acme")
	_, seeker := f.addUser(t, models.RoleJobSeeker, "Sam")
	job := f.addJob(t, recruiter, nil)

	require.NoError(t, f.saved.SaveJob(f.ctx, seeker, job.ID))
	require.NoError(t, f.saved.SaveJob(f.ctx, seeker, job.ID), "saving twice is idempotent")

	_, err := f.jobs.CloseJob(f.ctx, recruiter, job.ID)
	require.NoError(t, err)

	saved, err := f.saved.ListSavedJobs(f.ctx, seeker)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, job.ID, saved[0].ID)
	assert.Equal(t, models.JobStatusClosed, saved[0].Status)

	require.NoError(t, f.saved.RemoveSavedJob(f.ctx, seeker, job.ID))
	err = f.saved.RemoveSavedJob(f.ctx, seeker, job.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	err = f.saved.SaveJob(f.ctx, seeker, uuid.New())
	assert.ErrorIs(t, err, services.ErrNotFound)

	err = f.saved.SaveJob(f.ctx, recruiter, job.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = f.saved.ListSavedJobs(f.ctx, nil)
	assert.ErrorIs(t, err, services.ErrAuthentication)
}
