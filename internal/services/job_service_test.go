package services_test

import (
	"errors"
	"testing"
	"time"

	"jobportal/internal/models"
	"jobportal/internal/notify"
	"jobportal/internal/services"
	"jobportal/internal/storage"
	"jobportal/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validCreateJob() *dto.CreateJobRequest {
	return &dto.CreateJobRequest{
		Title:       "Go Developer",
		Description: "Write Go",
		Company:     "Acme",
		Location:    "Remote EU",
		JobType:     "Full-time",
		Skills:      []string{"go", "sql"},
	}
}

func TestJobService_CreateJob_Success(t *testing.T) {
	f := newFixture(t)
	_, recruiter := f.addUser(t, models.RoleRecruiter, "Acme")

	job, err := f.jobs.CreateJob(f.ctx, recruiter, validCreateJob())

	require.NoError(t, err)
	assert.Equal(t, recruiter.UserID, job.RecruiterID)
	assert.True(t, job.IsActive)
	assert.False(t, job.IsClosed)
	assert.Equal(t, testNow, job.PostedDate)
	assert.Equal(t, models.JobStatusActive, job.Status)
	assert.Equal(t, []string{}, job.Requirements)
	require.NotNil(t, job.ApplicationCount)
	assert.Equal(t, 0, *job.ApplicationCount)
}

func TestJobService_CreateJob_RequiresRecruiter(t *testing.T) {
	f := newFixture(t)
	_, seeker := f.addUser(t, models.RoleJobSeeker, "Sam")

	_, err := f.jobs.CreateJob(f.ctx, seeker, validCreateJob())
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = f.jobs.CreateJob(f.ctx, nil, validCreateJob())
	assert.ErrorIs(t, err, services.ErrAuthentication)
}

func TestJobService_CreateJob_RoleCheckedBeforeValidation(t *testing.T) {
	f := newFixture(t)
	_, seeker := f.addUser(t, models.RoleJobSeeker, "Sam")

	_, err := f.jobs.CreateJob(f.ctx, seeker, &dto.CreateJobRequest{})

	assert.ErrorIs(t, err, services.ErrForbidden)
	assert.NotErrorIs(t, err, services.ErrValidation)
}

func TestJobService_CreateJob_Validation(t *testing.T) {
	f := newFixture(t)
	_, recruiter := f.addUser(t, models.RoleRecruiter, "Acme")

	req := validCreateJob()
	req.Title = ""
	req.JobType = "Freelance"
	_, err := f.jobs.CreateJob(f.ctx, recruiter, req)

	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, services.ErrValidation)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "jobType")

	req = validCreateJob()
	req.Deadline = &dto.Date{Time: testNow.Add(-time.Hour)}
	_, err = f.jobs.CreateJob(f.ctx, recruiter, req)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "deadline")
}

func TestJobService_UpdateJob(t *testing.T) {
	f := newFixture(t)
	_, owner := f.addUser(t, models.RoleRecruiter, "Acme")
	_, other := f.addUser(t, models.RoleRecruiter, "Globex")
	job := f.addJob(t, owner, nil)

	t.Run("partial update by owner", func(t *testing.T) {
		got, err := f.jobs.UpdateJob(f.ctx, owner, job.ID, &dto.UpdateJobRequest{
			Title:   ptrString("  Senior Backend Engineer "),
			JobType: ptrString("Contract"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Senior Backend Engineer", got.Title)
		assert.Equal(t, models.JobTypeContract, got.JobType)
		assert.Equal(t, job.Description, got.Description)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		_, err := f.jobs.UpdateJob(f.ctx, other, job.ID, &dto.UpdateJobRequest{Title: ptrString("mine now")})
		assert.ErrorIs(t, err, services.ErrForbidden)

		stored, err := f.store.Jobs().GetByID(f.ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, "Senior Backend Engineer", stored.Title)
	})

	t.Run("non-owner with invalid body is still forbidden", func(t *testing.T) {
		_, err := f.jobs.UpdateJob(f.ctx, other, job.ID, &dto.UpdateJobRequest{JobType: ptrString("nope")})
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("invalid enum", func(t *testing.T) {
		_, err := f.jobs.UpdateJob(f.ctx, owner, job.ID, &dto.UpdateJobRequest{JobType: ptrString("nope")})
		assert.ErrorIs(t, err, services.ErrValidation)
	})

	t.Run("past deadline is rejected like on create", func(t *testing.T) {
		_, err := f.jobs.UpdateJob(f.ctx, owner, job.ID, &dto.UpdateJobRequest{
			Deadline: &dto.Date{Time: testNow.Add(-48 * time.Hour)},
		})
		var verr *services.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "deadline")

		stored, err := f.store.Jobs().GetByID(f.ctx, job.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.Deadline)
		assert.Equal(t, models.JobStatusActive, stored.Status(testNow))
	})

	t.Run("future deadline is accepted", func(t *testing.T) {
		got, err := f.jobs.UpdateJob(f.ctx, owner, job.ID, &dto.UpdateJobRequest{
			Deadline: &dto.Date{Time: testNow.Add(48 * time.Hour)},
		})
		require.NoError(t, err)
		require.NotNil(t, got.Deadline)
		assert.Equal(t, models.JobStatusActive, got.Status)
	})

	t.Run("missing job", func(t *testing.T) {
		_, err := f.jobs.UpdateJob(f.ctx, owner, uuid.New(), &dto.UpdateJobRequest{})
		assert.ErrorIs(t, err, services.ErrNotFound)
	})
}

func TestJobService_CloseJob_IdempotentAndNotifies(t *testing.T) {
	f := newFixture(t)
	_, owner := f.addUser(t, models.RoleRecruiter, "Acme")
	seekerUser, seeker := f.addUser(t, models.RoleJobSeeker, "Sam")
	job := f.addJob(t, owner, nil)
	f.addApplication(t, job, seeker)

	f.notifier.On("JobUpdated", mock.Anything, mock.MatchedBy(func(e notify.JobUpdated) bool {
		return e.JobID == job.ID && e.Status == models.JobStatusClosed &&
			len(e.Recipients) == 1 && e.Recipients[0] == seekerUser.Email
	})).Return().Once()

	closed, err := f.jobs.CloseJob(f.ctx, owner, job.ID)
	require.NoError(t, err)
	assert.True(t, closed.IsClosed)
	assert.Equal(t, models.JobStatusClosed, closed.Status)

	again, err := f.jobs.CloseJob(f.ctx, owner, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusClosed, again.Status)

	f.notifier.AssertNumberOfCalls(t, "JobUpdated", 1)
	f.notifier.AssertExpectations(t)
}

func TestJobService_CloseJob_NonOwnerForbidden(t *testing.T) {
	f := newFixture(t)
	_, owner := f.addUser(t, models.RoleRecruiter, "Acme")
	_, other := f.addUser(t, models.RoleRecruiter, "Globex")
	_, seeker := f.addUser(t, models.RoleJobSeeker, "Sam")
	job := f.addJob(t, owner, nil)

	_, err := f.jobs.CloseJob(f.ctx, other, job.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = f.jobs.CloseJob(f.ctx, seeker, job.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = f.jobs.CloseJob(f.ctx, owner, uuid.New())
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestJobService_CloseThenSubmitFails(t *testing.T) {
	f := newFixture(t)
	f.allowNotifications()
	f.allowUploads()
	_, owner := f.addUser(t, models.RoleRecruiter, "Acme")
	_, seeker := f.addUser(t, models.RoleJobSeeker, "Sam")
	job := f.addJob(t, owner, ptrTime(testNow.Add(30*24*time.Hour)))

	_, err := f.jobs.CloseJob(f.ctx, owner, job.ID)
	require.NoError(t, err)

	_, err = f.applications.SubmitApplication(f.ctx, seeker, job.ID, &dto.SubmitApplicationRequest{}, resume())
	assert.ErrorIs(t, err, services.ErrInvalidState)
	assert.ErrorIs(t, err, services.ErrConflict)
	f.files.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestJobService_ReopenJob(t *testing.T) {
	f := newFixture(t)
	f.allowNotifications()
	_, owner := f.addUser(t, models.RoleRecruiter, "Acme")
	_, seeker := f.addUser(t, models.RoleJobSeeker, "Sam")
	job := f.addJob(t, owner, nil)
	f.addApplication(t, job, seeker)
	_, err := f.jobs.CloseJob(f.ctx, owner, job.ID)
	require.NoError(t, err)

	_, err = f.jobs.ReopenJob(f.ctx, owner, job.ID, &dto.ReopenJobRequest{Deadline: &dto.Date{Time: testNow.Add(-24 * time.Hour)}})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "deadline")

	_, err = f.jobs.ReopenJob(f.ctx, owner, job.ID, &dto.ReopenJobRequest{})
	assert.ErrorIs(t, err, services.ErrValidation)

	future := testNow.Add(7 * 24 * time.Hour)
	reopened, err := f.jobs.ReopenJob(f.ctx, owner, job.ID, &dto.ReopenJobRequest{Deadline: &dto.Date{Time: future}})
	require.NoError(t, err)
	assert.False(t, reopened.IsClosed)
	assert.Equal(t, models.JobStatusActive, reopened.Status)
	require.NotNil(t, reopened.Deadline)
	assert.True(t, reopened.Deadline.Equal(future))

	// one notice for close, one for reopen
	f.notifier.AssertNumberOfCalls(t, "JobUpdated", 2)
}

func TestJobService_StatusFollowsClock(t *testing.T) {
	f := newFixture(t)
	f.allowNotifications()
	f.allowUploads()
	_, owner := f.addUser(t, models.RoleRecruiter, "Acme")
	_, seeker := f.addUser(t, models.RoleJobSeeker, "Sam")
	job := f.addJob(t, owner, ptrTime(testNow.Add(time.Hour)))

	assert.Equal(t, models.JobStatusActive, f.jobs.Status(job))

	f.now = testNow.Add(2 * time.Hour)
	assert.Equal(t, models.JobStatusDeadlineEnded, f.jobs.Status(job))

	_, err := f.applications.SubmitApplication(f.ctx, seeker, job.ID, &dto.SubmitApplicationRequest{}, resume())
	assert.ErrorIs(t, err, services.ErrInvalidState)
}

func TestJobService_DeleteJob_Cascades(t *testing.T) {
	f := newFixture(t)
	_, owner := f.addUser(t, models.RoleRecruiter, "Acme")
	_, other := f.addUser(t, models.RoleRecruiter, "Globex")
	_, seekerA := f.addUser(t, models.RoleJobSeeker, "Ann")
	_, seekerB := f.addUser(t, models.RoleJobSeeker, "Bob")
	job := f.addJob(t, owner, nil)
	keep := f.addJob(t, owner, nil)
	f.addApplication(t, job, seekerA)
	f.addApplication(t, job, seekerB)
	kept := f.addApplication(t, keep, seekerA)
	require.NoError(t, f.saved.SaveJob(f.ctx, seekerA, job.ID))

	err := f.jobs.DeleteJob(f.ctx, other, job.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	require.NoError(t, f.jobs.DeleteJob(f.ctx, owner, job.ID))

	_, err = f.store.Jobs().GetByID(f.ctx, job.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	n, err := f.store.Applications().CountByJob(f.ctx, job.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	_, err = f.store.Applications().GetByID(f.ctx, kept.ID)
	assert.NoError(t, err)

	saved, err := f.saved.ListSavedJobs(f.ctx, seekerA)
	require.NoError(t, err)
	assert.Empty(t, saved)

	err = f.jobs.DeleteJob(f.ctx, owner, job.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestJobService_GetJob_ApplicationsOnlyForOwner(t *testing.T) {
	f := newFixture(t)
	_, owner := f.addUser(t, models.RoleRecruiter, "Acme")
	_, other := f.addUser(t, models.RoleRecruiter, "Globex")
	_, seeker := f.addUser(t, models.RoleJobSeeker, "Sam")
	job := f.addJob(t, owner, nil)
	f.addApplication(t, job, seeker)

	public, err := f.jobs.GetJob(f.ctx, nil, job.ID)
	require.NoError(t, err)
	require.NotNil(t, public.ApplicationCount)
	assert.Equal(t, 1, *public.ApplicationCount)
	assert.Nil(t, public.Applications)

	asOther, err := f.jobs.GetJob(f.ctx, other, job.ID)
	require.NoError(t, err)
	assert.Nil(t, asOther.Applications)

	asSeeker, err := f.jobs.GetJob(f.ctx, seeker, job.ID)
	require.NoError(t, err)
	assert.Nil(t, asSeeker.Applications)

	asOwner, err := f.jobs.GetJob(f.ctx, owner, job.ID)
	require.NoError(t, err)
	require.Len(t, asOwner.Applications, 1)
	assert.Equal(t, seeker.UserID, asOwner.Applications[0].Applicant.ID)

	_, err = f.jobs.GetJob(f.ctx, nil, uuid.New())
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestJobService_ListOpenJobs(t *testing.T) {
	f := newFixture(t)
	f.allowNotifications()
	_, owner := f.addUser(t, models.RoleRecruiter, "Acme")

	open := f.addJob(t, owner, nil)
	expired := f.addJob(t, owner, ptrTime(testNow.Add(-time.Hour)))
	closed := f.addJob(t, owner, nil)
	_, err := f.jobs.CloseJob(f.ctx, owner, closed.ID)
	require.NoError(t, err)

	f.now = testNow.Add(time.Minute)
	contract, err := f.jobs.CreateJob(f.ctx, owner, &dto.CreateJobRequest{
		Title: "Contract Go", Description: "d", Company: "Acme", Location: "Lisbon", JobType: "Contract",
	})
	require.NoError(t, err)

	all, err := f.jobs.ListOpenJobs(f.ctx, &dto.ListJobsRequest{})
	require.NoError(t, err)
	ids := make([]uuid.UUID, 0, len(all))
	for _, j := range all {
		ids = append(ids, j.ID)
		assert.Equal(t, models.JobStatusActive, j.Status)
	}
	assert.Equal(t, []uuid.UUID{contract.ID, open.ID}, ids)
	assert.NotContains(t, ids, expired.ID)
	assert.NotContains(t, ids, closed.ID)

	filtered, err := f.jobs.ListOpenJobs(f.ctx, &dto.ListJobsRequest{JobType: "Contract"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, contract.ID, filtered[0].ID)

	byLocation, err := f.jobs.ListOpenJobs(f.ctx, &dto.ListJobsRequest{Location: "berl"})
	require.NoError(t, err)
	require.Len(t, byLocation, 1)
	assert.Equal(t, open.ID, byLocation[0].ID)

	page, err := f.jobs.ListOpenJobs(f.ctx, &dto.ListJobsRequest{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, open.ID, page[0].ID)

	_, err = f.jobs.ListOpenJobs(f.ctx, &dto.ListJobsRequest{JobType: "Gig"})
	assert.True(t, errors.Is(err, services.ErrValidation))
}

func TestJobService_ListRecruiterJobs(t *testing.T) {
	f := newFixture(t)
	_, owner := f.addUser(t, models.RoleRecruiter, "Acme")
	_, other := f.addUser(t, models.RoleRecruiter, "Globex")
	_, seeker := f.addUser(t, models.RoleJobSeeker, "Sam")
	mine := f.addJob(t, owner, nil)
	f.addJob(t, other, nil)
	f.addApplication(t, mine, seeker)

	jobs, err := f.jobs.ListRecruiterJobs(f.ctx, owner)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, mine.ID, jobs[0].ID)
	require.Len(t, jobs[0].Applications, 1)
	assert.Equal(t, 1, *jobs[0].ApplicationCount)

	_, err = f.jobs.ListRecruiterJobs(f.ctx, seeker)
	assert.ErrorIs(t, err, services.ErrForbidden)
}
