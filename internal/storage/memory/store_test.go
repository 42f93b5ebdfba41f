package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"jobportal/internal/models"
	"jobportal/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, s *Store) (recruiter, seeker *models.User, job *models.Job) {
	t.Helper()
	ctx := context.Background()
	mkUser := func(email string, role models.Role) *models.User {
		p, err := s.Profiles().Create(ctx, &models.Profile{})
		require.NoError(t, err)
		u, err := s.Users().Create(ctx, &models.User{Email: email, Role: role, ProfileID: p.ID})
		require.NoError(t, err)
		return u
	}
	recruiter = mkUser("r@example.com", models.RoleRecruiter)
	seeker = mkUser("s@example.com", models.RoleJobSeeker)
	job, err := s.Jobs().Create(ctx, &models.Job{
		Title: "Go Engineer", RecruiterID: recruiter.ID, JobType: models.JobTypeFullTime, IsActive: true,
	})
	require.NoError(t, err)
	return recruiter, seeker, job
}

func TestUserEmailUnique(t *testing.T) {
	s := NewStore(nil)
	seed(t, s)
	p, err := s.Profiles().Create(context.Background(), &models.Profile{})
	require.NoError(t, err)

	_, err = s.Users().Create(context.Background(), &models.User{Email: "R@Example.com", ProfileID: p.ID})
	assert.ErrorIs(t, err, storage.ErrConflict)

	exists, err := s.Users().ExistsByEmail(context.Background(), "r@EXAMPLE.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestConcurrentApplicationsOneWinner(t *testing.T) {
	s := NewStore(nil)
	_, seeker, job := seed(t, s)

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Applications().Create(context.Background(), &models.Application{
				JobID: job.ID, ApplicantID: seeker.ID, Status: models.ApplicationStatusPending, ResumeURL: "u",
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, conflicts int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, storage.ErrConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, conflicts)

	n, err := s.Applications().CountByJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestJobDeleteCascades(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	_, seeker, job := seed(t, s)

	_, err := s.Applications().Create(ctx, &models.Application{JobID: job.ID, ApplicantID: seeker.ID, Status: models.ApplicationStatusPending})
	require.NoError(t, err)
	require.NoError(t, s.SavedJobs().Save(ctx, seeker.ID, job.ID))

	require.NoError(t, s.Jobs().Delete(ctx, job.ID))

	n, err := s.Applications().CountByJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	saved, err := s.SavedJobs().ListJobs(ctx, seeker.ID)
	require.NoError(t, err)
	assert.Empty(t, saved)

	assert.ErrorIs(t, s.Jobs().Delete(ctx, job.ID), storage.ErrNotFound)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	_, seeker, job := seed(t, s)
	_, err := s.Applications().Create(ctx, &models.Application{JobID: job.ID, ApplicantID: seeker.ID, Status: models.ApplicationStatusPending})
	require.NoError(t, err)
	require.NoError(t, s.SavedJobs().Save(ctx, seeker.ID, job.ID))

	boom := errors.New("boom")
	var profileID uuid.UUID
	err = s.WithTx(ctx, func(tx storage.Store) error {
		p, err := tx.Profiles().Create(ctx, &models.Profile{})
		require.NoError(t, err)
		profileID = p.ID
		require.NoError(t, tx.Jobs().Delete(ctx, job.ID))
		// Nested calls join the outer transaction.
		return tx.WithTx(ctx, func(storage.Store) error { return boom })
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Profiles().GetByID(ctx, profileID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.Jobs().GetByID(ctx, job.ID)
	require.NoError(t, err)
	n, err := s.Applications().CountByJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	saved, err := s.SavedJobs().ListJobs(ctx, seeker.ID)
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestWithTxCommits(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	var profileID uuid.UUID
	require.NoError(t, s.WithTx(ctx, func(tx storage.Store) error {
		p, err := tx.Profiles().Create(ctx, &models.Profile{})
		profileID = p.ID
		return err
	}))
	_, err := s.Profiles().GetByID(ctx, profileID)
	assert.NoError(t, err)
}

func TestListOpenFiltersByDerivedStatus(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	s := NewStore(func() time.Time { return now })
	recruiter, _, open := seed(t, s)

	past := now.Add(-time.Hour)
	_, err := s.Jobs().Create(ctx, &models.Job{Title: "Expired", RecruiterID: recruiter.ID, IsActive: true, Deadline: &past, JobType: models.JobTypeRemote})
	require.NoError(t, err)
	_, err = s.Jobs().Create(ctx, &models.Job{Title: "Closed", RecruiterID: recruiter.ID, IsActive: true, IsClosed: true, JobType: models.JobTypeRemote})
	require.NoError(t, err)

	jobs, err := s.Jobs().ListOpen(ctx, storage.JobFilter{Now: now, Limit: 10})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, open.ID, jobs[0].ID)
}

func TestOTPStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	store := NewOTPStore(func() time.Time { return now })

	require.NoError(t, store.Save(ctx, "A@b.com", "111111", 5*time.Minute))
	require.NoError(t, store.Save(ctx, "a@b.com", "222222", 5*time.Minute))

	code, err := store.Get(ctx, "a@B.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", code)

	now = now.Add(5 * time.Minute)
	_, err = store.Get(ctx, "a@b.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
