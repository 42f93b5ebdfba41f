// Package memory is a process-local storage.Store used by tests and by the memory storage driver.
package memory

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"jobportal/internal/models"
	"jobportal/internal/storage"

	"github.com/google/uuid"
)

type pairKey struct {
	a, b uuid.UUID
}

type data struct {
	mu sync.RWMutex
	// txMu serializes WithTx calls so a rollback only discards its own writes.
	txMu sync.Mutex

	users        map[uuid.UUID]models.User
	usersByEmail map[string]uuid.UUID
	profiles     map[uuid.UUID]models.Profile
	jobs         map[uuid.UUID]models.Job
	applications map[uuid.UUID]models.Application
	byJobAndUser map[pairKey]uuid.UUID
	saved        map[pairKey]time.Time

	now func() time.Time
}

type snapshot struct {
	users        map[uuid.UUID]models.User
	usersByEmail map[string]uuid.UUID
	profiles     map[uuid.UUID]models.Profile
	jobs         map[uuid.UUID]models.Job
	applications map[uuid.UUID]models.Application
	byJobAndUser map[pairKey]uuid.UUID
	saved        map[pairKey]time.Time
}

func (d *data) snapshot() snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return snapshot{
		users:        maps.Clone(d.users),
		usersByEmail: maps.Clone(d.usersByEmail),
		profiles:     maps.Clone(d.profiles),
		jobs:         maps.Clone(d.jobs),
		applications: maps.Clone(d.applications),
		byJobAndUser: maps.Clone(d.byJobAndUser),
		saved:        maps.Clone(d.saved),
	}
}

func (d *data) restore(snap snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users = snap.users
	d.usersByEmail = snap.usersByEmail
	d.profiles = snap.profiles
	d.jobs = snap.jobs
	d.applications = snap.applications
	d.byJobAndUser = snap.byJobAndUser
	d.saved = snap.saved
}

// Store implements storage.Store in memory. WithTx restores the pre-transaction state when fn
// fails; writes made outside WithTx while a transaction runs are not isolated from it.
type Store struct {
	d *data
}

// NewStore creates an empty Store. now may be nil.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{d: &data{
		users:        make(map[uuid.UUID]models.User),
		usersByEmail: make(map[string]uuid.UUID),
		profiles:     make(map[uuid.UUID]models.Profile),
		jobs:         make(map[uuid.UUID]models.Job),
		applications: make(map[uuid.UUID]models.Application),
		byJobAndUser: make(map[pairKey]uuid.UUID),
		saved:        make(map[pairKey]time.Time),
		now:          now,
	}}
}

var _ storage.Store = (*Store)(nil)

func (s *Store) Users() storage.UserRepository               { return userRepo{s.d} }
func (s *Store) Profiles() storage.ProfileRepository         { return profileRepo{s.d} }
func (s *Store) Jobs() storage.JobRepository                 { return jobRepo{s.d} }
func (s *Store) Applications() storage.ApplicationRepository { return applicationRepo{s.d} }
func (s *Store) SavedJobs() storage.SavedJobRepository       { return savedJobRepo{s.d} }

func (s *Store) WithTx(_ context.Context, fn func(tx storage.Store) error) error {
	s.d.txMu.Lock()
	defer s.d.txMu.Unlock()

	snap := s.d.snapshot()
	if err := fn(txStore{s}); err != nil {
		s.d.restore(snap)
		return err
	}
	return nil
}

// txStore is the Store handed to a WithTx callback. Nested calls join the outer transaction.
type txStore struct{ *Store }

func (t txStore) WithTx(_ context.Context, fn func(tx storage.Store) error) error {
	return fn(t)
}

func (s *Store) Ping(context.Context) error { return nil }

// --- users ---

type userRepo struct{ d *data }

func (r userRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	email := strings.ToLower(u.Email)
	if _, taken := r.d.usersByEmail[email]; taken {
		return nil, storage.ErrConflict
	}
	if _, ok := r.d.profiles[u.ProfileID]; !ok {
		return nil, storage.ErrConflict
	}
	created := *u
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	created.Email = email
	created.CreatedAt = r.d.now()
	created.UpdatedAt = created.CreatedAt
	r.d.users[created.ID] = created
	r.d.usersByEmail[email] = created.ID
	return &created, nil
}

func (r userRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	u, ok := r.d.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &u, nil
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.d.mu.RLock()
	id, ok := r.d.usersByEmail[strings.ToLower(email)]
	r.d.mu.RUnlock()
	if !ok {
		return nil, storage.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r userRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	_, ok := r.d.usersByEmail[strings.ToLower(email)]
	return ok, nil
}

func (r userRepo) Update(_ context.Context, id uuid.UUID, upd storage.UserUpdate) (*models.User, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	u, ok := r.d.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	assign(&u.FirstName, upd.FirstName)
	assign(&u.LastName, upd.LastName)
	assign(&u.CompanyName, upd.CompanyName)
	assign(&u.ContactNumber, upd.ContactNumber)
	assign(&u.ProfilePhoto, upd.ProfilePhoto)
	assign(&u.CompanyLogo, upd.CompanyLogo)
	u.UpdatedAt = r.d.now()
	r.d.users[id] = u
	return &u, nil
}

func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// --- profiles ---

type profileRepo struct{ d *data }

func (r profileRepo) Create(_ context.Context, p *models.Profile) (*models.Profile, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	created := *p
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	if _, exists := r.d.profiles[created.ID]; exists {
		return nil, storage.ErrConflict
	}
	created.CreatedAt = r.d.now()
	created.UpdatedAt = created.CreatedAt
	r.d.profiles[created.ID] = created
	return &created, nil
}

func (r profileRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	p, ok := r.d.profiles[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &p, nil
}

func (r profileRepo) Update(_ context.Context, p *models.Profile) (*models.Profile, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	existing, ok := r.d.profiles[p.ID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	updated := *p
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = r.d.now()
	r.d.profiles[p.ID] = updated
	return &updated, nil
}

// --- jobs ---

type jobRepo struct{ d *data }

func (r jobRepo) Create(_ context.Context, j *models.Job) (*models.Job, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.users[j.RecruiterID]; !ok {
		return nil, storage.ErrConflict
	}
	created := *j
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	created.CreatedAt = r.d.now()
	created.UpdatedAt = created.CreatedAt
	r.d.jobs[created.ID] = created
	return &created, nil
}

func (r jobRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Job, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	j, ok := r.d.jobs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &j, nil
}

func (r jobRepo) Update(_ context.Context, id uuid.UUID, upd storage.JobUpdate) (*models.Job, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	j, ok := r.d.jobs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	assign(&j.Title, upd.Title)
	assign(&j.Description, upd.Description)
	assign(&j.Company, upd.Company)
	assign(&j.Location, upd.Location)
	assign(&j.JobType, upd.JobType)
	assign(&j.Salary, upd.Salary)
	assign(&j.Requirements, upd.Requirements)
	assign(&j.Responsibilities, upd.Responsibilities)
	assign(&j.Skills, upd.Skills)
	assign(&j.IsClosed, upd.IsClosed)
	if upd.Deadline != nil {
		d := *upd.Deadline
		j.Deadline = &d
	}
	j.UpdatedAt = r.d.now()
	r.d.jobs[id] = j
	return &j, nil
}

func (r jobRepo) ListOpen(_ context.Context, f storage.JobFilter) ([]models.Job, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	out := []models.Job{}
	for _, j := range r.d.jobs {
		if !j.IsActive || !j.AcceptsApplications(f.Now) {
			continue
		}
		if f.JobType != nil && j.JobType != *f.JobType {
			continue
		}
		if f.Location != "" && !strings.Contains(strings.ToLower(j.Location), strings.ToLower(f.Location)) {
			continue
		}
		out = append(out, j)
	}
	sortJobsNewestFirst(out)
	return paginate(out, f.Offset, f.Limit), nil
}

func (r jobRepo) ListByRecruiter(_ context.Context, recruiterID uuid.UUID) ([]models.Job, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	out := []models.Job{}
	for _, j := range r.d.jobs {
		if j.RecruiterID == recruiterID {
			out = append(out, j)
		}
	}
	sortJobsNewestFirst(out)
	return out, nil
}

// Delete removes the job and, like ON DELETE CASCADE, its applications and saved entries.
func (r jobRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.jobs[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.d.jobs, id)
	r.d.deleteApplicationsLocked(id)
	for k := range r.d.saved {
		if k.b == id {
			delete(r.d.saved, k)
		}
	}
	return nil
}

func sortJobsNewestFirst(jobs []models.Job) {
	sort.Slice(jobs, func(i, k int) bool {
		if !jobs[i].PostedDate.Equal(jobs[k].PostedDate) {
			return jobs[i].PostedDate.After(jobs[k].PostedDate)
		}
		return jobs[i].ID.String() < jobs[k].ID.String()
	})
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// --- applications ---

type applicationRepo struct{ d *data }

func (r applicationRepo) Create(_ context.Context, a *models.Application) (*models.Application, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.jobs[a.JobID]; !ok {
		return nil, storage.ErrConflict
	}
	key := pairKey{a.JobID, a.ApplicantID}
	if _, dup := r.d.byJobAndUser[key]; dup {
		return nil, storage.ErrConflict
	}
	created := *a
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	created.UpdatedAt = r.d.now()
	r.d.applications[created.ID] = created
	r.d.byJobAndUser[key] = created.ID
	return &created, nil
}

func (r applicationRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Application, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	a, ok := r.d.applications[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &a, nil
}

func (r applicationRepo) GetByJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (*models.Application, error) {
	r.d.mu.RLock()
	id, ok := r.d.byJobAndUser[pairKey{jobID, applicantID}]
	r.d.mu.RUnlock()
	if !ok {
		return nil, storage.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r applicationRepo) ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.ApplicationWithApplicant, error) {
	return r.ListByJobIDs(ctx, []uuid.UUID{jobID})
}

func (r applicationRepo) ListByJobIDs(_ context.Context, jobIDs []uuid.UUID) ([]models.ApplicationWithApplicant, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	wanted := make(map[uuid.UUID]bool, len(jobIDs))
	for _, id := range jobIDs {
		wanted[id] = true
	}
	out := []models.ApplicationWithApplicant{}
	for _, a := range r.d.applications {
		if !wanted[a.JobID] {
			continue
		}
		u := r.d.users[a.ApplicantID]
		out = append(out, models.ApplicationWithApplicant{
			Application: a,
			Applicant: models.ApplicantSummary{
				ID:            u.ID,
				FirstName:     u.FirstName,
				LastName:      u.LastName,
				Email:         u.Email,
				ContactNumber: u.ContactNumber,
				ProfilePhoto:  u.ProfilePhoto,
			},
		})
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].JobID != out[k].JobID {
			return out[i].JobID.String() < out[k].JobID.String()
		}
		return appliedBefore(out[i].Application, out[k].Application)
	})
	return out, nil
}

func appliedBefore(a, b models.Application) bool {
	if !a.AppliedAt.Equal(b.AppliedAt) {
		return a.AppliedAt.Before(b.AppliedAt)
	}
	return a.ID.String() < b.ID.String()
}

func (r applicationRepo) ListByApplicant(_ context.Context, applicantID uuid.UUID) ([]models.ApplicationWithJob, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	out := []models.ApplicationWithJob{}
	for _, a := range r.d.applications {
		if a.ApplicantID != applicantID {
			continue
		}
		out = append(out, models.ApplicationWithJob{Application: a, Job: r.d.jobs[a.JobID]})
	}
	sort.Slice(out, func(i, k int) bool { return appliedBefore(out[k].Application, out[i].Application) })
	return out, nil
}

func (r applicationRepo) CountByJob(_ context.Context, jobID uuid.UUID) (int, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	n := 0
	for _, a := range r.d.applications {
		if a.JobID == jobID {
			n++
		}
	}
	return n, nil
}

func (r applicationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status models.ApplicationStatus, notes *string) (*models.Application, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	a, ok := r.d.applications[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	a.Status = status
	assign(&a.Notes, notes)
	a.UpdatedAt = r.d.now()
	r.d.applications[id] = a
	return &a, nil
}

func (r applicationRepo) DeleteByJob(_ context.Context, jobID uuid.UUID) (int64, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return r.d.deleteApplicationsLocked(jobID), nil
}

func (d *data) deleteApplicationsLocked(jobID uuid.UUID) int64 {
	var n int64
	for id, a := range d.applications {
		if a.JobID == jobID {
			delete(d.applications, id)
			delete(d.byJobAndUser, pairKey{a.JobID, a.ApplicantID})
			n++
		}
	}
	return n
}

func (r applicationRepo) ExistsForRecruiter(_ context.Context, applicantID, recruiterID uuid.UUID) (bool, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	for _, a := range r.d.applications {
		if a.ApplicantID == applicantID && r.d.jobs[a.JobID].RecruiterID == recruiterID {
			return true, nil
		}
	}
	return false, nil
}

// --- saved jobs ---

type savedJobRepo struct{ d *data }

func (r savedJobRepo) Save(_ context.Context, userID, jobID uuid.UUID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.jobs[jobID]; !ok {
		return storage.ErrConflict
	}
	key := pairKey{userID, jobID}
	if _, exists := r.d.saved[key]; !exists {
		r.d.saved[key] = r.d.now()
	}
	return nil
}

func (r savedJobRepo) Remove(_ context.Context, userID, jobID uuid.UUID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	key := pairKey{userID, jobID}
	if _, ok := r.d.saved[key]; !ok {
		return storage.ErrNotFound
	}
	delete(r.d.saved, key)
	return nil
}

func (r savedJobRepo) ListJobs(_ context.Context, userID uuid.UUID) ([]models.Job, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	type entry struct {
		job     models.Job
		savedAt time.Time
	}
	var entries []entry
	for k, at := range r.d.saved {
		if k.a != userID {
			continue
		}
		if j, ok := r.d.jobs[k.b]; ok {
			entries = append(entries, entry{j, at})
		}
	}
	sort.Slice(entries, func(i, k int) bool { return entries[i].savedAt.After(entries[k].savedAt) })
	out := make([]models.Job, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.job)
	}
	return out, nil
}

func (r savedJobRepo) DeleteByJob(_ context.Context, jobID uuid.UUID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for k := range r.d.saved {
		if k.b == jobID {
			delete(r.d.saved, k)
		}
	}
	return nil
}
