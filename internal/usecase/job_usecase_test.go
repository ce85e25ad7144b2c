package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unimarket/internal/domain/entity"
	"unimarket/pkg/errors"
)

// fakeJobStore mirrors the document store's apply contract: one lock covers
// the job read, the duplicate check and both writes, matching a
// single-transaction apply.
type fakeJobStore struct {
	mu           sync.Mutex
	jobs         map[string]*entity.Job
	applications map[string]*entity.JobApplication
	nextID       int
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{
		jobs:         make(map[string]*entity.Job),
		applications: make(map[string]*entity.JobApplication),
	}
}

func (s *fakeJobStore) Create(ctx context.Context, job *entity.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	job.ID = fmt.Sprintf("job-%d", s.nextID)
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	stored := *job
	s.jobs[job.ID] = &stored
	return nil
}

func (s *fakeJobStore) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, errors.NotFound("Job", nil)
	}
	copied := *job
	return &copied, nil
}

func (s *fakeJobStore) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Job, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var jobs []*entity.Job
	for _, job := range s.jobs {
		if status, ok := filter["status"]; ok && job.Status != status {
			continue
		}
		if category, ok := filter["category"]; ok && job.Category != category {
			continue
		}
		copied := *job
		jobs = append(jobs, &copied)
	}
	return jobs, int64(len(jobs)), nil
}

func (s *fakeJobStore) ListByPosterID(ctx context.Context, posterID string, limit, offset int) ([]*entity.Job, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var jobs []*entity.Job
	for _, job := range s.jobs {
		if job.PosterID == posterID {
			copied := *job
			jobs = append(jobs, &copied)
		}
	}
	return jobs, int64(len(jobs)), nil
}

func (s *fakeJobStore) Update(ctx context.Context, job *entity.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[job.ID]; !ok {
		return errors.NotFound("Job", nil)
	}
	job.UpdatedAt = time.Now()
	stored := *job
	s.jobs[job.ID] = &stored
	return nil
}

func (s *fakeJobStore) Apply(ctx context.Context, application *entity.JobApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[application.JobID]
	if !ok {
		return errors.NotFound("Job", nil)
	}
	if job.Status != "open" {
		return errors.Conflict("JOB_CLOSED", "Job is no longer accepting applications")
	}

	key := application.JobID + "_" + application.ApplicantID
	if _, ok := s.applications[key]; ok {
		return errors.Conflict("DUPLICATE_APPLICATION", "You have already applied to this job")
	}

	application.ID = key
	application.CreatedAt = time.Now()
	application.UpdatedAt = application.CreatedAt
	stored := *application
	s.applications[key] = &stored
	job.ApplicantCount++
	return nil
}

func (s *fakeJobStore) GetApplication(ctx context.Context, jobID, applicantID string) (*entity.JobApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	application, ok := s.applications[jobID+"_"+applicantID]
	if !ok {
		return nil, errors.NotFound("Application", nil)
	}
	copied := *application
	return &copied, nil
}

func (s *fakeJobStore) ListApplications(ctx context.Context, jobID string, limit, offset int) ([]*entity.JobApplication, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var applications []*entity.JobApplication
	for _, application := range s.applications {
		if application.JobID == jobID {
			copied := *application
			applications = append(applications, &copied)
		}
	}
	return applications, int64(len(applications)), nil
}

func (s *fakeJobStore) ListApplicationsByApplicant(ctx context.Context, applicantID string, limit, offset int) ([]*entity.JobApplication, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var applications []*entity.JobApplication
	for _, application := range s.applications {
		if application.ApplicantID == applicantID {
			copied := *application
			applications = append(applications, &copied)
		}
	}
	return applications, int64(len(applications)), nil
}

func (s *fakeJobStore) UpdateApplication(ctx context.Context, application *entity.JobApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.applications[application.ID]; !ok {
		return errors.NotFound("Application", nil)
	}
	application.UpdatedAt = time.Now()
	stored := *application
	s.applications[application.ID] = &stored
	return nil
}

func newJobFixture(t *testing.T) (*JobUseCase, *fakeJobStore, *entity.Job) {
	store := newFakeJobStore()
	uc := NewJobUseCase(store)

	job, err := uc.CreateJob(context.Background(), "poster-1", JobInput{
		Title:       "Flyer distribution",
		Description: "Hand out flyers near the library",
		Category:    "campus",
		Pay:         50000,
		PayUnit:     "day",
	})
	require.NoError(t, err)
	return uc, store, job
}

func TestApplyToJob(t *testing.T) {
	uc, _, job := newJobFixture(t)

	application, err := uc.Apply(context.Background(), "user-a", job.ID, ApplyInput{Message: "Interested"})
	require.NoError(t, err)
	assert.Equal(t, "applied", application.Status)
	assert.Equal(t, job.ID+"_user-a", application.ID)

	updated, err := uc.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.ApplicantCount)
}

func TestApplyTwiceFails(t *testing.T) {
	uc, _, job := newJobFixture(t)
	ctx := context.Background()

	_, err := uc.Apply(ctx, "user-a", job.ID, ApplyInput{})
	require.NoError(t, err)

	_, err = uc.Apply(ctx, "user-a", job.ID, ApplyInput{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "DUPLICATE_APPLICATION"))

	updated, err := uc.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.ApplicantCount)
}

func TestApplyToOwnJobFails(t *testing.T) {
	uc, _, job := newJobFixture(t)

	_, err := uc.Apply(context.Background(), "poster-1", job.ID, ApplyInput{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestApplyToClosedJobFails(t *testing.T) {
	uc, _, job := newJobFixture(t)
	ctx := context.Background()

	_, err := uc.CloseJob(ctx, "poster-1", job.ID)
	require.NoError(t, err)

	_, err = uc.Apply(ctx, "user-a", job.ID, ApplyInput{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "JOB_CLOSED"))
}

func TestCloseJobRequiresOwnership(t *testing.T) {
	uc, _, job := newJobFixture(t)

	_, err := uc.CloseJob(context.Background(), "someone-else", job.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestWithdrawApplication(t *testing.T) {
	uc, _, job := newJobFixture(t)
	ctx := context.Background()

	_, err := uc.Apply(ctx, "user-a", job.ID, ApplyInput{})
	require.NoError(t, err)

	application, err := uc.Withdraw(ctx, "user-a", job.ID)
	require.NoError(t, err)
	assert.Equal(t, "withdrawn", application.Status)
	require.NotNil(t, application.WithdrawnAt)

	_, err = uc.Withdraw(ctx, "user-a", job.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestListApplicantsRequiresOwnership(t *testing.T) {
	uc, _, job := newJobFixture(t)
	ctx := context.Background()

	_, err := uc.Apply(ctx, "user-a", job.ID, ApplyInput{})
	require.NoError(t, err)

	applications, total, err := uc.ListApplicants(ctx, "poster-1", job.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, applications, 1)

	_, _, err = uc.ListApplicants(ctx, "user-a", job.ID, 1, 20)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestApplyConcurrentSameUser(t *testing.T) {
	uc, store, job := newJobFixture(t)

	// Two racing applies from the same user; exactly one may win.
	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Apply(context.Background(), "user-a", job.ID, ApplyInput{})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var failures int
	for err := range results {
		if err != nil {
			failures++
			assert.True(t, errors.Is(err, "DUPLICATE_APPLICATION"))
		}
	}
	assert.Equal(t, 1, failures)

	updated, err := uc.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.ApplicantCount)
	assert.Len(t, store.applications, 1)
}
