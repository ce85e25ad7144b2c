package repository

import (
	"context"

	"unimarket/internal/domain/entity"
)

type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	GetByID(ctx context.Context, id string) (*entity.Job, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Job, int64, error)
	ListByPosterID(ctx context.Context, posterID string, limit, offset int) ([]*entity.Job, int64, error)
	Update(ctx context.Context, job *entity.Job) error

	// Apply creates the application and bumps the job's applicant count in one
	// transaction. The application id is deterministic per (job, user), so a
	// second apply fails inside the transaction.
	Apply(ctx context.Context, application *entity.JobApplication) error
	GetApplication(ctx context.Context, jobID, applicantID string) (*entity.JobApplication, error)
	ListApplications(ctx context.Context, jobID string, limit, offset int) ([]*entity.JobApplication, int64, error)
	ListApplicationsByApplicant(ctx context.Context, applicantID string, limit, offset int) ([]*entity.JobApplication, int64, error)
	UpdateApplication(ctx context.Context, application *entity.JobApplication) error
}
