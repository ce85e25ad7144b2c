package usecase

import (
	"context"
	"time"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	"unimarket/pkg/errors"
)

type JobUseCase struct {
	jobRepo repository.JobRepository
}

func NewJobUseCase(jobRepo repository.JobRepository) *JobUseCase {
	return &JobUseCase{
		jobRepo: jobRepo,
	}
}

type JobInput struct {
	Title       string
	Description string
	Category    string
	Location    string
	Pay         float64
	PayUnit     string
}

func (uc *JobUseCase) CreateJob(ctx context.Context, posterID string, input JobInput) (*entity.Job, error) {
	job := &entity.Job{
		PosterID:    posterID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Location:    input.Location,
		Pay:         input.Pay,
		PayUnit:     input.PayUnit,
		Status:      "open",
	}

	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

func (uc *JobUseCase) GetJob(ctx context.Context, id string) (*entity.Job, error) {
	return uc.jobRepo.GetByID(ctx, id)
}

func (uc *JobUseCase) ListJobs(ctx context.Context, category string, page, limit int) ([]*entity.Job, int64, error) {
	filter := map[string]interface{}{"status": "open"}
	if category != "" {
		filter["category"] = category
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.jobRepo.List(ctx, filter, limit, offset)
}

func (uc *JobUseCase) ListMyJobs(ctx context.Context, posterID string, page, limit int) ([]*entity.Job, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.jobRepo.ListByPosterID(ctx, posterID, limit, offset)
}

func (uc *JobUseCase) CloseJob(ctx context.Context, posterID, id string) (*entity.Job, error) {
	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.PosterID != posterID {
		return nil, errors.Forbidden("You do not own this job", nil)
	}

	job.Status = "closed"
	if err := uc.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

type ApplyInput struct {
	Message      string
	ContactPhone string
}

func (uc *JobUseCase) Apply(ctx context.Context, applicantID, jobID string, input ApplyInput) (*entity.JobApplication, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.PosterID == applicantID {
		return nil, errors.BadRequest("Cannot apply to your own job", nil)
	}

	application := &entity.JobApplication{
		JobID:        jobID,
		ApplicantID:  applicantID,
		Message:      input.Message,
		ContactPhone: input.ContactPhone,
		Status:       "applied",
	}

	if err := uc.jobRepo.Apply(ctx, application); err != nil {
		return nil, err
	}

	return application, nil
}

func (uc *JobUseCase) Withdraw(ctx context.Context, applicantID, jobID string) (*entity.JobApplication, error) {
	application, err := uc.jobRepo.GetApplication(ctx, jobID, applicantID)
	if err != nil {
		return nil, err
	}
	if application.Status == "withdrawn" {
		return nil, errors.BadRequest("Application already withdrawn", nil)
	}

	now := time.Now()
	application.Status = "withdrawn"
	application.WithdrawnAt = &now

	if err := uc.jobRepo.UpdateApplication(ctx, application); err != nil {
		return nil, err
	}

	return application, nil
}

func (uc *JobUseCase) ListApplicants(ctx context.Context, posterID, jobID string, page, limit int) ([]*entity.JobApplication, int64, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, 0, err
	}
	if job.PosterID != posterID {
		return nil, 0, errors.Forbidden("You do not own this job", nil)
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.jobRepo.ListApplications(ctx, jobID, limit, offset)
}

func (uc *JobUseCase) ListMyApplications(ctx context.Context, applicantID string, page, limit int) ([]*entity.JobApplication, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.jobRepo.ListApplicationsByApplicant(ctx, applicantID, limit, offset)
}
