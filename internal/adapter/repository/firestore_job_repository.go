package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	"unimarket/pkg/errors"
)

type firestoreJobRepository struct {
	client *firestore.Client
}

func NewFirestoreJobRepository(client *firestore.Client) repository.JobRepository {
	return &firestoreJobRepository{
		client: client,
	}
}

func applicationDocID(jobID, applicantID string) string {
	return fmt.Sprintf("%s_%s", jobID, applicantID)
}

func (r *firestoreJobRepository) Create(ctx context.Context, job *entity.Job) error {
	if job.ID == "" {
		doc := r.client.Collection("jobs").NewDoc()
		job.ID = doc.ID
	}

	now := time.Now()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now

	_, err := r.client.Collection("jobs").Doc(job.ID).Set(ctx, job)
	if err != nil {
		return errors.Internal("Failed to create job", err)
	}

	return nil
}

func (r *firestoreJobRepository) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	doc, err := r.client.Collection("jobs").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Job", err)
		}
		return nil, errors.Internal("Failed to get job", err)
	}

	var job entity.Job
	if err := doc.DataTo(&job); err != nil {
		return nil, errors.Internal("Failed to parse job data", err)
	}

	return &job, nil
}

func (r *firestoreJobRepository) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Job, int64, error) {
	query := r.client.Collection("jobs").Query

	for key, value := range filter {
		query = query.Where(key, "==", value)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count jobs", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var jobs []*entity.Job

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate jobs", err)
		}
		var job entity.Job
		if err := doc.DataTo(&job); err != nil {
			return nil, 0, errors.Internal("Failed to parse job data", err)
		}
		jobs = append(jobs, &job)
	}

	return jobs, total, nil
}

func (r *firestoreJobRepository) ListByPosterID(ctx context.Context, posterID string, limit, offset int) ([]*entity.Job, int64, error) {
	return r.List(ctx, map[string]interface{}{"posterId": posterID}, limit, offset)
}

func (r *firestoreJobRepository) Update(ctx context.Context, job *entity.Job) error {
	job.UpdatedAt = time.Now()

	_, err := r.client.Collection("jobs").Doc(job.ID).Set(ctx, job)
	if err != nil {
		return errors.Internal("Failed to update job", err)
	}

	return nil
}

// Apply uses the same transactional guard-doc shape as rating submission: the
// application id is deterministic per (job, applicant), and the applicant
// counter on the job is bumped in the same transaction as the create.
func (r *firestoreJobRepository) Apply(ctx context.Context, application *entity.JobApplication) error {
	jobRef := r.client.Collection("jobs").Doc(application.JobID)
	appRef := r.client.Collection("jobApplications").Doc(applicationDocID(application.JobID, application.ApplicantID))

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		jobDoc, err := tx.Get(jobRef)
		if err != nil {
			return err
		}

		var job entity.Job
		if err := jobDoc.DataTo(&job); err != nil {
			return err
		}
		if job.Status != "open" {
			return errors.Conflict("JOB_CLOSED", "Job is no longer accepting applications")
		}

		_, err = tx.Get(appRef)
		if err == nil {
			return errors.Conflict("DUPLICATE_APPLICATION", "You have already applied to this job")
		}
		if status.Code(err) != codes.NotFound {
			return err
		}

		if err := tx.Update(jobRef, []firestore.Update{
			{Path: "applicantCount", Value: job.ApplicantCount + 1},
			{Path: "updatedAt", Value: time.Now()},
		}); err != nil {
			return err
		}

		application.ID = appRef.ID
		now := time.Now()
		application.CreatedAt = now
		application.UpdatedAt = now
		return tx.Create(appRef, application)
	})

	if err != nil {
		if errors.Is(err, "DUPLICATE_APPLICATION") || errors.Is(err, "JOB_CLOSED") {
			return err
		}
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Job", err)
		}
		return errors.Internal("Failed to apply to job", err)
	}

	return nil
}

func (r *firestoreJobRepository) GetApplication(ctx context.Context, jobID, applicantID string) (*entity.JobApplication, error) {
	doc, err := r.client.Collection("jobApplications").Doc(applicationDocID(jobID, applicantID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Application", err)
		}
		return nil, errors.Internal("Failed to get application", err)
	}

	var application entity.JobApplication
	if err := doc.DataTo(&application); err != nil {
		return nil, errors.Internal("Failed to parse application data", err)
	}

	return &application, nil
}

func (r *firestoreJobRepository) ListApplications(ctx context.Context, jobID string, limit, offset int) ([]*entity.JobApplication, int64, error) {
	return r.listApplications(ctx, "jobId", jobID, limit, offset)
}

func (r *firestoreJobRepository) ListApplicationsByApplicant(ctx context.Context, applicantID string, limit, offset int) ([]*entity.JobApplication, int64, error) {
	return r.listApplications(ctx, "applicantId", applicantID, limit, offset)
}

func (r *firestoreJobRepository) listApplications(ctx context.Context, field, value string, limit, offset int) ([]*entity.JobApplication, int64, error) {
	query := r.client.Collection("jobApplications").
		Where(field, "==", value).
		OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count applications", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var applications []*entity.JobApplication

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate applications", err)
		}
		var application entity.JobApplication
		if err := doc.DataTo(&application); err != nil {
			return nil, 0, errors.Internal("Failed to parse application data", err)
		}
		applications = append(applications, &application)
	}

	return applications, total, nil
}

func (r *firestoreJobRepository) UpdateApplication(ctx context.Context, application *entity.JobApplication) error {
	application.UpdatedAt = time.Now()

	_, err := r.client.Collection("jobApplications").Doc(application.ID).Set(ctx, application)
	if err != nil {
		return errors.Internal("Failed to update application", err)
	}

	return nil
}
