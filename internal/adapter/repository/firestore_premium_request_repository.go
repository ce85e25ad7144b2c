package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/google/uuid"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	"unimarket/pkg/errors"
)

type firestorePremiumRequestRepository struct {
	client *firestore.Client
}

func NewFirestorePremiumRequestRepository(client *firestore.Client) repository.PremiumRequestRepository {
	return &firestorePremiumRequestRepository{
		client: client,
	}
}

func (r *firestorePremiumRequestRepository) Create(ctx context.Context, request *entity.PremiumRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	request.CreatedAt = time.Now()

	_, err := r.client.Collection("premiumRequests").Doc(request.ID).Set(ctx, request)
	if err != nil {
		return errors.Internal("Failed to create premium request", err)
	}

	return nil
}

func (r *firestorePremiumRequestRepository) GetByID(ctx context.Context, id string) (*entity.PremiumRequest, error) {
	doc, err := r.client.Collection("premiumRequests").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Premium request", err)
		}
		return nil, errors.Internal("Failed to get premium request", err)
	}

	var request entity.PremiumRequest
	if err := doc.DataTo(&request); err != nil {
		return nil, errors.Internal("Failed to parse premium request data", err)
	}

	return &request, nil
}

func (r *firestorePremiumRequestRepository) GetPendingByUserID(ctx context.Context, userID string) (*entity.PremiumRequest, error) {
	query := r.client.Collection("premiumRequests").
		Where("userId", "==", userID).
		Where("status", "==", "pending").
		Limit(1)
	iter := query.Documents(ctx)
	doc, err := iter.Next()

	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Pending premium request", nil)
		}
		return nil, errors.Internal("Failed to query premium requests", err)
	}

	var request entity.PremiumRequest
	if err := doc.DataTo(&request); err != nil {
		return nil, errors.Internal("Failed to parse premium request data", err)
	}

	return &request, nil
}

func (r *firestorePremiumRequestRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.PremiumRequest, int64, error) {
	return r.list(ctx, map[string]interface{}{"userId": userID}, limit, offset)
}

func (r *firestorePremiumRequestRepository) ListByStatus(ctx context.Context, requestStatus string, limit, offset int) ([]*entity.PremiumRequest, int64, error) {
	filter := map[string]interface{}{}
	if requestStatus != "" {
		filter["status"] = requestStatus
	}
	return r.list(ctx, filter, limit, offset)
}

func (r *firestorePremiumRequestRepository) list(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.PremiumRequest, int64, error) {
	query := r.client.Collection("premiumRequests").Query

	for key, value := range filter {
		query = query.Where(key, "==", value)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count premium requests", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var requests []*entity.PremiumRequest

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate premium requests", err)
		}
		var request entity.PremiumRequest
		if err := doc.DataTo(&request); err != nil {
			return nil, 0, errors.Internal("Failed to parse premium request data", err)
		}
		requests = append(requests, &request)
	}

	return requests, total, nil
}

func (r *firestorePremiumRequestRepository) Update(ctx context.Context, request *entity.PremiumRequest) error {
	_, err := r.client.Collection("premiumRequests").Doc(request.ID).Set(ctx, request)
	if err != nil {
		return errors.Internal("Failed to update premium request", err)
	}

	return nil
}
